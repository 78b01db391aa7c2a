package mfd

import (
	"context"
	"strconv"
	"unicode"

	"flightrec/pkg/config"
	"flightrec/pkg/view"
)

// Prompt is the text input a command asks for.
type Prompt = view.Prompt

// NumButtons is the number of soft buttons beside the display.
const NumButtons = 12

// Button describes one soft button. Buttons without a key are blank.
type Button struct {
	Label string
	Menu  string
	Key   rune
}

var buttons = [NumButtons]Button{
	{"TGT", "select Target base", 'T'},
	{"DLM", "specify Delimiter", 'D'},
	{"DA", "data Acquisition toggle", 'A'},
	{"DIS", "select display Page", 'P'},
	{"PUR", "pUrge plot data", 'U'},
	{"RAT", "sample Rate", 'R'},
	{"PTH", "data patH", 'H'},
	{"FLE", "data File name", 'F'},
	{},
	{},
	{},
	{"INC", "auto Increment toggle", 'I'},
}

// Buttons returns the soft button table.
func Buttons() [NumButtons]Button { return buttons }

var _ view.View = (*MFD)(nil)

type action func(ctx context.Context, m *MFD) *Prompt

var keyTable = map[rune]action{
	'A': func(ctx context.Context, m *MFD) *Prompt {
		m.rec.TogglePause()
		return nil
	},
	'P': func(ctx context.Context, m *MFD) *Prompt {
		m.page = (m.page + 1) % NumPages
		m.persist(ctx, config.KeyMFDPage, strconv.Itoa(m.page))
		return nil
	},
	'T': func(ctx context.Context, m *MFD) *Prompt {
		return &Prompt{Title: "Target Base:", Submit: m.rec.SelectTarget}
	},
	'D': func(ctx context.Context, m *MFD) *Prompt {
		return &Prompt{Title: "Delimiter character:", Submit: m.rec.SetDelimiter}
	},
	'U': func(ctx context.Context, m *MFD) *Prompt {
		// Purging goes straight on to the rate prompt.
		m.rec.Purge()
		return ratePrompt(m)
	},
	'R': func(ctx context.Context, m *MFD) *Prompt {
		return ratePrompt(m)
	},
	'H': func(ctx context.Context, m *MFD) *Prompt {
		return &Prompt{Title: "Data Path:", Submit: m.rec.SetLogDir}
	},
	'F': func(ctx context.Context, m *MFD) *Prompt {
		return &Prompt{Title: "Data file name:", Submit: m.rec.SetLogFile}
	},
	'I': func(ctx context.Context, m *MFD) *Prompt {
		m.rec.ToggleAutoIncrement()
		return nil
	},
	'1': func(ctx context.Context, m *MFD) *Prompt {
		return &Prompt{Title: "Alt range (a or min max):", Submit: func(s string) error { return m.SetAltRange(ctx, s) }}
	},
	'2': func(ctx context.Context, m *MFD) *Prompt {
		return &Prompt{Title: "Vrad range (a or min max):", Submit: func(s string) error { return m.SetVradRange(ctx, s) }}
	},
	'3': func(ctx context.Context, m *MFD) *Prompt {
		return &Prompt{Title: "Vtan range (a or min max):", Submit: func(s string) error { return m.SetVtanRange(ctx, s) }}
	},
}

func ratePrompt(m *MFD) *Prompt {
	return &Prompt{Title: "Samples per second:", Submit: m.rec.SetSampleRate}
}

// HandleKey runs the command bound to key, case-insensitively. It reports
// whether the key was consumed and returns a prompt when the command needs
// text input.
func (m *MFD) HandleKey(ctx context.Context, key rune) (*Prompt, bool) {
	act, ok := keyTable[unicode.ToUpper(key)]
	if !ok {
		return nil, false
	}
	return act(ctx, m), true
}

// HandleButton presses soft button bt.
func (m *MFD) HandleButton(ctx context.Context, bt int) (*Prompt, bool) {
	if bt < 0 || bt >= NumButtons || buttons[bt].Key == 0 {
		return nil, false
	}
	return m.HandleKey(ctx, buttons[bt].Key)
}

// Help lists the keys on the status bar.
func (m *MFD) Help() string {
	return "A acq  P page  T tgt  D dlm  U purge  R rate  H path  F file  I inc  1-3 ranges"
}

func (m *MFD) persist(ctx context.Context, key, val string) {
	if m.prov == nil {
		return
	}
	if err := m.prov.Set(ctx, key, val); err != nil {
		m.logger.Debug("Failed to persist view state", "key", key, "error", err)
	}
}
