package dialog

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"flightrec/pkg/recorder"
	"flightrec/pkg/view"
)

var _ view.View = (*Dialog)(nil)

// HandleKey maps the dialog's controls onto keys, case-insensitively.
func (d *Dialog) HandleKey(ctx context.Context, key rune) (*view.Prompt, bool) {
	switch unicode.ToUpper(key) {
	case 'S':
		d.StartStop()
	case 'R':
		d.Reset()
	case '+':
		_ = d.SetRate(min(d.rate+1, len(RatePresets)-1))
	case '-':
		_ = d.SetRate(max(d.rate-1, 0))
	case 'G':
		return &view.Prompt{
			Title: fmt.Sprintf("Graph (0-%d or key):", NumKinds-1),
			Submit: func(text string) error {
				k, ok := ParseKind(text)
				if !ok {
					return fmt.Errorf("%w: no graph %q", recorder.ErrInvalidInput, text)
				}
				_, err := d.Toggle(ctx, k)
				return err
			},
		}, true
	case 'V':
		return &view.Prompt{
			Title:  "Vessel (" + strings.Join(d.Vessels(), ", ") + "):",
			Submit: func(text string) error { return d.SelectVessel(ctx, text) },
		}, true
	case 'T':
		return &view.Prompt{
			Title:  "Range target (" + strings.Join(d.Targets(), ", ") + "):",
			Submit: d.SelectTarget,
		}, true
	case 'L':
		return &view.Prompt{Title: "Log file:", Submit: d.SetLogPath}, true
	default:
		return nil, false
	}
	return nil, true
}

// Help lists the keys on the status bar.
func (d *Dialog) Help() string {
	return "S start/stop  R reset  +/- rate  G graph  V vessel  T target  L log file"
}
