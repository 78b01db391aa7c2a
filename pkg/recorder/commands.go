package recorder

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"flightrec/pkg/config"
	"flightrec/pkg/logfile"
	"flightrec/pkg/sim"
)

// SelectTarget resolves name as a base on the current reference body, then
// a vessel, then a station. An empty name clears the target. When nothing
// matches the target is left unset and an error wrapping
// sim.ErrUnknownTarget is returned.
func (r *Recorder) SelectTarget(name string) error {
	name = strings.TrimSpace(name)
	r.target = nil
	r.settings.Target = ""
	if name == "" {
		r.logger.Info("Range target cleared")
		return nil
	}
	if r.loc == nil {
		return fmt.Errorf("%w: %q", sim.ErrUnknownTarget, name)
	}

	t, err := sim.ResolveTarget(r.loc, r.body.Name, name)
	if err != nil {
		r.logger.Warn("Unknown range target.", "target", name, "body", r.body.Name)
		return err
	}
	r.target = &t
	r.settings.Target = t.Name
	r.logger.Info("Range target set", "target", t.Name, "kind", t.Kind.String())
	return nil
}

// SetDelimiter takes the single character typed. Surrounding blanks are
// ignored unless the blank itself is the delimiter.
func (r *Recorder) SetDelimiter(text string) error {
	if utf8.RuneCountInString(text) != 1 {
		text = strings.TrimSpace(text)
	}
	if utf8.RuneCountInString(text) != 1 {
		return fmt.Errorf("%w: delimiter must be one character, got %q", ErrInvalidInput, text)
	}
	d, _ := utf8.DecodeRuneInString(text)
	r.settings.Delimiter = d
	r.writer.Delimiter = d
	return nil
}

// TogglePause switches between recording and paused and returns the new
// state. Pausing with auto-increment on moves the log to the next numbered
// file name.
func (r *Recorder) TogglePause() bool {
	if r.settings.Paused {
		r.settings.Paused = false
		r.logger.Info("Data acquisition resumed", "log", r.writer.Path())
		return false
	}
	r.settings.Paused = true
	if r.settings.AutoIncrement {
		r.setLogFile(logfile.IncrementName(r.settings.LogFile))
	}
	r.logger.Info("Data acquisition paused", "next_log", r.writer.Path())
	return true
}

// SetPaused forces the pause state, applying the same auto-increment rule
// as TogglePause.
func (r *Recorder) SetPaused(paused bool) {
	if r.settings.Paused != paused {
		r.TogglePause()
	}
}

// Purge clears the sample history and the differentiation state. The pause
// state is left as it was.
func (r *Recorder) Purge() {
	r.buf.Purge()
	r.tracker.Reset()
	r.haveLast = false
}

// ResetSession clears the history when the host starts a new flight.
func (r *Recorder) ResetSession(ctx context.Context) {
	r.Purge()
	r.logger.Info("History cleared for new flight")
}

// SetSampleRate parses a typed rate: a number of samples per second, or an
// interval with a time unit.
func (r *Recorder) SetSampleRate(text string) error {
	d, err := config.ParseSampleInterval(text)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	r.SetSampleInterval(d)
	return nil
}

// SetSampleInterval sets the time between samples directly.
func (r *Recorder) SetSampleInterval(d time.Duration) {
	if d < config.MinSampleInterval {
		d = config.MinSampleInterval
	}
	r.settings.SampleDT = d.Seconds()
	r.logger.Info("Sample rate set", "per_second", 1/r.settings.SampleDT)
}

// SetLogDir changes the directory new samples are logged to.
func (r *Recorder) SetLogDir(text string) error {
	dir := logfile.StripQuotes(strings.TrimSpace(text))
	if dir == "" {
		return fmt.Errorf("%w: empty log directory", ErrInvalidInput)
	}
	r.settings.LogDir = dir
	r.writer.Dir = dir
	return nil
}

// SetLogFile changes the log file name. Naming a file explicitly turns
// auto-increment off.
func (r *Recorder) SetLogFile(text string) error {
	name := logfile.StripQuotes(strings.TrimSpace(text))
	if name == "" {
		return fmt.Errorf("%w: empty log file name", ErrInvalidInput)
	}
	r.setLogFile(name)
	r.settings.AutoIncrement = false
	return nil
}

func (r *Recorder) setLogFile(name string) {
	r.settings.LogFile = name
	r.writer.Name = name
}

// ToggleAutoIncrement flips log name auto-increment and returns the new state.
func (r *Recorder) ToggleAutoIncrement() bool {
	r.settings.AutoIncrement = !r.settings.AutoIncrement
	return r.settings.AutoIncrement
}
