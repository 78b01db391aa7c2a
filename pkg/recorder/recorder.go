// Package recorder is one flight data recorder instance: it owns the sample
// history, the differentiation state and the log file settings, and exposes
// the per-step sampling hook and the interactive commands of a view.
package recorder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"flightrec/pkg/config"
	"flightrec/pkg/kinematics"
	"flightrec/pkg/logfile"
	"flightrec/pkg/logging"
	"flightrec/pkg/samples"
	"flightrec/pkg/sim"
)

// ErrInvalidInput is returned by commands given text they cannot use. The
// previous setting is kept.
var ErrInvalidInput = errors.New("invalid input")

// Clock selects which time base rate-limits sampling.
type Clock int

const (
	// ClockSim compares simulation time, so sampling follows time acceleration.
	ClockSim Clock = iota
	// ClockSystem compares wall time and ignores time acceleration.
	ClockSystem
)

func (c Clock) String() string {
	if c == ClockSystem {
		return "system"
	}
	return "sim"
}

// intervalSlack absorbs float drift when sim time is accumulated in steps.
const intervalSlack = 1e-9

// Options configures a Recorder.
type Options struct {
	Capacity    int
	GLoad       kinematics.GLoad
	Clock       Clock
	MinAltitude float64 // m; accelerations are not derived at or below it

	Settings config.RecorderSettings
	// ConfigPath is where Close writes Settings back. Empty skips the write.
	ConfigPath string
	Logger     *slog.Logger
}

// Recorder samples one focus vessel into a ring buffer and a log file.
// It is driven from a single goroutine.
type Recorder struct {
	opts     Options
	logger   *slog.Logger
	buf      *samples.Buffer
	tracker  *kinematics.Tracker
	writer   *logfile.Writer
	settings config.RecorderSettings
	loc      sim.Locator

	body   sim.Body
	vessel string
	target *sim.Target

	last     float64
	haveLast bool
	samples  int
	closed   bool
}

// New builds a recorder. loc resolves range targets; it may be nil when no
// targets are available.
func New(opts Options, loc sim.Locator) (*Recorder, error) {
	if opts.Capacity == 0 {
		opts.Capacity = samples.DefaultCapacity
	}
	buf, err := samples.New(opts.Capacity)
	if err != nil {
		return nil, err
	}
	if opts.GLoad == nil {
		opts.GLoad = kinematics.NetComponentG{}
	}
	if opts.MinAltitude == 0 {
		opts.MinAltitude = kinematics.DefaultMinAltitude
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	s := opts.Settings
	if s.SampleDT <= 0 {
		s.SampleDT = config.DefaultRecorderSettings().SampleDT
	}
	if s.Delimiter == 0 {
		s.Delimiter = logfile.DefaultDelimiter
	}
	if s.LogFile == "" {
		s.LogFile = logfile.DefaultName
	}

	r := &Recorder{
		opts:     opts,
		logger:   opts.Logger.With("component", "recorder", "clock", opts.Clock.String()),
		buf:      buf,
		tracker:  kinematics.NewTracker(opts.GLoad, opts.MinAltitude),
		writer:   &logfile.Writer{Dir: s.LogDir, Name: s.LogFile, Delimiter: s.Delimiter},
		settings: s,
		loc:      loc,
	}
	return r, nil
}

// Open starts a fresh history for the client's focus vessel and resolves the
// stored range target against its reference body.
func (r *Recorder) Open(ctx context.Context, client sim.Client) error {
	r.Purge()
	snap, err := client.GetSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to read vessel state: %w", err)
	}
	r.body = snap.Body
	r.vessel = snap.Vessel
	if r.settings.Target != "" {
		// An unknown stored target is reported and cleared; recording goes on.
		_ = r.SelectTarget(r.settings.Target)
	}
	return nil
}

// Step is the per-simulation-step sampling hook. simt is simulation time and
// syst wall time, both in seconds; the configured Clock picks one. It
// reports whether a sample was taken.
func (r *Recorder) Step(ctx context.Context, client sim.Client, simt, syst float64) (bool, error) {
	if r.closed || r.settings.Paused {
		return false, nil
	}
	now := simt
	if r.opts.Clock == ClockSystem {
		now = syst
	}
	if r.haveLast && now-r.last < r.settings.SampleDT-intervalSlack {
		return false, nil
	}
	if !client.GetState().Sampling() {
		return false, nil
	}

	snap, err := client.GetSnapshot(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to read vessel state: %w", err)
	}
	r.body = snap.Body
	r.vessel = snap.Vessel

	f := r.frame(&snap)
	slot := r.buf.Record(&f)
	if err := r.writer.Append(slot, &f); err != nil {
		r.logger.Debug("Log write skipped", "path", r.writer.Path(), "error", err)
	}
	logging.Trace(r.logger, "Sample recorded", "slot", slot, "simt", snap.SimTime)

	r.last = now
	r.haveLast = true
	r.samples++
	return true, nil
}

// Close writes the settings back and releases the history. Further steps
// are ignored.
func (r *Recorder) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.buf.Purge()
	r.tracker.Reset()
	if r.opts.ConfigPath == "" {
		return nil
	}
	if err := config.SaveRecorder(r.opts.ConfigPath, r.settings); err != nil {
		r.logger.Warn("Failed to save recorder settings", "path", r.opts.ConfigPath, "error", err)
		return err
	}
	return nil
}

// Buffer exposes the sample history for graphs. Callers must not record
// into it.
func (r *Recorder) Buffer() *samples.Buffer { return r.buf }

// Settings returns a copy of the current settings.
func (r *Recorder) Settings() config.RecorderSettings { return r.settings }

// Interval returns the configured time between samples.
func (r *Recorder) Interval() time.Duration {
	return time.Duration(r.settings.SampleDT * float64(time.Second))
}

// Paused reports whether sampling is suspended.
func (r *Recorder) Paused() bool { return r.settings.Paused }

// Target returns the current range target, if any.
func (r *Recorder) Target() (sim.Target, bool) {
	if r.target == nil {
		return sim.Target{}, false
	}
	return *r.target, true
}

// Body returns the reference body seen in the latest snapshot.
func (r *Recorder) Body() sim.Body { return r.body }

// Vessel returns the focus vessel seen in the latest snapshot.
func (r *Recorder) Vessel() string { return r.vessel }

// Samples returns how many samples were taken since the recorder was built.
func (r *Recorder) Samples() int { return r.samples }

// LogPath returns the file the next sample is appended to.
func (r *Recorder) LogPath() string { return r.writer.Path() }
