// Package dialog is the windowed variant of the recorder: any of 22 graph
// kinds stacked top to bottom against the sample index, preset sample
// rates, start/stop and reset, and vessel and range target lists.
package dialog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"flightrec/pkg/chart"
	"flightrec/pkg/config"
	"flightrec/pkg/logfile"
	"flightrec/pkg/recorder"
	"flightrec/pkg/sim"
)

// Title heads the dialog.
const Title = "Flight Data"

// ErrNoFocus is returned when the host cannot switch to another vessel.
var ErrNoFocus = errors.New("host cannot change the focus vessel")

// RatePresets are the selectable sample rates in samples per second.
var RatePresets = [...]string{"0.01", "0.1", "1", "10"}

var rateIntervals = [len(RatePresets)]time.Duration{
	100 * time.Second,
	10 * time.Second,
	time.Second,
	100 * time.Millisecond,
}

// DefaultRate is the preset selected when the recorder's interval matches
// none.
const DefaultRate = 2

// listWidth is the column taken by the graph list when there is room.
const listWidth = 26

// Dialog renders a recorder as a stack of user-selected graphs.
type Dialog struct {
	rec    *recorder.Recorder
	client sim.Client
	loc    sim.Locator
	prov   config.Provider
	logger *slog.Logger

	stack chart.Stack
	rate  int
}

// New builds the dialog over rec and reopens the graphs that were shown
// last time. client is the host the recorder samples and loc its target
// lookup; prov may be nil. Recording starts in whatever state rec is in.
func New(ctx context.Context, rec *recorder.Recorder, client sim.Client, loc sim.Locator, prov config.Provider) *Dialog {
	d := &Dialog{
		rec:    rec,
		client: client,
		loc:    loc,
		prov:   prov,
		logger: slog.With("component", "dialog"),
		rate:   -1,
	}
	for i, iv := range rateIntervals {
		if iv.Seconds() == rec.Settings().SampleDT {
			d.rate = i
		}
	}
	if d.rate < 0 {
		_ = d.SetRate(DefaultRate)
	}

	if prov != nil {
		for _, key := range prov.DialogGraphs(ctx) {
			k, ok := KindByKey(key)
			if !ok {
				d.logger.Warn("Ignoring stored graph", "key", key)
				continue
			}
			d.stack.Add(newGraph(k, rec.Buffer()))
		}
	}
	return d
}

// Select opens or closes the graph of kind k. Opening a graph that is
// already shown does nothing; the remaining graphs share the height.
func (d *Dialog) Select(ctx context.Context, k Kind, on bool) error {
	if !k.Valid() {
		return fmt.Errorf("%w: no graph %d", recorder.ErrInvalidInput, int(k))
	}
	var changed bool
	if on {
		changed = d.stack.Add(newGraph(k, d.rec.Buffer()))
	} else {
		changed = d.stack.Remove(k.Key())
	}
	if changed {
		d.persistGraphs(ctx)
	}
	return nil
}

// Toggle flips graph k and reports whether it is now shown.
func (d *Dialog) Toggle(ctx context.Context, k Kind) (bool, error) {
	on := !d.Selected(k)
	if err := d.Select(ctx, k, on); err != nil {
		return false, err
	}
	return on, nil
}

// Selected reports whether graph k is shown.
func (d *Dialog) Selected(k Kind) bool {
	return k.Valid() && d.stack.Find(k.Key()) != nil
}

// Graphs returns the shown kinds top to bottom.
func (d *Dialog) Graphs() []Kind {
	out := make([]Kind, 0, d.stack.Len())
	for _, g := range d.stack.Graphs() {
		if k, ok := KindByKey(g.Key); ok {
			out = append(out, k)
		}
	}
	return out
}

// Graph returns the chart for kind k, or nil when it is not shown.
func (d *Dialog) Graph(k Kind) *chart.Graph {
	if !k.Valid() {
		return nil
	}
	return d.stack.Find(k.Key())
}

func (d *Dialog) persistGraphs(ctx context.Context) {
	if d.prov == nil {
		return
	}
	keys := make([]string, 0, d.stack.Len())
	for _, k := range d.Graphs() {
		keys = append(keys, k.Key())
	}
	if err := d.prov.Set(ctx, config.KeyDialogGraphs, strings.Join(keys, ",")); err != nil {
		d.logger.Debug("Failed to persist graph selection", "error", err)
	}
}

// Rate returns the selected preset index.
func (d *Dialog) Rate() int { return d.rate }

// SetRate selects a rate preset by index.
func (d *Dialog) SetRate(i int) error {
	if i < 0 || i >= len(RatePresets) {
		return fmt.Errorf("%w: no rate preset %d", recorder.ErrInvalidInput, i)
	}
	d.rate = i
	d.rec.SetSampleInterval(rateIntervals[i])
	return nil
}

// Recording reports whether samples are being taken.
func (d *Dialog) Recording() bool { return !d.rec.Paused() }

// StartStop toggles recording and returns the new state.
func (d *Dialog) StartStop() bool {
	return !d.rec.TogglePause()
}

// Reset clears every graph.
func (d *Dialog) Reset() {
	d.rec.Purge()
	d.logger.Info("Graphs reset")
}

// Vessels lists the vessels that can be followed.
func (d *Dialog) Vessels() []string {
	if d.loc == nil {
		return []string{d.rec.Vessel()}
	}
	return d.loc.Vessels()
}

// SelectVessel moves the recorder to another vessel and clears the graphs.
func (d *Dialog) SelectVessel(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == d.rec.Vessel() {
		return nil
	}
	known := false
	for _, v := range d.Vessels() {
		if v == name {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("%w: no vessel %q", recorder.ErrInvalidInput, name)
	}
	f, ok := d.client.(sim.Focuser)
	if !ok {
		return ErrNoFocus
	}
	if err := f.SetFocus(name); err != nil {
		return err
	}
	if err := d.rec.Open(ctx, d.client); err != nil {
		return err
	}
	d.logger.Info("Vessel selected", "vessel", name)
	return nil
}

// Targets lists the range targets on the current reference body: bases,
// then vessels, then stations.
func (d *Dialog) Targets() []string {
	if d.loc == nil {
		return nil
	}
	return sim.TargetNames(d.loc, d.rec.Body().Name)
}

// SelectTarget sets the range target by name.
func (d *Dialog) SelectTarget(name string) error {
	return d.rec.SelectTarget(name)
}

// SetLogPath takes a full path to the log file, as a file chooser would
// return it.
func (d *Dialog) SetLogPath(text string) error {
	path := logfile.StripQuotes(strings.TrimSpace(text))
	if path == "" {
		return fmt.Errorf("%w: empty log path", recorder.ErrInvalidInput)
	}
	if dir := filepath.Dir(path); dir != "." || strings.ContainsRune(path, filepath.Separator) {
		if err := d.rec.SetLogDir(dir); err != nil {
			return err
		}
	}
	return d.rec.SetLogFile(filepath.Base(path))
}
