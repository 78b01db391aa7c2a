// Package probe runs the startup checks: host connection, log directory
// and recorder config file.
package probe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"flightrec/pkg/config"
	"flightrec/pkg/sim"
)

// CheckFunc is a function that performs a health check.
// It returns nil if the check passes, or an error if it fails.
type CheckFunc func(ctx context.Context) error

// Probe represents a single startup check.
type Probe struct {
	Name     string
	Check    CheckFunc
	Critical bool // If true, a failure here should prevent application startup.
}

// Result holds the outcome of a single probe.
type Result struct {
	Probe    Probe
	Error    error
	Duration time.Duration
}

// Status is PASS or FAIL.
func (r Result) Status() string {
	if r.Error != nil {
		return "FAIL"
	}
	return "PASS"
}

// Timeout bounds each check unless the context is already shorter.
const Timeout = 5 * time.Second

// Run executes a list of probes and returns their results.
func Run(ctx context.Context, probes []Probe) []Result {
	results := make([]Result, len(probes))

	for i, p := range probes {
		start := time.Now()
		pctx, cancel := context.WithTimeout(ctx, Timeout)
		err := p.Check(pctx)
		cancel()

		results[i] = Result{
			Probe:    p,
			Error:    err,
			Duration: time.Since(start),
		}
	}

	return results
}

// AnalyzeResults logs a summary line per probe and joins the errors of the
// critical probes that failed.
func AnalyzeResults(results []Result) error {
	var criticalErrors []error

	slog.Info("Startup Checks Summary")

	for _, r := range results {
		msg := fmt.Sprintf("[%s] %-20s (%v)", r.Status(), r.Probe.Name, r.Duration.Round(time.Millisecond))

		if r.Error != nil {
			slog.Error(msg, "error", r.Error)
			if r.Probe.Critical {
				criticalErrors = append(criticalErrors, fmt.Errorf("%s: %w", r.Probe.Name, r.Error))
			}
		} else {
			slog.Info(msg)
		}
	}

	return errors.Join(criticalErrors...)
}

// Simulator checks that the host answers with a snapshot.
func Simulator(client sim.Client) Probe {
	return Probe{
		Name:     "Simulator",
		Critical: true,
		Check: func(ctx context.Context) error {
			if client.GetState() == sim.StateDisconnected {
				return sim.ErrNotConnected
			}
			_, err := client.GetSnapshot(ctx)
			return err
		},
	}
}

// LogDir checks that sample logs can be created in dir. Logging failures
// never stop recording, so the probe is not critical.
func LogDir(dir string) Probe {
	return Probe{
		Name: "Log directory",
		Check: func(ctx context.Context) error {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
			f, err := os.CreateTemp(dir, ".probe-*")
			if err != nil {
				return err
			}
			name := f.Name()
			f.Close()
			return os.Remove(name)
		},
	}
}

// RecorderConfig checks that the recorder settings file parses.
func RecorderConfig(path string) Probe {
	return Probe{
		Name: "Recorder config",
		Check: func(ctx context.Context) error {
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return err
			}
			_, err := config.LoadRecorder(path, config.DefaultRecorderSettings())
			return err
		},
	}
}
