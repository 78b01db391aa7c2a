package core

import (
	"context"
	"log/slog"
	"time"

	"flightrec/pkg/sim"
)

// Advancer is implemented by hosts whose simulation is stepped by the
// recorder's process rather than running on its own.
type Advancer interface {
	Advance(dt float64)
}

// Sampler is the per-step sampling hook, recorder.Recorder in production.
type Sampler interface {
	Step(ctx context.Context, client sim.Client, simt, syst float64) (bool, error)
}

// Scheduler manages the central heartbeat: it steps the host, feeds the
// sampler and evaluates jobs, all on the calling goroutine.
type Scheduler struct {
	sim      sim.Client
	sampler  Sampler
	interval time.Duration
	accel    float64
	jobs     []Job

	resettables []SessionResettable
	lastSimT    float64
	lastVessel  string
	haveLast    bool

	start time.Time
	now   func() time.Time
}

// NewScheduler creates a new Scheduler. interval is the wall time between
// ticks and accel the sim seconds advanced per wall second.
func NewScheduler(simClient sim.Client, sampler Sampler, interval time.Duration, accel float64) *Scheduler {
	if interval <= 0 {
		interval = 20 * time.Millisecond
	}
	if accel <= 0 {
		accel = 1
	}
	s := &Scheduler{
		sim:      simClient,
		sampler:  sampler,
		interval: interval,
		accel:    accel,
		now:      time.Now,
	}
	s.start = s.now()
	return s
}

// Interval returns the wall time between ticks.
func (s *Scheduler) Interval() time.Duration { return s.interval }

// AddJob registers a job.
func (s *Scheduler) AddJob(j Job) {
	s.jobs = append(s.jobs, j)
}

// AddResettable registers a component to reset when a new flight starts.
func (s *Scheduler) AddResettable(r SessionResettable) {
	s.resettables = append(s.resettables, r)
}

// Start runs the main loop. It blocks until context is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.Info("Scheduler started", "interval", s.interval, "time_accel", s.accel)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Scheduler stopped")
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick runs one heartbeat and reports whether a sample was taken.
func (s *Scheduler) Tick(ctx context.Context) bool {
	// 0. Step the host
	if a, ok := s.sim.(Advancer); ok {
		a.Advance(s.interval.Seconds() * s.accel)
	}

	// Skip sampling if not active
	if !s.sim.GetState().Sampling() {
		return false
	}

	// 1. Fetch Snapshot
	snap, err := s.sim.GetSnapshot(ctx)
	if err != nil {
		slog.Debug("failed to read vessel state", "error", err)
		return false
	}

	// 2. New flight detection
	if s.haveLast && (snap.SimTime < s.lastSimT || snap.Vessel != s.lastVessel) {
		slog.Info("New flight detected", "vessel", snap.Vessel, "simt", snap.SimTime)
		for _, r := range s.resettables {
			r.ResetSession(ctx)
		}
	}
	s.lastSimT, s.lastVessel, s.haveLast = snap.SimTime, snap.Vessel, true

	// 3. Sample
	took, err := s.sampler.Step(ctx, s.sim, snap.SimTime, s.now().Sub(s.start).Seconds())
	if err != nil {
		slog.Debug("Sample skipped", "error", err)
	}

	// 4. Evaluate Jobs
	for _, job := range s.jobs {
		if job.ShouldFire(&snap) {
			job.Run(ctx, &snap)
		}
	}
	return took
}
