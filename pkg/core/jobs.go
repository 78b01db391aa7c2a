package core

import (
	"context"
	"sync/atomic"
	"time"

	"flightrec/pkg/sim"
)

// Job defines a scheduled task.
type Job interface {
	Name() string
	ShouldFire(s *sim.Snapshot) bool
	Run(ctx context.Context, s *sim.Snapshot)
}

// BaseJob provides atomic running state to prevent re-entry.
type BaseJob struct {
	name    string
	running int32 // 1 if running, 0 otherwise
}

func NewBaseJob(name string) BaseJob {
	return BaseJob{name: name}
}

func (b *BaseJob) Name() string {
	return b.name
}

// TryLock attempts to set running to 1. Returns true if successful.
func (b *BaseJob) TryLock() bool {
	return atomic.CompareAndSwapInt32(&b.running, 0, 1)
}

func (b *BaseJob) Unlock() {
	atomic.StoreInt32(&b.running, 0)
}

// TimeJob fires when wall time elapsed exceeds threshold.
type TimeJob struct {
	BaseJob
	lastTime  time.Time
	threshold time.Duration
	action    func(context.Context, sim.Snapshot)
	firstRun  bool
	now       func() time.Time
}

func NewTimeJob(name string, threshold time.Duration, action func(context.Context, sim.Snapshot)) *TimeJob {
	return &TimeJob{
		BaseJob:   NewBaseJob(name),
		threshold: threshold,
		action:    action,
		firstRun:  true,
		now:       time.Now,
	}
}

func (j *TimeJob) ShouldFire(s *sim.Snapshot) bool {
	if atomic.LoadInt32(&j.running) == 1 {
		return false
	}

	if j.firstRun {
		return true
	}

	return j.now().Sub(j.lastTime) >= j.threshold
}

func (j *TimeJob) Run(ctx context.Context, s *sim.Snapshot) {
	if !j.TryLock() {
		return
	}
	defer j.Unlock()

	j.lastTime = j.now()
	j.firstRun = false

	j.action(ctx, *s)
}

// SimTimeJob fires every threshold seconds of simulation time, so it
// follows time acceleration.
type SimTimeJob struct {
	BaseJob
	last      float64
	threshold float64
	action    func(context.Context, sim.Snapshot)
	firstRun  bool
}

func NewSimTimeJob(name string, threshold time.Duration, action func(context.Context, sim.Snapshot)) *SimTimeJob {
	return &SimTimeJob{
		BaseJob:   NewBaseJob(name),
		threshold: threshold.Seconds(),
		action:    action,
		firstRun:  true,
	}
}

func (j *SimTimeJob) ShouldFire(s *sim.Snapshot) bool {
	if atomic.LoadInt32(&j.running) == 1 {
		return false
	}
	if j.firstRun || s.SimTime < j.last {
		return true
	}
	return s.SimTime-j.last >= j.threshold
}

func (j *SimTimeJob) Run(ctx context.Context, s *sim.Snapshot) {
	if !j.TryLock() {
		return
	}
	defer j.Unlock()

	j.last = s.SimTime
	j.firstRun = false

	j.action(ctx, *s)
}
