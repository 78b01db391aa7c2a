package core

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"flightrec/pkg/session"
	"flightrec/pkg/sim"
)

// RecorderState is the part of the recorder the session job reports on.
type RecorderState interface {
	Samples() int
	Target() (sim.Target, bool)
	LogPath() string
	Vessel() string
}

// SessionPersistenceJob keeps the open recording session row current and
// opens a fresh one when the host starts a new flight. Session sample counts
// are relative to the recorder's count when the session began.
type SessionPersistenceJob struct {
	*TimeJob
	sessMgr *session.Manager
	rec     RecorderState
	variant string

	base     int
	boundary int
	restart  bool
}

// NewSessionPersistenceJob creates a job that saves progress every interval.
func NewSessionPersistenceJob(sm *session.Manager, rec RecorderState, variant string, every time.Duration) *SessionPersistenceJob {
	j := &SessionPersistenceJob{sessMgr: sm, rec: rec, variant: variant}
	j.TimeJob = NewTimeJob("SessionPersistence", every, func(ctx context.Context, _ sim.Snapshot) {
		j.save(ctx)
	})
	return j
}

// Begin opens the first session.
func (j *SessionPersistenceJob) Begin(ctx context.Context) error {
	j.base = j.rec.Samples()
	_, err := j.sessMgr.Begin(ctx, j.variant, j.rec.Vessel(), targetName(j.rec), j.rec.LogPath())
	return err
}

// Finish closes the open session with its final count.
func (j *SessionPersistenceJob) Finish(ctx context.Context) error {
	return j.sessMgr.End(ctx, j.rec.Samples()-j.base)
}

func (j *SessionPersistenceJob) save(ctx context.Context) {
	if j.restart {
		j.restart = false
		// Close out the previous flight with the count it had at the reset.
		if err := j.sessMgr.Update(ctx, j.boundary-j.base, targetName(j.rec), j.rec.LogPath()); err != nil && !errors.Is(err, session.ErrNoSession) {
			slog.Error("Persistence: Failed to save session", "error", err)
		}
		j.base = j.boundary
		if _, err := j.sessMgr.Begin(ctx, j.variant, j.rec.Vessel(), targetName(j.rec), j.rec.LogPath()); err != nil {
			slog.Error("Persistence: Failed to begin session", "error", err)
			return
		}
	}
	n := j.rec.Samples() - j.base
	if err := j.sessMgr.Update(ctx, n, targetName(j.rec), j.rec.LogPath()); err != nil {
		slog.Error("Persistence: Failed to save session", "error", err)
		return
	}
	slog.Debug("Persistence: Session saved", "samples", n)
}

// ResetSession marks the flight boundary. The next run ends the current
// session and begins another for whatever vessel the recorder then follows.
func (j *SessionPersistenceJob) ResetSession(ctx context.Context) {
	j.boundary = j.rec.Samples()
	j.restart = true
	j.firstRun = true
}

func targetName(rec RecorderState) string {
	if t, ok := rec.Target(); ok {
		return t.Name
	}
	return ""
}

// NewFlightTraceJob logs a one-line flight summary at debug level every
// interval of simulation time.
func NewFlightTraceJob(every time.Duration) *SimTimeJob {
	return NewSimTimeJob("FlightTrace", every, func(ctx context.Context, s sim.Snapshot) {
		slog.Debug("Flight",
			"vessel", s.Vessel,
			"simt", math.Round(s.SimTime),
			"alt_km", math.Round(s.Altitude)/1000,
			"speed", math.Round(s.RelVel.Norm()),
			"fuel", math.Round(s.PropellantMass),
		)
	})
}
