package maintenance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"flightrec/pkg/db"
	"flightrec/pkg/store"
)

const lastPruneStateKey = "maintenance_last_prune"

// pruneEvery bounds how often the session table is pruned.
const pruneEvery = 24 * time.Hour

// Run executes all maintenance tasks: closing sessions left open by an
// unclean exit, then pruning old sessions.
// It blocks until completion.
func Run(ctx context.Context, s store.Store, d *db.DB, retention time.Duration) error {
	slog.Info("Starting database maintenance...")

	n, err := s.CloseOpenSessions(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("failed to close stale sessions: %w", err)
	}
	if n > 0 {
		slog.Warn("Closed sessions left open by a previous run", "count", n)
	}

	if err := pruneSessions(ctx, s, d, retention, time.Now()); err != nil {
		slog.Error("Session pruning failed", "error", err)
	}
	return nil
}

// pruneSessions removes old sessions, at most once per pruneEvery.
func pruneSessions(ctx context.Context, s store.StateStore, d *db.DB, retention time.Duration, now time.Time) error {
	if retention <= 0 {
		return nil
	}
	if last, ok := s.GetState(ctx, lastPruneStateKey); ok {
		if t, err := time.Parse(time.RFC3339, last); err == nil && now.Sub(t) < pruneEvery {
			return nil
		}
	}

	removed, err := d.PruneSessions(retention)
	if err != nil {
		return err
	}
	slog.Info("Session pruning completed", "removed", removed)
	return s.SetState(ctx, lastPruneStateKey, now.UTC().Format(time.RFC3339))
}
