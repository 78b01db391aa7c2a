package store

import (
	"context"
	"time"
)

// Store defines the repository interface.
// It composes all sub-interfaces for full store access.
// Consumers should depend on specific sub-interfaces when possible.
type Store interface {
	StateStore
	SessionStore

	// Close closes the store connection.
	Close() error
}

// StateStore handles persistent key/value state such as view settings.
type StateStore interface {
	GetState(ctx context.Context, key string) (string, bool)
	SetState(ctx context.Context, key, val string) error
	DeleteState(ctx context.Context, key string) error
}

// SessionStore keeps a history of recording sessions.
type SessionStore interface {
	// StartSession opens a new session row and returns it with a fresh ID.
	StartSession(ctx context.Context, s *Session) error
	// UpdateSession stores the running sample count, target and log path.
	UpdateSession(ctx context.Context, s *Session) error
	// EndSession stamps the end time and final sample count.
	EndSession(ctx context.Context, id string, samples int, at time.Time) error
	// ListSessions returns up to limit sessions, newest first.
	ListSessions(ctx context.Context, limit int) ([]Session, error)
	// CloseOpenSessions ends every session that has no end time.
	CloseOpenSessions(ctx context.Context, at time.Time) (int, error)
}

// Session is one recorder run against a vessel.
type Session struct {
	ID        string
	Variant   string
	Vessel    string
	Target    string
	LogPath   string
	StartedAt time.Time
	EndedAt   time.Time // zero while recording
	Samples   int
}

// Open reports whether the session has not been ended.
func (s *Session) Open() bool { return s.EndedAt.IsZero() }
