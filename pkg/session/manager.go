package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"flightrec/pkg/store"
)

// ErrNoSession is returned when no recording session is open.
var ErrNoSession = errors.New("no open session")

// Manager tracks the recording session of one recorder instance and keeps
// its row in the session store current.
type Manager struct {
	mu      sync.RWMutex
	store   store.SessionStore
	current *store.Session
	now     func() time.Time
}

// NewManager creates a new session manager.
func NewManager(st store.SessionStore) *Manager {
	return &Manager{store: st, now: time.Now}
}

// Begin opens a session, ending any session still open.
func (m *Manager) Begin(ctx context.Context, variant, vessel, target, logPath string) (store.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil {
		if err := m.endLocked(ctx, m.current.Samples); err != nil {
			return store.Session{}, err
		}
	}
	s := &store.Session{
		Variant:   variant,
		Vessel:    vessel,
		Target:    target,
		LogPath:   logPath,
		StartedAt: m.now(),
	}
	if err := m.store.StartSession(ctx, s); err != nil {
		return store.Session{}, err
	}
	m.current = s
	return *s, nil
}

// Update records progress. The store is only written when something changed.
func (m *Manager) Update(ctx context.Context, samples int, target, logPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.current
	if s == nil {
		return ErrNoSession
	}
	if s.Samples == samples && s.Target == target && s.LogPath == logPath {
		return nil
	}
	s.Samples, s.Target, s.LogPath = samples, target, logPath
	return m.store.UpdateSession(ctx, s)
}

// End closes the open session with its final sample count.
func (m *Manager) End(ctx context.Context, samples int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return ErrNoSession
	}
	return m.endLocked(ctx, samples)
}

func (m *Manager) endLocked(ctx context.Context, samples int) error {
	at := m.now()
	if err := m.store.EndSession(ctx, m.current.ID, samples, at); err != nil {
		return err
	}
	m.current = nil
	return nil
}

// Current returns the open session.
func (m *Manager) Current() (store.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return store.Session{}, false
	}
	return *m.current, true
}
