package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"flightrec/pkg/db"
)

// SQLiteStore implements Store.
type SQLiteStore struct {
	db *db.DB
}

// NewSQLiteStore creates a new store.
func NewSQLiteStore(db *db.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// --- State ---

func (s *SQLiteStore) GetState(ctx context.Context, key string) (string, bool) {
	var val sql.NullString
	err := s.db.QueryRowContext(ctx, "SELECT value FROM persistent_state WHERE key = ?", key).Scan(&val)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Warn("Store: state lookup failed", "key", key, "error", err)
		}
		return "", false
	}
	return val.String, true
}

func (s *SQLiteStore) SetState(ctx context.Context, key, val string) error {
	query := `INSERT OR REPLACE INTO persistent_state (key, value, created_at) VALUES (?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query, key, val, time.Now().UTC().Format(db.TimeLayout))
	return err
}

func (s *SQLiteStore) DeleteState(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM persistent_state WHERE key = ?", key)
	return err
}

// --- Sessions ---

func (s *SQLiteStore) StartSession(ctx context.Context, sess *Session) error {
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	if sess.StartedAt.IsZero() {
		sess.StartedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO recording_sessions (id, variant, vessel, target, log_path, started_at, samples)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.Variant, sess.Vessel, sess.Target, sess.LogPath,
		formatTime(sess.StartedAt), sess.Samples)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) UpdateSession(ctx context.Context, sess *Session) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE recording_sessions SET target = ?, log_path = ?, samples = ? WHERE id = ?`,
		sess.Target, sess.LogPath, sess.Samples, sess.ID)
	return err
}

func (s *SQLiteStore) EndSession(ctx context.Context, id string, samples int, at time.Time) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE recording_sessions SET ended_at = ?, samples = ? WHERE id = ?`,
		formatTime(at), samples, id)
	if err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("end session %s: %w", id, sql.ErrNoRows)
	}
	return nil
}

func (s *SQLiteStore) ListSessions(ctx context.Context, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, variant, vessel, target, log_path, started_at, ended_at, samples
		 FROM recording_sessions ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var sess Session
		var vessel, target, logPath, ended sql.NullString
		var started string
		if err := rows.Scan(&sess.ID, &sess.Variant, &vessel, &target, &logPath, &started, &ended, &sess.Samples); err != nil {
			return nil, err
		}
		sess.Vessel, sess.Target, sess.LogPath = vessel.String, target.String, logPath.String
		sess.StartedAt = parseTime(started)
		if ended.Valid {
			sess.EndedAt = parseTime(ended.String)
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) CloseOpenSessions(ctx context.Context, at time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE recording_sessions SET ended_at = ? WHERE ended_at IS NULL`, formatTime(at))
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func formatTime(t time.Time) string {
	return t.UTC().Format(db.TimeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(db.TimeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
