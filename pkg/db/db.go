package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Register driver
)

// TimeLayout is how timestamps are stored in TEXT columns. It sorts
// lexicographically in time order.
const TimeLayout = "2006-01-02 15:04:05"

// DB wraps the sql.DB connection.
type DB struct {
	*sql.DB
}

// Init opens the database and runs migrations.
func Init(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	// WAL lets the view read state while a session row is written.
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=30000;"); err != nil {
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	d := &DB{db}
	// Enforce single connection to avoid SQLITE_BUSY errors during concurrent writes
	db.SetMaxOpenConns(1)

	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return d, nil
}

// PruneSessions removes finished recording sessions that started more than
// olderThan ago. It returns the number of rows removed.
func (d *DB) PruneSessions(olderThan time.Duration) (int64, error) {
	deadline := time.Now().Add(-olderThan).UTC().Format(TimeLayout)
	res, err := d.Exec("DELETE FROM recording_sessions WHERE ended_at IS NOT NULL AND started_at < ?", deadline)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (d *DB) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS persistent_state (
			key TEXT PRIMARY KEY,
			value TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS recording_sessions (
			id TEXT PRIMARY KEY,
			variant TEXT NOT NULL,
			vessel TEXT,
			log_path TEXT,
			started_at TEXT NOT NULL,
			ended_at TEXT,
			samples INTEGER DEFAULT 0
		);`,
		`CREATE INDEX IF NOT EXISTS idx_recording_sessions_started
			ON recording_sessions (started_at);`,
	}

	for _, q := range queries {
		if _, err := d.Exec(q); err != nil {
			return fmt.Errorf("exec error: %w query: %s", err, q)
		}
	}

	// Migration: add target if missing (sessions written before it existed).
	var colCount int
	err := d.QueryRow("SELECT count(*) FROM pragma_table_info('recording_sessions') WHERE name='target'").Scan(&colCount)
	if err == nil && colCount == 0 {
		if _, err := d.Exec("ALTER TABLE recording_sessions ADD COLUMN target TEXT DEFAULT ''"); err != nil {
			return fmt.Errorf("failed to add target column: %w", err)
		}
	}

	return nil
}
