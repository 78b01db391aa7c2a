package db_test

import (
	"path/filepath"
	"testing"
	"time"

	"flightrec/pkg/db"
)

func TestDB(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "nested", "db_test.db")

	d, err := db.Init(path)
	if err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if d == nil {
		t.Fatal("Init() returned nil DB")
	}
	d.Close()

	// Migrations are idempotent.
	d, err = db.Init(path)
	if err != nil {
		t.Fatalf("second Init() failed: %v", err)
	}
	defer d.Close()

	var n int
	if err := d.QueryRow("SELECT count(*) FROM pragma_table_info('recording_sessions') WHERE name='target'").Scan(&n); err != nil {
		t.Fatalf("pragma query failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected target column, got count %d", n)
	}
}

func TestPruneSessions(t *testing.T) {
	d, err := db.Init(filepath.Join(t.TempDir(), "prune.db"))
	if err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	defer d.Close()

	old := time.Now().Add(-48 * time.Hour).UTC().Format(db.TimeLayout)
	recent := time.Now().UTC().Format(db.TimeLayout)
	rows := []struct {
		id, started string
		ended       any
	}{
		{"old-done", old, old},
		{"old-open", old, nil},
		{"new-done", recent, recent},
	}
	for _, r := range rows {
		if _, err := d.Exec(`INSERT INTO recording_sessions (id, variant, started_at, ended_at) VALUES (?, 'mfd', ?, ?)`, r.id, r.started, r.ended); err != nil {
			t.Fatalf("insert %s: %v", r.id, err)
		}
	}

	n, err := d.PruneSessions(24 * time.Hour)
	if err != nil {
		t.Fatalf("PruneSessions() failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 pruned row, got %d", n)
	}

	var left int
	if err := d.QueryRow("SELECT count(*) FROM recording_sessions").Scan(&left); err != nil {
		t.Fatal(err)
	}
	if left != 2 {
		t.Errorf("expected 2 remaining sessions, got %d", left)
	}
}
