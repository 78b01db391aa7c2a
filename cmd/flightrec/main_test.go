package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"flightrec/pkg/config"
	"flightrec/pkg/sim/mocksim"
)

func writeTestConfig(t *testing.T, variant string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := `
log:
    app:
        path: "` + filepath.Join(dir, "flightrec.log") + `"
        level: "debug"
db:
    path: "` + filepath.Join(dir, "flightrec.db") + `"
sim:
    provider: mock
    step_interval: 10ms
    time_accel: 10
recorder:
    variant: ` + variant + `
    sample_interval: 1s
    config_file: "` + filepath.Join(dir, "FDRMFD.cfg") + `"
    log_dir: "` + filepath.Join(dir, "logs") + `"
`
	path := filepath.Join(dir, "flightrec.yaml")
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatalf("Failed to write temp config: %v", err)
	}
	return path, dir
}

func TestRun(t *testing.T) {
	path, dir := writeTestConfig(t, "mfd")

	// Create a context that outlives the headless run to verify a clean exit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx, path, options{headless: 300 * time.Millisecond}); err != nil {
		t.Fatalf("run() failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "logs", "flight-log-0000.dat")); err != nil {
		t.Errorf("sample log missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "FDRMFD.cfg")); err != nil {
		t.Errorf("recorder settings not saved: %v", err)
	}

	var out bytes.Buffer
	if err := listSessions(ctx, path, 5, &out); err != nil {
		t.Fatalf("listSessions() failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 session, got %d: %q", len(lines), out.String())
	}
	if !strings.Contains(lines[0], "mfd") || strings.Contains(lines[0], "recording") {
		t.Errorf("session not closed as mfd: %q", lines[0])
	}
}

func TestRun_DialogStartsStopped(t *testing.T) {
	path, dir := writeTestConfig(t, "dialog")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx, path, options{headless: 100 * time.Millisecond}); err != nil {
		t.Fatalf("run() failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "logs", "flight-log-0000.dat")); !os.IsNotExist(err) {
		t.Errorf("dialog recorded before being started: %v", err)
	}
}

func TestRun_BadVariantFlag(t *testing.T) {
	path, _ := writeTestConfig(t, "mfd")
	if err := run(context.Background(), path, options{variant: "hud", headless: time.Millisecond}); err == nil {
		t.Error("expected an error for an unknown variant")
	}
}

func TestInitializeSimClient(t *testing.T) {
	dir := t.TempDir()
	world := `
body:
    name: Mars
    mass_kg: 6.4185e23
    radius_m: 3.38992e6
bases:
    Olympus: {lon: -134, lat: 18.4}
stations:
    Phobos: {lon: 0, altitude_m: 5.98e6}
`
	wpath := filepath.Join(dir, "world.yaml")
	if err := os.WriteFile(wpath, []byte(world), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.DefaultConfig()
	cfg.Sim.Mock.World = wpath
	client, err := initializeSimClient(cfg)
	if err != nil {
		t.Fatalf("initializeSimClient() failed: %v", err)
	}
	defer client.Close()

	mc, ok := client.(*mocksim.MockClient)
	if !ok {
		t.Fatalf("expected a mock client, got %T", client)
	}
	if got := mc.Bases("Mars"); len(got) != 1 || got[0] != "Olympus" {
		t.Errorf("Bases(Mars) = %v", got)
	}
	if got := mc.Stations(); len(got) != 1 || got[0] != "Phobos" {
		t.Errorf("Stations() = %v", got)
	}
	// Vessels were not in the file and keep their defaults.
	if got := mc.Vessels(); len(got) < 2 {
		t.Errorf("Vessels() = %v, want the defaults", got)
	}

	cfg.Sim.Provider = "simconnect"
	if _, err := initializeSimClient(cfg); err == nil {
		t.Error("expected an error for an unknown provider")
	}
}
