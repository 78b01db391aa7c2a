package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "flightrec.yaml")

	tests := []struct {
		name          string
		setup         func()
		validate      func(*testing.T, *Config)
		checkFile     func(*testing.T)
		expectedError bool
	}{
		{
			name:  "NewFile_Defaults",
			setup: func() {},
			validate: func(t *testing.T, cfg *Config) {
				if cfg.Recorder.Variant != VariantMFD {
					t.Errorf("expected default variant 'mfd', got '%s'", cfg.Recorder.Variant)
				}
				if cfg.Recorder.Capacity != 600 {
					t.Errorf("expected capacity 600, got %d", cfg.Recorder.Capacity)
				}
				if time.Duration(cfg.Recorder.SampleInterval) != time.Second {
					t.Errorf("expected 1s sample interval, got %v", time.Duration(cfg.Recorder.SampleInterval))
				}
			},
			checkFile: func(t *testing.T) {
				content, err := os.ReadFile(configPath)
				if err != nil {
					t.Fatalf("failed to read config file: %v", err)
				}
				if !strings.Contains(string(content), "variant: mfd") {
					t.Error("config file missing default values")
				}
				if !strings.Contains(string(content), "# Options: mfd, dialog") {
					t.Error("config file missing variant options comment")
				}
				if !strings.HasPrefix(string(content), "# flightrec Configuration") {
					t.Error("config file missing header")
				}
			},
		},
		{
			name: "ExistingFile_Override",
			setup: func() {
				err := os.WriteFile(configPath, []byte("recorder:\n  variant: dialog\n  sample_interval: 100ms\n"), 0o644)
				if err != nil {
					t.Fatalf("failed to setup test file: %v", err)
				}
			},
			validate: func(t *testing.T, cfg *Config) {
				if cfg.Recorder.Variant != VariantDialog {
					t.Errorf("expected variant 'dialog', got '%s'", cfg.Recorder.Variant)
				}
				if time.Duration(cfg.Recorder.SampleInterval) != 100*time.Millisecond {
					t.Errorf("expected 100ms, got %v", time.Duration(cfg.Recorder.SampleInterval))
				}
				if cfg.Recorder.Capacity != 600 {
					t.Errorf("unset keys should keep defaults, got capacity %d", cfg.Recorder.Capacity)
				}
			},
			checkFile: func(t *testing.T) {
				content, err := os.ReadFile(configPath)
				if err != nil {
					t.Fatalf("failed to read config file: %v", err)
				}
				if strings.Contains(string(content), "capacity") {
					t.Error("Load must not write defaults back into an existing file")
				}
			},
		},
		{
			name: "Path_Env_Expansion",
			setup: func() {
				t.Setenv("FLIGHTREC_HOME", "/home/pilot")
				t.Setenv("APP_DATA", "/app/data")
				err := os.WriteFile(configPath, []byte("db:\n  path: \"$FLIGHTREC_HOME/fr.db\"\nrecorder:\n  log_dir: \"%APP_DATA%/logs\"\n"), 0o644)
				if err != nil {
					t.Fatalf("failed to setup test file: %v", err)
				}
			},
			validate: func(t *testing.T, cfg *Config) {
				if cfg.DB.Path != "/home/pilot/fr.db" {
					t.Errorf("expected expanded DB path, got '%s'", cfg.DB.Path)
				}
				if cfg.Recorder.LogDir != "/app/data/logs" {
					t.Errorf("expected expanded log dir, got '%s'", cfg.Recorder.LogDir)
				}
			},
			checkFile: func(t *testing.T) {
				content, err := os.ReadFile(configPath)
				if err != nil {
					t.Fatalf("failed to read config file: %v", err)
				}
				if !strings.Contains(string(content), "$FLIGHTREC_HOME") {
					t.Error("config file should keep the raw $VAR path")
				}
			},
		},
		{
			name: "LogDir_Env_Fallback",
			setup: func() {
				t.Setenv("FLIGHTREC_LOG_DIR", "/var/flightlogs")
				err := os.WriteFile(configPath, []byte("recorder:\n  log_dir: \"\"\n"), 0o644)
				if err != nil {
					t.Fatalf("failed to setup test file: %v", err)
				}
			},
			validate: func(t *testing.T, cfg *Config) {
				if cfg.Recorder.LogDir != "/var/flightlogs" {
					t.Errorf("expected log dir from env, got '%s'", cfg.Recorder.LogDir)
				}
			},
			checkFile: func(t *testing.T) {},
		},
		{
			name: "Invalid_YAML",
			setup: func() {
				err := os.WriteFile(configPath, []byte("recorder: [not a map]"), 0o644)
				if err != nil {
					t.Fatalf("failed to setup test file: %v", err)
				}
			},
			expectedError: true,
		},
		{
			name: "Invalid_Variant",
			setup: func() {
				err := os.WriteFile(configPath, []byte("recorder:\n  variant: hud\n"), 0o644)
				if err != nil {
					t.Fatalf("failed to setup test file: %v", err)
				}
			},
			expectedError: true,
		},
		{
			name: "Invalid_Capacity",
			setup: func() {
				err := os.WriteFile(configPath, []byte("recorder:\n  capacity: 0\n"), 0o644)
				if err != nil {
					t.Fatalf("failed to setup test file: %v", err)
				}
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Remove(configPath)
			tt.setup()

			cfg, err := Load(configPath)
			if (err != nil) != tt.expectedError {
				t.Fatalf("Load() error = %v, expectedError %v", err, tt.expectedError)
			}
			if err == nil {
				tt.validate(t, cfg)
				tt.checkFile(t)
			}
		})
	}
}

func TestGenerateDefault(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "nested", "default_config.yaml")

	if err := GenerateDefault(configPath); err != nil {
		t.Fatalf("GenerateDefault() error = %v", err)
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("GenerateDefault() did not create file")
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() of generated default failed: %v", err)
	}
	if cfg.Sim.Provider != "mock" {
		t.Errorf("expected provider 'mock', got '%s'", cfg.Sim.Provider)
	}

	if err := GenerateDefault(configPath); err != nil {
		t.Errorf("GenerateDefault() error on second run = %v", err)
	}
}

func TestLoadWorld(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.yaml")
	data := `body:
  name: Moon
  mass_kg: 7.35e22
  radius_m: 1738000
bases:
  Brighton Beach: {lon: -33.44, lat: 41.12}
vessels:
  Lander: {lon: -33.5, lat: 41.1}
stations:
  Luna-OB1: {lon: 0, altitude_m: 100000}
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := LoadWorld(path)
	if err != nil {
		t.Fatalf("LoadWorld() error = %v", err)
	}
	if w.Body.Name != "Moon" || w.Body.Radius != 1738000 {
		t.Errorf("unexpected body %+v", w.Body)
	}
	if b, ok := w.Bases["Brighton Beach"]; !ok || b.Lat != 41.12 {
		t.Errorf("unexpected bases %+v", w.Bases)
	}
	if s := w.Stations["Luna-OB1"]; s.Altitude != 100000 {
		t.Errorf("unexpected station %+v", s)
	}

	if _, err := LoadWorld(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
