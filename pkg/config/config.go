package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Recorder variants.
const (
	VariantMFD    = "mfd"
	VariantDialog = "dialog"
)

// Config holds the application configuration.
type Config struct {
	Log      LogConfig      `yaml:"log"`
	DB       DBConfig       `yaml:"db"`
	Sim      SimConfig      `yaml:"sim"`
	Recorder RecorderConfig `yaml:"recorder"`
	Display  DisplayConfig  `yaml:"display"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	App LogSettings `yaml:"app"`
}

// LogSettings holds settings for a specific logger.
type LogSettings struct {
	Path       string `yaml:"path"`
	Level      string `yaml:"level"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	// Trace adds a DEBUG record for every sample taken.
	Trace bool `yaml:"trace"`
}

// DBConfig holds database settings.
type DBConfig struct {
	Path string `yaml:"path"`
	// SessionRetention is how long finished recording sessions are kept.
	// Zero keeps them forever.
	SessionRetention Duration `yaml:"session_retention"`
}

// SimConfig holds settings for the simulation host.
type SimConfig struct {
	Provider string `yaml:"provider"` // "mock"
	// StepInterval is the wall time between host simulation steps.
	StepInterval Duration `yaml:"step_interval"`
	// TimeAccel multiplies sim time per step.
	TimeAccel float64       `yaml:"time_accel"`
	Mock      MockSimConfig `yaml:"mock"`
}

// MockSimConfig holds settings for the mock simulation.
type MockSimConfig struct {
	Vessel       string  `yaml:"vessel"`
	StartLat     float64 `yaml:"start_lat"`
	StartLon     float64 `yaml:"start_lon"`
	StartHeading float64 `yaml:"start_heading"`
	// World names a YAML file of bases, vessels and stations. Empty uses
	// the built-in world.
	World string `yaml:"world"`
}

// RecorderConfig holds settings for the recorder instance.
type RecorderConfig struct {
	Variant        string   `yaml:"variant"`
	Capacity       int      `yaml:"capacity"`
	SampleInterval Duration `yaml:"sample_interval"`
	MinAltitude    float64  `yaml:"min_altitude_m"`
	ConfigFile     string   `yaml:"config_file"`
	LogDir         string   `yaml:"log_dir"`
}

// DisplayConfig holds terminal view settings.
type DisplayConfig struct {
	FrameInterval Duration `yaml:"frame_interval"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			App: LogSettings{
				Path:       "./logs/flightrec.log",
				Level:      "INFO",
				MaxSizeMB:  10,
				MaxBackups: 3,
			},
		},
		DB: DBConfig{
			Path:             "./data/flightrec.db",
			SessionRetention: Duration(30 * 24 * time.Hour),
		},
		Sim: SimConfig{
			Provider:     "mock",
			StepInterval: Duration(20 * time.Millisecond),
			TimeAccel:    1,
			Mock: MockSimConfig{
				Vessel:       "GL-01",
				StartLat:     28.52,
				StartLon:     -80.675,
				StartHeading: 90,
			},
		},
		Recorder: RecorderConfig{
			Variant:        VariantMFD,
			Capacity:       600,
			SampleInterval: Duration(1 * time.Second),
			MinAltitude:    3,
			ConfigFile:     "./data/FDRMFD.cfg",
			LogDir:         "./data/flightlogs",
		},
		Display: DisplayConfig{
			FrameInterval: Duration(100 * time.Millisecond),
		},
	}
}

// Load loads the configuration from the given path.
// If the file does not exist, it creates it with default values.
// If the file exists, it merges defaults with existing values but does NOT save back to disk.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}

		// Fallbacks from the environment; never written back.
		if cfg.Recorder.LogDir == "" {
			cfg.Recorder.LogDir = os.Getenv("FLIGHTREC_LOG_DIR")
		}
		for _, p := range []*string{
			&cfg.Log.App.Path,
			&cfg.DB.Path,
			&cfg.Sim.Mock.World,
			&cfg.Recorder.ConfigFile,
			&cfg.Recorder.LogDir,
		} {
			*p = expandPath(*p)
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	if err := Save(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to save config file: %w", err)
	}
	return cfg, nil
}

var windowsEnvVar = regexp.MustCompile(`%([A-Za-z_][A-Za-z0-9_]*)%`)

// expandPath resolves $VAR, ${VAR} and %VAR% references.
func expandPath(p string) string {
	p = windowsEnvVar.ReplaceAllStringFunc(p, func(m string) string {
		return os.Getenv(m[1 : len(m)-1])
	})
	return os.ExpandEnv(p)
}

// Validate rejects settings the recorder cannot run with.
func (c *Config) Validate() error {
	switch c.Recorder.Variant {
	case VariantMFD, VariantDialog:
	default:
		return fmt.Errorf("invalid recorder variant '%s': must be '%s' or '%s'", c.Recorder.Variant, VariantMFD, VariantDialog)
	}
	if c.Recorder.Capacity < 1 {
		return fmt.Errorf("invalid recorder capacity %d: must be at least 1", c.Recorder.Capacity)
	}
	if c.Recorder.SampleInterval <= 0 {
		return fmt.Errorf("invalid sample_interval %s: must be positive", time.Duration(c.Recorder.SampleInterval))
	}
	return nil
}

// Save writes the configuration to the path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# flightrec Configuration
# ----------------------
# Supported Units:
#   Duration: ns, us (or µs), ms, s, m, h, d (day), w (week)

`)
	data = append(header, data...)

	reVariant := regexp.MustCompile(`(?m)^(\s+)variant:`)
	data = reVariant.ReplaceAll(data, []byte("${1}# Options: mfd, dialog\n${1}variant:"))

	reProvider := regexp.MustCompile(`(?m)^(\s+)provider:`)
	data = reProvider.ReplaceAll(data, []byte("${1}# Options: mock\n${1}provider:"))

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GenerateDefault creates a default config file at the given path.
// Returns nil if the file already exists.
func GenerateDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return Save(path, DefaultConfig())
}
