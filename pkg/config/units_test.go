package config

import (
	"errors"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"10s", 10 * time.Second, false},
		{"1m", 1 * time.Minute, false},
		{"1.5h", 90 * time.Minute, false},
		{"1d", 24 * time.Hour, false},
		{"1w", 168 * time.Hour, false},
		{"2d2h", 50 * time.Hour, false},
		{"100ms", 100 * time.Millisecond, false},
		{"", 0, false},
		{"invalid", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseDuration(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDuration(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseDuration(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestParseSampleInterval(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"1", time.Second, false},
		{"10", 100 * time.Millisecond, false},
		{"0.1", 10 * time.Second, false},
		{"0.01", 100 * time.Second, false},
		{"10hz", 100 * time.Millisecond, false},
		{" 2 Hz ", 500 * time.Millisecond, false},
		{"0.5s", 500 * time.Millisecond, false},
		{"250ms", 250 * time.Millisecond, false},
		{"1m", time.Minute, false},
		{"100", 10 * time.Millisecond, false},
		{"1000", 0, true},
		{"5ms", 0, true},
		{"0", 0, true},
		{"-1", 0, true},
		{"hz", 0, true},
		{"fast", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSampleInterval(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidRate) {
					t.Fatalf("ParseSampleInterval(%q) error = %v, want ErrInvalidRate", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSampleInterval(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseSampleInterval(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestYAMLDuration(t *testing.T) {
	type testConfig struct {
		Time Duration `yaml:"time"`
	}

	var cfg testConfig
	if err := yaml.Unmarshal([]byte("time: 2d\n"), &cfg); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if time.Duration(cfg.Time) != 48*time.Hour {
		t.Errorf("Expected 48h, got %v", time.Duration(cfg.Time))
	}

	out, err := yaml.Marshal(testConfig{Time: Duration(1500 * time.Millisecond)})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(out) != "time: 1.5s\n" {
		t.Errorf("Marshal = %q", out)
	}
	if cfg.Time.Seconds() != 172800 {
		t.Errorf("Seconds() = %v", cfg.Time.Seconds())
	}
}
