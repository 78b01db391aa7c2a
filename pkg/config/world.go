package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LonLat is a surface position in degrees.
type LonLat struct {
	Lon float64 `yaml:"lon"`
	Lat float64 `yaml:"lat"`
}

// StationOrbit places a station on a circular equatorial orbit.
type StationOrbit struct {
	Lon      float64 `yaml:"lon"`        // degrees at sim time 0
	Altitude float64 `yaml:"altitude_m"` // above the mean radius
}

// BodyConfig describes the reference body.
type BodyConfig struct {
	Name   string  `yaml:"name"`
	Mass   float64 `yaml:"mass_kg"`
	Radius float64 `yaml:"radius_m"`
}

// WorldConfig lists what the mock host knows about: its body and the
// range targets on and around it.
type WorldConfig struct {
	Body     BodyConfig              `yaml:"body"`
	Bases    map[string]LonLat       `yaml:"bases"`
	Vessels  map[string]LonLat       `yaml:"vessels"`
	Stations map[string]StationOrbit `yaml:"stations"`
}

// LoadWorld loads a world description from a YAML file.
func LoadWorld(path string) (*WorldConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read world config: %w", err)
	}

	var w WorldConfig
	if err := yaml.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("failed to parse world config: %w", err)
	}
	if w.Body.Radius < 0 || w.Body.Mass < 0 {
		return nil, fmt.Errorf("invalid body %q: mass and radius must not be negative", w.Body.Name)
	}
	return &w, nil
}
