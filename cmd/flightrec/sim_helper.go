package main

import (
	"fmt"
	"log/slog"

	"github.com/paulmach/orb"

	"flightrec/pkg/config"
	"flightrec/pkg/sim"
	"flightrec/pkg/sim/mocksim"
)

func initializeSimClient(cfg *config.Config) (sim.Client, error) {
	switch cfg.Sim.Provider {
	case "", "mock":
	default:
		return nil, fmt.Errorf("unknown sim provider %q", cfg.Sim.Provider)
	}

	mc := mocksim.DefaultConfig()
	mock := cfg.Sim.Mock
	if mock.Vessel != "" {
		mc.Vessel = mock.Vessel
	}
	if mock.StartLat != 0 || mock.StartLon != 0 {
		mc.Start = orb.Point{mock.StartLon, mock.StartLat}
	}
	mc.Heading = mock.StartHeading

	if mock.World != "" {
		w, err := config.LoadWorld(mock.World)
		if err != nil {
			return nil, err
		}
		applyWorld(&mc, w)
		slog.Info("Sim Source: Mock", "world", mock.World, "body", mc.Body.Name)
	} else {
		slog.Info("Sim Source: Mock", "body", mc.Body.Name)
	}
	return mocksim.NewClient(mc), nil
}

// applyWorld replaces the built-in world with the loaded one. Sections the
// file leaves out keep their defaults.
func applyWorld(mc *mocksim.Config, w *config.WorldConfig) {
	if w.Body.Name != "" {
		mc.Body = sim.Body{Name: w.Body.Name, Mass: w.Body.Mass, Radius: w.Body.Radius}
	}
	if w.Bases != nil {
		mc.Bases = make(map[string]orb.Point, len(w.Bases))
		for name, p := range w.Bases {
			mc.Bases[name] = orb.Point{p.Lon, p.Lat}
		}
	}
	if w.Vessels != nil {
		mc.Vessels = make(map[string]orb.Point, len(w.Vessels))
		for name, p := range w.Vessels {
			mc.Vessels[name] = orb.Point{p.Lon, p.Lat}
		}
	}
	if w.Stations != nil {
		mc.Stations = make(map[string]mocksim.Orbit, len(w.Stations))
		for name, o := range w.Stations {
			mc.Stations[name] = mocksim.Orbit{Lon: o.Lon, Altitude: o.Altitude}
		}
	}
}
