package mocksim

import (
	"context"
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/paulmach/orb"

	"flightrec/pkg/geo"
	"flightrec/pkg/kinematics"
	"flightrec/pkg/sim"
)

// Earth as the host models it.
var Earth = sim.Body{Name: "Earth", Mass: 5.973698968e24, Radius: 6.37101e6}

// Orbit places a station on a circular equatorial orbit.
type Orbit struct {
	Lon      float64 // degrees at sim time 0
	Altitude float64 // m
}

// Config describes the simulated world and the focus vessel's flight.
// Positions are {longitude, latitude} in degrees.
type Config struct {
	Vessel   string
	Body     sim.Body
	Start    orb.Point
	Heading  float64 // degrees true
	Bases    map[string]orb.Point
	Vessels  map[string]orb.Point
	Stations map[string]Orbit
	// Script is flown once; the vessel coasts after the last step.
	// Nil selects DefaultScript.
	Script []Step
}

// DefaultConfig returns a launch from the Cape heading east.
func DefaultConfig() Config {
	return Config{
		Vessel:  "GL-01",
		Body:    Earth,
		Start:   orb.Point{-80.675, 28.52},
		Heading: 90,
		Bases: map[string]orb.Point{
			"Cape Canaveral": {-80.675, 28.52},
			"Habana":         {-82.38, 23.13},
			"Wideawake":      {-14.39, -7.97},
		},
		Vessels: map[string]orb.Point{
			"GL-02": {-82.38, 23.13},
		},
		Stations: map[string]Orbit{
			"ISS": {Lon: -60, Altitude: 400e3},
		},
	}
}

// MockClient implements sim.Client and sim.Locator with a deterministic
// point-mass flight. The host advances it explicitly with Advance.
type MockClient struct {
	mu     sync.Mutex
	cfg    Config
	closed bool
	f      flight
	// focus names a parked vessel snapshots describe instead of the flight.
	focus string
}

// NewClient creates a new mock simulator client on the pad.
func NewClient(cfg Config) *MockClient {
	if cfg.Body.Radius <= 0 {
		cfg.Body = Earth
	}
	if cfg.Vessel == "" {
		cfg.Vessel = "GL-01"
	}
	if cfg.Script == nil {
		cfg.Script = DefaultScript()
	}
	m := &MockClient{cfg: cfg}
	m.f = newFlight(cfg)
	return m
}

// Advance integrates the flight forward by dt seconds of sim time.
func (m *MockClient) Advance(dt float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed || dt <= 0 {
		return
	}
	m.f.advance(dt)
}

// SimTime returns the current sim time in seconds.
func (m *MockClient) SimTime() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.f.simt
}

// GetSnapshot returns the current state of the focus vessel.
func (m *MockClient) GetSnapshot(ctx context.Context) (sim.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return sim.Snapshot{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return sim.Snapshot{}, sim.ErrNotConnected
	}
	if m.focus != "" {
		return m.parked(m.focus), nil
	}
	return m.f.snapshot(), nil
}

// SetFocus moves the focus to another vessel. Vessels other than the flying
// one are parked on the surface.
func (m *MockClient) SetFocus(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if name == m.cfg.Vessel {
		m.focus = ""
		return nil
	}
	if _, ok := m.cfg.Vessels[name]; !ok {
		return fmt.Errorf("%w: no vessel %q", sim.ErrUnknownTarget, name)
	}
	m.focus = name
	return nil
}

// parked describes a vessel at rest on the surface.
func (m *MockClient) parked(name string) sim.Snapshot {
	equ := geo.Radians(m.cfg.Vessels[name])
	r := m.f.body.Radius
	atm := atmosphereAt(0)
	pos := kinematics.Vec3{
		X: r * math.Cos(equ.Lat()) * math.Cos(equ.Lon()),
		Y: r * math.Cos(equ.Lat()) * math.Sin(equ.Lon()),
		Z: r * math.Sin(equ.Lat()),
	}
	return sim.Snapshot{
		SimTime: m.f.simt,
		Vessel:  name,
		Body:    m.f.body,
		RelPos:  pos,
		Equ:     equ,
		Atm:     atm,
		Mass:    dryMass,
	}
}

// GetState returns the current simulator connection/activity state.
func (m *MockClient) GetState() sim.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return sim.StateDisconnected
	}
	return sim.StateActive
}

// Close disconnects the client. Later snapshots fail with ErrNotConnected.
func (m *MockClient) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Base finds a surface base. All configured bases sit on the vessel's body.
func (m *MockClient) Base(body, name string) (sim.Target, bool) {
	if body != m.cfg.Body.Name {
		return sim.Target{}, false
	}
	p, ok := m.cfg.Bases[name]
	if !ok {
		return sim.Target{}, false
	}
	return sim.Target{Name: name, Kind: sim.TargetBase, Pos: geo.Radians(p)}, true
}

// Vessel finds a vessel, including the focus vessel itself.
func (m *MockClient) Vessel(name string) (sim.Target, bool) {
	t := sim.Target{Name: name, Kind: sim.TargetVessel}
	if name == m.cfg.Vessel {
		m.mu.Lock()
		t.Pos = m.f.equ
		m.mu.Unlock()
		return t, true
	}
	p, ok := m.cfg.Vessels[name]
	if !ok {
		return sim.Target{}, false
	}
	t.Pos = geo.Radians(p)
	return t, true
}

// Station finds an orbiting station at the current sim time.
func (m *MockClient) Station(name string) (sim.Target, bool) {
	o, ok := m.cfg.Stations[name]
	if !ok {
		return sim.Target{}, false
	}
	m.mu.Lock()
	simt := m.f.simt
	m.mu.Unlock()
	return sim.Target{Name: name, Kind: sim.TargetStation, Pos: m.stationPos(o, simt)}, true
}

// Position re-reads a target's surface position.
func (m *MockClient) Position(t sim.Target) (orb.Point, bool) {
	var (
		nt sim.Target
		ok bool
	)
	switch t.Kind {
	case sim.TargetBase:
		nt, ok = m.Base(m.cfg.Body.Name, t.Name)
	case sim.TargetVessel:
		nt, ok = m.Vessel(t.Name)
	case sim.TargetStation:
		nt, ok = m.Station(t.Name)
	}
	return nt.Pos, ok
}

// Vessels lists every vessel name, sorted, the focus vessel included.
func (m *MockClient) Vessels() []string {
	names := []string{m.cfg.Vessel}
	for n := range m.cfg.Vessels {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

func (m *MockClient) stationPos(o Orbit, simt float64) orb.Point {
	b := m.cfg.Body
	r := b.Radius + o.Altitude
	omega := geo.CircularOrbitSpeed(b.Mass, b.Radius, o.Altitude) / r
	lon := o.Lon*math.Pi/180 + omega*simt
	return orb.Point{geo.NormalizeLon(lon), 0}
}

var _ sim.Client = (*MockClient)(nil)
var _ sim.Locator = (*MockClient)(nil)

// planeVectors lays a polar state (r, θ, vrad, vtan) into the orbital plane.
func planeVectors(r, theta, vrad, vtan float64) (pos, vel kinematics.Vec3) {
	c, s := math.Cos(theta), math.Sin(theta)
	pos = kinematics.Vec3{X: r * c, Y: r * s}
	vel = kinematics.Vec3{X: vrad*c - vtan*s, Y: vrad*s + vtan*c}
	return pos, vel
}

// Bases lists the bases on body, sorted.
func (m *MockClient) Bases(body string) []string {
	if body != m.cfg.Body.Name {
		return nil
	}
	names := make([]string, 0, len(m.cfg.Bases))
	for n := range m.cfg.Bases {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Stations lists the stations, sorted.
func (m *MockClient) Stations() []string {
	names := make([]string, 0, len(m.cfg.Stations))
	for n := range m.cfg.Stations {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
