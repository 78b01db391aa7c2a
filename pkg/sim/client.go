package sim

import (
	"context"
	"errors"

	"github.com/paulmach/orb"

	"flightrec/pkg/kinematics"
)

var (
	// ErrNotConnected is returned when a client action requires a connection.
	ErrNotConnected = errors.New("simulator not connected")
	// ErrUnknownTarget is returned when a name matches no base, vessel or station.
	ErrUnknownTarget = errors.New("unknown range target")
)

// Client defines the interface for simulator interaction.
type Client interface {
	// GetSnapshot returns the focus vessel's state at the current step.
	GetSnapshot(ctx context.Context) (Snapshot, error)
	// GetState returns the current simulator connection/activity state.
	GetState() State
	// Close cleans up resources associated with the client.
	Close() error
}

// Focuser is implemented by hosts that can switch which vessel snapshots
// describe.
type Focuser interface {
	SetFocus(name string) error
}

// Body is the reference body telemetry is expressed against.
type Body struct {
	Name   string
	Mass   float64 // kg
	Radius float64 // m
}

// Atmosphere holds the ambient parameters at the vessel's altitude.
type Atmosphere struct {
	Temperature float64 // K
	Pressure    float64 // Pa
	Density     float64 // kg/m³
}

// Snapshot is one step of raw vessel state. Angles are radians, distances
// metres and forces newtons, as the host reports them.
type Snapshot struct {
	SimTime float64 // s since session start
	Vessel  string
	Body    Body

	Altitude float64 // above the body's mean radius
	Pitch    float64
	Bank     float64
	Slip     float64

	// RelPos and RelVel are relative to the body centre, in the same frame.
	RelPos kinematics.Vec3
	RelVel kinematics.Vec3

	// Equ is the surface position as {longitude, latitude} in radians.
	Equ     orb.Point
	Heading float64

	AOA         float64
	Mach        float64
	Lift        float64
	Drag        float64
	DynPressure float64 // Pa
	Atm         Atmosphere

	PropellantMass float64 // kg
	PropellantFlow float64 // kg/s
	Mass           float64 // kg

	// Thrust levels, 0..1.
	MainThrust  float64
	HoverThrust float64
}
