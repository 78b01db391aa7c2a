package sim

import (
	"fmt"

	"github.com/paulmach/orb"
)

// TargetKind says where a range target was found.
type TargetKind int

const (
	TargetBase TargetKind = iota
	TargetVessel
	TargetStation
)

func (k TargetKind) String() string {
	switch k {
	case TargetBase:
		return "base"
	case TargetVessel:
		return "vessel"
	case TargetStation:
		return "station"
	}
	return fmt.Sprintf("TargetKind(%d)", int(k))
}

// Target is a resolved range target.
type Target struct {
	Name string
	Kind TargetKind
	// Pos is {longitude, latitude} in radians at resolution time.
	Pos orb.Point
}

// Moving reports whether the target's position must be re-read every sample.
// Surface bases are fixed to the body.
func (t Target) Moving() bool {
	return t.Kind != TargetBase
}

// Locator looks up range targets in the host.
type Locator interface {
	// Base finds a surface base on the given body.
	Base(body, name string) (Target, bool)
	Vessel(name string) (Target, bool)
	Station(name string) (Target, bool)
	// Position returns the current surface position of a target.
	Position(t Target) (orb.Point, bool)
	// Vessels lists the vessels the recorder can follow.
	Vessels() []string
	// Bases lists the surface bases on body; Stations the orbiting stations.
	Bases(body string) []string
	Stations() []string
}

// ResolveTarget looks name up as a base on body, then a vessel, then a
// station. The first match wins.
func ResolveTarget(loc Locator, body, name string) (Target, error) {
	if t, ok := loc.Base(body, name); ok {
		return t, nil
	}
	if t, ok := loc.Vessel(name); ok {
		return t, nil
	}
	if t, ok := loc.Station(name); ok {
		return t, nil
	}
	return Target{}, fmt.Errorf("%w: %q", ErrUnknownTarget, name)
}

// TargetNames lists every selectable range target in lookup order: bases on
// body, then vessels, then stations.
func TargetNames(loc Locator, body string) []string {
	var out []string
	out = append(out, loc.Bases(body)...)
	out = append(out, loc.Vessels()...)
	out = append(out, loc.Stations()...)
	return out
}
