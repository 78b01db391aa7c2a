package sim_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/paulmach/orb"

	"flightrec/pkg/sim"
)

type fakeLocator struct {
	bases    map[string]orb.Point // keyed body/name
	vessels  map[string]orb.Point
	stations map[string]orb.Point
}

func (f fakeLocator) Base(body, name string) (sim.Target, bool) {
	p, ok := f.bases[body+"/"+name]
	return sim.Target{Name: name, Kind: sim.TargetBase, Pos: p}, ok
}

func (f fakeLocator) Vessel(name string) (sim.Target, bool) {
	p, ok := f.vessels[name]
	return sim.Target{Name: name, Kind: sim.TargetVessel, Pos: p}, ok
}

func (f fakeLocator) Station(name string) (sim.Target, bool) {
	p, ok := f.stations[name]
	return sim.Target{Name: name, Kind: sim.TargetStation, Pos: p}, ok
}

func (f fakeLocator) Position(t sim.Target) (orb.Point, bool) { return t.Pos, true }

func (f fakeLocator) Vessels() []string { return []string{"GL-02"} }

func (f fakeLocator) Bases(body string) []string { return []string{body + " base"} }

func (f fakeLocator) Stations() []string { return []string{"Mir"} }

func TestTargetNamesOrder(t *testing.T) {
	got := sim.TargetNames(fakeLocator{}, "Earth")
	want := []string{"Earth base", "GL-02", "Mir"}
	if !slices.Equal(got, want) {
		t.Errorf("TargetNames = %v, want %v", got, want)
	}
}

func TestResolveTarget(t *testing.T) {
	loc := fakeLocator{
		bases: map[string]orb.Point{
			"Earth/Habana": {-1.4, 0.4},
			"Earth/Alpha":  {0.1, 0.1},
		},
		vessels: map[string]orb.Point{
			"Alpha": {0.2, 0.2},
			"GL-01": {0.3, 0.3},
		},
		stations: map[string]orb.Point{
			"GL-01": {0.9, 0.9},
			"ISS":   {0.5, 0.5},
		},
	}

	tests := []struct {
		name     string
		body     string
		target   string
		wantKind sim.TargetKind
		wantPos  orb.Point
		wantErr  bool
	}{
		{"base", "Earth", "Habana", sim.TargetBase, orb.Point{-1.4, 0.4}, false},
		{"base beats vessel", "Earth", "Alpha", sim.TargetBase, orb.Point{0.1, 0.1}, false},
		{"base on other body is skipped", "Moon", "Alpha", sim.TargetVessel, orb.Point{0.2, 0.2}, false},
		{"vessel beats station", "Earth", "GL-01", sim.TargetVessel, orb.Point{0.3, 0.3}, false},
		{"station", "Earth", "ISS", sim.TargetStation, orb.Point{0.5, 0.5}, false},
		{"unknown", "Earth", "Nowhere", 0, orb.Point{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sim.ResolveTarget(loc, tt.body, tt.target)
			if tt.wantErr {
				if !errors.Is(err, sim.ErrUnknownTarget) {
					t.Fatalf("err = %v, want ErrUnknownTarget", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", got.Kind, tt.wantKind)
			}
			if got.Pos != tt.wantPos {
				t.Errorf("Pos = %v, want %v", got.Pos, tt.wantPos)
			}
			if got.Name != tt.target {
				t.Errorf("Name = %q, want %q", got.Name, tt.target)
			}
		})
	}
}

func TestTargetMoving(t *testing.T) {
	if (sim.Target{Kind: sim.TargetBase}).Moving() {
		t.Error("bases are fixed to the surface")
	}
	if !(sim.Target{Kind: sim.TargetStation}).Moving() {
		t.Error("stations move")
	}
	if sim.TargetVessel.String() != "vessel" {
		t.Errorf("String() = %q", sim.TargetVessel.String())
	}
}
