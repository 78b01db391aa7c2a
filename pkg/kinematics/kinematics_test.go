package kinematics

import (
	"math"
	"math/rand"
	"testing"
)

func TestDecompose(t *testing.T) {
	tests := []struct {
		name     string
		pos, vel Vec3
		wantRad  float64
		wantTan  float64
	}{
		{
			name:    "Pure climb",
			pos:     Vec3{X: 6.4e6},
			vel:     Vec3{X: 100},
			wantRad: 100,
			wantTan: 0,
		},
		{
			name:    "Pure descent",
			pos:     Vec3{Y: 1.7e6},
			vel:     Vec3{Y: -42},
			wantRad: -42,
			wantTan: 0,
		},
		{
			name:    "Circular orbit",
			pos:     Vec3{X: 7e6},
			vel:     Vec3{Z: 7546},
			wantRad: 0,
			wantTan: 7546,
		},
		{
			name:    "Mixed",
			pos:     Vec3{X: 1e6},
			vel:     Vec3{X: 30, Y: 40},
			wantRad: 30,
			wantTan: 40,
		},
		{
			name:    "Zero position",
			pos:     Vec3{},
			vel:     Vec3{X: 10, Y: 10},
			wantRad: 0,
			wantTan: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotRad, gotTan := Decompose(tt.pos, tt.vel)
			if math.Abs(gotRad-tt.wantRad) > 1e-9 {
				t.Errorf("vRad = %v, want %v", gotRad, tt.wantRad)
			}
			if math.Abs(gotTan-tt.wantTan) > 1e-6 {
				t.Errorf("vTan = %v, want %v", gotTan, tt.wantTan)
			}
		})
	}
}

func TestDecompose_PythagoreanIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		pos := Vec3{rng.NormFloat64() * 6e6, rng.NormFloat64() * 6e6, rng.NormFloat64() * 6e6}
		vel := Vec3{rng.NormFloat64() * 3e3, rng.NormFloat64() * 3e3, rng.NormFloat64() * 3e3}

		vRad, vTan := Decompose(pos, vel)
		if vTan < 0 {
			t.Fatalf("sample %d: negative tangential velocity %v", i, vTan)
		}
		v2 := vel.Norm2()
		got := vRad*vRad + vTan*vTan
		if math.Abs(got-v2) > 1e-6*math.Max(1, v2) {
			t.Fatalf("sample %d: vRad²+vTan² = %v, |V|² = %v", i, got, v2)
		}
		if (vRad > 0) != (vel.Dot(pos) > 0) && vRad != 0 {
			t.Fatalf("sample %d: radial sign %v disagrees with P·V %v", i, vRad, vel.Dot(pos))
		}
	}
}

func TestDecompose_NearlyRadialClampsTangential(t *testing.T) {
	// Rounding can push |V|² - vr² slightly negative.
	pos := Vec3{X: 1e7, Y: 3, Z: 0}
	vel := Vec3{X: 1e4, Y: 3e-3}
	_, vTan := Decompose(pos, vel)
	if vTan < 0 || math.IsNaN(vTan) {
		t.Errorf("vTan = %v, want >= 0", vTan)
	}
}

func TestGLoadStrategies(t *testing.T) {
	tests := []struct {
		name     string
		strategy GLoad
		in       GInput
		want     float64
	}{
		{"NetComponent positive", NetComponentG{}, GInput{ARad: G0, ATan: G0, DT: 1}, 2},
		{"NetComponent negative is unsigned", NetComponentG{}, GInput{ARad: -3 * G0, ATan: G0, DT: 1}, 2},
		{"SpeedDelta no previous", SpeedDeltaG{}, GInput{Speed: 100, DT: 1}, 0},
		{"SpeedDelta decelerating", SpeedDeltaG{}, GInput{Speed: 100, PrevSpeed: 100 + 2*G0, DT: 1}, 2},
		{"SpeedDelta half second", SpeedDeltaG{}, GInput{Speed: 100 + G0, PrevSpeed: 100, DT: 0.5}, 2},
		{"SpeedDelta zero dt", SpeedDeltaG{}, GInput{Speed: 200, PrevSpeed: 100, DT: 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.strategy.Load(tt.in); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Load() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGLoadStrategiesDiffer(t *testing.T) {
	// Turning at constant speed: net-component sees the tangential change,
	// speed-delta sees nothing.
	in := GInput{ARad: 5, ATan: 5, Speed: 100, PrevSpeed: 100, DT: 1}
	if (NetComponentG{}).Load(in) == (SpeedDeltaG{}).Load(in) {
		t.Error("strategies unexpectedly agree")
	}
}

func TestGLoadByName(t *testing.T) {
	for _, name := range []string{"net-component", "speed-delta"} {
		g, ok := GLoadByName(name)
		if !ok || g.Name() != name {
			t.Errorf("GLoadByName(%q) = %v, %v", name, g, ok)
		}
	}
	if _, ok := GLoadByName("bogus"); ok {
		t.Error("GLoadByName(bogus) should fail")
	}
}

func TestTracker(t *testing.T) {
	tr := NewTracker(NetComponentG{}, DefaultMinAltitude)
	pos := Vec3{X: 6.4e6}

	r := tr.Update(pos, Vec3{X: 10, Y: 100}, 1, 1000)
	if r.ARad != 0 || r.ATan != 0 || r.G != 0 {
		t.Fatalf("first sample should have no acceleration, got %+v", r)
	}

	r = tr.Update(pos, Vec3{X: 20, Y: 120}, 1, 1000)
	if math.Abs(r.ARad-10) > 1e-9 || math.Abs(r.ATan-20) > 1e-9 {
		t.Errorf("accelerations = (%v, %v), want (10, 20)", r.ARad, r.ATan)
	}
	if math.Abs(r.G-30/G0) > 1e-9 {
		t.Errorf("G = %v, want %v", r.G, 30/G0)
	}

	// On the ground: no differentiation.
	r = tr.Update(pos, Vec3{X: 0, Y: 0}, 1, 1)
	if r.ARad != 0 || r.ATan != 0 {
		t.Errorf("ground sample accelerations = (%v, %v), want 0", r.ARad, r.ATan)
	}

	tr.Reset()
	r = tr.Update(pos, Vec3{X: 500}, 1, 1000)
	if r.ARad != 0 || r.ATan != 0 || r.G != 0 {
		t.Errorf("post-reset sample should have no acceleration, got %+v", r)
	}
}

func TestTracker_SpeedDelta(t *testing.T) {
	tr := NewTracker(SpeedDeltaG{}, 0)
	pos := Vec3{Z: 6.4e6}
	tr.Update(pos, Vec3{X: 100}, 2, 10)
	r := tr.Update(pos, Vec3{X: 100 + 4*G0}, 2, 10)
	if math.Abs(r.G-2) > 1e-9 {
		t.Errorf("G = %v, want 2", r.G)
	}
}
