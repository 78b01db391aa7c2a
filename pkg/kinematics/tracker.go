package kinematics

// DefaultMinAltitude is the altitude (m) below which accelerations are not
// differentiated. Resting on the surface makes the relative velocity jump
// when the vessel lifts off, so those steps are skipped.
const DefaultMinAltitude = 3.0

// Rates is the derived motion of one sample.
type Rates struct {
	VRad, VTan float64 // m/s
	ARad, ATan float64 // m/s²
	G          float64 // multiples of G0
	Speed      float64 // |V|, m/s
}

// Tracker differentiates consecutive samples. It holds the previous-sample
// cache and must be Reset whenever the sample history is purged.
type Tracker struct {
	MinAltitude float64
	GLoad       GLoad

	primed    bool
	prevRad   float64
	prevTan   float64
	prevSpeed float64
}

// NewTracker returns a Tracker using g for G-loading.
func NewTracker(g GLoad, minAltitude float64) *Tracker {
	if g == nil {
		g = NetComponentG{}
	}
	return &Tracker{MinAltitude: minAltitude, GLoad: g}
}

// Update derives the rates for a new sample taken dt seconds after the
// previous one, at the given altitude (m) above the body surface.
//
// dt is the configured sampling interval, not the measured gap; callers that
// sample late get proportionally biased accelerations.
func (t *Tracker) Update(pos, vel Vec3, dt, altitude float64) Rates {
	var r Rates
	r.VRad, r.VTan = Decompose(pos, vel)
	r.Speed = finite(vel.Norm())

	if t.primed && dt > 0 && altitude > t.MinAltitude {
		r.ARad = finite((r.VRad - t.prevRad) / dt)
		r.ATan = finite((r.VTan - t.prevTan) / dt)
	}

	prevSpeed := 0.0
	if t.primed {
		prevSpeed = t.prevSpeed
	}
	if t.GLoad != nil {
		r.G = t.GLoad.Load(GInput{
			ARad:      r.ARad,
			ATan:      r.ATan,
			Speed:     r.Speed,
			PrevSpeed: prevSpeed,
			DT:        dt,
		})
	}

	t.prevRad, t.prevTan, t.prevSpeed = r.VRad, r.VTan, r.Speed
	t.primed = true
	return r
}

// Reset clears the previous-sample cache; the next Update reports zero
// acceleration.
func (t *Tracker) Reset() {
	t.primed = false
	t.prevRad, t.prevTan, t.prevSpeed = 0, 0, 0
}
