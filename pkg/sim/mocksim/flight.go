package mocksim

import (
	"math"

	"github.com/paulmach/orb"

	"flightrec/pkg/geo"
	"flightrec/pkg/sim"
)

// Script step types.
const (
	StepHold  = "HOLD"
	StepHover = "HOVER"
	StepBurn  = "BURN"
	StepCoast = "COAST"
)

// Step is one segment of the scripted flight.
type Step struct {
	Type     string
	Duration float64 // s
	Level    float64 // throttle, 0..1
	// Pitch above the local horizon in degrees, ramped linearly over a BURN.
	PitchFrom float64
	PitchTo   float64
}

// DefaultScript lifts off on the hover engine, pitches over on the main
// engine and finishes with a shallow sustainer burn.
func DefaultScript() []Step {
	return []Step{
		{Type: StepHold, Duration: 10},
		{Type: StepHover, Duration: 8, Level: 1},
		{Type: StepBurn, Duration: 30, Level: 1, PitchFrom: 90, PitchTo: 75},
		{Type: StepBurn, Duration: 120, Level: 1, PitchFrom: 75, PitchTo: 15},
		{Type: StepCoast, Duration: 60},
		{Type: StepBurn, Duration: 40, Level: 0.6, PitchFrom: 5, PitchTo: 0},
	}
}

// Vessel and atmosphere model.
const (
	dryMass      = 20000.0 // kg
	fuelCapacity = 80000.0 // kg
	mainThrust   = 2.2e6   // N
	hoverThrust  = 1.6e6   // N
	exhaustVel   = 4000.0  // m/s
	refArea      = 40.0    // m²

	seaLevelDensity  = 1.225
	seaLevelPressure = 101325.0
	seaLevelTemp     = 288.15
	lapseRate        = 0.0065
	tropopauseTemp   = 216.65
	scaleHeight      = 8500.0
	gasConstant      = 287.05
	heatRatio        = 1.4

	maxStep = 0.05 // s, integration step
)

// flight is a point mass moving in a single orbital plane, tracked in polar
// coordinates around the body centre.
type flight struct {
	vessel   string
	body     sim.Body
	start    orb.Point
	heading0 float64
	script   []Step
	idx      int
	stepT    float64

	simt       float64
	r, theta   float64
	vrad, vtan float64
	pitch      float64
	fuel       float64
	mainLvl    float64
	hoverLvl   float64
	flow       float64
	lift, drag float64

	equ     orb.Point
	heading float64
}

func newFlight(cfg Config) flight {
	f := flight{
		vessel:   cfg.Vessel,
		body:     cfg.Body,
		start:    geo.Radians(cfg.Start),
		heading0: cfg.Heading * math.Pi / 180,
		script:   cfg.Script,
		r:        cfg.Body.Radius,
		pitch:    math.Pi / 2,
		fuel:     fuelCapacity,
	}
	f.updateSurface()
	return f
}

func (f *flight) advance(dt float64) {
	n := int(math.Ceil(dt/maxStep - 1e-9))
	if n < 1 {
		n = 1
	}
	h := dt / float64(n)
	for i := 0; i < n; i++ {
		f.integrate(h)
	}
	f.updateSurface()
}

// control applies the current script step and moves on when it is done.
func (f *flight) control(h float64) {
	f.mainLvl, f.hoverLvl = 0, 0
	if f.idx >= len(f.script) {
		return
	}
	s := f.script[f.idx]
	switch s.Type {
	case StepBurn:
		f.mainLvl = clamp(s.Level, 0, 1)
		frac := 1.0
		if s.Duration > 0 {
			frac = f.stepT / s.Duration
		}
		f.pitch = (s.PitchFrom + (s.PitchTo-s.PitchFrom)*frac) * math.Pi / 180
	case StepHover:
		f.hoverLvl = clamp(s.Level, 0, 1)
	}
	f.stepT += h
	if f.stepT >= s.Duration {
		f.idx++
		f.stepT = 0
	}
}

func (f *flight) integrate(h float64) {
	f.control(h)
	if f.fuel <= 0 {
		f.mainLvl, f.hoverLvl = 0, 0
	}

	mass := dryMass + f.fuel
	atm := atmosphereAt(f.r - f.body.Radius)
	speed := math.Hypot(f.vrad, f.vtan)
	q := 0.5 * atm.Density * speed * speed
	cl := clamp(2*math.Pi*f.aoa(), -1.2, 1.2)
	f.lift = q * refArea * cl
	f.drag = q * refArea * (0.25 + 0.05*cl*cl)

	aMain := mainThrust * f.mainLvl / mass
	aHover := hoverThrust * f.hoverLvl / mass
	f.flow = (mainThrust*f.mainLvl + hoverThrust*f.hoverLvl) / exhaustVel

	mu := geo.GravConst * f.body.Mass
	ar := aMain*math.Sin(f.pitch) + aHover + f.vtan*f.vtan/f.r - mu/(f.r*f.r)
	at := aMain*math.Cos(f.pitch) - f.vrad*f.vtan/f.r
	if speed > 0 {
		ar -= f.drag / mass * f.vrad / speed
		at -= f.drag / mass * f.vtan / speed
	}

	f.vrad += ar * h
	f.vtan += at * h
	f.r += f.vrad * h
	f.theta += f.vtan / f.r * h

	// Resting on the surface.
	if f.r <= f.body.Radius {
		f.r = f.body.Radius
		f.vrad = math.Max(0, f.vrad)
		if f.mainLvl == 0 && f.hoverLvl == 0 {
			f.vtan = 0
		}
	}

	f.fuel = math.Max(0, f.fuel-f.flow*h)
	f.simt += h
}

// aoa is the angle between the nose and the flight path, 0 when at rest.
func (f *flight) aoa() float64 {
	if math.Hypot(f.vrad, f.vtan) < 1 {
		return 0
	}
	return f.pitch - math.Atan2(f.vrad, f.vtan)
}

func (f *flight) updateSurface() {
	dist := f.theta * f.body.Radius
	f.equ = geo.DestinationPoint(f.start, dist, f.heading0, f.body.Radius)
	ahead := geo.DestinationPoint(f.start, dist+1000, f.heading0, f.body.Radius)
	f.heading = geo.Bearing(f.equ, ahead)
}

func (f *flight) snapshot() sim.Snapshot {
	alt := f.r - f.body.Radius
	atm := atmosphereAt(alt)
	speed := math.Hypot(f.vrad, f.vtan)
	pos, vel := planeVectors(f.r, f.theta, f.vrad, f.vtan)

	main, hover := f.mainLvl, f.hoverLvl
	if f.fuel <= 0 {
		main, hover = 0, 0
	}
	return sim.Snapshot{
		SimTime:        f.simt,
		Vessel:         f.vessel,
		Body:           f.body,
		Altitude:       alt,
		Pitch:          f.pitch,
		RelPos:         pos,
		RelVel:         vel,
		Equ:            f.equ,
		Heading:        f.heading,
		AOA:            f.aoa(),
		Mach:           speed / math.Sqrt(heatRatio*gasConstant*atm.Temperature),
		Lift:           f.lift,
		Drag:           f.drag,
		DynPressure:    0.5 * atm.Density * speed * speed,
		Atm:            atm,
		PropellantMass: f.fuel,
		PropellantFlow: f.flow,
		Mass:           dryMass + f.fuel,
		MainThrust:     main,
		HoverThrust:    hover,
	}
}

// atmosphereAt is an isothermal-exponential atmosphere with a linear
// troposphere temperature profile.
func atmosphereAt(alt float64) sim.Atmosphere {
	alt = math.Max(0, alt)
	decay := math.Exp(-alt / scaleHeight)
	return sim.Atmosphere{
		Temperature: math.Max(seaLevelTemp-lapseRate*alt, tropopauseTemp),
		Pressure:    seaLevelPressure * decay,
		Density:     seaLevelDensity * decay,
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
