package recorder

import (
	"math"

	"flightrec/pkg/geo"
	"flightrec/pkg/samples"
	"flightrec/pkg/sim"
)

const deg = 180 / math.Pi

// frame derives one sample from a snapshot. Angles become degrees,
// altitude and range kilometres, lift and drag kilonewtons and thrust
// levels percent.
func (r *Recorder) frame(s *sim.Snapshot) samples.Frame {
	rates := r.tracker.Update(s.RelPos, s.RelVel, r.settings.SampleDT, s.Altitude)

	var f samples.Frame
	f[samples.SimTime] = float32(s.SimTime)
	f[samples.Altitude] = float32(s.Altitude * 1e-3)
	f[samples.Pitch] = float32(s.Pitch * deg)
	f[samples.Roll] = float32(s.Bank * deg)
	f[samples.Yaw] = float32(s.Slip * deg)

	f[samples.VRad] = float32(rates.VRad)
	f[samples.VTan] = float32(rates.VTan)
	f[samples.ARad] = float32(rates.ARad)
	f[samples.ATan] = float32(rates.ATan)
	f[samples.GLoad] = float32(rates.G)

	f[samples.Lon] = float32(s.Equ.Lon() * deg)
	f[samples.Lat] = float32(s.Equ.Lat() * deg)
	f[samples.Heading] = float32(s.Heading * deg)
	f[samples.Range] = float32(r.rangeKm(s))

	f[samples.AOA] = float32(s.AOA * deg)
	f[samples.Mach] = float32(s.Mach)
	f[samples.Lift] = float32(s.Lift * 1e-3)
	f[samples.Drag] = float32(s.Drag * 1e-3)

	f[samples.AtmTemp] = float32(s.Atm.Temperature)
	f[samples.AtmPressure] = float32(s.Atm.Pressure)
	f[samples.DynPressure] = float32(s.DynPressure)
	f[samples.AtmDensity] = float32(s.Atm.Density)

	f[samples.FuelMass] = float32(s.PropellantMass)
	f[samples.FuelRate] = float32(s.PropellantFlow)
	f[samples.MainThrust] = float32(s.MainThrust * 100)
	f[samples.HoverThrust] = float32(s.HoverThrust * 100)
	f[samples.Mass] = float32(s.Mass)
	return f
}

// rangeKm is the surface distance to the target, 0 without one. Moving
// targets are re-read every sample; one that vanished is dropped.
func (r *Recorder) rangeKm(s *sim.Snapshot) float64 {
	if r.target == nil {
		return 0
	}
	if r.target.Moving() && r.loc != nil {
		pos, ok := r.loc.Position(*r.target)
		if !ok {
			r.logger.Warn("Range target lost", "target", r.target.Name)
			r.target = nil
			return 0
		}
		r.target.Pos = pos
	}
	return geo.Range(s.Equ, r.target.Pos, s.Body.Radius) * 1e-3
}
