package geo

import "math"

// GravConst is the gravitational constant used for reference orbits, m³/(kg·s²).
const GravConst = 6.67259e-11

// CircularOrbitSpeed is the speed (m/s) of a circular orbit at altitude alt (m)
// above a body of the given mass (kg) and radius (m).
func CircularOrbitSpeed(mass, radius, alt float64) float64 {
	r := radius + alt
	if mass <= 0 || r <= 0 {
		return 0
	}
	return math.Sqrt(GravConst * mass / r)
}

// ReferenceCurve samples n evenly spaced altitudes in [altMin, altMax] (km)
// and returns them with the matching circular orbit speeds (m/s).
func ReferenceCurve(mass, radius, altMin, altMax float64, n int) (alts, speeds []float64) {
	if n < 2 {
		n = 2
	}
	alts = make([]float64, n)
	speeds = make([]float64, n)
	step := (altMax - altMin) / float64(n-1)
	for i := range alts {
		alts[i] = altMin + float64(i)*step
		speeds[i] = CircularOrbitSpeed(mass, radius, alts[i]*1e3)
	}
	return alts, speeds
}
