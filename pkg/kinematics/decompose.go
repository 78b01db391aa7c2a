package kinematics

import "math"

// Decompose splits the relative velocity vel into the component parallel to
// the relative position pos (radial, positive away from the body centre) and
// the magnitude of the perpendicular remainder (tangential, never negative).
//
// A zero position vector has no defined radial direction and yields (0, 0).
func Decompose(pos, vel Vec3) (vRad, vTan float64) {
	r2 := pos.Norm2()
	if r2 == 0 || math.IsNaN(r2) || math.IsInf(r2, 0) {
		return 0, 0
	}
	v2 := vel.Norm2()
	a := vel.Dot(pos) / r2
	vr2 := a * a * r2
	vt2 := v2 - vr2

	if vr2 > 0 {
		vRad = math.Sqrt(vr2)
		if a < 0 {
			vRad = -vRad
		}
	}
	if vt2 > 0 {
		vTan = math.Sqrt(vt2)
	}
	return finite(vRad), finite(vTan)
}
