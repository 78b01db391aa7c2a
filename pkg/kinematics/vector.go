// Package kinematics derives radial/tangential motion and G-loading from
// relative state vectors.
package kinematics

import "math"

// Vec3 is a 3-component vector in the reference body frame.
type Vec3 struct {
	X, Y, Z float64
}

// Dot returns the scalar product of v and w.
func (v Vec3) Dot(w Vec3) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Norm2 returns the squared length of v.
func (v Vec3) Norm2() float64 {
	return v.Dot(v)
}

// Norm returns the length of v.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.Norm2())
}

// Scale returns v multiplied by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

// finite maps NaN and ±Inf to zero.
func finite(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x
}
