// Package geo provides spherical surface geometry on arbitrary bodies.
//
// Coordinates are orb.Point{longitude, latitude} in radians, matching the
// equatorial positions reported by the host.
package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// Range returns the great-circle distance between a and b on a sphere of the
// given radius, in the radius' unit. Altitude above the sphere is ignored.
func Range(a, b orb.Point, radius float64) float64 {
	dLat := b.Lat() - a.Lat()
	dLon := b.Lon() - a.Lon()

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Lat())*math.Cos(b.Lat())*math.Sin(dLon/2)*math.Sin(dLon/2)
	// Rounding can push h just outside [0, 1] for antipodal points.
	h = math.Min(1, math.Max(0, h))
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return radius * c
}

// DestinationPoint returns the point reached from start after travelling
// dist along the initial bearing brng (radians) on a sphere of the given radius.
func DestinationPoint(start orb.Point, dist, brng, radius float64) orb.Point {
	if radius <= 0 {
		return start
	}
	lat1, lon1 := start.Lat(), start.Lon()
	d := dist / radius

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(d) +
		math.Cos(lat1)*math.Sin(d)*math.Cos(brng))
	lon2 := lon1 + math.Atan2(math.Sin(brng)*math.Sin(d)*math.Cos(lat1),
		math.Cos(d)-math.Sin(lat1)*math.Sin(lat2))

	return orb.Point{NormalizeLon(lon2), lat2}
}

// Bearing returns the initial bearing from a to b in radians, in [0, 2π).
func Bearing(a, b orb.Point) float64 {
	dLon := b.Lon() - a.Lon()
	y := math.Sin(dLon) * math.Cos(b.Lat())
	x := math.Cos(a.Lat())*math.Sin(b.Lat()) -
		math.Sin(a.Lat())*math.Cos(b.Lat())*math.Cos(dLon)
	return math.Mod(math.Atan2(y, x)+2*math.Pi, 2*math.Pi)
}

// NormalizeLon wraps a longitude into [-π, π].
func NormalizeLon(lon float64) float64 {
	for lon > math.Pi {
		lon -= 2 * math.Pi
	}
	for lon < -math.Pi {
		lon += 2 * math.Pi
	}
	return lon
}

// Radians converts a point given in degrees.
func Radians(p orb.Point) orb.Point {
	return orb.Point{p.Lon() * math.Pi / 180, p.Lat() * math.Pi / 180}
}

// Degrees converts a point given in radians.
func Degrees(p orb.Point) orb.Point {
	return orb.Point{p.Lon() * 180 / math.Pi, p.Lat() * 180 / math.Pi}
}
