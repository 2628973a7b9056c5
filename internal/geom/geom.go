// Package geom holds the small amount of planar geometry the race needs:
// vector helpers on top of gonum's r2, closed-polyline densify/offset and
// the axis-aligned finish region.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Epsilon is the length below which a vector is treated as zero.
const Epsilon = 1e-6

// Length returns the Euclidean length of v.
func Length(v r2.Vec) float64 { return r2.Norm(v) }

// Dist returns the distance between a and b.
func Dist(a, b r2.Vec) float64 { return r2.Norm(r2.Sub(a, b)) }

// Normalize returns v scaled to unit length, or the zero vector when v is
// shorter than Epsilon.
func Normalize(v r2.Vec) r2.Vec {
	l := r2.Norm(v)
	if l <= Epsilon {
		return r2.Vec{}
	}
	return r2.Scale(1/l, v)
}

// Perp rotates v by +90 degrees: (x, y) -> (-y, x).
func Perp(v r2.Vec) r2.Vec { return r2.Vec{X: -v.Y, Y: v.X} }

// HeadingDeg returns the angle of v in degrees, atan2 convention.
func HeadingDeg(v r2.Vec) float64 {
	return math.Atan2(v.Y, v.X) * 180 / math.Pi
}

func Clamp01(v float64) float64 { return ClampF(v, 0, 1) }

func ClampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// AngDiff returns the signed shortest turn from heading a to heading b in
// degrees, in (-180, 180].
func AngDiff(a, b float64) float64 {
	d := math.Mod(b-a+180, 360)
	if d <= 0 {
		d += 360
	}
	return d - 180
}

// Wrap maps i into [0, n). n must be positive.
func Wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
