package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// DensifyClosed subdivides every edge of the closed polyline pts (the last
// point connects back to the first) so that no edge of the result is longer
// than maxSegLen. Input vertices are kept, in order.
func DensifyClosed(pts []r2.Vec, maxSegLen float64) []r2.Vec {
	if len(pts) < 2 || maxSegLen <= 0 {
		return nil
	}
	out := make([]r2.Vec, 0, len(pts)*2)
	for i, a := range pts {
		b := pts[(i+1)%len(pts)]
		out = append(out, a)

		d := Dist(a, b)
		if d <= maxSegLen {
			continue
		}
		// the small bias keeps exact multiples from producing an extra piece
		pieces := int(math.Ceil(d/maxSegLen - 1e-9))
		step := r2.Scale(1/float64(pieces), r2.Sub(b, a))
		for k := 1; k < pieces; k++ {
			out = append(out, r2.Add(a, r2.Scale(float64(k), step)))
		}
	}
	return out
}

// OffsetClosed shifts every vertex of the closed polyline pts sideways by
// offset along the (-y, x) normal of the corner bisector. On a y-down screen
// a positive offset lands to the right of the direction of travel.
func OffsetClosed(pts []r2.Vec, offset float64) []r2.Vec {
	out := make([]r2.Vec, len(pts))
	copy(out, pts)
	if len(pts) < 2 || math.Abs(offset) < Epsilon {
		return out
	}

	n := len(pts)
	for i := range pts {
		prev := pts[Wrap(i-1, n)]
		next := pts[(i+1)%n]
		t1 := Normalize(r2.Sub(pts[i], prev))
		t2 := Normalize(r2.Sub(next, pts[i]))

		tan := Normalize(r2.Add(t1, t2))
		if tan == (r2.Vec{}) {
			tan = t1
		}
		if tan == (r2.Vec{}) {
			tan = t2
		}
		if tan == (r2.Vec{}) {
			continue
		}
		out[i] = r2.Add(pts[i], r2.Scale(offset, Perp(tan)))
	}
	return out
}
