// Package track holds closed track paths, the lanes derived from them, the
// on-disk track format and the interactive editor state.
package track

import (
	"gonum.org/v1/gonum/spatial/r2"

	"kartrace/internal/geom"
)

// Path is a closed loop of waypoints in travel order. The last point
// connects back to the first.
type Path []r2.Vec

// Drivable reports whether the path has enough points to follow.
func (p Path) Drivable() bool { return len(p) >= 2 }

// At returns the waypoint at i modulo the path length.
func (p Path) At(i int) r2.Vec { return p[geom.Wrap(i, len(p))] }

// Clone returns an independent copy of p.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// Length returns the perimeter of the closed loop.
func (p Path) Length() float64 {
	if len(p) < 2 {
		return 0
	}
	var l float64
	for i := range p {
		l += geom.Dist(p[i], p.At(i+1))
	}
	return l
}

// Bounds returns the bounding box of all points.
func (p Path) Bounds() r2.Box {
	if len(p) == 0 {
		return r2.Box{}
	}
	b := r2.Box{Min: p[0], Max: p[0]}
	for _, v := range p[1:] {
		b.Min.X = min(b.Min.X, v.X)
		b.Min.Y = min(b.Min.Y, v.Y)
		b.Max.X = max(b.Max.X, v.X)
		b.Max.Y = max(b.Max.Y, v.Y)
	}
	return b
}
