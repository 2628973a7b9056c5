package geom

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Rect is an axis-aligned rectangle in world pixels.
type Rect struct {
	r2.Box
}

// NewRect builds a rectangle from its top-left corner and size. Negative
// sizes are normalised.
func NewRect(x, y, w, h float64) Rect {
	return Rect{Box: r2.NewBox(x, y, x+w, y+h)}
}

// RectAround returns a w by h rectangle centred on c.
func RectAround(c r2.Vec, w, h float64) Rect {
	return NewRect(c.X-w/2, c.Y-h/2, w, h)
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p r2.Vec) bool {
	return r.Box.Contains(p)
}

func (r Rect) X() float64 { return r.Min.X }
func (r Rect) Y() float64 { return r.Min.Y }
func (r Rect) W() float64 { return r.Max.X - r.Min.X }
func (r Rect) H() float64 { return r.Max.Y - r.Min.Y }
