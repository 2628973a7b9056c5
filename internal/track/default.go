package track

import (
	"gonum.org/v1/gonum/spatial/r2"

	"kartrace/internal/geom"
)

// World size the built-in circuit is laid out for.
const (
	WorldWidth  = 1920
	WorldHeight = 1080
)

// DefaultCenterline is the built-in circuit: a rounded rectangle driven
// clockwise on screen.
func DefaultCenterline() Path {
	return Path{
		{X: 300, Y: 200},
		{X: 1600, Y: 200},
		{X: 1750, Y: 350},
		{X: 1750, Y: 750},
		{X: 1600, Y: 900},
		{X: 300, Y: 900},
		{X: 150, Y: 750},
		{X: 150, Y: 350},
	}
}

// FinishSize is the side of a finish region placed by hand; it spans the
// default lane spread with room to spare.
const FinishSize = 100.0

// DefaultFinish spans the left straight of the built-in circuit, wide
// enough to catch every lane.
func DefaultFinish() geom.Rect {
	return geom.RectAround(r2.Vec{X: 150, Y: 550}, FinishSize, FinishSize)
}
