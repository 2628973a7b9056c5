package ui

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"kartrace/internal/geom"
	"kartrace/internal/race"
	"kartrace/internal/session"
	"kartrace/internal/track"
)

// Sprite buffers hold SpriteFloats values per point sprite:
// x, y, size, r, g, b, a, rotation.
const SpriteFloats = 8

const (
	AsphaltSize   = 46.0
	LaneDotSize   = 3.0
	RacerDotSize  = 10.0 // radius 5
	EditPointSize = 8.0
	FinishCell    = 10.0
	ShadowAlpha   = 0.22
)

// AppendSprite adds one point sprite to buf.
func AppendSprite(buf []float32, p r2.Vec, size float64, c RGB, a, rot float32) []float32 {
	r, g, b := c.F32()
	return append(buf, float32(p.X), float32(p.Y), float32(size), r, g, b, a, rot)
}

// AsphaltSprites lays the road surface as overlapping squares along the
// centerline, resampled so the surface has no gaps.
func AsphaltSprites(buf []float32, center []r2.Vec) []float32 {
	buf = buf[:0]
	if len(center) < 2 {
		return buf
	}
	pts := geom.DensifyClosed(center, AsphaltSize/4)
	for _, p := range pts {
		buf = AppendSprite(buf, p, AsphaltSize+8, Palette.Kerb, 1, 0)
	}
	for _, p := range pts {
		buf = AppendSprite(buf, p, AsphaltSize, Palette.Asphalt, 1, 0)
	}
	return buf
}

// LaneSprites marks every lane waypoint.
func LaneSprites(buf []float32, lanes []track.Path) []float32 {
	buf = buf[:0]
	for _, lane := range lanes {
		for _, p := range lane {
			buf = AppendSprite(buf, p, LaneDotSize, Palette.Lane, 0.8, 0)
		}
	}
	return buf
}

// FinishSprites fills f with a checkerboard of FinishCell squares.
func FinishSprites(buf []float32, f geom.Rect) []float32 {
	buf = buf[:0]
	cols := int(math.Ceil(f.W() / FinishCell))
	rows := int(math.Ceil(f.H() / FinishCell))
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			c := Palette.FinishA
			if (x+y)%2 == 1 {
				c = Palette.FinishB
			}
			p := r2.Vec{
				X: f.X() + (float64(x)+0.5)*FinishCell,
				Y: f.Y() + (float64(y)+0.5)*FinishCell,
			}
			buf = AppendSprite(buf, p, FinishCell, c, 0.55, 0)
		}
	}
	return buf
}

// EditSprites marks each point of the path being edited; the first one is
// drawn larger so the closing point is easy to hit.
func EditSprites(buf []float32, pts []r2.Vec) []float32 {
	buf = buf[:0]
	for i, p := range pts {
		size := EditPointSize
		if i == 0 {
			size *= 1.5
		}
		buf = AppendSprite(buf, p, size, Palette.EditPoint, 1, 0)
	}
	return buf
}

// KartShadowSprites puts three soft circles under each kart along its
// heading, offset towards the bottom right.
func KartShadowSprites(buf []float32, karts []*race.Entity) []float32 {
	buf = buf[:0]
	for _, e := range karts {
		t, ok := e.Transform()
		if !ok {
			continue
		}
		h := t.Rotation * math.Pi / 180
		fwd := r2.Vec{X: math.Cos(h), Y: math.Sin(h)}
		o := r2.Add(t.Pos, r2.Vec{X: 3, Y: 5})
		for _, k := range [3]float64{-0.3, 0, 0.3} {
			buf = AppendSprite(buf, r2.Add(o, r2.Scale(k*session.KartSize, fwd)), session.KartSize*0.6, Palette.Shadow, ShadowAlpha, 0)
		}
	}
	return buf
}

// RacerDots marks the position of every kart that has one.
func RacerDots(buf []float32, karts []*race.Entity) []float32 {
	buf = buf[:0]
	for _, e := range karts {
		if t, ok := e.Transform(); ok {
			buf = AppendSprite(buf, t.Pos, RacerDotSize, Palette.RacerDot, 1, 0)
		}
	}
	return buf
}

// LineVerts returns a path as x, y pairs for a line strip or loop.
func LineVerts(buf []float32, pts []r2.Vec) []float32 {
	buf = buf[:0]
	for _, p := range pts {
		buf = append(buf, float32(p.X), float32(p.Y))
	}
	return buf
}
