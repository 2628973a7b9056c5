package ui

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// ViewMargin is the world-pixel border kept around the fitted area.
const ViewMargin = 40.0

// View maps world pixels to framebuffer pixels: Center lands in the middle
// of the framebuffer and one world pixel covers Zoom screen pixels.
type View struct {
	Center r2.Vec
	Zoom   float64
}

// FitView returns the view that shows all of box plus margin, centred, at
// the largest zoom that fits both framebuffer axes.
func FitView(box r2.Box, margin float64, fbW, fbH int) View {
	w := box.Max.X - box.Min.X + 2*margin
	h := box.Max.Y - box.Min.Y + 2*margin
	v := View{Center: r2.Scale(0.5, r2.Add(box.Min, box.Max)), Zoom: 1}
	if w <= 0 || h <= 0 || fbW <= 0 || fbH <= 0 {
		return v
	}
	v.Zoom = math.Min(float64(fbW)/w, float64(fbH)/h)
	return v
}

// Union is the smallest box holding both a and b.
func Union(a, b r2.Box) r2.Box {
	return r2.Box{
		Min: r2.Vec{X: math.Min(a.Min.X, b.Min.X), Y: math.Min(a.Min.Y, b.Min.Y)},
		Max: r2.Vec{X: math.Max(a.Max.X, b.Max.X), Y: math.Max(a.Max.Y, b.Max.Y)},
	}
}

func (v View) ToScreen(p r2.Vec, fbW, fbH int) r2.Vec {
	return r2.Vec{
		X: (p.X-v.Center.X)*v.Zoom + float64(fbW)*0.5,
		Y: (p.Y-v.Center.Y)*v.Zoom + float64(fbH)*0.5,
	}
}

func (v View) ToWorld(s r2.Vec, fbW, fbH int) r2.Vec {
	if v.Zoom == 0 {
		return v.Center
	}
	return r2.Vec{
		X: v.Center.X + (s.X-float64(fbW)*0.5)/v.Zoom,
		Y: v.Center.Y + (s.Y-float64(fbH)*0.5)/v.Zoom,
	}
}
