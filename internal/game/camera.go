package game

import (
	"gonum.org/v1/gonum/spatial/r2"

	"kartrace/internal/session"
	"kartrace/internal/track"
	"kartrace/internal/ui"
)

// Camera is the view the renderer draws the world with.
type Camera struct {
	ui.View
}

var worldBox = r2.Box{Max: r2.Vec{X: track.WorldWidth, Y: track.WorldHeight}}

// UpdateAutoCamera fits the world, the track, the finish region and any
// points being edited on screen.
func UpdateAutoCamera(cam *Camera, s *session.Session, fbW, fbH int) {
	box := worldBox
	if c := s.Center(); len(c) > 0 {
		box = ui.Union(box, c.Bounds())
	}
	box = ui.Union(box, s.Race.Finish().Box)
	if len(s.Editor.Points) > 0 {
		box = ui.Union(box, s.Editor.Points.Bounds())
	}
	cam.View = ui.FitView(box, ui.ViewMargin, fbW, fbH)
}
