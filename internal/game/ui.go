package game

import (
	"kartrace/internal/session"
	"kartrace/internal/ui"
)

// hudShadow is the drop-shadow offset in screen pixels.
const hudShadow = 2

// RenderHUD draws the overlay text with a drop shadow for contrast against
// the track.
func RenderHUD(r *Renderer, s *session.Session, fbW, fbH int) {
	texts := ui.HUD(s, fbW, fbH)
	for _, t := range texts {
		r.DrawString(t.Msg, t.X+hudShadow, t.Y+hudShadow, t.Scale, ui.Palette.Shadow)
	}
	for _, t := range texts {
		r.DrawString(t.Msg, t.X, t.Y, t.Scale, t.Color)
	}
	r.FlushText(fbW, fbH)
}
