package ui

import (
	"fmt"

	"kartrace/internal/race"
	"kartrace/internal/session"
)

// Text is one HUD string positioned in screen pixels (top-left origin).
type Text struct {
	Msg   string
	X, Y  int
	Scale float32
	Color RGB
}

const (
	hudMargin = 10
	hudScale  = float32(1.6)
	bigScale  = float32(3.0)
)

// HUD lays out the overlay for one frame.
func HUD(s *session.Session, fbW, fbH int) []Text {
	var out []Text
	left := func(msg string, y int, scale float32, col RGB) {
		out = append(out, Text{Msg: msg, X: hudMargin, Y: y, Scale: scale, Color: col})
	}
	center := func(msg string, y int, scale float32, col RGB) {
		out = append(out, Text{Msg: msg, X: fbW/2 - TextWidth(msg, scale)/2, Y: y, Scale: scale, Color: col})
	}
	right := func(msg string, y int, scale float32, col RGB) {
		out = append(out, Text{Msg: msg, X: fbW - TextWidth(msg, scale) - hudMargin, Y: y, Scale: scale, Color: col})
	}
	lh := LineHeight(hudScale)

	c := s.Race
	left(fmt.Sprintf("Time %.2fs", c.Timer()), hudMargin, hudScale, Palette.Text)
	center(s.TrackName(), hudMargin, hudScale, Palette.Accent)
	right(fmt.Sprintf("FPS %.0f", s.FPS), hudMargin, hudScale, Palette.Text)
	speedCol := Palette.Text
	if c.SpeedMultiplier() != 1 {
		speedCol = Palette.Warn
	}
	right(fmt.Sprintf("Speed x%.2f", c.SpeedMultiplier()), hudMargin+lh, hudScale, speedCol)

	y := hudMargin + 2*lh
	for i, r := range c.Results() {
		left(standingLine(i, r), y, hudScale, standingColor(r))
		y += lh
	}

	if c.Paused() {
		center("PAUSED", fbH/2-LineHeight(bigScale), bigScale, Palette.Warn)
	}
	if c.Done() {
		if order := c.FinishOrder(); len(order) > 0 {
			center(fmt.Sprintf("%s WINS", order[0].Name), fbH/3, bigScale, Palette.Good)
			center("R to race again", fbH/3+LineHeight(bigScale), hudScale, Palette.Text)
		}
	}

	bottom := fbH - hudMargin - lh
	if s.Editor.Active {
		for i := len(session.Help) - 1; i >= 0; i-- {
			left(session.Help[i], bottom, hudScale, Palette.Text)
			bottom -= lh
		}
		left(fmt.Sprintf("EDIT  %d points", len(s.Editor.Points)), bottom, hudScale, Palette.EditPoint)
	} else {
		left("E edit  SPACE pause  R reset", bottom, hudScale, Palette.Lane)
	}

	if n := s.Notice; n.Text != "" {
		col := Palette.Text
		if n.Kind == session.NoticeError {
			col = Palette.Bad
		}
		center(n.Text, fbH-hudMargin-3*lh, hudScale, col.Scale(n.Timer))
	}
	return out
}

func standingLine(i int, r race.Result) string {
	if r.Place > 0 {
		return fmt.Sprintf("P%d %-8s FIN %.2fs", r.Place, r.Name, r.FinishTime)
	}
	return fmt.Sprintf("%d. %-8s L%d/%d %3.0f%%", i+1, r.Name, r.Laps, r.TotalLaps, r.Progress*100)
}

func standingColor(r race.Result) RGB {
	if r.Place == 1 {
		return Palette.Good
	}
	if r.Place > 0 {
		return Palette.Warn
	}
	return Palette.Text
}
