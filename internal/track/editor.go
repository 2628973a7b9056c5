package track

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"kartrace/internal/geom"
)

// CloseTolerance is how near the first point a final click must land to be
// read as "close the loop" rather than as a new waypoint.
const CloseTolerance = 5.0

var ErrNotEnoughPoints = errors.New("editor needs at least 3 points to finalize")

// Editor is the debug overlay's track drawing state. The desktop host owns
// one and feeds it input; the race only sees the lanes it produces.
type Editor struct {
	Active bool
	Points Path

	Spacing float64
	Offsets []float64
	File    string
}

func NewEditor(spacing float64, offsets []float64, file string) *Editor {
	return &Editor{Spacing: spacing, Offsets: offsets, File: file}
}

// Toggle flips edit mode and returns the new state.
func (e *Editor) Toggle() bool {
	e.Active = !e.Active
	return e.Active
}

// Add appends a waypoint. Ignored outside edit mode.
func (e *Editor) Add(p r2.Vec) bool {
	if !e.Active {
		return false
	}
	e.Points = append(e.Points, p)
	return true
}

// Undo drops the last waypoint.
func (e *Editor) Undo() bool {
	if !e.Active || len(e.Points) == 0 {
		return false
	}
	e.Points = e.Points[:len(e.Points)-1]
	return true
}

func (e *Editor) Clear() {
	if e.Active {
		e.Points = nil
	}
}

// Finalize turns the drawn waypoints into a centerline and its lanes. A
// last point dropped on top of the first is discarded; the loop is implicit.
func (e *Editor) Finalize() (Path, []Path, error) {
	if len(e.Points) < 3 {
		return nil, nil, ErrNotEnoughPoints
	}
	center := e.Points.Clone()
	if geom.Dist(center[0], center[len(center)-1]) <= CloseTolerance {
		center = center[:len(center)-1]
	}
	if len(center) < 3 {
		return nil, nil, ErrNotEnoughPoints
	}
	lanes := BuildLanes(center, e.Spacing, e.Offsets)
	if len(lanes) == 0 {
		return nil, nil, fmt.Errorf("build lanes: %w", ErrNotEnoughPoints)
	}
	return center, lanes, nil
}

// FinishAt returns a finish region centred on p. Only honoured in edit mode.
func (e *Editor) FinishAt(p r2.Vec) (geom.Rect, bool) {
	if !e.Active {
		return geom.Rect{}, false
	}
	return geom.RectAround(p, FinishSize, FinishSize), true
}

// Save writes the current waypoints to the editor's file.
func (e *Editor) Save() error {
	if len(e.Points) < 2 {
		return ErrTooFewPoints
	}
	return SaveFile(e.File, e.Points)
}

// Load replaces the waypoints with the editor's file. On error the current
// waypoints are kept.
func (e *Editor) Load() error {
	pts, err := LoadFile(e.File)
	if err != nil {
		return err
	}
	e.Points = pts
	return nil
}
