package race

import (
	"gonum.org/v1/gonum/spatial/r2"

	"kartrace/internal/geom"
)

// LapTracker counts finish-region entries. Staying inside across several
// ticks counts once.
type LapTracker struct {
	Lap       int
	TotalLaps int
	inside    bool
}

// Update records the racer's position and reports whether this tick
// started a new lap.
func (l *LapTracker) Update(pos r2.Vec, finish geom.Rect) bool {
	in := finish.Contains(pos)
	entered := in && !l.inside
	if entered {
		l.Lap++
	}
	l.inside = in
	return entered
}

func (l *LapTracker) Finished() bool { return l.Lap >= l.TotalLaps }

func (l *LapTracker) Reset() {
	l.Lap = 0
	l.inside = false
}
