package race

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r2"

	"kartrace/internal/geom"
)

func TestLapTrackerRisingEdge(t *testing.T) {
	finish := geom.NewRect(0, 0, 10, 10)
	inside := r2.Vec{X: 5, Y: 5}
	outside := r2.Vec{X: 50, Y: 50}
	l := LapTracker{TotalLaps: 2}

	entered := 0
	for range 5 {
		if l.Update(inside, finish) {
			entered++
		}
	}
	assert.Equal(t, 1, entered)
	assert.Equal(t, 1, l.Lap)
	assert.False(t, l.Finished())

	assert.False(t, l.Update(outside, finish))
	assert.True(t, l.Update(inside, finish))
	assert.Equal(t, 2, l.Lap)
	assert.True(t, l.Finished())
}

func TestLapTrackerEdgeCountsAsInside(t *testing.T) {
	finish := geom.NewRect(0, 0, 10, 10)
	l := LapTracker{TotalLaps: 3}
	assert.True(t, l.Update(r2.Vec{X: 10, Y: 0}, finish))
}

func TestLapTrackerReset(t *testing.T) {
	finish := geom.NewRect(0, 0, 10, 10)
	l := LapTracker{TotalLaps: 1}
	l.Update(r2.Vec{X: 1, Y: 1}, finish)
	assert.True(t, l.Finished())

	l.Reset()
	assert.Equal(t, 0, l.Lap)
	assert.False(t, l.Finished())
	// still inside after reset: a fresh entry counts
	assert.True(t, l.Update(r2.Vec{X: 1, Y: 1}, finish))
}

func TestLapTrackerFinishedThreshold(t *testing.T) {
	tests := []struct {
		lap, total int
		want       bool
	}{
		{0, 3, false},
		{2, 3, false},
		{3, 3, true},
		{4, 3, true},
	}
	for _, tt := range tests {
		l := LapTracker{Lap: tt.lap, TotalLaps: tt.total}
		assert.Equal(t, tt.want, l.Finished(), "lap %d of %d", tt.lap, tt.total)
	}
}
