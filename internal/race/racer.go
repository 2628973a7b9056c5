package race

import (
	"gonum.org/v1/gonum/spatial/r2"

	"kartrace/internal/geom"
	"kartrace/internal/track"
)

const DefaultTotalLaps = 3

// Racer is an NPC that follows its private copy of a lane and counts laps.
type Racer struct {
	*Entity

	Params   SteeringParams
	Steering Steering
	Laps     LapTracker

	path       track.Path
	finish     geom.Rect
	place      int
	finishTime float64

	// onLap is set by the coordinator; nil outside a race.
	onLap func(r *Racer)
}

// NewRacer builds a racer entity with a transform at the origin.
func NewRacer(name string, params SteeringParams, totalLaps int) *Racer {
	if totalLaps <= 0 {
		totalLaps = DefaultTotalLaps
	}
	e := NewEntity(name, EntityRacer)
	e.AddTransform(r2.Vec{})
	return &Racer{
		Entity: e,
		Params: params,
		Laps:   LapTracker{TotalLaps: totalLaps},
	}
}

// Update runs one tick of steering then lap tracking.
func (r *Racer) Update(dt float64) {
	body, ok := r.Transform()
	if !ok {
		return
	}
	r.Steering.Steer(body, r.path, r.Params, dt)
	if r.Laps.Update(body.Pos, r.finish) && r.onLap != nil {
		r.onLap(r)
	}
}

// SetPath copies lane, restarts at its first waypoint and moves the body
// there.
func (r *Racer) SetPath(lane track.Path) {
	r.path = lane.Clone()
	r.Steering.Index = 0
	if t, ok := r.Transform(); ok && len(r.path) > 0 {
		t.Pos = r.path[0]
	}
}

func (r *Racer) Path() track.Path { return r.path }

func (r *Racer) SetFinish(f geom.Rect) { r.finish = f }

// Reset puts the racer back on the grid: no laps, no place, first waypoint.
func (r *Racer) Reset() {
	r.Laps.Reset()
	r.place = 0
	r.finishTime = 0
	r.Steering.Index = 0
	if t, ok := r.Transform(); ok && len(r.path) > 0 {
		t.Pos = r.path[0]
		t.Rotation = 0
	}
}

func (r *Racer) CurrentLap() int  { return r.Laps.Lap }
func (r *Racer) TotalLaps() int   { return r.Laps.TotalLaps }
func (r *Racer) IsFinished() bool { return r.Laps.Finished() }

// Place is 0 while racing, then the 1-based finishing position.
func (r *Racer) Place() int { return r.place }

// FinishTime is the race time at which the place was assigned.
func (r *Racer) FinishTime() float64 { return r.finishTime }

// Position returns the body position, or the zero vector without one.
func (r *Racer) Position() r2.Vec {
	if t, ok := r.Transform(); ok {
		return t.Pos
	}
	return r2.Vec{}
}

// Progress is the racer's 0..1 position around the current lap.
func (r *Racer) Progress() float64 {
	t, ok := r.Transform()
	if !ok {
		return 0
	}
	return Progress(t.Pos, r.path, r.Steering.Index)
}
