package race

import (
	"cmp"
	"slices"

	"github.com/samber/lo"

	"kartrace/internal/geom"
	"kartrace/internal/track"
)

// Speed multiplier bounds, matching the debug overlay slider.
const (
	MinSpeedMultiplier = 0.1
	MaxSpeedMultiplier = 3.0
)

// Coordinator owns a fixed field of racers and referees the race: it ticks
// them, hands out finishing places, and keeps the race clock.
type Coordinator struct {
	Events *EventBus

	racers   []*Racer
	finish   geom.Rect
	order    []*Racer
	timer    float64
	paused   bool
	speedMul float64
	done     bool
}

func NewCoordinator(finish geom.Rect, racers []*Racer) *Coordinator {
	c := &Coordinator{
		Events:   NewEventBus(),
		racers:   racers,
		speedMul: 1,
	}
	for _, r := range racers {
		r.onLap = c.lapCompleted
	}
	c.SetFinish(finish)
	return c
}

// NewField creates one racer per name sharing params and lap count.
func NewField(names []string, params SteeringParams, totalLaps int) []*Racer {
	return lo.Map(names, func(name string, _ int) *Racer {
		return NewRacer(name, params, totalLaps)
	})
}

// NewRace puts a fresh field on lanes, ready to tick.
func NewRace(names []string, params SteeringParams, totalLaps int, finish geom.Rect, lanes []track.Path) *Coordinator {
	c := NewCoordinator(finish, NewField(names, params, totalLaps))
	c.AssignLanes(lanes)
	return c
}

// Tick advances the race by dt seconds of wall time. Nothing moves while
// paused.
func (c *Coordinator) Tick(dt float64) {
	if c.paused {
		return
	}
	scaled := dt * c.speedMul
	c.timer += scaled

	for _, r := range c.racers {
		if !r.IsFinished() {
			r.Update(scaled)
		}
	}

	for _, r := range c.racers {
		if r.place != 0 || !r.IsFinished() {
			continue
		}
		c.order = append(c.order, r)
		r.place = len(c.order)
		r.finishTime = c.timer
		c.Events.Emit(Event{Type: EventRacerFinished, Racer: r.Name, Lap: r.CurrentLap(), Place: r.place, Time: c.timer})
	}

	if !c.done && len(c.racers) > 0 && len(c.order) == len(c.racers) {
		c.done = true
		c.Events.Emit(Event{Type: EventRaceCompleted, Time: c.timer})
	}
}

func (c *Coordinator) lapCompleted(r *Racer) {
	c.Events.Emit(Event{Type: EventLapCompleted, Racer: r.Name, Lap: r.CurrentLap(), Time: c.timer})
}

// Reset puts every racer back on the grid and clears the clock and order.
func (c *Coordinator) Reset() {
	for _, r := range c.racers {
		r.Reset()
	}
	c.order = nil
	c.timer = 0
	c.done = false
	c.Events.Emit(Event{Type: EventRaceReset})
}

// AssignLanes gives racer i lane i (the last lane when there are fewer
// lanes than racers) and restarts the race on them.
func (c *Coordinator) AssignLanes(lanes []track.Path) {
	if len(lanes) == 0 {
		return
	}
	for i, r := range c.racers {
		r.SetPath(track.LaneFor(lanes, i))
	}
	c.Reset()
	c.Events.Emit(Event{Type: EventLanesAssigned})
}

// Standings returns the racers ordered by lap progress, highest first.
// Ties keep field order.
func (c *Coordinator) Standings() []*Racer {
	out := slices.Clone(c.racers)
	slices.SortStableFunc(out, func(a, b *Racer) int {
		return cmp.Compare(b.Progress(), a.Progress())
	})
	return out
}

func (c *Coordinator) SetFinish(f geom.Rect) {
	c.finish = f
	for _, r := range c.racers {
		r.SetFinish(f)
	}
}

func (c *Coordinator) Finish() geom.Rect { return c.finish }

func (c *Coordinator) SetPaused(p bool) { c.paused = p }
func (c *Coordinator) TogglePaused()    { c.paused = !c.paused }
func (c *Coordinator) Paused() bool     { return c.paused }

// SetSpeedMultiplier clamps m into [MinSpeedMultiplier, MaxSpeedMultiplier].
func (c *Coordinator) SetSpeedMultiplier(m float64) {
	c.speedMul = geom.ClampF(m, MinSpeedMultiplier, MaxSpeedMultiplier)
}

func (c *Coordinator) SpeedMultiplier() float64 { return c.speedMul }
func (c *Coordinator) Timer() float64           { return c.timer }
func (c *Coordinator) Racers() []*Racer         { return c.racers }

// FinishOrder returns finished racers, first place first.
func (c *Coordinator) FinishOrder() []*Racer { return slices.Clone(c.order) }

// Done reports whether every racer has a place.
func (c *Coordinator) Done() bool { return c.done }

// Result is a racer's line in the final classification.
type Result struct {
	Name       string
	Place      int
	Laps       int
	TotalLaps  int
	FinishTime float64
	Progress   float64
}

// Results lists finishers in order followed by everyone still racing,
// ranked by progress.
func (c *Coordinator) Results() []Result {
	toResult := func(r *Racer, _ int) Result {
		return Result{
			Name:       r.Name,
			Place:      r.place,
			Laps:       r.CurrentLap(),
			TotalLaps:  r.TotalLaps(),
			FinishTime: r.finishTime,
			Progress:   r.Progress(),
		}
	}
	running := lo.Filter(c.Standings(), func(r *Racer, _ int) bool { return r.place == 0 })
	return append(lo.Map(c.order, toResult), lo.Map(running, toResult)...)
}
