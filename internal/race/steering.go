package race

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"kartrace/internal/geom"
	"kartrace/internal/track"
)

// SteeringParams tunes the path follower.
type SteeringParams struct {
	MaxSpeed     float64 // px/s
	Lookahead    float64 // px along the path
	ArriveRadius float64 // px
	// WaypointSpacing is the densify length the followed lane was built
	// with; it converts Lookahead into a waypoint count.
	WaypointSpacing float64
	// BrakeFactor scales Lookahead into the radius inside which speed
	// ramps down linearly.
	BrakeFactor float64
	// MaxAdvance bounds how many waypoints one advance pass may skip.
	MaxAdvance int
}

func DefaultSteeringParams() SteeringParams {
	return SteeringParams{
		MaxSpeed:        200,
		Lookahead:       50,
		ArriveRadius:    10,
		WaypointSpacing: 30,
		BrakeFactor:     0.5,
		MaxAdvance:      8,
	}
}

// LookaheadSteps is the number of waypoints the pursuit target sits ahead
// of the current one. Always at least 1.
func (p SteeringParams) LookaheadSteps() int {
	if p.WaypointSpacing <= 0 {
		return 1
	}
	return max(1, int(math.Round(p.Lookahead/p.WaypointSpacing)))
}

func (p SteeringParams) BrakeRadius() float64 { return p.BrakeFactor * p.Lookahead }

// Steering is the per-racer pure pursuit state.
type Steering struct {
	// Index is the next waypoint the racer has not reached yet.
	Index int
}

// Steer moves b one tick along path: advance past reached waypoints, aim at
// a point a few waypoints ahead, slow down when that point is close, move,
// then advance again so Index always names an unreached waypoint.
func (s *Steering) Steer(b Body, path track.Path, p SteeringParams, dt float64) {
	if b == nil || !path.Drivable() {
		return
	}
	s.Index = geom.Wrap(s.Index, len(path))

	pos := b.Position()
	s.advance(pos, path, p)

	target := path.At(s.Index + p.LookaheadSteps())
	to := r2.Sub(target, pos)
	dist := geom.Length(to)
	if dist <= geom.Epsilon {
		return
	}
	dir := r2.Scale(1/dist, to)

	speed := p.MaxSpeed
	if br := p.BrakeRadius(); br > 0 && dist < br {
		speed = p.MaxSpeed * dist / br
	}

	pos = r2.Add(pos, r2.Scale(speed*dt, dir))
	b.SetPosition(pos)
	b.SetRotation(geom.HeadingDeg(dir))

	s.advance(pos, path, p)
}

// advance steps Index forward while the racer is within ArriveRadius of the
// current waypoint or already beyond it.
func (s *Steering) advance(pos r2.Vec, path track.Path, p SteeringParams) {
	limit := p.MaxAdvance
	if limit <= 0 {
		limit = 1
	}
	for range limit {
		wp := path[s.Index]
		if geom.Dist(pos, wp) > p.ArriveRadius && !passed(pos, path, s.Index) {
			return
		}
		s.Index = (s.Index + 1) % len(path)
	}
}

// passed reports whether pos lies past waypoint i, measured along the
// outgoing segment (incoming when the outgoing one has zero length).
func passed(pos r2.Vec, path track.Path, i int) bool {
	wp := path.At(i)
	seg := r2.Sub(path.At(i+1), wp)
	if geom.Length(seg) <= geom.Epsilon {
		seg = r2.Sub(wp, path.At(i-1))
		if geom.Length(seg) <= geom.Epsilon {
			return false
		}
	}
	return r2.Dot(r2.Sub(pos, wp), seg) > 0
}
