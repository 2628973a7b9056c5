// Package session is the interactive race: the field, the track editor and
// the notices the host shows. The desktop host feeds it actions and frame
// times and draws what it exposes.
package session

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r2"

	"kartrace/internal/config"
	"kartrace/internal/geom"
	"kartrace/internal/log"
	"kartrace/internal/race"
	"kartrace/internal/results"
	"kartrace/internal/track"
)

const (
	SpeedStep      = 0.25
	NoticeDuration = 2.5 // seconds
	fpsSmoothing   = 0.1

	// KartSize is the drawn length of a kart in world pixels.
	KartSize = 24.0
)

// KartTexture is the texture id a racer's sprite resolves through the
// host's texture cache.
func KartTexture(name string) string { return "kart:" + name }

// Recorder stores a finished race.
type Recorder interface {
	RecordRace(ctx context.Context, r results.Race) (uuid.UUID, error)
}

type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeError
)

// Notice is a short status line that fades out.
type Notice struct {
	Text  string
	Kind  NoticeKind
	Timer float64
}

type Session struct {
	Race      *race.Coordinator
	Editor *track.Editor
	// Track is the EntityTrack entity holding the circuit being raced.
	Track  *race.Entity
	Notice Notice
	FPS    float64

	ctx      context.Context
	cfg      config.Settings
	recorder Recorder
}

// New loads the configured track, falling back to the built-in circuit
// when the file is missing or unusable, and puts the field on the grid.
// rec may be nil.
func New(ctx context.Context, cfg config.Settings, rec Recorder) *Session {
	s := &Session{
		Editor:   track.NewEditor(cfg.WaypointSpacing, cfg.LaneOffsets, cfg.TrackFile),
		ctx:      ctx,
		cfg:      cfg,
		recorder: rec,
	}

	center, fromFile, err := track.LoadOrDefault(cfg.TrackFile)
	name := "default"
	if err != nil {
		log.Warn("Could not load track, using the default circuit",
			log.String("file", cfg.TrackFile), log.ErrorField(err))
		s.notify(NoticeError, "Track file unusable, using default")
		center = track.DefaultCenterline()
	} else if fromFile {
		name = cfg.TrackFile
	}
	lanes := track.BuildLanes(center, cfg.WaypointSpacing, cfg.LaneOffsets)
	if len(lanes) == 0 {
		log.Warn("Track has no drivable lanes, using the default circuit", log.String("file", cfg.TrackFile))
		center, name = track.DefaultCenterline(), "default"
		lanes = track.BuildLanes(center, cfg.WaypointSpacing, cfg.LaneOffsets)
	}

	s.Race = race.NewRace(cfg.Racers, cfg.SteeringParams(), cfg.Laps, cfg.FinishRegion(), lanes)
	s.Race.SetSpeedMultiplier(cfg.SpeedMultiplier)
	for _, r := range s.Race.Racers() {
		r.AddSprite(race.Sprite{Texture: KartTexture(r.Name), Size: KartSize})
	}
	s.Race.Events.Subscribe(race.EventRaceCompleted, func(race.Event) { s.record() })
	s.setTrack(center, lanes, name)
	return s
}

func (s *Session) setTrack(center track.Path, lanes []track.Path, name string) {
	s.Track = race.NewTrackEntity(name, center, lanes)
	log.Info("Track ready",
		log.String("track", name),
		log.Int("points", len(center)),
		log.Int("lanes", len(lanes)),
		log.Int("lanePoints", len(lanes[0])))
}

func (s *Session) TrackName() string { return s.Track.Name }

// Center is the centerline of the raced circuit.
func (s *Session) Center() track.Path {
	c, ok := s.Track.Circuit()
	if !ok {
		return nil
	}
	return c.Center
}

func (s *Session) Lanes() []track.Path {
	c, ok := s.Track.Circuit()
	if !ok {
		return nil
	}
	return c.Lanes
}

// Entities lists everything in the world, the track first and then the
// racers in grid order.
func (s *Session) Entities() []*race.Entity {
	out := make([]*race.Entity, 0, 1+len(s.Race.Racers()))
	out = append(out, s.Track)
	for _, r := range s.Race.Racers() {
		out = append(out, r.Entity)
	}
	return out
}

// Update advances the session by one rendered frame. The race sees dt
// clamped to [0, config.MaxFrameDt].
func (s *Session) Update(frameDt float64) {
	if frameDt > 0 {
		inst := 1 / frameDt
		if s.FPS == 0 {
			s.FPS = inst
		} else {
			s.FPS += (inst - s.FPS) * fpsSmoothing
		}
	}
	s.Race.Tick(ClampDt(frameDt))

	if s.Notice.Timer > 0 {
		s.Notice.Timer -= max(frameDt, 0)
		if s.Notice.Timer <= 0 {
			s.Notice = Notice{}
		}
	}
}

// ClampDt keeps a frame time usable by the race: never negative, and a
// stall never teleports racers through the finish region.
func ClampDt(dt float64) float64 {
	return geom.ClampF(dt, 0, config.MaxFrameDt)
}

func (s *Session) notify(kind NoticeKind, format string, args ...any) {
	s.Notice = Notice{Text: fmt.Sprintf(format, args...), Kind: kind, Timer: NoticeDuration}
}

// Apply performs a host action. at is the cursor in world space for the
// actions that need a position. It reports whether anything changed.
func (s *Session) Apply(a Action, at r2.Vec) bool {
	switch a {
	case ActionTogglePause:
		s.Race.TogglePaused()
		if s.Race.Paused() {
			s.notify(NoticeInfo, "Paused")
		} else {
			s.notify(NoticeInfo, "Running")
		}
	case ActionReset:
		s.Race.Reset()
		s.notify(NoticeInfo, "Race reset")
	case ActionFaster, ActionSlower:
		step := SpeedStep
		if a == ActionSlower {
			step = -step
		}
		before := s.Race.SpeedMultiplier()
		s.Race.SetSpeedMultiplier(before + step)
		if s.Race.SpeedMultiplier() == before {
			return false
		}
		s.notify(NoticeInfo, "Speed x%.2f", s.Race.SpeedMultiplier())
	case ActionToggleEdit:
		if s.Editor.Toggle() {
			s.notify(NoticeInfo, "Edit mode on")
		} else {
			s.notify(NoticeInfo, "Edit mode off")
		}
	case ActionAddPoint:
		return s.Editor.Add(at)
	case ActionUndo:
		return s.Editor.Undo()
	case ActionClear:
		if !s.Editor.Active || len(s.Editor.Points) == 0 {
			return false
		}
		s.Editor.Clear()
		s.notify(NoticeInfo, "Edit path cleared")
	case ActionFinalize:
		return s.finalize()
	case ActionSave:
		return s.save()
	case ActionLoad:
		return s.load()
	case ActionPlaceFinish:
		f, ok := s.Editor.FinishAt(at)
		if !ok {
			return false
		}
		s.Race.SetFinish(f)
		s.notify(NoticeInfo, "Finish moved to %.0f,%.0f", at.X, at.Y)
	default:
		return false
	}
	return true
}

func (s *Session) finalize() bool {
	if !s.Editor.Active {
		return false
	}
	center, lanes, err := s.Editor.Finalize()
	if err != nil {
		s.notify(NoticeError, "Cannot finalize: %v", err)
		return false
	}
	s.setTrack(center, lanes, "edited")
	s.Race.AssignLanes(lanes)
	s.notify(NoticeInfo, "Track finalized: %d points, %d lanes", len(center), len(lanes))
	return true
}

func (s *Session) save() bool {
	if err := s.Editor.Save(); err != nil {
		log.Warn("Could not save track", log.String("file", s.Editor.File), log.ErrorField(err))
		s.notify(NoticeError, "Save failed: %v", err)
		return false
	}
	log.Info("Saved track", log.String("file", s.Editor.File), log.Int("points", len(s.Editor.Points)))
	s.notify(NoticeInfo, "Saved %d points", len(s.Editor.Points))
	return true
}

func (s *Session) load() bool {
	if err := s.Editor.Load(); err != nil {
		log.Warn("Could not load track", log.String("file", s.Editor.File), log.ErrorField(err))
		s.notify(NoticeError, "Load failed: %v", err)
		return false
	}
	s.notify(NoticeInfo, "Loaded %d points, F to apply", len(s.Editor.Points))
	return true
}

func (s *Session) record() {
	if s.recorder == nil {
		return
	}
	id, err := s.recorder.RecordRace(s.ctx, results.Race{
		Track:    s.TrackName(),
		Laps:     s.cfg.Laps,
		Duration: s.Race.Timer(),
		Entries:  s.Race.Results(),
	})
	if err != nil {
		log.Error("Could not record race", log.ErrorField(err))
		s.notify(NoticeError, "Could not record race")
		return
	}
	log.Info("Recorded race", log.String("id", id.String()))
}
