package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"kartrace/internal/config"
	"kartrace/internal/geom"
	"kartrace/internal/race"
	"kartrace/internal/results"
	"kartrace/internal/track"
)

type fakeRecorder struct {
	races []results.Race
	err   error
}

func (f *fakeRecorder) RecordRace(_ context.Context, r results.Race) (uuid.UUID, error) {
	if f.err != nil {
		return uuid.Nil, f.err
	}
	f.races = append(f.races, r)
	return uuid.New(), nil
}

func testSettings(t *testing.T) config.Settings {
	t.Helper()
	cfg := config.Default()
	cfg.TrackFile = filepath.Join(t.TempDir(), "track.path")
	return cfg
}

func newTestSession(t *testing.T, rec Recorder) *Session {
	t.Helper()
	return New(context.Background(), testSettings(t), rec)
}

func TestNewUsesDefaultTrackWhenFileMissing(t *testing.T) {
	s := newTestSession(t, nil)
	assert.Equal(t, "default", s.TrackName())
	assert.Equal(t, track.DefaultCenterline(), s.Center())
	assert.Len(t, s.Lanes(), len(config.DefaultLaneOffsets))
	assert.Len(t, s.Race.Racers(), len(config.DefaultRacers))
	for i, r := range s.Race.Racers() {
		assert.Equal(t, s.Lanes()[i][0], r.Position())
		sp, ok := r.Sprite()
		require.True(t, ok)
		assert.Equal(t, "kart:"+r.Name, sp.Texture)
		assert.Equal(t, KartSize, sp.Size)
	}
	assert.Empty(t, s.Notice.Text)

	ents := s.Entities()
	require.Len(t, ents, 1+len(config.DefaultRacers))
	assert.Equal(t, race.EntityTrack, ents[0].Kind)
	assert.Equal(t, "default", ents[0].Name)
	for i, e := range ents[1:] {
		assert.Equal(t, race.EntityRacer, e.Kind)
		assert.Same(t, s.Race.Racers()[i].Entity, e)
	}
}

func TestNewFallsBackOnBadTrackFile(t *testing.T) {
	cfg := testSettings(t)
	require.NoError(t, os.WriteFile(cfg.TrackFile, []byte("1 2 3\n"), 0o644))

	s := New(context.Background(), cfg, nil)
	assert.Equal(t, "default", s.TrackName())
	assert.Equal(t, NoticeError, s.Notice.Kind)
	assert.NotEmpty(t, s.Notice.Text)
}

func TestNewLoadsTrackFile(t *testing.T) {
	cfg := testSettings(t)
	require.NoError(t, track.SaveFile(cfg.TrackFile, track.Path{{X: 0, Y: 0}, {X: 600, Y: 0}, {X: 600, Y: 400}, {X: 0, Y: 400}}))

	s := New(context.Background(), cfg, nil)
	assert.Equal(t, cfg.TrackFile, s.TrackName())
	assert.Len(t, s.Center(), 4)
}

func TestUpdateClampsFrameTime(t *testing.T) {
	s := newTestSession(t, nil)

	s.Update(1.0)
	assert.InDelta(t, config.MaxFrameDt, s.Race.Timer(), 1e-12)

	s.Update(-0.5)
	assert.InDelta(t, config.MaxFrameDt, s.Race.Timer(), 1e-12)

	assert.Equal(t, 0.0, ClampDt(-1))
	assert.Equal(t, 0.05, ClampDt(0.05))
}

func TestUpdateTracksFPS(t *testing.T) {
	s := newTestSession(t, nil)
	s.Update(1.0 / 60)
	assert.InDelta(t, 60, s.FPS, 1e-9)
	for range 200 {
		s.Update(1.0 / 30)
	}
	assert.InDelta(t, 30, s.FPS, 0.01)
}

func TestPauseAndNotice(t *testing.T) {
	s := newTestSession(t, nil)
	require.True(t, s.Apply(ActionTogglePause, r2.Vec{}))
	assert.True(t, s.Race.Paused())
	assert.Equal(t, "Paused", s.Notice.Text)

	s.Update(0.05)
	assert.Zero(t, s.Race.Timer())
	assert.Equal(t, "Paused", s.Notice.Text)

	s.Update(NoticeDuration)
	assert.Empty(t, s.Notice.Text)

	s.Apply(ActionTogglePause, r2.Vec{})
	assert.False(t, s.Race.Paused())
}

func TestSpeedActions(t *testing.T) {
	s := newTestSession(t, nil)
	require.True(t, s.Apply(ActionFaster, r2.Vec{}))
	assert.Equal(t, 1.25, s.Race.SpeedMultiplier())
	s.Apply(ActionSlower, r2.Vec{})
	s.Apply(ActionSlower, r2.Vec{})
	assert.Equal(t, 0.75, s.Race.SpeedMultiplier())

	for range 20 {
		s.Apply(ActionFaster, r2.Vec{})
	}
	assert.Equal(t, 3.0, s.Race.SpeedMultiplier())
	assert.False(t, s.Apply(ActionFaster, r2.Vec{}), "already at the top")
}

func TestResetAction(t *testing.T) {
	s := newTestSession(t, nil)
	for range 30 {
		s.Update(0.05)
	}
	require.Positive(t, s.Race.Timer())
	require.True(t, s.Apply(ActionReset, r2.Vec{}))
	assert.Zero(t, s.Race.Timer())
	assert.Equal(t, s.Lanes()[0][0], s.Race.Racers()[0].Position())
}

func TestEditorActions(t *testing.T) {
	s := newTestSession(t, nil)
	at := r2.Vec{X: 10, Y: 10}

	assert.False(t, s.Apply(ActionAddPoint, at), "edit mode off")
	assert.False(t, s.Apply(ActionFinalize, at))
	assert.False(t, s.Apply(ActionPlaceFinish, at))

	require.True(t, s.Apply(ActionToggleEdit, at))
	assert.True(t, s.Editor.Active)

	square := []r2.Vec{{X: 400, Y: 200}, {X: 1400, Y: 200}, {X: 1400, Y: 800}, {X: 400, Y: 800}}
	for _, p := range square {
		require.True(t, s.Apply(ActionAddPoint, p))
	}
	require.True(t, s.Apply(ActionAddPoint, r2.Vec{X: 1, Y: 1}))
	require.True(t, s.Apply(ActionUndo, at))
	assert.Len(t, s.Editor.Points, 4)

	require.True(t, s.Apply(ActionFinalize, at))
	assert.Equal(t, "edited", s.TrackName())
	assert.Equal(t, race.EntityTrack, s.Entities()[0].Kind)
	assert.Len(t, s.Center(), 4)
	require.Len(t, s.Lanes(), 4)
	for i, r := range s.Race.Racers() {
		assert.Equal(t, s.Lanes()[i][0], r.Position())
	}

	require.True(t, s.Apply(ActionPlaceFinish, r2.Vec{X: 400, Y: 500}))
	assert.Equal(t, geom.RectAround(r2.Vec{X: 400, Y: 500}, track.FinishSize, track.FinishSize), s.Race.Finish())

	require.True(t, s.Apply(ActionClear, at))
	assert.Empty(t, s.Editor.Points)
	assert.False(t, s.Apply(ActionClear, at))

	assert.False(t, s.Apply(ActionFinalize, at))
	assert.Equal(t, NoticeError, s.Notice.Kind)
}

func TestSaveLoadActions(t *testing.T) {
	s := newTestSession(t, nil)
	s.Apply(ActionToggleEdit, r2.Vec{})

	assert.False(t, s.Apply(ActionSave, r2.Vec{}), "nothing to save")
	assert.False(t, s.Apply(ActionLoad, r2.Vec{}), "no file yet")
	assert.Equal(t, NoticeError, s.Notice.Kind)

	s.Apply(ActionAddPoint, r2.Vec{X: 1, Y: 2})
	s.Apply(ActionAddPoint, r2.Vec{X: 3, Y: 4})
	require.True(t, s.Apply(ActionSave, r2.Vec{}))

	s.Apply(ActionClear, r2.Vec{})
	require.True(t, s.Apply(ActionLoad, r2.Vec{}))
	assert.Equal(t, track.Path{{X: 1, Y: 2}, {X: 3, Y: 4}}, s.Editor.Points)
}

func TestUnknownAction(t *testing.T) {
	s := newTestSession(t, nil)
	assert.False(t, s.Apply(ActionNone, r2.Vec{}))
	assert.False(t, s.Apply(Action(99), r2.Vec{}))
	assert.Equal(t, "unknown", Action(99).String())
	assert.Equal(t, "place-finish", ActionPlaceFinish.String())
}

func runToFinish(t *testing.T, s *Session) {
	t.Helper()
	for range 5000 {
		if s.Race.Done() {
			return
		}
		s.Update(0.05)
	}
	t.Fatal("race did not finish")
}

func TestRecordsCompletedRace(t *testing.T) {
	rec := &fakeRecorder{}
	cfg := testSettings(t)
	cfg.Laps = 1
	s := New(context.Background(), cfg, rec)

	runToFinish(t, s)
	require.Len(t, rec.races, 1)
	got := rec.races[0]
	assert.Equal(t, "default", got.Track)
	assert.Equal(t, 1, got.Laps)
	assert.Equal(t, s.Race.Timer(), got.Duration)
	require.Len(t, got.Entries, len(cfg.Racers))
	for i, e := range got.Entries {
		assert.Equal(t, i+1, e.Place)
	}

	s.Update(0.05)
	assert.Len(t, rec.races, 1, "recorded once")
}

func TestRecordFailureIsReported(t *testing.T) {
	rec := &fakeRecorder{err: errors.New("disk full")}
	cfg := testSettings(t)
	cfg.Laps = 1
	s := New(context.Background(), cfg, rec)

	runToFinish(t, s)
	assert.Equal(t, NoticeError, s.Notice.Kind)
	assert.Equal(t, "Could not record race", s.Notice.Text)
}
