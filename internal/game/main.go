// Package game is the desktop host: a GLFW window with an OpenGL renderer
// and oto sound, driving an interactive race session.
package game

import (
	"context"
	"fmt"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"kartrace/internal/config"
	"kartrace/internal/geom"
	"kartrace/internal/log"
	"kartrace/internal/race"
	"kartrace/internal/results"
	"kartrace/internal/session"
	"kartrace/internal/ui"
)

// frameBuffers are the per-frame vertex buffers, reused across frames.
type frameBuffers struct {
	asphalt, lanes, finish, edit []float32
	shadows, dots, glow          []float32
	line                         []float32
}

// RunDesktop opens the race window and runs until it is closed, Esc is
// pressed or the process is interrupted.
func RunDesktop(cfg config.Settings) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	window, err := initWindow(cfg.WindowW, cfg.WindowH)
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	if cfg.Audio {
		if err := InitAudio(); err != nil {
			log.Warn("Audio init failed, continuing without sound", log.ErrorField(err))
		}
	}

	var rec session.Recorder
	if cfg.DB != "" {
		store, err := results.Open(cfg.DB)
		if err != nil {
			return err
		}
		defer store.Close()
		rec = store
	}

	s := session.New(ctx, cfg, rec)
	BindAudio(s.Race.Events)

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	rend, err := NewRenderer()
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()
	if err := rend.InitFont(); err != nil {
		return fmt.Errorf("font: %w", err)
	}

	log.Info("Window open",
		log.String("track", s.TrackName()),
		log.Int("racers", len(s.Race.Racers())),
		log.Int("laps", cfg.Laps))

	var cam Camera
	input := NewInput()
	var fb frameBuffers

	last := glfw.GetTime()
	for !window.ShouldClose() {
		if ctx.Err() != nil {
			log.Info("Interrupted, closing window")
			break
		}
		now := glfw.GetTime()
		dt := now - last
		last = now

		glfw.PollEvents()
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
			continue
		}

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}

		UpdateAutoCamera(&cam, s, fbW, fbH)
		cursor := CursorWorldPos(window, cam, fbW, fbH)
		for _, a := range input.Actions(window) {
			if a == session.ActionAddPoint && !s.Editor.Active {
				continue
			}
			ok := s.Apply(a, cursor)
			log.Debug("Action", log.String("action", a.String()), log.Bool("changed", ok))
			if a != session.ActionReset {
				PlaySound(actionSound(a, ok))
			}
			// karts jump back to the grid
			if ok && (a == session.ActionReset || a == session.ActionFinalize) {
				rend.headings.Forget()
			}
		}

		s.Update(dt)

		rend.BeginFrame(fbW, fbH)
		drawWorld(rend, s, &fb, dt, cam, fbW, fbH)
		RenderHUD(rend, s, fbW, fbH)
		window.SwapBuffers()
	}
	return nil
}

func drawWorld(rend *Renderer, s *session.Session, fb *frameBuffers, dt float64, cam Camera, fbW, fbH int) {
	var karts []*race.Entity
	for _, e := range s.Entities() {
		switch e.Kind {
		case race.EntityTrack:
			drawTrack(rend, e, s.Race.Finish(), fb, cam, fbW, fbH)
		case race.EntityRacer:
			karts = append(karts, e)
		}
	}

	if s.Editor.Active && len(s.Editor.Points) > 0 {
		fb.line = ui.LineVerts(fb.line, s.Editor.Points)
		rend.DrawLine(fb.line, len(s.Editor.Points) >= 3, ui.Palette.EditPath, 1, cam, fbW, fbH)
		fb.edit = ui.EditSprites(fb.edit, s.Editor.Points)
		rend.DrawSprites(fb.edit, cam, fbW, fbH, true)
	}

	// leader glow under the karts
	fb.glow = fb.glow[:0]
	if st := s.Race.Standings(); len(st) > 0 && !s.Race.Done() {
		fb.glow = ui.AppendSprite(fb.glow, st[0].Position(), session.KartSize*2.2, ui.Palette.Warn.Scale(0.35), 1, 0)
	}
	rend.DrawGlowSprites(fb.glow, cam, fbW, fbH)

	fb.shadows = ui.KartShadowSprites(fb.shadows, karts)
	rend.DrawSprites(fb.shadows, cam, fbW, fbH, true)
	rend.DrawKarts(karts, dt, cam, fbW, fbH)

	fb.dots = ui.RacerDots(fb.dots, karts)
	rend.DrawSprites(fb.dots, cam, fbW, fbH, true)
}

// drawTrack draws a track entity: asphalt, the finish region, lane dots
// and the centerline loop.
func drawTrack(rend *Renderer, e *race.Entity, finish geom.Rect, fb *frameBuffers, cam Camera, fbW, fbH int) {
	c, ok := e.Circuit()
	if !ok {
		return
	}
	fb.asphalt = ui.AsphaltSprites(fb.asphalt, c.Center)
	rend.DrawSprites(fb.asphalt, cam, fbW, fbH, true)

	fb.finish = ui.FinishSprites(fb.finish, finish)
	rend.DrawSprites(fb.finish, cam, fbW, fbH, false)

	fb.lanes = ui.LaneSprites(fb.lanes, c.Lanes)
	rend.DrawSprites(fb.lanes, cam, fbW, fbH, true)

	fb.line = ui.LineVerts(fb.line, c.Center)
	rend.DrawLine(fb.line, true, ui.Palette.Centerline, 0.9, cam, fbW, fbH)
}
