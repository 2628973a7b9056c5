package ui

import (
	"context"
	"image"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"kartrace/internal/config"
	"kartrace/internal/session"
)

func TestRGB(t *testing.T) {
	c := RGB{R: 200, G: 100, B: 10}

	assert.Equal(t, c, c.Mul(255))
	assert.Equal(t, RGB{}, c.Mul(0))
	assert.Equal(t, RGB{R: 100, G: 50, B: 5}, c.Mul(128))

	assert.Equal(t, RGB{R: 255, G: 90, B: 0}, c.Add(100, -10, -20))

	assert.Equal(t, RGB{R: 100, G: 50, B: 5}, c.Scale(0.5))
	assert.Equal(t, c, c.Scale(3), "clamped to 1")
	assert.Equal(t, RGB{}, c.Scale(-1))

	r, g, b := RGB{R: 255, G: 0, B: 51}.F32()
	assert.InDelta(t, 1, r, 1e-6)
	assert.InDelta(t, 0, g, 1e-6)
	assert.InDelta(t, 0.2, b, 1e-6)
}

func TestKartColor(t *testing.T) {
	assert.Equal(t, kartColors["Mario"], KartColor("Mario", 3))
	assert.Equal(t, fallbackKartColors[0], KartColor("Bowser", 0))
	assert.Equal(t, fallbackKartColors[1], KartColor("Bowser", len(fallbackKartColors)+1))
}

func cellHasInk(img *image.NRGBA, ch rune) bool {
	col, row := glyphCell(ch)
	for y := row * GlyphH; y < (row+1)*GlyphH; y++ {
		for x := col * GlyphW; x < (col+1)*GlyphW; x++ {
			if img.NRGBAAt(x, y).A > 0 {
				return true
			}
		}
	}
	return false
}

func TestBuildFontAtlas(t *testing.T) {
	img := BuildFontAtlas()
	assert.Equal(t, image.Rect(0, 0, AtlasW, AtlasH), img.Bounds())

	assert.False(t, cellHasInk(img, ' '))
	for _, ch := range "A0z#~" {
		assert.True(t, cellHasInk(img, ch), "glyph %q", ch)
	}
}

func TestGlyphUV(t *testing.T) {
	u0, v0, u1, v1, ok := GlyphUV(' ')
	require.True(t, ok)
	assert.Equal(t, [4]float32{0, 0, float32(GlyphW) / AtlasW, float32(GlyphH) / AtlasH}, [4]float32{u0, v0, u1, v1})

	// 'A' is 33 cells in: column 1, row 2.
	u0, v0, _, _, ok = GlyphUV('A')
	require.True(t, ok)
	assert.InDelta(t, float32(GlyphW)/AtlasW, u0, 1e-6)
	assert.InDelta(t, float32(2*GlyphH)/AtlasH, v0, 1e-6)

	_, _, u1, v1, ok = GlyphUV('~')
	require.True(t, ok)
	assert.LessOrEqual(t, u1, float32(1))
	assert.LessOrEqual(t, v1, float32(1))

	for _, ch := range []rune{'\n', 127, 'é'} {
		_, _, _, _, ok = GlyphUV(ch)
		assert.False(t, ok, "rune %q", ch)
	}
}

func TestTextWidth(t *testing.T) {
	assert.Equal(t, 0, TextWidth("", 2))
	assert.Equal(t, 5*GlyphW, TextWidth("hello", 1))
	assert.Equal(t, 10*GlyphW, TextWidth("hello", 2))
	assert.Equal(t, 6*GlyphW, TextWidth("ab\nlonger\nc", 1))
	assert.Equal(t, 32, LineHeight(2))
}

func newSession(t *testing.T) *session.Session {
	t.Helper()
	cfg := config.Default()
	cfg.TrackFile = filepath.Join(t.TempDir(), "track.path")
	return session.New(context.Background(), cfg, nil)
}

func msgs(texts []Text) []string {
	out := make([]string, len(texts))
	for i, tx := range texts {
		out[i] = tx.Msg
	}
	return out
}

func findText(texts []Text, prefix string) (Text, bool) {
	for _, tx := range texts {
		if strings.HasPrefix(tx.Msg, prefix) {
			return tx, true
		}
	}
	return Text{}, false
}

func TestHUDRunning(t *testing.T) {
	s := newSession(t)
	s.Update(0.05)
	texts := HUD(s, 1280, 720)

	timeText, ok := findText(texts, "Time ")
	require.True(t, ok)
	assert.Equal(t, hudMargin, timeText.X)

	fps, ok := findText(texts, "FPS ")
	require.True(t, ok)
	assert.Equal(t, 1280-hudMargin, fps.X+TextWidth(fps.Msg, fps.Scale))

	all := strings.Join(msgs(texts), "\n")
	assert.Contains(t, all, "default")
	assert.Contains(t, all, "Speed x1.00")
	for _, name := range config.DefaultRacers {
		assert.Contains(t, all, name)
	}
	assert.Contains(t, all, "E edit")
	assert.NotContains(t, all, "PAUSED")
	assert.NotContains(t, all, "WINS")
}

func TestHUDPausedAndNotice(t *testing.T) {
	s := newSession(t)
	s.Apply(session.ActionTogglePause, r2.Vec{})
	texts := HUD(s, 800, 600)

	paused, ok := findText(texts, "PAUSED")
	require.True(t, ok)
	assert.Equal(t, bigScale, paused.Scale)
	assert.Equal(t, 400, paused.X+TextWidth("PAUSED", bigScale)/2)

	notice, ok := findText(texts, "Paused")
	require.True(t, ok)
	assert.Equal(t, Palette.Text, notice.Color)
}

func TestHUDEditor(t *testing.T) {
	s := newSession(t)
	s.Apply(session.ActionToggleEdit, r2.Vec{})
	s.Apply(session.ActionAddPoint, r2.Vec{X: 5, Y: 5})
	texts := HUD(s, 800, 600)

	all := msgs(texts)
	for _, line := range session.Help {
		assert.Contains(t, all, line)
	}
	assert.Contains(t, all, "EDIT  1 points")
}

func TestHUDWinner(t *testing.T) {
	cfg := config.Default()
	cfg.TrackFile = filepath.Join(t.TempDir(), "track.path")
	cfg.Laps = 1
	s := session.New(context.Background(), cfg, nil)
	for i := 0; i < 5000 && !s.Race.Done(); i++ {
		s.Update(0.05)
	}
	require.True(t, s.Race.Done())

	texts := HUD(s, 800, 600)
	winner := s.Race.FinishOrder()[0].Name
	w, ok := findText(texts, winner+" WINS")
	require.True(t, ok)
	assert.Equal(t, Palette.Good, w.Color)

	p1, ok := findText(texts, "P1 ")
	require.True(t, ok)
	assert.Contains(t, p1.Msg, "FIN")
}

func TestStandingLine(t *testing.T) {
	s := newSession(t)
	r := s.Race.Results()[0]
	r.Place, r.Laps, r.Progress = 0, 1, 0.5
	assert.Equal(t, "1. "+padName(r.Name)+" L1/3  50%", standingLine(0, r))
	assert.Equal(t, Palette.Text, standingColor(r))

	r.Place, r.FinishTime = 2, 61.5
	assert.Equal(t, "P2 "+padName(r.Name)+" FIN 61.50s", standingLine(0, r))
	assert.Equal(t, Palette.Warn, standingColor(r))
}

func padName(n string) string {
	for len(n) < 8 {
		n += " "
	}
	return n
}
