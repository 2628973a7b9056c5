package game

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"gonum.org/v1/gonum/spatial/r2"

	"kartrace/internal/session"
)

type Input struct {
	prevMouse map[glfw.MouseButton]bool
	prevKeys  map[glfw.Key]bool
}

func NewInput() *Input {
	return &Input{
		prevMouse: make(map[glfw.MouseButton]bool),
		prevKeys:  make(map[glfw.Key]bool),
	}
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

func (in *Input) JustClicked(window *glfw.Window, btn glfw.MouseButton) bool {
	down := window.GetMouseButton(btn) == glfw.Press
	jp := down && !in.prevMouse[btn]
	in.prevMouse[btn] = down
	return jp
}

// keyActions binds keys to session actions, in the order they are polled.
var keyActions = []struct {
	key    glfw.Key
	action session.Action
}{
	{glfw.KeySpace, session.ActionTogglePause},
	{glfw.KeyR, session.ActionReset},
	{glfw.KeyEqual, session.ActionFaster},
	{glfw.KeyKPAdd, session.ActionFaster},
	{glfw.KeyMinus, session.ActionSlower},
	{glfw.KeyKPSubtract, session.ActionSlower},
	{glfw.KeyE, session.ActionToggleEdit},
	{glfw.KeyZ, session.ActionUndo},
	{glfw.KeyC, session.ActionClear},
	{glfw.KeyF, session.ActionFinalize},
	{glfw.KeyS, session.ActionSave},
	{glfw.KeyL, session.ActionLoad},
	{glfw.KeyG, session.ActionPlaceFinish},
}

// Actions returns the actions triggered this frame. Every binding is
// polled so edge detection stays in step.
func (in *Input) Actions(window *glfw.Window) []session.Action {
	var out []session.Action
	for _, b := range keyActions {
		if in.JustPressed(window, b.key) {
			out = append(out, b.action)
		}
	}
	if in.JustClicked(window, glfw.MouseButtonLeft) {
		out = append(out, session.ActionAddPoint)
	}
	return out
}

// CursorWorldPos converts the cursor position to world coordinates.
func CursorWorldPos(window *glfw.Window, cam Camera, fbW, fbH int) r2.Vec {
	cx, cy := window.GetCursorPos()
	winW, winH := window.GetSize()
	if winW <= 0 || winH <= 0 {
		return cam.Center
	}
	// window coordinates differ from framebuffer pixels on HiDPI screens
	fx := cx * float64(fbW) / float64(winW)
	fy := cy * float64(fbH) / float64(winH)
	return cam.ToWorld(r2.Vec{X: fx, Y: fy}, fbW, fbH)
}
