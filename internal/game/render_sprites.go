package game

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"kartrace/internal/ui"
)

func spriteCount(buf []float32) int {
	return min(len(buf)/ui.SpriteFloats, MaxSpriteRender)
}

// DrawSprites renders point sprites with alpha blending.
// buf format: [x, y, size, r, g, b, a, rotation] * N.
// round draws discs instead of squares.
func (r *Renderer) DrawSprites(buf []float32, cam Camera, fbW, fbH int, round bool) {
	count := spriteCount(buf)
	if count == 0 {
		return
	}

	gl.UseProgram(r.spriteProg)
	gl.BindVertexArray(r.spriteVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.spriteVBO)
	setView(r.spUCamera, r.spUZoom, r.spUResolution, cam, fbW, fbH)
	var rv int32
	if round {
		rv = 1
	}
	gl.Uniform1i(r.spURound, rv)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.BufferData(gl.ARRAY_BUFFER, count*ui.SpriteFloats*4, gl.Ptr(buf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.POINTS, 0, int32(count))
	gl.Disable(gl.BLEND)
}

// DrawGlowSprites renders light sprites with additive blending and radial falloff.
// RGB values should be pre-multiplied by the desired brightness.
func (r *Renderer) DrawGlowSprites(buf []float32, cam Camera, fbW, fbH int) {
	count := spriteCount(buf)
	if count == 0 {
		return
	}
	gl.UseProgram(r.glowProg)
	gl.BindVertexArray(r.spriteVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.spriteVBO)
	setView(r.glowUCamera, r.glowUZoom, r.glowUResolution, cam, fbW, fbH)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.ONE, gl.ONE)
	gl.BufferData(gl.ARRAY_BUFFER, count*ui.SpriteFloats*4, gl.Ptr(buf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.POINTS, 0, int32(count))
	gl.Disable(gl.BLEND)
}

// DrawLine renders verts (x, y pairs) as one polyline. closed joins the
// last vertex back to the first.
func (r *Renderer) DrawLine(verts []float32, closed bool, col ui.RGB, alpha float32, cam Camera, fbW, fbH int) {
	count := min(len(verts)/2, MaxLineVerts)
	if count < 2 {
		return
	}
	mode := uint32(gl.LINE_STRIP)
	if closed {
		mode = gl.LINE_LOOP
	}

	gl.UseProgram(r.lineProg)
	gl.BindVertexArray(r.lineVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	setView(r.lineUCamera, r.lineUZoom, r.lineUResolution, cam, fbW, fbH)
	cr, cg, cb := col.F32()
	gl.Uniform4f(r.lineUColor, cr, cg, cb, alpha)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.BufferData(gl.ARRAY_BUFFER, count*2*4, gl.Ptr(verts), gl.STREAM_DRAW)
	gl.DrawArrays(mode, 0, int32(count))
	gl.Disable(gl.BLEND)
}
