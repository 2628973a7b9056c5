package game

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"kartrace/internal/ui"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

type Renderer struct {
	// Quad program: rotated textured karts.
	quadProg uint32
	quadVAO  uint32
	quadVBO  uint32

	qUOrigin     int32
	qUSize       int32
	qURotation   int32
	qUCamera     int32
	qUZoom       int32
	qUResolution int32
	qUTex        int32

	// Point sprite program.
	spriteProg uint32
	spriteVAO  uint32
	spriteVBO  uint32

	spUCamera     int32
	spUZoom       int32
	spUResolution int32
	spURound      int32

	// Glow (radial light) program; uses spriteVAO, additive blend only.
	glowProg        uint32
	glowUCamera     int32
	glowUZoom       int32
	glowUResolution int32

	// Line program: track loops and the edit path.
	lineProg        uint32
	lineVAO         uint32
	lineVBO         uint32
	lineUCamera     int32
	lineUZoom       int32
	lineUResolution int32
	lineUColor      int32

	// Kart textures keyed by sprite texture id.
	textures *ui.Cache[uint32]
	// Drawn kart angles keyed by entity name.
	headings *ui.Headings

	// Font/text rendering.
	fontTex      uint32
	textProg     uint32
	textVAO      uint32
	textVBO      uint32
	textURes     int32
	textUFontTex int32
	textBuf      []float32
}

func NewRenderer() (*Renderer, error) {
	srcs := []struct {
		name       string
		vert, frag string
	}{
		{"quad", quadVertSrc, quadFragSrc},
		{"sprite", spriteVertSrc, spriteFragSrc},
		{"glow", spriteVertSrc, glowFragSrc},
		{"line", lineVertSrc, lineFragSrc},
	}
	progs := make([]uint32, 0, len(srcs))
	for _, s := range srcs {
		p, err := linkProgram(s.vert, s.frag)
		if err != nil {
			for _, id := range progs {
				gl.DeleteProgram(id)
			}
			return nil, fmt.Errorf("%s program: %w", s.name, err)
		}
		progs = append(progs, p)
	}

	r := &Renderer{
		quadProg:   progs[0],
		spriteProg: progs[1],
		glowProg:   progs[2],
		lineProg:   progs[3],
	}
	r.textures = ui.NewCache(r.loadTexture)
	r.headings = ui.NewHeadings()

	// Quad VAO/VBO: a unit quad (6 vertices, 2 triangles).
	gl.GenVertexArrays(1, &r.quadVAO)
	gl.GenBuffers(1, &r.quadVBO)
	gl.BindVertexArray(r.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)

	quadVerts := [12]float32{
		0, 0, 1, 0, 1, 1,
		0, 0, 1, 1, 0, 1,
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVerts)*4, gl.Ptr(&quadVerts[0]), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, glOffset(0))

	gl.UseProgram(r.quadProg)
	r.qUOrigin = gl.GetUniformLocation(r.quadProg, gl.Str("uOrigin\x00"))
	r.qUSize = gl.GetUniformLocation(r.quadProg, gl.Str("uSize\x00"))
	r.qURotation = gl.GetUniformLocation(r.quadProg, gl.Str("uRotation\x00"))
	r.qUCamera = gl.GetUniformLocation(r.quadProg, gl.Str("uCamera\x00"))
	r.qUZoom = gl.GetUniformLocation(r.quadProg, gl.Str("uZoom\x00"))
	r.qUResolution = gl.GetUniformLocation(r.quadProg, gl.Str("uResolution\x00"))
	r.qUTex = gl.GetUniformLocation(r.quadProg, gl.Str("uTex\x00"))
	gl.Uniform1i(r.qUTex, texUnitQuad)

	// Sprite VAO/VBO: streaming buffer for point sprites.
	// Each sprite: 8 floats (x, y, size, r, g, b, a, rotation).
	gl.GenVertexArrays(1, &r.spriteVAO)
	gl.GenBuffers(1, &r.spriteVBO)
	gl.BindVertexArray(r.spriteVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.spriteVBO)

	stride := int32(ui.SpriteFloats * 4)
	gl.BufferData(gl.ARRAY_BUFFER, MaxSpriteRender*int(stride), nil, gl.STREAM_DRAW)
	// aWorldPos (vec2)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	// aSize (float)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 1, gl.FLOAT, false, stride, glOffset(2*4))
	// aColor (vec4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, glOffset(3*4))
	// aRotation (float)
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointer(3, 1, gl.FLOAT, false, stride, glOffset(7*4))

	gl.UseProgram(r.spriteProg)
	r.spUCamera = gl.GetUniformLocation(r.spriteProg, gl.Str("uCamera\x00"))
	r.spUZoom = gl.GetUniformLocation(r.spriteProg, gl.Str("uZoom\x00"))
	r.spUResolution = gl.GetUniformLocation(r.spriteProg, gl.Str("uResolution\x00"))
	r.spURound = gl.GetUniformLocation(r.spriteProg, gl.Str("uRound\x00"))

	gl.UseProgram(r.glowProg)
	r.glowUCamera = gl.GetUniformLocation(r.glowProg, gl.Str("uCamera\x00"))
	r.glowUZoom = gl.GetUniformLocation(r.glowProg, gl.Str("uZoom\x00"))
	r.glowUResolution = gl.GetUniformLocation(r.glowProg, gl.Str("uResolution\x00"))

	// Line VAO/VBO: x, y per vertex.
	gl.GenVertexArrays(1, &r.lineVAO)
	gl.GenBuffers(1, &r.lineVBO)
	gl.BindVertexArray(r.lineVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	gl.BufferData(gl.ARRAY_BUFFER, MaxLineVerts*2*4, nil, gl.STREAM_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, glOffset(0))

	gl.UseProgram(r.lineProg)
	r.lineUCamera = gl.GetUniformLocation(r.lineProg, gl.Str("uCamera\x00"))
	r.lineUZoom = gl.GetUniformLocation(r.lineProg, gl.Str("uZoom\x00"))
	r.lineUResolution = gl.GetUniformLocation(r.lineProg, gl.Str("uResolution\x00"))
	r.lineUColor = gl.GetUniformLocation(r.lineProg, gl.Str("uColor\x00"))

	gl.BindVertexArray(0)
	return r, nil
}

func (r *Renderer) Destroy() {
	r.textures.Each(func(_ string, tex uint32) {
		gl.DeleteTextures(1, &tex)
	})
	r.textures.Clear()
	for _, id := range []uint32{r.quadVBO, r.spriteVBO, r.lineVBO, r.textVBO} {
		if id != 0 {
			gl.DeleteBuffers(1, &id)
		}
	}
	for _, id := range []uint32{r.quadVAO, r.spriteVAO, r.lineVAO, r.textVAO} {
		if id != 0 {
			gl.DeleteVertexArrays(1, &id)
		}
	}
	for _, id := range []uint32{r.quadProg, r.spriteProg, r.glowProg, r.lineProg, r.textProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
	if r.fontTex != 0 {
		gl.DeleteTextures(1, &r.fontTex)
	}
}

// BeginFrame clears to the grass colour and sets the viewport.
func (r *Renderer) BeginFrame(fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	cr, cg, cb := ui.Palette.Grass.F32()
	gl.ClearColor(cr, cg, cb, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// setView loads the camera uniforms of the program in use.
func setView(uCamera, uZoom, uRes int32, cam Camera, fbW, fbH int) {
	gl.Uniform2f(uCamera, float32(cam.Center.X), float32(cam.Center.Y))
	gl.Uniform1f(uZoom, float32(cam.Zoom))
	gl.Uniform2f(uRes, float32(fbW), float32(fbH))
}
