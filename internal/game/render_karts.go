package game

import (
	"image"
	"math"

	"github.com/go-gl/gl/v4.1-core/gl"

	"kartrace/internal/log"
	"kartrace/internal/race"
	"kartrace/internal/ui"
)

func uploadTexture(img *image.NRGBA) uint32 {
	b := img.Bounds()
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	return tex
}

// loadTexture builds the texture behind a sprite id. Karts are drawn in
// their racer's colour; unknown ids get a kart from the fallback rotation.
func (r *Renderer) loadTexture(id string, n int) uint32 {
	name := ui.KartName(id)
	if name == "" {
		log.Warn("Unknown texture id, using a plain kart", log.String("texture", id))
	}
	log.Debug("Loading texture", log.String("texture", id), log.Int("loaded", n))
	return uploadTexture(ui.KartImage(ui.KartColor(name, n)))
}

// DrawKarts renders every kart with a sprite as a textured quad. The drawn
// angle eases toward the steering heading over frames of dt seconds.
func (r *Renderer) DrawKarts(karts []*race.Entity, dt float64, cam Camera, fbW, fbH int) {
	gl.UseProgram(r.quadProg)
	gl.BindVertexArray(r.quadVAO)
	setView(r.qUCamera, r.qUZoom, r.qUResolution, cam, fbW, fbH)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ActiveTexture(gl.TEXTURE0 + texUnitQuad)

	for _, e := range karts {
		t, ok := e.Transform()
		if !ok {
			continue
		}
		sp, ok := e.Sprite()
		if !ok {
			continue
		}
		w := sp.Size * ui.KartAspect
		h := sp.Size
		gl.Uniform2f(r.qUSize, float32(w), float32(h))
		gl.Uniform2f(r.qUOrigin, float32(t.Pos.X-w*0.5), float32(t.Pos.Y-h*0.5))
		// texture front is up; rotation is degrees from +x
		rot := r.headings.Step(e.Name, t.Rotation, dt)
		gl.Uniform1f(r.qURotation, float32(rot*math.Pi/180+math.Pi*0.5))

		gl.BindTexture(gl.TEXTURE_2D, r.textures.Get(sp.Texture))
		gl.DrawArrays(gl.TRIANGLES, 0, 6)
	}

	gl.Disable(gl.BLEND)
}
