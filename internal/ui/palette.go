// Package ui holds the look of the desktop host that does not need a GL
// context: colours, the HUD glyph atlas and the HUD layout.
package ui

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

func (c RGB) Mul(k uint8) RGB {
	return RGB{
		R: uint8((uint16(c.R) * uint16(k)) / 255),
		G: uint8((uint16(c.G) * uint16(k)) / 255),
		B: uint8((uint16(c.B) * uint16(k)) / 255),
	}
}

func (c RGB) Add(dr, dg, db int) RGB {
	return RGB{R: addU8(c.R, dr), G: addU8(c.G, dg), B: addU8(c.B, db)}
}

func addU8(v uint8, d int) uint8 {
	return uint8(min(max(int(v)+d, 0), 255))
}

// Scale fades the colour towards black; k is clamped to [0,1].
func (c RGB) Scale(k float64) RGB {
	k = min(max(k, 0), 1)
	return RGB{R: uint8(float64(c.R) * k), G: uint8(float64(c.G) * k), B: uint8(float64(c.B) * k)}
}

// F32 returns the channels in [0,1] for the GL buffers.
func (c RGB) F32() (r, g, b float32) {
	return float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255
}

var Palette = struct {
	Grass      RGB
	Asphalt    RGB
	Kerb       RGB
	Lane       RGB
	Centerline RGB
	EditPath   RGB
	EditPoint  RGB
	RacerDot   RGB
	FinishA    RGB
	FinishB    RGB
	Shadow     RGB

	Text   RGB
	Good   RGB
	Bad    RGB
	Warn   RGB
	Accent RGB
}{
	Grass:      RGB{R: 74, G: 112, B: 58},
	Asphalt:    RGB{R: 60, G: 66, B: 79},
	Kerb:       RGB{R: 214, G: 190, B: 153},
	Lane:       RGB{R: 120, G: 128, B: 140},
	Centerline: RGB{R: 0, G: 255, B: 255},
	EditPath:   RGB{R: 255, G: 0, B: 255},
	EditPoint:  RGB{R: 255, G: 140, B: 255},
	RacerDot:   RGB{R: 255, G: 255, B: 0},
	FinishA:    RGB{R: 240, G: 240, B: 240},
	FinishB:    RGB{R: 20, G: 20, B: 20},
	Shadow:     RGB{R: 0, G: 0, B: 0},

	Text:   RGB{R: 255, G: 255, B: 255},
	Good:   RGB{R: 100, G: 255, B: 100},
	Bad:    RGB{R: 255, G: 80, B: 80},
	Warn:   RGB{R: 255, G: 255, B: 100},
	Accent: RGB{R: 60, G: 140, B: 255},
}

var kartColors = map[string]RGB{
	"Mario": {R: 220, G: 40, B: 40},
	"Luigi": {R: 40, G: 170, B: 60},
	"Peach": {R: 245, G: 130, B: 190},
	"Yoshi": {R: 120, G: 220, B: 60},
	"Toad":  {R: 240, G: 240, B: 240},
	"Wario": {R: 240, G: 200, B: 40},
}

var fallbackKartColors = []RGB{
	{R: 60, G: 100, B: 220},
	{R: 240, G: 140, B: 40},
	{R: 150, G: 70, B: 200},
	{R: 40, G: 190, B: 190},
}

// KartColor picks the body colour for the i-th racer. Known names keep
// their colour; anyone else gets one from a fixed rotation.
func KartColor(name string, i int) RGB {
	if c, ok := kartColors[name]; ok {
		return c
	}
	return fallbackKartColors[i%len(fallbackKartColors)]
}
