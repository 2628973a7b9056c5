package ui

import (
	"image"
	"image/color"
	"strings"
)

// Top-down kart, front at row 0.
// b body, k trim, w wheel, h helmet, . empty.
var kartPattern = [...]string{
	".kkkkkk.",
	"wwbbbbww",
	"wwbbbbww",
	".bbbbbb.",
	".bbhhbb.",
	".bbhhbb.",
	".bbbbbb.",
	".kbbbbk.",
	"wwbbbbww",
	"wwbbbbww",
	"wwbbbbww",
	"..kkkk..",
}

const (
	KartTexW = 8
	KartTexH = len(kartPattern)
)

// KartAspect is width over length of the kart texture.
const KartAspect = float64(KartTexW) / float64(KartTexH)

var (
	wheelColor  = RGB{R: 30, G: 30, B: 34}
	helmetColor = RGB{R: 245, G: 245, B: 245}
)

// KartImage draws the kart texture in the given body colour.
func KartImage(body RGB) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, KartTexW, KartTexH))
	trim := body.Mul(120)
	for y, row := range kartPattern {
		for x, ch := range row {
			var c RGB
			switch ch {
			case 'b':
				c = body
			case 'k':
				c = trim
			case 'w':
				c = wheelColor
			case 'h':
				c = helmetColor
			default:
				continue
			}
			img.SetNRGBA(x, y, color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255})
		}
	}
	return img
}

// KartName is the racer name behind a kart texture id, or "" for any
// other id.
func KartName(textureID string) string {
	name, ok := strings.CutPrefix(textureID, "kart:")
	if !ok {
		return ""
	}
	return name
}
