package ui

import (
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Glyph atlas layout: printable ASCII in a 16 x 6 grid of 7 x 13 cells.
const (
	GlyphW     = 7
	GlyphH     = 13
	AtlasCols  = 16
	AtlasRows  = 6
	FirstGlyph = 32
	LastGlyph  = 126
	AtlasW     = GlyphW * AtlasCols // 112
	AtlasH     = GlyphH * AtlasRows // 78
)

// BuildFontAtlas renders the fixed 7x13 face into an NRGBA atlas: white
// glyphs on a transparent background, ready to tint in the text shader.
func BuildFontAtlas() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, AtlasW, AtlasH))
	face := basicfont.Face7x13
	d := &font.Drawer{Dst: img, Src: image.White, Face: face}
	for ch := rune(FirstGlyph); ch <= LastGlyph; ch++ {
		cx, cy := glyphCell(ch)
		cell := image.Rect(cx*GlyphW, cy*GlyphH, (cx+1)*GlyphW, (cy+1)*GlyphH)
		d.Dst = clipImage{img, cell}
		d.Dot = fixed.P(cell.Min.X, cell.Min.Y+face.Ascent)
		d.DrawString(string(ch))
	}
	return img
}

// clipImage keeps a glyph from bleeding into its neighbours.
type clipImage struct {
	*image.NRGBA
	r image.Rectangle
}

func (c clipImage) Bounds() image.Rectangle { return c.r }

var _ draw.Image = clipImage{}

func glyphCell(ch rune) (col, row int) {
	i := int(ch - FirstGlyph)
	return i % AtlasCols, i / AtlasCols
}

// GlyphUV returns the atlas texture coordinates for ch. ok is false for
// runes outside printable ASCII.
func GlyphUV(ch rune) (u0, v0, u1, v1 float32, ok bool) {
	if ch < FirstGlyph || ch > LastGlyph {
		return 0, 0, 0, 0, false
	}
	col, row := glyphCell(ch)
	u0 = float32(col*GlyphW) / AtlasW
	v0 = float32(row*GlyphH) / AtlasH
	u1 = float32((col+1)*GlyphW) / AtlasW
	v1 = float32((row+1)*GlyphH) / AtlasH
	return u0, v0, u1, v1, true
}

// TextWidth returns the width in screen pixels of the widest line of text
// at the given scale.
func TextWidth(text string, scale float32) int {
	lineLen := 0
	maxLineLen := 0
	for _, ch := range text {
		if ch == '\n' {
			maxLineLen = max(maxLineLen, lineLen)
			lineLen = 0
			continue
		}
		lineLen++
	}
	maxLineLen = max(maxLineLen, lineLen)
	return int(float32(maxLineLen*GlyphW) * scale)
}

// LineHeight is the vertical advance of one text line at scale.
func LineHeight(scale float32) int {
	return int(float32(GlyphH+3) * scale)
}
