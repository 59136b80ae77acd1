// Package render paints the world grid beneath the HUD.
package render

import (
	"image/color"
	"unicode/utf8"

	"phoenicia/internal/game"
)

// Palette maps world tile kinds to their fill colour, indexed by tile kind.
var Palette = []color.RGBA{
	game.TileEmpty:      {R: 94, G: 140, B: 62, A: 255},
	game.TileLetter:     {R: 196, G: 164, B: 92, A: 255},
	game.TileWord:       {R: 168, G: 98, B: 52, A: 255},
	game.TileDecoration: {R: 60, G: 110, B: 150, A: 255},
	game.TileGame:       {R: 140, G: 70, B: 140, A: 255},
}

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		for i := range cells {
			base := i * 4
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
		}
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// glyph returns the first character of a tile name, used as its label.
func glyph(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError && size <= 1 {
		return ""
	}
	return string(r)
}
