//go:build ebiten

package render

import (
	"image/color"

	"phoenicia/internal/game"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

var labelColor = color.RGBA{R: 250, G: 246, B: 230, A: 255}

// WorldPainter updates a single RGBA image from the world's tile kinds.
type WorldPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewWorldPainter allocates a painter for a world of w*h tiles.
func NewWorldPainter(w, h int) *WorldPainter {
	wp := &WorldPainter{w: w, h: h, buf: make([]byte, 4*w*h)}
	wp.img = ebiten.NewImage(w, h)
	return wp
}

// Blit uploads the world tiles into the painter image, draws it scaled to
// tile pixels and labels every occupied tile with its first letter.
func (wp *WorldPainter) Blit(dst *ebiten.Image, world *game.World, scale int) {
	cells := world.Cells()
	if len(cells) != wp.w*wp.h {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	fillPaletteRGBA(wp.buf, cells, Palette)
	wp.img.WritePixels(wp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(wp.img, op)

	face := basicfont.Face7x13
	for y := 0; y < wp.h; y++ {
		for x := 0; x < wp.w; x++ {
			kind, name := world.At(x, y)
			label := glyph(name)
			if kind == game.TileEmpty || label == "" {
				continue
			}
			text.Draw(dst, label, face, x*scale+scale/2-3, y*scale+scale/2+4, labelColor)
		}
	}
}

// Size returns the dimensions of the underlying image.
func (wp *WorldPainter) Size() (int, int) { return wp.w, wp.h }
