//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"phoenicia/internal/hud"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

var (
	frameColor    = color.RGBA{R: 16, G: 16, B: 20, A: 230}
	barColor      = color.RGBA{R: 24, G: 22, B: 18, A: 240}
	titleColor    = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	textColor     = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	buttonColor   = color.RGBA{R: 54, G: 56, B: 64, A: 255}
	buttonFg      = color.RGBA{R: 230, G: 230, B: 240, A: 255}
	disabledColor = color.RGBA{R: 32, G: 34, B: 40, A: 255}
	disabledFg    = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	dimColor      = color.RGBA{A: 140}
)

// HUD paints the mounted panel and any modal on top of the world view.
type HUD struct {
	pixel *ebiten.Image
}

// NewHUD allocates the shared drawing resources.
func NewHUD() *HUD {
	h := &HUD{pixel: ebiten.NewImage(1, 1)}
	h.pixel.Fill(color.White)
	return h
}

// Draw renders the slot's child when the layer is visible, then the modal.
func (h *HUD) Draw(screen *ebiten.Image, slot *hud.Slot, modal hud.Modal) {
	if h == nil {
		return
	}
	if slot != nil && slot.IsVisible() {
		if v, ok := slot.Child().(viewer); ok {
			h.drawPanel(screen, v.view())
		}
	}
	if t, ok := modal.(*TourOverlay); ok && t.visible {
		h.drawTour(screen, t)
	}
}

func (h *HUD) drawPanel(screen *ebiten.Image, p *panel) {
	if !p.visible || p.frame.Empty() {
		return
	}
	bg := frameColor
	if p.bar {
		bg = barColor
	}
	h.fill(screen, p.frame, bg)

	face := basicfont.Face7x13
	inner := p.frame.Inset(panelPadding)
	text.Draw(screen, p.title, face, inner.Min.X, inner.Min.Y+titleHeight-8, titleColor)
	for i, line := range p.lines {
		y := inner.Min.Y + titleHeight + (i+1)*lineHeight - 4
		text.Draw(screen, line, face, inner.Min.X, y, textColor)
	}
	for _, b := range p.buttons {
		h.drawButton(screen, b.rect, b.label, !b.disabled)
	}
}

func (h *HUD) drawTour(screen *ebiten.Image, t *TourOverlay) {
	bounds := screen.Bounds()
	h.fill(screen, bounds, dimColor)

	face := basicfont.Face7x13
	msg := t.Message()
	width := min(bounds.Dx()-2*panelPadding, 420)
	lines := wrap(msg, (width-2*panelPadding)/face.Advance)
	lines = append(lines, "", "Tap to continue")
	height := 2*panelPadding + len(lines)*lineHeight
	x := bounds.Min.X + (bounds.Dx()-width)/2
	y := bounds.Min.Y + (bounds.Dy()-height)/2
	box := image.Rect(x, y, x+width, y+height)
	h.fill(screen, box, frameColor)
	for i, line := range lines {
		text.Draw(screen, line, face, x+panelPadding, y+panelPadding+(i+1)*lineHeight-4, textColor)
	}
}

func (h *HUD) drawButton(screen *ebiten.Image, rect image.Rectangle, label string, enabled bool) {
	bg, fg := buttonColor, buttonFg
	if !enabled {
		bg, fg = disabledColor, disabledFg
	}
	h.fill(screen, rect, bg)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	textWidth := bounds.Dx()
	textHeight := bounds.Dy()
	x := rect.Min.X + (rect.Dx()-textWidth)/2
	y := rect.Min.Y + (rect.Dy()-textHeight)/2 + textHeight
	text.Draw(screen, label, face, x, y, fg)
}

func (h *HUD) fill(dst *ebiten.Image, rect image.Rectangle, c color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorM.Scale(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, float64(c.A)/255.0)
	dst.DrawImage(h.pixel, op)
}
