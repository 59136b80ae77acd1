// Package ui holds the game's concrete HUD panels and the tour overlay. Panel
// behaviour lives in untagged files so it can be exercised headless; drawing
// is compiled only with the ebiten build tag.
package ui

import (
	"image"
	"log/slog"

	"phoenicia/internal/core"
	"phoenicia/internal/hud"
)

const (
	panelPadding = 12
	buttonHeight = 28
	buttonGap    = 6
	lineHeight   = 16
	titleHeight  = 22
	maxColumns   = 4
)

type button struct {
	label    string
	rect     image.Rectangle
	onTap    func()
	disabled bool
	footer   bool
}

// panel is the shared base of every HUD panel: a framed window with a title,
// lines of text, a grid of buttons and a footer row.
type panel struct {
	name     string
	env      core.Env
	title    string
	lines    []string
	buttons  []button
	columns  int
	frame    image.Rectangle
	blocking bool
	bar      bool

	opened  bool
	visible bool
	closed  bool

	refresh func()
}

func newPanel(name string, env core.Env) panel {
	if env.Log == nil {
		env.Log = slog.Default()
	}
	if env.RNG == nil {
		env.RNG = core.NewRNG(1)
	}
	return panel{name: name, env: env, columns: maxColumns, blocking: true}
}

// Name identifies the panel in diagnostics.
func (p *panel) Name() string { return p.name }

// Open builds the panel contents.
func (p *panel) Open() {
	p.opened = true
	p.rebuild()
}

// Close releases the panel. It must not be shown again.
func (p *panel) Close() {
	p.closed = true
	p.visible = false
	p.buttons = nil
}

// Show refreshes the contents and makes the panel interactive.
func (p *panel) Show() {
	p.visible = true
	p.rebuild()
}

// Hide makes the panel non-interactive.
func (p *panel) Hide() { p.visible = false }

// Update refreshes contents that depend on shared state.
func (p *panel) Update() {
	if p.visible {
		p.rebuild()
	}
}

// HandleInput fires buttons on release. Window panels swallow every touch;
// the bar only claims touches that land on it.
func (p *panel) HandleInput(ev hud.Event) bool {
	if !p.visible {
		return false
	}
	pt := image.Pt(ev.X, ev.Y)
	if ev.Kind == hud.TouchUp {
		for i := range p.buttons {
			b := &p.buttons[i]
			if b.disabled || b.onTap == nil || !pt.In(b.rect) {
				continue
			}
			b.onTap()
			return true
		}
	}
	return p.blocking || pt.In(p.frame)
}

func (p *panel) rebuild() {
	if p.closed {
		return
	}
	p.lines = p.lines[:0]
	p.buttons = p.buttons[:0]
	if p.refresh != nil {
		p.refresh()
	}
	p.layout()
}

func (p *panel) text(line string) { p.lines = append(p.lines, line) }

func (p *panel) button(label string, disabled bool, onTap func()) {
	p.buttons = append(p.buttons, button{label: label, onTap: onTap, disabled: disabled})
}

func (p *panel) action(label string, disabled bool, onTap func()) {
	p.buttons = append(p.buttons, button{label: label, onTap: onTap, disabled: disabled, footer: true})
}

// closeAction adds the standard footer button leaving the panel.
func (p *panel) closeAction(label string) {
	p.action(label, false, func() { p.nav(p.env.Nav.Back()) })
}

// nav logs a navigation error; panels have nowhere to return it to.
func (p *panel) nav(err error) {
	if err != nil {
		p.env.Log.Warn("ui: navigation failed", "panel", p.name, "err", err)
	}
}

func (p *panel) layout() {
	screen := p.env.Screen
	if screen.Empty() {
		screen = image.Rect(0, 0, 640, 480)
	}
	var grid, footer []*button
	for i := range p.buttons {
		if p.buttons[i].footer {
			footer = append(footer, &p.buttons[i])
		} else {
			grid = append(grid, &p.buttons[i])
		}
	}
	cols := p.columns
	if cols <= 0 {
		cols = maxColumns
	}
	if p.bar {
		cols = max(1, len(grid))
	}
	rows := (len(grid) + cols - 1) / cols

	height := panelPadding*2 + titleHeight + len(p.lines)*lineHeight
	if rows > 0 {
		height += rows*(buttonHeight+buttonGap) + buttonGap
	}
	if len(footer) > 0 {
		height += buttonHeight + buttonGap
	}

	if p.bar {
		p.frame = image.Rect(screen.Min.X, screen.Max.Y-height, screen.Max.X, screen.Max.Y)
	} else {
		width := min(screen.Dx()-2*panelPadding, 420)
		x := screen.Min.X + (screen.Dx()-width)/2
		y := screen.Min.Y + max(panelPadding, (screen.Dy()-height)/2)
		p.frame = image.Rect(x, y, x+width, y+height)
	}

	inner := p.frame.Inset(panelPadding)
	top := inner.Min.Y + titleHeight + len(p.lines)*lineHeight + buttonGap
	placeRow(grid, cols, inner.Min.X, inner.Dx(), top)

	if len(footer) > 0 {
		placeRow(footer, len(footer), inner.Min.X, inner.Dx(), inner.Max.Y-buttonHeight)
	}
}

// placeRow lays buttons out in rows of cols equal-width cells.
func placeRow(buttons []*button, cols, left, width, top int) {
	if len(buttons) == 0 {
		return
	}
	w := (width - (cols-1)*buttonGap) / cols
	for i, b := range buttons {
		col, row := i%cols, i/cols
		x := left + col*(w+buttonGap)
		y := top + row*(buttonHeight+buttonGap)
		b.rect = image.Rect(x, y, x+w, y+buttonHeight)
	}
}

// viewer is implemented by every panel embedding panel. The renderer reaches
// the shared layout through it.
type viewer interface {
	view() *panel
}

func (p *panel) view() *panel { return p }
