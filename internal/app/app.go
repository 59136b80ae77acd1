//go:build ebiten

package app

import (
	"image"

	"phoenicia/internal/hud"
	"phoenicia/internal/render"
	"phoenicia/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a Session to the ebiten.Game interface. Mouse and touch input
// are translated into HUD events.
type Game struct {
	session *Session
	painter *render.WorldPainter
	hud     *ui.HUD

	touches  map[ebiten.TouchID]image.Point
	touchBuf []ebiten.TouchID
	mouse    image.Point
}

// New constructs a Game for the provided session.
func New(s *Session) *Game {
	w, h := s.Config.WorldSize()
	return &Game{
		session: s,
		painter: render.NewWorldPainter(w, h),
		hud:     ui.NewHUD(),
		touches: map[ebiten.TouchID]image.Point{},
	}
}

// Update handles per-frame input and lets the active panel refresh.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		g.session.Dispatch(hud.Event{Kind: hud.Back})
	}
	g.updateMouse()
	g.updateTouches()
	g.session.Tick()
	return nil
}

func (g *Game) updateMouse() {
	x, y := ebiten.CursorPosition()
	pt := image.Pt(x, y)
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.session.Dispatch(hud.Event{Kind: hud.TouchDown, X: x, Y: y, Pointer: -1})
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		g.session.Dispatch(hud.Event{Kind: hud.TouchUp, X: x, Y: y, Pointer: -1})
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) && pt != g.mouse:
		g.session.Dispatch(hud.Event{Kind: hud.TouchMove, X: x, Y: y, Pointer: -1})
	}
	g.mouse = pt
}

func (g *Game) updateTouches() {
	g.touchBuf = inpututil.AppendJustPressedTouchIDs(g.touchBuf[:0])
	for _, id := range g.touchBuf {
		x, y := ebiten.TouchPosition(id)
		g.touches[id] = image.Pt(x, y)
		g.session.Dispatch(hud.Event{Kind: hud.TouchDown, X: x, Y: y, Pointer: int(id)})
	}
	for id, last := range g.touches {
		if inpututil.IsTouchJustReleased(id) {
			delete(g.touches, id)
			g.session.Dispatch(hud.Event{Kind: hud.TouchUp, X: last.X, Y: last.Y, Pointer: int(id)})
			continue
		}
		x, y := ebiten.TouchPosition(id)
		if pt := image.Pt(x, y); pt != last {
			g.touches[id] = pt
			g.session.Dispatch(hud.Event{Kind: hud.TouchMove, X: x, Y: y, Pointer: int(id)})
		}
	}
}

// Draw renders the world, then the visible HUD layer and any modal.
func (g *Game) Draw(screen *ebiten.Image) {
	ctx := g.session.Director.Context()
	g.painter.Blit(screen, ctx.World, g.session.Config.Scale)
	g.hud.Draw(screen, g.session.Slot, g.session.Director.Manager().Modal())
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.session.Config.Width, g.session.Config.Height
}
