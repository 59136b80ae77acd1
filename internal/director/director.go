// Package director maps game events onto HUD transitions. Every intent is a
// thin policy over hud.Manager's push, pop, set, clear and insert primitives.
package director

import (
	"errors"
	"image"
	"log/slog"

	"phoenicia/internal/core"
	"phoenicia/internal/game"
	"phoenicia/internal/hud"
	"phoenicia/internal/level"
)

// ErrNoNextLevel is returned by LevelUp on the last level.
var ErrNoNextLevel = errors.New("no next level")

// Director builds panels from the core registry and hands them to the
// manager. It also serves as the Navigator given to every panel.
type Director struct {
	mgr  *hud.Manager
	env  core.Env
	log  *slog.Logger
	base hud.Panel
}

// New returns a Director driving a fresh manager attached to mount. The back
// gesture is installed as the manager's global handler. Panels lay themselves
// out within screen.
func New(mount hud.Mount, ctx *game.Context, screen image.Rectangle, rng *core.RNG, log *slog.Logger) *Director {
	if log == nil {
		log = slog.Default()
	}
	if rng == nil {
		rng = core.NewRNG(1)
	}
	d := &Director{log: log}
	d.mgr = hud.NewManager(mount, hud.WithLogger(log), hud.WithGlobalHandler(hud.InputFunc(d.handleGlobal)))
	d.env = core.Env{Ctx: ctx, Nav: d, Log: log, RNG: rng, Screen: screen}
	return d
}

// Manager exposes the underlying overlay stack.
func (d *Director) Manager() *hud.Manager { return d.mgr }

// Context returns the shared game state.
func (d *Director) Context() *game.Context { return d.env.Ctx }

// RouteInput forwards ev to the HUD and reports whether it was consumed.
func (d *Director) RouteInput(ev hud.Event) bool { return d.mgr.RouteInput(ev) }

func (d *Director) handleGlobal(ev hud.Event) bool {
	if ev.Kind != hud.Back {
		return false
	}
	_ = d.Back()
	return true
}

func (d *Director) build(kind core.Kind, req core.Request) (p hud.Panel, err error) {
	defer func() {
		if r := recover(); r != nil {
			p, err = nil, &hud.FaultError{Op: "build " + string(kind), Value: r}
			d.log.Error("hud: panel factory fault", "kind", kind, "err", err)
		}
	}()
	p, err = core.New(kind, d.env, req)
	if err != nil {
		d.log.Warn("hud: request dropped", "kind", kind, "err", err)
		return nil, err
	}
	return p, nil
}

func (d *Director) push(kind core.Kind, req core.Request) error {
	p, err := d.build(kind, req)
	if err != nil {
		return err
	}
	return d.mgr.Push(p)
}

func (d *Director) set(kind core.Kind, req core.Request) error {
	p, err := d.build(kind, req)
	if err != nil {
		return err
	}
	return d.mgr.Set(p)
}

func (d *Director) level(l *level.Level) *level.Level {
	if l != nil {
		return l
	}
	return d.env.Ctx.Level
}

// ShowDefault pushes the base panel. Used at startup.
func (d *Director) ShowDefault() error {
	p, err := d.build(core.KindDefault, core.Request{})
	if err != nil {
		return err
	}
	d.base = p
	return d.mgr.Push(p)
}

// Home replaces the whole stack with a fresh base panel.
func (d *Director) Home() error {
	p, err := d.build(core.KindDefault, core.Request{})
	if err != nil {
		return err
	}
	d.base = p
	return d.mgr.Set(p)
}

// Back returns to the previously suspended panel. A panel that replaced the
// stack through a set has nothing beneath it; leaving it goes home.
func (d *Director) Back() error {
	if d.mgr.Depth() == 0 && d.mgr.Active() != nil && d.mgr.Active() != d.base {
		return d.Home()
	}
	return d.mgr.Pop()
}

// ShowNewLevel collapses the stack and announces level l. When the level has
// intro pages the intro sits directly beneath the announcement, so leaving
// the announcement reveals it.
func (d *Director) ShowNewLevel(l *level.Level) error {
	l = d.level(l)
	req := core.Request{Level: l}
	top, err := d.build(core.KindNewLevel, req)
	if err != nil {
		return err
	}
	var intro hud.Panel
	if l.HasIntro() {
		if intro, err = d.build(core.KindLevelIntro, req); err != nil {
			return err
		}
	}
	if err := d.rebase(); err != nil {
		return err
	}
	if err := d.mgr.Push(top); err != nil {
		return err
	}
	if intro != nil {
		return d.mgr.InsertBelowTop(intro)
	}
	return nil
}

// rebase collapses the stack onto the default panel, rebuilding it when a
// set intent has replaced it.
func (d *Director) rebase() error {
	if err := d.mgr.Clear(); err != nil {
		return err
	}
	if d.base == nil || d.mgr.Active() != d.base {
		return d.Home()
	}
	return nil
}

// LevelUp advances the shared context and announces the new level.
func (d *Director) LevelUp() error {
	next, ok := d.env.Ctx.Advance()
	if !ok {
		d.log.Info("hud: already at the last level", "level", d.env.Ctx.Level.Name)
		return ErrNoNextLevel
	}
	return d.ShowNewLevel(next)
}

// ShowLevelIntro replaces the stack with the intro of level l.
func (d *Director) ShowLevelIntro(l *level.Level) error {
	return d.set(core.KindLevelIntro, core.Request{Level: d.level(l)})
}

// ShowNextLevelReq replaces the stack with the requirements for leaving l.
func (d *Director) ShowNextLevelReq(l *level.Level) error {
	return d.set(core.KindNextLevelReq, core.Request{Level: d.level(l)})
}

// ShowInventory pushes the inventory panel.
func (d *Director) ShowInventory() error {
	return d.push(core.KindInventory, core.Request{})
}

// ShowMarket pushes the marketplace panel.
func (d *Director) ShowMarket() error {
	return d.push(core.KindMarket, core.Request{Level: d.env.Ctx.Level})
}

// ShowWorkshop pushes the workshop for tile.
func (d *Director) ShowWorkshop(tile string) error {
	return d.push(core.KindWorkshop, core.Request{Level: d.env.Ctx.Level, Tile: tile})
}

// ShowLetterPlacement pushes the letter picker for l, or the current level.
func (d *Director) ShowLetterPlacement(l *level.Level) error {
	return d.push(core.KindLetterPlacement, core.Request{Level: d.level(l)})
}

// ShowWordPlacement pushes the word picker for l, or the current level.
func (d *Director) ShowWordPlacement(l *level.Level) error {
	return d.push(core.KindWordPlacement, core.Request{Level: d.level(l)})
}

// ShowDecorationPlacement pushes the decoration picker.
func (d *Director) ShowDecorationPlacement() error {
	return d.push(core.KindDecorationPlacement, core.Request{})
}

// ShowGamePlacement pushes the mini-game picker.
func (d *Director) ShowGamePlacement() error {
	return d.push(core.KindGamePlacement, core.Request{Level: d.env.Ctx.Level})
}

// ShowWordBuilder pushes the builder for word.
func (d *Director) ShowWordBuilder(l *level.Level, word string) error {
	return d.push(core.KindWordBuilder, core.Request{Level: d.level(l), Word: word})
}

// ShowGame pushes the mini-game of the given type. Unknown types are logged
// and dropped.
func (d *Director) ShowGame(l *level.Level, gameType string) error {
	d.log.Debug("hud: opening game", "type", gameType)
	return d.push(core.GameKind(gameType), core.Request{Level: d.level(l), Game: gameType})
}

// ShowDebug pushes the debug panel.
func (d *Director) ShowDebug() error {
	return d.push(core.KindDebug, core.Request{})
}

// StartTour shows the guided tour for stop above the HUD.
func (d *Director) StartTour(stop level.Stop) error {
	m, err := core.NewTour(d.env, stop)
	if err != nil {
		d.log.Warn("hud: tour dropped", "stop", stop.Name, "err", err)
		return err
	}
	return d.mgr.StartModal(m)
}

// EndTour removes the guided tour.
func (d *Director) EndTour() error { return d.mgr.EndModal() }

// TapWorld handles a tap on world cell (x, y) that no HUD layer consumed: a
// pending placement is dropped there, otherwise placed workshops and games
// open their panels.
func (d *Director) TapWorld(x, y int) bool {
	ctx := d.env.Ctx
	if _, ok := ctx.Pending(); ok {
		return ctx.PlaceAt(x, y)
	}
	kind, name := ctx.World.At(x, y)
	switch {
	case kind == game.TileGame:
		return d.ShowGame(nil, name) == nil
	case kind == game.TileDecoration && name == game.Workshop:
		return d.ShowWorkshop(name) == nil
	}
	return false
}
