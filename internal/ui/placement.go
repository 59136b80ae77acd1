package ui

import (
	"fmt"

	"phoenicia/internal/core"
	"phoenicia/internal/game"
	"phoenicia/internal/hud"
	"phoenicia/internal/level"
)

// pickerPanel selects something to place on the world and returns to the
// panel beneath it. The next tap on the land places the selection.
type pickerPanel struct {
	panel
	level *level.Level
	kind  uint8
	items func() []pickItem
}

type pickItem struct {
	name     string
	label    string
	disabled bool
}

func newPicker(kind core.Kind, tile uint8, env core.Env, req core.Request) *pickerPanel {
	p := &pickerPanel{panel: newPanel(string(kind), env), level: req.Level, kind: tile}
	if p.level == nil {
		p.level = env.Ctx.Level
	}
	p.refresh = p.build
	return p
}

func (p *pickerPanel) build() {
	items := p.items()
	if len(items) == 0 {
		p.text("Nothing to place yet.")
	}
	for _, it := range items {
		name := it.name
		p.button(it.label, it.disabled, func() {
			p.env.Ctx.Select(p.kind, name)
			p.nav(p.env.Nav.Back())
		})
	}
	p.closeAction("Cancel")
}

func newLetterPlacement(env core.Env, req core.Request) hud.Panel {
	p := newPicker(core.KindLetterPlacement, game.TileLetter, env, req)
	p.title = "Plant a letter"
	p.items = func() []pickItem {
		var out []pickItem
		for _, l := range env.Ctx.Locale.Unlocked(p.level) {
			n := env.Ctx.Inventory.Count(l.Name)
			out = append(out, pickItem{name: l.Name, label: fmt.Sprintf("%s (%d)", l.Name, n), disabled: n == 0})
		}
		return out
	}
	return p
}

func newWordPlacement(env core.Env, req core.Request) hud.Panel {
	p := newPicker(core.KindWordPlacement, game.TileWord, env, req)
	p.title = "Place a word"
	p.items = func() []pickItem {
		var out []pickItem
		for _, w := range env.Ctx.Locale.UnlockedWords(p.level) {
			n := env.Ctx.Inventory.Count(w.Name)
			out = append(out, pickItem{name: w.Name, label: fmt.Sprintf("%s (%d)", w.Name, n), disabled: n == 0})
		}
		return out
	}
	return p
}

func newDecorationPlacement(env core.Env, req core.Request) hud.Panel {
	p := newPicker(core.KindDecorationPlacement, game.TileDecoration, env, req)
	p.title = "Decorate"
	p.items = func() []pickItem {
		out := make([]pickItem, 0, len(game.Decorations))
		for _, d := range game.Decorations {
			out = append(out, pickItem{name: d, label: d})
		}
		return out
	}
	return p
}

func newGamePlacement(env core.Env, req core.Request) hud.Panel {
	p := newPicker(core.KindGamePlacement, game.TileGame, env, req)
	p.title = "Place a game"
	p.items = func() []pickItem {
		var out []pickItem
		for _, g := range unlockedGames(env.Ctx) {
			out = append(out, pickItem{name: g, label: g})
		}
		return out
	}
	return p
}

// unlockedGames lists the distinct mini-game types unlocked so far.
func unlockedGames(ctx *game.Context) []string {
	seen := map[string]bool{}
	var out []string
	if ctx.Level == nil {
		return out
	}
	for i := 0; i <= ctx.Level.Index(); i++ {
		lvl, _ := ctx.Locale.Level(i)
		for _, g := range lvl.Games {
			if !seen[g] {
				seen[g] = true
				out = append(out, g)
			}
		}
	}
	return out
}
