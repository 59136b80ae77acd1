package ui

import (
	"fmt"

	"phoenicia/internal/core"
	"phoenicia/internal/hud"
)

// defaultPanel is the base bar along the bottom of the screen. Touches
// outside it fall through to the world.
type defaultPanel struct{ panel }

func newDefaultPanel(env core.Env, _ core.Request) hud.Panel {
	p := &defaultPanel{panel: newPanel(string(core.KindDefault), env)}
	p.bar = true
	p.blocking = false
	p.refresh = p.build
	return p
}

func (p *defaultPanel) build() {
	ctx := p.env.Ctx
	nav := p.env.Nav
	p.title = fmt.Sprintf("Level %s   Coins %d", ctx.Level.Name, ctx.Bank.Balance())
	if sel, ok := ctx.Pending(); ok {
		p.title += "   Placing " + sel.Name
	}
	p.button("Inventory", false, func() { p.nav(nav.ShowInventory()) })
	p.button("Market", false, func() { p.nav(nav.ShowMarket()) })
	p.button("Letters", false, func() { p.nav(nav.ShowLetterPlacement(nil)) })
	p.button("Words", false, func() { p.nav(nav.ShowWordPlacement(nil)) })
	p.button("Decor", false, func() { p.nav(nav.ShowDecorationPlacement()) })
	p.button("Games", len(unlockedGames(ctx)) == 0, func() { p.nav(nav.ShowGamePlacement()) })
	p.button("Goals", false, func() { p.nav(nav.ShowNextLevelReq(nil)) })
	if ctx.Debug {
		p.button("Debug", false, func() { p.nav(nav.ShowDebug()) })
	}
}

// debugPanel exposes cheats for exercising the HUD flows by hand.
type debugPanel struct{ panel }

func newDebugPanel(env core.Env, _ core.Request) hud.Panel {
	p := &debugPanel{panel: newPanel(string(core.KindDebug), env)}
	p.columns = 2
	p.refresh = p.build
	return p
}

func (p *debugPanel) build() {
	ctx := p.env.Ctx
	nav := p.env.Nav
	p.title = "Debug"
	p.text(fmt.Sprintf("level=%s coins=%d", ctx.Level.Name, ctx.Bank.Balance()))
	p.button("+100 coins", false, func() { ctx.Bank.Credit(100) })
	p.button("+5 letters", false, func() {
		for _, l := range ctx.Locale.Unlocked(ctx.Level) {
			ctx.Inventory.Add(l.Name, 5)
		}
	})
	p.button("Level up", false, func() { p.nav(nav.LevelUp()) })
	p.button("Level intro", !ctx.Level.HasIntro(), func() { p.nav(nav.ShowLevelIntro(nil)) })
	p.button("Tour", len(ctx.Locale.Tour) == 0, func() {
		p.nav(nav.StartTour(ctx.Locale.Tour[0]))
	})
	p.button("Clear land", false, func() { ctx.World.Clear() })
	p.button("Home", false, func() { p.nav(nav.Home()) })
	p.closeAction("Close")
}
