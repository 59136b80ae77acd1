package ui

import (
	"fmt"
	"strings"

	"phoenicia/internal/core"
	"phoenicia/internal/hud"
	"phoenicia/internal/level"
)

// introPanel pages through a level's introduction.
type introPanel struct {
	panel
	level *level.Level
	page  int
}

func newIntroPanel(env core.Env, req core.Request) hud.Panel {
	p := &introPanel{panel: newPanel(string(core.KindLevelIntro), env), level: req.Level}
	if p.level == nil {
		p.level = env.Ctx.Level
	}
	p.refresh = p.build
	return p
}

func (p *introPanel) build() {
	p.title = "Level " + p.level.Name
	pages := p.level.Intro
	if len(pages) == 0 {
		p.closeAction("Continue")
		return
	}
	p.text(pages[p.page])
	p.text(fmt.Sprintf("%d / %d", p.page+1, len(pages)))
	if p.page+1 < len(pages) {
		p.action("Next", false, func() {
			p.page++
			p.rebuild()
		})
		return
	}
	p.closeAction("Done")
}

// newLevelPanel announces what a level unlocks.
type newLevelPanel struct {
	panel
	level *level.Level
}

func newNewLevelPanel(env core.Env, req core.Request) hud.Panel {
	p := &newLevelPanel{panel: newPanel(string(core.KindNewLevel), env), level: req.Level}
	if p.level == nil {
		p.level = env.Ctx.Level
	}
	p.refresh = p.build
	return p
}

func (p *newLevelPanel) build() {
	p.title = "Level " + p.level.Name + " unlocked!"
	if len(p.level.Letters) > 0 {
		p.text("New letters: " + strings.Join(p.level.Letters, ", "))
	}
	if len(p.level.Words) > 0 {
		p.text("New words: " + strings.Join(p.level.Words, ", "))
	}
	if len(p.level.Games) > 0 {
		p.text("New games: " + strings.Join(p.level.Games, ", "))
	}
	p.closeAction("Continue")
}

// requirementsPanel shows progress towards leaving a level.
type requirementsPanel struct {
	panel
	level *level.Level
}

func newRequirementsPanel(env core.Env, req core.Request) hud.Panel {
	p := &requirementsPanel{panel: newPanel(string(core.KindNextLevelReq), env), level: req.Level}
	if p.level == nil {
		p.level = env.Ctx.Level
	}
	p.refresh = p.build
	return p
}

func (p *requirementsPanel) build() {
	ctx := p.env.Ctx
	p.title = "Goals for level " + p.level.Name
	if len(p.level.Requirements) == 0 {
		p.text("No goals, you can move on whenever you like.")
	}
	for _, r := range p.level.Requirements {
		have := min(ctx.Inventory.Count(r.Item), r.Count)
		p.text(fmt.Sprintf("%s: %d / %d", r.Item, have, r.Count))
	}
	_, hasNext := ctx.Locale.Next(p.level)
	current := p.level == ctx.Level
	p.action("Level up", !hasNext || !current || !ctx.RequirementsMet(), func() { p.nav(p.env.Nav.LevelUp()) })
	p.closeAction("Close")
}
