package ui

import (
	"fmt"
	"sort"
	"strings"

	"phoenicia/internal/core"
	"phoenicia/internal/game"
	"phoenicia/internal/hud"
	"phoenicia/internal/level"
)

// inventoryPanel lists held items; tapping one sells a single unit.
type inventoryPanel struct{ panel }

func newInventoryPanel(env core.Env, _ core.Request) hud.Panel {
	p := &inventoryPanel{panel: newPanel(string(core.KindInventory), env)}
	p.refresh = p.build
	return p
}

func (p *inventoryPanel) build() {
	ctx := p.env.Ctx
	p.title = fmt.Sprintf("Inventory   Coins %d", ctx.Bank.Balance())
	items := ctx.Inventory.Items()
	if len(items) == 0 {
		p.text("Nothing here yet. Buy letters at the market.")
	}
	for _, item := range items {
		name := item.Name
		price := sellPrice(ctx.Locale, name)
		p.button(fmt.Sprintf("%s x%d +%d", name, item.Count, price), item.Count == 0 || price == 0, func() { p.sell(name) })
	}
	p.closeAction("Close")
}

func (p *inventoryPanel) sell(name string) {
	ctx := p.env.Ctx
	if err := ctx.Inventory.Subtract(name); err != nil {
		p.env.Log.Debug("ui: could not sell", "item", name, "err", err)
		return
	}
	ctx.Bank.Credit(sellPrice(ctx.Locale, name))
	p.rebuild()
}

func sellPrice(loc *level.Locale, name string) int {
	if l, ok := loc.Letter(name); ok {
		return l.Sell
	}
	if w, ok := loc.Word(name); ok {
		return w.Sell
	}
	return 0
}

// marketPanel sells the letters unlocked so far.
type marketPanel struct {
	panel
	level *level.Level
}

func newMarketPanel(env core.Env, req core.Request) hud.Panel {
	p := &marketPanel{panel: newPanel(string(core.KindMarket), env), level: req.Level}
	if p.level == nil {
		p.level = env.Ctx.Level
	}
	p.refresh = p.build
	return p
}

func (p *marketPanel) build() {
	ctx := p.env.Ctx
	p.title = fmt.Sprintf("Market   Coins %d", ctx.Bank.Balance())
	for _, l := range ctx.Locale.Unlocked(p.level) {
		letter := l
		label := fmt.Sprintf("%s -%d (%d)", letter.Name, letter.Buy, ctx.Inventory.Count(letter.Name))
		p.button(label, ctx.Bank.Balance() < letter.Buy, func() { p.buy(letter) })
	}
	p.closeAction("Close")
}

func (p *marketPanel) buy(l level.Letter) {
	ctx := p.env.Ctx
	if err := ctx.Bank.Debit(l.Buy); err != nil {
		p.env.Log.Debug("ui: could not buy", "item", l.Name, "err", err)
		return
	}
	ctx.Inventory.Add(l.Name, 1)
	p.rebuild()
}

// workshopPanel picks a word to build.
type workshopPanel struct {
	panel
	level *level.Level
	tile  string
}

func newWorkshopPanel(env core.Env, req core.Request) hud.Panel {
	p := &workshopPanel{panel: newPanel(string(core.KindWorkshop), env), level: req.Level, tile: req.Tile}
	if p.level == nil {
		p.level = env.Ctx.Level
	}
	p.columns = 2
	p.refresh = p.build
	return p
}

func (p *workshopPanel) build() {
	ctx := p.env.Ctx
	p.title = "Workshop"
	words := ctx.Locale.UnlockedWords(p.level)
	if len(words) == 0 {
		p.text("No words unlocked yet.")
	}
	for _, w := range words {
		word := w
		label := fmt.Sprintf("%s (%s)", word.Name, strings.Join(word.Letters, ","))
		p.button(label, !canBuild(ctx.Inventory, word), func() {
			p.nav(p.env.Nav.ShowWordBuilder(p.level, word.Name))
		})
	}
	p.closeAction("Close")
}

func letterCounts(letters []string) map[string]int {
	need := map[string]int{}
	for _, l := range letters {
		need[l]++
	}
	return need
}

func canBuild(inv *game.Inventory, w level.Word) bool {
	for name, n := range letterCounts(w.Letters) {
		if inv.Count(name) < n {
			return false
		}
	}
	return true
}

// wordBuilderPanel spells a word letter by letter, then converts the
// letters in the inventory into the word.
type wordBuilderPanel struct {
	panel
	word     level.Word
	known    bool
	choices  []string
	progress int
	message  string
	done     bool
}

func newWordBuilderPanel(env core.Env, req core.Request) hud.Panel {
	p := &wordBuilderPanel{panel: newPanel(string(core.KindWordBuilder), env)}
	p.word, p.known = env.Ctx.Locale.Word(req.Word)
	if p.known {
		unique := make([]string, 0, len(p.word.Letters))
		for name := range letterCounts(p.word.Letters) {
			unique = append(unique, name)
		}
		sort.Strings(unique)
		p.choices = p.env.RNG.Pick(unique, len(unique))
	}
	p.refresh = p.build
	return p
}

func (p *wordBuilderPanel) build() {
	if !p.known {
		p.title = "Unknown word"
		p.closeAction("Close")
		return
	}
	p.title = "Build " + p.word.Name
	p.text("Spelled: " + p.spelled())
	if p.message != "" {
		p.text(p.message)
	}
	if !p.done {
		for _, c := range p.choices {
			letter := c
			p.button(letter, false, func() { p.tap(letter) })
		}
	}
	if p.done {
		p.closeAction("Done")
	} else {
		p.closeAction("Cancel")
	}
}

func (p *wordBuilderPanel) spelled() string {
	parts := make([]string, len(p.word.Letters))
	for i, l := range p.word.Letters {
		if i < p.progress {
			parts[i] = l
		} else {
			parts[i] = "_"
		}
	}
	return strings.Join(parts, " ")
}

func (p *wordBuilderPanel) tap(letter string) {
	if p.done {
		return
	}
	if letter != p.word.Letters[p.progress] {
		p.message = "Not quite, try another letter."
		p.rebuild()
		return
	}
	p.progress++
	p.message = ""
	if p.progress == len(p.word.Letters) {
		p.finish()
	}
	p.rebuild()
}

func (p *wordBuilderPanel) finish() {
	p.done = true
	inv := p.env.Ctx.Inventory
	if !canBuild(inv, p.word) {
		p.message = "You need more letters to build this word."
		return
	}
	for name, n := range letterCounts(p.word.Letters) {
		_ = inv.Take(name, n)
	}
	inv.Add(p.word.Name, 1)
	p.message = "Built " + p.word.Name + "!"
}
