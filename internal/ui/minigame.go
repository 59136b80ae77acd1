package ui

import (
	"fmt"
	"strings"

	"phoenicia/internal/core"
	"phoenicia/internal/hud"
	"phoenicia/internal/level"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	matchRounds  = 3
	matchChoices = 3
)

// matchGame asks the player to pick the word matching a clue. Each correct
// answer pays half the word's price.
type matchGame struct {
	panel
	words   []level.Word
	clue    func(level.Word) string
	round   int
	score   int
	answer  level.Word
	prompt  string
	choices []string
	message string
}

func newMatchGame(gameType string, env core.Env, req core.Request, clue func(*core.RNG, level.Word) string) *matchGame {
	lvl := req.Level
	if lvl == nil {
		lvl = env.Ctx.Level
	}
	p := &matchGame{panel: newPanel(string(core.GameKind(gameType)), env)}
	p.words = env.Ctx.Locale.UnlockedWords(lvl)
	p.clue = func(w level.Word) string { return clue(p.env.RNG, w) }
	p.title = cases.Title(language.Und).String(gameType)
	p.columns = matchChoices
	p.refresh = p.build
	p.deal()
	return p
}

func newWordMatch(env core.Env, req core.Request) hud.Panel {
	return newMatchGame("wordmatch", env, req, func(rng *core.RNG, w level.Word) string {
		return "Unscramble: " + strings.Join(rng.Pick(w.Letters, len(w.Letters)), " ")
	})
}

func newImageMatch(env core.Env, req core.Request) hud.Panel {
	return newMatchGame("imagematch", env, req, func(_ *core.RNG, w level.Word) string {
		first, last := w.Letters[0], w.Letters[len(w.Letters)-1]
		return fmt.Sprintf("Which word starts with %q and ends with %q?", first, last)
	})
}

func (p *matchGame) finished() bool { return p.round >= matchRounds }

func (p *matchGame) deal() {
	if len(p.words) == 0 || p.finished() {
		return
	}
	p.answer = p.words[p.env.RNG.IntN(len(p.words))]
	p.prompt = p.clue(p.answer)

	var others []string
	for _, w := range p.words {
		if w.Name != p.answer.Name {
			others = append(others, w.Name)
		}
	}
	choices := append(p.env.RNG.Pick(others, matchChoices-1), p.answer.Name)
	p.choices = p.env.RNG.Pick(choices, len(choices))
}

func (p *matchGame) build() {
	if len(p.words) == 0 {
		p.text("No words to play with yet.")
		p.closeAction("Close")
		return
	}
	p.text(fmt.Sprintf("Round %d / %d   Score %d", min(p.round+1, matchRounds), matchRounds, p.score))
	if p.message != "" {
		p.text(p.message)
	}
	if p.finished() {
		p.closeAction("Done")
		return
	}
	p.text(p.prompt)
	for _, c := range p.choices {
		choice := c
		p.button(choice, false, func() { p.pick(choice) })
	}
	p.closeAction("Quit")
}

func (p *matchGame) pick(choice string) {
	if p.finished() {
		return
	}
	if choice == p.answer.Name {
		reward := max(1, p.answer.Sell/2)
		p.score++
		p.env.Ctx.Bank.Credit(reward)
		p.message = fmt.Sprintf("Correct! +%d coins", reward)
	} else {
		p.message = fmt.Sprintf("Not quite, it was %s.", p.answer.Name)
	}
	p.round++
	p.deal()
	p.rebuild()
}
