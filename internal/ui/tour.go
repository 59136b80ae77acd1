package ui

import (
	"strings"
	"unicode/utf8"

	"phoenicia/internal/core"
	"phoenicia/internal/hud"
	"phoenicia/internal/level"
)

// TourOverlay is the guided tour modal. Every release advances one message;
// after the last one the tour ends itself.
type TourOverlay struct {
	env     core.Env
	stop    level.Stop
	page    int
	visible bool
}

func newTour(env core.Env, stop level.Stop) hud.Modal {
	return &TourOverlay{env: env, stop: stop}
}

// Name identifies the overlay in diagnostics.
func (t *TourOverlay) Name() string { return "tour:" + t.stop.Name }

// Show starts the tour at its first message.
func (t *TourOverlay) Show() {
	t.page = 0
	t.visible = true
}

// Message returns the message currently displayed.
func (t *TourOverlay) Message() string {
	if t.page >= len(t.stop.Messages) {
		return ""
	}
	return t.stop.Messages[t.page]
}

// HandleInput captures everything; releases advance the tour.
func (t *TourOverlay) HandleInput(ev hud.Event) bool {
	if ev.Kind != hud.TouchUp && ev.Kind != hud.Back {
		return true
	}
	t.page++
	if t.page >= len(t.stop.Messages) {
		t.visible = false
		if err := t.env.Nav.EndTour(); err != nil && t.env.Log != nil {
			t.env.Log.Warn("ui: ending tour", "stop", t.stop.Name, "err", err)
		}
	}
	return true
}

// wrap breaks s into lines of at most width runes on word boundaries.
func wrap(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}
	var lines []string
	var cur strings.Builder
	n := 0
	for _, word := range strings.Fields(s) {
		w := utf8.RuneCountInString(word)
		if n > 0 && n+1+w > width {
			lines = append(lines, cur.String())
			cur.Reset()
			n = 0
		}
		if n > 0 {
			cur.WriteByte(' ')
			n++
		}
		cur.WriteString(word)
		n += w
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
