// Package hud implements the stacked overlay manager that owns the game's UI
// layer. Exactly one Panel is active at a time; panels it displaced are kept
// hidden on a LIFO stack until a Pop brings them back.
package hud

import "fmt"

// EventKind enumerates the input actions routed through the HUD.
type EventKind int

const (
	// TouchDown is a pointer or finger press.
	TouchDown EventKind = iota
	// TouchMove is a drag while pressed.
	TouchMove
	// TouchUp is a release; most panels act on this.
	TouchUp
	// Back is the platform back gesture (Escape, Android back button).
	Back
)

// Event is a single input event in screen coordinates.
type Event struct {
	Kind    EventKind
	X, Y    int
	Pointer int
}

// InputHandler consumes an event and reports whether it was handled.
type InputHandler interface {
	HandleInput(ev Event) bool
}

// InputFunc adapts a plain function to InputHandler.
type InputFunc func(ev Event) bool

// HandleInput calls f(ev).
func (f InputFunc) HandleInput(ev Event) bool { return f(ev) }

// Panel is a self-contained unit of UI managed by the Manager.
//
// Open is called once before the panel is first displayed and Close once when
// it is discarded. Show and Hide toggle visibility every time the panel gains
// or loses the active slot. A panel must not be reused after Close.
type Panel interface {
	InputHandler
	Open()
	Close()
	Show()
	Hide()
}

// Modal is content that temporarily captures all input above the panel stack.
type Modal interface {
	InputHandler
	Show()
}

// Name returns a short label for p, used in diagnostics.
func Name(p any) string {
	if p == nil {
		return "<nil>"
	}
	if n, ok := p.(interface{ Name() string }); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", p)
}
