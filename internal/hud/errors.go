package hud

import (
	"errors"
	"fmt"
)

var (
	// ErrNilPanel is returned when a nil panel is handed to a transition.
	ErrNilPanel = errors.New("hud: nil panel")
	// ErrNilModal is returned by StartModal when content is nil.
	ErrNilModal = errors.New("hud: nil modal")
	// ErrModalActive is returned when a modal is started while one is showing.
	ErrModalActive = errors.New("hud: modal already active")
	// ErrNoModal is returned by EndModal when no modal is showing.
	ErrNoModal = errors.New("hud: no modal active")
)

// FaultError reports a panic raised by a lifecycle hook during a transition.
// The manager state is rolled back to what it was before the transition.
type FaultError struct {
	Op    string
	Value any
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("hud: %s: lifecycle hook fault: %v", e.Op, e.Value)
}

// Unwrap exposes the panic value when it was an error.
func (e *FaultError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
