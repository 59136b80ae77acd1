package core

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"phoenicia/internal/game"
	"phoenicia/internal/hud"
	"phoenicia/internal/level"
)

// ErrUnknownKind is returned when no factory is registered for a panel kind.
var ErrUnknownKind = errors.New("unknown panel kind")

// Kind names a panel variant in the registry.
type Kind string

// Panel kinds used by the director.
const (
	KindDefault             Kind = "default"
	KindInventory           Kind = "inventory"
	KindMarket              Kind = "market"
	KindWorkshop            Kind = "workshop"
	KindLevelIntro          Kind = "level-intro"
	KindNewLevel            Kind = "new-level"
	KindNextLevelReq        Kind = "next-level-requirements"
	KindLetterPlacement     Kind = "letter-placement"
	KindWordPlacement       Kind = "word-placement"
	KindDecorationPlacement Kind = "decoration-placement"
	KindGamePlacement       Kind = "game-placement"
	KindWordBuilder         Kind = "word-builder"
	KindDebug               Kind = "debug"
)

// GameKind returns the registry kind of the mini-game with the given type.
func GameKind(gameType string) Kind { return Kind("game:" + gameType) }

// Navigator is the set of HUD intents a panel may trigger from its input
// callbacks.
type Navigator interface {
	Back() error
	Home() error
	ShowInventory() error
	ShowMarket() error
	ShowWorkshop(tile string) error
	ShowLevelIntro(l *level.Level) error
	ShowNewLevel(l *level.Level) error
	LevelUp() error
	ShowNextLevelReq(l *level.Level) error
	ShowLetterPlacement(l *level.Level) error
	ShowWordPlacement(l *level.Level) error
	ShowDecorationPlacement() error
	ShowGamePlacement() error
	ShowWordBuilder(l *level.Level, word string) error
	ShowGame(l *level.Level, gameType string) error
	ShowDebug() error
	StartTour(stop level.Stop) error
	EndTour() error
}

// Env is handed to every factory.
type Env struct {
	Ctx    *game.Context
	Nav    Navigator
	Log    *slog.Logger
	RNG    *RNG
	Screen image.Rectangle
}

// Request carries the intent-specific arguments for a panel.
type Request struct {
	Level *level.Level
	Tile  string
	Word  string
	Game  string
}

// Factory constructs a panel for a request.
type Factory func(env Env, req Request) hud.Panel

// ModalFactory constructs the tour overlay for a stop.
type ModalFactory func(env Env, stop level.Stop) hud.Modal

var (
	panels = map[Kind]Factory{}
	tour   ModalFactory
)

// Register adds a panel factory under the provided kind.
func Register(kind Kind, f Factory) {
	if kind == "" || f == nil {
		return
	}
	panels[kind] = f
}

// Panels exposes the registry of panel factories.
func Panels() map[Kind]Factory {
	return panels
}

// RegisterTour installs the factory used for guided tour overlays.
func RegisterTour(f ModalFactory) {
	if f != nil {
		tour = f
	}
}

// New builds a panel of the given kind.
func New(kind Kind, env Env, req Request) (hud.Panel, error) {
	f, ok := panels[kind]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownKind, kind)
	}
	return f(env, req), nil
}

// NewTour builds the tour overlay for stop.
func NewTour(env Env, stop level.Stop) (hud.Modal, error) {
	if tour == nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownKind, "tour")
	}
	return tour(env, stop), nil
}
