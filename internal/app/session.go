package app

import (
	"fmt"
	"log/slog"

	"phoenicia/internal/core"
	"phoenicia/internal/director"
	"phoenicia/internal/game"
	"phoenicia/internal/hud"
	"phoenicia/internal/level"
)

// Session is a running game without a window: the shared state, the HUD
// slot and the director driving it.
type Session struct {
	Config   *Config
	Slot     *hud.Slot
	Director *director.Director
	Log      *slog.Logger
}

// NewSession loads the locale, builds the game state and shows the default
// panel. When the config names a tour stop the tour starts right away.
func NewSession(cfg *Config, log *slog.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	loc, err := loadLocale(cfg.Locale)
	if err != nil {
		return nil, err
	}
	w, h := cfg.WorldSize()
	ctx := game.NewContext(loc, cfg.StartLevel, cfg.Coins, w, h)
	ctx.Debug = cfg.Debug

	s := &Session{Config: cfg, Slot: hud.NewSlot(), Log: log}
	s.Director = director.New(s.Slot, ctx, cfg.Screen(), core.NewRNG(cfg.Seed), log)
	if err := s.Director.ShowDefault(); err != nil {
		return nil, fmt.Errorf("show default panel: %w", err)
	}
	if cfg.Tour != "" {
		stop, ok := loc.Stop(cfg.Tour)
		if !ok {
			return nil, fmt.Errorf("unknown tour stop %q", cfg.Tour)
		}
		if err := s.Director.StartTour(stop); err != nil {
			return nil, fmt.Errorf("start tour: %w", err)
		}
	}
	log.Info("app: session ready", "locale", loc.Name, "level", ctx.Level.Name, "world", fmt.Sprintf("%dx%d", w, h))
	return s, nil
}

func loadLocale(path string) (*level.Locale, error) {
	if path == "" {
		return level.Default()
	}
	return level.LoadFile(path)
}

// Dispatch routes ev through the HUD. A release no layer consumed becomes a
// tap on the world tile beneath it.
func (s *Session) Dispatch(ev hud.Event) bool {
	if s.Director.RouteInput(ev) {
		return true
	}
	if ev.Kind != hud.TouchUp {
		return false
	}
	scale := s.Config.Scale
	return s.Director.TapWorld(ev.X/scale, ev.Y/scale)
}

// Tick lets the active panel refresh state-dependent contents.
func (s *Session) Tick() {
	if u, ok := s.Director.Manager().Active().(interface{ Update() }); ok {
		u.Update()
	}
}
