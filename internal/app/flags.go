package app

import (
	"errors"
	"fmt"
	"image"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/pflag"
)

// Config represents the startup parameters for the application. Defaults
// come from NewConfig, PHOENICIA_* variables override them and flags
// override both.
type Config struct {
	Locale     string `env:"PHOENICIA_LOCALE"`
	Scale      int    `env:"PHOENICIA_SCALE"`
	Width      int    `env:"PHOENICIA_WIDTH"`
	Height     int    `env:"PHOENICIA_HEIGHT"`
	TPS        int    `env:"PHOENICIA_TPS"`
	Seed       int64  `env:"PHOENICIA_SEED"`
	StartLevel int    `env:"PHOENICIA_START_LEVEL"`
	Coins      int    `env:"PHOENICIA_COINS"`
	LogLevel   string `env:"PHOENICIA_LOG_LEVEL"`
	Tour       string `env:"PHOENICIA_TOUR"`
	Debug      bool   `env:"PHOENICIA_DEBUG"`
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Scale: 32, Width: 640, Height: 480, TPS: 60, Seed: 42, Coins: 20, LogLevel: "info"}
}

// LoadEnv overlays PHOENICIA_* environment variables onto c.
func (c *Config) LoadEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&c.Locale, "locale", c.Locale, "locale YAML file (default: embedded)")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixels per world tile")
	fs.IntVar(&c.Width, "width", c.Width, "logical screen width")
	fs.IntVar(&c.Height, "height", c.Height, "logical screen height")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for panel shuffles")
	fs.IntVar(&c.StartLevel, "level", c.StartLevel, "zero-based starting level")
	fs.IntVar(&c.Coins, "coins", c.Coins, "starting coins")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	fs.StringVar(&c.Tour, "tour", c.Tour, "tour stop to show at startup")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "show the debug panel button")
}

// Validate rejects configurations the game cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.Scale <= 0 {
		errs = append(errs, fmt.Errorf("scale must be positive, got %d", c.Scale))
	}
	if c.Width < c.Scale || c.Height < c.Scale {
		errs = append(errs, fmt.Errorf("screen %dx%d is smaller than one tile", c.Width, c.Height))
	}
	if c.TPS <= 0 {
		errs = append(errs, fmt.Errorf("tps must be positive, got %d", c.TPS))
	}
	if c.Coins < 0 {
		errs = append(errs, fmt.Errorf("coins must not be negative, got %d", c.Coins))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Screen is the logical screen rectangle panels lay themselves out in.
func (c *Config) Screen() image.Rectangle { return image.Rect(0, 0, c.Width, c.Height) }

// WorldSize returns the world dimensions in tiles.
func (c *Config) WorldSize() (int, int) {
	if c.Scale <= 0 {
		return 0, 0
	}
	return c.Width / c.Scale, c.Height / c.Scale
}
