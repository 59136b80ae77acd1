//go:build ebiten

package main

import (
	"errors"

	"phoenicia/internal/app"

	"github.com/hajimehoshi/ebiten/v2"
)

func init() { runGame = run }

func run(s *app.Session) error {
	game := app.New(s)

	ebiten.SetWindowTitle("Phoenicia")
	ebiten.SetTPS(s.Config.TPS)
	ebiten.SetWindowSize(s.Config.Width, s.Config.Height)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
