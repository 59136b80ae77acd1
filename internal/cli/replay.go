package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"phoenicia/internal/app"
	"phoenicia/internal/director"
	"phoenicia/internal/hud"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// ErrUnknownStep is returned for a script step no command matches.
var ErrUnknownStep = errors.New("unknown step")

// Script is a replayable sequence of HUD steps. Coins and Level override
// the configured starting state when set.
type Script struct {
	Coins *int     `yaml:"coins"`
	Level *int     `yaml:"level"`
	Steps []string `yaml:"steps"`
}

// LoadScript reads a YAML replay script.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script %s: %w", path, err)
	}
	for i, step := range s.Steps {
		if _, err := parseStep(step); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return &s, nil
}

func newReplayCmd(cfg *app.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "replay <script.yaml>",
		Short: "Replay a scripted sequence of HUD steps headless",
		Long: `replay drives the HUD without a window and prints the stack after
every step: the active panel, the suspended panels beneath it and any modal.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := LoadScript(args[0])
			if err != nil {
				return err
			}
			c := *cfg
			if script.Coins != nil {
				c.Coins = *script.Coins
			}
			if script.Level != nil {
				c.StartLevel = *script.Level
			}
			s, err := app.NewSession(&c, logger(&c, cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			return Replay(cmd.OutOrStdout(), s, script)
		},
	}
}

// Replay runs every step against s and prints the stack after each one.
// A failing step is reported and the replay carries on.
func Replay(w io.Writer, s *app.Session, script *Script) error {
	printStack(w, "start", s)
	for _, raw := range script.Steps {
		step, err := parseStep(raw)
		if err != nil {
			return err
		}
		if err := step(s); err != nil {
			fmt.Fprintf(w, "%s %s %v\n", stepColor.Sprint(raw), errorColor.Sprint("failed:"), err)
			continue
		}
		printStack(w, raw, s)
	}
	return nil
}

func printStack(w io.Writer, label string, s *app.Session) {
	mgr := s.Director.Manager()
	names := make([]string, 0, mgr.Depth())
	for _, p := range mgr.Suspended() {
		names = append(names, hud.Name(p))
	}
	line := fmt.Sprintf("%s active=%s %s", stepColor.Sprint(label), hud.Name(mgr.Active()),
		stackColor.Sprintf("suspended=[%s]", strings.Join(names, " ")))
	if m := mgr.Modal(); m != nil {
		line += " " + modalColor.Sprintf("modal=%s", hud.Name(m))
	}
	fmt.Fprintln(w, line)
}

type step func(s *app.Session) error

func parseStep(raw string) (step, error) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrUnknownStep)
	}
	name, args := fields[0], fields[1:]
	want := func(n int) error {
		if len(args) != n {
			return fmt.Errorf("%s takes %d argument(s), got %d", name, n, len(args))
		}
		return nil
	}
	nav := func(fn func(d *director.Director) error) (step, error) {
		if err := want(0); err != nil {
			return nil, err
		}
		return func(s *app.Session) error { return fn(s.Director) }, nil
	}

	switch name {
	case "home":
		return nav((*director.Director).Home)
	case "back":
		return nav((*director.Director).Back)
	case "inventory":
		return nav((*director.Director).ShowInventory)
	case "market":
		return nav((*director.Director).ShowMarket)
	case "debug":
		return nav((*director.Director).ShowDebug)
	case "decorations":
		return nav((*director.Director).ShowDecorationPlacement)
	case "games":
		return nav((*director.Director).ShowGamePlacement)
	case "level-up":
		return nav((*director.Director).LevelUp)
	case "end-tour":
		return nav((*director.Director).EndTour)
	case "letters":
		return nav(func(d *director.Director) error { return d.ShowLetterPlacement(nil) })
	case "words":
		return nav(func(d *director.Director) error { return d.ShowWordPlacement(nil) })
	case "intro":
		return nav(func(d *director.Director) error { return d.ShowLevelIntro(nil) })
	case "new-level":
		return nav(func(d *director.Director) error { return d.ShowNewLevel(nil) })
	case "goals":
		return nav(func(d *director.Director) error { return d.ShowNextLevelReq(nil) })
	case "clear":
		return nav(func(d *director.Director) error { return d.Manager().Clear() })
	case "workshop":
		return nav(func(d *director.Director) error { return d.ShowWorkshop("") })
	case "build":
		if err := want(1); err != nil {
			return nil, err
		}
		word := args[0]
		return func(s *app.Session) error { return s.Director.ShowWordBuilder(nil, word) }, nil
	case "game":
		if err := want(1); err != nil {
			return nil, err
		}
		kind := args[0]
		return func(s *app.Session) error { return s.Director.ShowGame(nil, kind) }, nil
	case "tour":
		if err := want(1); err != nil {
			return nil, err
		}
		stop := args[0]
		return func(s *app.Session) error {
			st, ok := s.Director.Context().Locale.Stop(stop)
			if !ok {
				return fmt.Errorf("unknown tour stop %q", stop)
			}
			return s.Director.StartTour(st)
		}, nil
	case "escape":
		return nav(func(d *director.Director) error {
			d.RouteInput(hud.Event{Kind: hud.Back})
			return nil
		})
	case "tap":
		if err := want(2); err != nil {
			return nil, err
		}
		x, errX := strconv.Atoi(args[0])
		y, errY := strconv.Atoi(args[1])
		if err := errors.Join(errX, errY); err != nil {
			return nil, fmt.Errorf("tap: %w", err)
		}
		return func(s *app.Session) error {
			s.Dispatch(hud.Event{Kind: hud.TouchDown, X: x, Y: y})
			s.Dispatch(hud.Event{Kind: hud.TouchUp, X: x, Y: y})
			return nil
		}, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownStep, name)
}
