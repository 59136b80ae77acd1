// Package cli wires the phoenicia commands.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"phoenicia/internal/app"
	_ "phoenicia/internal/ui" // panels register themselves

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Runner opens the game window for a ready session.
type Runner func(s *app.Session) error

// ErrNoWindow is returned by the root command when no Runner was installed,
// which is the case in builds without the ebiten tag.
var ErrNoWindow = errors.New("the game window requires building with -tags ebiten")

var (
	stepColor  = color.New(color.FgCyan, color.Bold)
	stackColor = color.New(color.FgHiBlack)
	modalColor = color.New(color.FgYellow)
	errorColor = color.New(color.FgRed, color.Bold)
)

// NewRootCmd returns the phoenicia command tree. cfg supplies the flag
// defaults, so environment overrides must already be applied.
func NewRootCmd(cfg *app.Config, run Runner) *cobra.Command {
	root := &cobra.Command{
		Use:   "phoenicia",
		Short: "Letter trading game built around a stacked HUD",
		Long: `phoenicia opens the game window. Panels stack on top of each other:
the back gesture (Escape) returns to the one beneath.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if run == nil {
				return ErrNoWindow
			}
			s, err := app.NewSession(cfg, logger(cfg, cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			return run(s)
		},
	}
	cfg.Bind(root.PersistentFlags())
	root.AddCommand(newReplayCmd(cfg))
	return root
}

func logger(cfg *app.Config, w io.Writer) *slog.Logger {
	return app.NewLogger(cfg.LogLevel, w)
}

// Execute runs the command tree against os.Args.
func Execute(run Runner) error {
	cfg := app.NewConfig()
	if err := cfg.LoadEnv(); err != nil {
		return err
	}
	root := NewRootCmd(cfg, run)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorColor.Sprint("error:"), err)
		return err
	}
	return nil
}
