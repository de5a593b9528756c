// Command sudoku is the thin CLI front end over the constraint-propagation
// engine: it builds boards, drives the solver and generator, and renders
// results to stdout. It is the only part of the module that touches the
// OS — reading files and flags, writing output.
package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"sudoku-engine/pkg/config"
	"sudoku-engine/pkg/constants"
)

var (
	logger zerolog.Logger
	cfg    *config.Config
)

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:     "sudoku",
		Short:   "Generate and solve generalized N×N Sudoku puzzles",
		Version: constants.EngineVersion,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := zerolog.InfoLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
				Level(level).
				With().Timestamp().Logger()

			loaded, err := config.Load()
			if err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level logging")
	root.AddCommand(newGenerateCmd())
	root.AddCommand(newSolveCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
