package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sudoku-engine/internal/render"
	"sudoku-engine/internal/solver"
)

func newSolveCmd() *cobra.Command {
	var (
		size  int
		input string
	)

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Parse a textual board and run the solver to completion",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("size") {
				size = cfg.DefaultSize
			}
			return runSolve(size, input)
		},
	}

	cmd.Flags().IntVar(&size, "size", 9, "board dimension N")
	cmd.Flags().StringVar(&input, "input", "", "path to a textual board (required)")
	cmd.MarkFlagRequired("input")
	return cmd
}

func runSolve(size int, inputPath string) error {
	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("solve: reading input: %w", err)
	}
	b, err := render.ParseClassic(string(raw), size)
	if err != nil {
		return err
	}

	s, err := solver.New(b, solver.WithLogger(logger), solver.WithPoolSize(cfg.ParallelWorkers))
	if err != nil {
		return err
	}

	unsolved, err := s.FillWithTimeout(cfg.FillTimeout)
	if err != nil {
		return err
	}

	if unsolved != 0 {
		logger.Warn().Int("unsolved", unsolved).Str("status", s.Status()).Msg("did not reach a full solution")
		fmt.Printf("Unsolved cells remaining: %d (%s)\n", unsolved, s.Status())
		fmt.Println(render.Board(s.Board()))
		return nil
	}

	logger.Info().
		Str("status", s.Status()).
		Int("guesses", s.GuessCount()).
		Int("rollbacks", s.RollbackCount()).
		Msg("solved")
	fmt.Println(render.Board(s.Board()))
	return nil
}
