package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"sudoku-engine/internal/board"
	"sudoku-engine/internal/punch"
	"sudoku-engine/internal/render"
	"sudoku-engine/internal/solver"
	"sudoku-engine/pkg/constants"
)

func newGenerateCmd() *cobra.Command {
	var (
		size       int
		seed       int64
		hasSeed    bool
		givens     int
		jigsawFile string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Fill a board, punch it, and print the puzzle and its solution",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("size") {
				size = cfg.DefaultSize
			}
			if !cmd.Flags().Changed("givens") {
				givens = cfg.DefaultGivens
			}
			if cmd.Flags().Changed("seed") {
				hasSeed = true
			} else if cfg.HasSeed {
				seed, hasSeed = cfg.Seed, true
			}
			return runGenerate(size, seed, hasSeed, givens, jigsawFile)
		},
	}

	cmd.Flags().IntVar(&size, "size", 9, "board dimension N")
	cmd.Flags().Int64Var(&seed, "seed", 0, "deterministic RNG seed")
	cmd.Flags().IntVar(&givens, "givens", 0, "advisory clue-count target (logged, not enforced)")
	cmd.Flags().StringVar(&jigsawFile, "jigsaw", "", "path to a jigsaw region-layout file")
	return cmd
}

func runGenerate(size int, seed int64, hasSeed bool, givens int, jigsawFile string) error {
	b, err := buildBoard(size, jigsawFile)
	if err != nil {
		return err
	}

	var s *solver.Solver
	if hasSeed {
		s, err = solver.NewWithSeed(b, uint64(seed), solver.WithLogger(logger), solver.WithPoolSize(cfg.ParallelWorkers))
	} else {
		s, err = solver.New(b, solver.WithLogger(logger), solver.WithPoolSize(cfg.ParallelWorkers))
	}
	if err != nil {
		return err
	}

	if unsolved, err := s.FillWithTimeout(cfg.FillTimeout); err != nil {
		return err
	} else if unsolved != 0 {
		return fmt.Errorf("generate: board still has %d unsolved cells after the fill timeout (%s)", unsolved, s.Status())
	}
	solvedText := render.Board(s.Board())

	p, err := punch.FromSolver(s)
	if err != nil {
		return err
	}
	punched := p.PunchAll()
	puzzleText := render.Board(p.GetBoard())

	resolved, err := p.IntoSolver()
	if err != nil {
		return err
	}
	unsolved, err := resolved.FillWithTimeout(cfg.FillTimeout)
	if err != nil {
		return err
	}
	if unsolved != 0 || resolved.GuessCount() != 0 {
		logger.Warn().Int("unsolved", unsolved).Int("guesses", resolved.GuessCount()).
			Msg("punched board did not resolve by pure deduction alone")
	}

	remaining := size*size - punched
	id := uuid.New()
	generatedAt := time.Now().Format(constants.DateFormat)
	logger.Info().
		Str("puzzle_id", id.String()).
		Str("generated", generatedAt).
		Str("resolve_status", resolved.Status()).
		Int("givens_target", givens).Int("givens_actual", remaining).Int("punched", punched).
		Msg("generated puzzle")

	fmt.Printf("Puzzle %s (%s):\n", id, generatedAt)
	fmt.Println(puzzleText)
	fmt.Println("Solution:")
	fmt.Println(solvedText)
	return nil
}

func buildBoard(size int, jigsawFile string) (*board.Board, error) {
	if jigsawFile == "" {
		return board.NewClassic(size)
	}
	raw, err := os.ReadFile(jigsawFile)
	if err != nil {
		return nil, fmt.Errorf("generate: reading jigsaw file: %w", err)
	}
	regions, err := parseRegionFile(string(raw), size)
	if err != nil {
		return nil, err
	}
	return board.NewJigsaw(size, regions)
}

// parseRegionFile reads N lines of N 1-indexed region ids each, returning
// the 0-indexed flat region map NewJigsaw expects.
func parseRegionFile(raw string, n int) ([]int, error) {
	fields := strings.Fields(raw)
	if len(fields) != n*n {
		return nil, fmt.Errorf("generate: jigsaw file has %d entries, expected %d", len(fields), n*n)
	}
	out := make([]int, n*n)
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("generate: jigsaw file entry %d: %w", i, err)
		}
		out[i] = v - 1
	}
	return out, nil
}
