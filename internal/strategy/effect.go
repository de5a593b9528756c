// Package strategy implements the pure deduction rules (Validator,
// Single, Naked-k, Box-Line Reduction) that the solver orchestrator runs
// in parallel over a read-locked board each step.
package strategy

import "sudoku-engine/internal/board"

// Effect is one proposed candidate removal: clear Values from Cell. The
// orchestrator batches, deduplicates, and commits effects under a write
// guard — a strategy never mutates candidates itself.
type Effect struct {
	Cell   *board.Cell
	Values []int
}

// ContradictionError reports a zone that cannot be satisfied: a
// duplicate final in a Unique zone, an empty candidate set, or a Sum
// zone whose lower bound already exceeds its target.
type ContradictionError struct {
	Zone    board.Zone
	Cell    *board.Cell
	Message string
}

func (e *ContradictionError) Error() string {
	return e.Message
}
