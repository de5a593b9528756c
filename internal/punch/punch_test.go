package punch

import (
	"testing"
	"time"

	"sudoku-engine/internal/board"
	"sudoku-engine/internal/solver"
)

func solvedSolver(t *testing.T, seed uint64) *solver.Solver {
	t.Helper()
	b, err := board.NewClassic(9)
	if err != nil {
		t.Fatal(err)
	}
	s, err := solver.NewWithSeed(b, seed)
	if err != nil {
		t.Fatal(err)
	}
	unsolved, err := s.FillWithTimeout(10 * time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if unsolved != 0 {
		t.Fatalf("fixture solve left %d cells unsolved", unsolved)
	}
	return s
}

func TestFromSolverRejectsUnsolvedBoard(t *testing.T) {
	b, _ := board.NewClassic(9)
	s, _ := solver.NewWithSeed(b, 1)
	if _, err := FromSolver(s); err == nil {
		t.Fatal("expected error handing an unsolved board to punch")
	}
}

func TestPunchAllProducesHolesAndResolvesWithoutGuessing(t *testing.T) {
	s := solvedSolver(t, 5)
	p, err := FromSolver(s)
	if err != nil {
		t.Fatal(err)
	}

	punched := p.PunchAll()
	if punched == 0 {
		t.Fatal("expected at least one cell to be punched on a freshly solved board")
	}

	unsolvedAfterPunch := 0
	for _, c := range p.GetBoard().Cells {
		if !c.Note.IsFinal() {
			unsolvedAfterPunch++
		}
	}
	if unsolvedAfterPunch != punched {
		t.Fatalf("expected %d blank cells after punching, got %d", punched, unsolvedAfterPunch)
	}

	resolved, err := p.IntoSolver()
	if err != nil {
		t.Fatal(err)
	}
	unsolved, err := resolved.FillWithTimeout(10 * time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if unsolved != 0 {
		t.Fatalf("expected the punched board to fully re-resolve, %d cells left unsolved", unsolved)
	}
	if resolved.GuessCount() != 0 {
		t.Fatalf("expected a well-formed punch to re-resolve without guessing, got %d guesses", resolved.GuessCount())
	}
}

func TestUseAfterIntoSolverPanics(t *testing.T) {
	s := solvedSolver(t, 9)
	p, err := FromSolver(s)
	if err != nil {
		t.Fatal(err)
	}
	p.PunchAll()
	if _, err := p.IntoSolver(); err != nil {
		t.Fatal(err)
	}
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic using punch after into_solver")
		}
	}()
	p.PunchAll()
}
