package solver

import (
	"testing"
	"time"

	"sudoku-engine/internal/board"
)

func newTestSolver(t *testing.T, seed uint64) *Solver {
	t.Helper()
	b, err := board.NewClassic(9)
	if err != nil {
		t.Fatal(err)
	}
	s, err := NewWithSeed(b, seed)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestFillWithTimeoutFillsOrExhausts(t *testing.T) {
	s := newTestSolver(t, 42)
	unsolved, err := s.FillWithTimeout(5 * time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if unsolved < 0 || unsolved > 81 {
		t.Fatalf("unsolved count out of range: %d", unsolved)
	}
	if got := s.UnsolvedCount(); got != unsolved {
		t.Fatalf("UnsolvedCount() = %d, want %d", got, unsolved)
	}
}

func TestDeterministicWithSameSeed(t *testing.T) {
	a := newTestSolver(t, 7)
	b := newTestSolver(t, 7)

	a.FillWithTimeout(5 * time.Second)
	b.FillWithTimeout(5 * time.Second)

	ab, bb := a.Board(), b.Board()
	for i := range ab.Cells {
		an, bn := ab.Cells[i].Note, bb.Cells[i].Note
		if !an.IsSameNote(bn) {
			t.Fatalf("cell %d diverged between identically seeded solves", i)
		}
	}
}

func TestSolveReturnsFalseOnAlreadyStableBoard(t *testing.T) {
	s := newTestSolver(t, 1)
	// A completely empty classic board has no finals yet, so the pure
	// deduction strategies find nothing to do on the very first step.
	progressed, err := s.Solve()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if progressed {
		t.Fatal("expected no progress from deduction alone on a blank board")
	}
}

func TestFillOnceGuessesWhenDeductionStalls(t *testing.T) {
	s := newTestSolver(t, 99)
	progressed, err := s.FillOnce()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !progressed {
		t.Fatal("expected FillOnce to guess when deduction makes no progress")
	}
	if s.GuessCount() != 1 {
		t.Fatalf("expected exactly one guess, got %d", s.GuessCount())
	}
}

func TestConsumeForPunchPreventsFurtherUse(t *testing.T) {
	s := newTestSolver(t, 1)
	if _, _, _, _, err := s.ConsumeForPunch(); err != nil {
		t.Fatal(err)
	}
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic using a consumed solver")
		}
	}()
	s.Solve()
}

// TestRollbackRestoresBoardExceptExcludedValue exercises the
// (Guess, ..., Rollback) round-trip property directly: forcing a guess and
// immediately rolling back must restore every candidate the guess touched,
// except the attempted value must now be excluded from the guessed cell.
func TestRollbackRestoresBoardExceptExcludedValue(t *testing.T) {
	s := newTestSolver(t, 1)

	rg := s.bl.ReadLock()
	var cell *board.Cell
	for _, c := range s.Board().Cells {
		if !rg.Read(c).IsFinal() {
			cell = c
			break
		}
	}
	before := rg.Read(cell).TrueList()
	rg.Release()

	wg := s.bl.WriteLock()
	value := before[0]
	wg.Write(cell).SetToSingle(value)
	s.history = append(s.history, historyEntry{
		kind:    entryGuess,
		cell:    cell,
		value:   value,
		backups: []cellBackup{{cell: cell, prior: before}},
	})
	s.history = append(s.history, historyEntry{kind: entryCommit})
	wg.Release()

	rg2 := s.bl.ReadLock()
	if ok := s.rollback(rg2); !ok {
		t.Fatal("expected rollback to find the Guess entry")
	}

	rg = s.bl.ReadLock()
	after := rg.Read(cell).TrueList()
	rg.Release()

	if len(after) != len(before)-1 {
		t.Fatalf("expected rollback to leave %d candidates, got %d (%v)", len(before)-1, len(after), after)
	}
	for _, v := range after {
		if v == value {
			t.Fatalf("expected guessed value %d to remain excluded after rollback, got %v", value, after)
		}
	}
	for _, v := range before {
		if v == value {
			continue
		}
		found := false
		for _, a := range after {
			if a == v {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected candidate %d to be restored by rollback, got %v", v, after)
		}
	}
	if s.RollbackCount() != 1 || s.BacktrackCount() != 1 {
		t.Fatalf("expected one rollback and one backtrack, got rollback=%d backtrack=%d", s.RollbackCount(), s.BacktrackCount())
	}
}

// jigsaw9Regions is the layout from board_test.go's spec-testable scenario,
// duplicated here (1-indexed, converted below) since it is unexported in
// package board.
var jigsaw9Regions = []int{
	1, 1, 1, 1, 1, 2, 2, 2, 2,
	4, 1, 1, 1, 3, 3, 2, 2, 2,
	4, 4, 1, 3, 3, 3, 3, 2, 2,
	4, 4, 4, 5, 5, 3, 3, 3, 6,
	4, 4, 5, 5, 5, 5, 5, 6, 6,
	4, 7, 7, 7, 5, 5, 6, 6, 6,
	8, 8, 7, 7, 7, 7, 9, 6, 6,
	8, 8, 8, 7, 7, 9, 9, 9, 6,
	8, 8, 8, 8, 9, 9, 9, 9, 9,
}

func TestJigsawBoardSolvesToValidCompletion(t *testing.T) {
	regionOf := make([]int, len(jigsaw9Regions))
	for i, r := range jigsaw9Regions {
		regionOf[i] = r - 1
	}
	b, err := board.NewJigsaw(9, regionOf)
	if err != nil {
		t.Fatal(err)
	}
	s, err := NewWithSeed(b, 11)
	if err != nil {
		t.Fatal(err)
	}

	unsolved, err := s.FillWithTimeout(10 * time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if unsolved != 0 {
		t.Fatalf("expected the jigsaw board to fully solve, %d cells left unsolved (status=%s)", unsolved, s.Status())
	}
	assertNoZoneDuplicates(t, s.Board())
}

func TestSolve16x16FullyFills(t *testing.T) {
	b, err := board.NewClassic(16)
	if err != nil {
		t.Fatal(err)
	}
	s, err := NewWithSeed(b, 5)
	if err != nil {
		t.Fatal(err)
	}

	unsolved, err := s.FillWithTimeout(30 * time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if unsolved != 0 {
		t.Fatalf("expected the 16x16 board to fully solve, %d cells left unsolved (status=%s)", unsolved, s.Status())
	}
	assertNoZoneDuplicates(t, s.Board())
}

// assertNoZoneDuplicates checks every Unique zone on b holds each value at
// most once among its final cells.
func assertNoZoneDuplicates(t *testing.T, b *board.Board) {
	t.Helper()
	for _, z := range b.Zones {
		if z.Kind != board.Unique {
			continue
		}
		seen := make(map[int]bool)
		for _, c := range b.Cells {
			if !c.InZone(z.ID) {
				continue
			}
			v, ok := c.Note.FinalNum()
			if !ok {
				t.Fatalf("zone %v has a non-final cell on a fully solved board", z)
			}
			if seen[v] {
				t.Fatalf("zone %v has duplicate value %d", z, v)
			}
			seen[v] = true
		}
	}
}
