// Package punch implements the generator's punch pass: starting from a
// fully solved board, it repeatedly clears cells whose value is still
// recoverable by a single deduction, producing a puzzle with holes that
// remains solvable without guessing.
package punch

import (
	"errors"

	"github.com/rs/zerolog"

	"sudoku-engine/internal/board"
	"sudoku-engine/internal/boardlock"
	"sudoku-engine/internal/rng"
	"sudoku-engine/internal/solver"
	"sudoku-engine/internal/zonecache"
)

// Punch borrows a board lock from a fully solved Solver and carves holes
// into it. Only one of Solver/Punch holds the lock at a time; FromSolver
// and IntoSolver are the consuming transitions between them.
type Punch struct {
	bl  *boardlock.BoardLock
	zc  *zonecache.ZoneCache
	rng *rng.RNG
	log zerolog.Logger

	consumed bool
}

// FromSolver adopts a solver whose board is fully solved, fixes every
// cell's solution value as its fixed-final, and clears all zone check
// flags ahead of punching.
func FromSolver(s *solver.Solver) (*Punch, error) {
	bl, zc, r, logger, err := s.ConsumeForPunch()
	if err != nil {
		return nil, err
	}

	wg := bl.WriteLock()
	for _, c := range bl.Board().Cells {
		note := wg.Write(c)
		if !note.IsFinal() {
			wg.Release()
			return nil, errors.New("punch: board is not fully solved")
		}
		note.FixCurrentAsFinal()
	}
	wg.Release()
	zc.ClearAllChecks()

	return &Punch{bl: bl, zc: zc, rng: r, log: logger}, nil
}

func (p *Punch) assertLive() {
	if p.consumed {
		panic("punch: use after the board was handed back to a solver (into_solver)")
	}
}

// GetBoard returns the board being punched.
func (p *Punch) GetBoard() *board.Board {
	p.assertLive()
	return p.bl.Board()
}

// nakedSingleCandidates returns every still-fixed, still-final cell for
// which at least one of its zones has every other cell already final —
// meaning this cell's value would be trivially re-derivable by Single if
// it were blanked out.
func (p *Punch) nakedSingleCandidates(rg *boardlock.ReadGuard) []*board.Cell {
	var out []*board.Cell
	for _, c := range p.bl.Board().Cells {
		note := rg.Read(c)
		if _, ok := note.FixedFinal(); !ok {
			continue
		}
		if !note.IsFinal() {
			continue
		}
		for _, z := range c.Zones() {
			if p.everyOtherCellFinal(rg, z, c) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

func (p *Punch) everyOtherCellFinal(rg *boardlock.ReadGuard, z board.Zone, self *board.Cell) bool {
	for _, peer := range p.zc.CellsOf(z) {
		if peer == self {
			continue
		}
		if !rg.Read(peer).IsFinal() {
			return false
		}
	}
	return true
}

// PunchAll repeatedly punches one eligible cell at a time until no
// naked-single candidate remains, returning the number of cells punched.
func (p *Punch) PunchAll() int {
	p.assertLive()
	punched := 0
	for {
		rg := p.bl.ReadLock()
		candidates := p.nakedSingleCandidates(rg)
		rg.Release()
		if len(candidates) == 0 {
			break
		}

		pick := candidates[p.rng.PickOne(len(candidates))]
		wg := p.bl.WriteLock()
		wg.Write(pick).ResetToBlank()
		wg.Release()

		p.zc.ClearChecksForCells([]*board.Cell{pick})
		punched++
		p.log.Debug().Int("cell", pick.Index).Msg("punched")
	}
	return punched
}

// IntoSolver hands the board back to a fresh Solver to resolve the
// remaining holes. Callers should assert GuessCount() == 0 after running
// it to completion — PunchAll only ever removes cells it proved
// recoverable by pure deduction, so a well-formed punch never needs a
// guess to re-fill.
func (p *Punch) IntoSolver() (*solver.Solver, error) {
	p.assertLive()
	p.consumed = true
	return solver.FromParts(p.bl, p.zc, p.rng, p.log)
}
