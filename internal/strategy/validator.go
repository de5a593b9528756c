package strategy

import (
	"fmt"

	"sudoku-engine/internal/board"
	"sudoku-engine/internal/boardlock"
	"sudoku-engine/internal/zonecache"
)

// Validate scans every zone under a read guard and reports the first
// contradiction found: a duplicate final in a Unique zone, a cell with no
// remaining candidates, or a Sum zone whose lower bound already exceeds
// (or, once fully final, does not equal) its target.
//
// Sum targets are expressed in the same zero-based value domain as every
// other candidate; a caller presenting 1-indexed puzzle digits subtracts
// one from the target for each cell of the zone.
func Validate(rg *boardlock.ReadGuard, zc *zonecache.ZoneCache) error {
	for _, z := range zc.Zones() {
		if z.Kind == board.Unique {
			if err := validateUnique(rg, zc, z); err != nil {
				return err
			}
			continue
		}
		if err := validateSum(rg, zc, z); err != nil {
			return err
		}
	}
	return nil
}

func validateUnique(rg *boardlock.ReadGuard, zc *zonecache.ZoneCache, z board.Zone) error {
	seen := make(map[int]*board.Cell, len(zc.CellsOf(z)))
	for _, c := range zc.CellsOf(z) {
		note := rg.Read(c)
		if note.TrueCount() == 0 {
			return &ContradictionError{Zone: z, Cell: c, Message: fmt.Sprintf("strategy: cell %d in zone %v has no remaining candidates", c.Index, z)}
		}
		v, ok := note.FinalNum()
		if !ok {
			continue
		}
		if prev, dup := seen[v]; dup {
			return &ContradictionError{Zone: z, Cell: c, Message: fmt.Sprintf("strategy: zone %v has duplicate final %d at cells %d and %d", z, v, prev.Index, c.Index)}
		}
		seen[v] = c
	}
	return nil
}

func validateSum(rg *boardlock.ReadGuard, zc *zonecache.ZoneCache, z board.Zone) error {
	lowerBound := 0
	allFinal := true
	for _, c := range zc.CellsOf(z) {
		note := rg.Read(c)
		if note.TrueCount() == 0 {
			return &ContradictionError{Zone: z, Cell: c, Message: fmt.Sprintf("strategy: cell %d in sum zone %v has no remaining candidates", c.Index, z)}
		}
		if v, ok := note.FinalNum(); ok {
			lowerBound += v
			continue
		}
		allFinal = false
		mn, _ := note.MinimumCandidate()
		lowerBound += mn
	}
	if lowerBound > z.Target {
		return &ContradictionError{Zone: z, Message: fmt.Sprintf("strategy: sum zone %v lower bound %d exceeds target %d", z, lowerBound, z.Target)}
	}
	if allFinal && lowerBound != z.Target {
		return &ContradictionError{Zone: z, Message: fmt.Sprintf("strategy: sum zone %v finals sum to %d, want %d", z, lowerBound, z.Target)}
	}
	return nil
}
