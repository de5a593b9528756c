package strategy

import (
	"sudoku-engine/internal/board"
	"sudoku-engine/internal/boardlock"
	"sudoku-engine/internal/combination"
	"sudoku-engine/internal/zonecache"
)

// NakedK runs the naked-subset strategy for k = 2..floor(N/2) over every
// Unique zone: a size-k subset of non-final cells whose combined
// candidates number exactly k fully consumes those k values, so every
// other cell in the zone must drop them.
func NakedK(rg *boardlock.ReadGuard, zc *zonecache.ZoneCache) []Effect {
	var effects []Effect

	for _, z := range zc.Zones() {
		if z.Kind != board.Unique {
			continue
		}
		if zc.Checked(z, zonecache.StrategyNakedK) {
			continue
		}
		if nakedKOverZone(rg, zc, z, &effects) {
			continue
		}
		zc.MarkChecked(z, zonecache.StrategyNakedK)
	}

	return effects
}

// nakedKOverZone returns true if any effect was found for any k in z.
func nakedKOverZone(rg *boardlock.ReadGuard, zc *zonecache.ZoneCache, z board.Zone, effects *[]Effect) bool {
	all := zc.CellsOf(z)
	maxK := len(all) / 2
	found := false

	for k := 2; k <= maxK; k++ {
		candidates := make([]*board.Cell, 0, len(all))
		for _, c := range all {
			note := rg.Read(c)
			if !note.IsFinal() && note.TrueCount() <= k {
				candidates = append(candidates, c)
			}
		}
		if len(candidates) < k {
			continue
		}

		it := combination.New(len(candidates), k)
		for combo, ok := it.Next(); ok; combo, ok = it.Next() {
			if nakedKSubsetEffect(rg, zc, z, all, candidates, combo, effects) {
				found = true
			}
		}
	}

	return found
}

// nakedKSubsetEffect checks one size-k subset (indices into candidates)
// and, if its union of candidates has exactly k members, emits removal
// effects for every other cell in the zone. Returns whether an effect was
// emitted.
func nakedKSubsetEffect(rg *boardlock.ReadGuard, zc *zonecache.ZoneCache, z board.Zone, all, candidates []*board.Cell, combo []int, effects *[]Effect) bool {
	subsetIdx := make(map[int]bool, len(combo))
	union := make(map[int]bool)
	for _, ci := range combo {
		c := candidates[ci]
		subsetIdx[c.Index] = true
		for _, v := range rg.Read(c).TrueList() {
			union[v] = true
		}
	}
	if len(union) != len(combo) {
		return false
	}

	found := false
	for _, c := range all {
		if subsetIdx[c.Index] {
			continue
		}
		note := rg.Read(c)
		var toRemove []int
		for v := range union {
			if note.Get(v) {
				toRemove = append(toRemove, v)
			}
		}
		if len(toRemove) > 0 {
			*effects = append(*effects, Effect{Cell: c, Values: toRemove})
			found = true
		}
	}
	return found
}
