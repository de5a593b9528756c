package strategy

import (
	"sudoku-engine/internal/board"
	"sudoku-engine/internal/boardlock"
	"sudoku-engine/internal/zonecache"
)

// BoxLine runs box-line reduction: for connected Unique zones Z1, Z2, a
// value confined to Z1∩Z2 within Z1 must be dropped from the rest of Z2.
func BoxLine(rg *boardlock.ReadGuard, zc *zonecache.ZoneCache) []Effect {
	var effects []Effect

	for _, z1 := range zc.Zones() {
		if z1.Kind != board.Unique {
			continue
		}
		if zc.Checked(z1, zonecache.StrategyBoxLine) {
			continue
		}

		found := false
		for _, z2 := range zc.Connected(z1) {
			if z2.Kind != board.Unique {
				continue
			}
			if boxLinePair(rg, zc, z1, z2, &effects) {
				found = true
			}
		}
		if !found {
			zc.MarkChecked(z1, zonecache.StrategyBoxLine)
		}
	}

	return effects
}

// boxLinePair checks each value present anywhere in z1: if every z1 cell
// carrying it also belongs to z2, the value is confined to the
// intersection and must be dropped from z2's remaining cells.
func boxLinePair(rg *boardlock.ReadGuard, zc *zonecache.ZoneCache, z1, z2 board.Zone, effects *[]Effect) bool {
	cells1 := zc.CellsOf(z1)
	present := make(map[int]bool)
	for _, c := range cells1 {
		for _, v := range rg.Read(c).TrueList() {
			present[v] = true
		}
	}

	found := false
	for v := range present {
		confined := true
		for _, c := range cells1 {
			if !rg.Read(c).Get(v) {
				continue
			}
			if !c.InZone(z2.ID) {
				confined = false
				break
			}
		}
		if !confined {
			continue
		}
		for _, c := range zc.CellsOf(z2) {
			if c.InZone(z1.ID) {
				continue
			}
			if rg.Read(c).Get(v) {
				*effects = append(*effects, Effect{Cell: c, Values: []int{v}})
				found = true
			}
		}
	}
	return found
}
