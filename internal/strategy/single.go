package strategy

import (
	"sudoku-engine/internal/board"
	"sudoku-engine/internal/boardlock"
	"sudoku-engine/internal/zonecache"
)

// Single (hidden/naked single) eliminates a final cell's value from every
// other cell that shares a zone with it. Skips zones already marked
// checked for this strategy.
func Single(rg *boardlock.ReadGuard, zc *zonecache.ZoneCache) []Effect {
	var effects []Effect

	for _, z := range zc.Zones() {
		if z.Kind != board.Unique {
			continue
		}
		if zc.Checked(z, zonecache.StrategySingle) {
			continue
		}

		found := false
		for _, c := range zc.CellsOf(z) {
			note := rg.Read(c)
			v, ok := note.FinalNum()
			if !ok {
				continue
			}
			if eliminateFromPeers(rg, zc, c, v, &effects) {
				found = true
			}
		}
		if !found {
			zc.MarkChecked(z, zonecache.StrategySingle)
		}
	}

	return effects
}

// eliminateFromPeers removes v from every cell sharing a zone with c
// (excluding c itself) that still carries it, appending an effect per
// affected cell. Returns whether any elimination was proposed.
func eliminateFromPeers(rg *boardlock.ReadGuard, zc *zonecache.ZoneCache, c *board.Cell, v int, effects *[]Effect) bool {
	seen := map[int]bool{c.Index: true}
	found := false
	for _, z := range c.Zones() {
		for _, peer := range zc.CellsOf(z) {
			if seen[peer.Index] {
				continue
			}
			seen[peer.Index] = true
			if rg.Read(peer).Get(v) {
				*effects = append(*effects, Effect{Cell: peer, Values: []int{v}})
				found = true
			}
		}
	}
	return found
}
