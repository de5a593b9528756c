// Package zonecache precomputes, once per board, the zone->cells and
// zone->connected-zones lookups the strategy engines need on every step,
// plus a per-zone per-strategy "already checked" flag so a strategy can
// skip a zone until something in it actually changes.
package zonecache

import (
	"fmt"
	"sort"
	"sync"

	"sudoku-engine/internal/board"
)

// Strategy names a deduction rule for the purposes of the checked-flag
// table. It is a plain string rather than an enum so new strategies never
// need a change here.
type Strategy string

const (
	StrategyValidator Strategy = "validator"
	StrategySingle    Strategy = "single"
	StrategyNakedK    Strategy = "naked_k"
	StrategyBoxLine   Strategy = "box_line"
)

// ZoneCache holds the precomputed zone topology for one board. Built once
// at solver construction; the zone/cell/connection maps never change
// afterward, only the checked flags do.
type ZoneCache struct {
	b *board.Board

	cells     map[uint16][]*board.Cell // sorted by flat index
	connected map[uint16][]board.Zone

	// checked is read and written from every strategy goroutine
	// runStrategies fans out, so it needs its own lock: plain Go maps
	// are not safe for concurrent access even across distinct keys, and
	// a stray concurrent write here is a fatal, unrecoverable crash, not
	// a catchable race. checkedMu guards checked alone.
	checkedMu sync.Mutex
	checked   map[uint16]map[Strategy]bool
}

// New builds a ZoneCache for b. Fails if any Unique zone does not contain
// exactly b.Domain.N cells.
func New(b *board.Board) (*ZoneCache, error) {
	zc := &ZoneCache{
		b:         b,
		cells:     make(map[uint16][]*board.Cell, len(b.Zones)),
		connected: make(map[uint16][]board.Zone, len(b.Zones)),
		checked:   make(map[uint16]map[Strategy]bool, len(b.Zones)),
	}

	for _, z := range b.Zones {
		zc.checked[z.ID] = make(map[Strategy]bool)
	}
	for _, c := range b.Cells {
		for _, z := range c.Zones() {
			zc.cells[z.ID] = append(zc.cells[z.ID], c)
		}
	}
	for _, z := range b.Zones {
		cells := zc.cells[z.ID]
		sort.Slice(cells, func(i, j int) bool { return cells[i].Index < cells[j].Index })
		if z.Kind == board.Unique && len(cells) != b.Domain.N {
			return nil, fmt.Errorf("zonecache: unique zone %v has %d cells, expected %d", z, len(cells), b.Domain.N)
		}
	}

	for _, z1 := range b.Zones {
		seen := make(map[uint16]bool)
		var conns []board.Zone
		for _, c := range zc.cells[z1.ID] {
			for _, z2 := range c.Zones() {
				if z2.ID == z1.ID || seen[z2.ID] {
					continue
				}
				seen[z2.ID] = true
				conns = append(conns, z2)
			}
		}
		zc.connected[z1.ID] = conns
	}

	return zc, nil
}

// Zones returns every zone on the board, in construction order.
func (zc *ZoneCache) Zones() []board.Zone {
	return zc.b.Zones
}

// CellsOf returns z's member cells, sorted by flat index.
func (zc *ZoneCache) CellsOf(z board.Zone) []*board.Cell {
	return zc.cells[z.ID]
}

// Connected returns the zones sharing at least one cell with z.
func (zc *ZoneCache) Connected(z board.Zone) []board.Zone {
	return zc.connected[z.ID]
}

// Checked reports whether strategy s has already scanned zone z under the
// current candidate state and found nothing.
func (zc *ZoneCache) Checked(z board.Zone, s Strategy) bool {
	zc.checkedMu.Lock()
	defer zc.checkedMu.Unlock()
	return zc.checked[z.ID][s]
}

// MarkChecked records that s scanned z and found no deduction.
func (zc *ZoneCache) MarkChecked(z board.Zone, s Strategy) {
	zc.checkedMu.Lock()
	defer zc.checkedMu.Unlock()
	zc.checked[z.ID][s] = true
}

// ClearChecksForCells invalidates every zone touched by any of cells, for
// every strategy. Called after a commit that changed those cells'
// candidates.
func (zc *ZoneCache) ClearChecksForCells(cells []*board.Cell) {
	touched := make(map[uint16]bool)
	for _, c := range cells {
		for _, z := range c.Zones() {
			touched[z.ID] = true
		}
	}

	zc.checkedMu.Lock()
	defer zc.checkedMu.Unlock()
	for id := range touched {
		zc.checked[id] = make(map[Strategy]bool)
	}
}

// ClearAllChecks invalidates every checked flag on the board.
func (zc *ZoneCache) ClearAllChecks() {
	zc.checkedMu.Lock()
	defer zc.checkedMu.Unlock()
	for id := range zc.checked {
		zc.checked[id] = make(map[Strategy]bool)
	}
}
