package board

import "sudoku-engine/internal/candidate"

// Cell is one board position. Identity is by pointer: cells are never
// copied by value once constructed, and Board allocates each Cell
// individually (not inside a contiguous slice of structs) so the address
// stays stable for the program's lifetime — Go's non-moving collector
// already guarantees this, but the one-cell-per-allocation discipline
// keeps the invariant true even if that ever changed, and it matches the
// original's pinned-heap-allocation requirement directly.
type Cell struct {
	Note *candidate.Note

	zones   []Zone
	zoneSet map[uint16]bool

	X, Y  int
	Index int // flat index = Y*N + X
}

// Zones returns the zones this cell belongs to, in the order they were
// assigned at construction.
func (c *Cell) Zones() []Zone {
	return c.zones
}

// InZone reports whether the cell is a member of a zone with the given ID.
func (c *Cell) InZone(id uint16) bool {
	return c.zoneSet[id]
}

func newCell(x, y, index, n int) *Cell {
	note, err := candidate.AllTrue(n)
	if err != nil {
		panic(err)
	}
	return &Cell{
		Note:    note,
		zones:   nil,
		zoneSet: make(map[uint16]bool),
		X:       x,
		Y:       y,
		Index:   index,
	}
}

func (c *Cell) addZone(z Zone) {
	if c.zoneSet[z.ID] {
		return
	}
	c.zoneSet[z.ID] = true
	c.zones = append(c.zones, z)
}
