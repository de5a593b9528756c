// Package board implements the immutable board shape: cells, zones, and
// the factories (classic, jigsaw, killer) that assign zone membership.
// Candidate mutation lives behind internal/boardlock; Board itself only
// describes the fixed shape.
package board

import (
	"fmt"
	"math"

	"sudoku-engine/internal/num"
)

// Board owns every cell for one puzzle instance. Cells are never shared
// across boards — Board.Owns, checked by every boardlock guard, enforces
// that.
type Board struct {
	Domain num.Domain
	Cells  []*Cell // length N*N, flat index order
	Zones  []Zone

	nextZoneID uint16
}

// At returns the cell at (x,y).
func (b *Board) At(x, y int) *Cell {
	return b.Cells[y*b.Domain.N+x]
}

// Owns reports whether cell belongs to this board. Used by boardlock as
// the Go-idiomatic stand-in for the original's pinned-address-range
// check: cells are heap-allocated individually here too, but ownership is
// asserted by identity against this board rather than by pointer range,
// since Go's allocator gives no contiguous arena to range-check against.
func (b *Board) Owns(c *Cell) bool {
	if c == nil || c.Index < 0 || c.Index >= len(b.Cells) {
		return false
	}
	return b.Cells[c.Index] == c
}

func newEmptyBoard(n int) (*Board, error) {
	d, err := num.NewDomain(n)
	if err != nil {
		return nil, err
	}
	b := &Board{Domain: d, Cells: make([]*Cell, n*n)}
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			idx := y*n + x
			b.Cells[idx] = newCell(x, y, idx, n)
		}
	}
	return b, nil
}

func (b *Board) allocZoneID() uint16 {
	id := b.nextZoneID
	b.nextZoneID++
	return id
}

func (b *Board) addUniqueZone(cells []*Cell) Zone {
	z := Zone{ID: b.allocZoneID(), Kind: Unique}
	for _, c := range cells {
		c.addZone(z)
	}
	b.Zones = append(b.Zones, z)
	return z
}

// AddSumZone adds a killer-style Sum zone over the given flat cell
// indices, targeting the given sum. Must be called before the board's
// ZoneCache is built.
func (b *Board) AddSumZone(cellIndices []int, target int) (Zone, error) {
	cells := make([]*Cell, 0, len(cellIndices))
	for _, idx := range cellIndices {
		if idx < 0 || idx >= len(b.Cells) {
			return Zone{}, fmt.Errorf("board: sum zone cell index %d out of range", idx)
		}
		cells = append(cells, b.Cells[idx])
	}
	z := Zone{ID: b.allocZoneID(), Kind: Sum, Target: target}
	for _, c := range cells {
		c.addZone(z)
	}
	b.Zones = append(b.Zones, z)
	return z, nil
}

// NewClassic builds a standard N×N board with N row zones, N column
// zones, and N box zones, each Unique. N must have an integer square
// root (the box dimension).
func NewClassic(n int) (*Board, error) {
	boxSize := int(math.Sqrt(float64(n)))
	if boxSize*boxSize != n {
		return nil, fmt.Errorf("board: classic shape requires a perfect-square N, got %d", n)
	}

	b, err := newEmptyBoard(n)
	if err != nil {
		return nil, err
	}

	for y := 0; y < n; y++ {
		row := make([]*Cell, n)
		for x := 0; x < n; x++ {
			row[x] = b.At(x, y)
		}
		b.addUniqueZone(row)
	}
	for x := 0; x < n; x++ {
		col := make([]*Cell, n)
		for y := 0; y < n; y++ {
			col[y] = b.At(x, y)
		}
		b.addUniqueZone(col)
	}
	for boxY := 0; boxY < boxSize; boxY++ {
		for boxX := 0; boxX < boxSize; boxX++ {
			cells := make([]*Cell, 0, n)
			for dy := 0; dy < boxSize; dy++ {
				for dx := 0; dx < boxSize; dx++ {
					cells = append(cells, b.At(boxX*boxSize+dx, boxY*boxSize+dy))
				}
			}
			b.addUniqueZone(cells)
		}
	}

	return b, nil
}

// KillerCage is one sum-zone to add atop a classic or jigsaw shape:
// member cell indices (flat, y*n+x) and their target sum.
type KillerCage struct {
	Cells []int
	Sum   int
}

// NewKiller builds a classic (regionOf == nil) or jigsaw board and layers
// killer-style Sum zones on top of it.
func NewKiller(n int, regionOf []int, cages []KillerCage) (*Board, error) {
	var b *Board
	var err error
	if regionOf != nil {
		b, err = NewJigsaw(n, regionOf)
	} else {
		b, err = NewClassic(n)
	}
	if err != nil {
		return nil, err
	}
	for _, cage := range cages {
		if _, err := b.AddSumZone(cage.Cells, cage.Sum); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// NewJigsaw builds an N×N board with N row zones and N column zones, but
// replaces the box zones with a custom region layout: regionOf[y*N+x]
// gives the region id (in [0,N)) for cell (x,y). Every region must
// contain exactly N cells.
func NewJigsaw(n int, regionOf []int) (*Board, error) {
	if len(regionOf) != n*n {
		return nil, fmt.Errorf("board: jigsaw region map must have %d entries, got %d", n*n, len(regionOf))
	}

	b, err := newEmptyBoard(n)
	if err != nil {
		return nil, err
	}

	for y := 0; y < n; y++ {
		row := make([]*Cell, n)
		for x := 0; x < n; x++ {
			row[x] = b.At(x, y)
		}
		b.addUniqueZone(row)
	}
	for x := 0; x < n; x++ {
		col := make([]*Cell, n)
		for y := 0; y < n; y++ {
			col[y] = b.At(x, y)
		}
		b.addUniqueZone(col)
	}

	regions := make(map[int][]*Cell, n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			r := regionOf[y*n+x]
			if r < 0 || r >= n {
				return nil, fmt.Errorf("board: jigsaw region id %d at (%d,%d) out of range [0,%d)", r, x, y, n)
			}
			regions[r] = append(regions[r], b.At(x, y))
		}
	}
	if len(regions) != n {
		return nil, fmt.Errorf("board: jigsaw layout must define exactly %d regions, got %d", n, len(regions))
	}
	for r := 0; r < n; r++ {
		cells, ok := regions[r]
		if !ok || len(cells) != n {
			return nil, fmt.Errorf("board: jigsaw region %d must contain exactly %d cells, got %d", r, n, len(cells))
		}
		b.addUniqueZone(cells)
	}

	return b, nil
}
