// Package render turns a Board into the textual format described as an
// external, non-core concern: finals as their symbol (0-9 then A-Z) or a
// blank, zone boundaries as ASCII separators, and killer-style sum zones
// as a bracketed cage legend beneath the grid.
package render

import (
	"fmt"
	"strings"

	"sudoku-engine/internal/board"
)

// ParseClassic reads a textual N×N grid into a freshly built classic
// board. Two layouts are accepted. Input of exactly 2N-1 lines is read as
// the grid Board draws: cell symbols at the even columns of the even
// lines, ' ' for a blank cell. Any other input is read one line per row,
// one symbol per cell, with every character other than [0-9A-Za-z.]
// dropped; there '.' leaves a cell blank. Symbols are parsed through
// valueOf.
func ParseClassic(raw string, n int) (*board.Board, error) {
	b, err := board.NewClassic(n)
	if err != nil {
		return nil, err
	}

	rows := meaningfulLines(raw)
	if lines := strings.Split(strings.TrimRight(raw, "\n"), "\n"); len(lines) == 2*n-1 {
		rows = nil
		for y := 0; y < len(lines); y += 2 {
			var cells []byte
			for x := 0; x < len(lines[y]); x += 2 {
				cells = append(cells, lines[y][x])
			}
			rows = append(rows, strings.ReplaceAll(string(cells), " ", "."))
		}
	}
	if len(rows) != n {
		return nil, fmt.Errorf("render: expected %d grid rows, got %d", n, len(rows))
	}
	for y, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("render: row %d has %d cells, expected %d", y, len(row), n)
		}
		for x, ch := range row {
			if ch == '.' {
				continue
			}
			v, ok := valueOf(ch)
			if !ok || v >= n {
				return nil, fmt.Errorf("render: invalid symbol %q at row %d col %d", ch, y, x)
			}
			b.At(x, y).Note.SetToSingle(v)
		}
	}
	return b, nil
}

// meaningfulLines strips everything but digits, letters, and '.' from
// each line, dropping lines that end up empty (pure separator lines).
func meaningfulLines(raw string) []string {
	var rows []string
	for _, line := range strings.Split(raw, "\n") {
		var sb strings.Builder
		for _, ch := range line {
			if (ch >= '0' && ch <= '9') || (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z') || ch == '.' {
				sb.WriteRune(ch)
			}
		}
		if sb.Len() > 0 {
			rows = append(rows, sb.String())
		}
	}
	return rows
}

func valueOf(ch rune) (int, bool) {
	switch {
	case ch >= '0' && ch <= '9':
		return int(ch - '0'), true
	case ch >= 'A' && ch <= 'Z':
		return 10 + int(ch-'A'), true
	case ch >= 'a' && ch <= 'z':
		return 10 + int(ch-'a'), true
	default:
		return 0, false
	}
}

// Board renders b's current state: the grid, followed by a cage legend
// if b carries any Sum zones.
func Board(b *board.Board) string {
	var sb strings.Builder
	sb.WriteString(grid(b))
	if legend := cageLegend(b); legend != "" {
		sb.WriteString("\n")
		sb.WriteString(legend)
	}
	return sb.String()
}

// regionZoneFloor is the flat-ID offset where region (box/jigsaw) zones
// begin: NewClassic and NewJigsaw both add N row zones, then N column
// zones, then N region zones, in that order.
func regionZoneFloor(n int) uint16 {
	return uint16(2 * n)
}

// regionID returns the zone ID of c's row-and-column-independent region
// (box for classic boards, custom region for jigsaw), used to decide
// where to draw a separator.
func regionID(c *board.Cell, floor, ceil uint16) uint16 {
	for _, z := range c.Zones() {
		if z.Kind == board.Unique && z.ID >= floor && z.ID < ceil {
			return z.ID
		}
	}
	return 0
}

func valueChar(c *board.Cell) byte {
	v, ok := c.Note.FinalNum()
	if !ok {
		return ' '
	}
	if v < 10 {
		return byte('0' + v)
	}
	return byte('A' + (v - 10))
}

func grid(b *board.Board) string {
	n := b.Domain.N
	floor := regionZoneFloor(n)
	ceil := floor + uint16(n)

	var sb strings.Builder
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			c := b.At(x, y)
			sb.WriteByte(valueChar(c))
			if x < n-1 {
				if regionID(c, floor, ceil) != regionID(b.At(x+1, y), floor, ceil) {
					sb.WriteByte('|')
				} else {
					sb.WriteByte(' ')
				}
			}
		}
		sb.WriteByte('\n')

		if y < n-1 {
			for x := 0; x < n; x++ {
				if regionID(b.At(x, y), floor, ceil) != regionID(b.At(x, y+1), floor, ceil) {
					sb.WriteString("--")
				} else {
					sb.WriteString("  ")
				}
			}
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func cageLegend(b *board.Board) string {
	var sb strings.Builder
	for _, z := range b.Zones {
		if z.Kind != board.Sum {
			continue
		}
		fmt.Fprintf(&sb, "[cage sum=%d]: ", z.Target)
		first := true
		for _, c := range b.Cells {
			if !c.InZone(z.ID) {
				continue
			}
			if !first {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "(%d,%d)", c.X, c.Y)
			first = false
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
