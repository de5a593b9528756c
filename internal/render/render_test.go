package render

import (
	"strings"
	"testing"

	"sudoku-engine/internal/board"
)

func TestBlankClassicBoardRendersSpaces(t *testing.T) {
	b, _ := board.NewClassic(9)
	out := Board(b)
	if strings.Contains(out, "0") || strings.Contains(out, "9") {
		t.Fatal("expected no final digits on a blank board")
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2*9-1 {
		t.Fatalf("expected %d lines (grid rows + separators), got %d", 2*9-1, len(lines))
	}
}

func TestFinalCellsRenderAsCharacters(t *testing.T) {
	b, _ := board.NewClassic(9)
	b.At(0, 0).Note.SetToSingle(0)
	b.At(1, 0).Note.SetToSingle(8)
	out := Board(b)
	firstLine := strings.Split(out, "\n")[0]
	if firstLine[0] != '0' {
		t.Fatalf("expected first cell to render as '0', got %q", firstLine)
	}
}

func TestBoxBoundarySeparatorAppearsAtBoxEdge(t *testing.T) {
	b, _ := board.NewClassic(9)
	out := Board(b)
	firstLine := strings.Split(out, "\n")[0]
	// Column indices 0,1,2 are box 0; a '|' must separate column 2 from 3.
	if firstLine[5] != '|' {
		t.Fatalf("expected box-boundary separator at position 5, got %q in %q", firstLine[5], firstLine)
	}
}

func TestParseClassicRoundTripsWithBoard(t *testing.T) {
	src, _ := board.NewClassic(9)
	src.At(0, 0).Note.SetToSingle(3)
	src.At(8, 8).Note.SetToSingle(7)

	parsed, err := ParseClassic(grid(src), 9)
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := parsed.At(0, 0).Note.FinalNum(); !ok || v != 3 {
		t.Fatalf("expected (0,0)=3, got %v %v", v, ok)
	}
	if v, ok := parsed.At(8, 8).Note.FinalNum(); !ok || v != 7 {
		t.Fatalf("expected (8,8)=7, got %v %v", v, ok)
	}
	if parsed.At(1, 1).Note.IsFinal() {
		t.Fatal("expected untouched cells to remain blank")
	}
}

func TestParseClassicRejectsWrongRowCount(t *testing.T) {
	if _, err := ParseClassic("1 2 3\n", 9); err == nil {
		t.Fatal("expected error for too few rows")
	}
}

func TestCageLegendListsSumZoneMembers(t *testing.T) {
	b, _ := board.NewClassic(9)
	if _, err := b.AddSumZone([]int{0, 1, 2}, 15); err != nil {
		t.Fatal(err)
	}
	out := Board(b)
	if !strings.Contains(out, "[cage sum=15]") {
		t.Fatalf("expected cage legend in output, got:\n%s", out)
	}
	if !strings.Contains(out, "(0,0), (1,0), (2,0)") {
		t.Fatalf("expected cage member coordinates, got:\n%s", out)
	}
}
