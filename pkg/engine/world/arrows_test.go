package world

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuildArrowGraph_OrientsByGlyph(t *testing.T) {
	rows := make([]string, TextRows)
	rows[9] = " o←o "
	rows[8] = " ↓ "
	rows[7] = " o "
	g := BuildArrowGraph(Decode(rows).Edges())

	if to, ok := g.Next(C(1, 0)); !ok || to != C(0, 0) {
		t.Errorf("Next(1,0) = %v,%v, want 0,0 (left arrow flips decoded order)", to, ok)
	}
	if _, ok := g.Next(C(0, 0)); ok {
		t.Error("0,0 has an outgoing arrow, want none")
	}
	if to, ok := g.Next(C(0, 1)); !ok || to != C(0, 0) {
		t.Errorf("Next(0,1) = %v,%v, want 0,0", to, ok)
	}
}

func TestBuildArrowGraph_LastInScanOrderWins(t *testing.T) {
	rows := make([]string, TextRows)
	rows[9] = " o←o→o "
	g := BuildArrowGraph(Decode(rows).Edges())
	if g.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", g.Len())
	}
	if to, _ := g.Next(C(1, 0)); to != C(2, 0) {
		t.Errorf("Next(1,0) = %v, want 2,0 (the later glyph)", to)
	}
}

func TestFindArrowChains_PathAndCycle(t *testing.T) {
	rows := []string{
		"           ",
		" o→o→o o o ",
		"     ↓     ",
		" o o o o o ",
		"           ",
		" o→o o o o ",
		" ↑ ↓       ",
		" o←o o o o ",
		"           ",
		" o o o o o ",
		"           ",
	}
	chains := FindArrowChains(BuildArrowGraph(Decode(rows).Edges()))
	want := [][]Coord{
		{C(0, 4), C(1, 4), C(2, 4), C(2, 3)},
		{C(0, 2), C(1, 2), C(1, 1), C(0, 1)},
	}
	if diff := cmp.Diff(want, chains); diff != "" {
		t.Errorf("FindArrowChains mismatch (-want +got):\n%s", diff)
	}
}

func TestFindArrowChains_NoCoordInTwoChains(t *testing.T) {
	rows := []string{
		"           ",
		" o→o→o→o o ",
		"         ↓ ",
		" o o o o o ",
		"   ↑     ↓ ",
		" o o←o←o←o ",
		"           ",
		" o→o o o o ",
		"           ",
		" o o o o o ",
		"           ",
	}
	g := BuildArrowGraph(Decode(rows).Edges())
	chains := FindArrowChains(g)
	seen := make(map[Coord]int)
	for _, ch := range chains {
		if len(ch) < 2 {
			t.Errorf("chain %v shorter than 2", ch)
		}
		for _, c := range ch {
			seen[c]++
		}
	}
	for c, n := range seen {
		if n > 1 {
			t.Errorf("coordinate %v emitted %d times", c, n)
		}
	}
	for _, origin := range g.Origins() {
		if seen[origin] != 1 {
			t.Errorf("arrow origin %v emitted %d times, want 1", origin, seen[origin])
		}
	}
}

func TestFindArrowChains_DropsSingletons(t *testing.T) {
	if got := FindArrowChains(BuildArrowGraph(nil)); len(got) != 0 {
		t.Errorf("FindArrowChains(empty) = %v, want none", got)
	}
}
