package tui

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"dungeonmap/pkg/engine/world"
	"dungeonmap/pkg/game/floor"
	"dungeonmap/pkg/game/style"
)

func render(t *testing.T, f *floor.Floor, opts Options) string {
	t.Helper()
	ctx := context.Background()
	grid := f.Grid()
	cells := style.ResolveCells(ctx, grid, f.Styles, f.Nodes)
	styles := style.NewResolver(style.DefaultTable(), f.Scope(), 50)

	var b strings.Builder
	require.NoError(t, New(opts).Render(&b, f, grid, cells, styles))
	return b.String()
}

func TestRender_PlainGrid(t *testing.T) {
	rows := make([]string, world.TextRows)
	rows[5] = " o-o "
	out := render(t, &floor.Floor{ID: 4, Name: "Test", Edges: rows}, Options{})
	lines := strings.Split(out, "\n")

	require.Equal(t, "D4 Test", lines[0])
	// Title, blank line, then eleven map rows.
	mapRow := lines[2+5]
	require.Equal(t, "│ ·   · │   │   │   │", mapRow)
	require.NotContains(t, out, "\x1b[")
}

func TestRender_HazardAndArrow(t *testing.T) {
	rows := make([]string, world.TextRows)
	rows[1] = " o!o→o "
	out := render(t, &floor.Floor{ID: 1, Edges: rows}, Options{})
	require.Contains(t, out, "│ · ! · → · │")
}

func TestRender_RoutesAndHidden(t *testing.T) {
	rows := make([]string, world.TextRows)
	rows[9] = " o-o-o "
	f := &floor.Floor{
		ID:    1,
		Edges: rows,
		Paths: []floor.PathDef{
			{Cells: [][2]int{{0, 0}, {2, 0}}, Label: "go"},
			{Cells: [][2]int{{0, 0}, {1, 0}}, Toggle: "extra", Style: "alt"},
		},
	}
	out := render(t, f, Options{Hidden: func(g string) bool { return g == "extra" }})

	require.Contains(t, out, "go: 0,0 → 1,0 → 2,0")
	require.Contains(t, out, "alt: 0,0 → 1,0 [hidden]")
}

func TestRender_Centred(t *testing.T) {
	rows := make([]string, world.TextRows)
	out := render(t, &floor.Floor{ID: 1, Edges: rows}, Options{Width: 61})
	require.True(t, strings.HasPrefix(out, strings.Repeat(" ", 20)+"D1"))
}

func TestShortText(t *testing.T) {
	tests := map[string]string{
		"":   IconNode,
		"A":  "A",
		"AB": IconText,
		"宝":  IconText,
	}
	for in, want := range tests {
		if got := shortText(in); got != want {
			t.Errorf("shortText(%q) = %q, want %q", in, got, want)
		}
	}
}
