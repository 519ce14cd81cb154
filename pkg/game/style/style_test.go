package style

import (
	"context"
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"dungeonmap/pkg/engine/world"
	"dungeonmap/pkg/game/floor"
)

func str(s string) *string { return &s }

func gridWith(rows map[int]string) *world.Grid {
	text := make([]string, world.TextRows)
	for i, r := range rows {
		text[i] = r
	}
	return world.Decode(text)
}

func cellAt(t *testing.T, cells []Cell, x, y int) Cell {
	t.Helper()
	for _, c := range cells {
		if c.Pos == world.C(x, y) {
			return c
		}
	}
	t.Fatalf("no cell at %d,%d", x, y)
	return Cell{}
}

func TestResolveCells_FloorStyleWins(t *testing.T) {
	global := floor.Styles{"X": {Text: str("a")}}
	local := floor.Styles{"X": {Text: str("b")}}
	grid := gridWith(map[int]string{1: " X "})

	cells := ResolveCells(context.Background(), grid, floor.Merge(global, local), nil)
	if got := cellAt(t, cells, 0, 4).Text; got != "b" {
		t.Errorf("Text = %q, want %q", got, "b")
	}
}

func TestResolveCells_BaseClassesAndText(t *testing.T) {
	styles := floor.Styles{"B": {Text: str("boss"), Class: "icon-boss"}}
	grid := gridWith(map[int]string{1: " B o Q "})

	cells := ResolveCells(context.Background(), grid, styles, nil)
	require.Len(t, cells, 25)

	b := cellAt(t, cells, 0, 4)
	require.Equal(t, []string{"type-B", "icon-boss"}, b.Classes)
	require.Equal(t, "boss", b.Text)

	o := cellAt(t, cells, 1, 4)
	require.Equal(t, []string{NodeClass}, o.Classes)
	require.Equal(t, "o", o.Text)

	q := cellAt(t, cells, 2, 4)
	require.Equal(t, "Q", q.Text)

	blank := cellAt(t, cells, 3, 4)
	require.Equal(t, []string{BlankClass}, blank.Classes)
	require.Empty(t, blank.Text)
}

func TestResolveCells_OverrideDropsPlainNodeClass(t *testing.T) {
	styles := floor.Styles{
		"2F":    {Label: str("2F")},
		"start": {Text: str("go"), Class: "warn marker"},
		"warn":  {Class: "deeper"},
	}
	grid := gridWith(map[int]string{9: " o o o "})
	nodes := []floor.NodeOverride{
		{X: 0, Y: 0, Class: "icon-up 2F"},
		{X: 1, Y: 0, Class: "start"},
		{X: 2, Y: 0, Label: str("just a label")},
	}

	cells := ResolveCells(context.Background(), grid, styles, nodes)

	stairs := cellAt(t, cells, 0, 0)
	require.Equal(t, []string{"icon-up", "2F"}, stairs.Classes)
	require.Equal(t, "2F", stairs.Label)

	start := cellAt(t, cells, 1, 0)
	// nested classes expand one level: "warn" is added, its own "deeper" is not
	require.Equal(t, []string{"start", "warn", "marker"}, start.Classes)
	require.Equal(t, "go", start.Text)

	labelled := cellAt(t, cells, 2, 0)
	require.Equal(t, []string{NodeClass}, labelled.Classes)
	require.Equal(t, "just a label", labelled.Label)
}

func TestResolveCells_IconsTakeLastDefinedLabel(t *testing.T) {
	styles := floor.Styles{
		"3F":  {Label: str("3F")},
		"3F!": {Label: str("3F one way")},
	}
	grid := gridWith(nil)
	nodes := []floor.NodeOverride{{X: 2, Y: 2, Icons: []string{"icon-up br 3F 3F!", "icon-down tl"}}}

	cells := ResolveCells(context.Background(), grid, styles, nodes)
	c := cellAt(t, cells, 2, 2)
	want := []Icon{{Class: "icon-up br 3F 3F!", Label: "3F one way"}, {Class: "icon-down tl"}}
	if diff := cmp.Diff(want, c.Icons); diff != "" {
		t.Errorf("Icons mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, []string{BlankClass}, c.Classes)
}

func TestResolveCells_TextOverrideAndOutOfRange(t *testing.T) {
	grid := gridWith(map[int]string{7: " o "})
	nodes := []floor.NodeOverride{
		{X: 0, Y: 1, Text: str("boss")},
		{X: 7, Y: 7, Text: str("nowhere")},
	}
	cells := ResolveCells(context.Background(), grid, nil, nodes)
	require.Len(t, cells, 25)
	c := cellAt(t, cells, 0, 1)
	require.Equal(t, "boss", c.Text)
	require.Empty(t, c.Classes)
}

func TestResolveCells_FreshEveryCall(t *testing.T) {
	grid := gridWith(map[int]string{1: " o "})
	nodes := []floor.NodeOverride{{X: 0, Y: 4, Class: "extra"}}
	first := ResolveCells(context.Background(), grid, nil, nodes)
	second := ResolveCells(context.Background(), grid, nil, nil)
	require.True(t, cellAt(t, first, 0, 4).HasClass("extra"))
	require.False(t, cellAt(t, second, 0, 4).HasClass("extra"))
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
		ok   bool
	}{
		{"#3498db", color.NRGBA{0x34, 0x98, 0xdb, 0xff}, true},
		{"#fff", color.NRGBA{0xff, 0xff, 0xff, 0xff}, true},
		{"#00000080", color.NRGBA{0, 0, 0, 0x80}, true},
		{"rgba(255, 255, 255, 0.85)", color.NRGBA{255, 255, 255, 217}, true},
		{"rgb(10 20 30)", color.NRGBA{10, 20, 30, 255}, true},
		{"RGBA(0,0,0,0.8)", color.NRGBA{0, 0, 0, 204}, true},
		{"none", color.NRGBA{}, true},
		{"red", color.NRGBA{255, 0, 0, 255}, true},
		{"", color.NRGBA{}, false},
		{"#zzz", color.NRGBA{}, false},
		{"rgba(1,2)", color.NRGBA{}, false},
	}
	for _, tt := range tests {
		c, ok := ParseColor(tt.in)
		if ok != tt.ok {
			t.Errorf("ParseColor(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if !ok {
			continue
		}
		got := color.NRGBAModel.Convert(c).(color.NRGBA)
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRecord_FloatAndFlag(t *testing.T) {
	r := Record{"w": "12px", "z": "0", "bad": "abc", "on": "1", "off": "0"}
	require.Equal(t, 12.0, r.Float("w", 3))
	require.Equal(t, 3.0, r.Float("z", 3))
	require.Equal(t, 3.0, r.Float("bad", 3))
	require.Equal(t, 3.0, r.Float("missing", 3))
	require.True(t, r.Flag("on", false))
	require.False(t, r.Flag("off", true))
	require.True(t, r.Flag("missing", true))
}

const testTable = `
edge:
  "*": { color: "#111111" }
  wall: { strokeStyle: "#222222", lineWidth: "0.1cs" }
  flowArrow: { headLength: "20" }
path:
  route: { lineColor: "#00ff00", lineWidth: "6" }
  thin: { lineWidth: "2", arrowHead: "0" }
cell:
  "*": { background: "#ffffff", fontSize: "10" }
  a: { background: "#ff0000" }
  b: { color: "#0000ff" }
scopes:
  map-2:
    edge:
      wall: { lineWidth: "0.2cs" }
`

func loadTestTable(t *testing.T) *Table {
	t.Helper()
	tbl, err := LoadTable(strings.NewReader(testTable))
	require.NoError(t, err)
	return tbl
}

func TestTable_LookupResolvesUnitsAndScope(t *testing.T) {
	tbl := loadTestTable(t)

	rec := tbl.Lookup("map-1", KindEdge, "wall", 50)
	require.Equal(t, "5", rec["lineWidth"])
	require.Equal(t, "#111111", rec["color"])

	scoped := tbl.Lookup("map-2", KindEdge, "wall", 50)
	require.Equal(t, "10", scoped["lineWidth"])
	require.Equal(t, "#222222", scoped["strokeStyle"])

	require.Empty(t, tbl.Lookup("", KindPath, "unknown", 50))
	require.True(t, tbl.Has("", KindPath, "route"))
	require.False(t, tbl.Has("", KindPath, "unknown"))
}

func TestOverlay_PropertyWise(t *testing.T) {
	top, err := LoadTable(strings.NewReader(`
path:
  route: { lineWidth: "9" }
`))
	require.NoError(t, err)
	merged := Overlay(loadTestTable(t), top)
	rec := merged.Lookup("", KindPath, "route", 80)
	require.Equal(t, "9", rec["lineWidth"])
	require.Equal(t, "#00ff00", rec["lineColor"])
}

func TestDefaultTable_Loads(t *testing.T) {
	tbl := DefaultTable()
	require.True(t, tbl.Has("", KindEdge, WallKey))
	require.True(t, tbl.Has("", KindEdge, FlowArrowKey))
	require.True(t, tbl.Has("", KindCell, NodeClass))
}

func TestResolver_PathDefaults(t *testing.T) {
	r := NewResolver(&Table{}, "", 80)
	s := r.Path("")
	require.Equal(t, 4.0, s.LineWidth)
	require.True(t, s.ArrowHead)
	require.False(t, s.ArrowTail)
	require.Equal(t, 12.0, s.ArrowLength)
	require.InDelta(t, math.Pi/6, s.ArrowAngle, 1e-9)
	require.Equal(t, 14.0, s.LabelFontSize)
	require.Equal(t, 14.0, s.TipFontSize)
	require.Equal(t, DefaultEdgeOffset, s.EdgeOffset)
	require.Equal(t, "rgba(255, 255, 255, 0.85)", s.LabelBackground)
	require.Equal(t, s.LineColor, s.LabelColor)
	require.False(t, s.HasBorder())
}

func TestResolver_PathLaterNameWins(t *testing.T) {
	r := NewResolver(loadTestTable(t), "", 80)
	s := r.Path("route thin")
	require.Equal(t, 2.0, s.LineWidth)
	require.False(t, s.ArrowHead)
	got := color.NRGBAModel.Convert(s.LineColor).(color.NRGBA)
	require.Equal(t, color.NRGBA{0, 255, 0, 255}, got)

	s = r.Path("thin route")
	require.Equal(t, 6.0, s.LineWidth)
}

func TestResolver_CachesUntilCellSizeChanges(t *testing.T) {
	r := NewResolver(loadTestTable(t), "", 50)
	first := r.Edge(WallKey)
	require.Equal(t, 5.0, first.LineWidth)
	r.Edge(WallKey)
	require.Equal(t, 1, r.Lookups())

	r.SetCellSize(50)
	r.Edge(WallKey)
	require.Equal(t, 1, r.Lookups())

	r.SetCellSize(130)
	again := r.Edge(WallKey)
	require.Equal(t, 2, r.Lookups())
	require.Equal(t, 13.0, again.LineWidth)
}

func TestResolver_EdgeDefaults(t *testing.T) {
	r := NewResolver(&Table{}, "", 80)
	s := r.Edge("?")
	require.Equal(t, "butt", s.LineCap)
	require.Equal(t, 0.0, s.LineWidth)
	require.Equal(t, 32.0, s.Width)
	require.Equal(t, 32.0, s.Height)
	require.Equal(t, "center", s.TextAlign)
	require.True(t, s.Empty())
}

func TestResolver_FlowArrowStyle(t *testing.T) {
	s := NewResolver(loadTestTable(t), "", 80).FlowArrow()
	require.True(t, s.ArrowHead)
	require.False(t, s.ArrowTail)
	require.Equal(t, 20.0, s.ArrowLength)
	require.Equal(t, 3.0, s.LineWidth)
	require.Equal(t, DefaultEdgeOffset, s.EdgeOffset)
	got := color.NRGBAModel.Convert(s.LineColor).(color.NRGBA)
	require.Equal(t, color.NRGBA{0x11, 0x11, 0x11, 0xff}, got)
}

func TestResolver_LookLaterClassWins(t *testing.T) {
	r := NewResolver(loadTestTable(t), "", 80)
	l := r.Look([]string{"a", "b"})
	bg := color.NRGBAModel.Convert(l.Background).(color.NRGBA)
	require.Equal(t, color.NRGBA{255, 0, 0, 255}, bg)
	fg := color.NRGBAModel.Convert(l.Color).(color.NRGBA)
	require.Equal(t, color.NRGBA{0, 0, 255, 255}, fg)
	require.Equal(t, 10.0, l.Font.Size)
}

func TestIconPlacement(t *testing.T) {
	x, y := IconPlacement([]string{"icon-up", "bl", "3F"})
	require.Equal(t, 0.15, x)
	require.Equal(t, 0.85, y)
	x, y = IconPlacement([]string{"icon-up"})
	require.Equal(t, 0.85, x)
	require.Equal(t, 0.15, y)
}
