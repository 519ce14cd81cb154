package floor

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"dungeonmap/pkg/engine/world"
)

const sampleDoc = `
styles:
  "X": { text: a, class: icon-x }
  "Y": { label: why }
toggles:
  - route
  - { name: boss, show: true }
maps:
  - id: 4
    name: "4F"
    edges:
      - "           "
      - " o-X o o o "
    styles:
      "X": { text: b }
    nodes:
      - { x: 0, y: 4, class: "icon-up Y" }
    paths:
      - cells: [[0, 4], [1, 4]]
        toggle: route
        arrowTail: true
        offset: { dx: 0.1, dy: -0.2 }
`

func TestLoad_ParsesDocument(t *testing.T) {
	doc, err := Load(strings.NewReader(sampleDoc))
	require.NoError(t, err)
	require.Len(t, doc.Floors, 1)

	f := doc.Floors[0]
	require.Equal(t, 4, f.ID)
	require.Equal(t, "4F", f.DisplayTitle())
	require.Equal(t, "map-4", f.Scope())
	require.Len(t, f.Edges, 2)
	require.Len(t, f.Nodes, 1)
	require.Equal(t, world.C(0, 4), f.Nodes[0].Pos())

	require.Len(t, f.Paths, 1)
	p := f.Paths[0]
	require.True(t, p.Drawable())
	require.Equal(t, []world.Coord{world.C(0, 4), world.C(1, 4)}, p.Coords())
	require.NotNil(t, p.ArrowTail)
	require.True(t, *p.ArrowTail)
	require.Nil(t, p.ArrowHead)
	require.Equal(t, &Offset{DX: 0.1, DY: -0.2}, p.Offset)
}

func TestToggleDef_AcceptsNameOrMapping(t *testing.T) {
	doc, err := Load(strings.NewReader(sampleDoc))
	require.NoError(t, err)
	require.Equal(t, []ToggleDef{
		{Name: "route", Show: false},
		{Name: "boss", Show: true},
	}, doc.ToggleDefs())
}

func TestToggleDefs_FallsBackToFirstFloor(t *testing.T) {
	doc := &Document{Floors: []*Floor{{
		ID: 1,
		Paths: []PathDef{
			{Toggle: "b"}, {Toggle: "a"}, {Toggle: "b"}, {},
		},
	}}}
	require.Equal(t, []ToggleDef{{Name: "b"}, {Name: "a"}}, doc.ToggleDefs())
}

func TestStylesFor_FloorEntryWins(t *testing.T) {
	doc, err := Load(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	merged := doc.StylesFor(doc.Floors[0])
	require.NotNil(t, merged["X"].Text)
	require.Equal(t, "b", *merged["X"].Text)
	// the floor entry replaces the shared one whole, class included
	require.Empty(t, merged["X"].Class)
	require.Equal(t, "why", *merged["Y"].Label)
}

func TestDocumentFloor_NotFound(t *testing.T) {
	doc, err := Load(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	_, err = doc.Floor(99)
	require.True(t, errors.Is(err, ErrFloorNotFound))
	require.Equal(t, -1, doc.Index(99))

	f, err := doc.Floor(4)
	require.NoError(t, err)
	require.Equal(t, "4F", f.Name)
}

func TestLoad_RejectsMalformed(t *testing.T) {
	_, err := Load(strings.NewReader("maps: [ {id: "))
	require.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "floors.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"maps":[{"id":2,"name":"2F","edges":[]}]}`), 0o644))

	doc, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, doc.Floors, 1)
	require.Equal(t, 2, doc.Floors[0].ID)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestDefault_ShipsTenFloors(t *testing.T) {
	doc, err := Default()
	require.NoError(t, err)
	require.Len(t, doc.Floors, 10)
	for _, f := range doc.Floors {
		require.Len(t, f.Edges, world.TextRows, "floor %d", f.ID)
	}

	seven, err := doc.Floor(7)
	require.NoError(t, err)
	require.True(t, seven.FlowArrows)
	require.NotEmpty(t, seven.Grid().ArrowEdges())
}
