// Package style resolves the visual attributes of cells, edges and path
// overlays from the floor document and a style backend.
package style

import (
	"context"
	"slices"
	"strings"

	"dungeonmap/pkg/engine/ctxlog"
	"dungeonmap/pkg/engine/world"
	"dungeonmap/pkg/game/floor"
)

// Class names derived from a cell's source character.
const (
	BlankClass = "type-blank"
	NodeClass  = "type-o"
)

// Icon is a sub-icon drawn inside a cell.
type Icon struct {
	Class string
	Label string
}

// Classes returns the icon's class tags.
func (i Icon) Classes() []string {
	return strings.Fields(i.Class)
}

// Cell is the resolved appearance of one floor cell.
type Cell struct {
	Pos     world.Coord
	Char    rune
	Text    string
	Label   string
	Classes []string
	Icons   []Icon
}

// HasClass reports whether the cell carries the class tag.
func (c Cell) HasClass(name string) bool {
	return slices.Contains(c.Classes, name)
}

func (c *Cell) addClass(name string) {
	if name != "" && !c.HasClass(name) {
		c.Classes = append(c.Classes, name)
	}
}

// TypeClass returns the class tag derived from a source character.
func TypeClass(ch rune) string {
	if ch == world.BlankChar {
		return BlankClass
	}
	return "type-" + string(ch)
}

// ResolveCells builds the 25 resolved cells of a grid from a merged style
// table and the floor's node overrides. Cells come back in the grid's scan
// order and are built fresh on every call.
func ResolveCells(ctx context.Context, grid *world.Grid, styles floor.Styles, nodes []floor.NodeOverride) []Cell {
	logger := ctxlog.FromContext(ctx)

	cells := make([]Cell, 0, world.Size*world.Size)
	index := make(map[world.Coord]int, world.Size*world.Size)
	grid.ForEachCell(func(gc world.Cell) {
		index[gc.Pos] = len(cells)
		cells = append(cells, baseCell(gc, styles))
	})

	for _, conf := range nodes {
		i, ok := index[conf.Pos()]
		if !ok {
			logger.Debug("ignoring node override outside the floor", "x", conf.X, "y", conf.Y)
			continue
		}
		applyOverride(&cells[i], conf, styles)
	}
	return cells
}

func baseCell(gc world.Cell, styles floor.Styles) Cell {
	entry := styles[string(gc.Char)]
	c := Cell{
		Pos:     gc.Pos,
		Char:    gc.Char,
		Classes: []string{TypeClass(gc.Char)},
	}
	for _, cls := range strings.Fields(entry.Class) {
		c.addClass(cls)
	}
	switch {
	case entry.Text != nil && *entry.Text != "":
		c.Text = *entry.Text
	case !gc.IsBlank():
		c.Text = string(gc.Char)
	}
	if entry.Label != nil {
		c.Label = *entry.Label
	}
	return c
}

func applyOverride(c *Cell, conf floor.NodeOverride, styles floor.Styles) {
	if c.Char == world.NodeChar && (conf.Class != "" || (conf.Text != nil && *conf.Text != "")) {
		c.Classes = slices.DeleteFunc(c.Classes, func(s string) bool { return s == NodeClass })
	}

	if conf.Icons != nil {
		c.Icons = make([]Icon, 0, len(conf.Icons))
		for _, entry := range conf.Icons {
			icon := Icon{Class: entry}
			for _, cls := range strings.Fields(entry) {
				if st, ok := styles[cls]; ok && st.Label != nil {
					icon.Label = *st.Label
				}
			}
			c.Icons = append(c.Icons, icon)
		}
	}

	for _, cls := range strings.Fields(conf.Class) {
		c.addClass(cls)
		entry, ok := styles[cls]
		if !ok {
			continue
		}
		if entry.Text != nil {
			c.Text = *entry.Text
		}
		if entry.Label != nil {
			c.Label = *entry.Label
		}
		// nested classes are expanded one level only
		for _, nested := range strings.Fields(entry.Class) {
			c.addClass(nested)
		}
	}

	if conf.Text != nil {
		c.Text = *conf.Text
	}
	if conf.Label != nil {
		c.Label = *conf.Label
	}
}
