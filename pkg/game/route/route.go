// Package route turns authored path definitions into the cell sequences
// that are actually drawn.
package route

import (
	"dungeonmap/pkg/engine/world"
	"dungeonmap/pkg/game/floor"
)

// AutoOffsetAmount is the perpendicular shift, in cell units, given to
// paths that share a start cell.
const AutoOffsetAmount = 0.08

// Resolve returns the cells a path definition is drawn through. A two-cell
// definition is routed along the floor's connectors unless it is marked
// direct; longer definitions are drawn as authored.
func Resolve(def floor.PathDef, graph *world.Graph) []world.Coord {
	cells := def.Coords()
	if len(cells) == 2 && !def.Direct {
		return graph.ShortestPath(cells[0], cells[1])
	}
	return cells
}

// IsAdjacentPair reports whether a resolved route is a single step between
// orthogonal neighbours.
func IsAdjacentPair(cells []world.Coord) bool {
	if len(cells) != 2 {
		return false
	}
	_, ok := world.DirectionBetween(cells[0], cells[1])
	return ok
}

// AutoOffsets assigns a perpendicular offset to every path that shares its
// start cell with another path and has no manual offset. Members of a group
// alternate between positive and negative shifts in definition order. The
// result is keyed by index into defs.
func AutoOffsets(defs []floor.PathDef, graph *world.Graph) map[int]floor.Offset {
	type member struct {
		index int
		def   floor.PathDef
	}
	groups := make(map[world.Coord][]member)
	var order []world.Coord
	for i, def := range defs {
		if !def.Drawable() || def.Offset != nil {
			continue
		}
		start := world.C(def.Cells[0][0], def.Cells[0][1])
		if _, ok := groups[start]; !ok {
			order = append(order, start)
		}
		groups[start] = append(groups[start], member{index: i, def: def})
	}

	offsets := make(map[int]floor.Offset)
	for _, start := range order {
		group := groups[start]
		if len(group) < 2 {
			continue
		}
		for gi, m := range group {
			cells := Resolve(m.def, graph)
			sign := 1.0
			if gi%2 == 1 {
				sign = -1
			}
			amount := AutoOffsetAmount * sign

			var dx, dy int
			if len(cells) >= 2 {
				dx, dy = cells[1].X-cells[0].X, cells[1].Y-cells[0].Y
			}
			if abs(dx) >= abs(dy) {
				offsets[m.index] = floor.Offset{DY: amount}
			} else {
				offsets[m.index] = floor.Offset{DX: amount}
			}
		}
	}
	return offsets
}

// Visible filters out definitions whose toggle group is hidden.
func Visible(defs []floor.PathDef, hidden func(group string) bool) []floor.PathDef {
	var out []floor.PathDef
	for _, def := range defs {
		if def.Toggle != "" && hidden != nil && hidden(def.Toggle) {
			continue
		}
		out = append(out, def)
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
