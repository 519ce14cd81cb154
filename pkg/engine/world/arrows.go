package world

import "github.com/zyedidia/generic/mapset"

// ArrowGraph maps each arrow origin to the single cell its arrow points at.
type ArrowGraph struct {
	next  map[Coord]Coord
	order []Coord
}

// BuildArrowGraph orients every flow arrow edge by its glyph. An edge whose
// decoded From->To delta disagrees with the glyph is flipped. When several
// arrows leave the same origin the one decoded last wins, but the origin
// keeps the position where it was first seen.
func BuildArrowGraph(edges []Edge) *ArrowGraph {
	g := &ArrowGraph{next: make(map[Coord]Coord)}
	for _, e := range edges {
		dx, dy, ok := ArrowDelta(e.Char)
		if !ok {
			continue
		}
		from, to := e.From, e.To
		if to.X-from.X != dx || to.Y-from.Y != dy {
			from, to = to, from
		}
		if _, seen := g.next[from]; !seen {
			g.order = append(g.order, from)
		}
		g.next[from] = to
	}
	return g
}

// Next returns the successor of an arrow origin.
func (g *ArrowGraph) Next(from Coord) (Coord, bool) {
	to, ok := g.next[from]
	return to, ok
}

// Origins returns arrow origins in first-seen order.
func (g *ArrowGraph) Origins() []Coord {
	out := make([]Coord, len(g.order))
	copy(out, g.order)
	return out
}

// Len returns the number of arrow origins.
func (g *ArrowGraph) Len() int {
	return len(g.order)
}

// FindArrowChains splits the arrow graph into maximal chains. Chains that
// start at an origin nobody points to come first; whatever is left over
// belongs to cycles. No coordinate appears in more than one chain and chains
// shorter than two cells are dropped.
func FindArrowChains(g *ArrowGraph) [][]Coord {
	inDegree := make(map[Coord]int)
	for _, from := range g.order {
		inDegree[g.next[from]]++
	}

	visited := mapset.New[Coord]()
	var chains [][]Coord
	collect := func(start Coord) {
		if chain := g.trace(start, visited); len(chain) >= 2 {
			chains = append(chains, chain)
		}
	}

	for _, from := range g.order {
		if inDegree[from] == 0 {
			collect(from)
		}
	}
	for _, from := range g.order {
		if !visited.Has(from) {
			collect(from)
		}
	}
	return chains
}

func (g *ArrowGraph) trace(start Coord, visited mapset.Set[Coord]) []Coord {
	var chain []Coord
	current, ok := start, true
	for ok && !visited.Has(current) {
		visited.Put(current)
		chain = append(chain, current)
		current, ok = g.next[current]
	}
	return chain
}
