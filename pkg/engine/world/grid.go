package world

// Dimensions of the text encoding of a floor: cells sit at odd (row, col)
// positions, connectors at the mixed-parity positions between them.
const (
	TextRows = 2*Size + 1
	TextCols = 2*Size + 1
)

type edgeKey struct {
	a Coord
	b Coord
}

// Grid is the logical model decoded from a floor's text rows. A Grid is
// immutable once decoded.
type Grid struct {
	cells []Cell
	edges []Edge
	index map[edgeKey]int
}

// Decode parses the text rows of a floor. Rows shorter than TextCols are
// treated as right-padded with spaces, missing rows as blank and anything
// beyond TextRows x TextCols is ignored, so Decode never fails.
//
// Cells are returned in scan order (north row first, west to east) and edges
// in text order, which later fixes the neighbour order used by routing.
func Decode(rows []string) *Grid {
	text := make([][]rune, TextRows)
	for r := 0; r < TextRows; r++ {
		if r < len(rows) {
			text[r] = []rune(rows[r])
		}
	}
	at := func(r, c int) rune {
		if c < len(text[r]) {
			return text[r][c]
		}
		return BlankChar
	}

	g := &Grid{
		cells: make([]Cell, 0, Size*Size),
		index: make(map[edgeKey]int),
	}

	for r := 1; r < TextRows; r += 2 {
		for c := 1; c < TextCols; c += 2 {
			g.cells = append(g.cells, Cell{Pos: TextToCell(r, c), Char: at(r, c)})
		}
	}

	for r := 0; r < TextRows; r++ {
		for c := 0; c < TextCols; c++ {
			ch := at(r, c)
			if ch == BlankChar || ch == NodeChar {
				continue
			}
			from, to, ok := connectorEnds(r, c)
			if !ok {
				continue
			}
			g.addEdge(Edge{From: from, To: to, Char: ch, Type: classifyConnector(ch)})
		}
	}
	return g
}

// TextToCell maps an odd (row, col) text position to its logical cell. Text
// row 1 is the northernmost row, y = Size-1.
func TextToCell(row, col int) Coord {
	return Coord{X: (col - 1) / 2, Y: Size - 1 - (row-1)/2}
}

// connectorEnds maps a connector text position to the two coordinates it
// joins. Corner positions (both even) and cell positions (both odd) hold no
// connector.
func connectorEnds(r, c int) (from, to Coord, ok bool) {
	switch {
	case r%2 == 1 && c%2 == 0:
		y := Size - 1 - (r-1)/2
		from, to = Coord{X: (c - 2) / 2, Y: y}, Coord{X: c / 2, Y: y}
		ok = from.X >= -1 && to.X <= Size && y >= 0 && y < Size
	case r%2 == 0 && c%2 == 1:
		x := (c - 1) / 2
		from, to = Coord{X: x, Y: Size - 1 - (r-2)/2}, Coord{X: x, Y: Size - 1 - r/2}
		ok = from.Y <= Size && to.Y >= -1 && x >= 0 && x < Size
	}
	return from, to, ok
}

func (g *Grid) addEdge(e Edge) {
	g.edges = append(g.edges, e)
	i := len(g.edges) - 1
	g.index[edgeKey{e.From, e.To}] = i
	g.index[edgeKey{e.To, e.From}] = i
}

// Cells returns the 25 decoded cells in scan order.
func (g *Grid) Cells() []Cell {
	out := make([]Cell, len(g.cells))
	copy(out, g.cells)
	return out
}

// Cell returns the cell at the given position.
func (g *Grid) Cell(pos Coord) (Cell, bool) {
	if !pos.InBounds() {
		return Cell{}, false
	}
	for _, c := range g.cells {
		if c.Pos == pos {
			return c, true
		}
	}
	return Cell{}, false
}

// Edges returns every decoded connector, boundary edges included.
func (g *Grid) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// EdgeBetween returns the connector joining a and b in either order.
func (g *Grid) EdgeBetween(a, b Coord) (Edge, bool) {
	i, ok := g.index[edgeKey{a, b}]
	if !ok {
		return Edge{}, false
	}
	return g.edges[i], true
}

// ForEachCell iterates over all cells in scan order.
func (g *Grid) ForEachCell(fn func(cell Cell)) {
	for _, c := range g.cells {
		fn(c)
	}
}

// ArrowEdges returns the connectors that carry a flow arrow glyph.
func (g *Grid) ArrowEdges() []Edge {
	var out []Edge
	for _, e := range g.edges {
		if IsArrow(e.Char) {
			out = append(out, e)
		}
	}
	return out
}
