package world

// Characters with a fixed meaning in the text grid.
const (
	BlankChar  = ' '
	NodeChar   = 'o'
	DangerChar = '!'
)

// Directional glyphs used for flow arrows.
const (
	ArrowLeft  = '←'
	ArrowRight = '→'
	ArrowUp    = '↑'
	ArrowDown  = '↓'
)

// ArrowDelta returns the canonical logical direction vector of an arrow
// glyph. ok is false for any other character.
func ArrowDelta(r rune) (dx, dy int, ok bool) {
	switch r {
	case ArrowLeft:
		return -1, 0, true
	case ArrowRight:
		return 1, 0, true
	case ArrowUp:
		return 0, 1, true
	case ArrowDown:
		return 0, -1, true
	default:
		return 0, 0, false
	}
}

// IsArrow reports whether r is one of the four flow arrow glyphs.
func IsArrow(r rune) bool {
	_, _, ok := ArrowDelta(r)
	return ok
}

// EdgeType is the coarse classification of a connector.
type EdgeType int

// Edge types
const (
	EdgeNormal EdgeType = iota
	EdgeDanger
)

func (t EdgeType) String() string {
	if t == EdgeDanger {
		return "danger"
	}
	return "normal"
}

// Edge is a connector between two orthogonally adjacent coordinates. From is
// always the west (horizontal) or north (vertical) end as decoded from the
// text grid; adjacency lookups are direction-agnostic.
type Edge struct {
	From Coord
	To   Coord
	Char rune
	Type EdgeType
}

// Horizontal reports whether the edge joins two cells in the same row.
func (e Edge) Horizontal() bool {
	return e.From.Y == e.To.Y
}

// Boundary reports whether the edge touches the virtual ring outside the floor.
func (e Edge) Boundary() bool {
	return !e.From.InBounds() || !e.To.InBounds()
}

func classifyConnector(r rune) EdgeType {
	if r == DangerChar {
		return EdgeDanger
	}
	return EdgeNormal
}
