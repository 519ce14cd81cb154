package world

// Cell is one decoded floor position and the character found there.
type Cell struct {
	Pos  Coord
	Char rune
}

// IsBlank reports whether the cell holds nothing.
func (c Cell) IsBlank() bool {
	return c.Char == BlankChar
}

// IsPlainNode reports whether the cell holds the plain node marker.
func (c Cell) IsPlainNode() bool {
	return c.Char == NodeChar
}
