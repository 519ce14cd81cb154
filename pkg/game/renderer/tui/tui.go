// Package tui renders a floor as coloured text for terminals and plain
// text for pipes.
package tui

import (
	"fmt"
	"image/color"
	"io"
	"strings"
	"unicode/utf8"

	gcolor "github.com/gookit/color"

	"dungeonmap/pkg/engine/world"
	"dungeonmap/pkg/game/floor"
	"dungeonmap/pkg/game/route"
	"dungeonmap/pkg/game/style"
)

// Glyphs used for structure.
const (
	IconWallH   = "───"
	IconWallV   = "│"
	IconCorner  = "+"
	IconOpenH   = "   "
	IconOpenV   = " "
	IconNode    = "·"
	IconText    = "●"
	IconHazard  = "!"
	IconBlank   = " "
	cellWidth   = 3
	legendSplit = "  "
)

// Options controls text output.
type Options struct {
	// Color enables ANSI colour codes.
	Color bool

	// Width centres the map in a terminal this many columns wide. Zero
	// disables centring.
	Width int

	// Hidden reports whether a toggle group is switched off.
	Hidden func(group string) bool
}

// Printer writes floors as text.
type Printer struct {
	opts Options

	colorWall   gcolor.Style
	colorSubtle gcolor.Style
	colorHazard gcolor.Style
	colorTitle  gcolor.Style
	colorRoute  gcolor.Style
}

// New returns a printer.
func New(opts Options) *Printer {
	if opts.Hidden == nil {
		opts.Hidden = func(string) bool { return false }
	}
	return &Printer{
		opts:        opts,
		colorWall:   gcolor.Style{gcolor.FgGray},
		colorSubtle: gcolor.Style{gcolor.FgGray, gcolor.OpBold},
		colorHazard: gcolor.Style{gcolor.FgRed, gcolor.OpBold},
		colorTitle:  gcolor.Style{gcolor.FgCyan, gcolor.OpBold},
		colorRoute:  gcolor.Style{gcolor.FgGreen},
	}
}

func (p *Printer) paint(st gcolor.Style, s string) string {
	if !p.opts.Color {
		return s
	}
	return st.Sprint(s)
}

func (p *Printer) paintRGB(c color.Color, s string) string {
	if !p.opts.Color || c == nil {
		return s
	}
	r, g, b, a := c.RGBA()
	if a == 0 {
		return s
	}
	return gcolor.RGB(uint8(r>>8), uint8(g>>8), uint8(b>>8)).Sprint(s)
}

// Render writes the floor's title, map, cell legend and routes.
func (p *Printer) Render(w io.Writer, f *floor.Floor, grid *world.Grid, cells []style.Cell, styles *style.Resolver) error {
	var b strings.Builder

	byPos := make(map[world.Coord]style.Cell, len(cells))
	for _, c := range cells {
		byPos[c.Pos] = c
	}

	mapWidth := world.Size*cellWidth + world.Size + 1
	indent := ""
	if p.opts.Width > mapWidth {
		indent = strings.Repeat(" ", (p.opts.Width-mapWidth)/2)
	}

	fmt.Fprintf(&b, "%s%s\n\n", indent, p.paint(p.colorTitle, fmt.Sprintf("D%d %s", f.ID, f.DisplayTitle())))

	for row := 0; row < world.TextRows; row++ {
		b.WriteString(indent)
		for col := 0; col < world.TextCols; col++ {
			b.WriteString(p.token(row, col, grid, byPos, styles))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	p.legend(&b, cells)
	p.routes(&b, f, grid)

	if f.Notes != "" {
		fmt.Fprintf(&b, "\n%s\n", p.paint(p.colorSubtle, f.Notes))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func (p *Printer) token(row, col int, grid *world.Grid, byPos map[world.Coord]style.Cell, styles *style.Resolver) string {
	cellRow, cellCol := row%2 == 1, col%2 == 1
	switch {
	case cellRow && cellCol:
		pos := world.TextToCell(row, col)
		return p.cellToken(byPos[pos], styles)
	case cellRow:
		y := world.Size - 1 - (row-1)/2
		a, b := world.C(col/2-1, y), world.C(col/2, y)
		return p.edgeToken(grid, a, b, IconWallV, IconOpenV, styles)
	case cellCol:
		x := (col - 1) / 2
		above := world.C(x, world.Size-row/2)
		return p.edgeToken(grid, above, world.C(x, above.Y-1), IconWallH, IconOpenH, styles)
	default:
		return p.paint(p.colorWall, IconCorner)
	}
}

func (p *Printer) edgeToken(grid *world.Grid, a, b world.Coord, wall, open string, styles *style.Resolver) string {
	e, ok := grid.EdgeBetween(a, b)
	if !ok {
		return p.paint(p.colorWall, wall)
	}
	width := utf8.RuneCountInString(open)
	switch {
	case e.Type == world.EdgeDanger:
		return p.paint(p.colorHazard, pad(IconHazard, width))
	case world.IsArrow(e.Char):
		st := styles.Edge(string(e.Char))
		return p.paintRGB(st.StrokeStyle, pad(string(e.Char), width))
	default:
		return open
	}
}

func (p *Printer) cellToken(c style.Cell, styles *style.Resolver) string {
	if c.Char == 0 || c.Char == world.BlankChar {
		return strings.Repeat(IconBlank, cellWidth)
	}
	look := styles.Look(c.Classes)
	glyph := look.Glyph
	switch {
	case glyph != "":
	case look.HideText:
		glyph = IconNode
	default:
		glyph = shortText(c.Text)
	}
	return p.paintRGB(look.Color, pad(glyph, cellWidth))
}

// shortText picks a single-width symbol for a cell's text. Wide or
// multi-rune text is shown as a dot and listed in the legend instead.
func shortText(text string) string {
	if text == "" {
		return IconNode
	}
	r, size := utf8.DecodeRuneInString(text)
	if size == len(text) && r < 0x1100 {
		return text
	}
	return IconText
}

func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}

func (p *Printer) legend(b *strings.Builder, cells []style.Cell) {
	for _, c := range cells {
		if utf8.RuneCountInString(c.Text) <= 1 && c.Label == "" && len(c.Icons) == 0 {
			continue
		}
		parts := []string{fmt.Sprintf("(%d,%d)", c.Pos.X, c.Pos.Y)}
		if c.Text != "" {
			parts = append(parts, c.Text)
		}
		if c.Label != "" {
			parts = append(parts, "["+c.Label+"]")
		}
		for _, icon := range c.Icons {
			name := icon.Label
			if name == "" {
				name = icon.Class
			}
			parts = append(parts, "+"+name)
		}
		fmt.Fprintf(b, "%s%s\n", legendSplit, strings.Join(parts, " "))
	}
}

func (p *Printer) routes(b *strings.Builder, f *floor.Floor, grid *world.Grid) {
	if len(f.Paths) == 0 {
		return
	}
	graph := world.BuildGraph(grid.Edges())
	b.WriteString("\n")
	for _, def := range f.Paths {
		if !def.Drawable() {
			continue
		}
		cells := route.Resolve(def, graph)
		steps := make([]string, len(cells))
		for i, c := range cells {
			steps[i] = c.String()
		}
		name := def.Label
		if name == "" {
			name = style.DefaultPathStyle
			if def.Style != "" {
				name = def.Style
			}
		}
		line := fmt.Sprintf("%s%s: %s", legendSplit, name, strings.Join(steps, " → "))
		if def.Tip != "" {
			line += " (" + def.Tip + ")"
		}
		if def.Toggle != "" && p.opts.Hidden(def.Toggle) {
			b.WriteString(p.paint(p.colorSubtle, line+" [hidden]") + "\n")
			continue
		}
		b.WriteString(p.paint(p.colorRoute, line) + "\n")
	}
}
