package renderer

import (
	"image"
	"image/color"
	"math"

	"dungeonmap/pkg/engine/world"
	"dungeonmap/pkg/game/style"
)

// Call is one primitive drawing step of a Scene.
type Call interface {
	Paint(s Surface)
}

// BackgroundCall clears the canvas.
type BackgroundCall struct {
	Color color.Color
}

// Paint implements Call.
func (c BackgroundCall) Paint(s Surface) {
	s.Clear(c.Color)
}

// EdgeCall draws a connector feature along one side of a cell.
type EdgeCall struct {
	From  Point
	To    Point
	Key   string
	Style style.EdgeStyle
	Image image.Image
}

// Paint draws at most an outer and an inner stroke, a centred image and a
// centred outlined text. A style with nothing to draw paints nothing.
func (c EdgeCall) Paint(s Surface) {
	st := c.Style
	if st.Empty() {
		return
	}
	mid := Point{X: (c.From.X + c.To.X) / 2, Y: (c.From.Y + c.To.Y) / 2}
	line := NewPath().MoveTo(c.From).LineTo(c.To)

	if st.LineWidth > 0 {
		s.Stroke(line, StrokeStyle{Color: st.StrokeStyle, Width: st.LineWidth, Cap: st.LineCap})
	}
	if st.Inner.LineWidth > 0 {
		s.Stroke(line, StrokeStyle{Color: st.Inner.StrokeStyle, Width: st.Inner.LineWidth, Cap: st.LineCap})
	}
	if c.Image != nil {
		s.Image(c.Image, mid.X-st.Width/2, mid.Y-st.Height/2, st.Width, st.Height)
	}
	if st.Text != "" {
		s.Text(st.Text, mid.X, mid.Y, TextOptions{
			Font:         st.Font,
			Align:        st.TextAlign,
			Baseline:     st.TextBaseline,
			Color:        st.StrokeStyle,
			OutlineColor: st.StrokeColor,
			OutlineWidth: st.StrokeWidth,
		})
	}
}

// VectorCall draws a smoothed arrow through a list of points. Flow is set
// for arrows composed from directional glyphs.
type VectorCall struct {
	Points []Point
	Style  style.PathStyle
	Head   bool
	Tail   bool
	Flow   bool
}

// Paint implements Call.
func (c VectorCall) Paint(s Surface) {
	DrawArrowPath(s, c.Points, c.Style, c.Head, c.Tail)
}

// DrawArrowPath strokes points as a line, a single quadratic corner or a
// chain of quadratic segments through the midpoints between interior
// points. Ends carrying an arrowhead are pulled back so the stroke does not
// poke through the head.
func DrawArrowPath(s Surface, points []Point, st style.PathStyle, head, tail bool) {
	if len(points) < 2 {
		return
	}
	first, second := points[0], points[1]
	last, prev := points[len(points)-1], points[len(points)-2]

	headAngle := math.Atan2(last.Y-prev.Y, last.X-prev.X)
	tailAngle := math.Atan2(first.Y-second.Y, first.X-second.X)
	shortenBy := st.ArrowLength - st.LineWidth/2

	end := last
	if head {
		end = last.Add(-shortenBy*math.Cos(headAngle), -shortenBy*math.Sin(headAngle))
	}
	start := first
	if tail {
		start = first.Add(-shortenBy*math.Cos(tailAngle), -shortenBy*math.Sin(tailAngle))
	}

	path := NewPath().MoveTo(start)
	switch len(points) {
	case 2:
		path.LineTo(end)
	case 3:
		path.QuadTo(points[1], end)
	default:
		for i := 1; i < len(points)-2; i++ {
			mid := Point{X: (points[i].X + points[i+1].X) / 2, Y: (points[i].Y + points[i+1].Y) / 2}
			path.QuadTo(points[i], mid)
		}
		path.QuadTo(points[len(points)-2], end)
	}

	if st.HasBorder() {
		s.Stroke(path, StrokeStyle{
			Color: st.LineBorderColor,
			Width: st.LineWidth + st.LineBorderWidth*2,
			Cap:   "round",
			Join:  "round",
		})
	}
	s.Stroke(path, StrokeStyle{Color: st.LineColor, Width: st.LineWidth, Cap: "round", Join: "round"})

	if head {
		drawHead(s, end, last, st)
	}
	if tail {
		drawHead(s, start, first, st)
	}
}

func drawHead(s Surface, from, to Point, st style.PathStyle) {
	tri := ArrowHead(from, to, st.ArrowLength, st.ArrowAngle)
	if st.HasBorder() {
		s.Stroke(tri, StrokeStyle{Color: st.LineBorderColor, Width: st.LineBorderWidth * 2, Cap: "round", Join: "round"})
	}
	s.Fill(tri, st.LineColor)
}

// ArrowHead returns the triangle whose apex sits at to, pointing away from
// from, with sides of length headLength at ±headAngle. Zero values fall
// back to 15px and 30 degrees.
func ArrowHead(from, to Point, headLength, headAngle float64) *Path {
	if headLength == 0 {
		headLength = 15
	}
	if headAngle == 0 {
		headAngle = math.Pi / 6
	}
	angle := math.Atan2(to.Y-from.Y, to.X-from.X)
	return NewPath().
		MoveTo(to).
		LineTo(Point{X: to.X - headLength*math.Cos(angle-headAngle), Y: to.Y - headLength*math.Sin(angle-headAngle)}).
		LineTo(Point{X: to.X - headLength*math.Cos(angle+headAngle), Y: to.Y - headLength*math.Sin(angle+headAngle)}).
		Close()
}

// LabelKind tells a path label from a tip annotation.
type LabelKind int

// Label kinds
const (
	LabelPath LabelKind = iota
	LabelTip
)

// Label geometry in pixels.
const (
	labelPadding = 1
	tipPadding   = 2
	tipGap       = 8
	labelLift    = 0.7
)

// LabelCall draws a boxed annotation. Path labels are centred just above
// their anchor; tips sit below the anchor when the final segment is
// horizontal and to its left otherwise.
type LabelCall struct {
	Kind        LabelKind
	Text        string
	At          Point
	Horizontal  bool
	FontSize    float64
	Color       color.Color
	Background  string
	BorderColor color.Color
	BorderWidth float64
}

// Paint implements Call.
func (c LabelCall) Paint(s Surface) {
	font := style.Font{Size: c.FontSize, Bold: true}
	w, _ := s.MeasureText(c.Text, font)
	h := c.FontSize

	opts := TextOptions{Font: font, Baseline: "middle", Color: c.Color}
	if c.BorderWidth > 0 {
		opts.OutlineColor = c.BorderColor
		opts.OutlineWidth = c.BorderWidth
	}

	var x, y, boxX, pad float64
	switch c.Kind {
	case LabelTip:
		pad = tipPadding
		if c.Horizontal {
			x, y = c.At.X-w/2, c.At.Y+h
		} else {
			x, y = c.At.X-w-tipGap, c.At.Y
		}
		boxX = x - pad
		opts.Align = "left"
	default:
		pad = labelPadding
		x, y = c.At.X, c.At.Y-h*labelLift
		boxX = x - w/2 - pad
		opts.Align = "center"
	}

	if !style.IsNone(c.Background) {
		if bg, ok := style.ParseColor(c.Background); ok {
			s.FillRect(boxX, y-h/2-pad, w+pad*2, h+pad*2, bg)
		}
	}
	s.Text(c.Text, x, y, opts)
}

// HeaderCall draws an axis label, the floor caption or its title.
type HeaderCall struct {
	Text  string
	At    Point
	Font  style.Font
	Color color.Color
}

// Paint implements Call.
func (c HeaderCall) Paint(s Surface) {
	s.Text(c.Text, c.At.X, c.At.Y, TextOptions{Font: c.Font, Align: "center", Baseline: "middle", Color: c.Color})
}

// IconCall is a sub-icon inside a cell.
type IconCall struct {
	Icon style.Icon
	Look style.Look
	At   Point
}

// CellCall draws one cell box with its text, label and sub-icons.
type CellCall struct {
	Cell   style.Cell
	Origin Point
	Size   float64
	Look   style.Look
	Icons  []IconCall
}

// cellInset is the fraction of a cell left free around its box so
// connectors stay visible.
const cellInset = 0.14

// Paint implements Call.
func (c CellCall) Paint(s Surface) {
	look := c.Look
	pad := c.Size * cellInset
	box := c.Origin.Add(pad, pad)
	side := c.Size - 2*pad
	center := c.Origin.Add(c.Size/2, c.Size/2)

	switch look.Shape {
	case style.ShapeNone:
	case style.ShapeCircle:
		if look.Background != nil {
			s.FillCircle(center.X, center.Y, side/2, look.Background)
		}
	case style.ShapeDot:
		if look.Background != nil {
			s.FillCircle(center.X, center.Y, c.Size*0.08, look.Background)
		}
	default:
		if look.Background != nil {
			s.FillRect(box.X, box.Y, side, side, look.Background)
		}
		if look.BorderWidth > 0 {
			outline := NewPath().
				MoveTo(box).
				LineTo(box.Add(side, 0)).
				LineTo(box.Add(side, side)).
				LineTo(box.Add(0, side)).
				Close()
			s.Stroke(outline, StrokeStyle{Color: look.BorderColor, Width: look.BorderWidth})
		}
	}

	text := c.Cell.Text
	if look.HideText {
		text = ""
	}
	textY := center.Y
	if look.Glyph != "" {
		glyphY := center.Y
		if text != "" {
			glyphY = center.Y - look.Font.Size*0.6
			textY = center.Y + look.Font.Size*0.6
		}
		s.Text(look.Glyph, center.X, glyphY, TextOptions{Font: look.Font, Align: "center", Baseline: "middle", Color: look.Color})
	}
	if text != "" {
		s.Text(text, center.X, textY, TextOptions{Font: look.Font, Align: "center", Baseline: "middle", Color: look.Color})
	}
	if c.Cell.Label != "" {
		s.Text(c.Cell.Label, center.X, box.Y+side-look.LabelSize*0.6, TextOptions{
			Font:     style.Font{Size: look.LabelSize, Bold: true},
			Align:    "center",
			Baseline: "middle",
			Color:    look.LabelColor,
		})
	}

	for _, icon := range c.Icons {
		icon.paint(s)
	}
}

func (c IconCall) paint(s Surface) {
	font := style.Font{Size: c.Look.LabelSize * 1.2, Bold: true}
	glyph := c.Look.Glyph
	if glyph == "" {
		glyph = "●"
	}
	s.Text(glyph, c.At.X, c.At.Y, TextOptions{Font: font, Align: "center", Baseline: "middle", Color: c.Look.Color})
	if c.Icon.Label != "" {
		s.Text(c.Icon.Label, c.At.X, c.At.Y+font.Size, TextOptions{
			Font:     style.Font{Size: c.Look.LabelSize, Bold: true},
			Align:    "center",
			Baseline: "middle",
			Color:    c.Look.LabelColor,
		})
	}
}

// iconPoint places an icon inside the cell box at fractions (fx, fy).
func iconPoint(origin Point, size float64, classes []string) Point {
	fx, fy := style.IconPlacement(classes)
	return origin.Add(fx*size, fy*size)
}

// sideOf returns the two canvas endpoints of the side of cell c facing dir.
func sideOf(l Layout, c world.Coord, dir world.Direction) (Point, Point) {
	o := l.CellOrigin(c)
	n := l.CellSize
	switch dir {
	case world.North:
		return o, o.Add(n, 0)
	case world.South:
		return o.Add(0, n), o.Add(n, n)
	case world.West:
		return o, o.Add(0, n)
	default:
		return o.Add(n, 0), o.Add(n, n)
	}
}
