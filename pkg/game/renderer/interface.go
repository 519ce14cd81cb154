package renderer

import (
	"image"
	"image/color"

	"dungeonmap/pkg/game/style"
)

// Point is a position in canvas pixels, y growing downwards.
type Point struct {
	X float64
	Y float64
}

// Add returns p shifted by (dx, dy).
func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// PathOpKind identifies a path segment.
type PathOpKind int

// Path segment kinds
const (
	OpMoveTo PathOpKind = iota
	OpLineTo
	OpQuadTo
	OpClose
)

// PathOp is one segment of a Path. QuadTo carries the control point first.
type PathOp struct {
	Kind   PathOpKind
	Points []Point
}

// Path is a backend-neutral vector outline.
type Path struct {
	ops []PathOp
}

// NewPath returns an empty path.
func NewPath() *Path {
	return &Path{}
}

// MoveTo starts a new sub-path.
func (p *Path) MoveTo(pt Point) *Path {
	p.ops = append(p.ops, PathOp{Kind: OpMoveTo, Points: []Point{pt}})
	return p
}

// LineTo adds a straight segment.
func (p *Path) LineTo(pt Point) *Path {
	p.ops = append(p.ops, PathOp{Kind: OpLineTo, Points: []Point{pt}})
	return p
}

// QuadTo adds a quadratic Bezier segment through control point ctrl.
func (p *Path) QuadTo(ctrl, pt Point) *Path {
	p.ops = append(p.ops, PathOp{Kind: OpQuadTo, Points: []Point{ctrl, pt}})
	return p
}

// Close closes the current sub-path.
func (p *Path) Close() *Path {
	p.ops = append(p.ops, PathOp{Kind: OpClose})
	return p
}

// Ops returns the recorded segments.
func (p *Path) Ops() []PathOp {
	return p.ops
}

// StrokeStyle controls how a path outline is drawn.
type StrokeStyle struct {
	Color color.Color
	Width float64
	Cap   string
	Join  string
}

// TextOptions controls how a string is drawn. An outline is drawn beneath
// the fill when OutlineWidth is positive.
type TextOptions struct {
	Font         style.Font
	Align        string // left, center or right
	Baseline     string // top, middle or bottom
	Color        color.Color
	OutlineColor color.Color
	OutlineWidth float64
}

// Surface is the 2-D drawing target a Scene is painted onto. Backends
// include a raster canvas for PNG export and the interactive viewer, and a
// Recorder used by tests.
type Surface interface {
	// Clear fills the whole surface with c.
	Clear(c color.Color)

	// Stroke draws the outline of p.
	Stroke(p *Path, s StrokeStyle)

	// Fill fills the interior of p.
	Fill(p *Path, c color.Color)

	// FillRect fills an axis-aligned rectangle.
	FillRect(x, y, w, h float64, c color.Color)

	// FillCircle fills a circle.
	FillCircle(cx, cy, r float64, c color.Color)

	// Text draws s anchored at (x, y).
	Text(s string, x, y float64, o TextOptions)

	// MeasureText returns the advance width and height of s.
	MeasureText(s string, f style.Font) (w, h float64)

	// Image draws img scaled into the given box.
	Image(img image.Image, x, y, w, h float64)
}
