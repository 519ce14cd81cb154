package renderer

import (
	"math"

	"dungeonmap/pkg/engine/world"
)

// Size presets in pixels per cell.
const (
	SizeSmall  = 50
	SizeMedium = 80
	SizeLarge  = 130

	// DefaultMargin surrounds the 5x5 grid on every side.
	DefaultMargin = 20
)

// Layout maps logical cells to canvas pixels. The text grid's top row is
// the floor's northern row, so y is inverted: logical row 0 is drawn at the
// bottom.
type Layout struct {
	CellSize float64
	Margin   float64
}

// NewLayout returns a layout with the default margin.
func NewLayout(cellSize float64) Layout {
	return Layout{CellSize: cellSize, Margin: DefaultMargin}
}

// CanvasSize returns the side length of the square canvas.
func (l Layout) CanvasSize() float64 {
	return world.Size*l.CellSize + 2*l.Margin
}

// CellOrigin returns the top-left corner of a cell's box.
func (l Layout) CellOrigin(c world.Coord) Point {
	return Point{
		X: float64(c.X)*l.CellSize + l.Margin,
		Y: float64(world.Size-1-c.Y)*l.CellSize + l.Margin,
	}
}

// CellCenter returns the pixel centre of a cell.
func (l Layout) CellCenter(c world.Coord) Point {
	return l.CellOrigin(c).Add(l.CellSize/2, l.CellSize/2)
}

// CellEdgePoint returns the point offset cell sizes from the centre of c
// towards the neighbour in direction (dx, dy).
func (l Layout) CellEdgePoint(c world.Coord, dx, dy int, offset float64) Point {
	center := l.CellCenter(c)
	return Point{
		X: center.X + float64(dx)*l.CellSize*offset,
		Y: center.Y - float64(dy)*l.CellSize*offset,
	}
}

// FlowArrowPoints converts a cell route into drawable points. The first
// point is inset towards the second cell and the last point is inset
// towards the previous one; interior points are cell centres. Routes
// shorter than two cells yield no points.
func (l Layout) FlowArrowPoints(path []world.Coord, offset float64) []Point {
	if len(path) < 2 {
		return nil
	}
	points := make([]Point, len(path))
	for i, curr := range path {
		switch i {
		case 0:
			next := path[1]
			points[i] = l.CellEdgePoint(curr, world.Sign(next.X-curr.X), world.Sign(next.Y-curr.Y), offset)
		case len(path) - 1:
			prev := path[i-1]
			points[i] = l.CellEdgePoint(curr, -world.Sign(curr.X-prev.X), -world.Sign(curr.Y-prev.Y), offset)
		default:
			points[i] = l.CellCenter(curr)
		}
	}
	return points
}

// Translate shifts every point by an offset in cell units; a positive dy
// moves up the canvas.
func (l Layout) Translate(points []Point, dx, dy float64) {
	for i := range points {
		points[i] = points[i].Add(dx*l.CellSize, -dy*l.CellSize)
	}
}

// PointOnPath returns the point at fraction t of the polyline's total
// length. t is clamped to [0, 1].
func PointOnPath(points []Point, t float64) Point {
	if len(points) == 0 {
		return Point{}
	}
	if len(points) < 2 {
		return points[0]
	}
	t = math.Max(0, math.Min(1, t))

	lengths := make([]float64, len(points)-1)
	total := 0.0
	for i := range lengths {
		lengths[i] = math.Hypot(points[i+1].X-points[i].X, points[i+1].Y-points[i].Y)
		total += lengths[i]
	}

	target := t * total
	acc := 0.0
	for i, seg := range lengths {
		if acc+seg >= target {
			if seg == 0 {
				return points[i]
			}
			f := (target - acc) / seg
			return Point{
				X: points[i].X + (points[i+1].X-points[i].X)*f,
				Y: points[i].Y + (points[i+1].Y-points[i].Y)*f,
			}
		}
		acc += seg
	}
	return points[len(points)-1]
}
