// Package renderer turns a decoded floor into an ordered list of drawing
// calls and paints them onto a backend-neutral Surface.
package renderer

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"dungeonmap/pkg/engine/ctxlog"
	"dungeonmap/pkg/engine/world"
	"dungeonmap/pkg/game/floor"
	"dungeonmap/pkg/game/route"
	"dungeonmap/pkg/game/style"
)

// ImageSource supplies decoded images for edge styles that reference one.
// A false return means the image is not available yet.
type ImageSource interface {
	Image(path string) (image.Image, bool)
}

// Input is everything a Scene is planned from.
type Input struct {
	Floor  *floor.Floor
	Grid   *world.Grid
	Cells  []style.Cell
	Styles *style.Resolver
	Layout Layout

	// Hidden reports whether a toggle group is switched off. Nil shows
	// every path.
	Hidden func(group string) bool

	// Images may be nil, in which case image edges draw nothing.
	Images ImageSource
}

// Scene is a planned floor drawing.
type Scene struct {
	layout Layout
	calls  []Call
}

// Background is the canvas colour beneath every floor.
var Background color.Color = color.White

// Header text colour.
var headerColor = color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff}

// Plan lays out one floor. Calls are ordered back to front: cells, present
// connectors, missing walls, flow arrows, route overlays and finally the
// headers.
func Plan(ctx context.Context, in Input) *Scene {
	sc := &Scene{layout: in.Layout}
	sc.add(BackgroundCall{Color: Background})

	planCells(sc, in)
	planEdges(sc, in, true)
	planEdges(sc, in, false)
	if in.Floor.FlowArrows {
		planFlowArrows(sc, in)
	}
	planTrajectories(ctx, sc, in)
	planHeaders(sc, in)

	ctxlog.FromContext(ctx).Debug("Planned floor",
		slog.Int("floor", in.Floor.ID),
		slog.Int("calls", len(sc.calls)),
	)
	return sc
}

func (sc *Scene) add(c Call) {
	sc.calls = append(sc.calls, c)
}

// Calls returns the planned calls in paint order.
func (sc *Scene) Calls() []Call {
	return sc.calls
}

// Layout returns the geometry the scene was planned with.
func (sc *Scene) Layout() Layout {
	return sc.layout
}

// Size returns the canvas side length in whole pixels.
func (sc *Scene) Size() int {
	return int(sc.layout.CanvasSize())
}

// Paint draws every call onto s.
func (sc *Scene) Paint(s Surface) {
	for _, c := range sc.calls {
		c.Paint(s)
	}
}

func planCells(sc *Scene, in Input) {
	l := in.Layout
	for _, cell := range in.Cells {
		origin := l.CellOrigin(cell.Pos)
		call := CellCall{
			Cell:   cell,
			Origin: origin,
			Size:   l.CellSize,
			Look:   in.Styles.Look(cell.Classes),
		}
		for _, icon := range cell.Icons {
			classes := icon.Classes()
			call.Icons = append(call.Icons, IconCall{
				Icon: icon,
				Look: in.Styles.Look(classes),
				At:   iconPoint(origin, l.CellSize, classes),
			})
		}
		sc.add(call)
	}
}

// planEdges walks every cell side once. With present set it emits the
// connectors found in the grid; otherwise it emits walls where none were.
func planEdges(sc *Scene, in Input, present bool) {
	type side struct {
		neighbour world.Coord
		dir       world.Direction
	}
	for y := 0; y < world.Size; y++ {
		for x := 0; x < world.Size; x++ {
			c := world.C(x, y)
			sides := make([]side, 0, 6)
			if x < world.Size-1 {
				sides = append(sides, side{world.C(x+1, y), world.East})
			}
			if y < world.Size-1 {
				sides = append(sides, side{world.C(x, y+1), world.North})
			}
			if x == 0 {
				sides = append(sides, side{world.C(-1, y), world.West})
			}
			if y == world.Size-1 {
				sides = append(sides, side{world.C(x, world.Size), world.North})
			}
			if x == world.Size-1 {
				sides = append(sides, side{world.C(world.Size, y), world.East})
			}
			if y == 0 {
				sides = append(sides, side{world.C(x, -1), world.South})
			}

			for _, sd := range sides {
				edge, ok := in.Grid.EdgeBetween(c, sd.neighbour)
				if ok != present {
					continue
				}
				key := edgeKey(in.Floor, edge, ok)
				from, to := sideOf(in.Layout, c, sd.dir)
				sc.addEdge(in, from, to, key)
			}
		}
	}
}

func edgeKey(f *floor.Floor, e world.Edge, ok bool) string {
	switch {
	case !ok:
		return style.WallKey
	case f.FlowArrows && world.IsArrow(e.Char):
		return style.FlowArrowPathKey
	default:
		return string(e.Char)
	}
}

func (sc *Scene) addEdge(in Input, from, to Point, key string) {
	st := in.Styles.Edge(key)
	call := EdgeCall{From: from, To: to, Key: key, Style: st}
	if st.Image != "" && in.Images != nil {
		if img, ok := in.Images.Image(st.Image); ok {
			call.Image = img
		}
	}
	sc.add(call)
}

func planFlowArrows(sc *Scene, in Input) {
	st := in.Styles.FlowArrow()
	chains := world.FindArrowChains(world.BuildArrowGraph(in.Grid.Edges()))
	for _, chain := range chains {
		points := in.Layout.FlowArrowPoints(chain, st.EdgeOffset)
		if len(points) < 2 {
			continue
		}
		sc.add(VectorCall{Points: points, Style: st, Head: st.ArrowHead, Tail: st.ArrowTail, Flow: true})
	}
}

func planTrajectories(ctx context.Context, sc *Scene, in Input) {
	if len(in.Floor.Paths) == 0 {
		return
	}
	hidden := in.Hidden
	if hidden == nil {
		hidden = func(string) bool { return false }
	}
	visible := route.Visible(in.Floor.Paths, hidden)
	graph := world.BuildGraph(in.Grid.Edges())
	offsets := route.AutoOffsets(visible, graph)

	for i, def := range visible {
		var auto *floor.Offset
		if off, ok := offsets[i]; ok {
			auto = &off
		}
		if err := sc.addTrajectory(in, graph, def, auto); err != nil {
			ctxlog.FromContext(ctx).Debug("Skipped path",
				slog.Int("floor", in.Floor.ID),
				slog.Int("path", i),
				slog.Any("error", err),
			)
		}
	}
}

// addTrajectory plans one route overlay with its label and tip.
func (sc *Scene) addTrajectory(in Input, graph *world.Graph, def floor.PathDef, auto *floor.Offset) error {
	if !def.Drawable() {
		return fmt.Errorf("path has %d cells, need at least 2", len(def.Cells))
	}
	l := in.Layout
	cells := route.Resolve(def, graph)
	st := in.Styles.Path(def.Style)

	edgeOffset := st.EdgeOffset
	if route.IsAdjacentPair(cells) {
		edgeOffset *= 0.5
	}
	points := l.FlowArrowPoints(cells, edgeOffset)
	if len(points) < 2 {
		return fmt.Errorf("route resolved to %d cells", len(cells))
	}

	offset := def.Offset
	if offset == nil {
		offset = auto
	}
	if offset != nil {
		l.Translate(points, offset.DX, offset.DY)
	}
	if def.StartOffset != nil {
		l.Translate(points[:1], def.StartOffset.DX, def.StartOffset.DY)
	}
	if def.EndOffset != nil {
		l.Translate(points[len(points)-1:], def.EndOffset.DX, def.EndOffset.DY)
	}

	head, tail := st.ArrowHead, st.ArrowTail
	if def.ArrowHead != nil {
		head = *def.ArrowHead
	}
	if def.ArrowTail != nil {
		tail = *def.ArrowTail
	}
	sc.add(VectorCall{Points: points, Style: st, Head: head, Tail: tail})

	if def.Label != "" {
		at := 0.1
		if def.LabelAt != nil {
			at = *def.LabelAt
		}
		sc.add(LabelCall{
			Kind:        LabelPath,
			Text:        def.Label,
			At:          PointOnPath(points, at),
			FontSize:    st.LabelFontSize,
			Color:       st.LabelColor,
			Background:  st.LabelBackground,
			BorderColor: st.LabelBorderColor,
			BorderWidth: st.LabelBorderWidth,
		})
	}
	if def.Tip != "" {
		last, prev := points[len(points)-1], points[len(points)-2]
		dx, dy := last.X-prev.X, last.Y-prev.Y
		sc.add(LabelCall{
			Kind:        LabelTip,
			Text:        def.Tip,
			At:          last,
			Horizontal:  abs(dx) >= abs(dy),
			FontSize:    st.TipFontSize,
			Color:       st.TipColor,
			Background:  st.TipBackground,
			BorderColor: st.TipBorderColor,
			BorderWidth: st.TipBorderWidth,
		})
	}
	return nil
}

// planHeaders places the column labels beneath the grid, the row labels to
// its left with the first entry at the bottom, the D<id> caption in the
// bottom-left corner and the title above the grid.
func planHeaders(sc *Scene, in Input) {
	l := in.Layout
	f := in.Floor
	font := style.Font{Size: l.Margin * 0.6, Bold: true}
	canvas := l.CanvasSize()
	band := l.Margin / 2

	if h := f.Headers; h != nil {
		for i, text := range h.X {
			if i >= world.Size {
				break
			}
			at := Point{X: l.CellCenter(world.C(i, 0)).X, Y: canvas - band}
			sc.add(HeaderCall{Text: text, At: at, Font: font, Color: headerColor})
		}
		for i, text := range h.Y {
			if i >= world.Size {
				break
			}
			at := Point{X: band, Y: l.CellCenter(world.C(0, i)).Y}
			sc.add(HeaderCall{Text: text, At: at, Font: font, Color: headerColor})
		}
	}
	if f.ID != 0 {
		sc.add(HeaderCall{Text: fmt.Sprintf("D%d", f.ID), At: Point{X: band, Y: canvas - band}, Font: font, Color: headerColor})
	}
	if title := f.DisplayTitle(); title != "" {
		sc.add(HeaderCall{Text: title, At: Point{X: canvas / 2, Y: band}, Font: font, Color: headerColor})
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
