// Package raster paints scenes into an in-memory RGBA image with gg.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"os"

	"github.com/fogleman/gg"

	"dungeonmap/pkg/game/renderer"
	"dungeonmap/pkg/game/style"
)

// Surface is a renderer.Surface backed by a gg context.
type Surface struct {
	dc    *gg.Context
	fonts *Fonts
}

var _ renderer.Surface = (*Surface)(nil)

// NewSurface returns a square surface of the given side length. A nil
// fonts uses DefaultFonts.
func NewSurface(size int, fonts *Fonts) *Surface {
	if fonts == nil {
		fonts = DefaultFonts()
	}
	return &Surface{dc: gg.NewContext(size, size), fonts: fonts}
}

// Render paints a planned scene onto a fresh surface sized to fit it.
func Render(sc *renderer.Scene, fonts *Fonts) *Surface {
	s := NewSurface(sc.Size(), fonts)
	sc.Paint(s)
	return s
}

// Pixels returns the painted image.
func (s *Surface) Pixels() image.Image {
	return s.dc.Image()
}

// EncodePNG writes the surface as a PNG.
func (s *Surface) EncodePNG(w io.Writer) error {
	return s.dc.EncodePNG(w)
}

// ExportPNG writes the surface to a PNG file.
func (s *Surface) ExportPNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := s.EncodePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}

func (s *Surface) Clear(c color.Color) {
	s.dc.SetColor(c)
	s.dc.Clear()
}

func (s *Surface) trace(p *renderer.Path) {
	s.dc.NewSubPath()
	for _, op := range p.Ops() {
		switch op.Kind {
		case renderer.OpMoveTo:
			s.dc.MoveTo(op.Points[0].X, op.Points[0].Y)
		case renderer.OpLineTo:
			s.dc.LineTo(op.Points[0].X, op.Points[0].Y)
		case renderer.OpQuadTo:
			s.dc.QuadraticTo(op.Points[0].X, op.Points[0].Y, op.Points[1].X, op.Points[1].Y)
		case renderer.OpClose:
			s.dc.ClosePath()
		}
	}
}

func (s *Surface) Stroke(p *renderer.Path, st renderer.StrokeStyle) {
	if st.Color == nil || st.Width <= 0 {
		return
	}
	s.trace(p)
	s.dc.SetColor(st.Color)
	s.dc.SetLineWidth(st.Width)
	s.dc.SetLineCap(lineCap(st.Cap))
	s.dc.SetLineJoin(lineJoin(st.Join))
	s.dc.Stroke()
}

func (s *Surface) Fill(p *renderer.Path, c color.Color) {
	if c == nil {
		s.dc.ClearPath()
		return
	}
	s.trace(p)
	s.dc.SetColor(c)
	s.dc.Fill()
}

func (s *Surface) FillRect(x, y, w, h float64, c color.Color) {
	if c == nil {
		return
	}
	s.dc.DrawRectangle(x, y, w, h)
	s.dc.SetColor(c)
	s.dc.Fill()
}

func (s *Surface) FillCircle(cx, cy, r float64, c color.Color) {
	if c == nil {
		return
	}
	s.dc.DrawCircle(cx, cy, r)
	s.dc.SetColor(c)
	s.dc.Fill()
}

// outlineSteps is how many offset copies approximate a text outline.
const outlineSteps = 12

// Text draws s anchored per the options. gg has no stroked text, so an
// outline is laid down as copies of the string shifted around a circle of
// half the outline width.
func (s *Surface) Text(text string, x, y float64, o renderer.TextOptions) {
	if text == "" {
		return
	}
	s.dc.SetFontFace(s.fonts.Face(o.Font))
	ax, ay := anchor(o.Align, o.Baseline)

	if o.OutlineWidth > 0 && o.OutlineColor != nil {
		r := o.OutlineWidth / 2
		s.dc.SetColor(o.OutlineColor)
		for i := 0; i < outlineSteps; i++ {
			a := 2 * math.Pi * float64(i) / outlineSteps
			s.dc.DrawStringAnchored(text, x+r*math.Cos(a), y+r*math.Sin(a), ax, ay)
		}
	}
	fill := o.Color
	if fill == nil {
		fill = color.Black
	}
	s.dc.SetColor(fill)
	s.dc.DrawStringAnchored(text, x, y, ax, ay)
}

func (s *Surface) MeasureText(text string, f style.Font) (float64, float64) {
	s.dc.SetFontFace(s.fonts.Face(f))
	w, _ := s.dc.MeasureString(text)
	return w, f.Size
}

// Image draws img scaled into the box. A zero width or height keeps the
// image's own size on that axis.
func (s *Surface) Image(img image.Image, x, y, w, h float64) {
	b := img.Bounds()
	if b.Empty() {
		return
	}
	sx, sy := 1.0, 1.0
	if w > 0 {
		sx = w / float64(b.Dx())
	}
	if h > 0 {
		sy = h / float64(b.Dy())
	}
	s.dc.Push()
	s.dc.Translate(x, y)
	s.dc.Scale(sx, sy)
	s.dc.DrawImage(img, -b.Min.X, -b.Min.Y)
	s.dc.Pop()
}

func lineCap(name string) gg.LineCap {
	switch name {
	case "round":
		return gg.LineCapRound
	case "square":
		return gg.LineCapSquare
	default:
		return gg.LineCapButt
	}
}

func lineJoin(name string) gg.LineJoin {
	if name == "bevel" {
		return gg.LineJoinBevel
	}
	return gg.LineJoinRound
}

// anchor converts canvas-style alignment names to gg anchor fractions.
func anchor(align, baseline string) (ax, ay float64) {
	switch align {
	case "left", "start":
		ax = 0
	case "right", "end":
		ax = 1
	default:
		ax = 0.5
	}
	switch baseline {
	case "top", "hanging":
		ay = 1
	case "bottom", "alphabetic", "ideographic":
		ay = 0
	default:
		ay = 0.5
	}
	return ax, ay
}
