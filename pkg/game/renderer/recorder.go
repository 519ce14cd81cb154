package renderer

import (
	"image"
	"image/color"
	"unicode/utf8"

	"dungeonmap/pkg/game/style"
)

// OpKind names a Surface primitive.
type OpKind string

// Surface primitives as recorded by Recorder.
const (
	OpClear      OpKind = "clear"
	OpStroke     OpKind = "stroke"
	OpFill       OpKind = "fill"
	OpFillRect   OpKind = "fillRect"
	OpFillCircle OpKind = "fillCircle"
	OpText       OpKind = "text"
	OpImage      OpKind = "image"
)

// Op is one recorded Surface call.
type Op struct {
	Kind   OpKind
	Path   *Path
	Stroke StrokeStyle
	Color  color.Color
	Rect   [4]float64
	Text   string
	At     Point
	Opts   TextOptions
}

// Recorder is a Surface that keeps every call instead of drawing it.
// Text is measured as 0.6 em per rune.
type Recorder struct {
	Ops []Op
}

// Count returns how many ops of kind k were recorded.
func (r *Recorder) Count(k OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}

// Texts returns the recorded strings in draw order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == OpText {
			out = append(out, op.Text)
		}
	}
	return out
}

func (r *Recorder) Clear(c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpClear, Color: c})
}

func (r *Recorder) Stroke(p *Path, s StrokeStyle) {
	r.Ops = append(r.Ops, Op{Kind: OpStroke, Path: p, Stroke: s, Color: s.Color})
}

func (r *Recorder) Fill(p *Path, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpFill, Path: p, Color: c})
}

func (r *Recorder) FillRect(x, y, w, h float64, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpFillRect, Rect: [4]float64{x, y, w, h}, Color: c})
}

func (r *Recorder) FillCircle(cx, cy, radius float64, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpFillCircle, At: Point{X: cx, Y: cy}, Rect: [4]float64{cx - radius, cy - radius, 2 * radius, 2 * radius}, Color: c})
}

func (r *Recorder) Text(s string, x, y float64, o TextOptions) {
	r.Ops = append(r.Ops, Op{Kind: OpText, Text: s, At: Point{X: x, Y: y}, Opts: o, Color: o.Color})
}

func (r *Recorder) MeasureText(s string, f style.Font) (float64, float64) {
	return float64(utf8.RuneCountInString(s)) * f.Size * 0.6, f.Size
}

func (r *Recorder) Image(img image.Image, x, y, w, h float64) {
	r.Ops = append(r.Ops, Op{Kind: OpImage, Rect: [4]float64{x, y, w, h}})
}
