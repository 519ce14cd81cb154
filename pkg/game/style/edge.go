package style

import (
	"image/color"
	"math"
	"strings"
)

// Edge style keys with a fixed meaning.
const (
	WallKey          = "wall"
	FlowArrowPathKey = "flowArrowPath"
	FlowArrowKey     = "flowArrow"
)

// Font describes the face used for a piece of text.
type Font struct {
	Size float64
	Bold bool
}

// EdgeStyle is the resolved appearance of a connector feature.
type EdgeStyle struct {
	LineCap      string
	StrokeStyle  color.Color
	LineWidth    float64
	Font         Font
	TextAlign    string
	TextBaseline string
	StrokeWidth  float64
	StrokeColor  color.Color
	Inner        struct {
		StrokeStyle color.Color
		LineWidth   float64
	}
	Text   string
	Image  string
	Width  float64
	Height float64
}

// Empty reports whether drawing the style would paint nothing.
func (s EdgeStyle) Empty() bool {
	return s.LineWidth <= 0 && s.Inner.LineWidth <= 0 && s.Image == "" && s.Text == ""
}

// DefaultFontSize applies when a record does not set fontSize.
const DefaultFontSize = 16

var defaultTextStroke = color.NRGBA{A: 204}

// NewEdgeStyle builds an edge style from a backend record.
func NewEdgeStyle(r Record) EdgeStyle {
	fg := MustColor(r.String("color", ""), color.Black)
	s := EdgeStyle{
		LineCap:      r.String("lineCap", "butt"),
		StrokeStyle:  MustColor(r.String("strokeStyle", ""), fg),
		LineWidth:    r.Float("lineWidth", 0),
		Font:         fontOf(r),
		TextAlign:    r.String("textAlign", "center"),
		TextBaseline: r.String("textBaseline", "middle"),
		StrokeWidth:  r.Float("edge-stroke-width", 0),
		StrokeColor:  MustColor(r.String("edge-stroke-color", ""), defaultTextStroke),
		Text:         strings.NewReplacer(`"`, "", `'`, "").Replace(r.String("edge-text", "")),
		Image:        r.String("image", ""),
		Width:        r.Float("width", 32),
		Height:       r.Float("height", 32),
	}
	if IsNone(s.Image) {
		s.Image = ""
	}
	s.Inner.StrokeStyle = MustColor(r.String("inner-strokeStyle", ""), color.Transparent)
	s.Inner.LineWidth = r.Float("inner-lineWidth", 0)
	return s
}

func fontOf(r Record) Font {
	w := strings.ToLower(r.String("fontWeight", ""))
	return Font{
		Size: r.Float("fontSize", DefaultFontSize),
		Bold: w == "bold" || w == "bolder" || w == "700" || w == "800" || w == "900",
	}
}

// FlowArrowStyle derives the fixed path style of flow arrows from the
// flowArrow edge record. Flow arrows always draw a head and never a tail.
func FlowArrowStyle(r Record) PathStyle {
	return PathStyle{
		LineColor:       MustColor(r.String("strokeStyle", r.String("color", "")), defaultFlowColor),
		LineWidth:       r.Float("lineWidth", 3),
		LineBorderColor: color.Black,
		ArrowHead:       true,
		ArrowLength:     r.Float("headLength", 15),
		ArrowAngle:      r.Float("headAngle", 30) * math.Pi / 180,
		EdgeOffset:      r.Float("edgeOffset", DefaultEdgeOffset),
	}
}

var defaultFlowColor = color.NRGBA{R: 0xe7, G: 0x4c, B: 0x3c, A: 0xff}
