package style

import (
	"image/color"
	"strings"
)

// Marker shapes a cell look may ask for.
const (
	ShapeRect   = "rect"
	ShapeCircle = "circle"
	ShapeDot    = "dot"
	ShapeNone   = "none"
)

// Sub-icon placements inside a cell.
var iconPlacements = map[string][2]float64{
	"tl": {0.15, 0.15},
	"tr": {0.85, 0.15},
	"bl": {0.15, 0.85},
	"br": {0.85, 0.85},
	"tm": {0.5, 0.12},
	"bm": {0.5, 0.88},
}

// IconPlacement returns where an icon with the given classes sits, as
// fractions of the cell box measured from its top-left corner. Icons without
// a placement class sit at the top-right.
func IconPlacement(classes []string) (fx, fy float64) {
	for _, cls := range classes {
		if p, ok := iconPlacements[cls]; ok {
			fx, fy = p[0], p[1]
		}
	}
	if fx == 0 && fy == 0 {
		return iconPlacements["tr"][0], iconPlacements["tr"][1]
	}
	return fx, fy
}

// Look is the resolved appearance of a cell or a sub-icon.
type Look struct {
	Background  color.Color
	Color       color.Color
	BorderColor color.Color
	BorderWidth float64
	Font        Font
	Shape       string
	HideText    bool
	Glyph       string
	LabelColor  color.Color
	LabelSize   float64
}

// NewLook builds a look from a merged cell record.
func NewLook(r Record) Look {
	fg := MustColor(r.String("color", ""), color.Black)
	l := Look{
		Color:       fg,
		BorderColor: MustColor(r.String("borderColor", ""), color.Transparent),
		BorderWidth: r.Float("borderWidth", 0),
		Font:        fontOf(r),
		Shape:       strings.ToLower(r.String("shape", ShapeRect)),
		HideText:    r.Flag("hideText", false),
		Glyph:       r.String("glyph", ""),
		LabelColor:  MustColor(r.String("labelColor", ""), fg),
		LabelSize:   r.Float("labelSize", 0),
	}
	if bg := r.String("background", ""); !IsNone(bg) {
		l.Background = MustColor(bg, nil)
	}
	if l.LabelSize == 0 {
		l.LabelSize = l.Font.Size * 0.75
	}
	return l
}
