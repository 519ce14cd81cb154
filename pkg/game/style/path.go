package style

import (
	"image/color"
	"math"
	"strings"
)

// DefaultEdgeOffset is the fraction of a cell by which route endpoints are
// inset from the cell centre.
const DefaultEdgeOffset = 0.35

// DefaultPathStyle names the style used when a path names none.
const DefaultPathStyle = "default"

// PathStyle is the resolved appearance of a route overlay.
type PathStyle struct {
	LineColor       color.Color
	LineWidth       float64
	LineBorderColor color.Color
	LineBorderWidth float64

	ArrowHead   bool
	ArrowTail   bool
	ArrowLength float64
	ArrowAngle  float64 // radians

	LabelColor       color.Color
	LabelFontSize    float64
	LabelBackground  string
	LabelBorderColor color.Color
	LabelBorderWidth float64

	TipColor       color.Color
	TipFontSize    float64
	TipBackground  string
	TipBorderColor color.Color
	TipBorderWidth float64

	EdgeOffset float64
}

// HasBorder reports whether the line is outlined.
func (s PathStyle) HasBorder() bool {
	return s.LineBorderWidth > 0 && s.LineBorderColor != nil
}

// pathProps lists the properties a path style record may set.
var pathProps = []string{
	"lineColor", "lineWidth", "lineBorderColor", "lineBorderWidth",
	"arrowHead", "arrowTail", "arrowLength", "arrowAngle",
	"labelColor", "labelFontSize", "labelBackground", "labelBorderColor", "labelBorderWidth",
	"tipColor", "tipFontSize", "tipBackground", "tipBorderColor", "tipBorderWidth",
	"edgeOffset",
}

// pathDefaults are applied beneath every named path style.
var pathDefaults = Record{
	"lineColor":        "#3498db",
	"lineWidth":        "4",
	"lineBorderWidth":  "0",
	"arrowHead":        "1",
	"arrowTail":        "0",
	"arrowLength":      "12",
	"arrowAngle":       "30",
	"labelFontSize":    "14",
	"labelBackground":  "rgba(255, 255, 255, 0.85)",
	"tipBackground":    "rgba(255, 255, 255, 0.85)",
	"labelBorderWidth": "0",
	"tipBorderWidth":   "0",
	"edgeOffset":       "0.35",
}

// PathStyleNames splits a space separated style string, defaulting to
// DefaultPathStyle.
func PathStyleNames(names string) []string {
	fields := strings.Fields(names)
	if len(fields) == 0 {
		return []string{DefaultPathStyle}
	}
	return fields
}

// MergePathRecords layers the records of several named styles over the
// defaults. A later record's set, non-zero property wins.
func MergePathRecords(records ...Record) Record {
	merged := make(Record, len(pathDefaults))
	merged.merge(pathDefaults)
	for _, r := range records {
		for _, prop := range pathProps {
			v := strings.TrimSpace(r[prop])
			if v == "" {
				continue
			}
			if isNumericProp(prop) {
				if f, ok := leadingFloat(v); !ok || f == 0 {
					continue
				}
			}
			merged[prop] = v
		}
	}
	return merged
}

func isNumericProp(prop string) bool {
	return strings.HasSuffix(prop, "Width") || strings.HasSuffix(prop, "Length") ||
		strings.HasSuffix(prop, "Angle") || strings.HasSuffix(prop, "FontSize") ||
		prop == "edgeOffset"
}

// NewPathStyle finalises a merged path record.
func NewPathStyle(m Record) PathStyle {
	black := color.Color(color.Black)
	lineColor := MustColor(m.String("lineColor", ""), color.NRGBA{R: 0x34, G: 0x98, B: 0xdb, A: 0xff})
	labelSize := m.Float("labelFontSize", 14)

	return PathStyle{
		LineColor:       lineColor,
		LineWidth:       m.Float("lineWidth", 4),
		LineBorderColor: MustColor(m.String("lineBorderColor", ""), black),
		LineBorderWidth: m.Float("lineBorderWidth", 0),

		ArrowHead:   m.String("arrowHead", "1") != "0",
		ArrowTail:   m.String("arrowTail", "0") == "1",
		ArrowLength: m.Float("arrowLength", 12),
		ArrowAngle:  m.Float("arrowAngle", 30) * math.Pi / 180,

		LabelColor:       MustColor(m.String("labelColor", ""), lineColor),
		LabelFontSize:    labelSize,
		LabelBackground:  m.String("labelBackground", ""),
		LabelBorderColor: MustColor(m.String("labelBorderColor", ""), black),
		LabelBorderWidth: m.Float("labelBorderWidth", 0),

		TipColor:       MustColor(m.String("tipColor", ""), lineColor),
		TipFontSize:    m.Float("tipFontSize", labelSize),
		TipBackground:  m.String("tipBackground", ""),
		TipBorderColor: MustColor(m.String("tipBorderColor", ""), black),
		TipBorderWidth: m.Float("tipBorderWidth", 0),

		EdgeOffset: m.Float("edgeOffset", DefaultEdgeOffset),
	}
}
