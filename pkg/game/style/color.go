package style

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// IsNone reports whether s explicitly disables a colour.
func IsNone(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "transparent":
		return true
	}
	return false
}

// ParseColor reads a CSS-style colour: #rgb, #rrggbb, #rrggbbaa, rgb(),
// rgba() or a named colour. "none" and "transparent" parse as fully
// transparent.
func ParseColor(s string) (color.Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "":
		return nil, false
	case s == "none" || s == "transparent":
		return color.NRGBA{}, true
	case strings.HasPrefix(s, "#"):
		return parseHex(s)
	case strings.HasPrefix(s, "rgb"):
		return parseFunctional(s)
	}
	if c, ok := colornames.Map[s]; ok {
		return c, true
	}
	return nil, false
}

// MustColor parses s, falling back to def when s is not a colour.
func MustColor(s string, def color.Color) color.Color {
	if c, ok := ParseColor(s); ok {
		return c
	}
	return def
}

func parseHex(s string) (color.Color, bool) {
	alpha := uint8(0xff)
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return nil, false
		}
		alpha = uint8(a)
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, false
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, true
}

func parseFunctional(s string) (color.Color, bool) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return nil, false
	}
	parts := strings.FieldsFunc(s[open+1:len(s)-1], func(r rune) bool {
		return r == ',' || r == ' ' || r == '/'
	})
	if len(parts) != 3 && len(parts) != 4 {
		return nil, false
	}

	var rgb [3]uint8
	for i := 0; i < 3; i++ {
		v, ok := channel(parts[i], 255)
		if !ok {
			return nil, false
		}
		rgb[i] = uint8(v + 0.5)
	}
	alpha := uint8(0xff)
	if len(parts) == 4 {
		a, ok := channel(parts[3], 1)
		if !ok {
			return nil, false
		}
		alpha = uint8(a*255 + 0.5)
	}
	return color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: alpha}, true
}

// channel parses a number or percentage and clamps it to [0, max].
func channel(s string, max float64) (float64, bool) {
	pct := strings.HasSuffix(s, "%")
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return 0, false
	}
	if pct {
		v = v / 100 * max
	}
	if v < 0 {
		v = 0
	}
	if v > max {
		v = max
	}
	return v, true
}
