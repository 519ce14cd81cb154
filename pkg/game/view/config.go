package view

import (
	"fmt"
	"strconv"
	"strings"

	"dungeonmap/pkg/game/renderer"
)

// Cell size bounds accepted from the command line.
const (
	MinCellSize = 20
	MaxCellSize = 400
)

// Config holds the per-view geometry.
type Config struct {
	CellSize float64
	Margin   float64
}

// DefaultConfig returns the medium preset.
func DefaultConfig() Config {
	return Config{CellSize: renderer.SizeMedium, Margin: renderer.DefaultMargin}
}

// Layout returns the pixel layout for the config.
func (c Config) Layout() renderer.Layout {
	return renderer.Layout{CellSize: c.CellSize, Margin: c.Margin}
}

// Presets lists the named cell sizes from smallest to largest.
var Presets = []float64{renderer.SizeSmall, renderer.SizeMedium, renderer.SizeLarge}

// ParseSize reads a preset name (S, M, L or small, medium, large) or a
// pixel count.
func ParseSize(s string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "s", "small":
		return renderer.SizeSmall, nil
	case "m", "medium", "":
		return renderer.SizeMedium, nil
	case "l", "large":
		return renderer.SizeLarge, nil
	}
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(s), "px"))
	if err != nil {
		return 0, fmt.Errorf("invalid cell size %q", s)
	}
	if n < MinCellSize || n > MaxCellSize {
		return 0, fmt.Errorf("cell size %d out of range [%d, %d]", n, MinCellSize, MaxCellSize)
	}
	return float64(n), nil
}

// StepPreset returns the preset after (dir > 0) or before (dir < 0) size,
// clamped to the ends of Presets.
func StepPreset(size float64, dir int) float64 {
	i := 0
	for i < len(Presets)-1 && Presets[i] < size {
		i++
	}
	switch {
	case dir > 0 && Presets[i] <= size:
		i++
	case dir < 0:
		i--
	}
	i = max(0, min(len(Presets)-1, i))
	return Presets[i]
}
