package raster

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"dungeonmap/pkg/game/floor"
	"dungeonmap/pkg/game/renderer"
	"dungeonmap/pkg/game/style"
)

func rgba(c color.Color) color.RGBA {
	r, g, b, a := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

func TestSurface_ClearAndFillRect(t *testing.T) {
	s := NewSurface(40, nil)
	s.Clear(color.White)
	s.FillRect(10, 10, 20, 20, color.RGBA{R: 255, A: 255})

	img := s.Pixels()
	require.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, rgba(img.At(2, 2)))
	require.Equal(t, color.RGBA{R: 255, A: 255}, rgba(img.At(20, 20)))
}

func TestSurface_NilColorsAreSkipped(t *testing.T) {
	s := NewSurface(20, nil)
	s.Clear(color.White)
	s.FillRect(0, 0, 20, 20, nil)
	s.FillCircle(10, 10, 5, nil)
	s.Stroke(renderer.NewPath().MoveTo(renderer.Point{}).LineTo(renderer.Point{X: 20, Y: 20}), renderer.StrokeStyle{Width: 3})

	require.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, rgba(s.Pixels().At(10, 10)))
}

func TestSurface_MeasureText(t *testing.T) {
	s := NewSurface(10, nil)
	short, h := s.MeasureText("ab", style.Font{Size: 16})
	long, _ := s.MeasureText("abcd", style.Font{Size: 16})

	require.Equal(t, 16.0, h)
	require.Greater(t, short, 0.0)
	require.Greater(t, long, short)
}

func TestSurface_ImageScaled(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			src.Set(x, y, color.RGBA{B: 255, A: 255})
		}
	}
	s := NewSurface(20, nil)
	var surf renderer.Surface = s
	surf.Clear(color.White)
	surf.Image(src, 5, 5, 10, 10)

	require.Equal(t, color.RGBA{B: 255, A: 255}, rgba(s.Pixels().At(10, 10)))
	require.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, rgba(s.Pixels().At(18, 18)))
}

func TestFonts_FaceCached(t *testing.T) {
	fs := DefaultFonts()
	a := fs.Face(style.Font{Size: 12})
	b := fs.Face(style.Font{Size: 12})
	c := fs.Face(style.Font{Size: 12, Bold: true})

	require.Same(t, a, b)
	require.NotSame(t, a, c)
}

func TestLoadFonts_Missing(t *testing.T) {
	_, err := LoadFonts(filepath.Join(t.TempDir(), "missing.ttf"))
	require.Error(t, err)
}

func TestRender_DefaultFloorToPNG(t *testing.T) {
	doc, err := floor.Default()
	require.NoError(t, err)
	f := doc.Floors[0]

	ctx := context.Background()
	grid := f.Grid()
	sc := renderer.Plan(ctx, renderer.Input{
		Floor:  f,
		Grid:   grid,
		Cells:  style.ResolveCells(ctx, grid, doc.StylesFor(f), f.Nodes),
		Styles: style.NewResolver(style.DefaultTable(), f.Scope(), renderer.SizeSmall),
		Layout: renderer.NewLayout(renderer.SizeSmall),
	})
	s := Render(sc, nil)

	var buf bytes.Buffer
	require.NoError(t, s.EncodePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, sc.Size(), img.Bounds().Dx())
	require.Equal(t, sc.Size(), img.Bounds().Dy())

	out := filepath.Join(t.TempDir(), "floor.png")
	require.NoError(t, s.ExportPNG(out))
}

func TestAnchor(t *testing.T) {
	tests := []struct {
		align, baseline string
		ax, ay          float64
	}{
		{"center", "middle", 0.5, 0.5},
		{"left", "top", 0, 1},
		{"right", "alphabetic", 1, 0},
		{"", "", 0.5, 0.5},
	}
	for _, tt := range tests {
		ax, ay := anchor(tt.align, tt.baseline)
		if ax != tt.ax || ay != tt.ay {
			t.Errorf("anchor(%q, %q) = %v, %v, want %v, %v", tt.align, tt.baseline, ax, ay, tt.ax, tt.ay)
		}
	}
}
