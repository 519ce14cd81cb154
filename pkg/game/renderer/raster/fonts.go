package raster

import (
	"fmt"
	"math"
	"os"
	"sync"

	"github.com/golang/freetype/truetype"
	"github.com/zyedidia/generic/cache"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"dungeonmap/pkg/game/style"
)

// faceCacheSize bounds the number of sized faces kept alive.
const faceCacheSize = 32

type faceKey struct {
	size float64
	bold bool
}

// Fonts hands out sized faces for a regular and a bold typeface.
type Fonts struct {
	regular *truetype.Font
	bold    *truetype.Font

	mu    sync.Mutex
	faces *cache.Cache[faceKey, font.Face]
}

// DefaultFonts returns the Go fonts. They cover Latin, Greek, Cyrillic and
// the arrow and geometric glyphs the built-in styles use.
func DefaultFonts() *Fonts {
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		panic(fmt.Sprintf("raster: parsing embedded regular font: %v", err))
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		panic(fmt.Sprintf("raster: parsing embedded bold font: %v", err))
	}
	return newFonts(regular, bold)
}

// LoadFonts reads a TrueType file used for both weights.
func LoadFonts(path string) (*Fonts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading font: %w", err)
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing font %s: %w", path, err)
	}
	return newFonts(f, f), nil
}

func newFonts(regular, bold *truetype.Font) *Fonts {
	return &Fonts{
		regular: regular,
		bold:    bold,
		faces:   cache.New[faceKey, font.Face](faceCacheSize),
	}
}

// Face returns a face for f, sized in pixels.
func (fs *Fonts) Face(f style.Font) font.Face {
	size := f.Size
	if size <= 0 {
		size = style.DefaultFontSize
	}
	key := faceKey{size: math.Round(size*4) / 4, bold: f.Bold}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if face, ok := fs.faces.Get(key); ok {
		return face
	}
	src := fs.regular
	if key.bold {
		src = fs.bold
	}
	face := truetype.NewFace(src, &truetype.Options{Size: key.size, DPI: 72, Hinting: font.HintingFull})
	fs.faces.Put(key, face)
	return face
}
