// Package ebiten hosts the interactive floor viewer window.
package ebiten

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"dungeonmap/pkg/engine/ctxlog"
	"dungeonmap/pkg/engine/input"
	"dungeonmap/pkg/game/renderer"
	"dungeonmap/pkg/game/renderer/raster"
	"dungeonmap/pkg/game/view"
)

const (
	hudFontSize = 13.0
	hudPadding  = 6.0
	hudLines    = 2
)

var (
	colorHUDBackground = color.RGBA{32, 32, 40, 255}
	colorHUDText       = color.RGBA{230, 230, 240, 255}
	colorHUDMessage    = color.RGBA{170, 210, 255, 255}
)

// Options configures a Viewer.
type Options struct {
	// Fonts draws the map. Nil uses raster.DefaultFonts.
	Fonts *raster.Fonts
	// HUDFont is TrueType data for the status lines. Nil uses Go Regular,
	// which has no CJK glyphs.
	HUDFont  []byte
	Bindings *input.Bindings
}

// Viewer is an ebiten.Game that shows the navigator's current floor.
type Viewer struct {
	ctx      context.Context
	nav      *view.Navigator
	fonts    *raster.Fonts
	bindings *input.Bindings
	hudFace  *text.GoTextFace

	scene   *renderer.Scene
	texture *ebiten.Image
	size    int
	message string
	keys    []ebiten.Key
}

// New builds a viewer for nav.
func New(ctx context.Context, nav *view.Navigator, opts Options) (*Viewer, error) {
	if opts.Fonts == nil {
		opts.Fonts = raster.DefaultFonts()
	}
	if opts.HUDFont == nil {
		opts.HUDFont = goregular.TTF
	}
	if opts.Bindings == nil {
		opts.Bindings = input.DefaultBindings()
	}
	src, err := text.NewGoTextFaceSource(bytes.NewReader(opts.HUDFont))
	if err != nil {
		return nil, fmt.Errorf("loading HUD font: %w", err)
	}
	return &Viewer{
		ctx:      ctx,
		nav:      nav,
		fonts:    opts.Fonts,
		bindings: opts.Bindings,
		hudFace:  &text.GoTextFace{Source: src, Size: hudFontSize},
	}, nil
}

func hudHeight() int {
	return int(hudLines*(hudFontSize+hudPadding) + hudPadding)
}

// Update handles input and refreshes the map texture (ebiten.Game).
func (v *Viewer) Update() error {
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	v.keys = inpututil.AppendJustPressedKeys(v.keys[:0])
	for _, k := range v.keys {
		code := input.KeyNameCode(k.String(), shift)
		if code == "" {
			continue
		}
		intent := v.bindings.MapToIntent(input.NewDebouncedInput(input.RawInput{
			Device: input.DeviceKeyboard,
			Code:   code,
		}))
		if intent.Action == input.ActionNone {
			continue
		}
		res, err := v.nav.Apply(intent.Action)
		if err != nil {
			ctxlog.FromContext(v.ctx).Error("Action failed",
				slog.String("action", input.ActionName(intent.Action)),
				slog.Any("error", err),
			)
			v.message = err.Error()
			continue
		}
		if res.Quit {
			return ebiten.Termination
		}
		v.message = res.Message
	}

	v.refresh()
	return nil
}

// refresh re-rasterises the floor when the session produced a new scene.
func (v *Viewer) refresh() {
	scene := v.nav.Session().Render()
	if scene == v.scene && v.texture != nil {
		return
	}
	v.scene = scene
	if v.texture != nil {
		v.texture.Deallocate()
	}
	v.texture = ebiten.NewImageFromImage(raster.Render(scene, v.fonts).Pixels())

	if size := scene.Size(); size != v.size {
		v.size = size
		ebiten.SetWindowSize(size, size+hudHeight())
	}
	ebiten.SetWindowTitle(v.nav.Session().Floor().DisplayTitle())
}

// Draw paints the map and the status lines (ebiten.Game).
func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(renderer.Background)
	if v.texture != nil {
		screen.DrawImage(v.texture, &ebiten.DrawImageOptions{})
	}

	y := float32(v.size)
	vector.DrawFilledRect(screen, 0, y, float32(v.size), float32(hudHeight()), colorHUDBackground, false)

	v.drawLine(screen, v.nav.Status(), 0, colorHUDText)
	msg := v.message
	if msg == "" {
		msg = v.nav.Catalog().T("←/→ floor  1/2/3 size  T routes  A show all  S save  Q quit")
	}
	v.drawLine(screen, msg, 1, colorHUDMessage)
}

func (v *Viewer) drawLine(screen *ebiten.Image, s string, line int, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(hudPadding, float64(v.size)+hudPadding+float64(line)*(hudFontSize+hudPadding))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, v.hudFace, op)
}

// Layout keeps the logical screen at the map size plus the status area
// (ebiten.Game).
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	if v.size == 0 {
		return outsideWidth, outsideHeight
	}
	return v.size, v.size + hudHeight()
}

// Run opens the window and blocks until the viewer quits.
func Run(v *Viewer) error {
	v.size = v.nav.Session().Render().Size()
	ebiten.SetWindowSize(v.size, v.size+hudHeight())
	ebiten.SetWindowTitle(v.nav.Session().Floor().DisplayTitle())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ctxlog.FromContext(v.ctx).Info("Viewer window opening",
		slog.Int("floor", v.nav.Session().Floor().ID),
		slog.Int("size", v.size),
	)
	defer v.nav.Close()
	if err := ebiten.RunGame(v); err != nil {
		return fmt.Errorf("running viewer: %w", err)
	}
	return nil
}
