// Package view owns the per-floor rendering state: the decoded grid, the
// style caches and the scene that is redrawn when anything changes.
package view

import (
	"context"
	"image"
	"log/slog"
	"sync"

	"github.com/zyedidia/generic/mapset"

	"dungeonmap/pkg/engine/ctxlog"
	"dungeonmap/pkg/engine/world"
	"dungeonmap/pkg/game/assets"
	"dungeonmap/pkg/game/floor"
	"dungeonmap/pkg/game/renderer"
	"dungeonmap/pkg/game/style"
)

// Session is one floor on display. It is driven from a single goroutine;
// only the image-loaded callback arrives from elsewhere, and it only marks
// the session dirty.
type Session struct {
	ctx     context.Context
	floor   *floor.Floor
	grid    *world.Grid
	cells   []style.Cell
	styles  *style.Resolver
	config  Config
	toggles *Toggles
	images  *assets.Loader

	// requested is only touched while planning.
	requested mapset.Set[string]

	scene        *renderer.Scene
	sceneToggles int

	mu       sync.Mutex
	dirty    bool
	closed   bool
	onRedraw func()
}

// NewSession decodes f and prepares a style cache of its own. toggles is
// initialised from the document and may be shared with other sessions;
// images may be nil to disable edge images.
func NewSession(ctx context.Context, doc *floor.Document, f *floor.Floor, backend style.Backend, toggles *Toggles, images *assets.Loader, cfg Config) *Session {
	toggles.Init(doc.ToggleDefs())
	grid := f.Grid()
	return &Session{
		ctx:     ctx,
		floor:   f,
		grid:    grid,
		cells:   style.ResolveCells(ctx, grid, doc.StylesFor(f), f.Nodes),
		styles:  style.NewResolver(backend, f.Scope(), cfg.CellSize),
		config:  cfg,
		toggles: toggles,
		images:  images,
		dirty:   true,

		requested: mapset.New[string](),
	}
}

// Floor returns the floor on display.
func (s *Session) Floor() *floor.Floor {
	return s.floor
}

// Grid returns the decoded floor.
func (s *Session) Grid() *world.Grid {
	return s.grid
}

// Cells returns the resolved cells.
func (s *Session) Cells() []style.Cell {
	return s.cells
}

// Styles returns the session's style resolver.
func (s *Session) Styles() *style.Resolver {
	return s.styles
}

// Toggles returns the toggle set the session reads.
func (s *Session) Toggles() *Toggles {
	return s.toggles
}

// CellSize returns the current cell size in pixels.
func (s *Session) CellSize() float64 {
	return s.config.CellSize
}

// OnRedraw registers fn to run when the session becomes dirty from outside
// the driving goroutine.
func (s *Session) OnRedraw(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onRedraw = fn
}

// Dirty reports whether the next Render will plan a new scene.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty || s.scene == nil || s.sceneToggles != s.toggles.Version()
}

func (s *Session) markDirty() {
	s.mu.Lock()
	s.dirty = true
	s.mu.Unlock()
}

// Render returns the current scene, planning a new one when the session is
// dirty.
func (s *Session) Render() *renderer.Scene {
	if !s.Dirty() {
		return s.scene
	}
	s.mu.Lock()
	s.dirty = false
	s.mu.Unlock()

	version := s.toggles.Version()
	scene := renderer.Plan(s.ctx, renderer.Input{
		Floor:  s.floor,
		Grid:   s.grid,
		Cells:  s.cells,
		Styles: s.styles,
		Layout: s.config.Layout(),
		Hidden: s.toggles.Hidden,
		Images: imageSource{s},
	})

	s.mu.Lock()
	s.scene = scene
	s.sceneToggles = version
	s.mu.Unlock()
	return scene
}

// SetCellSize rescales the view. Style caches are dropped because cached
// values depend on the cell size.
func (s *Session) SetCellSize(size float64) {
	if size == s.config.CellSize {
		return
	}
	s.config.CellSize = size
	s.styles.SetCellSize(size)
	s.markDirty()
	ctxlog.FromContext(s.ctx).Debug("Cell size changed",
		slog.Int("floor", s.floor.ID),
		slog.Float64("size", size),
	)
}

// Toggle flips a route group and returns whether it is now shown.
func (s *Session) Toggle(group string) bool {
	shown := s.toggles.Toggle(group)
	s.markDirty()
	return shown
}

// Close detaches the session. Image loads finishing later no longer mark
// it dirty.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.onRedraw = nil
}

func (s *Session) imageLoaded(path string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.dirty = true
	notify := s.onRedraw
	s.mu.Unlock()

	ctxlog.FromContext(s.ctx).Debug("Redraw after image load", slog.String("path", path))
	if notify != nil {
		notify()
	}
}

// imageSource adapts the loader to renderer.ImageSource. Asking for an
// image that is not loaded starts the load and reports it missing.
type imageSource struct {
	s *Session
}

func (src imageSource) Image(path string) (image.Image, bool) {
	if src.s.images == nil {
		return nil, false
	}
	if img, ok := src.s.images.Image(path); ok {
		return img, true
	}
	if !src.s.requested.Has(path) {
		src.s.requested.Put(path)
		src.s.images.Request(path, src.s.imageLoaded)
	}
	return nil, false
}
