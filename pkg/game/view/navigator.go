package view

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dungeonmap/pkg/engine/ctxlog"
	"dungeonmap/pkg/engine/input"
	"dungeonmap/pkg/game/assets"
	"dungeonmap/pkg/game/floor"
	"dungeonmap/pkg/game/i18n"
	"dungeonmap/pkg/game/renderer/raster"
	"dungeonmap/pkg/game/style"
)

// NavigatorOptions configures a Navigator. Zero fields get defaults.
type NavigatorOptions struct {
	Backend   style.Backend
	Images    *assets.Loader
	Config    Config
	Toggles   *Toggles
	Catalog   *i18n.Catalog
	Fonts     *raster.Fonts
	ExportDir string
}

// Navigator moves between the floors of a document, keeping exactly one
// live Session. The interactive hosts drive it with input actions.
type Navigator struct {
	ctx  context.Context
	doc  *floor.Document
	opts NavigatorOptions

	index    int
	session  *Session
	cursor   int
	onRedraw func()
}

// NewNavigator opens the floor with id start.
func NewNavigator(ctx context.Context, doc *floor.Document, start int, opts NavigatorOptions) (*Navigator, error) {
	if len(doc.Floors) == 0 {
		return nil, fmt.Errorf("document has no floors: %w", floor.ErrFloorNotFound)
	}
	index := doc.Index(start)
	if index < 0 {
		return nil, fmt.Errorf("floor %d: %w", start, floor.ErrFloorNotFound)
	}
	if opts.Backend == nil {
		opts.Backend = style.DefaultTable()
	}
	if opts.Config.CellSize == 0 {
		opts.Config = DefaultConfig()
	}
	if opts.Toggles == nil {
		opts.Toggles = NewToggles()
	}
	if opts.Catalog == nil {
		opts.Catalog = i18n.MustLoad(i18n.DefaultLanguage)
	}
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}

	n := &Navigator{ctx: ctx, doc: doc, opts: opts}
	n.open(index)
	return n, nil
}

func (n *Navigator) open(index int) {
	if n.session != nil {
		n.session.Close()
	}
	n.index = index
	n.session = NewSession(n.ctx, n.doc, n.doc.Floors[index], n.opts.Backend, n.opts.Toggles, n.opts.Images, n.opts.Config)
	n.session.OnRedraw(n.onRedraw)

	ctxlog.FromContext(n.ctx).Debug("Floor opened",
		slog.Int("floor", n.doc.Floors[index].ID),
		slog.Int("index", index),
	)
}

// OnRedraw registers fn with the current and every later session.
func (n *Navigator) OnRedraw(fn func()) {
	n.onRedraw = fn
	n.session.OnRedraw(fn)
}

// Session returns the live session.
func (n *Navigator) Session() *Session {
	return n.session
}

// Toggles returns the toggle set shared by the navigator's sessions.
func (n *Navigator) Toggles() *Toggles {
	return n.opts.Toggles
}

// Catalog returns the catalogue used for status lines.
func (n *Navigator) Catalog() *i18n.Catalog {
	return n.opts.Catalog
}

// Close detaches the live session.
func (n *Navigator) Close() {
	n.session.Close()
}

// Result is the outcome of one action.
type Result struct {
	Message string
	Help    bool
	Quit    bool
}

// Apply performs action. Floor changes wrap around the document.
func (n *Navigator) Apply(action input.Action) (Result, error) {
	T := n.opts.Catalog.T
	switch action {
	case input.ActionNextFloor:
		n.open((n.index + 1) % len(n.doc.Floors))
	case input.ActionPrevFloor:
		n.open((n.index + len(n.doc.Floors) - 1) % len(n.doc.Floors))
	case input.ActionSizeSmall:
		n.setCellSize(Presets[0])
	case input.ActionSizeMedium:
		n.setCellSize(Presets[1])
	case input.ActionSizeLarge:
		n.setCellSize(Presets[2])
	case input.ActionZoomIn:
		n.setCellSize(StepPreset(n.opts.Config.CellSize, 1))
	case input.ActionZoomOut:
		n.setCellSize(StepPreset(n.opts.Config.CellSize, -1))
	case input.ActionCycleToggle:
		n.cycleToggle()
	case input.ActionShowAll:
		n.opts.Toggles.ShowAll()
	case input.ActionExport:
		path, err := n.Export()
		if err != nil {
			return Result{}, err
		}
		return Result{Message: T("Saved %s", path)}, nil
	case input.ActionHelp:
		return Result{Help: true, Message: T("←/→ floor  1/2/3 size  T routes  A show all  S save  Q quit")}, nil
	case input.ActionQuit:
		return Result{Quit: true}, nil
	}
	return Result{}, nil
}

func (n *Navigator) setCellSize(size float64) {
	n.opts.Config.CellSize = size
	n.session.SetCellSize(size)
}

// cycleToggle flips the group under the cursor and moves the cursor on.
func (n *Navigator) cycleToggle() {
	names := n.opts.Toggles.Names()
	if len(names) == 0 {
		return
	}
	n.cursor %= len(names)
	n.session.Toggle(names[n.cursor])
	n.cursor++
}

// Export writes the current floor as floor-<id>.png into the export
// directory and returns the file path.
func (n *Navigator) Export() (string, error) {
	if err := os.MkdirAll(n.opts.ExportDir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}
	fonts := n.opts.Fonts
	if fonts == nil {
		fonts = raster.DefaultFonts()
	}
	path := filepath.Join(n.opts.ExportDir, fmt.Sprintf("floor-%d.png", n.session.Floor().ID))
	if err := raster.Render(n.session.Render(), fonts).ExportPNG(path); err != nil {
		return "", err
	}
	ctxlog.FromContext(n.ctx).Info("Floor exported", slog.String("path", path))
	return path, nil
}

// Status returns the one-line summary shown under the map.
func (n *Navigator) Status() string {
	T := n.opts.Catalog.T
	routes := T("none")
	if names := n.opts.Toggles.Names(); len(names) > 0 {
		routes = T("all shown")
		if hidden := n.opts.Toggles.HiddenNames(); len(hidden) > 0 {
			routes = T("hidden: %s", strings.Join(hidden, ", "))
		}
	}
	return strings.Join([]string{
		T("Floor %d of %d", n.index+1, len(n.doc.Floors)),
		T("Cell size: %dpx", int(n.opts.Config.CellSize)),
		T("Routes: %s", routes),
	}, "  ")
}
