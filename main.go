package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dungeonmap/pkg/engine/ctxlog"
	"dungeonmap/pkg/engine/input"
	"dungeonmap/pkg/engine/terminal"
	"dungeonmap/pkg/game/assets"
	"dungeonmap/pkg/game/floor"
	"dungeonmap/pkg/game/i18n"
	"dungeonmap/pkg/game/renderer/ebiten"
	"dungeonmap/pkg/game/renderer/raster"
	"dungeonmap/pkg/game/renderer/tui"
	"dungeonmap/pkg/game/style"
	"dungeonmap/pkg/game/view"
)

type options struct {
	data    string
	styles  string
	floorID int
	all     bool
	size    string
	format  string
	out     string
	show    string
	hide    string
	lang    string
	font    string
	verbose bool
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.data, "data", "", "floor document (YAML or JSON); built-in floors when empty")
	flag.StringVar(&o.styles, "styles", "", "style table (YAML) layered over the built-in styles")
	flag.IntVar(&o.floorID, "floor", 1, "floor id to render")
	flag.BoolVar(&o.all, "all", false, "render every floor (png and text formats)")
	flag.StringVar(&o.size, "size", "M", "cell size: S, M, L or a pixel count")
	flag.StringVar(&o.format, "format", "png", "output: png, text, view (window) or browse (terminal)")
	flag.StringVar(&o.out, "out", "", "output file (png or text), or png directory with -all")
	flag.StringVar(&o.show, "show", "", "comma-separated route groups to show")
	flag.StringVar(&o.hide, "hide", "", "comma-separated route groups to hide")
	flag.StringVar(&o.lang, "lang", os.Getenv("LANG"), "interface language")
	flag.StringVar(&o.font, "font", "", "TrueType font for map text, needed for CJK glyphs")
	flag.BoolVar(&o.verbose, "v", false, "debug logging")
	flag.Parse()
	return o
}

func main() {
	o := parseFlags()

	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	ctx := ctxlog.WithLogger(context.Background(), logger)

	if err := run(ctx, o); err != nil {
		logger.Error("dungeonmap failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, o options) error {
	logger := ctxlog.FromContext(ctx)

	doc, err := loadDocument(o.data)
	if err != nil {
		return err
	}
	backend, err := loadStyles(o.styles)
	if err != nil {
		return err
	}
	size, err := view.ParseSize(o.size)
	if err != nil {
		return err
	}
	catalog, err := i18n.Load(o.lang)
	if err != nil {
		logger.Debug("Falling back to default language", slog.String("lang", o.lang))
		catalog = i18n.MustLoad(i18n.DefaultLanguage)
	}
	if doc.Index(o.floorID) < 0 {
		return errors.New(catalog.T("Unknown floor %d", o.floorID))
	}

	fonts := raster.DefaultFonts()
	var hudFont []byte
	if o.font != "" {
		if fonts, err = raster.LoadFonts(o.font); err != nil {
			return err
		}
		if hudFont, err = os.ReadFile(o.font); err != nil {
			return fmt.Errorf("reading font: %w", err)
		}
	}

	toggles := view.NewToggles()
	toggles.Init(doc.ToggleDefs())
	for _, name := range splitList(o.show) {
		toggles.Set(name, true)
	}
	for _, name := range splitList(o.hide) {
		toggles.Set(name, false)
	}

	imageRoot := "."
	if o.data != "" {
		imageRoot = filepath.Dir(o.data)
	}
	images := assets.NewLoader(ctx, imageRoot)

	cfg := view.DefaultConfig()
	cfg.CellSize = size

	floors := []*floor.Floor{mustFloor(doc, o.floorID)}
	if o.all {
		floors = doc.Floors
	}

	switch o.format {
	case "png":
		return exportPNG(ctx, doc, floors, backend, toggles, images, fonts, cfg, o)
	case "text":
		if o.out == "" {
			return printText(ctx, os.Stdout, terminal.IsTerminal(os.Stdout), doc, floors, backend, toggles, cfg)
		}
		file, err := os.Create(o.out)
		if err != nil {
			return fmt.Errorf("creating text dump: %w", err)
		}
		defer file.Close()
		return printText(ctx, file, false, doc, floors, backend, toggles, cfg)
	case "view", "browse":
		nav, err := view.NewNavigator(ctx, doc, o.floorID, view.NavigatorOptions{
			Backend: backend,
			Images:  images,
			Config:  cfg,
			Toggles: toggles,
			Catalog: catalog,
			Fonts:   fonts,
		})
		if err != nil {
			return err
		}
		if o.format == "browse" {
			return browse(nav)
		}
		viewer, err := ebiten.New(ctx, nav, ebiten.Options{Fonts: fonts, HUDFont: hudFont})
		if err != nil {
			return err
		}
		return ebiten.Run(viewer)
	}
	return fmt.Errorf("unknown format %q", o.format)
}

func loadDocument(path string) (*floor.Document, error) {
	if path == "" {
		return floor.Default()
	}
	return floor.LoadFile(path)
}

func loadStyles(path string) (style.Backend, error) {
	if path == "" {
		return style.DefaultTable(), nil
	}
	return style.LoadTableFile(path)
}

func mustFloor(doc *floor.Document, id int) *floor.Floor {
	f, err := doc.Floor(id)
	if err != nil {
		panic(err)
	}
	return f
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// exportPNG waits for edge images before rasterising so the files are
// complete.
func exportPNG(ctx context.Context, doc *floor.Document, floors []*floor.Floor, backend style.Backend, toggles *view.Toggles, images *assets.Loader, fonts *raster.Fonts, cfg view.Config, o options) error {
	logger := ctxlog.FromContext(ctx)

	if o.all && o.out != "" {
		if err := os.MkdirAll(o.out, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	for _, f := range floors {
		s := view.NewSession(ctx, doc, f, backend, toggles, images, cfg)
		s.Render()
		images.Wait()

		path := outputPath(o, f)
		if err := raster.Render(s.Render(), fonts).ExportPNG(path); err != nil {
			return err
		}
		s.Close()
		logger.Info("Floor exported", slog.Int("floor", f.ID), slog.String("path", path))
	}
	return nil
}

func outputPath(o options, f *floor.Floor) string {
	name := fmt.Sprintf("floor-%d.png", f.ID)
	switch {
	case o.out == "":
		return name
	case o.all:
		return filepath.Join(o.out, name)
	}
	return o.out
}

func printText(ctx context.Context, w io.Writer, colored bool, doc *floor.Document, floors []*floor.Floor, backend style.Backend, toggles *view.Toggles, cfg view.Config) error {
	opts := tui.Options{Color: colored, Hidden: toggles.Hidden}
	if colored {
		opts.Width = terminal.GetWidth()
	}
	printer := tui.New(opts)
	for _, f := range floors {
		s := view.NewSession(ctx, doc, f, backend, toggles, nil, cfg)
		if err := printer.Render(w, f, s.Grid(), s.Cells(), s.Styles()); err != nil {
			return fmt.Errorf("printing floor %d: %w", f.ID, err)
		}
		s.Close()
	}
	return nil
}

// browse is the terminal counterpart of the window: one key per action,
// the floor redrawn after each.
func browse(nav *view.Navigator) error {
	if !terminal.Interactive() {
		return errors.New("browse needs an interactive terminal")
	}
	defer nav.Close()

	bindings := input.DefaultBindings()
	message := ""
	for {
		s := nav.Session()
		printer := tui.New(tui.Options{Color: true, Width: terminal.GetWidth(), Hidden: nav.Toggles().Hidden})

		var b strings.Builder
		b.WriteString(terminal.ClearScreen())
		if err := printer.Render(&b, s.Floor(), s.Grid(), s.Cells(), s.Styles()); err != nil {
			return err
		}
		fmt.Fprintf(&b, "\n%s\n", nav.Status())
		if message != "" {
			fmt.Fprintf(&b, "%s\n", message)
		}
		// Raw mode is only on while a key is read, so plain newlines work.
		if _, err := io.WriteString(os.Stdout, b.String()); err != nil {
			return err
		}

		raw, err := input.ReadKey()
		if err != nil {
			return err
		}
		intent := bindings.MapToIntent(input.NewDebouncedInput(raw))
		res, err := nav.Apply(intent.Action)
		if err != nil {
			message = err.Error()
			continue
		}
		if res.Quit {
			return nil
		}
		message = res.Message
	}
}
