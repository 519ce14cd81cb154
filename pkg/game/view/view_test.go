package view

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"dungeonmap/pkg/game/assets"
	"dungeonmap/pkg/game/floor"
	"dungeonmap/pkg/game/renderer"
	"dungeonmap/pkg/game/style"
)

const doorDoc = `
toggles:
  - route
maps:
  - id: 1
    name: "1F"
    edges:
      - "           "
      - " oDo o o o "
    paths:
      - cells: [[0, 4], [1, 4]]
        toggle: route
`

const doorStyles = `
edge:
  D: { image: door.png, width: 20, height: 20 }
`

func loadDoc(t *testing.T, src string) *floor.Document {
	t.Helper()
	doc, err := floor.Load(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

func doorTable(t *testing.T) *style.Table {
	t.Helper()
	tbl, err := style.LoadTable(strings.NewReader(doorStyles))
	require.NoError(t, err)
	return style.Overlay(style.DefaultTable(), tbl)
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"S", renderer.SizeSmall, false},
		{"medium", renderer.SizeMedium, false},
		{"", renderer.SizeMedium, false},
		{"L", renderer.SizeLarge, false},
		{"64", 64, false},
		{"64px", 64, false},
		{"5", 0, true},
		{"huge", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseSize(tt.in)
		if tt.wantErr {
			require.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		if got != tt.want {
			t.Errorf("ParseSize(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestStepPreset(t *testing.T) {
	tests := []struct {
		size float64
		dir  int
		want float64
	}{
		{renderer.SizeSmall, 1, renderer.SizeMedium},
		{renderer.SizeMedium, 1, renderer.SizeLarge},
		{renderer.SizeLarge, 1, renderer.SizeLarge},
		{renderer.SizeMedium, -1, renderer.SizeSmall},
		{renderer.SizeSmall, -1, renderer.SizeSmall},
		{64, 1, renderer.SizeMedium},
		{64, -1, renderer.SizeSmall},
	}
	for _, tt := range tests {
		if got := StepPreset(tt.size, tt.dir); got != tt.want {
			t.Errorf("StepPreset(%v, %d) = %v, want %v", tt.size, tt.dir, got, tt.want)
		}
	}
}

func TestToggles_InitKeepsExistingState(t *testing.T) {
	tg := NewToggles()
	tg.Init([]floor.ToggleDef{{Name: "route"}, {Name: "boss", Show: true}})
	require.True(t, tg.Hidden("route"))
	require.False(t, tg.Hidden("boss"))

	require.True(t, tg.Toggle("route"))
	tg.Init([]floor.ToggleDef{{Name: "route"}, {Name: "extra"}})

	require.False(t, tg.Hidden("route"))
	require.Equal(t, []string{"route", "boss", "extra"}, tg.Names())
	require.Equal(t, []string{"extra"}, tg.HiddenNames())
}

func TestToggles_VersionAndShowAll(t *testing.T) {
	tg := NewToggles()
	tg.Init([]floor.ToggleDef{{Name: "a"}, {Name: "b"}})
	v := tg.Version()

	tg.Set("a", false)
	require.Equal(t, v, tg.Version(), "no-op set must not bump version")

	tg.ShowAll()
	require.Greater(t, tg.Version(), v)
	require.Empty(t, tg.HiddenNames())
	require.False(t, tg.Hidden("unknown"))
}

func TestSession_RenderReusesScene(t *testing.T) {
	doc := loadDoc(t, doorDoc)
	s := NewSession(context.Background(), doc, doc.Floors[0], style.DefaultTable(), NewToggles(), nil, DefaultConfig())

	first := s.Render()
	require.False(t, s.Dirty())
	require.Same(t, first, s.Render())

	s.SetCellSize(renderer.SizeLarge)
	second := s.Render()
	require.NotSame(t, first, second)
	require.Equal(t, int(5*renderer.SizeLarge+2*renderer.DefaultMargin), second.Size())
}

func TestSession_SharedTogglesInvalidateEverySession(t *testing.T) {
	doc := loadDoc(t, doorDoc)
	toggles := NewToggles()
	a := NewSession(context.Background(), doc, doc.Floors[0], style.DefaultTable(), toggles, nil, DefaultConfig())
	b := NewSession(context.Background(), doc, doc.Floors[0], style.DefaultTable(), toggles, nil, DefaultConfig())

	hidden := len(a.Render().Calls())
	b.Render()
	require.False(t, b.Dirty())

	require.True(t, a.Toggle("route"))
	require.True(t, b.Dirty())
	require.Greater(t, len(b.Render().Calls()), hidden)
}

func writePNG(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 4, 4))))
}

func edgeImage(sc *renderer.Scene, key string) image.Image {
	for _, c := range sc.Calls() {
		if e, ok := c.(renderer.EdgeCall); ok && e.Key == key {
			return e.Image
		}
	}
	return nil
}

func TestSession_ImageLoadTriggersRedraw(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "door.png"))

	ctx := context.Background()
	loader := assets.NewLoader(ctx, dir)
	doc := loadDoc(t, doorDoc)
	s := NewSession(ctx, doc, doc.Floors[0], doorTable(t), NewToggles(), loader, DefaultConfig())

	var redraws atomic.Int32
	s.OnRedraw(func() { redraws.Add(1) })

	require.Nil(t, edgeImage(s.Render(), "D"))
	loader.Wait()

	require.Equal(t, int32(1), redraws.Load())
	require.True(t, s.Dirty())
	require.NotNil(t, edgeImage(s.Render(), "D"))
}

func TestSession_ClosedIgnoresImageLoads(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "door.png"))

	ctx := context.Background()
	loader := assets.NewLoader(ctx, dir)
	doc := loadDoc(t, doorDoc)
	s := NewSession(ctx, doc, doc.Floors[0], doorTable(t), NewToggles(), loader, DefaultConfig())

	var redraws atomic.Int32
	s.OnRedraw(func() { redraws.Add(1) })
	s.Render()
	s.Close()
	loader.Wait()

	require.Zero(t, redraws.Load())
	require.False(t, s.Dirty())
}

// gatedFS holds every Open until release is closed.
type gatedFS struct {
	fs.FS
	release chan struct{}
}

func (g gatedFS) Open(name string) (fs.File, error) {
	<-g.release
	return g.FS.Open(name)
}

func gatedDoorFS(t *testing.T) gatedFS {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	return gatedFS{
		FS:      fstest.MapFS{"door.png": {Data: buf.Bytes()}},
		release: make(chan struct{}),
	}
}

func TestSession_PendingLoadReachesNextSession(t *testing.T) {
	ctx := context.Background()
	fsys := gatedDoorFS(t)
	loader := assets.NewLoaderFS(ctx, fsys)
	doc := loadDoc(t, doorDoc)
	toggles := NewToggles()

	a := NewSession(ctx, doc, doc.Floors[0], doorTable(t), toggles, loader, DefaultConfig())
	require.Nil(t, edgeImage(a.Render(), "D"))
	a.Close()

	b := NewSession(ctx, doc, doc.Floors[0], doorTable(t), toggles, loader, DefaultConfig())
	var redraws atomic.Int32
	b.OnRedraw(func() { redraws.Add(1) })
	require.Nil(t, edgeImage(b.Render(), "D"))
	// Planning again while the load is pending must not subscribe twice.
	b.SetCellSize(renderer.SizeLarge)
	b.Render()

	close(fsys.release)
	loader.Wait()

	require.Equal(t, int32(1), redraws.Load())
	require.True(t, b.Dirty())
	require.False(t, a.Dirty())
	require.NotNil(t, edgeImage(b.Render(), "D"))
}

func TestSession_SharedLoadNotifiesEverySession(t *testing.T) {
	ctx := context.Background()
	fsys := gatedDoorFS(t)
	loader := assets.NewLoaderFS(ctx, fsys)
	doc := loadDoc(t, doorDoc)

	var redraws [2]atomic.Int32
	sessions := make([]*Session, 2)
	for i := range sessions {
		sessions[i] = NewSession(ctx, doc, doc.Floors[0], doorTable(t), NewToggles(), loader, DefaultConfig())
		sessions[i].OnRedraw(func() { redraws[i].Add(1) })
		sessions[i].Render()
	}

	close(fsys.release)
	loader.Wait()

	for i, s := range sessions {
		if got := redraws[i].Load(); got != 1 {
			t.Errorf("session %d redraws = %d, want 1", i, got)
		}
		require.True(t, s.Dirty())
	}
}
