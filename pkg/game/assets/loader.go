// Package assets loads edge decoration images in the background.
package assets

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/zyedidia/generic/mapset"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"dungeonmap/pkg/engine/ctxlog"
)

// Loader decodes images on background goroutines and keeps them for the
// life of the process. A path is fetched at most once; a failed load is
// remembered and never retried.
type Loader struct {
	open   func(path string) (io.ReadCloser, error)
	logger *slog.Logger

	mu      sync.Mutex
	images  map[string]image.Image
	pending map[string][]func(path string)
	failed  mapset.Set[string]

	wg sync.WaitGroup
}

// NewLoader returns a loader resolving relative paths against root.
func NewLoader(ctx context.Context, root string) *Loader {
	return newLoader(ctx, func(path string) (io.ReadCloser, error) {
		if !filepath.IsAbs(path) && root != "" {
			path = filepath.Join(root, path)
		}
		return os.Open(path)
	})
}

// NewLoaderFS returns a loader reading image paths from fsys.
func NewLoaderFS(ctx context.Context, fsys fs.FS) *Loader {
	return newLoader(ctx, func(path string) (io.ReadCloser, error) {
		return fsys.Open(path)
	})
}

func newLoader(ctx context.Context, open func(string) (io.ReadCloser, error)) *Loader {
	return &Loader{
		open:    open,
		logger:  ctxlog.FromContext(ctx),
		images:  make(map[string]image.Image),
		pending: make(map[string][]func(string)),
		failed:  mapset.New[string](),
	}
}

// Image returns a loaded image without requesting it.
func (l *Loader) Image(path string) (image.Image, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	img, ok := l.images[path]
	return img, ok
}

// Request starts loading path unless it is loaded or known to fail. A
// path already loading gains notify as another subscriber. Every
// subscriber runs on the loading goroutine after a successful decode;
// failures are only logged.
func (l *Loader) Request(path string, notify func(path string)) {
	l.mu.Lock()
	if _, ok := l.images[path]; ok || l.failed.Has(path) {
		l.mu.Unlock()
		return
	}
	subs, loading := l.pending[path]
	if notify != nil {
		subs = append(subs, notify)
	}
	l.pending[path] = subs
	if loading {
		l.mu.Unlock()
		return
	}
	l.wg.Add(1)
	l.mu.Unlock()

	go func() {
		defer l.wg.Done()

		img, err := l.decode(path)

		l.mu.Lock()
		subs := l.pending[path]
		delete(l.pending, path)
		if err != nil {
			l.failed.Put(path)
		} else {
			l.images[path] = img
		}
		l.mu.Unlock()

		if err != nil {
			l.logger.Debug("Image load failed", slog.String("path", path), slog.Any("error", err))
			return
		}
		l.logger.Debug("Image loaded", slog.String("path", path))
		for _, notify := range subs {
			notify(path)
		}
	}()
}

// Wait blocks until every requested load has finished.
func (l *Loader) Wait() {
	l.wg.Wait()
}

func (l *Loader) decode(path string) (image.Image, error) {
	f, err := l.open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}
