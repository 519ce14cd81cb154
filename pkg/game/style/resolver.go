package style

import (
	"strings"

	"github.com/zyedidia/generic/cache"
)

// cacheCapacity bounds each style cache. A floor uses a handful of keys.
const cacheCapacity = 128

// Resolver memoises style lookups for one view session. Cached values
// depend on the cell size, so every cache is dropped when it changes.
type Resolver struct {
	backend  Backend
	scope    string
	cellSize float64

	edges *cache.Cache[string, EdgeStyle]
	paths *cache.Cache[string, Record]
	looks *cache.Cache[string, Look]

	lookups int
}

// NewResolver returns a resolver for one floor scope at the given cell size.
func NewResolver(backend Backend, scope string, cellSize float64) *Resolver {
	r := &Resolver{backend: backend, scope: scope, cellSize: cellSize}
	r.Reset()
	return r
}

// Reset drops every cached style.
func (r *Resolver) Reset() {
	r.edges = cache.New[string, EdgeStyle](cacheCapacity)
	r.paths = cache.New[string, Record](cacheCapacity)
	r.looks = cache.New[string, Look](cacheCapacity)
}

// CellSize returns the scale styles are resolved for.
func (r *Resolver) CellSize() float64 {
	return r.cellSize
}

// SetCellSize changes the scale and invalidates the caches when it differs.
func (r *Resolver) SetCellSize(size float64) {
	if size == r.cellSize {
		return
	}
	r.cellSize = size
	r.Reset()
}

// Lookups returns how many times the backend has been consulted.
func (r *Resolver) Lookups() int {
	return r.lookups
}

func (r *Resolver) lookup(kind Kind, key string) Record {
	r.lookups++
	return r.backend.Lookup(r.scope, kind, key, r.cellSize)
}

// Edge returns the style of a connector character or a fixed edge key.
func (r *Resolver) Edge(key string) EdgeStyle {
	if s, ok := r.edges.Get(key); ok {
		return s
	}
	s := NewEdgeStyle(r.lookup(KindEdge, key))
	r.edges.Put(key, s)
	return s
}

// FlowArrow returns the style of composed flow arrow vectors.
func (r *Resolver) FlowArrow() PathStyle {
	return FlowArrowStyle(r.pathRecord(KindEdge, FlowArrowKey))
}

// Path resolves a space separated list of path style names. Later names
// win property by property.
func (r *Resolver) Path(names string) PathStyle {
	var records []Record
	for _, name := range PathStyleNames(names) {
		records = append(records, r.pathRecord(KindPath, name))
	}
	return NewPathStyle(MergePathRecords(records...))
}

func (r *Resolver) pathRecord(kind Kind, name string) Record {
	key := string(kind) + ":" + name
	if rec, ok := r.paths.Get(key); ok {
		return rec
	}
	rec := r.lookup(kind, name)
	r.paths.Put(key, rec)
	return rec
}

// Look returns the merged appearance of a class list; later classes win.
func (r *Resolver) Look(classes []string) Look {
	key := strings.Join(classes, " ")
	if l, ok := r.looks.Get(key); ok {
		return l
	}
	merged := make(Record)
	for _, cls := range append([]string{Wildcard}, classes...) {
		merged.merge(r.lookup(KindCell, cls))
	}
	l := NewLook(merged)
	r.looks.Put(key, l)
	return l
}
