package style

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default_styles.yaml
var defaultStyles []byte

// CellUnit is the suffix of values measured in cell sizes: "0.05cs" is five
// percent of the current cell pixel size.
const CellUnit = "cs"

// Wildcard is the key of the entry every edge lookup starts from. Cell
// looks apply it once beneath their class list.
const Wildcard = "*"

// Backend answers style lookups. Implementations return the properties
// resolved for the given cell pixel size; keys they do not know yield an
// empty record.
type Backend interface {
	Lookup(scope string, kind Kind, key string, cellSize float64) Record
}

// Section maps style keys to records.
type Section map[string]Record

// Sections groups the three kinds of style.
type Sections struct {
	Edge Section `yaml:"edge,omitempty"`
	Path Section `yaml:"path,omitempty"`
	Cell Section `yaml:"cell,omitempty"`
}

func (s *Sections) section(kind Kind) Section {
	switch kind {
	case KindEdge:
		return s.Edge
	case KindPath:
		return s.Path
	case KindCell:
		return s.Cell
	}
	return nil
}

// Table is a Backend read from YAML. Scopes hold per-floor overrides keyed
// by floor scope, e.g. "map-7".
type Table struct {
	Sections `yaml:",inline"`
	Scopes   map[string]Sections `yaml:"scopes,omitempty"`
}

// LoadTable parses a style table.
func LoadTable(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading style table: %w", err)
	}

	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing style table: %w", err)
	}
	return &t, nil
}

// LoadTableFile parses the style table at path and layers it over the
// built-in defaults.
func LoadTableFile(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening style table: %w", err)
	}
	defer file.Close()

	user, err := LoadTable(file)
	if err != nil {
		return nil, err
	}
	return Overlay(DefaultTable(), user), nil
}

// DefaultTable returns the built-in style table.
func DefaultTable() *Table {
	t, err := LoadTable(bytes.NewReader(defaultStyles))
	if err != nil {
		panic(fmt.Sprintf("style: embedded default table: %v", err))
	}
	return t
}

// Overlay returns a table where top's properties win over base's,
// property by property.
func Overlay(base, top *Table) *Table {
	out := &Table{Scopes: make(map[string]Sections)}
	overlaySections(&out.Sections, &base.Sections)
	overlaySections(&out.Sections, &top.Sections)
	for _, src := range []*Table{base, top} {
		for name, sec := range src.Scopes {
			dst := out.Scopes[name]
			overlaySections(&dst, &sec)
			out.Scopes[name] = dst
		}
	}
	return out
}

func overlaySections(dst, src *Sections) {
	dst.Edge = overlaySection(dst.Edge, src.Edge)
	dst.Path = overlaySection(dst.Path, src.Path)
	dst.Cell = overlaySection(dst.Cell, src.Cell)
}

func overlaySection(dst, src Section) Section {
	if dst == nil {
		dst = make(Section)
	}
	for key, rec := range src {
		merged := make(Record)
		merged.merge(dst[key])
		merged.merge(rec)
		dst[key] = merged
	}
	return dst
}

// Lookup resolves key within kind. For edges the wildcard entry is applied
// first, then the key itself; scope entries win over unscoped ones at each
// step. Values in cell units are converted to pixels.
func (t *Table) Lookup(scope string, kind Kind, key string, cellSize float64) Record {
	var layers []Section
	layers = append(layers, t.Sections.section(kind))
	if sc, ok := t.Scopes[scope]; ok && scope != "" {
		layers = append(layers, sc.section(kind))
	}

	keys := []string{key}
	if kind == KindEdge && key != Wildcard {
		keys = []string{Wildcard, key}
	}

	out := make(Record)
	for _, k := range keys {
		for _, sec := range layers {
			if rec, ok := sec[k]; ok {
				out.merge(rec)
			}
		}
	}
	for k, v := range out {
		out[k] = resolveUnits(v, cellSize)
	}
	return out
}

// Has reports whether kind defines key outside the wildcard.
func (t *Table) Has(scope string, kind Kind, key string) bool {
	if _, ok := t.Sections.section(kind)[key]; ok {
		return true
	}
	if sc, ok := t.Scopes[scope]; ok {
		_, ok := sc.section(kind)[key]
		return ok
	}
	return false
}

func resolveUnits(v string, cellSize float64) string {
	s := strings.TrimSpace(v)
	if !strings.HasSuffix(s, CellUnit) {
		return v
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(s, CellUnit), 64)
	if err != nil {
		return v
	}
	return strconv.FormatFloat(f*cellSize, 'f', -1, 64)
}
