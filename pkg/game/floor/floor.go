// Package floor holds the input document: the shared style table, the list
// of floors and the optional toggle groups.
package floor

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"dungeonmap/pkg/engine/world"
)

// ErrFloorNotFound is returned when a floor id is not in the document.
var ErrFloorNotFound = errors.New("floor not found")

// StyleEntry is one row of a style table, keyed by marker character or
// class name.
type StyleEntry struct {
	Text  *string `yaml:"text,omitempty"`
	Label *string `yaml:"label,omitempty"`
	Class string  `yaml:"class,omitempty"`
}

// Styles maps marker characters and class names to their entries.
type Styles map[string]StyleEntry

// Merge returns a new table holding base overlaid with local. A local entry
// replaces the base entry with the same key as a whole.
func Merge(base, local Styles) Styles {
	out := make(Styles, len(base)+len(local))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range local {
		out[k] = v
	}
	return out
}

// Headers are the axis labels printed beside the floor.
type Headers struct {
	X []string `yaml:"x"`
	Y []string `yaml:"y"`
}

// NodeOverride changes the appearance of a single cell.
type NodeOverride struct {
	X     int      `yaml:"x"`
	Y     int      `yaml:"y"`
	Class string   `yaml:"class,omitempty"`
	Text  *string  `yaml:"text,omitempty"`
	Label *string  `yaml:"label,omitempty"`
	Icons []string `yaml:"icons,omitempty"`
}

// Pos returns the coordinate the override targets.
func (n NodeOverride) Pos() world.Coord {
	return world.C(n.X, n.Y)
}

// Offset is a displacement measured in cell units. DY is logical, so a
// positive value moves up the screen.
type Offset struct {
	DX float64 `yaml:"dx"`
	DY float64 `yaml:"dy"`
}

// PathDef is an author-specified route overlay.
type PathDef struct {
	Cells       [][2]int `yaml:"cells"`
	Style       string   `yaml:"style,omitempty"`
	Label       string   `yaml:"label,omitempty"`
	LabelAt     *float64 `yaml:"labelAt,omitempty"`
	ArrowHead   *bool    `yaml:"arrowHead,omitempty"`
	ArrowTail   *bool    `yaml:"arrowTail,omitempty"`
	Offset      *Offset  `yaml:"offset,omitempty"`
	StartOffset *Offset  `yaml:"startOffset,omitempty"`
	EndOffset   *Offset  `yaml:"endOffset,omitempty"`
	Direct      bool     `yaml:"direct,omitempty"`
	Toggle      string   `yaml:"toggle,omitempty"`
	Tip         string   `yaml:"tip,omitempty"`
}

// Coords returns the authored cells as logical coordinates.
func (p PathDef) Coords() []world.Coord {
	out := make([]world.Coord, len(p.Cells))
	for i, c := range p.Cells {
		out[i] = world.C(c[0], c[1])
	}
	return out
}

// Drawable reports whether the definition has enough cells to draw.
func (p PathDef) Drawable() bool {
	return len(p.Cells) >= 2
}

// Floor is one 5x5 map level.
type Floor struct {
	ID         int            `yaml:"id"`
	Name       string         `yaml:"name"`
	Title      string         `yaml:"title,omitempty"`
	ClassName  string         `yaml:"className,omitempty"`
	Notes      string         `yaml:"notes,omitempty"`
	Headers    *Headers       `yaml:"headers,omitempty"`
	Edges      []string       `yaml:"edges"`
	Styles     Styles         `yaml:"styles,omitempty"`
	Nodes      []NodeOverride `yaml:"nodes,omitempty"`
	Paths      []PathDef      `yaml:"paths,omitempty"`
	FlowArrows bool           `yaml:"flowArrows,omitempty"`
}

// Scope returns the style scope of the floor, "map-<id>" unless the floor
// names its own.
func (f *Floor) Scope() string {
	if f.ClassName != "" {
		return f.ClassName
	}
	return fmt.Sprintf("map-%d", f.ID)
}

// DisplayTitle returns the title, falling back to the name.
func (f *Floor) DisplayTitle() string {
	if f.Title != "" {
		return f.Title
	}
	return f.Name
}

// Grid decodes the floor's text rows.
func (f *Floor) Grid() *world.Grid {
	return world.Decode(f.Edges)
}

// ToggleNames returns the distinct toggle groups used by the floor's paths
// in first-use order.
func (f *Floor) ToggleNames() []string {
	var names []string
	seen := make(map[string]bool)
	for _, p := range f.Paths {
		if p.Toggle == "" || seen[p.Toggle] {
			continue
		}
		seen[p.Toggle] = true
		names = append(names, p.Toggle)
	}
	return names
}

// ToggleDef is a named visibility group and its initial state.
type ToggleDef struct {
	Name string `yaml:"name"`
	Show bool   `yaml:"show"`
}

// UnmarshalYAML accepts either a bare name, which starts hidden, or a
// {name, show} mapping.
func (t *ToggleDef) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		t.Name = strings.TrimSpace(value.Value)
		t.Show = false
		return nil
	}
	type plain ToggleDef
	var p plain
	if err := value.Decode(&p); err != nil {
		return fmt.Errorf("decoding toggle: %w", err)
	}
	*t = ToggleDef(p)
	return nil
}

// Document is the whole input: shared styles, floors and toggle groups.
type Document struct {
	Styles  Styles      `yaml:"styles,omitempty"`
	Floors  []*Floor    `yaml:"maps"`
	Toggles []ToggleDef `yaml:"toggles,omitempty"`
}

// Floor returns the floor with the given id.
func (d *Document) Floor(id int) (*Floor, error) {
	for _, f := range d.Floors {
		if f.ID == id {
			return f, nil
		}
	}
	return nil, fmt.Errorf("floor %d: %w", id, ErrFloorNotFound)
}

// Index returns the position of the floor with the given id, or -1.
func (d *Document) Index(id int) int {
	for i, f := range d.Floors {
		if f.ID == id {
			return i
		}
	}
	return -1
}

// ToggleDefs returns the document's toggle groups. Without an explicit
// list, the groups used by the first floor's paths are returned, all
// hidden.
func (d *Document) ToggleDefs() []ToggleDef {
	if d.Toggles != nil {
		out := make([]ToggleDef, len(d.Toggles))
		copy(out, d.Toggles)
		return out
	}
	if len(d.Floors) == 0 {
		return nil
	}
	var out []ToggleDef
	for _, name := range d.Floors[0].ToggleNames() {
		out = append(out, ToggleDef{Name: name})
	}
	return out
}

// StylesFor returns the shared table overlaid with the floor's own.
func (d *Document) StylesFor(f *Floor) Styles {
	return Merge(d.Styles, f.Styles)
}
