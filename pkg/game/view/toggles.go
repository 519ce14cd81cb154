package view

import (
	"slices"
	"sync"

	"github.com/zyedidia/generic/mapset"

	"dungeonmap/pkg/game/floor"
)

// Toggles is the set of hidden route groups, shared by every view of a
// document.
type Toggles struct {
	mu      sync.Mutex
	names   []string
	known   mapset.Set[string]
	hidden  mapset.Set[string]
	version int
}

// NewToggles returns an empty toggle set.
func NewToggles() *Toggles {
	return &Toggles{
		known:  mapset.New[string](),
		hidden: mapset.New[string](),
	}
}

// Init registers groups with their initial visibility. A group seen before
// keeps its current state.
func (t *Toggles) Init(defs []floor.ToggleDef) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, d := range defs {
		if d.Name == "" || t.known.Has(d.Name) {
			continue
		}
		t.known.Put(d.Name)
		t.names = append(t.names, d.Name)
		if !d.Show {
			t.hidden.Put(d.Name)
		}
		t.version++
	}
}

// Hidden reports whether group is switched off. Unknown groups are shown.
func (t *Toggles) Hidden(group string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.hidden.Has(group)
}

// Set shows or hides group.
func (t *Toggles) Set(group string, show bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if show == !t.hidden.Has(group) {
		return
	}
	if show {
		t.hidden.Remove(group)
	} else {
		t.hidden.Put(group)
	}
	t.version++
}

// Toggle flips group and returns whether it is now shown.
func (t *Toggles) Toggle(group string) bool {
	show := t.Hidden(group)
	t.Set(group, show)
	return show
}

// ShowAll clears every hidden group.
func (t *Toggles) ShowAll() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.hidden.Size() == 0 {
		return
	}
	t.hidden.Clear()
	t.version++
}

// Names returns the registered groups in registration order.
func (t *Toggles) Names() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.names)
}

// HiddenNames returns the hidden registered groups in registration order.
func (t *Toggles) HiddenNames() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	var out []string
	for _, n := range t.names {
		if t.hidden.Has(n) {
			out = append(out, n)
		}
	}
	return out
}

// Version changes whenever visibility changes.
func (t *Toggles) Version() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.version
}
