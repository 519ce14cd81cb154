package input

import (
	"sort"
	"time"
)

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceKeyboard
	DeviceTerminal
)

// Action represents a high-level viewer command.
type Action int

const (
	ActionNone Action = iota

	// Floor navigation
	ActionNextFloor
	ActionPrevFloor

	// Cell size presets
	ActionSizeSmall
	ActionSizeMedium
	ActionSizeLarge
	ActionZoomIn
	ActionZoomOut

	// Overlays
	ActionCycleToggle
	ActionShowAll

	// Meta
	ActionExport
	ActionHelp
	ActionQuit
)

// Intent is the 4th-layer, high-level description of what the user wants.
type Intent struct {
	Action Action
}

// RawInput is the 1st-layer event emitted directly from an input device.
// Code is a device-specific identifier (e.g. "arrow_left", "q").
type RawInput struct {
	Device    Device
	Code      string
	Timestamp time.Time
}

// DebouncedInput is the 2nd-layer representation after debouncing.
// Both the window and the terminal deliver discrete key presses, so this
// is a thin wrapper kept to make the layering explicit.
type DebouncedInput struct {
	Device Device
	Code   string
}

// NewDebouncedInput converts a raw event to a debounced event.
func NewDebouncedInput(raw RawInput) DebouncedInput {
	return DebouncedInput{
		Device: raw.Device,
		Code:   raw.Code,
	}
}

// reserved codes cannot be rebound.
var reserved = map[string]bool{
	"arrow_left":  true,
	"arrow_right": true,
	"escape":      true,
}

// defaultBindings maps raw codes to actions (3rd-layer bindings).
// Multiple codes may point to the same Action.
var defaultBindings = map[string]Action{
	"arrow_right": ActionNextFloor,
	"arrow_down":  ActionNextFloor,
	"l":           ActionNextFloor,
	"n":           ActionNextFloor,
	"arrow_left":  ActionPrevFloor,
	"arrow_up":    ActionPrevFloor,
	"h":           ActionPrevFloor,
	"p":           ActionPrevFloor,

	"1": ActionSizeSmall,
	"2": ActionSizeMedium,
	"3": ActionSizeLarge,
	"=": ActionZoomIn,
	"+": ActionZoomIn,
	"-": ActionZoomOut,

	"t": ActionCycleToggle,
	"a": ActionShowAll,

	"s": ActionExport,
	"?": ActionHelp,

	"q":      ActionQuit,
	"escape": ActionQuit,
}

// Bindings holds the code to action table of one viewer.
type Bindings struct {
	codes map[string]Action
}

// DefaultBindings returns a fresh copy of the built-in bindings.
func DefaultBindings() *Bindings {
	b := &Bindings{codes: make(map[string]Action, len(defaultBindings))}
	for code, act := range defaultBindings {
		b.codes[code] = act
	}
	return b
}

// MapToIntent is the 3rd+4th layer: it applies the bindings to a debounced
// input and returns a high-level Intent.
func (b *Bindings) MapToIntent(ev DebouncedInput) Intent {
	if act, ok := b.codes[ev.Code]; ok {
		return Intent{Action: act}
	}
	return Intent{Action: ActionNone}
}

// Codes returns the codes bound to each action, sorted so help screens
// stay stable.
func (b *Bindings) Codes() map[Action][]string {
	result := make(map[Action][]string)
	for code, act := range b.codes {
		result[act] = append(result[act], code)
	}
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}

// Bind replaces every non-reserved binding of action with code. Reserved
// codes keep their meaning.
func (b *Bindings) Bind(action Action, code string) {
	for c, a := range b.codes {
		if a == action && !reserved[c] {
			delete(b.codes, c)
		}
	}
	if code != "" && !reserved[code] {
		b.codes[code] = action
	}
}

// ActionName returns a human-friendly name for an action.
func ActionName(a Action) string {
	switch a {
	case ActionNextFloor:
		return "Next floor"
	case ActionPrevFloor:
		return "Previous floor"
	case ActionSizeSmall:
		return "Small cells"
	case ActionSizeMedium:
		return "Medium cells"
	case ActionSizeLarge:
		return "Large cells"
	case ActionZoomIn:
		return "Zoom in"
	case ActionZoomOut:
		return "Zoom out"
	case ActionCycleToggle:
		return "Cycle route group"
	case ActionShowAll:
		return "Show all routes"
	case ActionExport:
		return "Export PNG"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "None"
	}
}
