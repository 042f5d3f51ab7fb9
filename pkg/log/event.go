package log

import "time"

// Event represents a panel log event captured at any layer.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies one driver run (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Layer where the event was captured.
	Layer Layer `cbor:"3,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// Panel is the configured panel name.
	Panel string `cbor:"5,keyasint,omitempty"`

	// CameraKey is the selected camera when the event occurred.
	CameraKey string `cbor:"6,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Input       *InputEvent       `cbor:"10,keyasint,omitempty"`
	Binding     *BindingEvent     `cbor:"11,keyasint,omitempty"`
	Mode        *ModeEvent        `cbor:"12,keyasint,omitempty"`
	Selection   *SelectionEvent   `cbor:"13,keyasint,omitempty"`
	Preset      *PresetEvent      `cbor:"14,keyasint,omitempty"`
	StateChange *StateChangeEvent `cbor:"15,keyasint,omitempty"`
	Error       *ErrorEventData   `cbor:"16,keyasint,omitempty"`
}

// Layer indicates which part of the panel captured the event.
type Layer uint8

const (
	// LayerSurface is operator input on the control surface.
	LayerSurface Layer = 0
	// LayerDriver is the binding and feedback logic.
	LayerDriver Layer = 1
	// LayerDevice is the device layer (codec and cameras).
	LayerDevice Layer = 2
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerSurface:
		return "SURFACE"
	case LayerDriver:
		return "DRIVER"
	case LayerDevice:
		return "DEVICE"
	default:
		return "UNKNOWN"
	}
}

// ParseLayer parses a layer name (case-sensitive upper case).
func ParseLayer(s string) (Layer, bool) {
	for l := LayerSurface; l <= LayerDevice; l++ {
		if l.String() == s {
			return l, true
		}
	}
	return 0, false
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryInput indicates an operator transition.
	CategoryInput Category = 0
	// CategoryBinding indicates a control binding swap.
	CategoryBinding Category = 1
	// CategoryMode indicates a mode interlock transition.
	CategoryMode Category = 2
	// CategorySelection indicates a camera selection.
	CategorySelection Category = 3
	// CategoryPreset indicates preset recall, store or name refresh.
	CategoryPreset Category = 4
	// CategoryState indicates a lifecycle state change.
	CategoryState Category = 5
	// CategoryError indicates an error event.
	CategoryError Category = 6
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryInput:
		return "INPUT"
	case CategoryBinding:
		return "BINDING"
	case CategoryMode:
		return "MODE"
	case CategorySelection:
		return "SELECTION"
	case CategoryPreset:
		return "PRESET"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseCategory parses a category name.
func ParseCategory(s string) (Category, bool) {
	for c := CategoryInput; c <= CategoryError; c++ {
		if c.String() == s {
			return c, true
		}
	}
	return 0, false
}

// InputEvent captures one operator transition.
type InputEvent struct {
	// Join is the channel number (list id for row input).
	Join uint32 `cbor:"1,keyasint"`

	// Row is the list row, 0 for plain joins.
	Row int `cbor:"2,keyasint,omitempty"`

	// Value is true for press, false for release.
	Value bool `cbor:"3,keyasint"`

	// Bound indicates whether an action was bound at the time.
	Bound bool `cbor:"4,keyasint"`
}

// BindingEvent captures a control binding swap.
type BindingEvent struct {
	// Bound lists joins that received an action.
	Bound []uint32 `cbor:"1,keyasint,omitempty"`

	// Cleared lists joins left without an action.
	Cleared []uint32 `cbor:"2,keyasint,omitempty"`

	// Capabilities of the camera the controls were bound to.
	Capabilities string `cbor:"3,keyasint,omitempty"`
}

// ModeEvent captures a mode interlock transition.
type ModeEvent struct {
	OldMode string `cbor:"1,keyasint,omitempty"`
	NewMode string `cbor:"2,keyasint"`

	// Silent is true when the transition was not made visible.
	Silent bool `cbor:"3,keyasint,omitempty"`
}

// SelectionEvent captures a camera selection reaching the panel.
type SelectionEvent struct {
	CameraKey  string `cbor:"1,keyasint"`
	CameraName string `cbor:"2,keyasint,omitempty"`

	// Row is the list row showing the camera, 0 if it is beyond capacity.
	Row int `cbor:"3,keyasint,omitempty"`
}

// PresetAction classifies preset events.
type PresetAction uint8

const (
	// PresetRecall indicates a preset was recalled (tap).
	PresetRecall PresetAction = 0
	// PresetStore indicates a preset was stored (hold).
	PresetStore PresetAction = 1
	// PresetNames indicates preset names were pushed to the surface.
	PresetNames PresetAction = 2
)

// String returns the preset action name.
func (p PresetAction) String() string {
	switch p {
	case PresetRecall:
		return "RECALL"
	case PresetStore:
		return "STORE"
	case PresetNames:
		return "NAMES"
	default:
		return "UNKNOWN"
	}
}

// PresetEvent captures preset handling.
type PresetEvent struct {
	Action PresetAction `cbor:"1,keyasint"`

	// ID is the preset slot (1-based), 0 for name refreshes.
	ID int `cbor:"2,keyasint,omitempty"`

	// FarEnd indicates the far-end preset list was used.
	FarEnd bool `cbor:"3,keyasint,omitempty"`

	// Names are the labels pushed for a name refresh.
	Names []string `cbor:"4,keyasint,omitempty"`
}

// StateChangeEvent captures lifecycle changes.
type StateChangeEvent struct {
	// Entity being changed.
	Entity StateEntity `cbor:"1,keyasint"`

	// OldState is the previous state (may be empty).
	OldState string `cbor:"2,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"3,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"4,keyasint,omitempty"`
}

// StateEntity indicates what entity changed state.
type StateEntity uint8

const (
	// StateEntityCodec indicates codec readiness.
	StateEntityCodec StateEntity = 0
	// StateEntityVisibility indicates the panel was shown or hidden.
	StateEntityVisibility StateEntity = 1
	// StateEntityAutoMode indicates device-reported auto mode.
	StateEntityAutoMode StateEntity = 2
	// StateEntityFarEnd indicates device-reported far-end control.
	StateEntityFarEnd StateEntity = 3
)

// String returns the state entity name.
func (s StateEntity) String() string {
	switch s {
	case StateEntityCodec:
		return "CODEC"
	case StateEntityVisibility:
		return "VISIBILITY"
	case StateEntityAutoMode:
		return "AUTO_MODE"
	case StateEntityFarEnd:
		return "FAR_END"
	default:
		return "UNKNOWN"
	}
}

// ErrorEventData captures errors absorbed at any layer.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"3,keyasint,omitempty"`
}
