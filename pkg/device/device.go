package device

import (
	"errors"

	"github.com/RBSystems/vcpanel-go/pkg/event"
)

// Device errors.
var (
	ErrCameraNotFound = errors.New("camera not found")
	ErrPresetNotFound = errors.New("preset not found")
)

// Camera is a selectable device.
type Camera interface {
	// Key is unique among the cameras of a codec.
	Key() string

	// Name is the display name. Names need not be unique.
	Name() string

	Capabilities() CameraCapabilities
}

// PtzControl moves a camera. Start calls run until the matching stop.
type PtzControl interface {
	PanLeft()
	PanRight()
	PanStop()
	TiltUp()
	TiltDown()
	TiltStop()
	ZoomIn()
	ZoomOut()
	ZoomStop()
	PositionHome()
}

// FocusControl adjusts camera focus.
type FocusControl interface {
	FocusNear()
	FocusFar()
	FocusStop()
	TriggerAutoFocus()
}

// Codec hosts cameras and owns the selection.
type Codec interface {
	Key() string
	Name() string

	// Cameras returns the cameras in configuration order.
	Cameras() []Camera

	// SelectedCamera returns the selected camera, or nil.
	SelectedCamera() Camera

	// SelectCamera selects the camera with key and publishes the selection.
	SelectCamera(key string) error

	// OnCameraSelected subscribes to selection changes.
	OnCameraSelected(fn func(Camera)) *event.Subscription

	// IsReady reports whether the codec finished initialising.
	IsReady() bool

	// OnReady subscribes to the one-shot ready transition.
	OnReady(fn func()) *event.Subscription

	Capabilities() CodecCapabilities
}

// AutoTrackMode switches camera auto-framing.
type AutoTrackMode interface {
	AutoModeOn()
	AutoModeOff()
	AutoModeIsOn() bool
	OnAutoModeChange(fn func(on bool)) *event.Subscription
}

// OffMode turns the camera off.
type OffMode interface {
	CameraOff()
}

// Preset is a stored camera position.
type Preset struct {
	ID          int
	Description string
	Defined     bool
}

// RoomPresets stores and recalls camera positions. Preset IDs start at 1.
type RoomPresets interface {
	NearEndPresets() []Preset
	FarEndPresets() []Preset
	SelectPreset(id int)
	StorePreset(id int, description string)
	OnPresetsChanged(fn func()) *event.Subscription
}

// FarEndControl reports whether camera controls address the far end.
type FarEndControl interface {
	ControllingFarEnd() bool
	OnFarEndChange(fn func(on bool)) *event.Subscription
}

// FindCamera returns the camera with key.
func FindCamera(cameras []Camera, key string) (Camera, error) {
	for _, c := range cameras {
		if c.Key() == key {
			return c, nil
		}
	}
	return nil, ErrCameraNotFound
}
