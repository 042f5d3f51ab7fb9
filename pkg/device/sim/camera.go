package sim

import (
	"errors"
	"fmt"

	"github.com/RBSystems/vcpanel-go/pkg/device"
)

// ErrUnknownCameraType is returned for a camera type the factory does not know.
var ErrUnknownCameraType = errors.New("unknown camera type")

// CameraType selects which capabilities a simulated camera has.
type CameraType string

const (
	// TypePTZ has pan/tilt/zoom only.
	TypePTZ CameraType = "ptz"

	// TypePTZFocus has pan/tilt/zoom and focus.
	TypePTZFocus CameraType = "ptz-focus"

	// TypeFixed has no controllable capability.
	TypeFixed CameraType = "fixed"
)

// CameraConfig contains configuration for creating a simulated camera.
type CameraConfig struct {
	Key  string
	Name string
	Type CameraType
}

// Motion is the current movement of a simulated camera. Each axis is -1, 0
// or 1 (left/down/out/near, stopped, right/up/in/far).
type Motion struct {
	Pan, Tilt, Zoom, Focus int
}

// Camera is a simulated camera.
type Camera struct {
	key  string
	name string
	rec  *Recorder

	motion    Motion
	homeCount int
	autoFocus int

	caps device.CameraCapabilities
}

// NewCamera builds a camera from cfg. This is the camera factory used by
// configuration loading.
func NewCamera(cfg CameraConfig, rec *Recorder) (*Camera, error) {
	c := &Camera{key: cfg.Key, name: cfg.Name, rec: rec}

	switch cfg.Type {
	case TypePTZ:
		c.caps.PTZ = (*ptz)(c)
	case TypePTZFocus:
		c.caps.PTZ = (*ptz)(c)
		c.caps.Focus = (*focus)(c)
	case TypeFixed:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCameraType, cfg.Type)
	}
	return c, nil
}

// Key implements device.Camera.
func (c *Camera) Key() string { return c.key }

// Name implements device.Camera.
func (c *Camera) Name() string { return c.name }

// Capabilities implements device.Camera.
func (c *Camera) Capabilities() device.CameraCapabilities { return c.caps }

// Motion returns the current movement.
func (c *Camera) Motion() Motion { return c.motion }

// HomeCount returns how many times the camera was sent home.
func (c *Camera) HomeCount() int { return c.homeCount }

// AutoFocusCount returns how many times auto focus was triggered.
func (c *Camera) AutoFocusCount() int { return c.autoFocus }

func (c *Camera) record(op string) { c.rec.record(c.key, op, "") }

// ptz implements device.PtzControl over the camera state.
type ptz Camera

func (p *ptz) PanLeft()      { p.motion.Pan = -1; (*Camera)(p).record("panLeft") }
func (p *ptz) PanRight()     { p.motion.Pan = 1; (*Camera)(p).record("panRight") }
func (p *ptz) PanStop()      { p.motion.Pan = 0; (*Camera)(p).record("panStop") }
func (p *ptz) TiltUp()       { p.motion.Tilt = 1; (*Camera)(p).record("tiltUp") }
func (p *ptz) TiltDown()     { p.motion.Tilt = -1; (*Camera)(p).record("tiltDown") }
func (p *ptz) TiltStop()     { p.motion.Tilt = 0; (*Camera)(p).record("tiltStop") }
func (p *ptz) ZoomIn()       { p.motion.Zoom = 1; (*Camera)(p).record("zoomIn") }
func (p *ptz) ZoomOut()      { p.motion.Zoom = -1; (*Camera)(p).record("zoomOut") }
func (p *ptz) ZoomStop()     { p.motion.Zoom = 0; (*Camera)(p).record("zoomStop") }
func (p *ptz) PositionHome() { p.homeCount++; (*Camera)(p).record("positionHome") }

// focus implements device.FocusControl over the camera state.
type focus Camera

func (f *focus) FocusNear() { f.motion.Focus = -1; (*Camera)(f).record("focusNear") }
func (f *focus) FocusFar()  { f.motion.Focus = 1; (*Camera)(f).record("focusFar") }
func (f *focus) FocusStop() { f.motion.Focus = 0; (*Camera)(f).record("focusStop") }
func (f *focus) TriggerAutoFocus() {
	f.autoFocus++
	(*Camera)(f).record("triggerAutoFocus")
}

// Compile-time interface satisfaction checks.
var (
	_ device.Camera       = (*Camera)(nil)
	_ device.PtzControl   = (*ptz)(nil)
	_ device.FocusControl = (*focus)(nil)
)
