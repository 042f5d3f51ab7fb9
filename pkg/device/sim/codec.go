package sim

import (
	"fmt"
	"strconv"

	"github.com/RBSystems/vcpanel-go/pkg/device"
	"github.com/RBSystems/vcpanel-go/pkg/event"
	"github.com/RBSystems/vcpanel-go/pkg/feedback"
)

// CodecConfig contains configuration for creating a simulated codec.
type CodecConfig struct {
	Key  string
	Name string

	// Capabilities
	AutoMode bool
	Off      bool
	Presets  bool
	FarEnd   bool

	// Initial preset lists.
	NearEndPresets []device.Preset
	FarEndPresets  []device.Preset
}

// Codec is a simulated codec hosting simulated cameras.
type Codec struct {
	key  string
	name string
	rec  *Recorder

	cameras  []device.Camera
	selected device.Camera
	ready    bool

	autoOn   feedback.Value
	farOn    feedback.Value
	offCount int

	nearPresets []device.Preset
	farPresets  []device.Preset

	selectedHub event.Hub[device.Camera]
	readyHub    event.Hub[struct{}]
	presetsHub  event.Hub[struct{}]

	caps device.CodecCapabilities
}

// NewCodec creates a codec hosting cameras. The first camera starts
// selected. The codec is not ready until SetReady is called.
func NewCodec(cfg CodecConfig, cameras []device.Camera, rec *Recorder) *Codec {
	c := &Codec{
		key:         cfg.Key,
		name:        cfg.Name,
		rec:         rec,
		cameras:     cameras,
		nearPresets: clonePresets(cfg.NearEndPresets),
		farPresets:  clonePresets(cfg.FarEndPresets),
	}
	if len(cameras) > 0 {
		c.selected = cameras[0]
	}

	if cfg.AutoMode {
		c.caps.AutoMode = (*autoMode)(c)
	}
	if cfg.Off {
		c.caps.Off = (*offMode)(c)
	}
	if cfg.Presets {
		c.caps.Presets = (*roomPresets)(c)
	}
	if cfg.FarEnd {
		c.caps.FarEnd = (*farEnd)(c)
	}
	return c
}

// Key implements device.Codec.
func (c *Codec) Key() string { return c.key }

// Name implements device.Codec.
func (c *Codec) Name() string { return c.name }

// Cameras implements device.Codec.
func (c *Codec) Cameras() []device.Camera { return c.cameras }

// SelectedCamera implements device.Codec.
func (c *Codec) SelectedCamera() device.Camera { return c.selected }

// SelectCamera implements device.Codec. Selecting the already selected
// camera publishes the selection again, as hardware codecs do.
func (c *Codec) SelectCamera(key string) error {
	cam, err := device.FindCamera(c.cameras, key)
	if err != nil {
		return fmt.Errorf("select %q: %w", key, err)
	}
	c.selected = cam
	c.rec.record(c.key, "selectCamera", key)
	c.selectedHub.Publish(cam)
	return nil
}

// OnCameraSelected implements device.Codec.
func (c *Codec) OnCameraSelected(fn func(device.Camera)) *event.Subscription {
	return c.selectedHub.Subscribe(fn)
}

// IsReady implements device.Codec.
func (c *Codec) IsReady() bool { return c.ready }

// OnReady implements device.Codec.
func (c *Codec) OnReady(fn func()) *event.Subscription {
	return c.readyHub.Subscribe(func(struct{}) { fn() })
}

// SetReady marks the codec ready. Only the first call publishes.
func (c *Codec) SetReady() {
	if c.ready {
		return
	}
	c.ready = true
	c.readyHub.Publish(struct{}{})
}

// Capabilities implements device.Codec.
func (c *Codec) Capabilities() device.CodecCapabilities { return c.caps }

// SetAutoModeFeedback changes the auto mode state from the device side, as
// when the codec's own UI toggles auto framing.
func (c *Codec) SetAutoModeFeedback(on bool) { c.autoOn.Set(on) }

// SetFarEndFeedback changes the far-end control state from the device side.
func (c *Codec) SetFarEndFeedback(on bool) { c.farOn.Set(on) }

// SetPresets replaces both preset lists and publishes the change.
func (c *Codec) SetPresets(near, far []device.Preset) {
	c.nearPresets = clonePresets(near)
	c.farPresets = clonePresets(far)
	c.presetsHub.Publish(struct{}{})
}

// OffCount returns how many times the camera was turned off.
func (c *Codec) OffCount() int { return c.offCount }

func clonePresets(in []device.Preset) []device.Preset {
	if in == nil {
		return nil
	}
	out := make([]device.Preset, len(in))
	copy(out, in)
	return out
}

type autoMode Codec

func (a *autoMode) AutoModeOn() {
	a.rec.record(a.key, "autoModeOn", "")
	a.autoOn.Set(true)
}

func (a *autoMode) AutoModeOff() {
	a.rec.record(a.key, "autoModeOff", "")
	a.autoOn.Set(false)
}

func (a *autoMode) AutoModeIsOn() bool { return a.autoOn.Get() }

func (a *autoMode) OnAutoModeChange(fn func(bool)) *event.Subscription {
	return a.autoOn.OnChange(fn)
}

type offMode Codec

func (o *offMode) CameraOff() {
	o.offCount++
	o.rec.record(o.key, "cameraOff", "")
}

type farEnd Codec

func (f *farEnd) ControllingFarEnd() bool { return f.farOn.Get() }

func (f *farEnd) OnFarEndChange(fn func(bool)) *event.Subscription {
	return f.farOn.OnChange(fn)
}

type roomPresets Codec

func (p *roomPresets) NearEndPresets() []device.Preset { return clonePresets(p.nearPresets) }

func (p *roomPresets) FarEndPresets() []device.Preset { return clonePresets(p.farPresets) }

func (p *roomPresets) SelectPreset(id int) {
	p.rec.record(p.key, "selectPreset", strconv.Itoa(id))
}

// StorePreset defines or overwrites the near-end preset id. The list grows
// as needed so that ids stay positional.
func (p *roomPresets) StorePreset(id int, description string) {
	if id < 1 {
		return
	}
	p.rec.record(p.key, "storePreset", strconv.Itoa(id))

	for len(p.nearPresets) < id {
		n := len(p.nearPresets) + 1
		p.nearPresets = append(p.nearPresets, device.Preset{ID: n})
	}
	p.nearPresets[id-1] = device.Preset{ID: id, Description: description, Defined: true}
	p.presetsHub.Publish(struct{}{})
}

func (p *roomPresets) OnPresetsChanged(fn func()) *event.Subscription {
	return p.presetsHub.Subscribe(func(struct{}) { fn() })
}

// Compile-time interface satisfaction checks.
var (
	_ device.Codec         = (*Codec)(nil)
	_ device.AutoTrackMode = (*autoMode)(nil)
	_ device.OffMode       = (*offMode)(nil)
	_ device.FarEndControl = (*farEnd)(nil)
	_ device.RoomPresets   = (*roomPresets)(nil)
)
