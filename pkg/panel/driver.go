package panel

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/RBSystems/vcpanel-go/pkg/binder"
	"github.com/RBSystems/vcpanel-go/pkg/device"
	"github.com/RBSystems/vcpanel-go/pkg/devicelist"
	"github.com/RBSystems/vcpanel-go/pkg/event"
	"github.com/RBSystems/vcpanel-go/pkg/feedback"
	"github.com/RBSystems/vcpanel-go/pkg/hold"
	"github.com/RBSystems/vcpanel-go/pkg/interlock"
	"github.com/RBSystems/vcpanel-go/pkg/log"
	"github.com/RBSystems/vcpanel-go/pkg/signal"
)

// Driver errors.
var (
	ErrNotReady       = errors.New("codec not ready")
	ErrUnknownControl = errors.New("unknown control")
)

// Defaults.
const (
	DefaultPresetCount = 6
	DefaultName        = "vcpanel"
)

// Config configures a Driver.
type Config struct {
	// Name identifies the panel in event logs.
	Name string

	Joins Joins

	// PresetCount is the number of preset buttons.
	PresetCount int

	// HoldThreshold is the press duration that stores a preset.
	HoldThreshold time.Duration

	// Clock drives hold timers and event timestamps. Defaults to hold.System.
	Clock hold.Clock

	// Logger receives panel events. Nil disables event logging.
	Logger log.Logger

	// SessionID tags events. A random UUID is used when empty.
	SessionID string
}

func (c *Config) applyDefaults() {
	if c.Name == "" {
		c.Name = DefaultName
	}
	if c.Joins == (Joins{}) {
		c.Joins = DefaultJoins()
	}
	if c.PresetCount <= 0 {
		c.PresetCount = DefaultPresetCount
	}
	if c.HoldThreshold <= 0 {
		c.HoldThreshold = hold.DefaultThreshold
	}
	if c.Clock == nil {
		c.Clock = hold.System
	}
	c.Logger = log.OrNoop(c.Logger)
	if c.SessionID == "" {
		c.SessionID = uuid.NewString()
	}
}

// Driver runs the camera control panel for one codec.
type Driver struct {
	cfg   Config
	joins Joins

	surface    signal.Surface
	cameraList signal.RowList
	modeList   signal.RowList
	codec      device.Codec
	caps       device.CodecCapabilities

	ready   bool
	visible bool

	modes     *interlock.Controller
	modeRows  []*modeRow
	cameras   *devicelist.Synchronizer
	controls  *binder.Binder
	presets   []*hold.Button
	setupRuns int

	subs []*event.Subscription
}

// New creates a driver. cameraList and modeList are the row lists for the
// camera selector and the mode selector. Setup runs now if the codec is
// ready, or when it becomes ready.
func New(surface signal.Surface, cameraList, modeList signal.RowList, codec device.Codec, cfg Config) *Driver {
	cfg.applyDefaults()

	d := &Driver{
		cfg:        cfg,
		joins:      cfg.Joins,
		surface:    surface,
		cameraList: cameraList,
		modeList:   modeList,
		codec:      codec,
		caps:       codec.Capabilities(),
	}
	d.controls = binder.New(surface, d.joins.Controls)
	d.surface.SetBool(d.joins.Subpage, false)

	if codec.IsReady() {
		d.setup()
	} else {
		var sub *event.Subscription
		sub = codec.OnReady(func() {
			sub.Cancel()
			d.setup()
		})
		d.subs = append(d.subs, sub)
	}
	return d
}

// setup builds everything that depends on the codec. It runs once.
func (d *Driver) setup() {
	if d.ready {
		return
	}
	d.ready = true
	d.setupRuns++

	d.emitState(log.StateEntityCodec, "", "READY", "")

	d.setupModes()
	d.setupCameraList()
	if len(d.codec.Cameras()) > 0 {
		d.rebind(d.codec.SelectedCamera())
	}
	if d.caps.Presets != nil {
		d.setupPresets()
	}
	if d.visible {
		d.modes.Show()
	}
}

func (d *Driver) setupCameraList() {
	d.cameras = devicelist.New(d.cameraList, d.requestCamera, d.onSelectionSynced)
	d.subs = append(d.subs, d.codec.OnCameraSelected(d.cameras.OnDeviceSelected))

	selected := ""
	if cam := d.codec.SelectedCamera(); cam != nil {
		selected = cam.Key()
	}
	d.cameras.Rebuild(d.codec.Cameras(), selected)
}

func (d *Driver) requestCamera(key string) {
	if err := d.codec.SelectCamera(key); err != nil {
		d.emitError(log.LayerDevice, err, "select camera")
	}
}

// onSelectionSynced runs once per selection event, after the camera rows
// are in step.
func (d *Driver) onSelectionSynced(cam device.Camera) {
	sel := &log.SelectionEvent{}
	if cam != nil {
		sel.CameraKey = cam.Key()
		sel.CameraName = cam.Name()
		sel.Row = d.cameras.RowOf(cam.Key())
	}
	d.emit(log.Event{Layer: log.LayerDevice, Category: log.CategorySelection, Selection: sel})

	d.rebind(cam)
	d.sendPresetNames()
}

func (d *Driver) rebind(cam device.Camera) {
	r := d.controls.Rebind(cam)
	d.emit(log.Event{
		Layer:    log.LayerDriver,
		Category: log.CategoryBinding,
		Binding: &log.BindingEvent{
			Bound:        joinsToUint(r.Bound),
			Cleared:      joinsToUint(r.Cleared),
			Capabilities: r.Capabilities.String(),
		},
	})
}

// Show reveals the panel and the current mode region.
func (d *Driver) Show() {
	if d.visible {
		return
	}
	d.visible = true
	d.surface.SetBool(d.joins.Subpage, true)
	if d.modes != nil {
		d.modes.Show()
	}
	d.emitState(log.StateEntityVisibility, "HIDDEN", "SHOWN", "")
}

// Hide hides the panel. The current mode is kept.
func (d *Driver) Hide() {
	if !d.visible {
		return
	}
	d.visible = false
	if d.modes != nil {
		d.modes.Hide()
	}
	d.surface.SetBool(d.joins.Subpage, false)
	d.emitState(log.StateEntityVisibility, "SHOWN", "HIDDEN", "")
}

// Visible reports whether the panel is shown.
func (d *Driver) Visible() bool { return d.visible }

// Ready reports whether setup has run.
func (d *Driver) Ready() bool { return d.ready }

// SessionID returns the ID tagging this driver's events.
func (d *Driver) SessionID() string { return d.cfg.SessionID }

// Config returns the effective configuration.
func (d *Driver) Config() Config { return d.cfg }

// Mode returns the current mode. Before setup it is Manual.
func (d *Driver) Mode() interlock.Mode {
	if d.modes == nil {
		return interlock.ModeManual
	}
	return d.modes.Current()
}

// Modes returns the offered modes, or nil before setup.
func (d *Driver) Modes() []interlock.Mode {
	if d.modes == nil {
		return nil
	}
	return d.modes.Modes()
}

// BoundCamera returns the camera the controls are bound to.
func (d *Driver) BoundCamera() device.Camera { return d.controls.Current() }

// CameraKeys returns the camera keys shown in the camera list.
func (d *Driver) CameraKeys() []string {
	if d.cameras == nil {
		return nil
	}
	return d.cameras.Keys()
}

// Close cancels every device subscription. Bindings stay in place.
func (d *Driver) Close() {
	for _, s := range d.subs {
		s.Cancel()
	}
	d.subs = nil
}

// modeRow is one entry of the mode list.
type modeRow struct {
	mode     interlock.Mode
	row      int
	action   func()
	feedback *feedback.Bool
}

func joinsToUint(js []signal.Join) []uint32 {
	if len(js) == 0 {
		return nil
	}
	out := make([]uint32, len(js))
	for i, j := range js {
		out[i] = uint32(j)
	}
	return out
}
