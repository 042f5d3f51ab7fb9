package interlock

import (
	"errors"
	"fmt"
	"strings"

	"github.com/RBSystems/vcpanel-go/pkg/event"
	"github.com/RBSystems/vcpanel-go/pkg/signal"
)

// Interlock errors.
var (
	ErrUnknownMode = errors.New("unknown mode")
	ErrNoModes     = errors.New("no modes offered")
)

// Mode is one of the mutually exclusive control modes.
type Mode uint8

const (
	// ModeAuto is camera auto-framing.
	ModeAuto Mode = iota

	// ModeManual is operator camera control.
	ModeManual

	// ModeOff is camera off.
	ModeOff
)

// allModes is the fixed presentation order.
var allModes = []Mode{ModeAuto, ModeManual, ModeOff}

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeAuto:
		return "AUTO"
	case ModeManual:
		return "MANUAL"
	case ModeOff:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// ParseMode parses a mode name, case-insensitively.
func ParseMode(s string) (Mode, error) {
	for _, m := range allModes {
		if strings.EqualFold(m.String(), s) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// ModeChanged is emitted after a visible transition.
type ModeChanged struct {
	Old Mode
	New Mode
}

// Controller owns the mode regions on a surface.
type Controller struct {
	surface signal.Surface
	regions map[Mode]signal.Join
	current Mode
	visible bool

	changes event.Hub[ModeChanged]
}

// New creates a hidden controller over the given regions. The offered
// modes are the keys of regions; initial must be one of them.
func New(surface signal.Surface, regions map[Mode]signal.Join, initial Mode) (*Controller, error) {
	if len(regions) == 0 {
		return nil, ErrNoModes
	}
	if _, ok := regions[initial]; !ok {
		return nil, fmt.Errorf("initial mode %s: %w", initial, ErrUnknownMode)
	}

	c := &Controller{
		surface: surface,
		regions: make(map[Mode]signal.Join, len(regions)),
		current: initial,
	}
	for m, j := range regions {
		c.regions[m] = j
	}
	c.apply()
	return c, nil
}

// Modes returns the offered modes in presentation order.
func (c *Controller) Modes() []Mode {
	var out []Mode
	for _, m := range allModes {
		if c.Offers(m) {
			out = append(out, m)
		}
	}
	return out
}

// Offers reports whether m is in the offered set.
func (c *Controller) Offers(m Mode) bool {
	_, ok := c.regions[m]
	return ok
}

// Current returns the current mode.
func (c *Controller) Current() Mode { return c.current }

// IsActive reports whether m is the current mode.
func (c *Controller) IsActive(m Mode) bool { return c.current == m }

// Visible reports whether the control is shown.
func (c *Controller) Visible() bool { return c.visible }

// SetSilently makes m current without touching the surface.
func (c *Controller) SetSilently(m Mode) error {
	if !c.Offers(m) {
		return fmt.Errorf("set %s: %w", m, ErrUnknownMode)
	}
	c.current = m
	return nil
}

// ShowMode makes m current, shows its region, hides every other region and
// emits ModeChanged. The control becomes visible.
func (c *Controller) ShowMode(m Mode) error {
	if !c.Offers(m) {
		return fmt.Errorf("show %s: %w", m, ErrUnknownMode)
	}
	old := c.current
	c.current = m
	c.visible = true
	c.apply()
	c.changes.Publish(ModeChanged{Old: old, New: m})
	return nil
}

// Show reveals the region of the current mode.
func (c *Controller) Show() {
	c.visible = true
	c.apply()
}

// Hide hides every region. The current mode is kept.
func (c *Controller) Hide() {
	c.visible = false
	c.apply()
}

// OnChange subscribes to visible transitions.
func (c *Controller) OnChange(fn func(ModeChanged)) *event.Subscription {
	return c.changes.Subscribe(fn)
}

// apply pushes region visibility. Hides go out before the show so the
// surface never has two regions up at once.
func (c *Controller) apply() {
	for _, m := range allModes {
		j, ok := c.regions[m]
		if !ok || (c.visible && m == c.current) {
			continue
		}
		c.surface.SetBool(j, false)
	}
	if c.visible {
		c.surface.SetBool(c.regions[c.current], true)
	}
}
