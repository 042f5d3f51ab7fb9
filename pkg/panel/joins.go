package panel

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/RBSystems/vcpanel-go/pkg/binder"
	"github.com/RBSystems/vcpanel-go/pkg/interlock"
	"github.com/RBSystems/vcpanel-go/pkg/signal"
)

// Joins addresses every surface channel the driver uses.
type Joins struct {
	// Subpage is the visibility of the whole camera panel.
	Subpage signal.Join

	// Regions are the interlocked mode regions.
	AutoRegion   signal.Join
	ManualRegion signal.Join
	OffRegion    signal.Join

	Controls binder.Joins

	// PresetBase is the first preset button. Button n uses PresetBase+n-1
	// for both its input and its name text.
	PresetBase signal.Join

	// Row lists.
	CameraList signal.Join
	ModeList   signal.Join
}

// DefaultJoins returns the standard join map.
func DefaultJoins() Joins {
	return Joins{
		Subpage:      1200,
		AutoRegion:   1201,
		ManualRegion: 1202,
		OffRegion:    1203,
		Controls: binder.Joins{
			Up:        1211,
			Down:      1212,
			Left:      1213,
			Right:     1214,
			Center:    1215,
			ZoomIn:    1221,
			ZoomOut:   1222,
			FocusNear: 1231,
			FocusFar:  1232,
			AutoFocus: 1233,
		},
		PresetBase: 1241,
		CameraList: 10,
		ModeList:   11,
	}
}

// Preset returns the join of preset button n (1-based).
func (j Joins) Preset(n int) signal.Join {
	return j.PresetBase + signal.Join(n-1)
}

// Region returns the region join of mode m.
func (j Joins) Region(m interlock.Mode) signal.Join {
	switch m {
	case interlock.ModeAuto:
		return j.AutoRegion
	case interlock.ModeOff:
		return j.OffRegion
	default:
		return j.ManualRegion
	}
}

// Named returns the operator controls by name: the direction pad, zoom,
// focus and preset-1..preset-N.
func (j Joins) Named(presetCount int) map[string]signal.Join {
	c := j.Controls
	m := map[string]signal.Join{
		"up":         c.Up,
		"down":       c.Down,
		"left":       c.Left,
		"right":      c.Right,
		"center":     c.Center,
		"zoom-in":    c.ZoomIn,
		"zoom-out":   c.ZoomOut,
		"focus-near": c.FocusNear,
		"focus-far":  c.FocusFar,
		"autofocus":  c.AutoFocus,
	}
	for n := 1; n <= presetCount; n++ {
		m["preset-"+strconv.Itoa(n)] = j.Preset(n)
	}
	return m
}

// ControlNames returns the names accepted by ByName, sorted.
func (j Joins) ControlNames(presetCount int) []string {
	named := j.Named(presetCount)
	names := make([]string, 0, len(named))
	for n := range named {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ByName resolves a control name, or a raw join number.
func (j Joins) ByName(name string, presetCount int) (signal.Join, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if join, ok := j.Named(presetCount)[name]; ok {
		return join, nil
	}
	if n, err := strconv.ParseUint(name, 10, 32); err == nil {
		return signal.Join(n), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownControl, name)
}
