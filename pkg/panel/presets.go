package panel

import (
	"fmt"

	"github.com/RBSystems/vcpanel-go/pkg/device"
	"github.com/RBSystems/vcpanel-go/pkg/hold"
	"github.com/RBSystems/vcpanel-go/pkg/log"
)

func (d *Driver) setupPresets() {
	presets := d.caps.Presets

	d.presets = make([]*hold.Button, 0, d.cfg.PresetCount)
	for n := 1; n <= d.cfg.PresetCount; n++ {
		n := n
		b, err := hold.NewButton(d.cfg.Clock, d.cfg.HoldThreshold,
			func() { d.storePreset(n) },
			func() { d.recallPreset(n) },
		)
		if err != nil {
			d.emitError(log.LayerDriver, err, "preset buttons")
			return
		}
		d.presets = append(d.presets, b)
		d.surface.SetBoolAction(d.joins.Preset(n), b.Action())
	}

	d.subs = append(d.subs, presets.OnPresetsChanged(d.sendPresetNames))
	if far := d.caps.FarEnd; far != nil {
		d.subs = append(d.subs, far.OnFarEndChange(d.onFarEndChange))
	}
	d.sendPresetNames()
}

func (d *Driver) recallPreset(n int) {
	d.caps.Presets.SelectPreset(n)
	d.emit(log.Event{
		Layer:    log.LayerDriver,
		Category: log.CategoryPreset,
		Preset:   &log.PresetEvent{Action: log.PresetRecall, ID: n, FarEnd: d.controllingFarEnd()},
	})
}

// storePreset saves the current position to slot n, keeping the slot's
// name if it has one.
func (d *Driver) storePreset(n int) {
	desc := fmt.Sprintf("Preset %d", n)
	near := d.caps.Presets.NearEndPresets()
	if n <= len(near) && near[n-1].Description != "" {
		desc = near[n-1].Description
	}
	d.emit(log.Event{
		Layer:    log.LayerDriver,
		Category: log.CategoryPreset,
		Preset:   &log.PresetEvent{Action: log.PresetStore, ID: n},
	})
	d.caps.Presets.StorePreset(n, desc)
}

func (d *Driver) onFarEndChange(on bool) {
	d.emitState(log.StateEntityFarEnd, onOff(!on), onOff(on), "device")
	d.sendPresetNames()
}

func (d *Driver) controllingFarEnd() bool {
	return d.caps.FarEnd != nil && d.caps.FarEnd.ControllingFarEnd()
}

// activePresets returns the list the buttons currently address.
func (d *Driver) activePresets() ([]device.Preset, bool) {
	if d.controllingFarEnd() {
		return d.caps.Presets.FarEndPresets(), true
	}
	return d.caps.Presets.NearEndPresets(), false
}

// sendPresetNames pushes a name to every preset button. Buttons beyond the
// end of the active list get an empty name.
func (d *Driver) sendPresetNames() {
	if d.caps.Presets == nil || d.presets == nil {
		return
	}
	list, farEnd := d.activePresets()

	names := make([]string, d.cfg.PresetCount)
	for i := range names {
		if i < len(list) {
			names[i] = list[i].Description
		}
		d.surface.SetString(d.joins.Preset(i+1), names[i])
	}

	if len(list) < d.cfg.PresetCount {
		d.emit(log.Event{
			Layer:    log.LayerDriver,
			Category: log.CategoryError,
			Error: &log.ErrorEventData{
				Layer:   log.LayerDriver,
				Message: fmt.Sprintf("preset list has %d entries for %d buttons", len(list), d.cfg.PresetCount),
				Context: "preset names",
			},
		})
	}
	d.emit(log.Event{
		Layer:    log.LayerDriver,
		Category: log.CategoryPreset,
		Preset:   &log.PresetEvent{Action: log.PresetNames, FarEnd: farEnd, Names: names},
	})
}

// PresetNames returns the names last pushed to the preset buttons.
func (d *Driver) PresetNames() []string {
	if d.presets == nil {
		return nil
	}
	list, _ := d.activePresets()
	names := make([]string, d.cfg.PresetCount)
	for i := range names {
		if i < len(list) {
			names[i] = list[i].Description
		}
	}
	return names
}
