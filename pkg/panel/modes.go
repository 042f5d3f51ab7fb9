package panel

import (
	"fmt"

	"github.com/RBSystems/vcpanel-go/pkg/feedback"
	"github.com/RBSystems/vcpanel-go/pkg/interlock"
	"github.com/RBSystems/vcpanel-go/pkg/log"
	"github.com/RBSystems/vcpanel-go/pkg/signal"
)

// modeLabels are the mode list texts.
var modeLabels = map[interlock.Mode]string{
	interlock.ModeAuto:   "Auto",
	interlock.ModeManual: "Manual",
	interlock.ModeOff:    "Off",
}

func (d *Driver) setupModes() {
	auto := d.caps.AutoMode
	off := d.caps.Off

	regions := map[interlock.Mode]signal.Join{
		interlock.ModeManual: d.joins.ManualRegion,
	}
	if auto != nil {
		regions[interlock.ModeAuto] = d.joins.AutoRegion
	}
	if off != nil {
		regions[interlock.ModeOff] = d.joins.OffRegion
	}

	initial := interlock.ModeManual
	if auto != nil && auto.AutoModeIsOn() {
		initial = interlock.ModeAuto
	}
	modes, err := interlock.New(d.surface, regions, initial)
	if err != nil {
		// Manual is always offered, so this cannot happen.
		panic(fmt.Sprintf("panel: mode interlock: %v", err))
	}
	d.modes = modes
	d.subs = append(d.subs, d.modes.OnChange(func(interlock.ModeChanged) { d.refreshModes() }))

	d.modeRows = nil
	if auto != nil {
		d.modeRows = append(d.modeRows, &modeRow{
			mode:     interlock.ModeAuto,
			action:   auto.AutoModeOn,
			feedback: feedback.NewBool(auto.AutoModeIsOn),
		})
		d.subs = append(d.subs, auto.OnAutoModeChange(d.onAutoModeChange))
	}

	manual := &modeRow{
		mode:     interlock.ModeManual,
		feedback: feedback.NewBool(func() bool { return d.modes.IsActive(interlock.ModeManual) }),
	}
	if auto != nil {
		manual.action = func() {
			auto.AutoModeOff()
			d.moveTo(interlock.ModeManual, "manual selected")
		}
	} else {
		manual.action = func() { d.moveTo(interlock.ModeManual, "manual selected") }
	}
	d.modeRows = append(d.modeRows, manual)

	if off != nil {
		d.modeRows = append(d.modeRows, &modeRow{
			mode: interlock.ModeOff,
			action: func() {
				// Auto feedback would keep the Auto row lit next to Off.
				if auto != nil {
					auto.AutoModeOff()
				}
				off.CameraOff()
				d.moveTo(interlock.ModeOff, "camera off")
			},
			feedback: feedback.NewBool(func() bool { return d.modes.IsActive(interlock.ModeOff) }),
		})
	}

	for i, r := range d.modeRows {
		r.row = i + 1
		row := r.row
		_ = d.modeList.SetRowText(row, modeLabels[r.mode])
		_ = d.modeList.SetRowAction(row, signal.OnRelease(r.action))
		r.feedback.Link(func(v bool) { _ = d.modeList.SetRowSelected(row, v) })
	}
	for row := len(d.modeRows) + 1; row <= d.modeList.MaxRows(); row++ {
		_ = d.modeList.SetRowText(row, "")
		_ = d.modeList.ClearRowAction(row)
		_ = d.modeList.SetRowSelected(row, false)
	}
	d.modeList.SetCount(len(d.modeRows))
}

// RequestMode runs the action of the mode row for m, as if the operator
// released it.
func (d *Driver) RequestMode(m interlock.Mode) error {
	if d.modes == nil {
		return ErrNotReady
	}
	for _, r := range d.modeRows {
		if r.mode == m {
			r.action()
			return nil
		}
	}
	return fmt.Errorf("%w: %s", interlock.ErrUnknownMode, m)
}

// ModeRows returns the offered modes in row order.
func (d *Driver) ModeRows() []interlock.Mode {
	out := make([]interlock.Mode, len(d.modeRows))
	for i, r := range d.modeRows {
		out[i] = r.mode
	}
	return out
}

func (d *Driver) onAutoModeChange(on bool) {
	d.emitState(log.StateEntityAutoMode, onOff(!on), onOff(on), "device")

	target := interlock.ModeManual
	if on {
		target = interlock.ModeAuto
	}
	d.moveTo(target, "auto mode feedback")
	d.refreshModes()
}

// moveTo makes m current: a visible transition while the panel is shown, a
// silent one otherwise.
func (d *Driver) moveTo(m interlock.Mode, reason string) {
	old := d.modes.Current()
	if old == m {
		return
	}

	silent := !d.visible
	var err error
	if silent {
		err = d.modes.SetSilently(m)
	} else {
		err = d.modes.ShowMode(m)
	}
	if err != nil {
		d.emitError(log.LayerDriver, err, reason)
		return
	}
	if silent {
		d.refreshModes()
	}

	d.emit(log.Event{
		Layer:    log.LayerDriver,
		Category: log.CategoryMode,
		Mode:     &log.ModeEvent{OldMode: old.String(), NewMode: m.String(), Silent: silent},
	})
}

// refreshModes re-evaluates the feedback of every mode row.
func (d *Driver) refreshModes() {
	for _, r := range d.modeRows {
		r.feedback.FireUpdate()
	}
}

func onOff(v bool) string {
	if v {
		return "ON"
	}
	return "OFF"
}
