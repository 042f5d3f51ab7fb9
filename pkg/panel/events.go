package panel

import (
	"github.com/RBSystems/vcpanel-go/pkg/log"
	"github.com/RBSystems/vcpanel-go/pkg/signal"
)

// LogInput records an operator transition. Wire it to the surface's input
// notifications.
func (d *Driver) LogInput(in signal.Input) {
	d.emit(log.Event{
		Layer:    log.LayerSurface,
		Category: log.CategoryInput,
		Input: &log.InputEvent{
			Join:  uint32(in.Join),
			Row:   in.Row,
			Value: in.Value,
			Bound: in.Bound,
		},
	})
}

func (d *Driver) emit(e log.Event) {
	e.Timestamp = d.cfg.Clock.Now()
	e.SessionID = d.cfg.SessionID
	e.Panel = d.cfg.Name
	if cam := d.controls.Current(); cam != nil {
		e.CameraKey = cam.Key()
	}
	d.cfg.Logger.Log(e)
}

func (d *Driver) emitState(entity log.StateEntity, oldState, newState, reason string) {
	d.emit(log.Event{
		Layer:    log.LayerDriver,
		Category: log.CategoryState,
		StateChange: &log.StateChangeEvent{
			Entity:   entity,
			OldState: oldState,
			NewState: newState,
			Reason:   reason,
		},
	})
}

func (d *Driver) emitError(layer log.Layer, err error, context string) {
	d.emit(log.Event{
		Layer:    layer,
		Category: log.CategoryError,
		Error: &log.ErrorEventData{
			Layer:   layer,
			Message: err.Error(),
			Context: context,
		},
	})
}
