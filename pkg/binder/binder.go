// Package binder maps the camera control joins onto the capabilities of the
// selected camera.
//
// Every rebind computes the complete binding set for the new camera and
// swaps it in over the whole control scope. Joins for an absent capability
// are left cleared, so an action closing over a previous camera can never
// fire again.
package binder

import (
	"github.com/RBSystems/vcpanel-go/pkg/device"
	"github.com/RBSystems/vcpanel-go/pkg/signal"
)

// Joins addresses the camera control inputs.
type Joins struct {
	Up, Down, Left, Right, Center signal.Join

	ZoomIn, ZoomOut signal.Join

	FocusNear, FocusFar, AutoFocus signal.Join
}

// Scope returns every control join, in a fixed order.
func (j Joins) Scope() []signal.Join {
	return []signal.Join{
		j.Up, j.Down, j.Left, j.Right, j.Center,
		j.ZoomIn, j.ZoomOut,
		j.FocusNear, j.FocusFar, j.AutoFocus,
	}
}

// Focus returns the focus joins.
func (j Joins) Focus() []signal.Join {
	return []signal.Join{j.FocusNear, j.FocusFar, j.AutoFocus}
}

// Compute returns the bindings for cam. A nil camera, or one without pan/tilt
// control, gets no bindings. Focus is only offered alongside pan/tilt.
func Compute(j Joins, cam device.Camera) signal.Bindings {
	b := signal.Bindings{}
	if cam == nil {
		return b
	}
	caps := cam.Capabilities()

	ptz := caps.PTZ
	if ptz == nil {
		return b
	}
	b[j.Up] = signal.PressRelease(ptz.TiltUp, ptz.TiltStop)
	b[j.Down] = signal.PressRelease(ptz.TiltDown, ptz.TiltStop)
	b[j.Left] = signal.PressRelease(ptz.PanLeft, ptz.PanStop)
	b[j.Right] = signal.PressRelease(ptz.PanRight, ptz.PanStop)
	b[j.Center] = signal.OnRelease(ptz.PositionHome)
	b[j.ZoomIn] = signal.PressRelease(ptz.ZoomIn, ptz.ZoomStop)
	b[j.ZoomOut] = signal.PressRelease(ptz.ZoomOut, ptz.ZoomStop)

	if focus := caps.Focus; focus != nil {
		b[j.FocusNear] = signal.PressRelease(focus.FocusNear, focus.FocusStop)
		b[j.FocusFar] = signal.PressRelease(focus.FocusFar, focus.FocusStop)
		b[j.AutoFocus] = signal.OnRelease(focus.TriggerAutoFocus)
	}
	return b
}

// Result describes one rebind.
type Result struct {
	Camera       device.Camera
	Capabilities device.CapabilitySet
	Bound        []signal.Join
	Cleared      []signal.Join
}

// Binder owns the control joins on a surface.
type Binder struct {
	surface signal.Surface
	joins   Joins
	current device.Camera
}

// New creates a binder. No controls are bound until the first Rebind.
func New(surface signal.Surface, joins Joins) *Binder {
	return &Binder{surface: surface, joins: joins}
}

// Joins returns the control joins.
func (b *Binder) Joins() Joins { return b.joins }

// Current returns the camera the controls are bound to, or nil.
func (b *Binder) Current() device.Camera { return b.current }

// Rebind clears every control join and binds the ones cam supports. When the
// camera changes, the outgoing camera is stopped first: a control held across
// the rebind releases into the new camera's bindings.
func (b *Binder) Rebind(cam device.Camera) Result {
	if b.current != nil && b.current != cam {
		stopMotion(b.current)
	}
	scope := b.joins.Scope()
	next := Compute(b.joins, cam)
	signal.Swap(b.surface, scope, next)
	b.current = cam

	r := Result{Camera: cam}
	if cam != nil {
		r.Capabilities = cam.Capabilities().Set()
	}
	for _, j := range scope {
		if next.Bound(j) {
			r.Bound = append(r.Bound, j)
		} else {
			r.Cleared = append(r.Cleared, j)
		}
	}
	return r
}

func stopMotion(cam device.Camera) {
	caps := cam.Capabilities()
	if ptz := caps.PTZ; ptz != nil {
		ptz.PanStop()
		ptz.TiltStop()
		ptz.ZoomStop()
	}
	if focus := caps.Focus; focus != nil {
		focus.FocusStop()
	}
}
