// Package feedback provides computed values that are pushed to surface
// channels on demand.
//
// A Bool wraps a value function. FireUpdate re-evaluates the function,
// pushes the result to every linked sink and, when the value changed,
// notifies change subscribers. Feedback never polls; the owner decides when
// a refresh is due.
package feedback

import "github.com/RBSystems/vcpanel-go/pkg/event"

// Bool is a computed boolean feedback.
type Bool struct {
	valueFunc func() bool
	value     bool
	evaluated bool
	sinks     []func(bool)
	changes   event.Hub[bool]
}

// NewBool creates a feedback backed by fn.
func NewBool(fn func() bool) *Bool {
	return &Bool{valueFunc: fn}
}

// Value returns the value computed by the last FireUpdate or link.
func (f *Bool) Value() bool {
	if !f.evaluated {
		f.value = f.valueFunc()
		f.evaluated = true
	}
	return f.value
}

// FireUpdate re-evaluates the feedback and pushes it to all sinks.
// Change subscribers are notified only when the value differs from the
// previous evaluation.
func (f *Bool) FireUpdate() {
	v := f.valueFunc()
	changed := !f.evaluated || v != f.value
	f.value = v
	f.evaluated = true

	for _, sink := range f.sinks {
		sink(v)
	}
	if changed {
		f.changes.Publish(v)
	}
}

// Link attaches a sink and pushes the current value to it.
func (f *Bool) Link(sink func(bool)) {
	f.sinks = append(f.sinks, sink)
	sink(f.Value())
}

// OnChange subscribes to value changes.
func (f *Bool) OnChange(fn func(bool)) *event.Subscription {
	return f.changes.Subscribe(fn)
}

// Value is a settable boolean with change notification; the device side
// uses it for state it owns.
type Value struct {
	v       bool
	changes event.Hub[bool]
}

// Get returns the current value.
func (b *Value) Get() bool { return b.v }

// Set stores v and notifies subscribers if it changed.
func (b *Value) Set(v bool) {
	if b.v == v {
		return
	}
	b.v = v
	b.changes.Publish(v)
}

// OnChange subscribes to value changes.
func (b *Value) OnChange(fn func(bool)) *event.Subscription {
	return b.changes.Subscribe(fn)
}
