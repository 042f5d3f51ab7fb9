package signal

import "github.com/RBSystems/vcpanel-go/pkg/event"

// Input describes one boolean transition received from the operator.
type Input struct {
	Join  Join
	Row   int // 0 for plain joins
	Value bool
	Bound bool
}

// Panel is an in-memory control surface.
type Panel struct {
	actions map[Join]Action
	bools   map[Join]bool
	strings map[Join]string
	pressed map[Join]bool
	lists   map[Join]*List

	inputs   event.Hub[Input]
	feedback event.Hub[Join]
}

// NewPanel creates an empty panel.
func NewPanel() *Panel {
	return &Panel{
		actions: make(map[Join]Action),
		bools:   make(map[Join]bool),
		strings: make(map[Join]string),
		pressed: make(map[Join]bool),
		lists:   make(map[Join]*List),
	}
}

// SetBoolAction implements Surface.
func (p *Panel) SetBoolAction(join Join, action Action) {
	if action == nil {
		delete(p.actions, join)
		return
	}
	p.actions[join] = action
}

// ClearBoolAction implements Surface.
func (p *Panel) ClearBoolAction(join Join) {
	delete(p.actions, join)
}

// SetBool implements Surface.
func (p *Panel) SetBool(join Join, value bool) {
	old, seen := p.bools[join]
	p.bools[join] = value
	if !seen || old != value {
		p.feedback.Publish(join)
	}
}

// SetString implements Surface.
func (p *Panel) SetString(join Join, value string) {
	p.strings[join] = value
}

// Bool returns the feedback value of join.
func (p *Panel) Bool(join Join) bool { return p.bools[join] }

// String returns the text value of join.
func (p *Panel) String(join Join) string { return p.strings[join] }

// Bound reports whether join has an action.
func (p *Panel) Bound(join Join) bool {
	_, ok := p.actions[join]
	return ok
}

// Pressed reports whether join is currently held.
func (p *Panel) Pressed(join Join) bool { return p.pressed[join] }

// AddList registers a row list with the given capacity, replacing any list
// with the same id.
func (p *Panel) AddList(id Join, maxRows int) *List {
	l := NewList(id, maxRows)
	l.onInput = func(in Input) { p.inputs.Publish(in) }
	p.lists[id] = l
	return l
}

// List returns the list registered under id.
func (p *Panel) List(id Join) (*List, bool) {
	l, ok := p.lists[id]
	return l, ok
}

// Press sends a press transition. Repeated presses without a release are
// ignored. Returns true if an action ran.
func (p *Panel) Press(join Join) bool { return p.input(join, true) }

// Release sends a release transition.
func (p *Panel) Release(join Join) bool { return p.input(join, false) }

// Tap presses and releases join.
func (p *Panel) Tap(join Join) bool {
	pressed := p.Press(join)
	released := p.Release(join)
	return pressed || released
}

// OnInput subscribes to operator transitions on joins and list rows.
func (p *Panel) OnInput(fn func(Input)) *event.Subscription {
	return p.inputs.Subscribe(fn)
}

// OnFeedback subscribes to boolean feedback changes; fn receives the join.
func (p *Panel) OnFeedback(fn func(Join)) *event.Subscription {
	return p.feedback.Subscribe(fn)
}

func (p *Panel) input(join Join, value bool) bool {
	if p.pressed[join] == value {
		return false
	}
	p.pressed[join] = value

	// Look the action up at transition time so a release reaches whatever
	// is bound now, not what was bound at press.
	action, ok := p.actions[join]
	p.inputs.Publish(Input{Join: join, Value: value, Bound: ok})
	if !ok {
		return false
	}
	action(value)
	return true
}

// Compile-time interface satisfaction checks.
var (
	_ Surface = (*Panel)(nil)
	_ RowList = (*List)(nil)
)
