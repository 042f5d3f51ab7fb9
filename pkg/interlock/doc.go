// Package interlock implements the mode interlock: a set of mutually
// exclusive surface regions of which exactly one mode is current.
//
// # Visibility
//
// The controller has two independent pieces of state: the current mode and
// whether the control as a whole is visible. While visible, the region of
// the current mode is shown and every other region is hidden. While hidden,
// all regions are hidden.
//
// # Transitions
//
// ShowMode performs a visible transition and emits a ModeChanged
// notification. SetSilently only records the current mode; no region
// changes and no notification is emitted. A mode set silently while hidden
// becomes visible on the next Show.
//
// Modes outside the offered set are rejected with ErrUnknownMode and leave
// the controller unchanged.
package interlock
