// Package signal defines the control-surface channels the panel core binds
// against.
//
// A surface exposes numbered boolean and text channels ("joins"). Boolean
// channels carry two directions: input transitions from the operator
// (press = true, release = false), which invoke the bound Action, and
// feedback values pushed by the driver (button lit, region visible).
// Text channels carry labels such as preset names.
//
// # Bindings
//
// Bindings is a value: the complete set of actions for a scope of joins.
// Swap installs a new set, setting every join present in the set and
// clearing every other join in scope, so an action computed for a previous
// device can never survive a rebind.
//
// # Row lists
//
// RowList mirrors a dynamic list onto a fixed number of rows. Rows are
// numbered from 1; each has a text label, a toggle action and a selected
// feedback value.
//
// Panel is an in-memory Surface used by the runtime and by tests. It is not
// safe for concurrent use; drive it from a single dispatch goroutine.
package signal
