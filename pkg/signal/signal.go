package signal

import (
	"errors"
	"fmt"
)

// Signal errors.
var (
	ErrRowOutOfRange = errors.New("row out of range")
	ErrUnknownList   = errors.New("unknown list")
)

// Join addresses a channel on the surface.
type Join uint32

// String returns the join formatted for logs.
func (j Join) String() string {
	return fmt.Sprintf("join:%d", uint32(j))
}

// Action is invoked on every boolean input transition.
// value is true on press and false on release.
type Action func(value bool)

// PressRelease builds an edge-triggered action: press runs on the true
// transition and release on the false transition.
func PressRelease(press, release func()) Action {
	return func(value bool) {
		if value {
			press()
		} else {
			release()
		}
	}
}

// OnRelease builds a single-shot action that fires on the false transition.
func OnRelease(fn func()) Action {
	return func(value bool) {
		if !value {
			fn()
		}
	}
}

// Surface is the part of a control surface the panel core writes to.
type Surface interface {
	// SetBoolAction binds action to the boolean input on join, replacing any
	// previous action.
	SetBoolAction(join Join, action Action)

	// ClearBoolAction removes the action bound to join.
	ClearBoolAction(join Join)

	// SetBool pushes a feedback value to join.
	SetBool(join Join, value bool)

	// SetString pushes a text value to join.
	SetString(join Join, value string)
}

// RowList is a bounded list of rows. Rows are numbered 1..MaxRows.
type RowList interface {
	MaxRows() int
	Count() int
	SetCount(n int)
	SetRowText(row int, text string) error
	RowText(row int) string
	SetRowAction(row int, action Action) error
	ClearRowAction(row int) error
	SetRowSelected(row int, selected bool) error
	RowSelected(row int) bool
}
