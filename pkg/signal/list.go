package signal

import "fmt"

// row is one list entry.
type row struct {
	text     string
	action   Action
	selected bool
	pressed  bool
}

// List is an in-memory RowList.
type List struct {
	id      Join
	rows    []row
	count   int
	onInput func(Input)
}

// NewList creates a list with maxRows rows.
func NewList(id Join, maxRows int) *List {
	if maxRows < 0 {
		maxRows = 0
	}
	return &List{id: id, rows: make([]row, maxRows)}
}

// ID returns the list identifier.
func (l *List) ID() Join { return l.id }

// MaxRows returns the row capacity.
func (l *List) MaxRows() int { return len(l.rows) }

// Count returns the number of rows currently shown.
func (l *List) Count() int { return l.count }

// SetCount sets the number of rows shown, clamped to [0, MaxRows].
func (l *List) SetCount(n int) {
	switch {
	case n < 0:
		n = 0
	case n > len(l.rows):
		n = len(l.rows)
	}
	l.count = n
}

func (l *List) at(r int) (*row, error) {
	if r < 1 || r > len(l.rows) {
		return nil, fmt.Errorf("%w: %d (max %d)", ErrRowOutOfRange, r, len(l.rows))
	}
	return &l.rows[r-1], nil
}

// SetRowText sets the label of row r.
func (l *List) SetRowText(r int, text string) error {
	rw, err := l.at(r)
	if err != nil {
		return err
	}
	rw.text = text
	return nil
}

// RowText returns the label of row r, or "" if out of range.
func (l *List) RowText(r int) string {
	rw, err := l.at(r)
	if err != nil {
		return ""
	}
	return rw.text
}

// SetRowAction binds the toggle action of row r.
func (l *List) SetRowAction(r int, action Action) error {
	rw, err := l.at(r)
	if err != nil {
		return err
	}
	rw.action = action
	return nil
}

// ClearRowAction unbinds the toggle action of row r.
func (l *List) ClearRowAction(r int) error {
	rw, err := l.at(r)
	if err != nil {
		return err
	}
	rw.action = nil
	return nil
}

// SetRowSelected pushes the selected feedback of row r.
func (l *List) SetRowSelected(r int, selected bool) error {
	rw, err := l.at(r)
	if err != nil {
		return err
	}
	rw.selected = selected
	return nil
}

// RowSelected returns the selected feedback of row r.
func (l *List) RowSelected(r int) bool {
	rw, err := l.at(r)
	if err != nil {
		return false
	}
	return rw.selected
}

// RowBound reports whether row r has a toggle action.
func (l *List) RowBound(r int) bool {
	rw, err := l.at(r)
	if err != nil {
		return false
	}
	return rw.action != nil
}

// SelectedRows returns the rows whose feedback is true.
func (l *List) SelectedRows() []int {
	var out []int
	for i := range l.rows {
		if l.rows[i].selected {
			out = append(out, i+1)
		}
	}
	return out
}

// PressRow sends a press transition to row r. Rows beyond Count are inert.
func (l *List) PressRow(r int) bool { return l.input(r, true) }

// ReleaseRow sends a release transition to row r.
func (l *List) ReleaseRow(r int) bool { return l.input(r, false) }

// TapRow presses and releases row r.
func (l *List) TapRow(r int) bool {
	l.PressRow(r)
	return l.ReleaseRow(r)
}

func (l *List) input(r int, value bool) bool {
	rw, err := l.at(r)
	if err != nil || r > l.count {
		return false
	}
	if rw.pressed == value {
		return false
	}
	rw.pressed = value
	action := rw.action
	if l.onInput != nil {
		l.onInput(Input{Join: l.id, Row: r, Value: value, Bound: action != nil})
	}
	if action == nil {
		return false
	}
	action(value)
	return true
}
