package feedback

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoolLinkPushesCurrent(t *testing.T) {
	src := true
	f := NewBool(func() bool { return src })

	var got []bool
	f.Link(func(v bool) { got = append(got, v) })

	assert.Equal(t, []bool{true}, got)
}

func TestBoolFireUpdateForcesPush(t *testing.T) {
	src := false
	f := NewBool(func() bool { return src })

	var sunk []bool
	f.Link(func(v bool) { sunk = append(sunk, v) })
	changes := 0
	f.OnChange(func(bool) { changes++ })

	f.FireUpdate() // unchanged, still pushed
	src = true
	f.FireUpdate()

	assert.Equal(t, []bool{false, false, true}, sunk)
	if changes != 1 {
		t.Errorf("changes = %d, want 1", changes)
	}
	if !f.Value() {
		t.Error("Value() = false, want true")
	}
}

func TestValueSetNotifiesOnChange(t *testing.T) {
	var v Value
	var got []bool
	v.OnChange(func(b bool) { got = append(got, b) })

	v.Set(false)
	v.Set(true)
	v.Set(true)
	v.Set(false)

	assert.Equal(t, []bool{true, false}, got)
	assert.False(t, v.Get())
}
