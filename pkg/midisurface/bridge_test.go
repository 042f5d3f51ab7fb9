package midisurface

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"

	"github.com/RBSystems/vcpanel-go/pkg/signal"
)

const (
	joinUp     signal.Join = 1211
	joinPreset signal.Join = 1241
)

func inline() Poster {
	return PosterFunc(func(fn func()) error {
		fn()
		return nil
	})
}

type sentNote struct {
	key, velocity uint8
}

// newTestBridge returns a bridge whose feedback lands in the returned slice.
func newTestBridge(t *testing.T, p *signal.Panel, post Poster) (*Bridge, *[]sentNote) {
	t.Helper()

	b := New(p, post, Config{
		Notes:   NoteMap{72: joinUp, 11: joinPreset},
		Channel: 0,
	})
	var sent []sentNote
	b.send = func(msg gomidi.Message) error {
		require.Len(t, msg, 3)
		require.Equal(t, byte(0x90), msg[0]&0xF0, "feedback is not note-on: %v", msg)
		sent = append(sent, sentNote{msg[1], msg[2]})
		return nil
	}
	return b, &sent
}

func TestBridgePressRelease(t *testing.T) {
	p := signal.NewPanel()
	var edges []bool
	p.SetBoolAction(joinUp, func(v bool) { edges = append(edges, v) })

	b, _ := newTestBridge(t, p, inline())

	b.Handle(gomidi.NoteOn(0, 72, 100))
	assert.True(t, p.Pressed(joinUp))

	b.Handle(gomidi.NoteOff(0, 72))
	assert.False(t, p.Pressed(joinUp))

	assert.Equal(t, []bool{true, false}, edges)
}

func TestBridgeNoteOnZeroVelocityReleases(t *testing.T) {
	p := signal.NewPanel()
	b, _ := newTestBridge(t, p, inline())

	b.Handle(gomidi.NoteOn(0, 72, 90))
	b.Handle(gomidi.NoteOn(0, 72, 0))

	if p.Pressed(joinUp) {
		t.Error("Pressed() = true after note-on with velocity 0")
	}
}

func TestBridgeIgnoresUnmappedAndOtherMessages(t *testing.T) {
	p := signal.NewPanel()
	var posted int
	b, _ := newTestBridge(t, p, PosterFunc(func(fn func()) error {
		posted++
		fn()
		return nil
	}))

	b.Handle(gomidi.NoteOn(0, 99, 100))
	b.Handle(gomidi.ControlChange(0, 72, 127))

	if posted != 0 {
		t.Errorf("posted = %d, want 0", posted)
	}
}

func TestBridgePostFailureDropsInput(t *testing.T) {
	p := signal.NewPanel()
	b, _ := newTestBridge(t, p, PosterFunc(func(func()) error {
		return errors.New("closed")
	}))

	b.Handle(gomidi.NoteOn(0, 72, 100))

	if p.Pressed(joinUp) {
		t.Error("input reached the panel through a failing poster")
	}
}

func TestBridgeFeedback(t *testing.T) {
	p := signal.NewPanel()
	b, sent := newTestBridge(t, p, inline())
	p.OnFeedback(b.Feedback)

	p.SetBool(joinPreset, true)
	p.SetBool(joinPreset, false)
	p.SetBool(signal.Join(5000), true) // unmapped

	assert.Equal(t, []sentNote{{11, DefaultLEDOn}, {11, DefaultLEDOff}}, *sent)
}

func TestBridgeSync(t *testing.T) {
	p := signal.NewPanel()
	b, sent := newTestBridge(t, p, inline())
	p.SetBool(joinUp, true)

	require.NoError(t, b.Sync())

	assert.Equal(t, []sentNote{{11, DefaultLEDOff}, {72, DefaultLEDOn}}, *sent)
}

func TestBridgeDetachedFeedbackIsSilent(t *testing.T) {
	p := signal.NewPanel()
	b := New(p, inline(), Config{Notes: NoteMap{11: joinPreset}})

	p.OnFeedback(b.Feedback)
	p.SetBool(joinPreset, true)

	if b.Attached() {
		t.Error("Attached() = true for a new bridge")
	}
	if _, err := b.Port(); !errors.Is(err, ErrNotAttached) {
		t.Errorf("Port() error = %v, want %v", err, ErrNotAttached)
	}
	b.Detach()
}
