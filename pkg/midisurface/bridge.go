package midisurface

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"github.com/RBSystems/vcpanel-go/pkg/signal"
)

// LED velocities.
const (
	DefaultLEDOn  = 21 // green on Launchpad-style palettes
	DefaultLEDOff = 0
)

// Target is the panel the bridge presses.
type Target interface {
	Press(join signal.Join) bool
	Release(join signal.Join) bool
	Bool(join signal.Join) bool
}

// Poster runs callbacks on the panel's goroutine.
type Poster interface {
	Post(fn func()) error
}

// PosterFunc adapts a function to Poster.
type PosterFunc func(fn func()) error

// Post implements Poster.
func (f PosterFunc) Post(fn func()) error { return f(fn) }

// Config configures a Bridge.
type Config struct {
	Notes NoteMap

	// Channel carries LED feedback.
	Channel uint8

	// LEDOn and LEDOff are the note-on velocities for lit and dark pads.
	// Zero LEDOn uses DefaultLEDOn.
	LEDOn  uint8
	LEDOff uint8

	Logger *slog.Logger
}

// Bridge connects a MIDI controller to a panel.
type Bridge struct {
	cfg    Config
	target Target
	post   Poster
	byJoin map[signal.Join]uint8
	logger *slog.Logger

	mu   sync.Mutex
	send func(gomidi.Message) error
	stop func()
	in   drivers.In
	out  drivers.Out
}

// New creates a detached bridge.
func New(target Target, post Poster, cfg Config) *Bridge {
	if cfg.LEDOn == 0 {
		cfg.LEDOn = DefaultLEDOn
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	byJoin := make(map[signal.Join]uint8, len(cfg.Notes))
	for note, join := range cfg.Notes {
		byJoin[join] = note
	}
	return &Bridge{
		cfg:    cfg,
		target: target,
		post:   post,
		byJoin: byJoin,
		logger: logger,
	}
}

// Handle translates one incoming message. It is safe to call from the
// driver goroutine.
func (b *Bridge) Handle(msg gomidi.Message) {
	var channel, key, velocity uint8

	switch {
	case msg.GetNoteStart(&channel, &key, &velocity):
		b.forward(key, true)
	case msg.GetNoteEnd(&channel, &key):
		b.forward(key, false)
	}
}

func (b *Bridge) forward(note uint8, pressed bool) {
	join, ok := b.cfg.Notes[note]
	if !ok {
		return
	}
	err := b.post.Post(func() {
		if pressed {
			b.target.Press(join)
		} else {
			b.target.Release(join)
		}
	})
	if err != nil {
		b.logger.Warn("midi input dropped", "note", note, "join", uint32(join), "error", err)
	}
}

// Feedback echoes the current value of join to the controller. It must run
// on the panel goroutine; subscribe it with signal.Panel.OnFeedback.
func (b *Bridge) Feedback(join signal.Join) {
	note, ok := b.byJoin[join]
	if !ok {
		return
	}
	b.light(note, b.target.Bool(join))
}

// Sync lights every mapped pad from the panel state.
func (b *Bridge) Sync() error {
	return b.post.Post(func() {
		for _, note := range b.cfg.Notes.Notes() {
			b.light(note, b.target.Bool(b.cfg.Notes[note]))
		}
	})
}

func (b *Bridge) light(note uint8, on bool) {
	b.mu.Lock()
	send := b.send
	b.mu.Unlock()
	if send == nil {
		return
	}

	velocity := b.cfg.LEDOff
	if on {
		velocity = b.cfg.LEDOn
	}
	if err := send(gomidi.NoteOn(b.cfg.Channel, note, velocity)); err != nil {
		b.logger.Debug("midi feedback failed", "note", note, "error", err)
	}
}

// Attach starts listening on in and, when out is not nil, sends feedback to
// it. Any previous attachment is released first.
func (b *Bridge) Attach(in drivers.In, out drivers.Out) error {
	b.Detach()

	var send func(gomidi.Message) error
	if out != nil {
		var err error
		if send, err = gomidi.SendTo(out); err != nil {
			return fmt.Errorf("open output %s: %w", out, err)
		}
	}

	stop, err := gomidi.ListenTo(in, func(msg gomidi.Message, _ int32) {
		b.Handle(msg)
	})
	if err != nil {
		if out != nil {
			_ = out.Close()
		}
		return fmt.Errorf("open input %s: %w", in, err)
	}

	b.mu.Lock()
	b.in, b.out = in, out
	b.send, b.stop = send, stop
	b.mu.Unlock()

	b.logger.Info("midi controller attached", "in", in.String(), "feedback", out != nil)
	return b.Sync()
}

// AttachPort finds the ports whose name contains name and attaches to them.
// A missing output port only disables feedback.
func (b *Bridge) AttachPort(_ context.Context, name string) error {
	in, err := gomidi.FindInPort(name)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrNoPort, name)
	}
	out, err := gomidi.FindOutPort(name)
	if err != nil {
		out = nil
	}
	return b.Attach(in, out)
}

// Attached reports whether an input port is attached.
func (b *Bridge) Attached() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.in != nil
}

// Port returns the attached input port name.
func (b *Bridge) Port() (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.in == nil {
		return "", ErrNotAttached
	}
	return b.in.String(), nil
}

// Detach stops listening and closes the ports.
func (b *Bridge) Detach() {
	b.mu.Lock()
	stop, in, out := b.stop, b.in, b.out
	b.stop, b.send, b.in, b.out = nil, nil, nil, nil
	b.mu.Unlock()

	if stop != nil {
		stop()
	}
	if in != nil {
		_ = in.Close()
	}
	if out != nil {
		_ = out.Close()
	}
}

// Watch polls the driver's port list every interval and calls lost once
// the attached input port disappears. It returns when ctx is done or after
// lost was called.
func (b *Bridge) Watch(ctx context.Context, interval time.Duration, lost func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			name, err := b.Port()
			if err != nil {
				continue
			}
			if !portPresent(gomidi.GetInPorts(), name) {
				b.logger.Warn("midi controller lost", "in", name)
				b.Detach()
				lost()
				return
			}
		}
	}
}

func portPresent(ports []drivers.In, name string) bool {
	for _, p := range ports {
		if strings.EqualFold(p.String(), name) {
			return true
		}
	}
	return false
}
