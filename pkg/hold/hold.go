package hold

import (
	"errors"
	"fmt"
	"time"

	"github.com/RBSystems/vcpanel-go/pkg/signal"
)

// ErrInvalidThreshold is returned for a non-positive hold threshold.
var ErrInvalidThreshold = errors.New("invalid hold threshold")

// DefaultThreshold is the press duration that turns a tap into a hold.
const DefaultThreshold = 2 * time.Second

// Button tracks the press cycle of one input.
type Button struct {
	clock     Clock
	threshold time.Duration
	onHeld    func()
	onTap     func()

	pressed   bool
	fired     bool
	pressedAt time.Time
	timer     Timer
}

// NewButton creates a Button. onHeld runs once the input has been held for
// threshold; onTap runs on a release before that. Either may be nil.
func NewButton(clock Clock, threshold time.Duration, onHeld, onTap func()) (*Button, error) {
	if threshold <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidThreshold, threshold)
	}
	return &Button{
		clock:     clock,
		threshold: threshold,
		onHeld:    onHeld,
		onTap:     onTap,
	}, nil
}

// Bind creates a Button and returns its action.
func Bind(clock Clock, threshold time.Duration, onHeld, onTap func()) (signal.Action, error) {
	b, err := NewButton(clock, threshold, onHeld, onTap)
	if err != nil {
		return nil, err
	}
	return b.Action(), nil
}

// Action returns the input action driving the button.
func (b *Button) Action() signal.Action {
	return signal.PressRelease(b.press, b.release)
}

// Pressed reports whether a press cycle is in progress.
func (b *Button) Pressed() bool { return b.pressed }

// Threshold returns the hold threshold.
func (b *Button) Threshold() time.Duration { return b.threshold }

func (b *Button) press() {
	if b.pressed {
		return
	}
	b.pressed = true
	b.fired = false
	b.pressedAt = b.clock.Now()
	b.timer = b.clock.AfterFunc(b.threshold, b.expire)
}

func (b *Button) release() {
	if !b.pressed {
		return
	}
	b.pressed = false
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	if b.fired {
		return
	}

	// A timer that is due but not yet delivered still counts as a hold.
	if b.clock.Now().Sub(b.pressedAt) >= b.threshold {
		b.held()
		return
	}
	if b.onTap != nil {
		b.onTap()
	}
}

func (b *Button) expire() {
	if !b.pressed || b.fired {
		return
	}
	b.timer = nil
	b.held()
}

func (b *Button) held() {
	b.fired = true
	if b.onHeld != nil {
		b.onHeld()
	}
}
