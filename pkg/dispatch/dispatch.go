// Package dispatch runs panel callbacks on a single goroutine.
//
// The panel core is not safe for concurrent use. Every input, device event
// and timer in the runtime is posted to a Loop, which runs them one at a
// time in arrival order.
package dispatch

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/RBSystems/vcpanel-go/pkg/hold"
)

// ErrClosed is returned when posting to a loop that has stopped.
var ErrClosed = errors.New("dispatch loop closed")

// DefaultQueueSize is the queue capacity used when none is given.
const DefaultQueueSize = 64

// Loop is a serial callback dispatcher.
type Loop struct {
	queue chan func()
	done  chan struct{}
}

// New creates a loop with a queue of size callbacks.
func New(size int) *Loop {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Loop{
		queue: make(chan func(), size),
		done:  make(chan struct{}),
	}
}

// Run processes callbacks until ctx is cancelled. Callbacks still queued at
// that point are dropped.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.queue:
			fn()
		}
	}
}

// Post queues fn. It blocks while the queue is full.
func (l *Loop) Post(fn func()) error {
	select {
	case <-l.done:
		return ErrClosed
	default:
	}
	select {
	case l.queue <- fn:
		return nil
	case <-l.done:
		return ErrClosed
	}
}

// Do runs fn on the loop and waits for it to finish.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if err := l.Post(func() {
		defer close(finished)
		fn()
	}); err != nil {
		return err
	}
	select {
	case <-finished:
		return nil
	case <-l.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} { return l.done }

// Now implements hold.Clock.
func (l *Loop) Now() time.Time { return time.Now() }

// AfterFunc implements hold.Clock. f runs on the loop after d. Stopping the
// timer also suppresses a callback that fired but is still queued.
func (l *Loop) AfterFunc(d time.Duration, f func()) hold.Timer {
	t := &loopTimer{}
	t.timer = time.AfterFunc(d, func() {
		_ = l.Post(func() {
			if t.stopped.CompareAndSwap(false, true) {
				f()
			}
		})
	})
	return t
}

type loopTimer struct {
	timer   *time.Timer
	stopped atomic.Bool
}

func (t *loopTimer) Stop() bool {
	t.timer.Stop()
	return t.stopped.CompareAndSwap(false, true)
}

// Compile-time interface satisfaction check.
var _ hold.Clock = (*Loop)(nil)
