package connection

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestBackoff(t *testing.T) {
	t.Run("DefaultSequence", func(t *testing.T) {
		b := NewBackoff(Policy{})

		expected := []time.Duration{
			500 * time.Millisecond,
			1 * time.Second,
			2 * time.Second,
			4 * time.Second,
			8 * time.Second,
			10 * time.Second,
			10 * time.Second,
		}

		for i, exp := range expected {
			base := b.Current()
			_ = b.Next()
			if base != exp {
				t.Errorf("Attempt %d: base = %v, want %v", i, base, exp)
			}
		}
	})

	t.Run("JitterBounds", func(t *testing.T) {
		b := NewBackoff(Policy{Initial: time.Second, Max: time.Second})

		for i := 0; i < 20; i++ {
			d := b.Next()
			if d < time.Second || d > 1200*time.Millisecond {
				t.Errorf("Next() = %v, want within [1s, 1.2s]", d)
			}
		}
	})

	t.Run("NoJitter", func(t *testing.T) {
		b := NewBackoff(Policy{Initial: 100 * time.Millisecond, Max: 300 * time.Millisecond, Jitter: -1})

		got := []time.Duration{b.Next(), b.Next(), b.Next(), b.Next()}
		want := []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 300 * time.Millisecond, 300 * time.Millisecond}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("Next() #%d = %v, want %v", i, got[i], want[i])
			}
		}
	})

	t.Run("Reset", func(t *testing.T) {
		b := NewBackoff(Policy{})
		for i := 0; i < 3; i++ {
			b.Next()
		}
		if b.Attempts() != 3 {
			t.Errorf("Attempts() = %d, want 3", b.Attempts())
		}

		b.Reset()
		if b.Current() != InitialBackoff {
			t.Errorf("Current() = %v after reset, want %v", b.Current(), InitialBackoff)
		}
		if b.Attempts() != 0 {
			t.Errorf("Attempts() = %d after reset, want 0", b.Attempts())
		}
	})

	t.Run("MaxBelowInitial", func(t *testing.T) {
		b := NewBackoff(Policy{Initial: time.Second, Max: time.Millisecond, Jitter: -1})
		if got := b.Next(); got != time.Second {
			t.Errorf("Next() = %v, want 1s", got)
		}
		if got := b.Current(); got != time.Second {
			t.Errorf("Current() = %v, want 1s", got)
		}
	})
}

// immediate fires every backoff delay at once.
func immediate(time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- time.Time{}
	return ch
}

type transitions struct {
	mu  sync.Mutex
	got []State
}

func (tr *transitions) record(_, newState State) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.got = append(tr.got, newState)
}

func (tr *transitions) states() []State {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return append([]State(nil), tr.got...)
}

func TestManagerAttach(t *testing.T) {
	var calls atomic.Int32
	tr := &transitions{}
	m := NewManager(func(context.Context) error {
		calls.Add(1)
		return nil
	}, Options{OnStateChange: tr.record})
	defer m.Close()

	if err := m.Attach(context.Background()); err != nil {
		t.Fatalf("Attach() error = %v", err)
	}
	if m.State() != StateAttached {
		t.Errorf("State() = %v, want %v", m.State(), StateAttached)
	}
	if err := m.Attach(context.Background()); !errors.Is(err, ErrAlreadyAttached) {
		t.Errorf("second Attach() error = %v, want %v", err, ErrAlreadyAttached)
	}
	if calls.Load() != 1 {
		t.Errorf("attach calls = %d, want 1", calls.Load())
	}

	got := tr.states()
	want := []State{StateAttaching, StateAttached}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("transitions = %v, want %v", got, want)
	}
}

func TestManagerAttachFailure(t *testing.T) {
	errNoPort := errors.New("no port")
	m := NewManager(func(context.Context) error { return errNoPort }, Options{})
	defer m.Close()

	if err := m.Attach(context.Background()); !errors.Is(err, errNoPort) {
		t.Errorf("Attach() error = %v, want %v", err, errNoPort)
	}
	if m.State() != StateDetached {
		t.Errorf("State() = %v, want %v", m.State(), StateDetached)
	}
}

func TestManagerReattach(t *testing.T) {
	var calls atomic.Int32
	attached := make(chan struct{}, 1)

	m := NewManager(func(context.Context) error {
		// First call attaches, the next two fail, the fourth succeeds.
		switch calls.Add(1) {
		case 2, 3:
			return errors.New("unplugged")
		}
		return nil
	}, Options{
		After: immediate,
		OnStateChange: func(_, newState State) {
			if newState == StateAttached {
				select {
				case attached <- struct{}{}:
				default:
				}
			}
		},
	})
	m.Start()
	defer m.Close()

	if err := m.Attach(context.Background()); err != nil {
		t.Fatalf("Attach() error = %v", err)
	}
	<-attached

	m.Lost()

	select {
	case <-attached:
	case <-time.After(2 * time.Second):
		t.Fatalf("reattach did not complete, state %v", m.State())
	}

	if calls.Load() != 4 {
		t.Errorf("attach calls = %d, want 4", calls.Load())
	}
	if m.Attempts() != 0 {
		t.Errorf("Attempts() = %d after reattach, want 0", m.Attempts())
	}
}

func TestManagerLostAfterFailedAttach(t *testing.T) {
	var calls atomic.Int32
	done := make(chan struct{})

	m := NewManager(func(context.Context) error {
		if calls.Add(1) == 1 {
			return errors.New("not plugged in yet")
		}
		return nil
	}, Options{
		After: immediate,
		OnStateChange: func(_, newState State) {
			if newState == StateAttached {
				close(done)
			}
		},
	})
	m.Start()
	defer m.Close()

	if err := m.Attach(context.Background()); err == nil {
		t.Fatal("Attach() error = nil, want failure")
	}
	m.Lost()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("reattach did not complete, state %v", m.State())
	}
}

func TestManagerCloseStopsRetries(t *testing.T) {
	var calls atomic.Int32
	m := NewManager(func(context.Context) error {
		calls.Add(1)
		return errors.New("gone")
	}, Options{Backoff: Policy{Initial: time.Hour}})
	m.Start()

	m.Lost()
	m.Close()

	if m.State() != StateClosed {
		t.Errorf("State() = %v, want %v", m.State(), StateClosed)
	}
	if calls.Load() != 0 {
		t.Errorf("attach calls = %d, want 0", calls.Load())
	}
	if err := m.Attach(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("Attach() after Close error = %v, want %v", err, ErrClosed)
	}

	// Idempotent.
	m.Close()
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateDetached, "DETACHED"},
		{StateAttaching, "ATTACHING"},
		{StateAttached, "ATTACHED"},
		{StateReattaching, "REATTACHING"},
		{StateClosed, "CLOSED"},
		{State(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
