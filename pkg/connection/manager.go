package connection

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Errors.
var (
	ErrClosed          = errors.New("connection manager closed")
	ErrAlreadyAttached = errors.New("already attached")
)

// State is the attachment state of the link.
type State uint8

const (
	StateDetached State = iota
	StateAttaching
	StateAttached
	StateReattaching
	StateClosed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateDetached:
		return "DETACHED"
	case StateAttaching:
		return "ATTACHING"
	case StateAttached:
		return "ATTACHED"
	case StateReattaching:
		return "REATTACHING"
	case StateClosed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}

// AttachFunc opens the link. It returns nil once the link is usable.
type AttachFunc func(ctx context.Context) error

// Options configures a Manager.
type Options struct {
	Backoff Policy

	// OnStateChange is called after every transition, outside the lock.
	OnStateChange func(oldState, newState State)

	// After waits for a backoff delay. Defaults to time.After.
	After func(time.Duration) <-chan time.Time
}

// Manager attaches a link and reattaches it after loss.
type Manager struct {
	mu      sync.Mutex
	state   State
	attach  AttachFunc
	backoff *Backoff
	opts    Options

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	lost   chan struct{}
}

// NewManager creates a manager. Call Start to enable reattaching.
func NewManager(attach AttachFunc, opts Options) *Manager {
	if opts.After == nil {
		opts.After = time.After
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		attach:  attach,
		backoff: NewBackoff(opts.Backoff),
		opts:    opts,
		ctx:     ctx,
		cancel:  cancel,
		lost:    make(chan struct{}, 1),
	}
}

// State returns the current state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Attempts returns the failed reattach attempts since the last attach.
func (m *Manager) Attempts() int { return m.backoff.Attempts() }

// Attach opens the link once. On failure the state returns to detached;
// the caller may then call Lost to hand the retries to the background loop.
func (m *Manager) Attach(ctx context.Context) error {
	m.mu.Lock()
	switch m.state {
	case StateAttached:
		m.mu.Unlock()
		return ErrAlreadyAttached
	case StateClosed:
		m.mu.Unlock()
		return ErrClosed
	}
	old := m.state
	m.state = StateAttaching
	m.mu.Unlock()
	m.notify(old, StateAttaching)

	if err := m.attach(ctx); err != nil {
		m.transition(StateAttaching, StateDetached)
		return err
	}
	m.backoff.Reset()
	m.transition(StateAttaching, StateAttached)
	return nil
}

// Lost reports that the link went away, or that an initial Attach failed.
// The background loop retries until the link is back or Close is called.
func (m *Manager) Lost() {
	m.mu.Lock()
	if m.state != StateAttached && m.state != StateDetached {
		m.mu.Unlock()
		return
	}
	old := m.state
	m.state = StateReattaching
	m.mu.Unlock()
	m.notify(old, StateReattaching)

	select {
	case m.lost <- struct{}{}:
	default:
	}
}

// Start runs the reattach loop in the background.
func (m *Manager) Start() {
	m.wg.Add(1)
	go m.loop()
}

// Close stops the loop and waits for it.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.state == StateClosed {
		m.mu.Unlock()
		return
	}
	old := m.state
	m.state = StateClosed
	m.mu.Unlock()
	m.notify(old, StateClosed)

	m.cancel()
	m.wg.Wait()
}

func (m *Manager) loop() {
	defer m.wg.Done()
	for {
		select {
		case <-m.ctx.Done():
			return
		case <-m.lost:
			m.reattach()
		}
	}
}

func (m *Manager) reattach() {
	for {
		if m.State() != StateReattaching {
			return
		}

		select {
		case <-m.ctx.Done():
			return
		case <-m.opts.After(m.backoff.Next()):
		}

		if m.State() != StateReattaching {
			return
		}
		if err := m.attach(m.ctx); err != nil {
			continue
		}

		m.backoff.Reset()
		m.transition(StateReattaching, StateAttached)
		return
	}
}

// transition moves from -> to if the state is still from.
func (m *Manager) transition(from, to State) {
	m.mu.Lock()
	if m.state != from {
		m.mu.Unlock()
		return
	}
	m.state = to
	m.mu.Unlock()
	m.notify(from, to)
}

func (m *Manager) notify(oldState, newState State) {
	if m.opts.OnStateChange != nil {
		m.opts.OnStateChange(oldState, newState)
	}
}
