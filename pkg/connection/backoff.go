package connection

import (
	"math/rand"
	"sync"
	"time"
)

// Backoff defaults.
const (
	InitialBackoff    = 500 * time.Millisecond
	MaxBackoff        = 10 * time.Second
	BackoffMultiplier = 2.0
	JitterFactor      = 0.2
)

// Policy configures a Backoff. Zero fields take the defaults; a negative
// Jitter disables jitter.
type Policy struct {
	Initial    time.Duration
	Max        time.Duration
	Multiplier float64
	Jitter     float64
}

func (p Policy) withDefaults() Policy {
	if p.Initial <= 0 {
		p.Initial = InitialBackoff
	}
	if p.Max <= 0 {
		p.Max = MaxBackoff
	}
	if p.Max < p.Initial {
		p.Max = p.Initial
	}
	if p.Multiplier <= 1 {
		p.Multiplier = BackoffMultiplier
	}
	switch {
	case p.Jitter < 0:
		p.Jitter = 0
	case p.Jitter == 0:
		p.Jitter = JitterFactor
	}
	return p
}

// Backoff produces exponentially growing delays with jitter.
type Backoff struct {
	mu       sync.Mutex
	policy   Policy
	current  time.Duration
	attempts int
	rng      *rand.Rand
}

// NewBackoff creates a backoff with the given policy.
func NewBackoff(p Policy) *Backoff {
	p = p.withDefaults()
	return &Backoff{
		policy:  p,
		current: p.Initial,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Next returns the jittered delay for this attempt and advances.
func (b *Backoff) Next() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()

	delay := b.current
	if b.policy.Jitter > 0 {
		delay += time.Duration(float64(delay) * b.policy.Jitter * b.rng.Float64())
	}

	b.attempts++
	b.current = min(time.Duration(float64(b.current)*b.policy.Multiplier), b.policy.Max)
	return delay
}

// Current returns the next base delay, without jitter.
func (b *Backoff) Current() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// Attempts returns the number of delays handed out since the last Reset.
func (b *Backoff) Attempts() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.attempts
}

// Reset returns to the initial delay.
func (b *Backoff) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current = b.policy.Initial
	b.attempts = 0
}
