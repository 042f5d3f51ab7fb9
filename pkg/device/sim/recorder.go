package sim

import (
	"fmt"
	"sync"
)

// Call is one recorded device operation.
type Call struct {
	Device string
	Op     string
	Arg    string
}

// String formats the call as "device.op(arg)".
func (c Call) String() string {
	return fmt.Sprintf("%s.%s(%s)", c.Device, c.Op, c.Arg)
}

// Recorder collects device calls.
type Recorder struct {
	mu    sync.Mutex
	calls []Call
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) record(dev, op, arg string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{Device: dev, Op: op, Arg: arg})
}

// Calls returns a copy of the recorded calls.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Ops returns the recorded calls formatted with Call.String.
func (r *Recorder) Ops() []string {
	calls := r.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.String()
	}
	return out
}

// Reset discards all recorded calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}
