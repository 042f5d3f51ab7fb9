package log

import (
	"io"
	"os"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

// Stats counts what a FileLogger did with the events it was given.
type Stats struct {
	Written int
	Dropped int
}

// syncer is implemented by *os.File.
type syncer interface {
	Sync() error
}

// FileLogger writes panel events as a stream of tagged CBOR records.
// Error and lifecycle events are synced to stable storage when the
// destination supports it, so the trail leading up to a crash survives.
// It is safe for concurrent use.
type FileLogger struct {
	mu     sync.Mutex
	dst    io.WriteCloser
	enc    *cbor.Encoder
	stats  Stats
	closed bool
}

// NewFileLogger appends to the log file at path, creating it with mode 0644.
func NewFileLogger(path string) (*FileLogger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return NewStreamLogger(f), nil
}

// NewStreamLogger writes events to dst. Close closes dst.
func NewStreamLogger(dst io.WriteCloser) *FileLogger {
	return &FileLogger{dst: dst, enc: NewEncoder(dst)}
}

// Log writes event. Failures are counted in Stats, never returned to the
// panel.
func (l *FileLogger) Log(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		l.stats.Dropped++
		return
	}
	if err := l.enc.Encode(event); err != nil {
		l.stats.Dropped++
		return
	}
	l.stats.Written++

	if event.Category == CategoryError || event.Category == CategoryState {
		if s, ok := l.dst.(syncer); ok {
			_ = s.Sync()
		}
	}
}

// Stats returns the write counters.
func (l *FileLogger) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stats
}

// Close closes the destination. Later events are dropped. Repeated calls
// return nil.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true
	return l.dst.Close()
}

var _ Logger = (*FileLogger)(nil)
