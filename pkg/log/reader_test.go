package log

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"
)

func createTestLogFile(t *testing.T, events []Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.plog")
	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	return path
}

func TestReaderEmptyFile(t *testing.T) {
	path := createTestLogFile(t, nil)

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	defer r.Close()

	event, err := r.Next()
	if err != io.EOF {
		t.Errorf("expected io.EOF, got err=%v, event=%+v", err, event)
	}
}

func TestReaderMissingFile(t *testing.T) {
	if _, err := NewReader(filepath.Join(t.TempDir(), "nope.plog")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFilteredReader(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	events := []Event{
		{Timestamp: base, SessionID: "a", Panel: "lobby", Layer: LayerSurface, Category: CategoryInput, Input: &InputEvent{Join: 1}},
		{Timestamp: base.Add(time.Second), SessionID: "a", Layer: LayerDriver, Category: CategoryMode, Mode: &ModeEvent{NewMode: "AUTO"}},
		{Timestamp: base.Add(2 * time.Second), SessionID: "b", Layer: LayerDriver, Category: CategoryMode, Mode: &ModeEvent{NewMode: "OFF"}},
		{Timestamp: base.Add(3 * time.Second), SessionID: "b", Layer: LayerDevice, Category: CategoryError, CameraKey: "cam-2",
			Error: &ErrorEventData{Layer: LayerDevice, Message: "x"}},
	}
	path := createTestLogFile(t, events)

	mode := CategoryMode
	device := LayerDevice
	start := base.Add(time.Second)

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"all", Filter{}, 4},
		{"session", Filter{SessionID: "b"}, 2},
		{"category", Filter{Category: &mode}, 2},
		{"layer", Filter{Layer: &device}, 1},
		{"camera", Filter{CameraKey: "cam-2"}, 1},
		{"panel", Filter{Panel: "lobby"}, 1},
		{"session and category", Filter{SessionID: "a", Category: &mode}, 1},
		{"time start", Filter{TimeStart: &start}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewFilteredReader(path, tt.filter)
			if err != nil {
				t.Fatalf("NewFilteredReader() error = %v", err)
			}
			defer r.Close()

			var got int
			for {
				_, err := r.Next()
				if err == io.EOF {
					break
				}
				if err != nil {
					t.Fatalf("Next() error = %v", err)
				}
				got++
			}
			if got != tt.want {
				t.Errorf("matched %d events, want %d", got, tt.want)
			}
		})
	}
}

func TestReaderEOFAfterLastEvent(t *testing.T) {
	path := createTestLogFile(t, []Event{{SessionID: "only", Category: CategoryState,
		StateChange: &StateChangeEvent{Entity: StateEntityVisibility, NewState: "SHOWN"}}})

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	defer r.Close()

	ev, err := r.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if ev.StateChange == nil || ev.StateChange.NewState != "SHOWN" {
		t.Errorf("StateChange = %+v, want NewState SHOWN", ev.StateChange)
	}

	event, err := r.Next()
	if err != io.EOF {
		t.Errorf("expected io.EOF, got err=%v, event=%+v", err, event)
	}
}

func TestReaderEach(t *testing.T) {
	path := createTestLogFile(t, []Event{
		{SessionID: "a", Category: CategoryInput},
		{SessionID: "b", Category: CategoryInput},
		{SessionID: "c", Category: CategoryInput},
	})

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	defer r.Close()

	var ids []string
	if err := r.Each(func(e Event) error {
		ids = append(ids, e.SessionID)
		return nil
	}); err != nil {
		t.Fatalf("Each() error = %v", err)
	}
	if len(ids) != 3 || ids[2] != "c" {
		t.Errorf("Each() visited %v, want [a b c]", ids)
	}
}

func TestReaderEachStops(t *testing.T) {
	path := createTestLogFile(t, []Event{{SessionID: "a"}, {SessionID: "b"}})

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	defer r.Close()

	stop := errors.New("stop")
	calls := 0
	err = r.Each(func(Event) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) {
		t.Errorf("Each() error = %v, want %v", err, stop)
	}
	if calls != 1 {
		t.Errorf("Each() calls = %d, want 1", calls)
	}
}

func TestStreamReader(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	for _, id := range []string{"x", "y"} {
		if err := enc.Encode(Event{SessionID: id}); err != nil {
			t.Fatalf("Encode() error = %v", err)
		}
	}

	r := NewStreamReader(&buf, Filter{SessionID: "y"})
	ev, err := r.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if ev.SessionID != "y" {
		t.Errorf("SessionID = %q, want y", ev.SessionID)
	}
	if _, err := r.Next(); err != io.EOF {
		t.Errorf("Next() error = %v, want io.EOF", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
