package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/RBSystems/vcpanel-go/pkg/log"
)

const timeFormat = "2006-01-02T15:04:05.000000Z"

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	ts := event.Timestamp.UTC().Format(timeFormat)
	header := fmt.Sprintf("%s [%s] %s %s", ts, shortenID(event.SessionID), event.Layer, event.Category)
	if event.CameraKey != "" {
		header += " cam=" + event.CameraKey
	}
	fmt.Fprintln(w, header)

	switch {
	case event.Input != nil:
		formatInput(w, event.Input)
	case event.Binding != nil:
		formatBinding(w, event.Binding)
	case event.Mode != nil:
		formatMode(w, event.Mode)
	case event.Selection != nil:
		formatSelection(w, event.Selection)
	case event.Preset != nil:
		formatPreset(w, event.Preset)
	case event.StateChange != nil:
		formatStateChange(w, event.StateChange)
	case event.Error != nil:
		formatError(w, event.Error)
	}

	fmt.Fprintln(w)
}

// shortenID returns the first 8 characters of a session ID.
func shortenID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatInput(w io.Writer, in *log.InputEvent) {
	edge := "release"
	if in.Value {
		edge = "press"
	}
	if in.Row > 0 {
		fmt.Fprintf(w, "  List %d row %d %s\n", in.Join, in.Row, edge)
	} else {
		fmt.Fprintf(w, "  Join %d %s\n", in.Join, edge)
	}
	if !in.Bound {
		fmt.Fprintln(w, "  (unbound)")
	}
}

func formatBinding(w io.Writer, b *log.BindingEvent) {
	if b.Capabilities != "" {
		fmt.Fprintf(w, "  Capabilities: %s\n", b.Capabilities)
	}
	fmt.Fprintf(w, "  Bound: %s\n", joinList(b.Bound))
	if len(b.Cleared) > 0 {
		fmt.Fprintf(w, "  Cleared: %s\n", joinList(b.Cleared))
	}
}

func formatMode(w io.Writer, m *log.ModeEvent) {
	old := m.OldMode
	if old == "" {
		old = "-"
	}
	fmt.Fprintf(w, "  %s -> %s", old, m.NewMode)
	if m.Silent {
		fmt.Fprint(w, " (silent)")
	}
	fmt.Fprintln(w)
}

func formatSelection(w io.Writer, s *log.SelectionEvent) {
	fmt.Fprintf(w, "  Camera: %s", s.CameraKey)
	if s.CameraName != "" {
		fmt.Fprintf(w, " %q", s.CameraName)
	}
	if s.Row > 0 {
		fmt.Fprintf(w, " row %d", s.Row)
	}
	fmt.Fprintln(w)
}

func formatPreset(w io.Writer, p *log.PresetEvent) {
	list := "near"
	if p.FarEnd {
		list = "far"
	}
	switch p.Action {
	case log.PresetNames:
		fmt.Fprintf(w, "  NAMES (%s): %s\n", list, strings.Join(quoteAll(p.Names), ", "))
	default:
		fmt.Fprintf(w, "  %s preset %d (%s)\n", p.Action, p.ID, list)
	}
}

func formatStateChange(w io.Writer, sc *log.StateChangeEvent) {
	fmt.Fprintf(w, "  Entity: %s\n", sc.Entity)
	if sc.OldState != "" {
		fmt.Fprintf(w, "  %s -> %s\n", sc.OldState, sc.NewState)
	} else {
		fmt.Fprintf(w, "  -> %s\n", sc.NewState)
	}
	if sc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", sc.Reason)
	}
}

func formatError(w io.Writer, e *log.ErrorEventData) {
	fmt.Fprintf(w, "  Layer: %s\n", e.Layer)
	fmt.Fprintf(w, "  Message: %s\n", e.Message)
	if e.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", e.Context)
	}
}

func joinList(js []uint32) string {
	if len(js) == 0 {
		return "-"
	}
	parts := make([]string, len(js))
	for i, j := range js {
		parts[i] = fmt.Sprint(j)
	}
	return strings.Join(parts, " ")
}

func quoteAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = fmt.Sprintf("%q", s)
	}
	return out
}

// RunView prints every event matching filter.
func RunView(path string, filter log.Filter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	return reader.Each(func(event log.Event) error {
		formatEvent(output, event)
		return nil
	})
}
