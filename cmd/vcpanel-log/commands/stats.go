package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/RBSystems/vcpanel-go/pkg/log"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents      int
	EventsByLayer    map[log.Layer]int
	EventsByCategory map[log.Category]int
	Sessions         map[string]*SessionStats
	Recalls          int
	Stores           int
	Errors           int
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// SessionStats holds statistics for one driver run.
type SessionStats struct {
	Panel       string
	FirstSeen   time.Time
	LastSeen    time.Time
	Events      int
	Inputs      int
	Unbound     int
	ModeChanges int
	Cameras     map[string]int
}

// Collect reads every event matching filter and aggregates them.
func Collect(path string, filter log.Filter) (*Stats, error) {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByLayer:    make(map[log.Layer]int),
		EventsByCategory: make(map[log.Category]int),
		Sessions:         make(map[string]*SessionStats),
	}

	err = reader.Each(func(event log.Event) error {
		stats.add(event)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read event: %w", err)
	}
	return stats, nil
}

func (s *Stats) add(event log.Event) {
	s.TotalEvents++
	s.EventsByLayer[event.Layer]++
	s.EventsByCategory[event.Category]++

	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	sess, ok := s.Sessions[event.SessionID]
	if !ok {
		sess = &SessionStats{
			Panel:     event.Panel,
			FirstSeen: event.Timestamp,
			LastSeen:  event.Timestamp,
			Cameras:   make(map[string]int),
		}
		s.Sessions[event.SessionID] = sess
	}
	sess.Events++
	if event.Timestamp.After(sess.LastSeen) {
		sess.LastSeen = event.Timestamp
	}

	switch {
	case event.Input != nil:
		sess.Inputs++
		if !event.Input.Bound {
			sess.Unbound++
		}
	case event.Mode != nil:
		sess.ModeChanges++
	case event.Selection != nil:
		sess.Cameras[event.Selection.CameraKey]++
	case event.Preset != nil:
		switch event.Preset.Action {
		case log.PresetRecall:
			s.Recalls++
		case log.PresetStore:
			s.Stores++
		}
	case event.Error != nil:
		s.Errors++
	}
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, filter log.Filter, w io.Writer) error {
	stats, err := Collect(path, filter)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Panel Event Log Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Layer:")
	for _, layer := range []log.Layer{log.LayerSurface, log.LayerDriver, log.LayerDevice} {
		if count := stats.EventsByLayer[layer]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", layer.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for c := log.CategoryInput; c <= log.CategoryError; c++ {
		if count := stats.EventsByCategory[c]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", c.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	if stats.Recalls > 0 || stats.Stores > 0 {
		fmt.Fprintf(w, "Presets: %d recalled, %d stored\n", stats.Recalls, stats.Stores)
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Sessions: %d\n", len(stats.Sessions))
	type sessionInfo struct {
		id    string
		stats *SessionStats
	}
	sessions := make([]sessionInfo, 0, len(stats.Sessions))
	for id, ss := range stats.Sessions {
		sessions = append(sessions, sessionInfo{id, ss})
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].stats.FirstSeen.Before(sessions[j].stats.FirstSeen)
	})
	for _, s := range sessions {
		duration := s.stats.LastSeen.Sub(s.stats.FirstSeen).Round(time.Millisecond)
		fmt.Fprintf(w, "  [%s] %s: %d events, duration %s\n", shortenID(s.id), s.stats.Panel, s.stats.Events, duration)
		fmt.Fprintf(w, "           Inputs: %d (%d unbound), mode changes: %d\n",
			s.stats.Inputs, s.stats.Unbound, s.stats.ModeChanges)
		if len(s.stats.Cameras) > 0 {
			keys := make([]string, 0, len(s.stats.Cameras))
			for k := range s.stats.Cameras {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprint(w, "           Selections:")
			for _, k := range keys {
				fmt.Fprintf(w, " %s=%d", k, s.stats.Cameras[k])
			}
			fmt.Fprintln(w)
		}
	}

	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}
