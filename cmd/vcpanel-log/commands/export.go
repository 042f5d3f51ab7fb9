package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/RBSystems/vcpanel-go/pkg/log"
)

// RunExport writes the events matching filter as jsonl or csv to output,
// or to stdout when output is empty.
func RunExport(path, format, output string, filter log.Filter) error {
	if format != "jsonl" && format != "csv" {
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}

	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if format == "csv" {
		return exportCSV(reader, w)
	}
	return exportJSONL(reader, w)
}

func exportJSONL(reader *log.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	return reader.Each(func(event log.Event) error {
		if err := encoder.Encode(event); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
		return nil
	})
}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"timestamp", "session_id", "panel", "layer", "category", "camera", "detail"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	return reader.Each(func(event log.Event) error {
		row := []string{
			event.Timestamp.UTC().Format(timeFormat),
			event.SessionID,
			event.Panel,
			event.Layer.String(),
			event.Category.String(),
			event.CameraKey,
			detail(event),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
		return nil
	})
}

// detail is the one-line summary used in the csv detail column.
func detail(event log.Event) string {
	switch {
	case event.Input != nil:
		return fmt.Sprintf("join=%d row=%d value=%t", event.Input.Join, event.Input.Row, event.Input.Value)
	case event.Binding != nil:
		return fmt.Sprintf("bound=%d cleared=%d", len(event.Binding.Bound), len(event.Binding.Cleared))
	case event.Mode != nil:
		return event.Mode.OldMode + "->" + event.Mode.NewMode
	case event.Selection != nil:
		return event.Selection.CameraKey
	case event.Preset != nil:
		if event.Preset.Action == log.PresetNames {
			return "names=" + strings.Join(event.Preset.Names, "|")
		}
		return fmt.Sprintf("%s %d", event.Preset.Action, event.Preset.ID)
	case event.StateChange != nil:
		return event.StateChange.Entity.String() + "=" + event.StateChange.NewState
	case event.Error != nil:
		return event.Error.Message
	}
	return ""
}
