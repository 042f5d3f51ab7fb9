package log

import (
	"context"
	"log/slog"
	"strings"
)

// SlogAdapter writes panel events to an slog.Logger.
// Useful for development when you want to see panel events in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level, or Warn level for
// error events.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session_id", event.SessionID),
		slog.String("layer", event.Layer.String()),
		slog.String("category", event.Category.String()),
	}
	if event.Panel != "" {
		attrs = append(attrs, slog.String("panel", event.Panel))
	}
	if event.CameraKey != "" {
		attrs = append(attrs, slog.String("camera", event.CameraKey))
	}

	level := slog.LevelDebug

	switch {
	case event.Input != nil:
		attrs = append(attrs,
			slog.Uint64("join", uint64(event.Input.Join)),
			slog.Bool("value", event.Input.Value),
			slog.Bool("bound", event.Input.Bound),
		)
		if event.Input.Row != 0 {
			attrs = append(attrs, slog.Int("row", event.Input.Row))
		}
	case event.Binding != nil:
		attrs = append(attrs,
			slog.Int("bound", len(event.Binding.Bound)),
			slog.Int("cleared", len(event.Binding.Cleared)),
			slog.String("capabilities", event.Binding.Capabilities),
		)
	case event.Mode != nil:
		attrs = append(attrs,
			slog.String("old_mode", event.Mode.OldMode),
			slog.String("new_mode", event.Mode.NewMode),
			slog.Bool("silent", event.Mode.Silent),
		)
	case event.Selection != nil:
		attrs = append(attrs,
			slog.String("selected", event.Selection.CameraKey),
			slog.Int("row", event.Selection.Row),
		)
	case event.Preset != nil:
		attrs = append(attrs,
			slog.String("action", event.Preset.Action.String()),
			slog.Bool("far_end", event.Preset.FarEnd),
		)
		if event.Preset.ID != 0 {
			attrs = append(attrs, slog.Int("preset", event.Preset.ID))
		}
		if len(event.Preset.Names) > 0 {
			attrs = append(attrs, slog.String("names", strings.Join(event.Preset.Names, ",")))
		}
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("entity", event.StateChange.Entity.String()),
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.Error != nil:
		level = slog.LevelWarn
		attrs = append(attrs,
			slog.String("error_layer", event.Error.Layer.String()),
			slog.String("error_msg", event.Error.Message),
			slog.String("error_context", event.Error.Context),
		)
	}

	a.logger.LogAttrs(context.Background(), level, "panel", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
