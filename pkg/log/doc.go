// Package log provides structured event logging for the camera panel.
//
// This package defines the Logger interface and Event types for capturing
// what happened on the panel: operator input on the surface, binding swaps,
// mode transitions, camera selection, preset recall/store and device
// readiness. It is separate from operational logging (slog) - the event log
// is a complete machine-readable trace for debugging and analysis.
//
// # Basic Usage
//
// Applications configure logging by providing a Logger implementation:
//
//	// For development: log to console via slog
//	logger := log.NewSlogAdapter(slog.Default())
//
//	// For production: write to binary file
//	logger, _ := log.NewFileLogger("/var/log/vcpanel/panel.plog")
//
//	// Both: use MultiLogger
//	logger := log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Types
//
// Events are captured at three layers:
//   - Surface: operator transitions on joins and list rows (InputEvent)
//   - Driver: binding swaps, mode, selection and preset handling
//   - Device: readiness and device-reported feedback (StateChangeEvent)
//
// Errors that the driver absorbs (an out-of-range preset index, a refused
// selection) are logged as ErrorEventData rather than returned.
//
// # File Format
//
// Log files use the .plog extension and hold a stream of CBOR records, each
// wrapped in EventTag. Records without the tag are rejected on read. The
// vcpanel-log tool provides viewing, filtering and statistics.
package log
