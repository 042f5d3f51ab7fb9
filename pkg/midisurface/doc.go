// Package midisurface drives the panel from a MIDI pad controller.
//
// Note-on messages press the mapped join and note-off messages (or note-on
// with velocity 0) release it. Boolean feedback on a mapped join is echoed
// back to the controller as a note-on whose velocity lights the pad.
//
// The bridge never touches the panel directly from the MIDI driver's
// goroutine: every transition is handed to a Poster, normally a
// dispatch.Loop.
package midisurface
