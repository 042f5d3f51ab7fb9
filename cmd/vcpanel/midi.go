//go:build midi

package main

// The RtMidi driver needs cgo and the system MIDI libraries, so it is only
// linked into builds made with -tags midi.
import _ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver
