package device

import "strings"

// Capability identifies one optional behaviour.
type Capability uint8

const (
	// CapPTZ is pan/tilt/zoom control.
	CapPTZ Capability = 1 << iota

	// CapFocus is focus near/far and auto-focus trigger.
	CapFocus

	// CapAutoMode is auto-framing on/off.
	CapAutoMode

	// CapOff is the camera-off mode.
	CapOff

	// CapPresets is stored room positions.
	CapPresets

	// CapFarEnd is far-end camera control.
	CapFarEnd
)

var capabilityNames = []struct {
	c    Capability
	name string
}{
	{CapPTZ, "PTZ"},
	{CapFocus, "FOCUS"},
	{CapAutoMode, "AUTO_MODE"},
	{CapOff, "OFF"},
	{CapPresets, "PRESETS"},
	{CapFarEnd, "FAR_END"},
}

// String returns the capability name.
func (c Capability) String() string {
	for _, n := range capabilityNames {
		if n.c == c {
			return n.name
		}
	}
	return "UNKNOWN"
}

// CapabilitySet is a bitset of capabilities.
type CapabilitySet uint8

// Has reports whether c is in the set.
func (s CapabilitySet) Has(c Capability) bool {
	return s&CapabilitySet(c) != 0
}

// With returns the set with c added.
func (s CapabilitySet) With(c Capability) CapabilitySet {
	return s | CapabilitySet(c)
}

// String returns the member names joined by "|", or "NONE".
func (s CapabilitySet) String() string {
	var parts []string
	for _, n := range capabilityNames {
		if s.Has(n.c) {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "NONE"
	}
	return strings.Join(parts, "|")
}

// CameraCapabilities holds the capability implementations of a camera.
// A nil field means the capability is absent.
type CameraCapabilities struct {
	PTZ   PtzControl
	Focus FocusControl
}

// Set returns the capabilities present.
func (c CameraCapabilities) Set() CapabilitySet {
	var s CapabilitySet
	if c.PTZ != nil {
		s = s.With(CapPTZ)
	}
	if c.Focus != nil {
		s = s.With(CapFocus)
	}
	return s
}

// CodecCapabilities holds the capability implementations of a codec.
// A nil field means the capability is absent.
type CodecCapabilities struct {
	AutoMode AutoTrackMode
	Off      OffMode
	Presets  RoomPresets
	FarEnd   FarEndControl
}

// Set returns the capabilities present.
func (c CodecCapabilities) Set() CapabilitySet {
	var s CapabilitySet
	if c.AutoMode != nil {
		s = s.With(CapAutoMode)
	}
	if c.Off != nil {
		s = s.With(CapOff)
	}
	if c.Presets != nil {
		s = s.With(CapPresets)
	}
	if c.FarEnd != nil {
		s = s.With(CapFarEnd)
	}
	return s
}
