package device

import (
	"errors"
	"testing"
)

type stubCamera struct{ key, name string }

func (c stubCamera) Key() string                      { return c.key }
func (c stubCamera) Name() string                     { return c.name }
func (c stubCamera) Capabilities() CameraCapabilities { return CameraCapabilities{} }

func TestCapabilitySetString(t *testing.T) {
	tests := []struct {
		set  CapabilitySet
		want string
	}{
		{0, "NONE"},
		{CapabilitySet(0).With(CapPTZ), "PTZ"},
		{CapabilitySet(0).With(CapPTZ).With(CapFocus), "PTZ|FOCUS"},
		{CapabilitySet(0).With(CapFarEnd).With(CapAutoMode), "AUTO_MODE|FAR_END"},
	}
	for _, tt := range tests {
		if got := tt.set.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestCapabilityString(t *testing.T) {
	if CapOff.String() != "OFF" {
		t.Errorf("CapOff.String() = %q", CapOff.String())
	}
	if Capability(0x80).String() != "UNKNOWN" {
		t.Errorf("unknown capability String() = %q", Capability(0x80).String())
	}
}

func TestEmptyCapabilities(t *testing.T) {
	if s := (CameraCapabilities{}).Set(); s != 0 {
		t.Errorf("empty camera capabilities Set() = %v", s)
	}
	if s := (CodecCapabilities{}).Set(); s != 0 {
		t.Errorf("empty codec capabilities Set() = %v", s)
	}
}

func TestFindCamera(t *testing.T) {
	cams := []Camera{stubCamera{"a", "Front"}, stubCamera{"b", "Front"}}

	c, err := FindCamera(cams, "b")
	if err != nil {
		t.Fatalf("FindCamera() error = %v", err)
	}
	if c.Key() != "b" {
		t.Errorf("Key() = %q, want b", c.Key())
	}

	_, err = FindCamera(cams, "zzz")
	if !errors.Is(err, ErrCameraNotFound) {
		t.Errorf("FindCamera(zzz) error = %v, want ErrCameraNotFound", err)
	}
}
