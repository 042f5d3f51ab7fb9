package log

import (
	"testing"
	"time"
)

func TestLayerString(t *testing.T) {
	tests := []struct {
		layer Layer
		want  string
	}{
		{LayerSurface, "SURFACE"},
		{LayerDriver, "DRIVER"},
		{LayerDevice, "DEVICE"},
		{Layer(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.layer.String(); got != tt.want {
			t.Errorf("Layer(%d).String() = %q, want %q", tt.layer, got, tt.want)
		}
	}
}

func TestParseLayer(t *testing.T) {
	for _, l := range []Layer{LayerSurface, LayerDriver, LayerDevice} {
		got, ok := ParseLayer(l.String())
		if !ok || got != l {
			t.Errorf("ParseLayer(%q) = %v, %v; want %v, true", l.String(), got, ok, l)
		}
	}
	if _, ok := ParseLayer("surface"); ok {
		t.Error("ParseLayer should be case-sensitive")
	}
}

func TestCategoryString(t *testing.T) {
	tests := []struct {
		cat  Category
		want string
	}{
		{CategoryInput, "INPUT"},
		{CategoryBinding, "BINDING"},
		{CategoryMode, "MODE"},
		{CategorySelection, "SELECTION"},
		{CategoryPreset, "PRESET"},
		{CategoryState, "STATE"},
		{CategoryError, "ERROR"},
		{Category(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.cat.String(); got != tt.want {
			t.Errorf("Category(%d).String() = %q, want %q", tt.cat, got, tt.want)
		}
		if tt.want == "UNKNOWN" {
			continue
		}
		if got, ok := ParseCategory(tt.want); !ok || got != tt.cat {
			t.Errorf("ParseCategory(%q) = %v, %v; want %v, true", tt.want, got, ok, tt.cat)
		}
	}
}

func TestPresetActionString(t *testing.T) {
	if PresetRecall.String() != "RECALL" || PresetStore.String() != "STORE" || PresetNames.String() != "NAMES" {
		t.Error("unexpected preset action names")
	}
	if PresetAction(9).String() != "UNKNOWN" {
		t.Error("expected UNKNOWN for out-of-range preset action")
	}
}

func TestStateEntityString(t *testing.T) {
	tests := map[StateEntity]string{
		StateEntityCodec:      "CODEC",
		StateEntityVisibility: "VISIBILITY",
		StateEntityAutoMode:   "AUTO_MODE",
		StateEntityFarEnd:     "FAR_END",
		StateEntity(42):       "UNKNOWN",
	}
	for e, want := range tests {
		if got := e.String(); got != want {
			t.Errorf("StateEntity(%d).String() = %q, want %q", e, got, want)
		}
	}
}

func TestFilterMatches(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	event := Event{
		Timestamp: base,
		SessionID: "s1",
		Layer:     LayerDriver,
		Category:  CategoryMode,
		CameraKey: "cam-1",
	}

	driver := LayerDriver
	surface := LayerSurface
	mode := CategoryMode
	preset := CategoryPreset
	before := base.Add(-time.Second)
	after := base.Add(time.Second)

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"empty", Filter{}, true},
		{"session match", Filter{SessionID: "s1"}, true},
		{"session mismatch", Filter{SessionID: "s2"}, false},
		{"layer match", Filter{Layer: &driver}, true},
		{"layer mismatch", Filter{Layer: &surface}, false},
		{"category match", Filter{Category: &mode}, true},
		{"category mismatch", Filter{Category: &preset}, false},
		{"camera match", Filter{CameraKey: "cam-1"}, true},
		{"camera mismatch", Filter{CameraKey: "cam-2"}, false},
		{"time inside", Filter{TimeStart: &before, TimeEnd: &after}, true},
		{"time start inclusive", Filter{TimeStart: &base}, true},
		{"time end exclusive", Filter{TimeEnd: &base}, false},
		{"time after", Filter{TimeStart: &after}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(event); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}
