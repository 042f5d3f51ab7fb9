// Package config loads the panel configuration from YAML.
//
// A configuration names the panel, describes the simulated codec and its
// cameras, and enables the optional outer surfaces (event log, mDNS
// advertising, MIDI controller). Defaults are applied before validation, so
// a file only needs the settings it changes.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/RBSystems/vcpanel-go/pkg/device"
	"github.com/RBSystems/vcpanel-go/pkg/device/sim"
	"github.com/RBSystems/vcpanel-go/pkg/discovery"
	"github.com/RBSystems/vcpanel-go/pkg/hold"
	"github.com/RBSystems/vcpanel-go/pkg/panel"
)

// ErrInvalid is the cause of every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Defaults and limits.
const (
	DefaultMaxCameraRows = 4
	DefaultPresetCount   = panel.DefaultPresetCount
	DefaultHoldThreshold = hold.DefaultThreshold
	DefaultPort          = discovery.DefaultPort

	MinHoldThreshold = 100 * time.Millisecond
	MaxHoldThreshold = 10 * time.Second
)

// Codec capability names.
const (
	CapAutoMode = "auto-mode"
	CapOff      = "off"
	CapPresets  = "presets"
	CapFarEnd   = "far-end"
)

// Config is the root of a configuration file.
type Config struct {
	Panel     PanelConfig     `yaml:"panel"`
	Codec     CodecConfig     `yaml:"codec"`
	Cameras   []CameraConfig  `yaml:"cameras"`
	Presets   PresetsConfig   `yaml:"presets"`
	Logging   LoggingConfig   `yaml:"logging"`
	Discovery DiscoveryConfig `yaml:"discovery"`
	MIDI      MIDIConfig      `yaml:"midi"`
}

// PanelConfig configures the panel driver.
type PanelConfig struct {
	Name          string        `yaml:"name"`
	MaxCameraRows int           `yaml:"max_camera_rows"`
	PresetCount   int           `yaml:"preset_count"`
	HoldThreshold time.Duration `yaml:"hold_threshold"`
	StartVisible  bool          `yaml:"start_visible"`
}

// CodecConfig describes the simulated codec.
type CodecConfig struct {
	Key          string        `yaml:"key"`
	Name         string        `yaml:"name"`
	Capabilities []string      `yaml:"capabilities"`
	ReadyDelay   time.Duration `yaml:"ready_delay"`
}

// CameraConfig describes one camera.
type CameraConfig struct {
	Key  string `yaml:"key"`
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// PresetsConfig holds the initial preset names. Entry n is preset n+1; an
// empty name leaves the slot undefined.
type PresetsConfig struct {
	Near []string `yaml:"near"`
	Far  []string `yaml:"far"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level    string `yaml:"level"`
	EventLog string `yaml:"event_log"`
}

// DiscoveryConfig configures mDNS advertising.
type DiscoveryConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Instance  string `yaml:"instance"`
	Interface string `yaml:"interface"`
	Port      uint16 `yaml:"port"`
}

// MIDIConfig configures the MIDI pad controller.
type MIDIConfig struct {
	// Port is a substring of the MIDI port name. Empty disables MIDI.
	Port string `yaml:"port"`

	// Channel carries LED feedback (0-15).
	Channel uint8 `yaml:"channel"`

	// Notes maps control names to note numbers. Empty uses the built-in map.
	Notes map[string]uint8 `yaml:"notes"`
}

// LoadError provides details about a configuration loading error.
type LoadError struct {
	// File is the path to the file that failed to load.
	File string

	// Message describes the error.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	if e.File == "" {
		return msg
	}
	return e.File + ": " + msg
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Default returns a configuration with every default applied and one PTZ
// camera.
func Default() *Config {
	c := &Config{
		Codec: CodecConfig{
			Key:          "codec",
			Name:         "Room Codec",
			Capabilities: []string{CapAutoMode, CapOff, CapPresets, CapFarEnd},
		},
		Cameras: []CameraConfig{
			{Key: "cam-1", Name: "Camera 1", Type: string(sim.TypePTZFocus)},
		},
	}
	c.applyDefaults()
	return c
}

// Parse decodes and validates a configuration. Unknown keys are errors.
func Parse(data []byte) (*Config, error) {
	var c Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, &LoadError{Message: "failed to parse YAML", Cause: err}
	}

	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Load reads and parses the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{File: path, Message: "failed to read file", Cause: err}
	}

	c, err := Parse(data)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.File = path
			return nil, le
		}
		return nil, &LoadError{File: path, Message: err.Error()}
	}
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Panel.Name == "" {
		c.Panel.Name = panel.DefaultName
	}
	if c.Panel.MaxCameraRows == 0 {
		c.Panel.MaxCameraRows = DefaultMaxCameraRows
	}
	if c.Panel.PresetCount == 0 {
		c.Panel.PresetCount = DefaultPresetCount
	}
	if c.Panel.HoldThreshold == 0 {
		c.Panel.HoldThreshold = DefaultHoldThreshold
	}
	if c.Codec.Key == "" {
		c.Codec.Key = "codec"
	}
	if c.Codec.Name == "" {
		c.Codec.Name = c.Codec.Key
	}
	for i := range c.Cameras {
		if c.Cameras[i].Name == "" {
			c.Cameras[i].Name = c.Cameras[i].Key
		}
		if c.Cameras[i].Type == "" {
			c.Cameras[i].Type = string(sim.TypePTZ)
		}
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Discovery.Instance == "" {
		c.Discovery.Instance = c.Panel.Name
	}
	if c.Discovery.Port == 0 {
		c.Discovery.Port = DefaultPort
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return &LoadError{Message: fmt.Sprintf(format, args...), Cause: ErrInvalid}
	}

	if c.Panel.MaxCameraRows < 0 {
		return invalid("panel.max_camera_rows must be positive, got %d", c.Panel.MaxCameraRows)
	}
	if c.Panel.PresetCount < 0 {
		return invalid("panel.preset_count must be positive, got %d", c.Panel.PresetCount)
	}
	if d := c.Panel.HoldThreshold; d < MinHoldThreshold || d > MaxHoldThreshold {
		return invalid("panel.hold_threshold %v outside [%v, %v]", d, MinHoldThreshold, MaxHoldThreshold)
	}
	if c.Codec.ReadyDelay < 0 {
		return invalid("codec.ready_delay must not be negative")
	}
	for _, name := range c.Codec.Capabilities {
		switch name {
		case CapAutoMode, CapOff, CapPresets, CapFarEnd:
		default:
			return invalid("codec.capabilities: unknown capability %q", name)
		}
	}

	seen := make(map[string]bool, len(c.Cameras))
	for i, cam := range c.Cameras {
		if cam.Key == "" {
			return invalid("cameras[%d]: key is required", i)
		}
		if seen[cam.Key] {
			return invalid("cameras[%d]: duplicate key %q", i, cam.Key)
		}
		seen[cam.Key] = true

		switch sim.CameraType(cam.Type) {
		case sim.TypePTZ, sim.TypePTZFocus, sim.TypeFixed:
		default:
			return invalid("cameras[%d]: unknown type %q", i, cam.Type)
		}
	}

	if c.Discovery.Enabled {
		if err := discovery.ValidateInstanceName(c.Discovery.Instance); err != nil {
			return invalid("discovery.instance: %v", err)
		}
	}
	if c.MIDI.Channel > 15 {
		return invalid("midi.channel %d outside [0, 15]", c.MIDI.Channel)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return invalid("logging.level: unknown level %q", c.Logging.Level)
	}
	return nil
}

// HasCapability reports whether the codec lists name.
func (c *CodecConfig) HasCapability(name string) bool {
	for _, n := range c.Capabilities {
		if n == name {
			return true
		}
	}
	return false
}

// BuildCodec creates the simulated codec and its cameras. The codec is not
// ready; the caller decides when to call SetReady.
func (c *Config) BuildCodec(rec *sim.Recorder) (*sim.Codec, error) {
	cams := make([]device.Camera, 0, len(c.Cameras))
	for _, cc := range c.Cameras {
		cam, err := sim.NewCamera(sim.CameraConfig{
			Key:  cc.Key,
			Name: cc.Name,
			Type: sim.CameraType(cc.Type),
		}, rec)
		if err != nil {
			return nil, fmt.Errorf("camera %q: %w", cc.Key, err)
		}
		cams = append(cams, cam)
	}

	codec := sim.NewCodec(sim.CodecConfig{
		Key:            c.Codec.Key,
		Name:           c.Codec.Name,
		AutoMode:       c.Codec.HasCapability(CapAutoMode),
		Off:            c.Codec.HasCapability(CapOff),
		Presets:        c.Codec.HasCapability(CapPresets),
		FarEnd:         c.Codec.HasCapability(CapFarEnd),
		NearEndPresets: presetList(c.Presets.Near),
		FarEndPresets:  presetList(c.Presets.Far),
	}, cams, rec)
	return codec, nil
}

// DriverConfig returns the panel driver settings.
func (c *Config) DriverConfig() panel.Config {
	return panel.Config{
		Name:          c.Panel.Name,
		Joins:         panel.DefaultJoins(),
		PresetCount:   c.Panel.PresetCount,
		HoldThreshold: c.Panel.HoldThreshold,
	}
}

func presetList(names []string) []device.Preset {
	if len(names) == 0 {
		return nil
	}
	out := make([]device.Preset, len(names))
	for i, n := range names {
		out[i] = device.Preset{ID: i + 1, Description: n, Defined: n != ""}
	}
	return out
}

// String summarises the configuration for startup logs.
func (c *Config) String() string {
	return c.Panel.Name + " codec=" + c.Codec.Key +
		" cameras=" + strconv.Itoa(len(c.Cameras)) +
		" presets=" + strconv.Itoa(c.Panel.PresetCount)
}
