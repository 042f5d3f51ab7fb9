package discovery

import (
	"errors"
	"time"
)

const (
	// ServiceType is the DNS-SD service type of a panel.
	ServiceType = "_vcpanel._tcp"

	// Domain is the mDNS domain.
	Domain = "local."

	// DefaultPort is advertised when PanelInfo.Port is zero.
	DefaultPort = 8442
)

// TXT record keys.
const (
	TXTKeyName    = "name"
	TXTKeyVersion = "ver"
	TXTKeyCodec   = "codec"
	TXTKeyCameras = "cams"
	TXTKeySession = "sid"
	TXTKeyReady   = "rdy"
)

// Limits.
const (
	// MaxInstanceNameLen is the DNS label limit.
	MaxInstanceNameLen = 63

	// BrowseTimeout is the default timeout for FindPanel.
	BrowseTimeout = 5 * time.Second
)

// Errors.
var (
	ErrMissingRequired     = errors.New("missing required TXT record")
	ErrInvalidTXTRecord    = errors.New("invalid TXT record")
	ErrInvalidInstanceName = errors.New("invalid instance name")
	ErrNotFound            = errors.New("panel not found")
	ErrNotAdvertising      = errors.New("not advertising")
)

// PanelInfo is what a panel publishes about itself.
type PanelInfo struct {
	// Name is the panel name, also used as instance name.
	Name string

	// Version is the panel software version.
	Version string

	// CodecKey identifies the codec the panel drives.
	CodecKey string

	// CameraCount is the number of cameras the codec reports.
	CameraCount int

	// SessionID is the event log session of the running panel.
	SessionID string

	// Ready is true once the codec reported ready and the panel is set up.
	Ready bool

	// Port is the advertised port. Zero means DefaultPort.
	Port uint16
}

// PanelService is a panel found by browsing.
type PanelService struct {
	InstanceName string
	Host         string
	Port         uint16
	Addresses    []string

	PanelInfo
}

// AdvertiserConfig configures an MDNSAdvertiser.
type AdvertiserConfig struct {
	// Interface limits advertising to one network interface. Empty uses all.
	Interface string

	// TTL for the DNS records. Zero uses the library default.
	TTL time.Duration
}

// DefaultAdvertiserConfig returns the default advertiser configuration.
func DefaultAdvertiserConfig() AdvertiserConfig {
	return AdvertiserConfig{TTL: 120 * time.Second}
}

// BrowserConfig configures an MDNSBrowser.
type BrowserConfig struct {
	Interface string
}
