package discovery_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/RBSystems/vcpanel-go/pkg/discovery"
)

func TestMDNSAdvertiserStopWithoutAdvertise(t *testing.T) {
	adv := discovery.NewMDNSAdvertiser(discovery.DefaultAdvertiserConfig())
	adv.Stop()
	if adv.Advertising() {
		t.Errorf("Advertising() = true, want false")
	}
}

func TestMDNSAdvertiserUpdateWithoutAdvertise(t *testing.T) {
	adv := discovery.NewMDNSAdvertiser(discovery.DefaultAdvertiserConfig())

	err := adv.Update(&discovery.PanelInfo{Name: "p", Version: "1", CodecKey: "c"})
	if !errors.Is(err, discovery.ErrNotAdvertising) {
		t.Errorf("Update() error = %v, want %v", err, discovery.ErrNotAdvertising)
	}
}

func TestMDNSAdvertiserRejectsBadName(t *testing.T) {
	adv := discovery.NewMDNSAdvertiser(discovery.DefaultAdvertiserConfig())

	err := adv.Advertise(context.Background(), &discovery.PanelInfo{Version: "1", CodecKey: "c"})
	if !errors.Is(err, discovery.ErrInvalidInstanceName) {
		t.Errorf("Advertise() error = %v, want %v", err, discovery.ErrInvalidInstanceName)
	}
	if adv.Advertising() {
		t.Errorf("Advertising() = true after rejected name")
	}
}

func TestMDNSAdvertiserCancelledContext(t *testing.T) {
	adv := discovery.NewMDNSAdvertiser(discovery.DefaultAdvertiserConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := adv.Advertise(ctx, &discovery.PanelInfo{Name: "p", Version: "1", CodecKey: "c"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Advertise() error = %v, want %v", err, context.Canceled)
	}
}

// TestMDNSAdvertiseAndUpdate registers on the real network stack.
func TestMDNSAdvertiseAndUpdate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping mDNS registration in short mode")
	}

	adv := discovery.NewMDNSAdvertiser(discovery.DefaultAdvertiserConfig())
	defer adv.Stop()

	info := &discovery.PanelInfo{
		Name:        "vcpanel-test",
		Version:     "1.0.0",
		CodecKey:    "codec-1",
		CameraCount: 2,
		Port:        18442,
	}
	if err := adv.Advertise(context.Background(), info); err != nil {
		t.Skipf("mDNS unavailable: %v", err)
	}

	updated := *info
	updated.CameraCount = 3
	if err := adv.Update(&updated); err != nil {
		t.Errorf("Update() error = %v", err)
	}

	renamed := updated
	renamed.Name = "other"
	if err := adv.Update(&renamed); !errors.Is(err, discovery.ErrInvalidTXTRecord) {
		t.Errorf("Update(renamed) error = %v, want %v", err, discovery.ErrInvalidTXTRecord)
	}

	adv.Stop()
	if adv.Advertising() {
		t.Errorf("Advertising() = true after Stop")
	}
}

func TestMDNSBrowserFindPanelTimeout(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping mDNS browse in short mode")
	}

	b := discovery.NewMDNSBrowser(discovery.BrowserConfig{})
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	_, err := b.FindPanel(ctx, "no-such-panel-7f3a")
	if !errors.Is(err, discovery.ErrNotFound) {
		t.Errorf("FindPanel() error = %v, want %v", err, discovery.ErrNotFound)
	}
}
