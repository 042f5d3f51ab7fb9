package discovery

import (
	"net"
	"testing"

	"github.com/enbility/zeroconf/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntry(instance string, addrs ...string) *zeroconf.ServiceEntry {
	entry := &zeroconf.ServiceEntry{ServiceRecord: zeroconf.ServiceRecord{
		Instance: instance,
		Service:  ServiceType,
		Domain:   Domain,
	}}
	entry.HostName = "panel.local."
	entry.Port = DefaultPort
	entry.Text = TXTRecordsToStrings(EncodePanelTXT(&PanelInfo{
		Name:     instance,
		Version:  "1.0.0",
		CodecKey: "codec-1",
	}))
	for _, a := range addrs {
		entry.AddrIPv4 = append(entry.AddrIPv4, net.ParseIP(a))
	}
	return entry
}

func TestAggregatorSendsEachInstanceOnce(t *testing.T) {
	agg := newAggregator()

	svc := agg.add(testEntry("room-4", "10.0.0.1"))
	require.NotNil(t, svc)
	assert.Equal(t, "room-4", svc.InstanceName)
	assert.Equal(t, []string{"10.0.0.1"}, svc.Addresses)

	assert.Nil(t, agg.add(testEntry("room-4", "10.0.0.2")))
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, agg.services["room-4"].Addresses)
}

func TestAggregatorDoesNotMutateSentService(t *testing.T) {
	agg := newAggregator()

	svc := agg.add(testEntry("room-4", "10.0.0.1"))
	require.NotNil(t, svc)

	agg.add(testEntry("room-4", "10.0.0.2"))
	agg.remove(testEntry("room-4", "10.0.0.1"))

	assert.Equal(t, []string{"10.0.0.1"}, svc.Addresses)
	assert.NotSame(t, agg.services["room-4"], svc)
}

func TestAggregatorRemove(t *testing.T) {
	agg := newAggregator()
	agg.add(testEntry("room-4", "10.0.0.1"))

	agg.remove(testEntry("unknown", "10.0.0.1"))
	agg.remove(testEntry("room-4", "10.0.0.1"))
	assert.NotContains(t, agg.services, "room-4")

	// Gone entirely, so the next sighting is new again.
	assert.NotNil(t, agg.add(testEntry("room-4", "10.0.0.3")))
}

func TestAggregatorDropsBadTXT(t *testing.T) {
	agg := newAggregator()
	entry := testEntry("room-4", "10.0.0.1")
	entry.Text = nil

	if got := agg.add(entry); got != nil {
		t.Errorf("add() = %v, want nil", got)
	}
}
