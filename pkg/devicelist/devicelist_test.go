package devicelist

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RBSystems/vcpanel-go/pkg/device"
	"github.com/RBSystems/vcpanel-go/pkg/device/sim"
	"github.com/RBSystems/vcpanel-go/pkg/signal"
)

func makeCameras(t *testing.T, n int) []device.Camera {
	t.Helper()
	var out []device.Camera
	for i := 1; i <= n; i++ {
		c, err := sim.NewCamera(sim.CameraConfig{
			Key:  fmt.Sprintf("cam-%d", i),
			Name: fmt.Sprintf("Camera %d", i),
			Type: sim.TypePTZ,
		}, nil)
		require.NoError(t, err)
		out = append(out, c)
	}
	return out
}

type harness struct {
	list     *signal.List
	sync     *Synchronizer
	requests []string
	after    []device.Camera
}

func newHarness(maxRows int) *harness {
	h := &harness{list: signal.NewList(1, maxRows)}
	h.sync = New(h.list,
		func(key string) { h.requests = append(h.requests, key) },
		func(c device.Camera) { h.after = append(h.after, c) },
	)
	return h
}

func TestRebuild(t *testing.T) {
	h := newHarness(4)
	cams := makeCameras(t, 3)

	h.sync.Rebuild(cams, "cam-2")

	assert.Equal(t, 3, h.list.Count())
	assert.Equal(t, "Camera 1", h.list.RowText(1))
	assert.Equal(t, "Camera 3", h.list.RowText(3))
	assert.Equal(t, []int{2}, h.list.SelectedRows())
	assert.Equal(t, []string{"cam-1", "cam-2", "cam-3"}, h.sync.Keys())
	assert.Empty(t, h.after, "Rebuild must not run the after-select hook")
}

func TestRowToggleRequestsSelection(t *testing.T) {
	h := newHarness(4)
	h.sync.Rebuild(makeCameras(t, 3), "cam-1")

	h.list.PressRow(3)
	assert.Empty(t, h.requests, "selection fires on release")
	h.list.ReleaseRow(3)

	assert.Equal(t, []string{"cam-3"}, h.requests)
}

func TestSelectionMirrorInvariant(t *testing.T) {
	h := newHarness(5)
	cams := makeCameras(t, 5)
	h.sync.Rebuild(cams, "cam-1")
	require.Equal(t, []int{1}, h.list.SelectedRows())

	for _, i := range []int{3, 0, 4, 4, 2} {
		h.sync.OnDeviceSelected(cams[i])
		assert.Equal(t, []int{i + 1}, h.list.SelectedRows())
		assert.Equal(t, cams[i].Key(), h.sync.Selected())
	}
}

func TestAfterSelectRunsOncePerEvent(t *testing.T) {
	h := newHarness(4)
	cams := makeCameras(t, 2)
	h.sync.Rebuild(cams, "cam-1")

	h.sync.OnDeviceSelected(cams[1])
	h.sync.OnDeviceSelected(cams[1])

	require.Len(t, h.after, 2)
	assert.Equal(t, "cam-2", h.after[0].Key())
}

func TestCapacityTruncation(t *testing.T) {
	h := newHarness(3)
	cams := makeCameras(t, 5)
	h.sync.Rebuild(cams, "cam-1")

	assert.Equal(t, 3, h.list.Count())
	assert.Equal(t, 0, h.sync.RowOf("cam-4"))

	h.sync.OnDeviceSelected(cams[3])
	assert.Empty(t, h.list.SelectedRows(), "no row shows true for a camera beyond capacity")
	assert.Equal(t, "cam-4", h.sync.Selected())

	h.sync.OnDeviceSelected(cams[4])
	assert.Empty(t, h.list.SelectedRows())
	assert.Len(t, h.after, 2)
}

func TestRebuildSelectedBeyondCapacity(t *testing.T) {
	h := newHarness(3)
	h.sync.Rebuild(makeCameras(t, 5), "cam-5")
	assert.Empty(t, h.list.SelectedRows())
}

func TestZeroDevices(t *testing.T) {
	h := newHarness(4)
	h.sync.Rebuild(nil, "")

	assert.Equal(t, 0, h.list.Count())
	assert.Empty(t, h.list.SelectedRows())
	assert.Empty(t, h.after)
	assert.Equal(t, "", h.sync.Selected())
}

func TestRebuildShrinksClearsRows(t *testing.T) {
	h := newHarness(4)
	cams := makeCameras(t, 4)
	h.sync.Rebuild(cams, "cam-4")

	h.sync.Rebuild(cams[:2], "cam-1")

	assert.Equal(t, 2, h.list.Count())
	assert.Equal(t, "", h.list.RowText(4))
	assert.False(t, h.list.RowBound(4))
	assert.Equal(t, []int{1}, h.list.SelectedRows())
}

func TestNilSelectionDeselectsAll(t *testing.T) {
	h := newHarness(4)
	h.sync.Rebuild(makeCameras(t, 2), "cam-2")

	h.sync.OnDeviceSelected(nil)

	assert.Empty(t, h.list.SelectedRows())
	require.Len(t, h.after, 1)
	assert.Nil(t, h.after[0])
}

func TestDuplicateNamesMatchByKey(t *testing.T) {
	h := newHarness(4)
	a, err := sim.NewCamera(sim.CameraConfig{Key: "a", Name: "Camera", Type: sim.TypePTZ}, nil)
	require.NoError(t, err)
	b, err := sim.NewCamera(sim.CameraConfig{Key: "b", Name: "Camera", Type: sim.TypePTZ}, nil)
	require.NoError(t, err)

	h.sync.Rebuild([]device.Camera{a, b}, "a")
	h.sync.OnDeviceSelected(b)

	assert.Equal(t, []int{2}, h.list.SelectedRows())
}
