// Package devicelist mirrors an ordered set of cameras onto a bounded row
// list with single-selection feedback.
//
// Rows are matched to cameras by key. Cameras beyond the list capacity are
// dropped from the surface; selecting one of them leaves every row
// deselected.
package devicelist

import (
	"github.com/RBSystems/vcpanel-go/pkg/device"
	"github.com/RBSystems/vcpanel-go/pkg/signal"
)

// Synchronizer keeps a RowList in step with a camera set and its selection.
type Synchronizer struct {
	list        signal.RowList
	selectFn    func(key string)
	afterSelect func(device.Camera)

	keys     []string
	selected string
}

// New creates a synchronizer over list. selectFn is bound to each row's
// toggle and asks the device layer to select a camera. afterSelect runs
// once per OnDeviceSelected, after the row toggles are in step.
func New(list signal.RowList, selectFn func(key string), afterSelect func(device.Camera)) *Synchronizer {
	return &Synchronizer{
		list:        list,
		selectFn:    selectFn,
		afterSelect: afterSelect,
	}
}

// Rebuild replaces the rows with cameras, up to the list capacity. The row
// whose key equals selectedKey is marked selected.
func (s *Synchronizer) Rebuild(cameras []device.Camera, selectedKey string) {
	n := len(cameras)
	if limit := s.list.MaxRows(); n > limit {
		n = limit
	}

	s.keys = s.keys[:0]
	for i := 0; i < n; i++ {
		key := cameras[i].Key()
		row := i + 1
		s.keys = append(s.keys, key)

		_ = s.list.SetRowText(row, cameras[i].Name())
		_ = s.list.SetRowAction(row, signal.OnRelease(func() {
			if s.selectFn != nil {
				s.selectFn(key)
			}
		}))
	}
	for row := n + 1; row <= s.list.MaxRows(); row++ {
		_ = s.list.SetRowText(row, "")
		_ = s.list.ClearRowAction(row)
		_ = s.list.SetRowSelected(row, false)
	}
	s.list.SetCount(n)

	s.selected = selectedKey
	s.sync()
}

// OnDeviceSelected brings the row toggles in step with cam and then runs the
// after-select hook exactly once. A nil cam deselects every row.
func (s *Synchronizer) OnDeviceSelected(cam device.Camera) {
	s.selected = ""
	if cam != nil {
		s.selected = cam.Key()
	}
	s.sync()

	if s.afterSelect != nil {
		s.afterSelect(cam)
	}
}

// Selected returns the key of the selected camera, or "".
func (s *Synchronizer) Selected() string { return s.selected }

// Keys returns the camera keys shown, in row order.
func (s *Synchronizer) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// RowOf returns the row showing key, or 0 if it is not shown.
func (s *Synchronizer) RowOf(key string) int {
	if key == "" {
		return 0
	}
	for i, k := range s.keys {
		if k == key {
			return i + 1
		}
	}
	return 0
}

func (s *Synchronizer) sync() {
	for i, k := range s.keys {
		_ = s.list.SetRowSelected(i+1, s.selected != "" && k == s.selected)
	}
}
