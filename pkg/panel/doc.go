// Package panel implements the camera control panel driver.
//
// A Driver owns the mode interlock, the camera list, the control binder and
// the preset buttons for one codec, and wires them to the codec's events.
//
// # Readiness
//
// Nothing is built until the codec reports ready. If it already is when
// the driver is created, setup runs immediately; otherwise the driver
// subscribes to the one-shot ready event. Setup runs exactly once either
// way.
//
// # Modes
//
// The mode list offers Auto, Manual and Off in that order, omitting modes
// the codec does not support. Mode rows trigger on release. The Auto row
// mirrors the codec's auto-mode state; the Manual and Off rows mirror the
// interlock. When the codec reports an auto-mode change the interlock
// follows it, visibly if the panel is shown.
//
// # Presets
//
// Each preset button recalls its preset on tap and stores the current
// position on a hold. Preset names come from the far-end list while the
// codec controls the far-end camera, and from the near-end list otherwise.
//
// # Concurrency
//
// A Driver is not safe for concurrent use. All calls, including device
// events and hold timers, must come from one goroutine; the runtime uses a
// dispatch.Loop for this.
package panel
