// Package hold distinguishes a tap from a sustained press on one boolean
// input.
//
// A Button started by a press arms a timer for the hold threshold. If the
// timer fires before release, the hold callback runs at that moment and the
// release is ignored. If the release comes first, the tap callback runs.
// Exactly one callback runs per press cycle.
//
// Timers come from a Clock so the runtime can deliver them on its dispatch
// loop and tests can advance time by hand.
package hold
