// Package connection keeps an external link attached, such as a MIDI pad
// controller that can be unplugged while the panel runs.
//
// # Reattach Strategy
//
// When a link is reported lost, the manager retries with exponential backoff:
//
//  1. Initial delay: 500 milliseconds
//  2. Doubling: 1s, 2s, 4s, 8s
//  3. Maximum delay: 10 seconds
//  4. Reset to the initial delay after a successful attach
//
// Each delay carries up to 20% random jitter.
package connection
