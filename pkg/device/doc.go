// Package device defines the device layer the panel drives.
//
// A Codec hosts a list of Cameras, tracks which one is selected and reports
// when it becomes ready. Behaviour beyond identity is expressed as optional
// capabilities. Instead of probing a device with type assertions, each
// device returns a capabilities value whose fields are nil when the
// capability is absent:
//
//	Camera
//	├── PTZ    (pan/tilt/zoom start/stop, home)
//	└── Focus  (near/far/stop, auto-focus trigger)
//
//	Codec
//	├── AutoMode (auto-framing on/off + feedback)
//	├── Off      (camera off)
//	├── Presets  (near-end and far-end stored positions)
//	└── FarEnd   (controlling far-end camera feedback)
//
// Capability membership is fixed for the lifetime of a device instance.
// Change notifications are delivered through event subscriptions owned by
// the subscriber.
package device
