// Package sim provides simulated cameras and a simulated codec.
//
// Simulated devices record every operation into a shared Recorder so the
// runtime can display what the panel asked for and tests can assert on it.
// Device-side state changes (ready, auto mode, far end, preset list) are
// driven through explicit setters that publish the same events a real
// device driver would.
//
//	rec := sim.NewRecorder()
//	cam, _ := sim.NewCamera(sim.CameraConfig{Key: "cam1", Name: "Front", Type: sim.TypePTZFocus}, rec)
//	codec := sim.NewCodec(sim.CodecConfig{Key: "codec", AutoMode: true}, []device.Camera{cam}, rec)
//	codec.SetReady()
package sim
