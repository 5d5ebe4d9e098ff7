// Package recorder provides a shapebatch.Device that records render state
// changes and draw submissions instead of rasterizing them.
//
// The recorder follows a command pattern: every call on the Device appends a
// typed Command holding a deep copy of its arguments, so recordings stay valid
// after the batch reuses its buffers. A Recording can be inspected in tests or
// replayed onto another Device.
//
// # Basic Usage
//
//	dev := recorder.NewDevice(800, 600)
//	b, _ := shapebatch.NewBatch(dev)
//	_ = b.BeginScreen()
//	_ = b.DrawCircle(shapebatch.Pt(400, 300), 50, shapebatch.Red, shapebatch.Filled)
//	_ = b.End()
//
//	rec := dev.Finish()
//	fmt.Println(rec.DrawCalls(), rec.Triangles())
//
// # Playback
//
// Play a recording back onto a rasterizing device:
//
//	target := software.NewDevice(800, 600)
//	if err := rec.Playback(target); err != nil {
//		log.Fatal(err)
//	}
package recorder
