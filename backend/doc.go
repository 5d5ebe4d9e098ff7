// Package backend provides a registry of device backends for shapebatch.
//
// Each backend package registers itself from an init function, so importing
// it for side effects makes it selectable by name:
//
//	import _ "github.com/gogpu/shapebatch/backend/software"
//
// # Backend Selection
//
// Use Default() to get the best available backend, or Get() to request
// a specific backend by name:
//
//	// Get the default (best available) backend
//	b := backend.Default()
//
//	// Or request a specific backend
//	b := backend.Get("software")
//
// NewDevice combines lookup and device creation:
//
//	dev, err := backend.NewDevice("", 800, 600)
//	if err != nil {
//		log.Fatal(err)
//	}
//	batch, err := shapebatch.NewBatch(dev)
//
// # Available Backends
//
//   - "software": CPU rasterizer into an *image.RGBA (always available)
//   - "wgpu": GPU rendering through gogpu/wgpu HAL
//   - "recorder": records state changes and draws for tests and replay
package backend
