// Package wgpu provides a shapebatch.Device backed by the gogpu/wgpu HAL.
//
// # Architecture Overview
//
// The device compiles one WGSL vertex-color shader to SPIR-V with
// gogpu/naga and draws each submission as a single indexed triangle list:
//
//	Batch.Flush -> Effect pass Apply -> DrawIndexedPrimitives
//	           -> WriteBuffer (vertices, indices, uniforms)
//	           -> render pass (LoadOpLoad) -> Submit -> WaitIdle
//
// Render pipelines are created lazily and cached per combination of blend,
// depth and rasterizer state, so switching between the states a Batch uses
// costs one pipeline creation each.
//
// # Targets
//
// A device draws into the texture view set by SetTarget. NewDevice wraps an
// existing hal.Device and hal.Queue, NewDeviceFromProvider accepts a
// gpucontext.DeviceProvider from the host application, and OpenHeadless
// opens the best registered HAL backend with its own RGBA8 texture.
//
// # Vertex Layout
//
// Vertices are uploaded as 28 bytes each:
//
//	position (vec3<f32>) = 12 bytes (location 0)
//	color    (vec4<f32>) = 16 bytes (location 1)
//
// # Registration
//
// Importing this package registers the "wgpu" backend, which opens a
// headless device through OpenHeadless:
//
//	import _ "github.com/gogpu/shapebatch/backend/wgpu"
//
// HAL backends register themselves when imported, for example
// github.com/gogpu/wgpu/hal/vulkan or github.com/gogpu/wgpu/hal/noop.
package wgpu
