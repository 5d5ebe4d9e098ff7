// Package shapebatch provides an immediate-mode 2D shape batcher for GPU
// devices.
//
// # Overview
//
// A Batch turns lines, rectangles, circles and convex polygons into
// triangle lists, accumulates them in one preallocated vertex/index buffer
// pair, and submits them to a Device in as few indexed draw calls as
// possible. It targets per-frame drawing of many simple shapes: debug
// overlays, UI chrome, prototypes.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/shapebatch"
//	    "github.com/gogpu/shapebatch/backend/software"
//	)
//
//	dev := software.NewDevice(640, 480)
//	b, err := shapebatch.NewBatch(dev)
//	if err != nil {
//	    return err
//	}
//	defer b.Close()
//
//	_ = b.BeginScreen()
//	_ = b.DrawRectangle(shapebatch.R(0, 0, 100, 50), shapebatch.Red, shapebatch.Filled)
//	_ = b.DrawCircle(shapebatch.Pt(320, 240), 40, shapebatch.Blue, shapebatch.Stroke(3))
//	if err := b.End(); err != nil {
//	    return err
//	}
//
// # Buffers and Flushing
//
// The buffers hold WithMaxVertices vertices (default 1024) and three times
// as many indices. Before each shape the batch checks the shape's own cost
// (see LineCost, FilledCircleCost and friends) against the remaining space
// and flushes first if it does not fit. A shape larger than the whole
// buffer is rejected with ErrShapeTooLarge.
//
// # Coordinate System
//
// BeginScreen and BeginTransform use screen coordinates:
//   - Origin (0,0) at top-left of the viewport
//   - X increases right
//   - Y increases down
//   - Angles in radians, 0 is right
//
// # Backends
//
// Devices live in backend/: software (CPU rasterizer into an image.RGBA),
// wgpu (gogpu/wgpu HAL), and recorder (captures submissions for tests).
package shapebatch
