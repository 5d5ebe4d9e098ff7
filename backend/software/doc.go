// Package software provides a CPU shapebatch.Device that rasterizes
// triangle lists into an *image.RGBA.
//
// Vertices are transformed by the applied effect's projection, view and
// world matrices, mapped from clip space to the viewport, and filled with
// golang.org/x/image/vector. Consecutive triangles of the same color are
// rasterized as one path, so the quads produced for lines and rectangles
// have no seams along their diagonals.
//
// The device honors the blend state (replace, alpha and premultiplied
// alpha) and the rasterizer cull mode. The depth/stencil state is stored but
// not evaluated: shapes are drawn in submission order.
//
// # Usage
//
//	dev := software.NewDevice(640, 480)
//	dev.Clear(shapebatch.White)
//
//	b, _ := shapebatch.NewBatch(dev)
//	_ = b.BeginScreen()
//	_ = b.DrawCircle(shapebatch.Pt(320, 240), 100, shapebatch.Red, shapebatch.Filled)
//	_ = b.End()
//
//	png.Encode(f, dev.Image())
package software
