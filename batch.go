package shapebatch

import (
	"fmt"
	"log/slog"
)

// Stats counts the work submitted since the last Begin.
type Stats struct {
	// Flushes is the number of non-empty flushes.
	Flushes int

	// DrawCalls is the number of device draw submissions (one per effect
	// pass per flush).
	DrawCalls int

	// Triangles is the number of triangles flushed.
	Triangles int

	// Vertices is the number of vertices flushed.
	Vertices int
}

// Batch accumulates lines, rectangles, circles and convex polygons into a
// shared vertex/index buffer pair and submits them to a Device in as few
// draw calls as possible.
//
// A batch cycles between inactive and active: Begin captures the render
// state, the Draw methods append geometry, and End flushes what remains.
// When a shape does not fit in the remaining buffer space the batch flushes
// first, so draw calls are issued in submission order and indices never
// reference vertices from an earlier flush.
//
// Batch is not safe for concurrent use.
type Batch struct {
	device     Device
	effect     Effect
	ownsEffect bool

	arena arena

	active  bool
	closing bool
	closed  bool

	projection Mat4
	view       Mat4

	stats     Stats
	listeners []func()
}

// NewBatch creates a batch drawing to device. The vertex and index buffers
// are allocated here and reused for the lifetime of the batch.
func NewBatch(device Device, opts ...Option) (*Batch, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxVertices < MinVertices || o.maxVertices > MaxVertices {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]",
			ErrInvalidCapacity, o.maxVertices, MinVertices, MaxVertices)
	}

	b := &Batch{
		device:     device,
		effect:     o.effect,
		arena:      newArena(o.maxVertices),
		projection: Identity4(),
		view:       Identity4(),
	}
	if b.effect == nil {
		e, err := device.NewEffect()
		if err != nil {
			return nil, fmt.Errorf("shapebatch: create effect: %w", err)
		}
		b.effect = e
		b.ownsEffect = true
	}
	return b, nil
}

// Begin starts a batch with the given projection and view matrices.
//
// Begin sets opaque blending, default depth testing and no culling on the
// device and does not restore the previous state on End. It returns
// ErrAlreadyBegun if the batch is already active.
func (b *Batch) Begin(projection, view Mat4) error {
	if b.closed {
		return ErrClosed
	}
	if b.active {
		return ErrAlreadyBegun
	}

	b.device.SetBlendState(BlendOpaque)
	b.device.SetDepthStencilState(DepthStencilDefault)
	b.device.SetRasterizerState(RasterizerCullNone)

	b.projection = projection
	b.view = view
	b.effect.SetWorld(Identity4())
	b.effect.SetView(view)
	b.effect.SetProjection(projection)
	b.effect.SetVertexColorEnabled(true)

	b.stats = Stats{}
	b.active = true
	return nil
}

// BeginTransform starts a batch in screen space: the projection maps the
// device viewport to clip space with the origin at the top-left corner, and
// transform is used as the view matrix.
func (b *Batch) BeginTransform(transform Mat4) error {
	if b.closed {
		return ErrClosed
	}
	vp := b.device.Viewport()
	proj := OrthographicOffCenter(0, float32(vp.Width), float32(vp.Height), 0, -1, 100)
	return b.Begin(proj, transform)
}

// BeginScreen starts a batch in screen space with an identity view.
func (b *Batch) BeginScreen() error {
	return b.BeginTransform(Identity4())
}

// End flushes the remaining geometry and deactivates the batch. The batch is
// deactivated even if the final flush fails.
func (b *Batch) End() error {
	if err := b.check(); err != nil {
		return err
	}
	err := b.Flush()
	b.active = false
	return err
}

// Flush submits the buffered geometry, one draw per effect pass, and resets
// the buffers. Flushing an empty batch does nothing.
//
// If a pass or draw fails the buffered segment is dropped and the error is
// returned; the batch stays usable.
func (b *Batch) Flush() error {
	if b.closed {
		return ErrClosed
	}
	if b.arena.empty() {
		return nil
	}
	defer b.arena.reset()

	vertexCount := b.arena.vertexCount
	triangles := b.arena.indexCount / 3
	for _, pass := range b.effect.Passes() {
		if err := pass.Apply(); err != nil {
			Logger().Warn("shapebatch: effect pass failed", "err", err)
			return fmt.Errorf("shapebatch: apply effect pass: %w", err)
		}
		err := b.device.DrawIndexedPrimitives(
			b.arena.vertices, 0, vertexCount,
			b.arena.indices, 0, triangles,
		)
		if err != nil {
			Logger().Warn("shapebatch: draw failed",
				"vertices", vertexCount, "triangles", triangles, "err", err)
			return fmt.Errorf("shapebatch: draw: %w", err)
		}
		b.stats.DrawCalls++
	}

	b.stats.Flushes++
	b.stats.Triangles += triangles
	b.stats.Vertices += vertexCount
	Logger().Debug("shapebatch: flush",
		slog.Int("vertices", vertexCount), slog.Int("triangles", triangles))
	return nil
}

// reserve makes room for a shape of the given cost, flushing first when the
// remaining space is too small.
func (b *Batch) reserve(vertices, indices int) error {
	if b.arena.oversized(vertices, indices) {
		return fmt.Errorf("%w: needs %d vertices, %d indices; capacity %d, %d",
			ErrShapeTooLarge, vertices, indices, len(b.arena.vertices), len(b.arena.indices))
	}
	if b.arena.fits(vertices, indices) {
		return nil
	}
	Logger().Debug("shapebatch: buffer full, flushing",
		"pending", b.arena.vertexCount, "incoming", vertices)
	return b.Flush()
}

// check returns the protocol error for drawing in the current state.
func (b *Batch) check() error {
	if b.closed {
		return ErrClosed
	}
	if !b.active {
		return ErrNotBegun
	}
	return nil
}

// DrawLine draws a segment from a to b with the given thickness, centered on
// the segment. Zero-length segments are skipped.
func (b *Batch) DrawLine(from, to Point, c RGBA, thickness float32) error {
	if err := b.check(); err != nil {
		return err
	}
	return b.line(from, to, c, thickness)
}

// DrawLineXY is DrawLine with coordinates.
func (b *Batch) DrawLineXY(x1, y1, x2, y2 float32, c RGBA, thickness float32) error {
	return b.DrawLine(Pt(x1, y1), Pt(x2, y2), c, thickness)
}

func (b *Batch) line(from, to Point, c RGBA, thickness float32) error {
	n, ok := lineNormal(from, to, thickness)
	if !ok {
		return nil
	}
	if err := b.reserve(LineCost()); err != nil {
		return err
	}
	emitLine(&b.arena, from, to, n, c)
	return nil
}

// DrawRectangle draws r filled or as an outline centered on its edges.
func (b *Batch) DrawRectangle(r Rect, c RGBA, s Style) error {
	if err := b.check(); err != nil {
		return err
	}
	if s.Fill {
		if err := b.reserve(FilledRectCost()); err != nil {
			return err
		}
		emitFilledRect(&b.arena, r, c)
		return nil
	}

	thickness := s.thickness()
	for _, e := range strokedRectEdges(r, thickness) {
		if err := b.line(e[0], e[1], c, thickness); err != nil {
			return err
		}
	}
	return nil
}

// DrawCircle draws a circle approximated by s.Segments straight edges,
// filled as a triangle fan or stroked as an annulus of width s.Thickness
// centered on the radius.
func (b *Batch) DrawCircle(center Point, radius float32, c RGBA, s Style) error {
	if err := b.check(); err != nil {
		return err
	}
	segments := s.segments()
	if s.Fill {
		if err := b.reserve(FilledCircleCost(segments)); err != nil {
			return err
		}
		emitFilledCircle(&b.arena, center, radius, segments, c)
		return nil
	}

	if err := b.reserve(StrokedCircleCost(segments)); err != nil {
		return err
	}
	emitStrokedCircle(&b.arena, center, radius, s.thickness(), segments, c)
	return nil
}

// DrawPolygon draws a closed convex polygon. Filled polygons are fanned from
// the first point, so concave input fills incorrectly. Fewer than three
// points draw nothing.
func (b *Batch) DrawPolygon(points []Point, c RGBA, s Style) error {
	if err := b.check(); err != nil {
		return err
	}
	if len(points) < 3 {
		return nil
	}
	if s.Fill {
		if err := b.reserve(FilledPolygonCost(len(points))); err != nil {
			return err
		}
		emitFilledPolygon(&b.arena, points, c)
		return nil
	}

	thickness := s.thickness()
	for i := range points {
		next := points[(i+1)%len(points)]
		if err := b.line(points[i], next, c, thickness); err != nil {
			return err
		}
	}
	return nil
}

// OnClose registers fn to be called when the batch is closed. Listeners run
// in registration order after the effect is released.
func (b *Batch) OnClose(fn func()) {
	if fn != nil {
		b.listeners = append(b.listeners, fn)
	}
}

// Close releases the effect created by NewBatch and notifies the OnClose
// listeners. Pending geometry is discarded without drawing. Calling Close
// more than once is a no-op.
func (b *Batch) Close() error {
	if b.closed || b.closing {
		return nil
	}
	b.closing = true
	b.active = false
	b.arena.reset()

	var err error
	if b.ownsEffect {
		if cerr := b.effect.Close(); cerr != nil {
			Logger().Warn("shapebatch: effect close failed", "err", cerr)
			err = fmt.Errorf("shapebatch: close effect: %w", cerr)
		}
	}
	for _, fn := range b.listeners {
		fn()
	}
	b.listeners = nil
	b.closed = true
	return err
}

// Active reports whether the batch is between Begin and End.
func (b *Batch) Active() bool {
	return b.active
}

// Closed reports whether Close has completed.
func (b *Batch) Closed() bool {
	return b.closed
}

// Capacity returns the vertex and index capacity of the buffers.
func (b *Batch) Capacity() (vertices, indices int) {
	return len(b.arena.vertices), len(b.arena.indices)
}

// Pending returns the number of buffered, not yet flushed vertices and
// indices.
func (b *Batch) Pending() (vertices, indices int) {
	return b.arena.vertexCount, b.arena.indexCount
}

// Stats returns the counters accumulated since the last Begin.
func (b *Batch) Stats() Stats {
	return b.stats
}

// Transform returns the projection and view matrices captured by the last
// Begin.
func (b *Batch) Transform() (projection, view Mat4) {
	return b.projection, b.view
}
