package shapebatch

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestNewBatch_Defaults(t *testing.T) {
	dev := newMockDevice()
	b, err := NewBatch(dev)
	if err != nil {
		t.Fatalf("NewBatch() error = %v", err)
	}
	v, i := b.Capacity()
	if v != DefaultMaxVertices || i != 3*DefaultMaxVertices {
		t.Errorf("Capacity() = (%d, %d), want (%d, %d)", v, i, DefaultMaxVertices, 3*DefaultMaxVertices)
	}
	if b.Active() {
		t.Error("new batch should be inactive")
	}
	if dev.lastEffect == nil {
		t.Error("NewBatch should create the device effect")
	}
}

func TestNewBatch_InvalidCapacity(t *testing.T) {
	tests := []struct {
		name string
		n    int
	}{
		{"zero", 0},
		{"negative", -1},
		{"below minimum", MinVertices - 1},
		{"above 16-bit range", MaxVertices + 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBatch(newMockDevice(), WithMaxVertices(tt.n))
			if !errors.Is(err, ErrInvalidCapacity) {
				t.Errorf("NewBatch(WithMaxVertices(%d)) error = %v, want ErrInvalidCapacity", tt.n, err)
			}
		})
	}
}

func TestNewBatch_NilDevice(t *testing.T) {
	if _, err := NewBatch(nil); !errors.Is(err, ErrNilDevice) {
		t.Errorf("NewBatch(nil) error = %v, want ErrNilDevice", err)
	}
}

func TestNewBatch_EffectFailurePropagates(t *testing.T) {
	dev := newMockDevice()
	want := errors.New("shader unavailable")
	dev.effectErr = want
	if _, err := NewBatch(dev); !errors.Is(err, want) {
		t.Errorf("NewBatch() error = %v, want %v", err, want)
	}
}

func TestBegin_SetsRenderState(t *testing.T) {
	b, dev := newTestBatch(t)

	if !b.Active() {
		t.Fatal("batch should be active after BeginScreen")
	}
	if dev.blend != gputypes.BlendStateReplace() {
		t.Errorf("blend = %+v, want opaque", dev.blend)
	}
	if dev.depth != DepthStencilDefault {
		t.Errorf("depth = %+v, want %+v", dev.depth, DepthStencilDefault)
	}
	if dev.raster.CullMode != gputypes.CullModeNone {
		t.Errorf("cull mode = %v, want None", dev.raster.CullMode)
	}
	e := dev.lastEffect
	if !e.vertexColor {
		t.Error("vertex colors should be enabled")
	}
	if e.world != Identity4() {
		t.Error("world should be identity")
	}
	if e.view != Identity4() {
		t.Error("BeginScreen view should be identity")
	}
}

func TestBeginTransform_ProjectsViewport(t *testing.T) {
	dev := newMockDevice()
	dev.viewport = Viewport{Width: 200, Height: 100}
	b, err := NewBatch(dev)
	if err != nil {
		t.Fatal(err)
	}
	view := Mat4FromAffine(Translate(5, 7))
	if err := b.BeginTransform(view); err != nil {
		t.Fatal(err)
	}

	proj, gotView := b.Transform()
	if gotView != view || dev.lastEffect.view != view {
		t.Error("transform should be used as the view matrix")
	}

	corners := []struct {
		x, y, wantX, wantY float32
	}{
		{0, 0, -1, 1},
		{200, 0, 1, 1},
		{0, 100, -1, -1},
		{200, 100, 1, -1},
	}
	for _, c := range corners {
		got := proj.Transform(c.x, c.y, 0, 1)
		if !approx(got[0], c.wantX, 1e-5) || !approx(got[1], c.wantY, 1e-5) {
			t.Errorf("project(%v, %v) = (%v, %v), want (%v, %v)", c.x, c.y, got[0], got[1], c.wantX, c.wantY)
		}
	}
}

func TestBegin_TwiceIsRejected(t *testing.T) {
	b, _ := newTestBatch(t)
	if err := b.DrawLine(Pt(0, 0), Pt(10, 0), Red, 1); err != nil {
		t.Fatal(err)
	}
	if err := b.BeginScreen(); !errors.Is(err, ErrAlreadyBegun) {
		t.Fatalf("second Begin error = %v, want ErrAlreadyBegun", err)
	}
	if v, _ := b.Pending(); v != 4 {
		t.Errorf("pending vertices = %d, want 4 (untouched by rejected Begin)", v)
	}
}

func TestProtocol_DrawWithoutBegin(t *testing.T) {
	b, err := NewBatch(newMockDevice())
	if err != nil {
		t.Fatal(err)
	}

	calls := map[string]func() error{
		"DrawLine":      func() error { return b.DrawLine(Pt(0, 0), Pt(1, 1), Red, 1) },
		"DrawLineXY":    func() error { return b.DrawLineXY(0, 0, 1, 1, Red, 1) },
		"DrawRectangle": func() error { return b.DrawRectangle(R(0, 0, 1, 1), Red, Filled) },
		"DrawCircle":    func() error { return b.DrawCircle(Pt(0, 0), 1, Red, Style{}) },
		"DrawPolygon":   func() error { return b.DrawPolygon([]Point{{0, 0}, {1, 0}, {1, 1}}, Red, Filled) },
		"End":           b.End,
	}
	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			if err := call(); !errors.Is(err, ErrNotBegun) {
				t.Errorf("%s() error = %v, want ErrNotBegun", name, err)
			}
			if v, i := b.Pending(); v != 0 || i != 0 {
				t.Errorf("Pending() = (%d, %d), want (0, 0)", v, i)
			}
		})
	}
}

func TestScenario_FilledRectangle(t *testing.T) {
	b, dev := newTestBatch(t)
	if err := b.DrawRectangle(R(0, 0, 100, 50), Red, Filled); err != nil {
		t.Fatal(err)
	}
	if err := b.End(); err != nil {
		t.Fatal(err)
	}

	if len(dev.draws) != 1 {
		t.Fatalf("draw submissions = %d, want 1", len(dev.draws))
	}
	call := dev.draws[0]
	if call.triangles != 2 {
		t.Errorf("triangles = %d, want 2", call.triangles)
	}
	want := [][2]float32{{0, 0}, {100, 0}, {0, 50}, {100, 50}}
	if len(call.vertices) != len(want) {
		t.Fatalf("vertices = %d, want %d", len(call.vertices), len(want))
	}
	for i, v := range call.vertices {
		if v.Position != [3]float32{want[i][0], want[i][1], 0} {
			t.Errorf("vertex %d at %v, want %v", i, v.Position, want[i])
		}
		if v.Color != Red {
			t.Errorf("vertex %d color = %v, want red", i, v.Color)
		}
	}
	if s := b.Stats(); s.Flushes != 1 || s.DrawCalls != 1 || s.Triangles != 2 {
		t.Errorf("Stats() = %+v, want 1 flush, 1 draw, 2 triangles", s)
	}
	if b.Active() {
		t.Error("batch should be inactive after End")
	}
}

func TestFlush_Idempotent(t *testing.T) {
	b, dev := newTestBatch(t)
	if err := b.DrawLine(Pt(0, 0), Pt(10, 10), Green, 2); err != nil {
		t.Fatal(err)
	}
	if err := b.Flush(); err != nil {
		t.Fatal(err)
	}
	if err := b.Flush(); err != nil {
		t.Fatal(err)
	}
	if len(dev.draws) != 1 {
		t.Errorf("draw submissions = %d, want 1", len(dev.draws))
	}
	if !b.Active() {
		t.Error("Flush must not change the active state")
	}
}

func TestFlush_OneDrawPerPass(t *testing.T) {
	dev := newMockDevice()
	dev.passes = 2
	b, err := NewBatch(dev)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.BeginScreen(); err != nil {
		t.Fatal(err)
	}
	if err := b.DrawCircle(Pt(50, 50), 10, Blue, Filled); err != nil {
		t.Fatal(err)
	}
	if err := b.End(); err != nil {
		t.Fatal(err)
	}
	if len(dev.draws) != 2 {
		t.Errorf("draw submissions = %d, want 2", len(dev.draws))
	}
	if dev.lastEffect.applied != 2 {
		t.Errorf("passes applied = %d, want 2", dev.lastEffect.applied)
	}
	if s := b.Stats(); s.Flushes != 1 || s.DrawCalls != 2 || s.Triangles != DefaultSegments {
		t.Errorf("Stats() = %+v", s)
	}
}

func TestFlush_DeviceErrorPropagates(t *testing.T) {
	b, dev := newTestBatch(t)
	dev.drawErr = errMockDraw
	if err := b.DrawLine(Pt(0, 0), Pt(10, 0), Red, 1); err != nil {
		t.Fatal(err)
	}
	if err := b.Flush(); !errors.Is(err, errMockDraw) {
		t.Fatalf("Flush() error = %v, want %v", err, errMockDraw)
	}
	if v, i := b.Pending(); v != 0 || i != 0 {
		t.Errorf("Pending() after failed flush = (%d, %d), want (0, 0)", v, i)
	}

	dev.drawErr = nil
	if err := b.DrawLine(Pt(0, 0), Pt(10, 0), Red, 1); err != nil {
		t.Fatal(err)
	}
	if err := b.End(); err != nil {
		t.Fatalf("End() after recovery error = %v", err)
	}
	if len(dev.draws) != 1 {
		t.Errorf("draw submissions = %d, want 1", len(dev.draws))
	}
}

func TestFlush_PassErrorPropagates(t *testing.T) {
	b, dev := newTestBatch(t)
	want := errors.New("bind failed")
	dev.lastEffect.applyErr = want
	if err := b.DrawRectangle(R(0, 0, 4, 4), Red, Filled); err != nil {
		t.Fatal(err)
	}
	if err := b.End(); !errors.Is(err, want) {
		t.Fatalf("End() error = %v, want %v", err, want)
	}
	if b.Active() {
		t.Error("End should deactivate the batch even when the flush fails")
	}
	if len(dev.draws) != 0 {
		t.Errorf("draw submissions = %d, want 0", len(dev.draws))
	}
}

func TestCapacity_BoundaryFlushesOnce(t *testing.T) {
	// Two lines fill 8 vertices exactly; the third must flush first.
	b, dev := newTestBatch(t, WithMaxVertices(8))

	for i := 0; i < 2; i++ {
		if err := b.DrawLine(Pt(0, float32(i)), Pt(10, float32(i)), Red, 1); err != nil {
			t.Fatal(err)
		}
	}
	if len(dev.draws) != 0 {
		t.Fatalf("flushed early: %d draws", len(dev.draws))
	}
	if v, _ := b.Pending(); v != 8 {
		t.Fatalf("pending vertices = %d, want 8", v)
	}

	if err := b.DrawLine(Pt(0, 5), Pt(10, 5), Red, 1); err != nil {
		t.Fatal(err)
	}
	if len(dev.draws) != 1 {
		t.Fatalf("draws after overflow = %d, want 1", len(dev.draws))
	}
	if v, i := b.Pending(); v != 4 || i != 6 {
		t.Errorf("Pending() = (%d, %d), want (4, 6)", v, i)
	}

	if err := b.End(); err != nil {
		t.Fatal(err)
	}
	if got := dev.totalTriangles(); got != 6 {
		t.Errorf("total triangles = %d, want 6", got)
	}
	checkDrawIndices(t, dev)
}

func TestCapacity_IndexBoundFlushes(t *testing.T) {
	// A filled circle of 8 segments needs 10 vertices and 24 indices. With
	// 12 vertices (36 indices) a second circle overflows both counters.
	b, dev := newTestBatch(t, WithMaxVertices(12))
	for i := 0; i < 2; i++ {
		if err := b.DrawCircle(Pt(0, 0), 5, Red, Style{Fill: true, Segments: 8}); err != nil {
			t.Fatal(err)
		}
		checkInvariants(t, b)
	}
	if len(dev.draws) != 1 {
		t.Fatalf("draws = %d, want 1", len(dev.draws))
	}
	if err := b.End(); err != nil {
		t.Fatal(err)
	}
	if got := dev.totalTriangles(); got != 16 {
		t.Errorf("total triangles = %d, want 16", got)
	}
}

func TestCapacity_OversizedShapeRejected(t *testing.T) {
	b, dev := newTestBatch(t, WithMaxVertices(8))
	if err := b.DrawLine(Pt(0, 0), Pt(5, 0), Red, 1); err != nil {
		t.Fatal(err)
	}

	err := b.DrawCircle(Pt(0, 0), 10, Red, Style{Fill: true, Segments: 10})
	if !errors.Is(err, ErrShapeTooLarge) {
		t.Fatalf("DrawCircle() error = %v, want ErrShapeTooLarge", err)
	}
	if len(dev.draws) != 0 {
		t.Errorf("oversized shape must not flush, got %d draws", len(dev.draws))
	}
	if v, i := b.Pending(); v != 4 || i != 6 {
		t.Errorf("Pending() = (%d, %d), want (4, 6)", v, i)
	}

	pts := make([]Point, 9)
	for i := range pts {
		pts[i] = Pt(float32(i), float32(i*i))
	}
	if err := b.DrawPolygon(pts, Red, Filled); !errors.Is(err, ErrShapeTooLarge) {
		t.Errorf("DrawPolygon() error = %v, want ErrShapeTooLarge", err)
	}
}

func TestTriangleCount_MatchesShapes(t *testing.T) {
	// A small capacity forces many intermediate flushes.
	b, dev := newTestBatch(t, WithMaxVertices(32))

	hexagon := []Point{{10, 0}, {20, 5}, {20, 15}, {10, 20}, {0, 15}, {0, 5}}
	want := 0
	draws := []struct {
		triangles int
		draw      func() error
	}{
		{2, func() error { return b.DrawLine(Pt(0, 0), Pt(100, 100), Red, 3) }},
		{2, func() error { return b.DrawRectangle(R(5, 5, 20, 10), Green, Filled) }},
		{8, func() error { return b.DrawRectangle(R(5, 5, 20, 10), Green, Stroke(2)) }},
		{12, func() error { return b.DrawCircle(Pt(50, 50), 8, Blue, Style{Fill: true, Segments: 12}) }},
		{2 * DefaultSegments, func() error { return b.DrawCircle(Pt(50, 50), 8, Blue, Style{}) }},
		{2 * 7, func() error { return b.DrawCircle(Pt(50, 50), 8, Blue, Style{Segments: 7, Thickness: 2}) }},
		{len(hexagon) - 2, func() error { return b.DrawPolygon(hexagon, Yellow, Filled) }},
		{2 * len(hexagon), func() error { return b.DrawPolygon(hexagon, Yellow, Stroke(1)) }},
		{3, func() error { return b.DrawCircle(Pt(1, 1), 1, Cyan, Style{Fill: true, Segments: 1}) }},
	}
	for round := 0; round < 5; round++ {
		for _, d := range draws {
			if err := d.draw(); err != nil {
				t.Fatal(err)
			}
			want += d.triangles
			checkInvariants(t, b)
		}
	}
	if err := b.End(); err != nil {
		t.Fatal(err)
	}

	if got := dev.totalTriangles(); got != want {
		t.Errorf("total triangles = %d, want %d", got, want)
	}
	if got := b.Stats().Triangles; got != want {
		t.Errorf("Stats().Triangles = %d, want %d", got, want)
	}
	if len(dev.draws) < 2 {
		t.Errorf("expected intermediate flushes, got %d draws", len(dev.draws))
	}
	checkDrawIndices(t, dev)
}

func TestDegenerateInput_NoGeometry(t *testing.T) {
	b, dev := newTestBatch(t)

	p := Pt(3, 4)
	if err := b.DrawLine(p, p, Red, 1); err != nil {
		t.Errorf("zero-length DrawLine error = %v", err)
	}
	if err := b.DrawPolygon([]Point{{0, 0}, {1, 1}}, Red, Filled); err != nil {
		t.Errorf("2-point DrawPolygon error = %v", err)
	}
	if err := b.DrawPolygon([]Point{{0, 0}, {1, 1}}, Red, Style{}); err != nil {
		t.Errorf("2-point stroked DrawPolygon error = %v", err)
	}
	if err := b.DrawPolygon(nil, Red, Filled); err != nil {
		t.Errorf("nil DrawPolygon error = %v", err)
	}
	if v, i := b.Pending(); v != 0 || i != 0 {
		t.Errorf("Pending() = (%d, %d), want (0, 0)", v, i)
	}
	if err := b.End(); err != nil {
		t.Fatal(err)
	}
	if len(dev.draws) != 0 {
		t.Errorf("draw submissions = %d, want 0", len(dev.draws))
	}
}

func TestClose_ReleasesAndNotifiesOnce(t *testing.T) {
	b, dev := newTestBatch(t)
	var order []string
	b.OnClose(func() {
		if dev.lastEffect.closed != 1 {
			t.Error("listener should run after the effect is released")
		}
		if b.Closed() {
			t.Error("listener should run before the batch is marked closed")
		}
		order = append(order, "first")
	})
	b.OnClose(func() { order = append(order, "second") })

	if err := b.DrawLine(Pt(0, 0), Pt(1, 0), Red, 1); err != nil {
		t.Fatal(err)
	}
	if err := b.Close(); err != nil {
		t.Fatal(err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}

	if dev.lastEffect.closed != 1 {
		t.Errorf("effect closed %d times, want 1", dev.lastEffect.closed)
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("listener order = %v", order)
	}
	if len(dev.draws) != 0 {
		t.Error("Close must not draw pending geometry")
	}
	if !b.Closed() || b.Active() {
		t.Error("batch should be closed and inactive")
	}

	if err := b.BeginScreen(); !errors.Is(err, ErrClosed) {
		t.Errorf("Begin after Close error = %v, want ErrClosed", err)
	}
	if err := b.DrawLine(Pt(0, 0), Pt(1, 0), Red, 1); !errors.Is(err, ErrClosed) {
		t.Errorf("DrawLine after Close error = %v, want ErrClosed", err)
	}
	if err := b.Flush(); !errors.Is(err, ErrClosed) {
		t.Errorf("Flush after Close error = %v, want ErrClosed", err)
	}
}

func TestClose_ExternalEffectNotClosed(t *testing.T) {
	e := &mockEffect{}
	e.passes = []EffectPass{&mockPass{effect: e}}
	b, err := NewBatch(newMockDevice(), WithEffect(e))
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Close(); err != nil {
		t.Fatal(err)
	}
	if e.closed != 0 {
		t.Errorf("caller-owned effect closed %d times, want 0", e.closed)
	}
}

func TestClose_EffectErrorReported(t *testing.T) {
	dev := newMockDevice()
	b, err := NewBatch(dev)
	if err != nil {
		t.Fatal(err)
	}
	want := errors.New("release failed")
	dev.lastEffect.closeErr = want
	notified := false
	b.OnClose(func() { notified = true })

	if err := b.Close(); !errors.Is(err, want) {
		t.Errorf("Close() error = %v, want %v", err, want)
	}
	if !notified {
		t.Error("listeners should run even if the effect fails to close")
	}
}

func TestStats_ResetOnBegin(t *testing.T) {
	b, _ := newTestBatch(t)
	if err := b.DrawRectangle(R(0, 0, 1, 1), Red, Filled); err != nil {
		t.Fatal(err)
	}
	if err := b.End(); err != nil {
		t.Fatal(err)
	}
	if err := b.BeginScreen(); err != nil {
		t.Fatal(err)
	}
	if s := b.Stats(); s != (Stats{}) {
		t.Errorf("Stats() after Begin = %+v, want zero", s)
	}
}

func BenchmarkBatch_Circles(b *testing.B) {
	dev := newMockDevice()
	batch, err := NewBatch(dev, WithMaxVertices(4096))
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		dev.draws = dev.draws[:0]
		_ = batch.BeginScreen()
		for j := 0; j < 100; j++ {
			_ = batch.DrawCircle(Pt(float32(j), float32(j)), 10, Red, Style{Fill: true, Segments: 16})
		}
		_ = batch.End()
	}
}
