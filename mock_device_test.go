package shapebatch

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
)

// drawCall is one DrawIndexedPrimitives submission captured by mockDevice.
type drawCall struct {
	vertices  []Vertex
	indices   []Index
	triangles int
}

// mockDevice records submissions and state changes.
type mockDevice struct {
	viewport   Viewport
	blend      gputypes.BlendState
	depth      DepthStencilState
	raster     RasterizerState
	draws      []drawCall
	drawErr    error
	effectErr  error
	passes     int
	lastEffect *mockEffect
}

func newMockDevice() *mockDevice {
	return &mockDevice{viewport: Viewport{Width: 800, Height: 600}, passes: 1}
}

func (d *mockDevice) Viewport() Viewport {
	return d.viewport
}

func (d *mockDevice) SetBlendState(s gputypes.BlendState) {
	d.blend = s
}

func (d *mockDevice) SetDepthStencilState(s DepthStencilState) {
	d.depth = s
}

func (d *mockDevice) SetRasterizerState(s RasterizerState) {
	d.raster = s
}

func (d *mockDevice) DrawIndexedPrimitives(vertices []Vertex, vertexOffset, numVertices int,
	indices []Index, indexOffset, primitiveCount int) error {
	if d.drawErr != nil {
		return d.drawErr
	}
	call := drawCall{
		vertices:  append([]Vertex(nil), vertices[vertexOffset:vertexOffset+numVertices]...),
		indices:   append([]Index(nil), indices[indexOffset:indexOffset+3*primitiveCount]...),
		triangles: primitiveCount,
	}
	d.draws = append(d.draws, call)
	return nil
}

func (d *mockDevice) NewEffect() (Effect, error) {
	if d.effectErr != nil {
		return nil, d.effectErr
	}
	e := &mockEffect{}
	for i := 0; i < d.passes; i++ {
		e.passes = append(e.passes, &mockPass{effect: e})
	}
	d.lastEffect = e
	return e, nil
}

func (d *mockDevice) totalTriangles() int {
	n := 0
	for _, c := range d.draws {
		n += c.triangles
	}
	return n
}

type mockEffect struct {
	world, view, projection Mat4
	vertexColor             bool
	passes                  []EffectPass
	applied                 int
	closed                  int
	applyErr                error
	closeErr                error
}

func (e *mockEffect) SetWorld(m Mat4) {
	e.world = m
}

func (e *mockEffect) SetView(m Mat4) {
	e.view = m
}

func (e *mockEffect) SetProjection(m Mat4) {
	e.projection = m
}

func (e *mockEffect) SetVertexColorEnabled(enabled bool) {
	e.vertexColor = enabled
}

func (e *mockEffect) Passes() []EffectPass {
	return e.passes
}

func (e *mockEffect) Close() error {
	e.closed++
	return e.closeErr
}

type mockPass struct {
	effect *mockEffect
}

func (p *mockPass) Apply() error {
	if p.effect.applyErr != nil {
		return p.effect.applyErr
	}
	p.effect.applied++
	return nil
}

var errMockDraw = errors.New("mock: draw failed")

// newTestBatch creates an active batch on a fresh mockDevice.
func newTestBatch(t *testing.T, opts ...Option) (*Batch, *mockDevice) {
	t.Helper()
	dev := newMockDevice()
	b, err := NewBatch(dev, opts...)
	if err != nil {
		t.Fatalf("NewBatch() error = %v", err)
	}
	if err := b.BeginScreen(); err != nil {
		t.Fatalf("BeginScreen() error = %v", err)
	}
	return b, dev
}

// checkInvariants verifies the live buffer prefix: counts within capacity
// and every live index below the live vertex count.
func checkInvariants(t *testing.T, b *Batch) {
	t.Helper()
	vc, ic := b.Pending()
	maxV, maxI := b.Capacity()
	if vc < 0 || vc > maxV {
		t.Fatalf("vertex count %d outside [0, %d]", vc, maxV)
	}
	if ic < 0 || ic > maxI {
		t.Fatalf("index count %d outside [0, %d]", ic, maxI)
	}
	if ic%3 != 0 {
		t.Fatalf("index count %d is not a multiple of 3", ic)
	}
	for i := 0; i < ic; i++ {
		if int(b.arena.indices[i]) >= vc {
			t.Fatalf("index[%d] = %d, want < %d", i, b.arena.indices[i], vc)
		}
	}
}

// checkDrawIndices verifies every submitted index references a submitted
// vertex.
func checkDrawIndices(t *testing.T, dev *mockDevice) {
	t.Helper()
	for n, c := range dev.draws {
		for i, idx := range c.indices {
			if int(idx) >= len(c.vertices) {
				t.Fatalf("draw %d: index[%d] = %d, want < %d", n, i, idx, len(c.vertices))
			}
		}
	}
}
