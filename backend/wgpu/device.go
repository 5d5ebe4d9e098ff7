package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/shapebatch"
	"github.com/gogpu/wgpu/hal"
)

// minBufferSize is the smallest vertex or index buffer allocation.
const minBufferSize = 4096

// Option configures a Device.
type Option func(*options)

type options struct {
	format      gputypes.TextureFormat
	depthView   hal.TextureView
	depthFormat gputypes.TextureFormat
}

// WithFormat sets the color format of the render targets. The default is
// TextureFormatRGBA8Unorm.
func WithFormat(format gputypes.TextureFormat) Option {
	return func(o *options) {
		o.format = format
	}
}

// WithDepth attaches a depth texture view. Without one, depth state is
// recorded but has no effect.
func WithDepth(view hal.TextureView, format gputypes.TextureFormat) Option {
	return func(o *options) {
		o.depthView = view
		o.depthFormat = format
	}
}

// Device draws shapebatch submissions with a HAL device and queue.
//
// Device is not safe for concurrent use.
type Device struct {
	device hal.Device
	queue  hal.Queue

	target    hal.TextureView
	depthView hal.TextureView
	viewport  shapebatch.Viewport

	blend       gputypes.BlendState
	depth       shapebatch.DepthStencilState
	raster      shapebatch.RasterizerState
	depthFormat gputypes.TextureFormat

	pipelines *pipelineCache
	effects   []*Effect
	current   *Effect

	vertexBuf hal.Buffer
	vertexCap uint64
	indexBuf  hal.Buffer
	indexCap  uint64
	uniforms  []byte
	staging   []byte

	// headless resources released by Close.
	owned *headless

	draws     int
	triangles int
	closed    bool
}

// NewDevice creates a device on an open HAL device and queue. Call
// SetTarget before drawing.
func NewDevice(device hal.Device, queue hal.Queue, opts ...Option) (*Device, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	o := options{format: gputypes.TextureFormatRGBA8Unorm}
	for _, opt := range opts {
		opt(&o)
	}

	pipelines, err := newPipelineCache(device, o.format)
	if err != nil {
		return nil, err
	}
	shapebatch.Logger().Info("wgpu: device created", "format", o.format)
	return &Device{
		device:      device,
		queue:       queue,
		depthView:   o.depthView,
		depthFormat: o.depthFormat,
		blend:       shapebatch.BlendOpaque,
		depth:       shapebatch.DepthStencilDefault,
		raster:      shapebatch.RasterizerCullNone,
		pipelines:   pipelines,
	}, nil
}

// SetTarget sets the color attachment and resets the viewport to cover a
// width x height target.
func (d *Device) SetTarget(view hal.TextureView, width, height int) {
	d.target = view
	d.viewport = shapebatch.Viewport{Width: max(width, 0), Height: max(height, 0)}
}

// Target returns the current color attachment.
func (d *Device) Target() hal.TextureView {
	return d.target
}

// Viewport returns the current viewport.
func (d *Device) Viewport() shapebatch.Viewport {
	return d.viewport
}

// SetViewport sets the viewport used by subsequent draws.
func (d *Device) SetViewport(vp shapebatch.Viewport) {
	d.viewport = vp
}

// SetBlendState sets the blend state of subsequent pipelines.
func (d *Device) SetBlendState(s gputypes.BlendState) {
	d.blend = s
}

// SetDepthStencilState sets the depth state of subsequent pipelines.
func (d *Device) SetDepthStencilState(s shapebatch.DepthStencilState) {
	d.depth = s
}

// SetRasterizerState sets the culling state of subsequent pipelines.
func (d *Device) SetRasterizerState(s shapebatch.RasterizerState) {
	d.raster = s
}

// HAL returns the underlying device and queue.
func (d *Device) HAL() (hal.Device, hal.Queue) {
	return d.device, d.queue
}

// Stats returns the number of draw calls and triangles submitted since the
// device was created.
func (d *Device) Stats() (draws, triangles int) {
	return d.draws, d.triangles
}

// Pipelines returns the number of cached render pipelines.
func (d *Device) Pipelines() int {
	return len(d.pipelines.pipelines)
}

// DrawIndexedPrimitives uploads the vertex and index ranges and draws them
// into the current target in one render pass. The call waits for the GPU
// to finish so the buffers can be reused by the next draw.
func (d *Device) DrawIndexedPrimitives(vertices []shapebatch.Vertex, vertexOffset, numVertices int,
	indices []shapebatch.Index, indexOffset, primitiveCount int) error {
	if d.closed {
		return ErrClosed
	}
	if d.current == nil {
		return ErrNoEffect
	}
	if d.target == nil {
		return ErrNoTarget
	}
	if err := checkRange(len(vertices), len(indices), vertexOffset, numVertices, indexOffset, primitiveCount); err != nil {
		return err
	}
	verts := vertices[vertexOffset : vertexOffset+numVertices]
	idx := indices[indexOffset : indexOffset+3*primitiveCount]
	for i, n := range idx {
		if int(n) >= numVertices {
			return fmt.Errorf("%w: index[%d] = %d, vertices %d", ErrInvalidRange, i, n, numVertices)
		}
	}
	if primitiveCount == 0 || d.viewport.Width <= 0 || d.viewport.Height <= 0 {
		return nil
	}

	pipeline, err := d.pipelines.get(d.pipelineKey())
	if err != nil {
		return err
	}
	if err := d.upload(verts, idx); err != nil {
		return err
	}
	if err := d.encodeAndSubmit(pipeline, uint32(len(idx))); err != nil {
		return err
	}

	d.draws++
	d.triangles += primitiveCount
	return nil
}

func checkRange(nv, ni, vertexOffset, numVertices, indexOffset, primitiveCount int) error {
	if vertexOffset < 0 || numVertices < 0 || vertexOffset+numVertices > nv {
		return fmt.Errorf("%w: vertices [%d, %d) of %d", ErrInvalidRange, vertexOffset, vertexOffset+numVertices, nv)
	}
	if indexOffset < 0 || primitiveCount < 0 || indexOffset+3*primitiveCount > ni {
		return fmt.Errorf("%w: indices [%d, %d) of %d", ErrInvalidRange, indexOffset, indexOffset+3*primitiveCount, ni)
	}
	return nil
}

func (d *Device) pipelineKey() pipelineKey {
	key := pipelineKey{blend: d.blend, raster: d.raster}
	if d.depthView != nil {
		key.depth = d.depth
		key.depthFormat = d.depthFormat
	}
	return key
}

// premultiplied reports whether the blend state expects premultiplied
// source color.
func (d *Device) premultiplied() bool {
	return d.blend == gputypes.BlendStatePremultiplied()
}

// upload writes uniforms, vertices and indices to their GPU buffers,
// growing the vertex and index buffers as needed.
func (d *Device) upload(verts []shapebatch.Vertex, idx []shapebatch.Index) error {
	e := d.current
	d.uniforms = appendUniforms(d.uniforms[:0], e.mvp(), e.vertexColor, d.premultiplied())
	if err := d.queue.WriteBuffer(e.uniformBuf, 0, d.uniforms); err != nil {
		return fmt.Errorf("write shape uniforms: %w", err)
	}

	d.staging = appendVertices(d.staging[:0], verts)
	if err := d.ensureBuffer(&d.vertexBuf, &d.vertexCap, uint64(len(d.staging)),
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst, "shape_vertices"); err != nil {
		return err
	}
	if err := d.queue.WriteBuffer(d.vertexBuf, 0, d.staging); err != nil {
		return fmt.Errorf("write shape vertices: %w", err)
	}

	d.staging = appendIndices(d.staging[:0], idx)
	if err := d.ensureBuffer(&d.indexBuf, &d.indexCap, uint64(len(d.staging)),
		gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst, "shape_indices"); err != nil {
		return err
	}
	if err := d.queue.WriteBuffer(d.indexBuf, 0, d.staging); err != nil {
		return fmt.Errorf("write shape indices: %w", err)
	}
	return nil
}

// ensureBuffer reallocates *buf when it is smaller than size. Capacity
// doubles from minBufferSize.
func (d *Device) ensureBuffer(buf *hal.Buffer, capacity *uint64, size uint64,
	usage gputypes.BufferUsage, label string) error {
	if *buf != nil && *capacity >= size {
		return nil
	}
	newCap := max(*capacity, minBufferSize)
	for newCap < size {
		newCap *= 2
	}
	b, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  newCap,
		Usage: usage,
	})
	if err != nil {
		return fmt.Errorf("create %s buffer (%d bytes): %w", label, newCap, err)
	}
	if *buf != nil {
		d.device.DestroyBuffer(*buf)
	}
	*buf = b
	*capacity = newCap
	shapebatch.Logger().Debug("wgpu: buffer grown", "label", label, "bytes", newCap)
	return nil
}

// encodeAndSubmit records one render pass drawing indexCount indices and
// waits for it to complete.
func (d *Device) encodeAndSubmit(pipeline hal.RenderPipeline, indexCount uint32) error {
	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "shape_encoder"})
	if err != nil {
		return fmt.Errorf("create shape command encoder: %w", err)
	}
	defer encoder.Destroy()

	if err := encoder.BeginEncoding("shape_draw"); err != nil {
		return fmt.Errorf("begin shape encoding: %w", err)
	}

	desc := &hal.RenderPassDescriptor{
		Label: "shape_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:    d.target,
				LoadOp:  gputypes.LoadOpLoad,
				StoreOp: gputypes.StoreOpStore,
			},
		},
	}
	if d.depthView != nil {
		desc.DepthStencilAttachment = &hal.RenderPassDepthStencilAttachment{
			View:         d.depthView,
			DepthLoadOp:  gputypes.LoadOpLoad,
			DepthStoreOp: gputypes.StoreOpStore,
		}
	}

	vp := d.viewport
	rp := encoder.BeginRenderPass(desc)
	rp.SetPipeline(pipeline)
	rp.SetBindGroup(0, d.current.bindGroup, nil)
	rp.SetVertexBuffer(0, d.vertexBuf, 0)
	rp.SetIndexBuffer(d.indexBuf, gputypes.IndexFormatUint16, 0)
	rp.SetViewport(float32(vp.X), float32(vp.Y), float32(vp.Width), float32(vp.Height), 0, 1)
	rp.DrawIndexed(indexCount, 1, 0, 0, 0)
	rp.End()

	cmd, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end shape encoding: %w", err)
	}
	defer d.device.FreeCommandBuffer(cmd)

	if _, err := d.queue.Submit([]hal.CommandBuffer{cmd}); err != nil {
		return fmt.Errorf("submit shape pass: %w", err)
	}
	if err := d.device.WaitIdle(); err != nil {
		return fmt.Errorf("wait for shape pass: %w", err)
	}
	return nil
}

// releaseEffect destroys the resources of e and unbinds it.
func (d *Device) releaseEffect(e *Effect) {
	if d.current == e {
		d.current = nil
	}
	for i, other := range d.effects {
		if other == e {
			d.effects = append(d.effects[:i], d.effects[i+1:]...)
			break
		}
	}
	e.destroy(d.device)
}

// Close releases effects, buffers, pipelines and any headless resources.
// Calling Close more than once is a no-op.
func (d *Device) Close() error {
	if d.closed {
		return nil
	}
	if err := d.device.WaitIdle(); err != nil {
		shapebatch.Logger().Warn("wgpu: wait idle on close failed", "err", err)
	}
	for _, e := range d.effects {
		e.closed = true
		e.destroy(d.device)
	}
	d.effects = nil
	d.current = nil

	if d.indexBuf != nil {
		d.device.DestroyBuffer(d.indexBuf)
		d.indexBuf = nil
	}
	if d.vertexBuf != nil {
		d.device.DestroyBuffer(d.vertexBuf)
		d.vertexBuf = nil
	}
	d.pipelines.destroy()
	if d.owned != nil {
		d.owned.destroy(d.device)
		d.owned = nil
	}
	d.closed = true
	return nil
}
