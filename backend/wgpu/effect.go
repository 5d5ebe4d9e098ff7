package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/shapebatch"
	"github.com/gogpu/wgpu/hal"
)

// Effect is the vertex-color shader state of a Device. Each effect owns a
// uniform buffer and the bind group referencing it; the uniforms are
// written by the device immediately before each draw.
type Effect struct {
	device                  *Device
	world, view, projection shapebatch.Mat4
	vertexColor             bool
	passes                  []shapebatch.EffectPass

	uniformBuf hal.Buffer
	bindGroup  hal.BindGroup
	closed     bool
}

// NewEffect creates a single-pass vertex-color effect.
func (d *Device) NewEffect() (shapebatch.Effect, error) {
	if d.closed {
		return nil, ErrClosed
	}
	uniformBuf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "shape_uniforms",
		Size:  uniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create shape uniform buffer: %w", err)
	}
	bindGroup, err := d.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "shape_uniform_bind",
		Layout: d.pipelines.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{
				Binding: 0,
				Resource: gputypes.BufferBinding{
					Buffer: uniformBuf.NativeHandle(),
					Offset: 0,
					Size:   uniformSize,
				},
			},
		},
	})
	if err != nil {
		d.device.DestroyBuffer(uniformBuf)
		return nil, fmt.Errorf("create shape bind group: %w", err)
	}

	e := &Effect{
		device:     d,
		world:      shapebatch.Identity4(),
		view:       shapebatch.Identity4(),
		projection: shapebatch.Identity4(),
		uniformBuf: uniformBuf,
		bindGroup:  bindGroup,
	}
	e.passes = []shapebatch.EffectPass{effectPass{effect: e}}
	d.effects = append(d.effects, e)
	return e, nil
}

// SetWorld sets the world matrix.
func (e *Effect) SetWorld(m shapebatch.Mat4) {
	e.world = m
}

// SetView sets the view matrix.
func (e *Effect) SetView(m shapebatch.Mat4) {
	e.view = m
}

// SetProjection sets the projection matrix.
func (e *Effect) SetProjection(m shapebatch.Mat4) {
	e.projection = m
}

// SetVertexColorEnabled selects between per-vertex colors and opaque white.
func (e *Effect) SetVertexColorEnabled(enabled bool) {
	e.vertexColor = enabled
}

// Passes returns the single pass of the effect.
func (e *Effect) Passes() []shapebatch.EffectPass {
	return e.passes
}

// Close releases the uniform buffer and bind group. Calling Close more than
// once is a no-op.
func (e *Effect) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	e.device.releaseEffect(e)
	return nil
}

// Closed reports whether the effect has been closed.
func (e *Effect) Closed() bool {
	return e.closed
}

// mvp returns projection * view * world.
func (e *Effect) mvp() shapebatch.Mat4 {
	return e.projection.Mul(e.view).Mul(e.world)
}

// destroy releases the GPU resources of the effect.
func (e *Effect) destroy(device hal.Device) {
	if e.bindGroup != nil {
		device.DestroyBindGroup(e.bindGroup)
		e.bindGroup = nil
	}
	if e.uniformBuf != nil {
		device.DestroyBuffer(e.uniformBuf)
		e.uniformBuf = nil
	}
}

type effectPass struct {
	effect *Effect
}

func (p effectPass) Apply() error {
	if p.effect.closed {
		return ErrEffectClosed
	}
	if p.effect.device.closed {
		return ErrClosed
	}
	p.effect.device.current = p.effect
	return nil
}
