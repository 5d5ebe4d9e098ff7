package recorder

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/shapebatch"
)

// Recorder errors.
var (
	// ErrInvalidRange is returned when a draw references vertices or
	// indices outside the supplied slices.
	ErrInvalidRange = errors.New("recorder: draw range out of bounds")

	// ErrEffectClosed is returned when a pass of a closed effect is applied.
	ErrEffectClosed = errors.New("recorder: effect is closed")
)

// Device is a shapebatch.Device that records every call as a Command.
//
// Device is not safe for concurrent use.
type Device struct {
	viewport shapebatch.Viewport
	passes   int
	commands []Command
	effects  []*Effect
}

// Option configures a Device.
type Option func(*Device)

// WithPasses sets the number of passes of the effects created by the device.
// The default is one.
func WithPasses(n int) Option {
	return func(d *Device) {
		if n > 0 {
			d.passes = n
		}
	}
}

// NewDevice creates a recording device with a viewport of the given size.
func NewDevice(width, height int, opts ...Option) *Device {
	d := &Device{
		viewport: shapebatch.Viewport{Width: width, Height: height},
		passes:   1,
		commands: make([]Command, 0, 64),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Viewport returns the viewport set at creation or by SetViewport.
func (d *Device) Viewport() shapebatch.Viewport {
	return d.viewport
}

// SetViewport changes the viewport reported to batches.
func (d *Device) SetViewport(vp shapebatch.Viewport) {
	d.viewport = vp
}

// SetBlendState records a CmdSetBlendState command.
func (d *Device) SetBlendState(s gputypes.BlendState) {
	d.commands = append(d.commands, Command{Type: CmdSetBlendState, Blend: s})
}

// SetDepthStencilState records a CmdSetDepthStencilState command.
func (d *Device) SetDepthStencilState(s shapebatch.DepthStencilState) {
	d.commands = append(d.commands, Command{Type: CmdSetDepthStencilState, Depth: s})
}

// SetRasterizerState records a CmdSetRasterizerState command.
func (d *Device) SetRasterizerState(s shapebatch.RasterizerState) {
	d.commands = append(d.commands, Command{Type: CmdSetRasterizerState, Raster: s})
}

// DrawIndexedPrimitives records a CmdDraw command holding copies of the
// referenced vertex and index ranges.
func (d *Device) DrawIndexedPrimitives(vertices []shapebatch.Vertex, vertexOffset, numVertices int,
	indices []shapebatch.Index, indexOffset, primitiveCount int) error {
	if err := checkRange(len(vertices), len(indices), vertexOffset, numVertices, indexOffset, primitiveCount); err != nil {
		return err
	}
	draw := &DrawCommand{
		Vertices: append([]shapebatch.Vertex(nil), vertices[vertexOffset:vertexOffset+numVertices]...),
		Indices:  append([]shapebatch.Index(nil), indices[indexOffset:indexOffset+3*primitiveCount]...),
	}
	for i, idx := range draw.Indices {
		if int(idx) >= numVertices {
			return fmt.Errorf("%w: index[%d] = %d, vertices %d", ErrInvalidRange, i, idx, numVertices)
		}
	}
	d.commands = append(d.commands, Command{Type: CmdDraw, Draw: draw})
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

// NewEffect creates an effect whose passes record CmdApplyPass commands.
func (d *Device) NewEffect() (shapebatch.Effect, error) {
	e := &Effect{
		device:     d,
		world:      shapebatch.Identity4(),
		view:       shapebatch.Identity4(),
		projection: shapebatch.Identity4(),
	}
	for i := 0; i < d.passes; i++ {
		e.passes = append(e.passes, &pass{effect: e, index: i})
	}
	d.effects = append(d.effects, e)
	return e, nil
}

// Effects returns the effects created by NewEffect, in creation order.
func (d *Device) Effects() []*Effect {
	return d.effects
}

// Commands returns the commands recorded so far. The slice is shared with the
// device until Reset.
func (d *Device) Commands() []Command {
	return d.commands
}

// Reset discards the recorded commands.
func (d *Device) Reset() {
	d.commands = make([]Command, 0, 64)
}

// Finish returns a Recording of the commands recorded so far and resets the
// device.
func (d *Device) Finish() *Recording {
	r := &Recording{
		viewport: d.viewport,
		commands: d.commands,
	}
	d.Reset()
	return r
}

// Effect is the recording device's effect. It stores its matrices and
// snapshots them into each applied pass.
type Effect struct {
	device                  *Device
	world, view, projection shapebatch.Mat4
	vertexColor             bool
	passes                  []shapebatch.EffectPass
	closed                  bool
}

func (e *Effect) SetWorld(m shapebatch.Mat4) {
	e.world = m
}

func (e *Effect) SetView(m shapebatch.Mat4) {
	e.view = m
}

func (e *Effect) SetProjection(m shapebatch.Mat4) {
	e.projection = m
}

func (e *Effect) SetVertexColorEnabled(on bool) {
	e.vertexColor = on
}

// Passes returns the effect passes.
func (e *Effect) Passes() []shapebatch.EffectPass {
	return e.passes
}

// Close marks the effect closed. Applying its passes afterwards fails.
func (e *Effect) Close() error {
	e.closed = true
	return nil
}

// Closed reports whether Close was called.
func (e *Effect) Closed() bool {
	return e.closed
}

type pass struct {
	effect *Effect
	index  int
}

func (p *pass) Apply() error {
	e := p.effect
	if e.closed {
		return ErrEffectClosed
	}
	e.device.commands = append(e.device.commands, Command{
		Type: CmdApplyPass,
		Pass: &PassCommand{
			Index:              p.index,
			World:              e.world,
			View:               e.view,
			Projection:         e.projection,
			VertexColorEnabled: e.vertexColor,
		},
	})
	return nil
}
