package software

import "github.com/gogpu/shapebatch"

// Effect holds the transform matrices and vertex color switch used by the
// software device.
type Effect struct {
	device                  *Device
	world, view, projection shapebatch.Mat4
	vertexColor             bool
	pass                    []shapebatch.EffectPass
	closed                  bool
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
	return e.pass
}

// Close detaches the effect from the device.
func (e *Effect) Close() error {
	e.closed = true
	if e.device.current == e {
		e.device.current = nil
	}
	return nil
}

// mvp returns projection * view * world.
func (e *Effect) mvp() shapebatch.Mat4 {
	return e.projection.Mul(e.view).Mul(e.world)
}

type effectPass struct {
	effect *Effect
}

func (p effectPass) Apply() error {
	if p.effect.closed {
		return ErrEffectClosed
	}
	p.effect.device.current = p.effect
	return nil
}
