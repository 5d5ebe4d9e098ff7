package shapebatch

import "github.com/gogpu/gputypes"

// Viewport is the drawable area of a Device, in pixels.
type Viewport struct {
	X, Y          int
	Width, Height int
}

// DepthStencilState configures depth testing for a draw.
type DepthStencilState struct {
	DepthWriteEnabled bool
	DepthCompare      gputypes.CompareFunction
}

// RasterizerState configures primitive assembly for a draw.
type RasterizerState struct {
	CullMode  gputypes.CullMode
	FrontFace gputypes.FrontFace
}

// Render states applied by Begin.
var (
	// BlendOpaque replaces the destination color.
	BlendOpaque = gputypes.BlendStateReplace()

	// DepthStencilDefault writes depth and passes fragments at or in front
	// of the stored depth.
	DepthStencilDefault = DepthStencilState{
		DepthWriteEnabled: true,
		DepthCompare:      gputypes.CompareFunctionLessEqual,
	}

	// RasterizerCullNone draws both windings.
	RasterizerCullNone = RasterizerState{
		CullMode:  gputypes.CullModeNone,
		FrontFace: gputypes.FrontFaceCCW,
	}
)

// Device is the graphics device a Batch submits geometry to.
//
// The batch writes the render state on Begin and does not restore it on
// End. DrawIndexedPrimitives draws primitiveCount triangles from the
// triangle list described by indices[indexOffset:], where each index is
// relative to vertices[vertexOffset:vertexOffset+numVertices]. The slices
// are owned by the batch and are overwritten after the call returns, so
// implementations must copy or upload them before returning.
type Device interface {
	// Viewport returns the current viewport dimensions.
	Viewport() Viewport

	// SetBlendState sets the color blending used by subsequent draws.
	SetBlendState(state gputypes.BlendState)

	// SetDepthStencilState sets depth testing used by subsequent draws.
	SetDepthStencilState(state DepthStencilState)

	// SetRasterizerState sets culling used by subsequent draws.
	SetRasterizerState(state RasterizerState)

	// DrawIndexedPrimitives submits an indexed triangle list.
	DrawIndexedPrimitives(vertices []Vertex, vertexOffset, numVertices int,
		indices []Index, indexOffset, primitiveCount int) error

	// NewEffect creates the default vertex-color effect for this device.
	NewEffect() (Effect, error)
}

// Effect is the shader state bound before each draw.
type Effect interface {
	SetWorld(m Mat4)
	SetView(m Mat4)
	SetProjection(m Mat4)

	// SetVertexColorEnabled selects per-vertex color instead of a constant
	// or texture color.
	SetVertexColorEnabled(enabled bool)

	// Passes returns the rendering passes of the current technique. The
	// batch issues one draw per pass, applying the pass immediately before.
	Passes() []EffectPass

	// Close releases the shader resources.
	Close() error
}

// EffectPass binds the shader state of one rendering pass.
type EffectPass interface {
	Apply() error
}
