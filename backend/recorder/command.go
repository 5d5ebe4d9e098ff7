package recorder

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/shapebatch"
)

// CommandType identifies the type of a command.
type CommandType uint8

const (
	// State commands
	CmdSetBlendState        CommandType = iota // Set blend state
	CmdSetDepthStencilState                    // Set depth/stencil state
	CmdSetRasterizerState                      // Set cull mode and front face

	// Effect commands
	CmdApplyPass // Apply an effect pass with its matrices

	// Drawing commands
	CmdDraw // Indexed triangle list submission
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdSetBlendState:        "SetBlendState",
	CmdSetDepthStencilState: "SetDepthStencilState",
	CmdSetRasterizerState:   "SetRasterizerState",
	CmdApplyPass:            "ApplyPass",
	CmdDraw:                 "Draw",
}

// String returns the name of the command type.
func (t CommandType) String() string {
	if int(t) < len(commandTypeNames) {
		return commandTypeNames[t]
	}
	return "Unknown"
}

// Command is one recorded Device call. Only the fields matching Type are
// set.
type Command struct {
	Type CommandType

	Blend  gputypes.BlendState
	Depth  shapebatch.DepthStencilState
	Raster shapebatch.RasterizerState

	Pass *PassCommand
	Draw *DrawCommand
}

// PassCommand captures the effect state at the time a pass was applied.
type PassCommand struct {
	// Index is the pass position within its effect.
	Index int

	World, View, Projection shapebatch.Mat4
	VertexColorEnabled      bool
}

// MVP returns Projection * View * World.
func (p *PassCommand) MVP() shapebatch.Mat4 {
	return p.Projection.Mul(p.View).Mul(p.World)
}

// DrawCommand holds a copy of the submitted vertex and index ranges. Indices
// are relative to Vertices[0].
type DrawCommand struct {
	Vertices []shapebatch.Vertex
	Indices  []shapebatch.Index
}

// Triangles returns the number of triangles in the draw.
func (d *DrawCommand) Triangles() int {
	return len(d.Indices) / 3
}
