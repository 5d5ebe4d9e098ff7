package recorder

import (
	"errors"
	"fmt"

	"github.com/gogpu/shapebatch"
)

// ErrNoPass is returned by Playback when a draw is replayed before any pass
// was applied.
var ErrNoPass = errors.New("recorder: draw without an applied pass")

// Recording is an immutable sequence of recorded commands.
type Recording struct {
	viewport shapebatch.Viewport
	commands []Command
}

// Viewport returns the viewport of the recording device.
func (r *Recording) Viewport() shapebatch.Viewport {
	return r.viewport
}

// Commands returns the recorded commands in submission order.
func (r *Recording) Commands() []Command {
	return r.commands
}

// Len returns the number of recorded commands.
func (r *Recording) Len() int {
	return len(r.commands)
}

// Draws returns the draw commands in submission order.
func (r *Recording) Draws() []*DrawCommand {
	var draws []*DrawCommand
	for i := range r.commands {
		if r.commands[i].Type == CmdDraw {
			draws = append(draws, r.commands[i].Draw)
		}
	}
	return draws
}

// DrawCalls returns the number of draw commands.
func (r *Recording) DrawCalls() int {
	return len(r.Draws())
}

// Triangles returns the total number of triangles drawn.
func (r *Recording) Triangles() int {
	n := 0
	for _, d := range r.Draws() {
		n += d.Triangles()
	}
	return n
}

// Playback replays the recording onto dev. It creates one effect on dev,
// loads it with the matrices of each recorded pass and applies the pass with
// the same index before replaying the following draws. The effect is closed
// when playback ends.
func (r *Recording) Playback(dev shapebatch.Device) (err error) {
	effect, err := dev.NewEffect()
	if err != nil {
		return fmt.Errorf("recorder: create playback effect: %w", err)
	}
	defer func() {
		if cerr := effect.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("recorder: close playback effect: %w", cerr)
		}
	}()

	applied := false
	for i := range r.commands {
		cmd := &r.commands[i]
		switch cmd.Type {
		case CmdSetBlendState:
			dev.SetBlendState(cmd.Blend)
		case CmdSetDepthStencilState:
			dev.SetDepthStencilState(cmd.Depth)
		case CmdSetRasterizerState:
			dev.SetRasterizerState(cmd.Raster)
		case CmdApplyPass:
			passes := effect.Passes()
			if len(passes) == 0 {
				return fmt.Errorf("recorder: command %d: playback effect has no passes", i)
			}
			p := cmd.Pass
			effect.SetWorld(p.World)
			effect.SetView(p.View)
			effect.SetProjection(p.Projection)
			effect.SetVertexColorEnabled(p.VertexColorEnabled)
			if err := passes[min(p.Index, len(passes)-1)].Apply(); err != nil {
				return fmt.Errorf("recorder: command %d: apply pass: %w", i, err)
			}
			applied = true
		case CmdDraw:
			if !applied {
				return fmt.Errorf("recorder: command %d: %w", i, ErrNoPass)
			}
			d := cmd.Draw
			if err := dev.DrawIndexedPrimitives(d.Vertices, 0, len(d.Vertices), d.Indices, 0, d.Triangles()); err != nil {
				return fmt.Errorf("recorder: command %d: draw: %w", i, err)
			}
		}
	}
	return nil
}
