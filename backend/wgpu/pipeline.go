package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/shapebatch"
	"github.com/gogpu/wgpu/hal"
)

// uniformSize is the byte size of the shader Uniforms struct: a 4x4 matrix
// followed by four u32 words.
const uniformSize = 80

// pipelineKey selects a cached render pipeline.
type pipelineKey struct {
	blend  gputypes.BlendState
	depth  shapebatch.DepthStencilState
	raster shapebatch.RasterizerState
	// depthFormat is TextureFormatUndefined when no depth target is bound.
	depthFormat gputypes.TextureFormat
}

// pipelineCache owns the shader, layouts and the render pipelines created
// for each state combination.
type pipelineCache struct {
	device hal.Device
	format gputypes.TextureFormat

	shader        hal.ShaderModule
	uniformLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	pipelines     map[pipelineKey]hal.RenderPipeline
}

// newPipelineCache compiles the shape shader and creates the layouts shared
// by every pipeline. Partially created resources are released on error.
func newPipelineCache(device hal.Device, format gputypes.TextureFormat) (*pipelineCache, error) {
	pc := &pipelineCache{
		device:    device,
		format:    format,
		pipelines: make(map[pipelineKey]hal.RenderPipeline),
	}

	shader, err := createShapeShader(device)
	if err != nil {
		return nil, err
	}
	pc.shader = shader

	uniformLayout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "shape_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		pc.destroy()
		return nil, fmt.Errorf("create shape uniform layout: %w", err)
	}
	pc.uniformLayout = uniformLayout

	pipeLayout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "shape_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{pc.uniformLayout},
	})
	if err != nil {
		pc.destroy()
		return nil, fmt.Errorf("create shape pipeline layout: %w", err)
	}
	pc.pipeLayout = pipeLayout

	return pc, nil
}

// get returns the pipeline for key, creating it on first use.
func (pc *pipelineCache) get(key pipelineKey) (hal.RenderPipeline, error) {
	if p, ok := pc.pipelines[key]; ok {
		return p, nil
	}

	blend := key.blend
	desc := &hal.RenderPipelineDescriptor{
		Label:  "shape_pipeline",
		Layout: pc.pipeLayout,
		Vertex: hal.VertexState{
			Module:     pc.shader,
			EntryPoint: "vs_main",
			Buffers:    shapeVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     pc.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    pc.format,
					Blend:     &blend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology:  gputypes.PrimitiveTopologyTriangleList,
			FrontFace: key.raster.FrontFace,
			CullMode:  key.raster.CullMode,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	}
	if key.depthFormat != gputypes.TextureFormatUndefined {
		desc.DepthStencil = &hal.DepthStencilState{
			Format:            key.depthFormat,
			DepthWriteEnabled: key.depth.DepthWriteEnabled,
			DepthCompare:      key.depth.DepthCompare,
		}
	}

	pipeline, err := pc.device.CreateRenderPipeline(desc)
	if err != nil {
		return nil, fmt.Errorf("create shape pipeline: %w", err)
	}
	pc.pipelines[key] = pipeline
	shapebatch.Logger().Info("wgpu: shape pipeline created",
		"cull", key.raster.CullMode, "depth", key.depthFormat != gputypes.TextureFormatUndefined,
		"cached", len(pc.pipelines))
	return pipeline, nil
}

// destroy releases all pipeline resources in reverse creation order.
func (pc *pipelineCache) destroy() {
	for key, p := range pc.pipelines {
		pc.device.DestroyRenderPipeline(p)
		delete(pc.pipelines, key)
	}
	if pc.pipeLayout != nil {
		pc.device.DestroyPipelineLayout(pc.pipeLayout)
		pc.pipeLayout = nil
	}
	if pc.uniformLayout != nil {
		pc.device.DestroyBindGroupLayout(pc.uniformLayout)
		pc.uniformLayout = nil
	}
	if pc.shader != nil {
		pc.device.DestroyShaderModule(pc.shader)
		pc.shader = nil
	}
}

// shapeVertexLayout returns the vertex buffer layout of shapebatch.Vertex.
func shapeVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: shapebatch.VertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatFloat32x4, Offset: 12, ShaderLocation: 1}, // color
			},
		},
	}
}
