package wgpu

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// testProvider exposes HAL handles through the gpucontext type tokens.
type testProvider struct {
	device hal.Device
	queue  hal.Queue
	format gputypes.TextureFormat
}

func (p testProvider) Device() gpucontext.Device {
	if p.device == nil {
		return nil
	}
	return p.device
}

func (p testProvider) Queue() gpucontext.Queue {
	if p.queue == nil {
		return nil
	}
	return p.queue
}

func (p testProvider) SurfaceFormat() gputypes.TextureFormat { return p.format }
func (p testProvider) Adapter() gpucontext.Adapter           { return nil }

func (p testProvider) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "noop", Type: gpucontext.AdapterTypeSoftware}
}

// halOnlyProvider hides the handles behind HalDevice and HalQueue.
type halOnlyProvider struct {
	testProvider
}

func (p halOnlyProvider) Device() gpucontext.Device { return nil }
func (p halOnlyProvider) Queue() gpucontext.Queue   { return nil }
func (p halOnlyProvider) HalDevice() any            { return p.device }
func (p halOnlyProvider) HalQueue() any             { return p.queue }
