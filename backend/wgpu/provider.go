package wgpu

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/shapebatch"
	"github.com/gogpu/wgpu/hal"
)

// halProvider is implemented by host devices that expose their HAL handles
// separately from the gpucontext type tokens.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// NewDeviceFromProvider creates a device sharing the GPU device of a host
// application. The provider's Device and Queue must be a hal.Device and
// hal.Queue, or the provider must implement HalDevice() any and
// HalQueue() any returning them. The surface format, when defined, is used
// as the color format unless opts override it.
func NewDeviceFromProvider(p gpucontext.DeviceProvider, opts ...Option) (*Device, error) {
	if p == nil {
		return nil, ErrUnsupportedProvider
	}
	device, queue, ok := halHandles(p)
	if !ok {
		return nil, ErrUnsupportedProvider
	}

	if format := p.SurfaceFormat(); format != gputypes.TextureFormatUndefined {
		opts = append([]Option{WithFormat(format)}, opts...)
	}
	info := p.AdapterInfo()
	shapebatch.Logger().Info("wgpu: using provider device",
		"adapter", info.Name, "software", info.Type == gpucontext.AdapterTypeSoftware)
	return NewDevice(device, queue, opts...)
}

func halHandles(p gpucontext.DeviceProvider) (hal.Device, hal.Queue, bool) {
	if device, ok := p.Device().(hal.Device); ok {
		if queue, ok := p.Queue().(hal.Queue); ok {
			return device, queue, true
		}
	}
	hp, ok := p.(halProvider)
	if !ok {
		return nil, nil, false
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok {
		return nil, nil, false
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok {
		return nil, nil, false
	}
	return device, queue, true
}
