package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/shapebatch"
	"github.com/gogpu/wgpu/hal"
)

// backendPreference orders HAL backends for OpenHeadless. The empty
// backend (hal/noop) is the last resort.
var backendPreference = []gputypes.Backend{
	gputypes.BackendVulkan,
	gputypes.BackendMetal,
	gputypes.BackendDX12,
	gputypes.BackendGL,
	gputypes.BackendEmpty,
}

// headless holds the resources OpenHeadless creates on top of the HAL
// device: the instance, the device itself and the color target.
type headless struct {
	instance hal.Instance
	texture  hal.Texture
	view     hal.TextureView
}

func (h *headless) destroy(device hal.Device) {
	if h.view != nil {
		device.DestroyTextureView(h.view)
	}
	if h.texture != nil {
		device.DestroyTexture(h.texture)
	}
	device.Destroy()
	if h.instance != nil {
		h.instance.Destroy()
	}
}

// OpenHeadless opens the first available HAL backend in preference order
// and creates a width x height RGBA8 render target for it. The returned
// device owns the HAL device and releases it on Close.
func OpenHeadless(width, height int) (*Device, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("wgpu: invalid target size %dx%d", width, height)
	}

	var lastErr error
	for _, variant := range backendPreference {
		b, ok := hal.GetBackend(variant)
		if !ok {
			continue
		}
		d, err := openBackend(b, width, height)
		if err != nil {
			shapebatch.Logger().Warn("wgpu: backend unavailable", "backend", variant, "err", err)
			lastErr = err
			continue
		}
		return d, nil
	}
	if lastErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoAdapter, lastErr)
	}
	return nil, ErrNoAdapter
}

func openBackend(b hal.Backend, width, height int) (*Device, error) {
	instance, err := b.CreateInstance(&hal.InstanceDescriptor{})
	if err != nil {
		return nil, fmt.Errorf("create %v instance: %w", b.Variant(), err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("%v: %w", b.Variant(), ErrNoAdapter)
	}
	open, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("open %s: %w", adapters[0].Info.Name, err)
	}

	h := &headless{instance: instance}
	texture, err := open.Device.CreateTexture(&hal.TextureDescriptor{
		Label:         "shape_target",
		Size:          hal.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		h.destroy(open.Device)
		return nil, fmt.Errorf("create shape target: %w", err)
	}
	h.texture = texture

	view, err := open.Device.CreateTextureView(texture, &hal.TextureViewDescriptor{
		Label:           "shape_target_view",
		Format:          gputypes.TextureFormatRGBA8Unorm,
		Dimension:       gputypes.TextureViewDimension2D,
		Aspect:          gputypes.TextureAspectAll,
		MipLevelCount:   1,
		ArrayLayerCount: 1,
	})
	if err != nil {
		h.destroy(open.Device)
		return nil, fmt.Errorf("create shape target view: %w", err)
	}
	h.view = view

	d, err := NewDevice(open.Device, open.Queue, WithFormat(gputypes.TextureFormatRGBA8Unorm))
	if err != nil {
		h.destroy(open.Device)
		return nil, err
	}
	d.owned = h
	d.SetTarget(view, width, height)
	shapebatch.Logger().Info("wgpu: headless device opened",
		"backend", b.Variant(), "adapter", adapters[0].Info.Name, "width", width, "height", height)
	return d, nil
}

// Texture returns the render target created by OpenHeadless, or nil for
// devices created with NewDevice.
func (d *Device) Texture() hal.Texture {
	if d.owned == nil {
		return nil
	}
	return d.owned.texture
}
