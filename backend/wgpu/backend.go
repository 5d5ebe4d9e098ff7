package wgpu

import (
	"github.com/gogpu/shapebatch"
	"github.com/gogpu/shapebatch/backend"
)

func init() {
	backend.Register(backend.NameWGPU, func() backend.Backend {
		return Backend{}
	})
}

// Backend creates headless wgpu devices through the backend registry.
type Backend struct{}

// Name returns backend.NameWGPU.
func (Backend) Name() string {
	return backend.NameWGPU
}

// NewDevice opens a headless device with a width x height target.
func (Backend) NewDevice(width, height int) (shapebatch.Device, error) {
	d, err := OpenHeadless(width, height)
	if err != nil {
		return nil, err
	}
	return d, nil
}
