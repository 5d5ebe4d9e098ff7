package software

import (
	"github.com/gogpu/shapebatch"
	"github.com/gogpu/shapebatch/backend"
)

func init() {
	backend.Register(backend.NameSoftware, func() backend.Backend {
		return Backend{}
	})
}

// Backend creates software devices through the backend registry.
type Backend struct{}

// Name returns backend.NameSoftware.
func (Backend) Name() string {
	return backend.NameSoftware
}

// NewDevice returns a device drawing into a new transparent image.
func (Backend) NewDevice(width, height int) (shapebatch.Device, error) {
	return NewDevice(width, height), nil
}
