package recorder

import (
	"github.com/gogpu/shapebatch"
	"github.com/gogpu/shapebatch/backend"
)

func init() {
	backend.Register(backend.NameRecorder, func() backend.Backend {
		return Backend{}
	})
}

// Backend creates recording devices through the backend registry.
type Backend struct{}

// Name returns backend.NameRecorder.
func (Backend) Name() string {
	return backend.NameRecorder
}

// NewDevice returns a recording device with one-pass effects.
func (Backend) NewDevice(width, height int) (shapebatch.Device, error) {
	return NewDevice(width, height), nil
}
