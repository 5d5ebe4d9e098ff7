package backend

import (
	"fmt"
	"slices"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/shapebatch"
)

// Factory creates a new backend instance.
type Factory func() Backend

// backends holds registered backends. Priority order for selection (first
// available wins): software is always usable, wgpu needs a HAL backend
// linked in, recorder produces no pixels.
var backends = gpucontext.NewRegistry[Backend](
	gpucontext.WithPriority(NameSoftware, NameWGPU, NameRecorder),
)

// Register registers a backend factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it will be replaced.
func Register(name string, factory Factory) {
	backends.Register(name, factory)
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	backends.Unregister(name)
}

// Available returns the registered backend names in sorted order.
func Available() []string {
	names := backends.Available()
	slices.Sort(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	return backends.Has(name)
}

// Get returns a backend instance by name.
// Returns nil if the backend is not registered.
func Get(name string) Backend {
	return backends.Get(name)
}

// Default returns the best available backend based on priority.
// Returns nil if no backends are registered.
func Default() Backend {
	return backends.Best()
}

// DefaultName returns the name of the backend Default would return, or ""
// if none is registered.
func DefaultName() string {
	return backends.BestName()
}

// NewDevice creates a device from the named backend. An empty name selects
// the default backend.
func NewDevice(name string, width, height int) (shapebatch.Device, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	var b Backend
	if name == "" {
		b = Default()
	} else {
		b = Get(name)
	}
	if b == nil {
		if name == "" {
			return nil, ErrBackendNotAvailable
		}
		return nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}
	dev, err := b.NewDevice(width, height)
	if err != nil {
		return nil, fmt.Errorf("backend %s: %w", b.Name(), err)
	}
	return dev, nil
}
