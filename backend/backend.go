package backend

import (
	"errors"

	"github.com/gogpu/shapebatch"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not
	// registered.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrInvalidSize is returned when a device is requested with a
	// non-positive width or height.
	ErrInvalidSize = errors.New("backend: invalid device size")
)

// Backend name constants.
const (
	// NameSoftware is the CPU rasterizer in backend/software.
	NameSoftware = "software"
	// NameWGPU is the GPU device over gogpu/wgpu in backend/wgpu.
	NameWGPU = "wgpu"
	// NameRecorder is the recording device in backend/recorder.
	NameRecorder = "recorder"
)

// Backend creates devices that a shapebatch.Batch can draw to.
//
// Backends are registered via Register() from the init functions of their
// packages and selected via Get() or Default().
type Backend interface {
	// Name returns the backend identifier (e.g., "software", "wgpu").
	Name() string

	// NewDevice creates a device with a viewport of the given size.
	NewDevice(width, height int) (shapebatch.Device, error)
}
