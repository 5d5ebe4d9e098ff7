package wgpu

import "errors"

// Device errors.
var (
	// ErrNoEffect is returned when drawing before any effect pass was applied.
	ErrNoEffect = errors.New("wgpu: no effect pass applied")

	// ErrNoTarget is returned when drawing without a render target.
	ErrNoTarget = errors.New("wgpu: no render target")

	// ErrInvalidRange is returned when a draw range exceeds its slices or an
	// index references a vertex outside the submitted range.
	ErrInvalidRange = errors.New("wgpu: draw range out of bounds")

	// ErrClosed is returned when using a closed device.
	ErrClosed = errors.New("wgpu: device closed")

	// ErrEffectClosed is returned when applying a pass of a closed effect.
	ErrEffectClosed = errors.New("wgpu: effect closed")

	// ErrNilDevice is returned when NewDevice receives a nil device or queue.
	ErrNilDevice = errors.New("wgpu: nil HAL device or queue")

	// ErrUnsupportedProvider is returned when a DeviceProvider does not
	// expose HAL handles.
	ErrUnsupportedProvider = errors.New("wgpu: provider does not expose a HAL device")

	// ErrNoAdapter is returned when no registered HAL backend offers an
	// adapter.
	ErrNoAdapter = errors.New("wgpu: no GPU adapter available")
)
