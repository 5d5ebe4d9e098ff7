package shapebatch

import "errors"

// Batch errors.
var (
	// ErrNotBegun is returned when a drawing operation or End is called
	// while the batch is inactive.
	ErrNotBegun = errors.New("shapebatch: begin must be called first")

	// ErrAlreadyBegun is returned when Begin is called on an active batch.
	// The pending geometry and render state are left untouched.
	ErrAlreadyBegun = errors.New("shapebatch: begin called twice without end")

	// ErrClosed is returned by every operation after Close.
	ErrClosed = errors.New("shapebatch: batch is closed")

	// ErrShapeTooLarge is returned when a single shape needs more vertices or
	// indices than the batch can hold. Lower the segment or point count, or
	// construct the batch with a larger WithMaxVertices.
	ErrShapeTooLarge = errors.New("shapebatch: shape exceeds batch capacity")

	// ErrInvalidCapacity is returned by NewBatch for a vertex capacity
	// outside [MinVertices, MaxVertices].
	ErrInvalidCapacity = errors.New("shapebatch: invalid vertex capacity")

	// ErrNilDevice is returned by NewBatch when no device is supplied.
	ErrNilDevice = errors.New("shapebatch: nil device")
)
