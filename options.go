package shapebatch

// Capacity limits for WithMaxVertices.
const (
	// DefaultMaxVertices is the vertex capacity used when WithMaxVertices
	// is not given.
	DefaultMaxVertices = 1024

	// MinVertices is the smallest capacity that holds one line or
	// rectangle.
	MinVertices = 4

	// MaxVertices is the largest capacity addressable by 16-bit indices.
	MaxVertices = 1 << 16
)

// Option configures a Batch during creation.
//
// Example:
//
//	b, err := shapebatch.NewBatch(dev,
//	    shapebatch.WithMaxVertices(4096),
//	)
type Option func(*batchOptions)

// batchOptions holds optional configuration for Batch creation.
type batchOptions struct {
	maxVertices int
	effect      Effect
}

// defaultOptions returns the default batch options.
func defaultOptions() batchOptions {
	return batchOptions{
		maxVertices: DefaultMaxVertices,
		effect:      nil, // Created from the device if nil
	}
}

// WithMaxVertices sets the vertex capacity of the batch. The index capacity
// is three times the vertex capacity. Both buffers are allocated once in
// NewBatch and never grow; a shape that does not fit in the remaining space
// triggers a flush.
func WithMaxVertices(n int) Option {
	return func(o *batchOptions) {
		o.maxVertices = n
	}
}

// WithEffect supplies the effect used for drawing instead of the device's
// default. The caller keeps ownership: Close does not close it.
func WithEffect(e Effect) Option {
	return func(o *batchOptions) {
		o.effect = e
	}
}
