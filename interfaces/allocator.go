package interfaces

import (
	"errors"
	"fmt"

	"github.com/opd-ai/framebuffer/limits"
)

// Allocator supplies the backing memory for pixel buffer storage.
// This abstraction allows switching between heap, pooled, mmap and tracking
// implementations without changing buffer code.
type Allocator interface {
	// Allocate returns a slice of exactly size bytes. Contents are unspecified.
	Allocate(size int) ([]byte, error)

	// Free returns memory obtained from Allocate. The slice passed must be the one
	// Allocate returned. Each allocation is freed at most once.
	Free(buf []byte) error

	// Name identifies the implementation in logs and metrics
	Name() string
}

// Allocator kinds understood by the factory.
const (
	AllocatorHeap     = "heap"
	AllocatorPool     = "pool"
	AllocatorMmap     = "mmap"
	AllocatorTracking = "tracking"
)

// AllocatorConfig holds configuration for allocator implementations
type AllocatorConfig struct {
	// Kind selects the implementation: heap, pool, mmap or tracking
	Kind string `yaml:"kind"`

	// StrideAlignment rounds every plane row up to a multiple of this many bytes
	StrideAlignment int `yaml:"stride_alignment"`

	// MaxDimension caps width and height of new buffers
	MaxDimension int `yaml:"max_dimension"`

	// ZeroFill clears memory before handing it to a buffer
	ZeroFill bool `yaml:"zero_fill"`

	// Metrics exports allocation counters through the metrics package
	Metrics bool `yaml:"metrics"`
}

var (
	// ErrInvalidAllocatorKind indicates an unknown allocator kind.
	ErrInvalidAllocatorKind = errors.New("invalid allocator kind")

	// ErrInvalidMaxDimension indicates a max dimension outside [1, limits.MaxFrameDimension].
	ErrInvalidMaxDimension = errors.New("invalid max dimension")

	// ErrInvalidStrideAlignment indicates an unusable stride alignment.
	ErrInvalidStrideAlignment = errors.New("invalid stride alignment")

	// ErrInvalidAllocationSize is returned by allocators for a non-positive size.
	ErrInvalidAllocationSize = errors.New("invalid allocation size")
)

// Validate checks the configuration for consistency.
func (c *AllocatorConfig) Validate() error {
	switch c.Kind {
	case AllocatorHeap, AllocatorPool, AllocatorMmap, AllocatorTracking:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidAllocatorKind, c.Kind)
	}
	if err := limits.ValidateAlignment(c.StrideAlignment); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidStrideAlignment, err)
	}
	if c.MaxDimension < limits.MinFrameDimension || c.MaxDimension > limits.MaxFrameDimension {
		return fmt.Errorf("%w: %d (must be between %d and %d)", ErrInvalidMaxDimension,
			c.MaxDimension, limits.MinFrameDimension, limits.MaxFrameDimension)
	}
	return nil
}

// DefaultAllocatorConfig returns the configuration used when nothing else is given.
func DefaultAllocatorConfig() *AllocatorConfig {
	return &AllocatorConfig{
		Kind:            AllocatorPool,
		StrideAlignment: limits.DefaultStrideAlignment,
		MaxDimension:    limits.MaxFrameDimension,
		ZeroFill:        false,
		Metrics:         false,
	}
}
