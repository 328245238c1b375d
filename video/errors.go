package video

import "errors"

// Sentinel errors for pixel buffer operations.
// These errors enable reliable error classification using errors.Is().

// Type and conversion errors.
var (
	// ErrBufferTypeMismatch indicates a downcast to a concrete type the buffer is not.
	// This is a caller contract violation; memory is never reinterpreted.
	ErrBufferTypeMismatch = errors.New("buffer type mismatch")

	// ErrUnsupportedConversion indicates a native view of a layout the buffer does not have.
	ErrUnsupportedConversion = errors.New("unsupported conversion")

	// ErrNilBuffer indicates a nil buffer was passed where one is required.
	ErrNilBuffer = errors.New("buffer cannot be nil")
)

// Allocation errors.
var (
	// ErrAllocationFailed indicates the allocator could not supply storage.
	ErrAllocationFailed = errors.New("buffer allocation failed")

	// ErrInvalidDimensions indicates a width or height outside the accepted range.
	ErrInvalidDimensions = errors.New("invalid buffer dimensions")

	// ErrInvalidStride indicates a stride smaller than the visible row of its plane.
	ErrInvalidStride = errors.New("invalid stride")

	// ErrPlaneTooSmall indicates wrapped plane memory shorter than stride times rows.
	ErrPlaneTooSmall = errors.New("plane too small")
)

// Ownership errors.
var (
	// ErrBufferReleased indicates use of a handle after its Release or Transfer.
	ErrBufferReleased = errors.New("buffer already released")

	// ErrStorageShared indicates a write through a handle whose storage has other owners.
	ErrStorageShared = errors.New("storage shared with other handles")
)

// Scaling and image errors.
var (
	// ErrInvalidCrop indicates a crop rectangle outside the source buffer.
	ErrInvalidCrop = errors.New("invalid crop rectangle")

	// ErrUnsupportedImage indicates an image whose layout cannot be imported.
	ErrUnsupportedImage = errors.New("unsupported image")
)
