package limits

import (
	"errors"
	"fmt"
)

const (
	// MinFrameDimension is the smallest width or height a buffer may have.
	MinFrameDimension = 1

	// MaxFrameDimension is the largest width or height accepted by default.
	// 16384 covers 16K video and keeps width*height*2 well inside int32 for
	// 16-bit-backed formats.
	MaxFrameDimension = 16384

	// MaxStrideAlignment is the largest row alignment an allocator may request.
	// Larger values waste memory without helping any SIMD path.
	MaxStrideAlignment = 4096

	// DefaultStrideAlignment packs rows without padding, matching the
	// layout produced by a plain I420 allocation.
	DefaultStrideAlignment = 1
)

var (
	// ErrInvalidDimensions indicates a non-positive width or height.
	ErrInvalidDimensions = errors.New("invalid frame dimensions")

	// ErrDimensionsTooLarge indicates a width or height above the configured maximum.
	ErrDimensionsTooLarge = errors.New("frame dimensions too large")

	// ErrInvalidStride indicates a stride smaller than the visible row size.
	ErrInvalidStride = errors.New("invalid stride")

	// ErrInvalidAlignment indicates a stride alignment that is not a power of two
	// within [1, MaxStrideAlignment].
	ErrInvalidAlignment = errors.New("invalid stride alignment")
)

// ValidateDimensions validates width and height against MaxFrameDimension.
func ValidateDimensions(width, height int) error {
	return ValidateDimensionsWithLimit(width, height, MaxFrameDimension)
}

// ValidateDimensionsWithLimit validates width and height against a custom maximum.
// Returns an error with context including the offending values.
func ValidateDimensionsWithLimit(width, height, maxDimension int) error {
	if width < MinFrameDimension || height < MinFrameDimension {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if width > maxDimension || height > maxDimension {
		return fmt.Errorf("%w: %dx%d exceeds limit %d", ErrDimensionsTooLarge, width, height, maxDimension)
	}
	return nil
}

// ValidateStride checks that a plane stride, in bytes, can hold one visible row
// of rowBytes bytes.
func ValidateStride(stride, rowBytes int) error {
	if stride < rowBytes {
		return fmt.Errorf("%w: stride %d below row size %d", ErrInvalidStride, stride, rowBytes)
	}
	return nil
}

// ValidateAlignment checks that alignment is a power of two in [1, MaxStrideAlignment].
func ValidateAlignment(alignment int) error {
	if alignment < 1 || alignment > MaxStrideAlignment || alignment&(alignment-1) != 0 {
		return fmt.Errorf("%w: %d", ErrInvalidAlignment, alignment)
	}
	return nil
}

// AlignStride rounds rowBytes up to the next multiple of alignment.
// alignment must already have passed ValidateAlignment.
func AlignStride(rowBytes, alignment int) int {
	if alignment <= 1 {
		return rowBytes
	}
	return (rowBytes + alignment - 1) &^ (alignment - 1)
}
