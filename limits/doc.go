// Package limits provides centralized frame size constants and validation functions
// for the pixel buffer packages. Every allocation path validates through this package
// so that width, height and stride rules are enforced identically.
//
// # Size Hierarchy
//
//   - MinFrameDimension (1): buffers are never empty.
//   - MaxFrameDimension (16384): default upper bound for width and height. Allocators
//     may be configured with a lower bound through ValidateDimensionsWithLimit.
//   - MaxStrideAlignment (4096): upper bound for row alignment requested by an
//     allocator configuration.
//
// # Validation Functions
//
//	err := limits.ValidateDimensions(1920, 1080)
//	if errors.Is(err, limits.ErrInvalidDimensions) {
//	    // zero or negative size
//	}
//
//	err = limits.ValidateStride(stride, width)
//	if errors.Is(err, limits.ErrInvalidStride) {
//	    // rows would overlap
//	}
//
// # Error Types
//
//   - ErrInvalidDimensions: width or height below MinFrameDimension
//   - ErrDimensionsTooLarge: width or height above the limit
//   - ErrInvalidStride: stride smaller than the visible row
//   - ErrInvalidAlignment: alignment not a power of two in range
package limits
