// Package interfaces defines the memory abstraction shared by the pixel buffer
// packages.
//
// Buffer storage never calls make directly. It asks an [Allocator] for one
// block per buffer and hands the exact slice back through Free when the last
// reference goes away. This lets the same buffer code run on the Go heap, on
// a recycling pool, on anonymous mappings that may cross a cgo boundary, or
// on a tracking allocator that reports leaks in tests.
//
// # Implementations
//
//   - real.HeapAllocator: plain make, Free is a no-op
//   - real.PoolAllocator: size-tiered sync.Pool recycling
//   - real.MmapAllocator: anonymous private mappings (unix only)
//   - testing.TrackingAllocator: records every allocation for leak checks
//
// # Configuration
//
// [AllocatorConfig] selects an implementation and the row layout used by
// video.BufferAllocator. It is usually built by the factory package, either
// from defaults, a YAML file or FRAMEBUFFER_* environment variables:
//
//	config := interfaces.DefaultAllocatorConfig()
//	config.Kind = interfaces.AllocatorMmap
//	config.StrideAlignment = 64
//	if err := config.Validate(); err != nil {
//	    return err
//	}
//
// # Thread Safety
//
// Allocator implementations must be safe for concurrent use. Buffers are
// released from whichever goroutine drops the last reference.
package interfaces
