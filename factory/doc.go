// Package factory creates allocators and buffer allocators from configuration.
//
// The factory decouples buffer producers from the concrete memory allocator.
// The same code can run on pooled memory in production, on mmap-backed memory
// when frames cross into C, and on a tracking allocator in tests.
//
// # Configuration
//
// Defaults come from interfaces.DefaultAllocatorConfig. A YAML file may be
// loaded with NewAllocatorFactoryFromFile, and environment variables override
// both:
//   - FRAMEBUFFER_ALLOCATOR: heap, pool, mmap or tracking
//   - FRAMEBUFFER_STRIDE_ALIGNMENT: power of two row alignment in bytes
//   - FRAMEBUFFER_MAX_DIMENSION: largest accepted width or height
//   - FRAMEBUFFER_ZERO_FILL: "true" to clear pooled memory before reuse
//   - FRAMEBUFFER_METRICS: "true" to wrap the allocator with Prometheus counters
//
// Invalid environment values are logged and ignored.
//
// # Usage
//
//	factory := factory.NewAllocatorFactory()
//	alloc, err := factory.CreateBufferAllocator()
//	if err != nil {
//	    return err
//	}
//	frame, err := alloc.NewI420(1280, 720)
//
// To make the configured allocator the video package default:
//
//	prev, err := factory.InstallDefault()
//
// # Testing
//
// CreateTrackingForTesting returns a buffer allocator together with the
// tracking allocator behind it:
//
//	alloc, tracker, err := factory.CreateTrackingForTesting(factory.WithStrideAlignment(16))
//	// ... exercise code ...
//	assert.Empty(t, tracker.Leaks())
//
// # Thread Safety
//
// AllocatorFactory methods are safe for concurrent use.
package factory
