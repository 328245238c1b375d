// Package framebuffer is the root of a library of reference-counted video
// frame pixel buffers. The root package holds no code; the API lives in the
// subpackages.
//
// # Packages
//
//   - video: buffer handles for I420, I420A, I422, I444, I010, NV12 and
//     native layouts, conversion to I420, scaling, deep copy, image interop
//     and content checksums
//   - interfaces: the Allocator contract and its configuration
//   - real: heap, pooled and mmap allocators
//   - testing: a tracking allocator for leak checks in tests
//   - factory: allocator construction from defaults, YAML and FRAMEBUFFER_*
//     environment variables
//   - metrics: Prometheus counters for storage and frame streams
//   - ffi: integer handle registry and frame stream forwarding for foreign callers
//   - capi: C shared library exposing buffers as opaque pointers
//   - limits: frame size constants and validation
//
// # Getting Started
//
//	f := factory.NewAllocatorFactory()
//	alloc, err := f.CreateBufferAllocator()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	frame, err := alloc.NewNV12(1280, 720)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer frame.Release()
//
//	i420, err := frame.ToI420()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer i420.Release()
//
// See examples/buffer_lifecycle_demo for a complete walkthrough.
package framebuffer
