// Package main provides C API bindings for the framebuffer pixel buffers.
//
// # Build Instructions
//
// To build as a C shared library:
//
//	go build -buildmode=c-shared -o libframebuf.so ./capi/
//
// This generates libframebuf.so and libframebuf.h with the framebuf_*
// declarations.
//
// # Ownership
//
// Every non-NULL Framebuf pointer returned by this API is one owner of the
// underlying storage and must be passed to framebuf_release exactly once.
// framebuf_retain, framebuf_get_view, framebuf_to_i420 and framebuf_copy
// all return new owners. framebuf_release returns false for a handle that
// was already released.
//
//	void *buf = framebuf_new_i420(1280, 720);
//	uint8_t *y = framebuf_data(buf, 0);
//	int32_t stride = framebuf_stride(buf, 0);
//	...
//	framebuf_release(buf);
//
// # Memory
//
// Buffers are allocated outside the Go heap, so plane pointers may be held by
// C for as long as the buffer has an owner. Unix builds use anonymous memory
// mappings. Other platforms use the C heap. Allocation settings other than
// the allocator kind follow the FRAMEBUFFER_* environment variables read by
// the factory package.
//
// # Planes
//
// Planes are indexed in memory order: Y, U, V and, for I420A, A. NV12 has Y
// and the interleaved UV plane. Strides and sizes are in bytes, also for the
// 16-bit I010 layout.
package main
