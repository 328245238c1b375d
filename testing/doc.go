// Package testing provides allocator instrumentation for tests of the pixel
// buffer packages.
//
// [TrackingAllocator] wraps another allocator and records every block it
// hands out. Tests use it to assert that buffers release their storage
// exactly once and that nothing leaks:
//
//	tracker := testing.NewTrackingAllocator(real.NewHeapAllocator())
//	alloc, _ := video.NewBufferAllocator(tracker)
//
//	buf, _ := alloc.NewI420(16, 16)
//	view := buf.Retain()
//	buf.Release()
//	view.Release()
//
//	if leaks := tracker.Leaks(); len(leaks) != 0 {
//	    t.Fatalf("leaked %d allocations", len(leaks))
//	}
//
// Double frees and frees of unknown slices return ErrDoubleFree and
// ErrUnknownAllocation. FailAllocations makes the next n calls fail with
// ErrSimulatedExhaustion so allocation error paths can be exercised.
//
// This package is named testing to mirror the real package. Import it with
// an alias in files that also use the standard library testing package.
package testing
