// Package real provides the production memory allocators behind pixel buffer
// storage.
//
// # Allocators
//
// [HeapAllocator] returns fresh slices from the Go heap and lets the garbage
// collector reclaim them.
//
// [PoolAllocator] rounds requests up to one of eight size tiers between 4 KiB
// and 64 MiB and recycles freed blocks through a sync.Pool per tier. Steady
// video streams allocate the same few frame sizes over and over, so after
// warm-up nearly every allocation is served from a pool. Requests above the
// largest tier fall through to the heap.
//
//	pool := real.NewPoolAllocator(false)
//	buf, err := pool.Allocate(1920 * 1080 * 3 / 2)
//	if err != nil {
//	    return err
//	}
//	defer pool.Free(buf)
//
// [MmapAllocator] maps anonymous private memory outside the Go heap. Frames
// allocated this way may be handed to C code through the capi package
// without violating cgo pointer passing rules. It is only available on unix
// platforms; elsewhere Allocate returns ErrMmapUnsupported.
//
// All allocators are safe for concurrent use.
package real
