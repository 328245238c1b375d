package real

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/opd-ai/framebuffer/interfaces"
)

// Pool tier capacities.
// The largest tier (64MB) holds an 8K I420 frame (7680x4320 is about 50MB);
// anything bigger is allocated directly and left to the GC.
const (
	Size4K   = 1 << 12 // 4 KB
	Size16K  = 1 << 14 // 16 KB
	Size64K  = 1 << 16 // 64 KB
	Size256K = 1 << 18 // 256 KB
	Size1M   = 1 << 20 // 1 MB
	Size4M   = 1 << 22 // 4 MB
	Size16M  = 1 << 24 // 16 MB
	Size64M  = 1 << 26 // 64 MB
)

var poolTiers = [...]int{Size4K, Size16K, Size64K, Size256K, Size1M, Size4M, Size16M, Size64M}

// PoolStats reports pool activity
type PoolStats struct {
	Allocations int64
	Frees       int64
	Oversized   int64
}

// PoolAllocator recycles storage through size-tiered sync.Pools.
// Each tier manages slices of one fixed capacity so a released QCIF
// frame can back the next QCIF frame without touching the heap.
type PoolAllocator struct {
	pools    [len(poolTiers)]sync.Pool
	zeroFill bool

	allocations atomic.Int64
	frees       atomic.Int64
	oversized   atomic.Int64
}

// NewPoolAllocator creates a tiered pool allocator. With zeroFill set, recycled
// memory is cleared before it is returned from Allocate.
func NewPoolAllocator(zeroFill bool) *PoolAllocator {
	p := &PoolAllocator{zeroFill: zeroFill}
	for i, size := range poolTiers {
		p.pools[i].New = func() any { return make([]byte, size) }
	}
	return p
}

// tierFor returns the index of the smallest tier holding size bytes, or -1
func tierFor(size int) int {
	for i, tier := range poolTiers {
		if size <= tier {
			return i
		}
	}
	return -1
}

// tierForCapacity returns the index of the tier whose capacity is exactly capacity, or -1
func tierForCapacity(capacity int) int {
	for i, tier := range poolTiers {
		if capacity == tier {
			return i
		}
	}
	return -1
}

// Allocate implements interfaces.Allocator.Allocate.
// If size exceeds the largest tier, the slice is allocated directly.
func (p *PoolAllocator) Allocate(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", interfaces.ErrInvalidAllocationSize, size)
	}
	p.allocations.Add(1)

	idx := tierFor(size)
	if idx < 0 {
		p.oversized.Add(1)
		return make([]byte, size), nil
	}

	buf := p.pools[idx].Get().([]byte)[:size]
	if p.zeroFill {
		clear(buf)
	}
	return buf, nil
}

// Free implements interfaces.Allocator.Free and returns the slice to the tier
// matching its capacity. Slices of any other capacity are left to the GC.
func (p *PoolAllocator) Free(buf []byte) error {
	if buf == nil {
		return nil
	}
	p.frees.Add(1)

	if idx := tierForCapacity(cap(buf)); idx >= 0 {
		p.pools[idx].Put(buf[:cap(buf)])
	}
	return nil
}

// Name implements interfaces.Allocator.Name
func (p *PoolAllocator) Name() string {
	return interfaces.AllocatorPool
}

// Stats returns a snapshot of pool activity
func (p *PoolAllocator) Stats() PoolStats {
	return PoolStats{
		Allocations: p.allocations.Load(),
		Frees:       p.frees.Load(),
		Oversized:   p.oversized.Load(),
	}
}
