package real

import (
	"fmt"

	"github.com/opd-ai/framebuffer/interfaces"
)

// HeapAllocator hands out plain Go heap slices and leaves reclamation to the GC.
type HeapAllocator struct{}

// NewHeapAllocator creates a heap allocator
func NewHeapAllocator() *HeapAllocator {
	return &HeapAllocator{}
}

// Allocate implements interfaces.Allocator.Allocate. Memory is zeroed.
func (h *HeapAllocator) Allocate(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", interfaces.ErrInvalidAllocationSize, size)
	}
	return make([]byte, size), nil
}

// Free implements interfaces.Allocator.Free. The slice is simply dropped.
func (h *HeapAllocator) Free(buf []byte) error {
	return nil
}

// Name implements interfaces.Allocator.Name
func (h *HeapAllocator) Name() string {
	return interfaces.AllocatorHeap
}
