//go:build !unix

package real

import (
	"errors"

	"github.com/opd-ai/framebuffer/interfaces"
)

// ErrMmapUnsupported is returned on platforms without anonymous mappings.
var ErrMmapUnsupported = errors.New("mmap allocator not supported on this platform")

// MmapAllocator is unavailable on this platform; every allocation fails.
type MmapAllocator struct{}

// NewMmapAllocator creates an mmap allocator
func NewMmapAllocator() *MmapAllocator {
	return &MmapAllocator{}
}

// Allocate always fails with ErrMmapUnsupported
func (m *MmapAllocator) Allocate(size int) ([]byte, error) {
	return nil, ErrMmapUnsupported
}

// Free is a no-op
func (m *MmapAllocator) Free(buf []byte) error {
	return nil
}

// Name implements interfaces.Allocator.Name
func (m *MmapAllocator) Name() string {
	return interfaces.AllocatorMmap
}
