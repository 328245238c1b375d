//go:build unix

package real

import (
	"fmt"

	"github.com/opd-ai/framebuffer/interfaces"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// MmapAllocator backs each allocation with its own anonymous private mapping.
// The memory lives outside the Go heap, so pointers into it may be handed to
// C code and retained there.
type MmapAllocator struct{}

// NewMmapAllocator creates an mmap allocator
func NewMmapAllocator() *MmapAllocator {
	logrus.WithFields(logrus.Fields{
		"function":  "NewMmapAllocator",
		"page_size": unix.Getpagesize(),
	}).Debug("Creating mmap allocator")

	return &MmapAllocator{}
}

// Allocate implements interfaces.Allocator.Allocate. Anonymous mappings are zeroed.
func (m *MmapAllocator) Allocate(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", interfaces.ErrInvalidAllocationSize, size)
	}

	buf, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "MmapAllocator.Allocate",
			"size":     size,
			"error":    err.Error(),
		}).Error("Failed to map buffer memory")
		return nil, fmt.Errorf("mmap %d bytes: %w", size, err)
	}
	return buf, nil
}

// Free implements interfaces.Allocator.Free. buf must be the exact slice
// returned by Allocate.
func (m *MmapAllocator) Free(buf []byte) error {
	if buf == nil {
		return nil
	}
	if err := unix.Munmap(buf); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "MmapAllocator.Free",
			"size":     len(buf),
			"error":    err.Error(),
		}).Error("Failed to unmap buffer memory")
		return fmt.Errorf("munmap %d bytes: %w", len(buf), err)
	}
	return nil
}

// Name implements interfaces.Allocator.Name
func (m *MmapAllocator) Name() string {
	return interfaces.AllocatorMmap
}
