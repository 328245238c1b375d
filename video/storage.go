package video

import (
	"sync/atomic"
	"unsafe"
)

// storage is one block of pixel memory shared by every handle that aliases it.
// The last handle to release it hands raw back through free.
type storage struct {
	raw   []byte
	owner *BufferAllocator
	refs  atomic.Int32
	free  func([]byte) error
}

func newStorage(raw []byte, owner *BufferAllocator, free func([]byte) error) *storage {
	s := &storage{raw: raw, owner: owner, free: free}
	s.refs.Store(1)
	return s
}

func (s *storage) retain() {
	s.refs.Add(1)
}

// release drops one reference and frees the memory when none remain.
func (s *storage) release() error {
	n := s.refs.Add(-1)
	if n > 0 {
		return nil
	}
	if n < 0 {
		panic("video: storage reference count underflow")
	}
	if s.free == nil {
		return nil
	}
	return s.free(s.raw)
}

func (s *storage) exclusive() bool {
	return s.refs.Load() == 1
}

// allocator returns the allocator conversions from this storage should use.
func (s *storage) allocator() *BufferAllocator {
	if s.owner != nil {
		return s.owner
	}
	return DefaultAllocator()
}

// asUint16 views b as host-endian 16-bit samples. len(b) must be even and
// &b[0] two-byte aligned, which holds for every plane the allocator lays out.
func asUint16(b []byte) []uint16 {
	if len(b) == 0 {
		return nil
	}
	return unsafe.Slice((*uint16)(unsafe.Pointer(unsafe.SliceData(b))), len(b)/2)
}
