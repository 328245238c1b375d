package video

import (
	"testing"

	"github.com/opd-ai/framebuffer/real"
	fbtesting "github.com/opd-ai/framebuffer/testing"
	"github.com/stretchr/testify/require"
)

// newTrackedAllocator returns a buffer allocator whose memory is tracked, plus
// the tracker for leak and double-free assertions.
func newTrackedAllocator(t *testing.T, opts ...AllocatorOption) (*BufferAllocator, *fbtesting.TrackingAllocator) {
	t.Helper()
	tracker := fbtesting.NewTrackingAllocator(real.NewHeapAllocator())
	ba, err := NewBufferAllocator(tracker, opts...)
	require.NoError(t, err)
	return ba, tracker
}

// fillPlane writes a recognizable pattern into the visible part of a plane.
func fillPlane(plane []byte, stride, width, rows int, seed byte) {
	for r := 0; r < rows; r++ {
		for c := 0; c < width; c++ {
			plane[r*stride+c] = seed + byte(r*width+c)
		}
	}
}

// createTestI420 allocates a w x h I420 buffer from ba and fills every plane.
func createTestI420(t *testing.T, ba *BufferAllocator, w, h int) *I420Buffer {
	t.Helper()
	b, err := ba.NewI420(w, h)
	require.NoError(t, err)
	fillPlane(b.MutableDataY(), b.StrideY(), w, h, 0)
	fillPlane(b.MutableDataU(), b.StrideU(), b.ChromaWidth(), b.ChromaHeight(), 64)
	fillPlane(b.MutableDataV(), b.StrideV(), b.ChromaWidth(), b.ChromaHeight(), 128)
	return b
}

// fillPlanar fills any 8-bit planar buffer with the createTestI420 pattern.
func fillPlanar(b interface {
	PlanarYuv8Buffer
	MutableDataY() []byte
	MutableDataU() []byte
	MutableDataV() []byte
}) {
	fillPlane(b.MutableDataY(), b.StrideY(), b.Width(), b.Height(), 0)
	fillPlane(b.MutableDataU(), b.StrideU(), b.ChromaWidth(), b.ChromaHeight(), 64)
	fillPlane(b.MutableDataV(), b.StrideV(), b.ChromaWidth(), b.ChromaHeight(), 128)
}

// visibleRows extracts the visible samples of a plane row by row.
func visibleRows(plane []byte, stride, width, rows int) []byte {
	out := make([]byte, 0, width*rows)
	for r := 0; r < rows; r++ {
		out = append(out, plane[r*stride:r*stride+width]...)
	}
	return out
}

// allocateAll allocates one buffer of every allocatable layout.
func allocateAll(t *testing.T, ba *BufferAllocator, w, h int) []VideoFrameBuffer {
	t.Helper()
	var out []VideoFrameBuffer
	for _, kind := range []BufferType{BufferTypeI420, BufferTypeI420A, BufferTypeI422, BufferTypeI444, BufferTypeI010, BufferTypeNV12} {
		b, err := ba.New(kind, w, h)
		require.NoError(t, err)
		out = append(out, b)
	}
	return out
}

// stubSource is a NativeSource producing a gray frame.
type stubSource struct {
	ba    *BufferAllocator
	w, h  int
	calls int
	err   error
}

func (s *stubSource) ToI420() (*I420Buffer, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	b, err := s.ba.NewI420(s.w, s.h)
	if err != nil {
		return nil, err
	}
	for _, p := range [][]byte{b.MutableDataY(), b.MutableDataU(), b.MutableDataV()} {
		for i := range p {
			p[i] = 0x80
		}
	}
	return b, nil
}
