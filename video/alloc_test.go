package video

import (
	"testing"

	"github.com/opd-ai/framebuffer/interfaces"
	"github.com/opd-ai/framebuffer/limits"
	"github.com/opd-ai/framebuffer/real"
	fbtesting "github.com/opd-ai/framebuffer/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBufferAllocator(t *testing.T) {
	_, err := NewBufferAllocator(nil)
	assert.Error(t, err)

	ba, err := NewBufferAllocator(real.NewHeapAllocator(), WithStrideAlignment(32), WithMaxDimension(1920))
	require.NoError(t, err)
	assert.Equal(t, 32, ba.StrideAlignment())
	assert.Equal(t, 1920, ba.MaxDimension())
	assert.Equal(t, interfaces.AllocatorHeap, ba.Allocator().Name())

	_, err = NewBufferAllocator(real.NewHeapAllocator(), WithStrideAlignment(3))
	assert.ErrorIs(t, err, limits.ErrInvalidAlignment)

	_, err = NewBufferAllocator(real.NewHeapAllocator(), WithMaxDimension(0))
	assert.ErrorIs(t, err, interfaces.ErrInvalidMaxDimension)
}

func TestAllocate_Dimensions(t *testing.T) {
	ba, _ := newTrackedAllocator(t)

	for _, size := range [][2]int{{1, 1}, {2, 2}, {16, 16}, {17, 3}, {640, 480}, {1, 1000}} {
		for _, b := range allocateAll(t, ba, size[0], size[1]) {
			assert.Equal(t, size[0], b.Width())
			assert.Equal(t, size[1], b.Height())
			require.NoError(t, b.Release())
		}
	}
}

func TestAllocate_InvalidDimensions(t *testing.T) {
	ba, tracker := newTrackedAllocator(t, WithMaxDimension(64))

	tests := []struct {
		name    string
		w, h    int
		wantErr error
	}{
		{name: "zero width", w: 0, h: 16, wantErr: limits.ErrInvalidDimensions},
		{name: "zero height", w: 16, h: 0, wantErr: limits.ErrInvalidDimensions},
		{name: "negative", w: -4, h: -4, wantErr: limits.ErrInvalidDimensions},
		{name: "over configured max", w: 65, h: 16, wantErr: limits.ErrDimensionsTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, kind := range []BufferType{BufferTypeI420, BufferTypeI420A, BufferTypeI422, BufferTypeI444, BufferTypeI010, BufferTypeNV12} {
				_, err := ba.New(kind, tt.w, tt.h)
				assert.ErrorIs(t, err, ErrInvalidDimensions, kind.String())
				assert.ErrorIs(t, err, tt.wantErr, kind.String())
			}
		})
	}
	assert.Zero(t, tracker.Stats().Allocations)

	_, err := ba.New(BufferTypeNative, 4, 4)
	assert.ErrorIs(t, err, ErrUnsupportedConversion)
}

func TestAllocate_Scenario16x16(t *testing.T) {
	b, err := NewI420Buffer(16, 16)
	require.NoError(t, err)
	defer b.Release()

	out, err := b.ToI420()
	require.NoError(t, err)
	defer out.Release()

	assert.Equal(t, 16, out.Width())
	assert.Equal(t, 16, out.Height())
	assert.Equal(t, BufferTypeI420, out.Type())
	assert.Equal(t, 8, out.ChromaWidth())
	assert.Equal(t, 8, out.ChromaHeight())
}

func TestAllocate_StrideAlignment(t *testing.T) {
	ba, _ := newTrackedAllocator(t, WithStrideAlignment(64))
	b, err := ba.NewI420(100, 10)
	require.NoError(t, err)
	defer b.Release()

	assert.Equal(t, 128, b.StrideY())
	assert.Equal(t, 64, b.StrideU())
	assert.Equal(t, 64, b.StrideV())
	assert.Len(t, b.DataY(), 128*10)
	assert.Len(t, b.DataU(), 64*5)
}

func TestNewI420WithStrides(t *testing.T) {
	ba, _ := newTrackedAllocator(t)

	b, err := ba.NewI420WithStrides(10, 4, 16, 8, 12)
	require.NoError(t, err)
	defer b.Release()
	assert.Equal(t, 16, b.StrideY())
	assert.Equal(t, 8, b.StrideU())
	assert.Equal(t, 12, b.StrideV())
	assert.Len(t, b.DataV(), 12*2)

	_, err = ba.NewI420WithStrides(10, 4, 9, 5, 5)
	assert.ErrorIs(t, err, ErrInvalidStride)
	_, err = ba.NewI420WithStrides(10, 4, 10, 4, 5)
	assert.ErrorIs(t, err, ErrInvalidStride)
}

func TestAllocate_Failure(t *testing.T) {
	ba, tracker := newTrackedAllocator(t)
	tracker.FailAllocations(1)

	_, err := ba.NewI444(8, 8)
	assert.ErrorIs(t, err, ErrAllocationFailed)
	assert.ErrorIs(t, err, fbtesting.ErrSimulatedExhaustion)

	b, err := ba.NewI444(8, 8)
	require.NoError(t, err)
	require.NoError(t, b.Release())
}

func TestDefaultAllocator(t *testing.T) {
	assert.Equal(t, interfaces.AllocatorPool, DefaultAllocator().Allocator().Name())

	tracker := fbtesting.NewTrackingAllocator(real.NewHeapAllocator())
	ba, err := NewBufferAllocator(tracker)
	require.NoError(t, err)
	prev := SetDefaultAllocator(ba)
	defer SetDefaultAllocator(prev)

	b, err := NewNV12Buffer(6, 6)
	require.NoError(t, err)
	assert.Equal(t, 1, tracker.Live())
	require.NoError(t, b.Release())
	assert.Zero(t, tracker.Live())

	assert.Panics(t, func() { SetDefaultAllocator(nil) })
}

func TestPackageConstructors(t *testing.T) {
	ctors := []struct {
		kind BufferType
		new  func(w, h int) (VideoFrameBuffer, error)
	}{
		{BufferTypeI420, func(w, h int) (VideoFrameBuffer, error) { return NewI420Buffer(w, h) }},
		{BufferTypeI420A, func(w, h int) (VideoFrameBuffer, error) { return NewI420ABuffer(w, h) }},
		{BufferTypeI422, func(w, h int) (VideoFrameBuffer, error) { return NewI422Buffer(w, h) }},
		{BufferTypeI444, func(w, h int) (VideoFrameBuffer, error) { return NewI444Buffer(w, h) }},
		{BufferTypeI010, func(w, h int) (VideoFrameBuffer, error) { return NewI010Buffer(w, h) }},
		{BufferTypeNV12, func(w, h int) (VideoFrameBuffer, error) { return NewNV12Buffer(w, h) }},
		{BufferTypeI420, func(w, h int) (VideoFrameBuffer, error) { return NewI420BufferWithStrides(w, h, w+3, w, w) }},
	}
	for _, c := range ctors {
		b, err := c.new(12, 8)
		require.NoError(t, err)
		assert.Equal(t, c.kind, b.Type())
		require.NoError(t, b.Release())
	}
}
