package video

import (
	"testing"

	fbtesting "github.com/opd-ai/framebuffer/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToI420_Idempotent(t *testing.T) {
	ba, tracker := newTrackedAllocator(t)
	b := createTestI420(t, ba, 11, 5)

	out, err := b.ToI420()
	require.NoError(t, err)
	assert.Equal(t, b.Width(), out.Width())
	assert.Equal(t, b.Height(), out.Height())
	assert.Equal(t, visibleRows(b.DataY(), b.StrideY(), 11, 5), visibleRows(out.DataY(), out.StrideY(), 11, 5))
	assert.Equal(t, visibleRows(b.DataU(), b.StrideU(), 6, 3), visibleRows(out.DataU(), out.StrideU(), 6, 3))
	assert.Equal(t, visibleRows(b.DataV(), b.StrideV(), 6, 3), visibleRows(out.DataV(), out.StrideV(), 6, 3))
	assert.Equal(t, 1, tracker.Stats().Allocations, "canonical input must not be converted")

	again, err := out.ToI420()
	require.NoError(t, err)
	sum1, _ := Checksum(b)
	sum2, _ := Checksum(again)
	assert.Equal(t, sum1, sum2)

	for _, h := range []VideoFrameBuffer{again, out, b} {
		require.NoError(t, h.Release())
	}
	assert.Zero(t, tracker.Live())
}

func TestToI420_I422(t *testing.T) {
	ba, tracker := newTrackedAllocator(t)
	b, err := ba.NewI422(2, 3)
	require.NoError(t, err)

	copy(b.MutableDataY(), []byte{1, 2, 3, 4, 5, 6})
	// Chroma is 1x3: rows 10, 20, 40 (V mirrors U plus one)
	u, v := b.MutableDataU(), b.MutableDataV()
	for r, val := range []byte{10, 20, 40} {
		u[r*b.StrideU()] = val
		v[r*b.StrideV()] = val + 1
	}

	out, err := b.ToI420()
	require.NoError(t, err)
	defer out.Release()

	assert.Equal(t, 2, tracker.Live(), "conversion allocates fresh storage")
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, visibleRows(out.DataY(), out.StrideY(), 2, 3))
	assert.Equal(t, 1, out.ChromaWidth())
	assert.Equal(t, 2, out.ChromaHeight())
	// (10+20+1)>>1 = 15, last odd row copied
	assert.Equal(t, []byte{15, 40}, visibleRows(out.DataU(), out.StrideU(), 1, 2))
	assert.Equal(t, []byte{16, 41}, visibleRows(out.DataV(), out.StrideV(), 1, 2))

	require.NoError(t, b.Release())
}

func TestToI420_I444(t *testing.T) {
	ba, _ := newTrackedAllocator(t)
	b, err := ba.NewI444(3, 3)
	require.NoError(t, err)
	defer b.Release()

	fillPlane(b.MutableDataY(), b.StrideY(), 3, 3, 0)
	u := b.MutableDataU()
	copy(u[0*b.StrideU():], []byte{10, 20, 100})
	copy(u[1*b.StrideU():], []byte{30, 41, 100})
	copy(u[2*b.StrideU():], []byte{7, 7, 9})
	fillPlane(b.MutableDataV(), b.StrideV(), 3, 3, 50)

	out, err := b.ToI420()
	require.NoError(t, err)
	defer out.Release()

	assert.Equal(t, 2, out.ChromaWidth())
	assert.Equal(t, 2, out.ChromaHeight())
	// (10+20+30+41+2)>>2 = 25; right column (100+100+100+100+2)>>2 = 100;
	// bottom row (7+7+7+7+2)>>2 = 7; corner 9
	assert.Equal(t, []byte{25, 100, 7, 9}, visibleRows(out.DataU(), out.StrideU(), 2, 2))
	assert.Equal(t, visibleRows(b.DataY(), b.StrideY(), 3, 3), visibleRows(out.DataY(), out.StrideY(), 3, 3))
}

func TestToI420_I010(t *testing.T) {
	ba, _ := newTrackedAllocator(t, WithStrideAlignment(8))
	b, err := ba.NewI010(4, 2)
	require.NoError(t, err)
	defer b.Release()

	y := b.MutableDataY()
	es := b.StrideY() / 2
	copy(y[0:], []uint16{0, 4, 512, I010MaxValue})
	copy(y[es:], []uint16{3, 1000, 0xFFFF, 1})
	u, v := b.MutableDataU(), b.MutableDataV()
	u[0], u[1] = 256, 1020
	v[0], v[1] = 8, 12

	out, err := b.ToI420()
	require.NoError(t, err)
	defer out.Release()

	assert.Equal(t, []byte{0, 1, 128, 255, 0, 250, 255, 0}, visibleRows(out.DataY(), out.StrideY(), 4, 2))
	assert.Equal(t, []byte{64, 255}, visibleRows(out.DataU(), out.StrideU(), 2, 1))
	assert.Equal(t, []byte{2, 3}, visibleRows(out.DataV(), out.StrideV(), 2, 1))
}

func TestToI420_NV12(t *testing.T) {
	ba, _ := newTrackedAllocator(t)
	b, err := ba.NewNV12(3, 3)
	require.NoError(t, err)
	defer b.Release()

	fillPlane(b.MutableDataY(), b.StrideY(), 3, 3, 0)
	uv := b.MutableDataUV()
	copy(uv[0:], []byte{1, 2, 3, 4})
	copy(uv[b.StrideUV():], []byte{5, 6, 7, 8})

	out, err := b.ToI420()
	require.NoError(t, err)
	defer out.Release()

	assert.Equal(t, []byte{1, 3, 5, 7}, visibleRows(out.DataU(), out.StrideU(), 2, 2))
	assert.Equal(t, []byte{2, 4, 6, 8}, visibleRows(out.DataV(), out.StrideV(), 2, 2))
	assert.Equal(t, visibleRows(b.DataY(), b.StrideY(), 3, 3), visibleRows(out.DataY(), out.StrideY(), 3, 3))
}

func TestToI420_AllocationFailure(t *testing.T) {
	ba, tracker := newTrackedAllocator(t)
	buffers := allocateAll(t, ba, 4, 4)

	for _, b := range buffers {
		tracker.FailAllocations(1)
		out, err := b.ToI420()
		switch b.Type() {
		case BufferTypeI420, BufferTypeI420A:
			// aliasing never allocates
			require.NoError(t, err)
			require.NoError(t, out.Release())
		default:
			assert.ErrorIs(t, err, ErrAllocationFailed, b.Type().String())
			assert.ErrorIs(t, err, fbtesting.ErrSimulatedExhaustion)
		}
		tracker.FailAllocations(0)
		require.NoError(t, b.Release())
	}
	assert.Zero(t, tracker.Live())
}

func TestToI420_AllLayoutsCanonical(t *testing.T) {
	ba, tracker := newTrackedAllocator(t)

	for _, b := range allocateAll(t, ba, 5, 3) {
		out, err := b.ToI420()
		require.NoError(t, err, b.Type().String())
		assert.Equal(t, BufferTypeI420, out.Type())
		assert.Equal(t, 5, out.Width())
		assert.Equal(t, 3, out.Height())
		assert.Equal(t, 3, out.ChromaWidth())
		assert.Equal(t, 2, out.ChromaHeight())
		require.NoError(t, out.Release())
		require.NoError(t, b.Release())
	}
	assert.Zero(t, tracker.Live())
}
