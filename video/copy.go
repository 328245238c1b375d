package video

import "fmt"

// copyPlane copies rows samples wide from src to dst. Strides are in bytes;
// for 16-bit planes the caller passes element strides.
func copyPlane[T sample](dst []T, dstStride int, src []T, srcStride int, width, rows int) {
	for r := 0; r < rows; r++ {
		copy(dst[r*dstStride:r*dstStride+width], src[r*srcStride:r*srcStride+width])
	}
}

// Copy returns a deep copy of src in independent storage drawn from a. Only
// visible samples are copied; the copy uses a's own stride alignment.
func (a *BufferAllocator) Copy(src VideoFrameBuffer) (VideoFrameBuffer, error) {
	if src == nil {
		return nil, ErrNilBuffer
	}
	if h, ok := src.(interface{ viewReady() error }); ok {
		if err := h.viewReady(); err != nil {
			return nil, err
		}
	}
	switch b := src.(type) {
	case *I420Buffer:
		return handleOrNil(a.CopyI420(b))
	case *I420ABuffer:
		dst, err := a.NewI420A(b.width, b.height)
		if err != nil {
			return nil, err
		}
		copyPlanar8(&dst.planarYuv, &b.planarYuv)
		copyPlane(dst.a, dst.strideA, b.DataA(), b.strideA, b.width, b.height)
		return dst, nil
	case *I422Buffer:
		dst, err := a.NewI422(b.width, b.height)
		if err != nil {
			return nil, err
		}
		copyPlanar8(&dst.planarYuv, &b.planarYuv)
		return dst, nil
	case *I444Buffer:
		dst, err := a.NewI444(b.width, b.height)
		if err != nil {
			return nil, err
		}
		copyPlanar8(&dst.planarYuv, &b.planarYuv)
		return dst, nil
	case *I010Buffer:
		dst, err := a.NewI010(b.width, b.height)
		if err != nil {
			return nil, err
		}
		s, d := &b.planarYuv, &dst.planarYuv
		copyPlane(d.p.y, d.p.strideY/2, s.DataY(), s.p.strideY/2, b.width, b.height)
		copyPlane(d.p.u, d.p.strideU/2, s.DataU(), s.p.strideU/2, s.p.chromaWidth, s.p.chromaHeight)
		copyPlane(d.p.v, d.p.strideV/2, s.DataV(), s.p.strideV/2, s.p.chromaWidth, s.p.chromaHeight)
		return dst, nil
	case *NV12Buffer:
		dst, err := a.NewNV12(b.width, b.height)
		if err != nil {
			return nil, err
		}
		copyPlane(dst.y, dst.strideY, b.DataY(), b.strideY, b.width, b.height)
		copyPlane(dst.uv, dst.strideUV, b.DataUV(), b.strideUV, b.chromaWidth*2, b.chromaHeight)
		return dst, nil
	default:
		return nil, fmt.Errorf("%w: cannot copy %s buffer", ErrUnsupportedConversion, src.Type())
	}
}

// CopyI420 returns a deep copy of src in independent storage drawn from a.
func (a *BufferAllocator) CopyI420(src *I420Buffer) (*I420Buffer, error) {
	if src == nil {
		return nil, ErrNilBuffer
	}
	if err := src.viewReady(); err != nil {
		return nil, err
	}
	dst, err := a.NewI420(src.width, src.height)
	if err != nil {
		return nil, err
	}
	copyPlanar8(&dst.planarYuv, &src.planarYuv)
	return dst, nil
}

func copyPlanar8(dst, src *planarYuv[byte]) {
	copyPlane(dst.p.y, dst.p.strideY, src.DataY(), src.p.strideY, src.width, src.height)
	copyPlane(dst.p.u, dst.p.strideU, src.DataU(), src.p.strideU, src.p.chromaWidth, src.p.chromaHeight)
	copyPlane(dst.p.v, dst.p.strideV, src.DataV(), src.p.strideV, src.p.chromaWidth, src.p.chromaHeight)
}

// CopyI420Buffer returns a deep copy of src. The copy is drawn from the
// allocator that created src, or the default allocator for wrapped memory.
func CopyI420Buffer(src *I420Buffer) (*I420Buffer, error) {
	if src == nil {
		return nil, ErrNilBuffer
	}
	return src.st.allocator().CopyI420(src)
}
