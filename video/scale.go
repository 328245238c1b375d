package video

import (
	"fmt"
)

// Scaler resizes buffers to I420 at a new resolution.
//
// Implements bilinear interpolation per plane for smooth resizing. Any
// layout is accepted; non-I420 sources are first brought to I420.
type Scaler struct {
	alloc *BufferAllocator
}

// NewScaler creates a scaler that allocates from alloc, or from the allocator
// owning each source when alloc is nil.
func NewScaler(alloc *BufferAllocator) *Scaler {
	return &Scaler{alloc: alloc}
}

// Scale resizes src to targetWidth x targetHeight.
func (s *Scaler) Scale(src VideoFrameBuffer, targetWidth, targetHeight int) (*I420Buffer, error) {
	if src == nil {
		return nil, ErrNilBuffer
	}
	return s.CropAndScale(src, 0, 0, src.Width(), src.Height(), targetWidth, targetHeight)
}

// CropAndScale cuts the cropWidth x cropHeight rectangle at (offsetX, offsetY)
// out of src and resizes it to targetWidth x targetHeight. Chroma offsets are
// rounded down to the subsampled grid.
func (s *Scaler) CropAndScale(src VideoFrameBuffer, offsetX, offsetY, cropWidth, cropHeight, targetWidth, targetHeight int) (*I420Buffer, error) {
	if src == nil {
		return nil, ErrNilBuffer
	}
	if offsetX < 0 || offsetY < 0 || cropWidth <= 0 || cropHeight <= 0 ||
		offsetX+cropWidth > src.Width() || offsetY+cropHeight > src.Height() {
		return nil, fmt.Errorf("%w: %dx%d at (%d,%d) in %dx%d", ErrInvalidCrop,
			cropWidth, cropHeight, offsetX, offsetY, src.Width(), src.Height())
	}

	in, err := src.ToI420()
	if err != nil {
		return nil, err
	}
	defer in.Release()

	alloc := s.alloc
	if alloc == nil {
		alloc = in.st.allocator()
	}
	dst, err := alloc.NewI420(targetWidth, targetHeight)
	if err != nil {
		return nil, err
	}

	p := in.p
	scalePlane(p.y[offsetY*p.strideY+offsetX:], cropWidth, cropHeight, p.strideY,
		dst.p.y, targetWidth, targetHeight, dst.p.strideY)

	cx, cy := offsetX/2, offsetY/2
	cw := min((offsetX+cropWidth+1)/2, p.chromaWidth) - cx
	ch := min((offsetY+cropHeight+1)/2, p.chromaHeight) - cy
	scalePlane(p.u[cy*p.strideU+cx:], cw, ch, p.strideU,
		dst.p.u, dst.p.chromaWidth, dst.p.chromaHeight, dst.p.strideU)
	scalePlane(p.v[cy*p.strideV+cx:], cw, ch, p.strideV,
		dst.p.v, dst.p.chromaWidth, dst.p.chromaHeight, dst.p.strideV)

	return dst, nil
}

// scalePlane scales a single plane using bilinear interpolation.
// src starts at the top-left sample of the region to read.
func scalePlane(src []byte, srcWidth, srcHeight, srcStride int,
	dst []byte, dstWidth, dstHeight, dstStride int) {

	if srcWidth == dstWidth && srcHeight == dstHeight {
		copyPlane(dst, dstStride, src, srcStride, srcWidth, srcHeight)
		return
	}

	// Calculate scaling ratios
	xRatio := float64(srcWidth) / float64(dstWidth)
	yRatio := float64(srcHeight) / float64(dstHeight)

	for y := 0; y < dstHeight; y++ {
		srcY := float64(y) * yRatio
		y1 := int(srcY)
		y2 := min(y1+1, srcHeight-1)
		fy := srcY - float64(y1)

		for x := 0; x < dstWidth; x++ {
			srcX := float64(x) * xRatio
			x1 := int(srcX)
			x2 := min(x1+1, srcWidth-1)
			fx := srcX - float64(x1)

			p11 := float64(src[y1*srcStride+x1])
			p12 := float64(src[y1*srcStride+x2])
			p21 := float64(src[y2*srcStride+x1])
			p22 := float64(src[y2*srcStride+x2])

			top := p11*(1-fx) + p12*fx
			bottom := p21*(1-fx) + p22*fx
			pixel := top*(1-fy) + bottom*fy

			dst[y*dstStride+x] = byte(pixel + 0.5) // Round to nearest
		}
	}
}

// ScaleI420 resizes src into a new I420 buffer.
func ScaleI420(src *I420Buffer, targetWidth, targetHeight int) (*I420Buffer, error) {
	if src == nil {
		return nil, ErrNilBuffer
	}
	return NewScaler(nil).Scale(src, targetWidth, targetHeight)
}

// CropAndScaleI420 crops src and resizes the region into a new I420 buffer.
func CropAndScaleI420(src *I420Buffer, offsetX, offsetY, cropWidth, cropHeight, targetWidth, targetHeight int) (*I420Buffer, error) {
	if src == nil {
		return nil, ErrNilBuffer
	}
	return NewScaler(nil).CropAndScale(src, offsetX, offsetY, cropWidth, cropHeight, targetWidth, targetHeight)
}
