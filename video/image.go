package video

import (
	"fmt"
	"image"
	"image/color"
)

// ToImage returns an image of the buffer's visible pixels.
//
// I420, I422 and I444 buffers with equal U and V strides map onto an
// *image.YCbCr that aliases the buffer's planes, and I420A onto an
// *image.NYCbCrA. The image is only valid while the handle is live.
// Other layouts are converted through I420 into image-owned memory.
func ToImage(b VideoFrameBuffer) (image.Image, error) {
	if b == nil {
		return nil, ErrNilBuffer
	}
	rect := image.Rect(0, 0, b.Width(), b.Height())

	switch v := b.(type) {
	case *I420Buffer:
		return ycbcrView(&v.planarYuv, image.YCbCrSubsampleRatio420, rect), nil
	case *I422Buffer:
		return ycbcrView(&v.planarYuv, image.YCbCrSubsampleRatio422, rect), nil
	case *I444Buffer:
		return ycbcrView(&v.planarYuv, image.YCbCrSubsampleRatio444, rect), nil
	case *I420ABuffer:
		img := ycbcrView(&v.planarYuv, image.YCbCrSubsampleRatio420, rect)
		return &image.NYCbCrA{YCbCr: *img, A: v.DataA(), AStride: v.strideA}, nil
	}

	i420, err := b.ToI420()
	if err != nil {
		return nil, err
	}
	defer i420.Release()
	return cloneYCbCr(ycbcrView(&i420.planarYuv, image.YCbCrSubsampleRatio420, rect)), nil
}

func ycbcrView(b *planarYuv[byte], ratio image.YCbCrSubsampleRatio, rect image.Rectangle) *image.YCbCr {
	y, u, v := b.DataY(), b.DataU(), b.DataV()
	if b.p.strideU != b.p.strideV {
		// image.YCbCr has one chroma stride; repack into fresh memory.
		img := image.NewYCbCr(rect, ratio)
		copyPlane(img.Y, img.YStride, y, b.p.strideY, rect.Dx(), rect.Dy())
		copyPlane(img.Cb, img.CStride, u, b.p.strideU, b.p.chromaWidth, b.p.chromaHeight)
		copyPlane(img.Cr, img.CStride, v, b.p.strideV, b.p.chromaWidth, b.p.chromaHeight)
		return img
	}
	return &image.YCbCr{
		Y:              y,
		Cb:             u,
		Cr:             v,
		YStride:        b.p.strideY,
		CStride:        b.p.strideU,
		SubsampleRatio: ratio,
		Rect:           rect,
	}
}

func cloneYCbCr(src *image.YCbCr) *image.YCbCr {
	dst := image.NewYCbCr(src.Rect, src.SubsampleRatio)
	copyPlane(dst.Y, dst.YStride, src.Y, src.YStride, src.Rect.Dx(), src.Rect.Dy())
	cw, ch := (src.Rect.Dx()+1)/2, (src.Rect.Dy()+1)/2
	copyPlane(dst.Cb, dst.CStride, src.Cb, src.CStride, cw, ch)
	copyPlane(dst.Cr, dst.CStride, src.Cr, src.CStride, cw, ch)
	return dst
}

// NewI420FromImage copies img into a new I420 buffer from the default allocator.
func NewI420FromImage(img image.Image) (*I420Buffer, error) {
	return DefaultAllocator().NewI420FromImage(img)
}

// NewI420FromImage copies img into a new I420 buffer. A 4:2:0 *image.YCbCr
// is copied plane by plane; any other image is converted pixel by pixel
// with chroma averaged over each 2x2 block.
func (a *BufferAllocator) NewI420FromImage(img image.Image) (*I420Buffer, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrUnsupportedImage)
	}
	r := img.Bounds()
	w, h := r.Dx(), r.Dy()
	dst, err := a.NewI420(w, h)
	if err != nil {
		return nil, err
	}

	if src, ok := img.(*image.YCbCr); ok && src.SubsampleRatio == image.YCbCrSubsampleRatio420 && r.Min.X%2 == 0 && r.Min.Y%2 == 0 {
		copyPlane(dst.p.y, dst.p.strideY, src.Y[src.YOffset(r.Min.X, r.Min.Y):], src.YStride, w, h)
		co := src.COffset(r.Min.X, r.Min.Y)
		copyPlane(dst.p.u, dst.p.strideU, src.Cb[co:], src.CStride, dst.p.chromaWidth, dst.p.chromaHeight)
		copyPlane(dst.p.v, dst.p.strideV, src.Cr[co:], src.CStride, dst.p.chromaWidth, dst.p.chromaHeight)
		return dst, nil
	}

	cbSum := make([]int, dst.p.chromaWidth*dst.p.chromaHeight)
	crSum := make([]int, len(cbSum))
	count := make([]int, len(cbSum))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.YCbCrModel.Convert(img.At(r.Min.X+x, r.Min.Y+y)).(color.YCbCr)
			dst.p.y[y*dst.p.strideY+x] = c.Y
			i := (y/2)*dst.p.chromaWidth + x/2
			cbSum[i] += int(c.Cb)
			crSum[i] += int(c.Cr)
			count[i]++
		}
	}
	for cy := 0; cy < dst.p.chromaHeight; cy++ {
		for cx := 0; cx < dst.p.chromaWidth; cx++ {
			i := cy*dst.p.chromaWidth + cx
			n := count[i]
			dst.p.u[cy*dst.p.strideU+cx] = byte((cbSum[i] + n/2) / n)
			dst.p.v[cy*dst.p.strideV+cx] = byte((crSum[i] + n/2) / n)
		}
	}
	return dst, nil
}
