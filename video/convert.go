package video

// Conversions into the canonical I420 layout. Each allocates from the
// allocator that owns the source storage so accounting stays with it.

func i422ToI420(src *I422Buffer) (*I420Buffer, error) {
	dst, err := src.st.allocator().NewI420(src.width, src.height)
	if err != nil {
		return nil, err
	}
	s := &src.planarYuv
	copyPlane(dst.p.y, dst.p.strideY, s.p.y, s.p.strideY, src.width, src.height)
	halveRows(dst.p.u, dst.p.strideU, s.p.u, s.p.strideU, s.p.chromaWidth, s.p.chromaHeight)
	halveRows(dst.p.v, dst.p.strideV, s.p.v, s.p.strideV, s.p.chromaWidth, s.p.chromaHeight)
	return dst, nil
}

func i444ToI420(src *I444Buffer) (*I420Buffer, error) {
	dst, err := src.st.allocator().NewI420(src.width, src.height)
	if err != nil {
		return nil, err
	}
	s := &src.planarYuv
	copyPlane(dst.p.y, dst.p.strideY, s.p.y, s.p.strideY, src.width, src.height)
	box2x2(dst.p.u, dst.p.strideU, s.p.u, s.p.strideU, src.width, src.height)
	box2x2(dst.p.v, dst.p.strideV, s.p.v, s.p.strideV, src.width, src.height)
	return dst, nil
}

func i010ToI420(src *I010Buffer) (*I420Buffer, error) {
	dst, err := src.st.allocator().NewI420(src.width, src.height)
	if err != nil {
		return nil, err
	}
	s := &src.planarYuv
	narrowPlane(dst.p.y, dst.p.strideY, s.p.y, s.p.strideY/2, src.width, src.height)
	narrowPlane(dst.p.u, dst.p.strideU, s.p.u, s.p.strideU/2, s.p.chromaWidth, s.p.chromaHeight)
	narrowPlane(dst.p.v, dst.p.strideV, s.p.v, s.p.strideV/2, s.p.chromaWidth, s.p.chromaHeight)
	return dst, nil
}

func nv12ToI420(src *NV12Buffer) (*I420Buffer, error) {
	dst, err := src.st.allocator().NewI420(src.width, src.height)
	if err != nil {
		return nil, err
	}
	copyPlane(dst.p.y, dst.p.strideY, src.y, src.strideY, src.width, src.height)
	for r := 0; r < src.chromaHeight; r++ {
		row := src.uv[r*src.strideUV:]
		u := dst.p.u[r*dst.p.strideU:]
		v := dst.p.v[r*dst.p.strideV:]
		for c := 0; c < src.chromaWidth; c++ {
			u[c] = row[2*c]
			v[c] = row[2*c+1]
		}
	}
	return dst, nil
}

// halveRows averages each pair of source rows into one destination row.
// An odd final row is copied.
func halveRows(dst []byte, dstStride int, src []byte, srcStride, width, srcRows int) {
	for r := 0; r < (srcRows+1)/2; r++ {
		top := src[2*r*srcStride:]
		bottom := top
		if 2*r+1 < srcRows {
			bottom = src[(2*r+1)*srcStride:]
		}
		out := dst[r*dstStride:]
		for c := 0; c < width; c++ {
			out[c] = byte((int(top[c]) + int(bottom[c]) + 1) >> 1)
		}
	}
}

// box2x2 averages each 2x2 block of a full resolution w x h plane. Blocks on
// an odd right or bottom edge reuse the last column or row.
func box2x2(dst []byte, dstStride int, src []byte, srcStride, w, h int) {
	for r := 0; r < (h+1)/2; r++ {
		r0 := 2 * r
		r1 := min(r0+1, h-1)
		top := src[r0*srcStride:]
		bottom := src[r1*srcStride:]
		out := dst[r*dstStride:]
		for c := 0; c < (w+1)/2; c++ {
			c0 := 2 * c
			c1 := min(c0+1, w-1)
			sum := int(top[c0]) + int(top[c1]) + int(bottom[c0]) + int(bottom[c1])
			out[c] = byte((sum + 2) >> 2)
		}
	}
}

// narrowPlane keeps the top 8 of 10 significant bits. Out of range samples clamp to 255.
func narrowPlane(dst []byte, dstStride int, src []uint16, srcStride, width, rows int) {
	for r := 0; r < rows; r++ {
		in := src[r*srcStride:]
		out := dst[r*dstStride:]
		for c := 0; c < width; c++ {
			out[c] = byte(min(in[c]>>2, 255))
		}
	}
}
