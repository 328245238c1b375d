package video

// sample is the element type of a plane.
type sample interface {
	~uint8 | ~uint16
}

// planes describes the Y, U and V planes of a planar buffer. Strides are in
// bytes; each slice holds exactly stride*rows bytes worth of samples.
type planes[T sample] struct {
	y, u, v                   []T
	strideY, strideU, strideV int
	chromaWidth, chromaHeight int
}

// planarYuv implements PlanarYuvBuffer for both sample sizes.
type planarYuv[T sample] struct {
	bufferHandle
	p planes[T]
}

func (b *planarYuv[T]) ChromaWidth() int  { return b.p.chromaWidth }
func (b *planarYuv[T]) ChromaHeight() int { return b.p.chromaHeight }
func (b *planarYuv[T]) StrideY() int      { return b.p.strideY }
func (b *planarYuv[T]) StrideU() int      { return b.p.strideU }
func (b *planarYuv[T]) StrideV() int      { return b.p.strideV }

// DataY returns the luma plane. Panics with ErrBufferReleased on a spent handle.
func (b *planarYuv[T]) DataY() []T {
	b.check()
	return b.p.y
}

func (b *planarYuv[T]) DataU() []T {
	b.check()
	return b.p.u
}

func (b *planarYuv[T]) DataV() []T {
	b.check()
	return b.p.v
}

// mutable panics unless the handle is live and the only owner of its storage.
func (h *bufferHandle) mutable() {
	h.check()
	if !h.st.exclusive() {
		panic(ErrStorageShared)
	}
}

// MutableDataY returns the luma plane for writing. It panics with
// ErrStorageShared while any other handle aliases the storage.
func (b *planarYuv[T]) MutableDataY() []T {
	b.mutable()
	return b.p.y
}

func (b *planarYuv[T]) MutableDataU() []T {
	b.mutable()
	return b.p.u
}

func (b *planarYuv[T]) MutableDataV() []T {
	b.mutable()
	return b.p.v
}

// planarFrom describes three planes of a kind buffer with the given byte strides.
func planarFrom[T sample](y, u, v []T, kind BufferType, w, h, sy, su, sv int) planes[T] {
	cw, ch := chromaSize(kind, w, h)
	return planes[T]{
		y: y, u: u, v: v,
		strideY: sy, strideU: su, strideV: sv,
		chromaWidth: cw, chromaHeight: ch,
	}
}
