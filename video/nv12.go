package video

// NV12Buffer is 8-bit YUV 4:2:0 with a Y plane followed by one plane of
// interleaved U,V pairs. The UV plane is ceil(h/2) rows of ceil(w/2) pairs.
type NV12Buffer struct {
	bufferHandle
	y, uv                     []byte
	strideY, strideUV         int
	chromaWidth, chromaHeight int
}

func newNV12(st *storage, w, h int, y, uv []byte, strideY, strideUV int) *NV12Buffer {
	cw, ch := chromaSize(BufferTypeNV12, w, h)
	return &NV12Buffer{
		bufferHandle: bufferHandle{st: st, kind: BufferTypeNV12, width: w, height: h},
		y:            y,
		uv:           uv,
		strideY:      strideY,
		strideUV:     strideUV,
		chromaWidth:  cw,
		chromaHeight: ch,
	}
}

func (b *NV12Buffer) ChromaWidth() int  { return b.chromaWidth }
func (b *NV12Buffer) ChromaHeight() int { return b.chromaHeight }
func (b *NV12Buffer) StrideY() int      { return b.strideY }
func (b *NV12Buffer) StrideUV() int     { return b.strideUV }

func (b *NV12Buffer) DataY() []byte {
	b.check()
	return b.y
}

func (b *NV12Buffer) DataUV() []byte {
	b.check()
	return b.uv
}

func (b *NV12Buffer) MutableDataY() []byte {
	b.mutable()
	return b.y
}

func (b *NV12Buffer) MutableDataUV() []byte {
	b.mutable()
	return b.uv
}

// ToI420 converts into fresh I420 storage by deinterleaving the UV plane.
func (b *NV12Buffer) ToI420() (*I420Buffer, error) {
	if err := b.viewReady(); err != nil {
		return nil, err
	}
	return nv12ToI420(b)
}

func (b *NV12Buffer) GetNV12() (*NV12Buffer, error) {
	if err := b.viewReady(); err != nil {
		return nil, err
	}
	return newNV12(b.retainStorage(), b.width, b.height, b.y, b.uv, b.strideY, b.strideUV), nil
}

func (b *NV12Buffer) Retain() VideoFrameBuffer {
	return newNV12(b.retainStorage(), b.width, b.height, b.y, b.uv, b.strideY, b.strideUV)
}

func (b *NV12Buffer) Transfer() VideoFrameBuffer {
	return newNV12(b.transferStorage(), b.width, b.height, b.y, b.uv, b.strideY, b.strideUV)
}
