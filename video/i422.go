package video

// I422Buffer is 8-bit planar YUV 4:2:2. Chroma planes are ceil(w/2) x h.
type I422Buffer struct {
	planarYuv[byte]
}

func newI422(st *storage, w, h int, p planes[byte]) *I422Buffer {
	return &I422Buffer{planarYuv[byte]{
		bufferHandle: bufferHandle{st: st, kind: BufferTypeI422, width: w, height: h},
		p:            p,
	}}
}

// ToI420 converts into fresh I420 storage, averaging vertical chroma pairs.
func (b *I422Buffer) ToI420() (*I420Buffer, error) {
	if err := b.viewReady(); err != nil {
		return nil, err
	}
	return i422ToI420(b)
}

func (b *I422Buffer) GetI422() (*I422Buffer, error) {
	if err := b.viewReady(); err != nil {
		return nil, err
	}
	return newI422(b.retainStorage(), b.width, b.height, b.p), nil
}

func (b *I422Buffer) Retain() VideoFrameBuffer {
	return newI422(b.retainStorage(), b.width, b.height, b.p)
}

func (b *I422Buffer) Transfer() VideoFrameBuffer {
	return newI422(b.transferStorage(), b.width, b.height, b.p)
}

// I444Buffer is 8-bit planar YUV 4:4:4. Chroma planes are full resolution.
type I444Buffer struct {
	planarYuv[byte]
}

func newI444(st *storage, w, h int, p planes[byte]) *I444Buffer {
	return &I444Buffer{planarYuv[byte]{
		bufferHandle: bufferHandle{st: st, kind: BufferTypeI444, width: w, height: h},
		p:            p,
	}}
}

// ToI420 converts into fresh I420 storage, averaging each 2x2 chroma block.
func (b *I444Buffer) ToI420() (*I420Buffer, error) {
	if err := b.viewReady(); err != nil {
		return nil, err
	}
	return i444ToI420(b)
}

func (b *I444Buffer) GetI444() (*I444Buffer, error) {
	if err := b.viewReady(); err != nil {
		return nil, err
	}
	return newI444(b.retainStorage(), b.width, b.height, b.p), nil
}

func (b *I444Buffer) Retain() VideoFrameBuffer {
	return newI444(b.retainStorage(), b.width, b.height, b.p)
}

func (b *I444Buffer) Transfer() VideoFrameBuffer {
	return newI444(b.transferStorage(), b.width, b.height, b.p)
}
