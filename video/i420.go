package video

// I420Buffer is 8-bit planar YUV 4:2:0. Chroma planes are ceil(w/2) x ceil(h/2).
type I420Buffer struct {
	planarYuv[byte]
}

func newI420(st *storage, w, h int, p planes[byte]) *I420Buffer {
	return &I420Buffer{planarYuv[byte]{
		bufferHandle: bufferHandle{st: st, kind: BufferTypeI420, width: w, height: h},
		p:            p,
	}}
}

// ToI420 returns a new handle on the same storage.
func (b *I420Buffer) ToI420() (*I420Buffer, error) {
	return b.GetI420()
}

// GetI420 returns a new handle on the same storage.
func (b *I420Buffer) GetI420() (*I420Buffer, error) {
	if err := b.viewReady(); err != nil {
		return nil, err
	}
	return newI420(b.retainStorage(), b.width, b.height, b.p), nil
}

// Retain implements VideoFrameBuffer.Retain.
func (b *I420Buffer) Retain() VideoFrameBuffer {
	return newI420(b.retainStorage(), b.width, b.height, b.p)
}

// Transfer implements VideoFrameBuffer.Transfer.
func (b *I420Buffer) Transfer() VideoFrameBuffer {
	return newI420(b.transferStorage(), b.width, b.height, b.p)
}

// I420ABuffer is I420 with an additional full resolution 8-bit alpha plane.
// Its Y, U and V planes are a complete I420 image, so it offers an I420 view.
type I420ABuffer struct {
	planarYuv[byte]
	a       []byte
	strideA int
}

func newI420A(st *storage, w, h int, p planes[byte], a []byte, strideA int) *I420ABuffer {
	return &I420ABuffer{
		planarYuv: planarYuv[byte]{
			bufferHandle: bufferHandle{st: st, kind: BufferTypeI420A, width: w, height: h},
			p:            p,
		},
		a:       a,
		strideA: strideA,
	}
}

func (b *I420ABuffer) StrideA() int { return b.strideA }

// DataA returns the alpha plane.
func (b *I420ABuffer) DataA() []byte {
	b.check()
	return b.a
}

// MutableDataA returns the alpha plane for writing.
func (b *I420ABuffer) MutableDataA() []byte {
	b.mutable()
	return b.a
}

// ToI420 returns an I420 handle aliasing the Y, U and V planes. The alpha
// plane stays alive as long as the view does.
func (b *I420ABuffer) ToI420() (*I420Buffer, error) {
	return b.GetI420()
}

// GetI420 returns an I420 handle aliasing the Y, U and V planes.
func (b *I420ABuffer) GetI420() (*I420Buffer, error) {
	if err := b.viewReady(); err != nil {
		return nil, err
	}
	return newI420(b.retainStorage(), b.width, b.height, b.p), nil
}

// GetI420A returns a new handle on the same storage.
func (b *I420ABuffer) GetI420A() (*I420ABuffer, error) {
	if err := b.viewReady(); err != nil {
		return nil, err
	}
	return newI420A(b.retainStorage(), b.width, b.height, b.p, b.a, b.strideA), nil
}

// Retain implements VideoFrameBuffer.Retain.
func (b *I420ABuffer) Retain() VideoFrameBuffer {
	return newI420A(b.retainStorage(), b.width, b.height, b.p, b.a, b.strideA)
}

// Transfer implements VideoFrameBuffer.Transfer.
func (b *I420ABuffer) Transfer() VideoFrameBuffer {
	return newI420A(b.transferStorage(), b.width, b.height, b.p, b.a, b.strideA)
}
