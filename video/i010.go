package video

// I010Buffer is planar YUV 4:2:0 with 10 significant bits per sample, each
// stored in the low bits of a host-endian uint16. Strides are in bytes.
type I010Buffer struct {
	planarYuv[uint16]
}

// I010MaxValue is the largest valid I010 sample.
const I010MaxValue = 1<<10 - 1

func newI010(st *storage, w, h int, p planes[uint16]) *I010Buffer {
	return &I010Buffer{planarYuv[uint16]{
		bufferHandle: bufferHandle{st: st, kind: BufferTypeI010, width: w, height: h},
		p:            p,
	}}
}

// ToI420 converts into fresh I420 storage, keeping the 8 most significant bits.
func (b *I010Buffer) ToI420() (*I420Buffer, error) {
	if err := b.viewReady(); err != nil {
		return nil, err
	}
	return i010ToI420(b)
}

func (b *I010Buffer) GetI010() (*I010Buffer, error) {
	if err := b.viewReady(); err != nil {
		return nil, err
	}
	return newI010(b.retainStorage(), b.width, b.height, b.p), nil
}

func (b *I010Buffer) Retain() VideoFrameBuffer {
	return newI010(b.retainStorage(), b.width, b.height, b.p)
}

func (b *I010Buffer) Transfer() VideoFrameBuffer {
	return newI010(b.transferStorage(), b.width, b.height, b.p)
}
