package video

import (
	"encoding/binary"
	"hash"

	"golang.org/x/crypto/blake2b"
)

// ChecksumSize is the length of a buffer checksum in bytes.
const ChecksumSize = blake2b.Size256

// Checksum returns a BLAKE2b-256 digest of the buffer's layout, dimensions and
// visible samples. Row padding is excluded, so two buffers with equal pixels
// hash equal regardless of stride. Native buffers are hashed via ToI420.
func Checksum(b VideoFrameBuffer) ([ChecksumSize]byte, error) {
	var sum [ChecksumSize]byte
	if b == nil {
		return sum, ErrNilBuffer
	}

	h, err := blake2b.New256(nil)
	if err != nil {
		return sum, err
	}
	var hdr [12]byte
	binary.LittleEndian.PutUint32(hdr[0:], uint32(b.Type()))
	binary.LittleEndian.PutUint32(hdr[4:], uint32(b.Width()))
	binary.LittleEndian.PutUint32(hdr[8:], uint32(b.Height()))
	h.Write(hdr[:])

	switch v := b.(type) {
	case *I420ABuffer:
		hashPlanar8(h, &v.planarYuv)
		hashRows(h, v.DataA(), v.strideA, v.width, v.height)
	case *I420Buffer:
		hashPlanar8(h, &v.planarYuv)
	case *I422Buffer:
		hashPlanar8(h, &v.planarYuv)
	case *I444Buffer:
		hashPlanar8(h, &v.planarYuv)
	case *I010Buffer:
		hashPlanar16(h, &v.planarYuv)
	case *NV12Buffer:
		hashRows(h, v.DataY(), v.strideY, v.width, v.height)
		hashRows(h, v.DataUV(), v.strideUV, v.chromaWidth*2, v.chromaHeight)
	default:
		i420, err := b.ToI420()
		if err != nil {
			return sum, err
		}
		defer i420.Release()
		hashPlanar8(h, &i420.planarYuv)
	}

	copy(sum[:], h.Sum(nil))
	return sum, nil
}

func hashRows(h hash.Hash, plane []byte, stride, width, rows int) {
	for r := 0; r < rows; r++ {
		h.Write(plane[r*stride : r*stride+width])
	}
}

func hashPlanar8(h hash.Hash, b *planarYuv[byte]) {
	hashRows(h, b.DataY(), b.p.strideY, b.width, b.height)
	hashRows(h, b.DataU(), b.p.strideU, b.p.chromaWidth, b.p.chromaHeight)
	hashRows(h, b.DataV(), b.p.strideV, b.p.chromaWidth, b.p.chromaHeight)
}

// hashPlanar16 hashes samples little-endian so digests match across hosts.
func hashPlanar16(h hash.Hash, b *planarYuv[uint16]) {
	row := make([]byte, 2*max(b.width, b.p.chromaWidth))
	write := func(plane []uint16, stride, width, rows int) {
		for r := 0; r < rows; r++ {
			for c, s := range plane[r*stride/2 : r*stride/2+width] {
				binary.LittleEndian.PutUint16(row[2*c:], s)
			}
			h.Write(row[:2*width])
		}
	}
	write(b.DataY(), b.p.strideY, b.width, b.height)
	write(b.DataU(), b.p.strideU, b.p.chromaWidth, b.p.chromaHeight)
	write(b.DataV(), b.p.strideV, b.p.chromaWidth, b.p.chromaHeight)
}
