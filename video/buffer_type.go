package video

import "fmt"

// BufferType identifies the pixel layout of a buffer.
type BufferType int

const (
	// BufferTypeNative is an opaque producer buffer whose only capability is ToI420.
	BufferTypeNative BufferType = iota
	// BufferTypeI420 is 8-bit planar 4:2:0.
	BufferTypeI420
	// BufferTypeI420A is I420 plus a full resolution alpha plane.
	BufferTypeI420A
	// BufferTypeI422 is 8-bit planar 4:2:2.
	BufferTypeI422
	// BufferTypeI444 is 8-bit planar 4:4:4.
	BufferTypeI444
	// BufferTypeI010 is 10-bit planar 4:2:0 stored in 16-bit samples.
	BufferTypeI010
	// BufferTypeNV12 is 8-bit 4:2:0 with a Y plane and one interleaved UV plane.
	BufferTypeNV12
)

// String returns the conventional name of the layout.
func (t BufferType) String() string {
	switch t {
	case BufferTypeNative:
		return "Native"
	case BufferTypeI420:
		return "I420"
	case BufferTypeI420A:
		return "I420A"
	case BufferTypeI422:
		return "I422"
	case BufferTypeI444:
		return "I444"
	case BufferTypeI010:
		return "I010"
	case BufferTypeNV12:
		return "NV12"
	default:
		return fmt.Sprintf("BufferType(%d)", int(t))
	}
}

// chromaSize returns the chroma plane dimensions of a w x h buffer of type t.
// Odd sizes round up so the last column and row are always covered.
func chromaSize(t BufferType, w, h int) (int, int) {
	switch t {
	case BufferTypeI422:
		return (w + 1) / 2, h
	case BufferTypeI444:
		return w, h
	case BufferTypeNative:
		return 0, 0
	default:
		return (w + 1) / 2, (h + 1) / 2
	}
}

// bytesPerSample is 2 for 16-bit-backed layouts and 1 otherwise.
func bytesPerSample(t BufferType) int {
	if t == BufferTypeI010 {
		return 2
	}
	return 1
}
