package video

import "fmt"

// VideoRotation is the clockwise rotation a renderer must apply to a frame.
type VideoRotation int

const (
	VideoRotation0   VideoRotation = 0
	VideoRotation90  VideoRotation = 90
	VideoRotation180 VideoRotation = 180
	VideoRotation270 VideoRotation = 270
)

// Valid reports whether r is one of the four supported rotations.
func (r VideoRotation) Valid() bool {
	switch r {
	case VideoRotation0, VideoRotation90, VideoRotation180, VideoRotation270:
		return true
	}
	return false
}

func (r VideoRotation) String() string {
	return fmt.Sprintf("%d°", int(r))
}

// VideoFrame pairs a buffer with its capture metadata. The frame owns one
// reference to Buffer.
type VideoFrame struct {
	Buffer      VideoFrameBuffer
	TimestampUs int64
	Rotation    VideoRotation
}

// NewVideoFrame creates a frame taking ownership of buf.
func NewVideoFrame(buf VideoFrameBuffer, timestampUs int64, rotation VideoRotation) (VideoFrame, error) {
	if buf == nil {
		return VideoFrame{}, ErrNilBuffer
	}
	if !rotation.Valid() {
		return VideoFrame{}, fmt.Errorf("invalid rotation: %d", int(rotation))
	}
	return VideoFrame{Buffer: buf, TimestampUs: timestampUs, Rotation: rotation}, nil
}

// Width returns the buffer width
func (f VideoFrame) Width() int { return f.Buffer.Width() }

// Height returns the buffer height
func (f VideoFrame) Height() int { return f.Buffer.Height() }

// Release releases the frame's buffer reference.
func (f VideoFrame) Release() error {
	if f.Buffer == nil {
		return ErrNilBuffer
	}
	return f.Buffer.Release()
}
