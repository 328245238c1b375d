package video

import (
	"fmt"
	"sync/atomic"
)

// VideoFrameBuffer is a handle to the pixels of one video frame.
//
// Every handle is one owner of the underlying storage. Retain and the Get*
// views add owners; Release removes this handle's ownership exactly once.
// The storage is freed when the last owner releases it.
type VideoFrameBuffer interface {
	// Type reports the concrete pixel layout.
	Type() BufferType
	Width() int
	Height() int

	// ToI420 returns the buffer in the canonical I420 layout. Layouts that
	// already carry I420 planes are aliased; all others are converted into
	// fresh storage. The caller owns the result.
	ToI420() (*I420Buffer, error)

	// Native views. Each succeeds only when the buffer already has that
	// layout, returning a new handle on the same storage; otherwise the error
	// wraps ErrUnsupportedConversion.
	GetI420() (*I420Buffer, error)
	GetI420A() (*I420ABuffer, error)
	GetI422() (*I422Buffer, error)
	GetI444() (*I444Buffer, error)
	GetI010() (*I010Buffer, error)
	GetNV12() (*NV12Buffer, error)

	// Retain returns a new handle sharing this buffer's storage.
	Retain() VideoFrameBuffer

	// Transfer moves ownership to a new handle and invalidates this one.
	Transfer() VideoFrameBuffer

	// Release gives up this handle's ownership. A second call returns ErrBufferReleased.
	Release() error

	// IsExclusive reports whether this handle is the only owner of its storage.
	IsExclusive() bool
}

// PlanarYuvBuffer is the capability shared by layouts with separate Y, U and V planes.
// Strides are in bytes.
type PlanarYuvBuffer interface {
	VideoFrameBuffer
	ChromaWidth() int
	ChromaHeight() int
	StrideY() int
	StrideU() int
	StrideV() int
}

// PlanarYuv8Buffer is a planar buffer with 8-bit samples.
type PlanarYuv8Buffer interface {
	PlanarYuvBuffer
	DataY() []byte
	DataU() []byte
	DataV() []byte
}

// PlanarYuv16BBuffer is a planar buffer with 16-bit samples. The element
// stride of each plane is its byte stride divided by two.
type PlanarYuv16BBuffer interface {
	PlanarYuvBuffer
	DataY() []uint16
	DataU() []uint16
	DataV() []uint16
}

// BiplanarYuvBuffer is the capability of layouts with a Y plane and one
// interleaved chroma plane.
type BiplanarYuvBuffer interface {
	VideoFrameBuffer
	ChromaWidth() int
	ChromaHeight() int
	StrideY() int
	StrideUV() int
}

// BiplanarYuv8Buffer is a biplanar buffer with 8-bit samples.
type BiplanarYuv8Buffer interface {
	BiplanarYuvBuffer
	DataY() []byte
	DataUV() []byte
}

// bufferHandle carries what every concrete buffer shares: its storage
// reference, its dimensions and whether this particular handle is spent.
type bufferHandle struct {
	st       *storage
	kind     BufferType
	width    int
	height   int
	released atomic.Bool
}

func (h *bufferHandle) Type() BufferType { return h.kind }
func (h *bufferHandle) Width() int       { return h.width }
func (h *bufferHandle) Height() int      { return h.height }

// check panics when the handle has been released or transferred.
func (h *bufferHandle) check() {
	if h.released.Load() {
		panic(ErrBufferReleased)
	}
}

// Release implements VideoFrameBuffer.Release.
func (h *bufferHandle) Release() error {
	if !h.released.CompareAndSwap(false, true) {
		return ErrBufferReleased
	}
	return h.st.release()
}

// IsExclusive implements VideoFrameBuffer.IsExclusive. A released handle owns nothing.
func (h *bufferHandle) IsExclusive() bool {
	return !h.released.Load() && h.st.exclusive()
}

// retainStorage adds an owner for a new handle about to be built on h's storage.
func (h *bufferHandle) retainStorage() *storage {
	h.check()
	h.st.retain()
	return h.st
}

// transferStorage spends h and hands its ownership to the caller unchanged.
func (h *bufferHandle) transferStorage() *storage {
	if !h.released.CompareAndSwap(false, true) {
		panic(ErrBufferReleased)
	}
	return h.st
}

// unsupported builds the error for a native view of another layout. Each
// concrete buffer overrides the Get method of its own layout.
func (h *bufferHandle) unsupported(target BufferType) error {
	if h.released.Load() {
		return ErrBufferReleased
	}
	return fmt.Errorf("%w: %s buffer has no %s view", ErrUnsupportedConversion, h.kind, target)
}

func (h *bufferHandle) GetI420() (*I420Buffer, error)   { return nil, h.unsupported(BufferTypeI420) }
func (h *bufferHandle) GetI420A() (*I420ABuffer, error) { return nil, h.unsupported(BufferTypeI420A) }
func (h *bufferHandle) GetI422() (*I422Buffer, error)   { return nil, h.unsupported(BufferTypeI422) }
func (h *bufferHandle) GetI444() (*I444Buffer, error)   { return nil, h.unsupported(BufferTypeI444) }
func (h *bufferHandle) GetI010() (*I010Buffer, error)   { return nil, h.unsupported(BufferTypeI010) }
func (h *bufferHandle) GetNV12() (*NV12Buffer, error)   { return nil, h.unsupported(BufferTypeNV12) }

// viewReady reports ErrBufferReleased for a spent handle so matching views fail cleanly.
func (h *bufferHandle) viewReady() error {
	if h.released.Load() {
		return ErrBufferReleased
	}
	return nil
}

func mismatch(b VideoFrameBuffer, want BufferType) error {
	if b == nil {
		return ErrNilBuffer
	}
	return fmt.Errorf("%w: buffer is %s, not %s", ErrBufferTypeMismatch, b.Type(), want)
}

// AsI420 returns b as an *I420Buffer. The handle is the same; no ownership changes.
func AsI420(b VideoFrameBuffer) (*I420Buffer, error) {
	if v, ok := b.(*I420Buffer); ok {
		if v == nil {
			return nil, ErrNilBuffer
		}
		return v, nil
	}
	return nil, mismatch(b, BufferTypeI420)
}

// AsI420A returns b as an *I420ABuffer.
func AsI420A(b VideoFrameBuffer) (*I420ABuffer, error) {
	if v, ok := b.(*I420ABuffer); ok {
		if v == nil {
			return nil, ErrNilBuffer
		}
		return v, nil
	}
	return nil, mismatch(b, BufferTypeI420A)
}

// AsI422 returns b as an *I422Buffer.
func AsI422(b VideoFrameBuffer) (*I422Buffer, error) {
	if v, ok := b.(*I422Buffer); ok {
		if v == nil {
			return nil, ErrNilBuffer
		}
		return v, nil
	}
	return nil, mismatch(b, BufferTypeI422)
}

// AsI444 returns b as an *I444Buffer.
func AsI444(b VideoFrameBuffer) (*I444Buffer, error) {
	if v, ok := b.(*I444Buffer); ok {
		if v == nil {
			return nil, ErrNilBuffer
		}
		return v, nil
	}
	return nil, mismatch(b, BufferTypeI444)
}

// AsI010 returns b as an *I010Buffer.
func AsI010(b VideoFrameBuffer) (*I010Buffer, error) {
	if v, ok := b.(*I010Buffer); ok {
		if v == nil {
			return nil, ErrNilBuffer
		}
		return v, nil
	}
	return nil, mismatch(b, BufferTypeI010)
}

// AsNV12 returns b as an *NV12Buffer.
func AsNV12(b VideoFrameBuffer) (*NV12Buffer, error) {
	if v, ok := b.(*NV12Buffer); ok {
		if v == nil {
			return nil, ErrNilBuffer
		}
		return v, nil
	}
	return nil, mismatch(b, BufferTypeNV12)
}

// AsNative returns b as a *NativeBuffer.
func AsNative(b VideoFrameBuffer) (*NativeBuffer, error) {
	if v, ok := b.(*NativeBuffer); ok {
		if v == nil {
			return nil, ErrNilBuffer
		}
		return v, nil
	}
	return nil, mismatch(b, BufferTypeNative)
}
