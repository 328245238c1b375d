package video

import (
	"fmt"

	"github.com/opd-ai/framebuffer/limits"
)

// NativeSource is implemented by producers whose frames live in memory this
// package cannot read directly, such as a GPU surface or a platform pixel
// buffer. ToI420 must return a buffer the caller owns.
type NativeSource interface {
	ToI420() (*I420Buffer, error)
}

// NativeBuffer wraps a NativeSource. Its only pixel capability is ToI420;
// every native view fails with ErrUnsupportedConversion.
type NativeBuffer struct {
	bufferHandle
	source NativeSource
}

// NewNativeBuffer wraps source as a w x h buffer. release, if non-nil, runs
// once when the last handle is released.
func NewNativeBuffer(w, h int, source NativeSource, release func()) (*NativeBuffer, error) {
	if source == nil {
		return nil, fmt.Errorf("native source: %w", ErrNilBuffer)
	}
	if err := limits.ValidateDimensions(w, h); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDimensions, err)
	}
	st := newStorage(nil, nil, releaseFunc(release))
	return newNative(st, w, h, source), nil
}

func newNative(st *storage, w, h int, source NativeSource) *NativeBuffer {
	return &NativeBuffer{
		bufferHandle: bufferHandle{st: st, kind: BufferTypeNative, width: w, height: h},
		source:       source,
	}
}

// Source returns the producer object behind the buffer.
func (b *NativeBuffer) Source() NativeSource {
	b.check()
	return b.source
}

// ToI420 delegates to the source.
func (b *NativeBuffer) ToI420() (*I420Buffer, error) {
	if err := b.viewReady(); err != nil {
		return nil, err
	}
	out, err := b.source.ToI420()
	if err != nil {
		return nil, fmt.Errorf("native to I420: %w", err)
	}
	if out == nil {
		return nil, fmt.Errorf("native to I420: %w", ErrNilBuffer)
	}
	if out.Width() != b.width || out.Height() != b.height {
		w, h := out.Width(), out.Height()
		_ = out.Release()
		return nil, fmt.Errorf("%w: native source produced %dx%d for a %dx%d buffer",
			ErrInvalidDimensions, w, h, b.width, b.height)
	}
	return out, nil
}

func (b *NativeBuffer) Retain() VideoFrameBuffer {
	return newNative(b.retainStorage(), b.width, b.height, b.source)
}

func (b *NativeBuffer) Transfer() VideoFrameBuffer {
	return newNative(b.transferStorage(), b.width, b.height, b.source)
}

// releaseFunc adapts a producer callback to the storage free hook.
func releaseFunc(release func()) func([]byte) error {
	if release == nil {
		return nil
	}
	return func([]byte) error {
		release()
		return nil
	}
}
