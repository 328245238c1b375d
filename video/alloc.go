package video

import (
	"fmt"
	"sync/atomic"

	"github.com/opd-ai/framebuffer/interfaces"
	"github.com/opd-ai/framebuffer/limits"
	"github.com/opd-ai/framebuffer/real"
)

// BufferAllocator creates buffers whose storage comes from an
// interfaces.Allocator. It is safe for concurrent use.
type BufferAllocator struct {
	alloc        interfaces.Allocator
	alignment    int
	maxDimension int
}

// AllocatorOption configures a BufferAllocator
type AllocatorOption func(*BufferAllocator)

// WithStrideAlignment rounds every row up to a multiple of n bytes.
func WithStrideAlignment(n int) AllocatorOption {
	return func(a *BufferAllocator) {
		a.alignment = n
	}
}

// WithMaxDimension caps the width and height of new buffers.
func WithMaxDimension(n int) AllocatorOption {
	return func(a *BufferAllocator) {
		a.maxDimension = n
	}
}

// NewBufferAllocator creates a buffer allocator drawing memory from alloc.
func NewBufferAllocator(alloc interfaces.Allocator, opts ...AllocatorOption) (*BufferAllocator, error) {
	if alloc == nil {
		return nil, fmt.Errorf("allocator cannot be nil")
	}
	a := &BufferAllocator{
		alloc:        alloc,
		alignment:    limits.DefaultStrideAlignment,
		maxDimension: limits.MaxFrameDimension,
	}
	for _, opt := range opts {
		opt(a)
	}
	if err := limits.ValidateAlignment(a.alignment); err != nil {
		return nil, err
	}
	if a.maxDimension < limits.MinFrameDimension || a.maxDimension > limits.MaxFrameDimension {
		return nil, fmt.Errorf("%w: %d", interfaces.ErrInvalidMaxDimension, a.maxDimension)
	}
	return a, nil
}

// Allocator returns the memory allocator behind a.
func (a *BufferAllocator) Allocator() interfaces.Allocator { return a.alloc }

// StrideAlignment returns the row alignment in bytes.
func (a *BufferAllocator) StrideAlignment() int { return a.alignment }

// MaxDimension returns the largest accepted width or height.
func (a *BufferAllocator) MaxDimension() int { return a.maxDimension }

var defaultAllocator atomic.Pointer[BufferAllocator]

func init() {
	a, err := NewBufferAllocator(real.NewPoolAllocator(false))
	if err != nil {
		panic(err)
	}
	defaultAllocator.Store(a)
}

// DefaultAllocator returns the allocator used by the package level constructors.
// Unless replaced it draws from a tiered pool with tightly packed rows.
func DefaultAllocator() *BufferAllocator {
	return defaultAllocator.Load()
}

// SetDefaultAllocator replaces the package default and returns the previous one.
// Buffers already allocated keep using the allocator that created them.
func SetDefaultAllocator(a *BufferAllocator) *BufferAllocator {
	if a == nil {
		panic("video: nil default allocator")
	}
	return defaultAllocator.Swap(a)
}

func (a *BufferAllocator) validate(w, h int) error {
	if err := limits.ValidateDimensionsWithLimit(w, h, a.maxDimension); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDimensions, err)
	}
	return nil
}

// stride returns the aligned byte stride of a row of n samples.
func (a *BufferAllocator) stride(n, sampleBytes int) int {
	return limits.AlignStride(n*sampleBytes, a.alignment)
}

// allocate obtains one block holding planes of the given byte sizes back to
// back and returns it as storage plus one slice per plane.
func (a *BufferAllocator) allocate(sizes ...int) (*storage, [][]byte, error) {
	total := 0
	for _, n := range sizes {
		total += n
	}
	raw, err := a.alloc.Allocate(total)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %d bytes from %s: %w", ErrAllocationFailed, total, a.alloc.Name(), err)
	}
	if len(raw) < total {
		_ = a.alloc.Free(raw)
		return nil, nil, fmt.Errorf("%w: %s returned %d of %d bytes", ErrAllocationFailed, a.alloc.Name(), len(raw), total)
	}

	out := make([][]byte, len(sizes))
	off := 0
	for i, n := range sizes {
		out[i] = raw[off : off+n : off+n]
		off += n
	}
	return newStorage(raw, a, a.alloc.Free), out, nil
}

// allocPlanar8 lays out Y, U, V for an 8-bit planar kind with the given strides.
func (a *BufferAllocator) allocPlanar8(kind BufferType, w, h, sy, su, sv int, extra ...int) (*storage, planes[byte], [][]byte, error) {
	_, ch := chromaSize(kind, w, h)
	sizes := append([]int{sy * h, su * ch, sv * ch}, extra...)
	st, bufs, err := a.allocate(sizes...)
	if err != nil {
		return nil, planes[byte]{}, nil, err
	}
	return st, planarFrom(bufs[0], bufs[1], bufs[2], kind, w, h, sy, su, sv), bufs[3:], nil
}

// NewI420 allocates an I420 buffer with aligned strides.
func (a *BufferAllocator) NewI420(w, h int) (*I420Buffer, error) {
	if err := a.validate(w, h); err != nil {
		return nil, err
	}
	cw, _ := chromaSize(BufferTypeI420, w, h)
	return a.NewI420WithStrides(w, h, a.stride(w, 1), a.stride(cw, 1), a.stride(cw, 1))
}

// NewI420WithStrides allocates an I420 buffer with caller chosen strides.
func (a *BufferAllocator) NewI420WithStrides(w, h, strideY, strideU, strideV int) (*I420Buffer, error) {
	if err := a.validate(w, h); err != nil {
		return nil, err
	}
	cw, _ := chromaSize(BufferTypeI420, w, h)
	if err := validateStrides(w, cw, strideY, strideU, strideV); err != nil {
		return nil, err
	}
	st, p, _, err := a.allocPlanar8(BufferTypeI420, w, h, strideY, strideU, strideV)
	if err != nil {
		return nil, err
	}
	return newI420(st, w, h, p), nil
}

// NewI420A allocates an I420A buffer. The alpha plane shares the luma stride.
func (a *BufferAllocator) NewI420A(w, h int) (*I420ABuffer, error) {
	if err := a.validate(w, h); err != nil {
		return nil, err
	}
	cw, _ := chromaSize(BufferTypeI420A, w, h)
	sy, sc := a.stride(w, 1), a.stride(cw, 1)
	st, p, extra, err := a.allocPlanar8(BufferTypeI420A, w, h, sy, sc, sc, sy*h)
	if err != nil {
		return nil, err
	}
	return newI420A(st, w, h, p, extra[0], sy), nil
}

// NewI422 allocates an I422 buffer.
func (a *BufferAllocator) NewI422(w, h int) (*I422Buffer, error) {
	if err := a.validate(w, h); err != nil {
		return nil, err
	}
	cw, _ := chromaSize(BufferTypeI422, w, h)
	sc := a.stride(cw, 1)
	st, p, _, err := a.allocPlanar8(BufferTypeI422, w, h, a.stride(w, 1), sc, sc)
	if err != nil {
		return nil, err
	}
	return newI422(st, w, h, p), nil
}

// NewI444 allocates an I444 buffer.
func (a *BufferAllocator) NewI444(w, h int) (*I444Buffer, error) {
	if err := a.validate(w, h); err != nil {
		return nil, err
	}
	s := a.stride(w, 1)
	st, p, _, err := a.allocPlanar8(BufferTypeI444, w, h, s, s, s)
	if err != nil {
		return nil, err
	}
	return newI444(st, w, h, p), nil
}

// NewI010 allocates an I010 buffer. Strides are in bytes and always even.
func (a *BufferAllocator) NewI010(w, h int) (*I010Buffer, error) {
	if err := a.validate(w, h); err != nil {
		return nil, err
	}
	cw, ch := chromaSize(BufferTypeI010, w, h)
	sy, sc := a.stride(w, 2), a.stride(cw, 2)
	st, bufs, err := a.allocate(sy*h, sc*ch, sc*ch)
	if err != nil {
		return nil, err
	}
	p := planarFrom(asUint16(bufs[0]), asUint16(bufs[1]), asUint16(bufs[2]), BufferTypeI010, w, h, sy, sc, sc)
	return newI010(st, w, h, p), nil
}

// NewNV12 allocates an NV12 buffer.
func (a *BufferAllocator) NewNV12(w, h int) (*NV12Buffer, error) {
	if err := a.validate(w, h); err != nil {
		return nil, err
	}
	cw, ch := chromaSize(BufferTypeNV12, w, h)
	sy, suv := a.stride(w, 1), a.stride(cw*2, 1)
	st, bufs, err := a.allocate(sy*h, suv*ch)
	if err != nil {
		return nil, err
	}
	return newNV12(st, w, h, bufs[0], bufs[1], sy, suv), nil
}

// New allocates an uninitialized buffer of the given layout.
func (a *BufferAllocator) New(kind BufferType, w, h int) (VideoFrameBuffer, error) {
	var (
		b   VideoFrameBuffer
		err error
	)
	switch kind {
	case BufferTypeI420:
		b, err = handleOrNil(a.NewI420(w, h))
	case BufferTypeI420A:
		b, err = handleOrNil(a.NewI420A(w, h))
	case BufferTypeI422:
		b, err = handleOrNil(a.NewI422(w, h))
	case BufferTypeI444:
		b, err = handleOrNil(a.NewI444(w, h))
	case BufferTypeI010:
		b, err = handleOrNil(a.NewI010(w, h))
	case BufferTypeNV12:
		b, err = handleOrNil(a.NewNV12(w, h))
	default:
		return nil, fmt.Errorf("%w: cannot allocate %s buffers", ErrUnsupportedConversion, kind)
	}
	return b, err
}

// handleOrNil keeps a failed constructor's typed nil out of the interface.
func handleOrNil[T VideoFrameBuffer](b T, err error) (VideoFrameBuffer, error) {
	if err != nil {
		return nil, err
	}
	return b, nil
}

func validateStrides(w, cw, strideY, strideU, strideV int) error {
	for _, c := range []struct{ stride, row int }{{strideY, w}, {strideU, cw}, {strideV, cw}} {
		if err := limits.ValidateStride(c.stride, c.row); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidStride, err)
		}
	}
	return nil
}

// NewI420Buffer allocates a w x h I420 buffer from the default allocator.
func NewI420Buffer(w, h int) (*I420Buffer, error) {
	return DefaultAllocator().NewI420(w, h)
}

// NewI420BufferWithStrides allocates an I420 buffer with padded rows.
func NewI420BufferWithStrides(w, h, strideY, strideU, strideV int) (*I420Buffer, error) {
	return DefaultAllocator().NewI420WithStrides(w, h, strideY, strideU, strideV)
}

func NewI420ABuffer(w, h int) (*I420ABuffer, error) { return DefaultAllocator().NewI420A(w, h) }
func NewI422Buffer(w, h int) (*I422Buffer, error)   { return DefaultAllocator().NewI422(w, h) }
func NewI444Buffer(w, h int) (*I444Buffer, error)   { return DefaultAllocator().NewI444(w, h) }
func NewI010Buffer(w, h int) (*I010Buffer, error)   { return DefaultAllocator().NewI010(w, h) }
func NewNV12Buffer(w, h int) (*NV12Buffer, error)   { return DefaultAllocator().NewNV12(w, h) }
