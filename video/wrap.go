package video

import (
	"fmt"

	"github.com/opd-ai/framebuffer/limits"
)

// WrapI420 builds an I420 buffer over producer-owned planes without copying.
// Each plane must hold at least stride*rows bytes. release, if non-nil, runs
// exactly once when the last handle is released; until then the producer
// must not reuse the memory.
func WrapI420(w, h int, y, u, v []byte, strideY, strideU, strideV int, release func()) (*I420Buffer, error) {
	if err := limits.ValidateDimensions(w, h); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDimensions, err)
	}
	cw, ch := chromaSize(BufferTypeI420, w, h)
	if err := validateStrides(w, cw, strideY, strideU, strideV); err != nil {
		return nil, err
	}
	y, err := fitPlane("Y", y, strideY, h)
	if err != nil {
		return nil, err
	}
	u, err = fitPlane("U", u, strideU, ch)
	if err != nil {
		return nil, err
	}
	v, err = fitPlane("V", v, strideV, ch)
	if err != nil {
		return nil, err
	}

	st := newStorage(nil, nil, releaseFunc(release))
	return newI420(st, w, h, planarFrom(y, u, v, BufferTypeI420, w, h, strideY, strideU, strideV)), nil
}

// WrapNV12 builds an NV12 buffer over producer-owned planes without copying.
func WrapNV12(w, h int, y, uv []byte, strideY, strideUV int, release func()) (*NV12Buffer, error) {
	if err := limits.ValidateDimensions(w, h); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDimensions, err)
	}
	cw, ch := chromaSize(BufferTypeNV12, w, h)
	if err := limits.ValidateStride(strideY, w); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidStride, err)
	}
	if err := limits.ValidateStride(strideUV, cw*2); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidStride, err)
	}
	y, err := fitPlane("Y", y, strideY, h)
	if err != nil {
		return nil, err
	}
	uv, err = fitPlane("UV", uv, strideUV, ch)
	if err != nil {
		return nil, err
	}

	st := newStorage(nil, nil, releaseFunc(release))
	return newNV12(st, w, h, y, uv, strideY, strideUV), nil
}

// fitPlane trims a producer plane to stride*rows bytes.
func fitPlane(name string, plane []byte, stride, rows int) ([]byte, error) {
	need := stride * rows
	if len(plane) < need {
		return nil, fmt.Errorf("%w: %s plane has %d bytes, need %d", ErrPlaneTooSmall, name, len(plane), need)
	}
	return plane[:need:need], nil
}
