package main

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/opd-ai/framebuffer/factory"
	"github.com/opd-ai/framebuffer/interfaces"
	"github.com/opd-ai/framebuffer/video"
)

func TestFramebufNewAndRelease(t *testing.T) {
	tests := []struct {
		name   string
		kind   video.BufferType
		planes int32
	}{
		{name: "i420", kind: video.BufferTypeI420, planes: 3},
		{name: "i420a", kind: video.BufferTypeI420A, planes: 4},
		{name: "i422", kind: video.BufferTypeI422, planes: 3},
		{name: "i444", kind: video.BufferTypeI444, planes: 3},
		{name: "i010", kind: video.BufferTypeI010, planes: 3},
		{name: "nv12", kind: video.BufferTypeNV12, planes: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := framebuf_new(int32(tt.kind), 16, 8)
			if p == nil {
				t.Fatal("framebuf_new returned nil")
			}
			if got := framebuf_type(p); got != int32(tt.kind) {
				t.Errorf("type = %d, want %d", got, tt.kind)
			}
			if framebuf_width(p) != 16 || framebuf_height(p) != 8 {
				t.Errorf("unexpected size %dx%d", framebuf_width(p), framebuf_height(p))
			}
			if got := framebuf_plane_count(p); got != tt.planes {
				t.Errorf("plane count = %d, want %d", got, tt.planes)
			}
			for i := int32(0); i < tt.planes; i++ {
				if framebuf_data(p, i) == nil {
					t.Errorf("plane %d has no data", i)
				}
				if framebuf_stride(p, i) <= 0 || framebuf_plane_size(p, i) <= 0 {
					t.Errorf("plane %d has empty layout", i)
				}
			}
			if framebuf_data(p, tt.planes) != nil {
				t.Error("out of range plane should be nil")
			}
			if !framebuf_release(p) {
				t.Error("first release should succeed")
			}
		})
	}
}

func TestFramebufInvalidInput(t *testing.T) {
	if p := framebuf_new(int32(video.BufferTypeI420), 0, 8); p != nil {
		framebuf_release(p)
		t.Error("zero width should fail")
	}
	if p := framebuf_new(int32(video.BufferTypeNative), 8, 8); p != nil {
		framebuf_release(p)
		t.Error("native buffers cannot be allocated")
	}
	if framebuf_type(nil) != -1 {
		t.Error("nil handle should report type -1")
	}
	if framebuf_release(nil) {
		t.Error("releasing nil should fail")
	}
}

func TestFramebufDoubleRelease(t *testing.T) {
	p := framebuf_new_i420(4, 4)
	if p == nil {
		t.Fatal("framebuf_new_i420 returned nil")
	}
	if !framebuf_release(p) {
		t.Fatal("first release should succeed")
	}
	if framebuf_release(p) {
		t.Error("second release should report failure")
	}
}

func TestFramebufRetainSharesStorage(t *testing.T) {
	p := framebuf_new_i420(8, 8)
	if !framebuf_is_exclusive(p) {
		t.Error("fresh buffer should be exclusive")
	}

	q := framebuf_retain(p)
	if q == nil {
		t.Fatal("framebuf_retain returned nil")
	}
	if framebuf_is_exclusive(p) || framebuf_is_exclusive(q) {
		t.Error("retained buffers should not be exclusive")
	}
	if framebuf_data(p, 0) != framebuf_data(q, 0) {
		t.Error("retained handle should share plane memory")
	}

	framebuf_release(p)
	if !framebuf_is_exclusive(q) {
		t.Error("remaining handle should be exclusive")
	}
	framebuf_release(q)
}

func TestFramebufViews(t *testing.T) {
	p := framebuf_new(int32(video.BufferTypeNV12), 8, 8)
	defer framebuf_release(p)

	if v := framebuf_get_view(p, int32(video.BufferTypeI420)); v != nil {
		framebuf_release(v)
		t.Error("NV12 has no I420 view")
	}

	v := framebuf_get_view(p, int32(video.BufferTypeNV12))
	if v == nil {
		t.Fatal("NV12 view of NV12 should succeed")
	}
	if framebuf_data(v, 1) != framebuf_data(p, 1) {
		t.Error("view should alias the source")
	}
	framebuf_release(v)

	i420 := framebuf_to_i420(p)
	if i420 == nil {
		t.Fatal("framebuf_to_i420 returned nil")
	}
	if framebuf_type(i420) != int32(video.BufferTypeI420) {
		t.Errorf("converted type = %d", framebuf_type(i420))
	}
	if framebuf_data(i420, 0) == framebuf_data(p, 0) {
		t.Error("NV12 conversion should produce new storage")
	}
	framebuf_release(i420)
}

func TestFramebufCopyAndChecksum(t *testing.T) {
	p := framebuf_new_i420(5, 3)
	defer framebuf_release(p)

	y := unsafe.Slice((*byte)(framebuf_data(p, 0)), framebuf_plane_size(p, 0))
	for i := range y {
		y[i] = byte(i * 7)
	}

	c := framebuf_copy(p)
	if c == nil {
		t.Fatal("framebuf_copy returned nil")
	}
	defer framebuf_release(c)

	if framebuf_data(c, 0) == framebuf_data(p, 0) {
		t.Error("copy should not alias the source")
	}

	var a, b [video.ChecksumSize]byte
	if n := framebuf_checksum(p, unsafe.Pointer(&a[0]), len(a)); n != video.ChecksumSize {
		t.Fatalf("checksum wrote %d bytes", n)
	}
	framebuf_checksum(c, unsafe.Pointer(&b[0]), len(b))
	if a != b {
		t.Error("copy should have identical content")
	}

	if framebuf_checksum(p, unsafe.Pointer(&a[0]), 4) != -1 {
		t.Error("short output buffer should fail")
	}
}

func TestPlaneAllocatorServesBuffers(t *testing.T) {
	ba, err := newPlaneAllocator(factory.NewAllocatorFactory())
	if err != nil {
		t.Fatalf("newPlaneAllocator: %v", err)
	}
	buf, err := ba.NewI420(32, 16)
	if err != nil {
		t.Fatalf("NewI420 with %s allocator: %v", ba.Allocator().Name(), err)
	}
	buf.MutableDataY()[0] = 0x10
	if err := buf.Release(); err != nil {
		t.Errorf("Release: %v", err)
	}
}

func TestCAllocator(t *testing.T) {
	var a cAllocator
	if _, err := a.Allocate(0); !errors.Is(err, interfaces.ErrInvalidAllocationSize) {
		t.Errorf("zero size error = %v", err)
	}

	buf, err := a.Allocate(64)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if len(buf) != 64 {
		t.Fatalf("len = %d, want 64", len(buf))
	}
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("byte %d = %d, want zeroed memory", i, v)
		}
	}
	buf[63] = 0xff
	if err := a.Free(buf); err != nil {
		t.Errorf("Free: %v", err)
	}
	if err := a.Free(nil); err != nil {
		t.Errorf("Free(nil): %v", err)
	}

	ba, err := video.NewBufferAllocator(a)
	if err != nil {
		t.Fatalf("NewBufferAllocator: %v", err)
	}
	nv12, err := ba.NewNV12(16, 8)
	if err != nil {
		t.Fatalf("NewNV12: %v", err)
	}
	if err := nv12.Release(); err != nil {
		t.Errorf("Release: %v", err)
	}
}
