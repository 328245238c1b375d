package main

/*
#include <stdint.h>
#include <stdbool.h>

// Buffer layouts. Values match video.BufferType.
typedef enum FRAMEBUF_TYPE {
    FRAMEBUF_TYPE_NATIVE = 0,
    FRAMEBUF_TYPE_I420 = 1,
    FRAMEBUF_TYPE_I420A = 2,
    FRAMEBUF_TYPE_I422 = 3,
    FRAMEBUF_TYPE_I444 = 4,
    FRAMEBUF_TYPE_I010 = 5,
    FRAMEBUF_TYPE_NV12 = 6,
} FRAMEBUF_TYPE;

typedef struct Framebuf Framebuf;
*/
import "C"

import (
	"sync"
	"unsafe"

	pointer "github.com/mattn/go-pointer"
	"github.com/opd-ai/framebuffer/factory"
	"github.com/opd-ai/framebuffer/ffi"
	"github.com/opd-ai/framebuffer/video"
	"github.com/sirupsen/logrus"
)

func main() {} // Required for c-shared build mode

var (
	// handleMutex makes lookup and Unref of a handle one step, so a double
	// release from C is detected instead of freeing the handle twice.
	handleMutex sync.Mutex

	allocOnce sync.Once
	allocator *video.BufferAllocator
	allocErr  error
)

// bufferAllocator returns the allocator shared by all C callers. Plane memory
// never comes from the Go heap, so pointers returned to C stay valid.
func bufferAllocator() (*video.BufferAllocator, error) {
	allocOnce.Do(func() {
		allocator, allocErr = newPlaneAllocator(factory.NewAllocatorFactory())
		if allocErr != nil {
			logrus.WithFields(logrus.Fields{
				"function": "bufferAllocator",
				"error":    allocErr.Error(),
			}).Error("Failed to create C API buffer allocator")
		}
	})
	return allocator, allocErr
}

// newHandle hands one owner of b to C.
func newHandle(b video.VideoFrameBuffer) unsafe.Pointer {
	return pointer.Save(b)
}

// lookup resolves a C handle. It returns nil for null or released handles.
func lookup(p unsafe.Pointer) video.VideoFrameBuffer {
	if p == nil {
		return nil
	}
	handleMutex.Lock()
	defer handleMutex.Unlock()
	b, _ := pointer.Restore(p).(video.VideoFrameBuffer)
	return b
}

//export framebuf_new
func framebuf_new(kind, width, height int32) unsafe.Pointer {
	alloc, err := bufferAllocator()
	if err != nil {
		return nil
	}
	b, err := alloc.New(video.BufferType(kind), int(width), int(height))
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "framebuf_new",
			"kind":     kind,
			"width":    width,
			"height":   height,
			"error":    err.Error(),
		}).Error("Failed to allocate buffer")
		return nil
	}
	return newHandle(b)
}

//export framebuf_new_i420
func framebuf_new_i420(width, height int32) unsafe.Pointer {
	return framebuf_new(int32(video.BufferTypeI420), width, height)
}

//export framebuf_type
func framebuf_type(p unsafe.Pointer) int32 {
	b := lookup(p)
	if b == nil {
		return -1
	}
	return int32(b.Type())
}

//export framebuf_width
func framebuf_width(p unsafe.Pointer) int32 {
	b := lookup(p)
	if b == nil {
		return 0
	}
	return int32(b.Width())
}

//export framebuf_height
func framebuf_height(p unsafe.Pointer) int32 {
	b := lookup(p)
	if b == nil {
		return 0
	}
	return int32(b.Height())
}

// framebuf_to_i420 returns a new I420 handle the caller must release.
//
//export framebuf_to_i420
func framebuf_to_i420(p unsafe.Pointer) unsafe.Pointer {
	b := lookup(p)
	if b == nil {
		return nil
	}
	out, err := b.ToI420()
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "framebuf_to_i420",
			"type":     b.Type().String(),
			"error":    err.Error(),
		}).Warn("Failed to convert buffer to I420")
		return nil
	}
	return newHandle(out)
}

// framebuf_get_view returns a handle on the same storage when the buffer
// already has the requested layout, or NULL.
//
//export framebuf_get_view
func framebuf_get_view(p unsafe.Pointer, kind int32) unsafe.Pointer {
	b := lookup(p)
	if b == nil {
		return nil
	}

	var view video.VideoFrameBuffer
	switch video.BufferType(kind) {
	case video.BufferTypeI420:
		if v, err := b.GetI420(); err == nil {
			view = v
		}
	case video.BufferTypeI420A:
		if v, err := b.GetI420A(); err == nil {
			view = v
		}
	case video.BufferTypeI422:
		if v, err := b.GetI422(); err == nil {
			view = v
		}
	case video.BufferTypeI444:
		if v, err := b.GetI444(); err == nil {
			view = v
		}
	case video.BufferTypeI010:
		if v, err := b.GetI010(); err == nil {
			view = v
		}
	case video.BufferTypeNV12:
		if v, err := b.GetNV12(); err == nil {
			view = v
		}
	}
	if view == nil {
		return nil
	}
	return newHandle(view)
}

//export framebuf_plane_count
func framebuf_plane_count(p unsafe.Pointer) int32 {
	b := lookup(p)
	if b == nil {
		return 0
	}
	info, err := ffi.NewBufferInfo(b)
	if err != nil {
		return 0
	}
	return int32(len(info.Planes))
}

//export framebuf_stride
func framebuf_stride(p unsafe.Pointer, plane int32) int32 {
	b := lookup(p)
	if b == nil {
		return 0
	}
	info, err := ffi.NewBufferInfo(b)
	if err != nil || plane < 0 || int(plane) >= len(info.Planes) {
		return 0
	}
	return int32(info.Planes[plane].Stride)
}

//export framebuf_plane_size
func framebuf_plane_size(p unsafe.Pointer, plane int32) int {
	b := lookup(p)
	if b == nil {
		return 0
	}
	info, err := ffi.NewBufferInfo(b)
	if err != nil || plane < 0 || int(plane) >= len(info.Planes) {
		return 0
	}
	return info.Planes[plane].Size
}

// framebuf_data returns a read-only pointer to a plane. It stays valid until
// the last handle on the storage is released.
//
//export framebuf_data
func framebuf_data(p unsafe.Pointer, plane int32) unsafe.Pointer {
	b := lookup(p)
	if b == nil {
		return nil
	}
	data := planeBytes(b, int(plane))
	if len(data) == 0 {
		return nil
	}
	return unsafe.Pointer(unsafe.SliceData(data))
}

// planeBytes returns plane i of b as bytes, in the order ffi.NewBufferInfo
// lists them.
func planeBytes(b video.VideoFrameBuffer, i int) []byte {
	var planes [][]byte
	switch v := b.(type) {
	case *video.I420ABuffer:
		planes = [][]byte{v.DataY(), v.DataU(), v.DataV(), v.DataA()}
	case video.PlanarYuv8Buffer:
		planes = [][]byte{v.DataY(), v.DataU(), v.DataV()}
	case video.PlanarYuv16BBuffer:
		planes = [][]byte{asBytes(v.DataY()), asBytes(v.DataU()), asBytes(v.DataV())}
	case video.BiplanarYuv8Buffer:
		planes = [][]byte{v.DataY(), v.DataUV()}
	}
	if i < 0 || i >= len(planes) {
		return nil
	}
	return planes[i]
}

func asBytes(s []uint16) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), len(s)*2)
}

//export framebuf_retain
func framebuf_retain(p unsafe.Pointer) unsafe.Pointer {
	b := lookup(p)
	if b == nil {
		return nil
	}
	return newHandle(b.Retain())
}

//export framebuf_is_exclusive
func framebuf_is_exclusive(p unsafe.Pointer) bool {
	b := lookup(p)
	return b != nil && b.IsExclusive()
}

// framebuf_release gives up the C side's ownership. It returns false for a
// null, unknown or already released handle.
//
//export framebuf_release
func framebuf_release(p unsafe.Pointer) bool {
	if p == nil {
		return false
	}

	handleMutex.Lock()
	b, ok := pointer.Restore(p).(video.VideoFrameBuffer)
	if ok {
		pointer.Unref(p)
	}
	handleMutex.Unlock()

	if !ok {
		logrus.WithFields(logrus.Fields{
			"function": "framebuf_release",
		}).Warn("Release of unknown or already released buffer handle")
		return false
	}
	if err := b.Release(); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "framebuf_release",
			"error":    err.Error(),
		}).Warn("Failed to release buffer")
		return false
	}
	return true
}

// framebuf_copy returns an exclusive deep copy of the buffer.
//
//export framebuf_copy
func framebuf_copy(p unsafe.Pointer) unsafe.Pointer {
	b := lookup(p)
	if b == nil {
		return nil
	}
	alloc, err := bufferAllocator()
	if err != nil {
		return nil
	}
	out, err := alloc.Copy(b)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "framebuf_copy",
			"type":     b.Type().String(),
			"error":    err.Error(),
		}).Warn("Failed to copy buffer")
		return nil
	}
	return newHandle(out)
}

// framebuf_checksum writes the 32-byte content digest to out and returns the
// number of bytes written, or -1 on error.
//
//export framebuf_checksum
func framebuf_checksum(p unsafe.Pointer, out unsafe.Pointer, outLen int) int {
	b := lookup(p)
	if b == nil || out == nil || outLen < video.ChecksumSize {
		return -1
	}
	sum, err := video.Checksum(b)
	if err != nil {
		return -1
	}
	return copy(unsafe.Slice((*byte)(out), outLen), sum[:])
}
