package ffi

import "github.com/opd-ai/framebuffer/video"

// PlaneInfo describes one plane of a buffer. Stride and Size are in bytes.
type PlaneInfo struct {
	Stride int `json:"stride"`
	Width  int `json:"width"`
	Height int `json:"height"`
	Size   int `json:"size"`
}

// BufferInfo describes a buffer's layout so a foreign consumer can read its
// planes without knowing the Go types. Native buffers carry no planes.
type BufferInfo struct {
	Type   video.BufferType `json:"type"`
	Width  int              `json:"width"`
	Height int              `json:"height"`
	Planes []PlaneInfo      `json:"planes"`
}

func plane(stride, width, height int) PlaneInfo {
	return PlaneInfo{Stride: stride, Width: width, Height: height, Size: stride * height}
}

// NewBufferInfo builds the descriptor for b. Planes are listed in memory
// order: Y, U, V (and A for I420A), or Y, UV for NV12.
func NewBufferInfo(b video.VideoFrameBuffer) (BufferInfo, error) {
	if b == nil {
		return BufferInfo{}, video.ErrNilBuffer
	}
	info := BufferInfo{
		Type:   b.Type(),
		Width:  b.Width(),
		Height: b.Height(),
	}

	switch v := b.(type) {
	case video.PlanarYuvBuffer:
		cw, ch := v.ChromaWidth(), v.ChromaHeight()
		info.Planes = []PlaneInfo{
			plane(v.StrideY(), v.Width(), v.Height()),
			plane(v.StrideU(), cw, ch),
			plane(v.StrideV(), cw, ch),
		}
		if a, ok := b.(*video.I420ABuffer); ok {
			info.Planes = append(info.Planes, plane(a.StrideA(), a.Width(), a.Height()))
		}
	case video.BiplanarYuvBuffer:
		info.Planes = []PlaneInfo{
			plane(v.StrideY(), v.Width(), v.Height()),
			plane(v.StrideUV(), v.ChromaWidth(), v.ChromaHeight()),
		}
	}
	return info, nil
}

// TotalSize returns the summed byte size of all planes.
func (i BufferInfo) TotalSize() int {
	n := 0
	for _, p := range i.Planes {
		n += p.Size
	}
	return n
}
