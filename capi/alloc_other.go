//go:build !unix

package main

import (
	"github.com/opd-ai/framebuffer/factory"
	"github.com/opd-ai/framebuffer/video"
)

// newPlaneAllocator backs C API buffers with the C heap.
func newPlaneAllocator(f *factory.AllocatorFactory) (*video.BufferAllocator, error) {
	config := f.GetCurrentConfig()
	return video.NewBufferAllocator(cAllocator{},
		video.WithStrideAlignment(config.StrideAlignment),
		video.WithMaxDimension(config.MaxDimension),
	)
}
