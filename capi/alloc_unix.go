//go:build unix

package main

import (
	"github.com/opd-ai/framebuffer/factory"
	"github.com/opd-ai/framebuffer/interfaces"
	"github.com/opd-ai/framebuffer/video"
)

// newPlaneAllocator backs C API buffers with anonymous mappings.
func newPlaneAllocator(f *factory.AllocatorFactory) (*video.BufferAllocator, error) {
	config := f.GetCurrentConfig()
	config.Kind = interfaces.AllocatorMmap
	return f.CreateBufferAllocatorWithConfig(config)
}
