package ffi

import (
	"testing"

	"github.com/opd-ai/framebuffer/real"
	fbtesting "github.com/opd-ai/framebuffer/testing"
	"github.com/opd-ai/framebuffer/video"
	"github.com/stretchr/testify/require"
)

func newTrackedAllocator(t *testing.T) (*video.BufferAllocator, *fbtesting.TrackingAllocator) {
	t.Helper()
	tracker := fbtesting.NewTrackingAllocator(real.NewHeapAllocator())
	alloc, err := video.NewBufferAllocator(tracker)
	require.NoError(t, err)
	return alloc, tracker
}

func newI420(t *testing.T, alloc *video.BufferAllocator, w, h int) *video.I420Buffer {
	t.Helper()
	b, err := alloc.NewI420(w, h)
	require.NoError(t, err)
	return b
}
