package main

/*
#include <stdlib.h>
*/
import "C"

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/opd-ai/framebuffer/interfaces"
)

// errCAllocFailed is returned when the C heap cannot satisfy a request.
var errCAllocFailed = errors.New("C heap allocation failed")

// cAllocator serves plane memory from the C heap. It backs the C API where
// anonymous mappings are unavailable.
type cAllocator struct{}

func (cAllocator) Allocate(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", interfaces.ErrInvalidAllocationSize, size)
	}
	p := C.calloc(1, C.size_t(size))
	if p == nil {
		return nil, fmt.Errorf("%w: %d bytes", errCAllocFailed, size)
	}
	return unsafe.Slice((*byte)(p), size), nil
}

func (cAllocator) Free(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	C.free(unsafe.Pointer(unsafe.SliceData(buf)))
	return nil
}

func (cAllocator) Name() string { return "cheap" }
