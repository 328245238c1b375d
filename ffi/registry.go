package ffi

import (
	"errors"
	"fmt"
	"sync"

	"github.com/opd-ai/framebuffer/video"
	"github.com/sirupsen/logrus"
)

var (
	// ErrUnknownHandle indicates a handle id that was never stored or has
	// already been taken or dropped.
	ErrUnknownHandle = errors.New("unknown handle")

	// ErrRegistryClosed indicates an operation on a closed registry.
	ErrRegistryClosed = errors.New("registry closed")

	// ErrStreamClosed indicates the stream has already been closed.
	ErrStreamClosed = errors.New("stream closed")
)

// HandleID identifies a buffer owned by a Registry. Zero is never issued.
type HandleID uint64

// Registry owns buffers on behalf of a foreign caller that can only hold
// integer ids. Each stored buffer counts as one owner until it is taken or
// dropped.
type Registry struct {
	mu      sync.RWMutex
	handles map[HandleID]video.VideoFrameBuffer
	nextID  HandleID
	closed  bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		handles: make(map[HandleID]video.VideoFrameBuffer),
		nextID:  1,
	}
}

// Store takes ownership of b and returns its id. If the registry is closed
// b is released and ErrRegistryClosed is returned.
func (r *Registry) Store(b video.VideoFrameBuffer) (HandleID, error) {
	if b == nil {
		return 0, video.ErrNilBuffer
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		_ = b.Release()
		return 0, ErrRegistryClosed
	}
	id := r.nextID
	r.nextID++
	r.handles[id] = b
	r.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"function": "Store",
		"handle":   id,
		"type":     b.Type().String(),
		"width":    b.Width(),
		"height":   b.Height(),
	}).Debug("Stored buffer handle")

	return id, nil
}

// Retrieve returns a new handle on the stored buffer. The registry keeps its
// own ownership; the caller must release the returned handle.
func (r *Registry) Retrieve(id HandleID) (video.VideoFrameBuffer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return nil, ErrRegistryClosed
	}
	b, ok := r.handles[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownHandle, id)
	}
	// Retaining under the read lock keeps Drop from releasing b in between.
	return b.Retain(), nil
}

// Take removes the buffer from the registry and hands its ownership back to
// the caller.
func (r *Registry) Take(id HandleID) (video.VideoFrameBuffer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrRegistryClosed
	}
	b, ok := r.handles[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownHandle, id)
	}
	delete(r.handles, id)
	return b, nil
}

// Drop removes the buffer and releases the registry's ownership of it.
func (r *Registry) Drop(id HandleID) error {
	r.mu.Lock()
	b, ok := r.handles[id]
	if ok {
		delete(r.handles, id)
	}
	closed := r.closed
	r.mu.Unlock()

	if !ok {
		if closed {
			return ErrRegistryClosed
		}
		return fmt.Errorf("%w: %d", ErrUnknownHandle, id)
	}

	logrus.WithFields(logrus.Fields{
		"function": "Drop",
		"handle":   id,
	}).Debug("Dropped buffer handle")

	return b.Release()
}

// Len returns the number of buffers currently owned by the registry.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handles)
}

// Close releases every remaining buffer. Later Store, Retrieve and Take
// calls fail with ErrRegistryClosed. Closing twice is a no-op.
func (r *Registry) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	handles := r.handles
	r.handles = make(map[HandleID]video.VideoFrameBuffer)
	r.mu.Unlock()

	var errs []error
	for id, b := range handles {
		if err := b.Release(); err != nil {
			errs = append(errs, fmt.Errorf("handle %d: %w", id, err))
		}
	}

	logrus.WithFields(logrus.Fields{
		"function": "Close",
		"released": len(handles),
		"failures": len(errs),
	}).Debug("Closed handle registry")

	return errors.Join(errs...)
}
