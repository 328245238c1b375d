// Package ffi exposes pixel buffers to callers on the far side of a language
// boundary, where only integer handles and flat descriptors can travel.
//
// # Handles
//
// A [Registry] owns buffers on behalf of the foreign side. Storing a buffer
// makes the registry one of its owners and yields a [HandleID]:
//
//	id, err := registry.Store(buf)        // registry now owns buf
//	view, err := registry.Retrieve(id)    // extra owner, caller releases
//	buf, err = registry.Take(id)          // ownership back to the caller
//	err = registry.Drop(id)               // registry releases its ownership
//
// Dropping an unknown or already dropped id returns ErrUnknownHandle, so a
// foreign double free is reported instead of corrupting the reference count.
//
// # Descriptors
//
// [NewBufferInfo] flattens a buffer's type, dimensions and per-plane strides
// and sizes into a [BufferInfo] that can be serialized or copied into C
// structs.
//
// # Streams
//
// [VideoStream] drains a channel of frames, stores each buffer in a registry
// and sends a [FrameReceived] event carrying the new handle to an
// [EventSink]. When the channel closes or the stream is closed it sends
// [EOS]. If an event cannot be delivered the stored handle is dropped so the
// frame does not leak. Forwarded and dropped frames are counted through the
// metrics package under the stream name.
package ffi
