package ffi

import (
	"context"
	"fmt"
	"sync"

	"github.com/opd-ai/framebuffer/metrics"
	"github.com/opd-ai/framebuffer/video"
	"github.com/sirupsen/logrus"
)

// StreamEvent is delivered to an EventSink. It is either FrameReceived or EOS.
type StreamEvent interface {
	streamEvent()
}

// FrameReceived announces a frame whose buffer is now owned by the registry
// under Handle. The receiver is responsible for taking or dropping it.
type FrameReceived struct {
	Stream      string
	Handle      HandleID
	Info        BufferInfo
	TimestampUs int64
	Rotation    video.VideoRotation
}

// EOS is the last event of a stream.
type EOS struct {
	Stream string
}

func (FrameReceived) streamEvent() {}
func (EOS) streamEvent()           {}

// EventSink receives stream events.
type EventSink interface {
	SendEvent(ctx context.Context, ev StreamEvent) error
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(ctx context.Context, ev StreamEvent) error

// SendEvent calls f(ctx, ev).
func (f EventSinkFunc) SendEvent(ctx context.Context, ev StreamEvent) error {
	return f(ctx, ev)
}

// VideoStream forwards frames from a channel into a Registry and announces
// each one to an EventSink. It runs until the source channel closes, the
// context is canceled or Close is called, and then emits EOS.
//
// A frame received after Close may still reach the sink; receivers must
// ignore frames that arrive after EOS handling has begun on their side.
type VideoStream struct {
	name     string
	registry *Registry
	sink     EventSink
	metrics  metrics.StreamMetrics

	cancel context.CancelFunc
	done   chan struct{}

	mu     sync.Mutex
	closed bool
}

// NewVideoStream starts forwarding frames from source. Ownership of every
// frame received passes to the stream. Frames still queued on source when
// the context ends are released unforwarded.
func NewVideoStream(ctx context.Context, name string, registry *Registry, source <-chan video.VideoFrame, sink EventSink) (*VideoStream, error) {
	if registry == nil {
		return nil, fmt.Errorf("registry cannot be nil")
	}
	if source == nil {
		return nil, fmt.Errorf("source cannot be nil")
	}
	if sink == nil {
		return nil, fmt.Errorf("sink cannot be nil")
	}

	ctx, cancel := context.WithCancel(ctx)
	s := &VideoStream{
		name:     name,
		registry: registry,
		sink:     sink,
		metrics:  metrics.NewStreamMetrics(name),
		cancel:   cancel,
		done:     make(chan struct{}),
	}

	logrus.WithFields(logrus.Fields{
		"function": "NewVideoStream",
		"stream":   name,
	}).Debug("Starting video stream")

	go s.run(ctx, source)
	return s, nil
}

// Name returns the stream name used in events and metrics.
func (s *VideoStream) Name() string { return s.name }

// Done is closed after EOS has been sent.
func (s *VideoStream) Done() <-chan struct{} { return s.done }

// Close stops the stream and waits for EOS to be sent. A second call returns
// ErrStreamClosed.
func (s *VideoStream) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrStreamClosed
	}
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	<-s.done
	return nil
}

func (s *VideoStream) run(ctx context.Context, source <-chan video.VideoFrame) {
	defer close(s.done)

	for {
		select {
		case <-ctx.Done():
			s.drain(source)
			s.sendEOS(ctx)
			return
		case frame, ok := <-source:
			if !ok {
				s.sendEOS(ctx)
				return
			}
			s.forward(ctx, frame)
		}
	}
}

// forward stores one frame and announces it. Any failure leaves nothing
// behind in the registry.
func (s *VideoStream) forward(ctx context.Context, frame video.VideoFrame) {
	if frame.Buffer == nil {
		s.metrics.FramesDropped.Inc()
		return
	}

	info, err := NewBufferInfo(frame.Buffer)
	if err != nil {
		_ = frame.Release()
		s.metrics.FramesDropped.Inc()
		return
	}

	id, err := s.registry.Store(frame.Buffer)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "forward",
			"stream":   s.name,
			"error":    err.Error(),
		}).Warn("Failed to store video frame")
		s.metrics.FramesDropped.Inc()
		return
	}

	ev := FrameReceived{
		Stream:      s.name,
		Handle:      id,
		Info:        info,
		TimestampUs: frame.TimestampUs,
		Rotation:    frame.Rotation,
	}
	if err := s.sink.SendEvent(ctx, ev); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "forward",
			"stream":   s.name,
			"handle":   id,
			"error":    err.Error(),
		}).Warn("Failed to send video frame")
		_ = s.registry.Drop(id)
		s.metrics.FramesDropped.Inc()
		return
	}
	s.metrics.FramesForwarded.Inc()
}

// drain releases frames already queued on source without waiting for more.
func (s *VideoStream) drain(source <-chan video.VideoFrame) {
	dropped := 0
	for {
		select {
		case frame, ok := <-source:
			if !ok {
				s.logDrained(dropped)
				return
			}
			_ = frame.Release()
			s.metrics.FramesDropped.Inc()
			dropped++
		default:
			s.logDrained(dropped)
			return
		}
	}
}

func (s *VideoStream) logDrained(n int) {
	if n == 0 {
		return
	}
	logrus.WithFields(logrus.Fields{
		"function": "drain",
		"stream":   s.name,
		"dropped":  n,
	}).Debug("Released queued video frames")
}

func (s *VideoStream) sendEOS(ctx context.Context) {
	if err := s.sink.SendEvent(context.WithoutCancel(ctx), EOS{Stream: s.name}); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "sendEOS",
			"stream":   s.name,
			"error":    err.Error(),
		}).Warn("Failed to send video EOS")
	}

	logrus.WithFields(logrus.Fields{
		"function": "sendEOS",
		"stream":   s.name,
	}).Debug("Video stream finished")
}
