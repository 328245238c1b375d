// Package metrics exports prometheus counters for pixel buffer storage and
// frame forwarding.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// StorageAllocations counts storage blocks obtained per allocator.
	StorageAllocations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "framebuffer_storage_allocations_total",
		Help: "Total number of storage blocks allocated",
	}, []string{"allocator"})
	// StorageFrees counts storage blocks returned per allocator.
	StorageFrees = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "framebuffer_storage_frees_total",
		Help: "Total number of storage blocks returned to the allocator",
	}, []string{"allocator"})
	// StorageFailures counts allocation requests that returned an error.
	StorageFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "framebuffer_storage_allocation_failures_total",
		Help: "Total number of failed storage allocations",
	}, []string{"allocator"})
	// StorageLiveBytes tracks bytes currently held per allocator.
	StorageLiveBytes = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "framebuffer_storage_live_bytes",
		Help: "Bytes of storage currently allocated and not yet freed",
	}, []string{"allocator"})

	// FramesForwarded counts frames delivered per stream name.
	FramesForwarded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "framebuffer_stream_frames_forwarded_total",
		Help: "Total number of frames handed across the ownership boundary",
	}, []string{"name"})
	// FramesDropped counts frames released without delivery per stream name.
	FramesDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "framebuffer_stream_frames_dropped_total",
		Help: "Total number of frames released without reaching the receiver",
	}, []string{"name"})
)

// StorageMetrics holds the storage series bound to one allocator label.
type StorageMetrics struct {
	Allocations prometheus.Counter
	Frees       prometheus.Counter
	Failures    prometheus.Counter
	LiveBytes   prometheus.Gauge
}

// NewStorageMetrics binds the storage series to allocator and initializes the
// counters so they are exported before the first allocation.
func NewStorageMetrics(allocator string) StorageMetrics {
	s := StorageMetrics{
		Allocations: StorageAllocations.WithLabelValues(allocator),
		Frees:       StorageFrees.WithLabelValues(allocator),
		Failures:    StorageFailures.WithLabelValues(allocator),
		LiveBytes:   StorageLiveBytes.WithLabelValues(allocator),
	}
	s.Allocations.Add(0)
	s.Frees.Add(0)
	s.Failures.Add(0)
	return s
}

// StreamMetrics holds the forwarding series bound to one stream name.
type StreamMetrics struct {
	FramesForwarded prometheus.Counter
	FramesDropped   prometheus.Counter
}

// NewStreamMetrics binds the forwarding series to the stream name.
func NewStreamMetrics(name string) StreamMetrics {
	s := StreamMetrics{
		FramesForwarded: FramesForwarded.WithLabelValues(name),
		FramesDropped:   FramesDropped.WithLabelValues(name),
	}
	s.FramesForwarded.Add(0)
	s.FramesDropped.Add(0)
	return s
}

// Handler serves the default prometheus registry. It is usually mounted at
// /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
