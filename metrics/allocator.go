package metrics

import (
	"github.com/opd-ai/framebuffer/interfaces"
)

// InstrumentedAllocator counts allocations, frees and live bytes of the
// allocator it wraps.
type InstrumentedAllocator struct {
	inner   interfaces.Allocator
	metrics StorageMetrics
}

// Instrument wraps inner so its activity is exported under the allocator label
// inner.Name().
func Instrument(inner interfaces.Allocator) *InstrumentedAllocator {
	return &InstrumentedAllocator{
		inner:   inner,
		metrics: NewStorageMetrics(inner.Name()),
	}
}

func (a *InstrumentedAllocator) Allocate(size int) ([]byte, error) {
	buf, err := a.inner.Allocate(size)
	if err != nil {
		a.metrics.Failures.Inc()
		return nil, err
	}
	a.metrics.Allocations.Inc()
	a.metrics.LiveBytes.Add(float64(len(buf)))
	return buf, nil
}

func (a *InstrumentedAllocator) Free(buf []byte) error {
	if buf == nil {
		return nil
	}
	if err := a.inner.Free(buf); err != nil {
		return err
	}
	a.metrics.Frees.Inc()
	a.metrics.LiveBytes.Sub(float64(len(buf)))
	return nil
}

func (a *InstrumentedAllocator) Name() string {
	return a.inner.Name()
}

// Unwrap returns the wrapped allocator
func (a *InstrumentedAllocator) Unwrap() interfaces.Allocator {
	return a.inner
}
