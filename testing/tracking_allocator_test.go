package testing

import (
	"errors"
	"sync"
	"testing"

	"github.com/opd-ai/framebuffer/interfaces"
	"github.com/opd-ai/framebuffer/real"
)

var _ interfaces.Allocator = (*TrackingAllocator)(nil)

func newTestTracker() *TrackingAllocator {
	return NewTrackingAllocator(real.NewHeapAllocator())
}

func TestNewTrackingAllocator(t *testing.T) {
	tr := newTestTracker()
	if tr.Name() != interfaces.AllocatorTracking {
		t.Errorf("expected name %q, got %q", interfaces.AllocatorTracking, tr.Name())
	}
	if tr.Live() != 0 || tr.LiveBytes() != 0 {
		t.Error("new tracker should have no live allocations")
	}
	if len(tr.GetAllocationLog()) != 0 {
		t.Error("new tracker should have an empty log")
	}
}

func TestTrackingAllocateFree(t *testing.T) {
	tr := newTestTracker()

	a, err := tr.Allocate(384)
	if err != nil {
		t.Fatalf("Allocate failed: %v", err)
	}
	b, err := tr.Allocate(96)
	if err != nil {
		t.Fatalf("Allocate failed: %v", err)
	}

	if tr.Live() != 2 {
		t.Errorf("expected 2 live allocations, got %d", tr.Live())
	}
	if tr.LiveBytes() != 480 {
		t.Errorf("expected 480 live bytes, got %d", tr.LiveBytes())
	}

	if err := tr.Free(a); err != nil {
		t.Fatalf("Free failed: %v", err)
	}
	leaks := tr.Leaks()
	if len(leaks) != 1 || leaks[0].Size != 96 {
		t.Errorf("expected single 96 byte leak, got %+v", leaks)
	}

	if err := tr.Free(b); err != nil {
		t.Fatalf("Free failed: %v", err)
	}

	stats := tr.Stats()
	if stats.Allocations != 2 || stats.Frees != 2 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.LiveBytes != 0 {
		t.Errorf("expected 0 live bytes, got %d", stats.LiveBytes)
	}
	if stats.PeakLiveBytes != 480 {
		t.Errorf("expected peak 480, got %d", stats.PeakLiveBytes)
	}
	if len(tr.Leaks()) != 0 {
		t.Error("expected no leaks")
	}
}

func TestTrackingDoubleFree(t *testing.T) {
	tr := newTestTracker()
	buf, err := tr.Allocate(16)
	if err != nil {
		t.Fatalf("Allocate failed: %v", err)
	}

	if err := tr.Free(buf); err != nil {
		t.Fatalf("first Free failed: %v", err)
	}
	if err := tr.Free(buf); !errors.Is(err, ErrDoubleFree) {
		t.Errorf("expected ErrDoubleFree, got %v", err)
	}
	if tr.Stats().Frees != 1 {
		t.Errorf("double free must not be counted, got %d frees", tr.Stats().Frees)
	}
}

func TestTrackingUnknownAllocation(t *testing.T) {
	tr := newTestTracker()
	foreign := make([]byte, 8)
	if err := tr.Free(foreign); !errors.Is(err, ErrUnknownAllocation) {
		t.Errorf("expected ErrUnknownAllocation, got %v", err)
	}
	if err := tr.Free(nil); err != nil {
		t.Errorf("Free(nil) should be a no-op, got %v", err)
	}
}

func TestTrackingFailAllocations(t *testing.T) {
	tr := newTestTracker()
	tr.FailAllocations(2)

	for i := 0; i < 2; i++ {
		if _, err := tr.Allocate(10); !errors.Is(err, ErrSimulatedExhaustion) {
			t.Errorf("allocation %d: expected ErrSimulatedExhaustion, got %v", i, err)
		}
	}
	buf, err := tr.Allocate(10)
	if err != nil {
		t.Fatalf("third allocation should succeed, got %v", err)
	}
	_ = tr.Free(buf)

	if tr.Stats().Failures != 2 {
		t.Errorf("expected 2 failures, got %d", tr.Stats().Failures)
	}
}

func TestTrackingInnerError(t *testing.T) {
	tr := newTestTracker()
	if _, err := tr.Allocate(0); !errors.Is(err, interfaces.ErrInvalidAllocationSize) {
		t.Errorf("expected inner allocator error, got %v", err)
	}
	if tr.Stats().Failures != 1 {
		t.Errorf("expected 1 failure, got %d", tr.Stats().Failures)
	}
}

func TestTrackingWithPoolReuse(t *testing.T) {
	tr := NewTrackingAllocator(real.NewPoolAllocator(false))

	for i := 0; i < 10; i++ {
		buf, err := tr.Allocate(1024)
		if err != nil {
			t.Fatalf("Allocate failed: %v", err)
		}
		if err := tr.Free(buf); err != nil {
			t.Fatalf("iteration %d: Free failed: %v", i, err)
		}
	}
	if tr.Live() != 0 {
		t.Errorf("expected no live allocations, got %d", tr.Live())
	}
}

func TestClearAllocationLog(t *testing.T) {
	tr := newTestTracker()
	a, _ := tr.Allocate(8)
	b, _ := tr.Allocate(8)
	_ = tr.Free(a)

	tr.ClearAllocationLog()
	log := tr.GetAllocationLog()
	if len(log) != 1 || log[0].Freed {
		t.Errorf("expected only the live record to remain, got %+v", log)
	}

	_ = tr.Free(b)
	if tr.Live() != 0 {
		t.Error("live allocation should still be freeable after clearing the log")
	}
}

func TestTrackingConcurrent(t *testing.T) {
	tr := newTestTracker()
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				buf, err := tr.Allocate(64)
				if err != nil {
					t.Errorf("Allocate failed: %v", err)
					return
				}
				if err := tr.Free(buf); err != nil {
					t.Errorf("Free failed: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	stats := tr.Stats()
	if stats.Allocations != 800 || stats.Frees != 800 || stats.LiveBytes != 0 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}
