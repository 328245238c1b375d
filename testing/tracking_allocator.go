package testing

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
	"unsafe"

	"github.com/opd-ai/framebuffer/interfaces"
	"github.com/sirupsen/logrus"
)

var (
	// ErrDoubleFree indicates a slice was freed after it had already been freed.
	ErrDoubleFree = errors.New("double free")

	// ErrUnknownAllocation indicates a slice that did not come from this allocator.
	ErrUnknownAllocation = errors.New("unknown allocation")

	// ErrSimulatedExhaustion is returned while failure injection is active.
	ErrSimulatedExhaustion = errors.New("simulated allocator exhaustion")
)

// AllocationRecord describes one allocation for leak reports and verification
type AllocationRecord struct {
	ID        uint64
	Size      int
	Timestamp int64
	Freed     bool
}

// TrackingStats is a snapshot of allocator activity
type TrackingStats struct {
	Allocations   int
	Frees         int
	Failures      int
	LiveBytes     int
	PeakLiveBytes int
}

// TrackingAllocator wraps another allocator and records every allocation
// so tests can assert on leaks, double frees and peak usage.
type TrackingAllocator struct {
	inner interfaces.Allocator

	mu        sync.Mutex
	nextID    uint64
	live      map[*byte]*AllocationRecord
	freed     map[*byte]bool
	log       []*AllocationRecord
	stats     TrackingStats
	failCount int
}

// NewTrackingAllocator creates a tracking allocator on top of inner
func NewTrackingAllocator(inner interfaces.Allocator) *TrackingAllocator {
	logrus.Warn("SIMULATION FUNCTION - NOT A REAL OPERATION")
	logrus.WithFields(logrus.Fields{
		"function": "NewTrackingAllocator",
		"inner":    inner.Name(),
	}).Info("Creating tracking allocator for testing")

	return &TrackingAllocator{
		inner: inner,
		live:  make(map[*byte]*AllocationRecord),
		freed: make(map[*byte]bool),
		log:   make([]*AllocationRecord, 0),
	}
}

// Allocate implements interfaces.Allocator.Allocate with tracking
func (t *TrackingAllocator) Allocate(size int) ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.failCount > 0 {
		t.failCount--
		t.stats.Failures++
		logrus.WithFields(logrus.Fields{
			"function": "TrackingAllocator.Allocate",
			"size":     size,
		}).Debug("Injected allocation failure")
		return nil, fmt.Errorf("%w: %d bytes", ErrSimulatedExhaustion, size)
	}

	buf, err := t.inner.Allocate(size)
	if err != nil {
		t.stats.Failures++
		return nil, err
	}

	key := unsafe.SliceData(buf)
	t.nextID++
	rec := &AllocationRecord{
		ID:        t.nextID,
		Size:      len(buf),
		Timestamp: time.Now().UnixNano(),
	}
	t.live[key] = rec
	delete(t.freed, key)
	t.log = append(t.log, rec)

	t.stats.Allocations++
	t.stats.LiveBytes += rec.Size
	if t.stats.LiveBytes > t.stats.PeakLiveBytes {
		t.stats.PeakLiveBytes = t.stats.LiveBytes
	}

	logrus.WithFields(logrus.Fields{
		"function":   "TrackingAllocator.Allocate",
		"id":         rec.ID,
		"size":       rec.Size,
		"live_bytes": t.stats.LiveBytes,
	}).Debug("Tracked allocation")

	return buf, nil
}

// Free implements interfaces.Allocator.Free with double-free detection
func (t *TrackingAllocator) Free(buf []byte) error {
	if buf == nil {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	key := unsafe.SliceData(buf)
	rec, ok := t.live[key]
	if !ok {
		if t.freed[key] {
			logrus.WithFields(logrus.Fields{
				"function": "TrackingAllocator.Free",
				"size":     len(buf),
			}).Error("Double free detected")
			return fmt.Errorf("%w: %d bytes", ErrDoubleFree, len(buf))
		}
		logrus.WithFields(logrus.Fields{
			"function": "TrackingAllocator.Free",
			"size":     len(buf),
		}).Error("Free of unknown allocation")
		return fmt.Errorf("%w: %d bytes", ErrUnknownAllocation, len(buf))
	}

	delete(t.live, key)
	t.freed[key] = true
	rec.Freed = true
	t.stats.Frees++
	t.stats.LiveBytes -= rec.Size

	return t.inner.Free(buf)
}

// Name implements interfaces.Allocator.Name
func (t *TrackingAllocator) Name() string {
	return interfaces.AllocatorTracking
}

// FailAllocations makes the next n allocations fail with ErrSimulatedExhaustion
func (t *TrackingAllocator) FailAllocations(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failCount = n
}

// Stats returns a snapshot of allocator activity
func (t *TrackingAllocator) Stats() TrackingStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stats
}

// Live returns the number of allocations not yet freed
func (t *TrackingAllocator) Live() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.live)
}

// LiveBytes returns the number of bytes not yet freed
func (t *TrackingAllocator) LiveBytes() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stats.LiveBytes
}

// Leaks returns copies of the records still live, ordered by allocation ID.
func (t *TrackingAllocator) Leaks() []AllocationRecord {
	t.mu.Lock()
	defer t.mu.Unlock()

	leaks := make([]AllocationRecord, 0, len(t.live))
	for _, rec := range t.live {
		leaks = append(leaks, *rec)
	}
	sort.Slice(leaks, func(i, j int) bool { return leaks[i].ID < leaks[j].ID })

	if len(leaks) > 0 {
		logrus.WithFields(logrus.Fields{
			"function": "TrackingAllocator.Leaks",
			"count":    len(leaks),
		}).Warn("Live allocations outstanding")
	}
	return leaks
}

// GetAllocationLog returns a copy of every allocation made so far
func (t *TrackingAllocator) GetAllocationLog() []AllocationRecord {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]AllocationRecord, len(t.log))
	for i, rec := range t.log {
		out[i] = *rec
	}
	return out
}

// ClearAllocationLog drops the history of freed allocations. Live allocations
// stay tracked.
func (t *TrackingAllocator) ClearAllocationLog() {
	t.mu.Lock()
	defer t.mu.Unlock()

	kept := t.log[:0]
	for _, rec := range t.log {
		if !rec.Freed {
			kept = append(kept, rec)
		}
	}
	t.log = kept
	t.freed = make(map[*byte]bool)
}
