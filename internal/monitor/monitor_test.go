package monitor

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestTimer(t *testing.T) {
	timer := newTimer()

	if m := timer.Metrics(OperationFetch); m.MinTime != 0 || m.AvgTime != 0 {
		t.Errorf("Expected zero times before any record, got %+v", m)
	}

	timer.Record(10*time.Millisecond, nil)
	timer.Record(30*time.Millisecond, errors.New("boom"))
	timer.Record(20*time.Millisecond, nil)

	m := timer.Metrics(OperationFetch)
	tests := []struct {
		name string
		got  int64
		want int64
	}{
		{"count", m.Count, 3},
		{"total", m.TotalTime, (60 * time.Millisecond).Nanoseconds()},
		{"min", m.MinTime, (10 * time.Millisecond).Nanoseconds()},
		{"max", m.MaxTime, (30 * time.Millisecond).Nanoseconds()},
		{"avg", m.AvgTime, (20 * time.Millisecond).Nanoseconds()},
		{"errors", m.ErrorCount, 1},
		{"successes", m.SuccessCount, 2},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: expected %d, got %d", tt.name, tt.want, tt.got)
		}
	}
}

func TestTimer_ZeroDuration(t *testing.T) {
	timer := newTimer()
	timer.Record(5*time.Millisecond, nil)
	timer.Record(0, nil)

	if m := timer.Metrics(OperationFetch); m.MinTime != 0 || m.MaxTime != (5*time.Millisecond).Nanoseconds() {
		t.Errorf("Expected min 0 and max 5ms, got %+v", m)
	}
}

// steppingClock advances by step on every read
func steppingClock(step time.Duration) func() time.Time {
	var mu sync.Mutex
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(step)
		return now
	}
}

func TestCollector_TrackOperationWithError(t *testing.T) {
	c := NewWithClock(steppingClock(5 * time.Millisecond))
	failure := errors.New("boom")

	if err := c.TrackOperationWithError(OperationServeStats, func() error { return nil }); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if err := c.TrackOperationWithError(OperationServeStats, func() error { return failure }); !errors.Is(err, failure) {
		t.Errorf("Expected operation error to be returned, got %v", err)
	}

	snap := c.GetSnapshot()
	if len(snap.Operations) != 1 {
		t.Fatalf("Expected 1 operation, got %d", len(snap.Operations))
	}
	op := snap.Operations[0]
	if op.Operation != OperationServeStats || op.Count != 2 {
		t.Errorf("Unexpected operation %+v", op)
	}
	if op.ErrorCount != 1 || op.SuccessCount != 1 {
		t.Errorf("Expected 1 error and 1 success, got %+v", op)
	}
	if op.AvgTime != (5 * time.Millisecond).Nanoseconds() {
		t.Errorf("Expected 5ms per operation, got %v", time.Duration(op.AvgTime))
	}
}

func TestCollector_SnapshotOrder(t *testing.T) {
	c := New()
	c.Record(OperationServeStats, time.Millisecond, nil)
	c.Record(OperationFetch, time.Millisecond, nil)

	snap := c.GetSnapshot()
	if len(snap.Operations) != 2 {
		t.Fatalf("Expected 2 operations, got %d", len(snap.Operations))
	}
	if snap.Operations[0].Operation != OperationFetch {
		t.Errorf("Expected operations sorted by name, got %v first", snap.Operations[0].Operation)
	}
	if snap.Runtime.NumGoroutines == 0 {
		t.Error("Expected runtime metrics to be collected")
	}
	if m, ok := snap.Find(OperationServeStats); !ok || m.Count != 1 {
		t.Errorf("Expected serve_stats to be found once, got %+v", m)
	}
	if _, ok := New().GetSnapshot().Find(OperationFetch); ok {
		t.Error("Expected no metrics before any record")
	}
}

func TestCollector_Concurrent(t *testing.T) {
	c := New()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Record(OperationFetch, time.Microsecond, nil)
			}
		}()
	}
	wg.Wait()

	if got := c.GetSnapshot().Operations[0].Count; got != 1000 {
		t.Errorf("Expected 1000 records, got %d", got)
	}
}
