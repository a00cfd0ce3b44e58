package monitor

import (
	"runtime"
	"sync/atomic"
	"time"
)

// OperationType names a tracked operation
type OperationType string

const (
	// OperationServeStats is one GET /api/stats request
	OperationServeStats OperationType = "serve_stats"
	// OperationFetch is one payload fetch made by the summary command
	OperationFetch OperationType = "fetch"
)

// OperationMetrics summarizes the recorded runs of one operation
type OperationMetrics struct {
	Operation    OperationType `json:"operation"`
	Count        int64         `json:"count"`
	TotalTime    int64         `json:"total_time_ns"`
	MinTime      int64         `json:"min_time_ns"`
	MaxTime      int64         `json:"max_time_ns"`
	AvgTime      int64         `json:"avg_time_ns"`
	ErrorCount   int64         `json:"error_count"`
	SuccessCount int64         `json:"success_count"`
}

// RuntimeMetrics holds process metrics read from the Go runtime
type RuntimeMetrics struct {
	NumGoroutines int    `json:"num_goroutines"`
	HeapAlloc     uint64 `json:"heap_alloc"`
	NumGC         uint32 `json:"num_gc"`
}

// Snapshot is the document served at /metrics
type Snapshot struct {
	Timestamp  time.Time          `json:"timestamp"`
	Uptime     string             `json:"uptime"`
	Runtime    RuntimeMetrics     `json:"runtime"`
	Operations []OperationMetrics `json:"operations"`
}

// Find returns the metrics of op, if it ran at least once
func (s Snapshot) Find(op OperationType) (OperationMetrics, bool) {
	for _, m := range s.Operations {
		if m.Operation == op {
			return m, true
		}
	}
	return OperationMetrics{}, false
}

// Timer accumulates the durations and failures of one operation.
// It is safe for concurrent use.
type Timer struct {
	count  atomic.Int64
	total  atomic.Int64
	min    atomic.Int64
	max    atomic.Int64
	errors atomic.Int64
}

func newTimer() *Timer {
	t := &Timer{}
	t.min.Store(-1)
	return t
}

// Record adds one run taking d; a non-nil err counts it as failed
func (t *Timer) Record(d time.Duration, err error) {
	nanos := d.Nanoseconds()
	t.count.Add(1)
	t.total.Add(nanos)
	if err != nil {
		t.errors.Add(1)
	}

	for {
		cur := t.min.Load()
		if (cur >= 0 && nanos >= cur) || t.min.CompareAndSwap(cur, nanos) {
			break
		}
	}
	for {
		cur := t.max.Load()
		if nanos <= cur || t.max.CompareAndSwap(cur, nanos) {
			break
		}
	}
}

// Metrics reads the current totals of the timer as op
func (t *Timer) Metrics(op OperationType) OperationMetrics {
	m := OperationMetrics{
		Operation:  op,
		Count:      t.count.Load(),
		TotalTime:  t.total.Load(),
		MinTime:    max(t.min.Load(), 0),
		MaxTime:    t.max.Load(),
		ErrorCount: t.errors.Load(),
	}
	if m.Count > 0 {
		m.AvgTime = m.TotalTime / m.Count
	}
	m.SuccessCount = m.Count - m.ErrorCount
	return m
}

func collectRuntime() RuntimeMetrics {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return RuntimeMetrics{
		NumGoroutines: runtime.NumGoroutine(),
		HeapAlloc:     m.HeapAlloc,
		NumGC:         m.NumGC,
	}
}
