package monitor

import (
	"sort"
	"sync"
	"time"
)

// Collector tracks operation timings and outcomes for the lifetime of a process
type Collector struct {
	started time.Time
	now     func() time.Time

	mu     sync.RWMutex
	timers map[OperationType]*Timer
}

// New creates a collector using the wall clock
func New() *Collector {
	return NewWithClock(time.Now)
}

// NewWithClock creates a collector reading time from now
func NewWithClock(now func() time.Time) *Collector {
	return &Collector{
		started: now(),
		now:     now,
		timers:  make(map[OperationType]*Timer),
	}
}

// TrackOperationWithError runs fn and records its duration and outcome
func (c *Collector) TrackOperationWithError(op OperationType, fn func() error) error {
	start := c.now()
	err := fn()
	c.Record(op, c.now().Sub(start), err)
	return err
}

// Record adds one measurement for op
func (c *Collector) Record(op OperationType, d time.Duration, err error) {
	c.timer(op).Record(d, err)
}

func (c *Collector) timer(op OperationType) *Timer {
	c.mu.RLock()
	t, ok := c.timers[op]
	c.mu.RUnlock()
	if ok {
		return t
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.timers[op]; ok {
		return t
	}
	t = newTimer()
	c.timers[op] = t
	return t
}

// GetSnapshot returns the current metrics, operations sorted by name
func (c *Collector) GetSnapshot() Snapshot {
	now := c.now()

	c.mu.RLock()
	ops := make([]OperationMetrics, 0, len(c.timers))
	for name, t := range c.timers {
		ops = append(ops, t.Metrics(name))
	}
	c.mu.RUnlock()

	sort.Slice(ops, func(i, j int) bool { return ops[i].Operation < ops[j].Operation })

	return Snapshot{
		Timestamp:  now,
		Uptime:     now.Sub(c.started).Round(time.Second).String(),
		Runtime:    collectRuntime(),
		Operations: ops,
	}
}
