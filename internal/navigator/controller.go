package navigator

import (
	"fmt"
	"time"
)

// Source identifies where an advance request came from
type Source int

const (
	SourcePointer Source = iota
	SourceKeyboard
)

// String returns the source name
func (s Source) String() string {
	switch s {
	case SourcePointer:
		return "pointer"
	case SourceKeyboard:
		return "keyboard"
	default:
		return "unknown"
	}
}

// DefaultFrameWindow is one frame at 60 Hz
const DefaultFrameWindow = 16 * time.Millisecond

// Control labels
const (
	LabelNext    = "Next"
	LabelRestart = "Restart"
)

// Controller holds the position within a fixed-length slide sequence.
// Advance is the only transition; it wraps from the last slide to the first.
type Controller struct {
	count  int
	index  int
	window time.Duration
	now    func() time.Time

	fired      bool
	lastSource Source
	lastAt     time.Time

	subs map[Source]*Subscription
}

// Option configures a Controller
type Option func(*Controller)

// WithFrameWindow sets how long an accepted trigger suppresses the other source
func WithFrameWindow(d time.Duration) Option {
	return func(c *Controller) {
		if d >= 0 {
			c.window = d
		}
	}
}

// WithClock replaces the time source
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates a controller positioned on the first of count slides
func New(count int, opts ...Option) (*Controller, error) {
	if count < 1 {
		return nil, fmt.Errorf("slide count must be at least 1, got %d", count)
	}
	c := &Controller{
		count:  count,
		window: DefaultFrameWindow,
		now:    time.Now,
		subs:   make(map[Source]*Subscription),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Index returns the current slide index
func (c *Controller) Index() int {
	return c.index
}

// Len returns the number of slides
func (c *Controller) Len() int {
	return c.count
}

// IsLast reports whether the current slide is the final one
func (c *Controller) IsLast() bool {
	return c.index == c.count-1
}

// Label returns the text of the advance control
func (c *Controller) Label() string {
	if c.IsLast() {
		return LabelRestart
	}
	return LabelNext
}

// Progress returns the read-only view used by progress indicators
func (c *Controller) Progress() (total, current int) {
	return c.count, c.index
}

// Advance moves to the next slide, restarting from the first after the last
func (c *Controller) Advance() int {
	if c.index < c.count-1 {
		c.index++
	} else {
		c.index = 0
	}
	return c.index
}

// Fire handles one trigger. A trigger from a different source arriving within
// the frame window of the previously accepted one is the echo of the same
// user action and is dropped. It reports whether the index advanced.
func (c *Controller) Fire(src Source) bool {
	now := c.now()
	if c.fired && src != c.lastSource && now.Sub(c.lastAt) < c.window {
		return false
	}

	c.Advance()
	c.fired = true
	c.lastSource = src
	c.lastAt = now
	return true
}

// Subscribe registers a trigger source. While a subscription for the source
// is open the same subscription is returned, so repeated activation never
// produces a second listener.
func (c *Controller) Subscribe(src Source) *Subscription {
	if s, ok := c.subs[src]; ok {
		return s
	}
	s := &Subscription{controller: c, source: src}
	c.subs[src] = s
	return s
}

// Subscribers returns the number of open subscriptions
func (c *Controller) Subscribers() int {
	return len(c.subs)
}

// Subscription is a scoped registration of one trigger source
type Subscription struct {
	controller *Controller
	source     Source
	closed     bool
}

// Source returns the subscribed source
func (s *Subscription) Source() Source {
	return s.source
}

// Fire forwards a trigger to the controller. Closed subscriptions ignore it.
func (s *Subscription) Fire() bool {
	if s == nil || s.closed {
		return false
	}
	return s.controller.Fire(s.source)
}

// Closed reports whether the subscription has been released
func (s *Subscription) Closed() bool {
	return s == nil || s.closed
}

// Close releases the registration. It is safe to call more than once.
func (s *Subscription) Close() {
	if s == nil || s.closed {
		return
	}
	s.closed = true
	if current, ok := s.controller.subs[s.source]; ok && current == s {
		delete(s.controller.subs, s.source)
	}
}
