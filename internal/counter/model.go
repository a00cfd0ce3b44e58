package counter

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// TickMsg drives a single counter. Messages are matched by ID and by an
// internal generation tag, so a message scheduled for an older target or
// for a stopped counter is dropped without touching the displayed value.
type TickMsg struct {
	ID    int
	Time  time.Time
	tag   int
	start bool
}

// Model is a bubbletea component animating one displayed figure
type Model struct {
	id      int
	tag     int
	delay   time.Duration
	anim    Animation
	started bool
	stopped bool
}

// New creates a counter for target that starts ticking after delay
func New(target int64, delay time.Duration) Model {
	if delay < 0 {
		delay = 0
	}
	return Model{
		id:    nextID(),
		delay: delay,
		anim:  NewAnimation(target),
	}
}

// ID returns the unique id of the counter
func (m Model) ID() int {
	return m.id
}

// Value returns the displayed value
func (m Model) Value() int64 {
	return m.anim.Value()
}

// Target returns the value the counter animates to
func (m Model) Target() int64 {
	return m.anim.Target()
}

// Delay returns the start delay
func (m Model) Delay() time.Duration {
	return m.delay
}

// Started reports whether the delay has elapsed
func (m Model) Started() bool {
	return m.started
}

// Done reports whether the target has been reached
func (m Model) Done() bool {
	return m.anim.Done()
}

// View renders the displayed value
func (m Model) View() string {
	return Format(m.anim.Value())
}

// Init schedules the end of the start delay
func (m Model) Init() tea.Cmd {
	if m.stopped {
		return nil
	}
	return m.schedule(m.delay, true)
}

// Update consumes tick messages addressed to this counter and generation
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	tick, ok := msg.(TickMsg)
	if !ok || tick.ID != m.id || tick.tag != m.tag || m.stopped {
		return m, nil
	}

	if tick.start {
		m.started = true
		return m, m.schedule(TickInterval, false)
	}
	if !m.started || m.anim.Done() {
		return m, nil
	}

	if m.anim.Step() {
		return m, nil
	}
	return m, m.schedule(TickInterval, false)
}

// SetTarget restarts the counter from zero when target or delay change.
// Pending ticks of the previous generation are invalidated.
func (m Model) SetTarget(target int64, delay time.Duration) (Model, tea.Cmd) {
	if delay < 0 {
		delay = 0
	}
	if target == m.anim.Target() && delay == m.delay && !m.stopped {
		return m, nil
	}

	m.tag++
	m.delay = delay
	m.anim = NewAnimation(target)
	m.started = false
	m.stopped = false
	return m, m.Init()
}

// Stop invalidates every pending tick. The displayed value is kept.
func (m Model) Stop() Model {
	m.tag++
	m.stopped = true
	return m
}

func (m Model) schedule(after time.Duration, start bool) tea.Cmd {
	id, tag := m.id, m.tag
	return tea.Tick(after, func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Time: t, tag: tag, start: start}
	})
}
