package counter

import (
	"math"
	"strconv"
	"time"
)

const (
	// Duration is the total reveal time measured from the end of the delay
	Duration = 2 * time.Second
	// Steps is the number of ticks a reveal is divided into
	Steps = 60
	// TickInterval is the time between two ticks
	TickInterval = Duration / Steps
)

// Animation steps a displayed value from zero to its target.
// Each tick adds target/Steps to an accumulator and shows its floor;
// the last tick, or the first one reaching the target, snaps to the target.
type Animation struct {
	target    int64
	increment float64
	acc       float64
	ticks     int
	value     int64
	done      bool
}

// NewAnimation returns an animation for a non-negative target
func NewAnimation(target int64) Animation {
	if target < 0 {
		target = 0
	}
	return Animation{
		target:    target,
		increment: float64(target) / Steps,
	}
}

// Step applies one tick. It reports whether the animation is finished.
func (a *Animation) Step() bool {
	if a.done {
		return true
	}

	a.ticks++
	a.acc += a.increment
	if a.ticks >= Steps || a.acc >= float64(a.target) {
		a.value = a.target
		a.done = true
		return true
	}

	next := int64(math.Floor(a.acc))
	if next > a.value {
		a.value = next
	}
	return false
}

// Value returns the currently displayed value
func (a *Animation) Value() int64 {
	return a.value
}

// Target returns the value the animation ends on
func (a *Animation) Target() int64 {
	return a.target
}

// Ticks returns how many ticks have been applied
func (a *Animation) Ticks() int {
	return a.ticks
}

// Done reports whether the target has been reached
func (a *Animation) Done() bool {
	return a.done
}

// ValueAt returns the value displayed `elapsed` after the figure became
// eligible to animate, for the given target and start delay.
func ValueAt(target int64, delay, elapsed time.Duration) int64 {
	if elapsed < delay {
		return 0
	}
	ticks := int((elapsed - delay) / TickInterval)

	a := NewAnimation(target)
	for i := 0; i < ticks && !a.done; i++ {
		a.Step()
	}
	return a.Value()
}

// Format renders a figure with thousands separators
func Format(n int64) string {
	if n < 0 {
		return "-" + Format(-n)
	}
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	return addCommas(s)
}

func addCommas(s string) string {
	if len(s) <= 3 {
		return s
	}
	return addCommas(s[:len(s)-3]) + "," + s[len(s)-3:]
}
