package fetch

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/instastory/internal/payload"
)

// Phase is the state of the presentation fetch lifecycle
type Phase int

const (
	// PhaseIdle is the state before the viewer has been entered
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseFailure
)

// String returns the phase name
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Lifecycle gates when a story may be built: Loading -> Success | Failure,
// with a manual retry from Failure. Every Loading entry gets a new attempt
// number and completions for older attempts are ignored.
type Lifecycle struct {
	phase   Phase
	attempt int
	payload *payload.Payload
	err     error
}

// NewLifecycle returns an idle lifecycle
func NewLifecycle() *Lifecycle {
	return &Lifecycle{}
}

// Phase returns the current phase
func (l *Lifecycle) Phase() Phase {
	return l.phase
}

// Attempt returns the number of the current (or last) attempt
func (l *Lifecycle) Attempt() int {
	return l.attempt
}

// Payload returns the loaded payload in PhaseSuccess, nil otherwise
func (l *Lifecycle) Payload() *payload.Payload {
	if l.phase != PhaseSuccess {
		return nil
	}
	return l.payload
}

// Err returns the failure in PhaseFailure, nil otherwise
func (l *Lifecycle) Err() error {
	if l.phase != PhaseFailure {
		return nil
	}
	return l.err
}

// Message returns the human-readable failure text
func (l *Lifecycle) Message() string {
	return Message(l.Err())
}

// Begin enters Loading, discarding any previous payload or failure,
// and returns the attempt number the caller must resolve.
func (l *Lifecycle) Begin() int {
	l.attempt++
	l.phase = PhaseLoading
	l.payload = nil
	l.err = nil
	return l.attempt
}

// Resolve completes an attempt. It reports false, changing nothing, when the
// attempt is stale or the lifecycle is not loading.
func (l *Lifecycle) Resolve(attempt int, p *payload.Payload, err error) bool {
	if l.phase != PhaseLoading || attempt != l.attempt {
		return false
	}
	if err == nil && p == nil {
		err = newError(ErrTypeDecode, "", "Received empty analytics data", nil)
	}
	if err != nil {
		l.phase = PhaseFailure
		l.err = err
		return true
	}
	l.phase = PhaseSuccess
	l.payload = p
	return true
}

// Retry re-enters Loading from Failure. It is the only way out of Failure.
func (l *Lifecycle) Retry() (int, bool) {
	if l.phase != PhaseFailure {
		return 0, false
	}
	return l.Begin(), true
}

// Reset returns the lifecycle to idle, dropping any pending attempt
func (l *Lifecycle) Reset() {
	l.attempt++
	l.phase = PhaseIdle
	l.payload = nil
	l.err = nil
}

// LoadedMsg reports a successful attempt
type LoadedMsg struct {
	Attempt int
	Payload *payload.Payload
}

// FailedMsg reports a failed attempt
type FailedMsg struct {
	Attempt int
	Err     error
}

// Command runs one fetch attempt as a tea command
func Command(ctx context.Context, src Source, attempt int) tea.Cmd {
	return func() tea.Msg {
		p, err := src.Fetch(ctx)
		if err != nil {
			return FailedMsg{Attempt: attempt, Err: err}
		}
		return LoadedMsg{Attempt: attempt, Payload: p}
	}
}
