package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/instastory/internal/counter"
	"github.com/yildizm/instastory/internal/fetch"
	"github.com/yildizm/instastory/internal/payload"
)

type stubSource struct{}

func (stubSource) Fetch(context.Context) (*payload.Payload, error) { return examplePayload(), nil }
func (stubSource) Describe() string                                { return "stub" }

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func examplePayload() *payload.Payload {
	words := make([]payload.WordCount, 17)
	for i := range words {
		words[i] = payload.WordCount{Word: "w", Count: 1}
	}
	return &payload.Payload{
		TopChatted: []payload.Ranked{{Name: "A", Count: 120}, {Name: "B", Count: 80}, {Name: "C", Count: 5}},
		Midnight:   []payload.Ranked{},
		Reels:      []payload.Ranked{{Name: "D", Count: 10}},
		Emojis:     []payload.EmojiCount{{Symbol: "😂", Count: 30}},
		Words:      words,
	}
}

var (
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyRetry = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyQuit  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
)

// controlRow is the row of the advance control on a 30 row terminal
const controlRow = 30 - footerHeight

func clickAt(y int) tea.MouseMsg {
	return tea.MouseMsg{X: 40, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

// runCounters executes cmd and every command it leads to, feeding counter
// ticks back into m until no timers are left.
func runCounters(m *StoryModel, cmd tea.Cmd) {
	pending := []tea.Cmd{cmd}
	for len(pending) > 0 {
		next := pending[0]
		pending = pending[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case tea.BatchMsg:
			pending = append(pending, msg...)
		case counter.TickMsg:
			_, c := m.Update(msg)
			pending = append(pending, c)
		}
	}
}

func newLoadedStory(t *testing.T, clock *fakeClock) *StoryModel {
	t.Helper()
	m := NewStoryModel(StoryOptions{Source: stubSource{}, Clock: clock.Now})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	if m.Init() == nil {
		t.Fatal("Expected Init to start a fetch")
	}
	m.Update(fetch.LoadedMsg{Attempt: 1, Payload: examplePayload()})
	if m.Phase() != fetch.PhaseSuccess {
		t.Fatalf("Expected success, got %s", m.Phase())
	}
	return m
}

func TestStoryModel_Loading(t *testing.T) {
	m := NewStoryModel(StoryOptions{Source: stubSource{}})
	m.Init()

	if m.Phase() != fetch.PhaseLoading {
		t.Fatalf("Expected loading, got %s", m.Phase())
	}
	if m.Index() != -1 {
		t.Errorf("Expected no navigation state while loading, got %d", m.Index())
	}
	if !strings.Contains(m.View(), "Analyzing your conversations...") {
		t.Errorf("Expected loading copy, got %q", m.View())
	}
}

func TestStoryModel_PresentsSlides(t *testing.T) {
	m := newLoadedStory(t, &fakeClock{now: time.Unix(0, 0)})

	if len(m.Slides()) != 5 {
		t.Fatalf("Expected 5 slides, got %d", len(m.Slides()))
	}
	if m.Index() != 0 {
		t.Errorf("Expected index 0, got %d", m.Index())
	}
	if !m.Mounted(0) || m.Mounted(1) {
		t.Error("Expected only the first slide to be mounted")
	}
	if got := m.Values(0); len(got) != 1 || got[0] != 0 {
		t.Errorf("Expected intro counter to start at 0, got %v", got)
	}
	if m.Subscriptions() != 2 {
		t.Errorf("Expected keyboard and pointer subscriptions, got %d", m.Subscriptions())
	}

	view := m.View()
	for _, want := range []string{"Your Instagram Story", "Let's explore your 205 messages", "Next"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected %q in view", want)
		}
	}
}

func TestStoryModel_IgnoresStaleResults(t *testing.T) {
	m := NewStoryModel(StoryOptions{Source: stubSource{}})
	m.Init()

	m.Update(fetch.LoadedMsg{Attempt: 7, Payload: examplePayload()})
	if m.Phase() != fetch.PhaseLoading {
		t.Errorf("Expected stale result to be ignored, got %s", m.Phase())
	}
}

func TestStoryModel_FailureAndRetry(t *testing.T) {
	m := NewStoryModel(StoryOptions{Source: stubSource{}})
	m.Init()

	m.Update(fetch.FailedMsg{Attempt: 1, Err: &fetch.Error{Type: fetch.ErrTypeStatus, Message: "Failed to fetch data"}})
	if m.Phase() != fetch.PhaseFailure {
		t.Fatalf("Expected failure, got %s", m.Phase())
	}
	view := m.View()
	if !strings.Contains(view, "Failed to fetch data") || !strings.Contains(view, "Try Again") {
		t.Errorf("Expected error and retry control, got %q", view)
	}

	// navigation keys do nothing without slides
	m.Update(keyRight)
	if m.Phase() != fetch.PhaseFailure {
		t.Fatalf("Expected failure to persist, got %s", m.Phase())
	}

	_, cmd := m.Update(keyRetry)
	if cmd == nil || m.Phase() != fetch.PhaseLoading {
		t.Fatalf("Expected retry to re-enter loading, got %s", m.Phase())
	}

	m.Update(fetch.FailedMsg{Attempt: 1, Err: &fetch.Error{Message: "late"}})
	if m.Phase() != fetch.PhaseLoading {
		t.Errorf("Expected result of the first attempt to be ignored, got %s", m.Phase())
	}

	m.Update(fetch.LoadedMsg{Attempt: 2, Payload: examplePayload()})
	if m.Phase() != fetch.PhaseSuccess || m.Index() != 0 {
		t.Errorf("Expected success at index 0, got %s at %d", m.Phase(), m.Index())
	}
}

func TestStoryModel_ClickRetriesFromFailure(t *testing.T) {
	m := NewStoryModel(StoryOptions{Source: stubSource{}})
	m.Init()
	m.Update(fetch.FailedMsg{Attempt: 1, Err: &fetch.Error{Message: "Failed to fetch data"}})

	m.Update(clickAt(3))
	if m.Phase() != fetch.PhaseLoading {
		t.Errorf("Expected click to retry, got %s", m.Phase())
	}
}

func TestStoryModel_KeyboardAdvances(t *testing.T) {
	m := newLoadedStory(t, &fakeClock{now: time.Unix(0, 0)})

	m.Update(keyRight)
	if m.Index() != 1 {
		t.Fatalf("Expected index 1, got %d", m.Index())
	}
	if !m.Mounted(1) {
		t.Error("Expected second slide to be mounted")
	}
	if got := len(m.Values(1)); got != 3 {
		t.Errorf("Expected 3 row counters, got %d", got)
	}

	m.Update(keySpace)
	if m.Index() != 2 {
		t.Errorf("Expected space to advance to 2, got %d", m.Index())
	}
}

func TestStoryModel_DoubleTriggerGuard(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	m := newLoadedStory(t, clock)

	// one physical action reported by both inputs
	m.Update(keyRight)
	clock.Advance(5 * time.Millisecond)
	m.Update(clickAt(controlRow))
	if m.Index() != 1 {
		t.Fatalf("Expected a single advance, got index %d", m.Index())
	}

	clock.Advance(100 * time.Millisecond)
	m.Update(clickAt(controlRow))
	if m.Index() != 2 {
		t.Errorf("Expected a later click to advance, got index %d", m.Index())
	}
}

func TestStoryModel_ClickOutsideControl(t *testing.T) {
	m := newLoadedStory(t, &fakeClock{now: time.Unix(0, 0)})

	for _, y := range []int{5, controlRow + 1, controlRow + 2} {
		m.Update(clickAt(y))
		if m.Index() != 0 {
			t.Errorf("Expected click on row %d to be ignored, got index %d", y, m.Index())
		}
	}
}

func TestStoryModel_CycleAndRestartLabel(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	m := newLoadedStory(t, clock)
	n := len(m.Slides())

	for i := 0; i < n-1; i++ {
		m.Update(keyRight)
	}
	if m.Index() != n-1 {
		t.Fatalf("Expected last slide, got %d", m.Index())
	}
	view := m.View()
	if !strings.Contains(view, "Restart") {
		t.Error("Expected Restart label on the last slide")
	}
	if !strings.Contains(view, "Your Instagram Journey") {
		t.Error("Expected summary slide")
	}

	m.Update(keyRight)
	if m.Index() != 0 {
		t.Errorf("Expected wrap to 0, got %d", m.Index())
	}
	// only the active slide keeps counters
	for i := 0; i < n; i++ {
		if m.Mounted(i) != (i == 0) {
			t.Errorf("Slide %d: mounted = %v", i, m.Mounted(i))
		}
	}
}

func TestStoryModel_RevisitReplaysCounters(t *testing.T) {
	m := NewStoryModel(StoryOptions{Source: stubSource{}, Clock: (&fakeClock{now: time.Unix(0, 0)}).Now})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	m.Init()
	_, cmd := m.Update(fetch.LoadedMsg{Attempt: 1, Payload: examplePayload()})

	runCounters(m, cmd)
	if got := m.Values(0); len(got) != 1 || got[0] != 205 {
		t.Fatalf("Expected intro counter to reach 205, got %v", got)
	}

	var ticks tea.Cmd
	for range m.Slides() {
		_, ticks = m.Update(keyRight)
	}
	if m.Index() != 0 {
		t.Fatalf("Expected restart at 0, got %d", m.Index())
	}
	if got := m.Values(0); len(got) != 1 || got[0] != 0 {
		t.Errorf("Expected intro counter to start over at 0, got %v", got)
	}
	if ticks == nil {
		t.Fatal("Expected the revisited slide to schedule its counter")
	}

	runCounters(m, ticks)
	if got := m.Values(0); got[0] != 205 {
		t.Errorf("Expected replay to reach 205, got %v", got)
	}
}

func TestStoryModel_LeavingSlideDropsTicks(t *testing.T) {
	m := newLoadedStory(t, &fakeClock{now: time.Unix(0, 0)})
	m.Update(keyRight)
	if len(m.owners) != 3 {
		t.Fatalf("Expected 3 live counters, got %d", len(m.owners))
	}
	ids := make([]int, 0, len(m.counters[1]))
	for _, c := range m.counters[1] {
		ids = append(ids, c.ID())
	}

	m.Update(keyRight)
	if m.Mounted(1) {
		t.Error("Expected the left slide to be unmounted")
	}
	for _, id := range ids {
		if _, ok := m.owners[id]; ok {
			t.Errorf("Expected counter %d to be released", id)
		}
		if _, cmd := m.Update(counter.TickMsg{ID: id}); cmd != nil {
			t.Errorf("Expected tick for counter %d to be dropped", id)
		}
	}
}

func TestStoryModel_ReloadRestartsAtZero(t *testing.T) {
	m := newLoadedStory(t, &fakeClock{now: time.Unix(0, 0)})
	m.Update(keyRight)
	m.Update(keyRight)

	_, cmd := m.Update(fetch.ChangedMsg{})
	if cmd == nil || m.Phase() != fetch.PhaseLoading {
		t.Fatalf("Expected reload to re-enter loading, got %s", m.Phase())
	}
	if m.Index() != -1 || m.Subscriptions() != 0 {
		t.Error("Expected navigation state to be discarded")
	}

	m.Update(fetch.LoadedMsg{Attempt: 2, Payload: examplePayload()})
	if m.Index() != 0 {
		t.Errorf("Expected navigation to restart at 0, got %d", m.Index())
	}
}

func TestStoryModel_Close(t *testing.T) {
	m := newLoadedStory(t, &fakeClock{now: time.Unix(0, 0)})
	keyboard := m.keyboard

	m.Close()
	if !keyboard.Closed() {
		t.Error("Expected keyboard subscription to be closed")
	}
	if m.Phase() != fetch.PhaseIdle {
		t.Errorf("Expected idle, got %s", m.Phase())
	}
	if keyboard.Fire() {
		t.Error("Expected closed subscription to ignore triggers")
	}
}

func TestStoryModel_SpinnerStopsAfterLoading(t *testing.T) {
	m := newLoadedStory(t, &fakeClock{now: time.Unix(0, 0)})

	_, cmd := m.Update(spinner.TickMsg{})
	if cmd != nil {
		t.Error("Expected spinner ticks to stop once loaded")
	}
}

func TestStoryModel_NoSource(t *testing.T) {
	m := NewStoryModel(StoryOptions{})
	m.Init()
	if m.Phase() != fetch.PhaseFailure {
		t.Errorf("Expected failure without a source, got %s", m.Phase())
	}
}
