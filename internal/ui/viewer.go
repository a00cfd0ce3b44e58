package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/instastory/internal/counter"
	"github.com/yildizm/instastory/internal/fetch"
	"github.com/yildizm/instastory/internal/logger"
	"github.com/yildizm/instastory/internal/navigator"
	"github.com/yildizm/instastory/internal/payload"
	"github.com/yildizm/instastory/internal/story"
)

// Layout of the story screen
const (
	headerHeight = 2 // progress dots and a blank line
	footerHeight = 3 // control, blank line, help
)

// StoryOptions configures a StoryModel
type StoryOptions struct {
	Context     context.Context
	Source      fetch.Source
	FrameWindow time.Duration // zero selects navigator.DefaultFrameWindow
	Clock       func() time.Time
	Logger      *logger.Logger
	Styles      *Styles
}

// figureRef locates a counter within the story
type figureRef struct {
	slide  int
	figure int
}

// StoryModel is the story viewer. It runs the fetch lifecycle, builds the
// slides once a payload arrives and routes both advance triggers through
// scoped navigator subscriptions.
type StoryModel struct {
	ctx         context.Context
	source      fetch.Source
	frameWindow time.Duration
	clock       func() time.Time
	log         *logger.Logger
	styles      *Styles
	keys        keyMap
	help        help.Model

	lifecycle *fetch.Lifecycle
	spinner   spinner.Model

	slides   []story.Slide
	nav      *navigator.Controller
	keyboard *navigator.Subscription
	pointer  *navigator.Subscription

	// counters[i] is nil unless slide i is active
	counters [][]counter.Model
	owners   map[int]figureRef

	width  int
	height int
}

// NewStoryModel creates an idle viewer; Init starts the first fetch
func NewStoryModel(opts StoryOptions) *StoryModel {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	if opts.Styles == nil {
		opts.Styles = GetStyles()
	}
	if opts.FrameWindow <= 0 {
		opts.FrameWindow = navigator.DefaultFrameWindow
	}

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(opts.Styles.Spinner),
	)

	return &StoryModel{
		ctx:         opts.Context,
		source:      opts.Source,
		frameWindow: opts.FrameWindow,
		clock:       opts.Clock,
		log:         opts.Logger.WithComponent("story"),
		styles:      opts.Styles,
		keys:        defaultKeyMap(),
		help:        help.New(),
		lifecycle:   fetch.NewLifecycle(),
		spinner:     sp,
	}
}

// Init enters Loading
func (m *StoryModel) Init() tea.Cmd {
	return m.load(m.lifecycle.Begin())
}

// Update handles lifecycle results, timers and input
func (m *StoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case fetch.LoadedMsg:
		if !m.lifecycle.Resolve(msg.Attempt, msg.Payload, nil) {
			return m, nil
		}
		return m, m.present(msg.Payload)

	case fetch.FailedMsg:
		if m.lifecycle.Resolve(msg.Attempt, nil, msg.Err) {
			m.log.WarnWithFields("fetch failed", []logger.Field{
				logger.F("attempt", msg.Attempt), logger.Error(msg.Err),
			})
		}

	case fetch.ChangedMsg:
		return m, m.Reload()

	case spinner.TickMsg:
		if m.lifecycle.Phase() != fetch.PhaseLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case counter.TickMsg:
		return m, m.routeTick(msg)

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	}
	return m, nil
}

func (m *StoryModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch m.lifecycle.Phase() {
	case fetch.PhaseFailure:
		if key.Matches(msg, m.keys.Retry) {
			return m.Retry()
		}
	case fetch.PhaseSuccess:
		if key.Matches(msg, m.keys.Next) {
			return m.advance(m.keyboard)
		}
	}
	return nil
}

func (m *StoryModel) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if !isPrimaryClick(msg) {
		return nil
	}
	switch m.lifecycle.Phase() {
	case fetch.PhaseFailure:
		return m.Retry()
	case fetch.PhaseSuccess:
		if m.onControl(msg) {
			return m.advance(m.pointer)
		}
	}
	return nil
}

// onControl reports whether a click landed on the advance control row.
// Without a known size every click counts.
func (m *StoryModel) onControl(msg tea.MouseMsg) bool {
	if m.height <= 0 {
		return true
	}
	return msg.Y == m.height-footerHeight
}

func (m *StoryModel) advance(sub *navigator.Subscription) tea.Cmd {
	left := m.nav.Index()
	if !sub.Fire() {
		return nil
	}
	m.unmount(left)
	index := m.nav.Index()
	m.log.DebugWithFields("advanced", []logger.Field{
		logger.F("source", sub.Source().String()), logger.F("index", index),
	})
	return m.mount(index)
}

func (m *StoryModel) routeTick(msg counter.TickMsg) tea.Cmd {
	ref, ok := m.owners[msg.ID]
	if !ok {
		return nil
	}
	var cmd tea.Cmd
	m.counters[ref.slide][ref.figure], cmd = m.counters[ref.slide][ref.figure].Update(msg)
	return cmd
}

// Retry re-enters Loading from Failure
func (m *StoryModel) Retry() tea.Cmd {
	attempt, ok := m.lifecycle.Retry()
	if !ok {
		return nil
	}
	m.discard()
	m.log.InfoWithFields("retrying", []logger.Field{logger.F("attempt", attempt)})
	return m.load(attempt)
}

// Reload discards the current payload and fetches it again
func (m *StoryModel) Reload() tea.Cmd {
	m.discard()
	attempt := m.lifecycle.Begin()
	m.log.InfoWithFields("reloading", []logger.Field{logger.F("attempt", attempt)})
	return m.load(attempt)
}

// Close releases the input subscriptions and cancels every counter. Any
// fetch still in flight is ignored when it completes.
func (m *StoryModel) Close() {
	m.discard()
	m.lifecycle.Reset()
}

func (m *StoryModel) load(attempt int) tea.Cmd {
	if m.source == nil {
		m.lifecycle.Resolve(attempt, nil, &fetch.Error{Type: fetch.ErrTypeIO, Message: "No data source configured"})
		return nil
	}
	return tea.Batch(fetch.Command(m.ctx, m.source, attempt), m.spinner.Tick)
}

// present builds the slides of a freshly loaded payload and shows the first
func (m *StoryModel) present(p *payload.Payload) tea.Cmd {
	slides := story.Build(p)
	opts := []navigator.Option{navigator.WithFrameWindow(m.frameWindow)}
	if m.clock != nil {
		opts = append(opts, navigator.WithClock(m.clock))
	}
	nav, err := navigator.New(len(slides), opts...)
	if err != nil {
		m.log.Error("failed to start navigation: %v", err)
		return nil
	}

	m.slides = slides
	m.nav = nav
	m.keyboard = nav.Subscribe(navigator.SourceKeyboard)
	m.pointer = nav.Subscribe(navigator.SourcePointer)
	m.counters = make([][]counter.Model, len(slides))
	m.owners = make(map[int]figureRef)

	m.log.InfoWithFields("payload loaded", []logger.Field{
		logger.F("slides", len(slides)), logger.F("source", m.source.Describe()),
	})
	return m.mount(0)
}

// mount creates fresh counters for a slide that becomes active, so every
// visit replays the reveal from zero.
func (m *StoryModel) mount(index int) tea.Cmd {
	if index < 0 || index >= len(m.slides) || m.counters[index] != nil {
		return nil
	}
	figures := m.slides[index].Figures()
	models := make([]counter.Model, 0, len(figures))
	cmds := make([]tea.Cmd, 0, len(figures))
	for i, fig := range figures {
		c := counter.New(fig.Value, fig.Delay)
		m.owners[c.ID()] = figureRef{slide: index, figure: i}
		models = append(models, c)
		cmds = append(cmds, c.Init())
	}
	m.counters[index] = models
	return tea.Batch(cmds...)
}

// unmount stops the counters of a slide that is no longer shown
func (m *StoryModel) unmount(index int) {
	if index < 0 || index >= len(m.counters) {
		return
	}
	for i := range m.counters[index] {
		m.counters[index][i] = m.counters[index][i].Stop()
		delete(m.owners, m.counters[index][i].ID())
	}
	m.counters[index] = nil
}

// discard drops the slides, navigation state and counters of the current
// payload. Pending ticks of stopped counters are dropped on arrival.
func (m *StoryModel) discard() {
	m.keyboard.Close()
	m.pointer.Close()
	for i := range m.counters {
		for j := range m.counters[i] {
			m.counters[i][j] = m.counters[i][j].Stop()
		}
	}
	m.slides = nil
	m.nav = nil
	m.keyboard = nil
	m.pointer = nil
	m.counters = nil
	m.owners = nil
}

// Phase returns the fetch lifecycle phase
func (m *StoryModel) Phase() fetch.Phase {
	return m.lifecycle.Phase()
}

// Slides returns the slides of the loaded payload
func (m *StoryModel) Slides() []story.Slide {
	return m.slides
}

// Index returns the active slide, or -1 before a payload is loaded
func (m *StoryModel) Index() int {
	if m.nav == nil {
		return -1
	}
	return m.nav.Index()
}

// Subscriptions returns the number of open advance trigger subscriptions
func (m *StoryModel) Subscriptions() int {
	if m.nav == nil {
		return 0
	}
	return m.nav.Subscribers()
}

// Mounted reports whether the counters of slide index exist
func (m *StoryModel) Mounted(index int) bool {
	return index >= 0 && index < len(m.counters) && m.counters[index] != nil
}

// Values returns the displayed values of the counters of slide index
func (m *StoryModel) Values(index int) []int64 {
	if !m.Mounted(index) {
		return nil
	}
	values := make([]int64, 0, len(m.counters[index]))
	for _, c := range m.counters[index] {
		values = append(values, c.Value())
	}
	return values
}
