package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/instastory/internal/counter"
	"github.com/yildizm/instastory/internal/emoji"
	"github.com/yildizm/instastory/internal/ui/components"
)

const landingMarkdown = `# Your Instagram DM Analytics

Uncover fascinating insights about your Instagram conversations.
See who you chat with most, your emoji personality, and discover your
digital communication patterns.

## Discover Your Digital Self

- **Conversation Insights**: see who you chat with most and when you are most active.
- **Emoji Analysis**: uncover your emoji personality.
- **Interactive Stories**: experience your data as an animated presentation.

## Your Privacy Matters

Your export is analyzed locally. Nothing is stored, shared or uploaded.
`

// landingStat is one animated figure of the hero section
type landingStat struct {
	label  string
	suffix string
	value  int64
	delay  time.Duration
}

var landingStats = []landingStat{
	{label: "Messages Analyzed", suffix: "+", value: 50000, delay: 1000 * time.Millisecond},
	{label: "Private", suffix: "%", value: 100, delay: 1200 * time.Millisecond},
	{label: "Setup Time", suffix: "min", value: 5, delay: 1400 * time.Millisecond},
}

// LandingModel is the marketing surface shown before the story
type LandingModel struct {
	width    int
	height   int
	markdown string
	counters []counter.Model
	styles   *Styles
	keys     keyMap
	help     help.Model
}

// NewLandingModel creates the landing screen
func NewLandingModel(styles *Styles) LandingModel {
	counters := make([]counter.Model, 0, len(landingStats))
	for _, stat := range landingStats {
		counters = append(counters, counter.New(stat.value, stat.delay))
	}
	m := LandingModel{
		counters: counters,
		styles:   styles,
		keys:     defaultKeyMap(),
		help:     help.New(),
	}
	m.markdown = renderMarkdown(landingMarkdown, 80)
	return m
}

// Init starts the hero counters
func (m LandingModel) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.counters))
	for _, c := range m.counters {
		cmds = append(cmds, c.Init())
	}
	return tea.Batch(cmds...)
}

// Update handles landing input
func (m LandingModel) Update(msg tea.Msg) (LandingModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.markdown = renderMarkdown(landingMarkdown, msg.Width)

	case counter.TickMsg:
		for i := range m.counters {
			if m.counters[i].ID() == msg.ID {
				var cmd tea.Cmd
				m.counters[i], cmd = m.counters[i].Update(msg)
				return m, cmd
			}
		}

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Enter) {
			return m, navigate(ScreenStory)
		}

	case tea.MouseMsg:
		if isPrimaryClick(msg) {
			return m, navigate(ScreenStory)
		}
	}
	return m, nil
}

// Stop cancels the hero counters
func (m LandingModel) Stop() LandingModel {
	for i := range m.counters {
		m.counters[i] = m.counters[i].Stop()
	}
	return m
}

// View renders the landing screen
func (m LandingModel) View() string {
	s := m.styles

	badge := s.Muted.Render(emoji.GetEmoji("sparkles") + " Discover your Instagram story")

	cards := make([]*components.StatsCard, 0, len(m.counters))
	for i, c := range m.counters {
		card := components.NewStatsCard(landingStats[i].label, c.View()+landingStats[i].suffix)
		card.ValueStyle = s.Figure
		card.LabelStyle = s.Muted
		cards = append(cards, card)
	}

	button := components.NewButton("Get Started", emoji.GetEmoji("next"))
	button.Style = s.Button

	privacy := s.Muted.Render(emoji.GetEmoji("shield") + " 100% Private & Secure")
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.Enter, m.keys.Quit})

	content := lipgloss.JoinVertical(lipgloss.Center,
		badge,
		strings.TrimRight(m.markdown, "\n"),
		components.StatsRow(cards, 2),
		"",
		button.Render(),
		privacy,
		"",
		s.Help.Render(helpView),
	)

	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// renderMarkdown renders md with glamour, wrapping at width. The raw
// markdown is returned if rendering fails.
func renderMarkdown(md string, width int) string {
	if width <= 0 {
		width = 80
	}
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(min(width-4, 100))}
	if IsColorDisabled() {
		opts = append(opts, glamour.WithStandardStyle("notty"))
	} else {
		opts = append(opts, glamour.WithAutoStyle())
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
