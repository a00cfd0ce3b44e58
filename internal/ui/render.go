package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/instastory/internal/emoji"
	"github.com/yildizm/instastory/internal/fetch"
	"github.com/yildizm/instastory/internal/navigator"
	"github.com/yildizm/instastory/internal/story"
	"github.com/yildizm/instastory/internal/ui/components"
)

const closingLine = "Your conversations tell a story of connection"

// View renders the active phase of the viewer
func (m *StoryModel) View() string {
	switch m.lifecycle.Phase() {
	case fetch.PhaseSuccess:
		if m.nav != nil {
			return m.renderStory()
		}
	case fetch.PhaseFailure:
		return m.renderFailure()
	}
	return m.renderLoading()
}

func (m *StoryModel) renderLoading() string {
	content := m.spinner.View() + " " + m.styles.Muted.Render("Analyzing your conversations...")
	return m.place(content)
}

func (m *StoryModel) renderFailure() string {
	s := m.styles
	button := components.NewButton("Try Again", "")
	button.Style = s.Button

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Error.Render(emoji.GetEmoji("error")),
		"",
		s.Body.Render(m.lifecycle.Message()),
		"",
		button.Render(),
		"",
		s.Help.Render(m.help.ShortHelpView([]key.Binding{m.keys.Retry, m.keys.Back, m.keys.Quit})),
	)
	return m.place(content)
}

func (m *StoryModel) renderStory() string {
	s := m.styles
	index := m.nav.Index()
	slide := m.slides[index]

	total, current := m.nav.Progress()
	dots := components.NewProgressDots(total, current)
	dots.ActiveStyle = s.DotActive
	dots.IdleStyle = s.DotIdle

	parts := []string{s.Title.Render(slide.Title)}
	if slide.Subtitle != "" {
		parts = append(parts, s.Subtitle.Render(slide.Subtitle))
	}
	parts = append(parts, "", m.renderContent(index, &slide))
	body := lipgloss.JoinVertical(lipgloss.Center, parts...)

	icon := emoji.GetEmoji("next")
	if m.nav.Label() == navigator.LabelRestart {
		icon = emoji.GetEmoji("restart")
	}
	button := components.NewButton(m.nav.Label(), icon)
	button.Style = s.Button
	helpView := s.Help.Render(m.help.ShortHelpView([]key.Binding{m.keys.Next, m.keys.Back, m.keys.Quit}))

	if m.width <= 0 || m.height <= 0 {
		return strings.Join([]string{dots.Render(), "", body, "", button.Render(), "", helpView}, "\n")
	}

	bodyHeight := max(m.height-headerHeight-footerHeight, 1)
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.PlaceHorizontal(m.width, lipgloss.Center, dots.Render()),
		"",
		lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, body),
		lipgloss.PlaceHorizontal(m.width, lipgloss.Center, button.Render()),
		"",
		lipgloss.PlaceHorizontal(m.width, lipgloss.Center, helpView),
	)
}

// renderContent draws the template of a slide. Figures are consumed in
// the order returned by Slide.Figures.
func (m *StoryModel) renderContent(index int, slide *story.Slide) string {
	s := m.styles
	values := m.counters[index]
	next := 0
	value := func() string {
		if next >= len(values) {
			return "0"
		}
		v := values[next].View()
		next++
		return v
	}

	switch slide.Kind {
	case story.KindIntro:
		figure := value()
		return lipgloss.JoinVertical(lipgloss.Center,
			emoji.GetEmoji("message"),
			"",
			s.Figure.Render(figure),
			s.Muted.Render(slide.Headline.Label),
		)

	case story.KindRankedList:
		var headline string
		if slide.Headline != nil {
			icon := emoji.GetEmoji("moon")
			if slide.Metric == story.MetricReels {
				icon = emoji.GetEmoji("video")
			}
			headline = s.Headline.Render(icon+" "+value()+" "+slide.Headline.Label) + "\n\n"
		}
		items := make([]components.RankedItem, 0, len(slide.Rows))
		for _, row := range slide.Rows {
			items = append(items, components.RankedItem{
				Rank:  row.Rank,
				Name:  row.Name,
				Value: value(),
				Unit:  row.Figure.Label,
			})
		}
		list := components.NewRankedList(items, m.listWidth())
		list.RankStyle = s.Rank
		list.NameStyle = s.Name
		list.ValueStyle = s.Figure
		list.UnitStyle = s.Muted
		list.CardStyle = s.Card
		return headline + list.Render()

	case story.KindEmojiGrid:
		tiles := make([]components.EmojiTile, 0, len(slide.Emojis))
		for _, cell := range slide.Emojis {
			tiles = append(tiles, components.EmojiTile{Symbol: cell.Symbol, Value: value()})
		}
		grid := components.NewEmojiGrid(tiles)
		grid.TileStyle = s.Emoji
		grid.ValueStyle = s.Muted
		return grid.Render()

	case story.KindSummary:
		cards := make([]*components.StatsCard, 0, len(slide.Stats))
		for _, stat := range slide.Stats {
			card := components.NewStatsCard(stat.Label, value())
			card.ValueStyle = s.Figure
			card.LabelStyle = s.Muted
			cards = append(cards, card)
		}
		return lipgloss.JoinVertical(lipgloss.Center,
			components.StatsRow(cards, 2),
			"",
			s.Muted.Render(closingLine+" "+emoji.GetEmoji("message")),
		)
	}
	return ""
}

func (m *StoryModel) listWidth() int {
	if m.width <= 0 {
		return 48
	}
	return min(max(m.width-8, 24), 60)
}

func (m *StoryModel) place(content string) string {
	if m.width <= 0 || m.height <= 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
