package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StatsCard shows one figure above its label
type StatsCard struct {
	Label string
	Value string
	Width int

	ValueStyle lipgloss.Style
	LabelStyle lipgloss.Style
}

// NewStatsCard creates a stats card
func NewStatsCard(label, value string) *StatsCard {
	return &StatsCard{Label: label, Value: value, Width: 16}
}

// Render renders the stats card
func (s *StatsCard) Render() string {
	block := lipgloss.NewStyle().Width(s.Width).Align(lipgloss.Center)
	return lipgloss.JoinVertical(lipgloss.Center,
		block.Render(s.ValueStyle.Render(s.Value)),
		block.Render(s.LabelStyle.Render(s.Label)),
	)
}

// StatsRow renders cards side by side separated by gap columns
func StatsRow(cards []*StatsCard, gap int) string {
	if len(cards) == 0 {
		return ""
	}
	spacer := strings.Repeat(" ", max(gap, 0))
	parts := make([]string, 0, 2*len(cards)-1)
	for i, card := range cards {
		if i > 0 && gap > 0 {
			parts = append(parts, spacer)
		}
		parts = append(parts, card.Render())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
