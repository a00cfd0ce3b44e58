package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// RankedItem is one row of a ranked list
type RankedItem struct {
	Rank  int
	Name  string
	Value string
	Unit  string
}

// RankedList renders the top entries of a metric in producer order
type RankedList struct {
	Items []RankedItem
	Width int
	Empty string

	RankStyle  lipgloss.Style
	NameStyle  lipgloss.Style
	ValueStyle lipgloss.Style
	UnitStyle  lipgloss.Style
	CardStyle  lipgloss.Style
}

// NewRankedList creates a ranked list of the given inner width
func NewRankedList(items []RankedItem, width int) *RankedList {
	if width < 24 {
		width = 24
	}
	return &RankedList{Items: items, Width: width, Empty: "Nothing to show yet"}
}

// Render renders the list inside a card
func (l *RankedList) Render() string {
	if len(l.Items) == 0 {
		return l.CardStyle.Render(l.UnitStyle.Render(l.Empty))
	}

	lines := make([]string, 0, len(l.Items))
	for _, item := range l.Items {
		lines = append(lines, l.renderItem(item))
	}
	return l.CardStyle.Render(strings.Join(lines, "\n"))
}

func (l *RankedList) renderItem(item RankedItem) string {
	rank := fmt.Sprintf("#%d", item.Rank)
	value := item.Value
	if item.Unit != "" {
		value += " " + item.Unit
	}

	// rank, two gaps and the value column are fixed; the name takes the rest
	nameWidth := l.Width - runewidth.StringWidth(rank) - runewidth.StringWidth(value) - 4
	if nameWidth < 4 {
		nameWidth = 4
	}
	name := runewidth.Truncate(item.Name, nameWidth, "…")
	name = runewidth.FillRight(name, nameWidth)

	renderedValue := l.ValueStyle.Render(item.Value)
	if item.Unit != "" {
		renderedValue += " " + l.UnitStyle.Render(item.Unit)
	}
	return l.RankStyle.Render(rank) + "  " + l.NameStyle.Render(name) + "  " + renderedValue
}
