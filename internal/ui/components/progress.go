package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Dot glyphs of the progress indicator
const (
	DotActive = "━━"
	DotIdle   = "•"
)

// ProgressDots shows the position within the story. It only reads the
// (total, current) pair and never changes navigation state.
type ProgressDots struct {
	Total   int
	Current int

	ActiveStyle lipgloss.Style
	IdleStyle   lipgloss.Style
}

// NewProgressDots creates a progress indicator
func NewProgressDots(total, current int) *ProgressDots {
	return &ProgressDots{Total: total, Current: current}
}

// Render renders one dot per slide with the current slide highlighted
func (p *ProgressDots) Render() string {
	if p.Total <= 0 {
		return ""
	}
	dots := make([]string, 0, p.Total)
	for i := 0; i < p.Total; i++ {
		if i == p.Current {
			dots = append(dots, p.ActiveStyle.Render(DotActive))
		} else {
			dots = append(dots, p.IdleStyle.Render(DotIdle))
		}
	}
	return strings.Join(dots, " ")
}

// Button is the single pointer-activatable control of a screen
type Button struct {
	Label string
	Icon  string
	Style lipgloss.Style
}

// NewButton creates a button
func NewButton(label, icon string) *Button {
	return &Button{Label: label, Icon: icon}
}

// Render renders the button
func (b *Button) Render() string {
	text := b.Label
	if b.Icon != "" {
		text += " " + b.Icon
	}
	return b.Style.Render(text)
}

// Height returns the number of rows the rendered button occupies
func (b *Button) Height() int {
	return lipgloss.Height(b.Render())
}
