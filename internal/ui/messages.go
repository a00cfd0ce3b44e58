package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Screen identifies the routed surface of the App
type Screen int

const (
	ScreenLanding Screen = iota
	ScreenStory
)

// String returns the screen name
func (s Screen) String() string {
	switch s {
	case ScreenLanding:
		return "landing"
	case ScreenStory:
		return "story"
	default:
		return "unknown"
	}
}

// navigateMsg asks the App to switch screens
type navigateMsg struct {
	screen Screen
}

func navigate(screen Screen) tea.Cmd {
	return func() tea.Msg {
		return navigateMsg{screen: screen}
	}
}

// isPrimaryClick reports whether msg is a left-button press
func isPrimaryClick(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft
}
