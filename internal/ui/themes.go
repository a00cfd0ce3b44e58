package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme represents a color theme for the story viewer
type Theme struct {
	Name string

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Accent    lipgloss.AdaptiveColor

	Success lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor

	Border   lipgloss.AdaptiveColor
	Muted    lipgloss.AdaptiveColor
	Surface  lipgloss.AdaptiveColor
	Progress lipgloss.AdaptiveColor
}

// palette lists light/dark pairs in Theme field order
type palette struct {
	primary, secondary, accent, success, errorColor, border, muted, surface, progress [2]string
}

func buildTheme(name string, p palette) Theme {
	c := func(pair [2]string) lipgloss.AdaptiveColor {
		return lipgloss.AdaptiveColor{Light: pair[0], Dark: pair[1]}
	}
	return Theme{
		Name:      name,
		Primary:   c(p.primary),
		Secondary: c(p.secondary),
		Accent:    c(p.accent),
		Success:   c(p.success),
		Error:     c(p.errorColor),
		Border:    c(p.border),
		Muted:     c(p.muted),
		Surface:   c(p.surface),
		Progress:  c(p.progress),
	}
}

// Available themes
var (
	DefaultTheme = buildTheme("default", palette{
		primary:    [2]string{"#111827", "#F9FAFB"},
		secondary:  [2]string{"#6B7280", "#9CA3AF"},
		accent:     [2]string{"#9333EA", "#C084FC"},
		success:    [2]string{"#059669", "#10B981"},
		errorColor: [2]string{"#DC2626", "#F87171"},
		border:     [2]string{"#D1D5DB", "#374151"},
		muted:      [2]string{"#9CA3AF", "#6B7280"},
		surface:    [2]string{"#F3F4F6", "#1F2937"},
		progress:   [2]string{"#DB2777", "#F472B6"},
	})

	HighContrastTheme = buildTheme("high-contrast", palette{
		primary:    [2]string{"#000000", "#FFFFFF"},
		secondary:  [2]string{"#333333", "#DDDDDD"},
		accent:     [2]string{"#000080", "#FFFF00"},
		success:    [2]string{"#006600", "#00FF00"},
		errorColor: [2]string{"#CC0000", "#FF4444"},
		border:     [2]string{"#000000", "#FFFFFF"},
		muted:      [2]string{"#666666", "#BBBBBB"},
		surface:    [2]string{"#FFFFFF", "#000000"},
		progress:   [2]string{"#000080", "#FFFF00"},
	})

	MinimalTheme = buildTheme("minimal", palette{
		primary:    [2]string{"#2D3748", "#E2E8F0"},
		secondary:  [2]string{"#718096", "#A0AEC0"},
		accent:     [2]string{"#4A5568", "#CBD5E0"},
		success:    [2]string{"#2F855A", "#68D391"},
		errorColor: [2]string{"#C53030", "#FC8181"},
		border:     [2]string{"#E2E8F0", "#2D3748"},
		muted:      [2]string{"#A0AEC0", "#718096"},
		surface:    [2]string{"#F7FAFC", "#2D3748"},
		progress:   [2]string{"#2D3748", "#E2E8F0"},
	})
)

var currentTheme = DefaultTheme

// GetTheme returns the current active theme
func GetTheme() Theme {
	return currentTheme
}

// SetTheme sets the active theme
func SetTheme(theme *Theme) {
	currentTheme = *theme
}

// SetThemeByName sets the theme by name
func SetThemeByName(name string) bool {
	switch name {
	case "default", "":
		SetTheme(&DefaultTheme)
	case "high-contrast":
		SetTheme(&HighContrastTheme)
	case "minimal":
		SetTheme(&MinimalTheme)
	default:
		return false
	}
	return true
}

// IsColorDisabled checks if colors should be disabled
func IsColorDisabled() bool {
	return os.Getenv("NO_COLOR") != ""
}

// ApplyColorMode configures the renderer for auto, always or never.
// NO_COLOR wins over everything except an explicit "always".
func ApplyColorMode(mode string) {
	switch {
	case mode == "always":
		lipgloss.SetColorProfile(termenv.TrueColor)
	case mode == "never" || IsColorDisabled():
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// GetAvailableThemes returns list of available theme names
func GetAvailableThemes() []string {
	return []string{"default", "high-contrast", "minimal"}
}

// Styles contains all the styled components of the viewer
type Styles struct {
	Theme Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style

	Figure   lipgloss.Style
	Headline lipgloss.Style
	Rank     lipgloss.Style
	Name     lipgloss.Style
	Card     lipgloss.Style
	Emoji    lipgloss.Style

	Button    lipgloss.Style
	DotActive lipgloss.Style
	DotIdle   lipgloss.Style
	Spinner   lipgloss.Style
	Help      lipgloss.Style
}

// GetStyles builds the styles of the current theme
func GetStyles() *Styles {
	theme := GetTheme()

	return &Styles{
		Theme: theme,

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Secondary),

		Body: lipgloss.NewStyle().
			Foreground(theme.Primary),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error).
			Bold(true),

		Figure: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Headline: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Background(theme.Surface).
			Bold(true).
			Padding(0, 2),

		Rank: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Name: lipgloss.NewStyle().
			Foreground(theme.Primary),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		Emoji: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Align(lipgloss.Center).
			Width(10).
			Padding(0, 1),

		Button: lipgloss.NewStyle().
			Foreground(theme.Surface).
			Background(theme.Primary).
			Bold(true).
			Padding(0, 3),

		DotActive: lipgloss.NewStyle().
			Foreground(theme.Progress).
			Bold(true),

		DotIdle: lipgloss.NewStyle().
			Foreground(theme.Border),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),
	}
}
