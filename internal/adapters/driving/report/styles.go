package report

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette of text reports.
type Theme struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color
	Success   lipgloss.Color
	Error     lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:   lipgloss.Color("#7C3AED"), // Purple
		Secondary: lipgloss.Color("#06B6D4"), // Cyan
		Muted:     lipgloss.Color("#6C7086"), // Medium gray
		Success:   lipgloss.Color("#A6E3A1"), // Green
		Error:     lipgloss.Color("#F38BA8"), // Red
	}
}

// Styles contains the lipgloss styles used by text reports.
type Styles struct {
	Title   lipgloss.Style
	Repo    lipgloss.Style
	Path    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
}

// NewStyles creates styles for w. Colour is dropped automatically when w is
// not a terminal.
func NewStyles(w io.Writer, theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}
	r := lipgloss.NewRenderer(w)

	return &Styles{
		Title: r.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Repo: r.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Path: r.NewStyle().
			PaddingLeft(2),

		Muted: r.NewStyle().
			Foreground(theme.Muted),

		Success: r.NewStyle().
			Foreground(theme.Success),

		Error: r.NewStyle().
			Foreground(theme.Error),
	}
}
