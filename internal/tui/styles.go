package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/otpbox/internal/theme"
)

// Styles holds the lipgloss styles for the demo chrome around the widget.
type Styles struct {
	Header    lipgloss.Style
	Code      lipgloss.Style
	Countdown lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Dim       lipgloss.Style

	StatusBar  lipgloss.Style
	StatusKey  lipgloss.Style
	StatusText lipgloss.Style

	Help lipgloss.Style
}

// stylesFromTheme maps a theme onto the demo chrome.
func stylesFromTheme(t theme.Theme, opts theme.Options) Styles {
	if opts.NoColor {
		return Styles{
			Header:     lipgloss.NewStyle().Bold(true).MarginBottom(1),
			Code:       lipgloss.NewStyle().Bold(true),
			Countdown:  lipgloss.NewStyle(),
			Success:    lipgloss.NewStyle().Bold(true),
			Error:      lipgloss.NewStyle().Bold(true),
			Dim:        lipgloss.NewStyle(),
			StatusBar:  lipgloss.NewStyle().Padding(0, 1),
			StatusKey:  lipgloss.NewStyle().Bold(true),
			StatusText: lipgloss.NewStyle(),
			Help:       lipgloss.NewStyle().Padding(2, 4),
		}
	}

	accent := lipgloss.Color(t.Accent)
	text := lipgloss.Color(t.Text)
	dim := lipgloss.Color(t.Placeholder)
	border := lipgloss.Color(t.Border)

	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(t.BorderFocused)).
			MarginBottom(1),

		Code: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Countdown: lipgloss.NewStyle().
			Foreground(dim),

		Success: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(t.Success)),

		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(t.Error)),

		Dim: lipgloss.NewStyle().
			Foreground(dim),

		StatusBar: lipgloss.NewStyle().
			Padding(0, 1).
			Background(border).
			Foreground(text),

		StatusKey: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.BorderFocused)).
			Bold(true),

		StatusText: lipgloss.NewStyle().
			Foreground(dim),

		Help: lipgloss.NewStyle().
			Padding(2, 4).
			Foreground(text),
	}
}
