package otpinput

import "github.com/charmbracelet/lipgloss"

// Color palette - Dracula theme inspired.
var (
	colorPurple   = lipgloss.Color("#bd93f9")
	colorGreen    = lipgloss.Color("#50fa7b")
	colorWhite    = lipgloss.Color("#f8f8f2")
	colorGray     = lipgloss.Color("#6272a4")
	colorDarkGray = lipgloss.Color("#44475a")
)

// Styles holds the lipgloss styles for the widget.
type Styles struct {
	// Box is the frame around an unfocused box.
	Box lipgloss.Style

	// FocusedBox is the frame around the box that has input focus.
	FocusedBox lipgloss.Style

	// CompleteBox is the frame used for every box once all are filled.
	CompleteBox lipgloss.Style

	// Text is the style for entered characters.
	Text lipgloss.Style

	// Placeholder is the style for the empty-box marker.
	Placeholder lipgloss.Style

	// Gap separates adjacent boxes.
	Gap string
}

// DefaultStyles returns the default style configuration.
func DefaultStyles() Styles {
	return Styles{
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDarkGray).
			Padding(0, 1),

		FocusedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPurple).
			Padding(0, 1),

		CompleteBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorGreen).
			Padding(0, 1),

		Text: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite),

		Placeholder: lipgloss.NewStyle().
			Foreground(colorGray),

		Gap: " ",
	}
}

// PlainStyles returns a colorless style configuration for NO_COLOR terminals.
func PlainStyles() Styles {
	return Styles{
		Box:         lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
		FocusedBox:  lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Padding(0, 1),
		CompleteBox: lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).Padding(0, 1),
		Text:        lipgloss.NewStyle(),
		Placeholder: lipgloss.NewStyle(),
		Gap:         " ",
	}
}
