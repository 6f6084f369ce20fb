// Package theme loads widget color themes from YAML files and watches them
// for live edits.
package theme

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/Dicklesworthstone/otpbox/otpinput"
)

// Theme is a named color palette for the OTP widget and the demo chrome.
// Colors are hex strings ("#bd93f9") or ANSI color numbers ("212").
type Theme struct {
	Name          string `yaml:"name"`
	Border        string `yaml:"border"`
	BorderFocused string `yaml:"border_focused"`
	BorderFilled  string `yaml:"border_filled"`
	Text          string `yaml:"text"`
	Placeholder   string `yaml:"placeholder"`
	Accent        string `yaml:"accent"`
	Success       string `yaml:"success"`
	Error         string `yaml:"error"`
}

// Default returns the built-in Dracula-inspired theme.
func Default() Theme {
	return Theme{
		Name:          "dracula",
		Border:        "#44475a",
		BorderFocused: "#bd93f9",
		BorderFilled:  "#50fa7b",
		Text:          "#f8f8f2",
		Placeholder:   "#6272a4",
		Accent:        "#8be9fd",
		Success:       "#50fa7b",
		Error:         "#ff5555",
	}
}

// Load reads a theme from a YAML file. Fields left empty in the file fall
// back to the default theme, so a file can override a single color.
func Load(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("read theme: %w", err)
	}

	t := Default()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Theme{}, fmt.Errorf("parse theme %s: %w", path, err)
	}
	t.fillDefaults()
	return t, nil
}

func (t *Theme) fillDefaults() {
	def := Default()
	fill := func(dst *string, fallback string) {
		if strings.TrimSpace(*dst) == "" {
			*dst = fallback
		}
	}
	fill(&t.Name, "custom")
	fill(&t.Border, def.Border)
	fill(&t.BorderFocused, def.BorderFocused)
	fill(&t.BorderFilled, def.BorderFilled)
	fill(&t.Text, def.Text)
	fill(&t.Placeholder, def.Placeholder)
	fill(&t.Accent, def.Accent)
	fill(&t.Success, def.Success)
	fill(&t.Error, def.Error)
}

// Styles maps the theme onto the widget's style set.
func (t Theme) Styles() otpinput.Styles {
	s := otpinput.DefaultStyles()
	s.Box = s.Box.BorderForeground(lipgloss.Color(t.Border))
	s.FocusedBox = s.FocusedBox.BorderForeground(lipgloss.Color(t.BorderFocused))
	s.CompleteBox = s.CompleteBox.BorderForeground(lipgloss.Color(t.BorderFilled))
	s.Text = s.Text.Foreground(lipgloss.Color(t.Text))
	s.Placeholder = s.Placeholder.Foreground(lipgloss.Color(t.Placeholder))
	return s
}

// Options control how themes are applied to the terminal.
type Options struct {
	// NoColor disables colored output entirely.
	NoColor bool
	// ReduceMotion disables the countdown animation in the demo.
	ReduceMotion bool
}

// OptionsFromEnv derives display options from the environment.
// Respects:
// - NO_COLOR (disables color output)
// - TERM=dumb (disables color output)
// - OTPBOX_REDUCED_MOTION / REDUCED_MOTION / REDUCE_MOTION (disables animation)
func OptionsFromEnv() Options {
	opts := Options{}

	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		opts.NoColor = true
	}
	if os.Getenv("TERM") == "dumb" {
		opts.NoColor = true
	}

	for _, key := range []string{"OTPBOX_REDUCED_MOTION", "REDUCED_MOTION", "REDUCE_MOTION"} {
		if isTruthy(os.Getenv(key)) {
			opts.ReduceMotion = true
			break
		}
	}

	return opts
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// StylesFor applies opts to the theme: with NoColor set, the widget falls
// back to monochrome borders.
func StylesFor(t Theme, opts Options) otpinput.Styles {
	if opts.NoColor {
		return otpinput.PlainStyles()
	}
	return t.Styles()
}
