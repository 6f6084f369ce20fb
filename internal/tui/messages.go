package tui

import (
	"time"

	"github.com/Dicklesworthstone/otpbox/internal/challenge"
	"github.com/Dicklesworthstone/otpbox/internal/theme"
)

// tickMsg drives the countdown and code rotation.
type tickMsg time.Time

// challengeIssuedMsg is sent when a fresh challenge is ready.
type challengeIssuedMsg struct {
	ch   challenge.Challenge
	code string
	err  error
}

// codeEnteredMsg is sent by the widget when every box is filled.
type codeEnteredMsg struct {
	value string
}

// themeReloadedMsg is sent when the watched theme file changes.
type themeReloadedMsg struct {
	theme theme.Theme
}

// themeErrMsg is sent when a theme reload fails; the current theme stays.
type themeErrMsg struct {
	err error
}
