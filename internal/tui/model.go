// Package tui provides the terminal user interface for the otpbox demo.
package tui

import (
	"fmt"
	"log/slog"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pquerna/otp"

	"github.com/Dicklesworthstone/otpbox/internal/challenge"
	"github.com/Dicklesworthstone/otpbox/internal/history"
	"github.com/Dicklesworthstone/otpbox/internal/theme"
	"github.com/Dicklesworthstone/otpbox/otpinput"
)

// viewState represents the current view/mode of the demo.
type viewState int

const (
	stateEntering viewState = iota
	stateVerified
	stateFailed
	stateHelp
)

// Config bundles everything the demo model needs.
type Config struct {
	// Count is the number of OTP boxes; 6 and 8 match TOTP code lengths.
	Count int
	// Mask renders typed characters as bullets.
	Mask bool
	// Alnum lifts the digits-only input filter.
	Alnum bool
	// Account names the challenge subject.
	Account string

	Issuer  *challenge.Issuer
	Store   *history.Store
	Logger  *slog.Logger
	Theme   theme.Theme
	Options theme.Options
	Watcher *theme.Watcher
}

// Model is the main Bubble Tea model for the otpbox demo.
type Model struct {
	input   otpinput.Model
	issuer  *challenge.Issuer
	store   *history.Store
	logger  *slog.Logger
	watcher *theme.Watcher
	opts    theme.Options
	account string

	ch        challenge.Challenge
	code      string
	remaining time.Duration

	width     int
	height    int
	state     viewState
	prevState viewState
	statusMsg string
	err       error

	keys   keyMap
	styles Styles
}

// New creates a demo model from cfg, filling in defaults for anything unset.
func New(cfg Config) Model {
	if cfg.Count != 6 && cfg.Count != 8 {
		cfg.Count = 6
	}
	if cfg.Account == "" {
		cfg.Account = "demo@example.com"
	}
	if cfg.Issuer == nil {
		digits := otp.DigitsSix
		if cfg.Count == 8 {
			digits = otp.DigitsEight
		}
		cfg.Issuer = challenge.NewIssuer("otpbox", 0, 0, digits)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	opts := []otpinput.Option{
		otpinput.WithCount(cfg.Count),
		otpinput.WithStyles(theme.StylesFor(cfg.Theme, cfg.Options)),
		otpinput.WithOnComplete(func(v string) tea.Cmd {
			return func() tea.Msg { return codeEnteredMsg{value: v} }
		}),
	}
	if cfg.Mask {
		opts = append(opts, otpinput.WithMask())
	}
	if cfg.Alnum {
		opts = append(opts, otpinput.WithCharFilter(func(r rune) bool {
			return unicode.IsDigit(r) || unicode.IsLetter(r)
		}))
	}

	input := otpinput.New(opts...)
	input.Focus()

	return Model{
		input:   input,
		issuer:  cfg.Issuer,
		store:   cfg.Store,
		logger:  cfg.Logger,
		watcher: cfg.Watcher,
		opts:    cfg.Options,
		account: cfg.Account,
		state:   stateEntering,
		keys:    defaultKeyMap(),
		styles:  stylesFromTheme(cfg.Theme, cfg.Options),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		m.issueChallenge,
		tickCmd(),
		m.waitForThemeReload(),
		m.input.Init(),
	)
}

// issueChallenge creates a fresh challenge and its current code.
func (m Model) issueChallenge() tea.Msg {
	ch, err := m.issuer.Issue(m.account)
	if err != nil {
		return challengeIssuedMsg{err: err}
	}
	code, err := m.issuer.Code(ch, time.Now())
	if err != nil {
		return challengeIssuedMsg{err: err}
	}
	return challengeIssuedMsg{ch: ch, code: code}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForThemeReload blocks on the theme watcher until the next reload.
func (m Model) waitForThemeReload() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case t, ok := <-m.watcher.Themes():
			if !ok {
				return nil
			}
			return themeReloadedMsg{theme: t}
		case err, ok := <-m.watcher.Errors():
			if !ok {
				return nil
			}
			return themeErrMsg{err: err}
		}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case challengeIssuedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.ch = msg.ch
		m.code = msg.code
		m.state = stateEntering
		m.statusMsg = ""
		m.input.Reset()
		m.logger.Info("challenge issued", "challenge_id", m.ch.ID, "account", m.account)
		return m, nil

	case tickMsg:
		now := time.Time(msg)
		m.remaining = m.issuer.Remaining(now)
		if m.ch.Secret != "" {
			if code, err := m.issuer.Code(m.ch, now); err == nil {
				m.code = code
			}
		}
		return m, tickCmd()

	case codeEnteredMsg:
		// The widget filled up; submit without waiting for enter.
		return m.verify(msg.value)

	case themeReloadedMsg:
		m.styles = stylesFromTheme(msg.theme, m.opts)
		m.input.SetStyles(theme.StylesFor(msg.theme, m.opts))
		m.statusMsg = fmt.Sprintf("theme %q reloaded", msg.theme.Name)
		return m, m.waitForThemeReload()

	case themeErrMsg:
		m.statusMsg = fmt.Sprintf("theme reload failed: %v", msg.err)
		return m, m.waitForThemeReload()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKeyPress processes keyboard input.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		if m.state == stateHelp {
			m.state = m.prevState
		} else {
			m.prevState = m.state
			m.state = stateHelp
		}
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		if m.state == stateEntering {
			return m.verify(m.input.Value())
		}
		return m, m.issueChallenge

	case key.Matches(msg, m.keys.Refresh):
		// While entering, a plain "r" may be widget input (alnum mode).
		if m.state != stateEntering {
			return m, m.issueChallenge
		}
	}

	if m.state == stateEntering {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// verify checks the submitted value against the active challenge and records
// the attempt.
func (m Model) verify(value string) (tea.Model, tea.Cmd) {
	if len([]rune(value)) != m.input.Count() {
		m.statusMsg = fmt.Sprintf("enter all %d characters", m.input.Count())
		return m, nil
	}

	now := time.Now()
	ok := m.issuer.Verify(m.ch, value, now)
	if ok {
		m.state = stateVerified
	} else {
		m.state = stateFailed
	}
	m.statusMsg = ""
	m.logger.Info("verification attempt",
		"challenge_id", m.ch.ID,
		"account", m.account,
		"ok", ok,
	)

	// Recording is best-effort; a full disk should not break the demo.
	if m.store != nil {
		err := m.store.Record(history.Attempt{
			ChallengeID: m.ch.ID.String(),
			Account:     m.account,
			CodeMask:    history.MaskCode(value),
			OK:          ok,
			At:          now,
		})
		if err != nil {
			m.logger.Warn("record attempt", "error", err)
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.err != nil {
		return m.styles.Error.Render(fmt.Sprintf("error: %v", m.err)) + "\n"
	}
	if m.width == 0 {
		return "Loading..."
	}

	if m.state == stateHelp {
		return m.helpView()
	}
	return m.mainView()
}

func (m Model) mainView() string {
	header := m.styles.Header.Render("otpbox - one-time password entry")

	codeLine := m.styles.Dim.Render("challenge code: ") + m.styles.Code.Render(m.code)
	if !m.opts.ReduceMotion {
		codeLine += m.styles.Countdown.Render(fmt.Sprintf("  rotates in %ds", int(m.remaining.Seconds())))
	}

	var result string
	switch m.state {
	case stateVerified:
		result = m.styles.Success.Render("✓ verified") + m.styles.Dim.Render("  press enter for a new challenge")
	case stateFailed:
		result = m.styles.Error.Render("✗ wrong code") + m.styles.Dim.Render("  press enter for a new challenge")
	default:
		if m.statusMsg != "" {
			result = m.styles.Dim.Render(m.statusMsg)
		}
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		codeLine,
		"",
		m.input.View(),
		"",
		result,
	)

	status := m.renderStatusBar()
	availableHeight := m.height - lipgloss.Height(content) - 2
	if availableHeight > 0 {
		content = lipgloss.JoinVertical(
			lipgloss.Left,
			content,
			lipgloss.NewStyle().Height(availableHeight).Render(""),
			status,
		)
	}

	return content
}

func (m Model) renderStatusBar() string {
	left := m.styles.StatusKey.Render("enter") + m.styles.StatusText.Render(" verify  ")
	left += m.styles.StatusKey.Render("tab") + m.styles.StatusText.Render(" next box  ")
	left += m.styles.StatusKey.Render("?") + m.styles.StatusText.Render(" help  ")
	left += m.styles.StatusKey.Render("esc") + m.styles.StatusText.Render(" quit")

	return m.styles.StatusBar.Width(m.width).Render(left)
}

// helpView renders the help screen.
func (m Model) helpView() string {
	help := `
Keyboard Shortcuts
==================

Entry
  0-9        type into the focused box
  backspace  clear box and move back
  tab/→      next box
  shift+tab/←  previous box
  home/end   first/last box

Actions
  enter      verify the entered code
  r          new challenge (after a result)

General
  ?          toggle help
  esc        quit

Paste a full code to fill every box at once.

Press ? to return...
`
	return m.styles.Help.Render(help)
}

// Run starts the demo application.
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
