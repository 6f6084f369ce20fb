package otpinput

import (
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const defaultCount = 6

// Option configures a Model at construction.
type Option func(*config)

type config struct {
	count      int
	value      string
	mask       bool
	maskRune   rune
	filter     func(rune) bool
	styles     Styles
	keys       KeyMap
	onComplete func(string) tea.Cmd
}

// WithCount sets the number of boxes. The default is 6.
func WithCount(n int) Option {
	return func(c *config) { c.count = n }
}

// WithValue seeds the widget with an initial OTP value.
func WithValue(v string) Option {
	return func(c *config) { c.value = v }
}

// WithMask renders entered characters as bullets.
func WithMask() Option {
	return func(c *config) { c.mask = true }
}

// WithMaskRune renders entered characters as r.
func WithMaskRune(r rune) Option {
	return func(c *config) {
		c.mask = true
		c.maskRune = r
	}
}

// WithCharFilter restricts which runes the widget accepts. The default
// filter accepts digits only. Filtering happens before the event reaches the
// distribution algorithm; rejected runes are dropped silently.
func WithCharFilter(fn func(rune) bool) Option {
	return func(c *config) { c.filter = fn }
}

// WithStyles overrides the default styles.
func WithStyles(s Styles) Option {
	return func(c *config) { c.styles = s }
}

// WithKeyMap overrides the default keybindings.
func WithKeyMap(k KeyMap) Option {
	return func(c *config) { c.keys = k }
}

// WithOnComplete registers a command fired once when every box is filled.
// The argument is the joined OTP value.
func WithOnComplete(fn func(string) tea.Cmd) Option {
	return func(c *config) { c.onComplete = fn }
}

// Model is a Bubble Tea component rendering a row of single-character boxes
// backed by a Controller. The zero value is not usable; construct with New.
type Model struct {
	ctrl     *Controller
	inputs   []textinput.Model
	focusIdx int
	focused  bool

	keys   KeyMap
	styles Styles

	mask     bool
	maskRune rune
	filter   func(rune) bool

	onComplete    func(string) tea.Cmd
	completeFired bool

	err error
}

// New creates an OTP input widget.
func New(opts ...Option) Model {
	cfg := config{
		count:    defaultCount,
		maskRune: '•',
		filter:   unicode.IsDigit,
		styles:   DefaultStyles(),
		keys:     DefaultKeyMap(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.count <= 0 {
		cfg.count = defaultCount
	}

	// cfg.count is positive here, so NewController cannot fail.
	ctrl, _ := NewController(cfg.value, cfg.count)

	inputs := make([]textinput.Model, cfg.count)
	for i := range inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Width = 1
		inputs[i] = ti
	}

	m := Model{
		ctrl:       ctrl,
		inputs:     inputs,
		keys:       cfg.keys,
		styles:     cfg.styles,
		mask:       cfg.mask,
		maskRune:   cfg.maskRune,
		filter:     cfg.filter,
		onComplete: cfg.onComplete,
	}
	m.syncInputs()
	m.completeFired = ctrl.Complete()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model. Key events drive the focused box's text
// input; the resulting raw value is handed to the controller and the
// returned focus directive is honored by walking focus across the boxes.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.inputs[m.focusIdx], cmd = m.inputs[m.focusIdx].Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, m.keys.Next):
		directive, err := m.ctrl.OnAdvanceRequested(m.focusIdx)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.applyDirective(directive)
		return m, nil

	case key.Matches(keyMsg, m.keys.Prev):
		if m.focusIdx > 0 {
			m.setFocus(m.focusIdx - 1)
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.First):
		m.setFocus(0)
		return m, nil

	case key.Matches(keyMsg, m.keys.Last):
		m.setFocus(m.ctrl.Count() - 1)
		return m, nil
	}

	switch keyMsg.Type {
	case tea.KeyBackspace, tea.KeyDelete:
		if m.inputs[m.focusIdx].Value() == "" {
			// Clearing an already-empty box still reports a clear event
			// so focus retreats to the previous box.
			return m.commit(m.focusIdx, "")
		}
		var cmd tea.Cmd
		m.inputs[m.focusIdx], cmd = m.inputs[m.focusIdx].Update(keyMsg)
		next, fireCmd := m.commit(m.focusIdx, m.inputs[m.focusIdx].Value())
		return next, tea.Batch(cmd, fireCmd)

	case tea.KeyRunes, tea.KeySpace:
		runes := keyMsg.Runes
		if keyMsg.Type == tea.KeySpace {
			runes = []rune{' '}
		}
		filtered := m.filterRunes(runes)
		if len(filtered) == 0 {
			return m, nil
		}
		if len(filtered) > 1 {
			return m.paste(string(filtered))
		}
		var cmd tea.Cmd
		m.inputs[m.focusIdx], cmd = m.inputs[m.focusIdx].Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: filtered})
		next, fireCmd := m.commit(m.focusIdx, m.inputs[m.focusIdx].Value())
		return next, tea.Batch(cmd, fireCmd)
	}

	return m, nil
}

// commit routes one raw event through the controller and honors the
// resulting directive.
func (m Model) commit(index int, raw string) (Model, tea.Cmd) {
	directive, err := m.ctrl.OnBoxChanged(index, raw)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.syncInputs()
	m.applyDirective(directive)
	cmd := m.completionCmd()
	return m, cmd
}

// paste handles an explicit multi-rune key event. It bypasses the raw box
// event path so a two-character paste is never mistaken for a stale echo.
func (m Model) paste(raw string) (Model, tea.Cmd) {
	if _, err := m.ctrl.OnPasted(m.focusIdx, raw); err != nil {
		m.err = err
		return m, nil
	}
	m.syncInputs()

	// No directive is issued for a paste. Land on the first box still
	// empty, or stay on the last box when the paste filled everything.
	target := m.ctrl.Count() - 1
	for i, s := range m.ctrl.Slots() {
		if s.Value == "" {
			target = i
			break
		}
	}
	m.setFocus(target)
	cmd := m.completionCmd()
	return m, cmd
}

func (m *Model) completionCmd() tea.Cmd {
	if !m.ctrl.Complete() {
		m.completeFired = false
		return nil
	}
	if m.completeFired || m.onComplete == nil {
		return nil
	}
	m.completeFired = true
	return m.onComplete(m.ctrl.Value())
}

func (m Model) filterRunes(runes []rune) []rune {
	if m.filter == nil {
		return runes
	}
	out := runes[:0:0]
	for _, r := range runes {
		if m.filter(r) {
			out = append(out, r)
		}
	}
	return out
}

// applyDirective moves focus as the directive asks. Focus movement is
// best-effort; a directive we cannot honor leaves slot state untouched.
func (m *Model) applyDirective(d FocusDirective) {
	target, ok := d.Target()
	if !ok || target < 0 || target >= len(m.inputs) {
		return
	}
	m.setFocus(target)
}

func (m *Model) setFocus(index int) {
	m.inputs[m.focusIdx].Blur()
	m.focusIdx = index
	if m.focused {
		m.inputs[m.focusIdx].Focus()
		m.inputs[m.focusIdx].CursorEnd()
	}
}

// syncInputs rewrites every text input from the committed slots so the
// editing surfaces never drift from the canonical state.
func (m *Model) syncInputs() {
	for i, s := range m.ctrl.Slots() {
		m.inputs[i].SetValue(s.Value)
		m.inputs[i].CursorEnd()
	}
}

// View implements tea.Model.
func (m Model) View() string {
	slots := m.ctrl.Slots()
	complete := m.ctrl.Complete()

	cells := make([]string, 0, len(slots)*2)
	for i, s := range slots {
		frame := m.styles.Box
		if complete {
			frame = m.styles.CompleteBox
		}
		if m.focused && i == m.focusIdx {
			frame = m.styles.FocusedBox
		}

		var cell string
		switch {
		case s.Value == "":
			cell = m.styles.Placeholder.Render(" ")
		case m.mask:
			cell = m.styles.Text.Render(string(m.maskRune))
		default:
			cell = m.styles.Text.Render(s.Value)
		}

		if i > 0 && m.styles.Gap != "" {
			cells = append(cells, m.styles.Gap)
		}
		cells = append(cells, frame.Render(cell))
	}

	return lipgloss.JoinHorizontal(lipgloss.Center, cells...)
}

// Value returns the joined OTP string.
func (m Model) Value() string {
	return m.ctrl.Value()
}

// SetValue reseeds the widget from an externally supplied value. An empty
// value resets the widget and returns focus to the first box.
func (m *Model) SetValue(v string) {
	directive := m.ctrl.OnExternalValueChanged(v)
	m.syncInputs()
	m.applyDirective(directive)
	m.completeFired = m.ctrl.Complete()
}

// Reset clears every box and focuses the first one.
func (m *Model) Reset() {
	m.SetValue("")
}

// SetOnChange registers a callback fired with the joined value after every
// user-typed change.
func (m *Model) SetOnChange(fn func(string)) {
	m.ctrl.SetOnChange(fn)
}

// SetStyles swaps the widget's styles, e.g. after a theme reload.
func (m *Model) SetStyles(s Styles) {
	m.styles = s
}

// Count returns the number of boxes.
func (m Model) Count() int {
	return m.ctrl.Count()
}

// Complete reports whether every box is filled.
func (m Model) Complete() bool {
	return m.ctrl.Complete()
}

// Focus gives the widget keyboard focus.
func (m *Model) Focus() tea.Cmd {
	m.focused = true
	m.inputs[m.focusIdx].Focus()
	m.inputs[m.focusIdx].CursorEnd()
	return textinput.Blink
}

// Blur removes keyboard focus.
func (m *Model) Blur() {
	m.focused = false
	m.inputs[m.focusIdx].Blur()
}

// Focused reports whether the widget has keyboard focus.
func (m Model) Focused() bool {
	return m.focused
}

// FocusedBox returns the index of the box that currently holds the cursor.
func (m Model) FocusedBox() int {
	return m.focusIdx
}

// Err returns the last contract violation the widget swallowed, if any.
// Indices are generated from the widget's own box sequence, so a non-nil
// result indicates a bug in the widget itself.
func (m Model) Err() error {
	return m.err
}
