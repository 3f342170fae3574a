package bubbletea

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/yoga"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

var _ tea.Model = Model{}

// Model is the full-screen overlay shown while a source plays. It has a
// single control that dismisses it.
type Model struct {
	src     yoga.Source
	styles  Styles
	keys    keyMap
	help    help.Model
	onClose func()
	done    <-chan struct{}
	exitErr func() error

	width     int
	height    int
	dismissed bool
	err       error
}

// Option configures a Model.
type Option func(*Model)

// WithOnClose sets the callback invoked when the user dismisses the overlay.
func WithOnClose(fn func()) Option {
	return func(m *Model) { m.onClose = fn }
}

// WithPlayerDone makes the overlay close itself when done is closed. errFn,
// if non-nil, reports why the player exited.
func WithPlayerDone(done <-chan struct{}, errFn func() error) Option {
	return func(m *Model) {
		m.done = done
		m.exitErr = errFn
	}
}

// New creates an overlay for src styled with palette.
func New(src yoga.Source, palette yoga.Palette, opts ...Option) Model {
	h := help.New()
	styles := NewStyles(palette)
	h.Styles.ShortKey = styles.Accent
	h.Styles.ShortDesc = styles.Muted

	m := Model{
		src:    src,
		styles: styles,
		keys:   defaultKeys(),
		help:   h,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// PlayerExitedMsg reports that the player process ended on its own.
type PlayerExitedMsg struct {
	Err error
}

// Dismissed reports whether the user closed the overlay.
func (m Model) Dismissed() bool { return m.dismissed }

// Err returns the player's exit error, if it ended with one.
func (m Model) Err() error { return m.err }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.done == nil {
		return nil
	}
	done, errFn := m.done, m.exitErr
	return func() tea.Msg {
		<-done
		var err error
		if errFn != nil {
			err = errFn()
		}
		return PlayerExitedMsg{Err: err}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Close), key.Matches(msg, m.keys.Quit):
			return m.dismiss()
		}
		return m, nil

	case PlayerExitedMsg:
		m.err = msg.Err
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) dismiss() (tea.Model, tea.Cmd) {
	if !m.dismissed {
		m.dismissed = true
		if m.onClose != nil {
			m.onClose()
		}
	}
	return m, tea.Quit
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Now playing"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Source.Render(m.label()))
	if m.err != nil {
		b.WriteString("\n\n")
		b.WriteString(m.styles.Error.Render(m.err.Error()))
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))

	box := m.styles.Frame.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceBackground(m.styles.Surface.GetBackground()))
}

// label is the source as shown in the frame, truncated to fit the screen.
func (m Model) label() string {
	s := m.src.String()
	if id, ok := m.src.YouTubeID(); ok {
		s = "YouTube · " + id
	}
	// Frame border and padding take 8 columns.
	limit := m.width - 8
	if limit < 1 {
		return ""
	}
	if uniseg.StringWidth(s) <= limit {
		return s
	}
	return runewidth.Truncate(s, limit, "…")
}
