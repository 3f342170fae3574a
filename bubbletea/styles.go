package bubbletea

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/yoga"
)

// Styles maps a Palette to lipgloss styles for the overlay and reports.
type Styles struct {
	Surface lipgloss.Style
	Frame   lipgloss.Style
	Title   lipgloss.Style
	Source  lipgloss.Style
	Accent  lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
}

// NewStyles creates Styles from a Palette.
func NewStyles(p yoga.Palette) Styles {
	return Styles{
		Surface: lipgloss.NewStyle().Background(color(p.DeepViolet)),
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color(p.RichGold)).
			Background(color(p.DarkViolet)).
			Padding(1, 3),
		Title:   lipgloss.NewStyle().Foreground(color(p.BrightGold)).Bold(true),
		Source:  lipgloss.NewStyle().Foreground(color(p.White)),
		Accent:  lipgloss.NewStyle().Foreground(color(p.LuxuryViolet)).Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(color(p.Gray)),
		Error:   lipgloss.NewStyle().Foreground(color(p.DeepGold)).Bold(true),
		Success: lipgloss.NewStyle().Foreground(color(p.LightGold)),
	}
}

// color maps a palette value to a terminal color. Terminals have no alpha,
// so the translucent glow values yield NoColor.
func color(v string) lipgloss.TerminalColor {
	if !strings.HasPrefix(v, "#") {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(v)
}
