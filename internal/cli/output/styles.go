package output

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles holds the lipgloss styles used for text output.
type Styles struct {
	Value   lipgloss.Style
	Command lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
}

// newStyles builds styles bound to a lipgloss renderer, so the colour
// profile follows the output stream rather than the process's stdout.
func newStyles(lr *lipgloss.Renderer) *Styles {
	return &Styles{
		Value:   lr.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		Command: lr.NewStyle().Foreground(lipgloss.Color("7")),
		Error:   lr.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		Muted:   lr.NewStyle().Foreground(lipgloss.Color("8")),
	}
}
