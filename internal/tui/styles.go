package tui

import "github.com/charmbracelet/lipgloss"

const (
	workColor  = "#FF4D4F"
	breakColor = "#52C41A"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	workStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(workColor))
	breakStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(breakColor))
	timeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// Title renders a section heading.
func Title(s string) string {
	return titleStyle.Render(s)
}

// Hint renders secondary text.
func Hint(s string) string {
	return hintStyle.Render(s)
}
