package cli

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Faint(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

func ok(s string) string {
	return okStyle.Render("✓ " + s)
}

func fail(s string) string {
	return failStyle.Render("✗ " + s)
}

// pad left-aligns s in a column of width w
func pad(s string, w int) string {
	return lipgloss.NewStyle().Width(w).Render(s)
}
