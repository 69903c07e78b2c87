package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fibseq/internal/ui"
)

// Style variables for the index explorer.
// Initialized from the ui theme system via initTUIStyles().
var (
	panelStyle      lipgloss.Style
	titleStyle      lipgloss.Style
	versionStyle    lipgloss.Style
	labelStyle      lipgloss.Style
	valueStyle      lipgloss.Style
	successStyle    lipgloss.Style
	errorStyle      lipgloss.Style
	pathStyle       lipgloss.Style
	footerKeyStyle  lipgloss.Style
	footerDescStyle lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all styles from the current ui theme.
// Run calls it again after InitTheme has picked the theme.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	versionStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	labelStyle = lipgloss.NewStyle().
		Foreground(t.Dim).
		Width(12)

	valueStyle = lipgloss.NewStyle().
		Foreground(t.Text)

	successStyle = lipgloss.NewStyle().
		Foreground(t.Success)

	errorStyle = lipgloss.NewStyle().
		Foreground(t.Error)

	pathStyle = lipgloss.NewStyle().
		Foreground(t.Warning)

	footerKeyStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	footerDescStyle = lipgloss.NewStyle().
		Foreground(t.Dim)
}
