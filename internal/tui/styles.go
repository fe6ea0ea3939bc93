package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/txt2pptx/internal/ui"
)

// Style variables for the dashboard, rebuilt from the ui theme by
// initTUIStyles.
var (
	panelStyle     lipgloss.Style
	headerStyle    lipgloss.Style
	titleStyle     lipgloss.Style
	dimStyle       lipgloss.Style
	elapsedStyle   lipgloss.Style
	phaseStyle     lipgloss.Style
	barStyle       lipgloss.Style
	barEmptyStyle  lipgloss.Style
	layoutStyle    lipgloss.Style
	successStyle   lipgloss.Style
	errorStyle     lipgloss.Style
	warningStyle   lipgloss.Style
	linkStyle      lipgloss.Style
	sparklineStyle lipgloss.Style
	statusStyles   map[string]lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all styles from the current ui theme. Run calls it
// again after the theme has been chosen.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text).
		Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	dimStyle = lipgloss.NewStyle().Foreground(t.Dim)
	elapsedStyle = lipgloss.NewStyle().Foreground(t.Accent)
	phaseStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Text)
	barStyle = lipgloss.NewStyle().Foreground(t.Accent)
	barEmptyStyle = lipgloss.NewStyle().Foreground(t.Dim)
	layoutStyle = lipgloss.NewStyle().Foreground(t.Dim)
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Success)
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Error)
	warningStyle = lipgloss.NewStyle().Foreground(t.Warning)
	linkStyle = lipgloss.NewStyle().Underline(true).Foreground(t.Info)
	sparklineStyle = lipgloss.NewStyle().Foreground(t.Accent)

	statusStyles = map[string]lipgloss.Style{
		"Idle":      dimStyle,
		"Running":   lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
		"Succeeded": successStyle,
		"Failed":    errorStyle,
	}
}
