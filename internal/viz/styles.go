package viz

import "github.com/charmbracelet/lipgloss"

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true).
			MarginBottom(1)

	CanvasStyle = lipgloss.NewStyle().Padding(0, 1)

	StatsStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2)

	LabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	ValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	TruncatedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)

	HelpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)
