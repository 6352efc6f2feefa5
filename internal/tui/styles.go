package tui

import "github.com/charmbracelet/lipgloss"

// Shared lipgloss styles. Kept deliberately plain so the client renders the
// same in terminals without truecolor support.
var (
	appStyle   = lipgloss.NewStyle().Padding(1, 2)
	titleStyle = lipgloss.NewStyle().Bold(true)
	helpStyle  = lipgloss.NewStyle().Faint(true)
	errorStyle = lipgloss.NewStyle().Bold(true)

	// overlayBoxStyle frames the accept/reject confirmation prompt.
	overlayBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
)
