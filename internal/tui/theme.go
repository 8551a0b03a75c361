// Package tui holds golta's terminal presentation: styles, the download
// progress bar and the install prompt.
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	colorPrimary = lipgloss.Color("#00ADD8") // Go blue
	colorSuccess = lipgloss.Color("#10B981") // Green
	colorDanger  = lipgloss.Color("#EF4444") // Red
	colorMuted   = lipgloss.Color("#6B7280") // Gray
	colorWarning = lipgloss.Color("#F59E0B") // Amber
)

// Styles shared by the CLI commands.
var (
	// Active version marker and headings.
	ActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	HeadingStyle = lipgloss.NewStyle().
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	WarningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(colorDanger)

	// Tags such as "(default, pinned)" and "(unstable)".
	MutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	promptStyle = lipgloss.NewStyle().
			Bold(true)

	promptHintStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)
