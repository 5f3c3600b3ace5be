package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Base colors
	colorFg        = lipgloss.Color("#a9b1d6")
	colorBorder    = lipgloss.Color("#3b4261")
	colorAccent    = lipgloss.Color("#7aa2f7")
	colorGreen     = lipgloss.Color("#9ece6a")
	colorYellow    = lipgloss.Color("#e0af68")
	colorRed       = lipgloss.Color("#f7768e")
	colorDim       = lipgloss.Color("#565f89")
	colorTitle     = lipgloss.Color("#c0caf5")
	colorStatusBar = lipgloss.Color("#24283b")

	// Panel styles
	panelBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder)

	activePanelBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorAccent)

	// Text styles
	titleStyle = lipgloss.NewStyle().
			Foreground(colorTitle).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	accentStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	// Role styles for the transcript panel
	roleUserStyle      = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	roleAssistantStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	roleToolStyle      = lipgloss.NewStyle().Foreground(colorYellow)
	diagStyle          = lipgloss.NewStyle().Foreground(colorRed)

	// Status bar
	statusBarStyle = lipgloss.NewStyle().
			Background(colorStatusBar).
			Foreground(colorFg).
			Padding(0, 1)

	// Selected item
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color("#3b82f6")).
			Bold(true)
)
