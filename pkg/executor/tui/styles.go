package tui

import "github.com/charmbracelet/lipgloss"

// Color Palette
// This is the single source of truth for all TUI colors.
// Use these constants throughout the TUI to ensure visual consistency.
var (
	// Primary Colors - Core brand colors
	slateBlue   = lipgloss.Color("#A5B4FC") // Soft slate blue - primary accent
	skyBlue     = lipgloss.Color("#BAE6FD") // Lighter sky accent - secondary
	mintGreen   = lipgloss.Color("#A8E6CF") // Soft mint green - success/complete states
	mutedGray   = lipgloss.Color("#6B7280") // Muted gray - secondary text
	brightWhite = lipgloss.Color("#F9FAFB") // Bright white - primary text
	tabGray     = lipgloss.Color("#374151") // Active tab background
	errorRed    = lipgloss.Color("203")     // Errors
)

// Common Styles
// These are pre-configured styles for common UI elements.
// Use these as base styles and customize as needed.
var (
	// Text Styles
	headerStyle = lipgloss.NewStyle().
			Foreground(slateBlue).
			Bold(true)

	tipsStyle = lipgloss.NewStyle().
			Foreground(mutedGray)

	titleStyle = lipgloss.NewStyle().
			Foreground(brightWhite).
			Bold(true)

	urlStyle = lipgloss.NewStyle().
			Foreground(skyBlue).
			Underline(true)

	completeStyle = lipgloss.NewStyle().
			Foreground(mintGreen)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorRed)

	// Tab bar
	activeTabStyle = lipgloss.NewStyle().
			Background(tabGray).
			Foreground(brightWhite).
			Bold(true).
			Padding(0, 1)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(mutedGray).
				Padding(0, 1)

	draggedTabStyle = lipgloss.NewStyle().
			Foreground(slateBlue).
			Italic(true).
			Padding(0, 1)

	separatorStyle = lipgloss.NewStyle().Foreground(tabGray)

	// Navigation bar
	navButtonStyle = lipgloss.NewStyle().
			Foreground(skyBlue).
			Padding(0, 1)

	navButtonActiveStyle = lipgloss.NewStyle().
				Foreground(slateBlue).
				Bold(true).
				Padding(0, 1)

	// Container Styles
	statusBarStyle = lipgloss.NewStyle().
			Foreground(mutedGray).
			Padding(0, 1)

	urlBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(slateBlue).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(slateBlue).
			Padding(0, 1)

	// PanelTitleStyle is used for side panel titles
	PanelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(slateBlue)

	// PanelSubtitleStyle is used for panel section headings
	PanelSubtitleStyle = lipgloss.NewStyle().
				Foreground(mutedGray)

	// PanelHelpStyle is used for help text and hints
	PanelHelpStyle = lipgloss.NewStyle().
			Foreground(mutedGray).
			Italic(true)

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(slateBlue).
				Bold(true)
)
