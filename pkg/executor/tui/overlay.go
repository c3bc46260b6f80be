package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderToast renders a toast notification
func (m *model) renderToast() string {
	if !m.toast.active || time.Now().After(m.toast.showUntil) {
		return ""
	}

	boxWidth := min(max(m.width/2, 30), m.width-4)

	var content strings.Builder
	content.WriteString(fmt.Sprintf("%s %s", m.toast.icon, m.toast.message))
	if m.toast.details != "" {
		content.WriteString("\n")
		content.WriteString(truncate(m.toast.details, boxWidth-4))
	}

	borderColor := slateBlue
	if m.toast.isError {
		borderColor = errorRed
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(boxWidth)

	return boxStyle.Render(content.String())
}

// renderToastOverlay draws toastContent over the bottom lines of baseView,
// right-aligned, without changing the base view's layout.
func renderToastOverlay(baseView string, toastContent string, width int) string {
	if toastContent == "" {
		return baseView
	}

	baseLines := strings.Split(baseView, "\n")
	toastLines := strings.Split(strings.TrimRight(toastContent, "\n"), "\n")

	// Keep the last line (help bar) visible.
	startLine := max(len(baseLines)-1-len(toastLines), 0)
	toastWidth := lipgloss.Width(toastContent)
	padding := max(width-toastWidth-1, 0)

	var result strings.Builder
	for i, line := range baseLines {
		toastLineIdx := i - startLine
		if toastLineIdx >= 0 && toastLineIdx < len(toastLines) {
			result.WriteString(strings.Repeat(" ", padding))
			result.WriteString(toastLines[toastLineIdx])
		} else {
			result.WriteString(line)
		}
		if i < len(baseLines)-1 {
			result.WriteString("\n")
		}
	}

	return result.String()
}
