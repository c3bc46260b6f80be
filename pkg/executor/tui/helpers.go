package tui

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
)

// writeClipboard copies text to the system clipboard.
func writeClipboard(text string) error {
	return clipboard.WriteAll(text)
}

// truncate shortens s to at most width cells, marking the cut with "…".
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// wordWrap wraps text to fit within the specified width while preserving paragraph breaks
func wordWrap(text string, width int) string {
	if width <= 0 {
		width = 80
	}

	var result strings.Builder
	paragraphs := strings.Split(text, "\n")

	for i, para := range paragraphs {
		if i > 0 {
			result.WriteString("\n")
		}

		words := strings.Fields(para)
		lineWidth := 0
		for _, word := range words {
			wordWidth := lipgloss.Width(word)

			// A word longer than the line is broken into chunks.
			for wordWidth > width {
				if lineWidth > 0 {
					result.WriteString("\n")
					lineWidth = 0
				}
				runes := []rune(word)
				cut := min(width, len(runes))
				result.WriteString(string(runes[:cut]))
				result.WriteString("\n")
				word = string(runes[cut:])
				wordWidth = lipgloss.Width(word)
			}
			if word == "" {
				continue
			}

			switch {
			case lineWidth == 0:
				result.WriteString(word)
				lineWidth = wordWidth
			case lineWidth+1+wordWidth > width:
				result.WriteString("\n")
				result.WriteString(word)
				lineWidth = wordWidth
			default:
				result.WriteString(" ")
				result.WriteString(word)
				lineWidth += 1 + wordWidth
			}
		}
	}

	return strings.TrimRight(result.String(), "\n")
}
