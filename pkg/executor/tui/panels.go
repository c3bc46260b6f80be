package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/entrhq/graphite/pkg/browser"
)

// panelWidth is the total width of an open side panel, borders included.
const panelWidth = 34

type panelLineKind int

const (
	lineEngine panelLineKind = iota
	lineDownload
)

// panelLine records a clickable row of the open panel.
type panelLine struct {
	y        int
	kind     panelLineKind
	engine   browser.SearchEngine
	download int // index into State.Downloads
}

// contentTop is the first screen row below the navigation bar.
const contentTop = tabBarHeight + navBarHeight

// renderPanel renders whichever panel is open, or "" when none is.
func (m *model) renderPanel(height int) string {
	m.panelLines = m.panelLines[:0]
	m.panelX = m.width - panelWidth

	var lines []string
	switch m.session().Panels.Open() {
	case browser.PanelSettings:
		lines = m.settingsLines()
	case browser.PanelDownloads:
		lines = m.downloadsLines()
	default:
		m.panelX = m.width
		return ""
	}

	return panelStyle.
		Width(panelWidth - 2).
		Height(max(height-2, 1)).
		Render(strings.Join(lines, "\n"))
}

// addLine appends text to lines and, when target is non-nil, records it as a
// click target. The first inner row sits below the panel's top border.
func (m *model) addLine(lines []string, text string, target *panelLine) []string {
	if target != nil {
		target.y = contentTop + 1 + len(lines)
		m.panelLines = append(m.panelLines, *target)
	}
	return append(lines, text)
}

func (m *model) settingsLines() []string {
	state := m.state()
	inner := panelWidth - 4

	lines := []string{
		PanelTitleStyle.Render("Settings"),
		"",
		PanelSubtitleStyle.Render("Search engine"),
	}
	for _, e := range browser.SearchEngines() {
		text := "○ " + e.String()
		if e == state.SearchEngine {
			text = selectedItemStyle.Render("● " + e.String())
		}
		lines = m.addLine(lines, text, &panelLine{kind: lineEngine, engine: e})
	}

	lines = append(lines,
		"",
		PanelSubtitleStyle.Render("Proxy server"),
		m.proxyInput.View(),
		"",
		PanelHelpStyle.Width(inner).Render("↑/↓ engine • type proxy • esc close"),
	)
	return lines
}

func (m *model) downloadsLines() []string {
	downloads := m.state().Downloads
	inner := panelWidth - 4

	lines := []string{
		PanelTitleStyle.Render("Downloads"),
		"",
	}
	if len(downloads) == 0 {
		lines = append(lines, tipsStyle.Render("No downloads"))
	}
	for i, d := range downloads {
		status := " "
		if d.Completed {
			status = completeStyle.Render("✓")
		}
		name := truncate(d.Filename, inner-4)
		text := "  " + status + " " + name
		if i == m.downloadCursor {
			text = selectedItemStyle.Render("▸") + " " + status + " " + selectedItemStyle.Render(name)
		}
		lines = m.addLine(lines, text, &panelLine{kind: lineDownload, download: i})
	}

	lines = append(lines,
		"",
		PanelHelpStyle.Width(inner).Render("d delete • o open folder • esc close"),
	)
	return lines
}

// panelLineAt returns the clickable panel row at screen row y.
func (m *model) panelLineAt(y int) (panelLine, bool) {
	for _, l := range m.panelLines {
		if l.y == y {
			return l, true
		}
	}
	return panelLine{}, false
}

// withPanel places the open panel to the right of the page content.
func (m *model) withPanel(content string, height int) string {
	panel := m.renderPanel(height)
	if panel == "" {
		return content
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
}
