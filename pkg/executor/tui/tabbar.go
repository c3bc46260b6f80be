package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/entrhq/graphite/pkg/browser"
)

const (
	// maxTitleLen is the maximum display length for a tab title.
	maxTitleLen = 20
	// minTitleLen is the length titles shrink to when many tabs are open.
	minTitleLen = 3
	// separatorChar is the character between tabs.
	separatorChar = "│"
	// closeChar marks the close button inside each tab.
	closeChar = "×"
)

// tabZone records where a tab (or the "+" button) is on the tab bar.
type tabZone struct {
	startX, endX int
	closeX       int // clicks at or after closeX hit the close button
	tabID        uint32
	isPlus       bool
}

// navAction identifies a navigation bar button.
type navAction int

const (
	navBack navAction = iota
	navForward
	navReload
	navHome
	navSettings
	navDownloads
)

// navZone records where a navigation button is.
type navZone struct {
	startX, endX int
	action       navAction
}

var (
	leftButtons = []struct {
		label  string
		action navAction
	}{
		{"◀", navBack},
		{"▶", navForward},
		{"⟳", navReload},
		{"⌂", navHome},
	}
	rightButtons = []struct {
		label  string
		action navAction
	}{
		{"⚙", navSettings},
		{"↓", navDownloads},
	}

	// navButtonsWidth is the width taken by all navigation buttons.
	navButtonsWidth = (len(leftButtons) + len(rightButtons)) * 3
)

// renderTabBar renders the tab bar and records its click zones.
func (m *model) renderTabBar() string {
	state := m.state()
	dragID, dragging := m.session().Dragging()

	m.tabZones = m.tabZones[:0]

	separator := separatorStyle.Render(separatorChar)
	sepWidth := lipgloss.Width(separator)
	plusView := tipsStyle.Render(" + ")
	plusWidth := lipgloss.Width(plusView)

	// Titles shrink so that every tab fits.
	n := len(state.Tabs)
	titleLen := maxTitleLen
	if n > 0 {
		perTab := (m.width-plusWidth)/n - sepWidth - 6
		titleLen = min(max(perTab, minTitleLen), maxTitleLen)
	}

	var parts []string
	x := 0
	for i, tab := range state.Tabs {
		if i > 0 {
			parts = append(parts, separator)
			x += sepWidth
		}

		style := inactiveTabStyle
		switch {
		case dragging && tab.ID == dragID:
			style = draggedTabStyle
		case tab.ID == state.ActiveTabID:
			style = activeTabStyle
		}

		view := style.Render(m.tabLabel(tab, titleLen))
		w := lipgloss.Width(view)
		m.tabZones = append(m.tabZones, tabZone{
			startX: x,
			endX:   x + w,
			closeX: x + w - 3,
			tabID:  tab.ID,
		})
		parts = append(parts, view)
		x += w
	}

	parts = append(parts, separator)
	x += sepWidth
	m.tabZones = append(m.tabZones, tabZone{startX: x, endX: x + plusWidth, isPlus: true})
	parts = append(parts, plusView)

	line := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	if w := lipgloss.Width(line); w < m.width {
		line += strings.Repeat(" ", m.width-w)
	}
	return line
}

// tabLabel is the text inside one tab: an icon, the title and the close button.
func (m *model) tabLabel(tab browser.Tab, titleLen int) string {
	icon := "◦"
	switch {
	case m.isLoading(tab.ID):
		icon = m.spinner.View()
	case tab.IsHome():
		icon = "⌂"
	}
	return icon + " " + truncate(tab.Title(), titleLen) + " " + closeChar
}

// isLoading reports whether a viewer operation is running for the tab.
func (m *model) isLoading(tabID uint32) bool {
	_, ok := m.inflight[tabID]
	return ok
}

// renderNavBar renders the navigation buttons around the URL bar and records
// their click zones.
func (m *model) renderNavBar() string {
	panels := m.session().Panels
	m.navZones = m.navZones[:0]

	var left []string
	x := 0
	for _, b := range leftButtons {
		view := navButtonStyle.Render(b.label)
		w := lipgloss.Width(view)
		m.navZones = append(m.navZones, navZone{startX: x, endX: x + w, action: b.action})
		left = append(left, view)
		x += w
	}

	urlBox := urlBoxStyle.
		Width(max(m.width-navButtonsWidth-2, 12)).
		Render(tipsStyle.Render("›") + " " + m.urlInput.View())
	x += lipgloss.Width(urlBox)

	var right []string
	for _, b := range rightButtons {
		style := navButtonStyle
		if (b.action == navSettings && panels.SettingsOpen()) || (b.action == navDownloads && panels.DownloadsOpen()) {
			style = navButtonActiveStyle
		}
		view := style.Render(b.label)
		w := lipgloss.Width(view)
		m.navZones = append(m.navZones, navZone{startX: x, endX: x + w, action: b.action})
		right = append(right, view)
		x += w
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Center,
		lipgloss.JoinHorizontal(lipgloss.Center, left...),
		urlBox,
		lipgloss.JoinHorizontal(lipgloss.Center, right...),
	)
}
