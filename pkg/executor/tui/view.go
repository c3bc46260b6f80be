package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/entrhq/graphite/pkg/browser"
	"github.com/entrhq/graphite/pkg/ui"
	"github.com/entrhq/graphite/pkg/viewer"
)

const offlineNotice = "Page previews are off. Set viewer.backend to playwright in the config to render pages."

// View renders the entire TUI interface.
// This is called by Bubble Tea whenever the UI needs to be redrawn.
func (m *model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	tabBar := m.renderTabBar()
	navBar := m.renderNavBar()

	_, h := m.contentSize()
	body := m.withPanel(m.content.View(), h)

	sections := []string{tabBar, navBar, body}
	if m.showHelp {
		sections = append(sections, statusBarStyle.Render(m.help.View(m.keys)))
	}
	baseView := lipgloss.JoinVertical(lipgloss.Left, sections...)

	return renderToastOverlay(baseView, m.renderToast(), m.width)
}

// buildHeader renders the landing page banner.
func (m *model) buildHeader() string {
	art := strings.ReplaceAll(ui.GenerateASCIIArt("GRAPHITE"), "\t", "  ")
	return headerStyle.Render(art)
}

// buildTips renders the landing page hints.
func (m *model) buildTips() string {
	engine := m.state().SearchEngine
	return strings.Join([]string{
		tipsStyle.Render(fmt.Sprintf("  Searching with %s", engine)),
		"",
		tipsStyle.Render("  Type an address or a search and press Enter"),
		tipsStyle.Render("  Ctrl+T new tab • Ctrl+W close • Ctrl+PgUp/PgDn switch • F2 settings • F3 downloads • F1 help"),
	}, "\n")
}

// refreshContent redraws the page area for the active tab.
func (m *model) refreshContent() {
	tab, ok := m.state().ActiveTab()
	if !ok {
		m.content.SetContent("")
		return
	}
	m.content.SetContent(m.renderPage(tab))
}

func (m *model) renderPage(tab browser.Tab) string {
	if tab.IsHome() {
		return m.buildHeader() + "\n\n" + m.buildTips()
	}

	width := max(m.content.Width-2, 10)
	page := m.pages[tab.ID]

	var b strings.Builder
	if m.isLoading(tab.ID) && page == nil {
		fmt.Fprintf(&b, "%s Loading %s\n", m.spinner.View(), urlStyle.Render(tab.URL()))
		return b.String()
	}

	if err, failed := m.loadErrs[tab.ID]; failed {
		b.WriteString(errorStyle.Render("✗ Could not load " + tab.URL()))
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(wordWrap(err.Error(), width)))
		b.WriteString("\n\n")
	}

	if page == nil {
		b.WriteString(titleStyle.Render(tab.Title()))
		b.WriteString("\n")
		b.WriteString(urlStyle.Render(tab.URL()))
		b.WriteString("\n\n")
		if _, offline := m.viewer.(*viewer.Nop); offline {
			b.WriteString(tipsStyle.Render(wordWrap(offlineNotice, width)))
		}
		return strings.TrimRight(b.String(), "\n")
	}

	title := page.Title
	if title == "" {
		title = tab.Title()
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(urlStyle.Render(page.URL))
	b.WriteString("\n\n")

	text := page.Text
	if text == "" {
		if _, offline := m.viewer.(*viewer.Nop); offline {
			text = offlineNotice
		} else {
			text = "This page has no readable text."
		}
		b.WriteString(tipsStyle.Render(wordWrap(text, width)))
		return b.String()
	}
	b.WriteString(wordWrap(text, width))
	if page.Truncated {
		b.WriteString("\n\n")
		b.WriteString(tipsStyle.Render("[truncated]"))
	}
	return b.String()
}
