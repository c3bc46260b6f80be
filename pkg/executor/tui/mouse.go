package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/entrhq/graphite/pkg/browser"
)

// handleMouse hit-tests msg against the zones recorded by the last View.
func (m *model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
		var cmd tea.Cmd
		m.content, cmd = m.content.Update(msg)
		return cmd
	}

	dragID, dragging := m.session().Dragging()
	switch msg.Action {
	case tea.MouseActionMotion:
		if !dragging || msg.Y != 0 {
			return nil
		}
		if z, ok := m.tabZoneAt(msg.X); ok && !z.isPlus && z.tabID != dragID {
			return m.dispatch(browser.DragOverMsg{ID: z.tabID})
		}
		return nil

	case tea.MouseActionRelease:
		if dragging {
			return m.dispatch(browser.DragEndMsg{})
		}
		return nil

	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
	default:
		return nil
	}

	switch {
	case msg.Y < tabBarHeight:
		return m.clickTabBar(msg.X)
	case msg.Y < contentTop:
		return m.clickNavBar(msg.X)
	}

	if m.session().Panels.Open() == browser.PanelNone {
		return nil
	}
	if msg.X < m.panelX {
		return m.dispatch(browser.CloseAllPanelsMsg{})
	}
	return m.clickPanel(msg.Y)
}

func (m *model) tabZoneAt(x int) (tabZone, bool) {
	for _, z := range m.tabZones {
		if x >= z.startX && x < z.endX {
			return z, true
		}
	}
	return tabZone{}, false
}

func (m *model) clickTabBar(x int) tea.Cmd {
	z, ok := m.tabZoneAt(x)
	switch {
	case !ok:
		return nil
	case z.isPlus:
		return m.dispatch(browser.NewTabMsg{})
	case x >= z.closeX:
		return m.dispatch(browser.CloseTabMsg{ID: z.tabID})
	}
	return tea.Batch(
		m.dispatch(browser.SelectTabMsg{ID: z.tabID}),
		m.dispatch(browser.DragStartMsg{ID: z.tabID}),
	)
}

func (m *model) clickNavBar(x int) tea.Cmd {
	for _, z := range m.navZones {
		if x < z.startX || x >= z.endX {
			continue
		}
		switch z.action {
		case navBack:
			return m.dispatch(browser.GoBackMsg{})
		case navForward:
			return m.dispatch(browser.GoForwardMsg{})
		case navReload:
			return m.dispatch(browser.ReloadMsg{})
		case navHome:
			return m.dispatch(browser.GoHomeMsg{})
		case navSettings:
			return m.dispatch(browser.ToggleSettingsPanelMsg{})
		case navDownloads:
			return m.dispatch(browser.ToggleDownloadsPanelMsg{})
		}
	}
	return nil
}

func (m *model) clickPanel(y int) tea.Cmd {
	line, ok := m.panelLineAt(y)
	if !ok {
		return nil
	}
	switch line.kind {
	case lineEngine:
		return m.dispatch(browser.SetSearchEngineMsg{Engine: line.engine})
	case lineDownload:
		m.downloadCursor = line.download
	}
	return nil
}
