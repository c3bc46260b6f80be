package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/entrhq/graphite/pkg/browser"
)

const (
	toastDuration = 3 * time.Second

	// Rows above the content area: tab bar, and the bordered navigation bar.
	tabBarHeight = 1
	navBarHeight = 3
)

// Init restores the active tab's page and starts the cursor blinking.
func (m *model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if tab, ok := m.state().ActiveTab(); ok && !tab.IsHome() {
		state := m.state()
		cmds = append(cmds, m.load(browser.LoadEffect{TabID: tab.ID, URL: tab.URL(), Proxy: state.ProxyServer}))
	}
	return tea.Batch(cmds...)
}

// Update handles all state updates for the TUI model.
// This is the main event loop handler for Bubble Tea.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m, m.handleWindowResize(msg)

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case pageLoadedMsg:
		return m, m.handlePageLoaded(msg)

	case toastMsg:
		m.toast = &toastNotification{
			active:    true,
			message:   msg.message,
			details:   msg.details,
			icon:      msg.icon,
			isError:   msg.isError,
			showUntil: time.Now().Add(toastDuration),
		}
		return m, tea.Tick(toastDuration, func(time.Time) tea.Msg { return toastExpiredMsg{} })

	case toastExpiredMsg:
		if time.Now().After(m.toast.showUntil) {
			m.toast.active = false
		}
		return m, nil

	case spinner.TickMsg:
		if len(m.inflight) == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refreshContent()
		return m, cmd
	}

	// Cursor blink and anything else the inputs care about.
	return m, m.updateInputs(msg)
}

// handleWindowResize processes window size change events
func (m *model) handleWindowResize(msg tea.WindowSizeMsg) tea.Cmd {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true
	m.recalculateLayout()
	m.refreshContent()
	return nil
}

// recalculateLayout sizes the URL input and the content viewport.
func (m *model) recalculateLayout() {
	m.urlInput.Width = max(m.width-navButtonsWidth-8, 10)
	m.proxyInput.Width = panelWidth - 8
	m.help.Width = m.width

	w, h := m.contentSize()
	m.content.Width = w
	m.content.Height = h
}

// contentSize returns the size of the page area, which shrinks when a panel
// is open.
func (m *model) contentSize() (int, int) {
	w := m.width
	if m.session().Panels.Open() != browser.PanelNone {
		w -= panelWidth
	}
	h := m.height - tabBarHeight - navBarHeight - m.bottomBarHeight()
	return max(w, 10), max(h, 3)
}

func (m *model) bottomBarHeight() int {
	if !m.showHelp {
		return 0
	}
	return lipgloss.Height(m.help.View(m.keys))
}

// handleKey maps key presses to browser messages.
//
//nolint:gocyclo
func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	panels := m.session().Panels

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.keys.NewTab):
		return m.dispatch(browser.NewTabMsg{})

	case key.Matches(msg, m.keys.CloseTab):
		return m.dispatch(browser.CloseTabMsg{ID: m.state().ActiveTabID})

	case key.Matches(msg, m.keys.NextTab):
		return m.selectRelative(1)

	case key.Matches(msg, m.keys.PrevTab):
		return m.selectRelative(-1)

	case key.Matches(msg, m.keys.MoveLeft):
		return m.moveActive(-1)

	case key.Matches(msg, m.keys.MoveRight):
		return m.moveActive(1)

	case key.Matches(msg, m.keys.Back):
		return m.dispatch(browser.GoBackMsg{})

	case key.Matches(msg, m.keys.Forward):
		return m.dispatch(browser.GoForwardMsg{})

	case key.Matches(msg, m.keys.Reload):
		return m.dispatch(browser.ReloadMsg{})

	case key.Matches(msg, m.keys.Home):
		return m.dispatch(browser.GoHomeMsg{})

	case key.Matches(msg, m.keys.Settings):
		return m.dispatch(browser.ToggleSettingsPanelMsg{})

	case key.Matches(msg, m.keys.Downloads):
		return m.dispatch(browser.ToggleDownloadsPanelMsg{})

	case key.Matches(msg, m.keys.ClosePanels):
		if panels.Open() == browser.PanelNone {
			return nil
		}
		return m.dispatch(browser.CloseAllPanelsMsg{})

	case key.Matches(msg, m.keys.CopyURL):
		return m.copyActiveURL()

	case key.Matches(msg, m.keys.Help):
		// The first press reveals a hidden help line.
		if !m.showHelp {
			m.showHelp = true
		} else {
			m.help.ShowAll = !m.help.ShowAll
		}
		m.recalculateLayout()
		return nil
	}

	switch {
	case panels.SettingsOpen():
		return m.handleSettingsKey(msg)
	case panels.DownloadsOpen():
		return m.handleDownloadsKey(msg)
	}

	if key.Matches(msg, m.keys.Navigate) {
		return m.dispatch(browser.NavigateMsg{Input: m.urlInput.Value()})
	}
	if key.Matches(msg, m.keys.Up, m.keys.Down) {
		var cmd tea.Cmd
		m.content, cmd = m.content.Update(msg)
		return cmd
	}
	return m.updateInputs(msg)
}

// handleSettingsKey picks search engines with the arrows and sends every
// edit of the proxy field to the shell.
func (m *model) handleSettingsKey(msg tea.KeyMsg) tea.Cmd {
	engine := m.state().SearchEngine
	engines := browser.SearchEngines()

	switch {
	case key.Matches(msg, m.keys.Up):
		idx := (int(engine) - 1 + len(engines)) % len(engines)
		return m.dispatch(browser.SetSearchEngineMsg{Engine: engines[idx]})
	case key.Matches(msg, m.keys.Down):
		idx := (int(engine) + 1) % len(engines)
		return m.dispatch(browser.SetSearchEngineMsg{Engine: engines[idx]})
	case key.Matches(msg, m.keys.Navigate):
		return nil
	}
	return m.updateInputs(msg)
}

func (m *model) handleDownloadsKey(msg tea.KeyMsg) tea.Cmd {
	downloads := m.state().Downloads

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.downloadCursor > 0 {
			m.downloadCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.downloadCursor < len(downloads)-1 {
			m.downloadCursor++
		}
	case key.Matches(msg, m.keys.Delete):
		if len(downloads) > 0 {
			return m.dispatch(browser.DeleteDownloadMsg{ID: downloads[m.downloadCursor].ID})
		}
	case key.Matches(msg, m.keys.OpenFolder):
		if len(downloads) > 0 {
			return m.dispatch(browser.OpenDownloadFolderMsg{ID: downloads[m.downloadCursor].ID})
		}
	}
	return nil
}

// updateInputs feeds msg to the focused text input and reports edits to the
// shell.
func (m *model) updateInputs(msg tea.Msg) tea.Cmd {
	var urlCmd, proxyCmd, cmd tea.Cmd

	before := m.urlInput.Value()
	m.urlInput, urlCmd = m.urlInput.Update(msg)
	if after := m.urlInput.Value(); after != before {
		cmd = m.dispatch(browser.UpdateURLBarMsg{Text: after})
	}

	before = m.proxyInput.Value()
	m.proxyInput, proxyCmd = m.proxyInput.Update(msg)
	if after := m.proxyInput.Value(); after != before {
		cmd = tea.Batch(cmd, m.dispatch(browser.SetProxyServerMsg{Server: after}))
	}

	return tea.Batch(urlCmd, proxyCmd, cmd)
}

// selectRelative activates the tab delta positions away, wrapping around.
func (m *model) selectRelative(delta int) tea.Cmd {
	state := m.state()
	n := len(state.Tabs)
	if n <= 1 {
		return nil
	}
	idx := (state.TabIndex(state.ActiveTabID) + delta + n) % n
	return m.dispatch(browser.SelectTabMsg{ID: state.Tabs[idx].ID})
}

// moveActive drags the active tab one position left or right.
func (m *model) moveActive(delta int) tea.Cmd {
	state := m.state()
	idx := state.TabIndex(state.ActiveTabID)
	target := idx + delta
	if idx < 0 || target < 0 || target >= len(state.Tabs) {
		return nil
	}
	return tea.Batch(
		m.dispatch(browser.DragStartMsg{ID: state.ActiveTabID}),
		m.dispatch(browser.DragOverMsg{ID: state.Tabs[target].ID}),
		m.dispatch(browser.DragEndMsg{}),
	)
}

// copyActiveURL copies the active tab's address to the clipboard.
func (m *model) copyActiveURL() tea.Cmd {
	tab, ok := m.state().ActiveTab()
	if !ok || tab.IsHome() {
		return showToast("Nothing to copy", "", "ℹ", false)
	}
	if err := m.copyText(tab.URL()); err != nil {
		m.logger.Warnf("Clipboard write failed: %v", err)
		return showToast("Could not copy URL", err.Error(), "✗", true)
	}
	return showToast("Copied URL", tab.URL(), "✓", false)
}
