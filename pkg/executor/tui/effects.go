package tui

import (
	"context"
	"errors"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/entrhq/graphite/pkg/browser"
	"github.com/entrhq/graphite/pkg/viewer"
)

// dispatch hands msg to the shell, mirrors the new session into the inputs
// and turns the resulting effects into commands.
func (m *model) dispatch(msg browser.Msg) tea.Cmd {
	tr := m.shell.Dispatch(msg)
	m.logger.Debugf("Dispatched %T (persist=%v, effects=%d)", msg, tr.Persist, len(tr.Effects))

	m.syncInputs()
	m.clampCursors()
	m.recalculateLayout()
	m.refreshContent()

	cmds := make([]tea.Cmd, 0, len(tr.Effects))
	for _, eff := range tr.Effects {
		if cmd := m.runEffect(eff); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// syncInputs copies the URL bar text and proxy server from the shell into
// the text inputs without disturbing the cursor when nothing changed.
func (m *model) syncInputs() {
	if text := m.session().URLBar; m.urlInput.Value() != text {
		m.urlInput.SetValue(text)
		m.urlInput.CursorEnd()
	}
	if proxy := m.state().ProxyServer; m.proxyInput.Value() != proxy {
		m.proxyInput.SetValue(proxy)
		m.proxyInput.CursorEnd()
	}

	// Typing goes to the proxy field while settings are open.
	panels := m.session().Panels
	switch {
	case panels.SettingsOpen():
		m.urlInput.Blur()
		m.proxyInput.Focus()
	case panels.DownloadsOpen():
		m.urlInput.Blur()
		m.proxyInput.Blur()
	default:
		m.proxyInput.Blur()
		m.urlInput.Focus()
	}
}

func (m *model) clampCursors() {
	n := len(m.state().Downloads)
	if m.downloadCursor >= n {
		m.downloadCursor = n - 1
	}
	if m.downloadCursor < 0 {
		m.downloadCursor = 0
	}
}

// runEffect returns the command carrying out eff, or nil.
func (m *model) runEffect(eff browser.Effect) tea.Cmd {
	switch eff := eff.(type) {
	case browser.LoadEffect:
		return m.load(eff)

	case browser.HistoryEffect:
		return m.step(eff)

	case browser.DiscardEffect:
		delete(m.pages, eff.TabID)
		delete(m.loadErrs, eff.TabID)
		delete(m.inflight, eff.TabID)
		v, logger := m.viewer, m.logger
		return func() tea.Msg {
			if err := v.Discard(eff.TabID); err != nil {
				logger.Warnf("Discarding tab %d: %v", eff.TabID, err)
			}
			return nil
		}

	case browser.OpenFolderEffect:
		path := filepath.Join(m.downloadsDir, eff.Filename)
		open := m.openFolder
		return func() tea.Msg {
			if err := open(path); err != nil {
				return toastMsg{message: "Could not open folder", details: err.Error(), icon: "✗", isError: true}
			}
			return nil
		}
	}
	return nil
}

// load starts a viewer load for eff. Loads that are not forced are skipped
// when the tab already shows a page.
func (m *model) load(eff browser.LoadEffect) tea.Cmd {
	if browser.IsInternal(eff.URL) {
		return nil
	}
	if !eff.Force {
		if _, shown := m.pages[eff.TabID]; shown {
			return nil
		}
		if _, busy := m.inflight[eff.TabID]; busy {
			return nil
		}
	}

	target := m.router.Target(eff.Proxy, eff.URL)
	seq := m.begin(eff.TabID)
	m.logger.Infof("Loading %s in tab %d", target, eff.TabID)

	return tea.Batch(m.spinner.Tick, m.viewerCmd(eff.TabID, seq, func(ctx context.Context) (*viewer.Page, error) {
		return m.viewer.Load(ctx, eff.TabID, target)
	}))
}

// step moves the tab's viewer history.
func (m *model) step(eff browser.HistoryEffect) tea.Cmd {
	seq := m.begin(eff.TabID)
	return tea.Batch(m.spinner.Tick, m.viewerCmd(eff.TabID, seq, func(ctx context.Context) (*viewer.Page, error) {
		if eff.Direction == browser.Back {
			return m.viewer.Back(ctx, eff.TabID)
		}
		return m.viewer.Forward(ctx, eff.TabID)
	}))
}

// begin records a new in-flight operation for tab and returns its sequence
// number. Results of older operations are dropped.
func (m *model) begin(tabID uint32) int {
	m.loadSeq++
	m.inflight[tabID] = m.loadSeq
	return m.loadSeq
}

func (m *model) viewerCmd(tabID uint32, seq int, run func(context.Context) (*viewer.Page, error)) tea.Cmd {
	parent, timeout := m.ctx, m.loadTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()
		page, err := run(ctx)
		return pageLoadedMsg{tabID: tabID, seq: seq, page: page, err: err}
	}
}

// handlePageLoaded stores a viewer result.
func (m *model) handlePageLoaded(msg pageLoadedMsg) tea.Cmd {
	if m.inflight[msg.tabID] != msg.seq {
		return nil
	}
	delete(m.inflight, msg.tabID)

	if _, ok := m.state().FindTab(msg.tabID); !ok {
		return nil
	}

	switch {
	case errors.Is(msg.err, viewer.ErrNoHistory), errors.Is(msg.err, viewer.ErrNoPage):
		m.refreshContent()
		return showToast("Nothing to go back or forward to", "", "↺", false)
	case msg.err != nil:
		m.logger.Warnf("Tab %d failed to load: %v", msg.tabID, msg.err)
		m.loadErrs[msg.tabID] = msg.err
		if msg.page != nil {
			m.pages[msg.tabID] = msg.page
		}
	default:
		delete(m.loadErrs, msg.tabID)
		m.pages[msg.tabID] = msg.page
	}

	if msg.tabID == m.state().ActiveTabID {
		m.content.GotoTop()
	}
	m.refreshContent()
	return nil
}

func showToast(message, details, icon string, isError bool) tea.Cmd {
	return func() tea.Msg {
		return toastMsg{message: message, details: details, icon: icon, isError: isError}
	}
}
