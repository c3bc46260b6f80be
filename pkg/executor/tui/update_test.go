package tui

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/graphite/pkg/browser"
	"github.com/entrhq/graphite/pkg/persist"
	"github.com/entrhq/graphite/pkg/viewer"
)

func TestUpdate_Navigate(t *testing.T) {
	t.Run("bare domain loads through the viewer", func(t *testing.T) {
		fv := &fakeViewer{}
		m, _ := newTestModel(t, Options{Viewer: fv})

		msgs := navigate(t, m, "example.com")

		loads := pageLoads(msgs)
		require.Len(t, loads, 1)
		assert.Equal(t, []string{"https://example.com"}, fv.loads)

		tab := m.shell.ActiveTab()
		assert.Equal(t, "https://example.com", tab.URL())
		assert.Equal(t, "https://example.com", m.urlInput.Value())
		require.Contains(t, m.pages, tab.ID)
		assert.False(t, m.isLoading(tab.ID))
		assert.Contains(t, m.View(), "Example Domain")
	})

	t.Run("search text uses the selected engine", func(t *testing.T) {
		fv := &fakeViewer{}
		m, _ := newTestModel(t, Options{Viewer: fv})

		navigate(t, m, "golang tui")

		require.Len(t, fv.loads, 1)
		assert.Equal(t, browser.DefaultSearchEngine.SearchURL("golang tui"), fv.loads[0])
	})

	t.Run("proxy rewrites the viewer target only", func(t *testing.T) {
		fv := &fakeViewer{}
		m, _ := newTestModel(t, Options{Viewer: fv})
		m.dispatch(browser.SetProxyServerMsg{Server: "https://proxy.test/"})

		navigate(t, m, "https://example.com/a b")

		require.Len(t, fv.loads, 1)
		assert.Equal(t, "https://proxy.test/?url=https%3A%2F%2Fexample.com%2Fa%20b", fv.loads[0])
		assert.Equal(t, "https://example.com/a b", m.shell.ActiveTab().URL())
	})

	t.Run("bypassed hosts skip the proxy", func(t *testing.T) {
		fv := &fakeViewer{}
		router, err := viewer.NewRouter([]string{"*.internal"})
		require.NoError(t, err)
		m, _ := newTestModel(t, Options{Viewer: fv, Router: router})
		m.dispatch(browser.SetProxyServerMsg{Server: "https://proxy.test/"})

		navigate(t, m, "http://db.internal/")

		assert.Equal(t, []string{"http://db.internal/"}, fv.loads)
	})

	t.Run("navigation is persisted", func(t *testing.T) {
		m, kv := newTestModel(t, Options{Viewer: &fakeViewer{}})
		navigate(t, m, "example.org")

		restored := persist.NewAdapter(kv, nil).Load()
		tab, ok := restored.ActiveTab()
		require.True(t, ok)
		assert.Equal(t, "https://example.org", tab.URL())
	})

	t.Run("viewer errors are shown on the page", func(t *testing.T) {
		fv := &fakeViewer{loadErr: errors.New("net::ERR_NAME_NOT_RESOLVED")}
		m, _ := newTestModel(t, Options{Viewer: fv})

		navigate(t, m, "nowhere.invalid")

		view := m.View()
		assert.Contains(t, view, "Could not load")
		assert.Contains(t, view, "ERR_NAME_NOT_RESOLVED")
	})
}

func TestUpdate_StaleResultsAreDropped(t *testing.T) {
	m, _ := newTestModel(t, Options{Viewer: &fakeViewer{}})
	tabID := m.state().ActiveTabID

	old := m.begin(tabID)
	current := m.begin(tabID)

	m.Update(pageLoadedMsg{tabID: tabID, seq: old, page: &viewer.Page{URL: "https://old.example"}})
	assert.NotContains(t, m.pages, tabID)
	assert.True(t, m.isLoading(tabID))

	m.Update(pageLoadedMsg{tabID: tabID, seq: current, page: &viewer.Page{URL: "https://new.example"}})
	require.Contains(t, m.pages, tabID)
	assert.Equal(t, "https://new.example", m.pages[tabID].URL)
	assert.False(t, m.isLoading(tabID))
}

func TestUpdate_ResultForClosedTabIsDropped(t *testing.T) {
	m, _ := newTestModel(t, Options{Viewer: &fakeViewer{}})
	seq := m.begin(42)

	m.Update(pageLoadedMsg{tabID: 42, seq: seq, page: &viewer.Page{URL: "https://gone.example"}})

	assert.NotContains(t, m.pages, uint32(42))
	assert.False(t, m.isLoading(42))
}

func TestUpdate_Tabs(t *testing.T) {
	t.Run("ctrl+t opens a home tab", func(t *testing.T) {
		m, _ := newTestModel(t, Options{Viewer: &fakeViewer{}})

		press(m, tea.KeyCtrlT)

		state := m.state()
		require.Len(t, state.Tabs, 2)
		assert.Equal(t, state.Tabs[1].ID, state.ActiveTabID)
		assert.True(t, state.Tabs[1].IsHome())
		assert.Empty(t, m.urlInput.Value())
	})

	t.Run("ctrl+w discards the viewer page", func(t *testing.T) {
		fv := &fakeViewer{}
		m, _ := newTestModel(t, Options{Viewer: fv})
		first := m.state().ActiveTabID
		press(m, tea.KeyCtrlT)
		navigate(t, m, "example.com")
		closed := m.state().ActiveTabID

		settle(m, press(m, tea.KeyCtrlW))

		assert.Equal(t, []uint32{closed}, fv.discarded)
		assert.NotContains(t, m.pages, closed)
		require.Len(t, m.state().Tabs, 1)
		assert.Equal(t, first, m.state().ActiveTabID)

		// The last tab stays open.
		assert.Nil(t, press(m, tea.KeyCtrlW))
		assert.Len(t, m.state().Tabs, 1)
	})

	t.Run("switching wraps around and restores the page", func(t *testing.T) {
		fv := &fakeViewer{}
		m, _ := newTestModel(t, Options{Viewer: fv})
		navigate(t, m, "example.com")
		first := m.state().ActiveTabID
		press(m, tea.KeyCtrlT)

		msgs := settle(m, press(m, tea.KeyCtrlPgDown))

		assert.Equal(t, first, m.state().ActiveTabID)
		assert.Equal(t, "https://example.com", m.urlInput.Value())
		// The page is already held, so switching back does not reload it.
		assert.Empty(t, pageLoads(msgs))
		assert.Len(t, fv.loads, 1)

		press(m, tea.KeyCtrlPgUp)
		assert.NotEqual(t, first, m.state().ActiveTabID)
	})

	t.Run("moving the active tab reorders and persists", func(t *testing.T) {
		m, kv := newTestModel(t, Options{Viewer: &fakeViewer{}})
		press(m, tea.KeyCtrlT)
		moved := m.state().ActiveTabID

		press(m, tea.KeyCtrlShiftLeft)

		state := m.state()
		assert.Equal(t, moved, state.Tabs[0].ID)
		_, dragging := m.session().Dragging()
		assert.False(t, dragging)

		restored := persist.NewAdapter(kv, nil).Load()
		assert.Equal(t, moved, restored.Tabs[0].ID)

		// Already leftmost.
		assert.Nil(t, press(m, tea.KeyCtrlShiftLeft))
	})
}

func TestUpdate_History(t *testing.T) {
	t.Run("back and forward go through the viewer", func(t *testing.T) {
		fv := &fakeViewer{}
		m, _ := newTestModel(t, Options{Viewer: fv})
		navigate(t, m, "example.com")

		settle(m, send(m, tea.KeyMsg{Type: tea.KeyLeft, Alt: true}))
		settle(m, send(m, tea.KeyMsg{Type: tea.KeyRight, Alt: true}))

		assert.Equal(t, []string{"back", "forward"}, fv.steps)
		assert.Equal(t, "https://previous.example", m.pages[m.state().ActiveTabID].URL)
		// The shell keeps the address it navigated to.
		assert.Equal(t, "https://example.com", m.shell.ActiveTab().URL())
	})

	t.Run("running out of history shows a toast", func(t *testing.T) {
		fv := &fakeViewer{stepErr: viewer.ErrNoHistory}
		m, _ := newTestModel(t, Options{Viewer: fv})
		navigate(t, m, "example.com")

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyLeft, Alt: true})
		msgs := collect(cmd)
		var toast tea.Cmd
		for _, msg := range pageLoads(msgs) {
			_, toast = m.Update(msg)
		}

		got := toasts(collect(toast))
		require.Len(t, got, 1)
		assert.False(t, got[0].isError)
		assert.NotContains(t, m.loadErrs, m.state().ActiveTabID)
	})

	t.Run("home tabs have no history", func(t *testing.T) {
		fv := &fakeViewer{}
		m, _ := newTestModel(t, Options{Viewer: fv})

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyLeft, Alt: true})

		assert.Empty(t, collect(cmd))
		assert.Empty(t, fv.steps)
	})

	t.Run("offline viewer keeps per-tab history", func(t *testing.T) {
		m, _ := newTestModel(t, Options{})
		navigate(t, m, "a.example")
		navigate(t, m, "b.example")

		settle(m, send(m, tea.KeyMsg{Type: tea.KeyLeft, Alt: true}))

		assert.Equal(t, "https://a.example", m.pages[m.state().ActiveTabID].URL)
		assert.Contains(t, m.View(), offlineNotice[:20])
	})
}

func TestUpdate_ReloadAndHome(t *testing.T) {
	fv := &fakeViewer{}
	m, _ := newTestModel(t, Options{Viewer: fv})
	navigate(t, m, "example.com")

	settle(m, press(m, tea.KeyCtrlR))
	assert.Equal(t, []string{"https://example.com", "https://example.com"}, fv.loads)

	tabID := m.state().ActiveTabID
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyHome, Alt: true})
	settle(m, cmd)

	assert.True(t, m.shell.ActiveTab().IsHome())
	assert.Equal(t, []uint32{tabID}, fv.discarded)
	assert.NotContains(t, m.pages, tabID)
	assert.Contains(t, m.View(), "Searching with Google")

	// Nothing to reload on the landing page.
	assert.Empty(t, collect(press(m, tea.KeyCtrlR)))
}

func TestUpdate_Init(t *testing.T) {
	fv := &fakeViewer{}
	kv := persist.NewMemoryKV()
	shell := browser.NewShell(persist.NewAdapter(kv, nil))
	shell.Dispatch(browser.NavigateMsg{Input: "example.com"})

	m := newModel(context.Background(), shell, Options{Viewer: fv})
	cmd := m.Init()
	require.NotNil(t, cmd)

	// Init batches the cursor blink with the restore load; only run the load.
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	var loads []pageLoadedMsg
	for _, c := range batch[1:] {
		loads = append(loads, pageLoads(collect(c))...)
	}
	require.Len(t, loads, 1)
	assert.Equal(t, []string{"https://example.com"}, fv.loads)
}

func TestUpdate_SettingsPanel(t *testing.T) {
	m, kv := newTestModel(t, Options{Viewer: &fakeViewer{}})

	press(m, tea.KeyF2)
	require.True(t, m.session().Panels.SettingsOpen())
	assert.True(t, m.proxyInput.Focused())
	assert.False(t, m.urlInput.Focused())
	assert.Contains(t, m.View(), "Search engine")

	t.Run("arrows cycle the search engine", func(t *testing.T) {
		press(m, tea.KeyDown)
		assert.Equal(t, browser.Bing, m.state().SearchEngine)
		press(m, tea.KeyUp)
		press(m, tea.KeyUp)
		assert.Equal(t, browser.Yahoo, m.state().SearchEngine)
		press(m, tea.KeyUp)
		assert.Equal(t, browser.Brave, m.state().SearchEngine)

		restored := persist.NewAdapter(kv, nil).Load()
		assert.Equal(t, browser.Brave, restored.SearchEngine)
	})

	t.Run("typing edits the proxy server", func(t *testing.T) {
		typeText(m, "https://p.example/")
		assert.Equal(t, "https://p.example/", m.state().ProxyServer)
		assert.Empty(t, m.session().URLBar)
	})

	t.Run("esc closes the panel", func(t *testing.T) {
		press(m, tea.KeyEsc)
		assert.Equal(t, browser.PanelNone, m.session().Panels.Open())
		assert.True(t, m.urlInput.Focused())
		assert.Nil(t, press(m, tea.KeyEsc))
	})

	t.Run("panels are exclusive", func(t *testing.T) {
		press(m, tea.KeyF2)
		press(m, tea.KeyF3)
		assert.True(t, m.session().Panels.DownloadsOpen())
		press(m, tea.KeyF3)
		assert.Equal(t, browser.PanelNone, m.session().Panels.Open())
	})
}

func TestUpdate_DownloadsPanel(t *testing.T) {
	var opened []string
	dir := t.TempDir()
	m, kv := newTestModel(t, Options{
		Viewer:       &fakeViewer{},
		DownloadsDir: dir,
		OpenFolder: func(path string) error {
			opened = append(opened, path)
			return nil
		},
	})
	press(m, tea.KeyF3)
	require.True(t, m.session().Panels.DownloadsOpen())
	assert.Contains(t, m.View(), "google.png")

	t.Run("o reveals the selected download", func(t *testing.T) {
		press(m, tea.KeyDown)
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("o")})
		assert.Empty(t, collect(cmd))
		assert.Equal(t, []string{filepath.Join(dir, "graphiteiscool.txt")}, opened)
	})

	t.Run("d deletes the selected download", func(t *testing.T) {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
		downloads := m.state().Downloads
		require.Len(t, downloads, 2)
		assert.Equal(t, "vscode.exe", downloads[1].Filename)

		restored := persist.NewAdapter(kv, nil).Load()
		assert.Len(t, restored.Downloads, 2)
	})

	t.Run("cursor stays in range", func(t *testing.T) {
		press(m, tea.KeyDown)
		press(m, tea.KeyDown)
		assert.Equal(t, 1, m.downloadCursor)
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
		assert.Empty(t, m.state().Downloads)
		assert.Equal(t, 0, m.downloadCursor)
		assert.Contains(t, m.View(), "No downloads")
		assert.Nil(t, collect(send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("o")})))
	})

	t.Run("reveal failures become error toasts", func(t *testing.T) {
		m, _ := newTestModel(t, Options{
			Viewer:     &fakeViewer{},
			OpenFolder: func(string) error { return errors.New("no file manager") },
		})
		press(m, tea.KeyF3)
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("o")})

		got := toasts(collect(cmd))
		require.Len(t, got, 1)
		assert.True(t, got[0].isError)
		assert.Equal(t, "no file manager", got[0].details)
	})
}

func TestUpdate_CopyURL(t *testing.T) {
	var copied []string
	m, _ := newTestModel(t, Options{
		Viewer: &fakeViewer{},
		CopyText: func(text string) error {
			copied = append(copied, text)
			return nil
		},
	})

	got := toasts(collect(press(m, tea.KeyCtrlY)))
	require.Len(t, got, 1)
	assert.Equal(t, "Nothing to copy", got[0].message)
	assert.Empty(t, copied)

	navigate(t, m, "example.com")
	got = toasts(collect(press(m, tea.KeyCtrlY)))
	require.Len(t, got, 1)
	assert.Equal(t, "Copied URL", got[0].message)
	assert.Equal(t, []string{"https://example.com"}, copied)
}

func TestUpdate_Toast(t *testing.T) {
	m, _ := newTestModel(t, Options{Viewer: &fakeViewer{}})

	_, cmd := m.Update(toastMsg{message: "Copied URL", icon: "✓"})
	require.NotNil(t, cmd)
	assert.True(t, m.toast.active)
	assert.Contains(t, m.View(), "Copied URL")

	// Expiry before the deadline keeps the toast.
	m.Update(toastExpiredMsg{})
	assert.True(t, m.toast.active)
}

func TestUpdate_HelpToggle(t *testing.T) {
	m, _ := newTestModel(t, Options{Viewer: &fakeViewer{}})
	require.False(t, m.showHelp)
	_, before := m.contentSize()

	press(m, tea.KeyF1)
	assert.True(t, m.showHelp)
	assert.False(t, m.help.ShowAll)
	_, short := m.contentSize()
	assert.Less(t, short, before)

	press(m, tea.KeyF1)
	assert.True(t, m.help.ShowAll)
	_, full := m.contentSize()
	assert.Less(t, full, short)
}

func TestUpdate_Quit(t *testing.T) {
	m, _ := newTestModel(t, Options{Viewer: &fakeViewer{}})
	cmd := press(m, tea.KeyCtrlC)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
