package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/graphite/pkg/browser"
	"github.com/entrhq/graphite/pkg/persist"
)

func click(m *model, x, y int) tea.Cmd {
	return send(m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

func findTabZone(t *testing.T, m *model, match func(tabZone) bool) tabZone {
	t.Helper()
	for _, z := range m.tabZones {
		if match(z) {
			return z
		}
	}
	t.Fatal("tab zone not found")
	return tabZone{}
}

func findNavZone(t *testing.T, m *model, action navAction) navZone {
	t.Helper()
	for _, z := range m.navZones {
		if z.action == action {
			return z
		}
	}
	t.Fatalf("nav zone %d not found", action)
	return navZone{}
}

func TestMouse_TabBar(t *testing.T) {
	t.Run("plus opens a tab", func(t *testing.T) {
		m, _ := newTestModel(t, Options{Viewer: &fakeViewer{}})
		m.View()

		plus := findTabZone(t, m, func(z tabZone) bool { return z.isPlus })
		click(m, plus.startX, 0)

		assert.Len(t, m.state().Tabs, 2)
	})

	t.Run("clicking a tab selects it", func(t *testing.T) {
		m, _ := newTestModel(t, Options{Viewer: &fakeViewer{}})
		first := m.state().ActiveTabID
		press(m, tea.KeyCtrlT)
		m.View()

		z := findTabZone(t, m, func(z tabZone) bool { return !z.isPlus && z.tabID == first })
		click(m, z.startX, 0)
		assert.Equal(t, first, m.state().ActiveTabID)

		// The press starts a drag that the release ends.
		id, dragging := m.session().Dragging()
		assert.True(t, dragging)
		assert.Equal(t, first, id)
		send(m, tea.MouseMsg{X: z.startX, Y: 0, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
		_, dragging = m.session().Dragging()
		assert.False(t, dragging)
		assert.Equal(t, first, m.state().Tabs[0].ID)
	})

	t.Run("close button closes the tab", func(t *testing.T) {
		fv := &fakeViewer{}
		m, _ := newTestModel(t, Options{Viewer: fv})
		press(m, tea.KeyCtrlT)
		second := m.state().ActiveTabID
		m.View()

		z := findTabZone(t, m, func(z tabZone) bool { return !z.isPlus && z.tabID == second })
		settle(m, click(m, z.closeX, 0))

		require.Len(t, m.state().Tabs, 1)
		assert.Equal(t, []uint32{second}, fv.discarded)
	})

	t.Run("dragging reorders tabs", func(t *testing.T) {
		m, kv := newTestModel(t, Options{Viewer: &fakeViewer{}})
		first := m.state().ActiveTabID
		press(m, tea.KeyCtrlT)
		press(m, tea.KeyCtrlT)
		m.View()

		tabs := m.state().Tabs
		from := findTabZone(t, m, func(z tabZone) bool { return z.tabID == first && !z.isPlus })
		to := findTabZone(t, m, func(z tabZone) bool { return z.tabID == tabs[2].ID })

		click(m, from.startX, 0)
		send(m, tea.MouseMsg{X: to.startX, Y: 0, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
		assert.Equal(t, first, m.state().Tabs[2].ID)

		send(m, tea.MouseMsg{X: to.startX, Y: 0, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
		_, dragging := m.session().Dragging()
		assert.False(t, dragging)

		restored := persist.NewAdapter(kv, nil).Load()
		assert.Equal(t, first, restored.Tabs[2].ID)
	})

	t.Run("motion without a drag is ignored", func(t *testing.T) {
		m, _ := newTestModel(t, Options{Viewer: &fakeViewer{}})
		press(m, tea.KeyCtrlT)
		m.View()
		before := m.state().Tabs

		assert.Nil(t, send(m, tea.MouseMsg{X: 1, Y: 0, Action: tea.MouseActionMotion}))
		assert.Equal(t, before, m.state().Tabs)
	})
}

func TestMouse_NavBar(t *testing.T) {
	fv := &fakeViewer{}
	m, _ := newTestModel(t, Options{Viewer: fv})
	navigate(t, m, "example.com")
	m.View()

	settle(m, click(m, findNavZone(t, m, navBack).startX, 1))
	settle(m, click(m, findNavZone(t, m, navForward).startX, 2))
	assert.Equal(t, []string{"back", "forward"}, fv.steps)

	settle(m, click(m, findNavZone(t, m, navReload).startX, 1))
	assert.Len(t, fv.loads, 2)

	click(m, findNavZone(t, m, navSettings).startX, 1)
	assert.True(t, m.session().Panels.SettingsOpen())

	m.View()
	click(m, findNavZone(t, m, navDownloads).startX, 1)
	assert.True(t, m.session().Panels.DownloadsOpen())

	settle(m, click(m, findNavZone(t, m, navHome).startX, 1))
	assert.True(t, m.shell.ActiveTab().IsHome())
}

func TestMouse_Panels(t *testing.T) {
	t.Run("clicking an engine selects it", func(t *testing.T) {
		m, _ := newTestModel(t, Options{Viewer: &fakeViewer{}})
		press(m, tea.KeyF2)
		m.View()

		var line panelLine
		for _, l := range m.panelLines {
			if l.kind == lineEngine && l.engine == browser.DuckDuckGo {
				line = l
			}
		}
		require.NotZero(t, line.y)

		click(m, m.panelX+2, line.y)
		assert.Equal(t, browser.DuckDuckGo, m.state().SearchEngine)
		assert.True(t, m.session().Panels.SettingsOpen())
	})

	t.Run("clicking a download moves the cursor", func(t *testing.T) {
		m, _ := newTestModel(t, Options{Viewer: &fakeViewer{}})
		press(m, tea.KeyF3)
		m.View()

		var last panelLine
		for _, l := range m.panelLines {
			if l.kind == lineDownload {
				last = l
			}
		}
		click(m, m.panelX+2, last.y)
		assert.Equal(t, 2, m.downloadCursor)
	})

	t.Run("clicking the page closes the panel", func(t *testing.T) {
		m, _ := newTestModel(t, Options{Viewer: &fakeViewer{}})
		press(m, tea.KeyF3)
		m.View()

		click(m, 0, contentTop+2)
		assert.Equal(t, browser.PanelNone, m.session().Panels.Open())
	})

	t.Run("page clicks without a panel do nothing", func(t *testing.T) {
		m, _ := newTestModel(t, Options{Viewer: &fakeViewer{}})
		m.View()
		assert.Nil(t, click(m, 0, contentTop+2))
	})
}

func TestMouse_WheelScrollsContent(t *testing.T) {
	m, _ := newTestModel(t, Options{Viewer: &fakeViewer{}})
	navigate(t, m, "example.com")
	tabID := m.state().ActiveTabID
	m.pages[tabID].Text = longText(200)
	m.refreshContent()

	send(m, tea.MouseMsg{X: 5, Y: contentTop + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	assert.Positive(t, m.content.YOffset)

	send(m, tea.MouseMsg{X: 5, Y: contentTop + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	assert.Zero(t, m.content.YOffset)
}

func longText(lines int) string {
	text := ""
	for i := 0; i < lines; i++ {
		text += "line\n"
	}
	return text
}
