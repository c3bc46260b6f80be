package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/graphite/pkg/viewer"
)

func TestView_Layout(t *testing.T) {
	m, _ := newTestModel(t, Options{Viewer: &fakeViewer{}, ShowHelp: true})

	view := m.View()
	lines := strings.Split(view, "\n")

	assert.Len(t, lines, m.height)
	assert.Contains(t, lines[0], "Home")
	assert.Contains(t, lines[0], closeChar)
	assert.Contains(t, view, "Searching with Google")
	assert.Contains(t, lines[len(lines)-1], "new tab")
	for _, line := range lines {
		assert.LessOrEqual(t, lipgloss.Width(line), m.width)
	}
}

func TestView_HomeURLShowsLandingPage(t *testing.T) {
	m, _ := newTestModel(t, Options{Viewer: &fakeViewer{}})
	navigate(t, m, "example.com")

	m.urlInput.SetValue("")
	typeText(m, "app://home")
	settle(m, press(m, tea.KeyEnter))

	view := m.View()
	assert.Contains(t, view, "██████╗")
	assert.Contains(t, view, "Searching with Google")
	assert.NotContains(t, view, "Example Domain")
	assert.Empty(t, m.urlInput.Value())

	_, shown := m.pages[m.state().ActiveTabID]
	assert.False(t, shown)
}

func TestView_TabZonesCoverTheTabBar(t *testing.T) {
	m, _ := newTestModel(t, Options{Viewer: &fakeViewer{}})
	for range 3 {
		press(m, tea.KeyCtrlT)
	}
	m.View()

	require.Len(t, m.tabZones, 5)
	for i, z := range m.tabZones {
		assert.Less(t, z.startX, z.endX)
		if i > 0 {
			assert.Greater(t, z.startX, m.tabZones[i-1].startX)
		}
		if !z.isPlus {
			assert.Greater(t, z.closeX, z.startX)
			assert.Less(t, z.closeX, z.endX)
		}
	}
	assert.True(t, m.tabZones[4].isPlus)
}

func TestView_TitlesShrinkToFit(t *testing.T) {
	m, _ := newTestModel(t, Options{Viewer: &fakeViewer{}})
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	for range 5 {
		press(m, tea.KeyCtrlT)
		navigate(t, m, "a-very-long-host-name.example.com")
	}

	tabBar := m.renderTabBar()
	assert.LessOrEqual(t, lipgloss.Width(tabBar), 60+len(m.state().Tabs))
	assert.Contains(t, tabBar, "…")
}

func TestView_Pages(t *testing.T) {
	t.Run("loading", func(t *testing.T) {
		m, _ := newTestModel(t, Options{Viewer: &fakeViewer{}})
		press(m, tea.KeyCtrlT)
		m.urlInput.SetValue("")
		typeText(m, "example.com")
		press(m, tea.KeyEnter) // result never delivered

		assert.Contains(t, m.View(), "Loading https://example.com")
	})

	t.Run("truncated preview", func(t *testing.T) {
		m, _ := newTestModel(t, Options{Viewer: &fakeViewer{}})
		navigate(t, m, "example.com")
		page := m.pages[m.state().ActiveTabID]
		page.Truncated = true
		m.refreshContent()

		assert.Contains(t, m.content.View(), "This domain is for use in examples.")
		assert.Contains(t, m.View(), "[truncated]")
	})

	t.Run("empty preview", func(t *testing.T) {
		m, _ := newTestModel(t, Options{Viewer: &fakeViewer{}})
		navigate(t, m, "example.com")
		m.pages[m.state().ActiveTabID].Text = ""
		m.refreshContent()

		assert.Contains(t, m.View(), "no readable text")
	})

	t.Run("failed reload keeps the old page", func(t *testing.T) {
		fv := &fakeViewer{}
		m, _ := newTestModel(t, Options{Viewer: fv})
		navigate(t, m, "example.com")

		fv.loadErr = errors.New("timeout")
		settle(m, press(m, tea.KeyCtrlR))

		view := m.View()
		assert.Contains(t, view, "Could not load")
		assert.Contains(t, view, "Example Domain")
	})

	t.Run("offline viewer explains itself", func(t *testing.T) {
		m, _ := newTestModel(t, Options{Viewer: viewer.NewNop()})
		navigate(t, m, "example.com")

		assert.Contains(t, m.View(), "viewer.backend")
	})
}

func TestView_Panels(t *testing.T) {
	m, _ := newTestModel(t, Options{Viewer: &fakeViewer{}})

	press(m, tea.KeyF2)
	view := m.View()
	assert.Contains(t, view, "Settings")
	assert.Contains(t, view, "● Google")
	assert.Contains(t, view, "○ Bing")
	assert.Contains(t, view, "Proxy server")
	assert.Equal(t, m.width-panelWidth, m.panelX)
	assert.Len(t, m.panelLines, 5)

	press(m, tea.KeyF3)
	view = m.View()
	assert.Contains(t, view, "Downloads")
	assert.Contains(t, view, "▸")
	assert.Contains(t, view, "vscode.exe")
	assert.Len(t, m.panelLines, 3)

	press(m, tea.KeyEsc)
	m.View()
	assert.Empty(t, m.panelLines)
	assert.Equal(t, m.width, m.panelX)
}

func TestRenderToastOverlay(t *testing.T) {
	base := strings.Join([]string{"one", "two", "three", "four", "help"}, "\n")

	t.Run("empty toast leaves the view alone", func(t *testing.T) {
		assert.Equal(t, base, renderToastOverlay(base, "", 20))
	})

	t.Run("toast sits above the last line", func(t *testing.T) {
		out := strings.Split(renderToastOverlay(base, "AB\nCD", 10), "\n")
		require.Len(t, out, 5)
		assert.Equal(t, "one", out[0])
		assert.Equal(t, "       AB", out[2])
		assert.Equal(t, "       CD", out[3])
		assert.Equal(t, "help", out[4])
	})
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"truncated", 6, "trunc…"},
		{"anything", 0, ""},
		{"日本語テキスト", 5, "日本…"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := truncate(tt.in, tt.width)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, lipgloss.Width(got), max(tt.width, 0))
		})
	}
}

func TestWordWrap(t *testing.T) {
	t.Run("wraps on word boundaries", func(t *testing.T) {
		assert.Equal(t, "the quick\nbrown fox", wordWrap("the quick brown fox", 10))
	})

	t.Run("keeps paragraph breaks", func(t *testing.T) {
		assert.Equal(t, "one\n\ntwo", wordWrap("one\n\ntwo", 10))
	})

	t.Run("breaks long words", func(t *testing.T) {
		assert.Equal(t, "abcd\nefgh\nij", wordWrap("abcdefghij", 4))
	})

	t.Run("zero width falls back", func(t *testing.T) {
		assert.Equal(t, "a b", wordWrap("a  b", 0))
	})
}
