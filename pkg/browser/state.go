// Package browser implements the shell state machine of the graphite
// browser: the tab list, the active-tab pointer, URL resolution, panel
// visibility and the reducer that turns user intents into new state.
//
// The package is UI-framework agnostic. A view layer translates its own
// events into Msg values, hands them to Reduce (or to a Shell, which owns
// the state and persists it) and re-renders from the result.
package browser

import "slices"

const (
	// InternalScheme prefixes URLs that are handled by the shell itself.
	InternalScheme = "app://"

	// HomeURL is the placeholder URL of the new-tab landing page.
	HomeURL = InternalScheme + "home"

	// HomeTitle is the title shown for home tabs and internal pages.
	HomeTitle = "Home"

	// NewTabTitle is the fallback title when none can be derived from a URL.
	NewTabTitle = "New Tab"

	// StateKey is the key the persisted snapshot lives under.
	StateKey = "shell_state"
)

// Page is the content of a tab. It is either HomePage or LoadedPage.
type Page interface {
	isPage()
}

// HomePage is the landing page shown in new tabs.
type HomePage struct{}

// LoadedPage is a page the user navigated to.
type LoadedPage struct {
	URL     string
	Title   string
	Loading bool
}

func (HomePage) isPage()   {}
func (LoadedPage) isPage() {}

// Tab is one navigable unit of the browser.
type Tab struct {
	ID      uint32
	Favicon string
	Page    Page
}

// NewHomeTab returns a home tab with the given id.
func NewHomeTab(id uint32) Tab {
	return Tab{ID: id, Page: HomePage{}}
}

// IsHome reports whether the tab shows the landing page.
func (t Tab) IsHome() bool {
	_, loaded := t.Page.(LoadedPage)
	return !loaded
}

// URL returns the tab's URL. Home tabs report HomeURL.
func (t Tab) URL() string {
	if p, ok := t.loaded(); ok {
		return p.URL
	}
	return HomeURL
}

// Title returns the tab's display title.
func (t Tab) Title() string {
	if p, ok := t.loaded(); ok {
		return p.Title
	}
	return HomeTitle
}

// IsLoading reports whether a navigation was started and not yet observed
// to finish. Home tabs are never loading.
func (t Tab) IsLoading() bool {
	if p, ok := t.loaded(); ok {
		return p.Loading
	}
	return false
}

func (t Tab) loaded() (LoadedPage, bool) {
	p, ok := t.Page.(LoadedPage)
	return p, ok
}

// Download is a record of a finished or pending download.
type Download struct {
	ID        uint32
	Filename  string
	Completed bool
}

// State is the root aggregate persisted between sessions.
type State struct {
	Tabs         []Tab
	ActiveTabID  uint32
	NextTabID    uint32
	SearchEngine SearchEngine
	ProxyServer  string
	Downloads    []Download

	// History and HistoryIndex are reserved and carried through untouched.
	History      []string
	HistoryIndex int
}

// DefaultState returns the state used on first start and whenever the
// persisted snapshot cannot be used.
func DefaultState() State {
	return State{
		Tabs:         []Tab{NewHomeTab(0)},
		ActiveTabID:  0,
		NextTabID:    1,
		SearchEngine: DefaultSearchEngine,
		Downloads: []Download{
			{ID: 0, Filename: "google.png", Completed: true},
			{ID: 1, Filename: "graphiteiscool.txt", Completed: true},
			{ID: 2, Filename: "vscode.exe", Completed: true},
		},
		History: []string{},
	}
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	c := s
	c.Tabs = slices.Clone(s.Tabs)
	c.Downloads = slices.Clone(s.Downloads)
	c.History = slices.Clone(s.History)
	return c
}
