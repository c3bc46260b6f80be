package browser

import (
	"errors"
	"fmt"
	"slices"
)

// The tab store operations below mutate the receiver in place. Reduce calls
// them on a clone, which keeps the reducer itself free of side effects. The
// lookups take a value so they work on the copies Shell hands out.
//
// Every lookup by id is lenient: a stale id (the tab was closed while the
// view still referenced it) turns the operation into a no-op that reports
// false instead of failing.

// TabIndex returns the position of the tab with the given id, or -1.
func (s State) TabIndex(id uint32) int {
	return slices.IndexFunc(s.Tabs, func(t Tab) bool { return t.ID == id })
}

// FindTab returns the tab with the given id.
func (s State) FindTab(id uint32) (Tab, bool) {
	if i := s.TabIndex(id); i >= 0 {
		return s.Tabs[i], true
	}
	return Tab{}, false
}

// ActiveTab returns the tab the active pointer refers to.
func (s State) ActiveTab() (Tab, bool) {
	return s.FindTab(s.ActiveTabID)
}

// NewTab appends a home tab, makes it active and returns it.
func (s *State) NewTab() Tab {
	tab := NewHomeTab(s.NextTabID)
	s.Tabs = append(s.Tabs, tab)
	s.ActiveTabID = tab.ID
	s.NextTabID++
	return tab
}

// CloseTab removes a tab. The last remaining tab cannot be closed.
// When the active tab is closed its left neighbour becomes active, or the
// new first tab if there is none.
func (s *State) CloseTab(id uint32) bool {
	if len(s.Tabs) <= 1 {
		return false
	}
	idx := s.TabIndex(id)
	if idx < 0 {
		return false
	}

	s.Tabs = slices.Delete(s.Tabs, idx, idx+1)

	if s.ActiveTabID == id {
		next := min(max(idx-1, 0), len(s.Tabs)-1)
		s.ActiveTabID = s.Tabs[next].ID
	}
	return true
}

// SelectTab moves the active pointer.
func (s *State) SelectTab(id uint32) bool {
	if s.TabIndex(id) < 0 {
		return false
	}
	s.ActiveTabID = id
	return true
}

// Navigate resolves raw with the configured search engine and points the
// tab at the result. It returns the resolved URL. Resolving to HomeURL puts
// the tab back on the landing page.
func (s *State) Navigate(id uint32, raw string) (string, bool) {
	idx := s.TabIndex(id)
	if idx < 0 {
		return "", false
	}

	url := Resolve(raw, s.SearchEngine)
	if url == HomeURL {
		s.Tabs[idx].Page = HomePage{}
		return url, true
	}
	s.Tabs[idx].Page = LoadedPage{
		URL:     url,
		Title:   TitleFor(url),
		Loading: true,
	}
	return url, true
}

// Reload flags a loaded tab as loading again. The actual reload is up to the
// content viewer. Home tabs have nothing to reload.
func (s *State) Reload(id uint32) bool {
	idx := s.TabIndex(id)
	if idx < 0 {
		return false
	}
	page, ok := s.Tabs[idx].loaded()
	if !ok {
		return false
	}
	page.Loading = true
	s.Tabs[idx].Page = page
	return true
}

// GoHome returns a tab to the landing page.
func (s *State) GoHome(id uint32) bool {
	idx := s.TabIndex(id)
	if idx < 0 {
		return false
	}
	s.Tabs[idx].Page = HomePage{}
	return true
}

// Reorder moves the dragged tab to the drop target's position, keeping the
// relative order of every other tab.
func (s *State) Reorder(dragID, dropID uint32) bool {
	if dragID == dropID {
		return false
	}
	from, to := s.TabIndex(dragID), s.TabIndex(dropID)
	if from < 0 || to < 0 {
		return false
	}

	tab := s.Tabs[from]
	s.Tabs = slices.Delete(s.Tabs, from, from+1)
	s.Tabs = slices.Insert(s.Tabs, to, tab)
	return true
}

// DeleteDownload drops the download record with the given id.
func (s *State) DeleteDownload(id uint32) bool {
	n := len(s.Downloads)
	s.Downloads = slices.DeleteFunc(s.Downloads, func(d Download) bool { return d.ID == id })
	return len(s.Downloads) != n
}

// Validate checks the structural invariants of the state. Snapshots that
// fail validation are not trusted.
func (s State) Validate() error {
	if len(s.Tabs) == 0 {
		return errors.New("state has no tabs")
	}

	seen := make(map[uint32]struct{}, len(s.Tabs))
	for _, t := range s.Tabs {
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("duplicate tab id %d", t.ID)
		}
		if t.ID >= s.NextTabID {
			return fmt.Errorf("tab id %d not below next tab id %d", t.ID, s.NextTabID)
		}
		if t.Page == nil {
			return fmt.Errorf("tab %d has no page", t.ID)
		}
		seen[t.ID] = struct{}{}
	}

	if _, ok := seen[s.ActiveTabID]; !ok {
		return fmt.Errorf("active tab id %d does not reference a tab", s.ActiveTabID)
	}
	if !s.SearchEngine.Valid() {
		return fmt.Errorf("invalid search engine %d", int(s.SearchEngine))
	}
	return nil
}
