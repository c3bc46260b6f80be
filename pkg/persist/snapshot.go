package persist

import (
	"encoding/json"
	"fmt"

	"github.com/entrhq/graphite/pkg/browser"
)

// snapshotVersion is written into every snapshot. Snapshots from a newer
// version are rejected instead of being half-read.
const snapshotVersion = 1

// snapshot is the serialized layout of browser.State.
type snapshot struct {
	Version      int                  `json:"version"`
	Tabs         []tabRecord          `json:"tabs"`
	ActiveTabID  uint32               `json:"activeTabId"`
	NextTabID    uint32               `json:"nextTabId"`
	SearchEngine browser.SearchEngine `json:"searchEngine"`
	ProxyServer  string               `json:"proxyServer"`
	Downloads    []downloadRecord     `json:"downloads"`
	History      []string             `json:"history"`
	HistoryIndex int                  `json:"historyIndex"`
}

type tabRecord struct {
	ID        uint32  `json:"id"`
	Title     string  `json:"title"`
	URL       string  `json:"url"`
	Favicon   *string `json:"favicon"`
	IsLoading bool    `json:"isLoading"`
}

type downloadRecord struct {
	ID        uint32 `json:"id"`
	Filename  string `json:"filename"`
	Completed bool   `json:"completed"`
}

// EncodeState serializes s.
func EncodeState(s browser.State) ([]byte, error) {
	snap := snapshot{
		Version:      snapshotVersion,
		Tabs:         make([]tabRecord, 0, len(s.Tabs)),
		ActiveTabID:  s.ActiveTabID,
		NextTabID:    s.NextTabID,
		SearchEngine: s.SearchEngine,
		ProxyServer:  s.ProxyServer,
		History:      s.History,
		HistoryIndex: s.HistoryIndex,
	}

	for _, t := range s.Tabs {
		rec := tabRecord{
			ID:        t.ID,
			Title:     t.Title(),
			URL:       t.URL(),
			IsLoading: t.IsLoading(),
		}
		if t.Favicon != "" {
			fav := t.Favicon
			rec.Favicon = &fav
		}
		snap.Tabs = append(snap.Tabs, rec)
	}

	if s.Downloads != nil {
		snap.Downloads = make([]downloadRecord, 0, len(s.Downloads))
		for _, d := range s.Downloads {
			snap.Downloads = append(snap.Downloads, downloadRecord(d))
		}
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encoding state: %w", err)
	}
	return data, nil
}

// DecodeState parses a snapshot written by EncodeState. The result is
// validated; a snapshot describing an impossible state is an error.
func DecodeState(data []byte) (browser.State, error) {
	snap := snapshot{SearchEngine: browser.DefaultSearchEngine}
	if err := json.Unmarshal(data, &snap); err != nil {
		return browser.State{}, fmt.Errorf("decoding state: %w", err)
	}
	if snap.Version > snapshotVersion {
		return browser.State{}, fmt.Errorf("state version %d is newer than supported version %d", snap.Version, snapshotVersion)
	}

	s := browser.State{
		Tabs:         make([]browser.Tab, 0, len(snap.Tabs)),
		ActiveTabID:  snap.ActiveTabID,
		NextTabID:    snap.NextTabID,
		SearchEngine: snap.SearchEngine,
		ProxyServer:  snap.ProxyServer,
		History:      snap.History,
		HistoryIndex: snap.HistoryIndex,
	}

	for _, rec := range snap.Tabs {
		tab := browser.Tab{ID: rec.ID}
		if rec.Favicon != nil {
			tab.Favicon = *rec.Favicon
		}
		// A tab on the home URL is the home page; anything else carries
		// its own URL and title.
		if rec.URL == browser.HomeURL {
			tab.Page = browser.HomePage{}
		} else {
			tab.Page = browser.LoadedPage{URL: rec.URL, Title: rec.Title, Loading: rec.IsLoading}
		}
		s.Tabs = append(s.Tabs, tab)
	}

	if snap.Downloads != nil {
		s.Downloads = make([]browser.Download, 0, len(snap.Downloads))
		for _, d := range snap.Downloads {
			s.Downloads = append(s.Downloads, browser.Download(d))
		}
	}

	if err := s.Validate(); err != nil {
		return browser.State{}, fmt.Errorf("invalid state: %w", err)
	}
	return s, nil
}
