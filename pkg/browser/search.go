package browser

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SearchEngine is one of the supported search providers.
type SearchEngine int

const (
	Yahoo SearchEngine = iota
	Google
	Bing
	DuckDuckGo
	Brave
)

// DefaultSearchEngine is used for new profiles.
const DefaultSearchEngine = Google

type engineInfo struct {
	name     string
	template string
	icon     string
}

var engines = [...]engineInfo{
	Yahoo:      {"Yahoo", "https://search.yahoo.com/search?p=", "https://www.yahoo.com/favicon.ico"},
	Google:     {"Google", "https://www.google.com/search?q=", "https://www.google.com/favicon.ico"},
	Bing:       {"Bing", "https://www.bing.com/search?q=", "https://www.bing.com/favicon.ico"},
	DuckDuckGo: {"DuckDuckGo", "https://duckduckgo.com/?q=", "https://duckduckgo.com/favicon.ico"},
	Brave:      {"Brave", "https://search.brave.com/search?q=", "https://brave.com/static-assets/images/brave-favicon.png"},
}

// SearchEngines returns every supported engine in display order.
func SearchEngines() []SearchEngine {
	return []SearchEngine{Yahoo, Google, Bing, DuckDuckGo, Brave}
}

// Valid reports whether e is a known engine.
func (e SearchEngine) Valid() bool {
	return e >= Yahoo && e <= Brave
}

func (e SearchEngine) info() engineInfo {
	if !e.Valid() {
		return engines[DefaultSearchEngine]
	}
	return engines[e]
}

// String returns the engine's display name.
func (e SearchEngine) String() string {
	if !e.Valid() {
		return fmt.Sprintf("SearchEngine(%d)", int(e))
	}
	return engines[e].name
}

// SearchURL maps a free-text query to the engine's search URL.
func (e SearchEngine) SearchURL(query string) string {
	return e.info().template + EncodeURIComponent(query)
}

// Icon returns the engine's icon reference.
func (e SearchEngine) Icon() string {
	return e.info().icon
}

// ParseSearchEngine looks an engine up by name, case-insensitively.
func ParseSearchEngine(name string) (SearchEngine, error) {
	for _, e := range SearchEngines() {
		if strings.EqualFold(e.String(), strings.TrimSpace(name)) {
			return e, nil
		}
	}
	return DefaultSearchEngine, fmt.Errorf("unknown search engine %q", name)
}

// MarshalJSON encodes the engine by name.
func (e SearchEngine) MarshalJSON() ([]byte, error) {
	if !e.Valid() {
		return nil, fmt.Errorf("invalid search engine %d", int(e))
	}
	return json.Marshal(e.String())
}

// UnmarshalJSON decodes an engine name.
func (e *SearchEngine) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("search engine must be a string: %w", err)
	}
	parsed, err := ParseSearchEngine(name)
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}
