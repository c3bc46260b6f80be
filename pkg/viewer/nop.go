package viewer

import (
	"context"
	"sync"

	"github.com/entrhq/graphite/pkg/browser"
)

// Nop is a Viewer that never touches the network. It keeps a navigation
// history per tab so Back and Forward behave like a real surface, and
// titles pages from their host.
type Nop struct {
	mu   sync.Mutex
	tabs map[uint32]*nopHistory
}

type nopHistory struct {
	entries []string
	index   int
}

// NewNop creates an offline viewer.
func NewNop() *Nop {
	return &Nop{tabs: make(map[uint32]*nopHistory)}
}

func nopPage(url string) *Page {
	return &Page{URL: url, Title: browser.TitleFor(url)}
}

// Load records url as the newest entry of the tab's history.
func (n *Nop) Load(ctx context.Context, tabID uint32, url string) (*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if browser.IsInternal(url) {
		return nil, ErrInternalURL
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	h, ok := n.tabs[tabID]
	if !ok {
		h = &nopHistory{index: -1}
		n.tabs[tabID] = h
	}
	// Reloading the current entry does not grow the history.
	if h.index < 0 || h.entries[h.index] != url {
		h.entries = append(h.entries[:h.index+1], url)
		h.index++
	}
	return nopPage(url), nil
}

// Back moves one entry back.
func (n *Nop) Back(ctx context.Context, tabID uint32) (*Page, error) {
	return n.step(ctx, tabID, -1)
}

// Forward moves one entry forward.
func (n *Nop) Forward(ctx context.Context, tabID uint32) (*Page, error) {
	return n.step(ctx, tabID, 1)
}

func (n *Nop) step(ctx context.Context, tabID uint32, delta int) (*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	h, ok := n.tabs[tabID]
	if !ok {
		return nil, ErrNoPage
	}
	next := h.index + delta
	if next < 0 || next >= len(h.entries) {
		return nil, ErrNoHistory
	}
	h.index = next
	return nopPage(h.entries[next]), nil
}

// Discard forgets the tab's history.
func (n *Nop) Discard(tabID uint32) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.tabs, tabID)
	return nil
}

// Shutdown forgets every tab.
func (n *Nop) Shutdown() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.tabs = make(map[uint32]*nopHistory)
	return nil
}

// Current returns the URL the tab is showing.
func (n *Nop) Current(tabID uint32) (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	h, ok := n.tabs[tabID]
	if !ok || h.index < 0 {
		return "", false
	}
	return h.entries[h.index], true
}
