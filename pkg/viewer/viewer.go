// Package viewer renders the content of browser tabs.
//
// The shell state never holds page content; it only asks a Viewer to load
// a URL into the surface belonging to a tab. Viewers return a Page with the
// final URL, the document title and a plain-text preview the terminal UI
// can display.
package viewer

import (
	"context"
	"errors"
)

var (
	// ErrNoPage is returned when a tab has no loaded surface.
	ErrNoPage = errors.New("no page loaded for tab")

	// ErrNoHistory is returned when Back or Forward has nowhere to go.
	ErrNoHistory = errors.New("no history entry")

	// ErrInternalURL is returned for app:// URLs, which the shell renders itself.
	ErrInternalURL = errors.New("internal URLs are not loaded by the viewer")
)

// Page is the result of loading a URL into a tab.
type Page struct {
	URL       string
	Title     string
	Text      string
	Truncated bool
}

// Viewer loads URLs into per-tab surfaces.
//
// Implementations must be safe for concurrent use; the UI issues loads from
// background commands.
type Viewer interface {
	// Load navigates the tab's surface to url, creating the surface if needed.
	Load(ctx context.Context, tabID uint32, url string) (*Page, error)

	// Back moves the tab's surface one entry back in its own history.
	Back(ctx context.Context, tabID uint32) (*Page, error)

	// Forward moves the tab's surface one entry forward.
	Forward(ctx context.Context, tabID uint32) (*Page, error)

	// Discard releases the tab's surface. Unknown tabs are ignored.
	Discard(tabID uint32) error

	// Shutdown releases every surface and the underlying engine.
	Shutdown() error
}
