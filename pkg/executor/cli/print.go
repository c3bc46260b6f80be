package cli

import (
	"fmt"
	"strings"

	"github.com/entrhq/graphite/pkg/browser"
	"github.com/entrhq/graphite/pkg/viewer"
)

// printActive prints the active tab: the landing page hints, a load error
// or the first lines of the page text.
func (e *Executor) printActive() {
	state := e.shell.State()
	tab, ok := state.ActiveTab()
	if !ok {
		return
	}

	fmt.Fprintf(e.writer, "── Tab %d of %d ──\n", state.TabIndex(tab.ID)+1, len(state.Tabs))
	if tab.IsHome() {
		fmt.Fprintln(e.writer, browser.HomeTitle)
		fmt.Fprintf(e.writer, "Searching with %s\n\n", state.SearchEngine)
		return
	}

	if err, failed := e.loadErrs[tab.ID]; failed {
		fmt.Fprintf(e.writer, "✗ Could not load %s\n  %v\n\n", tab.URL(), err)
		return
	}

	page := e.pages[tab.ID]
	if page == nil {
		fmt.Fprintln(e.writer, tab.Title())
		fmt.Fprintln(e.writer, tab.URL())
		fmt.Fprintln(e.writer)
		return
	}

	title, url := page.Title, page.URL
	if title == "" {
		title = tab.Title()
	}
	if url == "" {
		url = tab.URL()
	}
	fmt.Fprintln(e.writer, title)
	fmt.Fprintln(e.writer, url)
	fmt.Fprintln(e.writer)

	text := strings.TrimSpace(page.Text)
	switch {
	case text == "":
		if _, offline := e.viewer.(*viewer.Nop); offline {
			fmt.Fprintln(e.writer, offlineNotice)
		} else {
			fmt.Fprintln(e.writer, "This page has no readable text.")
		}
	default:
		lines := strings.Split(text, "\n")
		shown := lines
		if e.pageLines > 0 && len(lines) > e.pageLines {
			shown = lines[:e.pageLines]
		}
		fmt.Fprintln(e.writer, strings.Join(shown, "\n"))
		if more := len(lines) - len(shown); more > 0 {
			fmt.Fprintf(e.writer, "… %d more lines\n", more)
		}
	}
	if page.Truncated {
		fmt.Fprintln(e.writer, "[truncated]")
	}
	fmt.Fprintln(e.writer)
}

func (e *Executor) printTabs() {
	state := e.shell.State()
	for i, tab := range state.Tabs {
		marker := " "
		if tab.ID == state.ActiveTabID {
			marker = "*"
		}
		fmt.Fprintf(e.writer, "%s %d. %s  %s\n", marker, i+1, tab.Title(), browser.DisplayURL(tab))
	}
}

func (e *Executor) printEngines() {
	current := e.shell.State().SearchEngine
	for _, engine := range browser.SearchEngines() {
		marker := "○"
		if engine == current {
			marker = "●"
		}
		fmt.Fprintf(e.writer, "%s %s\n", marker, engine)
	}
}

func (e *Executor) printDownloads() {
	downloads := e.shell.State().Downloads
	if len(downloads) == 0 {
		fmt.Fprintln(e.writer, "No downloads")
		return
	}
	for i, d := range downloads {
		status := "…"
		if d.Completed {
			status = "✓"
		}
		fmt.Fprintf(e.writer, "%d. %s %s\n", i+1, status, d.Filename)
	}
}

func (e *Executor) printHelp() {
	width := 0
	for _, h := range commandHelp {
		width = max(width, len(h.usage))
	}
	for _, h := range commandHelp {
		fmt.Fprintf(e.writer, "  %-*s  %s\n", width, h.usage, h.desc)
	}
}
