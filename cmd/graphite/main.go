// Package main provides graphite, a tabbed web browser for the terminal.
// Tabs, the URL bar, search engines and the settings and downloads panels
// live in a persisted shell state; pages are previewed as text, optionally
// rendered by a headless Chromium.
package main

import (
	"fmt"
	"os"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd(&rootFlags{}).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
