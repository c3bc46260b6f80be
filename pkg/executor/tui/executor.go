// Package tui provides the terminal user interface of the graphite browser.
//
// The TUI codebase is split into multiple files for better organization:
// - executor.go: Executor and program lifecycle
// - model.go: Core model structure and state
// - update.go: Bubble Tea Update function and key handling
// - mouse.go: Mouse handling against the zones recorded by View
// - effects.go: Dispatching browser messages and running their effects
// - view.go: Bubble Tea View function and page rendering
// - tabbar.go: Tab bar and navigation bar rendering
// - panels.go: Settings and downloads panels
// - opener.go: Revealing downloads in the system file manager
// - styles.go: Color schemes and styling
package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/entrhq/graphite/pkg/browser"
	"github.com/entrhq/graphite/pkg/logging"
	"github.com/entrhq/graphite/pkg/viewer"
)

// Options configures an Executor.
type Options struct {
	// Viewer renders page content. Nil means an offline viewer.
	Viewer viewer.Viewer

	// Router rewrites viewer targets through the proxy server.
	Router *viewer.Router

	// Logger receives diagnostics. Nil discards them.
	Logger *logging.Logger

	// ShowHelp shows the key help line at the bottom of the screen.
	ShowHelp bool

	// DownloadsDir is where downloaded files live.
	DownloadsDir string

	// LoadTimeout bounds each viewer operation.
	LoadTimeout time.Duration

	// OpenFolder reveals a file in the system file manager.
	// Nil means RevealInFileManager.
	OpenFolder func(path string) error

	// CopyText writes to the system clipboard. Nil means the real clipboard.
	CopyText func(text string) error
}

// Executor runs a browser shell in the terminal.
type Executor struct {
	shell   *browser.Shell
	opts    Options
	program *tea.Program
}

// NewExecutor creates a TUI executor for shell.
func NewExecutor(shell *browser.Shell, opts Options) *Executor {
	return &Executor{shell: shell, opts: opts}
}

// Run starts the TUI and blocks until the user exits or ctx is cancelled.
// The viewer is shut down before Run returns.
func (e *Executor) Run(ctx context.Context) error {
	logger := e.opts.Logger
	logger.Infof("TUI executor starting")

	m := newModel(ctx, e.shell, e.opts)
	defer func() {
		if err := m.viewer.Shutdown(); err != nil {
			logger.Warnf("Viewer shutdown failed: %v", err)
		}
	}()

	e.program = tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	if _, err := e.program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI program: %w", err)
	}

	logger.Infof("TUI executor stopped")
	return nil
}
