// Package cli provides a line-mode executor for the graphite browser.
//
// Each line typed at the prompt is either an address, a search or a slash
// command. Pages are printed as plain text below the prompt.
//
// Example usage:
//
//	package main
//
//	import (
//	    "context"
//	    "log"
//
//	    "github.com/entrhq/graphite/pkg/browser"
//	    "github.com/entrhq/graphite/pkg/executor/cli"
//	    "github.com/entrhq/graphite/pkg/persist"
//	)
//
//	func main() {
//	    shell := browser.NewShell(persist.NewAdapter(persist.NewMemoryKV(), nil))
//
//	    executor := cli.NewExecutor(shell,
//	        cli.WithPageLines(40),
//	    )
//
//	    if err := executor.Run(context.Background()); err != nil {
//	        log.Fatal(err)
//	    }
//	}
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/entrhq/graphite/pkg/browser"
	"github.com/entrhq/graphite/pkg/logging"
	"github.com/entrhq/graphite/pkg/viewer"
)

const offlineNotice = "Page previews are off. Set viewer.backend to playwright in the config to render pages."

// Executor drives a browser shell from lines of terminal input.
type Executor struct {
	shell  *browser.Shell
	viewer viewer.Viewer
	router *viewer.Router
	logger *logging.Logger
	reader *bufio.Reader
	writer io.Writer

	downloadsDir string
	openFolder   func(path string) error
	loadTimeout  time.Duration
	pageLines    int

	// Rendered pages and load failures, keyed by tab id
	pages    map[uint32]*viewer.Page
	loadErrs map[uint32]error
}

// ExecutorOption is a function that configures an Executor.
type ExecutorOption func(*Executor)

// WithViewer sets the viewer that renders pages (default is an offline viewer).
func WithViewer(v viewer.Viewer) ExecutorOption {
	return func(e *Executor) {
		e.viewer = v
	}
}

// WithRouter sets the router that applies the proxy server to viewer targets.
func WithRouter(r *viewer.Router) ExecutorOption {
	return func(e *Executor) {
		e.router = r
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *logging.Logger) ExecutorOption {
	return func(e *Executor) {
		e.logger = l
	}
}

// WithReader sets a custom input reader (default is os.Stdin).
func WithReader(r io.Reader) ExecutorOption {
	return func(e *Executor) {
		e.reader = bufio.NewReader(r)
	}
}

// WithWriter sets a custom output writer (default is os.Stdout).
func WithWriter(w io.Writer) ExecutorOption {
	return func(e *Executor) {
		e.writer = w
	}
}

// WithDownloadsDir sets the directory downloads are revealed in.
func WithDownloadsDir(dir string) ExecutorOption {
	return func(e *Executor) {
		e.downloadsDir = dir
	}
}

// WithOpenFolder sets the function that reveals a file in the file manager.
func WithOpenFolder(open func(path string) error) ExecutorOption {
	return func(e *Executor) {
		e.openFolder = open
	}
}

// WithLoadTimeout bounds each viewer operation. Zero keeps the default.
func WithLoadTimeout(d time.Duration) ExecutorOption {
	return func(e *Executor) {
		if d > 0 {
			e.loadTimeout = d
		}
	}
}

// WithPageLines sets how many lines of page text are printed.
func WithPageLines(n int) ExecutorOption {
	return func(e *Executor) {
		e.pageLines = n
	}
}

// NewExecutor creates a line-mode executor for shell.
func NewExecutor(shell *browser.Shell, opts ...ExecutorOption) *Executor {
	e := &Executor{
		shell:       shell,
		viewer:      viewer.NewNop(),
		reader:      bufio.NewReader(os.Stdin),
		writer:      os.Stdout,
		loadTimeout: viewer.DefaultTimeout,
		pageLines:   20,
		openFolder: func(string) error {
			return errors.New("revealing files is not supported here")
		},
		pages:    make(map[uint32]*viewer.Page),
		loadErrs: make(map[uint32]error),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Run starts the prompt loop. It returns when the user exits, input ends or
// ctx is cancelled. The viewer is shut down before Run returns.
func (e *Executor) Run(ctx context.Context) error {
	e.logger.Infof("CLI executor starting")
	defer func() {
		if err := e.viewer.Shutdown(); err != nil {
			e.logger.Warnf("Viewer shutdown failed: %v", err)
		}
		e.logger.Infof("CLI executor stopped")
	}()

	fmt.Fprintln(e.writer, "Graphite")
	fmt.Fprintln(e.writer, "Type an address or a search and press Enter. Type /help for commands, 'exit' or 'quit' to leave.")
	fmt.Fprintln(e.writer)

	state := e.shell.State()
	if tab, ok := state.ActiveTab(); ok && !tab.IsHome() {
		e.load(ctx, browser.LoadEffect{TabID: tab.ID, URL: tab.URL(), Proxy: state.ProxyServer})
	}
	e.printActive()

	done := make(chan struct{})
	defer close(done)
	lines := e.readLines(done)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(e.writer, "> ")
		var line readResult
		select {
		case <-ctx.Done():
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(e.writer)
				return nil
			}
			line = l
		}

		if line.err != nil && line.text == "" {
			if errors.Is(line.err, io.EOF) {
				fmt.Fprintln(e.writer)
				return nil
			}
			return fmt.Errorf("failed to read input: %w", line.err)
		}

		input := strings.TrimSpace(line.text)

		if input == "exit" || input == "quit" {
			return nil
		}

		if input == "" {
			continue
		}

		if cmd, ok := Parse(input); ok {
			quit, err := e.execute(ctx, cmd)
			if err != nil {
				fmt.Fprintf(e.writer, "✗ %v\n", err)
			}
			if quit {
				return nil
			}
			continue
		}

		e.dispatch(ctx, browser.NavigateMsg{Input: input})
	}
}

type readResult struct {
	text string
	err  error
}

// readLines reads input lines in the background so a cancelled context is
// not stuck behind a blocking read. The channel is closed after the first
// error or once done is closed.
func (e *Executor) readLines(done <-chan struct{}) <-chan readResult {
	ch := make(chan readResult)
	go func() {
		defer close(ch)
		for {
			text, err := e.reader.ReadString('\n')
			select {
			case ch <- readResult{text: text, err: err}:
			case <-done:
				return
			}
			if err != nil {
				return
			}
		}
	}()
	return ch
}

// dispatch hands msg to the shell, carries out its effects and prints the
// active tab.
func (e *Executor) dispatch(ctx context.Context, msg browser.Msg) {
	tr := e.shell.Dispatch(msg)
	e.logger.Debugf("Dispatched %T (persist=%v, effects=%d)", msg, tr.Persist, len(tr.Effects))
	e.runEffects(ctx, tr.Effects)
	if tr.Redraw {
		e.printActive()
	}
}

func (e *Executor) runEffects(ctx context.Context, effects []browser.Effect) {
	for _, eff := range effects {
		switch eff := eff.(type) {
		case browser.LoadEffect:
			e.load(ctx, eff)

		case browser.HistoryEffect:
			e.step(ctx, eff)

		case browser.DiscardEffect:
			delete(e.pages, eff.TabID)
			delete(e.loadErrs, eff.TabID)
			if err := e.viewer.Discard(eff.TabID); err != nil {
				e.logger.Warnf("Discarding tab %d: %v", eff.TabID, err)
			}

		case browser.OpenFolderEffect:
			path := filepath.Join(e.downloadsDir, eff.Filename)
			if err := e.openFolder(path); err != nil {
				fmt.Fprintf(e.writer, "✗ Could not open folder: %v\n", err)
			}
		}
	}
}

// load runs a viewer load for eff. Loads that are not forced are skipped
// when the tab already has a page.
func (e *Executor) load(ctx context.Context, eff browser.LoadEffect) {
	if browser.IsInternal(eff.URL) {
		return
	}
	if _, shown := e.pages[eff.TabID]; shown && !eff.Force {
		return
	}

	target := e.router.Target(eff.Proxy, eff.URL)
	e.logger.Infof("Loading %s in tab %d", target, eff.TabID)
	e.settle(ctx, eff.TabID, func(ctx context.Context) (*viewer.Page, error) {
		return e.viewer.Load(ctx, eff.TabID, target)
	})
}

func (e *Executor) step(ctx context.Context, eff browser.HistoryEffect) {
	e.settle(ctx, eff.TabID, func(ctx context.Context) (*viewer.Page, error) {
		if eff.Direction == browser.Back {
			return e.viewer.Back(ctx, eff.TabID)
		}
		return e.viewer.Forward(ctx, eff.TabID)
	})
}

// settle runs a viewer operation and records its result for tabID.
func (e *Executor) settle(ctx context.Context, tabID uint32, run func(context.Context) (*viewer.Page, error)) {
	ctx, cancel := context.WithTimeout(ctx, e.loadTimeout)
	defer cancel()

	page, err := run(ctx)
	switch {
	case errors.Is(err, viewer.ErrNoHistory), errors.Is(err, viewer.ErrNoPage):
		fmt.Fprintln(e.writer, "Nothing to go back or forward to")
	case err != nil:
		e.logger.Warnf("Tab %d failed to load: %v", tabID, err)
		e.loadErrs[tabID] = err
		if page != nil {
			e.pages[tabID] = page
		}
	default:
		delete(e.loadErrs, tabID)
		e.pages[tabID] = page
	}
}
