package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/entrhq/graphite/pkg/browser"
	"github.com/entrhq/graphite/pkg/logging"
	"github.com/entrhq/graphite/pkg/viewer"
)

// model represents the state of the TUI application.
// Browser state lives in the shell; the model only holds what is needed
// to draw it and to talk to the viewer.
type model struct {
	// Bubble Tea components
	urlInput   textinput.Model
	proxyInput textinput.Model
	content    viewport.Model
	spinner    spinner.Model
	help       help.Model
	keys       keyMap

	// Browser integration
	shell  *browser.Shell
	viewer viewer.Viewer
	router *viewer.Router
	logger *logging.Logger
	ctx    context.Context

	// Host integration
	downloadsDir string
	openFolder   func(path string) error
	copyText     func(text string) error
	loadTimeout  time.Duration

	// Rendered pages and in-flight loads, keyed by tab id
	pages    map[uint32]*viewer.Page
	loadErrs map[uint32]error
	inflight map[uint32]int
	loadSeq  int

	// Mouse hit zones computed during View
	tabZones   []tabZone
	navZones   []navZone
	panelX     int
	panelLines []panelLine

	// Panel cursors
	downloadCursor int

	// UI state
	toast    *toastNotification
	showHelp bool

	// Window dimensions
	width  int
	height int
	ready  bool
}

// pageLoadedMsg carries the result of a viewer load or history step.
type pageLoadedMsg struct {
	tabID uint32
	seq   int
	page  *viewer.Page
	err   error
}

// toastMsg triggers a toast notification
type toastMsg struct {
	message string
	details string
	icon    string
	isError bool
}

// toastExpiredMsg redraws once a toast has timed out.
type toastExpiredMsg struct{}

// toastNotification represents a temporary notification message
type toastNotification struct {
	active    bool
	message   string
	details   string
	icon      string
	isError   bool
	showUntil time.Time
}

// newModel creates a model around shell.
func newModel(ctx context.Context, shell *browser.Shell, opts Options) *model {
	urlInput := textinput.New()
	urlInput.Placeholder = "Search or enter address"
	urlInput.Prompt = ""
	urlInput.Focus()

	proxyInput := textinput.New()
	proxyInput.Placeholder = "https://proxy.example/"
	proxyInput.Prompt = "› "

	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = headerStyle

	v := opts.Viewer
	if v == nil {
		v = viewer.NewNop()
	}
	openFolder := opts.OpenFolder
	if openFolder == nil {
		openFolder = RevealInFileManager
	}
	copyText := opts.CopyText
	if copyText == nil {
		copyText = writeClipboard
	}
	loadTimeout := opts.LoadTimeout
	if loadTimeout == 0 {
		loadTimeout = viewer.DefaultTimeout
	}

	m := &model{
		urlInput:     urlInput,
		proxyInput:   proxyInput,
		content:      viewport.New(80, 20),
		spinner:      s,
		help:         help.New(),
		keys:         defaultKeyMap(),
		shell:        shell,
		viewer:       v,
		router:       opts.Router,
		logger:       opts.Logger,
		ctx:          ctx,
		downloadsDir: opts.DownloadsDir,
		openFolder:   openFolder,
		copyText:     copyText,
		loadTimeout:  loadTimeout,
		pages:        make(map[uint32]*viewer.Page),
		loadErrs:     make(map[uint32]error),
		inflight:     make(map[uint32]int),
		toast:        &toastNotification{},
		showHelp:     opts.ShowHelp,
		width:        80,
		height:       24,
	}
	m.syncInputs()
	return m
}

// state returns the shell's current state.
func (m *model) state() browser.State {
	return m.shell.State()
}

// session returns the shell's current session.
func (m *model) session() browser.Session {
	return m.shell.Session()
}
