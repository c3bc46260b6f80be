package viewer

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/graphite/pkg/browser"
	"github.com/entrhq/graphite/pkg/logging"
)

// Defaults for PlaywrightOptions.
const (
	DefaultTimeout     = 30 * time.Second
	DefaultWaitUntil   = "domcontentloaded"
	DefaultIdleTimeout = 30 * time.Minute
	DefaultMaxPages    = 16
)

// PlaywrightOptions configures a PlaywrightViewer.
type PlaywrightOptions struct {
	// Headless controls whether Chromium runs without a visible window.
	Headless bool

	// Timeout bounds each navigation.
	Timeout time.Duration

	// WaitUntil specifies when to consider navigation successful.
	// Valid values: "load", "domcontentloaded", "networkidle"
	WaitUntil string

	// MaxPreview is the preview length passed to ExtractPreview.
	MaxPreview int

	// IdleTimeout closes pages of tabs that have not been used for this long.
	IdleTimeout time.Duration

	// MaxPages caps the number of open pages; the least recently used page
	// is closed when a new one would exceed it.
	MaxPages int
}

func (o *PlaywrightOptions) setDefaults() {
	if o.Timeout == 0 {
		o.Timeout = DefaultTimeout
	}
	if o.WaitUntil == "" {
		o.WaitUntil = DefaultWaitUntil
	}
	if o.MaxPreview == 0 {
		o.MaxPreview = DefaultMaxPreview
	}
	if o.IdleTimeout == 0 {
		o.IdleTimeout = DefaultIdleTimeout
	}
	if o.MaxPages == 0 {
		o.MaxPages = DefaultMaxPages
	}
}

// PlaywrightViewer renders tabs in a single Chromium instance with one page
// per tab. Playwright is installed and started on first use.
type PlaywrightViewer struct {
	mu      sync.Mutex
	opts    PlaywrightOptions
	logger  *logging.Logger
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	pages   map[uint32]*tabPage
	started bool
}

// tabPage is the Playwright page backing one tab.
type tabPage struct {
	mu       sync.Mutex
	page     playwright.Page
	lastUsed time.Time
}

// NewPlaywrightViewer creates a viewer. Nothing is started until the first Load.
func NewPlaywrightViewer(opts PlaywrightOptions, logger *logging.Logger) *PlaywrightViewer {
	opts.setDefaults()
	return &PlaywrightViewer{
		opts:   opts,
		logger: logger,
		pages:  make(map[uint32]*tabPage),
	}
}

// start installs and runs Playwright and launches Chromium.
// Callers must hold v.mu.
func (v *PlaywrightViewer) start() error {
	if v.started {
		return nil
	}

	// Playwright output would corrupt the terminal UI.
	runOpts := &playwright.RunOptions{
		Browsers: []string{"chromium"},
		Verbose:  false,
		Stdout:   io.Discard,
		Stderr:   io.Discard,
	}

	if err := playwright.Install(runOpts); err != nil {
		return fmt.Errorf("failed to install playwright: %w", err)
	}

	pw, err := playwright.Run(runOpts)
	if err != nil {
		return fmt.Errorf("failed to start playwright: %w", err)
	}

	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: &v.opts.Headless,
	})
	if err != nil {
		_ = pw.Stop()
		return fmt.Errorf("failed to launch browser: %w", err)
	}

	bctx, err := b.NewContext()
	if err != nil {
		_ = b.Close()
		_ = pw.Stop()
		return fmt.Errorf("failed to create context: %w", err)
	}

	v.pw, v.browser, v.context = pw, b, bctx
	v.started = true
	v.logger.Infof("Chromium started (headless=%v)", v.opts.Headless)
	return nil
}

// pageFor returns the tab's page, creating it when create is set.
func (v *PlaywrightViewer) pageFor(tabID uint32, create bool) (*tabPage, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.closeIdleLocked(tabID)

	if tp, ok := v.pages[tabID]; ok {
		return tp, nil
	}
	if !create {
		return nil, ErrNoPage
	}

	if err := v.start(); err != nil {
		return nil, err
	}

	page, err := v.context.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	page.SetDefaultTimeout(float64(v.opts.Timeout.Milliseconds()))

	tp := &tabPage{page: page, lastUsed: time.Now()}
	v.pages[tabID] = tp
	v.evictLocked(tabID)
	return tp, nil
}

// Load navigates the tab's page to url.
func (v *PlaywrightViewer) Load(ctx context.Context, tabID uint32, url string) (*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if browser.IsInternal(url) {
		return nil, ErrInternalURL
	}

	tp, err := v.pageFor(tabID, true)
	if err != nil {
		return nil, err
	}

	tp.mu.Lock()
	defer tp.mu.Unlock()
	tp.lastUsed = time.Now()

	waitUntil := playwright.WaitUntilState(v.opts.WaitUntil)
	timeout := v.navigationTimeout(ctx)
	if _, err := tp.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: &waitUntil,
		Timeout:   &timeout,
	}); err != nil {
		return nil, fmt.Errorf("navigation failed: %w", err)
	}

	v.logger.Debugf("Tab %d loaded %s", tabID, tp.page.URL())
	return v.snapshot(tp.page)
}

// Back goes back in the tab's page history.
func (v *PlaywrightViewer) Back(ctx context.Context, tabID uint32) (*Page, error) {
	return v.step(ctx, tabID, browser.Back)
}

// Forward goes forward in the tab's page history.
func (v *PlaywrightViewer) Forward(ctx context.Context, tabID uint32) (*Page, error) {
	return v.step(ctx, tabID, browser.Forward)
}

func (v *PlaywrightViewer) step(ctx context.Context, tabID uint32, dir browser.Direction) (*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tp, err := v.pageFor(tabID, false)
	if err != nil {
		return nil, err
	}

	tp.mu.Lock()
	defer tp.mu.Unlock()
	tp.lastUsed = time.Now()

	timeout := v.navigationTimeout(ctx)
	var resp playwright.Response
	if dir == browser.Back {
		resp, err = tp.page.GoBack(playwright.PageGoBackOptions{Timeout: &timeout})
	} else {
		resp, err = tp.page.GoForward(playwright.PageGoForwardOptions{Timeout: &timeout})
	}
	if err != nil {
		return nil, fmt.Errorf("history navigation failed: %w", err)
	}
	if resp == nil {
		return nil, ErrNoHistory
	}
	return v.snapshot(tp.page)
}

// navigationTimeout returns the Playwright timeout in milliseconds, bounded
// by ctx's deadline.
func (v *PlaywrightViewer) navigationTimeout(ctx context.Context) float64 {
	timeout := v.opts.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = max(remaining, time.Millisecond)
		}
	}
	return float64(timeout.Milliseconds())
}

func (v *PlaywrightViewer) snapshot(page playwright.Page) (*Page, error) {
	result := &Page{URL: page.URL()}

	if title, err := page.Title(); err == nil {
		result.Title = title
	}

	content, err := page.Content()
	if err != nil {
		return result, fmt.Errorf("failed to read page content: %w", err)
	}

	preview, err := ExtractPreview(content, v.opts.MaxPreview)
	if err != nil {
		return result, err
	}
	if result.Title == "" {
		result.Title = preview.Title
	}
	result.Text = preview.Text
	result.Truncated = preview.Truncated
	return result, nil
}

// Discard closes the tab's page.
func (v *PlaywrightViewer) Discard(tabID uint32) error {
	v.mu.Lock()
	tp, ok := v.pages[tabID]
	delete(v.pages, tabID)
	v.mu.Unlock()

	if !ok {
		return nil
	}
	if err := tp.page.Close(); err != nil {
		return fmt.Errorf("failed to close page for tab %d: %w", tabID, err)
	}
	return nil
}

// closeIdleLocked closes pages idle for longer than IdleTimeout, except keep.
func (v *PlaywrightViewer) closeIdleLocked(keep uint32) {
	now := time.Now()
	for id, tp := range v.pages {
		if id == keep || now.Sub(tp.lastUsed) <= v.opts.IdleTimeout {
			continue
		}
		v.closeLocked(id, tp, "idle")
	}
}

// evictLocked closes least recently used pages above MaxPages, except keep.
func (v *PlaywrightViewer) evictLocked(keep uint32) {
	if len(v.pages) <= v.opts.MaxPages {
		return
	}

	ids := make([]uint32, 0, len(v.pages))
	for id := range v.pages {
		if id != keep {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool {
		return v.pages[ids[i]].lastUsed.Before(v.pages[ids[j]].lastUsed)
	})

	for _, id := range ids {
		if len(v.pages) <= v.opts.MaxPages {
			return
		}
		v.closeLocked(id, v.pages[id], "evicted")
	}
}

func (v *PlaywrightViewer) closeLocked(id uint32, tp *tabPage, reason string) {
	if err := tp.page.Close(); err != nil {
		v.logger.Warnf("Failed to close %s page for tab %d: %v", reason, id, err)
	}
	delete(v.pages, id)
	v.logger.Debugf("Closed %s page for tab %d", reason, id)
}

// Shutdown closes all pages and stops Playwright.
func (v *PlaywrightViewer) Shutdown() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	for id, tp := range v.pages {
		_ = tp.page.Close() // Ignore errors, continue cleanup
		delete(v.pages, id)
	}

	if !v.started {
		return nil
	}
	_ = v.context.Close()
	_ = v.browser.Close()
	v.started = false

	if err := v.pw.Stop(); err != nil {
		return fmt.Errorf("failed to stop playwright: %w", err)
	}
	return nil
}
