package scrape

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
)

// RenderOptions controls how a single rendered fetch behaves.
type RenderOptions struct {
	// WaitSelector names an element to wait for before reading the DOM.
	// The wait is soft: on timeout the fetch logs, captures a diagnostic
	// screenshot and proceeds with whatever DOM is present.
	WaitSelector string
	// Grace is slept after navigation when no WaitSelector is given,
	// giving scripts time to run.
	Grace time.Duration
	// ScrollToBottom enables the scroll-until-stable loop for pages that
	// lazy-load content.
	ScrollToBottom bool
	// Snapshot captures a screenshot after the wait phase regardless of
	// outcome, named after SnapshotName.
	Snapshot bool
	// SnapshotName is the basename for diagnostic screenshots.
	SnapshotName string
}

// RenderedFetcher drives a headless browser to load a URL and returns the
// live DOM as a parsed document. Every call owns an isolated browser
// context; contexts are never reused, trading throughput for isolation.
type RenderedFetcher struct {
	userAgent   string
	pageTimeout time.Duration
	waitTimeout time.Duration
	settle      time.Duration
	debugDir    string
}

func NewRenderedFetcher(userAgent string, pageTimeout, settle time.Duration, debugDir string) *RenderedFetcher {
	return &RenderedFetcher{
		userAgent:   userAgent,
		pageTimeout: pageTimeout,
		waitTimeout: pageTimeout,
		settle:      settle,
		debugDir:    debugDir,
	}
}

func (f *RenderedFetcher) Fetch(ctx context.Context, url string, opts RenderOptions) (*goquery.Document, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent(f.userAgent),
		chromedp.Flag("disable-notifications", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-infobars", true),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	navCtx, cancelNav := context.WithTimeout(browserCtx, f.pageTimeout)
	defer cancelNav()

	if err := chromedp.Run(navCtx, chromedp.Navigate(url)); err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}

	f.wait(browserCtx, url, opts)

	if opts.Snapshot {
		f.captureScreenshot(browserCtx, opts.SnapshotName)
	}

	if opts.ScrollToBottom {
		if err := f.scrollToBottom(browserCtx); err != nil {
			slog.Warn("Scroll loop aborted", "url", url, "error", err)
		}
	}

	var html string
	htmlCtx, cancelHTML := context.WithTimeout(browserCtx, f.waitTimeout)
	defer cancelHTML()

	if err := chromedp.Run(htmlCtx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// wait blocks until the ready selector appears, the wait times out, or the
// grace period elapses. A ready-wait timeout is soft: it is logged and
// extraction proceeds against whatever DOM is present.
func (f *RenderedFetcher) wait(browserCtx context.Context, url string, opts RenderOptions) {
	if opts.WaitSelector == "" {
		if opts.Grace > 0 {
			_ = chromedp.Run(browserCtx, chromedp.Sleep(opts.Grace))
		}
		return
	}

	waitCtx, cancelWait := context.WithTimeout(browserCtx, f.waitTimeout)
	defer cancelWait()

	if err := chromedp.Run(waitCtx, chromedp.WaitReady(opts.WaitSelector, chromedp.ByQuery)); err != nil {
		slog.Warn("Timed out waiting for ready selector, proceeding anyway",
			"url", url, "selector", opts.WaitSelector, "error", err)
		if opts.SnapshotName != "" {
			f.captureScreenshot(browserCtx, opts.SnapshotName+"_timeout")
		}
	}
}

func (f *RenderedFetcher) scrollToBottom(browserCtx context.Context) error {
	scroll := func() error {
		return chromedp.Run(browserCtx,
			chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil))
	}
	height := func() (int64, error) {
		var h int64
		err := chromedp.Run(browserCtx,
			chromedp.Evaluate(`document.body.scrollHeight`, &h))
		return h, err
	}

	return scrollUntilStable(browserCtx, scroll, height, f.settle, MaxScrollIterations)
}

func (f *RenderedFetcher) captureScreenshot(browserCtx context.Context, name string) {
	if f.debugDir == "" || name == "" {
		return
	}

	var buf []byte
	shotCtx, cancel := context.WithTimeout(browserCtx, 10*time.Second)
	defer cancel()

	if err := chromedp.Run(shotCtx, chromedp.CaptureScreenshot(&buf)); err != nil {
		slog.Warn("Failed to capture screenshot", "name", name, "error", err)
		return
	}

	path := filepath.Join(f.debugDir, "screenshots", name+".png")
	if err := os.WriteFile(path, buf, 0644); err != nil {
		slog.Warn("Failed to save screenshot", "path", path, "error", err)
		return
	}

	slog.Debug("Saved diagnostic screenshot", "path", path)
}
