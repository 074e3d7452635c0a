package fetcher

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"rental-comps/utils"
)

// BrowserFetcher renders pages in headless Chrome and returns the final HTML.
type BrowserFetcher struct {
	browserCtx    context.Context
	cancelAlloc   context.CancelFunc
	cancelBrowser context.CancelFunc
	timeout       time.Duration
	settle        time.Duration
	logger        *utils.Logger
}

// NewBrowserFetcher launches headless Chrome. Every Fetch opens a tab in the
// same browser. Call Close when done.
func NewBrowserFetcher(chromeBin string, timeout time.Duration, logger *utils.Logger) (*BrowserFetcher, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
	)
	if bin := findChromeBinary(chromeBin); bin != "" {
		logger.Info("[fetcher] Using browser binary: %s", bin)
		opts = append(opts, chromedp.ExecPath(bin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)

	// Suppress chromedp log noise
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, fmt.Errorf("fetcher: start browser: %w", err)
	}

	return &BrowserFetcher{
		browserCtx:    browserCtx,
		cancelAlloc:   cancelAlloc,
		cancelBrowser: cancelBrowser,
		timeout:       timeout,
		settle:        3 * time.Second,
		logger:        logger,
	}, nil
}

// Fetch opens url in a fresh tab with the given headers and returns the page HTML.
func (f *BrowserFetcher) Fetch(ctx context.Context, url string, headers map[string]string) (string, error) {
	tabCtx, cancelTab := chromedp.NewContext(f.browserCtx)
	defer cancelTab()

	if f.timeout > 0 {
		var cancelTimeout context.CancelFunc
		tabCtx, cancelTimeout = context.WithTimeout(tabCtx, f.timeout)
		defer cancelTimeout()
	}

	// Propagate caller cancellation into the tab.
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	extra := make(network.Headers, len(headers))
	for k, v := range headers {
		extra[k] = v
	}

	actions := []chromedp.Action{network.Enable(), network.SetExtraHTTPHeaders(extra)}
	if ua, ok := headers["User-Agent"]; ok {
		actions = append(actions, emulation.SetUserAgentOverride(ua))
	}

	var html string
	actions = append(actions,
		chromedp.Navigate(url),
		chromedp.Sleep(f.settle),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)

	f.logger.Debug("[fetcher] Rendering %s", url)
	if err := chromedp.Run(tabCtx, actions...); err != nil {
		return "", fmt.Errorf("fetcher: render %s: %w", url, err)
	}
	return html, nil
}

// Close shuts the browser down.
func (f *BrowserFetcher) Close() {
	f.cancelBrowser()
	f.cancelAlloc()
}

// findChromeBinary locates a Chrome/Chromium binary, preferring the configured path.
func findChromeBinary(configured string) string {
	if configured != "" {
		return configured
	}
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
