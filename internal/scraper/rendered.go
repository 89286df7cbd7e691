package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/supportcrawl/supportcrawl/internal/logger"
)

const (
	// settleDelay gives asynchronously loaded content time to appear after
	// the body element exists.
	settleDelay = 3 * time.Second

	// scrollPause is the wait after each scroll-to-bottom before measuring
	// the page height again.
	scrollPause = 2 * time.Second

	// clickPause is the wait after activating an expandable UI element.
	clickPause = time.Second

	// maxScrollRounds bounds the infinite-scroll exhaustion loop.
	maxScrollRounds = 10
)

// expandableSelectors are UI patterns that commonly hide additional links
// behind a click. The click pass is a best-effort heuristic: it may miss
// site-specific widgets or fire on unrelated elements, and nothing
// correctness-critical depends on it.
var expandableSelectors = []string{
	`button[class*="expand"]`,
	`button[class*="more"]`,
	`a[class*="view-all"]`,
	`a[class*="show-all"]`,
	".expandable",
	".collapsible",
	"[data-toggle]",
}

// RenderedFetcher drives a headless browser through chromedp for pages whose
// content only exists after JavaScript runs. The browser allocator is a
// single long-lived resource; each fetch opens its own tab.
type RenderedFetcher struct {
	config   Config
	allocCtx context.Context
	cancel   context.CancelFunc
}

// NewRenderedFetcher creates a rendered fetcher with a browser allocator.
func NewRenderedFetcher(cfg Config) (*RenderedFetcher, error) {
	logger.Debug("creating rendered fetcher")

	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultConfig().UserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(cfg.UserAgent),
		chromedp.WindowSize(1920, 1080),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &RenderedFetcher{
		config:   cfg,
		allocCtx: allocCtx,
		cancel:   cancel,
	}, nil
}

// Fetch loads a page, waits for the body element, lets asynchronous content
// settle, scrolls once to the bottom and returns the rendered DOM.
func (f *RenderedFetcher) Fetch(ctx context.Context, targetURL string) (PageContent, error) {
	result := PageContent{
		URL:       targetURL,
		FetchedAt: time.Now(),
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	tabCtx, cancelTab := chromedp.NewContext(f.allocCtx)
	defer cancelTab()

	timeoutCtx, cancelTimeout := context.WithTimeout(tabCtx, f.config.Timeout)
	defer cancelTimeout()

	var html string
	err := chromedp.Run(timeoutCtx,
		chromedp.Navigate(targetURL),
		chromedp.WaitReady("body"),
		chromedp.Sleep(settleDelay),
		chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
		chromedp.Sleep(scrollPause),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return result, fmt.Errorf("browser automation failed: %w", err)
	}

	result.HTML = html
	result.StatusCode = 200 // chromedp doesn't easily expose status codes
	return result, nil
}

// FetchExpanded loads a page and exhausts its dynamic content: it scrolls to
// the bottom repeatedly until the measured page height stops growing, then
// tries to activate known expand/show-more UI patterns before returning the
// rendered DOM. Used for the initial discovery sweep.
func (f *RenderedFetcher) FetchExpanded(ctx context.Context, targetURL string) (PageContent, error) {
	result := PageContent{
		URL:       targetURL,
		FetchedAt: time.Now(),
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	tabCtx, cancelTab := chromedp.NewContext(f.allocCtx)
	defer cancelTab()

	// The exhaustion loop can legitimately take several scroll rounds, so
	// the budget here is larger than a single fetch.
	timeoutCtx, cancelTimeout := context.WithTimeout(tabCtx, f.config.Timeout*4)
	defer cancelTimeout()

	if err := chromedp.Run(timeoutCtx,
		chromedp.Navigate(targetURL),
		chromedp.WaitReady("body"),
	); err != nil {
		return result, fmt.Errorf("browser automation failed: %w", err)
	}

	if err := f.scrollToExhaustion(timeoutCtx); err != nil {
		return result, fmt.Errorf("scroll loop failed: %w", err)
	}

	f.clickExpandables(timeoutCtx)

	var html string
	if err := chromedp.Run(timeoutCtx, chromedp.OuterHTML("html", &html)); err != nil {
		return result, fmt.Errorf("browser automation failed: %w", err)
	}

	result.HTML = html
	result.StatusCode = 200
	return result, nil
}

// scrollToExhaustion scrolls to the bottom until document.body.scrollHeight
// stops growing or maxScrollRounds is reached.
func (f *RenderedFetcher) scrollToExhaustion(ctx context.Context) error {
	var lastHeight int64
	if err := chromedp.Run(ctx,
		chromedp.Evaluate(`document.body.scrollHeight`, &lastHeight),
	); err != nil {
		return err
	}

	for round := 0; round < maxScrollRounds; round++ {
		var newHeight int64
		if err := chromedp.Run(ctx,
			chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
			chromedp.Sleep(scrollPause),
			chromedp.Evaluate(`document.body.scrollHeight`, &newHeight),
		); err != nil {
			return err
		}

		if newHeight == lastHeight {
			logger.Debug("scroll height stable", "height", newHeight, "rounds", round+1)
			return nil
		}
		lastHeight = newHeight
	}

	logger.Debug("scroll round limit reached", "height", lastHeight)
	return nil
}

// clickExpandables activates visible elements matching the expandable UI
// patterns. Per-selector failures are logged and skipped.
func (f *RenderedFetcher) clickExpandables(ctx context.Context) {
	for _, selector := range expandableSelectors {
		script := fmt.Sprintf(`(() => {
			let clicked = 0;
			for (const el of document.querySelectorAll(%q)) {
				if (el.offsetParent !== null && !el.disabled) {
					el.click();
					clicked++;
				}
			}
			return clicked;
		})()`, selector)

		var clicked int
		if err := chromedp.Run(ctx,
			chromedp.Evaluate(script, &clicked),
		); err != nil {
			logger.Debug("expand click failed", "selector", selector, "error", err)
			continue
		}
		if clicked > 0 {
			logger.Debug("expanded UI elements", "selector", selector, "count", clicked)
			if err := chromedp.Run(ctx, chromedp.Sleep(clickPause)); err != nil {
				return
			}
		}
	}
}

// Close releases browser resources.
func (f *RenderedFetcher) Close() error {
	if f.cancel != nil {
		f.cancel()
	}
	return nil
}

// Type returns the fetcher type.
func (f *RenderedFetcher) Type() string {
	return "rendered"
}
