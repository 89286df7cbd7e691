package crawler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/supportcrawl/supportcrawl/internal/logger"
	"github.com/supportcrawl/supportcrawl/internal/scraper"
)

// progressEvery is how many successful pages pass between progress logs.
const progressEvery = 20

// Config holds crawl configuration.
type Config struct {
	// BaseURL is the seed; its host and path become the crawl scope.
	BaseURL string `validate:"required,url"`

	// MaxPages caps the number of successfully scraped pages.
	MaxPages int `validate:"min=1"`

	// Delay is the fixed politeness pause between iterations.
	Delay time.Duration `validate:"min=0"`
}

// DefaultConfig returns sensible crawl defaults.
func DefaultConfig() Config {
	return Config{
		MaxPages: 1000,
		Delay:    time.Second,
	}
}

// Crawler drives the breadth-first traversal. It is the single owner of the
// frontier and the result collection; fetches are blocking calls from its
// point of view.
type Crawler struct {
	config     Config
	seed       string
	frontier   *Frontier
	discoverer *Discoverer
	extractor  *Extractor
	pages      []PageRecord
}

// New creates a crawler from a validated config. rendered may be nil to run
// static-only.
func New(static scraper.Fetcher, rendered Renderer, cfg Config) (*Crawler, error) {
	if cfg.MaxPages == 0 {
		cfg.MaxPages = DefaultConfig().MaxPages
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid crawl config: %w", err)
	}

	seed, ok := Canonicalize(cfg.BaseURL, "")
	if !ok {
		return nil, fmt.Errorf("invalid base URL: %s", cfg.BaseURL)
	}

	scope, ok := ScopeFromURL(cfg.BaseURL)
	if !ok {
		return nil, fmt.Errorf("cannot derive scope from base URL: %s", cfg.BaseURL)
	}

	return &Crawler{
		config:     cfg,
		seed:       seed,
		frontier:   NewFrontier(scope),
		discoverer: NewDiscoverer(static, rendered, scope),
		extractor:  NewExtractor(static, rendered, scope),
		pages:      make([]PageRecord, 0),
	}, nil
}

// Run seeds the frontier, performs the discovery sweep and drives the main
// loop until the frontier is empty, the page cap is reached or ctx is
// cancelled. The returned summary is always valid, including on
// cancellation; the error is the ctx error in that case.
func (c *Crawler) Run(ctx context.Context) (*Summary, error) {
	logger.Info("crawl starting",
		"base_url", c.seed,
		"max_pages", c.config.MaxPages,
		"delay", c.config.Delay)

	c.frontier.Offer(c.seed)

	discovered, err := c.discoverer.Discover(ctx, c.seed)
	if err != nil {
		// Per-URL errors never abort the traversal; a dead seed still
		// leaves the bare seed URL in the frontier.
		logger.Warn("seed discovery failed, continuing with seed only", "error", err)
	}
	for _, link := range discovered {
		c.frontier.Offer(link)
	}

	logger.Info("frontier seeded", "queued", c.frontier.Size())

	scraped := 0
	var runErr error

	for !c.frontier.IsEmpty() && scraped < c.config.MaxPages {
		select {
		case <-ctx.Done():
			logger.Warn("crawl interrupted", "scraped", scraped, "queued", c.frontier.Size())
			runErr = ctx.Err()
		default:
		}
		if runErr != nil {
			break
		}

		url, ok := c.frontier.Pop()
		if !ok {
			break
		}

		// Stale duplicate left in the queue after the URL went terminal.
		if c.frontier.IsVisited(url) || c.frontier.IsFailed(url) {
			continue
		}

		logger.Debug("processing", "url", url, "scraped", scraped, "queued", c.frontier.Size())

		record, links, err := c.extractor.Extract(ctx, url)
		for _, link := range links {
			c.frontier.Offer(link)
		}

		switch {
		case errors.Is(err, ErrInsufficientContent):
			logger.Debug("insufficient content", "url", url)
			c.frontier.MarkVisited(url)
		case err != nil:
			logger.Warn("page failed", "url", url, "error", err)
			c.frontier.MarkFailed(url)
		default:
			c.pages = append(c.pages, *record)
			c.frontier.MarkVisited(url)
			scraped++
			logger.Debug("page scraped", "url", url, "content_length", record.ContentLength)

			if scraped%progressEvery == 0 {
				logger.Info("progress",
					"scraped", scraped,
					"queued", c.frontier.Size(),
					"failed", c.frontier.FailedCount())
			}
		}

		time.Sleep(c.config.Delay)
	}

	summary := c.buildSummary()
	logger.Info("crawl finished",
		"scraped", summary.CrawlInfo.TotalPagesScraped,
		"failed", summary.CrawlInfo.FailedURLCount,
		"content_bytes", summary.CrawlInfo.TotalContentSize)

	return summary, runErr
}

// buildSummary assembles the output artifact from the current crawl state.
// Safe to call after any exit path, including early termination.
func (c *Crawler) buildSummary() *Summary {
	totalSize := 0
	for _, page := range c.pages {
		totalSize += page.ContentLength
	}

	failed := c.frontier.FailedURLs()

	return &Summary{
		CrawlInfo: CrawlInfo{
			BaseURL:           c.seed,
			TotalPagesScraped: len(c.pages),
			TotalContentSize:  totalSize,
			FailedURLCount:    len(failed),
			CrawlTimestamp:    time.Now(),
		},
		SupportPages: c.pages,
		FailedURLs:   failed,
	}
}
