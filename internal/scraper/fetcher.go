// Package scraper handles page fetching for the crawl engine. Two tiers are
// provided: a plain HTTP fetcher for static pages and a headless-browser
// fetcher for pages that populate their content with JavaScript.
package scraper

import (
	"context"
	"time"
)

// PageContent represents fetched page data.
type PageContent struct {
	URL        string
	HTML       string
	StatusCode int
	FetchedAt  time.Time
}

// Config holds common fetcher configuration.
type Config struct {
	UserAgent string
	Timeout   time.Duration
}

// DefaultConfig returns sensible fetcher defaults.
func DefaultConfig() Config {
	return Config{
		UserAgent: "supportcrawl/1.0 (+https://github.com/supportcrawl/supportcrawl)",
		Timeout:   15 * time.Second,
	}
}

// Fetcher abstracts page fetching strategies.
type Fetcher interface {
	// Fetch retrieves page content from a URL.
	Fetch(ctx context.Context, url string) (PageContent, error)

	// Close releases any resources (browser instances, etc.).
	Close() error

	// Type returns "static" or "rendered".
	Type() string
}
