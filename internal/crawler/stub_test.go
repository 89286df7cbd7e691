package crawler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/supportcrawl/supportcrawl/internal/scraper"
)

// stubFetcher serves canned HTML per URL, simulating the static fetch tier.
type stubFetcher struct {
	pages      map[string]string
	fail       map[string]bool
	fetchCount int
	onFetch    func(count int)
}

func (s *stubFetcher) Fetch(_ context.Context, url string) (scraper.PageContent, error) {
	s.fetchCount++
	if s.onFetch != nil {
		s.onFetch(s.fetchCount)
	}

	if s.fail[url] {
		return scraper.PageContent{URL: url}, errors.New("connection refused")
	}

	html, ok := s.pages[url]
	if !ok {
		return scraper.PageContent{URL: url, StatusCode: 404}, fmt.Errorf("not found: %s", url)
	}

	return scraper.PageContent{
		URL:        url,
		HTML:       html,
		StatusCode: 200,
		FetchedAt:  time.Now(),
	}, nil
}

func (s *stubFetcher) Close() error { return nil }

func (s *stubFetcher) Type() string { return "stub" }

// stubRenderer serves canned HTML for the rendered tier.
type stubRenderer struct {
	pages map[string]string
	err   error
}

func (s *stubRenderer) Fetch(_ context.Context, url string) (scraper.PageContent, error) {
	if s.err != nil {
		return scraper.PageContent{URL: url}, s.err
	}
	return scraper.PageContent{
		URL:        url,
		HTML:       s.pages[url],
		StatusCode: 200,
		FetchedAt:  time.Now(),
	}, nil
}

func (s *stubRenderer) FetchExpanded(ctx context.Context, url string) (scraper.PageContent, error) {
	return s.Fetch(ctx, url)
}

// countingRenderer records how often the rendered tier is consulted.
type countingRenderer struct {
	calls *int
}

func (c *countingRenderer) Fetch(_ context.Context, url string) (scraper.PageContent, error) {
	*c.calls++
	return scraper.PageContent{URL: url, StatusCode: 200}, nil
}

func (c *countingRenderer) FetchExpanded(ctx context.Context, url string) (scraper.PageContent, error) {
	return c.Fetch(ctx, url)
}
