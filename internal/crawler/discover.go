package crawler

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/supportcrawl/supportcrawl/internal/logger"
	"github.com/supportcrawl/supportcrawl/internal/scraper"
)

// Discoverer performs the initial wide sweep over the seed page: a static
// pass and, when a renderer is available, a rendered pass that exhausts
// infinite scroll and expandable UI before re-reading the DOM.
type Discoverer struct {
	static   scraper.Fetcher
	rendered Renderer
	scope    Scope
}

// NewDiscoverer creates a discoverer. rendered may be nil, in which case
// discovery degrades to the static pass only.
func NewDiscoverer(static scraper.Fetcher, rendered Renderer, scope Scope) *Discoverer {
	return &Discoverer{
		static:   static,
		rendered: rendered,
		scope:    scope,
	}
}

// Discover returns the union of in-scope links found by both passes,
// deduplicated by canonical value in discovery order. A pass that fails is
// logged and skipped; an error is returned only when no pass produced
// anything, so the caller can decide whether to continue with the bare seed.
func (d *Discoverer) Discover(ctx context.Context, seedURL string) ([]string, error) {
	logger.Info("discovering links", "seed", seedURL)

	var links []string
	seen := make(map[string]struct{})
	collect := func(found []string) {
		for _, l := range found {
			if _, ok := seen[l]; ok {
				continue
			}
			seen[l] = struct{}{}
			links = append(links, l)
		}
	}

	var staticErr error
	content, err := d.static.Fetch(ctx, seedURL)
	if err != nil {
		staticErr = err
		logger.Warn("static discovery pass failed", "seed", seedURL, "error", err)
	} else {
		found, err := harvestLinks(content.HTML, seedURL, d.scope)
		if err != nil {
			staticErr = err
			logger.Warn("static discovery parse failed", "seed", seedURL, "error", err)
		} else {
			collect(found)
			logger.Debug("static discovery pass complete", "links", len(found))
		}
	}

	if d.rendered != nil {
		content, err := d.rendered.FetchExpanded(ctx, seedURL)
		if err != nil {
			logger.Warn("rendered discovery pass failed", "seed", seedURL, "error", err)
		} else if found, err := harvestLinks(content.HTML, seedURL, d.scope); err != nil {
			logger.Warn("rendered discovery parse failed", "seed", seedURL, "error", err)
		} else {
			collect(found)
			logger.Debug("rendered discovery pass complete", "links", len(found))
		}
	}

	if len(links) == 0 && staticErr != nil {
		return nil, fmt.Errorf("seed discovery failed: %w", staticErr)
	}

	logger.Info("discovery complete", "links", len(links))
	return links, nil
}

// harvestLinks parses HTML, canonicalizes every anchor href against pageURL
// and keeps the in-scope results, deduplicated in document order.
func harvestLinks(html, pageURL string, scope Scope) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	return harvestDocLinks(doc, pageURL, scope), nil
}

func harvestDocLinks(doc *goquery.Document, pageURL string, scope Scope) []string {
	var links []string
	seen := make(map[string]struct{})

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists || href == "" || strings.HasPrefix(href, "javascript:") {
			return
		}

		canonical, ok := Canonicalize(href, pageURL)
		if !ok || !scope.Contains(canonical) {
			return
		}

		if _, dup := seen[canonical]; dup {
			return
		}
		seen[canonical] = struct{}{}
		links = append(links, canonical)
	})

	return links
}
