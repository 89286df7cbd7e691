package crawler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/supportcrawl/supportcrawl/internal/logger"
	"github.com/supportcrawl/supportcrawl/internal/scraper"
	"github.com/supportcrawl/supportcrawl/pkg/htmltext"
)

// ErrInsufficientContent marks a page that was fetched and parsed but whose
// cleaned text is below the content floor. It is a terminal non-error
// outcome: the URL counts as visited, not failed.
var ErrInsufficientContent = errors.New("insufficient content")

const (
	// contentLengthFloor is the minimum cleaned-text length for a page to
	// produce a record.
	contentLengthFloor = 50

	// renderedFallbackFloor is the static-text length under which the
	// rendered fetch is tried as a second chance.
	renderedFallbackFloor = 200
)

// contentSelectors is the extraction cascade, most specific containers
// first. The first selector that matches any element wins.
var contentSelectors = []string{
	".support-content",
	".help-content",
	".faq-content",
	".article-content",
	".main-content",
	".content",
	"main",
	"article",
	".container .row",
	".container",
}

// strippedSelector matches the non-content elements removed before
// extraction.
const strippedSelector = "script, style, nav, footer, header"

// Renderer is the rendered-browser capability used for the fallback fetch
// and the discovery sweep. *scraper.RenderedFetcher implements it; it is an
// interface here so the crawl engine can run without a browser.
type Renderer interface {
	// Fetch loads a page and returns the rendered DOM after a single
	// scroll to the bottom.
	Fetch(ctx context.Context, url string) (scraper.PageContent, error)

	// FetchExpanded additionally exhausts infinite scroll and expandable
	// UI before reading the DOM.
	FetchExpanded(ctx context.Context, url string) (scraper.PageContent, error)
}

// Extractor fetches a page and extracts its cleaned text content, harvesting
// same-site links along the way.
type Extractor struct {
	static   scraper.Fetcher
	rendered Renderer
	scope    Scope
}

// NewExtractor creates an extractor. rendered may be nil; the rendered
// fallback is then skipped.
func NewExtractor(static scraper.Fetcher, rendered Renderer, scope Scope) *Extractor {
	return &Extractor{
		static:   static,
		rendered: rendered,
		scope:    scope,
	}
}

// Extract fetches url and runs the extraction cascade. It returns the page
// record, the in-scope links discovered on the page, and an error that is
// either a fetch/parse failure or ErrInsufficientContent. Links are valid
// whenever the document was parsed, including the insufficient-content case.
func (e *Extractor) Extract(ctx context.Context, url string) (*PageRecord, []string, error) {
	content, err := e.static.Fetch(ctx, url)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching %s: %w", url, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content.HTML))
	if err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", url, err)
	}

	// Harvest links from the unmodified document, before extractText strips
	// nav and footer elements that often hold them.
	links := harvestDocLinks(doc, url, e.scope)

	title := strings.TrimSpace(doc.Find("title").First().Text())

	text := extractText(doc)

	if len(text) < renderedFallbackFloor && e.rendered != nil {
		renderedText, err := e.renderedText(ctx, url)
		if err != nil {
			logger.Debug("rendered fallback failed", "url", url, "error", err)
		} else if len(renderedText) > len(text) {
			logger.Debug("rendered fallback used",
				"url", url,
				"static_len", len(text),
				"rendered_len", len(renderedText))
			text = renderedText
		}
	}

	if len(strings.TrimSpace(text)) <= contentLengthFloor {
		return nil, links, ErrInsufficientContent
	}

	return &PageRecord{
		URL:           url,
		Title:         title,
		Content:       text,
		ContentLength: len(text),
		SourceType:    SourceTypePage,
		Timestamp:     time.Now(),
	}, links, nil
}

// renderedText re-fetches url through the rendered session and applies the
// same strip/cascade/convert steps to the rendered DOM.
func (e *Extractor) renderedText(ctx context.Context, url string) (string, error) {
	content, err := e.rendered.Fetch(ctx, url)
	if err != nil {
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content.HTML))
	if err != nil {
		return "", err
	}

	return extractText(doc), nil
}

// extractText strips non-content elements, walks the selector cascade and
// converts the winning fragment (or the body as fallback) to cleaned plain
// text. Returns "" when the document has no usable content region.
func extractText(doc *goquery.Document) string {
	doc.Find(strippedSelector).Remove()

	fragment := selectContent(doc)
	if fragment == nil {
		return ""
	}

	html, err := goquery.OuterHtml(fragment)
	if err != nil {
		return ""
	}

	text, err := htmltext.Convert(html)
	if err != nil {
		return ""
	}
	return text
}

// selectContent returns the first cascade match, stopping at the first
// selector that matches any element, or the body as a last resort.
func selectContent(doc *goquery.Document) *goquery.Selection {
	for _, selector := range contentSelectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			return sel.First()
		}
	}

	if body := doc.Find("body"); body.Length() > 0 {
		return body.First()
	}
	return nil
}
