package crawler

import "time"

// SourceTypePage tags records produced by the page extraction path.
const SourceTypePage = "support_page"

// PageRecord is one successfully extracted page. Immutable once created.
// The JSON field names are a downstream contract; loaders key off them.
type PageRecord struct {
	URL           string    `json:"url"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	ContentLength int       `json:"content_length"`
	SourceType    string    `json:"source_type"`
	Timestamp     time.Time `json:"timestamp"`
}

// CrawlInfo carries crawl-level metadata in the summary artifact.
type CrawlInfo struct {
	BaseURL           string    `json:"base_url"`
	TotalPagesScraped int       `json:"total_pages_scraped"`
	TotalContentSize  int       `json:"total_content_size"`
	FailedURLCount    int       `json:"failed_urls_count"`
	CrawlTimestamp    time.Time `json:"crawl_timestamp"`
}

// Summary is the single externally persisted artifact of a crawl run. Its
// shape (crawl_info / support_pages / failed_urls) is stable for downstream
// indexing pipelines.
type Summary struct {
	CrawlInfo    CrawlInfo    `json:"crawl_info"`
	SupportPages []PageRecord `json:"support_pages"`
	FailedURLs   []string     `json:"failed_urls"`
}
