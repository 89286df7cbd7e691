package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/supportcrawl/supportcrawl/internal/crawler"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "crawl.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testSummary() *crawler.Summary {
	return &crawler.Summary{
		CrawlInfo: crawler.CrawlInfo{
			BaseURL:           "https://site/support",
			TotalPagesScraped: 1,
			TotalContentSize:  55,
			FailedURLCount:    1,
			CrawlTimestamp:    time.Now().UTC(),
		},
		SupportPages: []crawler.PageRecord{
			{
				URL:           "https://site/support/faq",
				Title:         "FAQ",
				Content:       "How to reset your password and other common questions.",
				ContentLength: 55,
				SourceType:    "support_page",
				Timestamp:     time.Now().UTC(),
			},
		},
		FailedURLs: []string{"https://site/support/broken"},
	}
}

func TestStore_SaveSummaryAndLoad(t *testing.T) {
	store := testStore(t)

	crawlID, err := store.SaveSummary(testSummary())
	if err != nil {
		t.Fatalf("SaveSummary() error = %v", err)
	}
	if crawlID == 0 {
		t.Error("expected a non-zero crawl id")
	}

	count, err := store.PageCount()
	if err != nil {
		t.Fatalf("PageCount() error = %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 stored page, got %d", count)
	}

	page, err := store.GetPage("https://site/support/faq")
	if err != nil {
		t.Fatalf("GetPage() error = %v", err)
	}
	if page.Title != "FAQ" {
		t.Errorf("expected title FAQ, got %q", page.Title)
	}
	if page.ContentLength != 55 {
		t.Errorf("expected content length 55, got %d", page.ContentLength)
	}
}

func TestStore_UpsertRefreshesPage(t *testing.T) {
	store := testStore(t)

	if _, err := store.SaveSummary(testSummary()); err != nil {
		t.Fatalf("SaveSummary() error = %v", err)
	}

	updated := testSummary()
	updated.SupportPages[0].Title = "FAQ (updated)"
	if _, err := store.SaveSummary(updated); err != nil {
		t.Fatalf("SaveSummary() second run error = %v", err)
	}

	count, err := store.PageCount()
	if err != nil {
		t.Fatalf("PageCount() error = %v", err)
	}
	if count != 1 {
		t.Errorf("expected upsert to keep 1 page, got %d", count)
	}

	page, err := store.GetPage("https://site/support/faq")
	if err != nil {
		t.Fatalf("GetPage() error = %v", err)
	}
	if page.Title != "FAQ (updated)" {
		t.Errorf("expected refreshed title, got %q", page.Title)
	}
}

func TestStore_GetPage_Missing(t *testing.T) {
	store := testStore(t)

	if _, err := store.GetPage("https://site/support/nope"); err == nil {
		t.Error("expected error for missing page")
	}
}
