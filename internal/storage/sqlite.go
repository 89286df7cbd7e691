// Package storage persists crawl results into a local SQLite database, as an
// optional complement to the JSON summary artifact.
package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/supportcrawl/supportcrawl/internal/crawler"
)

// Store handles all database operations.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and initializes the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS crawls (
		crawl_id INTEGER PRIMARY KEY AUTOINCREMENT,
		base_url TEXT NOT NULL,
		total_pages_scraped INTEGER NOT NULL,
		total_content_size INTEGER NOT NULL,
		failed_urls_count INTEGER NOT NULL,
		crawl_timestamp TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS pages (
		url TEXT PRIMARY KEY,
		crawl_id INTEGER NOT NULL,
		title TEXT,
		content TEXT NOT NULL,
		content_length INTEGER NOT NULL,
		source_type TEXT NOT NULL,
		scraped_at TIMESTAMP NOT NULL,
		FOREIGN KEY (crawl_id) REFERENCES crawls(crawl_id)
	);

	CREATE TABLE IF NOT EXISTS failed_urls (
		url TEXT NOT NULL,
		crawl_id INTEGER NOT NULL,
		FOREIGN KEY (crawl_id) REFERENCES crawls(crawl_id),
		UNIQUE(url, crawl_id)
	);

	CREATE INDEX IF NOT EXISTS idx_pages_crawl ON pages(crawl_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveSummary persists a full crawl summary (metadata, pages, failed URLs)
// in one transaction and returns the crawl row id. Pages are upserted by
// URL, so re-running a crawl refreshes existing rows.
func (s *Store) SaveSummary(summary *crawler.Summary) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO crawls (base_url, total_pages_scraped, total_content_size,
			failed_urls_count, crawl_timestamp)
		VALUES (?, ?, ?, ?, ?)`,
		summary.CrawlInfo.BaseURL,
		summary.CrawlInfo.TotalPagesScraped,
		summary.CrawlInfo.TotalContentSize,
		summary.CrawlInfo.FailedURLCount,
		summary.CrawlInfo.CrawlTimestamp,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert crawl row: %w", err)
	}

	crawlID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read crawl id: %w", err)
	}

	pageStmt, err := tx.Prepare(`
		INSERT INTO pages (url, crawl_id, title, content, content_length,
			source_type, scraped_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			crawl_id = EXCLUDED.crawl_id,
			title = EXCLUDED.title,
			content = EXCLUDED.content,
			content_length = EXCLUDED.content_length,
			source_type = EXCLUDED.source_type,
			scraped_at = EXCLUDED.scraped_at`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare page statement: %w", err)
	}
	defer pageStmt.Close()

	for _, page := range summary.SupportPages {
		if _, err := pageStmt.Exec(page.URL, crawlID, page.Title, page.Content,
			page.ContentLength, page.SourceType, page.Timestamp); err != nil {
			return 0, fmt.Errorf("failed to insert page %s: %w", page.URL, err)
		}
	}

	for _, url := range summary.FailedURLs {
		if _, err := tx.Exec(`
			INSERT OR IGNORE INTO failed_urls (url, crawl_id) VALUES (?, ?)`,
			url, crawlID); err != nil {
			return 0, fmt.Errorf("failed to insert failed URL %s: %w", url, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}

	return crawlID, nil
}

// PageCount returns the number of stored pages.
func (s *Store) PageCount() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM pages").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pages: %w", err)
	}
	return count, nil
}

// GetPage loads a stored page by canonical URL.
func (s *Store) GetPage(url string) (*crawler.PageRecord, error) {
	var page crawler.PageRecord
	err := s.db.QueryRow(`
		SELECT url, title, content, content_length, source_type, scraped_at
		FROM pages WHERE url = ?`, url).Scan(
		&page.URL, &page.Title, &page.Content, &page.ContentLength,
		&page.SourceType, &page.Timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load page %s: %w", url, err)
	}
	return &page, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
