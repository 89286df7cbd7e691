package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestStaticFetcher_Fetch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><head><title>Help</title></head><body>content</body></html>"))
	}))
	defer srv.Close()

	f := NewStaticFetcher(Config{Timeout: 5 * time.Second})
	content, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if content.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", content.StatusCode)
	}
	if !strings.Contains(content.HTML, "<title>Help</title>") {
		t.Errorf("expected HTML body, got %q", content.HTML)
	}
	if content.FetchedAt.IsZero() {
		t.Error("expected FetchedAt to be set")
	}
}

func TestStaticFetcher_Fetch_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := NewStaticFetcher(Config{Timeout: 5 * time.Second})
	_, err := f.Fetch(context.Background(), srv.URL+"/missing")
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestStaticFetcher_Fetch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := NewStaticFetcher(Config{Timeout: 5 * time.Second})
	_, err := f.Fetch(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestStaticFetcher_Fetch_InvalidURL(t *testing.T) {
	f := NewStaticFetcher(Config{})
	_, err := f.Fetch(context.Background(), "://not-a-url")
	if err == nil {
		t.Fatal("expected error for invalid URL")
	}
}

func TestStaticFetcher_Fetch_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := NewStaticFetcher(Config{})
	_, err := f.Fetch(ctx, "https://example.com")
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestStaticFetcher_Defaults(t *testing.T) {
	f := NewStaticFetcher(Config{})

	if f.config.UserAgent == "" {
		t.Error("expected default user agent")
	}
	if f.config.Timeout == 0 {
		t.Error("expected default timeout")
	}
	if f.Type() != "static" {
		t.Errorf("expected type static, got %q", f.Type())
	}
}
