// Package crawler implements the crawl engine: URL canonicalization, the
// frontier (queue plus visited/failed sets), seed link discovery, content
// extraction and the breadth-first orchestrator.
package crawler

import (
	"net/url"
	"strings"
)

// Canonicalize resolves raw against base and normalizes the result down to
// scheme, host and path: fragment and query are stripped, and a single
// trailing slash is removed unless the path is exactly "/". The canonical
// form is the deduplication key everywhere in the crawl. Returns false if
// the input cannot be parsed or does not resolve to an absolute URL.
func Canonicalize(raw, base string) (string, bool) {
	if raw == "" {
		return "", false
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", false
	}

	if base != "" {
		baseURL, err := url.Parse(base)
		if err != nil {
			return "", false
		}
		parsed = baseURL.ResolveReference(parsed)
	}

	if parsed.Scheme == "" || parsed.Host == "" {
		return "", false
	}

	parsed.Fragment = ""
	parsed.RawQuery = ""

	if len(parsed.Path) > 1 && strings.HasSuffix(parsed.Path, "/") {
		parsed.Path = parsed.Path[:len(parsed.Path)-1]
	}

	return parsed.Scheme + "://" + parsed.Host + parsed.Path, true
}

// Scope restricts the crawl to a single host and path prefix.
type Scope struct {
	Host       string
	PathPrefix string
}

// ScopeFromURL derives the crawl scope from a base URL: its host and its
// canonical path as the prefix.
func ScopeFromURL(baseURL string) (Scope, bool) {
	canonical, ok := Canonicalize(baseURL, "")
	if !ok {
		return Scope{}, false
	}

	parsed, err := url.Parse(canonical)
	if err != nil {
		return Scope{}, false
	}

	return Scope{Host: parsed.Host, PathPrefix: parsed.Path}, true
}

// Contains reports whether a canonical URL falls inside the scope: same host
// and path starting with the configured prefix. The check is purely
// structural and never consults crawl state.
func (s Scope) Contains(canonical string) bool {
	if canonical == "" {
		return false
	}

	parsed, err := url.Parse(canonical)
	if err != nil {
		return false
	}

	return parsed.Host == s.Host && strings.HasPrefix(parsed.Path, s.PathPrefix)
}
