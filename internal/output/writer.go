// Package output serializes the crawl summary artifact.
package output

import (
	"fmt"
	"io"

	"github.com/supportcrawl/supportcrawl/internal/crawler"
)

// Format represents output format types.
type Format string

const (
	// FormatJSON writes the whole summary as one (pretty) JSON document.
	FormatJSON Format = "json"
	// FormatJSONL writes one page record per line, for pipelines that
	// stream pages into an indexer.
	FormatJSONL Format = "jsonl"
	// FormatYAML writes the whole summary as YAML.
	FormatYAML Format = "yaml"
)

// Writer serializes a crawl summary.
type Writer interface {
	// WriteSummary outputs the summary artifact.
	WriteSummary(s *crawler.Summary) error

	// Close flushes any buffered data.
	Close() error
}

// NewWriter creates a writer for the specified format.
func NewWriter(w io.Writer, format Format) (Writer, error) {
	switch format {
	case FormatJSON:
		return NewJSONWriter(w, true, "  "), nil
	case FormatJSONL:
		return NewJSONLWriter(w), nil
	case FormatYAML:
		return NewYAMLWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
