package output

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/supportcrawl/supportcrawl/internal/crawler"
)

// JSONWriter writes the summary as a single JSON document.
type JSONWriter struct {
	w      *bufio.Writer
	pretty bool
	indent string
}

// NewJSONWriter creates a JSON writer.
func NewJSONWriter(w io.Writer, pretty bool, indent string) *JSONWriter {
	return &JSONWriter{
		w:      bufio.NewWriter(w),
		pretty: pretty,
		indent: indent,
	}
}

// WriteSummary serializes the summary.
func (w *JSONWriter) WriteSummary(s *crawler.Summary) error {
	var output []byte
	var err error

	if w.pretty {
		output, err = json.MarshalIndent(s, "", w.indent)
	} else {
		output, err = json.Marshal(s)
	}
	if err != nil {
		return err
	}

	if _, err := w.w.Write(output); err != nil {
		return err
	}
	if _, err := w.w.WriteString("\n"); err != nil {
		return err
	}

	return w.w.Flush()
}

// Close flushes the writer.
func (w *JSONWriter) Close() error {
	return w.w.Flush()
}

// JSONLWriter writes newline-delimited JSON: one page record per line.
// The crawl metadata and failed URLs are not part of the stream; use the
// json format when the full artifact shape is needed.
type JSONLWriter struct {
	w *bufio.Writer
}

// NewJSONLWriter creates a JSONL writer.
func NewJSONLWriter(w io.Writer) *JSONLWriter {
	return &JSONLWriter{
		w: bufio.NewWriter(w),
	}
}

// WriteSummary writes each page record as a JSON line.
func (w *JSONLWriter) WriteSummary(s *crawler.Summary) error {
	for _, page := range s.SupportPages {
		line, err := json.Marshal(page)
		if err != nil {
			return err
		}
		if _, err := w.w.Write(line); err != nil {
			return err
		}
		if _, err := w.w.WriteString("\n"); err != nil {
			return err
		}
	}
	return w.w.Flush()
}

// Close flushes the writer.
func (w *JSONLWriter) Close() error {
	return w.w.Flush()
}
