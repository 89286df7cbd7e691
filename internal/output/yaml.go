package output

import (
	"bufio"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/supportcrawl/supportcrawl/internal/crawler"
)

// YAMLWriter writes the summary as YAML.
type YAMLWriter struct {
	w *bufio.Writer
}

// NewYAMLWriter creates a YAML writer.
func NewYAMLWriter(w io.Writer) *YAMLWriter {
	return &YAMLWriter{
		w: bufio.NewWriter(w),
	}
}

// WriteSummary serializes the summary.
func (w *YAMLWriter) WriteSummary(s *crawler.Summary) error {
	encoder := yaml.NewEncoder(w.w)
	encoder.SetIndent(2)

	if err := encoder.Encode(s); err != nil {
		return err
	}
	if err := encoder.Close(); err != nil {
		return err
	}

	return w.w.Flush()
}

// Close flushes the writer.
func (w *YAMLWriter) Close() error {
	return w.w.Flush()
}
