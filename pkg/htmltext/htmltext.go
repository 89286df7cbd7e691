// Package htmltext converts HTML fragments into cleaned plain text.
// The conversion goes through html-to-markdown, which preserves headings,
// lists and tables as readable text while discarding markup.
package htmltext

import (
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// minLineLength is the trimmed length below which a line is considered an
// artifact (stray punctuation, page numbers) and dropped.
const minLineLength = 3

// Convert turns an HTML fragment into plain text and cleans it line by line.
func Convert(html string) (string, error) {
	text, err := md.ConvertString(html)
	if err != nil {
		return "", err
	}
	return CleanLines(text), nil
}

// CleanLines splits text into lines, drops lines that are empty or whose
// trimmed length is at most minLineLength, and rejoins the rest with
// newlines. No other normalization is applied.
func CleanLines(text string) string {
	if text == "" {
		return ""
	}

	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) > minLineLength {
			cleaned = append(cleaned, line)
		}
	}

	return strings.Join(cleaned, "\n")
}
