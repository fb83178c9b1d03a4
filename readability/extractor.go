// Package readability extracts article body text with go-readability. It is
// the fallback extractor for pages trafilatura cannot handle.
package readability

import (
	"strings"

	"github.com/fwojciec/newsbrowse"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements newsbrowse.Extractor at compile time.
var _ newsbrowse.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*newsbrowse.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, newsbrowse.Errorf(newsbrowse.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	// An empty body leaves nothing but the title behind.
	text := strings.TrimSpace(article.TextContent)
	if text == "" || text == strings.TrimSpace(article.Title) {
		return nil, newsbrowse.Errorf(newsbrowse.ENOTFOUND, "no article body found")
	}

	return &newsbrowse.ExtractResult{
		Title:       article.Title,
		Text:        text,
		ContentHTML: article.Content,
	}, nil
}
