package newsbrowse

// ExtractResult holds the content extracted from an article page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// Text is the article body as plain text.
	Text string

	// ContentHTML is the article body as clean HTML, boilerplate removed.
	ContentHTML string
}

// Extractor strips boilerplate from article pages.
type Extractor interface {
	// Extract processes raw article HTML and returns its main content.
	// Implementations hold no state between calls and are safe for
	// concurrent use.
	Extract(html string) (*ExtractResult, error)
}
