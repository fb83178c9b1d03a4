package newsbrowse

// Converter converts article HTML to Markdown.
type Converter interface {
	// Convert transforms clean HTML (e.g., ExtractResult.ContentHTML) into Markdown.
	Convert(html string) (string, error)
}
