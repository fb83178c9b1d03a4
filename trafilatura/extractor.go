// Package trafilatura extracts article body text with go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/newsbrowse"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultLanguage is the language the extraction heuristics are tuned for.
const DefaultLanguage = "ko"

// Ensure Extractor implements newsbrowse.Extractor at compile time.
var _ newsbrowse.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract the main content of news
// articles. Images are never included in the output.
type Extractor struct {
	language string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLanguage sets the target language hint. An empty language disables
// the language check.
func WithLanguage(lang string) Option {
	return func(e *Extractor) {
		e.language = lang
	}
}

// NewExtractor creates a new Extractor targeting DefaultLanguage.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{language: DefaultLanguage}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract processes raw article HTML and returns the body as text and as
// clean HTML.
func (e *Extractor) Extract(rawHTML string) (*newsbrowse.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, newsbrowse.Errorf(newsbrowse.EINVALID, "empty HTML input")
	}

	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, err
	}
	// The fallback extractors promote the <title> to content when the body
	// is empty.
	if !hasBodyText(doc) {
		return nil, newsbrowse.Errorf(newsbrowse.ENOTFOUND, "no article body found")
	}

	opts := trafilatura.Options{
		TargetLanguage:  e.language,
		EnableFallback:  true,
		ExcludeComments: true,
		IncludeImages:   false,
	}

	result, err := trafilatura.ExtractDocument(doc, opts)
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(result.ContentText)
	if text == "" || text == strings.TrimSpace(result.Metadata.Title) {
		return nil, newsbrowse.Errorf(newsbrowse.ENOTFOUND, "no article body found")
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &newsbrowse.ExtractResult{
		Title:       result.Metadata.Title,
		Text:        text,
		ContentHTML: contentHTML,
	}, nil
}

// hasBodyText reports whether the document body holds visible text.
func hasBodyText(doc *html.Node) bool {
	body := findBody(doc)
	if body == nil {
		return false
	}
	return containsText(body)
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if body := findBody(c); body != nil {
			return body
		}
	}
	return nil
}

func containsText(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if strings.TrimSpace(c.Data) != "" {
				return true
			}
		case html.ElementNode:
			switch c.DataAtom {
			case atom.Script, atom.Style, atom.Noscript, atom.Template:
				continue
			}
			if containsText(c) {
				return true
			}
		}
	}
	return false
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
