package mock

import "github.com/fwojciec/newsbrowse"

var _ newsbrowse.ListingParser = (*ListingParser)(nil)

// ListingParser is a mock implementation of newsbrowse.ListingParser.
type ListingParser struct {
	MaxPageFn  func(html string) (int, error)
	ArticlesFn func(html string) ([]newsbrowse.ArticleMeta, error)
}

func (p *ListingParser) MaxPage(html string) (int, error) {
	return p.MaxPageFn(html)
}

func (p *ListingParser) Articles(html string) ([]newsbrowse.ArticleMeta, error) {
	return p.ArticlesFn(html)
}

var _ newsbrowse.ListingParserRegistry = (*ListingParserRegistry)(nil)

// ListingParserRegistry is a mock implementation of newsbrowse.ListingParserRegistry.
type ListingParserRegistry struct {
	GetFn func(kind newsbrowse.SourceKind) newsbrowse.ListingParser
}

func (r *ListingParserRegistry) Get(kind newsbrowse.SourceKind) newsbrowse.ListingParser {
	return r.GetFn(kind)
}
