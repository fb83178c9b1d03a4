package mock

import "github.com/fwojciec/newsbrowse"

var _ newsbrowse.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of newsbrowse.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*newsbrowse.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*newsbrowse.ExtractResult, error) {
	return e.ExtractFn(html)
}
