package crawl

import (
	"errors"
	"strings"

	"github.com/fwojciec/newsbrowse"
)

// Ensure FallbackExtractor implements newsbrowse.Extractor at compile time.
var _ newsbrowse.Extractor = (*FallbackExtractor)(nil)

// FallbackExtractor tries each extractor in order and returns the first
// result with a non-empty body.
type FallbackExtractor struct {
	Extractors []newsbrowse.Extractor
}

// Extract implements newsbrowse.Extractor. When every extractor fails the
// errors are joined.
func (f *FallbackExtractor) Extract(html string) (*newsbrowse.ExtractResult, error) {
	if len(f.Extractors) == 0 {
		return nil, newsbrowse.Errorf(newsbrowse.EINTERNAL, "no extractors configured")
	}

	var errs []error
	for _, e := range f.Extractors {
		result, err := e.Extract(html)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if result == nil || strings.TrimSpace(result.Text) == "" {
			errs = append(errs, newsbrowse.Errorf(newsbrowse.ENOTFOUND, "no article body"))
			continue
		}
		return result, nil
	}
	return nil, errors.Join(errs...)
}
