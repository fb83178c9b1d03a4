package crawl

import (
	"context"

	"github.com/fwojciec/newsbrowse"
)

// MaxPage returns the number of listing pages of q on date.
//
// It requests newsbrowse.ProbePage, far past any real listing, and reads the
// pagination indicator the site renders for its true last page. Any failure
// is returned as *newsbrowse.DiscoveryError.
func (b *Browser) MaxPage(ctx context.Context, source string, q newsbrowse.ListingQuery, date string) (int, error) {
	probeURL := newsbrowse.ListingURL(q, date, newsbrowse.ProbePage)
	fail := func(err error) (int, error) {
		return 0, &newsbrowse.DiscoveryError{Source: source, Kind: q.Kind, URL: probeURL, Err: err}
	}

	parser, err := b.parser(q.Kind)
	if err != nil {
		return fail(err)
	}

	html, err := fetchPage(ctx, b.Fetcher, b.RateLimiter, b.RetryDelays, probeURL)
	if err != nil {
		return fail(err)
	}

	n, err := parser.MaxPage(html)
	if err != nil {
		return fail(err)
	}
	if n < 1 {
		return fail(newsbrowse.Errorf(newsbrowse.EINVALID, "page count %d out of range", n))
	}
	return n, nil
}
