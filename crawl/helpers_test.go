package crawl_test

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/fwojciec/newsbrowse"
	"github.com/fwojciec/newsbrowse/mock"
)

// echoFetcher returns the requested URL as the page body, so listing
// parsers can tell pages apart.
func echoFetcher() *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, u string) (string, error) {
			return u, nil
		},
		CloseFn: func() error { return nil },
	}
}

// pageOf returns the listing page addressed by rawURL.
func pageOf(rawURL string) int {
	u, err := url.Parse(rawURL)
	if err != nil {
		return 0
	}
	q := u.Query()
	if p := q.Get("page"); p != "" {
		n, _ := strconv.Atoi(p)
		return n
	}
	start, _ := strconv.Atoi(q.Get("start"))
	return (start-1)/newsbrowse.ResultsPerPage + 1
}

// pagedListing is a listing parser reporting maxPage pages of perPage
// entries each. Entry URLs encode the prefix, page and position.
func pagedListing(prefix string, maxPage, perPage int) *mock.ListingParser {
	return &mock.ListingParser{
		MaxPageFn: func(string) (int, error) {
			return maxPage, nil
		},
		ArticlesFn: func(html string) ([]newsbrowse.ArticleMeta, error) {
			page := pageOf(html)
			metas := make([]newsbrowse.ArticleMeta, perPage)
			for i := range metas {
				metas[i] = newsbrowse.ArticleMeta{
					Title:  fmt.Sprintf("%s page %d item %d", prefix, page, i),
					URL:    fmt.Sprintf("https://news.example/%s/%d/%d", prefix, page, i),
					Author: "press " + prefix,
				}
			}
			return metas, nil
		},
	}
}

// registryOf returns a registry serving byKind.
func registryOf(byKind map[newsbrowse.SourceKind]newsbrowse.ListingParser) *mock.ListingParserRegistry {
	return &mock.ListingParserRegistry{
		GetFn: func(kind newsbrowse.SourceKind) newsbrowse.ListingParser {
			return byKind[kind]
		},
	}
}
