package newsbrowse

import (
	"fmt"
	"net/url"
	"strings"
)

// Listing endpoints.
const (
	BrowseBaseURL = "https://news.naver.com/main/list.naver"
	SearchBaseURL = "https://search.naver.com/search.naver"
)

const (
	// ProbePage is requested to discover the last listing page. The listing
	// renders its true last page when asked for a page past the end.
	ProbePage = 10000

	// ResultsPerPage is the number of search results per keyword listing page.
	ResultsPerPage = 10

	// KeywordSeparator joins keywords into a single OR search query.
	KeywordSeparator = " | "
)

// ListingURL returns the listing URL of page for the query on date.
func ListingURL(q ListingQuery, date string, page int) string {
	if q.Kind == SourceKindKeyword {
		return ListingURLByKeywords(q.Keywords, date, page)
	}
	return ListingURLByID(q.ID, date, page)
}

// ListingURLByID returns the category browse listing URL.
func ListingURLByID(id, date string, page int) string {
	v := url.Values{}
	v.Set("mode", "LSD")
	v.Set("mid", "sec")
	v.Set("sid1", id)
	v.Set("listType", "title")
	v.Set("date", date)
	v.Set("page", fmt.Sprint(page))
	return BrowseBaseURL + "?" + encodeOrdered(v, "mode", "mid", "sid1", "listType", "date", "page")
}

// ListingURLByKeywords returns the keyword search listing URL.
func ListingURLByKeywords(keywords []string, date string, page int) string {
	v := url.Values{}
	v.Set("where", "news")
	v.Set("query", KeywordQuery(keywords))
	v.Set("sort", "0")
	v.Set("nso", "p:from"+date+"to"+date)
	v.Set("start", fmt.Sprint(ResultOffset(page)))
	return SearchBaseURL + "?" + encodeOrdered(v, "where", "query", "sort", "nso", "start")
}

// KeywordQuery joins keywords into an OR search query.
func KeywordQuery(keywords []string) string {
	return strings.Join(keywords, KeywordSeparator)
}

// ResultOffset converts a 1-based page number to a 1-based result offset.
func ResultOffset(page int) int {
	return (page-1)*ResultsPerPage + 1
}

// encodeOrdered encodes v in the given key order. url.Values.Encode sorts
// keys, the listing sites expect their own order.
func encodeOrdered(v url.Values, keys ...string) string {
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, url.QueryEscape(k)+"="+url.QueryEscape(v.Get(k)))
	}
	return strings.Join(parts, "&")
}

// ListingParser reads one listing schema.
type ListingParser interface {
	// MaxPage returns the last page number shown by the pagination of a
	// probed listing page. Returns ENOTFOUND if the indicator is absent.
	MaxPage(html string) (int, error)

	// Articles returns the article entries of a listing page in on-page order.
	Articles(html string) ([]ArticleMeta, error)
}

// ListingParserRegistry resolves the parser for a listing kind.
type ListingParserRegistry interface {
	// Get returns the parser for kind, or nil if none is registered.
	Get(kind SourceKind) ListingParser
}
