package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newsbrowse"
)

var _ newsbrowse.ListingParser = (*IDListingParser)(nil)

// Selectors of the category browse listing.
const (
	idPagingSelector = "div.paging strong"
	idEntrySelector  = "div.list_body ul.type02 li"
	idLinkSelector   = "a[href]"
	idAuthorSelector = "span.writing"
)

// IDListingParser reads category browse listings.
//
// Each entry is a list item holding the headline anchor and a "writing"
// label naming the press. The current page of the pagination strip is the
// only strong element inside it.
type IDListingParser struct{}

// NewIDListingParser creates a new IDListingParser.
func NewIDListingParser() *IDListingParser {
	return &IDListingParser{}
}

// MaxPage returns the emphasized current page of the pagination strip.
// Probed past the end, the listing emphasizes its last page.
func (p *IDListingParser) MaxPage(html string) (int, error) {
	doc, err := parseDocument(html)
	if err != nil {
		return 0, err
	}
	return parsePageNumber(doc.Find(idPagingSelector).First(), idPagingSelector)
}

// Articles returns the entries of a browse listing page.
// Entries missing the headline anchor or the writing label are skipped.
func (p *IDListingParser) Articles(html string) ([]newsbrowse.ArticleMeta, error) {
	doc, err := parseDocument(html)
	if err != nil {
		return nil, err
	}

	var articles []newsbrowse.ArticleMeta
	doc.Find(idEntrySelector).Each(func(_ int, entry *goquery.Selection) {
		link := entry.Find(idLinkSelector).First()
		author := entry.Find(idAuthorSelector).First()
		if link.Length() == 0 || author.Length() == 0 {
			return
		}

		href, _ := link.Attr("href")
		articles = append(articles, newsbrowse.ArticleMeta{
			Title:  normalizeSpace(link.Text()),
			URL:    href,
			Author: normalizeSpace(author.Text()),
		})
	})

	return articles, nil
}
