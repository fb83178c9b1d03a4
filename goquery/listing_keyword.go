package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newsbrowse"
)

var _ newsbrowse.ListingParser = (*KeywordListingParser)(nil)

// Selectors of the keyword search listing.
const (
	keywordPagingSelector = "div.sc_page_inner a"
	keywordEntrySelector  = "div.news_area"
	keywordTitleSelector  = "a.news_tit"
	keywordAuthorSelector = "div.info_group a"
)

// KeywordListingParser reads keyword search listings.
//
// Each result sits in a "news area" block. The headline anchor carries the
// full title in its title attribute (its text may be truncated or
// highlighted), and the first anchor of the info group names the press.
type KeywordListingParser struct{}

// NewKeywordListingParser creates a new KeywordListingParser.
func NewKeywordListingParser() *KeywordListingParser {
	return &KeywordListingParser{}
}

// MaxPage returns the label of the last anchor in the paging strip.
func (p *KeywordListingParser) MaxPage(html string) (int, error) {
	doc, err := parseDocument(html)
	if err != nil {
		return 0, err
	}
	return parsePageNumber(doc.Find(keywordPagingSelector).Last(), keywordPagingSelector)
}

// Articles returns the results of a search listing page.
// Results missing the headline anchor or the info group anchor are skipped.
func (p *KeywordListingParser) Articles(html string) ([]newsbrowse.ArticleMeta, error) {
	doc, err := parseDocument(html)
	if err != nil {
		return nil, err
	}

	var articles []newsbrowse.ArticleMeta
	doc.Find(keywordEntrySelector).Each(func(_ int, entry *goquery.Selection) {
		headline := entry.Find(keywordTitleSelector).First()
		author := entry.Find(keywordAuthorSelector).First()
		if headline.Length() == 0 || author.Length() == 0 {
			return
		}

		title, ok := headline.Attr("title")
		if !ok {
			title = headline.Text()
		}
		href, _ := headline.Attr("href")

		articles = append(articles, newsbrowse.ArticleMeta{
			Title:  normalizeSpace(title),
			URL:    href,
			Author: strings.TrimSpace(author.Text()),
		})
	})

	return articles, nil
}
