// Package goquery implements the listing schemas of the news sites using
// CSS selectors.
package goquery

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newsbrowse"
)

func parseDocument(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, newsbrowse.Errorf(newsbrowse.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// parsePageNumber reads a pagination label such as "12" or " 12 ".
func parsePageNumber(sel *goquery.Selection, selector string) (int, error) {
	if sel.Length() == 0 {
		return 0, newsbrowse.Errorf(newsbrowse.ENOTFOUND, "pagination indicator %q not found", selector)
	}
	text := strings.TrimSpace(sel.Text())
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, newsbrowse.Errorf(newsbrowse.EINVALID, "pagination indicator %q is not a page number: %q", selector, text)
	}
	if n < 1 {
		return 0, newsbrowse.Errorf(newsbrowse.EINVALID, "pagination indicator %q is out of range: %d", selector, n)
	}
	return n, nil
}

// normalizeSpace collapses runs of whitespace into single spaces.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
