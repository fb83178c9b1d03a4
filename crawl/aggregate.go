package crawl

import "github.com/fwojciec/newsbrowse"

// InclusionPolicy decides whether records whose text extraction failed are
// kept in the result table.
type InclusionPolicy int

const (
	// KeepFailed keeps failed records with empty text.
	KeepFailed InclusionPolicy = iota
	// DropFailed omits failed records.
	DropFailed
)

// Aggregate joins extracted texts onto records by URL and returns the
// result table in record order. Record fields are copied unchanged.
// When a URL was extracted more than once, any successful extraction
// supplies the text of every record with that URL.
func Aggregate(date string, records []newsbrowse.ArticleRecord, results []ParseResult, policy InclusionPolicy) *newsbrowse.ResultTable {
	texts := make(map[string]string, len(results))
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		texts[r.URL] = r.Text
	}

	table := &newsbrowse.ResultTable{Date: date, Rows: make([]newsbrowse.ResultRow, 0, len(records))}
	for _, rec := range records {
		text, ok := texts[rec.URL]
		if !ok && policy == DropFailed {
			continue
		}
		table.Rows = append(table.Rows, newsbrowse.ResultRow{ArticleRecord: rec, Text: text})
	}
	return table
}
