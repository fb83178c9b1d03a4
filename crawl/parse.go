package crawl

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/newsbrowse"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"
)

// DefaultWorkers is the size of the extraction worker pool when
// Parser.Workers is not set.
const DefaultWorkers = 8

// Parser fetches sampled articles and extracts their body text.
type Parser struct {
	Fetcher     newsbrowse.Fetcher
	Extractor   newsbrowse.Extractor
	RateLimiter newsbrowse.DomainLimiter
	Workers     int
	RetryDelays []time.Duration

	// Converter, if set, renders the extracted content HTML as Markdown
	// instead of using the extractor's plain text.
	Converter newsbrowse.Converter
}

// ParseResult holds the outcome of extracting one article.
type ParseResult struct {
	newsbrowse.ArticleText

	// Err is a *newsbrowse.ExtractionError when extraction failed.
	Err error
}

// ParseAll extracts the text of every record's article using a bounded
// worker pool. Results are aligned with records. A failing article is
// reported in its result and never aborts the others; ParseAll itself only
// fails when ctx is canceled.
func (p *Parser) ParseAll(ctx context.Context, records []newsbrowse.ArticleRecord, progress ProgressFunc) ([]ParseResult, error) {
	workers := p.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	type indexed struct {
		position int
		result   ParseResult
	}
	resultCh := make(chan indexed, len(records))
	total := len(records)

	notify(progress, ProgressEvent{Stage: StageParse, Type: ProgressStarted, Total: total})

	var g errgroup.Group
	g.SetLimit(workers)

	go func() {
		for i, rec := range records {
			g.Go(func() error {
				resultCh <- indexed{position: i, result: p.parse(ctx, rec.URL)}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]ParseResult, len(records))
	completed := 0
	for r := range resultCh {
		completed++
		results[r.position] = r.result

		event := ProgressEvent{
			Stage:     StageParse,
			Type:      ProgressCompleted,
			Completed: completed,
			Total:     total,
			Source:    records[r.position].Domain,
			URL:       r.result.URL,
		}
		if r.result.Err != nil {
			event.Type = ProgressFailed
			event.Error = r.result.Err
		}
		notify(progress, event)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	notify(progress, ProgressEvent{Stage: StageParse, Type: ProgressFinished, Completed: total, Total: total})

	return results, nil
}

// parse fetches and extracts a single article.
func (p *Parser) parse(ctx context.Context, articleURL string) ParseResult {
	result := ParseResult{ArticleText: newsbrowse.ArticleText{URL: articleURL}}

	html, err := fetchPage(ctx, p.Fetcher, p.RateLimiter, p.RetryDelays, articleURL)
	if err != nil {
		result.Err = &newsbrowse.ExtractionError{URL: articleURL, Err: err}
		return result
	}

	text, err := ExtractText(p.Extractor, p.Converter, articleURL, html)
	if err != nil {
		result.Err = err
		return result
	}
	result.ArticleText = text
	return result
}

// ExtractText strips boilerplate from the raw HTML of the article at url.
// If converter is non-nil the body is rendered as Markdown. An empty
// document, an extractor failure or an empty body is returned as
// *newsbrowse.ExtractionError.
func ExtractText(extractor newsbrowse.Extractor, converter newsbrowse.Converter, url, html string) (newsbrowse.ArticleText, error) {
	fail := func(err error) (newsbrowse.ArticleText, error) {
		return newsbrowse.ArticleText{URL: url}, &newsbrowse.ExtractionError{URL: url, Err: err}
	}

	if strings.TrimSpace(html) == "" {
		return fail(newsbrowse.Errorf(newsbrowse.EINVALID, "empty document"))
	}

	extracted, err := extractor.Extract(html)
	if err != nil {
		return fail(err)
	}

	text := extracted.Text
	if converter != nil {
		md, err := converter.Convert(extracted.ContentHTML)
		if err != nil {
			return fail(err)
		}
		text = md
	}

	// Some publishers emit decomposed Hangul jamo.
	text = norm.NFC.String(strings.TrimSpace(text))
	if text == "" {
		return fail(newsbrowse.Errorf(newsbrowse.EINVALID, "empty article body"))
	}
	return newsbrowse.ArticleText{URL: url, Text: text}, nil
}
