// Package crawl provides news listing crawling and article text extraction.
// It coordinates pagination discovery, listing page fetching, per-source
// sampling, parallel article extraction and aggregation of the results.
package crawl

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/url"
	"time"

	"github.com/fwojciec/newsbrowse"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of listing pages fetched at once when
// Browser.Concurrency is not set.
const DefaultConcurrency = 4

// SourcePolicy decides what happens to a run when one source fails.
type SourcePolicy int

const (
	// FailFast aborts the run with the first failing source's error.
	FailFast SourcePolicy = iota
	// SkipSource drops the failing source and continues with the rest.
	SkipSource
)

// ProgressEvent reports progress during a browse or parse stage.
type ProgressEvent struct {
	Stage     Stage
	Type      ProgressType
	Completed int
	Total     int
	Source    string
	URL       string
	Error     error
}

// Stage names the pipeline stage an event belongs to.
type Stage string

const (
	StageBrowse Stage = "browse"
	StageParse  Stage = "parse"
)

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting progress.
type ProgressFunc func(event ProgressEvent)

// Browser discovers and samples article records of the configured sources.
type Browser struct {
	Fetcher     newsbrowse.Fetcher
	Parsers     newsbrowse.ListingParserRegistry
	RateLimiter newsbrowse.DomainLimiter
	Concurrency int
	RetryDelays []time.Duration

	// SampleSize caps the records kept per source. Zero keeps none and a
	// negative size keeps every record.
	SampleSize int

	// Policy applies when a source fails. Defaults to FailFast.
	Policy SourcePolicy

	// Rand drives sampling. Defaults to the global source.
	Rand *rand.Rand
}

// BrowseResult holds the outcome of the browse stage.
type BrowseResult struct {
	// Records is the concatenation of every source's sample in
	// declaration order.
	Records []newsbrowse.ArticleRecord

	// Discovered counts records found before sampling.
	Discovered int

	// Failed holds the sources skipped under SkipSource.
	Failed []*newsbrowse.SourceCrawlError
}

// Browse crawls every source for date and samples each independently.
func (b *Browser) Browse(ctx context.Context, sources []newsbrowse.Source, date string, progress ProgressFunc) (*BrowseResult, error) {
	if err := newsbrowse.ValidateDate(date); err != nil {
		return nil, err
	}

	total := len(sources)
	notify(progress, ProgressEvent{Stage: StageBrowse, Type: ProgressStarted, Total: total})

	result := &BrowseResult{}
	for i := range sources {
		src := &sources[i]

		records, err := b.CrawlSource(ctx, src, date)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			var sce *newsbrowse.SourceCrawlError
			if !errors.As(err, &sce) {
				sce = &newsbrowse.SourceCrawlError{Source: src.Name, Err: err}
			}
			notify(progress, ProgressEvent{
				Stage:     StageBrowse,
				Type:      ProgressFailed,
				Completed: i + 1,
				Total:     total,
				Source:    src.Name,
				Error:     sce,
			})
			if b.Policy != SkipSource {
				return nil, sce
			}
			result.Failed = append(result.Failed, sce)
			continue
		}

		result.Discovered += len(records)
		result.Records = append(result.Records, Sample(records, b.SampleSize, b.Rand)...)

		notify(progress, ProgressEvent{
			Stage:     StageBrowse,
			Type:      ProgressCompleted,
			Completed: i + 1,
			Total:     total,
			Source:    src.Name,
		})
	}

	notify(progress, ProgressEvent{Stage: StageBrowse, Type: ProgressFinished, Completed: total, Total: total})

	return result, nil
}

// CrawlSource returns every record listed for src on date: the ID listing
// pass first, then the keyword pass. Failures are returned as
// *newsbrowse.SourceCrawlError.
func (b *Browser) CrawlSource(ctx context.Context, src *newsbrowse.Source, date string) ([]newsbrowse.ArticleRecord, error) {
	if err := src.Validate(); err != nil {
		return nil, &newsbrowse.SourceCrawlError{Source: src.Name, Err: err}
	}

	var records []newsbrowse.ArticleRecord
	for _, q := range src.Queries() {
		metas, err := b.crawlQuery(ctx, src.Name, q, date)
		if err != nil {
			return nil, &newsbrowse.SourceCrawlError{Source: src.Name, Err: err}
		}
		for _, m := range metas {
			records = append(records, newsbrowse.ArticleRecord{
				Domain: src.Name,
				Date:   date,
				Title:  m.Title,
				URL:    m.URL,
				Author: m.Author,
			})
		}
	}
	return records, nil
}

// pageResult holds the outcome of one listing page.
type pageResult struct {
	articles []newsbrowse.ArticleMeta
	err      error
}

// crawlQuery fetches pages 1..max of one listing pass. Pages run
// concurrently and a failing page does not cancel its siblings; any failure
// fails the pass once all pages are done.
func (b *Browser) crawlQuery(ctx context.Context, source string, q newsbrowse.ListingQuery, date string) ([]newsbrowse.ArticleMeta, error) {
	parser, err := b.parser(q.Kind)
	if err != nil {
		return nil, err
	}

	maxPage, err := b.MaxPage(ctx, source, q, date)
	if err != nil {
		return nil, err
	}

	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]pageResult, maxPage)

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i := range results {
		g.Go(func() error {
			results[i] = b.processPage(ctx, parser, newsbrowse.ListingURL(q, date, i+1))
			return nil
		})
	}
	_ = g.Wait()

	var (
		articles []newsbrowse.ArticleMeta
		errs     []error
	)
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		articles = append(articles, r.articles...)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return articles, nil
}

// processPage fetches one listing page and extracts its entries.
func (b *Browser) processPage(ctx context.Context, parser newsbrowse.ListingParser, pageURL string) pageResult {
	html, err := fetchPage(ctx, b.Fetcher, b.RateLimiter, b.RetryDelays, pageURL)
	if err != nil {
		return pageResult{err: &newsbrowse.ExtractionError{URL: pageURL, Err: err}}
	}

	articles, err := parser.Articles(html)
	if err != nil {
		return pageResult{err: &newsbrowse.ExtractionError{URL: pageURL, Err: err}}
	}
	return pageResult{articles: articles}
}

func (b *Browser) parser(kind newsbrowse.SourceKind) (newsbrowse.ListingParser, error) {
	if b.Parsers == nil {
		return nil, newsbrowse.Errorf(newsbrowse.EINTERNAL, "no listing parsers configured")
	}
	p := b.Parsers.Get(kind)
	if p == nil {
		return nil, newsbrowse.Errorf(newsbrowse.EINVALID, "no listing parser for kind %q", kind)
	}
	return p, nil
}

// fetchPage waits for the host's rate limit, then fetches with retry.
func fetchPage(ctx context.Context, fetcher newsbrowse.Fetcher, limiter newsbrowse.DomainLimiter, delays []time.Duration, rawURL string) (string, error) {
	if limiter != nil {
		u, err := url.Parse(rawURL)
		if err != nil {
			return "", newsbrowse.Errorf(newsbrowse.EINVALID, "invalid URL %q: %v", rawURL, err)
		}
		if err := limiter.Wait(ctx, u.Host); err != nil {
			return "", err
		}
	}

	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return FetchWithRetryDelays(ctx, rawURL, fetcher.Fetch, nil, delays)
}

func notify(progress ProgressFunc, event ProgressEvent) {
	if progress != nil {
		progress(event)
	}
}
