package crawl

import (
	"context"
	"errors"

	"github.com/fwojciec/newsbrowse"
)

// Pipeline runs the browse and parse stages and persists the result table.
type Pipeline struct {
	Browser   *Browser
	Parser    *Parser
	Stores    []newsbrowse.ResultStore
	Inclusion InclusionPolicy
}

// Report summarizes a pipeline run.
type Report struct {
	Table *newsbrowse.ResultTable

	// Skipped holds the sources dropped under SkipSource.
	Skipped []*newsbrowse.SourceCrawlError

	Discovered int
	Sampled    int
	Extracted  int
	Failed     int
	Bytes      int
}

// Run crawls sources for date, extracts the sampled articles and saves the
// table to every store in order. A store failure aborts the run.
func (p *Pipeline) Run(ctx context.Context, sources []newsbrowse.Source, date string, progress ProgressFunc) (*Report, error) {
	browsed, err := p.Browser.Browse(ctx, sources, date, progress)
	if err != nil {
		return nil, err
	}

	results, err := p.Parser.ParseAll(ctx, browsed.Records, progress)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Table:      Aggregate(date, browsed.Records, results, p.Inclusion),
		Skipped:    browsed.Failed,
		Discovered: browsed.Discovered,
		Sampled:    len(browsed.Records),
	}
	for _, r := range results {
		if r.Err != nil {
			report.Failed++
			continue
		}
		report.Extracted++
		report.Bytes += len(r.Text)
	}

	for _, store := range p.Stores {
		if err := store.Save(ctx, report.Table); err != nil {
			var pe *newsbrowse.PersistenceError
			if !errors.As(err, &pe) {
				err = &newsbrowse.PersistenceError{Key: report.Table.Key(), Err: err}
			}
			return report, err
		}
	}

	return report, nil
}
