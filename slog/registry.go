package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/newsbrowse"
)

// Ensure LoggingRegistry implements newsbrowse.ListingParserRegistry.
var _ newsbrowse.ListingParserRegistry = (*LoggingRegistry)(nil)

// LoggingRegistry wraps a ListingParserRegistry so every parser it returns
// logs its results.
type LoggingRegistry struct {
	next   newsbrowse.ListingParserRegistry
	logger *slog.Logger
}

// NewLoggingRegistry creates a new LoggingRegistry.
func NewLoggingRegistry(next newsbrowse.ListingParserRegistry, logger *slog.Logger) *LoggingRegistry {
	return &LoggingRegistry{next: next, logger: logger}
}

// Get returns the wrapped registry's parser for kind with logging attached.
// Returns nil if the wrapped registry has no parser for kind.
func (r *LoggingRegistry) Get(kind newsbrowse.SourceKind) newsbrowse.ListingParser {
	p := r.next.Get(kind)
	if p == nil {
		return nil
	}
	return &loggingParser{next: p, kind: kind, logger: r.logger}
}

type loggingParser struct {
	next   newsbrowse.ListingParser
	kind   newsbrowse.SourceKind
	logger *slog.Logger
}

func (p *loggingParser) MaxPage(html string) (n int, err error) {
	defer func(begin time.Time) {
		p.logger.Debug("max page",
			"kind", p.kind,
			"pages", n,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.MaxPage(html)
}

func (p *loggingParser) Articles(html string) (articles []newsbrowse.ArticleMeta, err error) {
	defer func(begin time.Time) {
		p.logger.Debug("listing articles",
			"kind", p.kind,
			"articles", len(articles),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Articles(html)
}
