package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/newsbrowse"
)

// Ensure LoggingExtractor implements newsbrowse.Extractor.
var _ newsbrowse.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging.
type LoggingExtractor struct {
	next   newsbrowse.Extractor
	name   string
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor. The name identifies
// the wrapped extractor in log records.
func NewLoggingExtractor(next newsbrowse.Extractor, name string, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, name: name, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) Extract(html string) (result *newsbrowse.ExtractResult, err error) {
	defer func(begin time.Time) {
		var chars int
		if result != nil {
			chars = len([]rune(result.Text))
		}
		e.logger.Debug("extract",
			"extractor", e.name,
			"bytes", len(html),
			"chars", chars,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html)
}
