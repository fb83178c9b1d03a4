package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/newsbrowse"
)

// Ensure LoggingResultStore implements newsbrowse.ResultStore.
var _ newsbrowse.ResultStore = (*LoggingResultStore)(nil)

// LoggingResultStore wraps a ResultStore with logging.
type LoggingResultStore struct {
	next   newsbrowse.ResultStore
	name   string
	logger *slog.Logger
}

// NewLoggingResultStore creates a new LoggingResultStore. The name
// identifies the destination in log records.
func NewLoggingResultStore(next newsbrowse.ResultStore, name string, logger *slog.Logger) *LoggingResultStore {
	return &LoggingResultStore{next: next, name: name, logger: logger}
}

// Save delegates to the wrapped store and logs the operation.
func (s *LoggingResultStore) Save(ctx context.Context, table *newsbrowse.ResultTable) (err error) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		if err != nil {
			level = slog.LevelError
		}
		s.logger.Log(ctx, level, "save",
			"store", s.name,
			"key", table.Key(),
			"rows", len(table.Rows),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Save(ctx, table)
}
