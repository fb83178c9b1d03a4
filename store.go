package newsbrowse

import "context"

// ResultStore persists a finished result table.
type ResultStore interface {
	// Save writes the table under its key. Failures are reported as
	// *PersistenceError.
	Save(ctx context.Context, table *ResultTable) error
}
