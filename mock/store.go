package mock

import (
	"context"

	"github.com/fwojciec/newsbrowse"
)

var _ newsbrowse.ResultStore = (*ResultStore)(nil)

// ResultStore is a mock implementation of newsbrowse.ResultStore.
type ResultStore struct {
	SaveFn func(ctx context.Context, table *newsbrowse.ResultTable) error
}

func (s *ResultStore) Save(ctx context.Context, table *newsbrowse.ResultTable) error {
	return s.SaveFn(ctx, table)
}
