// Package fs writes result tables to the local filesystem.
package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fwojciec/newsbrowse"
	"github.com/fwojciec/newsbrowse/csv"
)

// Ensure Store implements newsbrowse.ResultStore at compile time.
var _ newsbrowse.ResultStore = (*Store)(nil)

// Store writes each table as {dir}/{date}.csv. A table is written to a
// temporary file first and renamed into place, so readers never observe a
// partial file. An existing file for the same date is replaced.
type Store struct {
	dir  string
	opts []csv.Option
}

// NewStore creates a new Store writing into dir. The directory is created on
// first save.
func NewStore(dir string, opts ...csv.Option) *Store {
	return &Store{dir: dir, opts: opts}
}

// Path returns the file path the table is written to.
func (s *Store) Path(table *newsbrowse.ResultTable) string {
	return filepath.Join(s.dir, table.Key())
}

// Save writes the table atomically.
func (s *Store) Save(ctx context.Context, table *newsbrowse.ResultTable) error {
	key := table.Key()
	fail := func(err error) error {
		return &newsbrowse.PersistenceError{Key: key, Err: err}
	}

	if err := newsbrowse.ValidateDate(table.Date); err != nil {
		return fail(err)
	}
	if err := ctx.Err(); err != nil {
		return fail(err)
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fail(err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+key+".*.tmp")
	if err != nil {
		return fail(err)
	}
	tmpPath := tmp.Name()

	if err := csv.Encode(tmp, table, s.opts...); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fail(err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fail(err)
	}
	if err := os.Rename(tmpPath, s.Path(table)); err != nil {
		os.Remove(tmpPath)
		return fail(err)
	}
	return nil
}
