package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/newsbrowse"
	"github.com/fwojciec/newsbrowse/csv"
	nbslog "github.com/fwojciec/newsbrowse/slog"
	"github.com/fwojciec/newsbrowse/sqlite"
)

// ArchiveCmd reads from and backfills the SQLite archive instead of
// crawling.
type ArchiveCmd struct {
	CLI    *CLI
	Logger *slog.Logger
	Stdout io.Writer
}

// Run lists archived runs, prints the latest archived table of --date, or
// imports a CSV file.
func (c *ArchiveCmd) Run(ctx context.Context) error {
	if c.CLI.List && c.CLI.Import != "" {
		return newsbrowse.Errorf(newsbrowse.EINVALID, "--list and --import cannot be combined")
	}
	if c.CLI.DB == "" {
		return newsbrowse.Errorf(newsbrowse.EINVALID, "--db is required with --list and --import")
	}

	db := sqlite.NewDB(c.CLI.DB)
	if err := db.Open(); err != nil {
		return fmt.Errorf("failed to open database at %q: %w", c.CLI.DB, err)
	}
	defer db.Close()

	store := sqlite.NewArchiveStore(db)

	switch {
	case c.CLI.Import != "":
		return c.importFile(ctx, store, c.CLI.Import)
	case c.CLI.Date != "":
		return c.printLatest(ctx, store, c.CLI.Date)
	default:
		return c.printRuns(ctx, store)
	}
}

func (c *ArchiveCmd) printRuns(ctx context.Context, store *sqlite.ArchiveStore) error {
	runs, err := store.FindRuns(ctx, "")
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(c.Stdout, "No archived runs")
		return nil
	}
	for _, r := range runs {
		fmt.Fprintf(c.Stdout, "%s  %s  %4d rows  %s\n", r.ID, r.Date, r.RowCount, r.CreatedAt.Format(time.RFC3339))
	}
	return nil
}

// printLatest writes the most recent run archived for date as CSV.
func (c *ArchiveCmd) printLatest(ctx context.Context, store *sqlite.ArchiveStore, date string) error {
	runs, err := store.FindRuns(ctx, date)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		return newsbrowse.Errorf(newsbrowse.ENOTFOUND, "no archived run for %s", date)
	}

	articles, err := store.FindArticles(ctx, sqlite.ArticleFilter{RunID: runs[len(runs)-1].ID})
	if err != nil {
		return err
	}

	table := &newsbrowse.ResultTable{Date: date, Rows: make([]newsbrowse.ResultRow, len(articles))}
	for i, a := range articles {
		table.Rows[i] = a.ResultRow
	}
	return csv.Encode(c.Stdout, table, csv.WithBOM(false))
}

// importFile archives a previously written {date}.csv. The date is taken
// from the file name.
func (c *ArchiveCmd) importFile(ctx context.Context, store *sqlite.ArchiveStore, path string) error {
	date := strings.TrimSuffix(filepath.Base(path), ".csv")
	if err := newsbrowse.ValidateDate(date); err != nil {
		return newsbrowse.Errorf(newsbrowse.EINVALID, "cannot infer the date of %q: name it YYYYMMDD.csv", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := csv.Decode(f)
	if err != nil {
		return err
	}

	table := &newsbrowse.ResultTable{Date: date, Rows: rows}
	if err := nbslog.NewLoggingResultStore(store, "sqlite", c.Logger).Save(ctx, table); err != nil {
		return err
	}

	fmt.Fprintf(c.Stdout, "Archived %d rows for %s\n", len(rows), date)
	return nil
}
