package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/newsbrowse"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ newsbrowse.ResultStore = (*ArchiveStore)(nil)

// Run is one archived result table.
type Run struct {
	ID        string
	Date      string
	RowCount  int
	CreatedAt time.Time
}

// Article is one archived result row.
type Article struct {
	ID       string
	RunID    string
	Position int
	newsbrowse.ResultRow

	// TextHash is the xxHash of Text, for spotting repeated articles across
	// runs without comparing bodies.
	TextHash string
}

// ArticleFilter selects archived articles. Zero fields match everything.
type ArticleFilter struct {
	RunID  string
	Date   string
	Domain string
	URL    string

	Limit  int
	Offset int
}

// ArchiveStore appends every saved result table to the database. Repeated
// saves of the same date are kept as separate runs.
type ArchiveStore struct {
	db  *DB
	now func() time.Time
}

// NewArchiveStore creates a new ArchiveStore.
func NewArchiveStore(db *DB) *ArchiveStore {
	return &ArchiveStore{db: db, now: time.Now}
}

// Save writes the table as a new run in a single transaction.
func (s *ArchiveStore) Save(ctx context.Context, table *newsbrowse.ResultTable) (err error) {
	key := table.Key()
	fail := func(err error) error {
		return &newsbrowse.PersistenceError{Key: key, Err: err}
	}

	if err := newsbrowse.ValidateDate(table.Date); err != nil {
		return fail(err)
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return fail(err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	runID := uuid.New().String()
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, date, row_count, created_at)
		VALUES (?, ?, ?, ?)
	`, runID, table.Date, len(table.Rows), s.now().UTC().Format(time.RFC3339)); err != nil {
		return fail(fmt.Errorf("insert run: %w", err))
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO articles (id, run_id, position, domain, date, title, url, author, text, text_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fail(err)
	}
	defer stmt.Close()

	for i, row := range table.Rows {
		if _, err := stmt.ExecContext(ctx,
			uuid.New().String(), runID, i,
			row.Domain, row.Date, row.Title, row.URL, row.Author, row.Text, hashText(row.Text),
		); err != nil {
			return fail(fmt.Errorf("insert article %d: %w", i, err))
		}
	}

	if err := tx.Commit(); err != nil {
		return fail(err)
	}
	return nil
}

// FindRuns returns the runs archived for date, oldest first. An empty date
// returns every run.
func (s *ArchiveStore) FindRuns(ctx context.Context, date string) ([]*Run, error) {
	var query strings.Builder
	var where filter
	where.eq("date", date)

	query.WriteString(`SELECT id, date, row_count, created_at FROM runs`)
	where.writeTo(&query)
	query.WriteString(` ORDER BY created_at ASC, rowid ASC`)

	rows, err := s.db.QueryContext(ctx, query.String(), where.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var r Run
		var createdAt string
		if err := rows.Scan(&r.ID, &r.Date, &r.RowCount, &createdAt); err != nil {
			return nil, err
		}
		if r.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}
		runs = append(runs, &r)
	}
	return runs, rows.Err()
}

// FindArticles returns archived articles matching f, ordered by run and
// position.
func (s *ArchiveStore) FindArticles(ctx context.Context, f ArticleFilter) ([]*Article, error) {
	var query strings.Builder
	var where filter
	where.eq("a.run_id", f.RunID)
	where.eq("a.date", f.Date)
	where.eq("a.domain", f.Domain)
	where.eq("a.url", f.URL)

	query.WriteString(`
		SELECT a.id, a.run_id, a.position, a.domain, a.date, a.title, a.url, a.author, a.text, a.text_hash
		FROM articles a
		JOIN runs r ON r.id = a.run_id`)
	where.writeTo(&query)
	query.WriteString(" ORDER BY r.created_at ASC, r.rowid ASC, a.position ASC")

	args := where.args
	appendPagination(&query, &args, f.Limit, f.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*Article
	for rows.Next() {
		var a Article
		if err := rows.Scan(&a.ID, &a.RunID, &a.Position,
			&a.Domain, &a.Date, &a.Title, &a.URL, &a.Author, &a.Text, &a.TextHash); err != nil {
			return nil, err
		}
		articles = append(articles, &a)
	}
	return articles, rows.Err()
}
