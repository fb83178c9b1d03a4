// Package s3 uploads result tables to Amazon S3 or a compatible object store.
package s3

import (
	"bytes"
	"context"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/fwojciec/newsbrowse"
	"github.com/fwojciec/newsbrowse/csv"
)

// Ensure Store implements newsbrowse.ResultStore at compile time.
var _ newsbrowse.ResultStore = (*Store)(nil)

// PutObjectAPI is the subset of the S3 client used by Store.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Store uploads each table as a CSV object named {prefix}{date}.csv.
type Store struct {
	client PutObjectAPI
	bucket string
	prefix string
	opts   []csv.Option
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix sets a key prefix, e.g. "naver/".
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithCSVOptions sets the encoding options of uploaded tables.
func WithCSVOptions(opts ...csv.Option) Option {
	return func(s *Store) {
		s.opts = opts
	}
}

// NewStore creates a new Store uploading to bucket.
func NewStore(client PutObjectAPI, bucket string, opts ...Option) *Store {
	s := &Store{client: client, bucket: bucket}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the object key the table is uploaded under.
func (s *Store) Key(table *newsbrowse.ResultTable) string {
	if s.prefix == "" {
		return table.Key()
	}
	return path.Join(s.prefix, table.Key())
}

// Save uploads the table. An existing object with the same key is
// overwritten.
func (s *Store) Save(ctx context.Context, table *newsbrowse.ResultTable) error {
	key := s.Key(table)
	fail := func(err error) error {
		return &newsbrowse.PersistenceError{Key: key, Err: err}
	}

	if s.bucket == "" {
		return fail(newsbrowse.Errorf(newsbrowse.EINVALID, "bucket required"))
	}
	if err := newsbrowse.ValidateDate(table.Date); err != nil {
		return fail(err)
	}

	body, err := csv.Marshal(table, s.opts...)
	if err != nil {
		return fail(err)
	}

	if _, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String(csv.ContentType),
	}); err != nil {
		return fail(err)
	}
	return nil
}
