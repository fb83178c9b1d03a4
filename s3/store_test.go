package s3_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/fwojciec/newsbrowse"
	"github.com/fwojciec/newsbrowse/csv"
	"github.com/fwojciec/newsbrowse/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// putObjectClient records PutObject calls.
type putObjectClient struct {
	PutObjectFn func(ctx context.Context, params *awss3.PutObjectInput) (*awss3.PutObjectOutput, error)
}

func (c *putObjectClient) PutObject(ctx context.Context, params *awss3.PutObjectInput, _ ...func(*awss3.Options)) (*awss3.PutObjectOutput, error) {
	return c.PutObjectFn(ctx, params)
}

func testTable() *newsbrowse.ResultTable {
	return &newsbrowse.ResultTable{
		Date: "20240615",
		Rows: []newsbrowse.ResultRow{{
			ArticleRecord: newsbrowse.ArticleRecord{
				Domain: "economy",
				Date:   "20240615",
				Title:  "기준금리 동결",
				URL:    "https://n.news.naver.com/article/015/0004981234",
				Author: "한국경제",
			},
			Text: "한국은행이 기준금리를 동결했다.",
		}},
	}
}

func TestStore_Save(t *testing.T) {
	t.Parallel()

	t.Run("uploads the table as csv under its date", func(t *testing.T) {
		t.Parallel()

		var got *awss3.PutObjectInput
		var body []byte
		client := &putObjectClient{
			PutObjectFn: func(_ context.Context, params *awss3.PutObjectInput) (*awss3.PutObjectOutput, error) {
				got = params
				var err error
				body, err = io.ReadAll(params.Body)
				require.NoError(t, err)
				return &awss3.PutObjectOutput{}, nil
			},
		}
		store := s3.NewStore(client, "news-bucket")
		table := testTable()

		require.NoError(t, store.Save(context.Background(), table))

		require.NotNil(t, got)
		assert.Equal(t, "news-bucket", aws.ToString(got.Bucket))
		assert.Equal(t, "20240615.csv", aws.ToString(got.Key))
		assert.Equal(t, "text/csv; charset=utf-8", aws.ToString(got.ContentType))
		assert.Equal(t, int64(len(body)), aws.ToInt64(got.ContentLength))
		assert.True(t, bytes.HasPrefix(body, []byte(csv.BOM)))

		rows, err := csv.Decode(bytes.NewReader(body))
		require.NoError(t, err)
		assert.Equal(t, table.Rows, rows)
	})

	t.Run("prepends the key prefix", func(t *testing.T) {
		t.Parallel()

		var key string
		client := &putObjectClient{
			PutObjectFn: func(_ context.Context, params *awss3.PutObjectInput) (*awss3.PutObjectOutput, error) {
				key = aws.ToString(params.Key)
				return &awss3.PutObjectOutput{}, nil
			},
		}
		store := s3.NewStore(client, "news-bucket", s3.WithPrefix("naver/daily"))

		require.NoError(t, store.Save(context.Background(), testTable()))

		assert.Equal(t, "naver/daily/20240615.csv", key)
	})

	t.Run("wraps upload failures as persistence errors", func(t *testing.T) {
		t.Parallel()

		uploadErr := errors.New("access denied")
		client := &putObjectClient{
			PutObjectFn: func(context.Context, *awss3.PutObjectInput) (*awss3.PutObjectOutput, error) {
				return nil, uploadErr
			},
		}
		store := s3.NewStore(client, "news-bucket")

		err := store.Save(context.Background(), testTable())

		var pe *newsbrowse.PersistenceError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "20240615.csv", pe.Key)
		assert.ErrorIs(t, err, uploadErr)
	})

	t.Run("rejects a missing bucket without uploading", func(t *testing.T) {
		t.Parallel()

		client := &putObjectClient{
			PutObjectFn: func(context.Context, *awss3.PutObjectInput) (*awss3.PutObjectOutput, error) {
				t.Fatal("PutObject must not be called")
				return nil, nil
			},
		}

		err := s3.NewStore(client, "").Save(context.Background(), testTable())

		assert.Equal(t, newsbrowse.EINVALID, newsbrowse.ErrorCode(err))
	})

	t.Run("rejects a malformed date without uploading", func(t *testing.T) {
		t.Parallel()

		client := &putObjectClient{
			PutObjectFn: func(context.Context, *awss3.PutObjectInput) (*awss3.PutObjectOutput, error) {
				t.Fatal("PutObject must not be called")
				return nil, nil
			},
		}

		err := s3.NewStore(client, "news-bucket").Save(context.Background(), &newsbrowse.ResultTable{Date: "2024-06-15"})

		var pe *newsbrowse.PersistenceError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, newsbrowse.EINVALID, newsbrowse.ErrorCode(err))
	})
}

func TestNewClient(t *testing.T) {
	t.Parallel()

	t.Run("rejects a partial static credential", func(t *testing.T) {
		t.Parallel()

		_, err := s3.NewClient(context.Background(), s3.ClientConfig{AccessKeyID: "AKIA"})

		assert.Error(t, err)
	})

	t.Run("creates a client for a custom endpoint", func(t *testing.T) {
		t.Parallel()

		client, err := s3.NewClient(context.Background(), s3.ClientConfig{
			AccessKeyID:     "key",
			SecretAccessKey: "secret",
			Endpoint:        "http://localhost:9000",
		})

		require.NoError(t, err)
		assert.Equal(t, "ap-northeast-2", client.Options().Region)
		assert.True(t, client.Options().UsePathStyle)
	})
}
