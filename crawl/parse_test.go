package crawl_test

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/newsbrowse"
	"github.com/fwojciec/newsbrowse/crawl"
	"github.com/fwojciec/newsbrowse/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bodyExtractor returns the page body as both text and content HTML.
func bodyExtractor() *mock.Extractor {
	return &mock.Extractor{
		ExtractFn: func(html string) (*newsbrowse.ExtractResult, error) {
			return &newsbrowse.ExtractResult{Text: "text of " + html, ContentHTML: "<p>" + html + "</p>"}, nil
		},
	}
}

func TestExtractText(t *testing.T) {
	t.Parallel()

	t.Run("returns trimmed plain text", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.Extractor{
			ExtractFn: func(string) (*newsbrowse.ExtractResult, error) {
				return &newsbrowse.ExtractResult{Text: "\n  기사 본문  \n"}, nil
			},
		}

		got, err := crawl.ExtractText(extractor, nil, "https://news.example/1", "<html>...</html>")

		require.NoError(t, err)
		assert.Equal(t, newsbrowse.ArticleText{URL: "https://news.example/1", Text: "기사 본문"}, got)
	})

	t.Run("converts content HTML when a converter is given", func(t *testing.T) {
		t.Parallel()

		converter := &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				return "# " + strings.TrimSuffix(strings.TrimPrefix(html, "<p>"), "</p>"), nil
			},
		}

		got, err := crawl.ExtractText(bodyExtractor(), converter, "https://news.example/1", "body")

		require.NoError(t, err)
		assert.Equal(t, "# body", got.Text)
	})

	t.Run("composes decomposed hangul", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.Extractor{
			ExtractFn: func(string) (*newsbrowse.ExtractResult, error) {
				return &newsbrowse.ExtractResult{Text: "\u1112\u1161\u11ab\u1100\u116e\u11a8"}, nil
			},
		}

		got, err := crawl.ExtractText(extractor, nil, "https://news.example/1", "<html></html>")

		require.NoError(t, err)
		assert.Equal(t, "한국", got.Text)
	})

	t.Run("fails on an empty document", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.Extractor{
			ExtractFn: func(string) (*newsbrowse.ExtractResult, error) {
				t.Fatal("extractor must not be called")
				return nil, nil
			},
		}

		_, err := crawl.ExtractText(extractor, nil, "https://news.example/1", "  \n")

		var ee *newsbrowse.ExtractionError
		require.ErrorAs(t, err, &ee)
		assert.Equal(t, "https://news.example/1", ee.URL)
		assert.Equal(t, newsbrowse.EINVALID, newsbrowse.ErrorCode(err))
	})

	t.Run("fails on an extractor error", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("no content found")
		extractor := &mock.Extractor{
			ExtractFn: func(string) (*newsbrowse.ExtractResult, error) { return nil, boom },
		}

		_, err := crawl.ExtractText(extractor, nil, "https://news.example/1", "<html></html>")

		var ee *newsbrowse.ExtractionError
		require.ErrorAs(t, err, &ee)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("fails on an empty body", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.Extractor{
			ExtractFn: func(string) (*newsbrowse.ExtractResult, error) {
				return &newsbrowse.ExtractResult{Text: "   "}, nil
			},
		}

		_, err := crawl.ExtractText(extractor, nil, "https://news.example/1", "<html></html>")

		var ee *newsbrowse.ExtractionError
		require.ErrorAs(t, err, &ee)
	})
}

func TestParser_ParseAll(t *testing.T) {
	t.Parallel()

	t.Run("isolates a malformed article from the rest", func(t *testing.T) {
		t.Parallel()

		in := records(5)
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, u string) (string, error) {
				if u == in[2].URL {
					return "", nil
				}
				return u, nil
			},
		}
		p := &crawl.Parser{
			Fetcher:     fetcher,
			Extractor:   bodyExtractor(),
			Workers:     3,
			RetryDelays: []time.Duration{},
		}

		got, err := p.ParseAll(context.Background(), in, nil)

		require.NoError(t, err)
		require.Len(t, got, 5)
		for i, r := range got {
			assert.Equal(t, in[i].URL, r.URL)
			if i == 2 {
				var ee *newsbrowse.ExtractionError
				require.ErrorAs(t, r.Err, &ee)
				assert.Equal(t, in[2].URL, ee.URL)
				assert.Empty(t, r.Text)
				continue
			}
			require.NoError(t, r.Err)
			assert.Equal(t, "text of "+in[i].URL, r.Text)
		}
	})

	t.Run("reports fetch failures per article", func(t *testing.T) {
		t.Parallel()

		in := records(3)
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, u string) (string, error) {
				if u == in[0].URL {
					return "", errors.New("timeout")
				}
				return u, nil
			},
		}
		p := &crawl.Parser{Fetcher: fetcher, Extractor: bodyExtractor(), RetryDelays: []time.Duration{}}

		got, err := p.ParseAll(context.Background(), in, nil)

		require.NoError(t, err)
		var ee *newsbrowse.ExtractionError
		require.ErrorAs(t, got[0].Err, &ee)
		assert.NoError(t, got[1].Err)
		assert.NoError(t, got[2].Err)
	})

	t.Run("bounds the number of concurrent workers", func(t *testing.T) {
		t.Parallel()

		var active, peak atomic.Int64
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, u string) (string, error) {
				n := active.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				active.Add(-1)
				return u, nil
			},
		}
		p := &crawl.Parser{Fetcher: fetcher, Extractor: bodyExtractor(), Workers: 2, RetryDelays: []time.Duration{}}

		got, err := p.ParseAll(context.Background(), records(10), nil)

		require.NoError(t, err)
		assert.Len(t, got, 10)
		assert.LessOrEqual(t, peak.Load(), int64(2))
	})

	t.Run("emits one event per article between start and finish", func(t *testing.T) {
		t.Parallel()

		in := records(4)
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, u string) (string, error) {
				if u == in[1].URL {
					return "", nil
				}
				return u, nil
			},
		}
		p := &crawl.Parser{Fetcher: fetcher, Extractor: bodyExtractor(), RetryDelays: []time.Duration{}}

		var events []crawl.ProgressEvent
		_, err := p.ParseAll(context.Background(), in, func(e crawl.ProgressEvent) {
			events = append(events, e)
		})

		require.NoError(t, err)
		require.Len(t, events, 6)
		assert.Equal(t, crawl.ProgressStarted, events[0].Type)
		assert.Equal(t, crawl.ProgressFinished, events[5].Type)

		var failed, completed int
		for i, e := range events[1:5] {
			assert.Equal(t, crawl.StageParse, e.Stage)
			assert.Equal(t, i+1, e.Completed)
			assert.Equal(t, 4, e.Total)
			switch e.Type {
			case crawl.ProgressFailed:
				failed++
				assert.Equal(t, in[1].URL, e.URL)
				assert.Error(t, e.Error)
			case crawl.ProgressCompleted:
				completed++
			}
		}
		assert.Equal(t, 1, failed)
		assert.Equal(t, 3, completed)
	})

	t.Run("returns the context error when cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, _ string) (string, error) {
				return "", ctx.Err()
			},
		}
		p := &crawl.Parser{Fetcher: fetcher, Extractor: bodyExtractor(), RetryDelays: []time.Duration{}}

		_, err := p.ParseAll(ctx, records(3), nil)

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("handles no records", func(t *testing.T) {
		t.Parallel()

		p := &crawl.Parser{Fetcher: echoFetcher(), Extractor: bodyExtractor()}

		got, err := p.ParseAll(context.Background(), nil, nil)

		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
