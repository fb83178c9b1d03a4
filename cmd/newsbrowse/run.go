package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/fwojciec/newsbrowse"
	"github.com/fwojciec/newsbrowse/crawl"
	"github.com/fwojciec/newsbrowse/csv"
	"github.com/fwojciec/newsbrowse/fs"
	"github.com/fwojciec/newsbrowse/goquery"
	"github.com/fwojciec/newsbrowse/htmltomarkdown"
	nbhttp "github.com/fwojciec/newsbrowse/http"
	"github.com/fwojciec/newsbrowse/readability"
	"github.com/fwojciec/newsbrowse/rod"
	"github.com/fwojciec/newsbrowse/s3"
	nbslog "github.com/fwojciec/newsbrowse/slog"
	"github.com/fwojciec/newsbrowse/sqlite"
	"github.com/fwojciec/newsbrowse/trafilatura"
)

// RunCmd wires the pipeline from flags and configuration and runs it once.
type RunCmd struct {
	CLI    *CLI
	Config *Config
	Date   string
	Logger *slog.Logger
	Stdout io.Writer
	Stderr io.Writer

	// Optional overrides; nil fields are built from flags.
	Fetcher   newsbrowse.Fetcher
	Extractor newsbrowse.Extractor
	S3Client  s3.PutObjectAPI

	closers []func() error
}

// Run executes the pipeline and prints a summary.
func (c *RunCmd) Run(ctx context.Context) error {
	defer c.close()

	listingFetcher, articleFetcher, err := c.fetchers()
	if err != nil {
		return err
	}

	extractor, err := c.extractor()
	if err != nil {
		return err
	}

	stores, err := c.stores(ctx)
	if err != nil {
		return err
	}

	// With no destination the table goes to stdout, so the summary moves to
	// stderr.
	summary := c.Stdout
	if len(stores) == 0 {
		stores = append(stores, &writerStore{w: c.Stdout})
		summary = c.Stderr
	}

	var converter newsbrowse.Converter
	if c.CLI.Format == "markdown" {
		converter = htmltomarkdown.NewConverter()
	}

	limiter := crawl.NewDomainLimiter(c.CLI.RPS)

	policy := crawl.FailFast
	if c.CLI.SkipFailedSources {
		policy = crawl.SkipSource
	}
	inclusion := crawl.KeepFailed
	if c.CLI.DropFailedArticles {
		inclusion = crawl.DropFailed
	}

	pipeline := &crawl.Pipeline{
		Browser: &crawl.Browser{
			Fetcher:     listingFetcher,
			Parsers:     nbslog.NewLoggingRegistry(goquery.NewDefaultRegistry(), c.Logger),
			RateLimiter: limiter,
			Concurrency: c.CLI.Concurrency,
			SampleSize:  c.Config.NumArticles,
			Policy:      policy,
		},
		Parser: &crawl.Parser{
			Fetcher:     articleFetcher,
			Extractor:   extractor,
			Converter:   converter,
			RateLimiter: limiter,
			Workers:     c.CLI.Workers,
		},
		Stores:    stores,
		Inclusion: inclusion,
	}

	sources := c.Config.Sources()
	fmt.Fprintf(c.Stderr, "Browsing %d domains for %s\n", len(sources), c.Date)

	progress := newProgressPrinter(c.Stderr)
	report, err := pipeline.Run(ctx, sources, c.Date, progress.Print)
	progress.Done()

	if report != nil {
		printSummary(summary, report, c.CLI.Verbose)
	}
	return err
}

// fetchers returns the listing and article fetchers. Listings are server
// rendered and always fetched over plain HTTP.
func (c *RunCmd) fetchers() (listing, article newsbrowse.Fetcher, err error) {
	if c.Fetcher != nil {
		f := nbslog.NewLoggingFetcher(c.Fetcher, c.Logger)
		return f, f, nil
	}

	httpFetcher := nbhttp.NewFetcher(nbhttp.WithTimeout(c.CLI.Timeout))
	c.closers = append(c.closers, httpFetcher.Close)
	listing = nbslog.NewLoggingFetcher(httpFetcher, c.Logger)

	if !c.CLI.Render {
		return listing, listing, nil
	}

	rodFetcher, err := rod.NewFetcher(rod.WithFetchTimeout(c.CLI.Timeout))
	if err != nil {
		fmt.Fprintln(c.Stderr, "Hint: Chrome or Chromium must be installed for --render")
		return nil, nil, fmt.Errorf("failed to start browser: %w", err)
	}
	c.closers = append(c.closers, rodFetcher.Close)
	return listing, nbslog.NewLoggingFetcher(rodFetcher, c.Logger), nil
}

func (c *RunCmd) extractor() (newsbrowse.Extractor, error) {
	if c.Extractor != nil {
		return nbslog.NewLoggingExtractor(c.Extractor, "custom", c.Logger), nil
	}

	traf := nbslog.NewLoggingExtractor(trafilatura.NewExtractor(), "trafilatura", c.Logger)
	read := nbslog.NewLoggingExtractor(readability.NewExtractor(), "readability", c.Logger)

	switch c.CLI.Extractor {
	case "trafilatura":
		return traf, nil
	case "readability":
		return read, nil
	case "auto", "":
		return &crawl.FallbackExtractor{Extractors: []newsbrowse.Extractor{traf, read}}, nil
	default:
		return nil, newsbrowse.Errorf(newsbrowse.EINVALID, "unknown extractor %q", c.CLI.Extractor)
	}
}

// stores returns the configured destinations: local file, archive, then
// object storage, so a failed upload still leaves the local copies.
func (c *RunCmd) stores(ctx context.Context) ([]newsbrowse.ResultStore, error) {
	var stores []newsbrowse.ResultStore

	if c.CLI.Out != "" {
		stores = append(stores, nbslog.NewLoggingResultStore(fs.NewStore(c.CLI.Out), "fs", c.Logger))
	}

	if c.CLI.DB != "" {
		db := sqlite.NewDB(c.CLI.DB)
		if err := db.Open(); err != nil {
			return nil, fmt.Errorf("failed to open database at %q: %w", c.CLI.DB, err)
		}
		c.closers = append(c.closers, db.Close)
		stores = append(stores, nbslog.NewLoggingResultStore(sqlite.NewArchiveStore(db), "sqlite", c.Logger))
	}

	if !c.CLI.NoUpload {
		store, err := c.s3Store(ctx)
		if err != nil {
			return nil, err
		}
		stores = append(stores, nbslog.NewLoggingResultStore(store, "s3", c.Logger))
	}

	return stores, nil
}

func (c *RunCmd) s3Store(ctx context.Context) (*s3.Store, error) {
	bucket := firstNonEmpty(c.CLI.Bucket, c.Config.AWSS3Bucket)
	if bucket == "" {
		return nil, newsbrowse.Errorf(newsbrowse.EINVALID, "no S3 bucket configured: set aws_s3_bucket or pass --no-upload")
	}

	client := c.S3Client
	if client == nil {
		var err error
		client, err = s3.NewClient(ctx, s3.ClientConfig{
			Region:          firstNonEmpty(c.CLI.Region, c.Config.AWSRegion),
			AccessKeyID:     firstNonEmpty(c.CLI.AWSAccessKeyID, c.Config.AWSAccessKeyID),
			SecretAccessKey: firstNonEmpty(c.CLI.AWSSecretAccessKey, c.Config.AWSSecretAccessKey),
			Endpoint:        firstNonEmpty(c.CLI.Endpoint, c.Config.AWSEndpoint),
		})
		if err != nil {
			return nil, err
		}
	}

	return s3.NewStore(client, bucket, s3.WithPrefix(c.Config.AWSS3Prefix)), nil
}

func (c *RunCmd) close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			c.Logger.Warn("close", "err", err)
		}
	}
	c.closers = nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// writerStore writes the table as CSV to a writer.
type writerStore struct {
	w io.Writer
}

func (s *writerStore) Save(_ context.Context, table *newsbrowse.ResultTable) error {
	if err := csv.Encode(s.w, table, csv.WithBOM(false)); err != nil {
		return &newsbrowse.PersistenceError{Key: table.Key(), Err: err}
	}
	return nil
}
