package main

import "time"

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config string `short:"c" default:"config.json" type:"path" help:"Configuration file (YAML or JSON)"`
	Date   string `short:"d" help:"Target date as YYYYMMDD (default: yesterday in KST)"`

	Concurrency int           `default:"4" help:"Concurrent listing page fetches per source"`
	Workers     int           `short:"w" default:"8" help:"Concurrent article extractions"`
	Timeout     time.Duration `short:"t" default:"10s" help:"Fetch timeout per page"`
	RPS         float64       `name:"rps" default:"0" help:"Requests per second per host (0 disables rate limiting)"`
	Render      bool          `help:"Fetch article pages with a headless browser"`

	Format    string `enum:"text,markdown" default:"text" help:"Article body format (text, markdown)"`
	Extractor string `enum:"trafilatura,readability,auto" default:"auto" help:"Article text extractor (trafilatura, readability, auto)"`

	SkipFailedSources  bool `help:"Continue when a source cannot be crawled"`
	DropFailedArticles bool `help:"Omit articles whose text could not be extracted"`

	Out      string `short:"o" type:"path" help:"Directory to write {date}.csv to"`
	DB       string `type:"path" help:"SQLite database to archive results in"`
	NoUpload bool   `help:"Do not upload results to S3"`

	List   bool   `help:"List runs archived in --db instead of crawling; with --date, print that date's latest run as CSV"`
	Import string `type:"existingfile" help:"Archive a {date}.csv file into --db instead of crawling"`

	AWSAccessKeyID     string `name:"aws-access-key-id" env:"AWS_ACCESS_KEY_ID" help:"AWS access key id (overrides config)"`
	AWSSecretAccessKey string `name:"aws-secret-access-key" env:"AWS_SECRET_ACCESS_KEY" help:"AWS secret access key (overrides config)"`
	Bucket             string `env:"NEWSBROWSE_S3_BUCKET" help:"S3 bucket (overrides config)"`
	Region             string `env:"AWS_REGION" help:"AWS region (overrides config)"`
	Endpoint           string `env:"NEWSBROWSE_S3_ENDPOINT" help:"S3-compatible endpoint URL"`

	Verbose bool `short:"v" help:"Log every fetch and extraction"`
}
