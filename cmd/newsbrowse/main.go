package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/newsbrowse"
	"github.com/fwojciec/newsbrowse/s3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", errorText(err))
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Now returns the current time. Used to compute the default target date.
	Now func() time.Time

	// Collaborators for end-to-end testing. Nil fields are built from flags.
	Fetcher   newsbrowse.Fetcher
	Extractor newsbrowse.Extractor
	S3Client  s3.PutObjectAPI
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Now: time.Now}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("newsbrowse"),
		kong.Description("Sample yesterday's news articles per configured domain and extract their text"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if cli.List || cli.Import != "" {
		if cli.Date != "" {
			if err := newsbrowse.ValidateDate(cli.Date); err != nil {
				return err
			}
		}
		cmd := &ArchiveCmd{CLI: cli, Logger: logger, Stdout: stdout}
		return cmd.Run(ctx)
	}

	cfg, err := LoadConfig(cli.Config)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: use --config to point at the configuration file")
		return err
	}

	date := cli.Date
	if date == "" {
		date = newsbrowse.TargetDate(m.Now())
	}
	if err := newsbrowse.ValidateDate(date); err != nil {
		return err
	}

	cmd := &RunCmd{
		CLI:    cli,
		Config: cfg,
		Date:   date,
		Logger: logger,
		Stdout: stdout,
		Stderr: stderr,

		Fetcher:   m.Fetcher,
		Extractor: m.Extractor,
		S3Client:  m.S3Client,
	}
	return cmd.Run(ctx)
}

// errorText returns the bare message of application errors and the full
// chain of wrapped ones.
func errorText(err error) string {
	if e, ok := err.(*newsbrowse.Error); ok {
		return e.Message
	}
	return err.Error()
}
