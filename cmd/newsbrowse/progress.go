package main

import (
	"fmt"
	"io"
	"sort"
	"unicode/utf8"

	"github.com/fwojciec/newsbrowse/crawl"
	"github.com/mattn/go-runewidth"
)

// progressPrinter renders pipeline progress on a terminal line.
type progressPrinter struct {
	w       io.Writer
	pending bool
}

func newProgressPrinter(w io.Writer) *progressPrinter {
	return &progressPrinter{w: w}
}

// Print handles one progress event. Events arrive from a single goroutine.
func (p *progressPrinter) Print(e crawl.ProgressEvent) {
	switch e.Type {
	case crawl.ProgressStarted:
		return
	case crawl.ProgressFinished:
		p.Done()
		return
	case crawl.ProgressFailed:
		p.clear()
		target := e.Source
		if e.Stage == crawl.StageParse {
			target = e.URL
		}
		fmt.Fprintf(p.w, "skip %s: %v\n", target, e.Error)
	}

	label := e.Source
	if e.Stage == crawl.StageParse {
		label = crawl.TruncateURL(e.URL, 40)
	}
	fmt.Fprintf(p.w, "\r[%s %d/%d] %s", e.Stage, e.Completed, e.Total, runewidth.FillRight(label, 40))
	p.pending = true
}

// Done ends the current progress line.
func (p *progressPrinter) Done() {
	if p.pending {
		fmt.Fprintln(p.w)
		p.pending = false
	}
}

func (p *progressPrinter) clear() {
	if p.pending {
		fmt.Fprintf(p.w, "\r%60s\r", "")
		p.pending = false
	}
}

// printSummary prints per-domain row counts and run totals. Verbose
// summaries list every row.
func printSummary(w io.Writer, report *crawl.Report, verbose bool) {
	counts := make(map[string]int)
	var domains []string
	for _, row := range report.Table.Rows {
		if counts[row.Domain] == 0 {
			domains = append(domains, row.Domain)
		}
		counts[row.Domain]++
	}
	sort.Strings(domains)

	width := len("domain")
	for _, d := range domains {
		width = max(width, runewidth.StringWidth(d))
	}
	for _, d := range domains {
		fmt.Fprintf(w, "%s  %d\n", runewidth.FillRight(d, width), counts[d])
	}

	for _, sce := range report.Skipped {
		fmt.Fprintf(w, "%s  skipped: %v\n", runewidth.FillRight(sce.Source, width), sce.Err)
	}

	if verbose {
		for _, row := range report.Table.Rows {
			fmt.Fprintf(w, "%s  %s  %d chars\n",
				runewidth.FillRight(row.Domain, width),
				runewidth.FillRight(crawl.TruncateTitle(row.Title, 50), 50),
				utf8.RuneCountInString(row.Text))
		}
	}

	fmt.Fprintf(w, "Collected %d articles for %s (%d discovered, %d sampled, %d extracted, %d failed, %s)\n",
		len(report.Table.Rows), report.Table.Date,
		report.Discovered, report.Sampled, report.Extracted, report.Failed,
		crawl.FormatBytes(report.Bytes))
}
