// Package newsbrowse samples news articles published on a given day and
// extracts their body text. It discovers how many listing pages each
// configured source has, scrapes article metadata from every page, draws a
// bounded random sample per source, and extracts clean text from each
// sampled article in parallel.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, trafilatura/, s3/).
package newsbrowse
