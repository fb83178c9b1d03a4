package goquery

import "github.com/fwojciec/newsbrowse"

var _ newsbrowse.ListingParserRegistry = (*Registry)(nil)

// Registry maps listing kinds to their parsers.
type Registry struct {
	parsers map[newsbrowse.SourceKind]newsbrowse.ListingParser
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		parsers: make(map[newsbrowse.SourceKind]newsbrowse.ListingParser),
	}
}

// NewDefaultRegistry returns a Registry with the browse and search
// parsers registered.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(newsbrowse.SourceKindID, NewIDListingParser())
	r.Register(newsbrowse.SourceKindKeyword, NewKeywordListingParser())
	return r
}

// Get returns the parser for kind.
// Returns nil if no parser is registered for the kind.
func (r *Registry) Get(kind newsbrowse.SourceKind) newsbrowse.ListingParser {
	return r.parsers[kind]
}

// Register adds a parser for kind.
// If a parser is already registered for the kind, it is replaced.
func (r *Registry) Register(kind newsbrowse.SourceKind, parser newsbrowse.ListingParser) {
	r.parsers[kind] = parser
}
