package newsbrowse

import "strings"

// SourceKind identifies the listing schema a crawl pass reads.
type SourceKind string

// Supported listing kinds.
const (
	// SourceKindID is a category browse listing addressed by section id.
	SourceKindID SourceKind = "id"
	// SourceKindKeyword is a search listing addressed by keywords.
	SourceKindKeyword SourceKind = "keyword"
)

// Source is one configured news origin. A source with both an ID and
// keywords is crawled twice, once per listing kind, and the results are
// concatenated.
type Source struct {
	Name     string   `json:"name" yaml:"name"`
	ID       string   `json:"id" yaml:"id"`
	Keywords []string `json:"keyword" yaml:"keyword"`
}

// Validate returns an error if the source contains invalid fields.
func (s *Source) Validate() error {
	if s.Name == "" {
		return Errorf(EINVALID, "source name required")
	}
	if s.ID == "" && len(s.Keywords) == 0 {
		return Errorf(EINVALID, "source %q requires an id or keywords", s.Name)
	}
	for _, kw := range s.Keywords {
		if strings.TrimSpace(kw) == "" {
			return Errorf(EINVALID, "source %q has an empty keyword", s.Name)
		}
	}
	return nil
}

// Queries returns the crawl passes for the source: the ID pass first,
// then the keyword pass.
func (s *Source) Queries() []ListingQuery {
	var queries []ListingQuery
	if s.ID != "" {
		queries = append(queries, ListingQuery{Kind: SourceKindID, ID: s.ID})
	}
	if len(s.Keywords) > 0 {
		queries = append(queries, ListingQuery{Kind: SourceKindKeyword, Keywords: s.Keywords})
	}
	return queries
}

// ListingQuery is a single crawl pass over one listing kind.
type ListingQuery struct {
	Kind     SourceKind
	ID       string
	Keywords []string
}
