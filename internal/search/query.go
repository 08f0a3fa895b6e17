package search

import (
	"fmt"
	"strings"

	"github.com/llehouerou/albumq/internal/library"
	"github.com/llehouerou/albumq/internal/tsvsearch"
)

// SourceType selects the export format to search.
type SourceType int

const (
	SourceDB SourceType = iota
	SourceTSV
)

func (t SourceType) String() string {
	switch t {
	case SourceDB:
		return "db"
	case SourceTSV:
		return "tsv"
	default:
		return fmt.Sprintf("SourceType(%d)", int(t))
	}
}

// ParseSourceType parses "db" or "tsv", case-insensitively.
func ParseSourceType(s string) (SourceType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "db":
		return SourceDB, nil
	case "tsv":
		return SourceTSV, nil
	}
	return SourceDB, fmt.Errorf("unknown file type %q (want db or tsv)", s)
}

// Query describes one search request. It is passed by value and never
// modified by Search.
type Query struct {
	Term                string
	Type                SourceType
	File                string
	IncludeHeader       bool
	IncludePlaylistName bool
	Sort                library.SortField
	Verbose             bool
}

// String renders the query for diagnostics.
func (q Query) String() string {
	return fmt.Sprintf(
		"{term: %q, type: %s, file: %q, include_header: %t, include_playlist_name: %t, sort: %s, verbose: %t}",
		q.Term, q.Type, q.File, q.IncludeHeader, q.IncludePlaylistName, q.Sort, q.Verbose,
	)
}

// Results is the outcome of a search along with the request settings the
// renderer needs.
type Results struct {
	Term                string
	IncludeHeader       bool
	IncludePlaylistName bool
	Sort                library.SortField
	Albums              []library.Album     // never nil
	Warnings            []tsvsearch.Warning // rows skipped by the TSV backend
}
