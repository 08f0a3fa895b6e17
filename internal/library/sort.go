package library

import (
	"fmt"
	"slices"
	"strings"
)

// SortField selects the ordering applied to search results.
type SortField int

const (
	SortAdded SortField = iota
	SortAlbum
	SortArtists
	SortYear
)

var sortFieldNames = [...]string{
	SortAdded:   "added",
	SortAlbum:   "album",
	SortArtists: "artists",
	SortYear:    "year",
}

func (f SortField) String() string {
	if f < 0 || int(f) >= len(sortFieldNames) {
		return fmt.Sprintf("SortField(%d)", int(f))
	}
	return sortFieldNames[f]
}

// SortFieldNames lists the accepted sort field names.
func SortFieldNames() []string {
	return sortFieldNames[:]
}

// ParseSortField parses a sort field name, case-insensitively.
func ParseSortField(s string) (SortField, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range sortFieldNames {
		if n == name {
			return SortField(i), nil
		}
	}
	return SortAdded, fmt.Errorf("unknown sort field %q (want one of %s)",
		s, strings.Join(sortFieldNames[:], ", "))
}

// Sort orders albums in place by the given field, ascending.
// Albums with equal keys keep their relative order.
func Sort(albums []Album, field SortField) {
	slices.SortStableFunc(albums, compareBy(field))
}

func compareBy(field SortField) func(a, b Album) int {
	switch field {
	case SortAlbum:
		return func(a, b Album) int {
			return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		}
	case SortArtists:
		return func(a, b Album) int {
			return strings.Compare(strings.ToLower(a.Artists), strings.ToLower(b.Artists))
		}
	case SortYear:
		return func(a, b Album) int {
			return a.Year - b.Year
		}
	default:
		return func(a, b Album) int {
			return a.AddedAt.Compare(b.AddedAt)
		}
	}
}
