package library

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	dbutil "github.com/llehouerou/albumq/internal/db"
)

// Album is one library entry matched by a search, independent of the
// export format it was read from.
type Album struct {
	Title    string
	Artists  string
	Year     int       // 0 when unknown
	AddedAt  time.Time // zero when unknown
	Playlist string    // empty when the album is not in a playlist
}

// Row holds the raw columns of an album row read from the database export.
type Row struct {
	Title    sql.NullString
	Artists  sql.NullString
	Year     sql.NullString
	AddedAt  sql.NullString
	Playlist sql.NullString
}

// AlbumFromRow builds an Album from a database row.
func AlbumFromRow(r Row) (Album, error) {
	return newAlbum(
		dbutil.NullStringValue(r.Title),
		dbutil.NullStringValue(r.Artists),
		dbutil.NullStringValue(r.Year),
		dbutil.NullStringValue(r.AddedAt),
		dbutil.NullStringValue(r.Playlist),
	)
}

// Number of columns in a TSV export record. The playlist column is optional.
const (
	RecordColumns         = 4
	RecordColumnsPlaylist = 5
)

// AlbumFromRecord builds an Album from the fields of one TSV record.
// Fields are, in order: title, artists, year, date added and an optional
// playlist name.
//
// Only a wrong column count makes the record unusable. A year or date added
// that cannot be read is left at its zero value and reported in invalid.
func AlbumFromRecord(fields []string) (a Album, invalid []error, err error) {
	if len(fields) != RecordColumns && len(fields) != RecordColumnsPlaylist {
		return Album{}, nil, fmt.Errorf("%w: expected %d or %d columns, got %d",
			ErrMalformedRecord, RecordColumns, RecordColumnsPlaylist, len(fields))
	}
	a = Album{
		Title:   strings.TrimSpace(fields[0]),
		Artists: strings.TrimSpace(fields[1]),
	}
	if len(fields) == RecordColumnsPlaylist {
		a.Playlist = strings.TrimSpace(fields[4])
	}
	if y, yerr := ParseYear(fields[2]); yerr != nil {
		invalid = append(invalid, yerr)
	} else {
		a.Year = y
	}
	if t, aerr := ParseAdded(fields[3]); aerr != nil {
		invalid = append(invalid, aerr)
	} else {
		a.AddedAt = t
	}
	return a, invalid, nil
}

func newAlbum(title, artists, year, added, playlist string) (Album, error) {
	y, err := ParseYear(year)
	if err != nil {
		return Album{}, err
	}
	addedAt, err := ParseAdded(added)
	if err != nil {
		return Album{}, err
	}
	return Album{
		Title:    strings.TrimSpace(title),
		Artists:  strings.TrimSpace(artists),
		Year:     y,
		AddedAt:  addedAt,
		Playlist: strings.TrimSpace(playlist),
	}, nil
}

// DatePrecision indicates the granularity of a date string.
type DatePrecision int

const (
	PrecisionNone  DatePrecision = iota // No date or invalid
	PrecisionYear                       // "2024"
	PrecisionMonth                      // "2024-05"
	PrecisionDay                        // "2024-05-15"
)

// ParseDatePrecision returns the precision level of a date string.
func ParseDatePrecision(date string) DatePrecision {
	switch len(date) {
	case 4:
		return PrecisionYear
	case 7:
		return PrecisionMonth
	case 10:
		return PrecisionDay
	default:
		return PrecisionNone
	}
}

// ParseDate attempts to parse a date string with variable precision.
// Returns the time and precision level.
func ParseDate(date string) (time.Time, DatePrecision) {
	precision := ParseDatePrecision(date)
	var t time.Time
	var err error

	switch precision {
	case PrecisionNone:
		return time.Time{}, PrecisionNone
	case PrecisionDay:
		t, err = time.Parse("2006-01-02", date)
	case PrecisionMonth:
		t, err = time.Parse("2006-01", date)
	case PrecisionYear:
		t, err = time.Parse("2006", date)
	}

	if err != nil {
		return time.Time{}, PrecisionNone
	}
	return t, precision
}

// ParseYear reads a release year given either as a bare number or as a date
// of any supported precision. Fractional numbers are truncated. Empty values
// yield 0.
func ParseYear(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if y, err := strconv.Atoi(s); err == nil && y >= 0 {
		return y, nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f >= 0 && f < maxYear {
		return int(f), nil
	}
	if t, precision := ParseDate(s); precision != PrecisionNone {
		return t.Year(), nil
	}
	return 0, fmt.Errorf("%w: invalid year %q", ErrMalformedRecord, s)
}

const maxYear = 1 << 31

// compactDate is the YYYYMMDD form, tried before Unix seconds for 8-digit
// values.
const compactDate = "20060102"

var addedLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// ParseAdded reads a date-added value. Accepted forms are a date of any
// supported precision, "YYYYMMDD", "YYYY-MM-DD HH:MM:SS", RFC 3339 and
// Unix seconds.
// Empty values yield the zero time.
func ParseAdded(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil && len(s) > 4 {
		if len(s) == len(compactDate) {
			if t, err := time.Parse(compactDate, s); err == nil {
				return t, nil
			}
		}
		return time.Unix(secs, 0).UTC(), nil
	}
	if t, precision := ParseDate(s); precision != PrecisionNone {
		return t, nil
	}
	for _, layout := range addedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: invalid date added %q", ErrMalformedRecord, s)
}
