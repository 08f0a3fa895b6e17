// Package dbsearch searches a SQLite library export for albums.
package dbsearch

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"modernc.org/sqlite"

	dbutil "github.com/llehouerou/albumq/internal/db"
	"github.com/llehouerou/albumq/internal/library"
)

// matchFunc is the SQL function evaluating library.Matcher inside queries:
// albumq_match(title, artists, term) returns 1 on match.
const matchFunc = "albumq_match"

var (
	registerOnce sync.Once
	registerErr  error
)

func registerMatchFunc() error {
	registerOnce.Do(func() {
		registerErr = sqlite.RegisterDeterministicScalarFunction(matchFunc, 3,
			func(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
				m := matcherFor(valueString(args[2]))
				if m.MatchFields(valueString(args[0]), valueString(args[1])) {
					return int64(1), nil
				}
				return int64(0), nil
			})
	})
	return registerErr
}

type cachedMatcher struct {
	term    string
	matcher library.Matcher
}

var lastMatcher atomic.Pointer[cachedMatcher]

// matcherFor returns the matcher for term, reusing the last one built while
// the term is unchanged. A query passes the same term for every row.
func matcherFor(term string) library.Matcher {
	if c := lastMatcher.Load(); c != nil && c.term == term {
		return c.matcher
	}
	c := &cachedMatcher{term: term, matcher: library.NewMatcher(term)}
	lastMatcher.Store(c)
	return c.matcher
}

func valueString(v driver.Value) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

// Search returns the albums of the database at path matching term, in
// source order. The database is opened read-only and closed before
// returning.
func Search(path, term string) ([]library.Album, error) {
	if err := checkFile(path); err != nil {
		return nil, err
	}
	if err := registerMatchFunc(); err != nil {
		return nil, fmt.Errorf("%w: register %s: %w", library.ErrQueryExecution, matchFunc, err)
	}

	db, err := dbutil.OpenReadOnly(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", library.ErrSourceUnavailable, path, err)
	}
	defer db.Close()

	albums := []library.Album{}
	err = dbutil.WithReadTx(db, func(tx *sql.Tx) error {
		query, err := buildQuery(tx)
		if err != nil {
			return err
		}
		albums, err = queryAlbums(tx, query, term)
		return err
	})
	if err != nil {
		if !isKinded(err) {
			err = fmt.Errorf("%w: %s: %w", library.ErrSourceUnavailable, path, err)
		}
		return nil, err
	}
	return albums, nil
}

func isKinded(err error) bool {
	return errors.Is(err, library.ErrSourceUnavailable) ||
		errors.Is(err, library.ErrMalformedRecord) ||
		errors.Is(err, library.ErrQueryExecution)
}

func checkFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %w", library.ErrSourceUnavailable, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", library.ErrSourceUnavailable, path)
	}
	return nil
}

// buildQuery inspects the schema and returns the album query for it.
func buildQuery(tx *sql.Tx) (string, error) {
	albumCols, err := tableColumns(tx, albumsTable)
	if err != nil {
		// First statement against the file: a non-database file fails here.
		return "", fmt.Errorf("%w: read schema: %w", library.ErrSourceUnavailable, err)
	}
	if len(albumCols) == 0 {
		return "", fmt.Errorf("%w: unexpected schema: no %s table", library.ErrMalformedRecord, albumsTable)
	}
	var missing []string
	for _, c := range requiredAlbumColumns {
		if !albumCols[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("%w: unexpected schema: %s table lacks %s",
			library.ErrMalformedRecord, albumsTable, strings.Join(missing, ", "))
	}

	playlistCols, err := tableColumns(tx, playlistsTable)
	if err != nil {
		return "", fmt.Errorf("%w: read schema: %w", library.ErrSourceUnavailable, err)
	}

	if albumCols[playlistColumn] && playlistCols["id"] && playlistCols["name"] {
		return `
			SELECT a.title, a.artists, CAST(a.year AS TEXT), CAST(a.added_at AS TEXT), p.name
			FROM albums a
			LEFT JOIN playlists p ON p.id = a.playlist_id
			WHERE ` + matchFunc + `(a.title, a.artists, ?)
			ORDER BY a.rowid
		`, nil
	}
	return `
		SELECT a.title, a.artists, CAST(a.year AS TEXT), CAST(a.added_at AS TEXT), NULL
		FROM albums a
		WHERE ` + matchFunc + `(a.title, a.artists, ?)
		ORDER BY a.rowid
	`, nil
}

func tableColumns(tx *sql.Tx, table string) (map[string]bool, error) {
	rows, err := tx.Query(`SELECT name FROM pragma_table_info(?)`, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		cols[strings.ToLower(name)] = true
	}
	return cols, rows.Err()
}

func queryAlbums(tx *sql.Tx, query, term string) ([]library.Album, error) {
	rows, err := tx.Query(query, term)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", library.ErrQueryExecution, err)
	}
	defer rows.Close()

	albums := []library.Album{}
	for rows.Next() {
		var r library.Row
		if err := rows.Scan(&r.Title, &r.Artists, &r.Year, &r.AddedAt, &r.Playlist); err != nil {
			return nil, fmt.Errorf("%w: %w", library.ErrMalformedRecord, err)
		}
		a, err := library.AlbumFromRow(r)
		if err != nil {
			return nil, err
		}
		albums = append(albums, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", library.ErrQueryExecution, err)
	}
	return albums, nil
}
