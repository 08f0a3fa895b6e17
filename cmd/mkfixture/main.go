// Program mkfixture writes a sample library export, as a SQLite database
// and as a TSV file, for trying albumq by hand.
package main

import (
	"database/sql"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"

	dbutil "github.com/llehouerou/albumq/internal/db"
	"github.com/llehouerou/albumq/internal/dbsearch"
)

type sample struct {
	title, artists string
	year           int
	added          string
	playlist       string
}

var samples = []sample{
	{"Abbey Road", "The Beatles", 1969, "2020-01-01", "Sixties"},
	{"Let It Be", "The Beatles", 1970, "2020-01-02", "Sixties"},
	{"Revolver", "The Beatles", 1966, "2020-01-03", ""},
	{"The Wall", "Pink Floyd", 1979, "2021-03-04 10:00:00", "Favorites"},
	{"Wish You Were Here", "Pink Floyd", 1975, "2021-03-04 10:05:00", "Favorites"},
	{"Déjà Vu", "Crosby, Stills, Nash & Young", 1970, "2022-07-15", ""},
	{"Homogenic", "Björk", 1997, "2023-11-30T21:00:00Z", "Favorites"},
	{"Kind of Blue", "Miles Davis", 1959, "2019-05-05", ""},
}

func main() {
	dir := flag.String("dir", ".", "output directory")
	flag.Parse()

	if err := os.MkdirAll(*dir, 0o755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	dbPath := filepath.Join(*dir, "library.db")
	if err := writeDB(dbPath); err != nil {
		log.Fatalf("Failed to write %s: %v", dbPath, err)
	}
	log.Printf("Wrote %d albums to %s", len(samples), dbPath)

	tsvPath := filepath.Join(*dir, "library.tsv")
	if err := writeTSV(tsvPath); err != nil {
		log.Fatalf("Failed to write %s: %v", tsvPath, err)
	}
	log.Printf("Wrote %d albums to %s", len(samples), tsvPath)
}

func writeDB(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Exec(dbsearch.Schema); err != nil {
		return err
	}

	return dbutil.WithTx(db, func(tx *sql.Tx) error {
		playlistIDs := make(map[string]int64)
		for _, s := range samples {
			var playlistID sql.NullInt64
			if s.playlist != "" {
				id, ok := playlistIDs[s.playlist]
				if !ok {
					res, err := tx.Exec(`INSERT INTO playlists (name) VALUES (?)`, s.playlist)
					if err != nil {
						return err
					}
					if id, err = res.LastInsertId(); err != nil {
						return err
					}
					playlistIDs[s.playlist] = id
				}
				playlistID = sql.NullInt64{Int64: id, Valid: true}
			}
			_, err := tx.Exec(`
				INSERT INTO albums (title, artists, year, added_at, playlist_id)
				VALUES (?, ?, ?, ?, ?)
			`, s.title, s.artists, s.year, s.added, playlistID)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func writeTSV(path string) error {
	var b strings.Builder
	b.WriteString("Title\tArtist\tYear\tAdded\tPlaylist\n")
	for _, s := range samples {
		b.WriteString(strings.Join([]string{
			s.title, s.artists, strconv.Itoa(s.year), s.added, s.playlist,
		}, "\t"))
		b.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}
