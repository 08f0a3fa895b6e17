package dbsearch

// Schema is the layout of a database export. Only the albums table is
// required; playlist names are read when playlist_id and the playlists
// table are present.
const Schema = `
	CREATE TABLE IF NOT EXISTS playlists (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE
	);

	CREATE TABLE IF NOT EXISTS albums (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		artists TEXT NOT NULL,
		year INTEGER,
		added_at TEXT,
		playlist_id INTEGER REFERENCES playlists(id)
	);

	CREATE INDEX IF NOT EXISTS idx_albums_added_at ON albums(added_at);
`

const (
	albumsTable    = "albums"
	playlistsTable = "playlists"
	playlistColumn = "playlist_id"
)

var requiredAlbumColumns = []string{"title", "artists", "year", "added_at"}
