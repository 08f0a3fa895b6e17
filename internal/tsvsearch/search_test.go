package tsvsearch

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/albumq/internal/library"
	"github.com/llehouerou/albumq/internal/logger"
)

func writeTSV(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "library.tsv")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

func quietLogs(t *testing.T) {
	t.Helper()
	logger.SetOutput(io.Discard)
	t.Cleanup(func() { logger.SetOutput(os.Stderr) })
}

const header = "Title\tArtist\tYear\tAdded"

func TestSearch_HeaderSkipped(t *testing.T) {
	path := writeTSV(t,
		header,
		"Abbey Road\tThe Beatles\t1969\t2020-01-01",
		"Let It Be\tThe Beatles\t1970\t2020-01-02",
	)

	out, err := Search(path, "Beatles", true)
	require.NoError(t, err)
	require.Len(t, out.Albums, 2)
	assert.Empty(t, out.Warnings)

	assert.Equal(t, library.Album{
		Title:   "Abbey Road",
		Artists: "The Beatles",
		Year:    1969,
		AddedAt: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	}, out.Albums[0])
	assert.Equal(t, "Let It Be", out.Albums[1].Title)
}

func TestSearch_HeaderIsDataWhenNotSkipped(t *testing.T) {
	path := writeTSV(t,
		"Title Track\tThe Artist\t2001\t2020-01-01",
		"Other\tSomeone\t2002\t2020-01-02",
	)

	out, err := Search(path, "title", false)
	require.NoError(t, err)
	require.Len(t, out.Albums, 1)
	assert.Equal(t, "Title Track", out.Albums[0].Title)

	out, err = Search(path, "title", true)
	require.NoError(t, err)
	assert.Empty(t, out.Albums)
}

func TestSearch_HeaderRowSearchableWhenNotSkipped(t *testing.T) {
	quietLogs(t)
	path := writeTSV(t,
		header,
		"Abbey Road\tThe Beatles\t1969\t2020-01-01",
		"Let It Be\tThe Beatles\t1970\t2020-01-02",
	)

	out, err := Search(path, "", true)
	require.NoError(t, err)
	require.Len(t, out.Albums, 2)
	assert.Empty(t, out.Warnings)

	// The header is an ordinary row: its "Year" and "Added" are left empty.
	out, err = Search(path, "title", false)
	require.NoError(t, err)
	require.Len(t, out.Albums, 1)
	assert.Empty(t, out.Warnings)
	assert.Equal(t, library.Album{Title: "Title", Artists: "Artist"}, out.Albums[0])

	out, err = Search(path, "", false)
	require.NoError(t, err)
	assert.Len(t, out.Albums, 3)
}

func TestSearch_CaseAndDiacriticInsensitive(t *testing.T) {
	path := writeTSV(t,
		"Déjà Vu\tCrosby, Stills, Nash & Young\t1970\t2020-01-01",
		"Homogenic\tBjörk\t1997\t2020-01-02",
	)

	tests := []struct {
		term string
		want string
	}{
		{"deja", "Déjà Vu"},
		{"DÉJÀ   VU", "Déjà Vu"},
		{"bjork", "Homogenic"},
		{"nash & young", "Déjà Vu"},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			out, err := Search(path, tt.term, false)
			require.NoError(t, err)
			require.Len(t, out.Albums, 1)
			assert.Equal(t, tt.want, out.Albums[0].Title)
		})
	}
}

func TestSearch_NoMatchReturnsEmpty(t *testing.T) {
	path := writeTSV(t, header, "Abbey Road\tThe Beatles\t1969\t2020-01-01")

	out, err := Search(path, "zeppelin", true)
	require.NoError(t, err)
	assert.NotNil(t, out.Albums)
	assert.Empty(t, out.Albums)
}

func TestSearch_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.tsv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	out, err := Search(path, "anything", true)
	require.NoError(t, err)
	assert.NotNil(t, out.Albums)
	assert.Empty(t, out.Albums)
}

func TestSearch_MalformedRowsSkipped(t *testing.T) {
	quietLogs(t)
	path := writeTSV(t,
		header,
		"Abbey Road\tThe Beatles\t1969\t2020-01-01",
		"Revolver\tThe Beatles",
		"A\tB\tC\tD\tE\tF",
		"Let It Be\tThe Beatles\t1970\t2020-01-02",
	)

	out, err := Search(path, "beatles", true)
	require.NoError(t, err)
	require.Len(t, out.Albums, 2)
	assert.Equal(t, "Abbey Road", out.Albums[0].Title)
	assert.Equal(t, "Let It Be", out.Albums[1].Title)

	require.Len(t, out.Warnings, 2)
	assert.Equal(t, 3, out.Warnings[0].Line)
	assert.Equal(t, 4, out.Warnings[1].Line)
	assert.Contains(t, out.Warnings[0].Reason, "expected 4 or 5 columns, got 2")
	assert.Contains(t, out.Warnings[1].Reason, "expected 4 or 5 columns, got 6")
}

func TestSearch_UnreadableValuesKeepRow(t *testing.T) {
	var buf strings.Builder
	logger.SetOutput(&buf)
	t.Cleanup(func() { logger.SetOutput(os.Stderr) })

	path := writeTSV(t,
		header,
		"Help!\tThe Beatles\tsixty-five\t2020-01-01",
		"Rubber Soul\tThe Beatles\t1965\tsometime",
	)

	out, err := Search(path, "beatles", true)
	require.NoError(t, err)
	assert.Empty(t, out.Warnings)
	require.Len(t, out.Albums, 2)

	assert.Equal(t, "Help!", out.Albums[0].Title)
	assert.Zero(t, out.Albums[0].Year)
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), out.Albums[0].AddedAt)

	assert.Equal(t, "Rubber Soul", out.Albums[1].Title)
	assert.Equal(t, 1965, out.Albums[1].Year)
	assert.True(t, out.Albums[1].AddedAt.IsZero())

	assert.Contains(t, buf.String(), `line 2: malformed record: invalid year "sixty-five"`)
	assert.Contains(t, buf.String(), `line 3: malformed record: invalid date added "sometime"`)
}

func TestSearch_MalformedRowLogged(t *testing.T) {
	var buf strings.Builder
	logger.SetOutput(&buf)
	t.Cleanup(func() { logger.SetOutput(os.Stderr) })

	path := writeTSV(t, "Revolver\tThe Beatles")
	out, err := Search(path, "", false)
	require.NoError(t, err)
	require.Len(t, out.Warnings, 1)
	assert.Contains(t, buf.String(), "line 1")
}

func TestSearch_PlaylistColumn(t *testing.T) {
	path := writeTSV(t,
		"Title\tArtist\tYear\tAdded\tPlaylist",
		"Abbey Road\tThe Beatles\t1969\t2020-01-01\tSixties",
		"Let It Be\tThe Beatles\t1970\t2020-01-02\t",
	)

	out, err := Search(path, "beatles", true)
	require.NoError(t, err)
	require.Len(t, out.Albums, 2)
	assert.Equal(t, "Sixties", out.Albums[0].Playlist)
	assert.Empty(t, out.Albums[1].Playlist)
}

func TestSearch_EmptyOptionalValues(t *testing.T) {
	path := writeTSV(t, "Unknown Album\tUnknown Artist\t\t")

	out, err := Search(path, "unknown", false)
	require.NoError(t, err)
	require.Len(t, out.Albums, 1)
	assert.Zero(t, out.Albums[0].Year)
	assert.True(t, out.Albums[0].AddedAt.IsZero())
}

func TestSearch_CRLFAndBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "windows.tsv")
	content := "\ufeffAbbey Road\tThe Beatles\t1969\t2020-01-01\r\n\r\nLet It Be\tThe Beatles\t1970\t2020-01-02\r\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	out, err := Search(path, "", false)
	require.NoError(t, err)
	require.Len(t, out.Albums, 2)
	assert.Empty(t, out.Warnings)
	assert.Equal(t, "Abbey Road", out.Albums[0].Title)
	assert.Equal(t, time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC), out.Albums[1].AddedAt)
}

func TestSearch_MissingFile(t *testing.T) {
	_, err := Search(filepath.Join(t.TempDir(), "missing.tsv"), "beatles", true)
	require.Error(t, err)
	assert.ErrorIs(t, err, library.ErrSourceUnavailable)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestSearch_Directory(t *testing.T) {
	_, err := Search(t.TempDir(), "beatles", true)
	require.Error(t, err)
	assert.ErrorIs(t, err, library.ErrSourceUnavailable)
}

func TestWarning_String(t *testing.T) {
	w := Warning{Line: 7, Reason: "bad row"}
	assert.Equal(t, "line 7: bad row", w.String())
}
