// Package output renders search results as plain text or as a table.
package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/llehouerou/albumq/internal/library"
	"github.com/llehouerou/albumq/internal/search"
)

const dateLayout = "2006-01-02"

// DefaultMaxColumnWidth bounds table cells when no width is configured.
const DefaultMaxColumnWidth = 40

const playlistHeader = "Playlist"

var (
	headers     = []string{"Title", "Artists", "Year", "Added"}
	borderColor = lipgloss.Color("240")
	headerColor = lipgloss.Color("39")
	dimColor    = lipgloss.Color("244")
)

// TableOptions configures Table.
type TableOptions struct {
	MaxColumnWidth int // 0 uses DefaultMaxColumnWidth
}

// Plain writes one tab-separated line per album, preceded by a header line
// when the results ask for one.
func Plain(w io.Writer, res search.Results) error {
	var b strings.Builder
	if res.IncludeHeader {
		b.WriteString(strings.Join(columns(res), "\t"))
		b.WriteByte('\n')
	}
	for _, a := range res.Albums {
		b.WriteString(strings.Join(fields(a, res.IncludePlaylistName), "\t"))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Table writes the albums as a bordered table followed by a summary line.
func Table(w io.Writer, res search.Results, opts TableOptions) error {
	if len(res.Albums) == 0 {
		_, err := fmt.Fprintf(w, "No albums matching %q%s\n", res.Term, skipped(res))
		return err
	}

	maxWidth := opts.MaxColumnWidth
	if maxWidth <= 0 {
		maxWidth = DefaultMaxColumnWidth
	}

	r := lipgloss.NewRenderer(w)
	headerStyle := r.NewStyle().Bold(true).Foreground(headerColor).Padding(0, 1)
	cellStyle := r.NewStyle().Padding(0, 1)

	rows := make([][]string, len(res.Albums))
	for i, a := range res.Albums {
		row := fields(a, res.IncludePlaylistName)
		for j, cell := range row {
			row[j] = Truncate(cell, maxWidth)
		}
		rows[i] = row
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(r.NewStyle().Foreground(borderColor)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Rows(rows...)
	if res.IncludeHeader {
		t = t.Headers(columns(res)...)
	}

	summary := r.NewStyle().Foreground(dimColor).Render(
		fmt.Sprintf("%s %s matching %q%s",
			humanize.Comma(int64(len(res.Albums))),
			plural(len(res.Albums), "album", "albums"),
			res.Term,
			skipped(res),
		))

	_, err := fmt.Fprintf(w, "%s\n%s\n", t.String(), summary)
	return err
}

// Truncate shortens s to fit within maxWidth terminal cells, adding an
// ellipsis if truncated. Wide characters count for their display width.
func Truncate(s string, maxWidth int) string {
	return runewidth.Truncate(s, maxWidth, "…")
}

func columns(res search.Results) []string {
	cols := append([]string(nil), headers...)
	if res.IncludePlaylistName {
		cols = append(cols, playlistHeader)
	}
	return cols
}

func fields(a library.Album, withPlaylist bool) []string {
	year := ""
	if a.Year > 0 {
		year = strconv.Itoa(a.Year)
	}
	added := ""
	if !a.AddedAt.IsZero() {
		added = a.AddedAt.Format(dateLayout)
	}
	f := []string{a.Title, a.Artists, year, added}
	if withPlaylist {
		f = append(f, a.Playlist)
	}
	return f
}

func skipped(res search.Results) string {
	n := len(res.Warnings)
	if n == 0 {
		return ""
	}
	return fmt.Sprintf(" (%s %s skipped)", humanize.Comma(int64(n)), plural(n, "row", "rows"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
