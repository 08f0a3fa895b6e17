// Package tsvsearch searches a tab-separated library export for albums.
//
// Each row holds, in order: title, artists, year, date added and an
// optional playlist name. Rows with another column count are skipped and
// reported as warnings. A year or date added that cannot be read is left
// empty and logged, and the row is kept.
package tsvsearch

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/llehouerou/albumq/internal/library"
	"github.com/llehouerou/albumq/internal/logger"
)

const (
	separator = "\t"
	bom       = "\ufeff"

	// maxLineSize bounds a single row; longer rows fail the read.
	maxLineSize = 1 << 20
)

// Warning describes a row skipped because it could not be read.
type Warning struct {
	Line   int
	Reason string
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s", w.Line, w.Reason)
}

// Outcome holds the matched albums, in file order, and the skipped rows.
type Outcome struct {
	Albums   []library.Album
	Warnings []Warning
}

// Search returns the albums of the file at path matching term. When
// skipHeader is set the first line is treated as a header and ignored.
func Search(path, term string, skipHeader bool) (Outcome, error) {
	f, err := os.Open(path)
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: %w", library.ErrSourceUnavailable, err)
	}
	defer f.Close()

	matcher := library.NewMatcher(term)
	out := Outcome{Albums: []library.Album{}}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if lineNum == 1 {
			line = strings.TrimPrefix(line, bom)
			if skipHeader {
				continue
			}
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		album, invalid, err := library.AlbumFromRecord(strings.Split(line, separator))
		if err != nil {
			w := Warning{Line: lineNum, Reason: err.Error()}
			logger.Warnf("%s: skipping %s", path, w)
			out.Warnings = append(out.Warnings, w)
			continue
		}
		for _, e := range invalid {
			logger.Warnf("%s: line %d: %v", path, lineNum, e)
		}
		if matcher.Match(album) {
			out.Albums = append(out.Albums, album)
		}
	}
	if err := scanner.Err(); err != nil {
		return Outcome{}, fmt.Errorf("%w: read %s: %w", library.ErrSourceUnavailable, path, err)
	}

	return out, nil
}
