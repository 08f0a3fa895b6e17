// Package search runs album searches against a library export.
package search

import (
	"github.com/llehouerou/albumq/internal/dbsearch"
	"github.com/llehouerou/albumq/internal/library"
	"github.com/llehouerou/albumq/internal/logger"
	"github.com/llehouerou/albumq/internal/tsvsearch"
)

// outcome is what a backend produces for one query.
type outcome struct {
	albums   []library.Album
	warnings []tsvsearch.Warning
}

type backend interface {
	search(q Query) (outcome, error)
}

type dbBackend struct{}

func (dbBackend) search(q Query) (outcome, error) {
	albums, err := dbsearch.Search(q.File, q.Term)
	if err != nil {
		return outcome{}, err
	}
	return outcome{albums: albums}, nil
}

type tsvBackend struct{}

func (tsvBackend) search(q Query) (outcome, error) {
	out, err := tsvsearch.Search(q.File, q.Term, q.IncludeHeader)
	if err != nil {
		return outcome{}, err
	}
	return outcome{albums: out.Albums, warnings: out.Warnings}, nil
}

func backendFor(t SourceType) backend {
	if t == SourceTSV {
		return tsvBackend{}
	}
	return dbBackend{}
}

// Search runs q against the backend for its source type and returns the
// matching albums sorted by q.Sort. Ties keep the source order.
//
// A backend failure is returned as *Error carrying q.
func Search(q Query) (Results, error) {
	if q.Verbose {
		logger.Infof("searching %s", q)
	}

	b := backendFor(q.Type)
	if q.Verbose {
		logger.Infof("searching %s file %s", q.Type, q.File)
	}
	out, err := b.search(q)
	if err != nil {
		return Results{}, &Error{Query: q, Err: err}
	}

	albums := out.albums
	if albums == nil {
		albums = []library.Album{}
	}
	library.Sort(albums, q.Sort)

	if q.Verbose {
		logger.Infof("found %d albums (%d rows skipped)", len(albums), len(out.warnings))
	}

	return Results{
		Term:                q.Term,
		IncludeHeader:       q.IncludeHeader,
		IncludePlaylistName: q.IncludePlaylistName,
		Sort:                q.Sort,
		Albums:              albums,
		Warnings:            out.warnings,
	}, nil
}
