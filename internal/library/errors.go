package library

import "errors"

// Failure kinds shared by both search backends. Backends wrap them with
// details; callers match them with errors.Is.
var (
	// ErrSourceUnavailable reports a missing or unreadable export file.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrMalformedRecord reports a row or schema that cannot be read as albums.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrQueryExecution reports a failure while evaluating the match in a backend.
	ErrQueryExecution = errors.New("query execution failed")
)
