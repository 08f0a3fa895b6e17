package search

import (
	"errors"
	"fmt"

	"github.com/llehouerou/albumq/internal/library"
)

// Error is returned by Search when a backend fails. It carries the query
// that failed; the cause is available through errors.Is and errors.As.
type Error struct {
	Query Query
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("search failed: %s: %v", e.Query, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Kind returns the failure kind of the error: one of
// library.ErrSourceUnavailable, library.ErrMalformedRecord or
// library.ErrQueryExecution, or nil when the cause is of none of them.
func (e *Error) Kind() error {
	for _, kind := range []error{
		library.ErrSourceUnavailable,
		library.ErrMalformedRecord,
		library.ErrQueryExecution,
	} {
		if errors.Is(e.Err, kind) {
			return kind
		}
	}
	return nil
}
