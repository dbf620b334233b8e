package library

import "fmt"

// QueryError reports a failed candidate query for one book. The
// reconciliation pass recovers from it per item instead of aborting.
type QueryError struct {
	Title  string
	Author string
	Err    error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("querying library for %q by %q: %v", e.Title, e.Author, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}
