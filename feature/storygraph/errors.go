package storygraph

import "fmt"

// Reason classifies why a list retrieval failed.
type Reason string

const (
	// ReasonBlocked means the source site refused the request, usually
	// an anti-bot challenge the solver could not pass.
	ReasonBlocked Reason = "blocked"
	// ReasonTimeout means the retrieval ran out of time.
	ReasonTimeout Reason = "timeout"
	// ReasonNotFound means the user or their list does not exist.
	ReasonNotFound Reason = "not_found"
	// ReasonUnavailable means the solver or the network failed.
	ReasonUnavailable Reason = "unavailable"
)

// RetrievalError reports a failed want-to-read list retrieval.
type RetrievalError struct {
	Username string
	Reason   Reason
	Err      error
}

func (e *RetrievalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("retrieving list for %q: %s: %v", e.Username, e.Reason, e.Err)
	}
	return fmt.Sprintf("retrieving list for %q: %s", e.Username, e.Reason)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}
