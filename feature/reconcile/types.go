package reconcile

import (
	"time"

	"storygrabber/feature/library"
	"storygrabber/feature/storygraph"
)

// Status is the per-format verdict for one source book.
type Status string

const (
	StatusHave    Status = "Have"
	StatusWanted  Status = "Wanted"
	StatusSkipped Status = "Skipped"
	StatusIgnored Status = "Ignored"
	StatusMissing Status = "Missing"
)

// rank orders statuses from least to most informative. Merging
// per-candidate statuses by rank keeps the verdict independent of
// candidate order.
func (s Status) rank() int {
	switch s {
	case StatusHave:
		return 4
	case StatusWanted:
		return 3
	case StatusSkipped:
		return 2
	case StatusIgnored:
		return 1
	default:
		return 0
	}
}

// MatchResult is the verdict for one source book.
type MatchResult struct {
	Book storygraph.Book `json:"book"`
	// LibraryMatches holds the matched candidates in the order the
	// manager returned them; callers may treat the first as primary.
	LibraryMatches []library.Candidate `json:"library_matches"`
	// Statuses maps each requested format to its verdict.
	Statuses map[library.Format]Status `json:"statuses"`
	// QueryFailed marks an item whose candidate lookup failed and was
	// degraded to all-Missing.
	QueryFailed bool `json:"query_failed,omitempty"`
}

// Summary aggregates one reconciliation pass.
type Summary struct {
	Total    int `json:"total"`
	Matched  int `json:"matched"`
	Failures int `json:"failures"`
}

// Report is a reconciliation pass with its cache provenance.
type Report struct {
	Username  string        `json:"username"`
	FetchedAt time.Time     `json:"fetched_at"`
	Cached    bool          `json:"cached"`
	// SourceStale marks a report built from a stale source list served
	// after a retrieval failure.
	SourceStale bool          `json:"source_stale,omitempty"`
	Results     []MatchResult `json:"results"`
	Summary     Summary       `json:"summary"`
}

// Options control one reconciliation pass.
type Options struct {
	// Formats restricts the verdict to the given formats; empty means
	// all supported formats.
	Formats []library.Format
	// ForceRefresh bypasses fresh cache entries for both the source
	// list and the assembled report.
	ForceRefresh bool
	// MaxBooks truncates the source list to its prefix; zero means no
	// truncation.
	MaxBooks int
	// Trigger labels the pass in the run history (api, scheduler, cli).
	Trigger string
}

func (o Options) formats() []library.Format {
	if len(o.Formats) == 0 {
		return library.AllFormats
	}
	return o.Formats
}
