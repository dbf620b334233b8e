package reconcile

import (
	"strings"

	"storygrabber/core/normalize"
	"storygrabber/feature/library"
	"storygrabber/feature/storygraph"
)

// Match reconciles one source book against the manager's candidates.
//
// A candidate matches when its normalized title or its normalized
// author equals the book's, empty fields never matching. Matched
// candidates are collected in input order; the per-format verdict is
// merged across them by status rank so it does not depend on that
// order. A book with empty title and author yields no matches and
// all-Missing, whatever the candidates.
func Match(book storygraph.Book, candidates []library.Candidate, formats []library.Format) MatchResult {
	bookTitle := normalize.Text(book.Title)
	bookAuthor := normalize.Text(book.Author)

	// Always an array in the serialized report, even with no matches.
	matches := []library.Candidate{}
	for _, c := range candidates {
		if bookTitle != "" && bookTitle == normalize.Text(c.Title) {
			matches = append(matches, c)
			continue
		}
		if bookAuthor != "" && bookAuthor == normalize.Text(c.Author) {
			matches = append(matches, c)
		}
	}

	statuses := make(map[library.Format]Status, len(formats))
	for _, f := range formats {
		statuses[f] = statusForFormat(matches, f)
	}

	return MatchResult{Book: book, LibraryMatches: matches, Statuses: statuses}
}

// statusForFormat merges the per-candidate verdicts for one format,
// keeping the most informative one.
func statusForFormat(matches []library.Candidate, f library.Format) Status {
	verdict := StatusMissing
	for _, c := range matches {
		state := c.Formats[f]
		if !state.Present && strings.TrimSpace(state.StatusText) == "" {
			// Unknown or not tracked for this format.
			continue
		}
		if s := classifyState(state); s.rank() > verdict.rank() {
			verdict = s
		}
	}
	return verdict
}

// classifyState maps one candidate's raw format state to a Status.
// Rules run in order, first match wins; unrecognized non-empty status
// text falls through to Missing rather than guessing.
func classifyState(state library.FormatState) Status {
	text := strings.ToLower(state.StatusText)
	switch {
	case strings.Contains(text, "want"), strings.Contains(text, "missing"):
		return StatusWanted
	case strings.Contains(text, "skip"):
		return StatusSkipped
	case strings.Contains(text, "ignor"):
		return StatusIgnored
	case strings.Contains(text, "avail"), strings.Contains(text, "in library"), strings.Contains(text, "have"):
		return StatusHave
	case state.Present:
		return StatusHave
	default:
		return StatusMissing
	}
}

// missingResult is the degraded verdict for an item whose candidate
// query failed.
func missingResult(book storygraph.Book, formats []library.Format) MatchResult {
	statuses := make(map[library.Format]Status, len(formats))
	for _, f := range formats {
		statuses[f] = StatusMissing
	}
	return MatchResult{Book: book, LibraryMatches: []library.Candidate{}, Statuses: statuses, QueryFailed: true}
}
