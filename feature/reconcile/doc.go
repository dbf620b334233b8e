// Package reconcile matches a user's want-to-read list against the
// library manager's holdings and request queue.
//
// The Matcher is deliberately conservative: a candidate matches only on
// a normalized exact title or author equality, and the per-format
// verdict (Have, Wanted, Skipped, Ignored, Missing) is derived from the
// manager's free-text status through a fixed, ordered substring rule
// table. Unrecognized status text degrades to Missing rather than
// guessing.
//
// The Service orchestrates a pass: source list (cached, with stale
// fallback), optional truncation, cached report check, then a bounded
// parallel candidate query per book with results in source order. One
// failed book query degrades that book to all-Missing without aborting
// the pass. Completed passes are cached wholesale and, when a database
// is configured, recorded in a run history. The Scheduler re-runs the
// pass for configured users at a fixed interval.
package reconcile
