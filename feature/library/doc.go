// Package library talks to the media-library manager.
//
// The manager exposes a command API (/api?cmd=...&apikey=...) that
// answers with JSON or the literal text "OK", and is not consistent
// about field casing between commands. The Client keeps the wire
// protocol, the adapter folds raw records into Candidate at the
// boundary, and the Service adds an in-memory holdings snapshot so
// candidate lookups during a reconciliation pass cost one manager call,
// not one per book.
//
// Candidate lookups are exact on normalized title or author. The fuzzy
// ranking in Search exists for the manual search endpoint only and
// never feeds the match verdict.
package library
