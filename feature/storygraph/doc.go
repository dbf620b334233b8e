// Package storygraph retrieves a user's public want-to-read list from
// the source site.
//
// The site sits behind anti-bot protection, so every page is fetched
// through a FlareSolverr instance: a browser session is created for the
// run, each list page is rendered through it, and the session is
// destroyed afterwards. Pages are parsed with goquery and paginated ten
// books at a time, guided by the result count on the first page when
// present.
//
// The Service layers caching on top of the Client: lists are reused
// within a freshness threshold and a stale snapshot is served when a
// fresh retrieval fails. Retrieval failures carry a Reason (blocked,
// timeout, not found, unavailable) so handlers can map them to HTTP
// status codes.
package storygraph
