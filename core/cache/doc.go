// Package cache provides snapshot caching for scraped reading lists and
// assembled reconciliation reports.
//
// Entries are keyed by (username, kind) and carry the time their payload
// was produced. The Store decides freshness against a caller-supplied
// threshold with a strict boundary: an entry exactly at the threshold is
// still fresh. Refreshes replace entries wholesale and concurrent
// refreshes of the same key are coalesced, so readers never observe a
// partially written snapshot. A record that fails to decode is treated
// as a miss rather than an error.
//
// Three backends are provided: an in-memory map, a bbolt database file
// (the default) and S3-compatible object storage for deployments that
// share a cache across instances.
package cache
