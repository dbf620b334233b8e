package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Kind identifies which snapshot family a cache entry belongs to.
type Kind string

const (
	// KindSourceList caches the scraped want-to-read list for a user.
	KindSourceList Kind = "storygraph"
	// KindReconciliation caches the assembled match results for a user.
	KindReconciliation Kind = "reconciliation"
)

// Entry is one cached snapshot for a (username, kind) pair.
// Entries are replaced wholesale on refresh, never merged.
type Entry struct {
	// Username is the source-site username the snapshot belongs to.
	Username string `json:"username"`
	// Kind is the snapshot family.
	Kind Kind `json:"kind"`
	// FetchedAt is when the payload was produced.
	FetchedAt time.Time `json:"fetched_at"`
	// Payload is the JSON-encoded snapshot body.
	Payload json.RawMessage `json:"payload"`
}

// Stale reports whether the entry is older than the given threshold.
// A nil entry is always stale.
func (e *Entry) Stale(threshold time.Duration) bool {
	if e == nil {
		return true
	}
	return time.Since(e.FetchedAt) > threshold
}

// Decode unmarshals the entry payload into dest.
func (e *Entry) Decode(dest any) error {
	return json.Unmarshal(e.Payload, dest)
}

// Store is the cache service shared by HTTP handlers, the scheduler
// and the CLI. It layers staleness semantics and refresh coalescing
// on top of a pluggable Backend.
type Store struct {
	backend Backend
	logger  *zap.Logger
	sf      singleflight.Group
}

// NewStore creates a cache store over the given backend.
func NewStore(backend Backend, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{backend: backend, logger: logger}
}

// Get returns the stored entry for (username, kind), or nil if absent.
// An unreadable or malformed record behaves as a miss: it is logged
// and nil is returned, so the caller falls through to a fresh fetch.
func (s *Store) Get(ctx context.Context, username string, kind Kind) (*Entry, error) {
	data, err := s.backend.Get(ctx, kind, username)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil || entry.FetchedAt.IsZero() {
		s.logger.Warn("Discarding corrupted cache entry",
			zap.String("username", username),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
		return nil, nil
	}

	return &entry, nil
}

// Put marshals payload, stamps the current time and replaces any prior
// entry for (username, kind).
func (s *Store) Put(ctx context.Context, username string, kind Kind, payload any) (*Entry, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	entry := &Entry{
		Username:  username,
		Kind:      kind,
		FetchedAt: time.Now().UTC(),
		Payload:   body,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return nil, err
	}
	if err := s.backend.Put(ctx, kind, username, data); err != nil {
		return nil, err
	}

	return entry, nil
}

// Fetch returns a fresh-enough entry for (username, kind), loading and
// storing a new snapshot when the cached one is absent, stale, or a
// refresh is forced. Concurrent refreshes for the same key are
// coalesced through singleflight, so a second caller waits and serves
// the entry written by the first rather than racing it. The boolean
// result reports whether the entry came from cache.
//
// When load fails nothing is written; the prior entry, if any, is left
// untouched for the caller's fallback logic.
func (s *Store) Fetch(ctx context.Context, username string, kind Kind, threshold time.Duration, force bool, load func(context.Context) (any, error)) (*Entry, bool, error) {
	if !force {
		entry, err := s.Get(ctx, username, kind)
		if err != nil {
			return nil, false, err
		}
		if entry != nil && !entry.Stale(threshold) {
			return entry, true, nil
		}
	}

	key := string(kind) + "|" + username
	result, err, shared := s.sf.Do(key, func() (any, error) {
		// Double-check after winning the flight: a concurrent caller
		// may have refreshed the key while we waited.
		if !force {
			entry, err := s.Get(ctx, username, kind)
			if err != nil {
				return nil, err
			}
			if entry != nil && !entry.Stale(threshold) {
				return entry, nil
			}
		}

		payload, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return s.Put(ctx, username, kind, payload)
	})
	if err != nil {
		return nil, false, err
	}

	return result.(*Entry), shared, nil
}

// SafeName folds a username into a filesystem- and object-safe token.
func SafeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9',
			r == '_', r == '.', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
