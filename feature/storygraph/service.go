package storygraph

import (
	"context"
	"time"

	"storygrabber/core/cache"

	"go.uber.org/zap"
)

// retriever is the scraping dependency of the service; satisfied by
// *Client and mocked in tests.
type retriever interface {
	Books(ctx context.Context, username string) ([]Book, error)
}

// Service serves want-to-read lists through the cache: fresh snapshots
// are reused within the freshness threshold, and when a retrieval fails
// a stale snapshot is served rather than nothing.
type Service struct {
	client retriever
	store  *cache.Store
	ttl    time.Duration
	logger *zap.Logger
}

// NewService creates the source-list service.
func NewService(client retriever, store *cache.Store, ttl time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{client: client, store: store, ttl: ttl, logger: logger}
}

// Books returns the want-to-read list for username. force bypasses a
// fresh cache entry. When retrieval fails and any cached snapshot
// exists, the snapshot is served with Stale set; without a fallback the
// retrieval error is returned as-is.
func (s *Service) Books(ctx context.Context, username string, force bool) (*BookList, error) {
	entry, fromCache, err := s.store.Fetch(ctx, username, cache.KindSourceList, s.ttl, force,
		func(ctx context.Context) (any, error) {
			return s.client.Books(ctx, username)
		})
	if err != nil {
		if fallback := s.staleFallback(ctx, username, err); fallback != nil {
			return fallback, nil
		}
		return nil, err
	}

	var books []Book
	if derr := entry.Decode(&books); derr != nil {
		return nil, derr
	}

	return &BookList{
		Username:  username,
		FetchedAt: entry.FetchedAt,
		Cached:    fromCache,
		Books:     books,
	}, nil
}

func (s *Service) staleFallback(ctx context.Context, username string, cause error) *BookList {
	entry, err := s.store.Get(ctx, username, cache.KindSourceList)
	if err != nil || entry == nil {
		return nil
	}

	var books []Book
	if err := entry.Decode(&books); err != nil {
		return nil
	}

	s.logger.Warn("Serving stale list after retrieval failure",
		zap.String("username", username),
		zap.Time("fetched_at", entry.FetchedAt),
		zap.Error(cause),
	)

	return &BookList{
		Username:  username,
		FetchedAt: entry.FetchedAt,
		Cached:    true,
		Stale:     true,
		Books:     books,
	}
}
