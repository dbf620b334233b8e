package library

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"storygrabber/core/normalize"

	"go.uber.org/zap"
)

// managerAPI is the manager dependency of the service; satisfied by
// *Client and mocked in tests.
type managerAPI interface {
	GetAllBooks(ctx context.Context) ([]Candidate, error)
	GetWanted(ctx context.Context) ([]Candidate, error)
	FindBook(ctx context.Context, name string) ([]Candidate, error)
	QueueBook(ctx context.Context, bookID string, format Format) error
	UnqueueBook(ctx context.Context, bookID string, format Format) error
	SearchBook(ctx context.Context, bookID string, format Format) error
}

// Service answers candidate lookups against an in-memory snapshot of
// the manager's holdings and forwards queue mutations to the manager.
// The snapshot keeps per-item lookups during a reconciliation pass from
// hammering the manager with one full-library call per book.
type Service struct {
	client managerAPI
	ttl    time.Duration
	logger *zap.Logger

	mu        sync.Mutex
	index     *holdingsIndex
	fetchedAt time.Time
}

// NewService creates the library service. ttl bounds how long the
// holdings snapshot is reused.
func NewService(client managerAPI, ttl time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{client: client, ttl: ttl, logger: logger}
}

// holdingsIndex is a holdings snapshot with normalized title and author
// lookup tables. Values are positions into candidates so merged lookups
// keep holdings order.
type holdingsIndex struct {
	candidates []Candidate
	byTitle    map[string][]int
	byAuthor   map[string][]int
}

func buildIndex(candidates []Candidate) *holdingsIndex {
	idx := &holdingsIndex{
		candidates: candidates,
		byTitle:    make(map[string][]int, len(candidates)),
		byAuthor:   make(map[string][]int, len(candidates)),
	}
	for i, c := range candidates {
		if t := normalize.Text(c.Title); t != "" {
			idx.byTitle[t] = append(idx.byTitle[t], i)
		}
		if a := normalize.Text(c.Author); a != "" {
			idx.byAuthor[a] = append(idx.byAuthor[a], i)
		}
	}
	return idx
}

func (s *Service) holdings(ctx context.Context) (*holdingsIndex, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index != nil && time.Since(s.fetchedAt) <= s.ttl {
		return s.index, nil
	}

	candidates, err := s.client.GetAllBooks(ctx)
	if err != nil {
		if s.index != nil {
			s.logger.Warn("Reusing stale holdings snapshot", zap.Error(err))
			return s.index, nil
		}
		return nil, err
	}

	s.index = buildIndex(candidates)
	s.fetchedAt = time.Now()
	s.logger.Debug("Refreshed holdings snapshot", zap.Int("candidates", len(candidates)))
	return s.index, nil
}

func (s *Service) invalidate() {
	s.mu.Lock()
	s.index = nil
	s.mu.Unlock()
}

// SearchCandidates returns the holdings whose normalized title or
// normalized author equals that of the queried book, in holdings order.
// Empty normalized fields never match anything.
func (s *Service) SearchCandidates(ctx context.Context, title, author string) ([]Candidate, error) {
	idx, err := s.holdings(ctx)
	if err != nil {
		return nil, &QueryError{Title: title, Author: author, Err: err}
	}

	seen := make(map[int]struct{})
	var positions []int
	add := func(hits []int) {
		for _, pos := range hits {
			if _, dup := seen[pos]; dup {
				continue
			}
			seen[pos] = struct{}{}
			positions = append(positions, pos)
		}
	}

	if t := normalize.Text(title); t != "" {
		add(idx.byTitle[t])
	}
	if a := normalize.Text(author); a != "" {
		add(idx.byAuthor[a])
	}

	// Holdings order, not lookup order.
	sort.Ints(positions)

	candidates := make([]Candidate, 0, len(positions))
	for _, pos := range positions {
		candidates = append(candidates, idx.candidates[pos])
	}
	return candidates, nil
}

// Holdings returns the current holdings snapshot as a flat list.
func (s *Service) Holdings(ctx context.Context) ([]Candidate, error) {
	idx, err := s.holdings(ctx)
	if err != nil {
		return nil, err
	}
	return idx.candidates, nil
}

// Wanted returns the manager's request queue.
func (s *Service) Wanted(ctx context.Context) ([]Candidate, error) {
	return s.client.GetWanted(ctx)
}

// MarkWanted queues the book in the given format and immediately
// triggers a download search for it.
func (s *Service) MarkWanted(ctx context.Context, bookID string, format Format) error {
	if err := s.client.QueueBook(ctx, bookID, format); err != nil {
		return fmt.Errorf("queueing book %s: %w", bookID, err)
	}
	defer s.invalidate()

	if err := s.client.SearchBook(ctx, bookID, format); err != nil {
		return fmt.Errorf("searching for queued book %s: %w", bookID, err)
	}
	return nil
}

// ForceSearch triggers a download search without touching the queue.
func (s *Service) ForceSearch(ctx context.Context, bookID string, format Format) error {
	return s.client.SearchBook(ctx, bookID, format)
}

// Unqueue marks the book as skipped in the given format.
func (s *Service) Unqueue(ctx context.Context, bookID string, format Format) error {
	defer s.invalidate()
	return s.client.UnqueueBook(ctx, bookID, format)
}
