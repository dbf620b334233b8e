package reconcile

import (
	"context"
	"time"

	"storygrabber/core/cache"
	"storygrabber/feature/library"
	"storygrabber/feature/storygraph"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SourceLister resolves a user's want-to-read list, including its own
// caching and stale fallback; satisfied by *storygraph.Service.
type SourceLister interface {
	Books(ctx context.Context, username string, force bool) (*storygraph.BookList, error)
}

// CandidateSearcher answers per-book candidate lookups; satisfied by
// *library.Service.
type CandidateSearcher interface {
	SearchCandidates(ctx context.Context, title, author string) ([]library.Candidate, error)
}

// Service runs reconciliation passes: resolve the source list, match
// every book against the manager's holdings, cache the assembled
// report and record it in the run history.
type Service struct {
	source      SourceLister
	library     CandidateSearcher
	store       *cache.Store
	history     *HistoryRepo
	ttl         time.Duration
	concurrency int
	logger      *zap.Logger
}

// NewService creates the reconciliation service. history may be nil
// when no database is configured.
func NewService(source SourceLister, lib CandidateSearcher, store *cache.Store, history *HistoryRepo, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}
	return &Service{
		source:      source,
		library:     lib,
		store:       store,
		history:     history,
		ttl:         cfg.TTL(),
		concurrency: concurrency,
		logger:      logger,
	}
}

// snapshot is the cached form of a reconciliation pass. Failure counts
// are derived from the results so a prefix of the snapshot summarizes
// consistently.
type snapshot struct {
	Results []MatchResult `json:"results"`
}

// Reconcile produces the match report for username.
//
// The source list is resolved first, through its own cache with stale
// fallback; a retrieval failure with no fallback is fatal. A fresh
// report is then assembled unless a fresh cached one exists, with
// per-book candidate queries running in parallel under a concurrency
// bound and results kept in source-list order. A failed per-book query
// degrades that book to all-Missing and counts as a failure in the
// summary. The report cache is replaced wholesale or not at all.
func (s *Service) Reconcile(ctx context.Context, username string, opts Options) (*Report, error) {
	started := time.Now()

	list, err := s.source.Books(ctx, username, opts.ForceRefresh)
	if err != nil {
		return nil, err
	}

	books := list.Books
	if opts.MaxBooks > 0 && len(books) > opts.MaxBooks {
		books = books[:opts.MaxBooks]
	}

	formats := opts.formats()

	entry, fromCache, err := s.store.Fetch(ctx, username, cache.KindReconciliation, s.ttl, opts.ForceRefresh,
		func(ctx context.Context) (any, error) {
			return s.assemble(ctx, books, formats)
		})
	if err != nil {
		return nil, err
	}

	var snap snapshot
	if derr := entry.Decode(&snap); derr != nil {
		return nil, derr
	}

	results := snap.Results
	if opts.MaxBooks > 0 && len(results) > opts.MaxBooks {
		results = results[:opts.MaxBooks]
	}

	report := &Report{
		Username:    username,
		FetchedAt:   entry.FetchedAt,
		Cached:      fromCache,
		SourceStale: list.Stale,
		Results:     results,
		Summary:     summarize(results),
	}

	if !fromCache {
		s.record(ctx, username, opts, report, time.Since(started))
	}

	return report, nil
}

// assemble runs the per-book match pass. Cancellation aborts the pass
// before anything is cached.
func (s *Service) assemble(ctx context.Context, books []storygraph.Book, formats []library.Format) (*snapshot, error) {
	results := make([]MatchResult, len(books))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, book := range books {
		i, book := i, book
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			candidates, err := s.library.SearchCandidates(gctx, book.Title, book.Author)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				s.logger.Warn("Candidate query failed, degrading item",
					zap.String("title", book.Title),
					zap.String("author", book.Author),
					zap.Error(err),
				)
				results[i] = missingResult(book, formats)
				return nil
			}

			results[i] = Match(book, candidates, formats)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &snapshot{Results: results}, nil
}

func summarize(results []MatchResult) Summary {
	matched, failures := 0, 0
	for _, r := range results {
		if len(r.LibraryMatches) > 0 {
			matched++
		}
		if r.QueryFailed {
			failures++
		}
	}
	return Summary{Total: len(results), Matched: matched, Failures: failures}
}

func (s *Service) record(ctx context.Context, username string, opts Options, report *Report, elapsed time.Duration) {
	if s.history == nil {
		return
	}

	trigger := opts.Trigger
	if trigger == "" {
		trigger = "api"
	}

	rec := &RunRecord{
		Username:   username,
		Trigger:    trigger,
		Total:      report.Summary.Total,
		Matched:    report.Summary.Matched,
		Failures:   report.Summary.Failures,
		DurationMS: elapsed.Milliseconds(),
	}
	if err := s.history.Record(ctx, rec); err != nil {
		s.logger.Warn("Failed to record reconciliation run",
			zap.String("username", username),
			zap.Error(err),
		)
	}
}

// History returns the recent run records for username. It returns nil
// when no history repository is configured.
func (s *Service) History(ctx context.Context, username string, limit int) ([]RunRecord, error) {
	if s.history == nil {
		return nil, ErrHistoryDisabled
	}
	return s.history.Recent(ctx, username, limit)
}
