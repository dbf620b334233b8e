package reconcile

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"storygrabber/core/cache"
	"storygrabber/feature/library"
	"storygrabber/feature/storygraph"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	list  *storygraph.BookList
	err   error
	calls int
}

func (s *stubSource) Books(_ context.Context, username string, force bool) (*storygraph.BookList, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.list, nil
}

type stubLibrary struct {
	mu         sync.Mutex
	candidates map[string][]library.Candidate // keyed by title
	failTitle  string
	calls      int
}

func (s *stubLibrary) SearchCandidates(_ context.Context, title, author string) ([]library.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if title == s.failTitle {
		return nil, &library.QueryError{Title: title, Author: author, Err: errors.New("manager down")}
	}
	return s.candidates[title], nil
}

func heldCandidate(id, title, author string) library.Candidate {
	return library.Candidate{
		ID: id, Title: title, Author: author,
		Formats: map[library.Format]library.FormatState{
			library.FormatEBook: {Present: true},
		},
	}
}

func sourceList(titles ...string) *storygraph.BookList {
	books := make([]storygraph.Book, len(titles))
	for i, t := range titles {
		books[i] = storygraph.Book{Title: t, Author: "Author " + t}
	}
	return &storygraph.BookList{Username: "alice", Books: books, FetchedAt: time.Now()}
}

func newTestReconciler(source SourceLister, lib CandidateSearcher) *Service {
	store := cache.NewStore(cache.NewMemoryBackend(0), nil)
	return NewService(source, lib, store, nil, Config{Concurrency: 4, TTLMinutes: 60}, nil)
}

func TestService_ReconcileMatchesAndCaches(t *testing.T) {
	source := &stubSource{list: sourceList("Dune", "Hyperion")}
	lib := &stubLibrary{candidates: map[string][]library.Candidate{
		"Dune": {heldCandidate("1", "Dune", "Author Dune")},
	}}
	svc := newTestReconciler(source, lib)
	ctx := context.Background()

	report, err := svc.Reconcile(ctx, "alice", Options{})
	require.NoError(t, err)
	assert.False(t, report.Cached)
	require.Len(t, report.Results, 2)

	// Source order is preserved.
	assert.Equal(t, "Dune", report.Results[0].Book.Title)
	assert.Equal(t, "Hyperion", report.Results[1].Book.Title)

	assert.Equal(t, StatusHave, report.Results[0].Statuses[library.FormatEBook])
	assert.Equal(t, StatusMissing, report.Results[1].Statuses[library.FormatEBook])
	assert.Equal(t, Summary{Total: 2, Matched: 1, Failures: 0}, report.Summary)

	// Second call is served from cache without new manager queries.
	queriesAfterFirst := lib.calls
	again, err := svc.Reconcile(ctx, "alice", Options{})
	require.NoError(t, err)
	assert.True(t, again.Cached)
	assert.Equal(t, queriesAfterFirst, lib.calls)
	assert.Equal(t, report.Results, again.Results)
}

func TestService_ForceRefreshOverwritesCache(t *testing.T) {
	source := &stubSource{list: sourceList("Dune")}
	lib := &stubLibrary{candidates: map[string][]library.Candidate{}}
	svc := newTestReconciler(source, lib)
	ctx := context.Background()

	report, err := svc.Reconcile(ctx, "alice", Options{})
	require.NoError(t, err)
	assert.Equal(t, StatusMissing, report.Results[0].Statuses[library.FormatEBook])

	// The manager gains the book; a forced refresh must see it.
	lib.mu.Lock()
	lib.candidates["Dune"] = []library.Candidate{heldCandidate("1", "Dune", "Author Dune")}
	lib.mu.Unlock()

	forced, err := svc.Reconcile(ctx, "alice", Options{ForceRefresh: true})
	require.NoError(t, err)
	assert.False(t, forced.Cached)
	assert.Equal(t, StatusHave, forced.Results[0].Statuses[library.FormatEBook])

	// And the overwrite sticks for subsequent cached reads.
	cached, err := svc.Reconcile(ctx, "alice", Options{})
	require.NoError(t, err)
	assert.True(t, cached.Cached)
	assert.Equal(t, StatusHave, cached.Results[0].Statuses[library.FormatEBook])
}

func TestService_SingleItemFailureDegrades(t *testing.T) {
	source := &stubSource{list: sourceList("A", "B", "C", "D", "E")}
	lib := &stubLibrary{
		failTitle: "C",
		candidates: map[string][]library.Candidate{
			"A": {heldCandidate("1", "A", "Author A")},
			"B": {heldCandidate("2", "B", "Author B")},
			"D": {heldCandidate("4", "D", "Author D")},
			"E": {heldCandidate("5", "E", "Author E")},
		},
	}
	svc := newTestReconciler(source, lib)

	report, err := svc.Reconcile(context.Background(), "alice", Options{})
	require.NoError(t, err)
	require.Len(t, report.Results, 5)

	degraded := 0
	for i, r := range report.Results {
		if r.QueryFailed {
			degraded++
			assert.Equal(t, "C", r.Book.Title)
			assert.Empty(t, r.LibraryMatches)
			assert.Equal(t, StatusMissing, r.Statuses[library.FormatEBook])
			assert.Equal(t, StatusMissing, r.Statuses[library.FormatAudioBook])
			assert.Equal(t, 2, i, "source order must hold around the failure")
		} else {
			assert.NotEmpty(t, r.LibraryMatches)
		}
	}
	assert.Equal(t, 1, degraded)
	assert.Equal(t, Summary{Total: 5, Matched: 4, Failures: 1}, report.Summary)
}

func TestService_MaxBooksTruncatesPrefix(t *testing.T) {
	source := &stubSource{list: sourceList("A", "B", "C", "D")}
	lib := &stubLibrary{candidates: map[string][]library.Candidate{}}
	svc := newTestReconciler(source, lib)

	report, err := svc.Reconcile(context.Background(), "alice", Options{MaxBooks: 2})
	require.NoError(t, err)
	require.Len(t, report.Results, 2)
	assert.Equal(t, "A", report.Results[0].Book.Title)
	assert.Equal(t, "B", report.Results[1].Book.Title)
	assert.Equal(t, 2, lib.calls, "truncated books must not be queried")
}

func TestService_CachedPrefixSummarizesServedSlice(t *testing.T) {
	// The failure at index 2 sits outside a 2-book prefix, so a prefix
	// read of the cached report must not count it.
	source := &stubSource{list: sourceList("A", "B", "C")}
	lib := &stubLibrary{
		failTitle:  "C",
		candidates: map[string][]library.Candidate{},
	}
	svc := newTestReconciler(source, lib)
	ctx := context.Background()

	full, err := svc.Reconcile(ctx, "alice", Options{})
	require.NoError(t, err)
	assert.Equal(t, Summary{Total: 3, Matched: 0, Failures: 1}, full.Summary)

	prefix, err := svc.Reconcile(ctx, "alice", Options{MaxBooks: 2})
	require.NoError(t, err)
	assert.True(t, prefix.Cached)
	assert.Equal(t, Summary{Total: 2, Matched: 0, Failures: 0}, prefix.Summary)
}

func TestService_MaxBooksServesCachedPrefix(t *testing.T) {
	source := &stubSource{list: sourceList("A", "B", "C")}
	lib := &stubLibrary{candidates: map[string][]library.Candidate{}}
	svc := newTestReconciler(source, lib)
	ctx := context.Background()

	_, err := svc.Reconcile(ctx, "alice", Options{})
	require.NoError(t, err)

	report, err := svc.Reconcile(ctx, "alice", Options{MaxBooks: 1})
	require.NoError(t, err)
	assert.True(t, report.Cached)
	require.Len(t, report.Results, 1)
	assert.Equal(t, "A", report.Results[0].Book.Title)
}

func TestService_RetrievalFailureIsFatal(t *testing.T) {
	source := &stubSource{err: &storygraph.RetrievalError{
		Username: "alice",
		Reason:   storygraph.ReasonBlocked,
	}}
	svc := newTestReconciler(source, &stubLibrary{})

	_, err := svc.Reconcile(context.Background(), "alice", Options{})
	require.Error(t, err)

	var rerr *storygraph.RetrievalError
	assert.ErrorAs(t, err, &rerr)
}

func TestService_StaleSourceListIsReported(t *testing.T) {
	source := &stubSource{list: &storygraph.BookList{
		Username: "alice",
		Stale:    true,
		Books:    []storygraph.Book{{Title: "Dune", Author: "Frank Herbert"}},
	}}
	svc := newTestReconciler(source, &stubLibrary{candidates: map[string][]library.Candidate{}})

	report, err := svc.Reconcile(context.Background(), "alice", Options{})
	require.NoError(t, err)
	assert.True(t, report.SourceStale)
	assert.Len(t, report.Results, 1)
}

func TestService_CancelledContextWritesNothing(t *testing.T) {
	source := &stubSource{list: sourceList("A", "B")}
	lib := &stubLibrary{candidates: map[string][]library.Candidate{}}
	store := cache.NewStore(cache.NewMemoryBackend(0), nil)
	svc := NewService(source, lib, store, nil, Config{Concurrency: 1, TTLMinutes: 60}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Reconcile(ctx, "alice", Options{})
	require.Error(t, err)

	entry, err := store.Get(context.Background(), "alice", cache.KindReconciliation)
	require.NoError(t, err)
	assert.Nil(t, entry, "a cancelled pass must not write a partial report")
}

func TestScheduler_RunOnce(t *testing.T) {
	source := &stubSource{list: sourceList("Dune")}
	lib := &stubLibrary{candidates: map[string][]library.Candidate{}}
	svc := newTestReconciler(source, lib)

	sched := NewScheduler(svc, SchedulerConfig{Users: "alice, bob", IntervalMinutes: 30}, nil)
	sched.RunOnce(context.Background())

	assert.Equal(t, 2, source.calls, "every configured user gets a pass")
}

func TestSchedulerConfig(t *testing.T) {
	cfg := SchedulerConfig{Users: " alice ,bob,, ", IntervalMinutes: 15}
	assert.Equal(t, []string{"alice", "bob"}, cfg.UserList())
	assert.True(t, cfg.Enabled())

	assert.False(t, SchedulerConfig{Users: "alice"}.Enabled())
	assert.False(t, SchedulerConfig{IntervalMinutes: 10}.Enabled())
}
