package library

import (
	"context"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SearchResult is one ranked hit of a manual search.
type SearchResult struct {
	Candidate Candidate `json:"candidate"`
	// Distance is the fuzzy match distance; lower is closer. Remote
	// results carry -1 since the provider does its own ranking.
	Distance int `json:"distance"`
}

// Search serves the manual search endpoint. Local searches rank the
// holdings snapshot fuzzily; remote searches go to the manager's
// metadata providers. This ranking never feeds the match verdict, which
// stays exact-match only.
func (s *Service) Search(ctx context.Context, title, author string, remote bool) ([]SearchResult, error) {
	query := strings.TrimSpace(strings.TrimSpace(title) + " " + strings.TrimSpace(author))
	if query == "" {
		return nil, nil
	}

	if remote {
		candidates, err := s.client.FindBook(ctx, query)
		if err != nil {
			return nil, err
		}
		results := make([]SearchResult, 0, len(candidates))
		for _, c := range candidates {
			results = append(results, SearchResult{Candidate: c, Distance: -1})
		}
		return results, nil
	}

	idx, err := s.holdings(ctx)
	if err != nil {
		return nil, err
	}

	targets := make([]string, len(idx.candidates))
	for i, c := range idx.candidates {
		targets[i] = strings.TrimSpace(c.Title + " " + c.Author)
	}

	ranks := fuzzy.RankFindNormalizedFold(query, targets)
	sort.Sort(ranks)

	results := make([]SearchResult, 0, len(ranks))
	for _, r := range ranks {
		results = append(results, SearchResult{
			Candidate: idx.candidates[r.OriginalIndex],
			Distance:  r.Distance,
		})
	}
	return results, nil
}
