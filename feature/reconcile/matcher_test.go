package reconcile

import (
	"encoding/json"
	"testing"

	"storygrabber/feature/library"
	"storygrabber/feature/storygraph"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ebookState(present bool, status string) map[library.Format]library.FormatState {
	return map[library.Format]library.FormatState{
		library.FormatEBook: {Present: present, StatusText: status},
	}
}

func TestMatch_ExactTitleAndStatusDerivation(t *testing.T) {
	// Matching is case-insensitive on the normalized title; a wanted
	// ebook and a held audiobook produce different verdicts per format.
	book := storygraph.Book{Title: "Dune", Author: "Frank Herbert"}
	candidate := library.Candidate{
		ID:     "1",
		Title:  "dune",
		Author: "Frank Herbert",
		Formats: map[library.Format]library.FormatState{
			library.FormatEBook:     {Present: false, StatusText: "Wanted"},
			library.FormatAudioBook: {Present: true, StatusText: ""},
		},
	}

	result := Match(book, []library.Candidate{candidate}, library.AllFormats)

	require.Len(t, result.LibraryMatches, 1)
	assert.Equal(t, StatusWanted, result.Statuses[library.FormatEBook])
	assert.Equal(t, StatusHave, result.Statuses[library.FormatAudioBook])
}

func TestMatch_NoCandidates(t *testing.T) {
	book := storygraph.Book{Title: "X", Author: "Y"}

	result := Match(book, nil, library.AllFormats)

	assert.Empty(t, result.LibraryMatches)
	assert.Equal(t, StatusMissing, result.Statuses[library.FormatEBook])
	assert.Equal(t, StatusMissing, result.Statuses[library.FormatAudioBook])
}

func TestMatch_UnmatchedSerializesEmptyMatches(t *testing.T) {
	// Unmatched and degraded results alike must put an empty array, not
	// null, on the wire.
	result := Match(storygraph.Book{Title: "X", Author: "Y"}, nil, library.AllFormats)

	body, err := json.Marshal(result)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"library_matches":[]`)
}

func TestMatch_AuthorOnlyMatch(t *testing.T) {
	book := storygraph.Book{Title: "Children of Dune", Author: "Frank Herbert"}
	candidate := library.Candidate{ID: "1", Title: "Dune", Author: "frank herbert", Formats: ebookState(true, "")}

	result := Match(book, []library.Candidate{candidate}, []library.Format{library.FormatEBook})

	require.Len(t, result.LibraryMatches, 1)
	assert.Equal(t, StatusHave, result.Statuses[library.FormatEBook])
}

func TestMatch_EmptyFieldsNeverMatch(t *testing.T) {
	book := storygraph.Book{Title: "", Author: ""}
	candidates := []library.Candidate{
		{ID: "1", Title: "Dune", Author: "Frank Herbert", Formats: ebookState(true, "Open")},
		{ID: "2", Title: "", Author: "", Formats: ebookState(true, "Open")},
	}

	result := Match(book, candidates, library.AllFormats)

	assert.Empty(t, result.LibraryMatches)
	assert.Equal(t, StatusMissing, result.Statuses[library.FormatEBook])
	assert.Equal(t, StatusMissing, result.Statuses[library.FormatAudioBook])
}

func TestMatch_PunctuationInsensitive(t *testing.T) {
	book := storygraph.Book{Title: "The Left Hand of Darkness!", Author: "Ursula K. Le Guin"}
	candidate := library.Candidate{ID: "1", Title: "the left hand of darkness", Formats: ebookState(true, "")}

	result := Match(book, []library.Candidate{candidate}, []library.Format{library.FormatEBook})
	assert.Len(t, result.LibraryMatches, 1)
}

func TestMatch_PreservesCandidateOrder(t *testing.T) {
	book := storygraph.Book{Title: "Dune", Author: "Frank Herbert"}
	candidates := []library.Candidate{
		{ID: "b", Title: "Dune", Formats: ebookState(false, "")},
		{ID: "a", Title: "Dune", Formats: ebookState(false, "")},
		{ID: "c", Title: "Other", Author: "Frank Herbert", Formats: ebookState(false, "")},
	}

	result := Match(book, candidates, library.AllFormats)

	require.Len(t, result.LibraryMatches, 3)
	assert.Equal(t, "b", result.LibraryMatches[0].ID)
	assert.Equal(t, "a", result.LibraryMatches[1].ID)
	assert.Equal(t, "c", result.LibraryMatches[2].ID)
}

func TestMatch_VerdictOrderIndependent(t *testing.T) {
	book := storygraph.Book{Title: "Dune", Author: "Frank Herbert"}
	wanted := library.Candidate{ID: "1", Title: "Dune", Formats: ebookState(false, "Wanted")}
	held := library.Candidate{ID: "2", Title: "Dune", Formats: ebookState(true, "")}

	forward := Match(book, []library.Candidate{wanted, held}, []library.Format{library.FormatEBook})
	reversed := Match(book, []library.Candidate{held, wanted}, []library.Format{library.FormatEBook})

	assert.Equal(t, forward.Statuses, reversed.Statuses)
	assert.Equal(t, StatusHave, forward.Statuses[library.FormatEBook])
}

func TestClassifyState(t *testing.T) {
	tests := []struct {
		name    string
		present bool
		text    string
		want    Status
	}{
		{"Wanted text", false, "Wanted", StatusWanted},
		{"Missing text maps to wanted", false, "Missing", StatusWanted},
		{"Skipped", false, "Skipped", StatusSkipped},
		{"Ignored", false, "Ignored", StatusIgnored},
		{"Available", false, "Available", StatusHave},
		{"In library", false, "In Library", StatusHave},
		{"Have", false, "I have this", StatusHave},
		{"Present beats unknown text", true, "Processing", StatusHave},
		{"Unknown text without file", false, "Processing", StatusMissing},
		{"Rule order, want before skip", false, "want to skip", StatusWanted},
		{"Case-insensitive", false, "WANTED", StatusWanted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := library.FormatState{Present: tt.present, StatusText: tt.text}
			assert.Equal(t, tt.want, classifyState(state))
		})
	}
}

func TestStatusForFormat_UntrackedFormat(t *testing.T) {
	// A match whose audiobook side has neither a file nor status text
	// says nothing about the audiobook.
	book := storygraph.Book{Title: "Dune"}
	candidate := library.Candidate{ID: "1", Title: "Dune", Formats: ebookState(true, "Open")}

	result := Match(book, []library.Candidate{candidate}, library.AllFormats)
	assert.Equal(t, StatusMissing, result.Statuses[library.FormatAudioBook])
}
