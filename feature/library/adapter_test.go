package library

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidateFromRecord(t *testing.T) {
	rec := map[string]any{
		"BookID":       "123",
		"BookName":     "Dune",
		"AuthorName":   "Frank Herbert",
		"Status":       "Open",
		"BookLibrary":  "2023-04-01 10:00:00",
		"AudioStatus":  "Skipped",
		"AudioLibrary": "",
	}

	c, ok := candidateFromRecord(rec)
	require.True(t, ok)
	assert.Equal(t, "123", c.ID)
	assert.Equal(t, "Dune", c.Title)
	assert.Equal(t, "Frank Herbert", c.Author)

	ebook := c.Formats[FormatEBook]
	assert.True(t, ebook.Present)
	assert.Equal(t, "Open", ebook.StatusText)
	assert.Equal(t, "2023-04-01 10:00:00", ebook.LibraryLabel)

	audio := c.Formats[FormatAudioBook]
	assert.False(t, audio.Present)
	assert.Equal(t, "Skipped", audio.StatusText)
}

func TestCandidateFromRecord_AlternateCasings(t *testing.T) {
	rec := map[string]any{
		"bookid":      float64(77),
		"book_name":   "Hyperion",
		"author_name": "Dan Simmons",
		"status":      "Wanted",
	}

	c, ok := candidateFromRecord(rec)
	require.True(t, ok)
	assert.Equal(t, "77", c.ID)
	assert.Equal(t, "Hyperion", c.Title)
	assert.Equal(t, "Dan Simmons", c.Author)
	assert.Equal(t, "Wanted", c.Formats[FormatEBook].StatusText)
}

func TestCandidateFromRecord_PreferredKeyWins(t *testing.T) {
	rec := map[string]any{
		"title":    "Preferred",
		"BookName": "Fallback",
		"id":       "x",
	}

	c, ok := candidateFromRecord(rec)
	require.True(t, ok)
	assert.Equal(t, "Preferred", c.Title)
}

func TestCandidateFromRecord_DropsEmptyRecords(t *testing.T) {
	_, ok := candidateFromRecord(map[string]any{"Status": "Open"})
	assert.False(t, ok)
}

func TestFormatState_DisplayLabel(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  string
	}{
		{"Date only", "2023-04-01", ""},
		{"Datetime with space", "2023-04-01 10:00:00", ""},
		{"Datetime with T", "2023-04-01T10:00:00Z", ""},
		{"Shelf name", "Main Shelf", "Main Shelf"},
		{"Empty", "", ""},
		{"Date-ish but not a date", "2023-shelf", "2023-shelf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := FormatState{LibraryLabel: tt.label}
			assert.Equal(t, tt.want, s.DisplayLabel())
		})
	}
}

func TestFormatState_MarshalAddsDisplayLabel(t *testing.T) {
	// The raw label always serializes; the display form is added only
	// when it survives timestamp suppression.
	shelf, err := json.Marshal(FormatState{Present: true, LibraryLabel: "Main Shelf"})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"present": true,
		"status_text": "",
		"library_label": "Main Shelf",
		"display_label": "Main Shelf"
	}`, string(shelf))

	stamped, err := json.Marshal(FormatState{Present: true, LibraryLabel: "2023-04-01 10:00:00"})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"present": true,
		"status_text": "",
		"library_label": "2023-04-01 10:00:00"
	}`, string(stamped))
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		ok   bool
	}{
		{"eBook", FormatEBook, true},
		{"ebook", FormatEBook, true},
		{"", FormatEBook, true},
		{"AudioBook", FormatAudioBook, true},
		{"audio", FormatAudioBook, true},
		{"vinyl", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseFormat(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		if ok {
			assert.Equal(t, tt.want, got, "input %q", tt.in)
		}
	}
}
