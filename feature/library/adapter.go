package library

import "strconv"

// The manager's API is not consistent about field casing: different
// commands (and different manager versions) answer with BookName,
// book_name or title for the same field. All of that is folded into
// Candidate here, at the boundary, so nothing downstream ever sees a
// raw record.

// stringField returns the first non-empty value among the given keys.
func stringField(rec map[string]any, keys ...string) string {
	for _, key := range keys {
		v, ok := rec[key]
		if !ok {
			continue
		}
		switch val := v.(type) {
		case string:
			if val != "" {
				return val
			}
		case float64:
			return strconv.FormatFloat(val, 'f', -1, 64)
		}
	}
	return ""
}

// candidateFromRecord folds one raw manager record into a Candidate.
// Records with neither a title nor an ID are dropped.
func candidateFromRecord(rec map[string]any) (Candidate, bool) {
	title := stringField(rec, "title", "BookName", "book_name")
	id := stringField(rec, "BookID", "bookid", "book_id", "id")
	if title == "" && id == "" {
		return Candidate{}, false
	}

	ebookLibrary := stringField(rec, "BookLibrary", "book_library")
	audioLibrary := stringField(rec, "AudioLibrary", "audio_library")

	return Candidate{
		ID:     id,
		Title:  title,
		Author: stringField(rec, "author", "AuthorName", "author_name", "Author"),
		Formats: map[Format]FormatState{
			FormatEBook: {
				Present:      ebookLibrary != "",
				StatusText:   stringField(rec, "Status", "status"),
				LibraryLabel: ebookLibrary,
			},
			FormatAudioBook: {
				Present:      audioLibrary != "",
				StatusText:   stringField(rec, "AudioStatus", "audio_status"),
				LibraryLabel: audioLibrary,
			},
		},
	}, true
}

func candidatesFromRecords(records []map[string]any) []Candidate {
	candidates := make([]Candidate, 0, len(records))
	for _, rec := range records {
		if c, ok := candidateFromRecord(rec); ok {
			candidates = append(candidates, c)
		}
	}
	return candidates
}
