package library

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Format is a book medium tracked by the library manager.
type Format string

const (
	FormatEBook     Format = "eBook"
	FormatAudioBook Format = "AudioBook"
)

// AllFormats lists the supported formats in display order.
var AllFormats = []Format{FormatEBook, FormatAudioBook}

// ParseFormat folds the manager's format spellings into a Format.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ebook", "book", "":
		return FormatEBook, true
	case "audiobook", "audio":
		return FormatAudioBook, true
	default:
		return "", false
	}
}

// FormatState is the manager's view of one format of a candidate.
type FormatState struct {
	// Present reports whether the manager holds a file for this format.
	Present bool `json:"present"`
	// StatusText is the manager's raw status string, unmodified.
	StatusText string `json:"status_text"`
	// LibraryLabel is the manager's raw library field. For held books
	// this is typically the date the file was added.
	LibraryLabel string `json:"library_label"`
}

// Timestamps in the library field are bookkeeping, not something a
// person should read as a shelf label.
var isoLabelPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}([T ].*)?$`)

// DisplayLabel returns the library label for human-facing output,
// suppressing ISO-8601 looking values. The raw value stays on the
// record.
func (s FormatState) DisplayLabel() string {
	label := strings.TrimSpace(s.LibraryLabel)
	if isoLabelPattern.MatchString(label) {
		return ""
	}
	return label
}

// MarshalJSON adds the display form of the library label alongside the
// raw fields, so API consumers never render bookkeeping timestamps.
func (s FormatState) MarshalJSON() ([]byte, error) {
	type plain FormatState
	return json.Marshal(struct {
		plain
		DisplayLabel string `json:"display_label,omitempty"`
	}{plain(s), s.DisplayLabel()})
}

// Candidate is one library-manager book record, with the manager's
// inconsistent field spellings already folded into a single shape.
type Candidate struct {
	ID      string                 `json:"id"`
	Title   string                 `json:"title"`
	Author  string                 `json:"author"`
	Formats map[Format]FormatState `json:"formats"`
}
