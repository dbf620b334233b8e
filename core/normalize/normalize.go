// Package normalize canonicalizes book titles and author names so that
// values from different systems can be compared byte-for-byte.
package normalize

import "strings"

// Text lowercases s, folds every character outside [a-z0-9] to a
// space, collapses runs of whitespace and trims the ends. Two values
// naming the same book normalize to the same string regardless of
// casing, punctuation or stray spacing. An empty result means the
// input carried no comparable content.
func Text(s string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	lastSpace := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastSpace = false
		default:
			// Punctuation and whitespace both separate words.
			if !lastSpace && b.Len() > 0 {
				b.WriteByte(' ')
				lastSpace = true
			}
		}
	}

	return strings.TrimRight(b.String(), " ")
}

// Key builds the comparison key identifying a book by its normalized
// title and author. Records whose titles and authors differ only in
// casing, punctuation or spacing share a key.
func Key(title, author string) string {
	return Text(title) + "|" + Text(author)
}

// Equal reports whether a and b normalize to the same non-empty text.
func Equal(a, b string) bool {
	na := Text(a)
	return na != "" && na == Text(b)
}
