package normalize_test

import (
	"testing"

	"storygrabber/core/normalize"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Lowercases", "DUNE", "dune"},
		{"Strips punctuation", "The Left Hand of Darkness!", "the left hand of darkness"},
		{"Punctuation separates words", "don't", "don t"},
		{"Collapses whitespace", "  A   Memory\tCalled  Empire ", "a memory called empire"},
		{"Digits kept", "Fahrenheit 451", "fahrenheit 451"},
		{"Only punctuation", "?!...", ""},
		{"Empty", "", ""},
		{"Diacritics fold to separators", "Ã", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize.Text(tt.input))

			// Normalizing an already-normalized value changes nothing.
			assert.Equal(t, tt.want, normalize.Text(normalize.Text(tt.input)))
		})
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t, "dune|frank herbert", normalize.Key("Dune!", "  Frank   Herbert"))
	assert.Equal(t, normalize.Key("The Fifth Season", "N. K. Jemisin"),
		normalize.Key("the fifth season!", "n k jemisin"))
	assert.Equal(t, "|", normalize.Key("", ""))
}

func TestEqual(t *testing.T) {
	assert.True(t, normalize.Equal("Dune!", "  dune"))
	assert.True(t, normalize.Equal("Frank Herbert", "frank herbert"))
	assert.False(t, normalize.Equal("Dune", "Dune Messiah"))

	// Two empty values carry nothing to compare.
	assert.False(t, normalize.Equal("", ""))
	assert.False(t, normalize.Equal("?!", "..."))
}
