package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"mixed case and diacritics", "AbcéÅäö-- !", "abc !"},
		{"already normalized", "abc !", "abc !"},
		{"hyphens removed", "jaro-winkler", "jarowinkler"},
		{"empty", "", ""},
		{"whitespace kept", "  big car  ", "  big car  "},
		{"digits kept", "top 40", "top 40"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeString(tt.in))
		})
	}
}

func TestNormalizeStringIdempotent(t *testing.T) {
	inputs := []string{"AbcéÅäö-- !", "Methyl Chloride", "uafygwe#;3! (iuf) hui :)"}
	for _, in := range inputs {
		once := NormalizeString(in)
		assert.Equal(t, once, NormalizeString(once))
	}
}

func TestSplitWords(t *testing.T) {
	assert.Equal(t, []string{"uafygwe", "iuf", "hui"}, SplitWords("uafygwe#;3! (iuf) hui :)"))
	assert.Equal(t, []string{"big", "car"}, SplitWords("big car"))
	assert.Empty(t, SplitWords("  !!! 123 "))
	assert.Empty(t, SplitWords(""))
}

func TestLevels(t *testing.T) {
	tests := []struct {
		id   string
		want int
	}{
		{"00000000", 0},
		{"30000000", 1},
		{"12345600", 3},
		{"12005600", 2},
		{"03011502030000", 5},
		{"", 0},
		{"b", 1},
		{"car", 2},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, Levels(tt.id))
		})
	}
}
