package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// NormalizeString lowers a name into the form used for indexing and
// querying: case-folded, reduced to plain ASCII (characters with no ASCII
// equivalent are dropped), hyphens removed. Normalizing an already
// normalized string is a no-op.
func NormalizeString(s string) string {
	folded := cases.Fold().String(s)

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if r > unicode.MaxASCII || r == '-' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SplitWords tokenizes a normalized name into words, splitting on any
// non-letter character and discarding empty tokens.
func SplitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z')
	})
}

// levelWidth is the number of digits per level in segmented hierarchical
// ids such as "01034056" (levels "01", "03", "40", "56").
const levelWidth = 2

// Levels counts the non-null fixed-width segments of a hierarchical id, a
// proxy for how deep the node sits in a segmented code. A trailing partial
// segment counts when non-null.
func Levels(id string) int {
	count := 0
	for start := 0; start < len(id); start += levelWidth {
		end := min(start+levelWidth, len(id))
		if id[start:end] != "00" {
			count++
		}
	}
	return count
}
