package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLexicalScore(t *testing.T) {
	t.Run("exact token match", func(t *testing.T) {
		got := lexicalScore([]string{"car"}, []string{"big", "car"})
		assert.InDelta(t, 1.0, got, 1e-9)
	})

	t.Run("partial token coverage is soft-minimized", func(t *testing.T) {
		// One query token matches exactly, the other not at all:
		// ((0^4 + 1^4) / 2)^(1/4) ~= 0.84.
		got := lexicalScore([]string{"big", "car"}, []string{"car"})
		assert.InDelta(t, 0.84, got, 0.005)
	})

	t.Run("word order does not matter", func(t *testing.T) {
		a := lexicalScore([]string{"klorid", "metyl"}, []string{"methyl", "chloride"})
		b := lexicalScore([]string{"metyl", "klorid"}, []string{"methyl", "chloride"})
		assert.InDelta(t, a, b, 1e-9)
		assert.InDelta(t, 0.9, a, 0.01)
	})

	t.Run("prefix match", func(t *testing.T) {
		got := lexicalScore([]string{"chlo"}, []string{"methyl", "chloride"})
		assert.InDelta(t, 0.9, got, 0.005)
	})

	t.Run("no tokens", func(t *testing.T) {
		assert.Zero(t, lexicalScore(nil, []string{"car"}))
		assert.Zero(t, lexicalScore([]string{"car"}, nil))
	})
}

func TestCosineSimilarity(t *testing.T) {
	t.Run("identical vectors", func(t *testing.T) {
		v := []float32{0.5, 0.25, 0.8}
		assert.InDelta(t, 1.0, cosineSimilarity(v, v), 1e-6)
	})

	t.Run("orthogonal vectors", func(t *testing.T) {
		a := []float32{1, 0}
		b := []float32{0, 1}
		assert.InDelta(t, 0.0, cosineSimilarity(a, b), 1e-9)
	})

	t.Run("opposite vectors", func(t *testing.T) {
		a := []float32{1, 0}
		b := []float32{-1, 0}
		assert.InDelta(t, -1.0, cosineSimilarity(a, b), 1e-6)
	})

	t.Run("mismatched lengths", func(t *testing.T) {
		assert.Zero(t, cosineSimilarity([]float32{1, 2}, []float32{1, 2, 3}))
	})

	t.Run("zero vector", func(t *testing.T) {
		assert.Zero(t, cosineSimilarity([]float32{0, 0}, []float32{1, 2}))
	})
}
