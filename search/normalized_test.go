package search

import (
	"context"
	"testing"

	"github.com/poiesic/taxonomist/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	t.Run("single match", func(t *testing.T) {
		ns := NewNormalizedSearcher(context.Background(), []*core.Node{
			{Id: "1", Name: "a"},
			{Id: "2", Name: "b"},
		}, nil)

		node, err := ns.Lookup("2")
		require.NoError(t, err)
		assert.Equal(t, "b", node.Name)
	})

	t.Run("unknown id", func(t *testing.T) {
		ns := NewNormalizedSearcher(context.Background(), []*core.Node{{Id: "1", Name: "a"}}, nil)

		_, err := ns.Lookup("99")
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("legacy uncategorized collision", func(t *testing.T) {
		ns := NewNormalizedSearcher(context.Background(), []*core.Node{
			{Id: "0", Name: "Uncategorized"},
			{Id: "0", Name: "Everything else"},
		}, nil)

		node, err := ns.Lookup("0")
		require.NoError(t, err)
		assert.Equal(t, "Uncategorized", node.Name)
	})

	t.Run("any other collision is fatal", func(t *testing.T) {
		ns := NewNormalizedSearcher(context.Background(), []*core.Node{
			{Id: "0", Name: "Everything else"},
			{Id: "0", Name: "Uncategorized"},
		}, nil)

		_, err := ns.Lookup("0")
		assert.ErrorIs(t, err, core.ErrAmbiguousId)
	})
}

func TestNormalizedSearchSingleResult(t *testing.T) {
	ctx := context.Background()
	ns := NewNormalizedSearcher(ctx, []*core.Node{
		{Id: "1", Name: "a"},
		{Id: "2", Name: "b", Metadata: map[string]any{"unitDividers": []any{"kg"}}},
		{Id: "3", Name: "c"},
	}, nil)

	matches, err := ns.Search(ctx, "b", DefaultMaxResults, DefaultThreshold)
	require.NoError(t, err)
	require.Len(t, matches, 1)

	// A single-result batch is not rescaled, only rounded.
	assert.Equal(t, core.Match{
		Score:    0.97,
		Id:       "2",
		Name:     "b",
		Metadata: map[string]any{"unitDividers": []any{"kg"}},
	}, matches[0])
}

func TestNormalizedSearchRescalesBatch(t *testing.T) {
	ctx := context.Background()
	docs := []*core.Node{
		{Id: "car", Name: "car"},
		{Id: "small car", Name: "small car"},
		{Id: "medium car", Name: "medium car"},
		{Id: "big car", Name: "big car"},
	}
	ns := NewNormalizedSearcher(ctx, docs, nil)

	matches, err := ns.Search(ctx, "car", DefaultMaxResults, DefaultThreshold)
	require.NoError(t, err)
	require.Len(t, matches, 4)

	// Raw scores 0.94, 0.88, 0.85, 0.85 min-max rescaled across the batch.
	wantNames := []string{"car", "big car", "medium car", "small car"}
	wantScores := []float64{1.0, 0.333, 0.0, 0.0}
	for i, m := range matches {
		assert.Equal(t, wantNames[i], m.Name)
		assert.InDelta(t, wantScores[i], m.Score, 0.001)
		assert.GreaterOrEqual(t, m.Score, 0.0)
		assert.LessOrEqual(t, m.Score, 1.0)
	}
}

func TestNormalizedSearchReturnsOriginalNames(t *testing.T) {
	ctx := context.Background()
	ns := NewNormalizedSearcher(ctx, []*core.Node{
		{Id: "1", Name: "Crude Öil"},
	}, nil)

	matches, err := ns.Search(ctx, "crude oil", DefaultMaxResults, 0.5)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	// The searcher indexes the normalized form, but results carry the
	// original record.
	assert.Equal(t, "Crude Öil", matches[0].Name)
}

func TestNormalizedSearchEmptyQuery(t *testing.T) {
	ctx := context.Background()
	ns := NewNormalizedSearcher(ctx, []*core.Node{{Id: "1", Name: "a"}}, nil)

	matches, err := ns.Search(ctx, "", DefaultMaxResults, DefaultThreshold)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestRescale(t *testing.T) {
	t.Run("spreads to unit interval", func(t *testing.T) {
		scores := []float64{0.94, 0.88, 0.85}
		rescale(scores)
		assert.InDelta(t, 1.0, scores[0], 1e-9)
		assert.InDelta(t, 0.3333, scores[1], 1e-3)
		assert.InDelta(t, 0.0, scores[2], 1e-9)
	})

	t.Run("all equal left unchanged", func(t *testing.T) {
		scores := []float64{0.9, 0.9}
		rescale(scores)
		assert.Equal(t, []float64{0.9, 0.9}, scores)
	})

	t.Run("single value left unchanged", func(t *testing.T) {
		scores := []float64{0.97}
		rescale(scores)
		assert.Equal(t, []float64{0.97}, scores)
	})

	t.Run("empty", func(t *testing.T) {
		rescale(nil)
	})
}
