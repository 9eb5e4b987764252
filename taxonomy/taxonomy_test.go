package taxonomy

import (
	"context"
	"testing"

	"github.com/poiesic/taxonomist/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGenericTaxonomy(t *testing.T) *Taxonomy {
	t.Helper()
	tax, err := New(context.Background(), genericPayload(), nil)
	require.NoError(t, err)
	return tax
}

func TestNew(t *testing.T) {
	tax := newGenericTaxonomy(t)

	assert.Equal(t, "generic", tax.Name)
	assert.Equal(t, "1.2.3", tax.Version)
	assert.Equal(t, 5, tax.NodeCount())
	require.Len(t, tax.Tree, 2)
}

func TestNewInvalidPayload(t *testing.T) {
	_, err := New(context.Background(), core.RawTaxonomy{Name: "broken"}, nil)
	assert.ErrorIs(t, err, core.ErrSchema)
}

func TestGetNode(t *testing.T) {
	tax := newGenericTaxonomy(t)

	t.Run("deep node", func(t *testing.T) {
		view, ok := tax.GetNode("12")
		require.True(t, ok)

		assert.Equal(t, "12", view.Node.Id)
		assert.Nil(t, view.Node.Children)

		// Parents run root-first.
		require.Len(t, view.Parents, 2)
		assert.Equal(t, "0", view.Parents[0].Id)
		assert.Equal(t, "1", view.Parents[1].Id)

		assert.Empty(t, view.Children)
	})

	t.Run("root node", func(t *testing.T) {
		view, ok := tax.GetNode("0")
		require.True(t, ok)
		assert.Empty(t, view.Parents)
		require.Len(t, view.Children, 2)
		assert.Equal(t, "1", view.Children[0].Id)
		assert.Equal(t, "2", view.Children[1].Id)
		assert.Nil(t, view.Children[0].Children)
	})

	t.Run("unknown node", func(t *testing.T) {
		_, ok := tax.GetNode("99")
		assert.False(t, ok)
	})
}

func TestGetBranch(t *testing.T) {
	tax := newGenericTaxonomy(t)

	t.Run("roots", func(t *testing.T) {
		branch := tax.GetBranch("")
		require.Len(t, branch.Branch, 2)
		assert.Equal(t, "0", branch.Branch[0].Id)
		assert.Equal(t, "3", branch.Branch[1].Id)
		assert.Nil(t, branch.Branch[0].Children)
	})

	t.Run("children of a node", func(t *testing.T) {
		branch := tax.GetBranch("0")
		require.Len(t, branch.Branch, 2)
		assert.Equal(t, "1", branch.Branch[0].Id)
		assert.Equal(t, "2", branch.Branch[1].Id)
	})

	t.Run("leaf", func(t *testing.T) {
		assert.Empty(t, tax.GetBranch("12").Branch)
	})

	t.Run("unknown node", func(t *testing.T) {
		assert.Empty(t, tax.GetBranch("99").Branch)
	})
}

func TestTaxonomySearch(t *testing.T) {
	raw := core.RawTaxonomy{
		Name:    "letters",
		Version: "v1",
		Nodes: []core.RawNode{
			{Id: "1", Name: "a"},
			{Id: "2", Name: "b", Metadata: map[string]any{"unitDividers": []any{"kg"}}},
			{Id: "3", Name: "c"},
		},
	}
	tax, err := New(context.Background(), raw, nil)
	require.NoError(t, err)

	matches, err := tax.Search(context.Background(), "b", 20)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "2", matches[0].Id)
	assert.Equal(t, "b", matches[0].Name)
	assert.Equal(t, map[string]any{"unitDividers": []any{"kg"}}, matches[0].Metadata)
}

func TestTaxonomySearchFindsNestedNodes(t *testing.T) {
	tax := newGenericTaxonomy(t)

	// All three "desc" nodes tie on score (equal depth penalty), so the
	// order falls back to name ascending.
	matches, err := tax.Search(context.Background(), "desc", 20)
	require.NoError(t, err)
	require.Len(t, matches, 3)
	assert.Equal(t, "1", matches[0].Id)  // "desc 1"
	assert.Equal(t, "12", matches[1].Id) // "desc 12"
	assert.Equal(t, "2", matches[2].Id)  // "desc 2"
}
