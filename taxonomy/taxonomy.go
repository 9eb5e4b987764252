package taxonomy

import (
	"context"
	"log/slog"

	"github.com/poiesic/taxonomist/ai"
	"github.com/poiesic/taxonomist/core"
	"github.com/poiesic/taxonomist/search"
)

// Taxonomy bundles one named, versioned taxonomy tree with its derived
// search index. Constructed once from a validated payload and never
// mutated; replaced wholesale on reload. Safe for concurrent reads.
type Taxonomy struct {
	Name    string
	Version string
	Tree    []*core.Node

	searcher *search.NormalizedSearcher
}

// Option configures a Taxonomy under construction.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets a custom logger for the taxonomy's search index.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// New builds a Taxonomy from a raw payload: the tree is validated and
// assembled, then flattened in pre-order (children stripped, metadata
// kept) into the search index. A nil embedder disables semantic scoring.
func New(ctx context.Context, raw core.RawTaxonomy, embedder ai.Embedder, opts ...Option) (*Taxonomy, error) {
	o := &options{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}

	tree, err := BuildTree(raw)
	if err != nil {
		return nil, err
	}

	var docs []*core.Node
	for n := range PreOrder(tree) {
		docs = append(docs, n.WithoutChildren())
	}

	return &Taxonomy{
		Name:     raw.Name,
		Version:  raw.Version,
		Tree:     tree,
		searcher: search.NewNormalizedSearcher(ctx, docs, embedder, search.WithLogger(o.logger)),
	}, nil
}

// GetNode looks up a node by id and returns it together with its ancestor
// chain (root first) and its immediate children, both children-stripped.
// The second return value reports whether the node exists.
func (t *Taxonomy) GetNode(id string) (*core.NodeView, bool) {
	node := FindNode(t.Tree, id)
	if node == nil {
		return nil, false
	}

	parents := Ancestors(t.Tree, id)
	// Ancestors runs nearest-first; parents are served root-first.
	for i, j := 0, len(parents)-1; i < j; i, j = i+1, j-1 {
		parents[i], parents[j] = parents[j], parents[i]
	}
	if parents == nil {
		parents = []*core.Node{}
	}

	return &core.NodeView{
		Parents:  parents,
		Node:     node.WithoutChildren(),
		Children: ImmediateChildren(node),
	}, true
}

// GetBranch returns one level of the tree: the root nodes when id is
// empty, otherwise the immediate children of the given node. An unknown
// id yields an empty branch.
func (t *Taxonomy) GetBranch(id string) core.Branch {
	if id == "" {
		roots := make([]*core.Node, len(t.Tree))
		for i, n := range t.Tree {
			roots[i] = n.WithoutChildren()
		}
		return core.Branch{Branch: roots}
	}

	if node := FindNode(t.Tree, id); node != nil {
		return core.Branch{Branch: ImmediateChildren(node)}
	}
	return core.Branch{Branch: []*core.Node{}}
}

// Search runs a ranked free-text query against the taxonomy's index.
func (t *Taxonomy) Search(ctx context.Context, query string, maxResults int) ([]core.Match, error) {
	return t.searcher.Search(ctx, query, maxResults, search.DefaultThreshold)
}

// NodeCount returns the total number of nodes in the tree.
func (t *Taxonomy) NodeCount() int {
	return CountNodes(t.Tree)
}
