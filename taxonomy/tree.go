package taxonomy

import (
	"iter"

	"github.com/poiesic/taxonomist/core"
)

// PreOrder iterates over every node in the forest with a pre-order
// depth-first traversal: each node before its children, siblings in
// declaration order.
func PreOrder(tree []*core.Node) iter.Seq[*core.Node] {
	return func(yield func(*core.Node) bool) {
		preOrder(tree, yield)
	}
}

func preOrder(tree []*core.Node, yield func(*core.Node) bool) bool {
	for _, n := range tree {
		if !yield(n) {
			return false
		}
		if !preOrder(n.Children, yield) {
			return false
		}
	}
	return true
}

// PostOrderWithParent iterates over every node with a post-order
// depth-first traversal, yielding each node together with its direct
// parent (nil for roots).
//
// Post-order guarantees that a node's parent is emitted strictly after the
// node itself within the same pass. Ancestors depends on this invariant to
// collect a full ancestor chain in a single traversal.
func PostOrderWithParent(tree []*core.Node) iter.Seq2[*core.Node, *core.Node] {
	return func(yield func(*core.Node, *core.Node) bool) {
		postOrderWithParent(tree, nil, yield)
	}
}

func postOrderWithParent(tree []*core.Node, parent *core.Node, yield func(*core.Node, *core.Node) bool) bool {
	for _, n := range tree {
		if !postOrderWithParent(n.Children, n, yield) {
			return false
		}
		if !yield(n, parent) {
			return false
		}
	}
	return true
}

// FindNode returns the first node whose id matches, in pre-order, or nil.
// Each call performs a fresh traversal; no lookup index is maintained.
func FindNode(tree []*core.Node, id string) *core.Node {
	for n := range PreOrder(tree) {
		if n.Id == id {
			return n
		}
	}
	return nil
}

// ImmediateChildren returns the node's direct children with their own
// children stripped.
func ImmediateChildren(n *core.Node) []*core.Node {
	children := make([]*core.Node, len(n.Children))
	for i, c := range n.Children {
		children[i] = c.WithoutChildren()
	}
	return children
}

// Ancestors returns a node's ancestors without their children, starting
// from the most immediate ancestor and finishing at the root. Roots and
// unknown ids yield an empty chain.
//
// The chain is collected from a single post-order pass: the walk starts by
// looking for the queried node, and each time the current target is found
// its parent becomes the new target. The first match is the node itself
// and is excluded from the result. Correctness rests on the
// PostOrderWithParent invariant that parents are emitted after their
// descendants.
func Ancestors(tree []*core.Node, id string) []*core.Node {
	var ancestors []*core.Node
	target := id
	for n, parent := range PostOrderWithParent(tree) {
		if n.Id != target {
			continue
		}
		if target != id {
			ancestors = append(ancestors, n.WithoutChildren())
		}
		if parent == nil {
			break
		}
		target = parent.Id
	}
	return ancestors
}

// CountNodes returns the total number of nodes in the forest, children
// included.
func CountNodes(tree []*core.Node) int {
	count := len(tree)
	for _, n := range tree {
		count += CountNodes(n.Children)
	}
	return count
}
