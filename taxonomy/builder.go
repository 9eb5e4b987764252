package taxonomy

import (
	"fmt"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/poiesic/taxonomist/core"
)

// validate holds the schema contract for raw payloads. Struct-level
// validation only; safe for concurrent use.
var validate = validator.New(validator.WithRequiredStructEnabled())

// BuildTree validates a raw taxonomy payload and assembles its ownership
// tree, returning the ordered root nodes.
//
// The payload is validated against the schema contract before any node is
// processed. Nodes are then attached in list order: a node with an empty
// parent_id becomes a root; a non-empty parent_id must refer to an already
// registered id. Forward references are rejected with
// core.ErrUnknownParent, and repeated ids with core.ErrDuplicateId.
//
// BuildTree is a pure function: identical input yields a structurally
// identical tree, and sibling order preserves input declaration order.
// Nodes without children keep a nil child slice, so rebuilt trees never
// carry an empty "children" marker.
func BuildTree(raw core.RawTaxonomy) ([]*core.Node, error) {
	if err := validate.Struct(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrSchema, err)
	}

	root := &core.Node{}
	registered := make(map[string]*core.Node, len(raw.Nodes))

	for _, item := range raw.Nodes {
		if _, ok := registered[item.Id]; ok {
			return nil, fmt.Errorf("%w: %q", core.ErrDuplicateId, item.Id)
		}

		parent := root
		if item.ParentId != "" {
			p, ok := registered[item.ParentId]
			if !ok {
				return nil, fmt.Errorf("%w: %q; nodes must be declared before they can be used as parents", core.ErrUnknownParent, item.ParentId)
			}
			parent = p
		}

		node := &core.Node{Id: item.Id, Name: item.Name, Metadata: item.Metadata}
		parent.Children = append(parent.Children, node)
		registered[item.Id] = node
	}

	return root.Children, nil
}

// Flatten converts a tree back into the persisted flat node-list format,
// with explicit parent references. Nodes are emitted in breadth-first
// order, so every parent precedes its children and the output feeds
// straight back into BuildTree.
func Flatten(name, version string, tree []*core.Node) core.RawTaxonomy {
	parents := make(map[string]string)
	queue := slices.Clone(tree)
	nodes := make([]core.RawNode, 0, len(tree))

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		rn := core.RawNode{Id: n.Id, Name: n.Name, Metadata: n.Metadata}
		if p, ok := parents[n.Id]; ok {
			rn.ParentId = p
		}
		nodes = append(nodes, rn)

		for _, c := range n.Children {
			queue = append(queue, c)
			parents[c.Id] = n.Id
		}
	}

	return core.RawTaxonomy{Name: name, Version: version, Nodes: nodes}
}
