package core

import "time"

// Node is a single taxonomy entry. Children are exclusively owned by their
// parent; a node with no children carries a nil slice so that serialized
// trees never contain a decorative empty "children" array.
//
// Metadata is an opaque JSON value. Its shape varies by taxonomy and is
// never interpreted by this module; it is carried through search results
// verbatim.
type Node struct {
	Id       string  `json:"id"`
	Name     string  `json:"name"`
	Metadata any     `json:"metadata,omitempty"`
	Children []*Node `json:"children,omitempty"`
}

// WithoutChildren returns a shallow copy of the node with its children
// removed. Callers receive exactly one level of depth.
func (n *Node) WithoutChildren() *Node {
	if n == nil {
		return nil
	}
	return &Node{Id: n.Id, Name: n.Name, Metadata: n.Metadata}
}

// RawNode is a single entry of the flat node list in the persisted taxonomy
// file format. Parents must be declared before any node that references them.
type RawNode struct {
	Id       string `json:"id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	ParentId string `json:"parent_id,omitempty"`
	Metadata any    `json:"metadata,omitempty"`
}

// RawTaxonomy is the persisted taxonomy file format:
//
//	{"name": ..., "version": ..., "nodes": [{"id", "name", "parent_id"?, "metadata"?}, ...]}
//
// The validate tags are the schema contract: a payload missing any required
// field is rejected before any node is processed.
type RawTaxonomy struct {
	Name    string    `json:"name" validate:"required"`
	Version string    `json:"version" validate:"required"`
	Nodes   []RawNode `json:"nodes" validate:"required,dive"`
}

// Match is one search result: the full node record merged with its
// presentation score, rescaled into [0, 1] across the result batch and
// rounded to 3 decimal places.
type Match struct {
	Score    float64 `json:"score"`
	Id       string  `json:"id"`
	Name     string  `json:"name"`
	Metadata any     `json:"metadata,omitempty"`
}

// NodeView is the response shape for a single-node lookup. Parents run from
// the root down to the immediate parent; the node and its children are
// returned without grandchildren.
type NodeView struct {
	Parents  []*Node `json:"parents"`
	Node     *Node   `json:"node"`
	Children []*Node `json:"children"`
}

// Branch is the response shape for a branch listing: either the root nodes
// or the immediate children of a given node, children stripped.
type Branch struct {
	Branch []*Node `json:"branch"`
}

// VersionSet lists the available version strings for one taxonomy name.
type VersionSet struct {
	Versions []string `json:"versions"`
}

// Catalog describes every registered taxonomy and when the registry last
// loaded its data sources.
type Catalog struct {
	LastLoadTime time.Time             `json:"last_load_time"`
	Taxonomies   map[string]VersionSet `json:"taxonomies"`
}
