// Package dom implements the in-memory tree of a rich document: typed nodes
// with stable identities kept in a per-document arena, positions and ranges
// addressing sibling content, and transactional structural edits. Everything
// the code block toggle touches lives here.
package dom

import (
	"maps"
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NodeType tags every node in the document tree.
type NodeType string

const (
	NodeRoot       NodeType = "root"
	NodeParagraph  NodeType = "paragraph"
	NodeHeading    NodeType = "heading"
	NodeBlockquote NodeType = "blockquote"
	NodeCodeBlock  NodeType = "codeBlock"
	NodeText       NodeType = "text"
)

// IsBlock reports whether the type is a paragraph-equivalent content unit,
// i.e. something a selection can target and a code block can hold.
func (t NodeType) IsBlock() bool {
	switch t {
	case NodeParagraph, NodeHeading, NodeBlockquote:
		return true
	}
	return false
}

// Node is a single element of the document tree. Nodes are created and owned
// by their Document; the parent link is structural and non-owning. Structural
// changes go through a transaction (Tx), never through the Node itself.
type Node struct {
	id       string
	typ      NodeType
	parent   *Node
	children []*Node
	attrs    map[string]string
	text     string // payload of NodeText leaves, empty otherwise
}

func (n *Node) ID() string     { return n.id }
func (n *Node) Type() NodeType { return n.typ }
func (n *Node) Parent() *Node  { return n.parent }
func (n *Node) Text() string   { return n.text }

func (n *Node) ChildCount() int { return len(n.children) }

// Child returns the i-th child or nil when out of bounds.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Children returns a copy of the child list. Mutating the returned slice
// does not affect the tree.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// Index returns the node's offset among its parent's children, or -1 for a
// node without a parent.
func (n *Node) Index() int {
	if n.parent == nil {
		return -1
	}
	return slices.Index(n.parent.children, n)
}

func (n *Node) NextSibling() *Node {
	if i := n.Index(); i >= 0 {
		return n.parent.Child(i + 1)
	}
	return nil
}

func (n *Node) PrevSibling() *Node {
	if i := n.Index(); i >= 0 {
		return n.parent.Child(i - 1)
	}
	return nil
}

func (n *Node) Attr(name string) string { return n.attrs[name] }

// Attrs returns a copy of the attribute map, nil when there are none.
func (n *Node) Attrs() map[string]string {
	if len(n.attrs) == 0 {
		return nil
	}
	return maps.Clone(n.attrs)
}

// SameShape reports whether two nodes have equal type and attributes. Merge
// candidates must be same-shaped.
func (n *Node) SameShape(other *Node) bool {
	return n != nil && other != nil && n.typ == other.typ && maps.Equal(n.attrs, other.attrs)
}

// isAncestorOf reports whether n is a (transitive) ancestor of other.
func (n *Node) isAncestorOf(other *Node) bool {
	for p := other.parent; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

// Document owns a node tree and the id→node arena used to resolve stable
// node identities back to live nodes after mutations.
type Document struct {
	root  *Node
	nodes map[string]*Node
	log   *zap.Logger
}

// NewDocument creates an empty document holding only a root node.
func NewDocument(log *zap.Logger) *Document {
	if log == nil {
		log = zap.NewNop()
	}
	d := &Document{
		nodes: make(map[string]*Node),
		log:   log,
	}
	d.root = d.newNode(NodeRoot, nil)
	return d
}

func (d *Document) Root() *Node { return d.root }

// NodeByID resolves a stable node identifier to the live node, nil when the
// node no longer exists.
func (d *Document) NodeByID(id string) *Node { return d.nodes[id] }

// BlockByAttr finds the first block node (document order) whose attribute
// matches the given value. Used to address blocks by user-visible ids.
func (d *Document) BlockByAttr(name, value string) *Node {
	var found *Node
	d.Walk(func(n *Node) bool {
		if found == nil && n.typ.IsBlock() && n.attrs[name] == value {
			found = n
		}
		return found == nil
	})
	return found
}

// Walk visits every node depth-first in document order. The visitor returns
// false to stop descending into the current node's children.
func (d *Document) Walk(visit func(*Node) bool) {
	walk(d.root, visit)
}

func walk(n *Node, visit func(*Node) bool) {
	if !visit(n) {
		return
	}
	for _, c := range n.children {
		walk(c, visit)
	}
}

// newNode creates a node and registers it in the arena.
func (d *Document) newNode(typ NodeType, attrs map[string]string) *Node {
	n := &Node{
		id:  uuid.NewString(),
		typ: typ,
	}
	if len(attrs) > 0 {
		n.attrs = maps.Clone(attrs)
	}
	d.nodes[n.id] = n
	return n
}

// release removes a node from the arena. Its children must have been
// relocated already.
func (d *Document) release(n *Node) {
	delete(d.nodes, n.id)
	n.parent = nil
	n.children = nil
}

// AppendBlock creates a new block node and appends it to parent. This is the
// document construction path (parsing, tests); structural edits on existing
// content go through Change.
func (d *Document) AppendBlock(parent *Node, typ NodeType, attrs map[string]string) *Node {
	n := d.newNode(typ, attrs)
	n.parent = parent
	parent.children = append(parent.children, n)
	return n
}

// AppendText creates a text leaf under parent.
func (d *Document) AppendText(parent *Node, text string) *Node {
	n := d.newNode(NodeText, nil)
	n.text = text
	n.parent = parent
	parent.children = append(parent.children, n)
	return n
}
