package dom

// Deep copy support for documents. Transactions snapshot the tree before
// mutating it so a failed change can be rolled back without the host ever
// observing a partial commit. Node identities are preserved so the arena
// resolves the same ids before and after a rollback.

import "maps"

type snapshot struct {
	root  *Node
	nodes map[string]*Node
}

// clone creates a deep copy of the document tree and a matching arena.
func (d *Document) clone() snapshot {
	s := snapshot{nodes: make(map[string]*Node, len(d.nodes))}
	s.root = cloneNode(d.root, nil, s.nodes)
	return s
}

func cloneNode(n *Node, parent *Node, arena map[string]*Node) *Node {
	c := &Node{
		id:     n.id,
		typ:    n.typ,
		parent: parent,
		text:   n.text,
	}
	if len(n.attrs) > 0 {
		c.attrs = maps.Clone(n.attrs)
	}
	if len(n.children) > 0 {
		c.children = make([]*Node, len(n.children))
		for i, child := range n.children {
			c.children[i] = cloneNode(child, c, arena)
		}
	}
	arena[c.id] = c
	return c
}
