package dom

import (
	"fmt"

	"go.uber.org/multierr"
)

// CheckInvariants verifies the structural guarantees every edit must
// preserve and returns all violations at once:
//   - parent links and the arena are consistent with the tree;
//   - no code block is a child of another code block;
//   - no two sibling code blocks of the same shape are directly adjacent;
//   - text leaves carry no children.
//
// It never mutates the document, so it is safe to call between transactions
// (tests and debug runs do).
func CheckInvariants(d *Document) error {
	var err error

	seen := make(map[string]*Node, len(d.nodes))
	d.Walk(func(n *Node) bool {
		if prev, dup := seen[n.id]; dup {
			err = multierr.Append(err, fmt.Errorf("node id %s appears twice in the tree (%s)", n.id, prev.typ))
		}
		seen[n.id] = n

		if d.nodes[n.id] != n {
			err = multierr.Append(err, fmt.Errorf("node %s (%s) is not registered in the arena", n.id, n.typ))
		}
		for i, c := range n.children {
			if c.parent != n {
				err = multierr.Append(err, fmt.Errorf("child %d of node %s has a broken parent link", i, n.id))
			}
		}
		if n.typ == NodeText && len(n.children) > 0 {
			err = multierr.Append(err, fmt.Errorf("text node %s has children", n.id))
		}
		if n.typ == NodeCodeBlock && n.parent != nil && n.parent.typ == NodeCodeBlock {
			err = multierr.Append(err, fmt.Errorf("code block %s is nested inside code block %s", n.id, n.parent.id))
		}
		if n.typ == NodeCodeBlock {
			if next := n.NextSibling(); next != nil && n.SameShape(next) {
				err = multierr.Append(err, fmt.Errorf("adjacent same-shape code blocks %s and %s", n.id, next.id))
			}
		}
		return true
	})

	for id := range d.nodes {
		if _, ok := seen[id]; !ok {
			err = multierr.Append(err, fmt.Errorf("arena holds detached node %s", id))
		}
	}
	return err
}
