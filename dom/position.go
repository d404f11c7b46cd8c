package dom

import (
	"fmt"
)

// Position addresses a gap between children of a node: (parent, offset) where
// offset 0 is before the first child and offset == ChildCount() is after the
// last one. Positions are value types; they stay meaningful only as long as
// the parent's child list is not edited, so callers re-derive them from node
// identities immediately before each edit.
type Position struct {
	parent *Node
	offset int
}

// NewPosition builds a position inside parent, clamping the offset into the
// valid range.
func NewPosition(parent *Node, offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(parent.children) {
		offset = len(parent.children)
	}
	return Position{parent: parent, offset: offset}
}

// Before returns the position immediately in front of n.
func Before(n *Node) Position {
	return Position{parent: n.parent, offset: n.Index()}
}

// After returns the position immediately behind n.
func After(n *Node) Position {
	return Position{parent: n.parent, offset: n.Index() + 1}
}

// StartOf returns the position at the start of n's content.
func StartOf(n *Node) Position {
	return Position{parent: n, offset: 0}
}

// EndOf returns the position at the end of n's content.
func EndOf(n *Node) Position {
	return Position{parent: n, offset: len(n.children)}
}

func (p Position) Parent() *Node { return p.parent }
func (p Position) Offset() int   { return p.offset }

// IsAtStart reports whether the position precedes all of its parent's content.
func (p Position) IsAtStart() bool { return p.offset == 0 }

// IsAtEnd reports whether the position follows all of its parent's content.
func (p Position) IsAtEnd() bool { return p.offset == len(p.parent.children) }

// NodeBefore returns the child directly in front of the position, nil at start.
func (p Position) NodeBefore() *Node { return p.parent.Child(p.offset - 1) }

// NodeAfter returns the child directly behind the position, nil at end.
func (p Position) NodeAfter() *Node { return p.parent.Child(p.offset) }

// path returns child offsets from the document root down to the position. A
// position anchored on a detached node yields the offsets from the detached
// subtree's top, so ordering such positions stays panic-free.
func (p Position) path() []int {
	var rev []int
	for n := p.parent; n != nil && n.parent != nil; n = n.parent {
		rev = append(rev, n.Index())
	}
	path := make([]int, 0, len(rev)+1)
	for i := len(rev) - 1; i >= 0; i-- {
		path = append(path, rev[i])
	}
	return append(path, p.offset)
}

// Compare orders two positions of the same document: -1 when p precedes o,
// 0 when equal, 1 when p follows o.
func (p Position) Compare(o Position) int {
	a, b := p.path(), o.path()
	for i := 0; i < len(a) && i < len(b); i++ {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	// shared prefix: the shallower position wraps the deeper one and comes first
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// Range is an ordered pair of positions sharing a parent, covering a
// contiguous span of sibling content.
type Range struct {
	Start Position
	End   Position
}

// NewRange validates that both positions live in the same parent and are
// ordered.
func NewRange(start, end Position) (Range, error) {
	if start.parent != end.parent {
		return Range{}, fmt.Errorf("range endpoints have different parents")
	}
	if start.offset > end.offset {
		return Range{}, fmt.Errorf("range start %d is after end %d", start.offset, end.offset)
	}
	return Range{Start: start, End: end}, nil
}

// RangeOn covers exactly one node.
func RangeOn(n *Node) Range {
	return Range{Start: Before(n), End: After(n)}
}

// RangeOver covers the sibling run from first to last inclusive.
func RangeOver(first, last *Node) (Range, error) {
	if first.parent == nil || first.parent != last.parent {
		return Range{}, fmt.Errorf("range anchors are not siblings")
	}
	return NewRange(Before(first), After(last))
}

// Parent returns the node whose children the range spans.
func (r Range) Parent() *Node { return r.Start.parent }

// IsEmpty reports whether the range covers no content.
func (r Range) IsEmpty() bool { return r.Start.offset == r.End.offset }

// Nodes returns the children covered by the range, in document order.
func (r Range) Nodes() []*Node {
	covered := make([]*Node, 0, r.End.offset-r.Start.offset)
	for i := r.Start.offset; i < r.End.offset; i++ {
		covered = append(covered, r.Start.parent.children[i])
	}
	return covered
}

// contains reports whether pos falls strictly inside the range (same parent,
// between its endpoints) or inside any node the range covers.
func (r Range) contains(pos Position) bool {
	if pos.parent == r.Start.parent {
		return pos.offset > r.Start.offset && pos.offset < r.End.offset
	}
	for _, n := range r.Nodes() {
		if n == pos.parent || n.isAncestorOf(pos.parent) {
			return true
		}
	}
	return false
}
