package dom

import (
	"fmt"

	"go.uber.org/zap"
)

// Change runs fn inside a single all-or-nothing structural transaction. The
// tree is snapshot before fn runs; when fn returns an error the snapshot is
// restored verbatim (same node identities) and the error is returned
// unchanged. Nested Change calls are not supported - the engine serializes
// all mutations through one transaction at a time.
func (d *Document) Change(fn func(*Tx) error) error {
	snap := d.clone()
	if err := fn(&Tx{doc: d, log: d.log}); err != nil {
		d.root, d.nodes = snap.root, snap.nodes
		d.log.Debug("Transaction rolled back", zap.Error(err))
		return err
	}
	return nil
}

// Tx exposes the atomic structural edit primitives. A Tx is only valid inside
// the Change callback that produced it; every primitive either fully applies
// or returns an error without touching the tree.
type Tx struct {
	doc *Document
	log *zap.Logger
}

// Wrap creates a new container of the given type around the range's content,
// at the range's former position. Returns the new container.
func (tx *Tx) Wrap(r Range, typ NodeType, attrs map[string]string) (*Node, error) {
	parent := r.Parent()
	if parent == nil {
		return nil, fmt.Errorf("wrap: range has no parent")
	}
	container := tx.doc.newNode(typ, attrs)
	content := detach(parent, r.Start.offset, r.End.offset)
	insert(parent, r.Start.offset, container)
	insert(container, 0, content...)
	tx.log.Debug("Wrapped range", zap.String("container", container.id), zap.Int("blocks", len(content)))
	return container, nil
}

// Unwrap removes n, promoting its children to n's former position in n's
// parent. n is destroyed.
func (tx *Tx) Unwrap(n *Node) error {
	parent := n.parent
	if parent == nil {
		return fmt.Errorf("unwrap: node %s has no parent", n.id)
	}
	at := n.Index()
	content := detach(n, 0, len(n.children))
	detach(parent, at, at+1)
	insert(parent, at, content...)
	tx.doc.release(n)
	tx.log.Debug("Unwrapped container", zap.String("container", n.id), zap.Int("blocks", len(content)))
	return nil
}

// Move relocates the range's content to pos, preserving order. pos must not
// lie inside the moved content.
func (tx *Tx) Move(r Range, pos Position) error {
	if r.IsEmpty() {
		return nil
	}
	if r.contains(pos) {
		return fmt.Errorf("move: target position lies inside the moved range")
	}
	src := r.Parent()
	at := pos.offset
	content := detach(src, r.Start.offset, r.End.offset)
	if pos.parent == src && at >= r.End.offset {
		at -= len(content)
	}
	insert(pos.parent, at, content...)
	tx.log.Debug("Moved range", zap.Int("blocks", len(content)))
	return nil
}

// Split divides pos.Parent at the position into two sibling nodes of the same
// type and attributes; the content after pos ends up in the returned right
// half.
func (tx *Tx) Split(pos Position) (*Node, error) {
	left := pos.parent
	if left.parent == nil {
		return nil, fmt.Errorf("split: cannot split the document root")
	}
	right := tx.doc.newNode(left.typ, left.attrs)
	content := detach(left, pos.offset, len(left.children))
	insert(left.parent, left.Index()+1, right)
	insert(right, 0, content...)
	tx.log.Debug("Split container", zap.String("left", left.id), zap.String("right", right.id))
	return right, nil
}

// Merge folds the node after pos into the node before it: the right node's
// children are appended to the left node and the right node is destroyed.
// Both nodes must have the same type and attributes.
func (tx *Tx) Merge(pos Position) error {
	left, right := pos.NodeBefore(), pos.NodeAfter()
	if left == nil || right == nil {
		return fmt.Errorf("merge: position is not between two nodes")
	}
	if !left.SameShape(right) {
		return fmt.Errorf("merge: nodes %s and %s differ in type or attributes", left.id, right.id)
	}
	content := detach(right, 0, len(right.children))
	detach(pos.parent, pos.offset, pos.offset+1)
	insert(left, len(left.children), content...)
	tx.doc.release(right)
	tx.log.Debug("Merged containers", zap.String("left", left.id), zap.String("right", right.id))
	return nil
}

// detach removes children [from, to) of parent and returns them unparented.
func detach(parent *Node, from, to int) []*Node {
	removed := make([]*Node, to-from)
	copy(removed, parent.children[from:to])
	parent.children = append(parent.children[:from], parent.children[to:]...)
	for _, n := range removed {
		n.parent = nil
	}
	return removed
}

// insert splices nodes into parent's children at offset at.
func insert(parent *Node, at int, nodes ...*Node) {
	parent.children = append(parent.children[:at], append(append([]*Node{}, nodes...), parent.children[at:]...)...)
	for _, n := range nodes {
		n.parent = parent
	}
}
