package dom

import (
	"slices"
)

// Selection is an ordered, duplicate-free sequence of targeted block nodes
// plus the collapsed flag and last position the host selection model reports.
// It is a read-only snapshot: commands recompute their state from it after
// every selection change and never mutate it.
type Selection struct {
	blocks    []*Node
	collapsed bool
	last      Position
}

// NewSelection normalizes the given blocks into document order with
// duplicates removed.
func NewSelection(blocks []*Node, collapsed bool, last Position) *Selection {
	ordered := slices.Clone(blocks)
	slices.SortStableFunc(ordered, func(a, b *Node) int {
		return Before(a).Compare(Before(b))
	})
	ordered = slices.Compact(ordered)
	return &Selection{blocks: ordered, collapsed: collapsed, last: last}
}

// SelectBlocks is the common case: a selection over the given blocks with the
// last position at the end of the final block.
func SelectBlocks(blocks ...*Node) *Selection {
	var last Position
	if len(blocks) > 0 {
		last = EndOf(blocks[len(blocks)-1])
	}
	return NewSelection(blocks, len(blocks) <= 1, last)
}

// Blocks returns the selected blocks in document order.
func (s *Selection) Blocks() []*Node {
	return slices.Clone(s.blocks)
}

func (s *Selection) IsCollapsed() bool { return s.collapsed }

func (s *Selection) LastPosition() Position { return s.last }
