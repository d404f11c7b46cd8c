package codeblock

import (
	"fenced/dom"
)

// group is one maximal contiguous run of selected sibling blocks. Groups are
// anchored on node identity, not positions: a range is derived from the
// anchors immediately before each edit, so edits elsewhere in the tree never
// invalidate a pending group.
type group struct {
	first, last *dom.Node
}

// blockRange materializes the group into a range covering its blocks.
func (g group) blockRange() (dom.Range, error) {
	return dom.RangeOver(g.first, g.last)
}

// groupBlocks converts an ordered block list into the minimal list of groups,
// each covering a maximal run of blocks that are also tree-adjacent siblings.
// Single left-to-right scan, O(n): a run is extended while the next input
// block is the tree successor of the current one, otherwise a new run opens.
func groupBlocks(blocks []*dom.Node) []group {
	var groups []group
	for _, b := range blocks {
		if n := len(groups); n > 0 && groups[n-1].last.NextSibling() == b {
			groups[n-1].last = b
			continue
		}
		groups = append(groups, group{first: b, last: b})
	}
	return groups
}
