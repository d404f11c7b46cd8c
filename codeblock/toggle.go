package codeblock

import (
	"fmt"

	"go.uber.org/zap"

	"fenced/dom"
)

// Toggle edit sequencing. Both directions process groups in reverse document
// order: an edit never shifts content that precedes it, which keeps the
// anchors of not-yet-visited groups valid. The wrap direction then runs one
// forward repair pass merging containers that ended up adjacent.

// wrapGroups wraps every group into a code block, reusing an enclosing code
// block when the group already starts inside one, then merges adjacent
// same-shape results. One container reference is recorded per group in
// forward document order, which is the order the merge pass needs.
func wrapGroups(tx *dom.Tx, groups []group, attrs map[string]string, log *zap.Logger) error {
	refs := make([]*dom.Node, len(groups))
	for i := len(groups) - 1; i >= 0; i-- {
		g := groups[i]
		if parent := g.first.Parent(); parent != nil && parent.Type() == dom.NodeCodeBlock {
			// mixed selection: this run is already contained, keep it as-is
			refs[i] = parent
			continue
		}
		r, err := g.blockRange()
		if err != nil {
			return fmt.Errorf("unable to wrap block run: %w", err)
		}
		container, err := tx.Wrap(r, dom.NodeCodeBlock, attrs)
		if err != nil {
			return err
		}
		refs[i] = container
	}
	return mergeAdjacent(tx, refs, log)
}

// mergeAdjacent folds same-shape code blocks touching any of the recorded
// containers, left to right, re-testing adjacency after every fold. Siblings
// that were never part of the selection take part too: a container ending up
// next to a pre-existing equal-attribute code block is folded into it the
// same way. Containers of a different shape (other attributes) are
// deliberately left alone.
func mergeAdjacent(tx *dom.Tx, refs []*dom.Node, log *zap.Logger) error {
	absorbed := make(map[string]bool, len(refs))
	for _, ref := range refs {
		if absorbed[ref.ID()] {
			continue
		}
		if prev := ref.PrevSibling(); prev.SameShape(ref) {
			if err := tx.Merge(dom.After(prev)); err != nil {
				return err
			}
			log.Debug("Merged adjacent code blocks", zap.String("into", prev.ID()))
			absorbed[ref.ID()] = true
			ref = prev
		}
		for next := ref.NextSibling(); next.SameShape(ref); next = ref.NextSibling() {
			if err := tx.Merge(dom.After(ref)); err != nil {
				return err
			}
			log.Debug("Merged adjacent code blocks", zap.String("into", ref.ID()))
			absorbed[next.ID()] = true
		}
	}
	return nil
}

// unwrapGroups removes every group from its enclosing code block, rightmost
// group first.
func unwrapGroups(tx *dom.Tx, groups []group, log *zap.Logger) error {
	for i := len(groups) - 1; i >= 0; i-- {
		if err := unwrapGroup(tx, groups[i], log); err != nil {
			return err
		}
	}
	return nil
}

// unwrapGroup relocates one group out of its container. Four mutually
// exclusive cases, checked from most to least specific - the later cases are
// supersets that would mishandle boundary ranges:
//  1. the group spans the container's full content: unwrap in place;
//  2. it starts at the content start: splice it out before the container;
//  3. it ends at the content end: splice it out after the container;
//  4. interior: split the container after the group, then splice the group
//     out after the truncated left half.
func unwrapGroup(tx *dom.Tx, g group, log *zap.Logger) error {
	container := g.first.Parent()
	if container == nil || container.Type() != dom.NodeCodeBlock {
		return fmt.Errorf("block run is not inside a code block")
	}
	r, err := g.blockRange()
	if err != nil {
		return fmt.Errorf("unable to unwrap block run: %w", err)
	}
	switch {
	case r.Start.IsAtStart() && r.End.IsAtEnd():
		log.Debug("Unwrapping full code block", zap.String("container", container.ID()))
		return tx.Unwrap(container)
	case r.Start.IsAtStart():
		return tx.Move(r, dom.Before(container))
	case r.End.IsAtEnd():
		return tx.Move(r, dom.After(container))
	default:
		if _, err := tx.Split(r.End); err != nil {
			return err
		}
		return tx.Move(r, dom.After(container))
	}
}
