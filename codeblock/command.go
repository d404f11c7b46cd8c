// Package codeblock implements the toggle that marks or unmarks ranges of a
// document as preformatted content. The command groups the selection into
// minimal contiguous runs, vets them against the schema guard and performs
// the wrap or unwrap tree edits inside a single document transaction,
// preserving the no-nesting and no-adjacent-duplicates invariants.
package codeblock

import (
	"go.uber.org/zap"

	"fenced/dom"
	"fenced/schema"
)

// LanguageAttr is the attribute carrying the preformatted content language on
// a code block node.
const LanguageAttr = "language"

// Command is the stateful toggle exposed to the host command layer. Value
// and Enabled are derived from the current selection - Refresh recomputes
// them from scratch after every selection change or mutation, nothing is
// cached across invocations.
type Command struct {
	Value   bool
	Enabled bool

	doc      *dom.Document
	guard    *schema.Guard
	sel      *dom.Selection
	language string
	log      *zap.Logger
}

// NewCommand creates the toggle over a document. language is the value new
// code blocks get in their language attribute, empty for none.
func NewCommand(doc *dom.Document, guard *schema.Guard, language string, log *zap.Logger) *Command {
	if log == nil {
		log = zap.NewNop()
	}
	return &Command{doc: doc, guard: guard, language: language, log: log}
}

// SetSelection installs the host's current selection snapshot and refreshes
// the observable state.
func (c *Command) SetSelection(sel *dom.Selection) {
	c.sel = sel
	c.Refresh()
}

// Refresh recomputes Value and Enabled from the current selection. Value is
// true iff the first selected block sits directly inside a code block;
// toggling off is always allowed, toggling on requires the first block to
// pass the guard.
func (c *Command) Refresh() {
	c.Value, c.Enabled = false, false
	if c.sel == nil {
		return
	}
	blocks := c.sel.Blocks()
	if len(blocks) == 0 {
		return
	}
	first := blocks[0]
	c.Value = first.Parent() != nil && first.Parent().Type() == dom.NodeCodeBlock
	if c.Value {
		c.Enabled = true
		return
	}
	c.Enabled = c.guard.CanBeBlocked(first)
}

// Execute performs one full toggle transaction over the current selection
// and refreshes the observable state. Calling it while disabled is a caller
// contract violation and is deliberately a no-op rather than an error that
// would leak into the document. A transaction failure is propagated
// unchanged; the document is rolled back by the transaction itself.
func (c *Command) Execute() error {
	if !c.Enabled {
		c.log.Debug("Toggle requested while disabled, ignoring")
		return nil
	}
	blocks := c.sel.Blocks()

	var err error
	if c.Value {
		err = c.doc.Change(func(tx *dom.Tx) error {
			return unwrapGroups(tx, groupBlocks(containedOnly(blocks)), c.log)
		})
	} else {
		// guard rejections are ordinary filtering, not failures; blocks that
		// already sit inside a code block stay in the set so their container
		// can be reused
		eligible := blocks[:0:0]
		for _, b := range blocks {
			if p := b.Parent(); p != nil && p.Type() == dom.NodeCodeBlock {
				eligible = append(eligible, b)
				continue
			}
			if c.guard.CanBeBlocked(b) {
				eligible = append(eligible, b)
				continue
			}
			c.log.Debug("Block rejected by schema guard", zap.String("block", b.ID()), zap.String("type", string(b.Type())))
		}
		attrs := map[string]string{}
		if c.language != "" {
			attrs[LanguageAttr] = c.language
		}
		err = c.doc.Change(func(tx *dom.Tx) error {
			return wrapGroups(tx, groupBlocks(eligible), attrs, c.log)
		})
	}
	if err != nil {
		return err
	}
	c.Refresh()
	return nil
}

// containedOnly keeps the blocks that actually sit inside a code block; a
// mixed selection may include bare blocks the unwrap direction must skip.
func containedOnly(blocks []*dom.Node) []*dom.Node {
	kept := blocks[:0:0]
	for _, b := range blocks {
		if p := b.Parent(); p != nil && p.Type() == dom.NodeCodeBlock {
			kept = append(kept, b)
		}
	}
	return kept
}
