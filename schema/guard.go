package schema

import (
	"fenced/dom"
)

// Verdict is a single rule's opinion about a candidate block.
type Verdict int

const (
	// Abstain passes the decision to the next rule in the chain.
	Abstain Verdict = iota
	// Allow accepts the block and stops the chain.
	Allow
	// Deny rejects the block and stops the chain.
	Deny
)

// Rule is one pluggable structural constraint. Rules must be pure: they are
// called speculatively before any mutation and must not touch the tree.
type Rule func(s *Schema, block *dom.Node) Verdict

// Guard runs an ordered chain of rules over candidate blocks. The first
// decisive verdict wins; a chain that only abstains allows the block.
type Guard struct {
	schema *Schema
	rules  []Rule
}

// NewGuard builds a guard over the schema with the built-in structural rules
// followed by any extra ones.
func NewGuard(s *Schema, extra ...Rule) *Guard {
	rules := []Rule{denyNestedContainers, denySchemaViolations}
	return &Guard{schema: s, rules: append(rules, extra...)}
}

// CanBeBlocked reports whether block may legally be moved inside a code
// block: a code block must be permitted under the block's current parent and
// the block's type must be permitted inside a code block. Pure - no side
// effects, safe to call before deciding to mutate anything.
func (g *Guard) CanBeBlocked(block *dom.Node) bool {
	for _, rule := range g.rules {
		switch rule(g.schema, block) {
		case Allow:
			return true
		case Deny:
			return false
		}
	}
	return true
}

// denyNestedContainers rejects blocks whose wrapping would place a code block
// inside another code block.
func denyNestedContainers(_ *Schema, block *dom.Node) Verdict {
	for p := block.Parent(); p != nil; p = p.Parent() {
		if p.Type() == dom.NodeCodeBlock {
			return Deny
		}
	}
	return Abstain
}

// denySchemaViolations rejects blocks the allowed-children table cannot
// accommodate on either side of the wrap.
func denySchemaViolations(s *Schema, block *dom.Node) Verdict {
	parent := block.Parent()
	if parent == nil {
		return Deny
	}
	if !s.CanHaveChild(parent.Type(), dom.NodeCodeBlock) {
		return Deny
	}
	if !s.CanHaveChild(dom.NodeCodeBlock, block.Type()) {
		return Deny
	}
	return Abstain
}
