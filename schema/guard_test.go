package schema

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"fenced/dom"
)

func TestCanHaveChild(t *testing.T) {
	s := Default()

	tests := []struct {
		name   string
		parent dom.NodeType
		child  dom.NodeType
		want   bool
	}{
		{"paragraph_under_root", dom.NodeRoot, dom.NodeParagraph, true},
		{"code_block_under_root", dom.NodeRoot, dom.NodeCodeBlock, true},
		{"code_block_under_blockquote", dom.NodeBlockquote, dom.NodeCodeBlock, false},
		{"code_block_under_code_block", dom.NodeCodeBlock, dom.NodeCodeBlock, false},
		{"paragraph_under_code_block", dom.NodeCodeBlock, dom.NodeParagraph, true},
		{"blockquote_under_code_block", dom.NodeCodeBlock, dom.NodeBlockquote, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.CanHaveChild(tt.parent, tt.child); got != tt.want {
				t.Fatalf("CanHaveChild(%s, %s) = %v, want %v", tt.parent, tt.child, got, tt.want)
			}
		})
	}
}

func TestCanBeBlocked(t *testing.T) {
	log := zaptest.NewLogger(t)
	g := NewGuard(Default())

	d := dom.NewDocument(log)
	para := d.AppendBlock(d.Root(), dom.NodeParagraph, nil)
	quote := d.AppendBlock(d.Root(), dom.NodeBlockquote, nil)
	quoted := d.AppendBlock(quote, dom.NodeParagraph, nil)
	pre := d.AppendBlock(d.Root(), dom.NodeCodeBlock, nil)
	contained := d.AppendBlock(pre, dom.NodeParagraph, nil)

	t.Run("bare_paragraph_allowed", func(t *testing.T) {
		if !g.CanBeBlocked(para) {
			t.Fatalf("paragraph under root should be blockable")
		}
	})

	t.Run("quoted_paragraph_rejected", func(t *testing.T) {
		// blockquote cannot hold a code block
		if g.CanBeBlocked(quoted) {
			t.Fatalf("paragraph inside blockquote should be rejected")
		}
	})

	t.Run("contained_paragraph_rejected", func(t *testing.T) {
		// wrapping would nest a code block inside a code block
		if g.CanBeBlocked(contained) {
			t.Fatalf("paragraph already inside a code block should be rejected")
		}
	})

	t.Run("pure_predicate", func(t *testing.T) {
		before := d.Root().ChildCount()
		_ = g.CanBeBlocked(para)
		_ = g.CanBeBlocked(quoted)
		if d.Root().ChildCount() != before {
			t.Fatalf("guard mutated the tree")
		}
		if err := dom.CheckInvariants(d); err != nil {
			t.Fatalf("invariants violated: %v", err)
		}
	})
}

func TestGuardRuleChain(t *testing.T) {
	log := zaptest.NewLogger(t)
	d := dom.NewDocument(log)
	para := d.AppendBlock(d.Root(), dom.NodeParagraph, map[string]string{"locked": "true"})

	denyLocked := func(_ *Schema, block *dom.Node) Verdict {
		if block.Attr("locked") == "true" {
			return Deny
		}
		return Abstain
	}

	if !NewGuard(Default()).CanBeBlocked(para) {
		t.Fatalf("paragraph should pass the built-in rules")
	}
	if NewGuard(Default(), denyLocked).CanBeBlocked(para) {
		t.Fatalf("extra deny rule should win")
	}

	// first decisive verdict wins: an allow ahead of the deny short-circuits
	allowAll := func(_ *Schema, _ *dom.Node) Verdict { return Allow }
	g := &Guard{schema: Default(), rules: []Rule{allowAll, denyLocked}}
	if !g.CanBeBlocked(para) {
		t.Fatalf("allow ahead of deny should win")
	}
}
