// Package schema declares which node types may nest inside which, and the
// guard rule chain that vets blocks before the toggle wraps them.
package schema

import (
	"fenced/dom"
)

// Schema is a declarative allowed-children table. It answers the single
// structural question the engine asks: may a node of the candidate type be a
// child of a parent of the given type.
type Schema struct {
	allowed map[dom.NodeType]map[dom.NodeType]bool
}

// New builds a schema from parent -> permitted children declarations.
func New(decl map[dom.NodeType][]dom.NodeType) *Schema {
	s := &Schema{allowed: make(map[dom.NodeType]map[dom.NodeType]bool, len(decl))}
	for parent, children := range decl {
		row := make(map[dom.NodeType]bool, len(children))
		for _, c := range children {
			row[c] = true
		}
		s.allowed[parent] = row
	}
	return s
}

// Default is the stock document schema: code blocks live directly under the
// root and hold plain blocks, blockquotes cannot hold code blocks.
func Default() *Schema {
	return New(map[dom.NodeType][]dom.NodeType{
		dom.NodeRoot:       {dom.NodeParagraph, dom.NodeHeading, dom.NodeBlockquote, dom.NodeCodeBlock},
		dom.NodeBlockquote: {dom.NodeParagraph, dom.NodeHeading},
		dom.NodeCodeBlock:  {dom.NodeParagraph, dom.NodeHeading},
		dom.NodeParagraph:  {dom.NodeText},
		dom.NodeHeading:    {dom.NodeText},
	})
}

// CanHaveChild reports whether a node of type child may be placed directly
// under a node of type parent.
func (s *Schema) CanHaveChild(parent, child dom.NodeType) bool {
	return s.allowed[parent][child]
}
