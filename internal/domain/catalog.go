package domain

import (
	"strings"

	m "splicer.dev/pkg/splicer/internal/model"
)

// BuildCatalog enumerates, in document order, every node of unit that can be a
// replacement target: not the root, not zero-width, not an anonymous
// punctuation or keyword token, not a hidden or error node.
func BuildCatalog(unit m.SourceUnit) ([]m.Candidate, error) {
	if unit.Tree == nil || len(unit.Tree.Nodes) == 0 {
		return nil, ErrEmptyCandidateSet
	}

	candidates := make([]m.Candidate, 0, len(unit.Tree.Nodes))

	for i := range unit.Tree.Nodes {
		node := &unit.Tree.Nodes[i]
		if !isCatalogNode(node) {
			continue
		}

		candidates = append(candidates, m.Candidate{
			NodeID:   node.ID,
			Kind:     node.Kind,
			Span:     node.Span,
			Depth:    node.Depth,
			Eligible: true,
		})
	}

	if len(candidates) == 0 {
		return nil, ErrEmptyCandidateSet
	}

	return candidates, nil
}

func isCatalogNode(node *m.SyntaxNode) bool {
	switch {
	case node.Parent == m.NoParent:
		return false
	case node.Span.Len() == 0:
		return false
	case !node.Named:
		return false
	case strings.HasPrefix(node.Kind, "_"), node.Kind == "ERROR":
		return false
	}

	return true
}
