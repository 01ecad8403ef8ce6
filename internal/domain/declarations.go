package domain

import (
	m "splicer.dev/pkg/splicer/internal/model"
)

// declaration is a name bound by a declaration node directly inside a scope.
type declaration struct {
	Scope  int
	Name   string
	NodeID int
	Span   m.Span
}

// declarationIndex is the set of declared names of one source unit.
type declarationIndex struct {
	decls []declaration
	names map[string]int
	// entrySpans are the spans of declarations of protected entry points,
	// wherever they appear in the tree.
	entrySpans []m.Span
	// entryCallSpans are the spans of calls to protected entry points.
	entryCallSpans []m.Span
}

func indexDeclarations(unit m.SourceUnit, profile GrammarProfile) declarationIndex {
	idx := declarationIndex{names: map[string]int{}}
	tree := unit.Tree

	for i := range tree.Nodes {
		node := &tree.Nodes[i]

		if profile.DeclarationKinds[node.Kind] {
			if name := tree.NameChild(node.ID); name != nil && profile.EntryPoints[unit.TextOf(name)] {
				idx.entrySpans = append(idx.entrySpans, node.Span)
			}
		}

		if profile.CallKinds[node.Kind] {
			if callee := firstNamedChild(tree, node); callee != nil && profile.EntryPoints[unit.TextOf(callee)] {
				idx.entryCallSpans = append(idx.entryCallSpans, node.Span)
			}
		}

		if node.Parent != m.NoParent && !profile.ScopeKinds[node.Kind] {
			continue
		}

		for _, childID := range node.Children {
			idx.collect(unit, profile, node.ID, childID)
		}
	}

	return idx
}

func (idx *declarationIndex) collect(unit m.SourceUnit, profile GrammarProfile, scope, nodeID int) {
	node := unit.Tree.Node(nodeID)

	if profile.GroupKinds[node.Kind] {
		for _, childID := range node.Children {
			idx.collect(unit, profile, scope, childID)
		}

		return
	}

	if !profile.DeclarationKinds[node.Kind] {
		return
	}

	name := unit.Tree.NameChild(nodeID)
	if name == nil {
		return
	}

	text := unit.TextOf(name)
	idx.decls = append(idx.decls, declaration{Scope: scope, Name: text, NodeID: nodeID, Span: node.Span})
	idx.names[text]++
}

// declares reports whether name is declared anywhere in a scope.
func (idx declarationIndex) declares(name string) bool {
	return idx.names[name] > 0
}

// duplicates counts names declared more than once in the same scope.
func (idx declarationIndex) duplicates() int {
	type key struct {
		scope int
		name  string
	}

	seen := make(map[key]int, len(idx.decls))
	dups := 0

	for _, decl := range idx.decls {
		k := key{scope: decl.Scope, name: decl.Name}

		seen[k]++
		if seen[k] == 2 {
			dups++
		}
	}

	return dups
}

// declaredNameOf returns the name donor would declare when spliced in place
// of cand, if cand is itself a declaration or the name field of one.
func declaredNameOf(unit m.SourceUnit, profile GrammarProfile, cand m.Candidate, d donor) (string, bool) {
	node := unit.Tree.Node(cand.NodeID)
	if node == nil {
		return "", false
	}

	if node.IsName {
		parent := unit.Tree.Node(node.Parent)
		if parent != nil && profile.DeclarationKinds[parent.Kind] {
			return d.Text, true
		}
	}

	if profile.DeclarationKinds[node.Kind] && d.Declares != "" {
		return d.Declares, true
	}

	return "", false
}

// ownNameOf returns the name cand currently declares, if any.
func ownNameOf(unit m.SourceUnit, profile GrammarProfile, cand m.Candidate) string {
	node := unit.Tree.Node(cand.NodeID)
	if node == nil {
		return ""
	}

	if node.IsName {
		if parent := unit.Tree.Node(node.Parent); parent != nil && profile.DeclarationKinds[parent.Kind] {
			return unit.TextOf(node)
		}
	}

	if profile.DeclarationKinds[node.Kind] {
		return unit.TextOf(unit.Tree.NameChild(node.ID))
	}

	return ""
}
