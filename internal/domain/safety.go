package domain

import (
	m "splicer.dev/pkg/splicer/internal/model"
)

// Reasons a candidate is filtered out.
const (
	ReasonProtectedKind  = "protected kind"
	ReasonProtectedName  = "protected name"
	ReasonEntryPoint     = "contains entry point"
	ReasonEntryPointCall = "entry point invocation"
)

// ProtectedSet is the immutable set of names that must never be a target or
// a donor of a replacement.
type ProtectedSet struct {
	names map[string]bool
}

// NewProtectedSet merges the profile's entry points, core names and keywords
// with extra names.
func NewProtectedSet(profile GrammarProfile, extra ...string) ProtectedSet {
	names := make(map[string]bool, len(profile.EntryPoints)+len(profile.CoreNames)+len(profile.Keywords)+len(extra))

	for _, group := range []map[string]bool{profile.EntryPoints, profile.CoreNames, profile.Keywords} {
		for name := range group {
			names[name] = true
		}
	}

	for _, name := range extra {
		names[name] = true
	}

	return ProtectedSet{names: names}
}

// Contains reports whether name is protected.
func (p ProtectedSet) Contains(name string) bool {
	return p.names[name]
}

// SafetyFilter removes candidates and donors that would damage protected
// names or declarations.
type SafetyFilter struct {
	profile   GrammarProfile
	protected ProtectedSet
}

// NewSafetyFilter builds a SafetyFilter.
func NewSafetyFilter(profile GrammarProfile, protected ProtectedSet) SafetyFilter {
	return SafetyFilter{profile: profile, protected: protected}
}

// Apply marks every ranked candidate as eligible or not and returns the
// eligible ones in ranked order.
func (f SafetyFilter) Apply(unit m.SourceUnit, ranked []m.Candidate, decls declarationIndex) []m.Candidate {
	eligible := make([]m.Candidate, 0, len(ranked))

	for i := range ranked {
		reason := f.reject(unit, ranked[i], decls)
		ranked[i].Eligible = reason == ""
		ranked[i].Reason = reason

		if ranked[i].Eligible {
			eligible = append(eligible, ranked[i])
		}
	}

	return eligible
}

func (f SafetyFilter) reject(unit m.SourceUnit, cand m.Candidate, decls declarationIndex) string {
	if f.profile.SkipKinds[cand.Kind] {
		return ReasonProtectedKind
	}

	node := unit.Tree.Node(cand.NodeID)

	if f.protected.Contains(unit.TextOf(node)) {
		return ReasonProtectedName
	}

	for _, span := range decls.entrySpans {
		if cand.Span.Contains(span) {
			return ReasonEntryPoint
		}
	}

	for _, span := range decls.entryCallSpans {
		if cand.Span.Contains(span) {
			return ReasonEntryPointCall
		}
	}

	return ""
}

// DonorAllowed reports whether d may replace cand without touching protected
// names or introducing a duplicate declared name.
func (f SafetyFilter) DonorAllowed(unit m.SourceUnit, cand m.Candidate, d donor, decls declarationIndex) bool {
	if f.protected.Contains(d.Text) {
		return false
	}

	name, declares := declaredNameOf(unit, f.profile, cand, d)
	if !declares {
		return true
	}

	if f.protected.Contains(name) {
		return false
	}

	return name == ownNameOf(unit, f.profile, cand) || !decls.declares(name)
}

func firstNamedChild(tree *m.SyntaxTree, node *m.SyntaxNode) *m.SyntaxNode {
	if node == nil {
		return nil
	}

	for _, childID := range node.Children {
		if child := tree.Node(childID); child.Named {
			return child
		}
	}

	return nil
}
