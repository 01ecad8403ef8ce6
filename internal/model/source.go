// Package model defines the data structures for syntax-tree splicing.
package model

import "fmt"

// Path represents a file system path.
type Path string

// Language identifies the grammar a source unit is parsed with.
type Language string

const (
	// LanguageRust is the tree-sitter Rust grammar (default).
	LanguageRust Language = "rust"
	// LanguageGo is the tree-sitter Go grammar.
	LanguageGo Language = "go"
	// LanguagePython is the tree-sitter Python grammar.
	LanguagePython Language = "python"
	// LanguageJavaScript is the tree-sitter JavaScript grammar.
	LanguageJavaScript Language = "javascript"
)

// Languages lists every supported grammar in a stable order.
func Languages() []Language {
	return []Language{LanguageRust, LanguageGo, LanguagePython, LanguageJavaScript}
}

// ParseLanguage resolves a user supplied language name.
func ParseLanguage(name string) (Language, error) {
	switch name {
	case "rust", "rs":
		return LanguageRust, nil
	case "go", "golang":
		return LanguageGo, nil
	case "python", "py":
		return LanguagePython, nil
	case "javascript", "js":
		return LanguageJavaScript, nil
	}

	return "", fmt.Errorf("unsupported language: %q", name)
}

// Span is a half-open byte range [Start, End) into the owning text.
type Span struct {
	Start uint32 `json:"start" yaml:"start"`
	End   uint32 `json:"end" yaml:"end"`
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	if s.End < s.Start {
		return 0
	}

	return int(s.End - s.Start)
}

// Contains reports whether other lies entirely inside s.
func (s Span) Contains(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// NoParent marks the root of a SyntaxTree.
const NoParent = -1

// SyntaxNode is a read-only node of a flattened syntax tree.
type SyntaxNode struct {
	ID       int
	Kind     string
	Named    bool
	IsName   bool // node sits in its parent's "name" field
	Span     Span
	Depth    int
	Parent   int
	Children []int
}

// SyntaxTree is an immutable, pre-order (document order) snapshot of a parse.
// Nodes[0] is the root.
type SyntaxTree struct {
	Language Language
	Nodes    []SyntaxNode
}

// Root returns the root node.
func (t *SyntaxTree) Root() *SyntaxNode {
	if t == nil || len(t.Nodes) == 0 {
		return nil
	}

	return &t.Nodes[0]
}

// Node returns the node with the given id, or nil when out of range.
func (t *SyntaxTree) Node(id int) *SyntaxNode {
	if t == nil || id < 0 || id >= len(t.Nodes) {
		return nil
	}

	return &t.Nodes[id]
}

// NameChild returns the child in the "name" field of node id, if any.
func (t *SyntaxTree) NameChild(id int) *SyntaxNode {
	node := t.Node(id)
	if node == nil {
		return nil
	}

	for _, childID := range node.Children {
		if t.Nodes[childID].IsName {
			return &t.Nodes[childID]
		}
	}

	return nil
}

// SourceUnit is an immutable text together with the tree parsed from it.
// It is replaced wholesale after every accepted splice.
type SourceUnit struct {
	Text []byte
	Tree *SyntaxTree
}

// TextOf returns the literal text covered by node.
func (u SourceUnit) TextOf(node *SyntaxNode) string {
	if node == nil || int(node.Span.End) > len(u.Text) {
		return ""
	}

	return string(u.Text[node.Span.Start:node.Span.End])
}
