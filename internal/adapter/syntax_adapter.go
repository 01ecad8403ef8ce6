package adapter

import (
	"context"
	"errors"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"

	m "splicer.dev/pkg/splicer/internal/model"
)

// ErrUnsupportedLanguage is returned when no grammar is registered for a language.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// ParseError reports that the grammar rejected the text.
type ParseError struct {
	Offset uint32
	Kind   string // ERROR or the kind of the MISSING node
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("syntax error at byte %d (%s)", e.Offset, e.Kind)
}

// SyntaxAdapter hides the parser library from the domain layer. Parse must be
// pure: no state is carried between calls.
type SyntaxAdapter interface {
	// Parse builds a syntax tree for src, or fails with *ParseError when the
	// grammar rejects the text.
	Parse(ctx context.Context, lang m.Language, src []byte) (*m.SyntaxTree, error)
}

// TreeSitterAdapter is a SyntaxAdapter backed by tree-sitter grammars.
type TreeSitterAdapter struct{}

// NewTreeSitterAdapter constructs a TreeSitterAdapter.
func NewTreeSitterAdapter() *TreeSitterAdapter {
	return &TreeSitterAdapter{}
}

func grammarFor(lang m.Language) *sitter.Language {
	switch lang {
	case m.LanguageRust:
		return rust.GetLanguage()
	case m.LanguageGo:
		return golang.GetLanguage()
	case m.LanguagePython:
		return python.GetLanguage()
	case m.LanguageJavaScript:
		return javascript.GetLanguage()
	}

	return nil
}

// Parse parses src with a fresh parser and flattens the result.
func (a *TreeSitterAdapter) Parse(ctx context.Context, lang m.Language, src []byte) (*m.SyntaxTree, error) {
	grammar := grammarFor(lang)
	if grammar == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}

	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(grammar)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, firstError(root)
	}

	return flatten(lang, root), nil
}

func firstError(root *sitter.Node) *ParseError {
	if bad := findFirstError(root); bad != nil {
		kind := "ERROR"
		if bad.IsMissing() {
			kind = "MISSING " + bad.Type()
		}

		return &ParseError{Offset: bad.StartByte(), Kind: kind}
	}

	return &ParseError{Offset: root.StartByte(), Kind: "ERROR"}
}

func findFirstError(node *sitter.Node) *sitter.Node {
	if node == nil {
		return nil
	}

	if node.IsError() || node.IsMissing() {
		return node
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		if bad := findFirstError(node.Child(i)); bad != nil {
			return bad
		}
	}

	return nil
}

type pending struct {
	node   *sitter.Node
	parent int
	depth  int
	isName bool
}

// flatten copies the tree-sitter tree into pre-order slices so the domain never
// holds a reference into C memory.
func flatten(lang m.Language, root *sitter.Node) *m.SyntaxTree {
	tree := &m.SyntaxTree{Language: lang}
	stack := []pending{{node: root, parent: m.NoParent}}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		id := len(tree.Nodes)
		tree.Nodes = append(tree.Nodes, m.SyntaxNode{
			ID:     id,
			Kind:   cur.node.Type(),
			Named:  cur.node.IsNamed(),
			IsName: cur.isName,
			Span:   m.Span{Start: cur.node.StartByte(), End: cur.node.EndByte()},
			Depth:  cur.depth,
			Parent: cur.parent,
		})

		if cur.parent != m.NoParent {
			tree.Nodes[cur.parent].Children = append(tree.Nodes[cur.parent].Children, id)
		}

		nameNode := cur.node.ChildByFieldName("name")

		// Push in reverse so children pop in document order.
		for i := int(cur.node.ChildCount()) - 1; i >= 0; i-- {
			child := cur.node.Child(i)
			if child == nil {
				continue
			}

			stack = append(stack, pending{
				node:   child,
				parent: id,
				depth:  cur.depth + 1,
				isName: sameNode(child, nameNode),
			})
		}
	}

	return tree
}

func sameNode(a, b *sitter.Node) bool {
	if a == nil || b == nil {
		return false
	}

	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}
