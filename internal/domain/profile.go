package domain

import (
	"fmt"

	m "splicer.dev/pkg/splicer/internal/model"
)

// PriorityClass is the static rank and category of a grammatical kind.
type PriorityClass struct {
	Rank     int
	Category m.NodeCategory
}

// DefaultClass applies to kinds missing from a profile's priority table.
var DefaultClass = PriorityClass{Rank: 15, Category: m.CategoryData}

// GrammarProfile holds the per-language tables the engine consults. Profiles
// are values built once and never mutated.
type GrammarProfile struct {
	Language m.Language

	Priorities map[string]PriorityClass

	// SkipKinds are never replaced wholesale; their children still are.
	SkipKinds map[string]bool

	EntryPoints map[string]bool
	CoreNames   map[string]bool
	Keywords    map[string]bool

	// DeclarationKinds carry a "name" field child that declares a name in the
	// enclosing scope. GroupKinds wrap declarations (Go's const/var/type blocks).
	DeclarationKinds map[string]bool
	GroupKinds       map[string]bool
	ScopeKinds       map[string]bool

	// CallKinds are invocations whose first named child is the callee.
	CallKinds map[string]bool

	// FallbackDonors seed the donor pool per kind.
	FallbackDonors map[string][]string
}

// Class returns the priority class for kind.
func (p GrammarProfile) Class(kind string) PriorityClass {
	if class, ok := p.Priorities[kind]; ok {
		return class
	}

	return DefaultClass
}

func set(items ...string) map[string]bool {
	out := make(map[string]bool, len(items))
	for _, item := range items {
		out[item] = true
	}

	return out
}

func structural(rank int) PriorityClass { return PriorityClass{Rank: rank, Category: m.CategoryStructural} }
func data(rank int) PriorityClass       { return PriorityClass{Rank: rank, Category: m.CategoryData} }
func ident(rank int) PriorityClass      { return PriorityClass{Rank: rank, Category: m.CategoryIdentifier} }

// Profile returns the grammar profile for lang.
func Profile(lang m.Language) (GrammarProfile, error) {
	switch lang {
	case m.LanguageRust:
		return rustProfile(), nil
	case m.LanguageGo:
		return goProfile(), nil
	case m.LanguagePython:
		return pythonProfile(), nil
	case m.LanguageJavaScript:
		return javascriptProfile(), nil
	}

	return GrammarProfile{}, fmt.Errorf("no grammar profile for language %q", lang)
}

func rustProfile() GrammarProfile {
	return GrammarProfile{
		Language: m.LanguageRust,
		Priorities: map[string]PriorityClass{
			"block":                structural(1),
			"binary_expression":    structural(2),
			"call_expression":      structural(3),
			"let_declaration":      structural(4),
			"expression_statement": structural(5),
			"macro_invocation":     structural(6),
			"string_literal":       data(10),
			"integer_literal":      data(11),
			"parameters":           data(12),
			"arguments":            data(13),
			"identifier":           ident(20),
			"type_identifier":      ident(21),
			"field_identifier":     ident(22),
			"primitive_type":       ident(23),
		},
		SkipKinds: set("function_item", "struct_item", "impl_item", "mod_item",
			"use_declaration", "source_file", "trait_item", "enum_item",
			"line_comment", "block_comment"),
		EntryPoints: set("main", "test"),
		CoreNames:   set("println", "print", "panic", "vec", "format"),
		Keywords: set("as", "async", "await", "break", "const", "continue", "crate",
			"dyn", "else", "enum", "extern", "false", "fn", "for", "if", "impl", "in",
			"let", "loop", "match", "mod", "move", "mut", "pub", "ref", "return",
			"self", "Self", "static", "struct", "super", "trait", "true", "type",
			"unsafe", "use", "where", "while"),
		DeclarationKinds: set("function_item", "struct_item", "enum_item", "const_item",
			"static_item", "type_item", "trait_item", "mod_item", "union_item",
			"macro_definition", "function_signature_item"),
		ScopeKinds: set("source_file", "declaration_list"),
		CallKinds:  set("call_expression"),
		FallbackDonors: map[string][]string{
			"integer_literal": {"0", "1", "255"},
			"boolean_literal": {"true", "false"},
			"string_literal":  {`""`, `"splice"`},
		},
	}
}

func goProfile() GrammarProfile {
	return GrammarProfile{
		Language: m.LanguageGo,
		Priorities: map[string]PriorityClass{
			"block":                      structural(1),
			"binary_expression":          structural(2),
			"call_expression":            structural(3),
			"short_var_declaration":      structural(4),
			"expression_statement":       structural(5),
			"if_statement":               structural(6),
			"interpreted_string_literal": data(10),
			"int_literal":                data(11),
			"parameter_list":             data(12),
			"argument_list":              data(13),
			"identifier":                 ident(20),
			"type_identifier":            ident(21),
			"field_identifier":           ident(22),
		},
		SkipKinds: set("function_declaration", "method_declaration", "package_clause",
			"import_declaration", "source_file", "type_declaration", "comment"),
		EntryPoints: set("main", "init"),
		CoreNames:   set("println", "print", "panic", "len", "cap", "make", "new", "append"),
		Keywords: set("break", "case", "chan", "const", "continue", "default", "defer",
			"else", "fallthrough", "for", "func", "go", "goto", "if", "import",
			"interface", "map", "package", "range", "return", "select", "struct",
			"switch", "type", "var", "nil", "true", "false", "iota"),
		DeclarationKinds: set("function_declaration", "type_spec", "const_spec", "var_spec"),
		GroupKinds:       set("type_declaration", "const_declaration", "var_declaration"),
		ScopeKinds:       set("source_file"),
		CallKinds:        set("call_expression"),
		FallbackDonors: map[string][]string{
			"int_literal":                {"0", "1", "255"},
			"interpreted_string_literal": {`""`, `"splice"`},
		},
	}
}

func pythonProfile() GrammarProfile {
	return GrammarProfile{
		Language: m.LanguagePython,
		Priorities: map[string]PriorityClass{
			"block":                structural(1),
			"binary_operator":      structural(2),
			"call":                 structural(3),
			"assignment":           structural(4),
			"expression_statement": structural(5),
			"if_statement":         structural(6),
			"string":               data(10),
			"integer":              data(11),
			"parameters":           data(12),
			"argument_list":        data(13),
			"identifier":           ident(20),
		},
		SkipKinds: set("function_definition", "class_definition", "import_statement",
			"import_from_statement", "module", "decorated_definition", "comment"),
		EntryPoints: set("main", "__main__", "__name__"),
		CoreNames:   set("print", "len", "range", "open", "super"),
		Keywords: set("and", "as", "assert", "async", "await", "break", "class",
			"continue", "def", "del", "elif", "else", "except", "finally", "for",
			"from", "global", "if", "import", "in", "is", "lambda", "nonlocal", "not",
			"or", "pass", "raise", "return", "try", "while", "with", "yield",
			"None", "True", "False", "self"),
		DeclarationKinds: set("function_definition", "class_definition"),
		GroupKinds:       set("decorated_definition"),
		ScopeKinds:       set("module"),
		CallKinds:        set("call"),
		FallbackDonors: map[string][]string{
			"integer": {"0", "1", "255"},
		},
	}
}

func javascriptProfile() GrammarProfile {
	return GrammarProfile{
		Language: m.LanguageJavaScript,
		Priorities: map[string]PriorityClass{
			"statement_block":      structural(1),
			"binary_expression":    structural(2),
			"call_expression":      structural(3),
			"lexical_declaration":  structural(4),
			"expression_statement": structural(5),
			"if_statement":         structural(6),
			"string":               data(10),
			"number":               data(11),
			"formal_parameters":    data(12),
			"arguments":            data(13),
			"identifier":           ident(20),
			"property_identifier":  ident(21),
		},
		SkipKinds: set("function_declaration", "class_declaration", "import_statement",
			"export_statement", "program", "comment"),
		EntryPoints: set("main"),
		CoreNames:   set("console", "require", "module", "exports"),
		Keywords: set("break", "case", "catch", "class", "const", "continue", "debugger",
			"default", "delete", "do", "else", "export", "extends", "finally", "for",
			"function", "if", "import", "in", "instanceof", "let", "new", "return",
			"super", "switch", "this", "throw", "try", "typeof", "var", "void",
			"while", "with", "yield", "null", "true", "false", "undefined"),
		DeclarationKinds: set("function_declaration", "class_declaration"),
		GroupKinds:       set("export_statement"),
		ScopeKinds:       set("program"),
		CallKinds:        set("call_expression"),
		FallbackDonors: map[string][]string{
			"number": {"0", "1", "255"},
		},
	}
}
