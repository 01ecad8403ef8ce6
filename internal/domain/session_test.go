package domain

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"splicer.dev/pkg/splicer/internal/adapter"
	adaptermocks "splicer.dev/pkg/splicer/internal/adapter/mocks"
	m "splicer.dev/pkg/splicer/internal/model"
)

const sessionFixture = `fn add(a: i32, b: i32) -> i32 {
    a + b
}

fn scale(v: i32) -> i32 {
    v * 3
}

fn main() {
    let x = add(1, 2);
    let y = scale(x) + 4;
    println!("{} {}", x, y);
}
`

// detachedParser ignores the caller's context so a session can be started
// with a context that is already done.
type detachedParser struct {
	inner adapter.SyntaxAdapter
}

func (p detachedParser) Parse(_ context.Context, lang m.Language, src []byte) (*m.SyntaxTree, error) {
	return p.inner.Parse(context.Background(), lang, src)
}

func runSession(t *testing.T, cfg EngineConfig, src string) m.SessionReport {
	t.Helper()

	session, err := NewSession(adapter.NewTreeSitterAdapter(), cfg)
	require.NoError(t, err)

	report, err := session.Run(context.Background(), []byte(src))
	require.NoError(t, err)

	return report
}

func rustConfig(mutations int, seed int64) EngineConfig {
	cfg := DefaultEngineConfig(m.LanguageRust)
	cfg.Mutations = mutations
	cfg.Seed = seed

	return cfg
}

func TestSession_SingleLiteralSplice(t *testing.T) {
	src := "fn main() { let x = 1 + 2; }"

	report := runSession(t, rustConfig(1, 42), src)

	assert.Equal(t, m.StopCompleted, report.Stop)
	assert.Equal(t, 1, report.Accepted)
	assert.Equal(t, 1, report.Attempted)
	assert.Equal(t, 4, report.Budget)
	assert.False(t, report.Partial)
	require.Len(t, report.Attempts, 1)

	attempt := report.Attempts[0]
	assert.Equal(t, m.OutcomeAccepted, attempt.Outcome)
	assert.Equal(t, "integer_literal", attempt.Kind)
	assert.Equal(t, src[attempt.Span.Start:attempt.Span.End], attempt.TargetText)
	assert.NotEqual(t, attempt.TargetText, attempt.DonorText)
	assert.Contains(t, []string{"0", "1", "2", "255"}, attempt.DonorText)
	assert.Equal(t, len(attempt.DonorText)-len(attempt.TargetText), attempt.LengthDelta)

	want := string(Splice([]byte(src), attempt.Span, attempt.DonorText))
	assert.Equal(t, want, string(report.Output))
	assert.True(t, strings.HasPrefix(string(report.Output), "fn main() { let x = "))
}

func TestSession_NoDonorStopsOnce(t *testing.T) {
	src := "fn main() {}"

	report := runSession(t, rustConfig(3, 42), src)

	assert.Equal(t, m.StopNoDonor, report.Stop)
	assert.Zero(t, report.Accepted)
	assert.True(t, report.Partial)
	assert.Equal(t, 3, report.Shortfall())
	require.Len(t, report.Attempts, 1)
	assert.Equal(t, m.OutcomeSkippedNoDonor, report.Attempts[0].Outcome)
	assert.Equal(t, report.Attempted, len(report.Attempts))
	assert.Equal(t, src, string(report.Output))
}

func TestSession_NoCandidates(t *testing.T) {
	report := runSession(t, rustConfig(2, 1), "")

	assert.Equal(t, m.StopNoCandidates, report.Stop)
	require.Len(t, report.Attempts, 1)
	assert.Equal(t, m.OutcomeSkippedEmptyCandidates, report.Attempts[0].Outcome)
	assert.True(t, report.Attempts[0].Outcome.IsNoOp())
	assert.Empty(t, report.Output)
}

func TestSession_ZeroMutations(t *testing.T) {
	report := runSession(t, rustConfig(0, 42), sessionFixture)

	assert.Equal(t, m.StopCompleted, report.Stop)
	assert.Empty(t, report.Attempts)
	assert.False(t, report.Partial)
	assert.Equal(t, sessionFixture, string(report.Output))
}

func TestSession_Deterministic(t *testing.T) {
	cfg := rustConfig(5, 1234)
	cfg.WithDiff = true

	first := runSession(t, cfg, sessionFixture)
	second := runSession(t, cfg, sessionFixture)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("same seed produced different sessions (-first +second):\n%s", diff)
	}
}

func TestSession_Invariants(t *testing.T) {
	parser := adapter.NewTreeSitterAdapter()

	for seed := int64(1); seed <= 20; seed++ {
		cfg := rustConfig(5, seed)
		report := runSession(t, cfg, sessionFixture)

		assert.Equal(t, len(report.Attempts), report.Attempted, "seed %d", seed)
		assert.LessOrEqual(t, report.Attempted, cfg.Budget(), "seed %d", seed)
		assert.LessOrEqual(t, report.Accepted, report.Requested, "seed %d", seed)
		assert.Equal(t, report.Accepted < report.Requested, report.Partial, "seed %d", seed)

		accepted := 0
		for i, attempt := range report.Attempts {
			assert.Equal(t, i, attempt.Iteration)

			if attempt.Outcome == m.OutcomeAccepted {
				accepted++
			}

			if attempt.Outcome.IsNoOp() {
				assert.Equal(t, len(report.Attempts)-1, i, "no-op attempts end the session")
			}
		}

		assert.Equal(t, report.Accepted, accepted, "seed %d", seed)

		_, err := parser.Parse(context.Background(), m.LanguageRust, report.Output)
		require.NoError(t, err, "seed %d produced unparsable output", seed)

		out := string(report.Output)
		assert.Equal(t, 1, strings.Count(out, "fn main("), "seed %d", seed)
	}
}

func TestSession_ExtraProtectedNamesSurvive(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		cfg := rustConfig(5, seed)
		cfg.ExtraProtected = []string{"add", "scale"}

		report := runSession(t, cfg, sessionFixture)
		out := string(report.Output)

		assert.Contains(t, out, "fn add(", "seed %d", seed)
		assert.Contains(t, out, "fn scale(", "seed %d", seed)

		for _, attempt := range report.Attempts {
			assert.NotEqual(t, "add", attempt.TargetText)
			assert.NotEqual(t, "scale", attempt.DonorText)
		}
	}
}

func TestSession_MaxDonorRetries(t *testing.T) {
	cfg := rustConfig(1, 42)
	cfg.MaxDonorRetries = 1

	report := runSession(t, cfg, "fn main() { let x = 1 + 2; }")

	assert.Equal(t, m.StopNoDonor, report.Stop)
	require.Len(t, report.Attempts, 1)
	assert.Equal(t, "1 candidate(s) tried", report.Attempts[0].Detail)
}

func TestSession_WithoutFallbackDonors(t *testing.T) {
	cfg := rustConfig(1, 42)
	cfg.UseFallbackDonors = false

	report := runSession(t, cfg, "fn main() { let x = 1 + 2; }")

	require.Len(t, report.Attempts, 1)
	assert.Equal(t, m.OutcomeAccepted, report.Attempts[0].Outcome)
	assert.Contains(t, []string{"1", "2"}, report.Attempts[0].DonorText)
}

func TestSession_Diff(t *testing.T) {
	cfg := rustConfig(1, 42)
	cfg.WithDiff = true

	report := runSession(t, cfg, "fn main() {\n    let x = 1 + 2;\n}\n")

	require.Equal(t, 1, report.Accepted)
	assert.Contains(t, report.Diff, "--- original")
	assert.Contains(t, report.Diff, "+++ mutant")
	assert.Contains(t, report.Diff, "-    let x = 1 + 2;")
}

func TestSession_InvalidOriginal(t *testing.T) {
	session, err := NewSession(adapter.NewTreeSitterAdapter(), rustConfig(1, 42))
	require.NoError(t, err)

	_, err = session.Run(context.Background(), []byte("fn main( {"))
	require.Error(t, err)

	var parseErr *adapter.ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestSession_RejectsUnparsableSplices(t *testing.T) {
	src := []byte("fn main() { let x = 1 + 2; }")

	tree, err := adapter.NewTreeSitterAdapter().Parse(context.Background(), m.LanguageRust, src)
	require.NoError(t, err)

	syntax := adaptermocks.NewMockSyntaxAdapter(t)
	syntax.On("Parse", mock.Anything, m.LanguageRust, src).Return(tree, nil).Once()
	syntax.On("Parse", mock.Anything, m.LanguageRust, mock.Anything).
		Return((*m.SyntaxTree)(nil), &adapter.ParseError{Offset: 20, Kind: "ERROR"})

	session, err := NewSession(syntax, rustConfig(1, 42))
	require.NoError(t, err)

	report, err := session.Run(context.Background(), src)
	require.NoError(t, err)

	assert.Equal(t, m.StopBudgetExhausted, report.Stop)
	assert.Equal(t, report.Budget, report.Attempted)
	assert.Zero(t, report.Accepted)
	assert.Equal(t, string(src), string(report.Output))

	for _, attempt := range report.Attempts {
		assert.Equal(t, m.OutcomeRejectedInvalidSyntax, attempt.Outcome)
		assert.Contains(t, attempt.Detail, "syntax error at byte 20")
	}
}

const guardedEntryFixture = "def main():\n    x = 1\n\nif __name__ == \"__main__\":\n    main()\n    print(2)\n    print(3)\n"

// entryCalls counts calls to main in a Python source.
func entryCalls(t *testing.T, src []byte) int {
	t.Helper()

	unit := parseUnit(t, m.LanguagePython, string(src))
	calls := 0

	for i := range unit.Tree.Nodes {
		node := &unit.Tree.Nodes[i]
		if node.Kind != "call" {
			continue
		}

		if callee := firstNamedChild(unit.Tree, node); callee != nil && unit.TextOf(callee) == "main" {
			calls++
		}
	}

	return calls
}

func TestSession_EntryPointCallSurvives(t *testing.T) {
	for seed := int64(1); seed <= 40; seed++ {
		cfg := DefaultEngineConfig(m.LanguagePython)
		cfg.Mutations = 3
		cfg.Seed = seed

		report := runSession(t, cfg, guardedEntryFixture)

		assert.Equal(t, 1, entryCalls(t, report.Output), "seed %d:\n%s", seed, report.Output)
		assert.Equal(t, 1, strings.Count(string(report.Output), "def main("), "seed %d", seed)

		for _, attempt := range report.Attempts {
			if attempt.Outcome != m.OutcomeAccepted {
				continue
			}

			assert.NotContains(t, attempt.TargetText, "main()", "seed %d", seed)
			assert.NotContains(t, attempt.DonorText, "main()", "seed %d", seed)
		}
	}
}

func TestSession_RevertsDuplicateDeclarations(t *testing.T) {
	// Only the two const blocks have usable donors, and swapping either one
	// in for the other redeclares its names at package scope.
	src := "package main\n\nconst (\n\ta = iota\n\tb\n)\n\nconst c = iota\n\nfunc main() {}\n"

	cfg := DefaultEngineConfig(m.LanguageGo)
	cfg.Mutations = 1

	report := runSession(t, cfg, src)

	assert.Equal(t, m.StopBudgetExhausted, report.Stop)
	assert.Equal(t, report.Budget, report.Attempted)
	assert.Len(t, report.Attempts, report.Attempted)
	assert.Zero(t, report.Accepted)
	assert.True(t, report.Partial)
	assert.Equal(t, src, string(report.Output))

	for _, attempt := range report.Attempts {
		assert.Equal(t, m.OutcomeRejectedDuplicateName, attempt.Outcome)
		assert.Equal(t, "const_declaration", attempt.Kind)
		assert.Contains(t, attempt.Detail, "duplicate declaration")
	}
}

func TestSession_InterruptedBetweenIterations(t *testing.T) {
	session, err := NewSession(detachedParser{inner: adapter.NewTreeSitterAdapter()}, rustConfig(5, 42))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := session.Run(ctx, []byte(sessionFixture))
	require.NoError(t, err)

	assert.Equal(t, m.StopInterrupted, report.Stop)
	assert.Empty(t, report.Attempts)
	assert.True(t, report.Partial)
	assert.Equal(t, sessionFixture, string(report.Output))
}

func TestNewSession_Errors(t *testing.T) {
	_, err := NewSession(nil, rustConfig(1, 1))
	require.Error(t, err)

	cfg := rustConfig(1, 1)
	cfg.AttemptFactor = 0

	_, err = NewSession(adapter.NewTreeSitterAdapter(), cfg)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSession_Candidates(t *testing.T) {
	session, err := NewSession(adapter.NewTreeSitterAdapter(), rustConfig(1, 42))
	require.NoError(t, err)

	candidates, err := session.Candidates(context.Background(), []byte("fn main() {}"))
	require.NoError(t, err)
	require.NotEmpty(t, candidates)

	reasons := map[string]string{}
	for _, cand := range candidates {
		reasons[cand.Kind] = cand.Reason
	}

	assert.Equal(t, ReasonProtectedKind, reasons["function_item"])
	assert.Equal(t, ReasonProtectedName, reasons["identifier"])
	assert.Empty(t, reasons["block"])
}

func TestSession_Pools(t *testing.T) {
	session, err := NewSession(adapter.NewTreeSitterAdapter(), rustConfig(1, 42))
	require.NoError(t, err)

	pools, err := session.Pools(context.Background(), []byte("fn main() { let x = 7; }"), 2)
	require.NoError(t, err)

	var literal *m.PoolEntry
	for i := range pools {
		if pools[i].Kind == "integer_literal" {
			literal = &pools[i]
		}
	}

	require.NotNil(t, literal)
	assert.Equal(t, 4, literal.Count)
	assert.Equal(t, []string{"7", "0"}, literal.Samples)
}

func TestSplice(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		span        m.Span
		replacement string
		want        string
	}{
		{"same length", "let x = 1;", m.Span{Start: 8, End: 9}, "7", "let x = 7;"},
		{"longer", "let x = 1;", m.Span{Start: 8, End: 9}, "255", "let x = 255;"},
		{"shorter", "let x = 100;", m.Span{Start: 8, End: 11}, "0", "let x = 0;"},
		{"at start", "abc", m.Span{Start: 0, End: 1}, "z", "zbc"},
		{"empty replacement", "abc", m.Span{Start: 1, End: 2}, "", "ac"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := []byte(tt.text)
			assert.Equal(t, tt.want, string(Splice(text, tt.span, tt.replacement)))
			assert.Equal(t, tt.text, string(text), "input is not modified")
		})
	}
}

func TestUnifiedDiff(t *testing.T) {
	diff := UnifiedDiff([]byte("a\nb\nc\n"), []byte("a\nz\nc\n"))

	assert.Contains(t, diff, "--- original")
	assert.Contains(t, diff, "+++ mutant")
	assert.Contains(t, diff, "-b")
	assert.Contains(t, diff, "+z")
}
