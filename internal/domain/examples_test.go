package domain

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splicer.dev/pkg/splicer/internal/adapter"
	m "splicer.dev/pkg/splicer/internal/model"
)

func readExample(t *testing.T, elem ...string) []byte {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(append([]string{"..", "..", "examples"}, elem...)...))
	require.NoError(t, err)

	return data
}

func TestExamples_MutateEveryFixture(t *testing.T) {
	tests := []struct {
		path []string
		lang m.Language
	}{
		{[]string{"basic", "main.rs"}, m.LanguageRust},
		{[]string{"batch", "synthesized_1.rs"}, m.LanguageRust},
		{[]string{"batch", "synthesized_2.rs"}, m.LanguageRust},
		{[]string{"batch", "synthesized_3.rs"}, m.LanguageRust},
		{[]string{"polyglot", "main.go"}, m.LanguageGo},
		{[]string{"polyglot", "main.py"}, m.LanguagePython},
		{[]string{"polyglot", "main.js"}, m.LanguageJavaScript},
	}

	parser := adapter.NewTreeSitterAdapter()
	mg := NewMutagen(parser)

	for _, tt := range tests {
		t.Run(filepath.Join(tt.path...), func(t *testing.T) {
			src := readExample(t, tt.path...)

			cfg := DefaultEngineConfig(tt.lang)

			report, err := mg.Mutate(context.Background(), cfg, src)
			require.NoError(t, err)

			assert.Positive(t, report.Accepted, "stop: %s", report.Stop)
			assert.LessOrEqual(t, report.Attempted, cfg.Budget())

			_, err = parser.Parse(context.Background(), tt.lang, report.Output)
			require.NoError(t, err)
		})
	}
}

func TestExamples_InvalidFixture(t *testing.T) {
	mg := NewMutagen(adapter.NewTreeSitterAdapter())

	_, err := mg.Mutate(context.Background(), DefaultEngineConfig(m.LanguageRust), readExample(t, "invalid", "synthesized_broken.rs"))
	require.Error(t, err)

	var parseErr *adapter.ParseError
	assert.True(t, errors.As(err, &parseErr))
}
