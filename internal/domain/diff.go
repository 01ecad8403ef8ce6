package domain

import (
	"log/slog"

	"github.com/pmezard/go-difflib/difflib"
)

// UnifiedDiff renders a unified diff between the original and mutated text.
func UnifiedDiff(original, mutated []byte) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(original)),
		B:        difflib.SplitLines(string(mutated)),
		FromFile: "original",
		ToFile:   "mutant",
		Context:  3,
	})
	if err != nil {
		slog.Error("Failed to render diff", "error", err)
		return ""
	}

	return diff
}
