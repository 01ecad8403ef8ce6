package adapter

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "splicer.dev/pkg/splicer/internal/model"
)

func sampleBatchReport() m.BatchReport {
	return m.BatchReport{
		RunID:   "6f1c1a4e-3b0c-4a51-9a7e-0c1f5d3b2a10",
		Total:   2,
		Success: 1,
		Failed:  1,
		Files: []m.FileResult{
			{Index: 1, Input: "synthesized_1.rs", Output: "synthesized_1_mutated.rs", Seed: 43, Status: m.FileSuccess, Accepted: 5, Attempted: 7, Stop: m.StopCompleted},
			{Index: 2, Input: "synthesized_2.rs", Seed: 44, Status: m.FileFailed, Error: "parse original: syntax error at byte 3 (ERROR)"},
		},
		Timestamp:       time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		DurationSeconds: 1.5,
	}
}

func TestReportStore_BatchRoundTrip(t *testing.T) {
	for _, name := range []string{"mutation_report.json", "mutation_report.yaml", "mutation_report.yml"} {
		t.Run(name, func(t *testing.T) {
			store := NewReportStore()
			path := m.Path(filepath.Join(t.TempDir(), "nested", name))
			want := sampleBatchReport()

			require.NoError(t, store.SaveBatchReport(context.Background(), path, want))

			got, err := store.LoadBatchReport(context.Background(), path)
			require.NoError(t, err)
			assert.Equal(t, want.RunID, got.RunID)
			assert.Equal(t, want.Files, got.Files)
			assert.True(t, want.Timestamp.Equal(got.Timestamp))
		})
	}
}

func TestReportStore_BatchJSONFieldNames(t *testing.T) {
	store := NewReportStore()
	path := filepath.Join(t.TempDir(), "mutation_report.json")

	require.NoError(t, store.SaveBatchReport(context.Background(), m.Path(path), sampleBatchReport()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	for _, key := range []string{"run_id", "total", "success", "failed", "files", "timestamp", "duration_seconds"} {
		assert.Contains(t, raw, key)
	}
}

func TestReportStore_SessionReportOmitsOutput(t *testing.T) {
	store := NewReportStore()
	path := filepath.Join(t.TempDir(), "session.json")

	report := m.SessionReport{
		Language:  m.LanguageRust,
		Seed:      42,
		Requested: 1,
		Accepted:  1,
		Attempted: 1,
		Budget:    4,
		Stop:      m.StopCompleted,
		Attempts: []m.Attempt{{
			Iteration: 0, Kind: "integer_literal", Span: m.Span{Start: 20, End: 21},
			TargetText: "1", DonorText: "2", Outcome: m.OutcomeAccepted,
		}},
		Output: []byte("fn main() { let x = 2 + 2; }"),
	}

	require.NoError(t, store.SaveSessionReport(context.Background(), m.Path(path), report))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "Output")
	assert.Contains(t, string(data), `"outcome": "accepted"`)
	assert.Contains(t, string(data), `"donor": "2"`)
}

func TestReportStore_LoadErrors(t *testing.T) {
	store := NewReportStore()
	dir := t.TempDir()

	_, err := store.LoadBatchReport(context.Background(), m.Path(filepath.Join(dir, "missing.json")))
	require.Error(t, err)

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte("{not json"), 0o600))

	_, err = store.LoadBatchReport(context.Background(), m.Path(broken))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode report")
}

func TestReportStore_CancelledContext(t *testing.T) {
	store := NewReportStore()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.SaveBatchReport(ctx, m.Path(filepath.Join(t.TempDir(), "r.json")), sampleBatchReport())
	require.ErrorIs(t, err, context.Canceled)
}
