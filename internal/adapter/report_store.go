package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	m "splicer.dev/pkg/splicer/internal/model"
)

// ReportStore persists session and batch reports. The encoding is chosen from
// the file extension: .yaml/.yml for YAML, anything else for JSON.
type ReportStore interface {
	SaveSessionReport(ctx context.Context, path m.Path, report m.SessionReport) error
	SaveBatchReport(ctx context.Context, path m.Path, report m.BatchReport) error
	LoadBatchReport(ctx context.Context, path m.Path) (m.BatchReport, error)
}

type reportStore struct{}

// NewReportStore constructs a file-backed ReportStore.
func NewReportStore() ReportStore {
	return &reportStore{}
}

func isYAML(path m.Path) bool {
	ext := strings.ToLower(filepath.Ext(string(path)))
	return ext == ".yaml" || ext == ".yml"
}

func encodeReport(path m.Path, v any) ([]byte, error) {
	if isYAML(path) {
		return yaml.Marshal(v)
	}

	return json.MarshalIndent(v, "", "  ")
}

func (s *reportStore) write(ctx context.Context, path m.Path, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := encodeReport(path, v)
	if err != nil {
		return fmt.Errorf("encode report %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(string(path)), 0o750); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}

	if err := os.WriteFile(string(path), data, 0o600); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}

	return nil
}

// SaveSessionReport writes a single-file session report.
func (s *reportStore) SaveSessionReport(ctx context.Context, path m.Path, report m.SessionReport) error {
	return s.write(ctx, path, report)
}

// SaveBatchReport writes a batch summary report.
func (s *reportStore) SaveBatchReport(ctx context.Context, path m.Path, report m.BatchReport) error {
	return s.write(ctx, path, report)
}

// LoadBatchReport reads a batch summary report written by SaveBatchReport.
func (s *reportStore) LoadBatchReport(ctx context.Context, path m.Path) (m.BatchReport, error) {
	var report m.BatchReport

	if err := ctx.Err(); err != nil {
		return report, err
	}

	data, err := os.ReadFile(string(path))
	if err != nil {
		return report, fmt.Errorf("read report %s: %w", path, err)
	}

	if isYAML(path) {
		err = yaml.Unmarshal(data, &report)
	} else {
		err = json.Unmarshal(data, &report)
	}

	if err != nil {
		return report, fmt.Errorf("decode report %s: %w", path, err)
	}

	return report, nil
}
