package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"splicer.dev/pkg/splicer/internal/adapter"
	"splicer.dev/pkg/splicer/internal/controller"
	m "splicer.dev/pkg/splicer/internal/model"
)

// ErrBatchFailures is returned when at least one batch file failed.
var ErrBatchFailures = errors.New("batch finished with failures")

// MutateArgs contains the arguments for mutating a single file.
type MutateArgs struct {
	Input  m.Path
	Output m.Path // empty writes the mutant through the UI
	Report m.Path // empty skips persisting the session report
	Engine EngineConfig
}

// BatchArgs contains the arguments for mutating every matching file of a directory.
type BatchArgs struct {
	DataDir    m.Path
	Pattern    string
	Recursive  bool
	OutputDir  m.Path
	ReportName string
	MaxFiles   int
	Threads    int
	Timeout    time.Duration
	Engine     EngineConfig
}

// ListArgs contains the arguments for listing the candidate catalog of a file.
type ListArgs struct {
	Input  m.Path
	Engine EngineConfig
}

// PoolsArgs contains the arguments for showing the donor pool of a file.
type PoolsArgs struct {
	Input   m.Path
	Engine  EngineConfig
	Samples int
}

// ViewArgs contains the arguments for viewing a saved batch report.
type ViewArgs struct {
	Report m.Path
}

// Workflow defines the user-facing operations of the CLI.
type Workflow interface {
	Mutate(ctx context.Context, args MutateArgs) error
	Batch(ctx context.Context, args BatchArgs) error
	List(ctx context.Context, args ListArgs) error
	Pools(ctx context.Context, args PoolsArgs) error
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.ReportStore
	controller.UI
	mutagen Mutagen
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	reportStore adapter.ReportStore,
	ui controller.UI,
	mutagen Mutagen,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		ReportStore:     reportStore,
		UI:              ui,
		mutagen:         mutagen,
	}
}

func (w *workflow) Mutate(ctx context.Context, args MutateArgs) error {
	src, err := w.ReadFile(ctx, args.Input)
	if err != nil {
		return fmt.Errorf("read %s: %w", args.Input, err)
	}

	report, err := w.mutagen.Mutate(ctx, args.Engine, src)
	if err != nil {
		slog.Error("Failed to mutate source", "path", args.Input, "error", err)
		return fmt.Errorf("mutate %s: %w", args.Input, err)
	}

	if args.Output != "" {
		if err := w.WriteFile(ctx, args.Output, report.Output, 0o600); err != nil {
			return fmt.Errorf("write %s: %w", args.Output, err)
		}
	} else if err := w.DisplayMutant(ctx, report.Output); err != nil {
		return fmt.Errorf("display mutant: %w", err)
	}

	if args.Report != "" {
		if err := w.SaveSessionReport(ctx, args.Report, report); err != nil {
			return fmt.Errorf("save report: %w", err)
		}
	}

	return w.DisplaySessionReport(ctx, args.Input, report)
}

func (w *workflow) Batch(ctx context.Context, args BatchArgs) error {
	start := time.Now()

	files, err := w.FindFiles(ctx, args.DataDir, args.Pattern, args.Recursive)
	if err != nil {
		return fmt.Errorf("find files: %w", err)
	}

	if args.MaxFiles > 0 && len(files) > args.MaxFiles {
		files = files[:args.MaxFiles]
	}

	if err := w.MkdirAll(ctx, args.OutputDir); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	slog.Info("Starting batch", "dataDir", args.DataDir, "pattern", args.Pattern, "files", len(files), "threads", args.Threads)

	if err := w.Start(ctx, controller.WithBatchMode(len(files))); err != nil {
		slog.Error("Failed to start batch UI", "error", err)
		return err
	}

	results := w.runBatch(ctx, args, files)

	w.Close(ctx)

	report := summarize(results, start)

	reportPath := w.JoinPath(ctx, string(args.OutputDir), args.ReportName)
	if err := w.SaveBatchReport(ctx, reportPath, report); err != nil {
		return fmt.Errorf("save batch report: %w", err)
	}

	if err := w.DisplayBatchReport(ctx, report); err != nil {
		return fmt.Errorf("display batch report: %w", err)
	}

	if report.Failed > 0 {
		return fmt.Errorf("%w: %d of %d file(s) failed", ErrBatchFailures, report.Failed, report.Total)
	}

	return nil
}

func (w *workflow) runBatch(ctx context.Context, args BatchArgs, files []m.Path) []m.FileResult {
	results := make([]m.FileResult, len(files))

	var group errgroup.Group

	threads := args.Threads
	if threads <= 0 {
		threads = 1
	}

	group.SetLimit(threads)

	for i, file := range files {
		group.Go(func() error {
			results[i] = w.mutateFile(ctx, args, i+1, file)
			w.DisplayFileResult(ctx, results[i])

			return nil
		})
	}

	_ = group.Wait()

	return results
}

// mutateFile runs one batch entry. File index is 1-based and offsets the seed.
func (w *workflow) mutateFile(ctx context.Context, args BatchArgs, index int, input m.Path) m.FileResult {
	cfg := args.Engine
	cfg.Seed += int64(index)

	result := m.FileResult{Index: index, Input: w.displayPath(ctx, args.DataDir, input), Seed: cfg.Seed, Status: m.FileFailed}

	fail := func(err error) m.FileResult {
		slog.Error("Failed to mutate file", "path", input, "error", err)
		result.Error = err.Error()

		return result
	}

	hash, err := w.HashFile(ctx, input)
	if err != nil {
		return fail(err)
	}

	result.Hash = hash

	src, err := w.ReadFile(ctx, input)
	if err != nil {
		return fail(err)
	}

	sessionCtx := ctx
	if args.Timeout > 0 {
		var cancel context.CancelFunc

		sessionCtx, cancel = context.WithTimeout(ctx, args.Timeout)
		defer cancel()
	}

	report, err := w.mutagen.Mutate(sessionCtx, cfg, src)
	if err != nil {
		return fail(err)
	}

	output := w.JoinPath(ctx, string(args.OutputDir), mutatedName(input))
	if err := w.WriteFile(ctx, output, report.Output, 0o600); err != nil {
		return fail(err)
	}

	result.Status = m.FileSuccess
	result.Output = filepath.Base(string(output))
	result.Accepted = report.Accepted
	result.Attempted = report.Attempted
	result.Stop = report.Stop

	return result
}

func (w *workflow) displayPath(ctx context.Context, root, path m.Path) string {
	rel, err := w.RelPath(ctx, root, path)
	if err != nil {
		return string(path)
	}

	return string(rel)
}

// mutatedName maps dir/name.ext to name_mutated.ext.
func mutatedName(path m.Path) string {
	base := filepath.Base(string(path))
	ext := filepath.Ext(base)

	return strings.TrimSuffix(base, ext) + "_mutated" + ext
}

func summarize(results []m.FileResult, start time.Time) m.BatchReport {
	report := m.BatchReport{
		RunID:     uuid.NewString(),
		Total:     len(results),
		Files:     results,
		Timestamp: start,
	}

	for _, result := range results {
		if result.Status == m.FileSuccess {
			report.Success++
		} else {
			report.Failed++
		}
	}

	report.DurationSeconds = time.Since(start).Seconds()

	return report
}

func (w *workflow) List(ctx context.Context, args ListArgs) error {
	src, err := w.ReadFile(ctx, args.Input)
	if err != nil {
		return fmt.Errorf("read %s: %w", args.Input, err)
	}

	candidates, err := w.mutagen.Candidates(ctx, args.Engine, src)
	if err != nil {
		return fmt.Errorf("list candidates of %s: %w", args.Input, err)
	}

	return w.DisplayCandidates(ctx, args.Input, candidates)
}

func (w *workflow) Pools(ctx context.Context, args PoolsArgs) error {
	src, err := w.ReadFile(ctx, args.Input)
	if err != nil {
		return fmt.Errorf("read %s: %w", args.Input, err)
	}

	pools, err := w.mutagen.Pools(ctx, args.Engine, src, args.Samples)
	if err != nil {
		return fmt.Errorf("collect donors of %s: %w", args.Input, err)
	}

	return w.DisplayPools(ctx, args.Input, pools)
}

func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	report, err := w.LoadBatchReport(ctx, args.Report)
	if err != nil {
		return fmt.Errorf("load report: %w", err)
	}

	return w.DisplayBatchReport(ctx, report)
}
