package controller

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "splicer.dev/pkg/splicer/internal/model"
)

const previewWidth = 32

// SimpleUI implements UI using cobra Command's output streams.
// Mutants go to stdout, everything else to stderr, so stdout can be redirected
// straight into a file.
type SimpleUI struct {
	cmd *cobra.Command
	mu  sync.Mutex
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, _ ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// DisplayMutant writes the mutated source verbatim.
func (s *SimpleUI) DisplayMutant(ctx context.Context, output []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.cmd.OutOrStdout().Write(output)

	return err
}

// DisplaySessionReport prints the outcome of a single session.
func (s *SimpleUI) DisplaySessionReport(ctx context.Context, path m.Path, report m.SessionReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.eprintf("%s", renderSessionReport(path, report))

	return nil
}

// DisplayFileResult prints one line per finished batch file.
func (s *SimpleUI) DisplayFileResult(ctx context.Context, result m.FileResult) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.eprintf("%s\n", formatFileResult(result))
}

// DisplayBatchReport prints the batch summary table.
func (s *SimpleUI) DisplayBatchReport(ctx context.Context, report m.BatchReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderBatchTable(report))

	return nil
}

// DisplayCandidates prints the ranked candidate catalog.
func (s *SimpleUI) DisplayCandidates(ctx context.Context, path m.Path, candidates []m.Candidate) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s: %d candidate(s)\n\n%s", path, len(candidates), renderCandidateTable(candidates))

	return nil
}

// DisplayPools prints the donor pool summary.
func (s *SimpleUI) DisplayPools(ctx context.Context, path m.Path, pools []m.PoolEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s: %d donor kind(s)\n\n%s", path, len(pools), renderPoolTable(pools))

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	s.fprintf(s.cmd.OutOrStdout(), format, args...)
}

func (s *SimpleUI) eprintf(format string, args ...interface{}) {
	s.fprintf(s.cmd.ErrOrStderr(), format, args...)
}

func (s *SimpleUI) fprintf(w io.Writer, format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = fmt.Fprintf(w, format, args...)
}

func renderSessionReport(path m.Path, report m.SessionReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s: %d/%d mutation(s) accepted in %d attempt(s) (budget %d, seed %d), stop: %s",
		path, report.Accepted, report.Requested, report.Attempted, report.Budget, report.Seed, report.Stop)

	if report.Partial {
		fmt.Fprintf(&b, " [partial, %d short]", report.Shortfall())
	}

	b.WriteString("\n")

	if len(report.Attempts) > 0 {
		b.WriteString("\n")
		b.WriteString(renderAttemptTable(report.Attempts))
	}

	if report.Diff != "" {
		b.WriteString("\n")
		b.WriteString(report.Diff)
	}

	return b.String()
}

func renderAttemptTable(attempts []m.Attempt) string {
	var tableBuffer bytes.Buffer

	table := newTable(&tableBuffer, []string{"#", "Kind", "Span", "Target", "Donor", "Outcome"})

	for _, attempt := range attempts {
		kind := attempt.Kind
		if kind == "" {
			kind = "-"
		}

		table.Append([]string{
			fmt.Sprintf("%d", attempt.Iteration),
			kind,
			formatSpan(attempt.Span),
			truncate(attempt.TargetText, previewWidth),
			truncate(attempt.DonorText, previewWidth),
			attempt.Outcome.String(),
		})
	}

	table.Render()

	return tableBuffer.String()
}

func renderCandidateTable(candidates []m.Candidate) string {
	var tableBuffer bytes.Buffer

	table := newTable(&tableBuffer, []string{"#", "Kind", "Category", "Rank", "Depth", "Span", "Score", "Eligible"})

	eligible := 0

	for i, cand := range candidates {
		status := "yes"
		if !cand.Eligible {
			status = "no (" + cand.Reason + ")"
		} else {
			eligible++
		}

		table.Append([]string{
			fmt.Sprintf("%d", i+1),
			cand.Kind,
			string(cand.Category),
			fmt.Sprintf("%d", cand.Rank),
			fmt.Sprintf("%d", cand.Depth),
			formatSpan(cand.Span),
			fmt.Sprintf("%.2f", cand.Score),
			status,
		})
	}

	table.SetFooter([]string{"", "", "", "", "", "", "Eligible", fmt.Sprintf("%d", eligible)})
	table.Render()

	return tableBuffer.String()
}

func renderPoolTable(pools []m.PoolEntry) string {
	var tableBuffer bytes.Buffer

	table := newTable(&tableBuffer, []string{"Kind", "Donors", "Samples"})

	total := 0

	for _, pool := range pools {
		samples := make([]string, 0, len(pool.Samples))
		for _, sample := range pool.Samples {
			samples = append(samples, truncate(sample, previewWidth))
		}

		table.Append([]string{pool.Kind, fmt.Sprintf("%d", pool.Count), strings.Join(samples, " | ")})

		total += pool.Count
	}

	table.SetFooter([]string{fmt.Sprintf("Total Kinds %d", len(pools)), fmt.Sprintf("%d", total), ""})
	table.Render()

	return tableBuffer.String()
}

func renderBatchTable(report m.BatchReport) string {
	var tableBuffer bytes.Buffer

	table := newTable(&tableBuffer, []string{"#", "Input", "Output", "Seed", "Accepted", "Status"})

	for _, file := range report.Files {
		status := string(file.Status)
		if file.Status == m.FileSuccess {
			status = string(file.Stop)
		}

		table.Append([]string{
			fmt.Sprintf("%d", file.Index),
			file.Input,
			file.Output,
			fmt.Sprintf("%d", file.Seed),
			fmt.Sprintf("%d/%d", file.Accepted, file.Attempted),
			status,
		})
	}

	table.SetFooter([]string{
		"",
		fmt.Sprintf("Total Files %d", report.Total),
		fmt.Sprintf("Success %d", report.Success),
		fmt.Sprintf("Failed %d", report.Failed),
		"",
		fmt.Sprintf("%.2fs", report.DurationSeconds),
	})
	table.Render()

	return fmt.Sprintf("Run %s\n%s", report.RunID, tableBuffer.String())
}

func formatFileResult(result m.FileResult) string {
	if result.Status == m.FileFailed {
		return fmt.Sprintf("[%d] %s failed: %s", result.Index, result.Input, result.Error)
	}

	return fmt.Sprintf("[%d] %s -> %s (%d accepted, %s)", result.Index, result.Input, result.Output, result.Accepted, result.Stop)
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	return table
}

func formatSpan(span m.Span) string {
	if span.End == 0 && span.Start == 0 {
		return "-"
	}

	return fmt.Sprintf("%d..%d", span.Start, span.End)
}

// truncate flattens newlines and shortens text to width runes.
func truncate(text string, width int) string {
	text = strings.Join(strings.Fields(text), " ")

	runes := []rune(text)
	if len(runes) <= width {
		return text
	}

	return string(runes[:width-1]) + "…"
}
