package controller

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	m "splicer.dev/pkg/splicer/internal/model"
)

const maxProgressWidth = 60

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c7a89"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935"))
)

// TUI implements UI for terminals. Batch runs get a live progress bar, the
// other displays reuse SimpleUI's tables under a styled title.
type TUI struct {
	*SimpleUI
	output io.Writer

	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
}

// NewTUI creates a new TUI writing to the command's stderr.
func NewTUI(cmd *cobra.Command) *TUI {
	return &TUI{SimpleUI: NewSimpleUI(cmd), output: cmd.ErrOrStderr()}
}

// Start launches the progress program in batch mode.
func (t *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg := resolveStartConfig(options)
	if cfg.mode != ModeBatch {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.program = tea.NewProgram(
		newBatchModel(cfg.total),
		tea.WithContext(ctx),
		tea.WithOutput(t.output),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)
	t.done = make(chan struct{})

	go func(program *tea.Program, done chan struct{}) {
		defer close(done)

		if _, err := program.Run(); err != nil {
			slog.Debug("Progress display stopped", "error", err)
		}
	}(t.program, t.done)

	return nil
}

// Close stops the progress program and waits for its final frame.
func (t *TUI) Close(_ context.Context) {
	t.mu.Lock()
	program, done := t.program, t.done
	t.program, t.done = nil, nil
	t.mu.Unlock()

	if program == nil {
		return
	}

	program.Send(batchDoneMsg{})
	<-done
}

// DisplayFileResult advances the progress bar, or prints a line outside batch mode.
func (t *TUI) DisplayFileResult(ctx context.Context, result m.FileResult) {
	t.mu.Lock()
	program := t.program
	t.mu.Unlock()

	if program == nil {
		t.SimpleUI.DisplayFileResult(ctx, result)
		return
	}

	program.Send(fileDoneMsg{result: result})
}

// DisplaySessionReport prints the session summary under a styled title.
func (t *TUI) DisplaySessionReport(ctx context.Context, path m.Path, report m.SessionReport) error {
	t.eprintf("%s\n", titleStyle.Render("splicer · "+string(path)))

	return t.SimpleUI.DisplaySessionReport(ctx, path, report)
}

// DisplayBatchReport prints the batch summary under a styled title.
func (t *TUI) DisplayBatchReport(ctx context.Context, report m.BatchReport) error {
	t.printf("%s\n", titleStyle.Render(fmt.Sprintf("splicer · batch %d/%d succeeded", report.Success, report.Total)))

	return t.SimpleUI.DisplayBatchReport(ctx, report)
}

type fileDoneMsg struct {
	result m.FileResult
}

type batchDoneMsg struct{}

// batchModel is the Bubble Tea model of a running batch.
type batchModel struct {
	total    int
	done     int
	failed   int
	last     string
	progress progress.Model
	quitting bool
}

func newBatchModel(total int) batchModel {
	return batchModel{
		total:    total,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(maxProgressWidth)),
	}
}

func (bm batchModel) Init() tea.Cmd {
	return nil
}

func (bm batchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		bm.progress.Width = min(msg.Width-4, maxProgressWidth)
		return bm, nil

	case fileDoneMsg:
		bm.done++
		if msg.result.Status == m.FileFailed {
			bm.failed++
		}

		bm.last = msg.result.Input

		return bm, nil

	case batchDoneMsg:
		bm.quitting = true
		return bm, tea.Quit
	}

	return bm, nil
}

func (bm batchModel) percent() float64 {
	if bm.total == 0 {
		return 1
	}

	return float64(bm.done) / float64(bm.total)
}

func (bm batchModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("splicer · batch"))
	b.WriteString("\n\n  ")
	b.WriteString(bm.progress.ViewAs(bm.percent()))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "  %d/%d file(s)", bm.done, bm.total)

	if bm.failed > 0 {
		b.WriteString(" · ")
		b.WriteString(failureStyle.Render(fmt.Sprintf("%d failed", bm.failed)))
	}

	b.WriteString("\n")

	if bm.last != "" && !bm.quitting {
		b.WriteString("  ")
		b.WriteString(mutedStyle.Render(bm.last))
		b.WriteString("\n")
	}

	return b.String()
}
