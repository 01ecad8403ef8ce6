package controller

import (
	"bytes"
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	m "splicer.dev/pkg/splicer/internal/model"
)

func TestBatchModel_Update(t *testing.T) {
	var model tea.Model = newBatchModel(3)

	model, cmd := model.Update(fileDoneMsg{result: m.FileResult{Index: 1, Input: "a.rs", Status: m.FileSuccess}})
	if cmd != nil {
		t.Fatalf("Update(fileDoneMsg) returned a command")
	}

	model, _ = model.Update(fileDoneMsg{result: m.FileResult{Index: 2, Input: "b.rs", Status: m.FileFailed}})

	bm := model.(batchModel)
	if bm.done != 2 || bm.failed != 1 || bm.last != "b.rs" {
		t.Fatalf("batchModel = %+v, want done=2 failed=1 last=b.rs", bm)
	}

	view := bm.View()
	for _, want := range []string{"2/3 file(s)", "1 failed", "b.rs"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q, got:\n%s", want, view)
		}
	}

	model, cmd = model.Update(batchDoneMsg{})
	if cmd == nil {
		t.Fatalf("Update(batchDoneMsg) should quit")
	}

	if !model.(batchModel).quitting {
		t.Fatalf("batchModel should be quitting")
	}
}

func TestBatchModel_WindowSize(t *testing.T) {
	model, _ := newBatchModel(1).Update(tea.WindowSizeMsg{Width: 30, Height: 10})

	if got := model.(batchModel).progress.Width; got != 26 {
		t.Fatalf("progress width = %d, want 26", got)
	}

	model, _ = model.Update(tea.WindowSizeMsg{Width: 200, Height: 10})

	if got := model.(batchModel).progress.Width; got != maxProgressWidth {
		t.Fatalf("progress width = %d, want %d", got, maxProgressWidth)
	}
}

func TestBatchModel_PercentOfEmptyBatch(t *testing.T) {
	if got := newBatchModel(0).percent(); got != 1 {
		t.Fatalf("percent() = %v, want 1", got)
	}
}

func TestTUI_FallsBackOutsideBatch(t *testing.T) {
	var stdout, stderr bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	ui := NewTUI(cmd)

	if err := ui.Start(context.Background(), WithSingleMode()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	ui.DisplayFileResult(context.Background(), m.FileResult{Index: 1, Input: "a.rs", Output: "a_mutated.rs", Status: m.FileSuccess, Stop: m.StopCompleted})
	ui.Close(context.Background())

	if !strings.Contains(stderr.String(), "[1] a.rs -> a_mutated.rs") {
		t.Fatalf("DisplayFileResult() output = %q", stderr.String())
	}

	if err := ui.DisplaySessionReport(context.Background(), "a.rs", m.SessionReport{Stop: m.StopCompleted}); err != nil {
		t.Fatalf("DisplaySessionReport() error = %v", err)
	}

	if !strings.Contains(stderr.String(), "splicer · a.rs") {
		t.Fatalf("DisplaySessionReport() missing title, got %q", stderr.String())
	}
}

func TestNewUI(t *testing.T) {
	cmd := &cobra.Command{}

	if _, ok := NewUI(cmd, false).(*SimpleUI); !ok {
		t.Fatalf("NewUI(false) should return SimpleUI")
	}

	if _, ok := NewUI(cmd, true).(*TUI); !ok {
		t.Fatalf("NewUI(true) should return TUI")
	}

	if IsTTY(&bytes.Buffer{}) {
		t.Fatalf("IsTTY(buffer) should be false")
	}
}
