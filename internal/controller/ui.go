// Package controller provides output adapters for displaying splicing results.
package controller

import (
	"context"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	m "splicer.dev/pkg/splicer/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeSingle StartMode = iota
	ModeBatch
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode  StartMode
	total int
}

// WithSingleMode sets the UI to single-file mode.
func WithSingleMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeSingle
	}
}

// WithBatchMode sets the UI to batch mode over total files.
func WithBatchMode(total int) StartOption {
	return func(c *StartConfig) {
		c.mode = ModeBatch
		c.total = total
	}
}

func resolveStartConfig(options []StartOption) StartConfig {
	cfg := StartConfig{mode: ModeSingle}
	for _, option := range options {
		option(&cfg)
	}

	return cfg
}

// UI defines how workflow results are shown.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	DisplayMutant(ctx context.Context, output []byte) error
	DisplaySessionReport(ctx context.Context, path m.Path, report m.SessionReport) error
	DisplayFileResult(ctx context.Context, result m.FileResult)
	DisplayBatchReport(ctx context.Context, report m.BatchReport) error
	DisplayCandidates(ctx context.Context, path m.Path, candidates []m.Candidate) error
	DisplayPools(ctx context.Context, path m.Path, pools []m.PoolEntry) error
}

// NewUI returns the TUI when attached to a terminal and SimpleUI otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
