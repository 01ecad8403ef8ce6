package model

import "time"

// StopReason explains why a mutation session ended.
type StopReason string

const (
	// StopCompleted means the requested number of mutations was accepted.
	StopCompleted StopReason = "completed"
	// StopBudgetExhausted means the attempt budget ran out first.
	StopBudgetExhausted StopReason = "budget-exhausted"
	// StopNoCandidates means the tree offered no eligible candidate.
	StopNoCandidates StopReason = "no-candidates"
	// StopNoDonor means no eligible candidate had a compatible donor.
	StopNoDonor StopReason = "no-donor"
	// StopInterrupted means the caller's context ended between iterations.
	StopInterrupted StopReason = "interrupted"
)

// SessionReport is the result of one mutation session over one file.
type SessionReport struct {
	Language  Language   `json:"language" yaml:"language"`
	Seed      int64      `json:"seed" yaml:"seed"`
	Requested int        `json:"requested" yaml:"requested"`
	Accepted  int        `json:"accepted" yaml:"accepted"`
	Attempted int        `json:"attempted" yaml:"attempted"`
	Budget    int        `json:"budget" yaml:"budget"`
	Stop      StopReason `json:"stop" yaml:"stop"`
	Partial   bool       `json:"partial" yaml:"partial"`
	Attempts  []Attempt  `json:"attempts" yaml:"attempts"`
	Diff      string     `json:"diff,omitempty" yaml:"diff,omitempty"`
	Output    []byte     `json:"-" yaml:"-"`
}

// Shortfall returns how many requested mutations were not accepted.
func (r SessionReport) Shortfall() int {
	if r.Accepted >= r.Requested {
		return 0
	}

	return r.Requested - r.Accepted
}

// FileStatus is the batch outcome of a single input file.
type FileStatus string

const (
	// FileSuccess means a session ran and the output was written.
	FileSuccess FileStatus = "success"
	// FileFailed means the file could not be read, parsed or written.
	FileFailed FileStatus = "failed"
)

// FileResult is one entry of a batch report.
type FileResult struct {
	Index     int        `json:"index" yaml:"index"`
	Input     string     `json:"input" yaml:"input"`
	Hash      string     `json:"sha256,omitempty" yaml:"sha256,omitempty"`
	Output    string     `json:"output,omitempty" yaml:"output,omitempty"`
	Seed      int64      `json:"seed" yaml:"seed"`
	Status    FileStatus `json:"status" yaml:"status"`
	Accepted  int        `json:"accepted" yaml:"accepted"`
	Attempted int        `json:"attempted" yaml:"attempted"`
	Stop      StopReason `json:"stop,omitempty" yaml:"stop,omitempty"`
	Error     string     `json:"error,omitempty" yaml:"error,omitempty"`
}

// BatchReport summarises a batch run.
type BatchReport struct {
	RunID           string       `json:"run_id" yaml:"run_id"`
	Total           int          `json:"total" yaml:"total"`
	Success         int          `json:"success" yaml:"success"`
	Failed          int          `json:"failed" yaml:"failed"`
	Files           []FileResult `json:"files" yaml:"files"`
	Timestamp       time.Time    `json:"timestamp" yaml:"timestamp"`
	DurationSeconds float64      `json:"duration_seconds" yaml:"duration_seconds"`
}

// PoolEntry summarises the donors collected for one grammatical kind.
type PoolEntry struct {
	Kind    string
	Count   int
	Samples []string
}
