package model

// NodeCategory groups grammatical kinds by how much structure they carry.
type NodeCategory string

const (
	// CategoryStructural covers blocks, expressions, statements and calls.
	CategoryStructural NodeCategory = "structural"
	// CategoryData covers literals and parameter/argument lists.
	CategoryData NodeCategory = "data"
	// CategoryIdentifier covers identifiers and other name-like leaves.
	CategoryIdentifier NodeCategory = "identifier"
)

// Candidate is a node of the current source unit annotated with its priority.
// It is only meaningful for the unit it was built from.
type Candidate struct {
	NodeID   int
	Kind     string
	Span     Span
	Depth    int
	Rank     int
	Category NodeCategory
	Score    float64 // rank + depth penalty + PRNG jitter; lower is picked first
	Eligible bool
	Reason   string // why the candidate was filtered, empty when eligible
}

// Outcome is the result of a single mutation attempt.
type Outcome string

const (
	// OutcomeAccepted means the splice parsed and became the new baseline.
	OutcomeAccepted Outcome = "accepted"
	// OutcomeRejectedDuplicateName means the splice introduced a duplicate declaration.
	OutcomeRejectedDuplicateName Outcome = "rejected-duplicate-name"
	// OutcomeRejectedInvalidSyntax means the spliced text failed to parse.
	OutcomeRejectedInvalidSyntax Outcome = "rejected-invalid-syntax"
	// OutcomeSkippedEmptyCandidates means no eligible candidate was left.
	OutcomeSkippedEmptyCandidates Outcome = "skipped-empty-candidates"
	// OutcomeSkippedNoDonor means no candidate had a compatible donor.
	OutcomeSkippedNoDonor Outcome = "skipped-no-donor"
)

// String implements fmt.Stringer.
func (o Outcome) String() string {
	return string(o)
}

// IsNoOp reports whether the attempt never produced a splice.
func (o Outcome) IsNoOp() bool {
	return o == OutcomeSkippedEmptyCandidates || o == OutcomeSkippedNoDonor
}

// Attempt records one iteration of the mutation driver.
type Attempt struct {
	Iteration   int          `json:"iteration" yaml:"iteration"`
	Kind        string       `json:"kind,omitempty" yaml:"kind,omitempty"`
	Category    NodeCategory `json:"category,omitempty" yaml:"category,omitempty"`
	Span        Span         `json:"span" yaml:"span"`
	Depth       int          `json:"depth" yaml:"depth"`
	Rank        int          `json:"rank" yaml:"rank"`
	TargetText  string       `json:"target,omitempty" yaml:"target,omitempty"`
	DonorText   string       `json:"donor,omitempty" yaml:"donor,omitempty"`
	Outcome     Outcome      `json:"outcome" yaml:"outcome"`
	LengthDelta int          `json:"length_delta" yaml:"length_delta"`
	Detail      string       `json:"detail,omitempty" yaml:"detail,omitempty"`
}
