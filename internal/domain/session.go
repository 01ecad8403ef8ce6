package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"splicer.dev/pkg/splicer/internal/adapter"
	m "splicer.dev/pkg/splicer/internal/model"
)

// pcgStream is the fixed second word of the PCG state; only the seed varies.
const pcgStream = 0x9e3779b97f4a7c15

// Session drives one file through Selecting -> Splicing -> Reparsing ->
// Accepted/Reverted until the requested count or the attempt budget is
// reached. A Session is single-use and not safe for concurrent use.
type Session struct {
	syntax   adapter.SyntaxAdapter
	cfg      EngineConfig
	profile  GrammarProfile
	rng      *rand.Rand
	pool     *DonorPool
	priority PriorityModel
	filter   SafetyFilter
}

// NewSession validates cfg and prepares a session seeded with cfg.Seed.
func NewSession(syntax adapter.SyntaxAdapter, cfg EngineConfig) (*Session, error) {
	if syntax == nil {
		return nil, fmt.Errorf("missing syntax adapter")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	profile, err := Profile(cfg.Language)
	if err != nil {
		return nil, err
	}

	return &Session{
		syntax:   syntax,
		cfg:      cfg,
		profile:  profile,
		rng:      rand.New(rand.NewPCG(uint64(cfg.Seed), pcgStream)), //nolint:gosec // reproducible, not secret
		pool:     NewDonorPool(profile, cfg),
		priority: NewPriorityModel(profile, cfg),
		filter:   NewSafetyFilter(profile, NewProtectedSet(profile, cfg.ExtraProtected...)),
	}, nil
}

// Run mutates src. The only error is a failure to parse src itself; every
// per-iteration failure is recorded in the report instead.
func (s *Session) Run(ctx context.Context, src []byte) (m.SessionReport, error) {
	unit, err := s.load(ctx, src)
	if err != nil {
		return m.SessionReport{}, err
	}

	report := m.SessionReport{
		Language:  s.cfg.Language,
		Seed:      s.cfg.Seed,
		Requested: s.cfg.Mutations,
		Budget:    s.cfg.Budget(),
		Stop:      m.StopCompleted,
		Attempts:  make([]m.Attempt, 0, s.cfg.Mutations),
	}

	slog.Debug("Starting mutation session", "language", s.cfg.Language, "seed", s.cfg.Seed, "requested", s.cfg.Mutations, "budget", report.Budget)

	unit, report.Stop = s.loop(ctx, unit, &report)

	report.Partial = report.Accepted < report.Requested
	report.Output = unit.Text

	if s.cfg.WithDiff && report.Accepted > 0 {
		report.Diff = UnifiedDiff(src, unit.Text)
	}

	slog.Debug("Finished mutation session", "accepted", report.Accepted, "attempted", report.Attempted, "stop", report.Stop)

	return report, nil
}

func (s *Session) load(ctx context.Context, src []byte) (m.SourceUnit, error) {
	tree, err := s.syntax.Parse(ctx, s.cfg.Language, src)
	if err != nil {
		return m.SourceUnit{}, fmt.Errorf("parse original: %w", err)
	}

	unit := m.SourceUnit{Text: src, Tree: tree}

	s.pool.Absorb(unit)

	if s.cfg.UseFallbackDonors {
		s.pool.AddFallback(s.profile.FallbackDonors)
	}

	return unit, nil
}

func (s *Session) loop(ctx context.Context, unit m.SourceUnit, report *m.SessionReport) (m.SourceUnit, m.StopReason) {
	for report.Accepted < report.Requested {
		if report.Attempted >= report.Budget {
			slog.Debug("Attempt budget exhausted", "error", ErrAttemptBudgetExceeded, "accepted", report.Accepted)
			return unit, m.StopBudgetExhausted
		}

		if ctx.Err() != nil {
			return unit, m.StopInterrupted
		}

		attempt, next, err := s.step(ctx, unit, report.Attempted)
		report.Attempts = append(report.Attempts, attempt)
		report.Attempted++

		switch {
		case errors.Is(err, ErrEmptyCandidateSet):
			return unit, m.StopNoCandidates
		case errors.Is(err, ErrNoCompatibleDonor):
			return unit, m.StopNoDonor
		}

		if attempt.Outcome == m.OutcomeAccepted {
			unit = next
			report.Accepted++

			s.pool.Absorb(unit)
		}
	}

	return unit, m.StopCompleted
}

// rankedCandidates builds, ranks and filters the catalog of unit. The full
// ranked list (with eligibility marks) and the eligible subset are returned.
func (s *Session) rankedCandidates(unit m.SourceUnit) ([]m.Candidate, []m.Candidate, declarationIndex, error) {
	decls := indexDeclarations(unit, s.profile)

	catalog, err := BuildCatalog(unit)
	if err != nil {
		return nil, nil, decls, err
	}

	ranked := s.priority.Rank(catalog, s.rng)
	eligible := s.filter.Apply(unit, ranked, decls)

	if len(eligible) == 0 {
		return ranked, nil, decls, ErrEmptyCandidateSet
	}

	return ranked, eligible, decls, nil
}

func (s *Session) step(ctx context.Context, unit m.SourceUnit, iteration int) (m.Attempt, m.SourceUnit, error) {
	_, eligible, decls, err := s.rankedCandidates(unit)
	if err != nil {
		return m.Attempt{Iteration: iteration, Outcome: m.OutcomeSkippedEmptyCandidates, Detail: err.Error()}, unit, err
	}

	tries := len(eligible)
	if s.cfg.MaxDonorRetries > 0 && s.cfg.MaxDonorRetries < tries {
		tries = s.cfg.MaxDonorRetries
	}

	for _, cand := range eligible[:tries] {
		target := unit.TextOf(unit.Tree.Node(cand.NodeID))

		d, err := s.pool.Pick(s.rng, cand.Kind, target, func(d donor) bool {
			return s.filter.DonorAllowed(unit, cand, d, decls)
		})
		if err != nil {
			slog.Debug("Skipping candidate", "kind", cand.Kind, "start", cand.Span.Start, "error", err)
			continue
		}

		return s.splice(ctx, unit, cand, target, d.Text, iteration, decls)
	}

	return m.Attempt{
		Iteration: iteration,
		Outcome:   m.OutcomeSkippedNoDonor,
		Detail:    fmt.Sprintf("%d candidate(s) tried", tries),
	}, unit, ErrNoCompatibleDonor
}

func (s *Session) splice(ctx context.Context, unit m.SourceUnit, cand m.Candidate, target, donorText string, iteration int, before declarationIndex) (m.Attempt, m.SourceUnit, error) {
	attempt := m.Attempt{
		Iteration:   iteration,
		Kind:        cand.Kind,
		Category:    cand.Category,
		Span:        cand.Span,
		Depth:       cand.Depth,
		Rank:        cand.Rank,
		TargetText:  target,
		DonorText:   donorText,
		LengthDelta: len(donorText) - len(target),
	}

	text := Splice(unit.Text, cand.Span, donorText)

	// A splice-reparse step is never cut short by the caller.
	tree, err := s.syntax.Parse(context.WithoutCancel(ctx), s.cfg.Language, text)
	if err != nil {
		attempt.Outcome = m.OutcomeRejectedInvalidSyntax
		attempt.Detail = err.Error()

		slog.Debug("Reverted splice", "kind", cand.Kind, "outcome", attempt.Outcome, "error", err)

		return attempt, unit, nil
	}

	next := m.SourceUnit{Text: text, Tree: tree}

	if err := s.checkDeclarations(before, indexDeclarations(next, s.profile)); err != nil {
		attempt.Outcome = m.OutcomeRejectedDuplicateName
		attempt.Detail = err.Error()

		slog.Debug("Reverted splice", "kind", cand.Kind, "outcome", attempt.Outcome, "error", err)

		return attempt, unit, nil
	}

	attempt.Outcome = m.OutcomeAccepted

	slog.Debug("Accepted splice", "kind", cand.Kind, "start", cand.Span.Start, "end", cand.Span.End, "delta", attempt.LengthDelta)

	return attempt, next, nil
}

func (s *Session) checkDeclarations(before, after declarationIndex) error {
	if after.duplicates() > before.duplicates() {
		return fmt.Errorf("%w: splice redeclares a name in scope", ErrDuplicateDeclaration)
	}

	if len(after.entrySpans) != len(before.entrySpans) {
		return fmt.Errorf("%w: entry point declarations changed from %d to %d",
			ErrDuplicateDeclaration, len(before.entrySpans), len(after.entrySpans))
	}

	if len(after.entryCallSpans) != len(before.entryCallSpans) {
		return fmt.Errorf("%w: entry point calls changed from %d to %d",
			ErrDuplicateDeclaration, len(before.entryCallSpans), len(after.entryCallSpans))
	}

	return nil
}

// Candidates returns the ranked catalog of src with eligibility marks,
// as the first selection round of a session would see it.
func (s *Session) Candidates(ctx context.Context, src []byte) ([]m.Candidate, error) {
	unit, err := s.load(ctx, src)
	if err != nil {
		return nil, err
	}

	ranked, _, _, err := s.rankedCandidates(unit)
	if err != nil && !errors.Is(err, ErrEmptyCandidateSet) {
		return nil, err
	}

	return ranked, nil
}

// Pools returns the donor pool collected from src.
func (s *Session) Pools(ctx context.Context, src []byte, samples int) ([]m.PoolEntry, error) {
	if _, err := s.load(ctx, src); err != nil {
		return nil, err
	}

	return s.pool.Entries(samples), nil
}

// Splice returns a copy of text with span replaced by replacement.
func Splice(text []byte, span m.Span, replacement string) []byte {
	out := make([]byte, 0, len(text)-span.Len()+len(replacement))
	out = append(out, text[:span.Start]...)
	out = append(out, replacement...)
	out = append(out, text[span.End:]...)

	return out
}
