package domain

import "errors"

var (
	// ErrEmptyCandidateSet ends a round when no eligible candidate is left.
	ErrEmptyCandidateSet = errors.New("empty candidate set")
	// ErrNoCompatibleDonor means the pool has no other node of the candidate's kind.
	ErrNoCompatibleDonor = errors.New("no compatible donor")
	// ErrDuplicateDeclaration means a splice introduced a duplicate declared name.
	ErrDuplicateDeclaration = errors.New("duplicate declaration")
	// ErrAttemptBudgetExceeded means the session ran out of attempts.
	ErrAttemptBudgetExceeded = errors.New("attempt budget exceeded")
	// ErrInvalidConfig is returned by EngineConfig.Validate.
	ErrInvalidConfig = errors.New("invalid engine config")
)
