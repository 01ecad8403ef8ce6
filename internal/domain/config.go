package domain

import (
	"fmt"

	m "splicer.dev/pkg/splicer/internal/model"
)

// Engine defaults. They are heuristics and every one of them can be
// overridden through EngineConfig.
const (
	DefaultMutations     = 5
	DefaultSeed          = 42
	DefaultAttemptFactor = 4
	DefaultDepthPenalty  = 0.25
	DefaultJitter        = 1.0
	DefaultMinDonorLen   = 1
	DefaultMaxDonorLen   = 200
)

// EngineConfig is the immutable configuration of one mutation session.
type EngineConfig struct {
	Language  m.Language
	Mutations int
	Seed      int64

	// AttemptFactor multiplies Mutations to give the attempt budget.
	AttemptFactor int
	// DepthPenalty is added to a candidate's rank per level of depth.
	DepthPenalty float64
	// Jitter is the width of the PRNG window added to every score, so ranks
	// closer than Jitter may swap order.
	Jitter float64

	MinDonorLen int
	MaxDonorLen int
	// MaxDonorRetries caps how many candidates one iteration may try before
	// giving up; 0 means the whole candidate list.
	MaxDonorRetries int

	ExtraProtected    []string
	UseFallbackDonors bool
	WithDiff          bool
}

// DefaultEngineConfig returns the defaults for lang.
func DefaultEngineConfig(lang m.Language) EngineConfig {
	return EngineConfig{
		Language:          lang,
		Mutations:         DefaultMutations,
		Seed:              DefaultSeed,
		AttemptFactor:     DefaultAttemptFactor,
		DepthPenalty:      DefaultDepthPenalty,
		Jitter:            DefaultJitter,
		MinDonorLen:       DefaultMinDonorLen,
		MaxDonorLen:       DefaultMaxDonorLen,
		UseFallbackDonors: true,
	}
}

// Validate checks the configuration for values the driver cannot honour.
func (c EngineConfig) Validate() error {
	switch {
	case c.Mutations < 0:
		return fmt.Errorf("%w: mutations must be >= 0, got %d", ErrInvalidConfig, c.Mutations)
	case c.AttemptFactor < 1:
		return fmt.Errorf("%w: attempt factor must be >= 1, got %d", ErrInvalidConfig, c.AttemptFactor)
	case c.DepthPenalty < 0:
		return fmt.Errorf("%w: depth penalty must be >= 0, got %g", ErrInvalidConfig, c.DepthPenalty)
	case c.Jitter < 0:
		return fmt.Errorf("%w: jitter must be >= 0, got %g", ErrInvalidConfig, c.Jitter)
	case c.MinDonorLen < 1:
		return fmt.Errorf("%w: min donor length must be >= 1, got %d", ErrInvalidConfig, c.MinDonorLen)
	case c.MaxDonorLen < c.MinDonorLen:
		return fmt.Errorf("%w: max donor length %d below min %d", ErrInvalidConfig, c.MaxDonorLen, c.MinDonorLen)
	case c.MaxDonorRetries < 0:
		return fmt.Errorf("%w: max donor retries must be >= 0, got %d", ErrInvalidConfig, c.MaxDonorRetries)
	}

	if _, err := Profile(c.Language); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// Budget returns the hard cap on attempts for the session.
func (c EngineConfig) Budget() int {
	return c.Mutations * c.AttemptFactor
}
