package domain

import (
	"math/rand/v2"
	"sort"

	m "splicer.dev/pkg/splicer/internal/model"
)

// PriorityModel ranks candidates by structural class and depth. It never
// mutates anything; it only orders.
type PriorityModel struct {
	profile      GrammarProfile
	depthPenalty float64
	jitter       float64
}

// NewPriorityModel builds a PriorityModel from a profile and engine config.
func NewPriorityModel(profile GrammarProfile, cfg EngineConfig) PriorityModel {
	return PriorityModel{
		profile:      profile,
		depthPenalty: cfg.DepthPenalty,
		jitter:       cfg.Jitter,
	}
}

// Rank annotates every candidate with its class and score and returns them
// ordered best first. The PRNG is drawn once per candidate in the order
// given, which is document order when fed from BuildCatalog.
func (p PriorityModel) Rank(candidates []m.Candidate, rng *rand.Rand) []m.Candidate {
	ranked := make([]m.Candidate, len(candidates))
	copy(ranked, candidates)

	for i := range ranked {
		class := p.profile.Class(ranked[i].Kind)
		ranked[i].Rank = class.Rank
		ranked[i].Category = class.Category
		ranked[i].Score = p.score(class.Rank, ranked[i].Depth, rng.Float64())
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score < ranked[j].Score
	})

	return ranked
}

func (p PriorityModel) score(rank, depth int, draw float64) float64 {
	return float64(rank) + p.depthPenalty*float64(depth) + p.jitter*draw
}
