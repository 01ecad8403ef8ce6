package domain

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "splicer.dev/pkg/splicer/internal/model"
)

func TestPriorityModel_RankWithoutJitter(t *testing.T) {
	profile, err := Profile(m.LanguageRust)
	require.NoError(t, err)

	cfg := DefaultEngineConfig(m.LanguageRust)
	cfg.Jitter = 0

	candidates := []m.Candidate{
		{NodeID: 1, Kind: "identifier", Depth: 1},
		{NodeID: 2, Kind: "block", Depth: 3},
		{NodeID: 3, Kind: "unknown_kind", Depth: 0},
		{NodeID: 4, Kind: "integer_literal", Depth: 2},
		{NodeID: 5, Kind: "integer_literal", Depth: 2},
	}

	ranked := NewPriorityModel(profile, cfg).Rank(candidates, rand.New(rand.NewPCG(1, 2)))

	ids := make([]int, 0, len(ranked))
	for _, cand := range ranked {
		ids = append(ids, cand.NodeID)
	}

	assert.Equal(t, []int{2, 4, 5, 3, 1}, ids)

	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, m.CategoryStructural, ranked[0].Category)
	assert.InDelta(t, 1.75, ranked[0].Score, 1e-9)

	assert.Equal(t, DefaultClass.Rank, ranked[3].Rank)
	assert.Equal(t, m.CategoryData, ranked[3].Category)

	assert.Equal(t, m.CategoryIdentifier, ranked[4].Category)

	assert.Equal(t, "identifier", candidates[0].Kind, "input is not reordered")
	assert.Zero(t, candidates[0].Rank, "input is not annotated")
}

func TestPriorityModel_JitterIsBoundedAndSeeded(t *testing.T) {
	profile, err := Profile(m.LanguageRust)
	require.NoError(t, err)

	cfg := DefaultEngineConfig(m.LanguageRust)
	model := NewPriorityModel(profile, cfg)

	candidates := []m.Candidate{
		{NodeID: 1, Kind: "string_literal", Depth: 4},
		{NodeID: 2, Kind: "integer_literal", Depth: 4},
		{NodeID: 3, Kind: "parameters", Depth: 2},
		{NodeID: 4, Kind: "arguments", Depth: 5},
	}

	first := model.Rank(candidates, rand.New(rand.NewPCG(7, pcgStream)))
	second := model.Rank(candidates, rand.New(rand.NewPCG(7, pcgStream)))
	assert.Equal(t, first, second)

	for _, cand := range first {
		base := float64(cand.Rank) + cfg.DepthPenalty*float64(cand.Depth)
		assert.GreaterOrEqual(t, cand.Score, base)
		assert.Less(t, cand.Score, base+cfg.Jitter)
	}

	for i := 1; i < len(first); i++ {
		assert.LessOrEqual(t, first[i-1].Score, first[i].Score)
	}
}

func TestPriorityModel_StructuralBeforeIdentifiers(t *testing.T) {
	unit := parseUnit(t, m.LanguageRust, "fn main() { let x = 1 + 2; }")

	catalog, err := BuildCatalog(unit)
	require.NoError(t, err)

	profile, err := Profile(m.LanguageRust)
	require.NoError(t, err)

	ranked := NewPriorityModel(profile, DefaultEngineConfig(m.LanguageRust)).Rank(catalog, rand.New(rand.NewPCG(42, pcgStream)))

	assert.Equal(t, "block", ranked[0].Kind)
	assert.Equal(t, "identifier", ranked[len(ranked)-1].Kind)
}
