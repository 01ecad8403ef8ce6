package domain

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"

	m "splicer.dev/pkg/splicer/internal/model"
)

// donor is one replacement text observed for a kind.
type donor struct {
	Text string
	// Declares is the name the donor binds when it is a declaration.
	Declares string
}

// DonorPool holds, per grammatical kind, the texts usable as replacements.
// The first absorbed unit contributes every span (a multiset); later units and
// fallback sets only contribute texts not seen before for that kind.
type DonorPool struct {
	profile GrammarProfile
	minLen  int
	maxLen  int
	byKind  map[string][]donor
	seen    map[string]map[string]bool
	units   int
}

// NewDonorPool creates an empty pool.
func NewDonorPool(profile GrammarProfile, cfg EngineConfig) *DonorPool {
	return &DonorPool{
		profile: profile,
		minLen:  cfg.MinDonorLen,
		maxLen:  cfg.MaxDonorLen,
		byKind:  map[string][]donor{},
		seen:    map[string]map[string]bool{},
	}
}

// Absorb records the spans of unit in document order.
func (p *DonorPool) Absorb(unit m.SourceUnit) {
	first := p.units == 0
	p.units++

	for i := range unit.Tree.Nodes {
		node := &unit.Tree.Nodes[i]
		if !isCatalogNode(node) {
			continue
		}

		size := node.Span.Len()
		if size < p.minLen || size > p.maxLen {
			continue
		}

		d := donor{Text: unit.TextOf(node)}
		if p.profile.DeclarationKinds[node.Kind] {
			d.Declares = unit.TextOf(unit.Tree.NameChild(node.ID))
		}

		p.add(node.Kind, d, first)
	}
}

// AddFallback seeds kinds with texts that may not occur in the input.
func (p *DonorPool) AddFallback(fallback map[string][]string) {
	kinds := make([]string, 0, len(fallback))
	for kind := range fallback {
		kinds = append(kinds, kind)
	}

	sort.Strings(kinds)

	for _, kind := range kinds {
		for _, text := range fallback[kind] {
			p.add(kind, donor{Text: text}, false)
		}
	}
}

func (p *DonorPool) add(kind string, d donor, allowRepeat bool) {
	seen, ok := p.seen[kind]
	if !ok {
		seen = map[string]bool{}
		p.seen[kind] = seen
	}

	if seen[d.Text] && !allowRepeat {
		return
	}

	seen[d.Text] = true
	p.byKind[kind] = append(p.byKind[kind], d)
}

// Pick chooses uniformly among the donors of kind that differ from target and
// pass allow.
func (p *DonorPool) Pick(rng *rand.Rand, kind, target string, allow func(donor) bool) (donor, error) {
	compatible := make([]donor, 0, len(p.byKind[kind]))

	for _, d := range p.byKind[kind] {
		if d.Text == target {
			continue
		}

		if allow != nil && !allow(d) {
			continue
		}

		compatible = append(compatible, d)
	}

	if len(compatible) == 0 {
		return donor{}, fmt.Errorf("%w for %s", ErrNoCompatibleDonor, kind)
	}

	return compatible[rng.IntN(len(compatible))], nil
}

// Size returns the number of donors recorded for kind.
func (p *DonorPool) Size(kind string) int {
	return len(p.byKind[kind])
}

// Entries summarises the pool, kinds sorted by name, with up to samples
// previews per kind.
func (p *DonorPool) Entries(samples int) []m.PoolEntry {
	kinds := make([]string, 0, len(p.byKind))
	for kind := range p.byKind {
		kinds = append(kinds, kind)
	}

	sort.Strings(kinds)

	entries := make([]m.PoolEntry, 0, len(kinds))

	for _, kind := range kinds {
		donors := p.byKind[kind]
		entry := m.PoolEntry{Kind: kind, Count: len(donors)}

		for i := 0; i < len(donors) && i < samples; i++ {
			entry.Samples = append(entry.Samples, preview(donors[i].Text, 50))
		}

		entries = append(entries, entry)
	}

	return entries
}

func preview(text string, width int) string {
	runes := []rune(strings.ReplaceAll(text, "\n", `\n`))
	if len(runes) > width {
		return string(runes[:width-3]) + "..."
	}

	return string(runes)
}
