package policy

import (
	"math/rand"

	"github.com/memhier/cachesim/memory"
)

// NoBypass never suppresses a fill.
type NoBypass struct{}

func (NoBypass) ShouldBypass(set *memory.Set, isPrefetch bool) bool { return false }

// ProbBypass bypasses a fill into a full set with probability PDemand (for
// demand fills) or PPrefetch (for prefetch fills), using a seeded
// deterministic source so the same trace, configuration and seed give the
// same bypass decisions on every run. The source is not reset between
// warmup replays, so each replay draws fresh values from it.
type ProbBypass struct {
	PDemand   float64
	PPrefetch float64
	rng       *rand.Rand
}

func NewProbBypass(pDemand, pPrefetch float64, seed int64) *ProbBypass {
	return &ProbBypass{PDemand: pDemand, PPrefetch: pPrefetch, rng: rand.New(rand.NewSource(seed))}
}

func (b *ProbBypass) ShouldBypass(set *memory.Set, isPrefetch bool) bool {
	if !set.IsFull() {
		return false
	}
	p := b.PDemand
	if isPrefetch {
		p = b.PPrefetch
	}
	return b.rng.Float64() < p
}
