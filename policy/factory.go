package policy

import (
	"fmt"

	"github.com/memhier/cachesim/memory"
)

// ReplacementSpec names a replacement policy and its parameters, as decoded
// from a cache level's config block.
type ReplacementSpec struct {
	Kind string // "lru" | "srrip"
}

// PrefetchSpec names a prefetch policy and its parameters.
type PrefetchSpec struct {
	Kind      string // "none" | "next_n_line" | "stream" | "stride"
	Degree    int
	TableSize int
}

// BypassSpec names a bypass policy and its parameters.
type BypassSpec struct {
	Kind      string // "none" | "prob"
	PDemand   float64
	PPrefetch float64
	Seed      int64
}

// NewReplacement builds the ReplacementPolicy named by spec. Unlike the
// prefetch and bypass families, LRU and SRRIP carry no per-instance state,
// so every cache level can share one package-level value.
func NewReplacement(spec ReplacementSpec) (memory.ReplacementPolicy, error) {
	switch spec.Kind {
	case "", "lru":
		return LRU{}, nil
	case "srrip":
		return SRRIP{}, nil
	default:
		return nil, fmt.Errorf("policy: unknown replacement policy %q", spec.Kind)
	}
}

// NewPrefetch builds the PrefetchPolicy named by spec.
func NewPrefetch(spec PrefetchSpec) (memory.PrefetchPolicy, error) {
	switch spec.Kind {
	case "", "none":
		return NoPrefetch{}, nil
	case "next_n_line":
		if spec.Degree <= 0 {
			return nil, fmt.Errorf("policy: next_n_line requires degree > 0")
		}
		return NextNLine{Degree: spec.Degree}, nil
	case "stream":
		if spec.Degree <= 0 || spec.TableSize <= 0 {
			return nil, fmt.Errorf("policy: stream requires degree > 0 and table_size > 0")
		}
		return NewStream(spec.Degree, spec.TableSize), nil
	case "stride":
		if spec.Degree <= 0 || spec.TableSize <= 0 {
			return nil, fmt.Errorf("policy: stride requires degree > 0 and table_size > 0")
		}
		return NewStride(spec.Degree, spec.TableSize), nil
	default:
		return nil, fmt.Errorf("policy: unknown prefetch policy %q", spec.Kind)
	}
}

// NewBypass builds the BypassPolicy named by spec.
func NewBypass(spec BypassSpec) (memory.BypassPolicy, error) {
	switch spec.Kind {
	case "", "none":
		return NoBypass{}, nil
	case "prob":
		if spec.PDemand < 0 || spec.PDemand > 1 || spec.PPrefetch < 0 || spec.PPrefetch > 1 {
			return nil, fmt.Errorf("policy: prob bypass requires probabilities in [0,1], got demand=%f prefetch=%f", spec.PDemand, spec.PPrefetch)
		}
		return NewProbBypass(spec.PDemand, spec.PPrefetch, spec.Seed), nil
	default:
		return nil, fmt.Errorf("policy: unknown bypass policy %q", spec.Kind)
	}
}
