// Package config loads and validates the JSON document describing a memory
// hierarchy, and builds the runnable hierarchy.Hierarchy and bound policies
// from it.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/memhier/cachesim/hierarchy"
	"github.com/memhier/cachesim/memory"
	"github.com/memhier/cachesim/policy"
)

// Document is the top-level recognized shape of a configuration file.
type Document struct {
	CacheHierarchy []LevelConfig        `json:"cache_hierarchy"`
	Interconnects  []InterconnectConfig `json:"interconnects"`
	MainMemory     MainMemoryConfig     `json:"main_memory"`
}

type LevelConfig struct {
	ID     string      `json:"id"`
	Level  int         `json:"level"`
	Config CacheParams `json:"config"`
}

type CacheParams struct {
	Size              string          `json:"size"`
	BlockSize         int             `json:"block_size"`
	Associativity     int             `json:"associativity"`
	HitLatency        uint64          `json:"hit_latency"`
	ReplacementPolicy string          `json:"replacement_policy"`
	WritePolicy       string          `json:"write_policy"`
	AllocationPolicy  string          `json:"allocation_policy"`
	Prefetch          *PrefetchParams `json:"prefetch,omitempty"`
	Bypass            *BypassParams   `json:"bypass,omitempty"`
}

type PrefetchParams struct {
	PolicyName string `json:"policy_name"`
	Degree     int    `json:"degree,omitempty"`
	TableSize  int    `json:"table_size,omitempty"`
}

type BypassParams struct {
	PolicyName         string  `json:"policy_name"`
	BypassProbDemand   float64 `json:"bypass_prob_demand,omitempty"`
	BypassProbPrefetch float64 `json:"bypass_prob_prefetch,omitempty"`
}

type InterconnectConfig struct {
	BusLatency uint64 `json:"bus_latency"`
}

type MainMemoryConfig struct {
	AccessLatency uint64 `json:"access_latency"`
}

// Load reads and parses path, then validates the result. A malformed or
// invalid document is a configuration error: the caller should fail fast
// with the returned diagnostic rather than proceed.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks every structural invariant the spec demands: required
// fields present, bus latency count matching the level count, power-of-two
// block sizes and derived set counts, and known policy names. It names the
// offending field in every error.
func (d *Document) Validate() error {
	if len(d.CacheHierarchy) == 0 {
		return fmt.Errorf("config: cache_hierarchy must have at least one level")
	}
	if len(d.Interconnects) != len(d.CacheHierarchy) {
		return fmt.Errorf("config: interconnects has %d entries, want %d (one per cache level)", len(d.Interconnects), len(d.CacheHierarchy))
	}

	for _, lvl := range d.CacheHierarchy {
		if lvl.ID == "" {
			return fmt.Errorf("config: cache_hierarchy entry at level %d is missing id", lvl.Level)
		}
		sizeBytes, err := ParseSize(lvl.Config.Size)
		if err != nil {
			return fmt.Errorf("config: level %q: %w", lvl.ID, err)
		}
		if lvl.Config.BlockSize <= 0 || !isPowerOfTwo(lvl.Config.BlockSize) {
			return fmt.Errorf("config: level %q: block_size %d is not a power of two", lvl.ID, lvl.Config.BlockSize)
		}
		if lvl.Config.Associativity <= 0 {
			return fmt.Errorf("config: level %q: associativity must be positive", lvl.ID)
		}
		setCount := sizeBytes / (int64(lvl.Config.BlockSize) * int64(lvl.Config.Associativity))
		if setCount <= 0 || !isPowerOfTwo(int(setCount)) {
			return fmt.Errorf("config: level %q: derived set count %d is not a power of two", lvl.ID, setCount)
		}
		if _, err := replacementSpec(lvl.Config.ReplacementPolicy); err != nil {
			return fmt.Errorf("config: level %q: %w", lvl.ID, err)
		}
		if _, err := writePolicyKind(lvl.Config.WritePolicy); err != nil {
			return fmt.Errorf("config: level %q: %w", lvl.ID, err)
		}
		if _, err := allocatePolicyKind(lvl.Config.AllocationPolicy); err != nil {
			return fmt.Errorf("config: level %q: %w", lvl.ID, err)
		}
		if _, err := prefetchSpec(lvl.Config.Prefetch); err != nil {
			return fmt.Errorf("config: level %q: %w", lvl.ID, err)
		}
		if _, err := bypassSpec(lvl.Config.Bypass); err != nil {
			return fmt.Errorf("config: level %q: %w", lvl.ID, err)
		}
	}
	return nil
}

func isPowerOfTwo(n int) bool { return n > 0 && n&(n-1) == 0 }

func replacementSpec(name string) (policy.ReplacementSpec, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "", "LRU":
		return policy.ReplacementSpec{Kind: "lru"}, nil
	case "SRRIP":
		return policy.ReplacementSpec{Kind: "srrip"}, nil
	default:
		return policy.ReplacementSpec{}, fmt.Errorf("unknown replacement_policy %q", name)
	}
}

func writePolicyKind(name string) (memory.WritePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "write-back":
		return memory.WriteBack, nil
	case "write-through":
		return memory.WriteThrough, nil
	default:
		return 0, fmt.Errorf("unknown write_policy %q", name)
	}
}

func allocatePolicyKind(name string) (memory.AllocatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "write-allocate":
		return memory.WriteAllocate, nil
	case "no-write-allocate":
		return memory.NoWriteAllocate, nil
	default:
		return 0, fmt.Errorf("unknown allocation_policy %q", name)
	}
}

func prefetchSpec(p *PrefetchParams) (policy.PrefetchSpec, error) {
	if p == nil {
		return policy.PrefetchSpec{Kind: "none"}, nil
	}
	switch strings.ToLower(strings.TrimSpace(p.PolicyName)) {
	case "", "none":
		return policy.PrefetchSpec{Kind: "none"}, nil
	case "nextnline":
		return policy.PrefetchSpec{Kind: "next_n_line", Degree: p.Degree}, nil
	case "stream":
		return policy.PrefetchSpec{Kind: "stream", Degree: p.Degree, TableSize: p.TableSize}, nil
	case "stride":
		return policy.PrefetchSpec{Kind: "stride", Degree: p.Degree, TableSize: p.TableSize}, nil
	default:
		return policy.PrefetchSpec{}, fmt.Errorf("unknown prefetch policy_name %q", p.PolicyName)
	}
}

func bypassSpec(b *BypassParams) (policy.BypassSpec, error) {
	if b == nil {
		return policy.BypassSpec{Kind: "none"}, nil
	}
	switch strings.ToLower(strings.TrimSpace(b.PolicyName)) {
	case "", "nobypass":
		return policy.BypassSpec{Kind: "none"}, nil
	case "prob":
		return policy.BypassSpec{
			Kind:      "prob",
			PDemand:   b.BypassProbDemand,
			PPrefetch: b.BypassProbPrefetch,
			Seed:      0,
		}, nil
	default:
		return policy.BypassSpec{}, fmt.Errorf("unknown bypass policy_name %q", b.PolicyName)
	}
}

// Build assembles the runnable hierarchy described by d. Call Validate (or
// Load, which validates already) before Build.
func Build(d *Document) (*hierarchy.Hierarchy, error) {
	levels := make([]*memory.Cache, 0, len(d.CacheHierarchy))
	for _, lvl := range d.CacheHierarchy {
		cache, err := buildLevel(lvl)
		if err != nil {
			return nil, err
		}
		levels = append(levels, cache)
	}

	busLatencies := make([]uint64, len(d.Interconnects))
	for i, ic := range d.Interconnects {
		busLatencies[i] = ic.BusLatency
	}

	return hierarchy.New(levels, busLatencies, d.MainMemory.AccessLatency)
}

func buildLevel(lvl LevelConfig) (*memory.Cache, error) {
	sizeBytes, err := ParseSize(lvl.Config.Size)
	if err != nil {
		return nil, err
	}

	rSpec, err := replacementSpec(lvl.Config.ReplacementPolicy)
	if err != nil {
		return nil, err
	}
	replacement, err := policy.NewReplacement(rSpec)
	if err != nil {
		return nil, err
	}

	pSpec, err := prefetchSpec(lvl.Config.Prefetch)
	if err != nil {
		return nil, err
	}
	prefetch, err := policy.NewPrefetch(pSpec)
	if err != nil {
		return nil, err
	}

	bSpec, err := bypassSpec(lvl.Config.Bypass)
	if err != nil {
		return nil, err
	}
	bypass, err := policy.NewBypass(bSpec)
	if err != nil {
		return nil, err
	}

	writePolicy, err := writePolicyKind(lvl.Config.WritePolicy)
	if err != nil {
		return nil, err
	}
	allocatePolicy, err := allocatePolicyKind(lvl.Config.AllocationPolicy)
	if err != nil {
		return nil, err
	}

	return memory.NewCache(memory.Config{
		Name:          lvl.ID,
		Level:         lvl.Level,
		SizeBytes:     int(sizeBytes),
		BlockSize:     lvl.Config.BlockSize,
		Associativity: lvl.Config.Associativity,
		HitLatency:    lvl.Config.HitLatency,
		WritePolicy:   writePolicy,
		Allocate:      allocatePolicy,
		Replacement:   replacement,
		Prefetch:      prefetch,
		Bypass:        bypass,
	}), nil
}
