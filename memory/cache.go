package memory

import (
	"fmt"
	"math/bits"
)

// WritePolicy records whether a level is configured write-back or
// write-through. The controller handles both the same way: a dirty line is
// written to the next level only when it is evicted; a write is not
// propagated downward at the time it is made.
type WritePolicy int

const (
	WriteBack WritePolicy = iota
	WriteThrough
)

// AllocatePolicy selects whether a write miss allocates a line in this level
// (write-allocate) or is simply forwarded to the next level (no-write-allocate).
type AllocatePolicy int

const (
	WriteAllocate AllocatePolicy = iota
	NoWriteAllocate
)

// Cache is one level of the memory hierarchy: it owns its sets, its address
// decoder, and the three policies bound to it. It never reaches across
// levels; the controller package coordinates misses, refills, and
// write-backs between Cache instances.
type Cache struct {
	name          string
	level         int
	sizeBytes     int
	blockSize     int
	associativity int
	setCount      int
	offsetBits    int
	indexBits     int
	hitLatency    uint64
	writePolicy   WritePolicy
	allocate      AllocatePolicy

	sets       []*Set
	prefetch   PrefetchPolicy
	bypass     BypassPolicy

	prefetchCount       uint64
	prefetchMissCount   uint64
	usefulPrefetchCount uint64
	bypassCount         uint64
}

// Config bundles the parameters needed to build a Cache. block_size and the
// derived set count must both be powers of two.
type Config struct {
	Name          string
	Level         int
	SizeBytes     int
	BlockSize     int
	Associativity int
	HitLatency    uint64
	WritePolicy   WritePolicy
	Allocate      AllocatePolicy
	Replacement   ReplacementPolicy
	Prefetch      PrefetchPolicy
	Bypass        BypassPolicy
}

// NewCache validates cfg and builds a Cache. It panics on a non-power-of-two
// block size or set count: those are configuration invariants that should
// have been caught by config.Validate before reaching here, so arriving with
// a violation is an internal bug, not a user error.
func NewCache(cfg Config) *Cache {
	if !isPowerOfTwo(cfg.BlockSize) {
		panic(fmt.Sprintf("memory: block size %d is not a power of two", cfg.BlockSize))
	}
	setCount := cfg.SizeBytes / (cfg.BlockSize * cfg.Associativity)
	if !isPowerOfTwo(setCount) {
		panic(fmt.Sprintf("memory: derived set count %d is not a power of two", setCount))
	}

	c := &Cache{
		name:          cfg.Name,
		level:         cfg.Level,
		sizeBytes:     cfg.SizeBytes,
		blockSize:     cfg.BlockSize,
		associativity: cfg.Associativity,
		setCount:      setCount,
		offsetBits:    bits.TrailingZeros(uint(cfg.BlockSize)),
		indexBits:     bits.TrailingZeros(uint(setCount)),
		hitLatency:    cfg.HitLatency,
		writePolicy:   cfg.WritePolicy,
		allocate:      cfg.Allocate,
		prefetch:      cfg.Prefetch,
		bypass:        cfg.Bypass,
	}
	c.sets = make([]*Set, setCount)
	for i := range c.sets {
		c.sets[i] = NewSet(i, cfg.Associativity, cfg.BlockSize, c.indexBits, c.offsetBits, cfg.Replacement)
	}
	return c
}

func isPowerOfTwo(n int) bool { return n > 0 && n&(n-1) == 0 }

func (c *Cache) Name() string               { return c.name }
func (c *Cache) Level() int                 { return c.level }
func (c *Cache) HitLatency() uint64         { return c.hitLatency }
func (c *Cache) WritePolicyKind() WritePolicy     { return c.writePolicy }
func (c *Cache) AllocatePolicyKind() AllocatePolicy { return c.allocate }
func (c *Cache) BlockSize() int             { return c.blockSize }
func (c *Cache) SetCount() int              { return c.setCount }
func (c *Cache) PrefetchCount() uint64       { return c.prefetchCount }
func (c *Cache) PrefetchMissCount() uint64   { return c.prefetchMissCount }
func (c *Cache) UsefulPrefetchCount() uint64 { return c.usefulPrefetchCount }
func (c *Cache) BypassCount() uint64         { return c.bypassCount }

// Decode splits address into (tag, index, offset) using bitwise masks only.
func (c *Cache) Decode(address uint64) (tag, index, offset uint64) {
	maskOffset := uint64(c.blockSize - 1)
	maskIndex := uint64(c.setCount - 1)
	offset = address & maskOffset
	index = (address >> uint(c.offsetBits)) & maskIndex
	tag = address >> uint(c.offsetBits+c.indexBits)
	return tag, index, offset
}

// Reconstruct rebuilds the block-aligned address for (tag, index).
func (c *Cache) Reconstruct(tag, index uint64) uint64 {
	return (tag << uint(c.indexBits+c.offsetBits)) | (index << uint(c.offsetBits))
}

func (c *Cache) setFor(index uint64) *Set { return c.sets[index] }

// SetForIndex exposes the set backing index, for callers (the controller's
// downward line-location search) that need to probe residency without
// going through Read/Write/Fill.
func (c *Cache) SetForIndex(index uint64) *Set { return c.setFor(index) }

// Read performs a demand read. A miss never becomes a hit via prefetching:
// handle_prefetch only schedules speculative fills for later accesses.
func (c *Cache) Read(address uint64, t uint64) Status {
	tag, index, _ := c.Decode(address)
	set := c.setFor(index)
	status, wasPrefetched := set.ReadLine(tag, t)
	if status == MISS {
		c.handlePrefetch(address, t)
	} else if wasPrefetched {
		c.usefulPrefetchCount++
	}
	return status
}

// Write performs a demand write.
func (c *Cache) Write(address uint64, t uint64) Status {
	tag, index, _ := c.Decode(address)
	status, wasPrefetched := c.setFor(index).WriteLine(tag, t)
	if status == HIT && wasPrefetched {
		c.usefulPrefetchCount++
	}
	return status
}

// Fill installs address into this level, honoring the bypass policy first.
// isPrefetch distinguishes a demand refill from a speculative one for the
// line's prefetched bookkeeping.
func (c *Cache) Fill(address uint64, t uint64, isPrefetch bool) FillResult {
	tag, index, _ := c.Decode(address)
	set := c.setFor(index)
	if c.bypass != nil && c.bypass.ShouldBypass(set, isPrefetch) {
		c.bypassCount++
		return FillResult{}
	}
	result := set.FillLine(tag, t, isPrefetch)
	if result.PrefetchMiss {
		c.prefetchMissCount++
	}
	return result
}

// handlePrefetch asks the bound prefetch policy for candidates and installs
// any that are not already resident, counting each installed candidate.
func (c *Cache) handlePrefetch(address uint64, t uint64) {
	if c.prefetch == nil {
		return
	}
	for _, candidate := range c.prefetch.OnMiss(address, c.blockSize) {
		tag, index, _ := c.Decode(candidate)
		set := c.setFor(index)
		if set.ContainsTag(tag) {
			continue
		}
		c.prefetchCount++
		c.Fill(candidate, t, true)
	}
}
