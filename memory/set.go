package memory

// FillResult reports what happened during a fill: whether the victim slot
// held dirty data that must now be written back, whether an eviction
// occurred at all, the full address of the evicted line (valid only when
// wasDirty), and whether the evicted line was a prefetch that was never
// demand-used (a "wasted" prefetch).
type FillResult struct {
	WasDirty     bool
	Evicted      bool
	EvictedAddr  uint64
	PrefetchMiss bool
}

// Set is a fixed-size, fully-associative group of lines addressed by one
// index value. Its lines carry pairwise-distinct tags at all times; Cache
// is responsible for routing an address to the right Set via its decoder.
type Set struct {
	index        int
	blockSize    int
	indexBits    int
	offsetBits   int
	lines        []Line
	replacement  ReplacementPolicy
}

// NewSet builds a Set with associativity invalid lines, ready to be filled.
func NewSet(index, associativity, blockSize, indexBits, offsetBits int, replacement ReplacementPolicy) *Set {
	return &Set{
		index:       index,
		blockSize:   blockSize,
		indexBits:   indexBits,
		offsetBits:  offsetBits,
		lines:       make([]Line, associativity),
		replacement: replacement,
	}
}

func (s *Set) Index() int     { return s.index }
func (s *Set) Lines() []Line  { return s.lines }

// ReadLine looks up tag among the set's valid lines. On a hit it notifies
// the replacement policy and returns whether the line had been a never-used
// prefetch (the caller turns that into "useful prefetch" accounting).
func (s *Set) ReadLine(tag uint64, t uint64) (status Status, wasPrefetched bool) {
	for i := range s.lines {
		line := &s.lines[i]
		if line.IsValid() && line.Tag() == tag {
			s.replacement.UpdateOnAccess(s, line, t)
			return HIT, line.Read()
		}
	}
	return MISS, false
}

// WriteLine looks up tag and, on a hit, marks the line dirty. wasPrefetched
// reports whether the line had been a never-used prefetch before this write.
func (s *Set) WriteLine(tag uint64, t uint64) (status Status, wasPrefetched bool) {
	for i := range s.lines {
		line := &s.lines[i]
		if line.IsValid() && line.Tag() == tag {
			s.replacement.UpdateOnAccess(s, line, t)
			wasPrefetched = line.Prefetched()
			line.Write()
			return HIT, wasPrefetched
		}
	}
	return MISS, false
}

// FillLine installs tag into the lowest-indexed invalid slot if one exists,
// otherwise evicts a victim chosen by the replacement policy's Evict, which
// is responsible for breaking ties between equally eligible lines.
func (s *Set) FillLine(tag uint64, t uint64, isPrefetch bool) FillResult {
	for i := range s.lines {
		line := &s.lines[i]
		if !line.IsValid() {
			line.Fill(tag, isPrefetch)
			s.replacement.OnFill(s, line, t)
			return FillResult{}
		}
	}

	victim := s.replacement.Evict(s)
	evictedAddr := s.addressOf(victim.Tag())
	prefetchMiss := victim.Prefetched()
	wasDirty := victim.IsDirty()
	victim.clearDirty()
	victim.Fill(tag, isPrefetch)
	s.replacement.OnFill(s, victim, t)

	if wasDirty {
		return FillResult{WasDirty: true, Evicted: true, EvictedAddr: evictedAddr, PrefetchMiss: prefetchMiss}
	}
	return FillResult{Evicted: true, PrefetchMiss: prefetchMiss}
}

// ContainsTag reports whether any VALID line carries tag. Invalid slots,
// even ones that still hold a stale tag value from a prior eviction, are
// treated as absent: callers must route around a match on an invalid
// line rather than treat it as present.
func (s *Set) ContainsTag(tag uint64) bool {
	for i := range s.lines {
		if s.lines[i].IsValid() && s.lines[i].Tag() == tag {
			return true
		}
	}
	return false
}

// IsFull reports whether every line in the set is valid.
func (s *Set) IsFull() bool {
	for i := range s.lines {
		if !s.lines[i].IsValid() {
			return false
		}
	}
	return true
}

// addressOf reconstructs the block-aligned address of a line holding tag in
// this set: (tag << (indexBits+offsetBits)) | (index << offsetBits).
func (s *Set) addressOf(tag uint64) uint64 {
	return (tag << uint(s.indexBits+s.offsetBits)) | (uint64(s.index) << uint(s.offsetBits))
}
