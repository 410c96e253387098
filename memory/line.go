// Package memory implements the per-level cache model: lines, sets, and the
// set-associative cache that owns them.
package memory

// Line is a single cache-block-sized state holder. It never stores real
// data; it only tracks the bits the simulator needs to decide
// hit/miss/eviction/prefetch accounting and opaque per-policy replacement
// state.
type Line struct {
	valid      bool
	tag        uint64
	dirty      bool
	prefetched bool
	policy     PolicyState
}

// PolicyState is the opaque value a replacement policy stashes on a line
// (an LRU timestamp, an SRRIP RRPV counter, ...). The Line never interprets
// it; only the policy bound to the owning Set does.
type PolicyState int64

func (l *Line) IsValid() bool   { return l.valid }
func (l *Line) Tag() uint64     { return l.tag }
func (l *Line) IsDirty() bool   { return l.dirty }
func (l *Line) Prefetched() bool { return l.prefetched }

func (l *Line) State() PolicyState     { return l.policy }
func (l *Line) SetState(s PolicyState) { l.policy = s }

// Read services a demand hit. It returns whether the line had been filled by
// a prefetch that was never demand-accessed before now, then clears the
// prefetched flag: the line is no longer "unused prefetch" once read.
func (l *Line) Read() (wasPrefetched bool) {
	wasPrefetched = l.prefetched
	l.prefetched = false
	return wasPrefetched
}

// Write services a demand write hit: marks the line dirty and, like Read,
// clears any pending prefetch-usefulness bookkeeping.
func (l *Line) Write() {
	l.prefetched = false
	l.dirty = true
}

// Fill installs tag into the line, making it valid and clean. Replacement
// policy state is left untouched here; the caller invokes the policy's
// on-fill hook separately (see ReplacementPolicy.OnFill).
func (l *Line) Fill(tag uint64, isPrefetch bool) {
	l.tag = tag
	l.valid = true
	l.dirty = false
	l.prefetched = isPrefetch
}

// clearDirty is used by Set.FillLine once a dirty victim's eviction address
// has been captured; the subsequent Fill call clears it again implicitly,
// this just makes the intent explicit at the call site.
func (l *Line) clearDirty() { l.dirty = false }
