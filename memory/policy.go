package memory

// ReplacementPolicy, PrefetchPolicy, and BypassPolicy are the three
// pluggable capability sets a Cache binds to: one per concern, each a fixed
// interface rather than dynamic dispatch by name (the factory in package
// policy maps a config string to a concrete variant once at startup; nothing
// downstream of that switches on policy name again).
//
// These interfaces live in package memory, the consumer, rather than in
// package policy, the implementer: package policy imports memory for Line
// and Set, so the reverse import would cycle.
type ReplacementPolicy interface {
	// Evict picks the victim line in set. Ties are broken by the lowest
	// slot index; callers never need to re-check determinism themselves.
	Evict(set *Set) *Line
	// UpdateOnAccess is invoked on every demand hit against line.
	UpdateOnAccess(set *Set, line *Line, t uint64)
	// OnFill is invoked once a line has just been filled (demand or
	// prefetch), to seed its replacement state.
	OnFill(set *Set, line *Line, t uint64)
}

// PrefetchPolicy predicts addresses worth bringing in before they are
// demanded. Only OnMiss is ever invoked by Cache today; OnHit is reserved
// for a stream/stride policy that wants to keep riding a pattern on hits too.
type PrefetchPolicy interface {
	OnMiss(addr uint64, blockSize int) []uint64
	OnHit(addr uint64, blockSize int) []uint64
}

// BypassPolicy optionally suppresses a fill before it touches the set.
type BypassPolicy interface {
	ShouldBypass(set *Set, isPrefetch bool) bool
}
