// Package policy implements the pluggable replacement, prefetch, and bypass
// policies a memory.Cache binds to. Each family is a small tagged variant
// selected once by a factory function at startup: no per-access dispatch by
// policy name.
package policy

import "github.com/memhier/cachesim/memory"

// LRU evicts the valid line with the oldest update; ties favor the lowest
// slot index, which simply falls out of scanning lines in order.
type LRU struct{}

func (LRU) Evict(set *memory.Set) *memory.Line {
	lines := set.Lines()
	minIdx := 0
	var minTime memory.PolicyState
	for i := range lines {
		t := lines[i].State()
		if i == 0 || t < minTime {
			minTime = t
			minIdx = i
		}
	}
	return &lines[minIdx]
}

func (LRU) UpdateOnAccess(set *memory.Set, line *memory.Line, t uint64) {
	line.SetState(memory.PolicyState(t))
}

func (LRU) OnFill(set *memory.Set, line *memory.Line, t uint64) {
	line.SetState(memory.PolicyState(t))
}

// SRRIP is Static Re-Reference Interval Prediction with a 2-bit RRPV
// (max value 3). A fresh fill is given a "long" re-reference prediction (2);
// an access marks a line "near" (0). Eviction repeatedly scans for an RRPV
// of 3, aging every other line by one each pass it fails to find one: each
// pass raises the minimum RRPV present, so the scan terminates in at most
// 3 passes.
type SRRIP struct{}

const srripMax memory.PolicyState = 3

func (SRRIP) Evict(set *memory.Set) *memory.Line {
	lines := set.Lines()
	for {
		for i := range lines {
			if lines[i].State() == srripMax {
				return &lines[i]
			}
		}
		for i := range lines {
			if lines[i].State() < srripMax {
				lines[i].SetState(lines[i].State() + 1)
			}
		}
	}
}

func (SRRIP) UpdateOnAccess(set *memory.Set, line *memory.Line, t uint64) {
	line.SetState(0)
}

func (SRRIP) OnFill(set *memory.Set, line *memory.Line, t uint64) {
	line.SetState(2)
}
