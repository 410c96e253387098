package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/memhier/cachesim/memory"
)

func newSet(assoc int, replacement memory.ReplacementPolicy) *memory.Set {
	return memory.NewSet(0, assoc, 8, 0, 3, replacement)
}

func TestLRUEvictsOldestAndBreaksTiesOnLowestIndex(t *testing.T) {
	lru := LRU{}
	s := newSet(3, lru)

	s.FillLine(1, 10, false)
	s.FillLine(2, 10, false) // ties with slot 0 for oldest
	s.FillLine(3, 30, false)

	victim := lru.Evict(s)
	assert.Equal(t, uint64(1), victim.Tag())
}

func TestLRUUpdateOnAccessRefreshesRecency(t *testing.T) {
	lru := LRU{}
	s := newSet(2, lru)

	s.FillLine(1, 10, false)
	s.FillLine(2, 20, false)
	s.ReadLine(1, 30) // line 1 is now the most recently used

	victim := lru.Evict(s)
	assert.Equal(t, uint64(2), victim.Tag())
}

func TestSRRIPEvictsLineAtMaxRRPV(t *testing.T) {
	srrip := SRRIP{}
	s := newSet(2, srrip)

	s.FillLine(1, 1, false) // RRPV=2
	s.FillLine(2, 2, false) // RRPV=2

	// Neither line starts at max RRPV (3); Evict ages both until one reaches it.
	victim := srrip.Evict(s)
	assert.Contains(t, []uint64{1, 2}, victim.Tag())
	assert.Equal(t, srripMax, victim.State())
}

func TestSRRIPUpdateOnAccessMarksNearImmediate(t *testing.T) {
	srrip := SRRIP{}
	s := newSet(1, srrip)
	s.FillLine(1, 1, false)

	s.ReadLine(1, 2)
	assert.Equal(t, memory.PolicyState(0), s.Lines()[0].State())
}
