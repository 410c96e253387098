// Package hierarchy assembles a fixed ordered list of cache levels into the
// structure the controller walks: caches L0..Ln-1, the bus latency between
// each adjacent pair (and from the deepest level to main memory), and the
// main memory access latency itself.
package hierarchy

import (
	"fmt"

	"github.com/memhier/cachesim/memory"
)

// Hierarchy is an ordered memory hierarchy: levels[0] is closest to the CPU.
type Hierarchy struct {
	levels             []*memory.Cache
	busLatencies       []uint64
	mainMemoryLatency  uint64
}

// New builds a Hierarchy. len(busLatencies) must equal len(levels): one
// entry between each pair of adjacent levels, plus one trailing entry
// between the deepest cache and main memory.
func New(levels []*memory.Cache, busLatencies []uint64, mainMemoryLatency uint64) (*Hierarchy, error) {
	if len(busLatencies) != len(levels) {
		return nil, fmt.Errorf("hierarchy: got %d bus latencies for %d levels, want %d", len(busLatencies), len(levels), len(levels))
	}
	if len(levels) == 0 {
		return nil, fmt.Errorf("hierarchy: at least one cache level is required")
	}
	return &Hierarchy{levels: levels, busLatencies: busLatencies, mainMemoryLatency: mainMemoryLatency}, nil
}

func (h *Hierarchy) Depth() int                 { return len(h.levels) }
func (h *Hierarchy) Level(i int) *memory.Cache   { return h.levels[i] }
func (h *Hierarchy) Levels() []*memory.Cache     { return h.levels }
func (h *Hierarchy) BusLatency(i int) uint64     { return h.busLatencies[i] }
func (h *Hierarchy) MainMemoryLatency() uint64   { return h.mainMemoryLatency }
