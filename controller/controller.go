package controller

import (
	"github.com/memhier/cachesim/hierarchy"
	"github.com/memhier/cachesim/log"
	"github.com/memhier/cachesim/memory"
)

// Controller is the traversal/write-back engine: it owns the hierarchy, the
// Metrics aggregator, and the monotonic clock tick advanced on every
// external request and every synchronous write-back step.
type Controller struct {
	hierarchy *hierarchy.Hierarchy
	metrics   *Metrics
	tick      uint64
}

func New(h *hierarchy.Hierarchy) *Controller {
	return &Controller{hierarchy: h, metrics: NewMetrics()}
}

func (c *Controller) Metrics() *Metrics { return c.metrics }

// Read performs one demand read through the whole hierarchy: scan levels
// top-down for a hit, fall through to main memory on a full miss, then
// refill upward emitting recursive write-backs for any dirty evictions.
func (c *Controller) Read(address uint64) {
	c.tick++
	t := c.tick

	var totalLatency uint64
	hitLevel := -1
	n := c.hierarchy.Depth()

	for l := 0; l < n; l++ {
		level := c.hierarchy.Level(l)
		status := level.Read(address, t)
		hit := status == memory.HIT
		if l == 0 {
			c.metrics.RecordDemandAccess(hit)
		}
		c.metrics.RecordLevelAccess(level.Name(), hit)
		totalLatency += level.HitLatency()
		if hit {
			hitLevel = l
			break
		}
	}

	chargedDeepestBus := false
	if hitLevel == -1 {
		hitLevel = n
		c.metrics.RecordLevelAccess("MainMemory", false)
		totalLatency += c.hierarchy.MainMemoryLatency()
		totalLatency += c.hierarchy.BusLatency(n - 1)
		chargedDeepestBus = true
	}

	for l := hitLevel - 1; l >= 0; l-- {
		level := c.hierarchy.Level(l)
		result := level.Fill(address, t, false)
		// The hop across bus n-1 was already paid above when the miss fell
		// through to main memory; refilling the deepest level here is that
		// same trip's data coming back, not a second one.
		if !(chargedDeepestBus && l == n-1) {
			totalLatency += c.hierarchy.BusLatency(l)
		}
		if result.Evicted {
			c.metrics.RecordReplacement()
			if result.WasDirty {
				c.handleWriteBack(result.EvictedAddr, l+1, false)
			}
		}
	}

	c.metrics.AddLatency(totalLatency)
}

// Write performs one demand write: account L0's hit latency immediately,
// then drive the synchronous write-back chain starting at level 0.
func (c *Controller) Write(address uint64) {
	c.metrics.AddLatency(c.hierarchy.Level(0).HitLatency())
	c.handleWriteBack(address, 0, true)
}

// handleWriteBack installs a dirty write at level, refilling from wherever
// the line is found (or main memory) if it isn't already resident, and
// recursing for every dirty eviction that refill causes along the way.
// sync distinguishes the original demand write (which advances the clock
// and counts as a global demand access) from the asynchronous propagation
// of an evicted dirty line into the next level down.
func (c *Controller) handleWriteBack(address uint64, level int, sync bool) {
	n := c.hierarchy.Depth()
	if level >= n {
		return
	}
	if sync {
		c.tick++
	}
	t := c.tick

	cache := c.hierarchy.Level(level)
	if cache.AllocatePolicyKind() == memory.NoWriteAllocate {
		status := cache.Write(address, t)
		hit := status == memory.HIT
		c.metrics.RecordLevelAccess(cache.Name(), hit)
		if sync {
			c.metrics.RecordDemandAccess(hit)
		}
		if hit {
			return
		}
		c.handleWriteBack(address, level+1, false)
		return
	}

	status := cache.Write(address, t)
	hit := status == memory.HIT
	c.metrics.RecordLevelAccess(cache.Name(), hit)
	if sync {
		c.metrics.RecordDemandAccess(hit)
	}
	if hit {
		return
	}

	foundLevel := c.locateDownward(address, level+1)
	if foundLevel == n {
		c.logUnresolved(address)
	}

	for l := foundLevel - 1; l >= level; l-- {
		target := c.hierarchy.Level(l)
		result := target.Fill(address, t, false)
		c.metrics.AddLatency(target.HitLatency())
		if result.Evicted {
			c.metrics.RecordReplacement()
			if result.WasDirty {
				c.handleWriteBack(result.EvictedAddr, l+1, false)
			}
		}
	}

	cache.Write(address, t)
}

// locateDownward searches level and below for a resident copy of address,
// reporting the level it was found at (or the hierarchy depth, meaning
// "only main memory has it", if none matched). No data is actually moved;
// this only determines how far the subsequent refill loop must reach.
func (c *Controller) locateDownward(address uint64, level int) int {
	n := c.hierarchy.Depth()
	for l := level; l < n; l++ {
		cache := c.hierarchy.Level(l)
		tag, index, _ := cache.Decode(address)
		set := cache.SetForIndex(index)
		if set.ContainsTag(tag) {
			return l
		}
	}
	return n
}

// CollectPrefetchInformation sums every cache's cumulative prefetch
// counters into Metrics. Each Cache tracks its own prefetch_count,
// prefetch_miss_count, and useful-prefetch count for the life of the
// hierarchy, so it runs once per run (the runner calls it after all warmup
// replays of the trace, before averaging), not per access or per replay.
func (c *Controller) CollectPrefetchInformation() {
	for _, level := range c.hierarchy.Levels() {
		c.metrics.RecordPrefetches(level.PrefetchCount(), level.PrefetchMissCount(), level.UsefulPrefetchCount())
	}
}

// CalculateAMAT computes the recursive Average Memory Access Time for
// level, memoizing by name in Metrics.
func (c *Controller) CalculateAMAT(level int) float64 {
	cache := c.hierarchy.Level(level)
	if v, ok := c.metrics.CachedAMAT(cache.Name()); ok {
		return v
	}

	stats := c.metrics.LevelStats(cache.Name())
	missRate := 0.0
	if stats.Accesses > 0 {
		missRate = float64(stats.Misses) / float64(stats.Accesses)
	}

	var downstream float64
	n := c.hierarchy.Depth()
	if level+1 < n {
		downstream = c.CalculateAMAT(level + 1)
	} else {
		downstream = float64(c.hierarchy.MainMemoryLatency())
	}

	amat := float64(cache.HitLatency()) + missRate*(float64(c.hierarchy.BusLatency(level))+downstream)
	c.metrics.SetAMAT(cache.Name(), amat)
	return amat
}

// CalculateAllAMAT computes and memoizes AMAT for every level, deepest
// first, matching the recursive dependency direction of the formula.
func (c *Controller) CalculateAllAMAT() {
	for l := c.hierarchy.Depth() - 1; l >= 0; l-- {
		c.CalculateAMAT(l)
	}
}

func (c *Controller) logUnresolved(address uint64) {
	log.Warn("write-back fell through to main memory", "address", address)
}
