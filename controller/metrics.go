// Package controller implements the traversal/write-back engine: the
// MemoryController walks a hierarchy.Hierarchy on every read/write,
// coordinating misses, refills, dirty write-backs, and prefetch fills, and
// records everything into a Metrics aggregator.
package controller

import (
	lru "github.com/hashicorp/golang-lru/v2"
	gometrics "github.com/rcrowley/go-metrics"
)

// LevelStats is the per-level {accesses, hits, misses} triple a cache
// level's stats are tracked as.
type LevelStats struct {
	Accesses uint64
	Hits     uint64
	Misses   uint64
}

// Metrics aggregates the whole-run counters plus per-level stats and the
// AMAT rollup. Prefetch and replacement counts ride on go-metrics Counters,
// a named Counter per bookkeeping concern rather than bare integer fields.
// The AMAT map memoizes through an LRU (bounded, though in practice a
// hierarchy never has more levels than the cache can hold), since an AMAT
// once computed stays valid for the lifetime of one run and is cached per
// level name.
type Metrics struct {
	Accesses uint64
	Hits     uint64
	Misses   uint64
	TotalLatency uint64

	perLevel map[string]*LevelStats
	amat     *lru.Cache[string, float64]

	replacementCount    gometrics.Counter
	prefetchCount       gometrics.Counter
	prefetchMissCount   gometrics.Counter
	usefulPrefetchCount gometrics.Counter
}

// NewMetrics builds an empty Metrics ready to record a simulation pass.
func NewMetrics() *Metrics {
	amat, err := lru.New[string, float64](256)
	if err != nil {
		panic("controller: failed to allocate AMAT cache: " + err.Error())
	}
	return &Metrics{
		perLevel:          make(map[string]*LevelStats),
		amat:              amat,
		replacementCount:    gometrics.NewCounter(),
		prefetchCount:       gometrics.NewCounter(),
		prefetchMissCount:   gometrics.NewCounter(),
		usefulPrefetchCount: gometrics.NewCounter(),
	}
}

func (m *Metrics) levelStats(name string) *LevelStats {
	ls, ok := m.perLevel[name]
	if !ok {
		ls = &LevelStats{}
		m.perLevel[name] = ls
	}
	return ls
}

// RecordLevelAccess records one access against level name, with hit
// indicating whether it was a hit or a miss at that level.
func (m *Metrics) RecordLevelAccess(name string, hit bool) {
	ls := m.levelStats(name)
	ls.Accesses++
	if hit {
		ls.Hits++
	} else {
		ls.Misses++
	}
}

// RecordDemandAccess records one demand (L0) access into the global
// hit/miss counters. It asserts the accesses=hits+misses invariant itself,
// since the two counters are only ever advanced together here.
func (m *Metrics) RecordDemandAccess(hit bool) {
	m.Accesses++
	if hit {
		m.Hits++
	} else {
		m.Misses++
	}
	if m.Accesses != m.Hits+m.Misses {
		panic("controller: invariant violated, accesses != hits + misses")
	}
}

func (m *Metrics) AddLatency(cycles uint64) { m.TotalLatency += cycles }

func (m *Metrics) RecordReplacement() { m.replacementCount.Inc(1) }

func (m *Metrics) RecordPrefetches(prefetch, prefetchMiss, usefulPrefetch uint64) {
	m.prefetchCount.Inc(int64(prefetch))
	m.prefetchMissCount.Inc(int64(prefetchMiss))
	m.usefulPrefetchCount.Inc(int64(usefulPrefetch))
}

func (m *Metrics) ReplacementCount() uint64      { return uint64(m.replacementCount.Count()) }
func (m *Metrics) PrefetchCount() uint64         { return uint64(m.prefetchCount.Count()) }
func (m *Metrics) PrefetchMissCount() uint64     { return uint64(m.prefetchMissCount.Count()) }
func (m *Metrics) UsefulPrefetchCount() uint64   { return uint64(m.usefulPrefetchCount.Count()) }

func (m *Metrics) LevelStats(name string) LevelStats {
	if ls, ok := m.perLevel[name]; ok {
		return *ls
	}
	return LevelStats{}
}

func (m *Metrics) LevelNames() []string {
	names := make([]string, 0, len(m.perLevel))
	for name := range m.perLevel {
		names = append(names, name)
	}
	return names
}

// CachedAMAT returns a previously computed AMAT for name, if any.
func (m *Metrics) CachedAMAT(name string) (float64, bool) { return m.amat.Get(name) }

// SetAMAT memoizes the computed AMAT for name.
func (m *Metrics) SetAMAT(name string, value float64) { m.amat.Add(name, value) }

// AverageMetrics integer-divides every counter by warmup, approximating a
// warmed-steady-state single run from warmup full trace replays. A warmup
// of zero or less is a no-op.
func (m *Metrics) AverageMetrics(warmup int) {
	if warmup <= 0 {
		return
	}
	w := uint64(warmup)
	m.Accesses /= w
	m.Hits /= w
	m.Misses /= w
	m.TotalLatency /= w

	replacements := uint64(m.replacementCount.Count()) / w
	m.replacementCount.Clear()
	m.replacementCount.Inc(int64(replacements))

	prefetches := uint64(m.prefetchCount.Count()) / w
	m.prefetchCount.Clear()
	m.prefetchCount.Inc(int64(prefetches))

	prefetchMisses := uint64(m.prefetchMissCount.Count()) / w
	m.prefetchMissCount.Clear()
	m.prefetchMissCount.Inc(int64(prefetchMisses))

	usefulPrefetches := uint64(m.usefulPrefetchCount.Count()) / w
	m.usefulPrefetchCount.Clear()
	m.usefulPrefetchCount.Inc(int64(usefulPrefetches))

	for _, ls := range m.perLevel {
		ls.Accesses /= w
		ls.Hits /= w
		ls.Misses /= w
	}
}

