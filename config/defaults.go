package config

// DefaultL1L2L3 is a curated three-level desktop-class hierarchy, grounded
// on the M2-derived presets in the timing-cache reference: small fast L1,
// mid-size L2, larger slower L3, DRAM beyond.
func DefaultL1L2L3() *Document {
	return &Document{
		CacheHierarchy: []LevelConfig{
			{
				ID: "L1", Level: 0,
				Config: CacheParams{
					Size: "32KB", BlockSize: 64, Associativity: 8, HitLatency: 1,
					ReplacementPolicy: "LRU", WritePolicy: "write-back", AllocationPolicy: "write-allocate",
					Prefetch: &PrefetchParams{PolicyName: "NextNLine", Degree: 1},
				},
			},
			{
				ID: "L2", Level: 1,
				Config: CacheParams{
					Size: "256KB", BlockSize: 64, Associativity: 8, HitLatency: 10,
					ReplacementPolicy: "SRRIP", WritePolicy: "write-back", AllocationPolicy: "write-allocate",
					Prefetch: &PrefetchParams{PolicyName: "Stream", Degree: 2, TableSize: 16},
				},
			},
			{
				ID: "L3", Level: 2,
				Config: CacheParams{
					Size: "8MB", BlockSize: 64, Associativity: 16, HitLatency: 40,
					ReplacementPolicy: "SRRIP", WritePolicy: "write-back", AllocationPolicy: "write-allocate",
				},
			},
		},
		Interconnects: []InterconnectConfig{
			{BusLatency: 5}, {BusLatency: 20}, {BusLatency: 50},
		},
		MainMemory: MainMemoryConfig{AccessLatency: 200},
	}
}

// DefaultTwoLevelMobile is a smaller two-level hierarchy typical of a
// power-constrained mobile core: tighter L1, a single shared L2, and a
// probabilistic bypass on L2 to model a capacity-limited last level.
func DefaultTwoLevelMobile() *Document {
	return &Document{
		CacheHierarchy: []LevelConfig{
			{
				ID: "L1", Level: 0,
				Config: CacheParams{
					Size: "16KB", BlockSize: 32, Associativity: 4, HitLatency: 1,
					ReplacementPolicy: "LRU", WritePolicy: "write-through", AllocationPolicy: "no-write-allocate",
				},
			},
			{
				ID: "L2", Level: 1,
				Config: CacheParams{
					Size: "128KB", BlockSize: 32, Associativity: 8, HitLatency: 8,
					ReplacementPolicy: "SRRIP", WritePolicy: "write-back", AllocationPolicy: "write-allocate",
					Bypass: &BypassParams{PolicyName: "Prob", BypassProbDemand: 0.01, BypassProbPrefetch: 0.2},
				},
			},
		},
		Interconnects: []InterconnectConfig{
			{BusLatency: 4}, {BusLatency: 30},
		},
		MainMemory: MainMemoryConfig{AccessLatency: 150},
	}
}
