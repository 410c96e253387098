package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDocJSON() string {
	return `{
		"cache_hierarchy": [
			{
				"id": "L1",
				"level": 0,
				"config": {
					"size": "32KB",
					"block_size": 64,
					"associativity": 8,
					"hit_latency": 1,
					"replacement_policy": "LRU",
					"write_policy": "write-back",
					"allocation_policy": "write-allocate"
				}
			}
		],
		"interconnects": [{"bus_latency": 10}],
		"main_memory": {"access_latency": 100}
	}`
}

func TestLoadAndBuildRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(validDocJSON()), 0o644))

	doc, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, doc)

	h, err := Build(doc)
	require.NoError(t, err)
	assert.Equal(t, 1, h.Depth())
	assert.Equal(t, uint64(10), h.BusLatency(0))
	assert.Equal(t, uint64(100), h.MainMemoryLatency())
}

func TestValidateRejectsMismatchedInterconnectCount(t *testing.T) {
	doc := &Document{
		CacheHierarchy: []LevelConfig{{
			ID: "L1", Level: 0,
			Config: CacheParams{Size: "32KB", BlockSize: 64, Associativity: 8, ReplacementPolicy: "LRU", WritePolicy: "write-back", AllocationPolicy: "write-allocate"},
		}},
		Interconnects: nil,
		MainMemory:    MainMemoryConfig{AccessLatency: 100},
	}
	err := doc.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "interconnects")
}

func TestValidateRejectsNonPowerOfTwoBlockSize(t *testing.T) {
	doc := &Document{
		CacheHierarchy: []LevelConfig{{
			ID: "L1", Level: 0,
			Config: CacheParams{Size: "32KB", BlockSize: 48, Associativity: 8, ReplacementPolicy: "LRU", WritePolicy: "write-back", AllocationPolicy: "write-allocate"},
		}},
		Interconnects: []InterconnectConfig{{BusLatency: 10}},
		MainMemory:    MainMemoryConfig{AccessLatency: 100},
	}
	err := doc.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "block_size")
}

func TestValidateRejectsUnknownReplacementPolicy(t *testing.T) {
	doc := &Document{
		CacheHierarchy: []LevelConfig{{
			ID: "L1", Level: 0,
			Config: CacheParams{Size: "32KB", BlockSize: 64, Associativity: 8, ReplacementPolicy: "MRU", WritePolicy: "write-back", AllocationPolicy: "write-allocate"},
		}},
		Interconnects: []InterconnectConfig{{BusLatency: 10}},
		MainMemory:    MainMemoryConfig{AccessLatency: 100},
	}
	err := doc.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "replacement_policy")
}

func TestValidateRejectsMissingID(t *testing.T) {
	doc := &Document{
		CacheHierarchy: []LevelConfig{{
			Level: 0,
			Config: CacheParams{Size: "32KB", BlockSize: 64, Associativity: 8, ReplacementPolicy: "LRU", WritePolicy: "write-back", AllocationPolicy: "write-allocate"},
		}},
		Interconnects: []InterconnectConfig{{BusLatency: 10}},
		MainMemory:    MainMemoryConfig{AccessLatency: 100},
	}
	err := doc.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "id")
}

func TestPrefetchSpecDispatchesOnPolicyName(t *testing.T) {
	spec, err := prefetchSpec(&PrefetchParams{PolicyName: "NextNLine", Degree: 2})
	require.NoError(t, err)
	assert.Equal(t, "next_n_line", spec.Kind)
	assert.Equal(t, 2, spec.Degree)

	spec, err = prefetchSpec(nil)
	require.NoError(t, err)
	assert.Equal(t, "none", spec.Kind)

	_, err = prefetchSpec(&PrefetchParams{PolicyName: "bogus"})
	assert.Error(t, err)
}

func TestBypassSpecUsesBothProbabilities(t *testing.T) {
	spec, err := bypassSpec(&BypassParams{PolicyName: "prob", BypassProbDemand: 0.1, BypassProbPrefetch: 0.5})
	require.NoError(t, err)
	assert.Equal(t, "prob", spec.Kind)
	assert.Equal(t, 0.1, spec.PDemand)
	assert.Equal(t, 0.5, spec.PPrefetch)
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.json"))
	assert.Error(t, err)
}
