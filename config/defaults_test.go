package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultL1L2L3BuildsValidHierarchy(t *testing.T) {
	doc := DefaultL1L2L3()
	require.NoError(t, doc.Validate())

	h, err := Build(doc)
	require.NoError(t, err)
	assert.Equal(t, 3, h.Depth())
	assert.Equal(t, uint64(200), h.MainMemoryLatency())
}

func TestDefaultTwoLevelMobileBuildsValidHierarchy(t *testing.T) {
	doc := DefaultTwoLevelMobile()
	require.NoError(t, doc.Validate())

	h, err := Build(doc)
	require.NoError(t, err)
	assert.Equal(t, 2, h.Depth())
	assert.Equal(t, uint64(150), h.MainMemoryLatency())
}
