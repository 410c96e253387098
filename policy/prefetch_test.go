package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextNLineProducesDegreeSuccessors(t *testing.T) {
	p := NextNLine{Degree: 3}
	got := p.OnMiss(0x10, 8)
	assert.Equal(t, []uint64{0x18, 0x20, 0x28}, got)
}

func TestNextNLineAlignsTriggerAddressFirst(t *testing.T) {
	p := NextNLine{Degree: 1}
	got := p.OnMiss(0x13, 8) // mid-block address still aligns down to 0x10
	assert.Equal(t, []uint64{0x18}, got)
}

func TestStreamDoesNotPredictOnFirstMiss(t *testing.T) {
	s := NewStream(2, 4)
	got := s.OnMiss(0x00, 8)
	assert.Nil(t, got)
}

func TestStreamDetectsAscendingRunAfterTwoMisses(t *testing.T) {
	s := NewStream(2, 4)
	s.OnMiss(0x00, 8)
	got := s.OnMiss(0x08, 8) // previous block (0x00) is in history -> ride ascending
	assert.Equal(t, []uint64{0x10, 0x18}, got)
}

func TestStrideInitialTrainsOnFirstDelta(t *testing.T) {
	s := NewStride(1, 4)
	got := s.OnMiss(0x00, 8)
	assert.Nil(t, got, "first access only seeds the entry")

	got = s.OnMiss(0x08, 8) // delta=+1 block, enters training, predicts one ahead
	assert.Equal(t, []uint64{0x10}, got)
}

func TestStridePromotesToSteadyAndPredictsDegreeAhead(t *testing.T) {
	s := NewStride(2, 4)
	s.OnMiss(0x00, 8)
	s.OnMiss(0x08, 8) // training
	got := s.OnMiss(0x10, 8) // confirms stride again -> steady, still single prediction
	assert.Equal(t, []uint64{0x18}, got)

	got = s.OnMiss(0x18, 8) // now steady: predicts Degree successors
	assert.Equal(t, []uint64{0x20, 0x28}, got)
}

func TestStrideResetsOnBrokenPattern(t *testing.T) {
	s := NewStride(1, 4)
	s.OnMiss(0x00, 8)
	s.OnMiss(0x08, 8)  // training, stride=+1
	s.OnMiss(0x10, 8)  // steady
	got := s.OnMiss(0x100, 8) // unrelated jump breaks the pattern
	assert.Nil(t, got)
}
