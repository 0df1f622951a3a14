package sparse

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travisw/cloudhmm/edge"
)

func buildRowEdg() *edge.Edgebounds {
	e := edge.New(edge.ByRow, 3, 5)
	e.Push(edge.Bound{ID: 0, LB: 0, RB: 2})
	e.Push(edge.Bound{ID: 1, LB: 1, RB: 4})
	e.Push(edge.Bound{ID: 2, LB: 0, RB: 1})
	e.Push(edge.Bound{ID: 2, LB: 3, RB: 5})
	e.Sort()
	return e
}

// Section 8 property 6: sparse-matrix shaping.
func TestShapeLikeCellCount(t *testing.T) {
	e := buildRowEdg()
	var m Matrix
	require.NoError(t, m.ShapeLike(e))

	want := int32(0)
	for _, b := range e.Bounds {
		want += b.Len()
	}
	assert.Equal(t, want, m.N)
	assert.Len(t, m.Data, int(want)*3)
}

func TestGetSetRoundtrip(t *testing.T) {
	e := buildRowEdg()
	var m Matrix
	require.NoError(t, m.ShapeLike(e))

	require.NoError(t, m.Set(Match, 1, 2, 4.5))
	assert.Equal(t, float32(4.5), m.Get(Match, 1, 2))
	// Insert/Delete at the same cell remain untouched (-Inf).
	assert.True(t, math.IsInf(float64(m.Get(Insert, 1, 2)), -1))
}

func TestGetOutsideBoundIsNegInf(t *testing.T) {
	e := buildRowEdg()
	var m Matrix
	require.NoError(t, m.ShapeLike(e))
	assert.True(t, math.IsInf(float64(m.Get(Match, 2, 2)), -1)) // row 2 only covers [0,1) and [3,5)
}

func TestSetOutsideBoundIsInvariantViolation(t *testing.T) {
	e := buildRowEdg()
	var m Matrix
	require.NoError(t, m.ShapeLike(e))
	err := m.Set(Match, 2, 2, 1.0)
	assert.Error(t, err)
}

func TestShapeLikeRejectsByDiag(t *testing.T) {
	e := edge.New(edge.ByDiag, 3, 3)
	var m Matrix
	assert.Error(t, m.ShapeLike(e))
}

func TestReuseResetsToNegInf(t *testing.T) {
	e := buildRowEdg()
	var m Matrix
	require.NoError(t, m.ShapeLike(e))
	require.NoError(t, m.Set(Delete, 1, 1, 2.0))
	m.Reuse()
	assert.True(t, math.IsInf(float64(m.Get(Delete, 1, 1)), -1))
}

func TestDistinctBoundsOnSameRowAddressedIndependently(t *testing.T) {
	e := buildRowEdg()
	var m Matrix
	require.NoError(t, m.ShapeLike(e))
	require.NoError(t, m.Set(Match, 2, 0, 1.0))
	require.NoError(t, m.Set(Match, 2, 4, 2.0))
	assert.Equal(t, float32(1.0), m.Get(Match, 2, 0))
	assert.Equal(t, float32(2.0), m.Get(Match, 2, 4))
}

func TestSafeAllocReturnsErrorInsteadOfPanicking(t *testing.T) {
	_, err := safeAlloc(-1)
	assert.Error(t, err)
}

func TestSafeAllocSucceedsForReasonableSize(t *testing.T) {
	data, err := safeAlloc(16)
	require.NoError(t, err)
	assert.Len(t, data, 16)
}
