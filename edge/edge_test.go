package edge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEdgeboundsSortOrder(t *testing.T) {
	e := New(ByRow, 5, 5)
	e.Push(Bound{ID: 2, LB: 3, RB: 5})
	e.Push(Bound{ID: 1, LB: 0, RB: 2})
	e.Push(Bound{ID: 2, LB: 0, RB: 2})
	e.Sort()
	require.True(t, e.IsSorted())
	for i := 1; i < e.Len(); i++ {
		a, b := e.At(i-1), e.At(i)
		assert.True(t, a.ID < b.ID || (a.ID == b.ID && a.LB <= b.LB))
	}
}

func TestRowRange(t *testing.T) {
	e := New(ByRow, 5, 5)
	e.Push(Bound{ID: 1, LB: 0, RB: 2})
	e.Push(Bound{ID: 2, LB: 0, RB: 1})
	e.Push(Bound{ID: 2, LB: 3, RB: 4})
	e.Push(Bound{ID: 3, LB: 0, RB: 1})
	e.Sort()
	begin, end := e.RowRange(2)
	assert.Equal(t, 1, begin)
	assert.Equal(t, 3, end)
}

// S4: union of overlapping same-id bounds.
func TestUnionS4(t *testing.T) {
	e1 := New(ByDiag, 5, 5)
	e1.Push(Bound{ID: 2, LB: 1, RB: 3})
	e2 := New(ByDiag, 5, 5)
	e2.Push(Bound{ID: 2, LB: 2, RB: 4})

	got, err := e1.Union(e2, Exact)
	require.NoError(t, err)
	require.Equal(t, 1, got.Len())
	assert.Equal(t, Bound{ID: 2, LB: 1, RB: 4}, got.At(0))

	abridged, err := e1.Union(e2, Abridged)
	require.NoError(t, err)
	require.Equal(t, 1, abridged.Len())
	assert.Equal(t, Bound{ID: 2, LB: 1, RB: 4}, abridged.At(0))
}

func TestUnionModeMismatch(t *testing.T) {
	e1 := New(ByDiag, 5, 5)
	e2 := New(ByRow, 5, 5)
	_, err := e1.Union(e2, Exact)
	assert.Error(t, err)
}

// Section 8 property 4: union superset.
func TestUnionSuperset(t *testing.T) {
	e1 := New(ByDiag, 10, 10)
	e1.Push(Bound{ID: 4, LB: 0, RB: 2})
	e1.Push(Bound{ID: 6, LB: 1, RB: 3})
	e2 := New(ByDiag, 10, 10)
	e2.Push(Bound{ID: 4, LB: 3, RB: 5})
	e2.Push(Bound{ID: 6, LB: 2, RB: 4})

	union, err := e1.Union(e2, Exact)
	require.NoError(t, err)

	for _, src := range []*Edgebounds{e1, e2} {
		for _, b := range src.Bounds {
			for x := b.LB; x < b.RB; x++ {
				assert.True(t, union.Covers(b.ID, x), "id=%d x=%d must be covered", b.ID, x)
			}
		}
	}
}

// Section 8 property 5: abridged dominance.
func TestAbridgedDominance(t *testing.T) {
	e1 := New(ByDiag, 10, 10)
	e1.Push(Bound{ID: 4, LB: 0, RB: 2})
	e2 := New(ByDiag, 10, 10)
	e2.Push(Bound{ID: 4, LB: 5, RB: 7})

	exact, err := e1.Union(e2, Exact)
	require.NoError(t, err)
	abridged, err := e1.AbridgedUnion(e2)
	require.NoError(t, err)

	for _, b := range exact.Bounds {
		for x := b.LB; x < b.RB; x++ {
			assert.True(t, abridged.Covers(b.ID, x))
		}
	}
	// The abridged result must strictly bridge the gap the exact one leaves.
	assert.False(t, exact.Covers(4, 3))
	assert.True(t, abridged.Covers(4, 3))
}

// Section 8 property 3: reflection idempotence.
func TestReflectIdempotent(t *testing.T) {
	e := New(ByDiag, 8, 8)
	e.Push(Bound{ID: 5, LB: 1, RB: 4})
	e.Push(Bound{ID: 7, LB: 0, RB: 2})

	once, err := e.Reflect()
	require.NoError(t, err)
	twice, err := once.Reflect()
	require.NoError(t, err)
	assert.Equal(t, e.Bounds, twice.Bounds)
}

// S5: {id=4,lb=0,rb=3} reflects to {id=4,lb=1,rb=4}.
func TestReflectS5(t *testing.T) {
	e := New(ByDiag, 5, 5)
	e.Push(Bound{ID: 4, LB: 0, RB: 3})
	got, err := e.Reflect()
	require.NoError(t, err)
	assert.Equal(t, Bound{ID: 4, LB: 1, RB: 4}, got.At(0))
}

func TestReflectRejectsByRow(t *testing.T) {
	e := New(ByRow, 5, 5)
	_, err := e.Reflect()
	assert.Error(t, err)
}

// S6: reorientation of {id=4,lb=1,rb=3} with Q=5,T=5 covers exactly
// (q=1,t=3) and (q=2,t=2).
func TestReorientS6(t *testing.T) {
	diag := New(ByDiag, 5, 5)
	diag.Push(Bound{ID: 4, LB: 1, RB: 3})
	rows := NewRows(5, 5, DefaultRowMax, ReorientExact, 0)

	row, err := Reorient(diag, rows)
	require.NoError(t, err)

	assert.True(t, row.Covers(1, 3))
	assert.True(t, row.Covers(2, 2))
	assert.False(t, row.Covers(1, 2))
	assert.False(t, row.Covers(2, 3))
}

// Section 8 property 2: reorient coverage (exact policy).
func TestReorientCoverageExact(t *testing.T) {
	diag := New(ByDiag, 6, 6)
	diag.Push(Bound{ID: 3, LB: 0, RB: 2})
	diag.Push(Bound{ID: 4, LB: 1, RB: 3})
	diag.Push(Bound{ID: 5, LB: 2, RB: 3})
	rows := NewRows(6, 6, DefaultRowMax, ReorientExact, 0)

	row, err := Reorient(diag, rows)
	require.NoError(t, err)

	for _, b := range diag.Bounds {
		for q := b.LB; q < b.RB; q++ {
			tCol := b.ID - q
			assert.True(t, row.Covers(q, tCol), "diag %d q=%d t=%d", b.ID, q, tCol)
		}
	}
}

func TestRowsOverflowBridgesInsteadOfAborting(t *testing.T) {
	rows := NewRows(20, 20, 2, ReorientExact, 0)
	// Force 3 disjoint bounds onto row 0 with a cap of 2.
	rows.Integrate(Bound{ID: 0, LB: 0, RB: 1})
	rows.Integrate(Bound{ID: 10, LB: 0, RB: 1})
	rows.Integrate(Bound{ID: 20, LB: 0, RB: 1})
	assert.True(t, rows.Overflowed)
	out := rows.Flatten()
	assert.LessOrEqual(t, out.Len(), 2)
}

func TestEdgeboundsReuseKeepsCapacity(t *testing.T) {
	e := New(ByRow, 5, 5)
	e.Push(Bound{ID: 0, LB: 0, RB: 1})
	capBefore := cap(e.Bounds)
	e.Reuse(10, 10)
	assert.Equal(t, 0, e.Len())
	assert.Equal(t, 10, e.Q)
	assert.Equal(t, capBefore, cap(e.Bounds))
}

func TestBoundContainsAndOverlaps(t *testing.T) {
	b := Bound{ID: 1, LB: 2, RB: 5}
	assert.True(t, b.Contains(2))
	assert.True(t, b.Contains(4))
	assert.False(t, b.Contains(5))
	assert.True(t, b.Overlaps(Bound{ID: 1, LB: 5, RB: 7}))
	assert.False(t, b.Overlaps(Bound{ID: 1, LB: 6, RB: 7}))
}
