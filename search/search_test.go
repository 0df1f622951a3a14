package search

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travisw/cloudhmm/hmm"
)

// toyProfile mirrors the toy profiles used by package bounded's own
// tests: mild diagonal preference, well-behaved special-state scores,
// so a cloud search anchored near the main diagonal of an all-zero
// sequence converges to an unambiguous alignment.
func toyProfile(tlen int) *hmm.Profile {
	p := hmm.NewProfile(tlen)
	for t0 := 0; t0 <= tlen; t0++ {
		for a := 0; a < hmm.AlphaSize; a++ {
			p.Match[t0][a] = -2
			p.Insert[t0][a] = -2
		}
		p.Match[t0][0] = -0.1
		p.Trans[t0][hmm.MM] = -0.2
		p.Trans[t0][hmm.MI] = -3
		p.Trans[t0][hmm.MD] = -3
		p.Trans[t0][hmm.IM] = -1
		p.Trans[t0][hmm.II] = -3
		p.Trans[t0][hmm.DM] = -1
		p.Trans[t0][hmm.DD] = -3
		p.Trans[t0][hmm.BM] = -0.5
	}
	p.Special[hmm.N][hmm.Loop] = -5
	p.Special[hmm.N][hmm.Move] = -0.01
	p.Special[hmm.J][hmm.Loop] = -5
	p.Special[hmm.J][hmm.Move] = -0.01
	p.Special[hmm.C][hmm.Loop] = -5
	p.Special[hmm.C][hmm.Move] = -0.01
	p.Special[hmm.E][hmm.Loop] = -5
	p.Special[hmm.E][hmm.Move] = -0.01
	p.Special[hmm.B][hmm.Move] = 0
	return p
}

func toySeq(q int) *hmm.Sequence {
	digits := make([]uint8, q)
	return &hmm.Sequence{Digits: digits}
}

// aln builds a single-match anchor alignment at (i, j): Forward and
// Backward both seed at the same cell.
func aln(i, j int) *hmm.Alignment {
	return &hmm.Alignment{Cells: []hmm.TraceCell{{State: hmm.TraceMatch, I: i, J: j}}}
}

// alnSpan builds a multi-cell anchor alignment whose first and last
// match cells differ, exercising the start-anchor/end-anchor split
// (Forward seeds at the first, Backward at the last).
func alnSpan(startI, startJ, endI, endJ int) *hmm.Alignment {
	return &hmm.Alignment{Cells: []hmm.TraceCell{
		{State: hmm.TraceBegin, I: startI - 1, J: startJ - 1},
		{State: hmm.TraceMatch, I: startI, J: startJ},
		{State: hmm.TraceMatch, I: endI, J: endJ},
		{State: hmm.TraceEnd, I: endI + 1, J: endJ + 1},
	}}
}

func TestCloudSearchProducesFiniteAgreeingScores(t *testing.T) {
	p := toyProfile(10)
	s := toySeq(10)

	outcome, err := CloudSearch(p, s, aln(5, 5), DefaultOptions(), nil)
	require.NoError(t, err)
	assert.False(t, math.IsInf(float64(outcome.FwdScore), 0))
	// Section 8 property 7: Forward and Backward scores agree, even
	// when routed through the merged, pruned cloud rather than a full
	// matrix.
	assert.InDelta(t, outcome.FwdScore, outcome.BckScore, 1e-2)
	assert.Equal(t, 0, len(outcome.Warnings))
	assert.NotNil(t, outcome.EdgRow)
	assert.Greater(t, outcome.EdgRow.Len(), 0)
}

func TestCloudSearchHandlesDistinctStartAndEndAnchors(t *testing.T) {
	p := toyProfile(10)
	s := toySeq(10)

	outcome, err := CloudSearch(p, s, alnSpan(3, 3, 7, 7), DefaultOptions(), nil)
	require.NoError(t, err)
	assert.False(t, math.IsInf(float64(outcome.FwdScore), 0))
	assert.InDelta(t, outcome.FwdScore, outcome.BckScore, 1e-2)
}

func TestCloudSearchReusesSuppliedWorkspace(t *testing.T) {
	p := toyProfile(8)
	s := toySeq(8)
	ws := NewWorkspace(8, 8)

	o1, err := CloudSearch(p, s, aln(4, 4), DefaultOptions(), ws)
	require.NoError(t, err)
	o2, err := CloudSearch(p, s, aln(3, 5), DefaultOptions(), ws)
	require.NoError(t, err)

	assert.False(t, math.IsInf(float64(o1.FwdScore), 0))
	assert.False(t, math.IsInf(float64(o2.FwdScore), 0))
}

func TestCloudSearchRejectsOutOfRangeAnchor(t *testing.T) {
	p := toyProfile(6)
	s := toySeq(6)
	_, err := CloudSearch(p, s, aln(0, 20), DefaultOptions(), nil)
	assert.Error(t, err)
}

func TestCloudSearchRejectsAlignmentWithNoMatchCell(t *testing.T) {
	p := toyProfile(6)
	s := toySeq(6)
	empty := &hmm.Alignment{Cells: []hmm.TraceCell{{State: hmm.TraceBegin, I: 0, J: 0}}}
	_, err := CloudSearch(p, s, empty, DefaultOptions(), nil)
	assert.Error(t, err)
}

func TestBatchRunsAllJobsConcurrently(t *testing.T) {
	p := toyProfile(12)
	s := toySeq(12)
	jobs := []Job{
		{Alignment: aln(3, 3)},
		{Alignment: aln(6, 6)},
		{Alignment: aln(9, 9)},
		{Alignment: aln(5, 7)},
	}

	results, err := Batch(context.Background(), p, s, jobs, DefaultOptions(), 2)
	require.NoError(t, err)
	require.Len(t, results, len(jobs))
	for i, r := range results {
		require.NoErrorf(t, r.Err, "job %d", i)
		assert.False(t, math.IsInf(float64(r.Outcome.FwdScore), 0))
	}
}

func TestBatchStopsOnCanceledContext(t *testing.T) {
	p := toyProfile(6)
	s := toySeq(6)
	jobs := []Job{
		{Alignment: aln(3, 3)},
		{Alignment: aln(2, 4)},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := Batch(ctx, p, s, jobs, DefaultOptions(), 2)
	assert.Error(t, err)
	for _, r := range results {
		assert.Equal(t, context.Canceled, r.Err)
	}
}

func TestBatchHandlesEmptyJobList(t *testing.T) {
	p := toyProfile(4)
	s := toySeq(4)
	results, err := Batch(context.Background(), p, s, nil, DefaultOptions(), 4)
	require.NoError(t, err)
	assert.Empty(t, results)
}
