package bounded

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travisw/cloudhmm/dpmatrix"
	"github.com/travisw/cloudhmm/edge"
	"github.com/travisw/cloudhmm/hmm"
	"github.com/travisw/cloudhmm/sparse"
)

// fullCoverage builds a ByRow Edgebounds covering every cell of a
// Q x T grid, so bounded Forward/Backward run exactly as an
// unrestricted full Forward/Backward would (section 8 property 8:
// bounded result bounded above by the unrestricted one, with equality
// when the cloud is the whole grid).
func fullCoverage(q, t int) *edge.Edgebounds {
	e := edge.New(edge.ByRow, q, t)
	for qi := 0; qi <= q; qi++ {
		e.Push(edge.Bound{ID: int32(qi), LB: 0, RB: int32(t) + 1})
	}
	e.Sort()
	return e
}

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

func TestForwardRejectsByDiagInput(t *testing.T) {
	e := edge.New(edge.ByDiag, 3, 3)
	var mat sparse.Matrix
	_, err := Forward(toyProfile(3), toySeq(3), e, &mat, nil)
	assert.Error(t, err)
}

func TestForwardProducesFiniteScore(t *testing.T) {
	p := toyProfile(5)
	s := toySeq(5)
	e := fullCoverage(5, 5)
	var mat sparse.Matrix
	score, err := Forward(p, s, e, &mat, nil)
	require.NoError(t, err)
	assert.False(t, math.IsInf(float64(score), 0))
}

// Section 8 property 7: Forward and Backward scores agree.
func TestForwardBackwardAgree(t *testing.T) {
	p := toyProfile(5)
	s := toySeq(5)
	e := fullCoverage(5, 5)

	var fmat sparse.Matrix
	fscore, err := Forward(p, s, e, &fmat, nil)
	require.NoError(t, err)

	var bmat sparse.Matrix
	bscore, err := Backward(p, s, e, &bmat, nil)
	require.NoError(t, err)

	assert.InDelta(t, fscore, bscore, 1e-2)
}

func TestForwardReusesSuppliedSpecialStrip(t *testing.T) {
	p := toyProfile(4)
	s := toySeq(4)
	e := fullCoverage(4, 4)
	sp := dpmatrix.NewSpecial(4)
	var mat sparse.Matrix
	_, err := Forward(p, s, e, &mat, sp)
	require.NoError(t, err)
	assert.False(t, math.IsInf(float64(sp.Get(dpmatrix.SpecialC, 4)), 0))
}

func TestBackwardRejectsUnsorted(t *testing.T) {
	e := edge.New(edge.ByRow, 3, 3)
	e.Push(edge.Bound{ID: 1, LB: 0, RB: 2})
	e.Push(edge.Bound{ID: 0, LB: 0, RB: 2})
	var mat sparse.Matrix
	_, err := Backward(toyProfile(3), toySeq(3), e, &mat, nil)
	assert.Error(t, err)
}
