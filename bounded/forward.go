// Copyright 2020 Grail Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package bounded implements the calibrated, row-major Forward and
// Backward recurrences (section 4.8) that run over the merged cloud:
// exact, because a row-major sweep (unlike package cloud's
// anti-diagonal one) can correctly chain the E/J/C/N/B special states
// row by row, each depending only on the row before it.
package bounded

import (
	"github.com/travisw/cloudhmm/dpmatrix"
	"github.com/travisw/cloudhmm/edge"
	"github.com/travisw/cloudhmm/hmm"
	"github.com/travisw/cloudhmm/internal/xerrors"
	"github.com/travisw/cloudhmm/logsum"
	"github.com/travisw/cloudhmm/sparse"
)

// Forward runs the calibrated Forward recurrence over edg (which must
// be ByRow), writing Match/Insert/Delete into mat and the special
// states into sp, and returns the final log-odds score
// C(Q) + xsc[C][MOVE].
func Forward(profile *hmm.Profile, seq *hmm.Sequence, edg *edge.Edgebounds, mat *sparse.Matrix, sp *dpmatrix.Special) (float32, error) {
	if edg.Mode != edge.ByRow {
		return 0, xerrors.Invariant("bounded.Forward", "expected ByRow edgebounds, got %v", edg.Mode)
	}
	if !edg.IsSorted() {
		return 0, xerrors.Invariant("bounded.Forward", "edgebounds not sorted")
	}
	if err := mat.ShapeLike(edg); err != nil {
		return 0, err
	}
	q := edg.Q
	if sp == nil || sp.Q != q {
		sp = dpmatrix.NewSpecial(q)
	} else {
		sp.Fill(logsum.NegInf())
	}

	neg := logsum.NegInf()
	// sE(t) gates which cells may transition directly to E: every
	// cell when local, only the last profile column when glocal (column
	// T may exit to E in either mode).
	sE := func(t int) float32 {
		if profile.IsLocal || t == profile.T {
			return 0
		}
		return neg
	}

	sp.Set(dpmatrix.SpecialN, 0, 0)
	sp.Set(dpmatrix.SpecialB, 0, profile.SpecialScore(hmm.N, hmm.Move))
	sp.Set(dpmatrix.SpecialE, 0, neg)
	sp.Set(dpmatrix.SpecialJ, 0, neg)
	sp.Set(dpmatrix.SpecialC, 0, neg)

	for qi := 1; qi <= q; qi++ {
		begin, end := edg.RowRange(int32(qi))
		var eTerms []float32
		bPrev := sp.Get(dpmatrix.SpecialB, qi-1)

		for bi := begin; bi < end; bi++ {
			b := edg.Bounds[bi]
			for t := b.LB; t < b.RB; t++ {
				if t < 1 {
					continue // column 0 is the entry boundary, not an addressable match/insert/delete cell
				}
				ti := int(t)
				m := logsum.Sum([]float32{
					mat.Get(sparse.Match, int32(qi-1), t-1) + profile.Transition(ti-1, hmm.MM),
					mat.Get(sparse.Insert, int32(qi-1), t-1) + profile.Transition(ti-1, hmm.IM),
					mat.Get(sparse.Delete, int32(qi-1), t-1) + profile.Transition(ti-1, hmm.DM),
					bPrev + profile.Transition(ti-1, hmm.BM),
				})
				m += profile.MatchEmission(ti, seq.At(qi))
				if err := mat.Set(sparse.Match, int32(qi), t, m); err != nil {
					return 0, err
				}

				var ins float32
				if ti < profile.T {
					ins = logsum.Logsum(
						mat.Get(sparse.Match, int32(qi-1), t)+profile.Transition(ti, hmm.MI),
						mat.Get(sparse.Insert, int32(qi-1), t)+profile.Transition(ti, hmm.II),
					)
					ins += profile.InsertEmission(ti, seq.At(qi))
				} else {
					ins = neg
				}
				if err := mat.Set(sparse.Insert, int32(qi), t, ins); err != nil {
					return 0, err
				}

				del := logsum.Logsum(
					mat.Get(sparse.Match, int32(qi), t-1)+profile.Transition(ti-1, hmm.MD),
					mat.Get(sparse.Delete, int32(qi), t-1)+profile.Transition(ti-1, hmm.DD),
				)
				if err := mat.Set(sparse.Delete, int32(qi), t, del); err != nil {
					return 0, err
				}

				eTerms = append(eTerms, logsum.Logsum(m, del)+sE(ti))
			}
		}

		// rowE = logsum over the row of every cell's contribution to E
		// (spec.md 4.6's E-state full-diagonal accumulation).
		rowE := dpmatrix.SumLogCol(eTerms)
		sp.Set(dpmatrix.SpecialE, qi, rowE)
		j := logsum.Logsum(sp.Get(dpmatrix.SpecialJ, qi-1)+profile.SpecialScore(hmm.J, hmm.Loop), rowE+profile.SpecialScore(hmm.E, hmm.Loop))
		c := logsum.Logsum(sp.Get(dpmatrix.SpecialC, qi-1)+profile.SpecialScore(hmm.C, hmm.Loop), rowE+profile.SpecialScore(hmm.E, hmm.Move))
		n := sp.Get(dpmatrix.SpecialN, qi-1) + profile.SpecialScore(hmm.N, hmm.Loop)
		b := logsum.Logsum(n+profile.SpecialScore(hmm.N, hmm.Move), j+profile.SpecialScore(hmm.J, hmm.Move))
		sp.Set(dpmatrix.SpecialJ, qi, j)
		sp.Set(dpmatrix.SpecialC, qi, c)
		sp.Set(dpmatrix.SpecialN, qi, n)
		sp.Set(dpmatrix.SpecialB, qi, b)
	}

	return sp.Get(dpmatrix.SpecialC, q) + profile.SpecialScore(hmm.C, hmm.Move), nil
}
