// Copyright 2020 Grail Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package bounded

import (
	"github.com/travisw/cloudhmm/dpmatrix"
	"github.com/travisw/cloudhmm/edge"
	"github.com/travisw/cloudhmm/hmm"
	"github.com/travisw/cloudhmm/internal/xerrors"
	"github.com/travisw/cloudhmm/logsum"
	"github.com/travisw/cloudhmm/sparse"
)

// Backward runs the calibrated Backward recurrence over edg (which
// must be ByRow), reshaping bmat to edg and writing into it and the
// special strip bsp, and returns N(0): by construction this equals the total
// probability the Forward recurrence computes, so comparing the two
// is how a caller checks Fwd/Bwd agreement (section 8 property 7).
func Backward(profile *hmm.Profile, seq *hmm.Sequence, edg *edge.Edgebounds, bmat *sparse.Matrix, bsp *dpmatrix.Special) (float32, error) {
	if edg.Mode != edge.ByRow {
		return 0, xerrors.Invariant("bounded.Backward", "expected ByRow edgebounds, got %v", edg.Mode)
	}
	if !edg.IsSorted() {
		return 0, xerrors.Invariant("bounded.Backward", "edgebounds not sorted")
	}
	if err := bmat.ShapeLike(edg); err != nil {
		return 0, err
	}
	q := edg.Q
	if bsp == nil || bsp.Q != q {
		bsp = dpmatrix.NewSpecial(q)
	} else {
		bsp.Fill(logsum.NegInf())
	}

	neg := logsum.NegInf()
	sE := func(t int) float32 {
		if profile.IsLocal || t == profile.T {
			return 0
		}
		return neg
	}

	// Row Q boundary: J(Q) has no successor, so E(Q) = C(Q) + xsc[E][MOVE].
	eQ := profile.SpecialScore(hmm.C, hmm.Move) + profile.SpecialScore(hmm.E, hmm.Move)
	bsp.Set(dpmatrix.SpecialE, q, eQ)
	bsp.Set(dpmatrix.SpecialJ, q, neg)
	bsp.Set(dpmatrix.SpecialN, q, neg)
	bsp.Set(dpmatrix.SpecialC, q, profile.SpecialScore(hmm.C, hmm.Move))
	bsp.Set(dpmatrix.SpecialB, q, neg)
	if begin, end := edg.RowRange(int32(q)); end > begin {
		for bi := begin; bi < end; bi++ {
			b := edg.Bounds[bi]
			for t := b.RB - 1; t >= b.LB; t-- {
				if t < 1 {
					continue
				}
				ti := int(t)
				mEnd, dEnd := eQ+sE(ti), eQ+sE(ti)
				if ti < profile.T {
					dRight := bmat.Get(sparse.Delete, int32(q), t+1)
					mEnd = logsum.Logsum(mEnd, dRight+profile.Transition(ti, hmm.MD))
					dEnd = logsum.Logsum(dEnd, dRight+profile.Transition(ti, hmm.DD))
				}
				if err := bmat.Set(sparse.Match, int32(q), t, mEnd); err != nil {
					return 0, err
				}
				if err := bmat.Set(sparse.Delete, int32(q), t, dEnd); err != nil {
					return 0, err
				}
				if err := bmat.Set(sparse.Insert, int32(q), t, neg); err != nil {
					return 0, err
				}
			}
		}
	}

	for qi := q - 1; qi >= 0; qi-- {
		// bB(qi): sum over every profile column the next row's Match
		// cell could have entered at, consuming residue qi+1.
		var bTerms []float32
		if begin, end := edg.RowRange(int32(qi + 1)); end > begin {
			for bi := begin; bi < end; bi++ {
				b := edg.Bounds[bi]
				for t := b.LB; t < b.RB; t++ {
					if t < 1 {
						continue
					}
					k := int(t)
					cand := bmat.Get(sparse.Match, int32(qi+1), t) + profile.Transition(k-1, hmm.BM) + profile.MatchEmission(k, seq.At(qi+1))
					bTerms = append(bTerms, cand)
				}
			}
		}
		bNext := dpmatrix.SumLogCol(bTerms)

		j := logsum.Logsum(bsp.Get(dpmatrix.SpecialJ, qi+1)+profile.SpecialScore(hmm.J, hmm.Loop), bNext+profile.SpecialScore(hmm.J, hmm.Move))
		n := logsum.Logsum(bsp.Get(dpmatrix.SpecialN, qi+1)+profile.SpecialScore(hmm.N, hmm.Loop), bNext+profile.SpecialScore(hmm.N, hmm.Move))
		c := bsp.Get(dpmatrix.SpecialC, qi+1) + profile.SpecialScore(hmm.C, hmm.Loop)
		e := logsum.Logsum(j+profile.SpecialScore(hmm.E, hmm.Loop), c+profile.SpecialScore(hmm.E, hmm.Move))
		bsp.Set(dpmatrix.SpecialB, qi, bNext)
		bsp.Set(dpmatrix.SpecialJ, qi, j)
		bsp.Set(dpmatrix.SpecialN, qi, n)
		bsp.Set(dpmatrix.SpecialC, qi, c)
		bsp.Set(dpmatrix.SpecialE, qi, e)

		if qi == 0 {
			break // row 0 has no Match/Insert/Delete cells to fill
		}

		begin, end := edg.RowRange(int32(qi))
		for bi := begin; bi < end; bi++ {
			b := edg.Bounds[bi]
			for t := b.RB - 1; t >= b.LB; t-- {
				if t < 1 {
					continue
				}
				ti := int(t)
				var mNext, iNext float32
				if ti < profile.T {
					mNext = bmat.Get(sparse.Match, int32(qi+1), t+1) + profile.Transition(ti, hmm.MM) + profile.MatchEmission(ti+1, seq.At(qi+1))
					iNext = bmat.Get(sparse.Insert, int32(qi+1), t) + profile.Transition(ti, hmm.MI) + profile.InsertEmission(ti, seq.At(qi+1))
				} else {
					mNext, iNext = neg, neg
				}
				dRight := neg
				if ti < profile.T {
					dRight = bmat.Get(sparse.Delete, int32(qi), t+1) + profile.Transition(ti, hmm.MD)
				}
				m := logsum.Sum([]float32{mNext, iNext, dRight, e + sE(ti)})
				if err := bmat.Set(sparse.Match, int32(qi), t, m); err != nil {
					return 0, err
				}

				var ins float32
				if ti < profile.T {
					imNext := bmat.Get(sparse.Match, int32(qi+1), t+1) + profile.Transition(ti, hmm.IM) + profile.MatchEmission(ti+1, seq.At(qi+1))
					iiNext := bmat.Get(sparse.Insert, int32(qi+1), t) + profile.Transition(ti, hmm.II) + profile.InsertEmission(ti, seq.At(qi+1))
					ins = logsum.Logsum(imNext, iiNext)
				} else {
					ins = neg
				}
				if err := bmat.Set(sparse.Insert, int32(qi), t, ins); err != nil {
					return 0, err
				}

				var dmNext, ddNext float32
				if ti < profile.T {
					dmNext = bmat.Get(sparse.Match, int32(qi+1), t+1) + profile.Transition(ti, hmm.DM) + profile.MatchEmission(ti+1, seq.At(qi+1))
					ddNext = bmat.Get(sparse.Delete, int32(qi), t+1) + profile.Transition(ti, hmm.DD)
				} else {
					dmNext, ddNext = neg, neg
				}
				del := logsum.Logsum(logsum.Logsum(dmNext, ddNext), e+sE(ti))
				if err := bmat.Set(sparse.Delete, int32(qi), t, del); err != nil {
					return 0, err
				}
			}
		}
	}

	return bsp.Get(dpmatrix.SpecialN, 0), nil
}
