// Copyright 2020 Grail Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package cloud

import (
	"github.com/travisw/cloudhmm/dpmatrix"
	"github.com/travisw/cloudhmm/edge"
	"github.com/travisw/cloudhmm/hmm"
	"github.com/travisw/cloudhmm/internal/xerrors"
)

// Backward mirrors Forward: it sweeps anti-diagonals of decreasing
// index inward from anchor toward the model's entry row, holding the
// E-state score fixed at the profile's unconditional "end here" score
// for the same reason Forward holds B fixed (see Forward's doc
// comment).
func Backward(profile *hmm.Profile, seq *hmm.Sequence, anchor Anchor, params PruneParams, pruner Pruner, scratch *Scratch) (float32, *edge.Edgebounds, error) {
	return sweepBackward(profile, seq, anchor, params, pruner, scratch)
}

func sweepBackward(profile *hmm.Profile, seq *hmm.Sequence, anchor Anchor, params PruneParams, pruner Pruner, scratch *Scratch) (float32, *edge.Edgebounds, error) {
	q, t := int32(seq.Q()), int32(profile.T)
	if anchor.I < 1 || anchor.I > q || anchor.J < 1 || anchor.J > t {
		return 0, nil, xerrors.Invalid("cloud.Backward", "anchor (i=%d,j=%d) out of range for Q=%d,T=%d", anchor.I, anchor.J, q, t)
	}
	if pruner == nil {
		pruner = XdropEdgeTrimPruner{}
	}
	scratch.Reuse(int(q), int(t))
	lin := scratch.Lin
	eSeed := profile.SpecialScore(hmm.E, hmm.Move)

	out := edge.New(edge.ByDiag, int(q), int(t))

	d0 := anchor.I + anchor.J
	// Clear all three rolling planes before seeding: the first
	// computed diagonal (d0-1) reads d0 and d0+1, which a reused
	// Scratch may still hold stale values in.
	lin.ClearDiag(int(d0) + 2)
	lin.ClearDiag(int(d0) + 1)
	lin.ClearDiag(int(d0))
	lin.SetM(int(d0), int(anchor.I), 0)
	out.Push(edge.Bound{ID: d0, LB: anchor.I, RB: anchor.I + 1})

	lo, hi := anchor.I, anchor.I+1
	best := float32(0)
	diags := int32(1)

	for d := d0 - 1; d >= 0; d-- {
		candLo, candHi := candidateRange(d, lo, hi, q, t)
		if candHi <= candLo {
			break
		}
		lin.ClearDiag(int(d))
		for qi := candLo; qi < candHi; qi++ {
			ti := d - qi
			if qi <= 0 || ti <= 0 || ti > t || qi > q {
				continue
			}
			fillBackwardCell(profile, seq, lin, int(d), int(qi), int(ti), int(t), int(q), eSeed)
		}

		vals := make([]float32, candHi-candLo)
		for i := candLo; i < candHi; i++ {
			vals[i-candLo] = best3(lin.GetM(int(d), int(i)), lin.GetI(int(d), int(i)), lin.GetD(int(d), int(i)))
		}
		if m := localMax(vals); m > best {
			best = m
		}

		// Beta free passes: no trimming until the sweep has moved at
		// least Beta diagonals away from the anchor (here, downward).
		var newLo, newHi int32
		if d0-d >= params.Beta {
			newLo, newHi = pruner.Prune(vals, candLo, best, params.Alpha)
		} else {
			newLo, newHi = candLo, candHi
		}
		if newHi > newLo {
			out.Push(edge.Bound{ID: d, LB: newLo, RB: newHi})
		}
		lo, hi = newLo, newHi
		diags++

		if hi <= lo {
			break
		}
		if params.Gamma > 0 && diags >= params.Gamma {
			break
		}
	}

	out.Sort()
	return best, out, nil
}

// fillBackwardCell computes Match/Insert/Delete at (q=qi, t=ti) on
// anti-diagonal d, the mirror of fillForwardCell: it reads the
// "future" cells (q+1, q) rather than the "past" ones, since a
// backward sweep visits decreasing anti-diagonals.
func fillBackwardCell(profile *hmm.Profile, seq *hmm.Sequence, lin *dpmatrix.Linear3, d, qi, ti, tMax, qMax int, eSeed float32) {
	var mNext, iNext float32
	if ti < tMax && qi < qMax {
		mNext = lin.GetM(d+2, qi+1) + profile.Transition(ti, hmm.MM) + profile.MatchEmission(ti+1, seq.At(qi+1))
		iNext = lin.GetI(d+1, qi+1) + profile.Transition(ti, hmm.MI) + profile.InsertEmission(ti, seq.At(qi+1))
	} else {
		mNext, iNext = negInf, negInf
	}
	var dRight float32
	if ti < tMax {
		dRight = lin.GetD(d+1, qi) + profile.Transition(ti, hmm.MD)
	} else {
		dRight = negInf
	}
	m := sum3(mNext, iNext, dRight)
	if ti == tMax {
		m = sum2(m, eSeed)
	}
	lin.SetM(d, qi, m)

	if ti < tMax {
		var imNext, iiNext float32
		if qi < qMax {
			imNext = lin.GetM(d+2, qi+1) + profile.Transition(ti, hmm.IM) + profile.MatchEmission(ti+1, seq.At(qi+1))
			iiNext = lin.GetI(d+1, qi+1) + profile.Transition(ti, hmm.II) + profile.InsertEmission(ti, seq.At(qi+1))
		} else {
			imNext, iiNext = negInf, negInf
		}
		lin.SetI(d, qi, sum2(imNext, iiNext))
	} else {
		lin.SetI(d, qi, negInf)
	}

	var dmNext, ddNext float32
	if qi < qMax {
		dmNext = lin.GetM(d+2, qi+1) + profile.Transition(ti, hmm.DM) + profile.MatchEmission(ti+1, seq.At(qi+1))
	} else {
		dmNext = negInf
	}
	if ti < tMax {
		ddNext = lin.GetD(d+1, qi) + profile.Transition(ti, hmm.DD)
	} else {
		ddNext = negInf
	}
	del := sum2(dmNext, ddNext)
	if ti == tMax {
		del = sum2(del, eSeed)
	}
	lin.SetD(d, qi, del)
}
