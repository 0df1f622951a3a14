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

// Forward sweeps anti-diagonals of increasing index outward from
// anchor, computing a pruned Match/Insert/Delete cloud and returning
// the best log-odds score the sweep observed — an internal figure
// used only to drive pruning and termination, not the calibrated
// score the caller eventually reports — and the ByDiag edgebounds the
// surviving cloud covers.
//
// The special states (E, N, J, C, B) only chain exactly under a
// row-major sweep, where a row's full column range is known before
// its successor begins (see package bounded). An anti-diagonal sweep
// cannot honor that ordering, so Forward holds B fixed at the
// profile's unconditional entry score for the whole sweep instead of
// re-deriving it from a per-row special-state chain. That is exact
// for the single-anchored-domain search this package serves, and only
// degrades multi-hit N/J/C re-entry, which a cloud sweep around one
// anchor never needs to model; the authoritative calibrated score,
// with the full chain, comes from package bounded.
func Forward(profile *hmm.Profile, seq *hmm.Sequence, anchor Anchor, params PruneParams, pruner Pruner, scratch *Scratch) (float32, *edge.Edgebounds, error) {
	return sweepForward(profile, seq, anchor, params, pruner, scratch)
}

func sweepForward(profile *hmm.Profile, seq *hmm.Sequence, anchor Anchor, params PruneParams, pruner Pruner, scratch *Scratch) (float32, *edge.Edgebounds, error) {
	q, t := int32(seq.Q()), int32(profile.T)
	if anchor.I < 1 || anchor.I > q || anchor.J < 1 || anchor.J > t {
		return 0, nil, xerrors.Invalid("cloud.Forward", "anchor (i=%d,j=%d) out of range for Q=%d,T=%d", anchor.I, anchor.J, q, t)
	}
	if pruner == nil {
		pruner = XdropEdgeTrimPruner{}
	}
	scratch.Reuse(int(q), int(t))
	lin := scratch.Lin
	bSeed := profile.SpecialScore(hmm.B, hmm.Move)

	out := edge.New(edge.ByDiag, int(q), int(t))

	d0 := anchor.I + anchor.J
	// Clear all three rolling planes before seeding: a reused Scratch
	// may still hold a prior search's values in them, and the first
	// computed diagonal (d0+1) reads d0 and d0-1.
	lin.ClearDiag(int(d0) - 2)
	lin.ClearDiag(int(d0) - 1)
	lin.ClearDiag(int(d0))
	lin.SetM(int(d0), int(anchor.I), 0)
	out.Push(edge.Bound{ID: d0, LB: anchor.I, RB: anchor.I + 1})

	lo, hi := anchor.I, anchor.I+1
	best := float32(0)
	diags := int32(1)

	for d := d0 + 1; d <= q+t; d++ {
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
			fillForwardCell(profile, seq, lin, int(d), int(qi), int(ti), int(t), bSeed)
		}

		vals := make([]float32, candHi-candLo)
		for i := candLo; i < candHi; i++ {
			vals[i-candLo] = best3(lin.GetM(int(d), int(i)), lin.GetI(int(d), int(i)), lin.GetD(int(d), int(i)))
		}
		if m := localMax(vals); m > best {
			best = m
		}

		// Beta free passes: no trimming until the sweep has moved at
		// least Beta diagonals away from the anchor.
		var newLo, newHi int32
		if d-d0 >= params.Beta {
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

// fillForwardCell computes Match/Insert/Delete at (q=qi, t=ti) on
// anti-diagonal d, per section 4.6's recurrence. B is held at bSeed
// for every row (see Forward's doc comment).
func fillForwardCell(profile *hmm.Profile, seq *hmm.Sequence, lin *dpmatrix.Linear3, d, qi, ti, tMax int, bSeed float32) {
	mPrev := lin.GetM(d-2, qi-1)
	iPrev := lin.GetI(d-2, qi-1)
	dPrev := lin.GetD(d-2, qi-1)
	fromMain := sum3(mPrev+profile.Transition(ti-1, hmm.MM), iPrev+profile.Transition(ti-1, hmm.IM), dPrev+profile.Transition(ti-1, hmm.DM))
	fromB := bSeed + profile.Transition(ti-1, hmm.BM)
	m := sum2(fromMain, fromB) + profile.MatchEmission(ti, seq.At(qi))
	lin.SetM(d, qi, m)

	if ti < tMax {
		mLeft := lin.GetM(d-1, qi-1)
		iLeft := lin.GetI(d-1, qi-1)
		ins := sum2(mLeft+profile.Transition(ti, hmm.MI), iLeft+profile.Transition(ti, hmm.II))
		ins += profile.InsertEmission(ti, seq.At(qi))
		lin.SetI(d, qi, ins)
	} else {
		lin.SetI(d, qi, negInf)
	}

	mUp := lin.GetM(d-1, qi)
	dUp := lin.GetD(d-1, qi)
	del := sum2(mUp+profile.Transition(ti-1, hmm.MD), dUp+profile.Transition(ti-1, hmm.DD))
	lin.SetD(d, qi, del)
}
