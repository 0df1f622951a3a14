// Copyright 2020 Grail Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package cloud

import "github.com/travisw/cloudhmm/dpmatrix"

// Pruner decides which cells of a just-computed anti-diagonal survive
// into the next one. vals[i] is the best of {M,I,D} at query row
// lo+i; best is the running maximum the sweep has observed so far
// (not just this diagonal) — spec.md section 4.6's default rule
// trims against the current diagonal's own max instead, so most
// Pruner implementations ignore best and recompute from vals. Prune
// returns [newLo, newHi), a subrange of [lo, lo+len(vals)]; an empty
// range signals the sweep to stop.
type Pruner interface {
	Prune(vals []float32, lo int32, best, alpha float32) (newLo, newHi int32)
}

// edgeTrim scans in from both ends of vals, dropping cells below
// ref-alpha, and stops at the first surviving cell from each side.
// Cells between two surviving ends are kept regardless of their own
// score, even through a dip below threshold: a cloud stays a
// contiguous span.
func edgeTrim(vals []float32, lo int32, ref, alpha float32) (int32, int32) {
	n := len(vals)
	i := 0
	for i < n && vals[i] < ref-alpha {
		i++
	}
	j := n
	for j > i && vals[j-1] < ref-alpha {
		j--
	}
	return lo + int32(i), lo + int32(j)
}

func localMax(vals []float32) float32 { return dpmatrix.MaxCol(vals) }

// XdropEdgeTrimPruner is the default strategy, directly implementing
// spec.md section 4.6: trim both edges against max_sc, the current
// diagonal's own best of {M,I,D} (not the sweep-wide best).
type XdropEdgeTrimPruner struct{}

func (XdropEdgeTrimPruner) Prune(vals []float32, lo int32, best, alpha float32) (int32, int32) {
	if len(vals) == 0 {
		return lo, lo
	}
	return edgeTrim(vals, lo, localMax(vals), alpha)
}

// XdropBifurcatePruner judges each edge against its own half of the
// diagonal rather than one shared reference for both: the diagonal
// bifurcates at its midpoint, and the leading edge is trimmed against
// the leading half's local best while the trailing edge is trimmed
// against the trailing half's. A cloud that has drifted strong on one
// side and weak on the other is judged independently on each side,
// instead of a strong half propping up a weak one's threshold.
type XdropBifurcatePruner struct{}

func (XdropBifurcatePruner) Prune(vals []float32, lo int32, best, alpha float32) (int32, int32) {
	n := len(vals)
	if n == 0 {
		return lo, lo
	}
	mid := n / 2
	leftRef := localMax(vals[:mid+1])
	rightRef := localMax(vals[mid:])

	i := 0
	for i < n && vals[i] < leftRef-alpha {
		i++
	}
	j := n
	for j > i && vals[j-1] < rightRef-alpha {
		j--
	}
	return lo + int32(i), lo + int32(j)
}

// DoubleXdropOrDiePruner applies the edge trim twice: once against
// the sweep-wide best, then again against the surviving span's own
// local best. A diagonal that cannot survive both passes collapses
// to an empty range, which the caller treats as sweep termination
// ("die") rather than an error.
type DoubleXdropOrDiePruner struct{}

func (DoubleXdropOrDiePruner) Prune(vals []float32, lo int32, best, alpha float32) (int32, int32) {
	if len(vals) == 0 {
		return lo, lo
	}
	lo1, hi1 := edgeTrim(vals, lo, best, alpha)
	if lo1 >= hi1 {
		return lo1, hi1
	}
	sub := vals[lo1-lo : hi1-lo]
	return edgeTrim(sub, lo1, localMax(sub), alpha)
}
