// Copyright 2020 Grail Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package cloud

import "github.com/travisw/cloudhmm/logsum"

// candidateRange expands the previous diagonal's retained [lo, hi) by
// one row in each direction (the most a contiguous wavefront can grow
// per anti-diagonal step) and clamps to the cells anti-diagonal d
// actually contains within a Q x T grid.
func candidateRange(d, lo, hi, q, t int32) (int32, int32) {
	candLo := lo - 1
	candHi := hi + 1

	qMin := int32(0)
	if d-t > qMin {
		qMin = d - t
	}
	qMax := q
	if d < qMax {
		qMax = d
	}
	if candLo < qMin {
		candLo = qMin
	}
	if candHi > qMax+1 {
		candHi = qMax + 1
	}
	return candLo, candHi
}

// best3 is the largest of its three arguments. Used only to track the
// sweep's best-seen score for pruning purposes (section 4.6's x-drop
// threshold compares against a best path score, not a total
// probability) — never to combine alternative DP predecessors, which
// must be combined with logsum (this is a Forward/Backward recurrence,
// not Viterbi).
func best3(a, b, c float32) float32 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

// sum2 and sum3 combine alternative DP predecessors in log space, the
// correct combinator for Forward/Backward (as opposed to a Viterbi
// max).
func sum2(a, b float32) float32    { return logsum.Logsum(a, b) }
func sum3(a, b, c float32) float32 { return logsum.Logsum(logsum.Logsum(a, b), c) }

var negInf = logsum.NegInf()
