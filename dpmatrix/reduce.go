// Copyright 2020 Grail Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package dpmatrix

import (
	"gonum.org/v1/gonum/floats"

	"github.com/travisw/cloudhmm/logsum"
)

// MaxCol returns the largest value in col, or -Inf for an empty
// slice. Used by the cloud sweep's per-diagonal pruning threshold
// (max_sc in spec terms). gonum/floats operates on float64, so values
// are widened and narrowed at the boundary; the reduction itself is
// exact either way (Max has no rounding error).
func MaxCol(col []float32) float32 {
	if len(col) == 0 {
		return logsum.NegInf()
	}
	return float32(floats.Max(widen(col)))
}

// SumLogCol reduces col in log space via repeated Logsum, the shape
// the E-state full-diagonal accumulation (spec.md 4.6) needs: E(q) =
// logsum over the diagonal of {M(q,t)+sE, D(q,t)+sE}.
func SumLogCol(col []float32) float32 { return logsum.Sum(col) }

func widen(col []float32) []float64 {
	wide := make([]float64, len(col))
	for i, v := range col {
		wide[i] = float64(v)
	}
	return wide
}
