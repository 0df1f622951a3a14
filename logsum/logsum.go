// Copyright 2020 Grail Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package logsum provides the log-space addition every DP recurrence
// in this module is built on: Logsum approximates log(exp(a)+exp(b))
// from a precomputed table, Sum reduces a whole slice the same way,
// and NegInf is the shared representation of probability zero.
package logsum

import (
	"math"
	"sync"
)

const (
	// negInf stands in for an unreachable/pruned cell throughout the DP
	// recurrences.
	negInf = float32(math.Inf(-1))

	// cutoff bounds the region where the log1p(exp(-|a-b|)) correction
	// term is non-negligible; beyond it Logsum degenerates to max(a, b).
	cutoff = float32(15.7)

	tableSize  = 16384
	tableScale = float32(tableSize-1) / cutoff
)

var (
	tableOnce sync.Once
	table     [tableSize]float32
)

func buildTable() {
	for i := range table {
		diff := float32(i) / tableScale
		table[i] = float32(math.Log1p(math.Exp(float64(-diff))))
	}
}

// Logsum returns max(a,b) + log1p(exp(-|a-b|)), the log-space
// equivalent of log(exp(a) + exp(b)), using a precomputed table for
// the correction term. Matches LogsumExact to within 1e-3.
func Logsum(a, b float32) float32 {
	if math.IsInf(float64(a), -1) {
		return b
	}
	if math.IsInf(float64(b), -1) {
		return a
	}
	hi, lo := a, b
	if lo > hi {
		hi, lo = lo, hi
	}
	diff := hi - lo
	if diff >= cutoff {
		return hi
	}
	tableOnce.Do(buildTable)
	idx := int(diff*tableScale + 0.5)
	if idx >= tableSize {
		idx = tableSize - 1
	}
	return hi + table[idx]
}

// LogsumExact computes the same quantity as Logsum via the closed
// form directly, with no table lookup. Used by tests to check the
// table's approximation error and by callers that need exact
// reproducibility across table-size changes.
func LogsumExact(a, b float32) float32 {
	if math.IsInf(float64(a), -1) {
		return b
	}
	if math.IsInf(float64(b), -1) {
		return a
	}
	hi, lo := a, b
	if lo > hi {
		hi, lo = lo, hi
	}
	diff := hi - lo
	if diff >= cutoff {
		return hi
	}
	return hi + float32(math.Log1p(math.Exp(float64(-diff))))
}

// NegInf is the log-space representation of probability zero.
func NegInf() float32 { return negInf }

// Sum reduces a slice of log-space values with repeated Logsum calls,
// left to right. Returns NegInf for an empty slice.
func Sum(values []float32) float32 {
	acc := negInf
	for _, v := range values {
		acc = Logsum(acc, v)
	}
	return acc
}
