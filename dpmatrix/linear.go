// Copyright 2020 Grail Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package dpmatrix

import "github.com/travisw/cloudhmm/logsum"

// Linear3 is the 3-plane rolling anti-diagonal strip the cloud sweep
// (C7) uses instead of a full Q x T grid: anti-diagonal d maps to
// physical plane d mod 3, so memory is O(Q+T) instead of O(Q*T).
// Within a plane, cells are indexed by their query-row coordinate q
// (0 <= q <= Q); a diagonal's target-column coordinate is implied by
// t = d - q, so a fixed-length buffer of Q+1 slots per plane covers
// every diagonal regardless of its length.
type Linear3 struct {
	Qlen    int // Q+1: number of addressable query rows per plane
	M, I, D []float32
}

// NewLinear3 allocates a 3-plane strip sized for a Q x T grid, with
// every cell set to -Inf.
func NewLinear3(q, t int) *Linear3 {
	qlen := q + 1
	l := &Linear3{
		Qlen: qlen,
		M:    make([]float32, 3*qlen),
		I:    make([]float32, 3*qlen),
		D:    make([]float32, 3*qlen),
	}
	l.Fill(logsum.NegInf())
	return l
}

// Diag returns the physical plane (0, 1, or 2) that anti-diagonal d
// is currently mapped to.
func Diag(d int) int { return ((d % 3) + 3) % 3 }

// Fill sets every cell of every plane to val.
func (l *Linear3) Fill(val float32) {
	for i := range l.M {
		l.M[i] = val
		l.I[i] = val
		l.D[i] = val
	}
}

// ClearDiag resets the plane anti-diagonal d maps to, the standard
// operation before a rolling plane is reused for a new anti-diagonal
// three sweeps ahead.
func (l *Linear3) ClearDiag(d int) {
	base := Diag(d) * l.Qlen
	neg := logsum.NegInf()
	for k := 0; k < l.Qlen; k++ {
		l.M[base+k] = neg
		l.I[base+k] = neg
		l.D[base+k] = neg
	}
}

func (l *Linear3) offset(d, q int) int { return Diag(d)*l.Qlen + q }

// GetM, GetI, GetD read the Match/Insert/Delete value at
// anti-diagonal d, query-row q.
func (l *Linear3) GetM(d, q int) float32 { return l.M[l.offset(d, q)] }
func (l *Linear3) GetI(d, q int) float32 { return l.I[l.offset(d, q)] }
func (l *Linear3) GetD(d, q int) float32 { return l.D[l.offset(d, q)] }

// SetM, SetI, SetD write the Match/Insert/Delete value at
// anti-diagonal d, query-row q.
func (l *Linear3) SetM(d, q int, v float32) { l.M[l.offset(d, q)] = v }
func (l *Linear3) SetI(d, q int, v float32) { l.I[l.offset(d, q)] = v }
func (l *Linear3) SetD(d, q int, v float32) { l.D[l.offset(d, q)] = v }
