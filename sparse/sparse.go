// Copyright 2020 Grail Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package sparse implements the storage backing for bounded
// Forward/Backward (C9): a 3-D matrix shaped like a ByRow Edgebounds,
// addressing only the cells a cloud search retained.
package sparse

import (
	"fmt"

	"github.com/travisw/cloudhmm/edge"
	"github.com/travisw/cloudhmm/internal/xerrors"
	"github.com/travisw/cloudhmm/logsum"
)

// safeAlloc recovers from the runtime panic a too-large make([]float32, n)
// raises, turning a merge result that asks for an unreasonable amount of
// memory into an error rather than a crash.
func safeAlloc(n int) (data []float32, err error) {
	defer func() {
		if r := recover(); r != nil {
			data, err = nil, fmt.Errorf("%v", r)
		}
	}()
	return make([]float32, n), nil
}

// State selects one of the three DP planes stored per cell.
type State int32

const (
	Match State = iota
	Insert
	Delete
	numStates
)

// Matrix is shaped like a ByRow Edgebounds: row_offsets[q] is the
// starting bound-list index for row q, bound_offsets[b] is the
// number of cells in bounds 0..b-1 (the cell index, not *3, at which
// bound b starts in Data), and Data
// holds Match/Insert/Delete triples for every addressable cell.
type Matrix struct {
	Edg          *edge.Edgebounds
	RowOffsets   []int32 // length Q+2: row_offsets[q]..row_offsets[q+1] indexes into Edg.Bounds
	BoundOffsets []int32 // length len(Edg.Bounds)+1, in cells (not *3)
	Data         []float32
	N            int32 // total addressable cells
}

// ShapeLike resizes m to match edg: computes RowOffsets and
// BoundOffsets and allocates Data to hold 3*N float32s, where N is
// the total number of cells edg's bounds cover. edg must be ByRow and
// sorted.
func (m *Matrix) ShapeLike(edg *edge.Edgebounds) error {
	if edg.Mode != edge.ByRow {
		return xerrors.Invariant("sparse.ShapeLike", "expected ByRow edgebounds, got %v", edg.Mode)
	}
	if !edg.IsSorted() {
		return xerrors.Invariant("sparse.ShapeLike", "edgebounds not sorted")
	}
	m.Edg = edg

	if need := edg.Q + 2; cap(m.RowOffsets) >= need {
		m.RowOffsets = m.RowOffsets[:need]
	} else {
		m.RowOffsets = make([]int32, need)
	}
	if need := len(edg.Bounds) + 1; cap(m.BoundOffsets) >= need {
		m.BoundOffsets = m.BoundOffsets[:need]
	} else {
		m.BoundOffsets = make([]int32, need)
	}

	boundIdx := 0
	var cellCount int32
	for q := 0; q <= edg.Q; q++ {
		m.RowOffsets[q] = int32(boundIdx)
		begin, end := edg.RowRange(int32(q))
		for i := begin; i < end; i++ {
			m.BoundOffsets[boundIdx] = cellCount
			cellCount += edg.Bounds[i].Len()
			boundIdx++
		}
	}
	m.RowOffsets[edg.Q+1] = int32(boundIdx)
	m.BoundOffsets[boundIdx] = cellCount
	m.N = cellCount

	if cellCount < 0 {
		return xerrors.Alloc("sparse.ShapeLike", fmt.Errorf("cell count overflowed int32 (Q=%d, %d bounds)", edg.Q, len(edg.Bounds)))
	}
	need := int(cellCount) * int(numStates)
	if cap(m.Data) >= need {
		m.Data = m.Data[:need]
	} else {
		data, err := safeAlloc(need)
		if err != nil {
			return xerrors.Alloc("sparse.ShapeLike", err)
		}
		m.Data = data
	}
	neg := logsum.NegInf()
	for i := range m.Data {
		m.Data[i] = neg
	}
	return nil
}

// findBound returns the global bound index on row q whose [lb, rb)
// contains t, or -1 if none does. Linear scan over at most row-max
// bounds, per spec.md section 4.5.
func (m *Matrix) findBound(q, t int32) int {
	begin := int(m.RowOffsets[q])
	end := int(m.RowOffsets[q+1])
	for i := begin; i < end; i++ {
		b := m.Edg.Bounds[i]
		if t >= b.LB && t < b.RB {
			return i
		}
	}
	return -1
}

// Get returns the value of `state` at (q, t). Cells outside every
// bound of row q are implicitly -Inf.
func (m *Matrix) Get(state State, q, t int32) float32 {
	idx := m.findBound(q, t)
	if idx < 0 {
		return logsum.NegInf()
	}
	b := m.Edg.Bounds[idx]
	offset := m.BoundOffsets[idx] + (t - b.LB)
	return m.Data[offset*int32(numStates)+int32(state)]
}

// Set writes val for `state` at (q, t). Returns InvariantViolation if
// (q, t) falls outside every bound of row q: such a cell must not be
// written, per spec.md section 4.5.
func (m *Matrix) Set(state State, q, t int32, val float32) error {
	idx := m.findBound(q, t)
	if idx < 0 {
		return xerrors.Invariant("sparse.Set", "cell (q=%d,t=%d) not in any bound of row %d", q, t, q)
	}
	b := m.Edg.Bounds[idx]
	offset := m.BoundOffsets[idx] + (t - b.LB)
	m.Data[offset*int32(numStates)+int32(state)] = val
	return nil
}

// Reuse clears Data back to -Inf without releasing its backing
// array, mirroring edge.Edgebounds.Reuse.
func (m *Matrix) Reuse() {
	neg := logsum.NegInf()
	for i := range m.Data {
		m.Data[i] = neg
	}
}
