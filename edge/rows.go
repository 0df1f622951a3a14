// Copyright 2020 Grail Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package edge

// ReorientPolicy selects how aggressively Rows bridges gaps between
// cells landing on the same row while reorienting a ByDiag
// Edgebounds to ByRow.
type ReorientPolicy int

const (
	// ReorientAbridged (the default) always extends the row's most
	// recent bound to cover a new cell, even across a gap.
	ReorientAbridged ReorientPolicy = iota
	// ReorientExact only extends the most recent bound if the new
	// cell is within GapTolerance cells of it; otherwise it starts a
	// new bound.
	ReorientExact
)

// DefaultRowMax is the compile-time-fixed default cap on bounds per
// row (spec.md section 3).
const DefaultRowMax = 10

// Rows is the by-row scratch used while converting ByDiag edgebounds
// to ByRow (package edge's half of C8, and the whole of C5): O(1)
// append to a named row, capped at RowMax bounds per row. Semantics
// mirror a ByRow Edgebounds.
type Rows struct {
	Q, T         int
	RowMax       int
	Policy       ReorientPolicy
	GapTolerance int32

	qLo, qHi int
	counts   []int
	bounds   [][]Bound

	// Overflowed is set once any row exceeds RowMax and had to bridge
	// a new cell into its last bound instead of opening a new one —
	// the "never abort, always bridge, surface a warning" policy from
	// spec.md section 9.
	Overflowed bool
}

// NewRows allocates a Rows scratch covering query rows [0, q] with
// the given row-max and reorientation policy.
func NewRows(q, t, rowMax int, policy ReorientPolicy, gapTolerance int32) *Rows {
	r := &Rows{Q: q, T: t, RowMax: rowMax, Policy: policy, GapTolerance: gapTolerance}
	r.growTo(q + 1)
	return r
}

func (r *Rows) growTo(n int) {
	for len(r.counts) < n {
		r.counts = append(r.counts, 0)
		r.bounds = append(r.bounds, make([]Bound, r.RowMax))
	}
	if n > r.qHi {
		r.qHi = n
	}
}

// Reuse clears all rows without releasing their backing arrays,
// mirroring sparse.Matrix.Reuse and edge.Edgebounds.Reuse.
func (r *Rows) Reuse(q, t int) {
	r.Q, r.T = q, t
	r.growTo(q + 1)
	for i := range r.counts {
		r.counts[i] = 0
	}
	r.Overflowed = false
	r.qLo, r.qHi = 0, q+1
}

func (r *Rows) rowSize(q int) int { return r.counts[q] }

func (r *Rows) lastInRow(q int) (*Bound, bool) {
	n := r.counts[q]
	if n == 0 {
		return nil, false
	}
	return &r.bounds[q][n-1], true
}

// pushback appends b to row q, bridging into the row's last bound
// instead of erroring when RowMax is exceeded.
func (r *Rows) pushback(q int, b Bound) {
	n := r.counts[q]
	if n >= r.RowMax {
		r.Overflowed = true
		last := &r.bounds[q][r.RowMax-1]
		if b.LB < last.LB {
			last.LB = b.LB
		}
		if b.RB > last.RB {
			last.RB = b.RB
		}
		return
	}
	r.bounds[q][n] = b
	r.counts[q] = n + 1
}

// Integrate walks every cell of a ByDiag bound and appends it to the
// row-scratch, applying the abridged/exact bridging policy from
// spec.md section 4.4. b.ID is the anti-diagonal; b.LB/b.RB are the
// query-row offsets the anti-diagonal bound covers.
func (r *Rows) Integrate(b Bound) {
	d := b.ID
	for q := b.LB; q < b.RB; q++ {
		t := d - q
		qi := int(q)
		r.growTo(qi + 1)
		if qi < r.qLo {
			r.qLo = qi
		}
		last, ok := r.lastInRow(qi)
		extend := false
		if ok {
			switch r.Policy {
			case ReorientAbridged:
				extend = true
			case ReorientExact:
				extend = t <= last.RB+r.GapTolerance
			}
		}
		if extend {
			if t+1 > last.RB {
				last.RB = t + 1
			}
		} else {
			r.pushback(qi, Bound{ID: q, LB: t, RB: t + 1})
		}
	}
}

// Flatten produces the final ByRow Edgebounds from the scratch.
func (r *Rows) Flatten() *Edgebounds {
	out := New(ByRow, r.Q, r.T)
	for q := r.qLo; q < r.qHi; q++ {
		n := r.counts[q]
		for i := 0; i < n; i++ {
			out.Push(r.bounds[q][i])
		}
	}
	out.Sort()
	return out
}
