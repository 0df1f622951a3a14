// Copyright 2020 Grail Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package edge

import (
	"sort"

	"github.com/travisw/cloudhmm/internal/xerrors"
)

// Mode selects the coordinate interpretation of an Edgebounds' bounds:
// anti-diagonal-indexed (as produced by package cloud) or
// row-indexed (as consumed by package bounded).
type Mode int

const (
	// ByDiag: ID = q+t (an anti-diagonal); LB, RB are query-row indices
	// along that anti-diagonal.
	ByDiag Mode = iota
	// ByRow: ID = q (a query row); LB, RB are target-column indices.
	ByRow
)

// UnionPolicy selects how Union folds overlapping bounds together.
type UnionPolicy int

const (
	// Exact merges only bounds that actually overlap or touch.
	Exact UnionPolicy = iota
	// Abridged collapses every bound sharing an ID to one
	// [min(LB), max(RB)) span, even if there are gaps between them.
	Abridged
)

// Edgebounds is the ordered span list of spec.md section 3: sorted
// ascending by ID then LB, at most RowMax bounds per ID, created empty
// and mutated only by the component that owns it for the duration of
// one search.
type Edgebounds struct {
	Mode   Mode
	Q, T   int
	Bounds []Bound
}

// New creates an empty Edgebounds for a Q x T grid in the given mode.
func New(mode Mode, q, t int) *Edgebounds {
	return &Edgebounds{Mode: mode, Q: q, T: t}
}

// Push appends b to the end of Bounds. Callers that build bounds out
// of ID order must call Sort before relying on RowRange or any
// invariant that assumes sortedness.
func (e *Edgebounds) Push(b Bound) { e.Bounds = append(e.Bounds, b) }

// At returns the bound at index i.
func (e *Edgebounds) At(i int) Bound { return e.Bounds[i] }

// Len returns the number of bounds.
func (e *Edgebounds) Len() int { return len(e.Bounds) }

// Clear empties Bounds without releasing its backing array, so a
// caller reusing this Edgebounds across successive searches (spec.md
// section 5) avoids reallocating.
func (e *Edgebounds) Clear() { e.Bounds = e.Bounds[:0] }

// Reuse is an alias for Clear that also resets Q, T, matching the
// MATRIX_3D_SPARSE_Reuse convention this module's scratch types share
// (see sparse.Matrix.Reuse).
func (e *Edgebounds) Reuse(q, t int) {
	e.Clear()
	e.Q, e.T = q, t
}

// Sort orders Bounds ascending by ID, then by LB — the invariant
// spec.md section 8 property 1 requires of every Edgebounds this
// module produces.
func (e *Edgebounds) Sort() {
	sort.Slice(e.Bounds, func(i, j int) bool {
		a, b := e.Bounds[i], e.Bounds[j]
		if a.ID != b.ID {
			return a.ID < b.ID
		}
		return a.LB < b.LB
	})
}

// IsSorted reports whether Bounds already satisfies the section 8
// property 1 ordering. Used by Union/Reorient to fail fast
// with InvariantViolation instead of silently operating on
// unsorted input.
func (e *Edgebounds) IsSorted() bool {
	for i := 1; i < len(e.Bounds); i++ {
		a, b := e.Bounds[i-1], e.Bounds[i]
		if a.ID > b.ID || (a.ID == b.ID && a.LB > b.LB) {
			return false
		}
	}
	return true
}

// RowRange returns the half-open index range [begin, end) into Bounds
// covering every bound with the given ID, via binary search. Bounds
// must be sorted.
func (e *Edgebounds) RowRange(id int32) (begin, end int) {
	begin = sort.Search(len(e.Bounds), func(i int) bool { return e.Bounds[i].ID >= id })
	end = sort.Search(len(e.Bounds), func(i int) bool { return e.Bounds[i].ID > id })
	return begin, end
}

// Covers reports whether (id, x) is covered by some bound in e. Used
// by tests checking coverage properties (spec.md section 8 property 2).
func (e *Edgebounds) Covers(id, x int32) bool {
	begin, end := e.RowRange(id)
	for i := begin; i < end; i++ {
		if e.Bounds[i].Contains(x) {
			return true
		}
	}
	return false
}

// Union returns a new Edgebounds containing, per ID, the merged spans
// of e and other: accumulate all bounds sharing an ID, sort by LB,
// and merge any two whose ranges overlap or touch (policy Exact), or
// collapse them all into a single [min LB, max RB) span (policy
// Abridged). Both inputs must share Mode.
func (e *Edgebounds) Union(other *Edgebounds, policy UnionPolicy) (*Edgebounds, error) {
	if e.Mode != other.Mode {
		return nil, xerrors.Invariant("edge.Union", "mode mismatch: %v vs %v", e.Mode, other.Mode)
	}
	if !e.IsSorted() || !other.IsSorted() {
		return nil, xerrors.Invariant("edge.Union", "input edgebounds not sorted")
	}
	out := New(e.Mode, maxInt(e.Q, other.Q), maxInt(e.T, other.T))
	merged := make([]Bound, 0, len(e.Bounds)+len(other.Bounds))
	merged = append(merged, e.Bounds...)
	merged = append(merged, other.Bounds...)
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].ID != merged[j].ID {
			return merged[i].ID < merged[j].ID
		}
		return merged[i].LB < merged[j].LB
	})

	i := 0
	for i < len(merged) {
		j := i + 1
		for j < len(merged) && merged[j].ID == merged[i].ID {
			j++
		}
		group := merged[i:j]
		if policy == Abridged {
			lb, rb := group[0].LB, group[0].RB
			for _, b := range group[1:] {
				if b.RB > rb {
					rb = b.RB
				}
				if b.LB < lb {
					lb = b.LB
				}
			}
			out.Push(Bound{ID: group[0].ID, LB: lb, RB: rb})
		} else {
			cur := group[0]
			for _, b := range group[1:] {
				if b.LB <= cur.RB { // touching counts as overlap
					if b.RB > cur.RB {
						cur.RB = b.RB
					}
				} else {
					out.Push(cur)
					cur = b
				}
			}
			out.Push(cur)
		}
		i = j
	}
	return out, nil
}

// AbridgedUnion is Union with UnionPolicy Abridged; it is a distinct
// method (rather than callers passing the policy) because spec.md
// section 8 property 5 (abridged dominance) pins it as a named,
// independently-tested operation.
func (e *Edgebounds) AbridgedUnion(other *Edgebounds) (*Edgebounds, error) {
	return e.Union(other, Abridged)
}

// Reflect converts between the "offset = query-row" and
// "offset = target-column" conventions along an anti-diagonal: for
// each bound, new_lb = id - rb, new_rb = id - lb. Only valid on
// ByDiag edgebounds; Reflect is its own inverse (spec.md section 8
// property 3) — this is the formula pinned by spec.md's own worked
// example (S5: {id=4,lb=0,rb=3} reflects to {id=4,lb=1,rb=4}), which
// also happens to be the only one of the formula's near-variants that
// satisfies the idempotence property the test suite requires.
func (e *Edgebounds) Reflect() (*Edgebounds, error) {
	if e.Mode != ByDiag {
		return nil, xerrors.Invariant("edge.Reflect", "Reflect requires ByDiag mode, got %v", e.Mode)
	}
	out := New(ByDiag, e.Q, e.T)
	out.Bounds = make([]Bound, len(e.Bounds))
	for i, b := range e.Bounds {
		out.Bounds[i] = Bound{ID: b.ID, LB: b.ID - b.RB, RB: b.ID - b.LB}
	}
	out.Sort()
	return out, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
