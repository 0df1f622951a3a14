// Copyright 2020 Grail Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package edge implements Edgebounds (sections 4.3-4.5): the sparse
// region a cloud sweep or merge produces, stored as per-ID [LB, RB)
// spans in either ByDiag or ByRow orientation, plus the Union and
// Rows operations that combine and reorient them.
package edge

import "fmt"

// Bound is a single [LB, RB) span on anti-diagonal or row ID,
// depending on the Mode of the containing Edgebounds.
type Bound struct {
	ID, LB, RB int32
}

// Len returns RB - LB.
func (b Bound) Len() int32 { return b.RB - b.LB }

// Overlaps reports whether b and other share any cell, or touch
// (RB of one equals LB of the other) — touching counts as overlap for
// merge purposes per spec.md 4.3.
func (b Bound) Overlaps(other Bound) bool {
	return b.LB <= other.RB && other.LB <= b.RB
}

// Contains reports whether x lies in [LB, RB).
func (b Bound) Contains(x int32) bool { return x >= b.LB && x < b.RB }

func (b Bound) String() string { return fmt.Sprintf("{id=%d,lb=%d,rb=%d}", b.ID, b.LB, b.RB) }
