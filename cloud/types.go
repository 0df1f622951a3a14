// Copyright 2020 Grail Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package cloud implements the cloud Forward/Backward sweep (section
// 4.6): an anti-diagonal traversal, seeded at a single anchor cell,
// that expands outward while an x-drop-style Pruner trims the active
// range each step, producing a ByDiag edge.Edgebounds describing the
// surviving cloud.
package cloud

import (
	"github.com/travisw/cloudhmm/dpmatrix"
	"github.com/travisw/cloudhmm/hmm"
	"github.com/travisw/cloudhmm/internal/xerrors"
)

// Anchor seeds a cloud sweep at a single match cell, typically one
// endpoint of a prior Viterbi alignment.
type Anchor struct {
	I int32 // query row, 1 <= I <= Q
	J int32 // profile column, 1 <= J <= T
}

// AnchorsFromAlignment reads the start and end anchors off a Viterbi
// alignment: the start anchor (for Forward) is its first match-state
// cell, the end anchor (for Backward) is its last. A single-match
// alignment yields the same cell for both.
func AnchorsFromAlignment(aln *hmm.Alignment) (start, end Anchor, err error) {
	first, ok := aln.FirstMatch()
	if !ok {
		return Anchor{}, Anchor{}, xerrors.Invalid("cloud.AnchorsFromAlignment", "alignment has no match-state cell")
	}
	last, _ := aln.LastMatch()
	return Anchor{I: int32(first.I), J: int32(first.J)}, Anchor{I: int32(last.I), J: int32(last.J)}, nil
}

// PruneParams bounds how far a sweep expands away from its anchor.
type PruneParams struct {
	// Alpha is the x-drop threshold: a diagonal's active range is
	// trimmed to cells within Alpha log-odds units of the Pruner's
	// reference score (for the default XdropEdgeTrimPruner, the
	// current diagonal's own best).
	Alpha float32
	// Beta is the number of free-pass diagonals, counted outward from
	// the anchor, that the sweep runs before pruning begins: diagonals
	// within Beta of d0 are never trimmed. Zero starts pruning on the
	// first diagonal past the anchor.
	Beta int32
	// Gamma hard-caps the total number of diagonals a single sweep
	// processes. Zero disables the check.
	Gamma int32
}

// Scratch bundles the reusable rolling-strip storage a cloud sweep
// writes into, so a Workspace can hand the same buffer to successive
// searches against different anchors instead of reallocating (see
// section 5's scratch-reuse requirement).
type Scratch struct {
	Lin *dpmatrix.Linear3
}

// NewScratch allocates a Scratch sized for a Q x T grid.
func NewScratch(q, t int) *Scratch {
	return &Scratch{Lin: dpmatrix.NewLinear3(q, t)}
}

// Reuse resizes s for a new Q x T grid if needed; Forward/Backward
// clear only the diagonals they actually touch, so no blanket refill
// is necessary here.
func (s *Scratch) Reuse(q, t int) {
	if s.Lin == nil || s.Lin.Qlen != q+1 {
		s.Lin = dpmatrix.NewLinear3(q, t)
	}
}
