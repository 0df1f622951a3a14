// Copyright 2020 Grail Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package search

import (
	"github.com/travisw/cloudhmm/bounded"
	"github.com/travisw/cloudhmm/cloud"
	"github.com/travisw/cloudhmm/dpmatrix"
	"github.com/travisw/cloudhmm/edge"
	"github.com/travisw/cloudhmm/hmm"
	"github.com/travisw/cloudhmm/internal/xerrors"
	"github.com/travisw/cloudhmm/merge"
	"github.com/travisw/cloudhmm/sparse"
)

// Outcome is the full result of one CloudSearch call.
type Outcome struct {
	FwdScore float32
	BckScore float32
	EdgRow   *edge.Edgebounds
	Sparse   *sparse.Matrix
	Specials *dpmatrix.Special
	// Warnings carries non-fatal conditions observed during the
	// search (currently only xerrors.PruneOverflow, when reorientation
	// had to bridge a gap because a row exceeded its bound cap).
	Warnings []xerrors.Kind
}

// CloudSearch runs a complete cloud-pruned homology search from a
// Viterbi anchor alignment: a Cloud Forward sweep seeded at the
// alignment's first match-state cell and a Cloud Backward sweep
// seeded at its last (package cloud), merged into one ByRow region
// (package merge), then scored exactly by the bounded Forward and
// Backward recurrences (package bounded). Outcome.FwdScore and
// Outcome.BckScore come from the bounded recurrences, not the cloud
// sweeps, and should agree within tolerance; Outcome also carries the
// sparse matrix and special-state strip a caller can hand to
// downstream posterior/domain-decoding logic (out of scope here).
func CloudSearch(profile *hmm.Profile, seq *hmm.Sequence, aln *hmm.Alignment, opts Options, ws *Workspace) (Outcome, error) {
	if ws == nil {
		ws = NewWorkspace(seq.Q(), profile.T)
	}

	start, end, err := cloud.AnchorsFromAlignment(aln)
	if err != nil {
		return Outcome{}, err
	}

	// The cloud sweeps' own scores only drive pruning (see
	// cloud.Forward's doc comment); the calibrated scores come from the
	// row-major bounded recurrences below, over the merged region.
	_, fwdEdg, err := cloud.Forward(profile, seq, start, opts.Params, opts.Pruner, ws.FwdScratch)
	if err != nil {
		return Outcome{}, err
	}
	_, bckEdg, err := cloud.Backward(profile, seq, end, opts.Params, opts.Pruner, ws.BckScratch)
	if err != nil {
		return Outcome{}, err
	}

	byRow, rows, err := merge.Merge(fwdEdg, bckEdg, opts.MergeOpts, ws.Rows)
	if err != nil {
		return Outcome{}, err
	}
	ws.Rows = rows

	var warnings []xerrors.Kind
	if rows.Overflowed {
		warnings = append(warnings, xerrors.PruneOverflow)
	}

	fwdScore, err := bounded.Forward(profile, seq, byRow, ws.Mat, ws.Special)
	if err != nil {
		return Outcome{}, err
	}
	bckScore, err := bounded.Backward(profile, seq, byRow, ws.BMat, ws.BSpecial)
	if err != nil {
		return Outcome{}, err
	}

	return Outcome{
		FwdScore: fwdScore,
		BckScore: bckScore,
		EdgRow:   byRow,
		Sparse:   ws.Mat,
		Specials: ws.Special,
		Warnings: warnings,
	}, nil
}
