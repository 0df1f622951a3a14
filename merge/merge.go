// Copyright 2020 Grail Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package merge implements section 4.4's stitch step: Union combines
// a Forward cloud and a Backward cloud's ByDiag edgebounds into one,
// and Merge reorients the result to ByRow so package bounded can
// consume it.
package merge

import "github.com/travisw/cloudhmm/edge"

// Options controls how two clouds are combined.
type Options struct {
	// Policy selects Union's merge behavior: Exact only joins
	// touching/overlapping same-ID bounds, Abridged collapses every
	// same-ID bound to one span regardless of gaps.
	Policy edge.UnionPolicy
	// RowMax caps bounds per row during reorientation (see
	// edge.Rows.RowMax). Zero uses edge.DefaultRowMax.
	RowMax int
	// RowPolicy selects how aggressively Rows bridges gaps while
	// reorienting (see edge.ReorientPolicy).
	RowPolicy edge.ReorientPolicy
	// GapTolerance is passed through to edge.Rows when RowPolicy is
	// ReorientExact.
	GapTolerance int32
}

// DefaultOptions returns the default merge policy: an Abridged union
// reoriented with ReorientAbridged bridging.
func DefaultOptions() Options {
	return Options{
		Policy:    edge.Abridged,
		RowMax:    edge.DefaultRowMax,
		RowPolicy: edge.ReorientAbridged,
	}
}

// Merge unions fwd and bck (both ByDiag, sharing the query-row-offset
// convention Forward and Backward in package cloud both use — see
// that package's doc comments) and reorients the union to a ByRow
// Edgebounds, returning the Rows scratch alongside so a Workspace can
// Reuse it on a later search (spec.md section 5).
//
// A Backward implementation that instead produces bounds in the
// target-column convention would call edge.Reflect on bck before
// Union; this package's cloud.Backward deliberately shares Forward's
// convention, so that step is unnecessary here (see DESIGN.md).
func Merge(fwd, bck *edge.Edgebounds, opts Options, rows *edge.Rows) (*edge.Edgebounds, *edge.Rows, error) {
	union, err := fwd.Union(bck, opts.Policy)
	if err != nil {
		return nil, nil, err
	}

	rowMax := opts.RowMax
	if rowMax == 0 {
		rowMax = edge.DefaultRowMax
	}
	if rows == nil {
		rows = edge.NewRows(union.Q, union.T, rowMax, opts.RowPolicy, opts.GapTolerance)
	} else {
		rows.RowMax = rowMax
		rows.Policy = opts.RowPolicy
		rows.GapTolerance = opts.GapTolerance
	}

	byRow, err := edge.Reorient(union, rows)
	if err != nil {
		return nil, nil, err
	}
	return byRow, rows, nil
}
