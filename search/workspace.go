// Copyright 2020 Grail Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package search

import (
	"github.com/travisw/cloudhmm/cloud"
	"github.com/travisw/cloudhmm/dpmatrix"
	"github.com/travisw/cloudhmm/edge"
	"github.com/travisw/cloudhmm/sparse"
)

// Workspace bundles every reusable scratch buffer a single CloudSearch
// call touches, so a caller running many searches against the same
// (or similarly-sized) profile/query pairs reuses one allocation per
// buffer instead of one per search (section 5).
type Workspace struct {
	FwdScratch *cloud.Scratch
	BckScratch *cloud.Scratch
	Rows       *edge.Rows
	Mat        *sparse.Matrix
	BMat       *sparse.Matrix
	Special    *dpmatrix.Special
	BSpecial   *dpmatrix.Special
}

// NewWorkspace allocates a Workspace sized for a Q x T grid.
func NewWorkspace(q, t int) *Workspace {
	return &Workspace{
		FwdScratch: cloud.NewScratch(q, t),
		BckScratch: cloud.NewScratch(q, t),
		Rows:       edge.NewRows(q, t, edge.DefaultRowMax, edge.ReorientAbridged, 0),
		Mat:        &sparse.Matrix{},
		BMat:       &sparse.Matrix{},
		Special:    dpmatrix.NewSpecial(q),
		BSpecial:   dpmatrix.NewSpecial(q),
	}
}
