// Copyright 2020 Grail Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package edge

import "github.com/travisw/cloudhmm/internal/xerrors"

// Reorient converts a ByDiag Edgebounds into a ByRow Edgebounds,
// sweeping anti-diagonals low to high and integrating each diagonal's
// bounds into rows, as spec.md section 4.4 describes. The Rows
// scratch is supplied by the caller (package merge), which can Reuse
// it on a later search instead of reallocating.
func Reorient(in *Edgebounds, rows *Rows) (*Edgebounds, error) {
	if in.Mode != ByDiag {
		return nil, xerrors.Invariant("edge.Reorient", "Reorient requires ByDiag input, got %v", in.Mode)
	}
	if !in.IsSorted() {
		return nil, xerrors.Invariant("edge.Reorient", "input edgebounds not sorted")
	}
	rows.Reuse(in.Q, in.T)
	for _, b := range in.Bounds {
		rows.Integrate(b)
	}
	return rows.Flatten(), nil
}
