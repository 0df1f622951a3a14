// Copyright 2020 Grail Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package search wires packages cloud, merge, bounded and sparse
// together into the single cloud-pruned homology search entry point:
// a Cloud Forward sweep seeded at an anchor alignment's first match
// cell and a Cloud Backward sweep seeded at its last, merged into a
// ByRow region, then scored exactly by the
// bounded recurrences. Batch runs that entry point over many anchors
// concurrently.
package search

import (
	"github.com/travisw/cloudhmm/cloud"
	"github.com/travisw/cloudhmm/merge"
)

// Options configures a single CloudSearch call.
type Options struct {
	Pruner    cloud.Pruner
	Params    cloud.PruneParams
	MergeOpts merge.Options
}

// DefaultOptions returns the edge-trim pruner with the original
// source's default x-drop parameters (alpha=12, beta=20), and
// merge.DefaultOptions for stitching the two clouds together.
func DefaultOptions() Options {
	return Options{
		Pruner:    cloud.XdropEdgeTrimPruner{},
		Params:    cloud.PruneParams{Alpha: 12, Beta: 20, Gamma: 100000},
		MergeOpts: merge.DefaultOptions(),
	}
}
