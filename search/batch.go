// Copyright 2020 Grail Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package search

import (
	"context"

	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"

	"github.com/travisw/cloudhmm/hmm"
)

// Job is one anchored search to run as part of a Batch: profile and
// seq are assumed fixed across the batch (a single query scanned
// against many candidate Viterbi hits, the common case for a
// homology search pipeline), so only the anchor alignment varies per
// job.
type Job struct {
	Alignment *hmm.Alignment
}

// Result pairs a Job's Outcome with any error CloudSearch returned
// for it, so one failing anchor doesn't abort the rest of the batch.
type Result struct {
	Outcome Outcome
	Err     error
}

// Batch runs CloudSearch for every job in jobs, sharding the work
// across parallelism goroutines, each with its own Workspace so
// scratch buffers are never shared between concurrently-running
// searches. ctx is polled once per job boundary; once canceled, a
// shard stops starting new jobs and returns ctx.Err() for the jobs it
// didn't reach.
func Batch(ctx context.Context, profile *hmm.Profile, seq *hmm.Sequence, jobs []Job, opts Options, parallelism int) ([]Result, error) {
	if parallelism <= 0 {
		parallelism = 1
	}
	if parallelism > len(jobs) {
		parallelism = len(jobs)
	}
	results := make([]Result, len(jobs))
	if len(jobs) == 0 {
		return results, nil
	}

	log.Printf("search.Batch: starting %d jobs across %d workers\n", len(jobs), parallelism)

	q, t := seq.Q(), profile.T
	err := traverse.Each(parallelism, func(shard int) error {
		startIdx := (shard * len(jobs)) / parallelism
		endIdx := ((shard + 1) * len(jobs)) / parallelism
		ws := NewWorkspace(q, t)
		for i := startIdx; i < endIdx; i++ {
			if err := ctx.Err(); err != nil {
				for j := i; j < endIdx; j++ {
					results[j] = Result{Err: err}
				}
				return err
			}
			outcome, err := CloudSearch(profile, seq, jobs[i].Alignment, opts, ws)
			results[i] = Result{Outcome: outcome, Err: err}
		}
		return nil
	})
	if err != nil {
		log.Printf("search.Batch: stopped early: %v\n", err)
	}
	return results, err
}
