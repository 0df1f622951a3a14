// Copyright 2020 Grail Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package hmm

// TraceState is the DP state of a single cell in a Viterbi alignment.
type TraceState int

const (
	TraceMatch TraceState = iota
	TraceInsert
	TraceDelete
	TraceBegin
	TraceEnd
)

// TraceCell is one (state, query-row, target-column) triple from a
// Viterbi traceback.
type TraceCell struct {
	State TraceState
	I     int // query row
	J     int // target column
}

// Alignment is the short ordered list of trace cells produced by an
// upstream Viterbi search. Cloud search only reads its first and last
// match-state cells: they anchor, respectively, the Cloud-Forward and
// Cloud-Backward sweeps.
type Alignment struct {
	Cells []TraceCell
}

// FirstMatch returns the first match-state cell in the alignment and
// true, or the zero TraceCell and false if the alignment contains no
// match-state cell.
func (a *Alignment) FirstMatch() (TraceCell, bool) {
	for _, c := range a.Cells {
		if c.State == TraceMatch {
			return c, true
		}
	}
	return TraceCell{}, false
}

// LastMatch returns the last match-state cell in the alignment and
// true, or the zero TraceCell and false if the alignment contains no
// match-state cell.
func (a *Alignment) LastMatch() (TraceCell, bool) {
	for i := len(a.Cells) - 1; i >= 0; i-- {
		if a.Cells[i].State == TraceMatch {
			return a.Cells[i], true
		}
	}
	return TraceCell{}, false
}
