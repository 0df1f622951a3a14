// Copyright 2020 Grail Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package dpmatrix

import "github.com/travisw/cloudhmm/logsum"

// specialStates is the number of special states (E, N, J, C, B).
const specialStates = 5

// Special is the dense 5 x (Q+1) strip holding the per-row special
// state scores E, N, J, C, B. Unlike the match/insert/delete planes,
// these are always fully dense: one scalar per row, never pruned.
type Special struct {
	Q    int
	Data []float32 // row-major: state*(Q+1) + q
}

// Special state row indices, matching hmm.SpecialState ordering.
const (
	SpecialE = iota
	SpecialN
	SpecialJ
	SpecialC
	SpecialB
)

// NewSpecial allocates a 5 x (Q+1) strip filled with -Inf.
func NewSpecial(q int) *Special {
	s := &Special{Q: q, Data: make([]float32, specialStates*(q+1))}
	s.Fill(logsum.NegInf())
	return s
}

// Fill sets every cell to val.
func (s *Special) Fill(val float32) {
	for i := range s.Data {
		s.Data[i] = val
	}
}

func (s *Special) index(state, q int) int { return state*(s.Q+1) + q }

// Get returns the score for special state `state` at query row q.
func (s *Special) Get(state, q int) float32 { return s.Data[s.index(state, q)] }

// Set writes the score for special state `state` at query row q.
func (s *Special) Set(state, q int, v float32) { s.Data[s.index(state, q)] = v }
