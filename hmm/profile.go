// Copyright 2020 Grail Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package hmm holds the profile HMM's static data: Profile's
// per-position transition and emission scores, Sequence's digitised
// residues, and the Alignment/TraceCell pair a prior Viterbi pass
// hands to package cloud as anchors.
package hmm

import "github.com/travisw/cloudhmm/logsum"

// AlphaSize is the number of digitised symbols a Profile scores:
// the 20 standard amino acids plus gap/ambiguous symbols.
const AlphaSize = 26

// TransIndex selects one of the 8 per-position transition scores.
type TransIndex int

const (
	MM TransIndex = iota
	MI
	MD
	IM
	II
	DM
	DD
	BM
	numTrans
)

// SpecialState selects one of the 5 special states with per-row
// loop/move scores.
type SpecialState int

const (
	E SpecialState = iota
	N
	J
	C
	B
	numSpecial
)

// SpecialTransition selects LOOP or MOVE within a SpecialState.
type SpecialTransition int

const (
	Loop SpecialTransition = iota
	Move
)

// Profile is a read-only position-specific scoring model over a
// target of length T. Row 0 is the model's entry row (B); rows
// 1..T are match positions.
type Profile struct {
	T int

	// Match[t][a], Insert[t][a] are log-odds emission scores for
	// target position t (0 <= t <= T) and digitised symbol a.
	Match  [][]float32
	Insert [][]float32

	// Trans[t][k] is the log-probability transition score leaving
	// position t via transition k (see TransIndex).
	Trans [][numTrans]float32

	// Special[s][k] is the special-state loop/move score (see
	// SpecialState, SpecialTransition).
	Special [numSpecial][2]float32

	// IsLocal controls which cells may enter the E state in package
	// bounded's recurrences: every profile column when true, only
	// column T when false (glocal mode).
	IsLocal bool
}

// NewProfile allocates a Profile of length T with all emission and
// transition scores initialized to -Inf (i.e. "impossible" until the
// caller fills them in).
func NewProfile(t int) *Profile {
	p := &Profile{
		T:       t,
		Match:   make([][]float32, t+1),
		Insert:  make([][]float32, t+1),
		Trans:   make([][numTrans]float32, t+1),
		IsLocal: true,
	}
	neg := logsum.NegInf()
	for i := 0; i <= t; i++ {
		p.Match[i] = make([]float32, AlphaSize)
		p.Insert[i] = make([]float32, AlphaSize)
		for a := 0; a < AlphaSize; a++ {
			p.Match[i][a] = neg
			p.Insert[i][a] = neg
		}
		for k := range p.Trans[i] {
			p.Trans[i][k] = neg
		}
	}
	for s := range p.Special {
		p.Special[s][Loop] = neg
		p.Special[s][Move] = neg
	}
	return p
}

// MatchEmission returns the match-state emission score at position t
// for digitised symbol a.
func (p *Profile) MatchEmission(t int, a uint8) float32 { return p.Match[t][a] }

// InsertEmission returns the insert-state emission score at position
// t for digitised symbol a.
func (p *Profile) InsertEmission(t int, a uint8) float32 { return p.Insert[t][a] }

// Transition returns the transition score leaving position t via k.
func (p *Profile) Transition(t int, k TransIndex) float32 { return p.Trans[t][k] }

// SpecialScore returns the special-state score for state s,
// transition k.
func (p *Profile) SpecialScore(s SpecialState, k SpecialTransition) float32 {
	return p.Special[s][k]
}

// Sequence is a digitised amino-acid query of length Q.
type Sequence struct {
	Digits []uint8
}

// Q returns the sequence length.
func (s *Sequence) Q() int { return len(s.Digits) }

// At returns the digitised symbol at 1-based query position q (the
// DP convention used throughout this module: row 0 is the B-state
// entry row, rows 1..Q hold the actual residues).
func (s *Sequence) At(q int) uint8 { return s.Digits[q-1] }
