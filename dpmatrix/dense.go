// Copyright 2020 Grail Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package dpmatrix provides the flat-array DP storage shapes used
// throughout the module: Dense2D/Dense3D for small fixed-size grids,
// Linear3 for the cloud sweep's rolling three-diagonal strip, and
// Special for the per-row E/N/J/C/B scores, plus MaxCol/SumLogCol
// column reductions shared by cloud and bounded.
package dpmatrix

import "github.com/travisw/cloudhmm/logsum"

// Dense2D is a row-major R x C matrix of float32.
type Dense2D struct {
	R, C int
	Data []float32
}

// NewDense2D allocates an R x C matrix filled with -Inf.
func NewDense2D(r, c int) *Dense2D {
	m := &Dense2D{R: r, C: c, Data: make([]float32, r*c)}
	m.Fill(logsum.NegInf())
	return m
}

// Resize changes the matrix's shape, reusing Data's backing array
// when it is large enough and reallocating it otherwise. Prior
// contents are not preserved: cell values after a Resize are
// unspecified until Fill or Set writes them.
func (m *Dense2D) Resize(r, c int) {
	m.R, m.C = r, c
	if need := r * c; cap(m.Data) >= need {
		m.Data = m.Data[:need]
	} else {
		m.Data = make([]float32, need)
	}
}

// Fill sets every cell to val.
func (m *Dense2D) Fill(val float32) {
	for i := range m.Data {
		m.Data[i] = val
	}
}

func (m *Dense2D) index(i, j int) int {
	debugCheckBounds2D(m, i, j)
	return i*m.C + j
}

// At returns the value at (i, j).
func (m *Dense2D) At(i, j int) float32 { return m.Data[m.index(i, j)] }

// Set writes val at (i, j).
func (m *Dense2D) Set(i, j int, val float32) { m.Data[m.index(i, j)] = val }

// Clone returns a deep copy of m.
func (m *Dense2D) Clone() *Dense2D {
	out := &Dense2D{R: m.R, C: m.C, Data: make([]float32, len(m.Data))}
	copy(out.Data, m.Data)
	return out
}

// CompareApprox reports whether m and other have the same shape and
// every cell agrees to within the given absolute tolerance.
func (m *Dense2D) CompareApprox(other *Dense2D, tol float32) bool {
	if m.R != other.R || m.C != other.C {
		return false
	}
	for i := range m.Data {
		if diff := m.Data[i] - other.Data[i]; diff > tol || diff < -tol {
			return false
		}
	}
	return true
}

// Dense3D is a row-major R x C x 3 matrix (Match/Insert/Delete per
// cell) for small full-grid computations.
type Dense3D struct {
	R, C int
	Data []float32
}

// NewDense3D allocates an R x C x 3 matrix filled with -Inf.
func NewDense3D(r, c int) *Dense3D {
	m := &Dense3D{R: r, C: c, Data: make([]float32, r*c*3)}
	m.Fill(logsum.NegInf())
	return m
}

// Resize changes the matrix's shape, reusing Data's backing array
// when it is large enough and reallocating it otherwise. Prior
// contents are not preserved: cell values after a Resize are
// unspecified until Fill or Set writes them.
func (m *Dense3D) Resize(r, c int) {
	m.R, m.C = r, c
	if need := r * c * 3; cap(m.Data) >= need {
		m.Data = m.Data[:need]
	} else {
		m.Data = make([]float32, need)
	}
}

// Fill sets every cell of every plane to val.
func (m *Dense3D) Fill(val float32) {
	for i := range m.Data {
		m.Data[i] = val
	}
}

func (m *Dense3D) index(state, i, j int) int {
	debugCheckBounds3D(m, state, i, j)
	return (i*m.C+j)*3 + state
}

// At returns the value of plane `state` (0=M, 1=I, 2=D) at (i, j).
func (m *Dense3D) At(state, i, j int) float32 { return m.Data[m.index(state, i, j)] }

// Set writes val into plane `state` at (i, j).
func (m *Dense3D) Set(state, i, j int, val float32) { m.Data[m.index(state, i, j)] = val }

// Clone returns a deep copy of m.
func (m *Dense3D) Clone() *Dense3D {
	out := &Dense3D{R: m.R, C: m.C, Data: make([]float32, len(m.Data))}
	copy(out.Data, m.Data)
	return out
}

// CompareApprox reports whether m and other have the same shape and
// every cell agrees to within the given absolute tolerance.
func (m *Dense3D) CompareApprox(other *Dense3D, tol float32) bool {
	if m.R != other.R || m.C != other.C {
		return false
	}
	for i := range m.Data {
		if diff := m.Data[i] - other.Data[i]; diff > tol || diff < -tol {
			return false
		}
	}
	return true
}
