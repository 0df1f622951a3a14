// Copyright 2020 Grail Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// +build debug

package dpmatrix

import "fmt"

func debugCheckBounds2D(m *Dense2D, i, j int) {
	if i < 0 || i >= m.R || j < 0 || j >= m.C {
		panic(fmt.Sprintf("dpmatrix: Dense2D index (%d,%d) out of bounds for %dx%d matrix", i, j, m.R, m.C))
	}
}

func debugCheckBounds3D(m *Dense3D, state, i, j int) {
	if state < 0 || state > 2 || i < 0 || i >= m.R || j < 0 || j >= m.C {
		panic(fmt.Sprintf("dpmatrix: Dense3D index (%d,%d,%d) out of bounds for %dx%dx3 matrix", state, i, j, m.R, m.C))
	}
}
