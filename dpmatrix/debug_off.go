// Copyright 2020 Grail Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// +build !debug

package dpmatrix

func debugCheckBounds2D(m *Dense2D, i, j int) {}

func debugCheckBounds3D(m *Dense3D, state, i, j int) {}
