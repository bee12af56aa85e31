// Copyright ©2024 The quadprog Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quadprog

import "math"

// computeD sets d = Jᵀ np, where J is the n×n matrix stored row-major
// in j (j[r*n+c]) and np has length n.
func computeD(d, j, np []float64, n int) {
	for i := 0; i < n; i++ {
		var sum float64
		for r := 0; r < n; r++ {
			sum += j[r*n+i] * np[r]
		}
		d[i] = sum
	}
}

// updateZ sets z = J d, summing only the columns [iq, n) of J that
// span the null space of the active constraint normals.
func updateZ(z, j, d []float64, iq, n int) {
	for i := 0; i < n; i++ {
		var sum float64
		for c := iq; c < n; c++ {
			sum += j[i*n+c] * d[c]
		}
		z[i] = sum
	}
}

// updateR sets r[0:iq] = R⁻¹ d by back-substitution against the
// iq×iq upper-triangular block of R, stored row-major in rMat (rMat[i*n+j]).
func updateR(rMat, r, d []float64, iq, n int) {
	for i := iq - 1; i >= 0; i-- {
		var sum float64
		for j := i + 1; j < iq; j++ {
			sum += rMat[i*n+j] * r[j]
		}
		r[i] = (d[i] - sum) / rMat[i*n+i]
	}
}

// scalarProduct computes Σ xᵢ yᵢ as a plain sum; the algorithm does
// not require Kahan compensation here.
func scalarProduct(x, y []float64) float64 {
	var sum float64
	for i := range x {
		sum += x[i] * y[i]
	}
	return sum
}

// distance computes hypot(a, b) avoiding spurious over/underflow, used
// to size Givens rotations.
func distance(a, b float64) float64 {
	a1, b1 := math.Abs(a), math.Abs(b)
	switch {
	case a1 > b1:
		t := b1 / a1
		return a1 * math.Sqrt(1+t*t)
	case b1 > a1:
		t := a1 / b1
		return b1 * math.Sqrt(1+t*t)
	default:
		return a1 * math.Sqrt2
	}
}
