// Copyright ©2024 The quadprog Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quadprog

import "math"

// choleskyFactor computes the lower Cholesky factor L of the n×n
// symmetric positive-definite matrix stored row-major in g (g[i*n+j]),
// overwriting g's lower triangle with L and mirroring L into the
// upper triangle so that later code can read g[i*n+j] for either
// i<=j or i>=j without branching. It reports ErrNotPositiveDefinite
// if a diagonal accumulator is not strictly positive.
//
// It factors column by column rather than calling out to a packed
// BLAS routine, matching the small dense sizes this solver targets.
func choleskyFactor(g []float64, n int) error {
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sum := g[i*n+j]
			for k := i - 1; k >= 0; k-- {
				sum -= g[i*n+k] * g[j*n+k]
			}
			if i == j {
				if sum <= 0 {
					return ErrNotPositiveDefinite
				}
				g[i*n+i] = math.Sqrt(sum)
			} else {
				g[j*n+i] = sum / g[i*n+i]
			}
		}
		for k := i + 1; k < n; k++ {
			g[i*n+k] = g[k*n+i]
		}
	}
	return nil
}

// forwardElimination solves L y = b for y, where L is the n×n lower
// triangular matrix stored row-major in l (l[i*n+j], read only for
// j<=i).
func forwardElimination(y, l, b []float64, n int) {
	y[0] = b[0] / l[0]
	for i := 1; i < n; i++ {
		sum := b[i]
		for j := 0; j < i; j++ {
			sum -= l[i*n+j] * y[j]
		}
		y[i] = sum / l[i*n+i]
	}
}

// backwardElimination solves Uᵀ x = y for x, where U is the n×n lower
// triangular matrix stored row-major in u but read as its transpose
// (i.e. as the upper factor), sweeping bottom-up.
func backwardElimination(x, u, y []float64, n int) {
	x[n-1] = y[n-1] / u[(n-1)*n+(n-1)]
	for i := n - 2; i >= 0; i-- {
		sum := y[i]
		for j := i + 1; j < n; j++ {
			sum -= u[j*n+i] * x[j]
		}
		x[i] = sum / u[i*n+i]
	}
}
