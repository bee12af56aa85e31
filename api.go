// Copyright ©2024 The quadprog Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quadprog

import "gonum.org/v1/gonum/mat"

// Solve solves the convex quadratic program
//
//	minimize    (1/2) xᵀ G x + g₀ᵀ x
//	subject to  CEᵀ x + ce₀ = 0
//	            CIᵀ x + ci₀ ≥ 0
//
// using the dual active-set method of Goldfarb and Idnani. G must be
// n×n, symmetric, and positive-definite; it is mutated in place,
// overwritten with its Cholesky factor. CE is n×p (p may be zero) and
// CI is n×m (m may be zero); ce0 and ci0 have length p and m. x must
// have length n; its contents on entry are ignored, and on return it
// holds the optimum, or the last stable iterate if the problem is
// infeasible.
//
// Solve returns the optimal objective value, or +Inf if the problem
// is infeasible. It returns ErrNotPositiveDefinite if G fails its
// Cholesky factorization, and ErrEqualityConstraintsDependent if CE's
// columns are linearly dependent.
//
// Callers posing constraints as A x ≤ b must supply CI = -Aᵀ and
// ci0 = b (and analogously for equalities); this orientation is part
// of Solve's contract, not something Solve adjusts for.
func Solve(g *mat.Dense, g0 []float64, ce *mat.Dense, ce0 []float64, ci *mat.Dense, ci0 []float64, x []float64) (float64, error) {
	res, err := SolveWithSettings(g, g0, ce, ce0, ci, ci0, nil)
	if err != nil {
		return 0, err
	}
	copy(x, res.X)
	return res.Obj, nil
}

// SolveWithSettings is the enriched form of Solve: it accepts Settings
// controlling tolerances, an iteration limit, and a progress Recorder,
// and it returns a Result carrying the active set, dual multipliers,
// and iteration count alongside the objective and point. A nil
// settings argument behaves like DefaultSettings.
//
// G, CE, and CI follow the same contract as Solve: G is mutated in
// place to its Cholesky factor, and the orientation of CE/CI is the
// caller's responsibility.
func SolveWithSettings(g *mat.Dense, g0 []float64, ce *mat.Dense, ce0 []float64, ci *mat.Dense, ci0 []float64, settings *Settings) (*Result, error) {
	n, gc := g.Dims()
	if n != gc {
		panic("quadprog: G is not square")
	}
	if len(g0) != n {
		panic("quadprog: g0 has incorrect length")
	}
	p, ce0Len := ceDims(ce, n)
	if len(ce0) != ce0Len {
		panic("quadprog: ce0 has incorrect length")
	}
	m, ci0Len := ceDims(ci, n)
	if len(ci0) != ci0Len {
		panic("quadprog: ci0 has incorrect length")
	}
	if settings == nil {
		settings = DefaultSettings()
	}

	gFlat := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			gFlat[i*n+j] = g.At(i, j)
		}
	}
	ceFlat := denseToColumnMajorFlat(ce, n, p)
	ciFlat := denseToColumnMajorFlat(ci, n, m)

	x := make([]float64, n)
	c := newCore(n, p, m, gFlat, g0, ceFlat, ce0, ciFlat, ci0, x, settings)
	fValue, status, err := c.run()

	// Mirror the contract: G always holds the attempted Cholesky
	// factor, even on failure.
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			g.Set(i, j, gFlat[i*n+j])
		}
	}

	if err != nil {
		return nil, err
	}

	res := &Result{
		X:          x,
		Obj:        fValue,
		Status:     status,
		Iterations: iterationsFromCore(c),
	}
	res.ActiveSet, res.Dual = activeSetAndDuals(c)
	return res, nil
}

// ceDims returns the column count and expected offset-vector length of
// an n-row constraint matrix, treating a nil matrix as zero columns.
func ceDims(m *mat.Dense, n int) (cols, vecLen int) {
	if m == nil {
		return 0, 0
	}
	r, c := m.Dims()
	if r != n {
		panic("quadprog: constraint matrix row count does not match G")
	}
	return c, c
}

// denseToColumnMajorFlat stores an n×cols matrix so that column i
// occupies the strided positions i, i+cols, i+2*cols, ... matching the
// [row*cols+col] indexing used throughout the solver core.
func denseToColumnMajorFlat(m *mat.Dense, n, cols int) []float64 {
	flat := make([]float64, n*cols)
	if m == nil || cols == 0 {
		return flat
	}
	for i := 0; i < n; i++ {
		for j := 0; j < cols; j++ {
			flat[i*cols+j] = m.At(i, j)
		}
	}
	return flat
}
