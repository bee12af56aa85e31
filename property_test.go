// Copyright ©2024 The quadprog Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quadprog

import (
	"math"
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// randomPD builds a random n×n symmetric positive-definite matrix as
// G = L Lᵀ for a random lower-triangular L with positive diagonal.
func randomPD(n int, rng *rand.Rand) *mat.Dense {
	l := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		l.Set(i, i, 1+math.Abs(rng.NormFloat64()))
		for j := 0; j < i; j++ {
			l.Set(i, j, 0.3*rng.NormFloat64())
		}
	}
	g := mat.NewDense(n, n, nil)
	g.Mul(l, l.T())
	return g
}

// feasibleProblem builds a random feasible QP of size n with p
// equalities and m inequalities, all satisfied at the generated point
// x0, so every generated problem is feasible.
type feasibleProblem struct {
	g, ce, ci        *mat.Dense
	g0, ce0, ci0, x0 []float64
	n, p, m          int
}

func feasibleQP(n, p, m int, rng *rand.Rand) feasibleProblem {
	g := randomPD(n, rng)
	g0 := make([]float64, n)
	x0 := make([]float64, n)
	for i := range g0 {
		g0[i] = rng.NormFloat64()
		x0[i] = rng.NormFloat64()
	}

	var ce *mat.Dense
	ce0 := make([]float64, p)
	if p > 0 {
		ce = mat.NewDense(n, p, nil)
		for j := 0; j < p; j++ {
			col := make([]float64, n)
			for i := range col {
				col[i] = rng.NormFloat64()
				ce.Set(i, j, col[i])
			}
			ce0[j] = -floats.Dot(col, x0)
		}
	}

	var ci *mat.Dense
	ci0 := make([]float64, m)
	if m > 0 {
		ci = mat.NewDense(n, m, nil)
		for j := 0; j < m; j++ {
			col := make([]float64, n)
			for i := range col {
				col[i] = rng.NormFloat64()
				ci.Set(i, j, col[i])
			}
			slack := math.Abs(rng.NormFloat64())
			ci0[j] = slack - floats.Dot(col, x0)
		}
	}

	return feasibleProblem{g: g, ce: ce, ci: ci, g0: g0, ce0: ce0, ci0: ci0, x0: x0, n: n, p: p, m: m}
}

func (p feasibleProblem) solve(t *testing.T) *Result {
	t.Helper()
	g := mat.NewDense(p.n, p.n, nil)
	g.Copy(p.g)
	res, err := SolveWithSettings(g, p.g0, p.ce, p.ce0, p.ci, p.ci0, nil)
	if err != nil {
		t.Fatalf("SolveWithSettings: %v", err)
	}
	if res.Status == StatusInfeasible {
		t.Fatalf("solver reported infeasible for a constructed-feasible problem")
	}
	return res
}

// fullDuals expands a Result's sparse (ActiveSet, Dual) pair into
// full-length equality and inequality dual vectors, zero for inactive
// constraints, for use in a direct KKT residual computation.
func fullDuals(res *Result, p, m int) (ueq, uineq []float64) {
	ueq = make([]float64, p)
	uineq = make([]float64, m)
	for k, idx := range res.ActiveSet {
		if idx < 0 {
			ueq[-idx-1] = res.Dual[k]
		} else {
			uineq[idx] = res.Dual[k]
		}
	}
	return ueq, uineq
}

func TestKKTStationarity(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for trial := 0; trial < 30; trial++ {
		n := 2 + trial%4
		p := trial % 2
		m := 1 + trial%3
		prob := feasibleQP(n, p, m, rng)
		res := prob.solve(t)
		ueq, uineq := fullDuals(res, p, m)

		grad := make([]float64, n)
		for i := 0; i < n; i++ {
			var gx float64
			for j := 0; j < n; j++ {
				gx += prob.g.At(i, j) * res.X[j]
			}
			grad[i] = gx + prob.g0[i]
			for j := 0; j < p; j++ {
				grad[i] -= prob.ce.At(i, j) * ueq[j]
			}
			for j := 0; j < m; j++ {
				grad[i] -= prob.ci.At(i, j) * uineq[j]
			}
		}
		var gnorm, g0norm float64
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				gnorm += prob.g.At(i, j) * prob.g.At(i, j)
			}
			g0norm += prob.g0[i] * prob.g0[i]
		}
		tol := 1e-7 * (math.Sqrt(gnorm) + math.Sqrt(g0norm) + 1)
		for i, v := range grad {
			if math.Abs(v) > tol {
				t.Errorf("trial %d: KKT residual[%d] = %v, want ~0 (tol %v)", trial, i, v, tol)
			}
		}
	}
}

func TestPrimalFeasibility(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	const tol = 1e-6
	for trial := 0; trial < 30; trial++ {
		n := 2 + trial%4
		p := trial % 2
		m := 1 + trial%3
		prob := feasibleQP(n, p, m, rng)
		res := prob.solve(t)

		for j := 0; j < p; j++ {
			var v float64
			for i := 0; i < n; i++ {
				v += prob.ce.At(i, j) * res.X[i]
			}
			v += prob.ce0[j]
			if math.Abs(v) > tol {
				t.Errorf("trial %d: equality %d residual = %v, want ~0", trial, j, v)
			}
		}
		for j := 0; j < m; j++ {
			var v float64
			for i := 0; i < n; i++ {
				v += prob.ci.At(i, j) * res.X[i]
			}
			v += prob.ci0[j]
			if v < -tol {
				t.Errorf("trial %d: inequality %d = %v, want >= -tol", trial, j, v)
			}
		}
	}
}

func TestDualFeasibilityAndComplementarySlackness(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	const tol = 1e-6
	for trial := 0; trial < 30; trial++ {
		n := 2 + trial%4
		p := trial % 2
		m := 1 + trial%3
		prob := feasibleQP(n, p, m, rng)
		res := prob.solve(t)

		for k, idx := range res.ActiveSet {
			if idx < 0 {
				continue // equality multiplier has no sign constraint.
			}
			if res.Dual[k] < -tol {
				t.Errorf("trial %d: dual[%d] = %v, want >= 0", trial, k, res.Dual[k])
			}
			var v float64
			for i := 0; i < n; i++ {
				v += prob.ci.At(i, idx) * res.X[i]
			}
			v += prob.ci0[idx]
			if math.Abs(res.Dual[k]*v) > tol {
				t.Errorf("trial %d: complementary slackness violated for constraint %d: u=%v, slack=%v", trial, idx, res.Dual[k], v)
			}
		}
	}
}

func TestObjectiveConsistency(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 8))
	const tol = 1e-6
	for trial := 0; trial < 30; trial++ {
		n := 2 + trial%4
		p := trial % 2
		m := 1 + trial%3
		prob := feasibleQP(n, p, m, rng)
		res := prob.solve(t)

		var quad float64
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				quad += prob.g.At(i, j) * res.X[i] * res.X[j]
			}
		}
		want := 0.5*quad + floats.Dot(prob.g0, res.X)
		if math.Abs(res.Obj-want) > tol*(1+math.Abs(want)) {
			t.Errorf("trial %d: Obj = %v, recomputed = %v", trial, res.Obj, want)
		}
	}
}
