// Copyright ©2024 The quadprog Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quadprog

import "math"

// outerState names the three stages of the active-set outer loop:
// recompute the constraint values and test for termination, select the
// most-violated inequality, and take the resulting primal/dual step. Traditional
// presentations of this algorithm express it as a state machine over
// three goto labels; here it is an explicit enum driven by a for loop
// instead, so the control flow reads the same way Go readers expect.
type outerState int

const (
	// stateChooseStep recomputes the infeasibility vector s, tests
	// for overall termination, and snapshots (u, A, x) before
	// selecting a violated constraint.
	stateChooseStep outerState = iota
	// stateSelectViolated picks the most violated inequality.
	stateSelectViolated
	// stateTakeStep computes the primal/dual step for the current
	// candidate and either accepts it, drops a blocking constraint,
	// or detects infeasibility.
	stateTakeStep
)

// core holds the scratch state of one Solve invocation. All slices are
// allocated once by newCore and owned exclusively by the call; nothing
// here is safe to share across concurrent solves.
type core struct {
	n, p, m int

	g  []float64 // n*n, Cholesky factor of G in place
	g0 []float64 // n

	ce  []float64 // n*p, column i is the i-th equality normal
	ce0 []float64 // p
	ci  []float64 // n*m, column i is the i-th inequality normal
	ci0 []float64 // m

	x []float64 // n, current iterate

	r []float64 // n*n, upper-triangular working-set factor
	j []float64 // n*n, L⁻ᵀQ

	a      []int     // p+m, active-set indices
	u      []float64 // p+m, Lagrange multipliers
	aOld   []int
	uOld   []float64
	xOld   []float64
	iai    []int
	iaexcl []bool

	s      []float64 // m, constraint values CIᵀx+ci0
	rv     []float64 // p+m, R⁻¹d
	z      []float64 // n
	d      []float64 // n
	np     []float64 // n

	iq      int
	rNorm   float64
	fValue  float64
	c1, c2  float64
	iters   int

	degTol  float64
	termTol float64
	maxIter int
	rec     Recorder
}

func newCore(n, p, m int, g, g0, ce, ce0, ci, ci0, x []float64, s *Settings) *core {
	return &core{
		n: n, p: p, m: m,
		g: g, g0: g0, ce: ce, ce0: ce0, ci: ci, ci0: ci0, x: x,
		r:       make([]float64, n*n),
		j:       make([]float64, n*n),
		a:       make([]int, p+m),
		u:       make([]float64, p+m),
		aOld:    make([]int, p+m),
		uOld:    make([]float64, p+m),
		xOld:    make([]float64, n),
		iai:     make([]int, m),
		iaexcl:  make([]bool, m),
		s:       make([]float64, m),
		rv:      make([]float64, p+m),
		z:       make([]float64, n),
		d:       make([]float64, n),
		np:      make([]float64, n),
		degTol:  s.degeneracyTolerance(),
		termTol: s.terminationTolerance(),
		maxIter: s.maxIterations(),
		rec:     s.recorder(),
	}
}

func (c *core) ceCol(i int) {
	for r := 0; r < c.n; r++ {
		c.np[r] = c.ce[r*c.p+i]
	}
}

func (c *core) ciCol(i int) {
	for r := 0; r < c.n; r++ {
		c.np[r] = c.ci[r*c.m+i]
	}
}

// run executes the full solve: stage 0 initialization, stage 1
// force-adding equality constraints, then the stage-2/3/4 outer loop.
// It returns the optimal objective (or +Inf on infeasibility) and the
// terminal status, and records the iteration count on c.
func (c *core) run() (float64, Status, error) {
	n, p, m := c.n, c.p, c.m

	// Stage 0: initialization.
	for i := 0; i < n; i++ {
		c.c1 += c.g[i*n+i]
	}
	if err := choleskyFactor(c.g, n); err != nil {
		return 0, 0, err
	}
	c.rNorm = 1

	unit := make([]float64, n)
	tmp := make([]float64, n)
	for i := 0; i < n; i++ {
		unit[i] = 1
		forwardElimination(tmp, c.g, unit, n)
		for j := 0; j < n; j++ {
			c.j[i*n+j] = tmp[j]
		}
		c.c2 += tmp[i]
		unit[i] = 0
	}

	negG0 := make([]float64, n)
	for i := range c.g0 {
		negG0[i] = -c.g0[i]
	}
	forwardElimination(tmp, c.g, negG0, n)
	backwardElimination(c.x, c.g, tmp, n)
	c.fValue = 0.5 * scalarProduct(c.g0, c.x)

	// Stage 1: force-add equality constraints.
	c.iq = 0
	for i := 0; i < p; i++ {
		c.ceCol(i)
		computeD(c.d, c.j, c.np, n)
		updateZ(c.z, c.j, c.d, c.iq, n)
		updateR(c.r, c.rv, c.d, c.iq, n)

		var t2 float64
		if math.Abs(scalarProduct(c.z, c.z)) > machineEpsilon {
			t2 = (-scalarProduct(c.np, c.x) - c.ce0[i]) / scalarProduct(c.z, c.np)
		}
		for k := 0; k < n; k++ {
			c.x[k] += t2 * c.z[k]
		}
		c.u[c.iq] = t2
		for k := 0; k < c.iq; k++ {
			c.u[k] -= t2 * c.rv[k]
		}
		c.fValue += 0.5 * t2 * t2 * scalarProduct(c.z, c.np)
		c.a[i] = -i - 1

		if !addConstraint(c.r, c.j, c.d, &c.iq, &c.rNorm, n, c.degTol) {
			return 0, 0, ErrEqualityConstraintsDependent
		}
	}

	// Stage 2-4: the active-set outer loop.
	for i := 0; i < m; i++ {
		c.iai[i] = i
	}

	state := stateChooseStep
	iter := 0
	ip, ss := 0, 0.0
	for {
		switch state {
		case stateChooseStep:
			iter++
			if c.maxIter > 0 && iter > c.maxIter {
				return c.fValue, StatusIterationLimit, nil
			}
			c.iters = iter
			if rec := c.rec; rec != nil {
				if err := rec.Record(iter, c.fValue, c.iq, c.x); err != nil {
					return c.fValue, StatusOptimal, err
				}
			}

			for i := p; i < c.iq; i++ {
				c.iai[c.a[i]] = -1
			}

			var psi float64
			for i := 0; i < m; i++ {
				c.iaexcl[i] = true
				c.ciCol(i)
				sum := scalarProduct(c.np, c.x) + c.ci0[i]
				c.s[i] = sum
				psi += math.Min(0, sum)
			}

			if math.Abs(psi) <= c.termTol*float64(m)*machineEpsilon*c.c1*c.c2 {
				return c.fValue, StatusOptimal, nil
			}

			copy(c.uOld, c.u[:c.iq])
			copy(c.aOld, c.a[:c.iq])
			copy(c.xOld, c.x)

			state = stateSelectViolated

		case stateSelectViolated:
			ss = 0
			ip = 0
			for i := 0; i < m; i++ {
				if c.s[i] < ss && c.iai[i] != -1 && c.iaexcl[i] {
					ss = c.s[i]
					ip = i
				}
			}
			if ss >= 0 {
				return c.fValue, StatusOptimal, nil
			}

			c.ciCol(ip)
			c.u[c.iq] = 0
			c.a[c.iq] = ip

			state = stateTakeStep

		case stateTakeStep:
			computeD(c.d, c.j, c.np, n)
			updateZ(c.z, c.j, c.d, c.iq, n)
			updateR(c.r, c.rv, c.d, c.iq, n)

			t1 := math.Inf(1)
			l := 0
			for k := p; k < c.iq; k++ {
				if c.rv[k] > 0 && c.u[k]/c.rv[k] < t1 {
					t1 = c.u[k] / c.rv[k]
					l = c.a[k]
				}
			}

			var t2 float64
			if math.Abs(scalarProduct(c.z, c.z)) > machineEpsilon {
				t2 = -c.s[ip] / scalarProduct(c.z, c.np)
			} else {
				t2 = math.Inf(1)
			}

			t := math.Min(t1, t2)

			// Case (i): no finite step in either space: infeasible.
			// When no active rv[k] is positive, t1 stays +Inf and l is
			// unset. l is read only by case (ii), which this branch
			// pre-empts while t1 is +Inf, and by the partial step,
			// which runs only when t == t1 < t2, so an unset l is
			// never read.
			if math.IsInf(t, 1) {
				return math.Inf(1), StatusInfeasible, nil
			}

			// Case (ii): pure dual step, drop constraint l, stay in
			// this stage to retry with the same candidate.
			if math.IsInf(t2, 1) {
				for k := 0; k < c.iq; k++ {
					c.u[k] -= t * c.rv[k]
				}
				c.u[c.iq] += t
				c.iai[l] = l
				deleteConstraint(c.r, c.j, c.a, c.u, n, p, &c.iq, l)
				continue
			}

			// Case (iii): step in both spaces.
			for k := 0; k < n; k++ {
				c.x[k] += t * c.z[k]
			}
			c.fValue += t * scalarProduct(c.z, c.np) * (0.5*t + c.u[c.iq])
			for k := 0; k < c.iq; k++ {
				c.u[k] -= t * c.rv[k]
			}
			c.u[c.iq] += t

			if math.Abs(t-t2) < machineEpsilon {
				// Full step: try to add the candidate to the active set.
				if addConstraint(c.r, c.j, c.d, &c.iq, &c.rNorm, n, c.degTol) {
					c.iai[ip] = -1
					state = stateChooseStep
					continue
				}
				// Degenerate: the candidate's projection onto the null
				// space of the active set is numerically zero. The
				// rejected add left iq unchanged but wrote the rotated d
				// into column iq of R; clear that column, restore the
				// snapshot, and exclude ip for the rest of this outer
				// iteration.
				c.iaexcl[ip] = false
				for i := 0; i <= c.iq; i++ {
					c.r[i*n+c.iq] = 0
				}
				c.u[c.iq] = 0
				c.a[c.iq] = 0
				for i := 0; i < m; i++ {
					c.iai[i] = i
				}
				for i := p; i < c.iq; i++ {
					c.a[i] = c.aOld[i]
					c.u[i] = c.uOld[i]
					c.iai[c.a[i]] = -1
				}
				copy(c.x, c.xOld)
				state = stateSelectViolated
				continue
			}

			// Partial step: drop the blocking constraint l and retry
			// with the same candidate.
			c.iai[l] = l
			deleteConstraint(c.r, c.j, c.a, c.u, n, p, &c.iq, l)
			c.ciCol(ip)
			c.s[ip] = scalarProduct(c.np, c.x) + c.ci0[ip]
		}
	}
}
