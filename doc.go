// Copyright ©2024 The quadprog Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package quadprog solves dense, small-to-medium convex quadratic
// programs
//
//	minimize    (1/2) xᵀ G x + g₀ᵀ x
//	subject to  CEᵀ x + ce₀ = 0
//	            CIᵀ x + ci₀ ≥ 0
//
// using the dual active-set method of Goldfarb and Idnani. G must be
// symmetric positive-definite; CE and CI hold the equality and
// inequality constraint normals as columns.
//
// Solve and SolveWithSettings mutate their G argument in place,
// overwriting it with its Cholesky factor. Callers that need to reuse
// G should pass a clone.
//
// Callers posing problems in the convention A x ≤ b must negate and
// transpose to the solver's convention themselves: CI = -Aᵀ,
// ci₀ = b. Building G, g₀, CE, ce₀, CI, ci₀ from a problem
// description, presolve, warm starts, and sparse or large-scale
// variants are outside this package's scope.
package quadprog // import "github.com/gonum-community/quadprog"
