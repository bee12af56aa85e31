// Copyright ©2024 The quadprog Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quadprog

// iterationsFromCore reports how many outer iterations a finished
// solve took.
func iterationsFromCore(c *core) int {
	return c.iters
}

// activeSetAndDuals copies the final (A, u, iq) state into the
// caller-facing ActiveSet/Dual pair described by Result, keeping the
// same -i-1 encoding for equality indices used internally.
func activeSetAndDuals(c *core) (active []int, dual []float64) {
	active = make([]int, c.iq)
	dual = make([]float64, c.iq)
	copy(active, c.a[:c.iq])
	copy(dual, c.u[:c.iq])
	return active, dual
}
