// Copyright ©2024 The quadprog Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quadprog

// Settings controls the tolerances and optional hooks used by
// SolveWithSettings. A zero tolerance field selects its default
// multiplier, so the zero value behaves like DefaultSettings, which
// holds tolerances calibrated against the Goldfarb–Idnani convergence
// analysis that should not be changed casually.
type Settings struct {
	// DegeneracyTolerance scales machine epsilon in the add_constraint
	// degeneracy test |d[iq-1]| <= DegeneracyTolerance * eps * R_norm.
	// Zero means use the default multiplier of 1.
	DegeneracyTolerance float64

	// TerminationTolerance scales the outer-loop termination test
	// |psi| <= TerminationTolerance * m * eps * c1 * c2. Zero means
	// use the default multiplier of 100.
	TerminationTolerance float64

	// MaxIterations bounds the number of outer iterations. Zero means
	// unbounded; a caller imposing a wall-clock limit should set this
	// instead of bounding externally.
	MaxIterations int

	// Recorder, if non-nil, is invoked once per outer iteration.
	Recorder Recorder
}

// DefaultSettings returns the Settings used by Solve: the calibrated
// tolerance multipliers and no iteration limit or recorder.
func DefaultSettings() *Settings {
	return &Settings{
		DegeneracyTolerance:  1,
		TerminationTolerance: 100,
	}
}

func (s *Settings) degeneracyTolerance() float64 {
	if s == nil || s.DegeneracyTolerance == 0 {
		return 1
	}
	return s.DegeneracyTolerance
}

func (s *Settings) terminationTolerance() float64 {
	if s == nil || s.TerminationTolerance == 0 {
		return 100
	}
	return s.TerminationTolerance
}

func (s *Settings) maxIterations() int {
	if s == nil {
		return 0
	}
	return s.MaxIterations
}

func (s *Settings) recorder() Recorder {
	if s == nil {
		return nil
	}
	return s.Recorder
}

// Result is the enriched outcome of SolveWithSettings.
type Result struct {
	// X is the optimal point, or the last stable iterate when
	// Status is StatusInfeasible.
	X []float64
	// Obj is the optimal objective value, or +Inf when Status is
	// StatusInfeasible.
	Obj float64
	// Status reports how the solve finished.
	Status Status
	// ActiveSet holds the constraints active at X: non-negative
	// entries are inequality indices into CI, negative entries are
	// equality indices encoded as -i-1, mirroring the internal
	// active-set index array's encoding.
	ActiveSet []int
	// Dual holds the Lagrange multiplier for each entry of
	// ActiveSet, in the same order.
	Dual []float64
	// Iterations is the number of outer iterations taken.
	Iterations int
}
