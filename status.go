// Copyright ©2024 The quadprog Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quadprog

// Status describes how a solve finished.
type Status int

const (
	// StatusOptimal indicates the outer loop found a point with no
	// inequality violated beyond tolerance.
	StatusOptimal Status = iota + 1
	// StatusInfeasible indicates no finite step existed from a
	// feasible dual iterate; the problem has no feasible point.
	StatusInfeasible
	// StatusIterationLimit indicates Settings.MaxIterations was
	// reached before the outer loop converged or detected
	// infeasibility.
	StatusIterationLimit
)

func (s Status) String() string {
	if str, ok := statusNames[s]; ok {
		return str
	}
	return "Status(unknown)"
}

var statusNames = map[Status]string{
	StatusOptimal:        "Optimal",
	StatusInfeasible:     "Infeasible",
	StatusIterationLimit: "IterationLimit",
}
