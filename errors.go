// Copyright ©2024 The quadprog Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quadprog

import "errors"

var (
	// ErrNotPositiveDefinite is returned when G fails the Cholesky
	// factorization, i.e. G is not symmetric positive-definite.
	ErrNotPositiveDefinite = errors.New("quadprog: matrix is not positive definite")

	// ErrEqualityConstraintsDependent is returned when the equality
	// constraints CE are linearly dependent, so the dual active-set
	// method cannot force-add them all to the working set.
	ErrEqualityConstraintsDependent = errors.New("quadprog: equality constraints are linearly dependent")
)
