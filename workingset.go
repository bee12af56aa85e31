// Copyright ©2024 The quadprog Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quadprog

import "math"

// addConstraint prepares to add a new active constraint whose
// projected normal, expressed in J-coordinates, is d (length n). It
// applies a sequence of Givens rotations to d and to the matching
// column pairs of j (stored row-major, j[r*n+c]) to zero out
// d[iq+1:n] against d[iq], then writes the first iq+1 entries of d
// into column iq of r (stored row-major, r[row*n+col]).
//
// It reports whether the constraint was accepted. On rejection (the
// new constraint is linearly dependent on the active set, within
// degTol*eps*rNorm), iq and rNorm are left unchanged and the caller
// is responsible for restoring any other state it snapshotted.
//
// This is the Givens-rotation update step of the Goldfarb–Idnani
// dual active-set method, generalized here to row-major n×n slices
// instead of a fixed-size matrix type.
func addConstraint(r, j, d []float64, iq *int, rNorm *float64, n int, degTol float64) bool {
	for col := n - 1; col >= *iq+1; col-- {
		cc, ss := d[col-1], d[col]
		h := distance(cc, ss)
		if math.Abs(h) < machineEpsilon {
			continue
		}
		d[col] = 0
		ss /= h
		cc /= h
		if cc < 0 {
			cc, ss = -cc, -ss
			d[col-1] = -h
		} else {
			d[col-1] = h
		}
		xny := ss / (1 + cc)
		for k := 0; k < n; k++ {
			t1 := j[k*n+col-1]
			t2 := j[k*n+col]
			j[k*n+col-1] = t1*cc + t2*ss
			j[k*n+col] = xny*(t1+j[k*n+col-1]) - t2
		}
	}

	newIQ := *iq + 1
	for i := 0; i < newIQ; i++ {
		r[i*n+newIQ-1] = d[i]
	}

	if math.Abs(d[newIQ-1]) <= degTol*machineEpsilon*(*rNorm) {
		return false
	}
	*iq = newIQ
	if v := math.Abs(d[newIQ-1]); v > *rNorm {
		*rNorm = v
	}
	return true
}

// deleteConstraint removes inequality index l from the active set,
// shifting A, u, and the columns of r left by one, then restores the
// upper-triangularity of r with Givens rotations mirrored onto the
// columns of j. p is the number of equality constraints, which are
// never candidates for removal by this routine (they occupy A[0:p]
// and are never searched).
//
// This is the dual counterpart of addConstraint.
func deleteConstraint(r, j []float64, a []int, u []float64, n, p int, iq *int, l int) {
	qq := -1
	for i := p; i < *iq; i++ {
		if a[i] == l {
			qq = i
			break
		}
	}

	for i := qq; i < *iq-1; i++ {
		a[i] = a[i+1]
		u[i] = u[i+1]
		for row := 0; row < n; row++ {
			r[row*n+i] = r[row*n+i+1]
		}
	}

	a[*iq-1] = a[*iq]
	u[*iq-1] = u[*iq]
	a[*iq] = 0
	u[*iq] = 0
	for row := 0; row < *iq; row++ {
		r[row*n+*iq-1] = 0
	}
	*iq--

	if *iq == 0 {
		return
	}

	for col := qq; col < *iq; col++ {
		cc := r[col*n+col]
		ss := r[(col+1)*n+col]
		h := distance(cc, ss)
		if math.Abs(h) < machineEpsilon {
			continue
		}
		cc /= h
		ss /= h
		r[(col+1)*n+col] = 0
		if cc < 0 {
			r[col*n+col] = -h
			cc, ss = -cc, -ss
		} else {
			r[col*n+col] = h
		}
		xny := ss / (1 + cc)
		for k := col + 1; k < *iq; k++ {
			t1 := r[col*n+k]
			t2 := r[(col+1)*n+k]
			r[col*n+k] = t1*cc + t2*ss
			r[(col+1)*n+k] = xny*(r[col*n+k]+t1) - t2
		}
		for k := 0; k < n; k++ {
			t1 := j[k*n+col]
			t2 := j[k*n+col+1]
			j[k*n+col] = t1*cc + t2*ss
			j[k*n+col+1] = xny*(j[k*n+col]+t1) - t2
		}
	}
}
