// Copyright ©2024 The quadprog Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quadprog

// machineEpsilon is the distance between 1 and the next larger
// representable float64.
const machineEpsilon = 2.220446049250313e-16
