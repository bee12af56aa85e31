// Copyright ©2024 The quadprog Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quadprog

import (
	"fmt"
	"io"
	"os"
)

// Recorder is called once per outer iteration of the active-set loop.
// Implementations that want visibility into the solve can log, collect
// a trace, or abort early by returning a non-nil error, which
// SolveWithSettings surfaces to its caller.
type Recorder interface {
	Record(iter int, fValue float64, iq int, x []float64) error
}

// Printer is a Recorder that writes columnar progress output to Writer,
// throttled to at most one line per Interval iterations. A zero-value
// Printer writes every iteration to os.Stdout.
type Printer struct {
	Writer   io.Writer
	Interval int

	headerAt int
}

// NewPrinter returns a Printer writing to os.Stdout, printing a header
// every 20 lines.
func NewPrinter() *Printer {
	return &Printer{Writer: os.Stdout, Interval: 1}
}

func (p *Printer) Record(iter int, fValue float64, iq int, x []float64) error {
	w := p.Writer
	if w == nil {
		w = os.Stdout
	}
	interval := p.Interval
	if interval <= 0 {
		interval = 1
	}
	if iter%interval != 0 {
		return nil
	}
	if p.headerAt <= 0 {
		fmt.Fprintf(w, "%8s %16s %6s\n", "Iter", "Obj", "iq")
		p.headerAt = 20
	}
	p.headerAt--
	_, err := fmt.Fprintf(w, "%8d %16.8g %6d\n", iter, fValue, iq)
	return err
}
