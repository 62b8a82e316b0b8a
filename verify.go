// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package seqsynth

import (
	"fmt"

	"github.com/db47h/seqsynth/formal"
	"github.com/db47h/seqsynth/logic"
)

// Machine returns the formal model of d.
//
func (d *Design) Machine() *formal.Machine {
	w := d.Width()
	m := &formal.Machine{
		Width:  w,
		Init:   uint32(d.Sequence[0]),
		Inputs: make([][]logic.Expr, w),
		Next:   d.FlipFlop.Next,
	}
	for bit := range m.Inputs {
		m.Inputs[bit] = d.Inputs(bit)
	}
	return m
}

// Verify checks that d performs the transitions it was derived from:
//
//	- every equation agrees with its excitation table on all reached states
//	  (SAT equivalence check),
//	- the machine built from the equations and the flip-flop characteristic
//	  function performs every transition (SAT check),
//	- the gate-level circuit, simulated from reset, steps through the whole
//	  sequence and back to its first state.
//
// Failures are reported as a *VerificationError.
//
func (d *Design) Verify(workers int) error {
	for i, eq := range d.Equations {
		if cex, ok := formal.Equivalent(eq.Expr, d.Tables[i].Rows); !ok {
			return &VerificationError{Stage: "formal",
				Msg: fmt.Sprintf("%v disagrees with its excitation table in state %s", eq, d.Encoding.Code(int(cex)))}
		}
	}

	trs := make([][2]uint32, len(d.Transitions))
	for i, tr := range d.Transitions {
		trs[i] = [2]uint32{uint32(tr.Present), uint32(tr.Next)}
	}
	mm, err := d.Machine().CheckTransitions(trs)
	if err != nil {
		return &VerificationError{Stage: "machine", Msg: err.Error()}
	}
	if mm != nil {
		return &VerificationError{Stage: "machine",
			Msg: fmt.Sprintf("state %s goes to %s instead of %s", d.Encoding.Code(int(mm.Present)), d.Encoding.Code(int(mm.Got)), d.Encoding.Code(int(mm.Want)))}
	}

	n := len(d.Sequence)
	states, err := d.Simulate(workers, n+1)
	if err != nil {
		return &VerificationError{Stage: "simulation", Msg: err.Error()}
	}
	for i, s := range states {
		if want := d.Sequence[i%n]; s != want {
			return &VerificationError{Stage: "simulation",
				Msg: fmt.Sprintf("clock cycle %d: state is %s, expected %s", i, d.Encoding.Code(s), d.Encoding.Code(want))}
		}
	}
	return nil
}
