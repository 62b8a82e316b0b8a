// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package seqsynth

import (
	"github.com/db47h/seqsynth/logic"
	"github.com/pkg/errors"
)

// An Equation binds a control signal to its minimized expression over the
// present-state bits. Variable i of Expr is state bit i.
//
type Equation struct {
	Signal Signal
	Expr   logic.Expr
}

func (e Equation) String() string { return e.Signal.Name() + " = " + e.Expr.String() }

// A Design is a synthesized state machine along with the intermediate
// results of its derivation.
//
type Design struct {
	Sequence    Sequence
	FlipFlop    FlipFlop
	Encoding    Encoding
	Transitions []Transition
	Excitation  []ExcitationEntry
	Tables      []ExcitationTable
	Equations   []Equation // in the order of Signals
}

// Derive synthesizes a state machine stepping through seq with flip-flops
// of type ff. For flip-flops with a forbidden input combination, like SR,
// the don't-care rows of the last input of every flip-flop are assigned so
// that no state code, reached or not, drives that combination. Errors are one of *InvalidSequenceError,
// *ConflictingTransitionError, *InvalidExcitationError or
// *MinimizationError, possibly wrapped.
//
func Derive(seq Sequence, ff FlipFlop) (*Design, error) {
	if ff == nil {
		return nil, errors.New("no flip-flop type")
	}
	enc, err := Encode(seq)
	if err != nil {
		return nil, err
	}
	trs, err := Transitions(seq)
	if err != nil {
		return nil, err
	}
	entries, tables, err := Excitation(trs, enc.Width, ff)
	if err != nil {
		return nil, err
	}
	eqs := make([]Equation, len(tables))
	n, bad := len(ff.Inputs()), ff.forbid()
	for i, t := range tables {
		if bad != nil && i%n == n-1 {
			restrict(t.Rows, eqs[i-n+1:i], bad)
		}
		e, err := logic.Minimize(enc.Width, t.Rows)
		if err != nil {
			return nil, errors.Wrapf(err, "signal %s", t.Signal.Name())
		}
		eqs[i] = Equation{Signal: t.Signal, Expr: e}
	}
	return &Design{
		Sequence:    append(Sequence(nil), seq...),
		FlipFlop:    ff,
		Encoding:    enc,
		Transitions: trs,
		Excitation:  entries,
		Tables:      tables,
		Equations:   eqs,
	}, nil
}

// restrict assigns the don't-care rows of rows, the table of the last input
// of a flip-flop, where the equations eqs of its other inputs match the
// forbidden combination bad.
func restrict(rows logic.Table, eqs []Equation, bad []bool) {
	last := logic.One
	if bad[len(bad)-1] {
		last = logic.Zero
	}
	for r, v := range rows {
		if v != logic.DontCare {
			continue
		}
		hit := true
		for j, eq := range eqs {
			if eq.Expr.Eval(uint32(r)) != bad[j] {
				hit = false
				break
			}
		}
		if hit {
			rows[r] = last
		}
	}
}

// Width returns the number of state bits of d.
//
func (d *Design) Width() int { return d.Encoding.Width }

// Inputs returns the expressions driving the control inputs of flip-flop
// bit, in declaration order.
//
func (d *Design) Inputs(bit int) []logic.Expr {
	n := len(d.FlipFlop.Inputs())
	base := (d.Width() - 1 - bit) * n
	es := make([]logic.Expr, n)
	for i := range es {
		es[i] = d.Equations[base+i].Expr
	}
	return es
}

// Next returns the state following state in the synthesized machine.
//
func (d *Design) Next(state int) int {
	next := 0
	for b := 0; b < d.Width(); b++ {
		es := d.Inputs(b)
		in := make([]bool, len(es))
		for i, e := range es {
			in[i] = e.Eval(uint32(state))
		}
		if d.FlipFlop.Next(state&(1<<uint(b)) != 0, in) {
			next |= 1 << uint(b)
		}
	}
	return next
}

// EquationText returns the text of every equation keyed by signal name.
//
func (d *Design) EquationText() map[string]string {
	m := make(map[string]string, len(d.Equations))
	for _, eq := range d.Equations {
		m[eq.Signal.Name()] = eq.Expr.String()
	}
	return m
}

// TransitionMap returns the binary code of the successor of every state of
// the sequence, keyed by the binary code of the state.
//
func (d *Design) TransitionMap() map[string]string {
	m := make(map[string]string, len(d.Transitions))
	for _, tr := range d.Transitions {
		m[d.Encoding.Code(tr.Present)] = d.Encoding.Code(tr.Next)
	}
	return m
}
