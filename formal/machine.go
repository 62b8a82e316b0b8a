// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package formal

import (
	"io"
	"strconv"

	"github.com/db47h/seqsynth/logic"
	"github.com/go-air/gini"
	glogic "github.com/go-air/gini/logic"
	"github.com/go-air/gini/logic/aiger"
	"github.com/go-air/gini/z"
	"github.com/pkg/errors"
)

// A Machine is a synchronous state machine made of Width identical
// flip-flops. Bit i of the state is held by flip-flop i, whose control
// inputs are driven by the expressions Inputs[i] over the present state.
//
type Machine struct {
	Width  int
	Init   uint32
	Inputs [][]logic.Expr
	// Next is the characteristic function of the flip-flops: the next state
	// given the present state q and the control inputs in.
	Next func(q bool, in []bool) bool
}

// characteristic returns the literal computing m.Next(q, in).
func (m *Machine) characteristic(c *glogic.C, q z.Lit, in []z.Lit) z.Lit {
	n := len(in)
	vals := make([]bool, n)
	ors := make([]z.Lit, 0, 2<<uint(n))
	for r := 0; r < 2<<uint(n); r++ {
		for i := range vals {
			vals[i] = r&(1<<uint(i)) != 0
		}
		qv := r&(1<<uint(n)) != 0
		if !m.Next(qv, vals) {
			continue
		}
		ands := make([]z.Lit, 0, n+1)
		if qv {
			ands = append(ands, q)
		} else {
			ands = append(ands, q.Not())
		}
		for i, v := range vals {
			if v {
				ands = append(ands, in[i])
			} else {
				ands = append(ands, in[i].Not())
			}
		}
		ors = append(ors, c.Ands(ands...))
	}
	return c.Ors(ors...)
}

// next returns the literals computing the next state from the present state
// qs.
func (m *Machine) next(c *glogic.C, qs []z.Lit) ([]z.Lit, error) {
	if len(m.Inputs) != m.Width || len(qs) != m.Width {
		return nil, errors.Errorf("machine of width %d has %d flip-flops", m.Width, len(m.Inputs))
	}
	ns := make([]z.Lit, m.Width)
	for i, exprs := range m.Inputs {
		in := make([]z.Lit, len(exprs))
		for j, e := range exprs {
			if e.Vars() != m.Width {
				return nil, errors.Errorf("input %d of flip-flop %d has %d variables", j, i, e.Vars())
			}
			in[j] = expr(c, qs, e)
		}
		ns[i] = m.characteristic(c, qs[i], in)
	}
	return ns, nil
}

// A Mismatch is a transition that a Machine does not perform.
//
type Mismatch struct {
	Present uint32
	Want    uint32
	Got     uint32
}

// CheckTransitions proves that m moves from state tr[0] to state tr[1] for
// every transition tr of trs. It returns the first transition that does not
// hold, or nil.
//
func (m *Machine) CheckTransitions(trs [][2]uint32) (*Mismatch, error) {
	c := glogic.NewC()
	qs := inputs(c, m.Width)
	ns, err := m.next(c, qs)
	if err != nil {
		return nil, err
	}
	// expected next state bits are inputs as well, fixed by assumptions.
	ws := inputs(c, m.Width)
	diff := make([]z.Lit, m.Width)
	for i := range ns {
		diff[i] = c.Xor(ns[i], ws[i])
	}
	miter := c.Ors(diff...)

	vs := make([]z.Lit, 0, 3*m.Width)
	vs = append(append(append(vs, qs...), ns...), ws...)
	g := solver(c, vs...)
	for _, tr := range trs {
		g.Assume(miter)
		assume(g, qs, tr[0])
		assume(g, ws, tr[1])
		if g.Solve() == sat {
			return &Mismatch{Present: tr[0], Want: tr[1], Got: code(g, ns)}, nil
		}
	}
	return nil, nil
}

func assume(g *gini.Gini, vs []z.Lit, code uint32) {
	for i, m := range vs {
		if code&(1<<uint(i)) == 0 {
			m = m.Not()
		}
		g.Assume(m)
	}
}

// WriteAiger writes m in the ASCII AIGER format. The latches and the
// outputs are the state bits, named Q0 to Q<Width-1>. Latches are
// initialized to m.Init.
//
func (m *Machine) WriteAiger(w io.Writer) error {
	s := glogic.NewS()
	qs := make([]z.Lit, m.Width)
	for i := range qs {
		init := s.F
		if m.Init&(1<<uint(i)) != 0 {
			init = s.T
		}
		qs[i] = s.Latch(init)
	}
	ns, err := m.next(&s.C, qs)
	if err != nil {
		return err
	}
	for i, n := range ns {
		s.SetNext(qs[i], n)
	}
	a := aiger.MakeFor(s, qs...)
	for i := range qs {
		name := "Q" + strconv.Itoa(i)
		if err = a.NameLatch(i, name); err != nil {
			return errors.Wrap(err, name)
		}
		if err = a.NameOutput(i, name); err != nil {
			return errors.Wrap(err, name)
		}
	}
	return errors.Wrap(a.WriteAscii(w), "write aiger")
}
