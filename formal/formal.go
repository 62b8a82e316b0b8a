// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package formal proves properties of synthesized logic with a SAT solver
// and exports synthesized machines as and-inverter graphs.
//
// Expressions and truth tables are translated into gini circuits. A property
// is checked by building a miter, a literal that is true exactly for the
// inputs violating the property, and asking the solver for a satisfying
// assignment.
//
package formal

import (
	"github.com/db47h/seqsynth/logic"
	"github.com/go-air/gini"
	glogic "github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
)

const sat = 1

// inputs returns n new input literals of c.
func inputs(c *glogic.C, n int) []z.Lit {
	vs := make([]z.Lit, n)
	for i := range vs {
		vs[i] = c.Lit()
	}
	return vs
}

// expr returns the literal computing e where variable i is vs[i].
func expr(c *glogic.C, vs []z.Lit, e logic.Expr) z.Lit {
	if v, ok := e.IsConst(); ok {
		if v {
			return c.T
		}
		return c.F
	}
	terms := e.Terms()
	ors := make([]z.Lit, 0, len(terms))
	for _, t := range terms {
		lits := t.Literals()
		ands := make([]z.Lit, 0, len(lits))
		for _, l := range lits {
			m := vs[l.Var]
			if l.Neg {
				m = m.Not()
			}
			ands = append(ands, m)
		}
		ors = append(ors, c.Ands(ands...))
	}
	return c.Ors(ors...)
}

// table returns the literals computing the on-set and the care-set of t,
// as a tree of multiplexers over the variables vs, most significant first.
func table(c *glogic.C, vs []z.Lit, t logic.Table) (on, care z.Lit) {
	var mux func(k int, rows logic.Table) (z.Lit, z.Lit)
	mux = func(k int, rows logic.Table) (z.Lit, z.Lit) {
		if k == 0 {
			switch rows[0] {
			case logic.One:
				return c.T, c.T
			case logic.Zero:
				return c.F, c.T
			}
			return c.F, c.F
		}
		h := len(rows) / 2
		lo, lc := mux(k-1, rows[:h])
		hi, hc := mux(k-1, rows[h:])
		v := vs[k-1]
		return c.Choice(v, hi, lo), c.Choice(v, hc, lc)
	}
	return mux(len(vs), t)
}

// solver returns a solver loaded with c. Every literal of vs is declared
// to the solver, so that its value can be read back from a model even when
// no gate reads it.
func solver(c *glogic.C, vs ...z.Lit) *gini.Gini {
	g := gini.New()
	c.ToCnf(g)
	for _, m := range vs {
		g.Add(m)
		g.Add(m.Not())
		g.Add(z.LitNull)
	}
	return g
}

func code(g *gini.Gini, vs []z.Lit) uint32 {
	var r uint32
	for i, m := range vs {
		if g.Value(m) {
			r |= 1 << uint(i)
		}
	}
	return r
}

// Equivalent checks that e agrees with t on every row of t that is not a
// don't-care. If it does not, it returns false and the first counterexample
// found by the solver.
//
func Equivalent(e logic.Expr, t logic.Table) (cex uint32, ok bool) {
	vars := t.Vars()
	if vars < 0 || vars != e.Vars() {
		return 0, false
	}
	c := glogic.NewC()
	vs := inputs(c, vars)
	f := expr(c, vs, e)
	on, care := table(c, vs, t)
	miter := c.And(care, c.Xor(f, on))

	g := solver(c, vs...)
	g.Assume(miter)
	if g.Solve() != sat {
		return 0, true
	}
	return code(g, vs), false
}
