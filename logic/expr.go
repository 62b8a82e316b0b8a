// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logic

import (
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

// An Expr is a sum-of-products expression over a fixed number of variables.
// Exprs are values: they are never modified once built.
//
// An Expr with no terms is the constant false. The constant true is
// represented by a single empty term.
//
type Expr struct {
	vars  int
	terms []Term
}

// Const returns the constant expression v over vars variables.
//
func Const(vars int, v bool) Expr {
	if v {
		return Expr{vars: vars, terms: []Term{{}}}
	}
	return Expr{vars: vars}
}

// NewExpr returns the disjunction of the given terms over vars variables.
// Terms are sorted and duplicates removed. Literals on variables outside of
// [0, vars) are dropped.
//
func NewExpr(vars int, terms ...Term) Expr {
	m := mask(vars)
	ts := make([]Term, 0, len(terms))
	for _, t := range terms {
		t.Care &= m
		t.Value &= t.Care
		if t.Care == 0 {
			return Const(vars, true)
		}
		ts = append(ts, t)
	}
	slices.SortFunc(ts, termLess)
	return Expr{vars: vars, terms: slices.Compact(ts)}
}

// Vars returns the number of variables e is defined over.
//
func (e Expr) Vars() int { return e.vars }

// Terms returns a copy of the product terms of e.
//
func (e Expr) Terms() []Term { return slices.Clone(e.terms) }

// IsConst returns true if e is a constant expression, in which case v is its
// value.
//
func (e Expr) IsConst() (v bool, ok bool) {
	switch {
	case len(e.terms) == 0:
		return false, true
	case len(e.terms) == 1 && e.terms[0].Care == 0:
		return true, true
	}
	return false, false
}

// Literals returns the total number of literals in e.
//
func (e Expr) Literals() int {
	n := 0
	for _, t := range e.terms {
		n += t.Len()
	}
	return n
}

// Eval returns the value of e for row code.
//
func (e Expr) Eval(code uint32) bool {
	for _, t := range e.terms {
		if t.Covers(code) {
			return true
		}
	}
	return false
}

// Table returns the fully specified truth table of e.
//
func (e Expr) Table() Table {
	t := make(Table, 1<<uint(e.vars))
	for i := range t {
		if e.Eval(uint32(i)) {
			t[i] = One
		}
	}
	return t
}

// Equal returns true if e and f have the same variables and terms. Two
// different Exprs may still compute the same function.
//
func (e Expr) Equal(f Expr) bool {
	return e.vars == f.vars && slices.Equal(e.terms, f.terms)
}

// Style controls how an Expr is converted to text.
//
type Style struct {
	Var  func(i int) string // variable name
	Not  string             // prefix for complemented variables
	And  string             // separator between the literals of a term
	Or   string             // separator between terms
	Zero string             // constant false
	One  string             // constant true
}

// Infix is the default Style: Q1 & ~Q0 | ~Q1 & Q0.
//
var Infix = Style{
	Var:  func(i int) string { return "Q" + strconv.Itoa(i) },
	Not:  "~",
	And:  " & ",
	Or:   " | ",
	Zero: "0",
	One:  "1",
}

// Format returns e as text in the given style. Product terms of more than
// one literal are parenthesized when e has more than one term.
//
func (e Expr) Format(s Style) string {
	if v, ok := e.IsConst(); ok {
		if v {
			return s.One
		}
		return s.Zero
	}
	var b strings.Builder
	paren := len(e.terms) > 1
	for i, t := range e.terms {
		if i > 0 {
			b.WriteString(s.Or)
		}
		lits := t.Literals()
		p := paren && len(lits) > 1
		if p {
			b.WriteByte('(')
		}
		for j, l := range lits {
			if j > 0 {
				b.WriteString(s.And)
			}
			if l.Neg {
				b.WriteString(s.Not)
			}
			b.WriteString(s.Var(l.Var))
		}
		if p {
			b.WriteByte(')')
		}
	}
	return b.String()
}

func (e Expr) String() string {
	return e.Format(Infix)
}
