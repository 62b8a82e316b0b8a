// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logic

import (
	"math/bits"
	"strings"
)

// MaxVars is the maximum number of variables of a Term or Expr.
//
const MaxVars = 16

// A Literal is a variable or its complement.
//
type Literal struct {
	Var int
	Neg bool
}

// A Term is a conjunction of literals (a product term, or cube).
//
// Variable i takes part in the term if bit i of Care is set. Its polarity is
// then given by bit i of Value: 1 for the variable, 0 for its complement.
// Bits of Value outside of Care are always 0. The zero Term has no literals
// and is always true.
//
type Term struct {
	Care  uint32
	Value uint32
}

func mask(vars int) uint32 { return 1<<uint(vars) - 1 }

// Minterm returns the term over vars variables that is true only for row code.
//
func Minterm(vars int, code uint32) Term {
	m := mask(vars)
	return Term{Care: m, Value: code & m}
}

// NewTerm returns the conjunction of the given literals. If both polarities
// of a variable are given, the last one wins.
//
func NewTerm(lits ...Literal) Term {
	var t Term
	for _, l := range lits {
		b := uint32(1) << uint(l.Var)
		t.Care |= b
		if l.Neg {
			t.Value &^= b
		} else {
			t.Value |= b
		}
	}
	return t
}

// Covers returns true if t is true for row code.
//
func (t Term) Covers(code uint32) bool {
	return code&t.Care == t.Value
}

// Len returns the number of literals in t.
//
func (t Term) Len() int {
	return bits.OnesCount32(t.Care)
}

// Literals returns the literals of t, most significant variable first.
//
func (t Term) Literals() []Literal {
	lits := make([]Literal, 0, t.Len())
	for i := 31; i >= 0; i-- {
		b := uint32(1) << uint(i)
		if t.Care&b != 0 {
			lits = append(lits, Literal{Var: i, Neg: t.Value&b == 0})
		}
	}
	return lits
}

// rank returns 0 if variable i appears complemented in t, 1 if it appears
// uncomplemented and 2 if it is absent.
func (t Term) rank(i int) int {
	b := uint32(1) << uint(i)
	switch {
	case t.Care&b == 0:
		return 2
	case t.Value&b == 0:
		return 0
	}
	return 1
}

// Key returns the positional notation of t over vars variables, most
// significant variable first: '0' for a complemented variable, '1' for a
// variable and '-' for an absent one.
//
func (t Term) Key(vars int) string {
	var b strings.Builder
	b.Grow(vars)
	for i := vars - 1; i >= 0; i-- {
		b.WriteByte("01-"[t.rank(i)])
	}
	return b.String()
}

// termLess orders terms by variable, most significant first, complemented
// literals before uncomplemented ones before absent ones.
func termLess(a, b Term) bool {
	for i := 31; i >= 0; i-- {
		ra, rb := a.rank(i), b.rank(i)
		if ra != rb {
			return ra < rb
		}
	}
	return false
}
