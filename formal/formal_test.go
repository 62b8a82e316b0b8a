package formal_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/db47h/seqsynth/formal"
	"github.com/db47h/seqsynth/logic"
)

func lit(v int, neg bool) logic.Literal { return logic.Literal{Var: v, Neg: neg} }

var (
	notQ0 = logic.NewExpr(2, logic.NewTerm(lit(0, true)))
	xor   = logic.NewExpr(2,
		logic.NewTerm(lit(1, true), lit(0, false)),
		logic.NewTerm(lit(1, false), lit(0, true)))
)

func TestEquivalent(t *testing.T) {
	X := logic.DontCare
	td := []struct {
		name string
		e    logic.Expr
		t    logic.Table
		ok   bool
		cex  uint32
	}{
		{"xor", xor, logic.Table{0, 1, 1, 0}, true, 0},
		{"dc", logic.NewExpr(2, logic.NewTerm(lit(1, true))), logic.Table{1, X, 0, X}, true, 0},
		{"wrong", logic.NewExpr(2, logic.NewTerm(lit(0, false))), logic.Table{1, X, 0, X}, false, 0},
		{"one", logic.Const(2, true), logic.Table{1, X, X, 1}, true, 0},
		{"zero", logic.Const(2, false), logic.Table{0, 0, 0, 1}, false, 3},
		{"all_dc", logic.Const(1, false), logic.Table{X, X}, true, 0},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			cex, ok := formal.Equivalent(d.e, d.t)
			if ok != d.ok {
				t.Fatalf("Equivalent(%v, %v) = %v, expected %v", d.e, d.t, ok, d.ok)
			}
			if !ok && cex != d.cex {
				t.Fatalf("counterexample %d, expected %d", cex, d.cex)
			}
		})
	}
}

func TestEquivalent_minimized(t *testing.T) {
	X := logic.DontCare
	for _, tbl := range []logic.Table{
		{1, 1, 1, 0, 0, 1, 1, 1},
		{0, 0, 0, 1, 0, 1, 1, 1},
		{X, 1, 0, X, 1, X, 0, 0},
		{1, X, X, X, X, X, X, 0, 0, 1, 1, 0, X, 0, 1, X},
	} {
		e, err := logic.Minimize(tbl.Vars(), tbl)
		if err != nil {
			t.Fatal(err)
		}
		if cex, ok := formal.Equivalent(e, tbl); !ok {
			t.Errorf("%v does not implement %v at row %d", e, tbl, cex)
		}
	}
}

func counter(next func(bool, []bool) bool, inputs [][]logic.Expr) *formal.Machine {
	return &formal.Machine{Width: 2, Inputs: inputs, Next: next}
}

var (
	dNext = func(_ bool, in []bool) bool { return in[0] }
	tNext = func(q bool, in []bool) bool { return q != in[0] }
	// 2 bits binary counter
	dCounter = counter(dNext, [][]logic.Expr{{notQ0}, {xor}})
	tCounter = counter(tNext, [][]logic.Expr{
		{logic.Const(2, true)},
		{logic.NewExpr(2, logic.NewTerm(lit(0, false)))},
	})
	count = [][2]uint32{{0, 1}, {1, 2}, {2, 3}, {3, 0}}
)

func TestMachine_CheckTransitions(t *testing.T) {
	for _, m := range []*formal.Machine{dCounter, tCounter} {
		mm, err := m.CheckTransitions(count)
		if err != nil {
			t.Fatal(err)
		}
		if mm != nil {
			t.Fatalf("unexpected mismatch %+v", *mm)
		}
		mm, err = m.CheckTransitions([][2]uint32{{1, 2}, {2, 0}})
		if err != nil {
			t.Fatal(err)
		}
		if mm == nil || *mm != (formal.Mismatch{Present: 2, Want: 0, Got: 3}) {
			t.Fatalf("expected mismatch 2 -> 3, got %+v", mm)
		}
	}
}

func TestMachine_errors(t *testing.T) {
	m := &formal.Machine{Width: 2, Inputs: [][]logic.Expr{{notQ0}}, Next: dNext}
	if _, err := m.CheckTransitions(count); err == nil {
		t.Fatal("expected an error")
	}
	m = &formal.Machine{Width: 2, Inputs: [][]logic.Expr{{notQ0}, {logic.Const(3, true)}}, Next: dNext}
	if err := m.WriteAiger(&bytes.Buffer{}); err == nil {
		t.Fatal("expected an error")
	}
}

func TestMachine_WriteAiger(t *testing.T) {
	var b bytes.Buffer
	m := *dCounter
	m.Init = 2
	if err := m.WriteAiger(&b); err != nil {
		t.Fatal(err)
	}
	s := b.String()
	if !strings.HasPrefix(s, "aag ") {
		t.Fatalf("not an ascii aiger file:\n%s", s)
	}
	for _, want := range []string{"l0 Q0\n", "l1 Q1\n", "o0 Q0\n", "o1 Q1\n"} {
		if !strings.Contains(s, want) {
			t.Errorf("missing symbol %q in:\n%s", want, s)
		}
	}
}
