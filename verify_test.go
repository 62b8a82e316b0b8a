package seqsynth_test

import (
	"testing"

	"github.com/db47h/seqsynth"
	"github.com/db47h/seqsynth/logic"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

func TestDesign_Simulate(t *testing.T) {
	d := mustDerive(t, "0 1 3 2", seqsynth.T)
	states, err := d.Simulate(1, 9)
	if err != nil {
		t.Fatal(err)
	}
	if exp := []int{0, 1, 3, 2, 0, 1, 3, 2, 0}; !slices.Equal(states, exp) {
		t.Fatalf("got states %v, expected %v", states, exp)
	}
}

func TestDesign_Verify(t *testing.T) {
	for _, s := range []string{"0 1 3 2", "0 1 2", "5", "3 6 1 0 7 2", "0 1 0 1", "12 3 9 0 15 4"} {
		for _, ff := range seqsynth.FlipFlops() {
			d := mustDerive(t, s, ff)
			if err := d.Verify(0); err != nil {
				t.Errorf("%s %s: %v", s, ff.Name(), err)
			}
		}
	}
}

func TestDesign_Verify_broken(t *testing.T) {
	d := mustDerive(t, "0 1 3 2", seqsynth.D)
	// D0 = Q1 instead of ~Q1
	d.Equations[1].Expr = logic.NewExpr(2, logic.NewTerm(logic.Literal{Var: 1}))
	err := d.Verify(1)
	ve, ok := errors.Cause(err).(*seqsynth.VerificationError)
	if !ok {
		t.Fatalf("expected a *VerificationError, got %v", err)
	}
	if ve.Stage != "formal" {
		t.Fatalf("failed at stage %q", ve.Stage)
	}

	// the tables agree, so that only the machine check catches the error.
	for i := range d.Tables {
		d.Tables[i].Rows = d.Equations[i].Expr.Table()
	}
	err = d.Verify(1)
	if ve, ok = errors.Cause(err).(*seqsynth.VerificationError); !ok || ve.Stage != "machine" {
		t.Fatalf("expected a machine verification error, got %v", err)
	}
}
