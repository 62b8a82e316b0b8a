package seqsynth_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/db47h/seqsynth"
)

func TestEmitModule(t *testing.T) {
	td := []struct {
		ff   seqsynth.FlipFlop
		want []string
	}{
		{seqsynth.D, []string{
			"module fsm (",
			"output reg  [1:0] Q",
			"wire D1, D0;",
			"assign D1 = Q[0];",
			"assign D0 = ~Q[1];",
			"Q <= 2'b00;",
			"Q[1] <= D1;",
			"Q[0] <= D0;",
			"endmodule",
		}},
		{seqsynth.T, []string{
			"assign T1 = (~Q[1] & Q[0]) | (Q[1] & ~Q[0]);",
			"Q[1] <= Q[1] ^ T1;",
		}},
		{seqsynth.JK, []string{
			"wire J1, K1, J0, K0;",
			"assign K1 = ~Q[0];",
			"Q[1] <= (J1 & ~Q[1]) | (~K1 & Q[1]);",
		}},
		{seqsynth.SR, []string{
			"Q[0] <= S0 | (~R0 & Q[0]);",
		}},
	}
	for _, d := range td {
		m := seqsynth.EmitModule(mustDerive(t, "0 1 3 2", d.ff), "fsm")
		for _, w := range d.want {
			if !strings.Contains(m, w) {
				t.Errorf("%s: missing %q in:\n%s", d.ff.Name(), w, m)
			}
		}
	}

	// reset to the first state of the sequence, constants
	m := seqsynth.EmitModule(mustDerive(t, "5 5", seqsynth.D), "hold")
	for _, w := range []string{"module hold (", "Q <= 3'b101;", "assign D2 = 1'b1;", "assign D1 = 1'b0;"} {
		if !strings.Contains(m, w) {
			t.Errorf("missing %q in:\n%s", w, m)
		}
	}
}

func TestEmitTestbench(t *testing.T) {
	for _, s := range []string{"0 1 3 2", "7", "0 1 0 1", "4 9 2 11 6"} {
		d := mustDerive(t, s, seqsynth.JK)
		tb := seqsynth.EmitTestbench(d, "fsm")
		if n := strings.Count(tb, "@(posedge clk)"); n != len(d.Sequence) {
			t.Errorf("%s: %d clock steps, expected %d", s, n, len(d.Sequence))
		}
		// steps follow the sequence order, wrap-around included.
		last := 0
		for _, tr := range d.Transitions {
			c := fmt.Sprintf("// %s -> %s\n", d.Encoding.Code(tr.Present), d.Encoding.Code(tr.Next))
			i := strings.Index(tb[last:], c)
			if i < 0 {
				t.Fatalf("%s: missing or misplaced step %q in:\n%s", s, c, tb)
			}
			last += i + len(c)
		}
		if !strings.Contains(tb, "fsm dut (.clk(clk), .rst(rst), .Q(Q));") {
			t.Errorf("%s: module not instantiated", s)
		}
	}
}
