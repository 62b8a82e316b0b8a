// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package seqsynth

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/db47h/seqsynth/logic"
)

// Verilog is the Style of expressions in emitted Verilog.
//
var Verilog = logic.Style{
	Var:  func(i int) string { return "Q[" + strconv.Itoa(i) + "]" },
	Not:  "~",
	And:  " & ",
	Or:   " | ",
	Zero: "1'b0",
	One:  "1'b1",
}

// DefaultModule is the default name of emitted modules.
//
const DefaultModule = "fsm"

func literal(width, v int) string {
	return strconv.Itoa(width) + "'b" + fmt.Sprintf("%0*b", width, v)
}

// EmitModule returns the Verilog text of module name implementing d. The
// state register Q is reset asynchronously to the first state of the
// sequence.
//
func EmitModule(d *Design, name string) string {
	w := d.Width()
	var b strings.Builder
	fmt.Fprintf(&b, "// %s: %d bit %s flip-flop state machine\n", name, w, d.FlipFlop.Name())
	fmt.Fprintf(&b, "// sequence: %s\n", d.Sequence)
	fmt.Fprintf(&b, "module %s (\n", name)
	fmt.Fprintf(&b, "    input  wire clk,\n")
	fmt.Fprintf(&b, "    input  wire rst,\n")
	fmt.Fprintf(&b, "    output reg  [%d:0] Q\n", w-1)
	fmt.Fprintf(&b, ");\n")

	names := make([]string, len(d.Equations))
	for i, eq := range d.Equations {
		names[i] = eq.Signal.Name()
	}
	fmt.Fprintf(&b, "    wire %s;\n\n", strings.Join(names, ", "))
	for _, eq := range d.Equations {
		fmt.Fprintf(&b, "    assign %s = %s;\n", eq.Signal.Name(), eq.Expr.Format(Verilog))
	}

	fmt.Fprintf(&b, "\n    always @(posedge clk or posedge rst) begin\n")
	fmt.Fprintf(&b, "        if (rst)\n")
	fmt.Fprintf(&b, "            Q <= %s;\n", literal(w, d.Sequence[0]))
	fmt.Fprintf(&b, "        else begin\n")
	ins := d.FlipFlop.Inputs()
	for bit := w - 1; bit >= 0; bit-- {
		q := "Q[" + strconv.Itoa(bit) + "]"
		sigs := make([]string, len(ins))
		for i, in := range ins {
			sigs[i] = Signal{Input: in, Bit: bit}.Name()
		}
		fmt.Fprintf(&b, "            %s <= %s;\n", q, d.FlipFlop.update(q, sigs))
	}
	fmt.Fprintf(&b, "        end\n")
	fmt.Fprintf(&b, "    end\n")
	fmt.Fprintf(&b, "endmodule\n")
	return b.String()
}

// EmitTestbench returns the Verilog text of a testbench for module name
// implementing d. After reset, it clocks the module once per transition of
// the sequence, in order, and reports the state after each clock edge.
//
func EmitTestbench(d *Design, name string) string {
	w := d.Width()
	var b strings.Builder
	fmt.Fprintf(&b, "`timescale 1ns / 1ps\n\n")
	fmt.Fprintf(&b, "module %s_tb;\n", name)
	fmt.Fprintf(&b, "    reg clk = 0;\n")
	fmt.Fprintf(&b, "    reg rst = 1;\n")
	fmt.Fprintf(&b, "    wire [%d:0] Q;\n", w-1)
	fmt.Fprintf(&b, "    integer mismatches = 0;\n\n")
	fmt.Fprintf(&b, "    %s dut (.clk(clk), .rst(rst), .Q(Q));\n\n", name)
	fmt.Fprintf(&b, "    always #5 clk = ~clk;\n\n")
	fmt.Fprintf(&b, "    task check(input [%d:0] want);\n", w-1)
	fmt.Fprintf(&b, "        begin\n")
	fmt.Fprintf(&b, "            if (Q !== want) begin\n")
	fmt.Fprintf(&b, "                $display(\"  mismatch: expected %%b\", want);\n")
	fmt.Fprintf(&b, "                mismatches = mismatches + 1;\n")
	fmt.Fprintf(&b, "            end\n")
	fmt.Fprintf(&b, "        end\n")
	fmt.Fprintf(&b, "    endtask\n\n")

	fmt.Fprintf(&b, "    initial begin\n")
	fmt.Fprintf(&b, "        #12 rst = 0;\n")
	fmt.Fprintf(&b, "        $display(\"reset: Q = %%b\", Q);\n")
	fmt.Fprintf(&b, "        check(%s);\n", literal(w, d.Sequence[0]))
	for i, tr := range d.Transitions {
		fmt.Fprintf(&b, "        // %s -> %s\n", d.Encoding.Code(tr.Present), d.Encoding.Code(tr.Next))
		fmt.Fprintf(&b, "        @(posedge clk); #1;\n")
		fmt.Fprintf(&b, "        $display(\"step %d: Q = %%b\", Q);\n", i+1)
		fmt.Fprintf(&b, "        check(%s);\n", literal(w, tr.Next))
	}
	fmt.Fprintf(&b, "        if (mismatches == 0)\n")
	fmt.Fprintf(&b, "            $display(\"PASS\");\n")
	fmt.Fprintf(&b, "        else\n")
	fmt.Fprintf(&b, "            $display(\"FAIL: %%0d mismatches\", mismatches);\n")
	fmt.Fprintf(&b, "        $finish;\n")
	fmt.Fprintf(&b, "    end\n")
	fmt.Fprintf(&b, "endmodule\n")
	return b.String()
}
