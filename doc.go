// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package seqsynth synthesizes synchronous sequential circuits that step
through a given cycle of states.

Given a sequence of integer states and a flip-flop type (D, T, JK or SR),
Derive encodes the states in binary, builds the cyclic transition map,
derives the excitation table of every flip-flop input and minimizes each of
them into a sum-of-products equation over the present-state bits:

	seq, _ := seqsynth.ParseSequence("0 1 3 2")
	d, err := seqsynth.Derive(seq, seqsynth.JK)
	if err != nil {
		// handle error
	}
	for _, eq := range d.Equations {
		fmt.Println(eq.Signal.Name(), "=", eq.Expr)
	}

The design can then be emitted as a Verilog module and testbench
(EmitModule, EmitTestbench), its equations drawn as gate networks (package
gates), checked by simulation (Simulate) and by a SAT solver (Verify).

Run does all of the above and commits the resulting files to an output
directory that is cleared on every run.
*/
package seqsynth
